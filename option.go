package shellkit

import (
	"log/slog"

	"github.com/viant/shellkit/policy"
	"github.com/viant/shellkit/service/setting"
	"github.com/viant/shellkit/service/shell"
	"github.com/viant/shellkit/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option represents a service option
type Option func(s *Service)

// WithConfig replaces the default configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		if config != nil {
			s.config = config
		}
	}
}

// WithLogger sets the logger shared by both façades
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithSettings sets the flag store, overriding Config.Setting
func WithSettings(store setting.Store) Option {
	return func(s *Service) {
		s.settings = store
	}
}

// WithOpener sets the shell backend factory, overriding Config.Shell
func WithOpener(opener shell.Opener) Option {
	return func(s *Service) {
		s.opener = opener
	}
}

// WithPolicy sets the script policy, overriding Config.Policy
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used. The first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		s.config.Tracing = TracingConfig{
			Enabled:        true,
			ServiceName:    serviceName,
			ServiceVersion: serviceVersion,
			OutputFile:     outputFile,
		}
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		if err := tracing.InitWithExporter(serviceName, serviceVersion, exporter); err == nil {
			s.tracing = true
		}
	}
}
