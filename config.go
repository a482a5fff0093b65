package shellkit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/shellkit/policy"
	"github.com/viant/shellkit/service/setting"
	"github.com/viant/shellkit/service/shell"
	"gopkg.in/yaml.v3"
)

// Config is a serialisable representation of the service configuration.
// The zero-value is useful, nested fields inherit their package defaults.
type Config struct {
	Shell   shell.Config   `json:"shell" yaml:"shell"`
	Setting SettingConfig  `json:"setting" yaml:"setting"`
	Policy  *policy.Config `json:"policy,omitempty" yaml:"policy,omitempty"`
	Tracing TracingConfig  `json:"tracing" yaml:"tracing"`
}

// SettingConfig locates the persisted flag document. An empty URL keeps
// flags in memory, seeded with Values.
type SettingConfig struct {
	URL    string          `json:"url,omitempty" yaml:"url,omitempty"`
	Name   string          `json:"name,omitempty" yaml:"name,omitempty"`
	Key    string          `json:"key,omitempty" yaml:"key,omitempty"`
	Values map[string]bool `json:"values,omitempty" yaml:"values,omitempty"`
}

// TracingConfig controls OpenTelemetry span export
type TracingConfig struct {
	Enabled        bool   `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ServiceName    string `json:"serviceName,omitempty" yaml:"serviceName,omitempty"`
	ServiceVersion string `json:"serviceVersion,omitempty" yaml:"serviceVersion,omitempty"`
	OutputFile     string `json:"outputFile,omitempty" yaml:"outputFile,omitempty"`
}

// DefaultConfig returns a Config populated with default values.
// Callers may modify the returned struct before passing it to WithConfig.
func DefaultConfig() *Config {
	ret := &Config{
		Setting: SettingConfig{
			Name: setting.DefaultName,
			Key:  setting.RootPermission,
		},
		Tracing: TracingConfig{
			ServiceName: "shellkit",
		},
	}
	ret.Shell.Init()
	return ret
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Shell.TimeoutMs < 0 {
		return fmt.Errorf("shell.timeoutMs must be >= 0")
	}
	if c.Setting.URL != "" && c.Setting.Name == "" {
		return fmt.Errorf("setting.name must be set with setting.url")
	}
	if c.Policy != nil {
		switch strings.ToLower(c.Policy.Mode) {
		case "", policy.ModeAuto, policy.ModeDeny:
		case policy.ModeAsk:
			return fmt.Errorf("policy.mode %q requires an ask function", c.Policy.Mode)
		default:
			return fmt.Errorf("unsupported policy.mode: %q", c.Policy.Mode)
		}
	}
	return nil
}

// LoadConfig reads YAML config from URL on top of DefaultConfig
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %v: %w", URL, err)
	}
	ret := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err = decoder.Decode(ret); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config %v: %w", URL, err)
	}
	ret.Shell.Init()
	if err = ret.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %v: %w", URL, err)
	}
	return ret, nil
}
