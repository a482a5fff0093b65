package exec

import (
	"log/slog"
	"strconv"

	"github.com/viant/shellkit/model/exitcode"
	"github.com/viant/shellkit/policy"
)

const (
	// MessageNoRoot is appended when a command is not found and root permission is missing
	MessageNoRoot = "error: no root permission"
	// MessageCommandMissing is appended when a command is not found despite root permission
	MessageCommandMissing = "error: the command does not exist, e.g. the installed BusyBox does not provide it"
)

// ErrorCodeMessage returns the diagnostic appended for other failures
func ErrorCodeMessage(code exitcode.Code) string {
	return "error code: " + strconv.Itoa(code.Int())
}

// Option represents a service option
type Option func(s *Service)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSettingKey sets the key of the root permission flag
func WithSettingKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.key = key
		}
	}
}

// WithPolicy sets the policy applied when the context carries none
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}
