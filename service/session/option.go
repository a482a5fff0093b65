package session

import (
	"log/slog"

	"github.com/viant/shellkit/policy"
)

// Option represents a session option
type Option func(s *Session)

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSettingKey sets the key of the root permission flag
func WithSettingKey(key string) Option {
	return func(s *Session) {
		if key != "" {
			s.key = key
		}
	}
}

// WithPolicy sets the policy applied to submitted scripts
func WithPolicy(p *policy.Policy) Option {
	return func(s *Session) {
		s.policy = p
	}
}
