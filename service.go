package shellkit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/shellkit/policy"
	"github.com/viant/shellkit/service/exec"
	"github.com/viant/shellkit/service/session"
	"github.com/viant/shellkit/service/setting"
	"github.com/viant/shellkit/service/setting/fs"
	"github.com/viant/shellkit/service/setting/memory"
	"github.com/viant/shellkit/service/shell"
	"github.com/viant/shellkit/tracing"
)

// Service wires the shell backend, flag storage and both execution façades
type Service struct {
	config   *Config
	logger   *slog.Logger
	settings setting.Store
	opener   shell.Opener
	policy   *policy.Policy
	executor *exec.Service
	tracing  bool
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if err := s.ensureBaseSetup(); err != nil {
		return err
	}
	s.executor = exec.New(shell.NewOneShot(s.opener), s.settings,
		exec.WithLogger(s.logger),
		exec.WithSettingKey(s.config.Setting.Key),
		exec.WithPolicy(s.policy))
	return nil
}

func (s *Service) ensureBaseSetup() error {
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.opener == nil {
		shellConfig := s.config.Shell
		s.opener = shell.NewOpener(&shellConfig)
	}
	if s.policy == nil {
		s.policy = policy.FromConfig(s.config.Policy)
	}
	if s.settings == nil {
		settingConfig := s.config.Setting
		if settingConfig.URL == "" {
			s.settings = memory.New(settingConfig.Values)
		} else {
			store, err := fs.New(settingConfig.URL, settingConfig.Name)
			if err != nil {
				return fmt.Errorf("failed to create setting store: %w", err)
			}
			s.settings = store
		}
	}
	if tracingConfig := s.config.Tracing; tracingConfig.Enabled {
		if err := tracing.Init(tracingConfig.ServiceName, tracingConfig.ServiceVersion, tracingConfig.OutputFile); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
		s.tracing = true
	}
	return nil
}

// Config returns the effective configuration
func (s *Service) Config() *Config {
	return s.config
}

// Settings returns the flag store
func (s *Service) Settings() setting.Store {
	return s.settings
}

// Executor returns the one-shot façade, every call spawns its own shell
func (s *Service) Executor() *exec.Service {
	return s.executor
}

// OpenSession opens a forever session, the caller owns and closes it
func (s *Service) OpenSession(ctx context.Context) (*session.Session, error) {
	return session.Open(ctx, s.opener, s.settings,
		session.WithLogger(s.logger),
		session.WithSettingKey(s.config.Setting.Key),
		session.WithPolicy(s.policy))
}

// Close flushes pending spans when tracing was enabled
func (s *Service) Close(ctx context.Context) error {
	if !s.tracing {
		return nil
	}
	return tracing.Shutdown(ctx)
}

// New creates a service
func New(options ...Option) (*Service, error) {
	ret := &Service{config: DefaultConfig()}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
