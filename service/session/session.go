// Package session runs root scripts against a single long-lived shell.
//
// A Session is opened explicitly, shared by callers and closed by its owner.
// Submissions are serialized, at most one script runs against the shell at a time.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/viant/shellkit/model/command"
	"github.com/viant/shellkit/model/exitcode"
	"github.com/viant/shellkit/model/result"
	"github.com/viant/shellkit/policy"
	"github.com/viant/shellkit/service/exec"
	"github.com/viant/shellkit/service/setting"
	"github.com/viant/shellkit/service/shell"
)

// ErrClosed is reported by results of a closed session
var ErrClosed = errors.New("session: closed")

// MessageNoRoot is reported when the root permission flag is not set
const MessageNoRoot = "no root permission"

// Session represents a long-lived root shell
type Session struct {
	opener   shell.Opener
	settings setting.Store
	key      string
	policy   *policy.Policy
	logger   *slog.Logger
	service  shell.Service
	executor *exec.Service
	mux      sync.Mutex
	closed   bool
}

// Open opens a session with the shell produced by opener
func Open(ctx context.Context, opener shell.Opener, settings setting.Store, options ...Option) (*Session, error) {
	if opener == nil {
		return nil, fmt.Errorf("session: opener was nil")
	}
	ret := &Session{
		opener:   opener,
		settings: settings,
		key:      setting.RootPermission,
		logger:   slog.Default(),
	}
	for _, option := range options {
		option(ret)
	}
	if err := ret.open(ctx); err != nil {
		return nil, err
	}
	return ret, nil
}

// Execute runs lines as one script, each line followed by a line break.
// No lines yield a WatchdogExit result.
func (s *Session) Execute(ctx context.Context, lines ...string) *result.Result {
	s.mux.Lock()
	defer s.mux.Unlock()
	if len(lines) == 0 {
		return result.FromLines(exitcode.WatchdogExit, nil, nil)
	}
	return s.submit(ctx, command.JoinLines(lines), nil)
}

// ExecuteScript runs script
func (s *Session) ExecuteScript(ctx context.Context, script string) *result.Result {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.submit(ctx, script, nil)
}

// ExecuteCommand flattens and runs cmd, nil cmd yields a WatchdogExit result
func (s *Session) ExecuteCommand(ctx context.Context, cmd *command.Command) *result.Result {
	s.mux.Lock()
	defer s.mux.Unlock()
	if cmd == nil {
		return result.FromLines(exitcode.WatchdogExit, nil, nil)
	}
	return s.submit(ctx, command.Flatten(cmd), cmd)
}

// Run runs script and reports whether the result code is not a sentinel
func (s *Session) Run(ctx context.Context, script string) bool {
	return s.ExecuteScript(ctx, script).Code() >= exitcode.Success
}

// RunLines runs lines and reports whether the result code is not a sentinel
func (s *Session) RunLines(ctx context.Context, lines ...string) bool {
	return s.Execute(ctx, lines...).Code() >= exitcode.Success
}

// Close releases the shell, subsequent calls are no-ops
func (s *Session) Close() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.close()
}

// Reset closes the shell and opens a new one
func (s *Session) Reset(ctx context.Context) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if err := s.close(); err != nil {
		s.logger.Warn("failed to close shell", slog.Any("error", err))
	}
	return s.open(ctx)
}

// Closed returns true if the session is closed
func (s *Session) Closed() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.closed
}

func (s *Session) submit(ctx context.Context, script string, cmd *command.Command) *result.Result {
	if s.closed {
		return result.FromLines(exitcode.ShellExecFailed, nil, nil).WithError(ErrClosed)
	}
	if !setting.Lookup(ctx, s.settings, s.key) {
		return result.FromText(exitcode.ShellNotFound, "", MessageNoRoot)
	}
	return s.executor.Submit(ctx, &exec.Request{Script: script, Root: true, Command: cmd})
}

func (s *Session) open(ctx context.Context) error {
	service, err := s.opener(ctx)
	if err != nil {
		return fmt.Errorf("failed to open shell: %w", err)
	}
	s.service = service
	s.executor = exec.New(service, s.settings, exec.WithLogger(s.logger), exec.WithSettingKey(s.key), exec.WithPolicy(s.policy))
	s.closed = false
	return nil
}

func (s *Session) close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.executor = nil
	service := s.service
	s.service = nil
	return service.Close()
}
