// Package exec implements one-shot execution of commands against a shell backend.
package exec

import (
	"context"
	"log/slog"
	"time"

	"github.com/viant/shellkit/internal/clock"
	"github.com/viant/shellkit/model/command"
	"github.com/viant/shellkit/model/exitcode"
	"github.com/viant/shellkit/model/result"
	"github.com/viant/shellkit/policy"
	"github.com/viant/shellkit/service/setting"
	"github.com/viant/shellkit/service/shell"
	"github.com/viant/shellkit/tracing"
)

// Service executes commands, it holds no mutable state and is safe for concurrent use
type Service struct {
	shell    shell.Service
	settings setting.Store
	key      string
	policy   *policy.Policy
	logger   *slog.Logger
}

// Request represents a single submission
type Request struct {
	Script   string
	Root     bool
	Command  *command.Command
	Diagnose bool
}

// Execute runs lines as one script, each line followed by a line break.
// No lines yield a WatchdogExit result without contacting the backend.
func (s *Service) Execute(ctx context.Context, root bool, lines ...string) *result.Result {
	if len(lines) == 0 {
		return result.FromLines(exitcode.WatchdogExit, nil, nil)
	}
	return s.Submit(ctx, &Request{Script: command.JoinLines(lines), Root: root, Diagnose: true})
}

// ExecuteScript runs a single script, empty script yields a WatchdogExit result
func (s *Service) ExecuteScript(ctx context.Context, script string, root bool) *result.Result {
	if script == "" {
		return result.FromLines(exitcode.WatchdogExit, nil, nil)
	}
	return s.Execute(ctx, root, script)
}

// ExecuteCommand flattens and runs cmd, nil cmd yields a WatchdogExit result
func (s *Service) ExecuteCommand(ctx context.Context, cmd *command.Command, root bool) *result.Result {
	if cmd == nil {
		return result.FromLines(exitcode.WatchdogExit, nil, nil)
	}
	return s.Submit(ctx, &Request{Script: command.Flatten(cmd), Root: root, Command: cmd, Diagnose: true})
}

// Shell flattens and runs cmd without adding diagnostics
func (s *Service) Shell(ctx context.Context, cmd *command.Command, root bool) *result.Result {
	if cmd == nil {
		return result.FromLines(exitcode.WatchdogExit, nil, nil)
	}
	return s.Submit(ctx, &Request{Script: command.Flatten(cmd), Root: root, Command: cmd})
}

// CheckRootPermission returns true if a root script exits with Success
func (s *Service) CheckRootPermission(ctx context.Context) bool {
	return s.Execute(ctx, true, "echo root").IsSuccessful()
}

// Submit runs the request as a single job. Backend errors are captured in the
// returned result and never propagated.
func (s *Service) Submit(ctx context.Context, request *Request) *result.Result {
	if err := s.approve(ctx, request.Script); err != nil {
		s.logger.Warn("shell job rejected", slog.Bool("root", request.Root), slog.Any("error", err))
		ret := result.FromError(err)
		if request.Command != nil {
			ret = ret.WithCommand(request.Command)
		}
		return ret
	}
	var stdout, stderr []string
	job := shell.NewJob(s.shell, request.Root).To(&stdout, &stderr).Add(request.Script)
	if request.Command != nil {
		job.WithTimeout(request.Command.TimeoutMs())
	}

	ctx, span := tracing.StartSpan(ctx, "shell.exec")
	span.WithAttributes(map[string]string{"job.id": job.ID()}).WithBool("root", request.Root)
	started := clock.Now()
	raw, err := job.Exec(ctx)
	span.WithInt("exit.code", raw.Code.Int())
	tracing.EndSpan(span, err)

	if err == nil && request.Diagnose && !raw.Success() {
		raw.Stderr = append(raw.Stderr, s.diagnose(ctx, raw.Code))
	}
	ret := toResult(raw, err)
	if request.Command != nil {
		ret = ret.WithCommand(request.Command)
	}
	s.log(ctx, job, request, ret, clock.Since(started))
	return ret
}

// approve checks the context policy, falling back to the service policy
func (s *Service) approve(ctx context.Context, script string) error {
	p := policy.FromContext(ctx)
	if p == nil {
		p = s.policy
	}
	return p.Approve(ctx, script)
}

func (s *Service) diagnose(ctx context.Context, code exitcode.Code) string {
	if code == exitcode.CommandNotFound {
		if setting.Lookup(ctx, s.settings, s.key) {
			return MessageCommandMissing
		}
		return MessageNoRoot
	}
	return ErrorCodeMessage(code)
}

func (s *Service) log(ctx context.Context, job *shell.Job, request *Request, ret *result.Result, elapsed time.Duration) {
	level := slog.LevelDebug
	if request.Command != nil && request.Command.Logging() {
		level = slog.LevelInfo
	}
	if !s.logger.Enabled(ctx, level) {
		return
	}
	attrs := []any{
		slog.String("job_id", job.ID()),
		slog.Bool("root", request.Root),
		slog.Int("code", ret.Code().Int()),
		slog.String("status", ret.Code().String()),
		slog.Duration("elapsed", elapsed),
	}
	if request.Command != nil {
		attrs = append(attrs, slog.String("command", request.Command.String()))
	}
	if err := ret.Err(); err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	s.logger.Log(ctx, level, "shell job finished", attrs...)
}

func toResult(raw *shell.Raw, err error) *result.Result {
	switch {
	case err == nil:
		return result.FromLines(raw.Code, raw.Stdout, raw.Stderr)
	case shell.IsTimeout(err):
		return result.FromLines(exitcode.Timeout, raw.Stdout, raw.Stderr).WithError(err)
	default:
		return result.FromError(err)
	}
}

// New creates a one-shot execution service
func New(shellService shell.Service, settings setting.Store, options ...Option) *Service {
	ret := &Service{
		shell:    shellService,
		settings: settings,
		key:      setting.RootPermission,
		logger:   slog.Default(),
	}
	for _, option := range options {
		option(ret)
	}
	return ret
}
