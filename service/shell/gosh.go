package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs/url"
	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
	rssh "github.com/viant/gosh/runner/ssh"
	"github.com/viant/scy/cred/secret"
	"github.com/viant/shellkit/internal/clock"
	"github.com/viant/shellkit/model/exitcode"
	"golang.org/x/crypto/ssh"
)

const (
	// DefaultURL targets the local bash runner
	DefaultURL = "bash://localhost/"
	// DefaultRootCommand escalates privileges for root jobs
	DefaultRootCommand = "su"
	// DefaultShell runs multi-line unprivileged scripts
	DefaultShell = "sh"
	// DefaultTimeoutMs bounds a single script when no deadline is set
	DefaultTimeoutMs = 60000
)

// Config represents gosh backend settings
type Config struct {
	URL         string            `json:"url,omitempty" yaml:"url,omitempty"`
	Credentials string            `json:"credentials,omitempty" yaml:"credentials,omitempty"`
	RootCommand string            `json:"rootCommand,omitempty" yaml:"rootCommand,omitempty"`
	Shell       string            `json:"shell,omitempty" yaml:"shell,omitempty"`
	TimeoutMs   int               `json:"timeoutMs,omitempty" yaml:"timeoutMs,omitempty"`
	Env         map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// Init sets defaults
func (c *Config) Init() {
	if c.URL == "" {
		c.URL = DefaultURL
	}
	if c.RootCommand == "" {
		c.RootCommand = DefaultRootCommand
	}
	if c.Shell == "" {
		c.Shell = DefaultShell
	}
	if c.TimeoutMs == 0 {
		c.TimeoutMs = DefaultTimeoutMs
	}
}

// IsLocal returns true if config targets the local host
func (c *Config) IsLocal() bool {
	return url.Host(c.URL) == "localhost"
}

// Gosh executes scripts through a single gosh session
type Gosh struct {
	config  *Config
	service *gosh.Service
	mux     sync.Mutex
}

// New opens a gosh session described by config
func New(ctx context.Context, config *Config) (*Gosh, error) {
	if config == nil {
		config = &Config{}
	}
	config.Init()
	var options []runner.Option
	if len(config.Env) > 0 {
		options = append(options, runner.WithEnvironment(config.Env))
	}
	var service *gosh.Service
	var err error
	if config.IsLocal() {
		service, err = gosh.New(ctx, local.New(options...))
	} else {
		clientConfig, cErr := sshConfig(ctx, config.Credentials)
		if cErr != nil {
			return nil, fmt.Errorf("failed to get SSH config: %w", cErr)
		}
		host := url.Host(config.URL)
		if !strings.Contains(host, ":") {
			host += ":22"
		}
		service, err = gosh.New(ctx, rssh.New(host, clientConfig, options...))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open shell %v: %w", config.URL, err)
	}
	return &Gosh{config: config, service: service}, nil
}

// NewOpener returns an Opener for config
func NewOpener(config *Config) Opener {
	return func(ctx context.Context) (Service, error) {
		return New(ctx, config)
	}
}

// Exec runs scripts as one unit, the merged output is reported as stdout on
// success and as stderr otherwise.
func (g *Gosh) Exec(ctx context.Context, root bool, scripts ...string) (*Raw, error) {
	script := Wrap(g.config, root, scripts...)
	if script == "" {
		return &Raw{Code: exitcode.Success}, nil
	}
	timeoutMs := g.timeoutMs(ctx)

	g.mux.Lock()
	defer g.mux.Unlock()
	started := clock.Now()
	output, status, err := g.service.Run(ctx, script, runner.WithTimeout(timeoutMs))
	elapsed := clock.Now().Sub(started)
	if err == nil && elapsed > time.Duration(timeoutMs)*time.Millisecond {
		err = fmt.Errorf("%w after: %s", ErrTimeout, elapsed)
	}
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		if IsTimeout(err) {
			return &Raw{Code: exitcode.Timeout, Stderr: Lines(output)}, err
		}
		return nil, fmt.Errorf("failed to run script: %w", err)
	}
	raw := &Raw{Code: exitcode.Of(status)}
	if status == 0 {
		raw.Stdout = Lines(output)
	} else {
		raw.Stderr = Lines(output)
	}
	return raw, nil
}

// Close releases the gosh session
func (g *Gosh) Close() error {
	g.mux.Lock()
	defer g.mux.Unlock()
	return g.service.Close()
}

func (g *Gosh) timeoutMs(ctx context.Context) int {
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := deadline.Sub(clock.Now()).Milliseconds(); remaining > 0 {
			return int(remaining)
		}
		return 1
	}
	return g.config.TimeoutMs
}

// Wrap joins scripts into a single command line. Root scripts are passed to
// the root command, multi-line scripts to the configured shell.
func Wrap(config *Config, root bool, scripts ...string) string {
	script := strings.TrimRight(strings.Join(scripts, "\n"), "\n")
	if script == "" {
		return ""
	}
	switch {
	case root:
		return config.RootCommand + " -c " + Quote(script)
	case strings.Contains(script, "\n"):
		return config.Shell + " -c " + Quote(script)
	}
	return script
}

// Quote single-quotes s for a POSIX shell
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Lines splits output into lines, dropping trailing empty lines
func Lines(output string) []string {
	output = strings.ReplaceAll(output, "\r\n", "\n")
	output = strings.TrimRight(output, "\n")
	if output == "" {
		return nil
	}
	return strings.Split(output, "\n")
}

func sshConfig(ctx context.Context, credentials string) (*ssh.ClientConfig, error) {
	if credentials == "" {
		credentials = "localhost"
	}
	secrets := secret.New()
	generic, err := secrets.GetCredentials(ctx, credentials)
	if err != nil {
		return nil, err
	}
	return generic.SSH.Config(ctx)
}
