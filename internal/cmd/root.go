// Package cmd implements the CLI commands for shellkit.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"github.com/viant/shellkit"
	"golang.org/x/term"
)

// ExitCodeError carries the process exit status of a failed script
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// app holds state shared by commands of one invocation
type app struct {
	configURL string
	debug     bool
	logJSON   bool
	options   []shellkit.Option
	logger    *slog.Logger
	service   *shellkit.Service
}

func (a *app) init(ctx context.Context, logWriter io.Writer) error {
	a.logger = newLogger(logWriter, a.debug, a.logJSON)
	config := shellkit.DefaultConfig()
	if a.configURL != "" {
		var err error
		if config, err = shellkit.LoadConfig(ctx, a.configURL); err != nil {
			return err
		}
	}
	options := append([]shellkit.Option{shellkit.WithConfig(config), shellkit.WithLogger(a.logger)}, a.options...)
	service, err := shellkit.New(options...)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	a.service = service
	return nil
}

func (a *app) close(ctx context.Context) error {
	if a.service == nil {
		return nil
	}
	return a.service.Close(ctx)
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "shellkit",
		Short: "Run shell scripts, optionally as root",
		Long: `shellkit runs scripts through a local or remote shell and reports
the exit code together with captured stdout and stderr.

Root scripts are escalated with the configured root command (su by default).
A session keeps a single root shell open and runs scripts read from stdin.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context(), cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&a.configURL, "config", "c", "", "Config file URL (YAML)")
	root.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "Enable debug logging")
	root.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "Emit logs as JSON")

	root.AddCommand(newRunCmd(a))
	root.AddCommand(newSessionCmd(a))
	root.AddCommand(newCheckRootCmd(a))
	root.AddCommand(newSettingCmd(a))
	root.AddCommand(newConfigCmd(a))
	return root
}

// Execute runs the root command and returns any error.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	a := &app{}
	return runRoot(ctx, a, newRootCmd(a))
}

// runRoot executes root and closes the service on success and failure paths
func runRoot(ctx context.Context, a *app, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if cErr := a.close(context.WithoutCancel(ctx)); cErr != nil {
		if err == nil {
			return cErr
		}
		a.logger.Warn("failed to close service", slog.Any("error", cErr))
	}
	return err
}

func newLogger(w io.Writer, debug, asJSON bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	var handler slog.Handler
	if asJSON {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel})
	} else {
		handler = tint.NewHandler(w, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.Kitchen,
			NoColor:    !isTerminal(w),
		})
	}
	return slog.New(handler)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
