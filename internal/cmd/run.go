package cmd

import (
	"github.com/spf13/cobra"
	"github.com/viant/shellkit/model/command"
)

type runOptions struct {
	root      bool
	env       []string
	dir       string
	paths     []string
	timeoutMs int
	format    string
	raw       bool
	logging   bool
}

func newRunCmd(a *app) *cobra.Command {
	options := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run <line>...",
		Short: "Run one script in its own shell",
		Long: `Run joins the arguments into a script, one line per argument, and
executes it in a dedicated shell.

Environment entries are exported and directories appended to PATH before
the script runs. The process exits with the script's exit code.`,
		Example: `  shellkit run --root id
  shellkit run --env LANG=C --path /system/xbin 'busybox ls /data'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			builder, err := command.NewLines(args...)
			if err != nil {
				return err
			}
			builder.AddAllEnv(options.env...).SetDir(options.dir).SetDirs(options.paths)
			if options.timeoutMs > 0 {
				builder.SetTimeout(options.timeoutMs)
			}
			if options.logging {
				builder.EnableLogging()
			}
			cmdDescriptor, err := builder.Build()
			if err != nil {
				return err
			}
			executor := a.service.Executor()
			execute := executor.ExecuteCommand
			if options.raw {
				execute = executor.Shell
			}
			ret := execute(cmd.Context(), cmdDescriptor, options.root)
			if err := render(cmd.OutOrStdout(), ret, options.format); err != nil {
				return err
			}
			return statusError(ret.Code())
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&options.root, "root", "r", false, "Run as root")
	flags.StringArrayVarP(&options.env, "env", "e", nil, "Environment entry KEY=VALUE, repeatable")
	flags.StringVar(&options.dir, "dir", "", "Directory appended to PATH")
	flags.StringArrayVarP(&options.paths, "path", "p", nil, "Additional directory appended to PATH, repeatable")
	flags.IntVarP(&options.timeoutMs, "timeout", "t", 0, "Timeout in milliseconds")
	flags.StringVarP(&options.format, "format", "o", "", "Output format: text, styled, html or json")
	flags.BoolVar(&options.raw, "raw", false, "Do not append diagnostics to stderr")
	flags.BoolVar(&options.logging, "log", false, "Log the finished job at info level")
	return cmd
}
