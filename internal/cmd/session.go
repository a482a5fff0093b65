package cmd

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/viant/shellkit/model/exitcode"
)

func newSessionCmd(a *app) *cobra.Command {
	var format string
	var stopOnError bool
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Run scripts from stdin in one long-lived root shell",
		Long: `Session opens a single root shell and runs every non-empty line read
from stdin as a separate script, one at a time.

Lines starting with # are skipped. The root permission flag must be set in
the setting store, see "shellkit check-root --save".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			sess, err := a.service.OpenSession(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := sess.Close(); err != nil {
					a.logger.Warn("failed to close session", slog.Any("error", err))
				}
			}()

			last := exitcode.Success
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				ret := sess.ExecuteScript(ctx, line)
				if err := render(cmd.OutOrStdout(), ret, format); err != nil {
					return err
				}
				if ret.Code() != exitcode.Success {
					last = ret.Code()
					if stopOnError {
						break
					}
				}
				if ctx.Err() != nil {
					break
				}
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read scripts: %w", err)
			}
			return statusError(last)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", "", "Output format: text, styled, html or json")
	cmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "Stop at the first failing script")
	return cmd
}
