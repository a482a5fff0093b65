package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/shellkit/service/setting"
)

func newCheckRootCmd(a *app) *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "check-root",
		Short: "Check whether scripts can run as root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			granted := a.service.Executor().CheckRootPermission(ctx)
			if save {
				if err := setFlag(cmd, a, a.service.Config().Setting.Key, granted); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "root: %v\n", granted)
			if !granted {
				return &ExitCodeError{Code: 1}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "Persist the outcome as the root permission flag")
	return cmd
}

func setFlag(cmd *cobra.Command, a *app, key string, value bool) error {
	writer, ok := a.service.Settings().(setting.Writer)
	if !ok {
		return fmt.Errorf("setting store %T is read-only", a.service.Settings())
	}
	if err := writer.SetBool(cmd.Context(), key, value); err != nil {
		return fmt.Errorf("failed to save %v: %w", key, err)
	}
	return nil
}
