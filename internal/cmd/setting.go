package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSettingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setting",
		Short: "Read or write persisted flags",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "get [key]",
		Short: "Print a flag, the root permission flag by default",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := a.service.Config().Setting.Key
			if len(args) == 1 {
				key = args[0]
			}
			value, err := a.service.Settings().Bool(cmd.Context(), key)
			if err != nil {
				return fmt.Errorf("failed to read %v: %w", key, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v: %v\n", key, value)
			return nil
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <true|false>",
		Short: "Persist a flag",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseBool(args[1])
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}
			return setFlag(cmd, a, args[0], value)
		},
	})
	return cmd
}
