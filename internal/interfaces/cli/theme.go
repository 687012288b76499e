package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewThemeCmd creates the "theme" command group.
func NewThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Read or switch the shared dashboard theme",
	}

	cmd.AddCommand(newThemeGetCmd(), newThemeSetCmd())
	return cmd
}

func newThemeGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the active theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			theme, err := cliCtx.Client.Theme().Current(ctx)
			if err != nil {
				return err
			}

			return printResult(cmd, cliCtx, map[string]string{"theme": theme}, func() {
				fmt.Fprintln(cmd.OutOrStdout(), theme)
			})
		},
	}
}

func newThemeSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <dark|light>",
		Short: "Switch the active theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			if err := cliCtx.Client.Theme().Set(ctx, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", args[0])
			return nil
		},
	}
}
