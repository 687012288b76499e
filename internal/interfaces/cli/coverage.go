package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rxprasetya/sebaran-penjualan/pkg/client"
)

// NewCoverageCmd creates the "coverage" command group for managing sales
// coverage assignments.
func NewCoverageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "coverage",
		Aliases: []string{"cov"},
		Short:   "Manage sales coverage assignments",
	}

	cmd.AddCommand(
		newCoverageListCmd(),
		newCoverageGetCmd(),
		newCoverageCreateCmd(),
		newCoverageUpdateCmd(),
		newCoverageDeleteCmd(),
	)
	return cmd
}

func newCoverageListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every coverage assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			areas, err := cliCtx.Client.Coverage().List(ctx)
			if err != nil {
				return err
			}

			return printResult(cmd, cliCtx, areas, func() {
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tPROVINCE\tCITY\tDISTRICT\tVILLAGE")
				for _, area := range areas {
					village := area.VillageName
					if village == "" {
						village = "-"
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
						area.ID, area.ProvinceName, area.CityName, area.DistrictName, village)
				}
				w.Flush()
			})
		},
	}
}

func newCoverageGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one coverage assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			area, err := cliCtx.Client.Coverage().Get(ctx, id)
			if err != nil {
				return err
			}

			return printResult(cmd, cliCtx, area, func() {
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:       %d\n", area.ID)
				fmt.Fprintf(out, "Employee: %d\n", area.EmployeeID)
				fmt.Fprintf(out, "Province: %s\n", area.ProvinceName)
				fmt.Fprintf(out, "City:     %s\n", area.CityName)
				fmt.Fprintf(out, "District: %s\n", area.DistrictName)
				if area.VillageName != "" {
					fmt.Fprintf(out, "Village:  %s\n", area.VillageName)
				}
			})
		},
	}
}

// coverageAreaFlags registers the write-payload flags shared by create and
// update.
func coverageAreaFlags(cmd *cobra.Command, req *client.CoverageAreaRequest) {
	cmd.Flags().IntVar(&req.EmployeeID, "employee", 0, "employee ID (required)")
	cmd.Flags().IntVar(&req.ProvinceID, "province", 0, "province ID (required)")
	cmd.Flags().IntVar(&req.CityID, "city", 0, "city ID (required)")
	cmd.Flags().IntVar(&req.DistrictID, "district", 0, "district ID (required)")
	cmd.Flags().IntVar(&req.VillageID, "village", 0, "village ID (0 covers the whole district)")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("province")
	_ = cmd.MarkFlagRequired("city")
	_ = cmd.MarkFlagRequired("district")
}

func newCoverageCreateCmd() *cobra.Command {
	req := &client.CoverageAreaRequest{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Assign a territory to an employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			id, err := cliCtx.Client.Coverage().Create(ctx, req)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created coverage area %d\n", id)
			return nil
		},
	}

	coverageAreaFlags(cmd, req)
	return cmd
}

func newCoverageUpdateCmd() *cobra.Command {
	req := &client.CoverageAreaRequest{}

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace an existing coverage assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			if err := cliCtx.Client.Coverage().Update(ctx, id, req); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "updated coverage area %d\n", id)
			return nil
		},
	}

	coverageAreaFlags(cmd, req)
	return cmd
}

func newCoverageDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a coverage assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			if err := cliCtx.Client.Coverage().Delete(ctx, id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted coverage area %d\n", id)
			return nil
		},
	}
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("id must be a positive integer, got %q", arg)
	}
	return id, nil
}
