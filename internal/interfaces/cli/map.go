package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rxprasetya/sebaran-penjualan/internal/application/mapview"
	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/boundary"
	"github.com/rxprasetya/sebaran-penjualan/internal/infrastructure/coverageapi"
	"github.com/rxprasetya/sebaran-penjualan/pkg/client"
	"github.com/rxprasetya/sebaran-penjualan/pkg/geo"
)

// sdkBoundaryStore serves raw boundary documents from the API so the
// regular boundary loader can normalize them client-side.
type sdkBoundaryStore struct {
	client *client.Client
}

func (s *sdkBoundaryStore) Fetch(ctx context.Context, districtCode string) ([]byte, error) {
	doc, err := s.client.Map().Boundary(ctx, districtCode)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// NewMapCmd creates the "map" command: load the full territory map through
// the session pipeline and print what would be rendered.
func NewMapCmd() *cobra.Command {
	var (
		detailIndex    int
		concurrency    int
		sampleAttempts int
	)

	cmd := &cobra.Command{
		Use:   "map",
		Short: "Load the territory map and print its regions",
		Long:  "Fetches territory records, resolves each district boundary, and prints\nthe resulting regions.  Districts whose boundary cannot be resolved are\ndropped, matching the dashboard's behavior.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			loader := boundary.NewLoader(
				&sdkBoundaryStore{client: cliCtx.Client},
				geo.NewSampler(geo.WithAttempts(sampleAttempts)),
				cliCtx.Logger,
			)

			// Territory fetches are all-or-nothing and never retry, so they
			// go through the coverage loader rather than the SDK.
			territories := coverageapi.NewLoader(cliCtx.Client.BaseURL()+"/api/map", nil)

			session := mapview.NewSession(
				territories,
				loader,
				mapview.WithConcurrency(concurrency),
				mapview.WithLogger(cliCtx.Logger),
			)
			defer session.Close()

			session.Start(ctx)
			if session.State() == mapview.StateError {
				return fmt.Errorf("map load failed: %w", session.Err())
			}

			regions := session.Regions()

			if detailIndex >= 0 {
				return printRegionPanel(cmd, cliCtx, session, detailIndex)
			}

			return printResult(cmd, cliCtx, regions, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d regions\n", len(regions))
				for i, region := range regions {
					fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-20s %s (marker %.5f, %.5f)\n",
						i, region.EmployeeName, region.RegionPath(), region.Marker.Lat, region.Marker.Lng)
				}
			})
		},
	}

	cmd.Flags().IntVar(&detailIndex, "details", -1, "open the drill-down panel for the region at this index")
	cmd.Flags().IntVar(&concurrency, "concurrency", 8, "parallel boundary fetches")
	cmd.Flags().IntVar(&sampleAttempts, "sample-attempts", geo.DefaultSampleAttempts, "marker rejection-sampling attempt cap per region")

	return cmd
}

func printRegionPanel(cmd *cobra.Command, cliCtx *CLIContext, session *mapview.Session, index int) error {
	if err := session.SelectMarker(index); err != nil {
		return err
	}
	panel, err := session.Panel()
	if err != nil {
		return err
	}

	if cliCtx.OutputFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(panel)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Employee:    %s\n", panel.EmployeeName)
	if panel.EmployeeParent != "" {
		fmt.Fprintf(out, "Reports to:  %s\n", panel.EmployeeParent)
	}
	fmt.Fprintf(out, "Area:        %s\n", panel.RegionPath)
	fmt.Fprintf(out, "Products:    %s\n", panel.Products)
	fmt.Fprintf(out, "Competitors: %s\n", panel.Competitors)
	fmt.Fprintf(out, "Retails:     %s\n", panel.Retails)
	for _, group := range panel.RetailGroups {
		fmt.Fprintf(out, "  - %s (%s)\n", group.RetailName, group.RetailAddress)
	}
	return nil
}
