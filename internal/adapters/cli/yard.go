package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	yardQueries "github.com/andrescamacho/containeryard-go/internal/application/yard/queries"
)

var (
	tierFlag  int
	useColors bool
)

// NewYardCommand creates the yard command with subcommands
func NewYardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "yard",
		Short: "Inspect yard occupancy",
		Long: `Read-only views of the yard: layout grids, containers waiting for a slot and
occupancy statistics.

Examples:
  yardctl yard layout --zone A --tier 1
  yardctl yard unplaced
  yardctl yard stats`,
	}

	// Add subcommands
	cmd.AddCommand(newYardLayoutCommand())
	cmd.AddCommand(newYardUnplacedCommand())
	cmd.AddCommand(newYardStatsCommand())

	return cmd
}

func newYardLayoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the layout grid of a tier",
		Long: `Render one tier of each zone (or only --zone) as a grid of rows and bays.
Each bay shows sub-slot A then B; pending work order targets are marked +.

Examples:
  yardctl yard layout --tier 2
  yardctl yard layout --zone C --color`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *App) error {
				resp, err := mediator.SendTyped[*yardQueries.GetLayoutResponse](ctx, app.Mediator, &yardQueries.GetLayoutQuery{
					Zone: zoneFlag,
					Tier: tierFlag,
				})
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(resp)
				}

				zones := app.Layout.Zones
				if zoneFlag != "" {
					zones = []string{zoneFlag}
				}
				formatter := NewLayoutFormatter(useColors)
				for _, zone := range zones {
					fmt.Println(formatter.FormatTier(app.Layout, zone, tierFlag, resp.Entries))
				}
				fmt.Print(formatter.FormatZoneSummary(resp.Zones))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&zoneFlag, "zone", "", "Only this zone")
	cmd.Flags().IntVar(&tierFlag, "tier", 1, "Tier to render")
	cmd.Flags().BoolVar(&useColors, "color", false, "Colorize the grid")

	return cmd
}

func newYardUnplacedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unplaced",
		Short: "List containers waiting for a position",
		Long: `List stays on the yard that have neither a position nor an active work order,
oldest arrival first.

Example:
  yardctl yard unplaced --limit 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *App) error {
				resp, err := mediator.SendTyped[*yardQueries.GetUnplacedContainersResponse](ctx, app.Mediator, &yardQueries.GetUnplacedContainersQuery{
					Limit: limitFlag,
				})
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(resp.Stays)
				}
				if len(resp.Stays) == 0 {
					fmt.Println("No unplaced containers")
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "STAY\tCONTAINER\tISO\tSIZE\tCARGO\tARRIVED")
				for _, s := range resp.Stays {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
						s.ID, s.ContainerNumber, s.ISOType, s.Size, s.Cargo, s.ArrivedAt.Format("2006-01-02 15:04"))
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Printf("\nTotal: %d container(s)\n", len(resp.Stays))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&limitFlag, "limit", 0, "Maximum number of stays")

	return cmd
}

func newYardStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show yard occupancy statistics",
		Long: `Show capacity, occupancy and pending work per zone and for the whole yard.

Example:
  yardctl yard stats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *App) error {
				resp, err := mediator.SendTyped[*yardQueries.GetStatisticsResponse](ctx, app.Mediator, &yardQueries.GetStatisticsQuery{})
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(resp)
				}

				fmt.Print(NewLayoutFormatter(false).FormatZoneSummary(resp.Zones))
				fmt.Printf("Available:           %d\n", resp.Available)
				fmt.Printf("Pending work orders: %d\n", resp.PendingWorkOrders)
				fmt.Printf("Unplaced containers: %d\n", resp.UnplacedContainers)
				return nil
			})
		},
	}

	return cmd
}
