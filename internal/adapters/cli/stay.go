package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	stayCommands "github.com/andrescamacho/containeryard-go/internal/application/stay/commands"
)

var (
	containerNumber string
	isoType         string
	cargoStatus     string
)

// NewStayCommand creates the stay command with subcommands
func NewStayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stay",
		Short: "Register container arrivals and exits",
		Long: `Record containers entering and leaving the yard.

Exiting releases the container's position and cancels its active work order.

Examples:
  yardctl stay arrive --container MSCU1234565 --iso 22G1 --cargo LADEN
  yardctl stay exit stay-MSCU1234565-1a2b3c4d`,
	}

	// Add subcommands
	cmd.AddCommand(newStayArriveCommand())
	cmd.AddCommand(newStayExitCommand())

	return cmd
}

func newStayArriveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arrive",
		Short: "Register a container arrival",
		Long: `Register a container stay. The size class comes from the first character of
the ISO type code (2 = 20ft, 4 = 40ft, L or 9 = 45ft).

Example:
  yardctl stay arrive --container MSCU1234565 --iso 45G1 --cargo EMPTY --stay stay-1001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *App) error {
				resp, err := mediator.SendTyped[*stayCommands.RegisterArrivalResponse](ctx, app.Mediator, &stayCommands.RegisterArrivalCommand{
					StayID:          stayID,
					ContainerNumber: containerNumber,
					ISOType:         isoType,
					Cargo:           cargoStatus,
				})
				if err != nil {
					return err
				}
				s := resp.Stay
				if outputJSON {
					return printJSON(s)
				}
				fmt.Println("✓ Arrival registered")
				fmt.Printf("  Stay:      %s\n", s.ID)
				fmt.Printf("  Container: %s (%s, %s)\n", s.ContainerNumber, s.ISOType, s.Size)
				fmt.Printf("  Cargo:     %s\n", s.Cargo)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&stayID, "stay", "", "Stay ID (default: generated)")
	cmd.Flags().StringVar(&containerNumber, "container", "", "Container number")
	cmd.Flags().StringVar(&isoType, "iso", "", "ISO 6346 type code, e.g. 22G1")
	cmd.Flags().StringVar(&cargoStatus, "cargo", "", "Cargo status: LADEN or EMPTY")
	_ = cmd.MarkFlagRequired("container")
	_ = cmd.MarkFlagRequired("iso")
	_ = cmd.MarkFlagRequired("cargo")

	return cmd
}

func newStayExitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exit <stay-id>",
		Short: "Record a container exit",
		Args:  cobra.ExactArgs(1),
		Long: `Record that a container left the yard. Its position is released and any
active work order is cancelled. A container stacked on top blocks the exit.

Example:
  yardctl stay exit stay-1001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *App) error {
				resp, err := mediator.SendTyped[*stayCommands.RecordExitResponse](ctx, app.Mediator, &stayCommands.RecordExitCommand{
					StayID: args[0],
				})
				if err != nil {
					return err
				}
				fmt.Printf("✓ Stay %s exited\n", resp.Stay.ID)
				if resp.ReleasedPosition != nil {
					fmt.Printf("  Released:  %s\n", resp.ReleasedPosition.Coordinate())
				}
				if resp.CancelledWorkOrder != nil {
					fmt.Printf("  Cancelled: work order %s\n", resp.CancelledWorkOrder.ID())
				}
				return nil
			})
		},
	}

	return cmd
}
