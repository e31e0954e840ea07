package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	placementCommands "github.com/andrescamacho/containeryard-go/internal/application/placement/commands"
	placementQueries "github.com/andrescamacho/containeryard-go/internal/application/placement/queries"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

var (
	stayID     string
	zoneFlag   string
	coordFlag  string
	positionTo string
)

// NewPositionCommand creates the position command with subcommands
func NewPositionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "position",
		Short: "Suggest, assign, move and remove container positions",
		Long: `Place containers in the yard directly, without a work order.

Coordinates use the form ZONE-Rrr-Bbb-Tt-S, e.g. A-R03-B05-T2-A.

Examples:
  yardctl position suggest --stay stay-1001
  yardctl position assign --stay stay-1001 --at A-R06-B01-T1-A
  yardctl position assign --stay stay-1001 --zone C
  yardctl position move 42 --to A-R07-B01-T1-A
  yardctl position remove 42`,
	}

	// Add subcommands
	cmd.AddCommand(newPositionSuggestCommand())
	cmd.AddCommand(newPositionAssignCommand())
	cmd.AddCommand(newPositionMoveCommand())
	cmd.AddCommand(newPositionRemoveCommand())

	return cmd
}

func newPositionSuggestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest a position for a container stay",
		Long: `Show the position the engine would choose for a stay, with up to three
alternatives. Nothing is reserved.

Example:
  yardctl position suggest --stay stay-1001 --zone B`,
		RunE: func(cmd *cobra.Command, args []string) error {
			zone := resolveDefault(zoneFlag, userPreferences().DefaultZone)

			return withApp(func(ctx context.Context, app *App) error {
				resp, err := mediator.SendTyped[*placementQueries.SuggestPositionResponse](ctx, app.Mediator, &placementQueries.SuggestPositionQuery{
					ContainerStayID: stayID,
					ZonePreference:  zone,
				})
				if err != nil {
					return err
				}
				if outputJSON {
					return printJSON(resp.Suggestion)
				}
				printSuggestion(resp.Suggestion)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&stayID, "stay", "", "Container stay ID")
	cmd.Flags().StringVar(&zoneFlag, "zone", "", "Zone preference (default from user config)")
	_ = cmd.MarkFlagRequired("stay")

	return cmd
}

func newPositionAssignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Place a container stay",
		Long: `Place a stay at the given coordinate, or at the suggested position when
--at is omitted.

Examples:
  yardctl position assign --stay stay-1001 --at A-R06-B01-T1-A
  yardctl position assign --stay stay-1001`,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := &placementCommands.AssignPositionCommand{
				ContainerStayID: stayID,
				ZonePreference:  resolveDefault(zoneFlag, userPreferences().DefaultZone),
			}
			if coordFlag != "" {
				at, err := yard.ParseCoordinate(coordFlag)
				if err != nil {
					return describeError(err)
				}
				command.Coordinate = &at
			}

			return withApp(func(ctx context.Context, app *App) error {
				resp, err := mediator.SendTyped[*placementCommands.AssignPositionResponse](ctx, app.Mediator, command)
				if err != nil {
					return err
				}
				return printPosition("✓ Container placed", resp.Position)
			})
		},
	}

	cmd.Flags().StringVar(&stayID, "stay", "", "Container stay ID")
	cmd.Flags().StringVar(&coordFlag, "at", "", "Target coordinate (default: suggested)")
	cmd.Flags().StringVar(&zoneFlag, "zone", "", "Zone preference when --at is omitted")
	_ = cmd.MarkFlagRequired("stay")

	return cmd
}

func newPositionMoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <position-id>",
		Short: "Move a placed container",
		Args:  cobra.ExactArgs(1),
		Long: `Move a position to a new coordinate. Every placement rule is checked at the
target; a container stacked on top blocks the move.

Example:
  yardctl position move 42 --to A-R07-B01-T1-A`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePositionID(args[0])
			if err != nil {
				return err
			}
			to, err := yard.ParseCoordinate(positionTo)
			if err != nil {
				return describeError(err)
			}

			return withApp(func(ctx context.Context, app *App) error {
				resp, err := mediator.SendTyped[*placementCommands.MoveContainerResponse](ctx, app.Mediator, &placementCommands.MoveContainerCommand{
					PositionID: id,
					To:         to,
				})
				if err != nil {
					return err
				}
				return printPosition("✓ Container moved", resp.Position)
			})
		},
	}

	cmd.Flags().StringVar(&positionTo, "to", "", "Target coordinate")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func newPositionRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <position-id>",
		Short: "Release a position",
		Args:  cobra.ExactArgs(1),
		Long: `Remove a container from its slot. A container stacked on top blocks removal.

Example:
  yardctl position remove 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePositionID(args[0])
			if err != nil {
				return err
			}

			return withApp(func(ctx context.Context, app *App) error {
				if _, err := app.Mediator.Send(ctx, &placementCommands.RemovePositionCommand{PositionID: id}); err != nil {
					return err
				}
				fmt.Printf("✓ Position %d released\n", id)
				return nil
			})
		},
	}

	return cmd
}

func parsePositionID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid position id %q", arg)
	}
	return id, nil
}

func printSuggestion(s yard.Suggestion) {
	fmt.Printf("Suggested:    %s\n", s.Coordinate)
	fmt.Printf("Reason:       %s\n", s.Reason)
	if len(s.Alternatives) == 0 {
		fmt.Println("Alternatives: (none)")
		return
	}
	alts := make([]string, len(s.Alternatives))
	for i, a := range s.Alternatives {
		alts[i] = a.String()
	}
	fmt.Printf("Alternatives: %s\n", strings.Join(alts, ", "))
}

func printPosition(title string, p *yard.Position) error {
	if outputJSON {
		return printJSON(map[string]interface{}{
			"id":              p.ID(),
			"containerStayId": p.StayID(),
			"coordinate":      p.Coordinate().String(),
			"autoAssigned":    p.AutoAssigned(),
		})
	}
	fmt.Println(title)
	fmt.Printf("  Position:   %d\n", p.ID())
	fmt.Printf("  Stay:       %s\n", p.StayID())
	fmt.Printf("  Coordinate: %s\n", p.Coordinate())
	if p.AutoAssigned() {
		fmt.Println("  Assigned:   automatically")
	}
	return nil
}
