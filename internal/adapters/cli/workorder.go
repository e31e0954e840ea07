package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	workOrderCommands "github.com/andrescamacho/containeryard-go/internal/application/workorder/commands"
	workOrderQueries "github.com/andrescamacho/containeryard-go/internal/application/workorder/queries"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

var (
	priorityFlag     string
	equipmentFlag    string
	notesFlag        string
	operatorFlag     string
	reasonFlag       string
	includeCompleted bool
	unassignedOnly   bool
	limitFlag        int
)

// NewWorkOrderCommand creates the workorder command with subcommands
func NewWorkOrderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workorder",
		Aliases: []string{"wo"},
		Short:   "Manage placement work orders",
		Long: `Manage work orders: the intended placement of a container, confirmed when
equipment completes the move.

Lifecycle: PENDING -> COMPLETED, or CANCELLED from any non-terminal status.
Assigning equipment keeps the order PENDING. ASSIGNED, ACCEPTED and
IN_PROGRESS are workflow states set with 'status'; an order in one of them
can only be cancelled. Completing an order places the container at its target.

Examples:
  yardctl workorder create --stay stay-1002 --priority HIGH
  yardctl workorder assign <id> --equipment RS-01
  yardctl workorder status <id> IN_PROGRESS
  yardctl workorder complete <id>
  yardctl workorder cancel <id> --reason "vessel delayed"
  yardctl workorder list --equipment RS-01`,
	}

	// Add subcommands
	cmd.AddCommand(newWorkOrderCreateCommand())
	cmd.AddCommand(newWorkOrderAssignCommand())
	cmd.AddCommand(newWorkOrderCompleteCommand())
	cmd.AddCommand(newWorkOrderCancelCommand())
	cmd.AddCommand(newWorkOrderStatusCommand())
	cmd.AddCommand(newWorkOrderListCommand())

	return cmd
}

func newWorkOrderCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a work order for a container stay",
		Long: `Create a work order. Without --target the engine's suggestion is used.

Examples:
  yardctl workorder create --stay stay-1002
  yardctl workorder create --stay stay-1002 --target B-R01-B03-T1-A --priority URGENT --equipment RS-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			command := &workOrderCommands.CreateWorkOrderCommand{
				ContainerStayID: stayID,
				ZonePreference:  resolveDefault(zoneFlag, userPreferences().DefaultZone),
				Priority:        priorityFlag,
				Notes:           notesFlag,
			}
			if coordFlag != "" {
				at, err := yard.ParseCoordinate(coordFlag)
				if err != nil {
					return describeError(err)
				}
				command.Target = &at
			}
			if equipmentFlag != "" {
				eq := equipmentFlag
				command.EquipmentID = &eq
			}

			return withApp(func(ctx context.Context, app *App) error {
				resp, err := mediator.SendTyped[*workOrderCommands.CreateWorkOrderResponse](ctx, app.Mediator, command)
				if err != nil {
					return err
				}
				if err := printWorkOrder("✓ Work order created", resp.WorkOrder); err != nil {
					return err
				}
				if resp.Suggestion != nil && !outputJSON {
					fmt.Printf("  Reason:    %s\n", resp.Suggestion.Reason)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&stayID, "stay", "", "Container stay ID")
	cmd.Flags().StringVar(&coordFlag, "target", "", "Target coordinate (default: suggested)")
	cmd.Flags().StringVar(&zoneFlag, "zone", "", "Zone preference when --target is omitted")
	cmd.Flags().StringVar(&priorityFlag, "priority", "", "LOW, MEDIUM, HIGH or URGENT (default MEDIUM)")
	cmd.Flags().StringVar(&equipmentFlag, "equipment", "", "Equipment ID")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("stay")

	return cmd
}

func newWorkOrderAssignCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <work-order-id>",
		Short: "Assign a pending work order to equipment",
		Args:  cobra.ExactArgs(1),
		Long: `Assign a PENDING work order to an active piece of equipment.

Example:
  yardctl workorder assign 0b6c... --equipment RS-01`,
		RunE: func(cmd *cobra.Command, args []string) error {
			equipment := resolveDefault(equipmentFlag, userPreferences().DefaultEquipmentID)
			if equipment == "" {
				return fmt.Errorf("no equipment specified: use --equipment or 'yardctl config set-defaults --equipment'")
			}

			return withApp(func(ctx context.Context, app *App) error {
				resp, err := mediator.SendTyped[*workOrderCommands.AssignToVehicleResponse](ctx, app.Mediator, &workOrderCommands.AssignToVehicleCommand{
					WorkOrderID: args[0],
					EquipmentID: equipment,
				})
				if err != nil {
					return err
				}
				return printWorkOrder("✓ Work order assigned", resp.WorkOrder)
			})
		},
	}

	cmd.Flags().StringVar(&equipmentFlag, "equipment", "", "Equipment ID (default from user config)")

	return cmd
}

func newWorkOrderCompleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <work-order-id>",
		Short: "Confirm a work order and place the container",
		Args:  cobra.ExactArgs(1),
		Long: `Complete a work order: the container is placed at the order's target in the
same transaction. If the target is no longer valid nothing changes.

Example:
  yardctl workorder complete 0b6c... --equipment RS-01 --operator j.silva`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs := userPreferences()
			command := &workOrderCommands.CompleteWorkOrderCommand{
				WorkOrderID: args[0],
				Operator:    resolveDefault(operatorFlag, prefs.DefaultOperator),
			}
			if eq := resolveDefault(equipmentFlag, prefs.DefaultEquipmentID); eq != "" {
				command.EquipmentID = &eq
			}

			return withApp(func(ctx context.Context, app *App) error {
				resp, err := mediator.SendTyped[*workOrderCommands.CompleteWorkOrderResponse](ctx, app.Mediator, command)
				if err != nil {
					return err
				}
				if err := printWorkOrder("✓ Work order completed", resp.WorkOrder); err != nil {
					return err
				}
				if !outputJSON {
					fmt.Printf("  Position:  %d\n", resp.Position.ID())
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&equipmentFlag, "equipment", "", "Equipment confirming the move (default from user config)")
	cmd.Flags().StringVar(&operatorFlag, "operator", "", "Operator (default from user config)")

	return cmd
}

func newWorkOrderCancelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel <work-order-id>",
		Short: "Cancel a work order",
		Args:  cobra.ExactArgs(1),
		Long: `Cancel a non-terminal work order. No container is moved.

Example:
  yardctl workorder cancel 0b6c... --reason "vessel delayed"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *App) error {
				resp, err := mediator.SendTyped[*workOrderCommands.CancelWorkOrderResponse](ctx, app.Mediator, &workOrderCommands.CancelWorkOrderCommand{
					WorkOrderID: args[0],
					Reason:      reasonFlag,
				})
				if err != nil {
					return err
				}
				return printWorkOrder("✓ Work order cancelled", resp.WorkOrder)
			})
		},
	}

	cmd.Flags().StringVar(&reasonFlag, "reason", "", "Cancellation reason")

	return cmd
}

func newWorkOrderStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <work-order-id> <ASSIGNED|ACCEPTED|IN_PROGRESS>",
		Short: "Report operator progress on a work order",
		Args:  cobra.ExactArgs(2),
		Long: `Move a work order to ASSIGNED, ACCEPTED or IN_PROGRESS. Use complete and
cancel for terminal transitions. Only a PENDING order can be completed.

Example:
  yardctl workorder status 0b6c... in_progress`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, app *App) error {
				resp, err := mediator.SendTyped[*workOrderCommands.UpdateWorkOrderStatusResponse](ctx, app.Mediator, &workOrderCommands.UpdateWorkOrderStatusCommand{
					WorkOrderID: args[0],
					Status:      args[1],
				})
				if err != nil {
					return err
				}
				return printWorkOrder(fmt.Sprintf("✓ Status %s -> %s", resp.Previous, resp.WorkOrder.Status()), resp.WorkOrder)
			})
		},
	}

	return cmd
}

func newWorkOrderListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work orders",
		Long: `List active work orders, highest priority first.

With --equipment only that equipment's orders are shown (--include-completed
adds finished ones). With --unassigned only pending orders without equipment.

Examples:
  yardctl workorder list
  yardctl workorder list --zone B
  yardctl workorder list --equipment RS-01 --include-completed
  yardctl workorder list --unassigned`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var query mediator.Request
			switch {
			case equipmentFlag != "":
				query = &workOrderQueries.ListByEquipmentQuery{EquipmentID: equipmentFlag, IncludeCompleted: includeCompleted, Limit: limitFlag}
			case unassignedOnly:
				query = &workOrderQueries.ListUnassignedQuery{Limit: limitFlag}
			default:
				query = &workOrderQueries.ListActiveQuery{Zone: zoneFlag, Limit: limitFlag}
			}

			return withApp(func(ctx context.Context, app *App) error {
				resp, err := mediator.SendTyped[*workOrderQueries.ListWorkOrdersResponse](ctx, app.Mediator, query)
				if err != nil {
					return err
				}
				if outputJSON {
					snapshots := make([]workorder.Snapshot, len(resp.WorkOrders))
					for i, w := range resp.WorkOrders {
						snapshots[i] = w.Snapshot()
					}
					return printJSON(snapshots)
				}
				if len(resp.WorkOrders) == 0 {
					fmt.Println("No work orders found")
					return nil
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tSTAY\tTARGET\tPRIORITY\tSTATUS\tEQUIPMENT\tCREATED")
				for _, o := range resp.WorkOrders {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
						o.ID(),
						o.StayID(),
						o.Target(),
						o.Priority(),
						o.Status(),
						equipmentLabel(o.EquipmentID()),
						o.CreatedAt().Format("2006-01-02 15:04"),
					)
				}
				if err := w.Flush(); err != nil {
					return err
				}
				fmt.Printf("\nTotal: %d work order(s)\n", len(resp.WorkOrders))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&equipmentFlag, "equipment", "", "Only orders assigned to this equipment")
	cmd.Flags().BoolVar(&includeCompleted, "include-completed", false, "Include completed orders (with --equipment)")
	cmd.Flags().BoolVar(&unassignedOnly, "unassigned", false, "Only pending orders without equipment")
	cmd.Flags().StringVar(&zoneFlag, "zone", "", "Only orders targeting this zone")
	cmd.Flags().IntVar(&limitFlag, "limit", 0, "Maximum number of orders")

	return cmd
}

func equipmentLabel(id *string) string {
	if id == nil {
		return "-"
	}
	return *id
}

func printWorkOrder(title string, w *workorder.WorkOrder) error {
	if outputJSON {
		return printJSON(w.Snapshot())
	}
	fmt.Println(title)
	fmt.Printf("  ID:        %s\n", w.ID())
	fmt.Printf("  Stay:      %s\n", w.StayID())
	fmt.Printf("  Target:    %s\n", w.Target())
	fmt.Printf("  Priority:  %s\n", w.Priority())
	fmt.Printf("  Status:    %s\n", w.Status())
	fmt.Printf("  Equipment: %s\n", equipmentLabel(w.EquipmentID()))
	return nil
}
