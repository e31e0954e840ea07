package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	placementCommands "github.com/andrescamacho/containeryard-go/internal/application/placement/commands"
	stayCommands "github.com/andrescamacho/containeryard-go/internal/application/stay/commands"
	workOrderCommands "github.com/andrescamacho/containeryard-go/internal/application/workorder/commands"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

var seedFile string

// SeedFile is the fixture format loaded by "yardctl seed"
//
//	equipment:
//	  - {id: RS-01, name: Reach Stacker 1, type: REACH_STACKER, active: true}
//	stays:
//	  - {id: stay-1, container: MSCU1234565, iso_type: 22G1, cargo: LADEN, position: A-R06-B01-T1-A}
//	work_orders:
//	  - {stay: stay-2, priority: HIGH, equipment: RS-01}
type SeedFile struct {
	Equipment  []SeedEquipment `yaml:"equipment"`
	Stays      []SeedStay      `yaml:"stays"`
	WorkOrders []SeedWorkOrder `yaml:"work_orders"`
}

type SeedEquipment struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Active   *bool  `yaml:"active"`
	Operator string `yaml:"operator"`
}

type SeedStay struct {
	ID        string `yaml:"id"`
	Container string `yaml:"container"`
	ISOType   string `yaml:"iso_type"`
	Cargo     string `yaml:"cargo"`

	// Position places the stay directly; "auto" takes the engine's suggestion
	Position string `yaml:"position"`
}

type SeedWorkOrder struct {
	Stay      string `yaml:"stay"`
	Target    string `yaml:"target"`
	Zone      string `yaml:"zone"`
	Priority  string `yaml:"priority"`
	Equipment string `yaml:"equipment"`
	Notes     string `yaml:"notes"`
}

// SeedResult counts what a seed run created
type SeedResult struct {
	Equipment  int
	Stays      int
	Positions  int
	WorkOrders int
}

// ParseSeed decodes a fixture, rejecting unknown keys
func ParseSeed(r io.Reader) (*SeedFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var seed SeedFile
	if err := dec.Decode(&seed); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return &seed, nil
}

// ApplySeed loads equipment, then arrivals and placements, then work orders.
// Stays and orders go through the mediator so every rule applies; the first
// failure stops the run.
func ApplySeed(ctx context.Context, m mediator.Mediator, uow common.UnitOfWork, seed *SeedFile) (SeedResult, error) {
	var result SeedResult

	for _, e := range seed.Equipment {
		eq := &workorder.Equipment{
			ID:     e.ID,
			Name:   e.Name,
			Type:   workorder.EquipmentType(e.Type),
			Active: e.Active == nil || *e.Active,
		}
		if eq.Name == "" {
			eq.Name = e.ID
		}
		if e.Operator != "" {
			op := e.Operator
			eq.OperatorID = &op
		}
		if eq.ID == "" || !eq.Type.IsValid() {
			return result, fmt.Errorf("equipment %q: invalid id or type %q", e.ID, e.Type)
		}
		if err := uow.Repositories().Equipment.Upsert(ctx, eq); err != nil {
			return result, fmt.Errorf("equipment %s: %w", e.ID, err)
		}
		result.Equipment++
	}

	for _, s := range seed.Stays {
		resp, err := mediator.SendTyped[*stayCommands.RegisterArrivalResponse](ctx, m, &stayCommands.RegisterArrivalCommand{
			StayID:          s.ID,
			ContainerNumber: s.Container,
			ISOType:         s.ISOType,
			Cargo:           s.Cargo,
		})
		if err != nil {
			return result, fmt.Errorf("stay %s: %w", s.ID, err)
		}
		result.Stays++

		if s.Position == "" {
			continue
		}
		cmd := &placementCommands.AssignPositionCommand{ContainerStayID: resp.Stay.ID}
		if s.Position != "auto" {
			at, err := yard.ParseCoordinate(s.Position)
			if err != nil {
				return result, fmt.Errorf("stay %s: %w", s.ID, err)
			}
			cmd.Coordinate = &at
		}
		if _, err := m.Send(ctx, cmd); err != nil {
			return result, fmt.Errorf("stay %s at %s: %w", s.ID, s.Position, err)
		}
		result.Positions++
	}

	for _, w := range seed.WorkOrders {
		cmd := &workOrderCommands.CreateWorkOrderCommand{
			ContainerStayID: w.Stay,
			ZonePreference:  w.Zone,
			Priority:        w.Priority,
			Notes:           w.Notes,
		}
		if w.Target != "" {
			at, err := yard.ParseCoordinate(w.Target)
			if err != nil {
				return result, fmt.Errorf("work order for %s: %w", w.Stay, err)
			}
			cmd.Target = &at
		}
		if w.Equipment != "" {
			eq := w.Equipment
			cmd.EquipmentID = &eq
		}
		if _, err := m.Send(ctx, cmd); err != nil {
			return result, fmt.Errorf("work order for %s: %w", w.Stay, err)
		}
		result.WorkOrders++
	}

	return result, nil
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load equipment, stays, positions and work orders from YAML",
		Long: `Load a YAML fixture into the database, typically for development.

Equipment is upserted. Stays are registered as arrivals and, when a position
is given, placed through the placement rules ("auto" places at the suggested
position). Work orders are created last.

Example:
  yardctl seed --file fixtures/yard.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(seedFile)
			if err != nil {
				return fmt.Errorf("failed to open seed file: %w", err)
			}
			defer f.Close()

			seed, err := ParseSeed(f)
			if err != nil {
				return err
			}

			return withApp(func(ctx context.Context, app *App) error {
				result, err := ApplySeed(ctx, app.Mediator, app.UoW, seed)
				fmt.Printf("Equipment:   %d\n", result.Equipment)
				fmt.Printf("Stays:       %d\n", result.Stays)
				fmt.Printf("Positions:   %d\n", result.Positions)
				fmt.Printf("Work orders: %d\n", result.WorkOrders)
				return err
			})
		},
	}

	cmd.Flags().StringVarP(&seedFile, "file", "f", "", "Seed file (YAML)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
