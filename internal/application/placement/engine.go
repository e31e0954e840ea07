package placement

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/containeryard-go/internal/adapters/metrics"
	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/application/logging"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// Engine implements the placement operations over the occupancy store.
//
// The *With methods run against repositories the caller already bound to a
// transaction, so they can be composed (work order completion assigns a
// position inside its own transaction). The plain methods open one
// transaction per call and publish events after commit.
type Engine struct {
	uow       common.UnitOfWork
	planner   *yard.Planner
	clock     shared.Clock
	publisher common.EventPublisher
}

func NewEngine(uow common.UnitOfWork, layout yard.Layout, clock shared.Clock, publisher common.EventPublisher) *Engine {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Engine{
		uow:       uow,
		planner:   yard.NewPlanner(layout),
		clock:     clock,
		publisher: publisher,
	}
}

func (e *Engine) Layout() yard.Layout {
	return e.planner.Layout()
}

// Suggest returns a deterministic suggestion for the current occupancy snapshot
func (e *Engine) Suggest(ctx context.Context, stayID, zonePreference string) (yard.Suggestion, error) {
	var suggestion yard.Suggestion
	err := e.uow.Do(ctx, func(ctx context.Context, repos common.Repositories) error {
		var err error
		suggestion, err = e.SuggestWith(ctx, repos, stayID, zonePreference)
		return err
	})
	return suggestion, err
}

// Assign validates and commits a position for the stay
func (e *Engine) Assign(ctx context.Context, stayID string, at yard.Coordinate, autoAssigned bool) (*yard.Position, error) {
	var position *yard.Position
	var events common.EventBuffer
	err := e.uow.Do(ctx, func(ctx context.Context, repos common.Repositories) error {
		var err error
		position, err = e.AssignWith(ctx, repos, &events, stayID, at, autoAssigned)
		return err
	})
	RecordOutcome("assign", err)
	if err != nil {
		return nil, err
	}
	events.Flush(ctx, e.publisher)
	return position, nil
}

// Move relocates an existing position after re-running every placement rule
func (e *Engine) Move(ctx context.Context, positionID int64, to yard.Coordinate) (*yard.Position, error) {
	var position *yard.Position
	var events common.EventBuffer
	err := e.uow.Do(ctx, func(ctx context.Context, repos common.Repositories) error {
		var err error
		position, err = e.MoveWith(ctx, repos, &events, positionID, to)
		return err
	})
	RecordOutcome("move", err)
	if err != nil {
		return nil, err
	}
	events.Flush(ctx, e.publisher)
	return position, nil
}

// Remove deletes a position and frees its coordinate
func (e *Engine) Remove(ctx context.Context, positionID int64) error {
	var events common.EventBuffer
	err := e.uow.Do(ctx, func(ctx context.Context, repos common.Repositories) error {
		_, err := e.RemoveWith(ctx, repos, &events, positionID)
		return err
	})
	RecordOutcome("remove", err)
	if err != nil {
		return err
	}
	events.Flush(ctx, e.publisher)
	return nil
}

// SuggestWith runs the consolidation-first search for the stay
func (e *Engine) SuggestWith(ctx context.Context, repos common.Repositories, stayID, zonePreference string) (yard.Suggestion, error) {
	return e.suggestWith(ctx, repos, stayID, zonePreference, nil)
}

// SuggestAvoidingWith is SuggestWith with soft exclusions, typically the
// targets of active work orders. See yard.Planner.SuggestAvoiding.
func (e *Engine) SuggestAvoidingWith(ctx context.Context, repos common.Repositories, stayID, zonePreference string, avoid []yard.Coordinate) (yard.Suggestion, error) {
	return e.suggestWith(ctx, repos, stayID, zonePreference, avoid)
}

func (e *Engine) suggestWith(ctx context.Context, repos common.Repositories, stayID, zonePreference string, avoid []yard.Coordinate) (yard.Suggestion, error) {
	stay, err := e.loadStay(ctx, repos, stayID, false)
	if err != nil {
		return yard.Suggestion{}, err
	}
	if err := e.ensureNotPlaced(ctx, repos, stayID); err != nil {
		return yard.Suggestion{}, err
	}

	slots, err := repos.Positions.ListSlots(ctx, yard.SlotFilter{Zone: zonePreference})
	if err != nil {
		return yard.Suggestion{}, fmt.Errorf("failed to load occupancy: %w", err)
	}

	suggestion, err := e.planner.SuggestAvoiding(stay, yard.NewOccupancy(slots), zonePreference, avoid)
	if err != nil {
		metrics.RecordSuggestion(zonePreference, 0, false)
		return yard.Suggestion{}, err
	}
	metrics.RecordSuggestion(suggestion.Coordinate.Zone, suggestion.Coordinate.Tier, true)

	logging.LoggerFromContext(ctx).Debug("position suggested",
		"container_stay_id", stayID,
		"coordinate", suggestion.Coordinate.String(),
		"alternatives", len(suggestion.Alternatives),
		"avoided", len(avoid),
	)
	return suggestion, nil
}

// AssignWith validates and inserts a position inside the caller's transaction
func (e *Engine) AssignWith(ctx context.Context, repos common.Repositories, events *common.EventBuffer, stayID string, at yard.Coordinate, autoAssigned bool) (*yard.Position, error) {
	layout := e.planner.Layout()
	if err := layout.ValidateCoordinate(at); err != nil {
		return nil, err
	}

	stay, err := e.loadStay(ctx, repos, stayID, true)
	if err != nil {
		return nil, err
	}
	if err := e.ensureNotPlaced(ctx, repos, stayID); err != nil {
		return nil, err
	}

	occ, err := lockStacks(ctx, repos, at.Stack())
	if err != nil {
		return nil, err
	}
	if err := layout.CheckPlacement(stay, at, occ); err != nil {
		return nil, err
	}

	position := yard.NewPosition(stayID, at, autoAssigned, e.clock)
	if err := repos.Positions.Create(ctx, position); err != nil {
		return nil, err
	}
	if err := repos.Stays.UpdateCurrentLocation(ctx, stayID, at.String()); err != nil {
		return nil, fmt.Errorf("failed to update current location: %w", err)
	}

	events.Record(yard.NewPositionAssigned(position, e.clock.Now()))
	logging.LoggerFromContext(ctx).Info("position assigned",
		"position_id", position.ID(),
		"container_stay_id", stayID,
		"coordinate", at.String(),
		"auto_assigned", autoAssigned,
	)
	return position, nil
}

// MoveWith relocates a position inside the caller's transaction. The position's
// own slot is excluded from the occupancy used to validate the new coordinate.
func (e *Engine) MoveWith(ctx context.Context, repos common.Repositories, events *common.EventBuffer, positionID int64, to yard.Coordinate) (*yard.Position, error) {
	layout := e.planner.Layout()

	position, err := e.loadPosition(ctx, repos, positionID)
	if err != nil {
		return nil, err
	}
	if err := layout.ValidateCoordinate(to); err != nil {
		return nil, err
	}

	stay, err := e.loadStay(ctx, repos, position.StayID(), true)
	if err != nil {
		return nil, err
	}

	from := position.Coordinate()
	occ, err := lockStacks(ctx, repos, from.Stack(), to.Stack())
	if err != nil {
		return nil, err
	}
	if occ.HasAbove(from) {
		return nil, yard.NewContainerBlockedError(from)
	}
	if from == to {
		return position, nil
	}
	if err := layout.CheckPlacement(stay, to, occ.Excluding(position.ID())); err != nil {
		return nil, err
	}

	position.MoveTo(to)
	if err := repos.Positions.Update(ctx, position); err != nil {
		return nil, err
	}
	if err := repos.Stays.UpdateCurrentLocation(ctx, stay.ID, to.String()); err != nil {
		return nil, fmt.Errorf("failed to update current location: %w", err)
	}

	events.Record(yard.NewContainerMoved(position, from, e.clock.Now()))
	logging.LoggerFromContext(ctx).Info("container moved",
		"position_id", position.ID(),
		"container_stay_id", stay.ID,
		"from", from.String(),
		"to", to.String(),
	)
	return position, nil
}

// RemoveWith deletes a position inside the caller's transaction and returns it
func (e *Engine) RemoveWith(ctx context.Context, repos common.Repositories, events *common.EventBuffer, positionID int64) (*yard.Position, error) {
	position, err := e.loadPosition(ctx, repos, positionID)
	if err != nil {
		return nil, err
	}

	at := position.Coordinate()
	occ, err := lockStacks(ctx, repos, at.Stack())
	if err != nil {
		return nil, err
	}
	if occ.HasAbove(at) {
		return nil, yard.NewContainerBlockedError(at)
	}

	if err := repos.Stays.UpdateCurrentLocation(ctx, position.StayID(), ""); err != nil {
		return nil, fmt.Errorf("failed to clear current location: %w", err)
	}
	if err := repos.Positions.Delete(ctx, positionID); err != nil {
		return nil, fmt.Errorf("failed to delete position %d: %w", positionID, err)
	}

	events.Record(yard.NewPositionReleased(position, e.clock.Now()))
	logging.LoggerFromContext(ctx).Info("position released",
		"position_id", positionID,
		"container_stay_id", position.StayID(),
		"coordinate", at.String(),
	)
	return position, nil
}

func (e *Engine) loadStay(ctx context.Context, repos common.Repositories, stayID string, lock bool) (*yard.ContainerStay, error) {
	var (
		stay *yard.ContainerStay
		err  error
	)
	if lock {
		stay, err = repos.Stays.LockByID(ctx, stayID)
	} else {
		stay, err = repos.Stays.FindByID(ctx, stayID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load container stay %s: %w", stayID, err)
	}
	if stay == nil {
		return nil, yard.NewContainerStayNotFoundError(stayID)
	}
	if stay.HasExited() {
		return nil, yard.NewContainerExitedError(stayID)
	}
	return stay, nil
}

func (e *Engine) ensureNotPlaced(ctx context.Context, repos common.Repositories, stayID string) error {
	existing, err := repos.Positions.FindByStay(ctx, stayID)
	if err != nil {
		return fmt.Errorf("failed to load position of stay %s: %w", stayID, err)
	}
	if existing != nil {
		return yard.NewContainerAlreadyPlacedError(stayID, existing.Coordinate())
	}
	return nil
}

func (e *Engine) loadPosition(ctx context.Context, repos common.Repositories, positionID int64) (*yard.Position, error) {
	position, err := repos.Positions.FindByID(ctx, positionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load position %d: %w", positionID, err)
	}
	if position == nil {
		return nil, yard.NewPositionNotFoundError(positionID)
	}
	return position, nil
}

// lockStacks locks the given stacks in a fixed order so concurrent moves
// between the same two stacks cannot deadlock, and merges their slots.
func lockStacks(ctx context.Context, repos common.Repositories, stacks ...yard.StackKey) (yard.Occupancy, error) {
	unique := make([]yard.StackKey, 0, len(stacks))
	seen := make(map[yard.StackKey]bool, len(stacks))
	for _, s := range stacks {
		if !seen[s] {
			seen[s] = true
			unique = append(unique, s)
		}
	}
	sort.Slice(unique, func(i, j int) bool {
		return stackLess(unique[i], unique[j])
	})

	var slots []yard.OccupiedSlot
	for _, s := range unique {
		stackSlots, err := repos.Positions.LockStack(ctx, s)
		if err != nil {
			return yard.Occupancy{}, fmt.Errorf("failed to lock stack %s: %w", s.At(1), err)
		}
		slots = append(slots, stackSlots...)
	}
	return yard.NewOccupancy(slots), nil
}

func stackLess(a, b yard.StackKey) bool {
	if a.Zone != b.Zone {
		return a.Zone < b.Zone
	}
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	if a.Bay != b.Bay {
		return a.Bay < b.Bay
	}
	return a.SubSlot < b.SubSlot
}

// RecordOutcome records a placement operation result as "success" or its error code
func RecordOutcome(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = shared.CodeOf(err)
		if outcome == "" {
			outcome = "internal_error"
		}
	}
	metrics.RecordPlacement(operation, outcome)
}
