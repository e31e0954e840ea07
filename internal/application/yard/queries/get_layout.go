package queries

import (
	"context"
	"fmt"
	"sort"

	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

const (
	EntryPlaced  = "placed"
	EntryPending = "pending"
)

// GetLayoutQuery returns the yard contents, optionally filtered by zone and tier.
// Limit caps the number of entries; zone statistics always cover the whole yard.
type GetLayoutQuery struct {
	Zone  string
	Tier  int
	Limit int
}

// LayoutEntry is one coordinate of the layout. Pending entries are active
// work orders shown at their target coordinate.
type LayoutEntry struct {
	Coordinate      yard.Coordinate
	Status          string
	StayID          string
	ContainerNumber string
	Size            yard.SizeClass
	Cargo           yard.CargoStatus
	PositionID      int64
	AutoAssigned    bool
	WorkOrderID     string
}

type ZoneStats struct {
	Zone      string
	Capacity  int
	Occupied  int
	Pending   int
	Available int
}

type GetLayoutResponse struct {
	Entries []LayoutEntry
	Zones   []ZoneStats
}

type GetLayoutHandler struct {
	uow    common.UnitOfWork
	layout yard.Layout
}

func NewGetLayoutHandler(uow common.UnitOfWork, layout yard.Layout) *GetLayoutHandler {
	return &GetLayoutHandler{uow: uow, layout: layout}
}

func (h *GetLayoutHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetLayoutQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetLayoutQuery")
	}
	if query.Zone != "" && !h.layout.HasZone(query.Zone) {
		return nil, yard.NewInvalidZoneError(query.Zone, h.layout.Zones)
	}

	repos := h.uow.Repositories()

	slots, err := repos.Positions.ListSlots(ctx, yard.SlotFilter{Zone: query.Zone, Tier: query.Tier})
	if err != nil {
		return nil, fmt.Errorf("failed to load occupancy: %w", err)
	}

	entries := make([]LayoutEntry, 0, len(slots))
	placed := make(map[yard.Coordinate]bool, len(slots))
	for _, s := range slots {
		placed[s.Coordinate] = true
		entries = append(entries, LayoutEntry{
			Coordinate:      s.Coordinate,
			Status:          EntryPlaced,
			StayID:          s.StayID,
			ContainerNumber: s.ContainerNumber,
			Size:            s.Size,
			Cargo:           s.Cargo,
			PositionID:      s.PositionID,
			AutoAssigned:    s.AutoAssigned,
		})
	}

	pending, err := h.pendingEntries(ctx, repos, query, placed)
	if err != nil {
		return nil, err
	}
	entries = append(entries, pending...)

	sortEntries(entries, h.layout)
	if query.Limit > 0 && len(entries) > query.Limit {
		entries = entries[:query.Limit]
	}

	zones, err := zoneStats(ctx, repos, h.layout)
	if err != nil {
		return nil, err
	}

	return &GetLayoutResponse{Entries: entries, Zones: zones}, nil
}

// pendingEntries projects active work orders onto their targets. A real
// position at the same coordinate takes precedence.
func (h *GetLayoutHandler) pendingEntries(ctx context.Context, repos common.Repositories, query *GetLayoutQuery, placed map[yard.Coordinate]bool) ([]LayoutEntry, error) {
	orders, err := repos.WorkOrders.List(ctx, workorder.ListFilter{ActiveOnly: true, Zone: query.Zone})
	if err != nil {
		return nil, fmt.Errorf("failed to list active work orders: %w", err)
	}

	var visible []*workorder.WorkOrder
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		t := o.Target()
		if placed[t] || (query.Tier > 0 && t.Tier != query.Tier) {
			continue
		}
		visible = append(visible, o)
		ids = append(ids, o.StayID())
	}
	if len(visible) == 0 {
		return nil, nil
	}

	stays, err := repos.Stays.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load container stays: %w", err)
	}

	entries := make([]LayoutEntry, 0, len(visible))
	for _, o := range visible {
		entry := LayoutEntry{
			Coordinate:  o.Target(),
			Status:      EntryPending,
			StayID:      o.StayID(),
			WorkOrderID: o.ID(),
		}
		if s, ok := stays[o.StayID()]; ok {
			entry.ContainerNumber = s.ContainerNumber
			entry.Size = s.Size
			entry.Cargo = s.Cargo
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func zoneStats(ctx context.Context, repos common.Repositories, layout yard.Layout) ([]ZoneStats, error) {
	occupied, err := repos.Positions.CountByZone(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count positions: %w", err)
	}
	orders, err := repos.WorkOrders.List(ctx, workorder.ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list active work orders: %w", err)
	}
	pending := make(map[string]int)
	for _, o := range orders {
		pending[o.Target().Zone]++
	}

	capacity := layout.ZoneCapacity()
	stats := make([]ZoneStats, 0, len(layout.Zones))
	for _, zone := range layout.Zones {
		stats = append(stats, ZoneStats{
			Zone:      zone,
			Capacity:  capacity,
			Occupied:  occupied[zone],
			Pending:   pending[zone],
			Available: max(0, capacity-occupied[zone]),
		})
	}
	return stats, nil
}

// sortEntries orders by zone (layout order), row, bay, tier, sub-slot
func sortEntries(entries []LayoutEntry, layout yard.Layout) {
	zoneIndex := make(map[string]int, len(layout.Zones))
	for i, z := range layout.Zones {
		zoneIndex[z] = i
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].Coordinate, entries[j].Coordinate
		if a.Zone != b.Zone {
			return zoneIndex[a.Zone] < zoneIndex[b.Zone]
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		if a.Bay != b.Bay {
			return a.Bay < b.Bay
		}
		if a.Tier != b.Tier {
			return a.Tier < b.Tier
		}
		return a.SubSlot < b.SubSlot
	})
}
