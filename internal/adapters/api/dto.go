package api

import (
	"time"

	"github.com/andrescamacho/containeryard-go/internal/application/yard/queries"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// CoordinateInput accepts either the compact form or the individual fields
type CoordinateInput struct {
	Coordinate string `json:"coordinate" binding:"omitempty,coordinate"`
	Zone       string `json:"zone"`
	Row        int    `json:"row" binding:"omitempty,min=1"`
	Bay        int    `json:"bay" binding:"omitempty,min=1"`
	Tier       int    `json:"tier" binding:"omitempty,min=1"`
	SubSlot    string `json:"subSlot"`
}

// Resolve returns nil when no coordinate was given
func (in CoordinateInput) Resolve() (*yard.Coordinate, error) {
	if in.Coordinate != "" {
		c, err := yard.ParseCoordinate(in.Coordinate)
		if err != nil {
			return nil, err
		}
		return &c, nil
	}
	if in.Zone == "" && in.Row == 0 && in.Bay == 0 && in.Tier == 0 && in.SubSlot == "" {
		return nil, nil
	}
	if in.Zone == "" || in.Row == 0 || in.Bay == 0 || in.Tier == 0 || in.SubSlot == "" {
		return nil, shared.NewValidationError("coordinate", "zone, row, bay, tier and subSlot are all required")
	}
	return &yard.Coordinate{Zone: in.Zone, Row: in.Row, Bay: in.Bay, Tier: in.Tier, SubSlot: in.SubSlot}, nil
}

type SuggestRequest struct {
	ContainerStayID string `json:"containerStayId" binding:"required"`
	ZonePreference  string `json:"zonePreference"`
}

type AssignPositionRequest struct {
	ContainerStayID string `json:"containerStayId" binding:"required"`
	ZonePreference  string `json:"zonePreference"`
	CoordinateInput
}

type MovePositionRequest struct {
	CoordinateInput
}

type ArrivalRequest struct {
	StayID          string `json:"containerStayId"`
	ContainerNumber string `json:"containerNumber" binding:"required"`
	ISOType         string `json:"isoType" binding:"required"`
	Cargo           string `json:"cargoStatus" binding:"required"`
}

type CreateWorkOrderRequest struct {
	ContainerStayID string  `json:"containerStayId" binding:"required"`
	ZonePreference  string  `json:"zonePreference"`
	Priority        string  `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT low medium high urgent"`
	EquipmentID     *string `json:"equipmentId"`
	Notes           string  `json:"notes" binding:"max=1000"`
	CoordinateInput
}

type AssignVehicleRequest struct {
	EquipmentID string `json:"equipmentId" binding:"required"`
}

type CompleteWorkOrderRequest struct {
	EquipmentID *string `json:"equipmentId"`
	Operator    string  `json:"operator"`
}

type CancelWorkOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ListWorkOrdersRequest struct {
	EquipmentID      string `form:"equipmentId"`
	IncludeCompleted bool   `form:"includeCompleted"`
	Unassigned       bool   `form:"unassigned"`
	Zone             string `form:"zone"`
	Limit            int    `form:"limit" binding:"omitempty,min=1,max=500"`
}

type LayoutRequest struct {
	Zone  string `form:"zone"`
	Tier  int    `form:"tier" binding:"omitempty,min=1"`
	Limit int    `form:"limit" binding:"omitempty,min=1"`
}

type LimitRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// Responses

type CoordinateResponse struct {
	Coordinate string `json:"coordinate"`
	Zone       string `json:"zone"`
	Row        int    `json:"row"`
	Bay        int    `json:"bay"`
	Tier       int    `json:"tier"`
	SubSlot    string `json:"subSlot"`
}

func toCoordinate(c yard.Coordinate) CoordinateResponse {
	return CoordinateResponse{
		Coordinate: c.String(),
		Zone:       c.Zone,
		Row:        c.Row,
		Bay:        c.Bay,
		Tier:       c.Tier,
		SubSlot:    c.SubSlot,
	}
}

type SuggestionResponse struct {
	CoordinateResponse
	Reason       string   `json:"reason"`
	Alternatives []string `json:"alternatives"`
}

func toSuggestion(s yard.Suggestion) SuggestionResponse {
	alts := make([]string, len(s.Alternatives))
	for i, a := range s.Alternatives {
		alts[i] = a.String()
	}
	return SuggestionResponse{CoordinateResponse: toCoordinate(s.Coordinate), Reason: s.Reason, Alternatives: alts}
}

type PositionResponse struct {
	ID              int64  `json:"id"`
	ContainerStayID string `json:"containerStayId"`
	CoordinateResponse
	AutoAssigned bool      `json:"autoAssigned"`
	PlacedAt     time.Time `json:"placedAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toPosition(p *yard.Position) PositionResponse {
	return PositionResponse{
		ID:                 p.ID(),
		ContainerStayID:    p.StayID(),
		CoordinateResponse: toCoordinate(p.Coordinate()),
		AutoAssigned:       p.AutoAssigned(),
		PlacedAt:           p.PlacedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
}

type StayResponse struct {
	ID              string     `json:"id"`
	ContainerNumber string     `json:"containerNumber"`
	ISOType         string     `json:"isoType"`
	Size            string     `json:"size"`
	Cargo           string     `json:"cargoStatus"`
	ArrivedAt       time.Time  `json:"arrivedAt"`
	ExitedAt        *time.Time `json:"exitedAt,omitempty"`
	CurrentLocation string     `json:"currentLocation,omitempty"`
}

func toStay(s *yard.ContainerStay) StayResponse {
	return StayResponse{
		ID:              s.ID,
		ContainerNumber: s.ContainerNumber,
		ISOType:         s.ISOType,
		Size:            s.Size.String(),
		Cargo:           string(s.Cargo),
		ArrivedAt:       s.ArrivedAt,
		ExitedAt:        s.ExitedAt,
		CurrentLocation: s.CurrentLocation,
	}
}

type ExitResponse struct {
	Stay               StayResponse       `json:"stay"`
	ReleasedPosition   *PositionResponse  `json:"releasedPosition,omitempty"`
	CancelledWorkOrder *WorkOrderResponse `json:"cancelledWorkOrder,omitempty"`
}

type WorkOrderResponse struct {
	ID              string             `json:"id"`
	ContainerStayID string             `json:"containerStayId"`
	Target          CoordinateResponse `json:"target"`
	Priority        string             `json:"priority"`
	Status          string             `json:"status"`
	EquipmentID     *string            `json:"equipmentId,omitempty"`
	Notes           string             `json:"notes,omitempty"`
	Operator        string             `json:"operator,omitempty"`
	CancelReason    string             `json:"cancelReason,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	AssignedAt      *time.Time         `json:"assignedAt,omitempty"`
	CompletedAt     *time.Time         `json:"completedAt,omitempty"`
	CancelledAt     *time.Time         `json:"cancelledAt,omitempty"`
}

func toWorkOrder(w *workorder.WorkOrder) WorkOrderResponse {
	return WorkOrderResponse{
		ID:              w.ID(),
		ContainerStayID: w.StayID(),
		Target:          toCoordinate(w.Target()),
		Priority:        string(w.Priority()),
		Status:          string(w.Status()),
		EquipmentID:     w.EquipmentID(),
		Notes:           w.Notes(),
		Operator:        w.Operator(),
		CancelReason:    w.CancelReason(),
		CreatedAt:       w.CreatedAt(),
		UpdatedAt:       w.UpdatedAt(),
		AssignedAt:      w.AssignedAt(),
		CompletedAt:     w.CompletedAt(),
		CancelledAt:     w.CancelledAt(),
	}
}

func toWorkOrders(orders []*workorder.WorkOrder) []WorkOrderResponse {
	out := make([]WorkOrderResponse, len(orders))
	for i, o := range orders {
		out[i] = toWorkOrder(o)
	}
	return out
}

type CreateWorkOrderResponse struct {
	WorkOrderResponse
	Suggestion *SuggestionResponse `json:"suggestion,omitempty"`
}

type CompleteWorkOrderResponse struct {
	WorkOrder WorkOrderResponse `json:"workOrder"`
	Position  PositionResponse  `json:"position"`
}

type LayoutEntryResponse struct {
	CoordinateResponse
	Status          string `json:"status"`
	ContainerStayID string `json:"containerStayId"`
	ContainerNumber string `json:"containerNumber,omitempty"`
	Size            string `json:"size,omitempty"`
	Cargo           string `json:"cargoStatus,omitempty"`
	PositionID      int64  `json:"positionId,omitempty"`
	AutoAssigned    bool   `json:"autoAssigned,omitempty"`
	WorkOrderID     string `json:"workOrderId,omitempty"`
}

type ZoneStatsResponse struct {
	Zone      string `json:"zone"`
	Capacity  int    `json:"capacity"`
	Occupied  int    `json:"occupied"`
	Pending   int    `json:"pending"`
	Available int    `json:"available"`
}

type LayoutResponse struct {
	Entries []LayoutEntryResponse `json:"entries"`
	Zones   []ZoneStatsResponse   `json:"zones"`
}

func toZones(zones []queries.ZoneStats) []ZoneStatsResponse {
	out := make([]ZoneStatsResponse, len(zones))
	for i, z := range zones {
		out[i] = ZoneStatsResponse(z)
	}
	return out
}

func toLayout(resp *queries.GetLayoutResponse) LayoutResponse {
	entries := make([]LayoutEntryResponse, len(resp.Entries))
	for i, e := range resp.Entries {
		entry := LayoutEntryResponse{
			CoordinateResponse: toCoordinate(e.Coordinate),
			Status:             e.Status,
			ContainerStayID:    e.StayID,
			ContainerNumber:    e.ContainerNumber,
			Cargo:              string(e.Cargo),
			PositionID:         e.PositionID,
			AutoAssigned:       e.AutoAssigned,
			WorkOrderID:        e.WorkOrderID,
		}
		if e.Size.IsValid() {
			entry.Size = e.Size.String()
		}
		entries[i] = entry
	}
	return LayoutResponse{Entries: entries, Zones: toZones(resp.Zones)}
}

type StatisticsResponse struct {
	Capacity           int                 `json:"capacity"`
	Occupied           int                 `json:"occupied"`
	Available          int                 `json:"available"`
	PendingWorkOrders  int                 `json:"pendingWorkOrders"`
	UnplacedContainers int                 `json:"unplacedContainers"`
	Zones              []ZoneStatsResponse `json:"zones"`
}
