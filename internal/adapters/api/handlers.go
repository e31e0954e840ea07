package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	placementCommands "github.com/andrescamacho/containeryard-go/internal/application/placement/commands"
	placementQueries "github.com/andrescamacho/containeryard-go/internal/application/placement/queries"
	stayCommands "github.com/andrescamacho/containeryard-go/internal/application/stay/commands"
	workOrderCommands "github.com/andrescamacho/containeryard-go/internal/application/workorder/commands"
	workOrderQueries "github.com/andrescamacho/containeryard-go/internal/application/workorder/queries"
	yardQueries "github.com/andrescamacho/containeryard-go/internal/application/yard/queries"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
)

// Handlers adapts HTTP requests to mediator commands and queries
type Handlers struct {
	mediator mediator.Mediator
}

func NewHandlers(m mediator.Mediator) *Handlers {
	return &Handlers{mediator: m}
}

func positionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, shared.NewValidationError("id", "position id must be a positive integer"))
		return 0, false
	}
	return id, true
}

// Positions

func (h *Handlers) SuggestPosition(c *gin.Context) {
	var req SuggestRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := mediator.SendTyped[*placementQueries.SuggestPositionResponse](c.Request.Context(), h.mediator, &placementQueries.SuggestPositionQuery{
		ContainerStayID: req.ContainerStayID,
		ZonePreference:  req.ZonePreference,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSuggestion(resp.Suggestion))
}

func (h *Handlers) AssignPosition(c *gin.Context) {
	var req AssignPositionRequest
	if !bindJSON(c, &req) {
		return
	}
	coord, err := req.Resolve()
	if err != nil {
		RespondError(c, err)
		return
	}

	resp, err := mediator.SendTyped[*placementCommands.AssignPositionResponse](c.Request.Context(), h.mediator, &placementCommands.AssignPositionCommand{
		ContainerStayID: req.ContainerStayID,
		Coordinate:      coord,
		ZonePreference:  req.ZonePreference,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPosition(resp.Position))
}

func (h *Handlers) MovePosition(c *gin.Context) {
	id, ok := positionID(c)
	if !ok {
		return
	}
	var req MovePositionRequest
	if !bindJSON(c, &req) {
		return
	}
	to, err := req.Resolve()
	if err != nil {
		RespondError(c, err)
		return
	}
	if to == nil {
		RespondError(c, shared.NewValidationError("coordinate", "target coordinate is required"))
		return
	}

	resp, err := mediator.SendTyped[*placementCommands.MoveContainerResponse](c.Request.Context(), h.mediator, &placementCommands.MoveContainerCommand{
		PositionID: id,
		To:         *to,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPosition(resp.Position))
}

func (h *Handlers) RemovePosition(c *gin.Context) {
	id, ok := positionID(c)
	if !ok {
		return
	}
	if _, err := h.mediator.Send(c.Request.Context(), &placementCommands.RemovePositionCommand{PositionID: id}); err != nil {
		RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Stays

func (h *Handlers) RegisterArrival(c *gin.Context) {
	var req ArrivalRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := mediator.SendTyped[*stayCommands.RegisterArrivalResponse](c.Request.Context(), h.mediator, &stayCommands.RegisterArrivalCommand{
		StayID:          req.StayID,
		ContainerNumber: req.ContainerNumber,
		ISOType:         req.ISOType,
		Cargo:           req.Cargo,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toStay(resp.Stay))
}

func (h *Handlers) RecordExit(c *gin.Context) {
	resp, err := mediator.SendTyped[*stayCommands.RecordExitResponse](c.Request.Context(), h.mediator, &stayCommands.RecordExitCommand{
		StayID: c.Param("id"),
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	out := ExitResponse{Stay: toStay(resp.Stay)}
	if resp.ReleasedPosition != nil {
		p := toPosition(resp.ReleasedPosition)
		out.ReleasedPosition = &p
	}
	if resp.CancelledWorkOrder != nil {
		w := toWorkOrder(resp.CancelledWorkOrder)
		out.CancelledWorkOrder = &w
	}
	c.JSON(http.StatusOK, out)
}

// Work orders

func (h *Handlers) CreateWorkOrder(c *gin.Context) {
	var req CreateWorkOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	target, err := req.Resolve()
	if err != nil {
		RespondError(c, err)
		return
	}

	resp, err := mediator.SendTyped[*workOrderCommands.CreateWorkOrderResponse](c.Request.Context(), h.mediator, &workOrderCommands.CreateWorkOrderCommand{
		ContainerStayID: req.ContainerStayID,
		Target:          target,
		ZonePreference:  req.ZonePreference,
		Priority:        req.Priority,
		EquipmentID:     req.EquipmentID,
		Notes:           req.Notes,
	})
	if err != nil {
		RespondError(c, err)
		return
	}

	out := CreateWorkOrderResponse{WorkOrderResponse: toWorkOrder(resp.WorkOrder)}
	if resp.Suggestion != nil {
		s := toSuggestion(*resp.Suggestion)
		out.Suggestion = &s
	}
	c.JSON(http.StatusCreated, out)
}

func (h *Handlers) GetWorkOrder(c *gin.Context) {
	resp, err := mediator.SendTyped[*workOrderQueries.GetWorkOrderResponse](c.Request.Context(), h.mediator, &workOrderQueries.GetWorkOrderQuery{
		WorkOrderID: c.Param("id"),
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWorkOrder(resp.WorkOrder))
}

func (h *Handlers) AssignWorkOrder(c *gin.Context) {
	var req AssignVehicleRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := mediator.SendTyped[*workOrderCommands.AssignToVehicleResponse](c.Request.Context(), h.mediator, &workOrderCommands.AssignToVehicleCommand{
		WorkOrderID: c.Param("id"),
		EquipmentID: req.EquipmentID,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWorkOrder(resp.WorkOrder))
}

func (h *Handlers) CompleteWorkOrder(c *gin.Context) {
	var req CompleteWorkOrderRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	resp, err := mediator.SendTyped[*workOrderCommands.CompleteWorkOrderResponse](c.Request.Context(), h.mediator, &workOrderCommands.CompleteWorkOrderCommand{
		WorkOrderID: c.Param("id"),
		EquipmentID: req.EquipmentID,
		Operator:    req.Operator,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, CompleteWorkOrderResponse{
		WorkOrder: toWorkOrder(resp.WorkOrder),
		Position:  toPosition(resp.Position),
	})
}

func (h *Handlers) CancelWorkOrder(c *gin.Context) {
	var req CancelWorkOrderRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	resp, err := mediator.SendTyped[*workOrderCommands.CancelWorkOrderResponse](c.Request.Context(), h.mediator, &workOrderCommands.CancelWorkOrderCommand{
		WorkOrderID: c.Param("id"),
		Reason:      req.Reason,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWorkOrder(resp.WorkOrder))
}

func (h *Handlers) UpdateWorkOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := mediator.SendTyped[*workOrderCommands.UpdateWorkOrderStatusResponse](c.Request.Context(), h.mediator, &workOrderCommands.UpdateWorkOrderStatusCommand{
		WorkOrderID: c.Param("id"),
		Status:      req.Status,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toWorkOrder(resp.WorkOrder))
}

// ListWorkOrders picks the query from the filters: equipmentId, then
// unassigned, otherwise every active order
func (h *Handlers) ListWorkOrders(c *gin.Context) {
	var req ListWorkOrdersRequest
	if !bindQuery(c, &req) {
		return
	}

	var query mediator.Request
	switch {
	case req.EquipmentID != "":
		query = &workOrderQueries.ListByEquipmentQuery{EquipmentID: req.EquipmentID, IncludeCompleted: req.IncludeCompleted, Limit: req.Limit}
	case req.Unassigned:
		query = &workOrderQueries.ListUnassignedQuery{Limit: req.Limit}
	default:
		query = &workOrderQueries.ListActiveQuery{Zone: req.Zone, Limit: req.Limit}
	}

	resp, err := mediator.SendTyped[*workOrderQueries.ListWorkOrdersResponse](c.Request.Context(), h.mediator, query)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"workOrders": toWorkOrders(resp.WorkOrders), "total": len(resp.WorkOrders)})
}

// Yard views

func (h *Handlers) GetLayout(c *gin.Context) {
	var req LayoutRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := mediator.SendTyped[*yardQueries.GetLayoutResponse](c.Request.Context(), h.mediator, &yardQueries.GetLayoutQuery{
		Zone:  req.Zone,
		Tier:  req.Tier,
		Limit: req.Limit,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toLayout(resp))
}

func (h *Handlers) GetUnplaced(c *gin.Context) {
	var req LimitRequest
	if !bindQuery(c, &req) {
		return
	}

	resp, err := mediator.SendTyped[*yardQueries.GetUnplacedContainersResponse](c.Request.Context(), h.mediator, &yardQueries.GetUnplacedContainersQuery{
		Limit: req.Limit,
	})
	if err != nil {
		RespondError(c, err)
		return
	}
	stays := make([]StayResponse, len(resp.Stays))
	for i, s := range resp.Stays {
		stays[i] = toStay(s)
	}
	c.JSON(http.StatusOK, gin.H{"stays": stays, "total": len(stays)})
}

func (h *Handlers) GetStatistics(c *gin.Context) {
	resp, err := mediator.SendTyped[*yardQueries.GetStatisticsResponse](c.Request.Context(), h.mediator, &yardQueries.GetStatisticsQuery{})
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StatisticsResponse{
		Capacity:           resp.Capacity,
		Occupied:           resp.Occupied,
		Available:          resp.Available,
		PendingWorkOrders:  resp.PendingWorkOrders,
		UnplacedContainers: resp.UnplacedContainers,
		Zones:              toZones(resp.Zones),
	})
}
