package setup

import (
	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/application/placement"
	placementCommands "github.com/andrescamacho/containeryard-go/internal/application/placement/commands"
	placementQueries "github.com/andrescamacho/containeryard-go/internal/application/placement/queries"
	stayCommands "github.com/andrescamacho/containeryard-go/internal/application/stay/commands"
	workOrderCommands "github.com/andrescamacho/containeryard-go/internal/application/workorder/commands"
	workOrderQueries "github.com/andrescamacho/containeryard-go/internal/application/workorder/queries"
	yardQueries "github.com/andrescamacho/containeryard-go/internal/application/yard/queries"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	uow       common.UnitOfWork
	layout    yard.Layout
	clock     shared.Clock
	publisher common.EventPublisher
	engine    *placement.Engine
}

// NewHandlerRegistry creates a new handler registry with required dependencies
func NewHandlerRegistry(
	uow common.UnitOfWork,
	layout yard.Layout,
	clock shared.Clock,
	publisher common.EventPublisher,
) *HandlerRegistry {
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		uow:       uow,
		layout:    layout,
		clock:     clock,
		publisher: publisher,
		engine:    placement.NewEngine(uow, layout, clock, publisher),
	}
}

// Engine exposes the placement engine shared by all handlers
func (r *HandlerRegistry) Engine() *placement.Engine {
	return r.engine
}

// RegisterPlacementHandlers registers suggest, assign, move and remove
func (r *HandlerRegistry) RegisterPlacementHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*placementQueries.SuggestPositionQuery](m,
		placementQueries.NewSuggestPositionHandler(r.engine)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*placementCommands.AssignPositionCommand](m,
		placementCommands.NewAssignPositionHandler(r.engine, r.uow, r.publisher)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*placementCommands.MoveContainerCommand](m,
		placementCommands.NewMoveContainerHandler(r.engine)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*placementCommands.RemovePositionCommand](m,
		placementCommands.NewRemovePositionHandler(r.engine))
}

// RegisterStayHandlers registers gate-in and gate-out
func (r *HandlerRegistry) RegisterStayHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*stayCommands.RegisterArrivalCommand](m,
		stayCommands.NewRegisterArrivalHandler(r.uow, r.clock, r.publisher)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*stayCommands.RecordExitCommand](m,
		stayCommands.NewRecordExitHandler(r.engine, r.uow, r.clock, r.publisher))
}

// RegisterWorkOrderHandlers registers the work order lifecycle commands and
// the list queries
func (r *HandlerRegistry) RegisterWorkOrderHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*workOrderCommands.CreateWorkOrderCommand](m,
		workOrderCommands.NewCreateWorkOrderHandler(r.engine, r.uow, r.clock, r.publisher)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*workOrderCommands.AssignToVehicleCommand](m,
		workOrderCommands.NewAssignToVehicleHandler(r.uow, r.clock, r.publisher)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*workOrderCommands.CompleteWorkOrderCommand](m,
		workOrderCommands.NewCompleteWorkOrderHandler(r.engine, r.uow, r.clock, r.publisher)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*workOrderCommands.CancelWorkOrderCommand](m,
		workOrderCommands.NewCancelWorkOrderHandler(r.uow, r.clock, r.publisher)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*workOrderCommands.UpdateWorkOrderStatusCommand](m,
		workOrderCommands.NewUpdateWorkOrderStatusHandler(r.uow, r.clock, r.publisher)); err != nil {
		return err
	}

	queryHandler := workOrderQueries.NewWorkOrderQueryHandler(r.uow)
	if err := mediator.RegisterHandler[*workOrderQueries.ListByEquipmentQuery](m, queryHandler); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*workOrderQueries.ListUnassignedQuery](m, queryHandler); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*workOrderQueries.ListActiveQuery](m, queryHandler); err != nil {
		return err
	}
	return mediator.RegisterHandler[*workOrderQueries.GetWorkOrderQuery](m, queryHandler)
}

// RegisterYardHandlers registers the read-only yard views
func (r *HandlerRegistry) RegisterYardHandlers(m mediator.Mediator) error {
	if err := mediator.RegisterHandler[*yardQueries.GetLayoutQuery](m,
		yardQueries.NewGetLayoutHandler(r.uow, r.layout)); err != nil {
		return err
	}
	if err := mediator.RegisterHandler[*yardQueries.GetUnplacedContainersQuery](m,
		yardQueries.NewGetUnplacedContainersHandler(r.uow)); err != nil {
		return err
	}
	return mediator.RegisterHandler[*yardQueries.GetStatisticsQuery](m,
		yardQueries.NewGetStatisticsHandler(r.uow, r.layout))
}

// CreateConfiguredMediator creates a mediator with every handler registered.
// Middleware is applied in the order given, the first being outermost.
func (r *HandlerRegistry) CreateConfiguredMediator(middleware ...mediator.Middleware) (mediator.Mediator, error) {
	m := mediator.NewMediator()
	for _, mw := range middleware {
		m.RegisterMiddleware(mw)
	}

	registrations := []func(mediator.Mediator) error{
		r.RegisterPlacementHandlers,
		r.RegisterStayHandlers,
		r.RegisterWorkOrderHandlers,
		r.RegisterYardHandlers,
	}
	for _, register := range registrations {
		if err := register(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}
