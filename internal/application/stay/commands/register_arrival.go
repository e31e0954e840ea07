package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/application/logging"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
	"github.com/andrescamacho/containeryard-go/pkg/utils"
)

// RegisterArrivalCommand records a container entering the yard.
// StayID is optional; one is generated when empty.
type RegisterArrivalCommand struct {
	StayID          string
	ContainerNumber string
	ISOType         string
	Cargo           string
}

type RegisterArrivalResponse struct {
	Stay *yard.ContainerStay
}

type RegisterArrivalHandler struct {
	uow       common.UnitOfWork
	clock     shared.Clock
	publisher common.EventPublisher
}

func NewRegisterArrivalHandler(uow common.UnitOfWork, clock shared.Clock, publisher common.EventPublisher) *RegisterArrivalHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RegisterArrivalHandler{uow: uow, clock: clock, publisher: publisher}
}

func (h *RegisterArrivalHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RegisterArrivalCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RegisterArrivalCommand")
	}

	number := strings.ToUpper(strings.TrimSpace(cmd.ContainerNumber))
	if number == "" {
		return nil, shared.NewValidationError("containerNumber", "container number is required")
	}

	cargo, err := yard.ParseCargoStatus(cmd.Cargo)
	if err != nil {
		return nil, err
	}

	stayID := cmd.StayID
	if stayID == "" {
		stayID = utils.GenerateStayID(number)
	}

	stay, err := yard.NewContainerStay(stayID, number, strings.ToUpper(strings.TrimSpace(cmd.ISOType)), cargo, h.clock.Now())
	if err != nil {
		return nil, err
	}

	err = h.uow.Do(ctx, func(ctx context.Context, repos common.Repositories) error {
		return repos.Stays.Create(ctx, stay)
	})
	if err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Info("container arrived",
		"container_stay_id", stay.ID,
		"container_number", stay.ContainerNumber,
		"size", int(stay.Size),
		"cargo", string(stay.Cargo),
	)
	common.PublishBestEffort(ctx, h.publisher, yard.NewContainerArrived(stay, h.clock.Now()))
	return &RegisterArrivalResponse{Stay: stay}, nil
}
