package commands

import (
	"context"
	"fmt"

	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/clock"
	"shiptrack/internal/pkg/errs"
)

// CommentShipmentCreated is the ledger comment written when a package founds a shipment.
const CommentShipmentCreated = "shipment created"

// CreateShipmentCommandHandler creates an in-transit shipment and moves its founding package to in_transit.
//
// The founding package must exist, be active and be pending; otherwise the
// unit fails with NOT_FOUND or PRECONDITION_FAILED and nothing is written.
type CreateShipmentCommandHandler struct {
	coordinator *Coordinator
	ids         ports.IDGenerator
	clock       clock.Clock
}

func NewCreateShipmentCommandHandler(
	coordinator *Coordinator,
	ids ports.IDGenerator,
	clk clock.Clock,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{coordinator: coordinator, ids: ids, clock: clk}
}

func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *shipment.Shipment
	err := h.coordinator.Run(ctx, "create_shipment", func(ctx context.Context, uow UoW) error {
		packageRepo := uow.PackageRepository()
		now := h.clock.Now()

		p, err := packageRepo.Get(ctx, cmd.FoundingPackageID())
		if err != nil {
			return err
		}
		if p.Status() != parcel.Pending {
			return errs.NewPreconditionFailedError(fmt.Sprintf("package %s is %s, not pending", p.ID(), p.Status()))
		}

		s, err := shipment.NewShipment(h.ids.NextID(), p.ID(), cmd.Route(), cmd.ETA(), now)
		if err != nil {
			return err
		}

		if err = p.TransitionTo(parcel.InTransit, CommentShipmentCreated, cmd.ActorID(), now); err != nil {
			return err
		}

		if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
			return err
		}
		if err = packageRepo.Update(ctx, p); err != nil {
			return err
		}

		result = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
