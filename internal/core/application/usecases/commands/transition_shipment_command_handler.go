package commands

import (
	"context"

	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/core/domain/services"
	"shiptrack/internal/pkg/clock"
)

// TransitionShipmentCommandHandler changes a shipment status and cascades the
// change to every member package.
//
// The shipment row is locked first, then the member packages in id order. The
// shipment update, every package update and every ledger entry commit as one
// unit; if any member cannot make the derived move the whole transition fails
// with INVALID_TRANSITION and the shipment keeps its status.
type TransitionShipmentCommandHandler struct {
	coordinator *Coordinator
	cascade     services.ShipmentCascade
	clock       clock.Clock
}

func NewTransitionShipmentCommandHandler(
	coordinator *Coordinator,
	cascade services.ShipmentCascade,
	clk clock.Clock,
) TransitionShipmentCommandHandler {
	return TransitionShipmentCommandHandler{coordinator: coordinator, cascade: cascade, clock: clk}
}

func (h TransitionShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionShipmentCommand,
) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *shipment.Shipment
	err := h.coordinator.Run(ctx, "transition_shipment", func(ctx context.Context, uow UoW) error {
		shipmentRepo := uow.ShipmentRepository()
		packageRepo := uow.PackageRepository()
		now := h.clock.Now()

		s, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
		if err != nil {
			return err
		}

		if err = s.TransitionTo(cmd.Status(), now); err != nil {
			return err
		}

		members, err := packageRepo.GetMany(ctx, s.Members())
		if err != nil {
			return err
		}

		changed, err := h.cascade.Apply(cmd.Status(), members, cmd.Comment(), cmd.ActorID(), now)
		if err != nil {
			return err
		}

		if err = shipmentRepo.Update(ctx, s); err != nil {
			return err
		}
		for _, p := range changed {
			if err = packageRepo.Update(ctx, p); err != nil {
				return err
			}
		}

		result = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
