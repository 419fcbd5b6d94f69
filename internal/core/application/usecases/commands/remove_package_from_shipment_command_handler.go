package commands

import (
	"context"

	"shiptrack/internal/pkg/clock"
)

// RemovePackageFromShipmentCommandHandler deletes one binding of a mutable
// shipment and reverts the package to pending. A ledger entry
// "removed from shipment <id>" is always written, even when the package was
// already pending. When another live shipment carries the package only the
// binding is removed.
type RemovePackageFromShipmentCommandHandler struct {
	coordinator *Coordinator
	clock       clock.Clock
}

func NewRemovePackageFromShipmentCommandHandler(
	coordinator *Coordinator,
	clk clock.Clock,
) RemovePackageFromShipmentCommandHandler {
	return RemovePackageFromShipmentCommandHandler{coordinator: coordinator, clock: clk}
}

func (h RemovePackageFromShipmentCommandHandler) Handle(ctx context.Context, cmd RemovePackageFromShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.coordinator.Run(ctx, "remove_package_from_shipment", func(ctx context.Context, uow UoW) error {
		shipmentRepo := uow.ShipmentRepository()
		packageRepo := uow.PackageRepository()
		now := h.clock.Now()

		s, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
		if err != nil {
			return err
		}

		if err = s.Unbind(cmd.PackageID(), now); err != nil {
			return err
		}

		live, err := boundToLiveShipment(ctx, shipmentRepo, cmd.PackageID(), s.ID())
		if err != nil {
			return err
		}
		if live {
			return shipmentRepo.Update(ctx, s)
		}

		p, err := packageRepo.Get(ctx, cmd.PackageID())
		if err != nil {
			return err
		}

		if err = p.Detach(removedComment(s.ID()), cmd.ActorID(), now); err != nil {
			return err
		}

		if err = shipmentRepo.Update(ctx, s); err != nil {
			return err
		}
		return packageRepo.Update(ctx, p)
	})
}
