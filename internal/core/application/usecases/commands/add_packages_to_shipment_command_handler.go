package commands

import (
	"context"
	"fmt"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/clock"
	"shiptrack/internal/pkg/errs"
)

// AddPackagesToShipmentCommandHandler binds packages to a mutable shipment, all or nothing.
//
// Ids already bound are ignored. Every other package must exist, be active and
// be pending; the first one that is not fails the unit and no binding, status
// or ledger row is written. When the shipment is in transit the new members
// move to in_transit immediately, otherwise they stay pending until the
// shipment itself moves.
type AddPackagesToShipmentCommandHandler struct {
	coordinator *Coordinator
	clock       clock.Clock
}

func NewAddPackagesToShipmentCommandHandler(coordinator *Coordinator, clk clock.Clock) AddPackagesToShipmentCommandHandler {
	return AddPackagesToShipmentCommandHandler{coordinator: coordinator, clock: clk}
}

// Handle returns the ids that were newly bound.
func (h AddPackagesToShipmentCommandHandler) Handle(
	ctx context.Context,
	cmd AddPackagesToShipmentCommand,
) ([]kernel.ID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var added []kernel.ID
	err := h.coordinator.Run(ctx, "add_packages_to_shipment", func(ctx context.Context, uow UoW) error {
		shipmentRepo := uow.ShipmentRepository()
		packageRepo := uow.PackageRepository()
		now := h.clock.Now()

		s, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
		if err != nil {
			return err
		}
		if err = s.EnsureMutable(); err != nil {
			return err
		}

		candidates := make([]kernel.ID, 0, len(cmd.PackageIDs()))
		for _, id := range cmd.PackageIDs() {
			if !s.Contains(id) {
				candidates = append(candidates, id)
			}
		}
		if len(candidates) == 0 {
			added = []kernel.ID{}
			return nil
		}

		packages, err := packageRepo.GetMany(ctx, candidates)
		if err != nil {
			return err
		}
		for _, p := range packages {
			if p.Status() != parcel.Pending {
				return errs.NewPreconditionFailedError(fmt.Sprintf("package %s is %s, not pending", p.ID(), p.Status()))
			}
		}

		added, err = s.Bind(now, candidates...)
		if err != nil {
			return err
		}

		if s.Status() == shipment.InTransit {
			for _, p := range packages {
				if err = p.TransitionTo(parcel.InTransit, addedComment(s.ID()), cmd.ActorID(), now); err != nil {
					return err
				}
			}
		}

		if err = shipmentRepo.Update(ctx, s); err != nil {
			return err
		}
		if s.Status() == shipment.InTransit {
			for _, p := range packages {
				if err = packageRepo.Update(ctx, p); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return added, nil
}
