package commands

import (
	"context"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/clock"
)

// DeleteShipmentCommandHandler soft-deletes a shipment that is not delivered.
// Every active member is reverted to pending with a ledger entry and all
// binding rows are removed in the same unit. A member that another live
// shipment carries loses the binding but keeps its status.
type DeleteShipmentCommandHandler struct {
	coordinator *Coordinator
	clock       clock.Clock
}

func NewDeleteShipmentCommandHandler(coordinator *Coordinator, clk clock.Clock) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{coordinator: coordinator, clock: clk}
}

func (h DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.coordinator.Run(ctx, "delete_shipment", func(ctx context.Context, uow UoW) error {
		shipmentRepo := uow.ShipmentRepository()
		packageRepo := uow.PackageRepository()
		now := h.clock.Now()

		s, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
		if err != nil {
			return err
		}

		released, err := s.Delete(now)
		if err != nil {
			return err
		}

		members, err := packageRepo.FindMany(ctx, released)
		if err != nil {
			return err
		}
		members, err = withoutLiveBindings(ctx, shipmentRepo, members, s.ID())
		if err != nil {
			return err
		}

		changed, err := releaseAll(members, deletedComment(s.ID()), cmd.ActorID(), now)
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

		return nil
	})
}

// releaseAll reverts packages to pending and returns the ones that changed.
func releaseAll(packages []*parcel.Package, comment string, actor *kernel.ID, at time.Time) ([]*parcel.Package, error) {
	changed := make([]*parcel.Package, 0, len(packages))
	for _, p := range packages {
		if p.Status() == parcel.Pending {
			continue
		}
		if err := p.Release(comment, actor, at); err != nil {
			return nil, err
		}
		changed = append(changed, p)
	}
	return changed, nil
}

// withoutLiveBindings drops the packages that are bound to a live shipment other than current.
// Pending packages are kept without a lookup since releasing them is a no-op.
func withoutLiveBindings(
	ctx context.Context,
	shipments ports.ShipmentRepository,
	packages []*parcel.Package,
	current kernel.ID,
) ([]*parcel.Package, error) {
	kept := make([]*parcel.Package, 0, len(packages))
	for _, p := range packages {
		if p.Status() != parcel.Pending {
			live, err := boundToLiveShipment(ctx, shipments, p.ID(), current)
			if err != nil {
				return nil, err
			}
			if live {
				continue
			}
		}
		kept = append(kept, p)
	}
	return kept, nil
}

// boundToLiveShipment reports whether an active shipment other than current binds
// packageID and has not reached a terminal status.
func boundToLiveShipment(ctx context.Context, shipments ports.ShipmentRepository, packageID, current kernel.ID) (bool, error) {
	bound, err := shipments.ListActiveByPackage(ctx, packageID)
	if err != nil {
		return false, err
	}
	for _, other := range bound {
		if !other.ID().IsEqual(current) && !other.Status().IsTerminal() {
			return true, nil
		}
	}
	return false, nil
}

func deletedComment(shipmentID kernel.ID) string {
	return "shipment " + shipmentID.String() + " deleted"
}
