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

// UpdateShipmentCommandHandler applies a ShipmentPatch.
//
// When a different founding package is given, the previous founding package is
// unbound and reverted to pending, and the new one, which must be pending, moves
// to in_transit. Both changes are recorded in the ledger and commit together
// with the route and ETA update.
type UpdateShipmentCommandHandler struct {
	coordinator *Coordinator
	clock       clock.Clock
}

func NewUpdateShipmentCommandHandler(coordinator *Coordinator, clk clock.Clock) UpdateShipmentCommandHandler {
	return UpdateShipmentCommandHandler{coordinator: coordinator, clock: clk}
}

func (h UpdateShipmentCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentCommand) (*shipment.Shipment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *shipment.Shipment
	err := h.coordinator.Run(ctx, "update_shipment", func(ctx context.Context, uow UoW) error {
		shipmentRepo := uow.ShipmentRepository()
		now := h.clock.Now()
		patch := cmd.Patch()

		s, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
		if err != nil {
			return err
		}
		if err = s.EnsureMutable(); err != nil {
			return err
		}

		route, err := patchedRoute(s, patch)
		if err != nil {
			return err
		}

		var changed []*parcel.Package
		if patch.FoundingPackageID != nil {
			changed, err = h.reassign(ctx, uow, s, *patch.FoundingPackageID, cmd.ActorID())
			if err != nil {
				return err
			}
		}

		eta := s.EstimatedDelivery()
		if patch.ETA != nil {
			eta = patch.ETA
		}
		if err = s.Reschedule(route, eta, now); err != nil {
			return err
		}

		if err = shipmentRepo.Update(ctx, s); err != nil {
			return err
		}
		for _, p := range changed {
			if err = uow.PackageRepository().Update(ctx, p); err != nil {
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

func (h UpdateShipmentCommandHandler) reassign(
	ctx context.Context,
	uow UoW,
	s *shipment.Shipment,
	newFoundingID kernel.ID,
	actor *kernel.ID,
) ([]*parcel.Package, error) {
	if current, ok := s.Founding(); ok && current.IsEqual(newFoundingID) {
		return nil, nil
	}

	ids := []kernel.ID{newFoundingID}
	if current, ok := s.Founding(); ok {
		ids = append(ids, current)
	}
	packages, err := uow.PackageRepository().GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := indexPackages(packages)

	newFounding := byID[newFoundingID.Int64()]
	if newFounding.Status() != parcel.Pending {
		return nil, errs.NewPreconditionFailedError(
			fmt.Sprintf("package %s is %s, not pending", newFounding.ID(), newFounding.Status()))
	}

	now := h.clock.Now()
	previousID, replaced, err := s.ReassignFounding(newFoundingID, now)
	if err != nil {
		return nil, err
	}

	changed := make([]*parcel.Package, 0, 2)
	if replaced {
		live, err := boundToLiveShipment(ctx, uow.ShipmentRepository(), previousID, s.ID())
		if err != nil {
			return nil, err
		}
		if !live {
			previous := byID[previousID.Int64()]
			if err = previous.Detach(removedComment(s.ID()), actor, now); err != nil {
				return nil, err
			}
			changed = append(changed, previous)
		}
	}

	if err = newFounding.TransitionTo(parcel.InTransit, addedComment(s.ID()), actor, now); err != nil {
		return nil, err
	}
	changed = append(changed, newFounding)

	return changed, nil
}

func patchedRoute(s *shipment.Shipment, patch ShipmentPatch) (kernel.Route, error) {
	origin, destination := s.Route().Origin().String(), s.Route().Destination().String()
	if patch.Origin != nil {
		origin = *patch.Origin
	}
	if patch.Destination != nil {
		destination = *patch.Destination
	}
	return kernel.ParseRoute(origin, destination)
}

func indexPackages(packages []*parcel.Package) map[int64]*parcel.Package {
	byID := make(map[int64]*parcel.Package, len(packages))
	for _, p := range packages {
		byID[p.ID().Int64()] = p
	}
	return byID
}

func removedComment(shipmentID kernel.ID) string {
	return "removed from shipment " + shipmentID.String()
}

func addedComment(shipmentID kernel.ID) string {
	return "added to shipment " + shipmentID.String()
}
