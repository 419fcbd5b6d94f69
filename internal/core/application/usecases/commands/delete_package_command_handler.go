package commands

import (
	"context"
	"fmt"

	"shiptrack/internal/pkg/clock"
	"shiptrack/internal/pkg/errs"
)

// DeletePackageCommandHandler soft-deletes packages that no active, non-terminal
// shipment binds. Delivered packages cannot be deleted.
type DeletePackageCommandHandler struct {
	coordinator *Coordinator
	clock       clock.Clock
}

func NewDeletePackageCommandHandler(coordinator *Coordinator, clk clock.Clock) DeletePackageCommandHandler {
	return DeletePackageCommandHandler{coordinator: coordinator, clock: clk}
}

func (h DeletePackageCommandHandler) Handle(ctx context.Context, cmd DeletePackageCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.coordinator.Run(ctx, "delete_package", func(ctx context.Context, uow UoW) error {
		// Shipments are locked before the package to keep the lock order of shipment operations.
		shipments, err := uow.ShipmentRepository().ListActiveByPackage(ctx, cmd.PackageID())
		if err != nil {
			return err
		}
		for _, s := range shipments {
			if s.IsMutable() {
				return errs.NewPreconditionFailedError(
					fmt.Sprintf("package %s is bound to %s shipment %s", cmd.PackageID(), s.Status(), s.ID()))
			}
		}

		repo := uow.PackageRepository()
		p, err := repo.Get(ctx, cmd.PackageID())
		if err != nil {
			return err
		}

		if err = p.Deactivate(h.clock.Now()); err != nil {
			return err
		}

		return repo.Update(ctx, p)
	})
}
