package commands

import (
	"context"

	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/pkg/clock"
)

// UpdatePackageDetailsCommandHandler edits package details. Packages in transit
// or delivered are refused with PRECONDITION_FAILED.
type UpdatePackageDetailsCommandHandler struct {
	coordinator *Coordinator
	clock       clock.Clock
}

func NewUpdatePackageDetailsCommandHandler(coordinator *Coordinator, clk clock.Clock) UpdatePackageDetailsCommandHandler {
	return UpdatePackageDetailsCommandHandler{coordinator: coordinator, clock: clk}
}

func (h UpdatePackageDetailsCommandHandler) Handle(
	ctx context.Context,
	cmd UpdatePackageDetailsCommand,
) (*parcel.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *parcel.Package
	err := h.coordinator.Run(ctx, "update_package_details", func(ctx context.Context, uow UoW) error {
		repo := uow.PackageRepository()

		p, err := repo.Get(ctx, cmd.PackageID())
		if err != nil {
			return err
		}

		details, route, err := cmd.Patch().Apply(p.Details(), p.Route())
		if err != nil {
			return err
		}

		if err = p.UpdateDetails(details, route, h.clock.Now()); err != nil {
			return err
		}

		if err = repo.Update(ctx, p); err != nil {
			return err
		}

		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
