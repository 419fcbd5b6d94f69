package commands

import (
	"context"

	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/clock"
)

// CreatePackageCommandHandler creates pending packages with fresh tracking identifiers
// and their "package created" ledger entry.
type CreatePackageCommandHandler struct {
	coordinator *Coordinator
	ids         ports.IDGenerator
	tracking    ports.TrackingCodeGenerator
	clock       clock.Clock
}

func NewCreatePackageCommandHandler(
	coordinator *Coordinator,
	ids ports.IDGenerator,
	tracking ports.TrackingCodeGenerator,
	clk clock.Clock,
) CreatePackageCommandHandler {
	return CreatePackageCommandHandler{coordinator: coordinator, ids: ids, tracking: tracking, clock: clk}
}

// Handle persists the package and its creation entry in one unit.
func (h CreatePackageCommandHandler) Handle(ctx context.Context, cmd CreatePackageCommand) (*parcel.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	tracking, err := h.tracking.NextTracking()
	if err != nil {
		return nil, err
	}

	var created *parcel.Package
	err = h.coordinator.Run(ctx, "create_package", func(ctx context.Context, uow UoW) error {
		p, err := parcel.NewPackage(h.ids.NextID(), cmd.ClientID(), tracking, cmd.Details(), cmd.Route(),
			cmd.ActorID(), h.clock.Now())
		if err != nil {
			return err
		}

		if err = uow.PackageRepository().Add(ctx, p); err != nil {
			return err
		}

		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}
