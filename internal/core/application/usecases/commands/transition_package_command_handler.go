package commands

import (
	"context"

	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/pkg/clock"
)

// TransitionPackageCommandHandler applies a direct package status change.
//
// The package row is locked, the transition is checked against the adjacency
// table and the row update plus its ledger entry are committed together.
// Transitions outside the table fail with INVALID_TRANSITION and change nothing.
type TransitionPackageCommandHandler struct {
	coordinator *Coordinator
	clock       clock.Clock
}

func NewTransitionPackageCommandHandler(coordinator *Coordinator, clk clock.Clock) TransitionPackageCommandHandler {
	return TransitionPackageCommandHandler{coordinator: coordinator, clock: clk}
}

func (h TransitionPackageCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionPackageCommand,
) (*parcel.Package, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *parcel.Package
	err := h.coordinator.Run(ctx, "transition_package", func(ctx context.Context, uow UoW) error {
		repo := uow.PackageRepository()

		p, err := repo.Get(ctx, cmd.PackageID())
		if err != nil {
			return err
		}

		if err = p.TransitionTo(cmd.Status(), cmd.Comment(), cmd.ActorID(), h.clock.Now()); err != nil {
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
