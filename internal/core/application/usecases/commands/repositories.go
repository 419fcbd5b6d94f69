// Package commands contains the business operations that modify package and
// shipment state. Every command runs inside one unit of work opened by the
// Coordinator, so a command either commits all of its row changes and ledger
// entries or none of them.
package commands

import (
	"context"

	"shiptrack/internal/core/domain/model/history"
	"shiptrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PackageRepoFactory provides access to the package repository within a transaction.
	PackageRepoFactory interface {
		PackageRepository() ports.PackageRepository
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// EntryRecorder exposes the ledger entries appended through a unit.
	EntryRecorder interface {
		RecordedEntries() []history.Entry
	}

	// UoW manages transactions across the package and shipment aggregates.
	//
	// Example:
	//   err := coordinator.Run(ctx, "remove_package", func(ctx context.Context, uow UoW) error {
	//       s, err := uow.ShipmentRepository().Get(ctx, shipmentID)
	//       ...
	//       return uow.PackageRepository().Update(ctx, p)
	//   })
	UoW interface {
		TxManager
		PackageRepoFactory
		ShipmentRepoFactory
		EntryRecorder
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)
