// Package ports defines the contracts between the application core and its
// adapters: repositories, the history ledger, the unit of work and the
// identifier generators.
package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"
)

// PackageRepository defines the persistence contract for package aggregates.
// Inside a unit of work, reads lock the returned rows until the unit ends.
type PackageRepository interface {
	// Add persists a new package together with its pending ledger entries.
	Add(ctx context.Context, aggregate *parcel.Package) error

	// Update persists a changed package together with its pending ledger entries.
	// The write succeeds only if the stored version still matches the aggregate;
	// otherwise a ConflictingWriteError is returned.
	Update(ctx context.Context, aggregate *parcel.Package) error

	// Get retrieves an active package. Missing and inactive packages are reported
	// as ObjectNotFoundError.
	Get(ctx context.Context, id kernel.ID) (*parcel.Package, error)

	// GetMany retrieves active packages ordered by id. Duplicate ids are collapsed.
	// If any id is missing or inactive, an ObjectNotFoundError naming it is returned.
	GetMany(ctx context.Context, ids []kernel.ID) ([]*parcel.Package, error)

	// FindMany is GetMany without the existence check: missing and inactive ids are skipped.
	FindMany(ctx context.Context, ids []kernel.ID) ([]*parcel.Package, error)
}
