package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates,
// including their membership (founding reference and binding rows).
type ShipmentRepository interface {
	// Add persists a new shipment and inserts its binding rows.
	// Re-inserting an existing binding is not an error.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists a changed shipment and synchronizes binding rows with its
	// membership. Version mismatches are reported as ConflictingWriteError.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves an active shipment with its membership.
	Get(ctx context.Context, id kernel.ID) (*shipment.Shipment, error)

	// ListActiveByPackage returns the active shipments binding packageID.
	ListActiveByPackage(ctx context.Context, packageID kernel.ID) ([]*shipment.Shipment, error)
}
