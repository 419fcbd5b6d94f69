package queries

import (
	"context"

	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
)

type ListShipmentPackagesQueryHandler struct {
	db *gorm.DB
}

func NewListShipmentPackagesQueryHandler(db *gorm.DB) ListShipmentPackagesQueryHandler {
	return ListShipmentPackagesQueryHandler{db: db}
}

// Handle returns the bound packages in binding order. Deleted packages are left out.
// A missing or deleted shipment is reported as not found.
func (h ListShipmentPackagesQueryHandler) Handle(
	ctx context.Context,
	query ListShipmentPackagesQuery,
) ([]PackageView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	exists, err := rowExists(ctx, h.db, "SELECT 1 FROM shipments WHERE id = ? AND active = ?",
		query.ShipmentID().Int64(), true)
	if err != nil {
		return nil, errs.NewInternalError("list shipment packages", err)
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("shipment", query.ShipmentID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+packageColumns+`
		FROM shipment_packages sp
		JOIN packages p ON p.id = sp.package_id
		WHERE sp.shipment_id = ? AND p.active = ?
		ORDER BY sp.bound_at, p.id
	`, query.ShipmentID().Int64(), true).Rows()
	if err != nil {
		return nil, errs.NewInternalError("list shipment packages", err)
	}
	defer rows.Close()

	packages := make([]PackageView, 0)
	for rows.Next() {
		view, scanErr := scanPackage(rows)
		if scanErr != nil {
			return nil, errs.NewInternalError("list shipment packages", scanErr)
		}
		packages = append(packages, view)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewInternalError("list shipment packages", err)
	}

	return packages, nil
}

func rowExists(ctx context.Context, db *gorm.DB, query string, args ...any) (bool, error) {
	rows, err := db.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return false, err
	}
	defer rows.Close()

	found := rows.Next()
	return found, rows.Err()
}
