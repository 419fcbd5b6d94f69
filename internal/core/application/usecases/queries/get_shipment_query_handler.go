package queries

import (
	"context"
	"database/sql"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetShipmentQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (ShipmentView, error) {
	if err := query.Validate(); err != nil {
		return ShipmentView{}, err
	}

	view, found, err := h.shipment(ctx, query.ShipmentID())
	if err != nil {
		return ShipmentView{}, errs.NewInternalError("get shipment", err)
	}
	if !found {
		return ShipmentView{}, errs.NewObjectNotFoundError("shipment", query.ShipmentID().String())
	}

	memberIDs, err := h.members(ctx, query.ShipmentID())
	if err != nil {
		return ShipmentView{}, errs.NewInternalError("get shipment members", err)
	}

	view.PackageIDs = make([]kernel.ID, 0, len(memberIDs)+1)
	seen := make(map[int64]struct{}, len(memberIDs)+1)
	if view.FoundingPackageID != nil {
		view.PackageIDs = append(view.PackageIDs, *view.FoundingPackageID)
		seen[view.FoundingPackageID.Int64()] = struct{}{}
	}
	for _, raw := range memberIDs {
		if _, dup := seen[raw]; dup {
			continue
		}
		seen[raw] = struct{}{}
		id, idErr := kernel.NewID(raw)
		if idErr != nil {
			return ShipmentView{}, errs.NewInternalError("get shipment members", idErr)
		}
		view.PackageIDs = append(view.PackageIDs, id)
	}

	return view, nil
}

func (h GetShipmentQueryHandler) shipment(ctx context.Context, id kernel.ID) (ShipmentView, bool, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			package_id,
			origin,
			destination,
			status,
			estimated_delivery,
			delivered_at,
			created_at,
			updated_at,
			version
		FROM shipments
		WHERE id = ? AND active = ?
	`, id.Int64(), true).Rows()
	if err != nil {
		return ShipmentView{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return ShipmentView{}, false, rows.Err()
	}

	var view ShipmentView
	var rawID int64
	var founding sql.NullInt64
	var eta, deliveredAt sql.NullTime
	err = rows.Scan(
		&rawID,
		&founding,
		&view.Origin,
		&view.Destination,
		&view.Status,
		&eta,
		&deliveredAt,
		&view.CreatedAt,
		&view.UpdatedAt,
		&view.Version,
	)
	if err != nil {
		return ShipmentView{}, false, err
	}

	if view.ID, err = kernel.NewID(rawID); err != nil {
		return ShipmentView{}, false, err
	}
	if founding.Valid {
		foundingID, idErr := kernel.NewID(founding.Int64)
		if idErr != nil {
			return ShipmentView{}, false, idErr
		}
		view.FoundingPackageID = &foundingID
	}
	view.EstimatedDelivery = nullTime(eta)
	view.DeliveredAt = nullTime(deliveredAt)

	return view, true, nil
}

func (h GetShipmentQueryHandler) members(ctx context.Context, id kernel.ID) ([]int64, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT package_id
		FROM shipment_packages
		WHERE shipment_id = ?
		ORDER BY bound_at, package_id
	`, id.Int64()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var raw int64
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}
		ids = append(ids, raw)
	}
	return ids, rows.Err()
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
