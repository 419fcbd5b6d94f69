package queries

import (
	"context"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetOverdueShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewGetOverdueShipmentsQueryHandler(db *gorm.DB) GetOverdueShipmentsQueryHandler {
	return GetOverdueShipmentsQueryHandler{db: db}
}

// Handle returns overdue shipments, the most late first.
func (h GetOverdueShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetOverdueShipmentsQuery,
) ([]OverdueShipmentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.origin,
			s.destination,
			s.estimated_delivery,
			(SELECT COUNT(*) FROM shipment_packages sp WHERE sp.shipment_id = s.id)
		FROM shipments s
		WHERE s.active = ?
			AND s.status = ?
			AND s.estimated_delivery IS NOT NULL
			AND s.estimated_delivery < ?
		ORDER BY s.estimated_delivery, s.id
	`, true, shipment.InTransit.String(), query.AsOf()).Rows()
	if err != nil {
		return nil, errs.NewInternalError("get overdue shipments", err)
	}
	defer rows.Close()

	overdue := make([]OverdueShipmentView, 0)
	for rows.Next() {
		var view OverdueShipmentView
		var id int64

		if err = rows.Scan(&id, &view.Origin, &view.Destination, &view.EstimatedDelivery, &view.PackageCount); err != nil {
			return nil, errs.NewInternalError("get overdue shipments", err)
		}
		if view.ID, err = kernel.NewID(id); err != nil {
			return nil, errs.NewInternalError("get overdue shipments", err)
		}
		view.EstimatedDelivery = view.EstimatedDelivery.UTC()
		overdue = append(overdue, view)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewInternalError("get overdue shipments", err)
	}

	return overdue, nil
}
