package queries

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrGetOverdueShipmentsQueryIsNotConstructed = errors.New(
	"GetOverdueShipmentsQuery must be created via NewGetOverdueShipmentsQuery constructor",
)

// GetOverdueShipmentsQuery lists active in-transit shipments whose estimated
// delivery is before the given instant.
type GetOverdueShipmentsQuery struct {
	asOf  time.Time
	guard guard.ConstructorGuard
}

func NewGetOverdueShipmentsQuery(asOf time.Time) (GetOverdueShipmentsQuery, error) {
	if asOf.IsZero() {
		return GetOverdueShipmentsQuery{}, errs.NewValueIsRequiredError("as of")
	}
	return GetOverdueShipmentsQuery{asOf: asOf.UTC(), guard: guard.NewConstructorGuard()}, nil
}

func (q GetOverdueShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetOverdueShipmentsQueryIsNotConstructed)
}

func (q GetOverdueShipmentsQuery) AsOf() time.Time {
	return q.asOf
}

// OverdueShipmentView is one late shipment with the number of packages it carries.
type OverdueShipmentView struct {
	ID                kernel.ID
	Origin            string
	Destination       string
	EstimatedDelivery time.Time
	PackageCount      int
}
