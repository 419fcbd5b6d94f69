package queries

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrListShipmentPackagesQueryIsNotConstructed = errors.New(
	"ListShipmentPackagesQuery must be created via NewListShipmentPackagesQuery constructor",
)

// ListShipmentPackagesQuery lists the active packages bound to an active shipment.
type ListShipmentPackagesQuery struct {
	shipmentID kernel.ID
	guard      guard.ConstructorGuard
}

func NewListShipmentPackagesQuery(shipmentID kernel.ID) (ListShipmentPackagesQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return ListShipmentPackagesQuery{}, errs.NewValueIsRequiredErrorWithCause("shipment id", err)
	}
	return ListShipmentPackagesQuery{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListShipmentPackagesQuery) Validate() error {
	return q.guard.Validate(ErrListShipmentPackagesQueryIsNotConstructed)
}

func (q ListShipmentPackagesQuery) ShipmentID() kernel.ID {
	return q.shipmentID
}
