package queries

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery retrieves one active shipment with its member ids.
type GetShipmentQuery struct {
	shipmentID kernel.ID
	guard      guard.ConstructorGuard
}

func NewGetShipmentQuery(shipmentID kernel.ID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, errs.NewValueIsRequiredErrorWithCause("shipment id", err)
	}
	return GetShipmentQuery{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

func (q GetShipmentQuery) ShipmentID() kernel.ID {
	return q.shipmentID
}

// ShipmentView is the read model of a shipment. PackageIDs starts with the
// founding package, followed by the other members in binding order.
type ShipmentView struct {
	ID                kernel.ID
	Origin            string
	Destination       string
	Status            string
	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time
	FoundingPackageID *kernel.ID
	PackageIDs        []kernel.ID
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Version           int
}
