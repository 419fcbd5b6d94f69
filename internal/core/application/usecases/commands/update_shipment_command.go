package commands

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrUpdateShipmentCommandIsNotConstructed = errors.New(
	"UpdateShipmentCommand must be created via NewUpdateShipmentCommand constructor",
)

// ShipmentPatch lists the shipment fields to change. Nil fields keep their current value.
type ShipmentPatch struct {
	Origin            *string
	Destination       *string
	ETA               *time.Time
	FoundingPackageID *kernel.ID
}

func (p ShipmentPatch) IsEmpty() bool {
	return p.Origin == nil && p.Destination == nil && p.ETA == nil && p.FoundingPackageID == nil
}

// UpdateShipmentCommand edits route and ETA of a mutable shipment and can
// replace its founding package.
type UpdateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ID
	patch      ShipmentPatch
	actorID    *kernel.ID

	guard guard.ConstructorGuard
}

func NewUpdateShipmentCommand(shipmentID kernel.ID, patch ShipmentPatch, actorID *kernel.ID) (UpdateShipmentCommand, error) {
	var patchErr, foundingErr error
	if patch.IsEmpty() {
		patchErr = errs.NewValueIsRequiredError("at least one field to update")
	}
	if patch.FoundingPackageID != nil {
		foundingErr = validateID("package id", *patch.FoundingPackageID)
	}

	if err := errors.Join(
		validateID("shipment id", shipmentID),
		patchErr,
		foundingErr,
		validateActor(actorID),
	); err != nil {
		return UpdateShipmentCommand{}, err
	}

	return UpdateShipmentCommand{shipmentID: shipmentID, patch: patch, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentCommandIsNotConstructed)
}

func (c UpdateShipmentCommand) ShipmentID() kernel.ID { return c.shipmentID }
func (c UpdateShipmentCommand) Patch() ShipmentPatch  { return c.patch }
func (c UpdateShipmentCommand) ActorID() *kernel.ID   { return c.actorID }
