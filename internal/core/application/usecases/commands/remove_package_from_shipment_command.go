package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrRemovePackageFromShipmentCommandIsNotConstructed = errors.New(
	"RemovePackageFromShipmentCommand must be created via NewRemovePackageFromShipmentCommand constructor",
)

// RemovePackageFromShipmentCommand unbinds one package from a shipment.
type RemovePackageFromShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ID
	packageID  kernel.ID
	actorID    *kernel.ID

	guard guard.ConstructorGuard
}

func NewRemovePackageFromShipmentCommand(
	shipmentID, packageID kernel.ID,
	actorID *kernel.ID,
) (RemovePackageFromShipmentCommand, error) {
	if err := errors.Join(
		validateID("shipment id", shipmentID),
		validateID("package id", packageID),
		validateActor(actorID),
	); err != nil {
		return RemovePackageFromShipmentCommand{}, err
	}

	return RemovePackageFromShipmentCommand{
		shipmentID: shipmentID,
		packageID:  packageID,
		actorID:    actorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RemovePackageFromShipmentCommand) Validate() error {
	return c.guard.Validate(ErrRemovePackageFromShipmentCommandIsNotConstructed)
}

func (c RemovePackageFromShipmentCommand) ShipmentID() kernel.ID { return c.shipmentID }
func (c RemovePackageFromShipmentCommand) PackageID() kernel.ID  { return c.packageID }
func (c RemovePackageFromShipmentCommand) ActorID() *kernel.ID   { return c.actorID }
