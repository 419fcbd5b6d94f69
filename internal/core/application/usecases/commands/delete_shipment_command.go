package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrDeleteShipmentCommandIsNotConstructed = errors.New(
	"DeleteShipmentCommand must be created via NewDeleteShipmentCommand constructor",
)

// DeleteShipmentCommand soft-deletes a shipment and releases its members.
type DeleteShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ID
	actorID    *kernel.ID

	guard guard.ConstructorGuard
}

func NewDeleteShipmentCommand(shipmentID kernel.ID, actorID *kernel.ID) (DeleteShipmentCommand, error) {
	if err := errors.Join(validateID("shipment id", shipmentID), validateActor(actorID)); err != nil {
		return DeleteShipmentCommand{}, err
	}
	return DeleteShipmentCommand{shipmentID: shipmentID, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteShipmentCommandIsNotConstructed)
}

func (c DeleteShipmentCommand) ShipmentID() kernel.ID { return c.shipmentID }
func (c DeleteShipmentCommand) ActorID() *kernel.ID   { return c.actorID }
