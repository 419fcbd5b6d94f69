package commands

import (
	"errors"
	"strings"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/guard"
)

var ErrTransitionShipmentCommandIsNotConstructed = errors.New(
	"TransitionShipmentCommand must be created via NewTransitionShipmentCommand constructor",
)

// TransitionShipmentCommand requests a shipment status change. Spanish status
// names (entregado, devuelto, cancelado) are accepted.
type TransitionShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ID
	status     shipment.Status
	comment    string
	actorID    *kernel.ID

	guard guard.ConstructorGuard
}

func NewTransitionShipmentCommand(
	shipmentID kernel.ID,
	requestedStatus string,
	comment string,
	actorID *kernel.ID,
) (TransitionShipmentCommand, error) {
	status, statusErr := shipment.ParseStatus(requestedStatus)
	comment = strings.TrimSpace(comment)

	if err := errors.Join(
		validateID("shipment id", shipmentID),
		statusErr,
		validateComment(comment),
		validateActor(actorID),
	); err != nil {
		return TransitionShipmentCommand{}, err
	}

	return TransitionShipmentCommand{
		shipmentID: shipmentID,
		status:     status,
		comment:    comment,
		actorID:    actorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionShipmentCommand) Validate() error {
	return c.guard.Validate(ErrTransitionShipmentCommandIsNotConstructed)
}

func (c TransitionShipmentCommand) ShipmentID() kernel.ID   { return c.shipmentID }
func (c TransitionShipmentCommand) Status() shipment.Status { return c.status }
func (c TransitionShipmentCommand) Comment() string         { return c.comment }
func (c TransitionShipmentCommand) ActorID() *kernel.ID     { return c.actorID }
