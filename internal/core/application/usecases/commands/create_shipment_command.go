package commands

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand opens a shipment around a founding package.
//
// Example:
//
//	route, _ := kernel.ParseRoute("Warehouse 3", "Calle 10 #5-20")
//	eta := time.Now().Add(48 * time.Hour)
//	cmd, err := NewCreateShipmentCommand(packageID, route, &eta, &actorID)
//	if err != nil {
//	    return err
//	}
//	s, err := handler.Handle(ctx, cmd)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	foundingPackageID kernel.ID
	route             kernel.Route
	eta               *time.Time
	actorID           *kernel.ID

	guard guard.ConstructorGuard
}

func NewCreateShipmentCommand(
	foundingPackageID kernel.ID,
	route kernel.Route,
	eta *time.Time,
	actorID *kernel.ID,
) (CreateShipmentCommand, error) {
	if err := errors.Join(
		validateID("package id", foundingPackageID),
		required("route", route.Validate()),
		validateActor(actorID),
	); err != nil {
		return CreateShipmentCommand{}, err
	}

	return CreateShipmentCommand{
		foundingPackageID: foundingPackageID,
		route:             route,
		eta:               eta,
		actorID:           actorID,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) FoundingPackageID() kernel.ID { return c.foundingPackageID }
func (c CreateShipmentCommand) Route() kernel.Route          { return c.route }
func (c CreateShipmentCommand) ETA() *time.Time              { return c.eta }
func (c CreateShipmentCommand) ActorID() *kernel.ID          { return c.actorID }
