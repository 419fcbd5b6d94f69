package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

// MaxPackagesPerRequest bounds a single bulk add.
const MaxPackagesPerRequest = 500

var ErrAddPackagesToShipmentCommandIsNotConstructed = errors.New(
	"AddPackagesToShipmentCommand must be created via NewAddPackagesToShipmentCommand constructor",
)

// AddPackagesToShipmentCommand binds packages to a shipment. Package ids are
// deduplicated, keeping their first position.
type AddPackagesToShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.ID
	packageIDs []kernel.ID
	actorID    *kernel.ID

	guard guard.ConstructorGuard
}

func NewAddPackagesToShipmentCommand(
	shipmentID kernel.ID,
	packageIDs []kernel.ID,
	actorID *kernel.ID,
) (AddPackagesToShipmentCommand, error) {
	unique := make([]kernel.ID, 0, len(packageIDs))
	seen := make(map[int64]struct{}, len(packageIDs))
	var idsErr error
	for _, id := range packageIDs {
		if err := validateID("package id", id); err != nil {
			idsErr = err
			break
		}
		if _, ok := seen[id.Int64()]; ok {
			continue
		}
		seen[id.Int64()] = struct{}{}
		unique = append(unique, id)
	}
	if idsErr == nil && len(unique) == 0 {
		idsErr = errs.NewValueIsRequiredError("package ids")
	}
	if idsErr == nil && len(unique) > MaxPackagesPerRequest {
		idsErr = errs.NewValueIsOutOfRangeError("package ids count", len(unique), 1, MaxPackagesPerRequest)
	}

	if err := errors.Join(validateID("shipment id", shipmentID), idsErr, validateActor(actorID)); err != nil {
		return AddPackagesToShipmentCommand{}, err
	}

	return AddPackagesToShipmentCommand{
		shipmentID: shipmentID,
		packageIDs: unique,
		actorID:    actorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AddPackagesToShipmentCommand) Validate() error {
	return c.guard.Validate(ErrAddPackagesToShipmentCommandIsNotConstructed)
}

func (c AddPackagesToShipmentCommand) ShipmentID() kernel.ID { return c.shipmentID }
func (c AddPackagesToShipmentCommand) ActorID() *kernel.ID   { return c.actorID }

// PackageIDs returns the deduplicated ids in request order.
func (c AddPackagesToShipmentCommand) PackageIDs() []kernel.ID {
	out := make([]kernel.ID, len(c.packageIDs))
	copy(out, c.packageIDs)
	return out
}
