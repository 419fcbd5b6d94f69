package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/guard"
)

var ErrDeletePackageCommandIsNotConstructed = errors.New(
	"DeletePackageCommand must be created via NewDeletePackageCommand constructor",
)

// DeletePackageCommand soft-deletes a package. History is preserved.
type DeletePackageCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.ID
	guard     guard.ConstructorGuard
}

func NewDeletePackageCommand(packageID kernel.ID) (DeletePackageCommand, error) {
	if err := validateID("package id", packageID); err != nil {
		return DeletePackageCommand{}, err
	}
	return DeletePackageCommand{packageID: packageID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeletePackageCommand) Validate() error {
	return c.guard.Validate(ErrDeletePackageCommandIsNotConstructed)
}

func (c DeletePackageCommand) PackageID() kernel.ID {
	return c.packageID
}
