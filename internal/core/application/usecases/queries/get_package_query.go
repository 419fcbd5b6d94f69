// Package queries contains read operations for retrieving package and shipment state.
// Queries read committed rows with plain SELECTs and never take row locks.
package queries

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrGetPackageQueryIsNotConstructed = errors.New(
	"GetPackageQuery must be created via NewGetPackageQuery constructor",
)

// GetPackageQuery retrieves one active package.
//
// Example:
//
//	query, err := NewGetPackageQuery(id)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetPackageQuery struct {
	packageID kernel.ID
	guard     guard.ConstructorGuard
}

func NewGetPackageQuery(packageID kernel.ID) (GetPackageQuery, error) {
	if err := packageID.Validate(); err != nil {
		return GetPackageQuery{}, errs.NewValueIsRequiredErrorWithCause("package id", err)
	}
	return GetPackageQuery{packageID: packageID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPackageQuery) Validate() error {
	return q.guard.Validate(ErrGetPackageQueryIsNotConstructed)
}

func (q GetPackageQuery) PackageID() kernel.ID {
	return q.packageID
}
