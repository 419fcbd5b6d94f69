package commands

import (
	"errors"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdatePackageDetailsCommandIsNotConstructed = errors.New(
	"UpdatePackageDetailsCommand must be created via NewUpdatePackageDetailsCommand constructor",
)

// PackageDetailsPatch lists the descriptive fields to change. Nil fields keep their current value.
type PackageDetailsPatch struct {
	Description   *string
	Weight        *decimal.Decimal
	Length        *decimal.Decimal
	Width         *decimal.Decimal
	Height        *decimal.Decimal
	DeclaredValue *decimal.Decimal
	Origin        *string
	Destination   *string
}

func (p PackageDetailsPatch) IsEmpty() bool {
	return p.Description == nil && p.Weight == nil && p.Length == nil && p.Width == nil && p.Height == nil &&
		p.DeclaredValue == nil && p.Origin == nil && p.Destination == nil
}

// Apply merges the patch over the current values and validates the result.
func (p PackageDetailsPatch) Apply(current parcel.Details, route kernel.Route) (parcel.Details, kernel.Route, error) {
	dims := current.Dimensions()
	dims, dimErr := parcel.NewDimensions(
		pick(p.Length, dims.Length()),
		pick(p.Width, dims.Width()),
		pick(p.Height, dims.Height()),
	)
	if dimErr != nil {
		return parcel.Details{}, kernel.Route{}, dimErr
	}

	description := current.Description()
	if p.Description != nil {
		description = *p.Description
	}

	details, err := parcel.NewDetails(description, pick(p.Weight, current.Weight()), dims,
		pick(p.DeclaredValue, current.DeclaredValue()))
	if err != nil {
		return parcel.Details{}, kernel.Route{}, err
	}

	origin, destination := route.Origin().String(), route.Destination().String()
	if p.Origin != nil {
		origin = *p.Origin
	}
	if p.Destination != nil {
		destination = *p.Destination
	}
	newRoute, err := kernel.ParseRoute(origin, destination)
	if err != nil {
		return parcel.Details{}, kernel.Route{}, err
	}

	return details, newRoute, nil
}

// UpdatePackageDetailsCommand edits the descriptive fields of a pending or returned package.
type UpdatePackageDetailsCommand struct { //nolint:recvcheck //using for validation
	packageID kernel.ID
	patch     PackageDetailsPatch

	guard guard.ConstructorGuard
}

func NewUpdatePackageDetailsCommand(packageID kernel.ID, patch PackageDetailsPatch) (UpdatePackageDetailsCommand, error) {
	var patchErr error
	if patch.IsEmpty() {
		patchErr = errs.NewValueIsRequiredError("at least one field to update")
	}

	if err := errors.Join(validateID("package id", packageID), patchErr); err != nil {
		return UpdatePackageDetailsCommand{}, err
	}

	return UpdatePackageDetailsCommand{packageID: packageID, patch: patch, guard: guard.NewConstructorGuard()}, nil
}

func (c UpdatePackageDetailsCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePackageDetailsCommandIsNotConstructed)
}

func (c UpdatePackageDetailsCommand) PackageID() kernel.ID       { return c.packageID }
func (c UpdatePackageDetailsCommand) Patch() PackageDetailsPatch { return c.patch }

func pick(v *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if v != nil {
		return *v
	}
	return fallback
}
