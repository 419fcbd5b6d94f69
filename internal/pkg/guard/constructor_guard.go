// Package guard provides the constructor guard used by value objects, aggregates,
// commands and queries to reject zero-value instances.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a struct as built by its constructor. The zero value is "not constructed".
//
// Example:
//
//	type AddPackagesCommand struct {
//	    shipmentID kernel.ID
//	    guard      guard.ConstructorGuard
//	}
//
//	func (c AddPackagesCommand) Validate() error {
//	    return c.guard.Validate(ErrAddPackagesCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guarded object was not built by its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
