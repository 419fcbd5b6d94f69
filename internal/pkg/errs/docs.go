// Package errs provides standardized error types for the shipment tracking engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: input validation failures
//   - ObjectNotFoundError: a package, shipment, or binding does not exist or is inactive
//   - InvalidTransitionError: a status change not present in a transition table
//   - PreconditionFailedError: an object is not in the state an operation requires
//   - ConflictingWriteError: a concurrent modification invalidated the operation
//   - InternalError: an unexpected storage failure
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// CodeOf maps any error to a stable Code so that transports can pick a response
// without parsing error text.
package errs
