package errs

import "errors"

// Code is a stable, machine readable identifier for a failure class.
// Callers branch on Code instead of parsing error text.
type Code string

const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeValidationFailed   Code = "VALIDATION_FAILED"
	CodeInvalidTransition  Code = "INVALID_TRANSITION"
	CodePreconditionFailed Code = "PRECONDITION_FAILED"
	CodeConflictingWrite   Code = "CONFLICTING_WRITE"
	CodeInternal           Code = "INTERNAL"
)

// CodeOf classifies err. Unclassified errors are reported as CodeInternal; a nil error has no code.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrObjectNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidTransition):
		return CodeInvalidTransition
	case errors.Is(err, ErrPreconditionFailed):
		return CodePreconditionFailed
	case errors.Is(err, ErrConflictingWrite):
		return CodeConflictingWrite
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return CodeValidationFailed
	default:
		return CodeInternal
	}
}

// IsClassified reports whether err already carries one of the domain failure kinds.
func IsClassified(err error) bool {
	return err != nil && CodeOf(err) != CodeInternal || errors.Is(err, ErrInternal)
}
