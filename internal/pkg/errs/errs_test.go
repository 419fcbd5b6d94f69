package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"shiptrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("userId", "123")

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("userId", "123", cause)

		assert.Equal(t, "userId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: userId, ID is: 123 (cause: database connection failed)",
			err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", 456)
		assert.Equal(t, "object not found: %!s(int=456)", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("email")

		assert.Equal(t, "email", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: email", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := errs.NewValueIsInvalidErrorWithCause("email", cause)

		assert.Equal(t, "email", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is invalid: email (cause: invalid format)", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)

		assert.Equal(t, "age", err.ParamName)
		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 120, err.Max)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: 150 is age, min value is 0, max value is 120", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("score", -5, 0, 100, cause)

		assert.Equal(t, "score", err.ParamName)
		assert.Equal(t, -5, err.Value)
		assert.Equal(t, 0, err.Min)
		assert.Equal(t, 100, err.Max)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"value is invalid: -5 is score, min value is 0, max value is 100 (cause: validation failed)",
			err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	t.Run("NewValueIsRequiredError", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("username")

		assert.Equal(t, "username", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is required: username", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})

	t.Run("NewValueIsRequiredErrorWithCause", func(t *testing.T) {
		cause := errors.New("missing required field")
		err := errs.NewValueIsRequiredErrorWithCause("username", cause)

		assert.Equal(t, "username", err.ParamName)
		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "value is required: username (cause: missing required field)", err.Error())
		assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())
	})
}

func TestSentinelErrors(t *testing.T) {
	t.Run("sentinel errors are defined", func(t *testing.T) {
		require.Error(t, errs.ErrObjectNotFound)
		require.Error(t, errs.ErrValueIsInvalid)
		require.Error(t, errs.ErrValueIsOutOfRange)
		require.Error(t, errs.ErrValueIsRequired)
		require.Error(t, errs.ErrInvalidTransition)
		require.Error(t, errs.ErrPreconditionFailed)
		require.Error(t, errs.ErrConflictingWrite)
		require.Error(t, errs.ErrInternal)
	})

	t.Run("error messages match expectations", func(t *testing.T) {
		assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
		assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
		assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
		assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
		assert.Equal(t, "invalid transition", errs.ErrInvalidTransition.Error())
		assert.Equal(t, "precondition failed", errs.ErrPreconditionFailed.Error())
	})
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	t.Run("errors.Is works with custom errors", func(t *testing.T) {
		objectNotFoundErr := errs.NewObjectNotFoundError("userId", "123")
		require.ErrorIs(t, objectNotFoundErr, errs.ErrObjectNotFound)

		valueInvalidErr := errs.NewValueIsInvalidError("email")
		require.ErrorIs(t, valueInvalidErr, errs.ErrValueIsInvalid)

		valueOutOfRangeErr := errs.NewValueIsOutOfRangeError("age", 150, 0, 120)
		require.ErrorIs(t, valueOutOfRangeErr, errs.ErrValueIsOutOfRange)

		valueRequiredErr := errs.NewValueIsRequiredError("username")
		require.ErrorIs(t, valueRequiredErr, errs.ErrValueIsRequired)

		conflictErr := errs.NewConflictingWriteError("package", 7)
		require.ErrorIs(t, conflictErr, errs.ErrConflictingWrite)
	})
}

type status string

func (s status) String() string { return string(s) }

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("package", status("pending"), status("delivered"))

	assert.Equal(t, "package", err.Entity)
	assert.Equal(t, "pending", err.From)
	assert.Equal(t, "delivered", err.To)
	assert.Equal(t, "invalid transition: package pending -> delivered", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestPreconditionFailedError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewPreconditionFailedError("package is not pending")
		assert.Equal(t, "precondition failed: package is not pending", err.Error())
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("status is delivered")
		err := errs.NewPreconditionFailedErrorWithCause("shipment is immutable", cause)
		assert.Equal(t, "precondition failed: shipment is immutable (cause: status is delivered)", err.Error())
		assert.Equal(t, cause, err.Cause)
	})
}

func TestInternalError(t *testing.T) {
	cause := errors.New("connection reset")
	err := errs.NewInternalError("update package", cause)

	assert.Equal(t, "internal error: update package (cause: connection reset)", err.Error())
	require.ErrorIs(t, err, errs.ErrInternal)
	require.ErrorIs(t, err, cause)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Code
	}{
		{"nil", nil, ""},
		{"not found", errs.NewObjectNotFoundError("package", "1"), errs.CodeNotFound},
		{"invalid value", errs.NewValueIsInvalidError("status"), errs.CodeValidationFailed},
		{"required value", errs.NewValueIsRequiredError("description"), errs.CodeValidationFailed},
		{"out of range", errs.NewValueIsOutOfRangeError("weight", -1, 0, 100), errs.CodeValidationFailed},
		{"transition", errs.NewInvalidTransitionError("shipment", status("delivered"), status("pending")), errs.CodeInvalidTransition},
		{"precondition", errs.NewPreconditionFailedError("not pending"), errs.CodePreconditionFailed},
		{"conflict", errs.NewConflictingWriteError("shipment", 3), errs.CodeConflictingWrite},
		{"internal", errs.NewInternalError("commit", errors.New("boom")), errs.CodeInternal},
		{"unclassified", errors.New("boom"), errs.CodeInternal},
		{"wrapped", fmt.Errorf("handler: %w", errs.NewObjectNotFoundError("shipment", "9")), errs.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.CodeOf(tt.err))
		})
	}
}

func TestIsClassified(t *testing.T) {
	assert.False(t, errs.IsClassified(nil))
	assert.False(t, errs.IsClassified(errors.New("raw driver error")))
	assert.True(t, errs.IsClassified(errs.NewInternalError("commit", nil)))
	assert.True(t, errs.IsClassified(errs.NewPreconditionFailedError("immutable")))
}
