package kernel_test

import (
	"strings"
	"testing"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("trims surrounding whitespace", func(t *testing.T) {
		a, err := kernel.NewAddress("  Av. Siempre Viva 742 ")

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "Av. Siempre Viva 742", a.String())
	})

	t.Run("empty is required", func(t *testing.T) {
		_, err := kernel.NewAddress("   ")

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("too long is out of range", func(t *testing.T) {
		_, err := kernel.NewAddress(strings.Repeat("a", kernel.MaxAddressLength+1))

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var a kernel.Address

		assert.ErrorIs(t, a.Validate(), kernel.ErrAddressIsNotConstructed)
	})
}

func TestParseRoute(t *testing.T) {
	r, err := kernel.ParseRoute("Origin St 1", "Destination Ave 2")
	require.NoError(t, err)
	assert.Equal(t, "Origin St 1", r.Origin().String())
	assert.Equal(t, "Destination Ave 2", r.Destination().String())
	require.NoError(t, r.Validate())

	_, err = kernel.ParseRoute("", "Destination Ave 2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "origin")

	_, err = kernel.ParseRoute("Origin St 1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destination")

	var zero kernel.Route
	assert.ErrorIs(t, zero.Validate(), kernel.ErrRouteIsNotConstructed)
}
