package shipment_test

import (
	"testing"

	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTable(t *testing.T) {
	allowed := map[shipment.Status][]shipment.Status{
		shipment.Pending:   {shipment.InTransit, shipment.Cancelled},
		shipment.InTransit: {shipment.Delivered, shipment.Returned, shipment.Cancelled},
	}

	for _, from := range shipment.Statuses() {
		for _, to := range shipment.Statuses() {
			assert.Equal(t, contains(allowed[from], to), from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := map[string]shipment.Status{
		"pending":    shipment.Pending,
		"in_transit": shipment.InTransit,
		"entregado":  shipment.Delivered,
		"Devuelto":   shipment.Returned,
		"cancelado":  shipment.Cancelled,
		"canceled":   shipment.Cancelled,
		"cancelled":  shipment.Cancelled,
	}
	for in, want := range tests {
		got, err := shipment.ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := shipment.ParseStatus("perdido")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestStatus_IsImmutable(t *testing.T) {
	assert.True(t, shipment.Delivered.IsImmutable())
	assert.True(t, shipment.Cancelled.IsImmutable())
	assert.False(t, shipment.Returned.IsImmutable())
	assert.False(t, shipment.InTransit.IsImmutable())
	assert.Equal(t, "cancelled", shipment.Cancelled.String())
}

func TestStatus_IsTerminal(t *testing.T) {
	for _, s := range []shipment.Status{shipment.Delivered, shipment.Returned, shipment.Cancelled} {
		assert.True(t, s.IsTerminal(), s.String())
	}
	assert.False(t, shipment.Pending.IsTerminal())
	assert.False(t, shipment.InTransit.IsTerminal())
}

func contains(list []shipment.Status, s shipment.Status) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
