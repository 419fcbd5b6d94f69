package parcel_test

import (
	"testing"

	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTable(t *testing.T) {
	allowed := map[parcel.Status][]parcel.Status{
		parcel.Pending:   {parcel.InTransit},
		parcel.InTransit: {parcel.Delivered, parcel.Returned},
		parcel.Returned:  {parcel.Pending},
		parcel.Delivered: {},
	}

	for _, from := range parcel.Statuses() {
		for _, to := range parcel.Statuses() {
			want := false
			for _, a := range allowed[from] {
				if a == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, parcel.Delivered.IsTerminal())
	assert.False(t, parcel.Returned.IsTerminal())
	assert.False(t, parcel.Pending.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want parcel.Status
	}{
		{"pending", parcel.Pending},
		{"IN_TRANSIT", parcel.InTransit},
		{"in-transit", parcel.InTransit},
		{" entregado ", parcel.Delivered},
		{"devuelto", parcel.Returned},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parcel.ParseStatus(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown value", func(t *testing.T) {
		_, err := parcel.ParseStatus("lost")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "in_transit", parcel.InTransit.String())
	assert.Equal(t, "unknown", parcel.Unknown.String())
	require.Error(t, parcel.Unknown.Validate())
	require.Error(t, parcel.Status(42).Validate())
}
