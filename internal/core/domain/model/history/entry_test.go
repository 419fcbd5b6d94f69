package history_test

import (
	"strings"
	"testing"
	"time"

	"shiptrack/internal/core/domain/model/history"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntry(t *testing.T) {
	packageID := kernel.MustNewID(10)
	actor := kernel.MustNewID(7)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creation entry has no previous status", func(t *testing.T) {
		e, err := history.NewEntry(packageID, "", "pending", "package created", nil, at)

		require.NoError(t, err)
		require.NoError(t, e.Validate())
		prev, ok := e.PreviousStatus()
		assert.False(t, ok)
		assert.Empty(t, prev)
		assert.Equal(t, "pending", e.NewStatus())
		assert.Nil(t, e.ActorID())
		assert.Zero(t, e.ID())
	})

	t.Run("keeps actor and trims comment", func(t *testing.T) {
		e, err := history.NewEntry(packageID, "pending", "in_transit", "  picked up ", &actor, at)

		require.NoError(t, err)
		prev, ok := e.PreviousStatus()
		assert.True(t, ok)
		assert.Equal(t, "pending", prev)
		assert.Equal(t, "picked up", e.Comment())
		require.NotNil(t, e.ActorID())
		assert.True(t, e.ActorID().IsEqual(actor))
		assert.Equal(t, at, e.RecordedAt())
	})

	t.Run("rejects missing package and status", func(t *testing.T) {
		_, err := history.NewEntry(kernel.ID{}, "", "", "", nil, at)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "package id")
		assert.Contains(t, err.Error(), "new status")
	})

	t.Run("rejects overlong comment", func(t *testing.T) {
		_, err := history.NewEntry(packageID, "", "pending", strings.Repeat("x", history.MaxCommentLength+1), nil, at)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects zero timestamp", func(t *testing.T) {
		_, err := history.NewEntry(packageID, "", "pending", "", nil, time.Time{})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestRestoreEntry(t *testing.T) {
	e, err := history.RestoreEntry(42, kernel.MustNewID(1), "in_transit", "delivered", "shipment delivered", nil,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, int64(42), e.ID())
}

func TestEntry_ZeroValueIsInvalid(t *testing.T) {
	var e history.Entry

	assert.ErrorIs(t, e.Validate(), history.ErrEntryIsNotConstructed)
}
