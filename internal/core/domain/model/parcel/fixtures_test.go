package parcel_test

import (
	"testing"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

func validDetails(t *testing.T) parcel.Details {
	t.Helper()
	dims, err := parcel.NewDimensions(decimal.NewFromInt(30), decimal.NewFromInt(20), decimal.NewFromInt(10))
	require.NoError(t, err)
	details, err := parcel.NewDetails("books", decimal.RequireFromString("2.5"), dims, decimal.NewFromInt(100))
	require.NoError(t, err)
	return details
}

func validRoute(t *testing.T) kernel.Route {
	t.Helper()
	route, err := kernel.ParseRoute("Calle 1, Bogota", "Carrera 7, Medellin")
	require.NoError(t, err)
	return route
}

func validTracking(t *testing.T) parcel.Tracking {
	t.Helper()
	tracking, err := parcel.NewTracking("TRK-1", "8f14e45f")
	require.NoError(t, err)
	return tracking
}

func newPackage(t *testing.T) *parcel.Package {
	t.Helper()
	p, err := parcel.NewPackage(kernel.MustNewID(1), kernel.MustNewID(99), validTracking(t), validDetails(t),
		validRoute(t), nil, baseTime)
	require.NoError(t, err)
	return p
}

func restorePackage(t *testing.T, status parcel.Status) *parcel.Package {
	t.Helper()
	p, err := parcel.RestorePackage(kernel.MustNewID(1), kernel.MustNewID(99), validTracking(t), validDetails(t),
		validRoute(t), status, true, baseTime, baseTime, 3)
	require.NoError(t, err)
	return p
}
