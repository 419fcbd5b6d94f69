package ports

import (
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"
)

// IDGenerator issues unique numeric identifiers for new aggregates.
type IDGenerator interface {
	NextID() kernel.ID
}

// TrackingCodeGenerator issues the tracking number and public tracking code of a new package.
// Both values must be unique; implementations must not perform network calls.
type TrackingCodeGenerator interface {
	NextTracking() (parcel.Tracking, error)
}
