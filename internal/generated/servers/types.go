// Package servers holds the request and response types of api/openapi.yaml and
// the echo wrapper that binds path and query parameters before calling a ServerInterface.
package servers

import (
	"time"
)

// Defines values for ErrorCode.
const (
	ErrorCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrorCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrorCodeInvalidTransition  ErrorCode = "INVALID_TRANSITION"
	ErrorCodePreconditionFailed ErrorCode = "PRECONDITION_FAILED"
	ErrorCodeConflictingWrite   ErrorCode = "CONFLICTING_WRITE"
	ErrorCodeInternal           ErrorCode = "INTERNAL"
)

// ErrorCode defines model for Error.Code.
type ErrorCode string

// Error defines model for Error.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// NewPackage defines model for NewPackage.
type NewPackage struct {
	ClientId      string `json:"client_id" validate:"required,numeric"`
	Description   string `json:"description" validate:"required,max=255"`
	Weight        string `json:"weight" validate:"required"`
	Length        string `json:"length" validate:"required"`
	Width         string `json:"width" validate:"required"`
	Height        string `json:"height" validate:"required"`
	DeclaredValue string `json:"declared_value" validate:"required"`
	Origin        string `json:"origin" validate:"required,max=255"`
	Destination   string `json:"destination" validate:"required,max=255"`
}

// PackagePatch defines model for PackagePatch.
type PackagePatch struct {
	Description   *string `json:"description,omitempty" validate:"omitempty,max=255"`
	Weight        *string `json:"weight,omitempty"`
	Length        *string `json:"length,omitempty"`
	Width         *string `json:"width,omitempty"`
	Height        *string `json:"height,omitempty"`
	DeclaredValue *string `json:"declared_value,omitempty"`
	Origin        *string `json:"origin,omitempty" validate:"omitempty,max=255"`
	Destination   *string `json:"destination,omitempty" validate:"omitempty,max=255"`
}

// Package defines model for Package.
type Package struct {
	Id             string    `json:"id"`
	ClientId       string    `json:"client_id"`
	TrackingNumber string    `json:"tracking_number"`
	PublicCode     string    `json:"public_code"`
	Description    string    `json:"description"`
	Weight         string    `json:"weight"`
	Length         string    `json:"length"`
	Width          string    `json:"width"`
	Height         string    `json:"height"`
	DeclaredValue  string    `json:"declared_value"`
	Origin         string    `json:"origin"`
	Destination    string    `json:"destination"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Version        int       `json:"version"`
}

// StatusChange defines model for StatusChange.
type StatusChange struct {
	Status  string `json:"status" validate:"required"`
	Comment string `json:"comment,omitempty" validate:"max=400"`
}

// HistoryEntry defines model for HistoryEntry.
type HistoryEntry struct {
	Id             string    `json:"id"`
	PackageId      string    `json:"package_id"`
	PreviousStatus *string   `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Comment        string    `json:"comment"`
	ActorId        *string   `json:"actor_id"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// NewShipment defines model for NewShipment.
type NewShipment struct {
	PackageId         string     `json:"package_id" validate:"required,numeric"`
	Origin            string     `json:"origin" validate:"required,max=255"`
	Destination       string     `json:"destination" validate:"required,max=255"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
}

// ShipmentPatch defines model for ShipmentPatch.
type ShipmentPatch struct {
	Origin            *string    `json:"origin,omitempty" validate:"omitempty,max=255"`
	Destination       *string    `json:"destination,omitempty" validate:"omitempty,max=255"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
	FoundingPackageId *string    `json:"founding_package_id,omitempty" validate:"omitempty,numeric"`
}

// Shipment defines model for Shipment.
type Shipment struct {
	Id                string     `json:"id"`
	Origin            string     `json:"origin"`
	Destination       string     `json:"destination"`
	Status            string     `json:"status"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
	DeliveredAt       *time.Time `json:"delivered_at"`
	FoundingPackageId *string    `json:"founding_package_id"`
	PackageIds        []string   `json:"package_ids"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	Version           int        `json:"version"`
}

// AddPackages defines model for AddPackages.
type AddPackages struct {
	PackageIds []string `json:"package_ids" validate:"required,min=1,max=500,dive,numeric"`
}

// AddedPackages defines model for AddedPackages.
type AddedPackages struct {
	Added []string `json:"added"`
}

// OverdueShipment defines model for OverdueShipment.
type OverdueShipment struct {
	Id                string    `json:"id"`
	Origin            string    `json:"origin"`
	Destination       string    `json:"destination"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
	PackageCount      int       `json:"package_count"`
}

// Id defines model for ID.
type Id = int64

// GetOverdueShipmentsParams defines parameters for GetOverdueShipments.
type GetOverdueShipmentsParams struct {
	AsOf *time.Time `form:"as_of,omitempty" json:"as_of,omitempty"`
}

// ActorHeader is the request header carrying the acting user id.
const ActorHeader = "X-User-ID"
