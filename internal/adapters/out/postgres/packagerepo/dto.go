// Package packagerepo maps the package aggregate to the packages table.
package packagerepo

import (
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"

	"github.com/shopspring/decimal"
)

// PackageDTO represents the database structure for persisting package aggregates.
// Timestamps are owned by the aggregate, so GORM's automatic time tracking is off.
type PackageDTO struct {
	ID             int64           `gorm:"primaryKey;autoIncrement:false"`
	ClientID       int64           `gorm:"not null;index"`
	TrackingNumber string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	PublicCode     string          `gorm:"type:varchar(64);not null;uniqueIndex"`
	Description    string          `gorm:"type:varchar(500);not null"`
	Weight         decimal.Decimal `gorm:"type:numeric(10,3);not null"`
	Length         decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Width          decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Height         decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	DeclaredValue  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Origin         string          `gorm:"type:varchar(255);not null"`
	Destination    string          `gorm:"type:varchar(255);not null"`
	Status         string          `gorm:"type:varchar(32);not null;index"`
	Active         bool            `gorm:"not null;index"`
	CreatedAt      time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt      time.Time       `gorm:"not null;autoUpdateTime:false"`
	Version        int             `gorm:"not null"`
}

func (PackageDTO) TableName() string {
	return "packages"
}

func fromDomain(p *parcel.Package) PackageDTO {
	details := p.Details()
	dims := details.Dimensions()

	return PackageDTO{
		ID:             p.ID().Int64(),
		ClientID:       p.ClientID().Int64(),
		TrackingNumber: p.Tracking().Number(),
		PublicCode:     p.Tracking().PublicCode(),
		Description:    details.Description(),
		Weight:         details.Weight(),
		Length:         dims.Length(),
		Width:          dims.Width(),
		Height:         dims.Height(),
		DeclaredValue:  details.DeclaredValue(),
		Origin:         p.Route().Origin().String(),
		Destination:    p.Route().Destination().String(),
		Status:         p.Status().String(),
		Active:         p.IsActive(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
		Version:        p.Version(),
	}
}

func toDomain(dto PackageDTO) (*parcel.Package, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}
	clientID, err := kernel.NewID(dto.ClientID)
	if err != nil {
		return nil, err
	}

	tracking, err := parcel.NewTracking(dto.TrackingNumber, dto.PublicCode)
	if err != nil {
		return nil, err
	}

	dims, err := parcel.NewDimensions(dto.Length, dto.Width, dto.Height)
	if err != nil {
		return nil, err
	}
	details, err := parcel.NewDetails(dto.Description, dto.Weight, dims, dto.DeclaredValue)
	if err != nil {
		return nil, err
	}

	route, err := kernel.ParseRoute(dto.Origin, dto.Destination)
	if err != nil {
		return nil, err
	}

	status, err := parcel.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return parcel.RestorePackage(id, clientID, tracking, details, route, status, dto.Active,
		dto.CreatedAt, dto.UpdatedAt, dto.Version)
}
