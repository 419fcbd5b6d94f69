// Package shipmentrepo maps the shipment aggregate to the shipments table and
// its membership to the shipment_packages bridge table.
package shipmentrepo

import (
	"sort"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
)

// ShipmentDTO represents the database structure for persisting shipment aggregates.
// PackageID holds the founding package, the first member of the aggregate.
type ShipmentDTO struct {
	ID                int64      `gorm:"primaryKey;autoIncrement:false"`
	PackageID         *int64     `gorm:"index"`
	Origin            string     `gorm:"type:varchar(255);not null"`
	Destination       string     `gorm:"type:varchar(255);not null"`
	Status            string     `gorm:"type:varchar(32);not null;index"`
	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time
	Active            bool      `gorm:"not null;index"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt         time.Time `gorm:"not null;autoUpdateTime:false"`
	Version           int       `gorm:"not null"`

	Packages []ShipmentPackageDTO `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

// ShipmentPackageDTO is one binding between a shipment and a package.
type ShipmentPackageDTO struct {
	ShipmentID int64     `gorm:"primaryKey;autoIncrement:false"`
	PackageID  int64     `gorm:"primaryKey;autoIncrement:false;index"`
	BoundAt    time.Time `gorm:"not null"`
}

func (ShipmentPackageDTO) TableName() string {
	return "shipment_packages"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		ID:                s.ID().Int64(),
		Origin:            s.Route().Origin().String(),
		Destination:       s.Route().Destination().String(),
		Status:            s.Status().String(),
		EstimatedDelivery: s.EstimatedDelivery(),
		DeliveredAt:       s.DeliveredAt(),
		Active:            s.IsActive(),
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.UpdatedAt(),
		Version:           s.Version(),
	}
	if founding, ok := s.Founding(); ok {
		raw := founding.Int64()
		dto.PackageID = &raw
	}

	members := s.Members()
	dto.Packages = make([]ShipmentPackageDTO, 0, len(members))
	for _, m := range members {
		dto.Packages = append(dto.Packages, ShipmentPackageDTO{
			ShipmentID: dto.ID,
			PackageID:  m.Int64(),
			BoundAt:    s.UpdatedAt(),
		})
	}
	return dto
}

// toDomain restores a shipment. Members are the founding package followed by
// the other bindings in the order they were made.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.NewID(dto.ID)
	if err != nil {
		return nil, err
	}

	route, err := kernel.ParseRoute(dto.Origin, dto.Destination)
	if err != nil {
		return nil, err
	}

	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	bindings := make([]ShipmentPackageDTO, len(dto.Packages))
	copy(bindings, dto.Packages)
	sort.SliceStable(bindings, func(i, j int) bool {
		if !bindings[i].BoundAt.Equal(bindings[j].BoundAt) {
			return bindings[i].BoundAt.Before(bindings[j].BoundAt)
		}
		return bindings[i].PackageID < bindings[j].PackageID
	})

	members := make([]kernel.ID, 0, len(bindings)+1)
	if dto.PackageID != nil {
		founding, foundingErr := kernel.NewID(*dto.PackageID)
		if foundingErr != nil {
			return nil, foundingErr
		}
		members = append(members, founding)
	}
	for _, b := range bindings {
		member, memberErr := kernel.NewID(b.PackageID)
		if memberErr != nil {
			return nil, memberErr
		}
		members = append(members, member)
	}

	return shipment.RestoreShipment(id, route, status, dto.EstimatedDelivery, dto.DeliveredAt, dto.Active,
		members, dto.CreatedAt, dto.UpdatedAt, dto.Version)
}
