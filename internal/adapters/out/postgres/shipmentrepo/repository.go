package shipmentrepo

import (
	"context"
	"errors"

	"shiptrack/internal/adapters/out/postgres/dbutil"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db *gorm.DB
}

func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Add saves a new shipment and binds its members.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return dbutil.Classify("add shipment", err)
	}
	if err := r.bind(db, dto.Packages); err != nil {
		return err
	}

	aggregate.MarkPersisted(aggregate.Version())
	return nil
}

// Update saves a changed shipment if its stored version still matches, then
// makes the binding rows equal to the aggregate membership. Existing bindings
// keep their original bound_at.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1

	db := r.db.WithContext(ctx)
	result := db.Model(&ShipmentDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select("*").
		Omit(clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return dbutil.Classify("update shipment", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictingWriteError("shipment", aggregate.ID())
	}

	keep := make([]int64, 0, len(dto.Packages))
	for _, b := range dto.Packages {
		keep = append(keep, b.PackageID)
	}
	unbind := db.Where("shipment_id = ?", dto.ID)
	if len(keep) > 0 {
		unbind = unbind.Where("package_id NOT IN ?", keep)
	}
	if err := unbind.Delete(&ShipmentPackageDTO{}).Error; err != nil {
		return dbutil.Classify("unbind packages", err)
	}
	if err := r.bind(db, dto.Packages); err != nil {
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	return nil
}

// Get retrieves an active shipment with its membership and locks its row.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.ID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	var dto ShipmentDTO
	if err := dbutil.ForUpdate(db).First(&dto, "id = ? AND active = ?", id.Int64(), true).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, dbutil.Classify("get shipment", err)
	}

	shipments, err := r.withBindings(db, []ShipmentDTO{dto})
	if err != nil {
		return nil, err
	}
	return shipments[0], nil
}

// ListActiveByPackage returns and locks the active shipments binding packageID, ordered by id.
func (r *GormShipmentRepository) ListActiveByPackage(ctx context.Context, packageID kernel.ID) ([]*shipment.Shipment, error) {
	if err := packageID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	bound := db.Model(&ShipmentPackageDTO{}).Select("shipment_id").Where("package_id = ?", packageID.Int64())

	var dtos []ShipmentDTO
	if err := dbutil.ForUpdate(db).
		Where("active = ? AND id IN (?)", true, bound).
		Order("id").
		Find(&dtos).Error; err != nil {
		return nil, dbutil.Classify("list shipments by package", err)
	}

	return r.withBindings(db, dtos)
}

func (r *GormShipmentRepository) bind(db *gorm.DB, bindings []ShipmentPackageDTO) error {
	if len(bindings) == 0 {
		return nil
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&bindings).Error; err != nil {
		return dbutil.Classify("bind packages", err)
	}
	return nil
}

func (r *GormShipmentRepository) withBindings(db *gorm.DB, dtos []ShipmentDTO) ([]*shipment.Shipment, error) {
	if len(dtos) == 0 {
		return []*shipment.Shipment{}, nil
	}

	ids := make([]int64, 0, len(dtos))
	for _, dto := range dtos {
		ids = append(ids, dto.ID)
	}

	var bindings []ShipmentPackageDTO
	if err := db.Where("shipment_id IN ?", ids).
		Order("bound_at, package_id").
		Find(&bindings).Error; err != nil {
		return nil, dbutil.Classify("load bindings", err)
	}

	byShipment := make(map[int64][]ShipmentPackageDTO, len(dtos))
	for _, b := range bindings {
		byShipment[b.ShipmentID] = append(byShipment[b.ShipmentID], b)
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		dto.Packages = byShipment[dto.ID]
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}
	return shipments, nil
}
