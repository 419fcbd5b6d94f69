package packagerepo

import (
	"context"
	"errors"
	"sort"

	"shiptrack/internal/adapters/out/postgres/dbutil"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormPackageRepository implements ports.PackageRepository using GORM.
//
// Every Add and Update writes the package row and the ledger entries recorded
// on the aggregate through the same *gorm.DB, so inside a unit of work a status
// change and its history row commit or roll back together.
type GormPackageRepository struct {
	db     *gorm.DB
	ledger ports.HistoryLedger
}

func NewGormPackageRepository(db *gorm.DB, ledger ports.HistoryLedger) *GormPackageRepository {
	return &GormPackageRepository{db: db, ledger: ledger}
}

// Add saves a new package and its creation entry.
func (r *GormPackageRepository) Add(ctx context.Context, aggregate *parcel.Package) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dbutil.Classify("add package", err)
	}

	if err := r.ledger.Append(ctx, aggregate.Entries()...); err != nil {
		return err
	}

	aggregate.MarkPersisted(aggregate.Version())
	return nil
}

// Update saves a changed package if its stored version still matches.
func (r *GormPackageRepository) Update(ctx context.Context, aggregate *parcel.Package) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	expected := dto.Version
	dto.Version = expected + 1

	result := r.db.WithContext(ctx).
		Model(&PackageDTO{}).
		Where("id = ? AND version = ?", dto.ID, expected).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return dbutil.Classify("update package", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewConflictingWriteError("package", aggregate.ID())
	}

	if err := r.ledger.Append(ctx, aggregate.Entries()...); err != nil {
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	return nil
}

// Get retrieves an active package and locks its row until the unit ends.
func (r *GormPackageRepository) Get(ctx context.Context, id kernel.ID) (*parcel.Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PackageDTO
	err := dbutil.ForUpdate(r.db.WithContext(ctx)).
		First(&dto, "id = ? AND active = ?", id.Int64(), true).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("package", id.String())
		}
		return nil, dbutil.Classify("get package", err)
	}

	return toDomain(dto)
}

// GetMany retrieves and locks active packages ordered by id. The first id that
// is missing or inactive is reported as not found.
func (r *GormPackageRepository) GetMany(ctx context.Context, ids []kernel.ID) ([]*parcel.Package, error) {
	packages, err := r.FindMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	found := make(map[int64]struct{}, len(packages))
	for _, p := range packages {
		found[p.ID().Int64()] = struct{}{}
	}
	for _, id := range sortedUnique(ids) {
		if _, ok := found[id]; !ok {
			return nil, errs.NewObjectNotFoundError("package", kernel.MustNewID(id).String())
		}
	}

	return packages, nil
}

// FindMany retrieves and locks the active packages among ids, ordered by id.
func (r *GormPackageRepository) FindMany(ctx context.Context, ids []kernel.ID) ([]*parcel.Package, error) {
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
	}
	raw := sortedUnique(ids)
	if len(raw) == 0 {
		return []*parcel.Package{}, nil
	}

	var dtos []PackageDTO
	err := dbutil.ForUpdate(r.db.WithContext(ctx)).
		Where("id IN ? AND active = ?", raw, true).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, dbutil.Classify("find packages", err)
	}

	packages := make([]*parcel.Package, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	return packages, nil
}

// sortedUnique returns the distinct raw ids in ascending order, the order in which rows are locked.
func sortedUnique(ids []kernel.ID) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id.Int64()]; ok {
			continue
		}
		seen[id.Int64()] = struct{}{}
		out = append(out, id.Int64())
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
