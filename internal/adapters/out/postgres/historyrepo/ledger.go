package historyrepo

import (
	"context"

	"shiptrack/internal/adapters/out/postgres/dbutil"
	"shiptrack/internal/core/domain/model/history"
	"shiptrack/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormLedger implements ports.HistoryLedger using GORM.
type GormLedger struct {
	db      *gorm.DB
	tracker entryTracker
}

// entryTracker collects the entries appended in a unit of work.
type entryTracker interface {
	TrackEntries(entries ...history.Entry)
}

func NewGormLedger(db *gorm.DB, tracker entryTracker) *GormLedger {
	return &GormLedger{db: db, tracker: tracker}
}

// Append inserts entries in order. Ids are assigned by the database.
func (l *GormLedger) Append(ctx context.Context, entries ...history.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
		dto := fromDomain(e)
		dto.ID = 0
		dtos = append(dtos, dto)
	}

	if err := l.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		return dbutil.Classify("append history", err)
	}

	stored := make([]history.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return err
		}
		stored = append(stored, e)
	}
	if l.tracker != nil {
		l.tracker.TrackEntries(stored...)
	}
	return nil
}

// ListByPackage returns the entries of one package, newest first. Entries with
// the same timestamp are ordered by descending id.
func (l *GormLedger) ListByPackage(ctx context.Context, packageID kernel.ID) ([]history.Entry, error) {
	if err := packageID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	if err := l.db.WithContext(ctx).
		Where("package_id = ?", packageID.Int64()).
		Order("recorded_at DESC, id DESC").
		Find(&dtos).Error; err != nil {
		return nil, dbutil.Classify("list history", err)
	}

	entries := make([]history.Entry, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
