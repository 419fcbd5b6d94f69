// Package historyrepo stores the append-only package history ledger.
package historyrepo

import (
	"time"

	"shiptrack/internal/core/domain/model/history"
	"shiptrack/internal/core/domain/model/kernel"
)

// EntryDTO is one row of package_history. Rows are inserted and never updated.
type EntryDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	PackageID      int64     `gorm:"not null;index:idx_package_history_package_recorded,priority:1"`
	PreviousStatus *string   `gorm:"type:varchar(32)"`
	NewStatus      string    `gorm:"type:varchar(32);not null"`
	Comment        string    `gorm:"type:varchar(500);not null"`
	ActorID        *int64    `gorm:"index"`
	RecordedAt     time.Time `gorm:"not null;index:idx_package_history_package_recorded,priority:2"`
}

func (EntryDTO) TableName() string {
	return "package_history"
}

func fromDomain(e history.Entry) EntryDTO {
	dto := EntryDTO{
		ID:         e.ID(),
		PackageID:  e.PackageID().Int64(),
		NewStatus:  e.NewStatus(),
		Comment:    e.Comment(),
		RecordedAt: e.RecordedAt(),
	}
	if previous, ok := e.PreviousStatus(); ok {
		dto.PreviousStatus = &previous
	}
	if actor := e.ActorID(); actor != nil {
		raw := actor.Int64()
		dto.ActorID = &raw
	}
	return dto
}

func toDomain(dto EntryDTO) (history.Entry, error) {
	packageID, err := kernel.NewID(dto.PackageID)
	if err != nil {
		return history.Entry{}, err
	}

	var actor *kernel.ID
	if dto.ActorID != nil {
		id, actorErr := kernel.NewID(*dto.ActorID)
		if actorErr != nil {
			return history.Entry{}, actorErr
		}
		actor = &id
	}

	previous := ""
	if dto.PreviousStatus != nil {
		previous = *dto.PreviousStatus
	}

	return history.RestoreEntry(dto.ID, packageID, previous, dto.NewStatus, dto.Comment, actor, dto.RecordedAt)
}
