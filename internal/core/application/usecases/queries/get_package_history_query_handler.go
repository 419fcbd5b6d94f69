package queries

import (
	"context"
	"database/sql"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetPackageHistoryQueryHandler struct {
	db *gorm.DB
}

func NewGetPackageHistoryQueryHandler(db *gorm.DB) GetPackageHistoryQueryHandler {
	return GetPackageHistoryQueryHandler{db: db}
}

func (h GetPackageHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetPackageHistoryQuery,
) ([]HistoryEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	exists, err := rowExists(ctx, h.db, "SELECT 1 FROM packages WHERE id = ?", query.PackageID().Int64())
	if err != nil {
		return nil, errs.NewInternalError("get package history", err)
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("package", query.PackageID().String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			previous_status,
			new_status,
			comment,
			actor_id,
			recorded_at
		FROM package_history
		WHERE package_id = ?
		ORDER BY recorded_at DESC, id DESC
	`, query.PackageID().Int64()).Rows()
	if err != nil {
		return nil, errs.NewInternalError("get package history", err)
	}
	defer rows.Close()

	entries := make([]HistoryEntryView, 0)
	for rows.Next() {
		entry := HistoryEntryView{PackageID: query.PackageID()}
		var previous sql.NullString
		var actor sql.NullInt64

		if err = rows.Scan(
			&entry.ID,
			&previous,
			&entry.NewStatus,
			&entry.Comment,
			&actor,
			&entry.RecordedAt,
		); err != nil {
			return nil, errs.NewInternalError("get package history", err)
		}

		if previous.Valid {
			entry.PreviousStatus = &previous.String
		}
		if actor.Valid {
			actorID, idErr := kernel.NewID(actor.Int64)
			if idErr != nil {
				return nil, errs.NewInternalError("get package history", idErr)
			}
			entry.ActorID = &actorID
		}
		entry.RecordedAt = entry.RecordedAt.UTC()
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewInternalError("get package history", err)
	}

	return entries, nil
}
