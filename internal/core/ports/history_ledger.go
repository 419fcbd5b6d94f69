package ports

import (
	"context"

	"shiptrack/internal/core/domain/model/history"
	"shiptrack/internal/core/domain/model/kernel"
)

// HistoryLedger is the append-only package status log.
type HistoryLedger interface {
	// Append writes entries in order. Entries are never updated or deleted.
	Append(ctx context.Context, entries ...history.Entry) error

	// ListByPackage returns the entries of one package, newest first.
	ListByPackage(ctx context.Context, packageID kernel.ID) ([]history.Entry, error)
}
