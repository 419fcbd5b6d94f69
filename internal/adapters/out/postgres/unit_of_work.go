// Package postgres provides the GORM implementation of the Unit of Work pattern.
// A unit of work owns one database transaction and hands out repositories bound
// to it, so package rows, shipment rows, bindings and history entries written
// during one business operation commit or roll back together.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	if err := uow.PackageRepository().Update(ctx, p); err != nil {
//	    _ = uow.Rollback(ctx)
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines must use separate UnitOfWork instances
//   - Rows read through the repositories are locked with FOR UPDATE on PostgreSQL
//     until Commit or Rollback
package postgres

import (
	"context"

	"shiptrack/internal/adapters/out/postgres/dbutil"
	"shiptrack/internal/adapters/out/postgres/historyrepo"
	"shiptrack/internal/adapters/out/postgres/packagerepo"
	"shiptrack/internal/adapters/out/postgres/shipmentrepo"
	"shiptrack/internal/core/domain/model/history"
	"shiptrack/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
// Each business operation gets a fresh unit of work.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:       f.db,
		recorded: make([]history.Entry, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and remembers the ledger
// entries appended through it.
type GormUnitOfWork struct {
	db       *gorm.DB
	tx       *gorm.DB
	recorded []history.Entry
}

// Begin starts the transaction. Calling Begin again on an open unit is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return dbutil.Classify("begin", tx.Error)
	}
	uow.tx = tx
	uow.recorded = uow.recorded[:0]

	return nil
}

// Commit finalizes the transaction. Serialization failures reported at commit
// time surface as ConflictingWriteError.
//
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return dbutil.Classify("commit", err)
}

// Rollback discards the transaction and forgets the recorded entries.
//
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.recorded = uow.recorded[:0]
	return err
}

// PackageRepository returns a package repository bound to the open transaction,
// or to the plain connection when none is open.
func (uow *GormUnitOfWork) PackageRepository() ports.PackageRepository {
	return packagerepo.NewGormPackageRepository(uow.conn(), uow.HistoryLedger())
}

// ShipmentRepository returns a shipment repository bound to the open transaction.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn())
}

// HistoryLedger returns the ledger bound to the open transaction. Entries it
// appends are available from RecordedEntries.
func (uow *GormUnitOfWork) HistoryLedger() ports.HistoryLedger {
	return historyrepo.NewGormLedger(uow.conn(), uow)
}

// TrackEntries is called by the ledger after entries are inserted.
func (uow *GormUnitOfWork) TrackEntries(entries ...history.Entry) {
	uow.recorded = append(uow.recorded, entries...)
}

// RecordedEntries returns the entries appended in the current or last committed transaction.
func (uow *GormUnitOfWork) RecordedEntries() []history.Entry {
	out := make([]history.Entry, len(uow.recorded))
	copy(out, uow.recorded)
	return out
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
