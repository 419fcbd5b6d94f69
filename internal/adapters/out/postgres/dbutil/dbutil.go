// Package dbutil holds the storage helpers shared by the GORM repositories:
// SQLSTATE classification and dialect aware row locking.
package dbutil

import (
	"errors"
	"strings"

	"shiptrack/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLSTATE codes reported as conflicting writes. The caller may retry the whole unit.
const (
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"
)

// Classify maps a storage error to the error taxonomy. Already classified errors
// are returned unchanged, serialization failures, deadlocks and lock timeouts
// become ConflictingWriteError, everything else becomes InternalError.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errs.IsClassified(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case SerializationFailure, DeadlockDetected, LockNotAvailable:
			return errs.NewConflictingWriteErrorWithCause(op, pgErr.Code, err)
		}
	}

	// SQLITE_BUSY when a second writer hits a locked database file.
	if strings.Contains(err.Error(), "database is locked") {
		return errs.NewConflictingWriteErrorWithCause(op, "sqlite", err)
	}

	return errs.NewInternalError(op, err)
}

// IsPostgres reports whether db talks to PostgreSQL.
func IsPostgres(db *gorm.DB) bool {
	return db.Dialector != nil && db.Dialector.Name() == "postgres"
}

// ForUpdate adds FOR UPDATE to the next query on PostgreSQL. SQLite serializes
// writers on the database file and has no row locks, so db is returned as is.
func ForUpdate(db *gorm.DB) *gorm.DB {
	if IsPostgres(db) {
		return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}
	return db
}
