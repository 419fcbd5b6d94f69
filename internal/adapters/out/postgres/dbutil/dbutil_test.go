package dbutil_test

import (
	"errors"
	"fmt"
	"testing"

	"shiptrack/internal/adapters/out/postgres/dbutil"
	"shiptrack/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Code
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: dbutil.SerializationFailure}, want: errs.CodeConflictingWrite},
		{name: "deadlock", err: fmt.Errorf("update: %w", &pgconn.PgError{Code: dbutil.DeadlockDetected}), want: errs.CodeConflictingWrite},
		{name: "lock timeout", err: &pgconn.PgError{Code: dbutil.LockNotAvailable}, want: errs.CodeConflictingWrite},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: errs.CodeInternal},
		{name: "sqlite busy", err: errors.New("database is locked (5) (SQLITE_BUSY)"), want: errs.CodeConflictingWrite},
		{name: "plain error", err: errors.New("connection refused"), want: errs.CodeInternal},
		{name: "already classified", err: errs.NewObjectNotFoundError("package", 1), want: errs.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dbutil.Classify("update package", tt.err)
			assert.Equal(t, tt.want, errs.CodeOf(got))
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.NoError(t, dbutil.Classify("commit", nil))
}
