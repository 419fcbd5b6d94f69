package history

import (
	"errors"
	"strings"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

// MaxCommentLength bounds the free-text comment stored with an entry.
const MaxCommentLength = 500

// ErrEntryIsNotConstructed is returned when a zero Entry is used.
var ErrEntryIsNotConstructed = errors.New("history entry must be created via NewEntry or RestoreEntry")

// Entry is an immutable record of one package status change.
//
// Statuses are stored as their persisted names so the ledger does not depend on
// the package model. The previous status is empty for the entry written when the
// package is created.
type Entry struct { //nolint:recvcheck //using for validation
	id             int64
	packageID      kernel.ID
	previousStatus string
	newStatus      string
	comment        string
	actorID        *kernel.ID
	recordedAt     time.Time
	guard          guard.ConstructorGuard
}

// NewEntry builds an entry that has not been appended yet. Its ID is assigned by the ledger.
func NewEntry(
	packageID kernel.ID,
	previousStatus, newStatus string,
	comment string,
	actorID *kernel.ID,
	recordedAt time.Time,
) (Entry, error) {
	e := Entry{
		previousStatus: previousStatus,
		recordedAt:     recordedAt.UTC(),
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		e.setPackageID(packageID),
		e.setNewStatus(newStatus),
		e.setComment(comment),
		e.setActor(actorID),
	); err != nil {
		return Entry{}, err
	}

	if recordedAt.IsZero() {
		return Entry{}, errs.NewValueIsRequiredError("recorded at")
	}

	return e, nil
}

// RestoreEntry rebuilds an appended entry from storage.
func RestoreEntry(
	id int64,
	packageID kernel.ID,
	previousStatus, newStatus string,
	comment string,
	actorID *kernel.ID,
	recordedAt time.Time,
) (Entry, error) {
	e, err := NewEntry(packageID, previousStatus, newStatus, comment, actorID, recordedAt)
	if err != nil {
		return Entry{}, err
	}
	e.id = id
	return e, nil
}

func (e Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

// ID is zero until the entry has been appended.
func (e Entry) ID() int64 {
	return e.id
}

func (e Entry) PackageID() kernel.ID {
	return e.packageID
}

// PreviousStatus returns the status before the change and false for the creation entry.
func (e Entry) PreviousStatus() (string, bool) {
	return e.previousStatus, e.previousStatus != ""
}

func (e Entry) NewStatus() string {
	return e.newStatus
}

func (e Entry) Comment() string {
	return e.comment
}

func (e Entry) ActorID() *kernel.ID {
	if e.actorID == nil {
		return nil
	}
	id := *e.actorID
	return &id
}

func (e Entry) RecordedAt() time.Time {
	return e.recordedAt
}

func (e *Entry) setPackageID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("package id", err)
	}
	e.packageID = id
	return nil
}

func (e *Entry) setNewStatus(status string) error {
	if status == "" {
		return errs.NewValueIsRequiredError("new status")
	}
	e.newStatus = status
	return nil
}

func (e *Entry) setComment(comment string) error {
	comment = strings.TrimSpace(comment)
	if len([]rune(comment)) > MaxCommentLength {
		return errs.NewValueIsOutOfRangeError("comment length", len([]rune(comment)), 0, MaxCommentLength)
	}
	e.comment = comment
	return nil
}

func (e *Entry) setActor(actorID *kernel.ID) error {
	if actorID == nil {
		return nil
	}
	if err := actorID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("actor id", err)
	}
	id := *actorID
	e.actorID = &id
	return nil
}
