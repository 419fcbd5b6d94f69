package queries

import (
	"errors"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

var ErrGetPackageHistoryQueryIsNotConstructed = errors.New(
	"GetPackageHistoryQuery must be created via NewGetPackageHistoryQuery constructor",
)

// GetPackageHistoryQuery lists the ledger of one package, newest entry first.
// The ledger of a deleted package stays readable.
type GetPackageHistoryQuery struct {
	packageID kernel.ID
	guard     guard.ConstructorGuard
}

func NewGetPackageHistoryQuery(packageID kernel.ID) (GetPackageHistoryQuery, error) {
	if err := packageID.Validate(); err != nil {
		return GetPackageHistoryQuery{}, errs.NewValueIsRequiredErrorWithCause("package id", err)
	}
	return GetPackageHistoryQuery{packageID: packageID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPackageHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetPackageHistoryQueryIsNotConstructed)
}

func (q GetPackageHistoryQuery) PackageID() kernel.ID {
	return q.packageID
}

// HistoryEntryView is one ledger row. PreviousStatus is nil for the creation entry.
type HistoryEntryView struct {
	ID             int64
	PackageID      kernel.ID
	PreviousStatus *string
	NewStatus      string
	Comment        string
	ActorID        *kernel.ID
	RecordedAt     time.Time
}
