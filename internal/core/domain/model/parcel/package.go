package parcel

import (
	"errors"
	"fmt"
	"time"

	"shiptrack/internal/core/domain/model/history"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

// CommentCreated is the ledger comment of the entry written when a package is created.
const CommentCreated = "package created"

// ErrPackageIsNotConstructed is returned when a Package was not built by NewPackage or RestorePackage.
var ErrPackageIsNotConstructed = errors.New("package must be created via NewPackage or RestorePackage")

// Package is the aggregate root for a single shippable item.
//
// Invariants:
//   - Status changes only through TransitionTo, Release or Detach, which
//     consult the adjacency table and record exactly one ledger entry per change
//   - Descriptive fields can only change while the package is pending or returned
//   - A delivered package is terminal: it cannot move, be edited or be deleted
//
// Ledger entries are kept on the aggregate until the repository persists them
// together with the row, see Entries and MarkPersisted.
type Package struct {
	id        kernel.ID
	clientID  kernel.ID
	tracking  Tracking
	details   Details
	route     kernel.Route
	status    Status
	active    bool
	createdAt time.Time
	updatedAt time.Time

	// version is the optimistic concurrency token of the stored row
	version int

	// entries are ledger entries not yet written
	entries []history.Entry

	guard guard.ConstructorGuard
}

// NewPackage creates a pending package and records its creation entry.
//
// Example:
//
//	p, err := parcel.NewPackage(id, clientID, tracking, details, route, &actor, clock.Now())
//	if err != nil {
//	    return nil, err
//	}
//	fmt.Println(p.Status()) // pending
func NewPackage(
	id, clientID kernel.ID,
	tracking Tracking,
	details Details,
	route kernel.Route,
	actor *kernel.ID,
	at time.Time,
) (*Package, error) {
	p := &Package{
		status:    Pending,
		active:    true,
		createdAt: at.UTC(),
		updatedAt: at.UTC(),
		version:   1,
		guard:     guard.NewConstructorGuard(),
	}

	if err := p.populate(id, clientID, tracking, details, route); err != nil {
		return nil, err
	}

	if err := p.record(Unknown, Pending, CommentCreated, actor, at); err != nil {
		return nil, err
	}

	return p, nil
}

// RestorePackage rebuilds a package from storage. No ledger entry is recorded.
func RestorePackage(
	id, clientID kernel.ID,
	tracking Tracking,
	details Details,
	route kernel.Route,
	status Status,
	active bool,
	createdAt, updatedAt time.Time,
	version int,
) (*Package, error) {
	p := &Package{
		status:    status,
		active:    active,
		createdAt: createdAt.UTC(),
		updatedAt: updatedAt.UTC(),
		version:   version,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.populate(id, clientID, tracking, details, route),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Package) Validate() error {
	if p == nil {
		return ErrPackageIsNotConstructed
	}
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

func (p *Package) IsEqual(other *Package) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Package) ID() kernel.ID        { return p.id }
func (p *Package) ClientID() kernel.ID  { return p.clientID }
func (p *Package) Tracking() Tracking   { return p.tracking }
func (p *Package) Details() Details     { return p.details }
func (p *Package) Route() kernel.Route  { return p.route }
func (p *Package) Status() Status       { return p.status }
func (p *Package) IsActive() bool       { return p.active }
func (p *Package) CreatedAt() time.Time { return p.createdAt }
func (p *Package) UpdatedAt() time.Time { return p.updatedAt }
func (p *Package) Version() int         { return p.version }

// TransitionTo moves the package to target if the adjacency table allows it.
// An empty comment is replaced by "status changed to <target>".
//
// Returns an InvalidTransitionError carrying both statuses when the move is not allowed;
// the package is left untouched in that case.
func (p *Package) TransitionTo(target Status, comment string, actor *kernel.ID, at time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !p.status.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError("package", p.status, target)
	}
	if comment == "" {
		comment = DefaultComment(target)
	}
	return p.apply(target, comment, actor, at)
}

// Release reverts the package to pending as a side effect of a shipment operation.
// Pending packages are left unchanged and get no entry. Delivered packages are
// terminal and yield an InvalidTransitionError.
func (p *Package) Release(comment string, actor *kernel.ID, at time.Time) error {
	switch p.status {
	case Pending:
		return nil
	case Delivered, Unknown:
		return errs.NewInvalidTransitionError("package", p.status, Pending)
	default:
		return p.apply(Pending, comment, actor, at)
	}
}

// Detach reverts the package to pending after it was unbound from a shipment.
// Unlike Release it always records an entry, even for a package that was already pending.
func (p *Package) Detach(comment string, actor *kernel.ID, at time.Time) error {
	if p.status == Delivered || p.status == Unknown {
		return errs.NewInvalidTransitionError("package", p.status, Pending)
	}
	return p.apply(Pending, comment, actor, at)
}

// UpdateDetails replaces the descriptive fields and route.
// Refused with PreconditionFailed while the package is in transit or delivered.
func (p *Package) UpdateDetails(details Details, route kernel.Route, at time.Time) error {
	if !p.status.IsEditable() {
		return errs.NewPreconditionFailedError(fmt.Sprintf("package %s is %s and cannot be edited", p.id, p.status))
	}
	if err := errors.Join(p.setDetails(details), p.setRoute(route)); err != nil {
		return err
	}
	p.updatedAt = at.UTC()
	return nil
}

// Deactivate soft-deletes the package. Whether a shipment still binds it is
// checked by the caller; the aggregate only refuses delivered packages.
func (p *Package) Deactivate(at time.Time) error {
	if p.status == Delivered {
		return errs.NewPreconditionFailedError(fmt.Sprintf("package %s is delivered and cannot be deleted", p.id))
	}
	p.active = false
	p.updatedAt = at.UTC()
	return nil
}

// Entries returns the ledger entries recorded since the last MarkPersisted.
func (p *Package) Entries() []history.Entry {
	out := make([]history.Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// MarkPersisted is called by the repository once the row and its entries are stored.
func (p *Package) MarkPersisted(version int) {
	p.version = version
	p.entries = nil
}

// DefaultComment is the ledger comment used when the caller gives none.
func DefaultComment(target Status) string {
	return "status changed to " + target.String()
}

func (p *Package) apply(target Status, comment string, actor *kernel.ID, at time.Time) error {
	if err := p.record(p.status, target, comment, actor, at); err != nil {
		return err
	}
	p.status = target
	p.updatedAt = at.UTC()
	return nil
}

func (p *Package) record(from, to Status, comment string, actor *kernel.ID, at time.Time) error {
	previous := ""
	if from != Unknown {
		previous = from.String()
	}
	entry, err := history.NewEntry(p.id, previous, to.String(), comment, actor, at)
	if err != nil {
		return err
	}
	p.entries = append(p.entries, entry)
	return nil
}

func (p *Package) populate(id, clientID kernel.ID, tracking Tracking, details Details, route kernel.Route) error {
	return errors.Join(
		p.setID(id),
		p.setClientID(clientID),
		p.setTracking(tracking),
		p.setDetails(details),
		p.setRoute(route),
	)
}

func (p *Package) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("package id", err)
	}
	p.id = id
	return nil
}

func (p *Package) setClientID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client id", err)
	}
	p.clientID = id
	return nil
}

func (p *Package) setTracking(tracking Tracking) error {
	if err := tracking.Validate(); err != nil {
		return err
	}
	p.tracking = tracking
	return nil
}

func (p *Package) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	p.details = details
	return nil
}

func (p *Package) setRoute(route kernel.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	p.route = route
	return nil
}
