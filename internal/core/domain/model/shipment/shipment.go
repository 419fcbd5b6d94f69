package shipment

import (
	"errors"
	"fmt"
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

// ErrShipmentIsNotConstructed is returned when a Shipment was not built by NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("shipment must be created via NewShipment or RestoreShipment")

// ReasonImmutable is the precondition failure reported for delivered or cancelled shipments.
const ReasonImmutable = "cannot modify a delivered or cancelled shipment"

// Shipment is the aggregate root for a logistics movement carrying one or more packages.
//
// Membership is a single ordered set of package ids. The founding package, supplied
// when the shipment is created, is simply the first member.
//
// Invariants:
//   - Members are unique
//   - Delivered and cancelled shipments reject transitions, membership changes and edits
//   - Delivered shipments cannot be deleted
//   - The actual delivery time is set exactly when the shipment enters delivered
type Shipment struct {
	id                kernel.ID
	route             kernel.Route
	status            Status
	estimatedDelivery *time.Time
	deliveredAt       *time.Time
	active            bool
	members           []kernel.ID
	createdAt         time.Time
	updatedAt         time.Time
	version           int
	guard             guard.ConstructorGuard
}

// NewShipment creates an in-transit shipment with its founding package as the only member.
// Moving the founding package itself to in_transit is the caller's job.
func NewShipment(id, foundingPackageID kernel.ID, route kernel.Route, eta *time.Time, at time.Time) (*Shipment, error) {
	s := &Shipment{
		status:    InTransit,
		active:    true,
		createdAt: at.UTC(),
		updatedAt: at.UTC(),
		version:   1,
		guard:     guard.NewConstructorGuard(),
	}

	var foundingErr error
	if err := foundingPackageID.Validate(); err != nil {
		foundingErr = errs.NewValueIsRequiredErrorWithCause("founding package id", err)
	}

	if err := errors.Join(s.setID(id), s.setRoute(route), foundingErr); err != nil {
		return nil, err
	}

	s.members = []kernel.ID{foundingPackageID}
	s.estimatedDelivery = utcPtr(eta)
	return s, nil
}

// RestoreShipment rebuilds a shipment from storage. Duplicate members are collapsed,
// keeping the first occurrence.
func RestoreShipment(
	id kernel.ID,
	route kernel.Route,
	status Status,
	eta, deliveredAt *time.Time,
	active bool,
	members []kernel.ID,
	createdAt, updatedAt time.Time,
	version int,
) (*Shipment, error) {
	s := &Shipment{
		status:            status,
		estimatedDelivery: utcPtr(eta),
		deliveredAt:       utcPtr(deliveredAt),
		active:            active,
		createdAt:         createdAt.UTC(),
		updatedAt:         updatedAt.UTC(),
		version:           version,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(s.setID(id), s.setRoute(route), status.Validate()); err != nil {
		return nil, err
	}

	for _, m := range members {
		if err := m.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("shipment member", err)
		}
		if !s.Contains(m) {
			s.members = append(s.members, m)
		}
	}

	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) ID() kernel.ID        { return s.id }
func (s *Shipment) Route() kernel.Route  { return s.route }
func (s *Shipment) Status() Status       { return s.status }
func (s *Shipment) IsActive() bool       { return s.active }
func (s *Shipment) CreatedAt() time.Time { return s.createdAt }
func (s *Shipment) UpdatedAt() time.Time { return s.updatedAt }
func (s *Shipment) Version() int         { return s.version }

func (s *Shipment) EstimatedDelivery() *time.Time {
	return utcPtr(s.estimatedDelivery)
}

// DeliveredAt is nil until the shipment is delivered.
func (s *Shipment) DeliveredAt() *time.Time {
	return utcPtr(s.deliveredAt)
}

// Members returns the bound package ids, founding package first.
func (s *Shipment) Members() []kernel.ID {
	out := make([]kernel.ID, len(s.members))
	copy(out, s.members)
	return out
}

// Founding returns the first member and false when the shipment has no members.
func (s *Shipment) Founding() (kernel.ID, bool) {
	if len(s.members) == 0 {
		return kernel.ID{}, false
	}
	return s.members[0], true
}

func (s *Shipment) Contains(packageID kernel.ID) bool {
	for _, m := range s.members {
		if m.IsEqual(packageID) {
			return true
		}
	}
	return false
}

// IsMutable reports whether transitions, membership changes and edits are still allowed.
func (s *Shipment) IsMutable() bool {
	return !s.status.IsImmutable()
}

// EnsureMutable returns a PreconditionFailedError for delivered or cancelled shipments.
func (s *Shipment) EnsureMutable() error {
	if !s.IsMutable() {
		return errs.NewPreconditionFailedError(fmt.Sprintf("%s: shipment %s is %s", ReasonImmutable, s.id, s.status))
	}
	return nil
}

// IsOverdue reports whether an in-transit shipment has passed its estimated delivery.
func (s *Shipment) IsOverdue(now time.Time) bool {
	return s.active && s.status == InTransit && s.estimatedDelivery != nil && s.estimatedDelivery.Before(now)
}

// Bind adds packages to the membership set. Ids already bound or repeated in the
// input are ignored. It returns only the ids that were newly added, in input order.
func (s *Shipment) Bind(at time.Time, packageIDs ...kernel.ID) ([]kernel.ID, error) {
	if err := s.EnsureMutable(); err != nil {
		return nil, err
	}

	added := make([]kernel.ID, 0, len(packageIDs))
	for _, id := range packageIDs {
		if err := id.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("package id", err)
		}
		if s.Contains(id) {
			continue
		}
		s.members = append(s.members, id)
		added = append(added, id)
	}

	if len(added) > 0 {
		s.updatedAt = at.UTC()
	}
	return added, nil
}

// Unbind removes one package. An unknown binding is reported as not found.
func (s *Shipment) Unbind(packageID kernel.ID, at time.Time) error {
	if err := s.EnsureMutable(); err != nil {
		return err
	}
	if !s.remove(packageID) {
		return errs.NewObjectNotFoundError("binding", fmt.Sprintf("%s/%s", s.id, packageID))
	}
	s.updatedAt = at.UTC()
	return nil
}

// ReassignFounding makes packageID the founding member. The previous founding
// package is unbound and returned with replaced=true so the caller can release it.
// Reassigning the current founding package is a no-op.
func (s *Shipment) ReassignFounding(packageID kernel.ID, at time.Time) (previous kernel.ID, replaced bool, err error) {
	if err = s.EnsureMutable(); err != nil {
		return kernel.ID{}, false, err
	}
	if err = packageID.Validate(); err != nil {
		return kernel.ID{}, false, errs.NewValueIsInvalidErrorWithCause("founding package id", err)
	}

	current, hasFounding := s.Founding()
	if hasFounding && current.IsEqual(packageID) {
		return kernel.ID{}, false, nil
	}

	if hasFounding {
		s.remove(current)
	}
	s.remove(packageID)
	s.members = append([]kernel.ID{packageID}, s.members...)
	s.updatedAt = at.UTC()

	return current, hasFounding, nil
}

// Reschedule replaces the route and estimated delivery.
func (s *Shipment) Reschedule(route kernel.Route, eta *time.Time, at time.Time) error {
	if err := s.EnsureMutable(); err != nil {
		return err
	}
	if err := s.setRoute(route); err != nil {
		return err
	}
	s.estimatedDelivery = utcPtr(eta)
	s.updatedAt = at.UTC()
	return nil
}

// TransitionTo moves the shipment to target if the adjacency table allows it.
// Package side effects are derived separately, see services.ShipmentCascade.
func (s *Shipment) TransitionTo(target Status, at time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !s.status.CanTransitionTo(target) {
		return errs.NewInvalidTransitionError("shipment", s.status, target)
	}

	s.status = target
	s.updatedAt = at.UTC()
	if target == Delivered {
		s.deliveredAt = utcPtr(&at)
	}
	return nil
}

// Delete soft-deletes the shipment and clears its membership. The released member
// ids are returned in membership order.
func (s *Shipment) Delete(at time.Time) ([]kernel.ID, error) {
	if s.status == Delivered {
		return nil, errs.NewPreconditionFailedError(fmt.Sprintf("shipment %s is delivered and cannot be deleted", s.id))
	}

	released := s.Members()
	s.members = nil
	s.active = false
	s.updatedAt = at.UTC()
	return released, nil
}

// MarkPersisted is called by the repository once the row is stored.
func (s *Shipment) MarkPersisted(version int) {
	s.version = version
}

func (s *Shipment) remove(packageID kernel.ID) bool {
	for i, m := range s.members {
		if m.IsEqual(packageID) {
			s.members = append(s.members[:i], s.members[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Shipment) setID(id kernel.ID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shipment id", err)
	}
	s.id = id
	return nil
}

func (s *Shipment) setRoute(route kernel.Route) error {
	if err := route.Validate(); err != nil {
		return err
	}
	s.route = route
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
