package services

import (
	"time"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/core/domain/model/shipment"
	"shiptrack/internal/pkg/errs"
)

// CascadeEffect names what a shipment status change does to its member packages.
type CascadeEffect int

const (
	// NoEffect leaves member packages unchanged.
	NoEffect CascadeEffect = iota

	// Move transitions members through the package state machine.
	Move

	// Release reverts members to pending.
	Release
)

// ShipmentCascade derives and applies the package side effects of a shipment
// status change:
//
//	delivered  => packages delivered
//	returned   => packages returned
//	in_transit => packages in_transit
//	cancelled  => packages released to pending
//	pending    => no effect
//
// Each changed package records its own ledger entry with the comment
// "shipment <status>" and its own prior status. Packages already at the
// target status are skipped.
//
// Example:
//
//	cascade := services.NewShipmentCascade()
//	if err := s.TransitionTo(shipment.Delivered, now); err != nil {
//	    return err
//	}
//	changed, err := cascade.Apply(shipment.Delivered, members, "", actor, now)
type ShipmentCascade struct{}

func NewShipmentCascade() ShipmentCascade {
	return ShipmentCascade{}
}

// Effect returns the effect of a shipment entering target and, for Move, the
// package status the members move to.
func (ShipmentCascade) Effect(target shipment.Status) (CascadeEffect, parcel.Status) {
	switch target {
	case shipment.Delivered:
		return Move, parcel.Delivered
	case shipment.Returned:
		return Move, parcel.Returned
	case shipment.InTransit:
		return Move, parcel.InTransit
	case shipment.Cancelled:
		return Release, parcel.Pending
	default:
		return NoEffect, parcel.Unknown
	}
}

// Comment builds the ledger comment for a cascaded change, appending the caller note when given.
func (ShipmentCascade) Comment(target shipment.Status, note string) string {
	comment := "shipment " + target.String()
	if note != "" {
		comment += ": " + note
	}
	return comment
}

// Apply fans the effect of target out to packages and returns the packages that changed.
//
// All packages are checked before any is modified: if one of them cannot make
// the move, an InvalidTransitionError is returned and none is touched.
// Duplicate packages are applied once.
func (c ShipmentCascade) Apply(
	target shipment.Status,
	packages []*parcel.Package,
	note string,
	actor *kernel.ID,
	at time.Time,
) ([]*parcel.Package, error) {
	effect, status := c.Effect(target)
	if effect == NoEffect {
		return nil, nil
	}

	affected := make([]*parcel.Package, 0, len(packages))
	seen := make(map[int64]struct{}, len(packages))
	for _, p := range packages {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[p.ID().Int64()]; dup {
			continue
		}
		seen[p.ID().Int64()] = struct{}{}

		if p.Status() == status {
			continue
		}
		if err := c.check(effect, p, status); err != nil {
			return nil, err
		}
		affected = append(affected, p)
	}

	comment := c.Comment(target, note)
	for _, p := range affected {
		var err error
		if effect == Release {
			err = p.Release(comment, actor, at)
		} else {
			err = p.TransitionTo(status, comment, actor, at)
		}
		if err != nil {
			return nil, err
		}
	}

	return affected, nil
}

func (ShipmentCascade) check(effect CascadeEffect, p *parcel.Package, status parcel.Status) error {
	if effect == Release {
		if p.Status() == parcel.Delivered {
			return errs.NewInvalidTransitionError("package", p.Status(), parcel.Pending)
		}
		return nil
	}
	if !p.Status().CanTransitionTo(status) {
		return errs.NewInvalidTransitionError("package", p.Status(), status)
	}
	return nil
}
