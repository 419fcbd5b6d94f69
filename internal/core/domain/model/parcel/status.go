package parcel

import (
	"fmt"
	"strings"

	"shiptrack/internal/pkg/errs"
)

// Status is the lifecycle state of a package.
//
// State transitions:
//
//	Pending ──> InTransit ──┬──> Delivered
//	   ^                    │
//	   └──── Returned <─────┘
//
// Delivered is terminal. The adjacency table below is the single source of
// truth for which transitions are allowed.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status. Only pending packages can join a shipment.
	Pending

	// InTransit means the package is moving with a shipment or was dispatched directly.
	InTransit

	// Delivered is the final status.
	Delivered

	// Returned means the package came back; it can be reset to Pending.
	Returned
)

var statusNames = map[Status]string{
	Pending:   "pending",
	InTransit: "in_transit",
	Delivered: "delivered",
	Returned:  "returned",
}

var statusAliases = map[string]Status{
	"pending":     Pending,
	"pendiente":   Pending,
	"in_transit":  InTransit,
	"en_transito": InTransit,
	"delivered":   Delivered,
	"entregado":   Delivered,
	"returned":    Returned,
	"devuelto":    Returned,
}

var transitions = map[Status]map[Status]struct{}{
	Pending:   {InTransit: {}},
	InTransit: {Delivered: {}, Returned: {}},
	Returned:  {Pending: {}},
	Delivered: {},
}

// Statuses lists every valid status in declaration order.
func Statuses() []Status {
	return []Status{Pending, InTransit, Delivered, Returned}
}

// ParseStatus accepts the persisted name or its Spanish alias, case-insensitively.
func ParseStatus(s string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	if status, ok := statusAliases[key]; ok {
		return status, nil
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("package status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("package status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted name, or "unknown".
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// CanTransitionTo reports whether the adjacency table allows s -> target.
func (s Status) CanTransitionTo(target Status) bool {
	_, ok := transitions[s][target]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsEditable reports whether descriptive fields may change in this status.
func (s Status) IsEditable() bool {
	return s == Pending || s == Returned
}
