package shipment

import (
	"fmt"
	"strings"

	"shiptrack/internal/pkg/errs"
)

// Status is the lifecycle state of a shipment.
//
// State transitions:
//
//	Pending ──┬──> InTransit ──┬──> Delivered
//	          │                ├──> Returned
//	          │                └──> Cancelled
//	          └──> Cancelled
//
// Delivered, Returned and Cancelled are terminal. A returned shipment is terminal
// even though a returned package may be reset to pending.
type Status int

const (
	Unknown Status = iota
	Pending
	InTransit
	Delivered
	Returned
	Cancelled
)

var statusNames = map[Status]string{
	Pending:   "pending",
	InTransit: "in_transit",
	Delivered: "delivered",
	Returned:  "returned",
	Cancelled: "cancelled",
}

// Spanish names are accepted for compatibility with existing clients.
var statusAliases = map[string]Status{
	"pending":     Pending,
	"pendiente":   Pending,
	"in_transit":  InTransit,
	"en_transito": InTransit,
	"delivered":   Delivered,
	"entregado":   Delivered,
	"returned":    Returned,
	"devuelto":    Returned,
	"cancelled":   Cancelled,
	"canceled":    Cancelled,
	"cancelado":   Cancelled,
}

var transitions = map[Status]map[Status]struct{}{
	Pending:   {InTransit: {}, Cancelled: {}},
	InTransit: {Delivered: {}, Returned: {}, Cancelled: {}},
	Delivered: {},
	Returned:  {},
	Cancelled: {},
}

func Statuses() []Status {
	return []Status{Pending, InTransit, Delivered, Returned, Cancelled}
}

// ParseStatus accepts the persisted name or a Spanish alias, case-insensitively.
func ParseStatus(s string) (Status, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if status, ok := statusAliases[key]; ok {
		return status, nil
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("shipment status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("shipment status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) CanTransitionTo(target Status) bool {
	_, ok := transitions[s][target]
	return ok
}

// IsTerminal reports whether no further status change is allowed.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsImmutable reports whether the shipment can no longer change membership or fields.
func (s Status) IsImmutable() bool {
	return s == Delivered || s == Cancelled
}
