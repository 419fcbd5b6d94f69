package kernel

import (
	"strings"
	"unicode/utf8"

	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"
)

// MaxAddressLength is the longest address accepted, in characters.
const MaxAddressLength = 255

// ErrAddressIsNotConstructed is returned when a zero Address is used.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("address must be created via NewAddress")

// Address is a free-form postal address used as package and shipment origin or destination.
// Surrounding whitespace is trimmed; empty addresses are rejected.
type Address struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewAddress validates and normalizes a postal address.
func NewAddress(value string) (Address, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Address{}, errs.NewValueIsRequiredError("address")
	}
	if n := utf8.RuneCountInString(value); n > MaxAddressLength {
		return Address{}, errs.NewValueIsOutOfRangeError("address length", n, 1, MaxAddressLength)
	}
	return Address{value: value, guard: guard.NewConstructorGuard()}, nil
}

// MustNewAddress is NewAddress for literals known to be valid.
func MustNewAddress(value string) Address {
	a, err := NewAddress(value)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

func (a Address) String() string {
	return a.value
}

func (a Address) IsEqual(other Address) bool {
	return a.value == other.value
}

// Route pairs an origin with a destination.
type Route struct { //nolint:recvcheck //using for validation
	origin      Address
	destination Address
	guard       guard.ConstructorGuard
}

// ErrRouteIsNotConstructed is returned when a zero Route is used.
var ErrRouteIsNotConstructed = errs.NewValueIsRequiredError("route must be created via NewRoute")

// NewRoute builds a route from two validated addresses.
func NewRoute(origin, destination Address) (Route, error) {
	if err := origin.Validate(); err != nil {
		return Route{}, errs.NewValueIsInvalidErrorWithCause("origin", err)
	}
	if err := destination.Validate(); err != nil {
		return Route{}, errs.NewValueIsInvalidErrorWithCause("destination", err)
	}
	return Route{origin: origin, destination: destination, guard: guard.NewConstructorGuard()}, nil
}

// ParseRoute builds a route from raw address strings.
func ParseRoute(origin, destination string) (Route, error) {
	o, err := NewAddress(origin)
	if err != nil {
		return Route{}, errs.NewValueIsInvalidErrorWithCause("origin", err)
	}
	d, err := NewAddress(destination)
	if err != nil {
		return Route{}, errs.NewValueIsInvalidErrorWithCause("destination", err)
	}
	return NewRoute(o, d)
}

func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

func (r Route) Origin() Address {
	return r.origin
}

func (r Route) Destination() Address {
	return r.destination
}
