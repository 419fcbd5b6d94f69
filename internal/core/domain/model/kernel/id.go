package kernel

import (
	"fmt"

	"shiptrack/internal/pkg/errs"

	"github.com/bwmarrin/snowflake"
)

// ErrIDIsNotConstructed is returned when a zero ID is used.
// IDs must be created via NewID, ParseID or IDFromSnowflake.
var ErrIDIsNotConstructed = errs.NewValueIsRequiredError("ID must be created via NewID, ParseID or IDFromSnowflake")

// ID is the numeric identity of packages, shipments, history entries and users.
// Values are 64-bit snowflake identifiers; the zero value is invalid.
//
// Example:
//
//	node, _ := snowflake.NewNode(1)
//	id := kernel.IDFromSnowflake(node.Generate())
//	fmt.Println(id.Int64() > 0) // true
type ID struct {
	value snowflake.ID
}

// NewID wraps a positive integer identifier.
// Returns a validation error for zero or negative values.
func NewID(value int64) (ID, error) {
	if value <= 0 {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", fmt.Errorf("%d is not a positive identifier", value))
	}
	return ID{value: snowflake.ID(value)}, nil
}

// MustNewID is NewID for values known to be valid, such as test fixtures.
func MustNewID(value int64) ID {
	id, err := NewID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseID parses the decimal representation produced by String.
func ParseID(s string) (ID, error) {
	sf, err := snowflake.ParseString(s)
	if err != nil {
		return ID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return NewID(sf.Int64())
}

// IDFromSnowflake wraps a generated snowflake identifier.
func IDFromSnowflake(id snowflake.ID) ID {
	return ID{value: id}
}

// Int64 returns the identifier as stored in the database.
func (i ID) Int64() int64 {
	return i.value.Int64()
}

// String returns the decimal representation of the identifier.
func (i ID) String() string {
	return i.value.String()
}

// IsEqual reports whether both identifiers have the same value.
func (i ID) IsEqual(other ID) bool {
	return i.value == other.value
}

// Less orders identifiers numerically, used to take row locks in a stable order.
func (i ID) Less(other ID) bool {
	return i.value < other.value
}

// Validate rejects the zero value.
func (i ID) Validate() error {
	if i.value <= 0 {
		return ErrIDIsNotConstructed
	}
	return nil
}
