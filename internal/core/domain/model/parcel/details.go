package parcel

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MaxDescriptionLength bounds the package description.
const MaxDescriptionLength = 500

var (
	ErrDetailsAreNotConstructed    = errors.New("details must be created via NewDetails")
	ErrDimensionsAreNotConstructed = errors.New("dimensions must be created via NewDimensions")
	ErrTrackingIsNotConstructed    = errors.New("tracking must be created via NewTracking")
)

// Dimensions are length, width and height in centimetres.
type Dimensions struct { //nolint:recvcheck //using for validation
	length decimal.Decimal
	width  decimal.Decimal
	height decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewDimensions requires every side to be strictly positive.
func NewDimensions(length, width, height decimal.Decimal) (Dimensions, error) {
	if err := errors.Join(
		positive("length", length),
		positive("width", width),
		positive("height", height),
	); err != nil {
		return Dimensions{}, err
	}
	return Dimensions{length: length, width: width, height: height, guard: guard.NewConstructorGuard()}, nil
}

func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

func (d Dimensions) Length() decimal.Decimal { return d.length }
func (d Dimensions) Width() decimal.Decimal  { return d.width }
func (d Dimensions) Height() decimal.Decimal { return d.height }

// Volume returns length*width*height in cubic centimetres.
func (d Dimensions) Volume() decimal.Decimal {
	return d.length.Mul(d.width).Mul(d.height)
}

// Details are the descriptive fields of a package. They can only change while
// the package is not in transit or delivered.
type Details struct { //nolint:recvcheck //using for validation
	description   string
	weight        decimal.Decimal
	dimensions    Dimensions
	declaredValue decimal.Decimal
	guard         guard.ConstructorGuard
}

// NewDetails validates a description, a positive weight in kilograms, the
// dimensions and a non-negative declared value.
func NewDetails(description string, weight decimal.Decimal, dimensions Dimensions, declaredValue decimal.Decimal) (Details, error) {
	description = strings.TrimSpace(description)

	var descErr error
	switch n := utf8.RuneCountInString(description); {
	case n == 0:
		descErr = errs.NewValueIsRequiredError("description")
	case n > MaxDescriptionLength:
		descErr = errs.NewValueIsOutOfRangeError("description length", n, 1, MaxDescriptionLength)
	}

	var dimErr error
	if err := dimensions.Validate(); err != nil {
		dimErr = errs.NewValueIsRequiredErrorWithCause("dimensions", err)
	}

	var valueErr error
	if declaredValue.IsNegative() {
		valueErr = errs.NewValueIsInvalidErrorWithCause("declared value",
			fmt.Errorf("%s is negative", declaredValue.String()))
	}

	if err := errors.Join(descErr, positive("weight", weight), dimErr, valueErr); err != nil {
		return Details{}, err
	}

	return Details{
		description:   description,
		weight:        weight,
		dimensions:    dimensions,
		declaredValue: declaredValue,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (d Details) Validate() error {
	return d.guard.Validate(ErrDetailsAreNotConstructed)
}

func (d Details) Description() string            { return d.description }
func (d Details) Weight() decimal.Decimal        { return d.weight }
func (d Details) Dimensions() Dimensions         { return d.dimensions }
func (d Details) DeclaredValue() decimal.Decimal { return d.declaredValue }

// Tracking holds the two independent identifiers assigned at creation: the
// internal tracking number and the public code that is safe to expose.
type Tracking struct { //nolint:recvcheck //using for validation
	number     string
	publicCode string
	guard      guard.ConstructorGuard
}

func NewTracking(number, publicCode string) (Tracking, error) {
	number = strings.TrimSpace(number)
	publicCode = strings.TrimSpace(publicCode)

	var numberErr, codeErr error
	if number == "" {
		numberErr = errs.NewValueIsRequiredError("tracking number")
	}
	if publicCode == "" {
		codeErr = errs.NewValueIsRequiredError("public tracking code")
	}
	if err := errors.Join(numberErr, codeErr); err != nil {
		return Tracking{}, err
	}

	return Tracking{number: number, publicCode: publicCode, guard: guard.NewConstructorGuard()}, nil
}

func (t Tracking) Validate() error {
	return t.guard.Validate(ErrTrackingIsNotConstructed)
}

func (t Tracking) Number() string {
	return t.number
}

func (t Tracking) PublicCode() string {
	return t.publicCode
}

func positive(name string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is not greater than 0", v.String()))
	}
	return nil
}
