package http

import (
	"errors"
	"fmt"
	"strings"

	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/generated/servers"
	"shiptrack/internal/pkg/errs"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// RequestValidator plugs validator/v10 into echo's Context.Validate.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// Validate reports struct tag violations as a ValueIsInvalidError naming every failing field.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errs.NewValueIsInvalidErrorWithCause("request", err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
	}
	return errs.NewValueIsInvalidError("request: " + strings.Join(problems, ", "))
}

// bindAndValidate decodes the JSON body into req and checks its tags.
func bindAndValidate(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return ctx.Validate(req)
}

// actorID reads the acting user from the X-User-ID header. A missing header means no actor.
func actorID(ctx echo.Context) (*kernel.ID, error) {
	raw := strings.TrimSpace(ctx.Request().Header.Get(servers.ActorHeader))
	if raw == "" {
		return nil, nil //nolint:nilnil // anonymous requests are allowed
	}
	id, err := kernel.ParseID(raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(servers.ActorHeader, err)
	}
	return &id, nil
}

func pathID(name string, raw int64) (kernel.ID, error) {
	id, err := kernel.NewID(raw)
	if err != nil {
		return kernel.ID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func parseID(name, raw string) (kernel.ID, error) {
	id, err := kernel.ParseID(strings.TrimSpace(raw))
	if err != nil {
		return kernel.ID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func parseDecimal(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return d, nil
}

func parseOptionalDecimal(name string, raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil //nolint:nilnil // absent field keeps its value
	}
	d, err := parseDecimal(name, *raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
