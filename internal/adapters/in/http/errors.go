package http

import (
	"errors"
	"fmt"
	"net/http"

	"shiptrack/internal/generated/servers"
	"shiptrack/internal/pkg/errs"
	"shiptrack/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var statusByCode = map[errs.Code]int{
	errs.CodeNotFound:           http.StatusNotFound,
	errs.CodeValidationFailed:   http.StatusBadRequest,
	errs.CodeInvalidTransition:  http.StatusConflict,
	errs.CodeConflictingWrite:   http.StatusConflict,
	errs.CodePreconditionFailed: http.StatusUnprocessableEntity,
	errs.CodeInternal:           http.StatusInternalServerError,
}

// StatusOf returns the HTTP status for a domain error code.
func StatusOf(code errs.Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeError renders err as {code, message}. Internal failures never leak their cause.
func writeError(ctx echo.Context, err error) error {
	code := errs.CodeOf(err)
	message := err.Error()
	if code == errs.CodeInternal {
		message = "internal error"
	}
	return ctx.JSON(StatusOf(code), servers.Error{Code: servers.ErrorCode(code), Message: message})
}

// NewHTTPErrorHandler renders routing and binding failures raised by echo in the same
// {code, message} shape as domain errors.
func NewHTTPErrorHandler(base *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		if ctx.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			logger.FromContext(ctx.Request().Context(), base).Error("unhandled error", zap.Error(err))
			_ = writeError(ctx, err)
			return
		}

		code := errs.CodeInternal
		switch {
		case he.Code == http.StatusNotFound, he.Code == http.StatusMethodNotAllowed:
			code = errs.CodeNotFound
		case he.Code >= 400 && he.Code < 500:
			code = errs.CodeValidationFailed
		}

		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		} else if he.Message != nil {
			message = fmt.Sprint(he.Message)
		}

		var writeErr error
		if ctx.Request().Method == http.MethodHead {
			writeErr = ctx.NoContent(he.Code)
		} else {
			writeErr = ctx.JSON(he.Code, servers.Error{Code: servers.ErrorCode(code), Message: message})
		}
		if writeErr != nil {
			logger.FromContext(ctx.Request().Context(), base).Error("write error response", zap.Error(writeErr))
		}
	}
}
