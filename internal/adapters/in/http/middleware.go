package http

import (
	"time"

	"shiptrack/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request id; an incoming value is kept, otherwise a uuid is issued.
const RequestIDHeader = echo.HeaderXRequestID

// RequestObserver receives one call per served request. The metrics adapter implements it.
type RequestObserver interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
}

// RequestContext assigns the request id and stores a request-scoped logger in the context.
func RequestContext(base *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			requestID := ctx.Request().Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			ctx.Response().Header().Set(RequestIDHeader, requestID)

			scoped := base.With(zap.String("request_id", requestID))
			req := ctx.Request()
			ctx.SetRequest(req.WithContext(logger.WithContext(req.Context(), scoped)))

			return next(ctx)
		}
	}
}

// AccessLog logs every request once it has been served, and reports it to observer when set.
func AccessLog(base *zap.Logger, observer RequestObserver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()

			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			req := ctx.Request()
			status := ctx.Response().Status
			duration := time.Since(start)
			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}

			if observer != nil {
				observer.ObserveRequest(req.Method, route, status, duration)
			}

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("route", route),
				zap.String("uri", req.RequestURI),
				zap.Int("status", status),
				zap.Int64("duration_ms", duration.Milliseconds()),
			}
			l := logger.FromContext(req.Context(), base)
			if status >= 500 {
				l.Error("http request", fields...)
			} else {
				l.Info("http request", fields...)
			}

			return nil
		}
	}
}
