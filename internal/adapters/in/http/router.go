package http

import (
	"net/http"

	"shiptrack/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1"

// RouterConfig holds the collaborators of the echo instance. Nil fields disable
// the matching feature: no request metrics without Observer, no /metrics without Gatherer.
type RouterConfig struct {
	Logger   *zap.Logger
	Observer RequestObserver
	Gatherer prometheus.Gatherer
}

// NewRouter builds the echo instance serving the API, its contract and the operational endpoints.
func NewRouter(server servers.ServerInterface, cfg RouterConfig) (*echo.Echo, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	doc, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}
	docJSON, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(middleware.Recover())
	e.Use(RequestContext(log))
	e.Use(AccessLog(log, cfg.Observer))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.json", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, docJSON)
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.json")))
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	servers.RegisterHandlersWithBaseURL(e, server, BasePath)
	return e, nil
}
