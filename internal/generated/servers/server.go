package servers

import (
	"context"
	"fmt"
	"net/http"

	"shiptrack/api"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Create a pending package
	// (POST /api/v1/packages)
	CreatePackage(ctx echo.Context) error
	// Get an active package
	// (GET /api/v1/packages/{id})
	GetPackage(ctx echo.Context, id Id) error
	// Edit the details of a pending or returned package
	// (PATCH /api/v1/packages/{id})
	UpdatePackage(ctx echo.Context, id Id) error
	// Soft-delete a package that no open shipment binds
	// (DELETE /api/v1/packages/{id})
	DeletePackage(ctx echo.Context, id Id) error
	// List the status history of a package, newest first
	// (GET /api/v1/packages/{id}/history)
	GetPackageHistory(ctx echo.Context, id Id) error
	// Change the status of a package
	// (POST /api/v1/packages/{id}/status)
	TransitionPackage(ctx echo.Context, id Id) error
	// Create an in-transit shipment around a pending founding package
	// (POST /api/v1/shipments)
	CreateShipment(ctx echo.Context) error
	// List in-transit shipments past their estimated delivery
	// (GET /api/v1/shipments/overdue)
	GetOverdueShipments(ctx echo.Context, params GetOverdueShipmentsParams) error
	// Get an active shipment
	// (GET /api/v1/shipments/{id})
	GetShipment(ctx echo.Context, id Id) error
	// Edit route, estimated delivery or founding package
	// (PATCH /api/v1/shipments/{id})
	UpdateShipment(ctx echo.Context, id Id) error
	// Soft-delete a shipment and release its packages
	// (DELETE /api/v1/shipments/{id})
	DeleteShipment(ctx echo.Context, id Id) error
	// List the active packages bound to a shipment
	// (GET /api/v1/shipments/{id}/packages)
	ListShipmentPackages(ctx echo.Context, id Id) error
	// Bind pending packages to a shipment, all or nothing
	// (POST /api/v1/shipments/{id}/packages)
	AddShipmentPackages(ctx echo.Context, id Id) error
	// Unbind a package from a shipment and revert it to pending
	// (DELETE /api/v1/shipments/{id}/packages/{packageId})
	RemoveShipmentPackage(ctx echo.Context, id Id, packageId int64) error
	// Change the status of a shipment and cascade it to its packages
	// (POST /api/v1/shipments/{id}/status)
	TransitionShipment(ctx echo.Context, id Id) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) CreatePackage(ctx echo.Context) error {
	return w.Handler.CreatePackage(ctx)
}

func (w *ServerInterfaceWrapper) GetPackage(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetPackage(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdatePackage(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.UpdatePackage(ctx, id)
}

func (w *ServerInterfaceWrapper) DeletePackage(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.DeletePackage(ctx, id)
}

func (w *ServerInterfaceWrapper) GetPackageHistory(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetPackageHistory(ctx, id)
}

func (w *ServerInterfaceWrapper) TransitionPackage(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.TransitionPackage(ctx, id)
}

func (w *ServerInterfaceWrapper) CreateShipment(ctx echo.Context) error {
	return w.Handler.CreateShipment(ctx)
}

func (w *ServerInterfaceWrapper) GetOverdueShipments(ctx echo.Context) error {
	var params GetOverdueShipmentsParams

	err := runtime.BindQueryParameter("form", true, false, "as_of", ctx.QueryParams(), &params.AsOf)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter as_of: %s", err))
	}

	return w.Handler.GetOverdueShipments(ctx, params)
}

func (w *ServerInterfaceWrapper) GetShipment(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) UpdateShipment(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.UpdateShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) DeleteShipment(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.DeleteShipment(ctx, id)
}

func (w *ServerInterfaceWrapper) ListShipmentPackages(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.ListShipmentPackages(ctx, id)
}

func (w *ServerInterfaceWrapper) AddShipmentPackages(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.AddShipmentPackages(ctx, id)
}

func (w *ServerInterfaceWrapper) RemoveShipmentPackage(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	packageID, err := bindID(ctx, "packageId")
	if err != nil {
		return err
	}
	return w.Handler.RemoveShipmentPackage(ctx, id, packageID)
}

func (w *ServerInterfaceWrapper) TransitionShipment(ctx echo.Context) error {
	id, err := bindID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.TransitionShipment(ctx, id)
}

func bindID(ctx echo.Context, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is the subset of echo.Echo and echo.Group used to register routes.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// RegisterHandlersWithBaseURL registers the routes under baseURL, such as "/api/v1".
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/packages", wrapper.CreatePackage)
	router.GET(baseURL+"/packages/:id", wrapper.GetPackage)
	router.PATCH(baseURL+"/packages/:id", wrapper.UpdatePackage)
	router.DELETE(baseURL+"/packages/:id", wrapper.DeletePackage)
	router.GET(baseURL+"/packages/:id/history", wrapper.GetPackageHistory)
	router.POST(baseURL+"/packages/:id/status", wrapper.TransitionPackage)
	router.POST(baseURL+"/shipments", wrapper.CreateShipment)
	router.GET(baseURL+"/shipments/overdue", wrapper.GetOverdueShipments)
	router.GET(baseURL+"/shipments/:id", wrapper.GetShipment)
	router.PATCH(baseURL+"/shipments/:id", wrapper.UpdateShipment)
	router.DELETE(baseURL+"/shipments/:id", wrapper.DeleteShipment)
	router.GET(baseURL+"/shipments/:id/packages", wrapper.ListShipmentPackages)
	router.POST(baseURL+"/shipments/:id/packages", wrapper.AddShipmentPackages)
	router.DELETE(baseURL+"/shipments/:id/packages/:packageId", wrapper.RemoveShipmentPackage)
	router.POST(baseURL+"/shipments/:id/status", wrapper.TransitionShipment)
}

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(api.OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("error loading openapi document: %w", err)
	}
	if err = doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid openapi document: %w", err)
	}
	return doc, nil
}
