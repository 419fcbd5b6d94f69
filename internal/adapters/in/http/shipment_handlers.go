package http

import (
	"net/http"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// CreateShipment handles POST /api/v1/shipments - founds an in-transit shipment.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var req servers.NewShipment
	if err := bindAndValidate(ctx, &req); err != nil {
		return writeError(ctx, err)
	}
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	founding, err := parseID("package_id", req.PackageId)
	if err != nil {
		return writeError(ctx, err)
	}
	route, err := kernel.ParseRoute(req.Origin, req.Destination)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewCreateShipmentCommand(founding, route, req.EstimatedDelivery, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	created, err := s.h.CreateShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, shipmentFromDomain(created))
}

// GetShipment handles GET /api/v1/shipments/{id}.
func (s *Server) GetShipment(ctx echo.Context, id servers.Id) error {
	shipmentID, err := pathID("id", id)
	if err != nil {
		return writeError(ctx, err)
	}
	query, err := queries.NewGetShipmentQuery(shipmentID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.h.GetShipment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentFromView(view))
}

// UpdateShipment handles PATCH /api/v1/shipments/{id}.
func (s *Server) UpdateShipment(ctx echo.Context, id servers.Id) error {
	shipmentID, err := pathID("id", id)
	if err != nil {
		return writeError(ctx, err)
	}
	var req servers.ShipmentPatch
	if err = bindAndValidate(ctx, &req); err != nil {
		return writeError(ctx, err)
	}
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	patch := commands.ShipmentPatch{
		Origin:      req.Origin,
		Destination: req.Destination,
		ETA:         req.EstimatedDelivery,
	}
	if req.FoundingPackageId != nil {
		founding, parseErr := parseID("founding_package_id", *req.FoundingPackageId)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}
		patch.FoundingPackageID = &founding
	}

	cmd, err := commands.NewUpdateShipmentCommand(shipmentID, patch, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.h.UpdateShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentFromDomain(updated))
}

// DeleteShipment handles DELETE /api/v1/shipments/{id} - releases members and soft-deletes.
func (s *Server) DeleteShipment(ctx echo.Context, id servers.Id) error {
	shipmentID, err := pathID("id", id)
	if err != nil {
		return writeError(ctx, err)
	}
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewDeleteShipmentCommand(shipmentID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.h.DeleteShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionShipment handles POST /api/v1/shipments/{id}/status.
func (s *Server) TransitionShipment(ctx echo.Context, id servers.Id) error {
	shipmentID, err := pathID("id", id)
	if err != nil {
		return writeError(ctx, err)
	}
	var req servers.StatusChange
	if err = bindAndValidate(ctx, &req); err != nil {
		return writeError(ctx, err)
	}
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionShipmentCommand(shipmentID, req.Status, req.Comment, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.h.TransitionShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentFromDomain(updated))
}

// ListShipmentPackages handles GET /api/v1/shipments/{id}/packages.
func (s *Server) ListShipmentPackages(ctx echo.Context, id servers.Id) error {
	shipmentID, err := pathID("id", id)
	if err != nil {
		return writeError(ctx, err)
	}
	query, err := queries.NewListShipmentPackagesQuery(shipmentID)
	if err != nil {
		return writeError(ctx, err)
	}

	views, err := s.h.ListShipmentPackages.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.Package, len(views))
	for i, view := range views {
		response[i] = packageFromView(view)
	}
	return ctx.JSON(http.StatusOK, response)
}

// AddShipmentPackages handles POST /api/v1/shipments/{id}/packages - binds all packages or none.
func (s *Server) AddShipmentPackages(ctx echo.Context, id servers.Id) error {
	shipmentID, err := pathID("id", id)
	if err != nil {
		return writeError(ctx, err)
	}
	var req servers.AddPackages
	if err = bindAndValidate(ctx, &req); err != nil {
		return writeError(ctx, err)
	}
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	packageIDs := make([]kernel.ID, 0, len(req.PackageIds))
	for _, raw := range req.PackageIds {
		packageID, parseErr := parseID("package_ids", raw)
		if parseErr != nil {
			return writeError(ctx, parseErr)
		}
		packageIDs = append(packageIDs, packageID)
	}

	cmd, err := commands.NewAddPackagesToShipmentCommand(shipmentID, packageIDs, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	added, err := s.h.AddPackages.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, servers.AddedPackages{Added: idStrings(added)})
}

// RemoveShipmentPackage handles DELETE /api/v1/shipments/{id}/packages/{packageId}.
func (s *Server) RemoveShipmentPackage(ctx echo.Context, id servers.Id, packageID int64) error {
	shipmentID, err := pathID("id", id)
	if err != nil {
		return writeError(ctx, err)
	}
	memberID, err := pathID("packageId", packageID)
	if err != nil {
		return writeError(ctx, err)
	}
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewRemovePackageFromShipmentCommand(shipmentID, memberID, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.h.RemovePackage.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOverdueShipments handles GET /api/v1/shipments/overdue. as_of defaults to now.
func (s *Server) GetOverdueShipments(ctx echo.Context, params servers.GetOverdueShipmentsParams) error {
	asOf := s.now()
	if params.AsOf != nil {
		asOf = *params.AsOf
	}
	query, err := queries.NewGetOverdueShipmentsQuery(asOf)
	if err != nil {
		return writeError(ctx, err)
	}

	views, err := s.h.GetOverdueShipments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.OverdueShipment, len(views))
	for i, view := range views {
		response[i] = overdueFromView(view)
	}
	return ctx.JSON(http.StatusOK, response)
}
