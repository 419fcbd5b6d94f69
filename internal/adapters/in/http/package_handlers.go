package http

import (
	"errors"
	"net/http"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/model/kernel"
	"shiptrack/internal/core/domain/model/parcel"
	"shiptrack/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// CreatePackage handles POST /api/v1/packages - creates a pending package.
func (s *Server) CreatePackage(ctx echo.Context) error {
	var req servers.NewPackage
	if err := bindAndValidate(ctx, &req); err != nil {
		return writeError(ctx, err)
	}
	actor, err := actorID(ctx)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := newCreatePackageCommand(req, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	p, err := s.h.CreatePackage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, packageFromDomain(p))
}

func newCreatePackageCommand(req servers.NewPackage, actor *kernel.ID) (commands.CreatePackageCommand, error) {
	clientID, clientErr := parseID("client_id", req.ClientId)
	weight, weightErr := parseDecimal("weight", req.Weight)
	length, lengthErr := parseDecimal("length", req.Length)
	width, widthErr := parseDecimal("width", req.Width)
	height, heightErr := parseDecimal("height", req.Height)
	value, valueErr := parseDecimal("declared_value", req.DeclaredValue)
	if err := errors.Join(clientErr, weightErr, lengthErr, widthErr, heightErr, valueErr); err != nil {
		return commands.CreatePackageCommand{}, err
	}

	dims, err := parcel.NewDimensions(length, width, height)
	if err != nil {
		return commands.CreatePackageCommand{}, err
	}
	details, err := parcel.NewDetails(req.Description, weight, dims, value)
	if err != nil {
		return commands.CreatePackageCommand{}, err
	}
	route, err := kernel.ParseRoute(req.Origin, req.Destination)
	if err != nil {
		return commands.CreatePackageCommand{}, err
	}

	return commands.NewCreatePackageCommand(clientID, details, route, actor)
}

// GetPackage handles GET /api/v1/packages/{id}.
func (s *Server) GetPackage(ctx echo.Context, id servers.Id) error {
	packageID, err := pathID("id", id)
	if err != nil {
		return writeError(ctx, err)
	}
	query, err := queries.NewGetPackageQuery(packageID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.h.GetPackage.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, packageFromView(view))
}

// UpdatePackage handles PATCH /api/v1/packages/{id} - edits descriptive fields.
func (s *Server) UpdatePackage(ctx echo.Context, id servers.Id) error {
	packageID, err := pathID("id", id)
	if err != nil {
		return writeError(ctx, err)
	}
	var req servers.PackagePatch
	if err = bindAndValidate(ctx, &req); err != nil {
		return writeError(ctx, err)
	}

	patch, err := packagePatch(req)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewUpdatePackageDetailsCommand(packageID, patch)
	if err != nil {
		return writeError(ctx, err)
	}

	p, err := s.h.UpdatePackage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, packageFromDomain(p))
}

func packagePatch(req servers.PackagePatch) (commands.PackageDetailsPatch, error) {
	weight, weightErr := parseOptionalDecimal("weight", req.Weight)
	length, lengthErr := parseOptionalDecimal("length", req.Length)
	width, widthErr := parseOptionalDecimal("width", req.Width)
	height, heightErr := parseOptionalDecimal("height", req.Height)
	value, valueErr := parseOptionalDecimal("declared_value", req.DeclaredValue)
	if err := errors.Join(weightErr, lengthErr, widthErr, heightErr, valueErr); err != nil {
		return commands.PackageDetailsPatch{}, err
	}

	return commands.PackageDetailsPatch{
		Description:   req.Description,
		Weight:        weight,
		Length:        length,
		Width:         width,
		Height:        height,
		DeclaredValue: value,
		Origin:        req.Origin,
		Destination:   req.Destination,
	}, nil
}

// DeletePackage handles DELETE /api/v1/packages/{id} - soft-deletes the package.
func (s *Server) DeletePackage(ctx echo.Context, id servers.Id) error {
	packageID, err := pathID("id", id)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewDeletePackageCommand(packageID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.h.DeletePackage.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TransitionPackage handles POST /api/v1/packages/{id}/status.
func (s *Server) TransitionPackage(ctx echo.Context, id servers.Id) error {
	packageID, err := pathID("id", id)
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

	cmd, err := commands.NewTransitionPackageCommand(packageID, req.Status, req.Comment, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	p, err := s.h.TransitionPackage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, packageFromDomain(p))
}

// GetPackageHistory handles GET /api/v1/packages/{id}/history - newest entry first.
func (s *Server) GetPackageHistory(ctx echo.Context, id servers.Id) error {
	packageID, err := pathID("id", id)
	if err != nil {
		return writeError(ctx, err)
	}
	query, err := queries.NewGetPackageHistoryQuery(packageID)
	if err != nil {
		return writeError(ctx, err)
	}

	entries, err := s.h.GetPackageHistory.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.HistoryEntry, len(entries))
	for i, entry := range entries {
		response[i] = historyFromView(entry)
	}
	return ctx.JSON(http.StatusOK, response)
}
