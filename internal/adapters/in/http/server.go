// Package http exposes the commands and queries over a JSON API built on echo.
package http

import (
	"time"

	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/generated/servers"
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreatePackage      commands.CreatePackageCommandHandler
	UpdatePackage      commands.UpdatePackageDetailsCommandHandler
	TransitionPackage  commands.TransitionPackageCommandHandler
	DeletePackage      commands.DeletePackageCommandHandler
	CreateShipment     commands.CreateShipmentCommandHandler
	UpdateShipment     commands.UpdateShipmentCommandHandler
	TransitionShipment commands.TransitionShipmentCommandHandler
	AddPackages        commands.AddPackagesToShipmentCommandHandler
	RemovePackage      commands.RemovePackageFromShipmentCommandHandler
	DeleteShipment     commands.DeleteShipmentCommandHandler

	GetPackage           queries.GetPackageQueryHandler
	GetPackageHistory    queries.GetPackageHistoryQueryHandler
	GetShipment          queries.GetShipmentQueryHandler
	ListShipmentPackages queries.ListShipmentPackagesQueryHandler
	GetOverdueShipments  queries.GetOverdueShipmentsQueryHandler
}

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	h   Handlers
	now func() time.Time
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers, now: time.Now}
}

var _ servers.ServerInterface = (*Server)(nil)
