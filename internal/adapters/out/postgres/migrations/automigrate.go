package migrations

import (
	"fmt"

	"shiptrack/internal/adapters/out/postgres/historyrepo"
	"shiptrack/internal/adapters/out/postgres/packagerepo"
	"shiptrack/internal/adapters/out/postgres/shipmentrepo"

	"gorm.io/gorm"
)

// AutoMigrate creates the schema from the GORM models. It is used for SQLite,
// where the PostgreSQL migration files do not apply.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&packagerepo.PackageDTO{},
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.ShipmentPackageDTO{},
		&historyrepo.EntryDTO{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
