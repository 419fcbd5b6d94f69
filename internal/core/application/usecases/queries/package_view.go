package queries

import (
	"database/sql"
	"time"

	"shiptrack/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// PackageView is the read model of a package.
type PackageView struct {
	ID             kernel.ID
	ClientID       kernel.ID
	TrackingNumber string
	PublicCode     string
	Description    string
	Weight         decimal.Decimal
	Length         decimal.Decimal
	Width          decimal.Decimal
	Height         decimal.Decimal
	DeclaredValue  decimal.Decimal
	Origin         string
	Destination    string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Version        int
}

const packageColumns = `
	p.id,
	p.client_id,
	p.tracking_number,
	p.public_code,
	p.description,
	p.weight,
	p.length,
	p.width,
	p.height,
	p.declared_value,
	p.origin,
	p.destination,
	p.status,
	p.created_at,
	p.updated_at,
	p.version`

func scanPackage(rows *sql.Rows) (PackageView, error) {
	var view PackageView
	var id, clientID int64

	err := rows.Scan(
		&id,
		&clientID,
		&view.TrackingNumber,
		&view.PublicCode,
		&view.Description,
		&view.Weight,
		&view.Length,
		&view.Width,
		&view.Height,
		&view.DeclaredValue,
		&view.Origin,
		&view.Destination,
		&view.Status,
		&view.CreatedAt,
		&view.UpdatedAt,
		&view.Version,
	)
	if err != nil {
		return PackageView{}, err
	}

	if view.ID, err = kernel.NewID(id); err != nil {
		return PackageView{}, err
	}
	if view.ClientID, err = kernel.NewID(clientID); err != nil {
		return PackageView{}, err
	}
	return view, nil
}
