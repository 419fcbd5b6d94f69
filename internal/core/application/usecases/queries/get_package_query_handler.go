package queries

import (
	"context"

	"shiptrack/internal/pkg/errs"

	"gorm.io/gorm"
)

type GetPackageQueryHandler struct {
	db *gorm.DB
}

func NewGetPackageQueryHandler(db *gorm.DB) GetPackageQueryHandler {
	return GetPackageQueryHandler{db: db}
}

// Handle returns the package or an ObjectNotFoundError when it is missing or deleted.
func (h GetPackageQueryHandler) Handle(ctx context.Context, query GetPackageQuery) (PackageView, error) {
	if err := query.Validate(); err != nil {
		return PackageView{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+packageColumns+`
		FROM packages p
		WHERE p.id = ? AND p.active = ?
	`, query.PackageID().Int64(), true).Rows()
	if err != nil {
		return PackageView{}, errs.NewInternalError("get package", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return PackageView{}, errs.NewInternalError("get package", err)
		}
		return PackageView{}, errs.NewObjectNotFoundError("package", query.PackageID().String())
	}

	view, err := scanPackage(rows)
	if err != nil {
		return PackageView{}, errs.NewInternalError("get package", err)
	}
	return view, nil
}
