package tenant

import (
	"context"

	"go-leave/internal/shared/database"

	"gorm.io/gorm"
)

// Scope restricts a query to one company's rows.
func Scope(companyID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// DB resolves the handle bound to ctx (see database.GetDB) and scopes it to
// companyID.
func DB(ctx context.Context, root *gorm.DB, companyID string) *gorm.DB {
	return database.GetDB(ctx, root).Scopes(Scope(companyID))
}
