package balance

import (
	"context"
	"errors"

	balanceerrors "go-leave/internal/balance/errors"
	"go-leave/internal/domain"
	"go-leave/internal/shared/clock"
	"go-leave/internal/shared/database"
	"go-leave/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	Find(ctx context.Context, companyID, employeeID string, leaveType domain.LeaveType, year int) (*Balance, error)
	FindByEmployeeYear(ctx context.Context, companyID, employeeID string, year int) ([]Balance, error)
	// Deduct adds days to used and reports the rows touched; zero means the
	// row was never provisioned.
	Deduct(ctx context.Context, companyID, employeeID string, leaveType domain.LeaveType, year int, days decimal.Decimal) (int64, error)
	Upsert(ctx context.Context, b *Balance) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Find(ctx context.Context, companyID, employeeID string, leaveType domain.LeaveType, year int) (*Balance, error) {
	var b Balance
	err := tenant.DB(ctx, r.db, companyID).
		Where("employee_id = ? AND leave_type = ? AND year = ?", employeeID, leaveType, year).
		Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, balanceerrors.ErrBalanceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindByEmployeeYear(ctx context.Context, companyID, employeeID string, year int) ([]Balance, error) {
	var rows []Balance
	err := tenant.DB(ctx, r.db, companyID).
		Where("employee_id = ? AND year = ?", employeeID, year).
		Order("leave_type ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Deduct(ctx context.Context, companyID, employeeID string, leaveType domain.LeaveType, year int, days decimal.Decimal) (int64, error) {
	res := tenant.DB(ctx, r.db, companyID).
		Model(&Balance{}).
		Where("employee_id = ? AND leave_type = ? AND year = ?", employeeID, leaveType, year).
		Updates(map[string]any{
			"used":       gorm.Expr("used + ?", days),
			"updated_at": clock.Now(),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) Upsert(ctx context.Context, b *Balance) error {
	return database.GetDB(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "employee_id"}, {Name: "leave_type"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"opening", "accrued", "updated_at"}),
		}).
		Create(b).Error
}
