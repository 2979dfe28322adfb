package holiday

import (
	"context"
	"errors"
	"strings"
	"time"

	holidayerrors "go-leave/internal/holiday/errors"
	"go-leave/internal/shared/database"
	"go-leave/internal/tenant"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=holiday_repo.go -destination=mock/holiday_repo_mock.go -package=mock
type Repository interface {
	FindByRange(ctx context.Context, companyID string, from, to time.Time) ([]Holiday, error)
	Create(ctx context.Context, h *Holiday) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByRange(ctx context.Context, companyID string, from, to time.Time) ([]Holiday, error) {
	var rows []Holiday
	err := tenant.DB(ctx, r.db, companyID).
		Where("date BETWEEN ? AND ?", from, to).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	err := database.GetDB(ctx, r.db).Create(h).Error
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return holidayerrors.ErrHolidayAlreadyExists
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique constraint") {
		return holidayerrors.ErrHolidayAlreadyExists
	}
	return err
}
