package leave

import (
	"context"

	"go-leave/internal/domain"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/shared/clock"
	"go-leave/internal/shared/database"
	"go-leave/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error)
	Create(ctx context.Context, l *Leave) error
	// UpdateStatus moves the leave to `to` only while its status is one of
	// from, and reports the number of rows changed.
	UpdateStatus(ctx context.Context, companyID, id string, from []domain.LeaveStatus, to domain.LeaveStatus) (int64, error)
	UpdateDetails(ctx context.Context, l *Leave) error
	FindByEmployee(ctx context.Context, companyID, employeeID string) ([]Leave, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Leave, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error) {
	var l Leave
	err := tenant.DB(ctx, r.db, companyID).
		First(&l, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	return &l, nil
}

func (r *repository) Create(ctx context.Context, l *Leave) error {
	err := database.GetDB(ctx, r.db).Create(l).Error
	return mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
}

func (r *repository) UpdateStatus(ctx context.Context, companyID, id string, from []domain.LeaveStatus, to domain.LeaveStatus) (int64, error) {
	now := clock.Now().UTC()
	updates := map[string]any{
		"status":     to,
		"updated_at": now,
	}
	if to.Terminal() {
		updates["decided_at"] = now
	}

	res := tenant.DB(ctx, r.db, companyID).
		Model(&Leave{}).
		Where("id = ?", id).
		Where("status IN ?", from).
		Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *repository) UpdateDetails(ctx context.Context, l *Leave) error {
	return tenant.DB(ctx, r.db, l.CompanyID.String()).
		Model(&Leave{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"leave_type":      l.LeaveType,
			"start_date":      l.StartDate,
			"end_date":        l.EndDate,
			"working_days":    l.WorkingDays,
			"reason":          l.Reason,
			"certificate_ref": l.CertificateRef,
			"updated_at":      clock.Now().UTC(),
		}).Error
}

func (r *repository) FindByEmployee(ctx context.Context, companyID, employeeID string) ([]Leave, error) {
	var leaves []Leave
	err := tenant.DB(ctx, r.db, companyID).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Leave, error) {
	var leaves []Leave
	err := tenant.DB(ctx, r.db, companyID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}
