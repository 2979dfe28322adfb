package employee

import (
	"context"
	"errors"

	"go-leave/internal/domain"
	"go-leave/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	// FindApproverByRole picks an active holder of role. Department-scoped
	// roles are searched in departmentID first, then company-wide. excludeID
	// is never returned.
	FindApproverByRole(ctx context.Context, companyID string, role domain.Role, departmentID *uuid.UUID, excludeID string) (*Employee, error)
	FindByIDs(ctx context.Context, companyID string, ids []string) ([]Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var emp Employee
	err := tenant.DB(ctx, r.db, companyID).
		First(&emp, "id = ?", id).Error
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return &emp, nil
}

func (r *repository) FindApproverByRole(ctx context.Context, companyID string, role domain.Role, departmentID *uuid.UUID, excludeID string) (*Employee, error) {
	if role.DepartmentScoped() && departmentID != nil {
		emp, err := r.findApprover(ctx, companyID, role, departmentID, excludeID)
		if err == nil {
			return emp, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, mapRepositoryError(err)
		}
	}

	emp, err := r.findApprover(ctx, companyID, role, nil, excludeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return emp, nil
}

func (r *repository) findApprover(ctx context.Context, companyID string, role domain.Role, departmentID *uuid.UUID, excludeID string) (*Employee, error) {
	q := tenant.DB(ctx, r.db, companyID).
		Where("role = ?", role).
		Where("active = ?", true)
	if departmentID != nil {
		q = q.Where("department_id = ?", *departmentID)
	}
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var emp Employee
	if err := q.Order("created_at ASC").Order("id ASC").Take(&emp).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindByIDs(ctx context.Context, companyID string, ids []string) ([]Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var emps []Employee
	err := tenant.DB(ctx, r.db, companyID).
		Where("id IN ?", ids).
		Find(&emps).Error
	return emps, err
}
