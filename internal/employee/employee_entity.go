package employee

import (
	"time"

	"go-leave/internal/domain"

	"github.com/google/uuid"
)

type Employee struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID   `gorm:"type:uuid;index"`
	DepartmentID *uuid.UUID  `gorm:"type:uuid;index"`
	FullName     string      `gorm:"not null"`
	Email        string      `gorm:"uniqueIndex:uq_employee_email"`
	Role         domain.Role `gorm:"type:varchar(32);not null;index"`
	HireDate     time.Time   `gorm:"type:date"`
	Active       bool        `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SameDepartment is false when either side has no department.
func (e *Employee) SameDepartment(other *Employee) bool {
	return e.DepartmentID != nil && other.DepartmentID != nil && *e.DepartmentID == *other.DepartmentID
}
