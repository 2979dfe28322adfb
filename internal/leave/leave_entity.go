package leave

import (
	"time"

	"go-leave/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Leave struct {
	ID            uuid.UUID   `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID   `gorm:"type:uuid;not null;index:idx_leaves_company_status;uniqueIndex:uq_leave_reference,priority:1"`
	ReferenceNo   string      `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_reference,priority:2"`
	EmployeeID    uuid.UUID   `gorm:"type:uuid;not null;index:idx_leaves_employee_dates"`
	RequesterRole domain.Role `gorm:"type:varchar(30);not null"`

	LeaveType      domain.LeaveType `gorm:"type:varchar(30);not null"`
	StartDate      time.Time        `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	EndDate        time.Time        `gorm:"type:date;not null;index:idx_leaves_employee_dates"`
	WorkingDays    int              `gorm:"type:int;not null"`
	Reason         string           `gorm:"type:text"`
	CertificateRef *string          `gorm:"type:varchar(255)"`

	Status    domain.LeaveStatus `gorm:"type:varchar(20);not null;index:idx_leaves_company_status"`
	CreatedBy uuid.UUID          `gorm:"type:uuid;not null"`
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leaves_deleted_at"`
}

func (Leave) TableName() string {
	return "leaves"
}

func (l Leave) HasCertificate() bool {
	return l.CertificateRef != nil && *l.CertificateRef != ""
}

// Approval is one step of a leave's approval chain. Steps start at 1 and
// grow by one for every handoff or re-entry.
type Approval struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey"`
	LeaveID         uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:uq_leave_approval_step,priority:1"`
	Step            int          `gorm:"not null;uniqueIndex:uq_leave_approval_step,priority:2"`
	ApproverID      uuid.UUID    `gorm:"type:uuid;not null;index:idx_leave_approvals_approver"`
	ApproverRole    domain.Role  `gorm:"type:varchar(30);not null"`
	Decision        DecisionKind `gorm:"type:varchar(20);not null;index:idx_leave_approvals_approver"`
	ForwardedToRole *domain.Role `gorm:"type:varchar(30)"`
	Comment         string       `gorm:"type:text"`
	DecidedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	Leave *Leave `gorm:"foreignKey:LeaveID"`
}

func (Approval) TableName() string {
	return "leave_approvals"
}

// Outcome decodes the persisted columns into a Decision.
func (a Approval) Outcome() Decision {
	return decode(a.Decision, a.ForwardedToRole, a.Comment)
}
