package balance

import (
	"time"

	"go-leave/internal/domain"
	"go-leave/internal/policy"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance is one ledger row per (employee, leave type, year).
type Balance struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CompanyID  uuid.UUID        `gorm:"type:uuid;index"`
	EmployeeID uuid.UUID        `gorm:"type:uuid;uniqueIndex:uq_leave_balance"`
	LeaveType  domain.LeaveType `gorm:"type:varchar(20);uniqueIndex:uq_leave_balance"`
	Year       int              `gorm:"uniqueIndex:uq_leave_balance"`
	Opening    decimal.Decimal  `gorm:"type:numeric(6,2);not null"`
	Accrued    decimal.Decimal  `gorm:"type:numeric(6,2);not null"`
	Used       decimal.Decimal  `gorm:"type:numeric(6,2);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (Balance) TableName() string {
	return "leave_balances"
}

// Closing is opening + accrued - used.
func (b Balance) Closing() decimal.Decimal {
	return b.Opening.Add(b.Accrued).Sub(b.Used)
}

func (b Balance) Snapshot() policy.BalanceSnapshot {
	return policy.BalanceSnapshot{
		Opening: b.Opening,
		Accrued: b.Accrued,
		Used:    b.Used,
	}
}
