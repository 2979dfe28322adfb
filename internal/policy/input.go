package policy

import (
	"time"

	"go-leave/internal/domain"

	"github.com/shopspring/decimal"
)

// Input is everything a rule may look at. Rules never read the wall clock;
// Today is the only notion of "now".
type Input struct {
	Request   Request
	Requester Requester
	Balances  map[domain.LeaveType]BalanceSnapshot
	Calendar  Calendar
	History   []HistoryEntry
	Today     time.Time
}

type Request struct {
	// ID is empty for a request that has not been persisted yet.
	ID             string
	Type           domain.LeaveType
	Start          time.Time
	End            time.Time
	HasCertificate bool
}

type Requester struct {
	ID       string
	Role     domain.Role
	HireDate time.Time
}

type BalanceSnapshot struct {
	Opening decimal.Decimal
	Accrued decimal.Decimal
	Used    decimal.Decimal
}

// Available is opening + accrued - used.
func (b BalanceSnapshot) Available() decimal.Decimal {
	return b.Opening.Add(b.Accrued).Sub(b.Used)
}

type HistoryEntry struct {
	ID          string
	Type        domain.LeaveType
	Start       time.Time
	End         time.Time
	Status      domain.LeaveStatus
	WorkingDays int
}

func (in Input) validRange() bool {
	return !in.Request.Start.IsZero() && !in.Request.End.IsZero() && !in.Request.Start.After(in.Request.End)
}

// WorkingDays is the number of days the request would charge.
func (in Input) WorkingDays() int {
	return in.Calendar.WorkingDays(in.Request.Start, in.Request.End)
}

func (in Input) calendarDays() int {
	if !in.validRange() {
		return 0
	}
	return daysBetween(in.Request.Start, in.Request.End) + 1
}

// others yields history entries that are not the request being validated.
func (in Input) others() []HistoryEntry {
	out := make([]HistoryEntry, 0, len(in.History))
	for _, h := range in.History {
		if in.Request.ID != "" && h.ID == in.Request.ID {
			continue
		}
		out = append(out, h)
	}
	return out
}
