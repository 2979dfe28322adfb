package leave

import (
	"context"
	"strings"
	"time"

	"go-leave/internal/domain"
	"go-leave/internal/employee"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/policy"
	"go-leave/internal/shared/clock"
)

// draft is a parsed create or resubmit payload.
type draft struct {
	leaveType      domain.LeaveType
	start          time.Time
	end            time.Time
	reason         string
	certificateRef *string
}

func parseDraft(leaveType, startDate, endDate, reason string, certificateRef *string) (draft, error) {
	t, ok := domain.ParseLeaveType(leaveType)
	if !ok {
		return draft{}, leaveerrors.ErrInvalidLeaveType
	}
	start, err := parseDate(startDate)
	if err != nil {
		return draft{}, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return draft{}, err
	}
	if exceedsSpan(start, end, maxRequestSpanDays) {
		return draft{}, leaveerrors.ErrDateRangeTooLong.WithDetails(map[string]int{"max_days": maxRequestSpanDays})
	}

	var cert *string
	if certificateRef != nil {
		if v := strings.TrimSpace(*certificateRef); v != "" {
			cert = &v
		}
	}

	return draft{
		leaveType:      t,
		start:          start,
		end:            end,
		reason:         strings.TrimSpace(reason),
		certificateRef: cert,
	}, nil
}

// exceedsSpan reports whether a..b, in either order, covers more than days
// calendar days. Duration arithmetic saturates on far-apart dates, so this
// compares dates instead.
func exceedsSpan(a, b time.Time, days int) bool {
	if b.Before(a) {
		a, b = b, a
	}
	return b.After(a.AddDate(0, 0, days-1))
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

// buildInput gathers everything the policy engine looks at. selfID excludes
// the leave being resubmitted from overlap and pending checks.
func (s *service) buildInput(ctx context.Context, companyID string, requester *employee.Employee, d draft, selfID string) (policy.Input, error) {
	from, to := d.start, d.end
	if to.Before(from) {
		from, to = to, from
	}
	cal, err := s.holidays.CalendarFor(ctx, companyID,
		from.AddDate(0, 0, -calendarMargin),
		to.AddDate(0, 0, calendarMargin),
	)
	if err != nil {
		return policy.Input{}, err
	}

	balances, err := s.balances.Snapshots(ctx, companyID, requester.ID.String(), d.start.Year())
	if err != nil {
		return policy.Input{}, err
	}

	leaves, err := s.leaves.FindByEmployee(ctx, companyID, requester.ID.String())
	if err != nil {
		return policy.Input{}, err
	}
	history := make([]policy.HistoryEntry, len(leaves))
	for i, l := range leaves {
		history[i] = policy.HistoryEntry{
			ID:          l.ID.String(),
			Type:        l.LeaveType,
			Start:       l.StartDate,
			End:         l.EndDate,
			Status:      l.Status,
			WorkingDays: l.WorkingDays,
		}
	}

	return policy.Input{
		Request: policy.Request{
			ID:             selfID,
			Type:           d.leaveType,
			Start:          d.start,
			End:            d.end,
			HasCertificate: d.certificateRef != nil,
		},
		Requester: policy.Requester{
			ID:       requester.ID.String(),
			Role:     requester.Role,
			HireDate: requester.HireDate,
		},
		Balances: balances,
		Calendar: cal,
		History:  history,
		Today:    clock.Today(),
	}, nil
}
