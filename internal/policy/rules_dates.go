package policy

import (
	"fmt"
	"strings"

	"go-leave/internal/domain"
)

type leaveTypeRule struct{ base }

func newLeaveTypeRule() Rule {
	return leaveTypeRule{base{id: "leave_type", types: allTypes, priority: priorityLeaveType}}
}

func (r leaveTypeRule) Validate(in Input) Result {
	if _, ok := domain.ParseLeaveType(string(in.Request.Type)); ok {
		return pass()
	}
	names := make([]string, 0, 8)
	for _, t := range domain.LeaveTypes() {
		names = append(names, string(t))
	}
	return fail(SeverityError, CodeInvalidLeaveType,
		fmt.Sprintf("unknown leave type %q", in.Request.Type),
		"Choose one of: "+strings.Join(names, ", "))
}

func (r leaveTypeRule) Explain(Input) string {
	return "The leave type must be one of the types defined by company policy."
}

type dateRangeRule struct{ base }

func newDateRangeRule() Rule {
	return dateRangeRule{base{id: "date_range", types: allTypes, priority: priorityDateRange}}
}

func (r dateRangeRule) Validate(in Input) Result {
	if in.Request.Start.IsZero() || in.Request.End.IsZero() {
		return fail(SeverityError, CodeInvalidDateRange, "start and end dates are required")
	}
	if in.Request.Start.After(in.Request.End) {
		return fail(SeverityError, CodeInvalidDateRange,
			fmt.Sprintf("start date %s is after end date %s", formatDate(in.Request.Start), formatDate(in.Request.End)),
			fmt.Sprintf("Swap the dates to start on %s and end on %s", formatDate(in.Request.End), formatDate(in.Request.Start)))
	}
	return pass()
}

func (r dateRangeRule) Explain(Input) string {
	return "The start date must be on or before the end date."
}

type workingDaysRule struct{ base }

func newWorkingDaysRule() Rule {
	return workingDaysRule{base{id: "working_days", types: allTypes, priority: priorityWorkingDays}}
}

func (r workingDaysRule) Validate(in Input) Result {
	if !in.validRange() || in.WorkingDays() > 0 {
		return pass()
	}
	next := in.Calendar.NextWorkingDay(in.Request.Start)
	return fail(SeverityError, CodeNoWorkingDays,
		"the requested range contains no working days",
		fmt.Sprintf("The next working day is %s", formatDate(next)))
}

func (r workingDaysRule) Explain(in Input) string {
	return fmt.Sprintf("Weekends and company holidays are not charged; this request covers %d working day(s).", in.WorkingDays())
}

type workingDayStartRule struct{ base }

func newWorkingDayStartRule() Rule {
	return workingDayStartRule{base{id: "working_day_start", types: allTypes, priority: priorityBounds}}
}

func (r workingDayStartRule) Validate(in Input) Result {
	if !in.validRange() || in.Calendar.IsWorkingDay(in.Request.Start) {
		return pass()
	}
	next := in.Calendar.NextWorkingDay(in.Request.Start)
	return fail(SeverityWarning, CodeStartsOnNonWorkingDay,
		fmt.Sprintf("leave starts on %s, which is not a working day", formatDate(in.Request.Start)),
		fmt.Sprintf("Start the leave on %s instead", formatDate(next)))
}

func (r workingDayStartRule) Explain(Input) string {
	return "Leave should start on a working day."
}

type workingDayEndRule struct{ base }

func newWorkingDayEndRule() Rule {
	return workingDayEndRule{base{id: "working_day_end", types: allTypes, priority: priorityBounds}}
}

func (r workingDayEndRule) Validate(in Input) Result {
	if !in.validRange() || in.Calendar.IsWorkingDay(in.Request.End) {
		return pass()
	}
	prev := in.Calendar.PreviousWorkingDay(in.Request.End)
	return fail(SeverityWarning, CodeEndsOnNonWorkingDay,
		fmt.Sprintf("leave ends on %s, which is not a working day", formatDate(in.Request.End)),
		fmt.Sprintf("End the leave on %s instead", formatDate(prev)))
}

func (r workingDayEndRule) Explain(Input) string {
	return "Leave should end on a working day."
}

type maxConsecutiveRule struct {
	base
	caps map[domain.LeaveType]CapConfig
}

func newMaxConsecutiveRule(caps map[domain.LeaveType]CapConfig) Rule {
	return maxConsecutiveRule{
		base: base{id: "max_consecutive", types: sortedKeys(caps), priority: priorityMaxConsecutive},
		caps: caps,
	}
}

func (r maxConsecutiveRule) Validate(in Input) Result {
	limit, ok := r.caps[in.Request.Type]
	if !ok || !in.validRange() {
		return pass()
	}
	days := in.WorkingDays()
	if days <= limit.Days {
		return pass()
	}

	excess := days - limit.Days
	if limit.Severity != SeverityError && limit.ReclassifyTo != "" {
		return fail(limit.Severity, CodeExcessReclassified,
			fmt.Sprintf("%s leave is capped at %d consecutive working days; the remaining %d day(s) will be recorded as %s",
				in.Request.Type, limit.Days, excess, limit.ReclassifyTo),
			fmt.Sprintf("Split the request so each %s block is at most %d working days", in.Request.Type, limit.Days))
	}

	return fail(limit.Severity, CodeExceedsMaxDays,
		fmt.Sprintf("%s leave may not exceed %d consecutive working days; %d requested", in.Request.Type, limit.Days, days),
		fmt.Sprintf("Shorten the request to %d working day(s)", limit.Days))
}

func (r maxConsecutiveRule) Explain(in Input) string {
	limit, ok := r.caps[in.Request.Type]
	if !ok {
		return "No consecutive-day cap applies."
	}
	return fmt.Sprintf("%s leave is capped at %d consecutive working days (requested: %d).", in.Request.Type, limit.Days, in.WorkingDays())
}

type advanceNoticeRule struct {
	base
	notice map[domain.LeaveType]NoticeConfig
}

func newAdvanceNoticeRule(notice map[domain.LeaveType]NoticeConfig) Rule {
	return advanceNoticeRule{
		base:   base{id: "advance_notice", types: sortedKeys(notice), priority: priorityAdvanceNotice},
		notice: notice,
	}
}

func (r advanceNoticeRule) Validate(in Input) Result {
	cfg, ok := r.notice[in.Request.Type]
	if !ok || !in.validRange() || in.Today.IsZero() {
		return pass()
	}
	given := daysBetween(in.Today, in.Request.Start)
	// Past start dates belong to the backdating rule.
	if given < 0 || given >= cfg.Days {
		return pass()
	}

	earliest := in.Today.AddDate(0, 0, cfg.Days)
	code := CodeShortNotice
	if cfg.Severity == SeverityError {
		code = CodeInsufficientNotice
	}
	return fail(cfg.Severity, code,
		fmt.Sprintf("%s leave needs %d day(s) notice; %d given", in.Request.Type, cfg.Days, given),
		fmt.Sprintf("The earliest start date with enough notice is %s", formatDate(earliest)))
}

func (r advanceNoticeRule) Explain(in Input) string {
	cfg, ok := r.notice[in.Request.Type]
	if !ok {
		return "No advance notice is required."
	}
	return fmt.Sprintf("%s leave must be requested at least %d day(s) ahead.", in.Request.Type, cfg.Days)
}

type maxAdvanceRule struct {
	base
	maxDays int
}

func newMaxAdvanceRule(maxDays int) Rule {
	return maxAdvanceRule{base: base{id: "max_advance", types: allTypes, priority: priorityMaxAdvance}, maxDays: maxDays}
}

func (r maxAdvanceRule) Validate(in Input) Result {
	if !in.validRange() || in.Today.IsZero() {
		return pass()
	}
	ahead := daysBetween(in.Today, in.Request.Start)
	if ahead <= r.maxDays {
		return pass()
	}
	return fail(SeverityError, CodeTooFarInAdvance,
		fmt.Sprintf("leave may be requested at most %d days in advance; this one starts in %d", r.maxDays, ahead),
		fmt.Sprintf("Submit the request on or after %s", formatDate(in.Request.Start.AddDate(0, 0, -r.maxDays))))
}

func (r maxAdvanceRule) Explain(Input) string {
	return fmt.Sprintf("Requests may be submitted at most %d days before the start date.", r.maxDays)
}

type backdatingRule struct {
	base
	limits       map[domain.LeaveType]int
	defaultLimit int
}

func newBackdatingRule(limits map[domain.LeaveType]int, defaultLimit int) Rule {
	return backdatingRule{
		base:         base{id: "backdating", types: allTypes, priority: priorityBackdating},
		limits:       limits,
		defaultLimit: defaultLimit,
	}
}

func (r backdatingRule) limitFor(t domain.LeaveType) int {
	if v, ok := r.limits[t]; ok {
		return v
	}
	return r.defaultLimit
}

func (r backdatingRule) Validate(in Input) Result {
	if !in.validRange() || in.Today.IsZero() {
		return pass()
	}
	back := daysBetween(in.Request.Start, in.Today)
	limit := r.limitFor(in.Request.Type)
	if back <= limit {
		return pass()
	}
	if limit == 0 {
		return fail(SeverityError, CodeBackdatedTooFar,
			fmt.Sprintf("%s leave cannot start in the past", in.Request.Type),
			fmt.Sprintf("Start the leave on or after %s", formatDate(in.Today)))
	}
	return fail(SeverityError, CodeBackdatedTooFar,
		fmt.Sprintf("%s leave can be backdated at most %d day(s); this one starts %d day(s) ago", in.Request.Type, limit, back),
		fmt.Sprintf("Start the leave on or after %s", formatDate(in.Today.AddDate(0, 0, -limit))))
}

func (r backdatingRule) Explain(in Input) string {
	limit := r.limitFor(in.Request.Type)
	if limit == 0 {
		return fmt.Sprintf("%s leave cannot be backdated.", in.Request.Type)
	}
	return fmt.Sprintf("%s leave can be backdated up to %d day(s).", in.Request.Type, limit)
}

type holidayAdjacencyRule struct{ base }

func newHolidayAdjacencyRule(blocked []domain.LeaveType) Rule {
	return holidayAdjacencyRule{base{id: "holiday_adjacency", types: blocked, priority: priorityHoliday}}
}

func (r holidayAdjacencyRule) Validate(in Input) Result {
	if !in.validRange() {
		return pass()
	}

	var touched []Holiday
	before := in.Request.Start.AddDate(0, 0, -1)
	if name, ok := in.Calendar.Holiday(before); ok {
		touched = append(touched, Holiday{Date: dateOf(before), Name: name})
	}
	touched = append(touched, in.Calendar.HolidaysBetween(in.Request.Start, in.Request.End)...)
	after := in.Request.End.AddDate(0, 0, 1)
	if name, ok := in.Calendar.Holiday(after); ok {
		touched = append(touched, Holiday{Date: dateOf(after), Name: name})
	}
	if len(touched) == 0 {
		return pass()
	}

	h := touched[0]
	return fail(SeverityError, CodeAdjacentToHoliday,
		fmt.Sprintf("%s leave cannot touch a public holiday (%s on %s)", in.Request.Type, h.Name, formatDate(h.Date)),
		"Use ANNUAL leave for days next to a holiday",
		"Move the request so it neither includes nor borders a holiday")
}

func (r holidayAdjacencyRule) Explain(in Input) string {
	return fmt.Sprintf("%s leave may not include or border a public holiday.", in.Request.Type)
}
