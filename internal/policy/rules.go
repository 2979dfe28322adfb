package policy

// Violation codes produced by the shipped rules.
const (
	CodeInvalidLeaveType      = "INVALID_LEAVE_TYPE"
	CodeInvalidDateRange      = "INVALID_DATE_RANGE"
	CodeNoWorkingDays         = "NO_WORKING_DAYS"
	CodeStartsOnNonWorkingDay = "STARTS_ON_NON_WORKING_DAY"
	CodeEndsOnNonWorkingDay   = "ENDS_ON_NON_WORKING_DAY"
	CodeExceedsMaxDays        = "EXCEEDS_MAX_DAYS"
	CodeExcessReclassified    = "EXCESS_RECLASSIFIED"
	CodeInsufficientNotice    = "INSUFFICIENT_NOTICE"
	CodeShortNotice           = "SHORT_NOTICE"
	CodeAdjacentToHoliday     = "ADJACENT_TO_HOLIDAY"
	CodeCertificateRequired   = "CERTIFICATE_REQUIRED"
	CodeBackdatedTooFar       = "BACKDATED_TOO_FAR"
	CodeBalanceNotProvisioned = "BALANCE_NOT_PROVISIONED"
	CodeInsufficientBalance   = "INSUFFICIENT_BALANCE"
	CodeLowBalance            = "LOW_BALANCE"
	CodePendingExceedsBalance = "PENDING_EXCEEDS_BALANCE"
	CodeOverlappingLeave      = "OVERLAPPING_LEAVE"
	CodeTooFarInAdvance       = "TOO_FAR_IN_ADVANCE"
	CodeNotEligible           = "NOT_ELIGIBLE"
)

// Rule priorities. Higher runs first and ranks its suggestions higher.
const (
	priorityLeaveType      = 110
	priorityDateRange      = 100
	priorityWorkingDays    = 95
	priorityBackdating     = 90
	priorityOverlap        = 85
	priorityBalance        = 80
	priorityPending        = 78
	priorityCertificate    = 75
	priorityMaxConsecutive = 70
	priorityAdvanceNotice  = 60
	priorityHoliday        = 55
	priorityEligibility    = 50
	priorityMaxAdvance     = 45
	priorityBounds         = 30
)

// DefaultRules returns the full rule set configured by cfg.
func DefaultRules(cfg Config) []Rule {
	return []Rule{
		newLeaveTypeRule(),
		newDateRangeRule(),
		newWorkingDaysRule(),
		newWorkingDayStartRule(),
		newWorkingDayEndRule(),
		newMaxConsecutiveRule(cfg.MaxConsecutiveDays),
		newAdvanceNoticeRule(cfg.AdvanceNotice),
		newHolidayAdjacencyRule(cfg.HolidayAdjacentBlocked),
		newCertificateRule(cfg.CertificateAboveDays),
		newBackdatingRule(cfg.BackdatingDays, cfg.DefaultBackdatingDays),
		newBalanceSufficiencyRule(cfg.LowBalanceReserveDays),
		newPendingDoubleCountRule(),
		newOverlapRule(),
		newMaxAdvanceRule(cfg.MaxAdvanceDays),
		newEligibilityRule(cfg.MinTenureDays),
	}
}
