package domain

import "strings"

type LeaveType string

const (
	LeaveAnnual      LeaveType = "ANNUAL"
	LeaveCasual      LeaveType = "CASUAL"
	LeaveSick        LeaveType = "SICK"
	LeaveMaternity   LeaveType = "MATERNITY"
	LeavePaternity   LeaveType = "PATERNITY"
	LeaveBereavement LeaveType = "BEREAVEMENT"
	LeaveStudy       LeaveType = "STUDY"
	LeaveUnpaid      LeaveType = "UNPAID"

	// LeaveAll is only meaningful as a rule applicability marker.
	LeaveAll LeaveType = "ALL"
)

var leaveTypes = []LeaveType{
	LeaveAnnual,
	LeaveCasual,
	LeaveSick,
	LeaveMaternity,
	LeavePaternity,
	LeaveBereavement,
	LeaveStudy,
	LeaveUnpaid,
}

// LeaveTypes returns the closed set of requestable leave types.
func LeaveTypes() []LeaveType {
	out := make([]LeaveType, len(leaveTypes))
	copy(out, leaveTypes)
	return out
}

func ParseLeaveType(v string) (LeaveType, bool) {
	t := LeaveType(strings.ToUpper(strings.TrimSpace(v)))
	for _, known := range leaveTypes {
		if known == t {
			return t, true
		}
	}
	return "", false
}

// TracksBalance reports whether days of this type are drawn from a ledger.
func (t LeaveType) TracksBalance() bool {
	return t != LeaveUnpaid && t != LeaveAll && t != ""
}

type LeaveStatus string

const (
	StatusSubmitted LeaveStatus = "SUBMITTED"
	StatusPending   LeaveStatus = "PENDING"
	StatusApproved  LeaveStatus = "APPROVED"
	StatusRejected  LeaveStatus = "REJECTED"
	StatusReturned  LeaveStatus = "RETURNED"
	StatusCancelled LeaveStatus = "CANCELLED"
)

// InChain is true while a request is waiting on some approver.
func (s LeaveStatus) InChain() bool {
	return s == StatusPending || s == StatusSubmitted
}

func (s LeaveStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}

// CountsAgainstHistory is false for requests that no longer occupy their dates.
func (s LeaveStatus) CountsAgainstHistory() bool {
	return s != StatusCancelled && s != StatusRejected
}
