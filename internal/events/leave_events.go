package events

import "time"

const LeaveNotificationTopic = "hr.leave.notification.v1"

const (
	LeaveSubmitted = "leave.submitted"
	LeaveApproved  = "leave.approved"
	LeaveRejected  = "leave.rejected"
	LeaveForwarded = "leave.forwarded"
	LeaveReturned  = "leave.returned"
	LeaveCancelled = "leave.cancelled"
)

// LeaveStepAdvanced goes to the next approver after a non-final approval.
const LeaveStepAdvanced = "leave.step_advanced"

// LeaveNotificationEvent addresses one recipient. Fan-out happens before the
// event is written, so consumers never look anything up.
type LeaveNotificationEvent struct {
	EventType   string    `json:"event_type"`
	LeaveID     string    `json:"leave_id"`
	CompanyID   string    `json:"company_id"`
	RecipientID string    `json:"recipient_id"`
	ActorID     string    `json:"actor_id"`
	Role        string    `json:"role,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}
