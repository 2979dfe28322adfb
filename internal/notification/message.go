package notification

import (
	"fmt"
	"strings"

	"go-leave/internal/events"
)

type Message struct {
	Subject string
	Body    string
}

// Compose renders the text a recipient sees for an event. Unknown event
// types yield ok=false.
func Compose(e events.LeaveNotificationEvent) (Message, bool) {
	ref := shortID(e.LeaveID)

	switch e.EventType {
	case events.LeaveSubmitted:
		return Message{
			Subject: "Leave request awaiting your approval",
			Body:    fmt.Sprintf("Leave request %s is waiting for your decision.", ref),
		}, true
	case events.LeaveApproved:
		return Message{
			Subject: "Leave request approved",
			Body:    fmt.Sprintf("Your leave request %s has been approved.", ref),
		}, true
	case events.LeaveStepAdvanced:
		return Message{
			Subject: "Leave request awaiting your approval",
			Body:    fmt.Sprintf("Leave request %s passed the previous step and now needs your decision as %s.", ref, humanRole(e.Role)),
		}, true
	case events.LeaveRejected:
		return Message{
			Subject: "Leave request rejected",
			Body:    withReason(fmt.Sprintf("Your leave request %s has been rejected.", ref), e.Reason),
		}, true
	case events.LeaveForwarded:
		return Message{
			Subject: "Leave request forwarded to you",
			Body:    fmt.Sprintf("Leave request %s was forwarded to you as %s.", ref, humanRole(e.Role)),
		}, true
	case events.LeaveReturned:
		return Message{
			Subject: "Leave request returned for changes",
			Body:    withReason(fmt.Sprintf("Your leave request %s needs changes before it can continue.", ref), e.Reason),
		}, true
	case events.LeaveCancelled:
		return Message{
			Subject: "Leave request cancelled",
			Body:    fmt.Sprintf("Leave request %s was cancelled by the requester.", ref),
		}, true
	default:
		return Message{}, false
	}
}

func withReason(body, reason string) string {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return body
	}
	return body + " Reason: " + reason
}

func humanRole(role string) string {
	if role == "" {
		return "approver"
	}
	return strings.ToLower(strings.ReplaceAll(role, "_", " "))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
