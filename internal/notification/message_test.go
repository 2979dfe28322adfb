package notification_test

import (
	"testing"

	"go-leave/internal/events"
	"go-leave/internal/notification"

	"github.com/stretchr/testify/assert"
)

func TestCompose(t *testing.T) {
	msg, ok := notification.Compose(events.LeaveNotificationEvent{
		EventType: events.LeaveForwarded,
		LeaveID:   "0f7c2a91-aaaa-bbbb-cccc-1234567890ab",
		Role:      "HEAD_OF_DEPARTMENT",
	})
	assert.True(t, ok)
	assert.Equal(t, "Leave request forwarded to you", msg.Subject)
	assert.Equal(t, "Leave request 0f7c2a91 was forwarded to you as head of department.", msg.Body)

	msg, ok = notification.Compose(events.LeaveNotificationEvent{
		EventType: events.LeaveReturned,
		LeaveID:   "leave-1",
		Reason:    " attach the itinerary ",
	})
	assert.True(t, ok)
	assert.Equal(t, "Your leave request leave-1 needs changes before it can continue. Reason: attach the itinerary", msg.Body)

	_, ok = notification.Compose(events.LeaveNotificationEvent{EventType: "leave.archived"})
	assert.False(t, ok)
}

func TestCompose_EveryEventType(t *testing.T) {
	for _, et := range []string{
		events.LeaveSubmitted,
		events.LeaveApproved,
		events.LeaveStepAdvanced,
		events.LeaveRejected,
		events.LeaveForwarded,
		events.LeaveReturned,
		events.LeaveCancelled,
	} {
		msg, ok := notification.Compose(events.LeaveNotificationEvent{EventType: et, LeaveID: "l"})
		assert.True(t, ok, et)
		assert.NotEmpty(t, msg.Subject, et)
	}
}
