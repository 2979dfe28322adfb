package notification

import (
	"context"
	"encoding/json"

	"go-leave/internal/events"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/clock"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher is told about committed leave transitions. Calls never fail and
// never block on delivery.
//
//go:generate mockgen -source=dispatcher.go -destination=mock/dispatcher_mock.go -package=mock
type Dispatcher interface {
	NotifyLeaveSubmitted(ctx context.Context, companyID, leaveID, requesterID, approverID string)
	NotifyLeaveApproved(ctx context.Context, companyID, leaveID, requesterID, approverID string)
	NotifyLeaveStepAdvanced(ctx context.Context, companyID, leaveID, fromApproverID, toApproverID, toRole string)
	NotifyLeaveRejected(ctx context.Context, companyID, leaveID, requesterID, approverID, reason string)
	NotifyLeaveForwarded(ctx context.Context, companyID, leaveID, fromApproverID, toApproverID, toRole string)
	NotifyLeaveReturned(ctx context.Context, companyID, leaveID, requesterID, approverID, reason string)
	NotifyLeaveCancelled(ctx context.Context, companyID, leaveID, requesterID string, approverIDs []string)
}

type outboxDispatcher struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

// NewOutboxDispatcher writes one outbox row per recipient; the relay worker
// carries them to Kafka.
func NewOutboxDispatcher(outbox kafka.OutboxRepository, logger ...*zap.Logger) Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &outboxDispatcher{outbox: outbox, logger: l}
}

func (d *outboxDispatcher) NotifyLeaveSubmitted(ctx context.Context, companyID, leaveID, requesterID, approverID string) {
	d.enqueue(ctx, events.LeaveNotificationEvent{
		EventType:   events.LeaveSubmitted,
		LeaveID:     leaveID,
		CompanyID:   companyID,
		RecipientID: approverID,
		ActorID:     requesterID,
	})
}

func (d *outboxDispatcher) NotifyLeaveApproved(ctx context.Context, companyID, leaveID, requesterID, approverID string) {
	d.enqueue(ctx, events.LeaveNotificationEvent{
		EventType:   events.LeaveApproved,
		LeaveID:     leaveID,
		CompanyID:   companyID,
		RecipientID: requesterID,
		ActorID:     approverID,
	})
}

func (d *outboxDispatcher) NotifyLeaveStepAdvanced(ctx context.Context, companyID, leaveID, fromApproverID, toApproverID, toRole string) {
	d.enqueue(ctx, events.LeaveNotificationEvent{
		EventType:   events.LeaveStepAdvanced,
		LeaveID:     leaveID,
		CompanyID:   companyID,
		RecipientID: toApproverID,
		ActorID:     fromApproverID,
		Role:        toRole,
	})
}

func (d *outboxDispatcher) NotifyLeaveRejected(ctx context.Context, companyID, leaveID, requesterID, approverID, reason string) {
	d.enqueue(ctx, events.LeaveNotificationEvent{
		EventType:   events.LeaveRejected,
		LeaveID:     leaveID,
		CompanyID:   companyID,
		RecipientID: requesterID,
		ActorID:     approverID,
		Reason:      reason,
	})
}

func (d *outboxDispatcher) NotifyLeaveForwarded(ctx context.Context, companyID, leaveID, fromApproverID, toApproverID, toRole string) {
	d.enqueue(ctx, events.LeaveNotificationEvent{
		EventType:   events.LeaveForwarded,
		LeaveID:     leaveID,
		CompanyID:   companyID,
		RecipientID: toApproverID,
		ActorID:     fromApproverID,
		Role:        toRole,
	})
}

func (d *outboxDispatcher) NotifyLeaveReturned(ctx context.Context, companyID, leaveID, requesterID, approverID, reason string) {
	d.enqueue(ctx, events.LeaveNotificationEvent{
		EventType:   events.LeaveReturned,
		LeaveID:     leaveID,
		CompanyID:   companyID,
		RecipientID: requesterID,
		ActorID:     approverID,
		Reason:      reason,
	})
}

func (d *outboxDispatcher) NotifyLeaveCancelled(ctx context.Context, companyID, leaveID, requesterID string, approverIDs []string) {
	seen := make(map[string]bool, len(approverIDs))
	for _, id := range approverIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		d.enqueue(ctx, events.LeaveNotificationEvent{
			EventType:   events.LeaveCancelled,
			LeaveID:     leaveID,
			CompanyID:   companyID,
			RecipientID: id,
			ActorID:     requesterID,
		})
	}
}

func (d *outboxDispatcher) enqueue(ctx context.Context, event events.LeaveNotificationEvent) {
	// Detached so a finished HTTP request does not abort the write.
	ctx = context.WithoutCancel(ctx)
	logger := contextutil.GetLogger(ctx, d.logger)

	if event.RecipientID == "" {
		logger.Warn("notification without recipient dropped",
			zap.String("event_type", event.EventType),
			zap.String("leave_id", event.LeaveID),
		)
		return
	}
	event.OccurredAt = clock.Now().UTC()

	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("encode notification failed", zap.String("event_type", event.EventType), zap.Error(err))
		return
	}

	err = d.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "leave",
		AggregateID:   event.LeaveID,
		EventType:     event.EventType,
		Topic:         events.LeaveNotificationTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		logger.Error("enqueue notification failed",
			zap.String("event_type", event.EventType),
			zap.String("leave_id", event.LeaveID),
			zap.String("recipient_id", event.RecipientID),
			zap.Error(err),
		)
		return
	}

	logger.Debug("notification enqueued",
		zap.String("event_type", event.EventType),
		zap.String("leave_id", event.LeaveID),
		zap.String("recipient_id", event.RecipientID),
	)
}

// NopDispatcher drops every notification.
type NopDispatcher struct{}

func (NopDispatcher) NotifyLeaveSubmitted(context.Context, string, string, string, string) {}
func (NopDispatcher) NotifyLeaveApproved(context.Context, string, string, string, string)  {}
func (NopDispatcher) NotifyLeaveStepAdvanced(context.Context, string, string, string, string, string) {
}
func (NopDispatcher) NotifyLeaveRejected(context.Context, string, string, string, string, string)  {}
func (NopDispatcher) NotifyLeaveForwarded(context.Context, string, string, string, string, string) {}
func (NopDispatcher) NotifyLeaveReturned(context.Context, string, string, string, string, string)  {}
func (NopDispatcher) NotifyLeaveCancelled(context.Context, string, string, string, []string)       {}
