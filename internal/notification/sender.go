package notification

import (
	"context"

	"go-leave/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Sender delivers a composed message to one recipient.
type Sender interface {
	Send(ctx context.Context, recipientID string, msg Message) error
}

// LogSender writes messages to the log instead of an external channel.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger ...*zap.Logger) *LogSender {
	l := zap.L().Named("notification.sender")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.sender")
	}
	return &LogSender{logger: l}
}

func (s *LogSender) Send(ctx context.Context, recipientID string, msg Message) error {
	contextutil.GetLogger(ctx, s.logger).Info("notification delivered",
		zap.String("recipient_id", recipientID),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body),
	)
	return nil
}
