package audit

import (
	"context"
	"encoding/json"
	"time"

	"go-leave/internal/shared/clock"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActionServerShutdown = "SERVER_SHUTDOWN"

	ActionLeaveSubmitted   = "LEAVE_SUBMITTED"
	ActionLeaveResubmitted = "LEAVE_RESUBMITTED"
	ActionLeaveApproved    = "LEAVE_APPROVED"
	ActionLeaveRejected    = "LEAVE_REJECTED"
	ActionLeaveForwarded   = "LEAVE_FORWARDED"
	ActionLeaveReturned    = "LEAVE_RETURNED"
	ActionLeaveCancelled   = "LEAVE_CANCELLED"
)

type Entry struct {
	Action     string
	CompanyID  string
	ActorID    string
	EntityType string
	EntityID   string
	Message    string
	Meta       map[string]any
}

// Logger records audit entries. Implementations swallow their own failures.
type Logger interface {
	Log(ctx context.Context, entry Entry)
}

type StdoutLogger struct {
	logger *zap.Logger
}

func NewStdoutLogger(logger ...*zap.Logger) *StdoutLogger {
	l := zap.L().Named("audit")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit")
	}
	return &StdoutLogger{logger: l}
}

func (l *StdoutLogger) Log(ctx context.Context, entry Entry) {
	l.logger.Info("audit event",
		zap.String("timestamp", clock.Now().UTC().Format(time.RFC3339)),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("action", entry.Action),
		zap.String("company_id", entry.CompanyID),
		zap.String("actor_id", entry.ActorID),
		zap.String("entity_type", entry.EntityType),
		zap.String("entity_id", entry.EntityID),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}

type Record struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID  string    `gorm:"index"`
	RequestID  string
	ActorID    string
	Action     string `gorm:"not null;index"`
	EntityType string
	EntityID   string `gorm:"index"`
	Message    string
	Details    datatypes.JSON
	CreatedAt  time.Time
}

func (Record) TableName() string {
	return "audit_logs"
}

// DBLogger persists entries to audit_logs. Writes run outside any caller
// transaction so a rolled back operation still leaves its audit trail.
type DBLogger struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewDBLogger(db *gorm.DB, logger ...*zap.Logger) *DBLogger {
	l := zap.L().Named("audit.db")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.db")
	}
	return &DBLogger{db: db, logger: l}
}

func (l *DBLogger) Log(ctx context.Context, entry Entry) {
	ctx = context.WithoutCancel(ctx)

	var details datatypes.JSON
	if len(entry.Meta) > 0 {
		b, err := json.Marshal(entry.Meta)
		if err != nil {
			l.logger.Warn("audit meta not encodable", zap.String("action", entry.Action), zap.Error(err))
		} else {
			details = datatypes.JSON(b)
		}
	}

	rec := Record{
		ID:         uuid.New(),
		CompanyID:  entry.CompanyID,
		RequestID:  contextutil.GetRequestID(ctx),
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Message:    entry.Message,
		Details:    details,
		CreatedAt:  clock.Now().UTC(),
	}

	if err := l.db.WithContext(ctx).Create(&rec).Error; err != nil {
		l.logger.Error("write audit log failed",
			zap.String("action", entry.Action),
			zap.String("entity_id", entry.EntityID),
			zap.Error(err),
		)
	}
}

// Multi fans an entry out to every logger in order.
type Multi []Logger

func (m Multi) Log(ctx context.Context, entry Entry) {
	for _, l := range m {
		if l != nil {
			l.Log(ctx, entry)
		}
	}
}

type Nop struct{}

func (Nop) Log(context.Context, Entry) {}
