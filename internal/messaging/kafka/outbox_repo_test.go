package kafka_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-leave/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupOutbox(t *testing.T) (kafka.OutboxRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return kafka.NewOutboxRepository(gdb), mock
}

func TestOutboxRepository_Create(t *testing.T) {
	repo, mock := setupOutbox(t)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "outbox_events"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), kafka.OutboxEvent{
		ID:          "5b8f0c66-0d8e-4d0a-8c53-8d0a1c8b9f11",
		AggregateID: "leave-1",
		EventType:   "leave.submitted",
		Topic:       "hr.leave.notification.v1",
		Payload:     []byte(`{"leave_id":"leave-1"}`),
		Status:      kafka.OutboxStatusPending,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateRejectsInvalidEvent(t *testing.T) {
	repo, mock := setupOutbox(t)

	err := repo.Create(context.Background(), kafka.OutboxEvent{ID: "x", Topic: "t", Status: kafka.OutboxStatusPending})

	assert.EqualError(t, err, "outbox payload is required")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	repo, mock := setupOutbox(t)
	mock.ExpectExec(`UPDATE "outbox_events" SET .*"retry_count"=\$`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.MarkFailed(context.Background(), "ob-1", 3, "broker unavailable")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextRetryDelay(t *testing.T) {
	assert.Equal(t, 15*time.Second, kafka.NextRetryDelay(0))
	assert.Equal(t, 60*time.Second, kafka.NextRetryDelay(3))
	assert.Equal(t, 150*time.Second, kafka.NextRetryDelay(42))
}

func TestValidateOutboxEvent(t *testing.T) {
	base := kafka.OutboxEvent{ID: "id", Topic: "t", Payload: []byte("x"), Status: kafka.OutboxStatusPending}
	assert.NoError(t, kafka.ValidateOutboxEvent(base))

	bad := base
	bad.Status = "queued"
	assert.EqualError(t, kafka.ValidateOutboxEvent(bad), "invalid outbox status: queued")

	bad = base
	bad.Topic = ""
	assert.Error(t, kafka.ValidateOutboxEvent(bad))
}
