package repository

import (
	"context"
	"time"

	"bookcore/internal/infra"
	"bookcore/internal/usecase/shared"

	"github.com/google/uuid"
)

// NotificationRepository enqueues jobs for the external delivery worker.
// Inserting in the caller's transaction makes the enqueue atomic with the
// booking mutation; delivery itself is asynchronous and can never roll the
// mutation back.
type NotificationRepository struct {
	db shared.DBTX
}

func NewNotificationRepository(db shared.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	stmt := `
INSERT INTO notification_jobs (id, kind, topic, payload, run_at)
VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, stmt, uuid.New(), kind, topic, payload, runAt)
	if err != nil {
		return infra.WrapRepoErr("failed to create notification job", err)
	}
	return nil
}
