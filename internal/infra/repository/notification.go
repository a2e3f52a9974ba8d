package repository

import (
	"context"

	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/usecase/shared"
)

const insertNotificationJob = `INSERT INTO notification_jobs (kind, topic, payload, run_at, dedup_key)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (dedup_key) DO NOTHING`

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(db db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, job shared.NotificationJob) (bool, error) {
	tag, err := r.db.Exec(ctx, insertNotificationJob, job.Kind, job.Topic, job.Payload, job.RunAt, job.DedupKey)
	if err != nil {
		return false, infra.WrapRepoErr("failed to create notification job", err)
	}
	return tag.RowsAffected() == 1, nil
}
