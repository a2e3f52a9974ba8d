package repository

import (
	"context"
	"time"

	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"

	"github.com/google/uuid"
)

const (
	tryInsertIdempotencyKey = `INSERT INTO idempotency_keys (key, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, 'processing', $4)
ON CONFLICT (key) DO NOTHING`

	// Only an expired key with the same request may be taken over.
	claimExpiredIdempotencyKey = `UPDATE idempotency_keys
SET status = 'processing', result_booking_id = NULL, expires_at = $3, updated_at = now()
WHERE key = $1 AND request_hash = $2 AND expires_at <= now()`

	completeIdempotencyKey = `UPDATE idempotency_keys
SET status = 'completed', result_booking_id = $2, updated_at = now()
WHERE key = $1`

	releaseIdempotencyKey = `DELETE FROM idempotency_keys WHERE key = $1 AND status = 'processing'`
)

type IdempotencyRepository struct {
	db db.DBTX
}

func NewIdempotencyRepository(db db.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: db}
}

func (r *IdempotencyRepository) TryInsert(ctx context.Context, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, tryInsertIdempotencyKey, key, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) ClaimExpired(ctx context.Context, key uuid.UUID, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, claimExpiredIdempotencyKey, key, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to claim idempotency key", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *IdempotencyRepository) MarkCompleted(ctx context.Context, key, bookingID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, completeIdempotencyKey, key, bookingID); err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	return nil
}

func (r *IdempotencyRepository) Release(ctx context.Context, key uuid.UUID) error {
	if _, err := r.db.Exec(ctx, releaseIdempotencyKey, key); err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}
