package readstore

import (
	"context"
	"time"

	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const getIdempotencyKey = `SELECT key, endpoint, status, request_hash, result_booking_id, expires_at
FROM idempotency_keys
WHERE key = $1`

type IdempotencyReadStore struct {
	db db.DBTX
}

func NewIdempotencyReadStore(db db.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{db: db}
}

func (r *IdempotencyReadStore) IdempotencyByKey(ctx context.Context, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		rec       shared.IdempotencyRecord
		status    string
		resultID  pgtype.UUID
		expiresAt time.Time
	)
	err := r.db.QueryRow(ctx, getIdempotencyKey, key).Scan(
		&rec.Key, &rec.Endpoint, &status, &rec.RequestHash, &resultID, &expiresAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}
	rec.Status = shared.IdempotencyStatus(status)
	rec.ResultBookingID = pgconv.UUIDPtrFromPgtype(resultID)
	rec.ExpiresAt = expiresAt
	return &rec, nil
}
