package repository

import (
	"context"
	"time"

	"rental-booking/internal/domain/coupon"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

const (
	insertCoupon = `INSERT INTO coupons (
	id, code, is_active, discount_type, discount_value, max_discount, min_amount,
	usage_limit, usage_count, valid_from, valid_until, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	deactivateCoupon = `UPDATE coupons SET is_active = FALSE, updated_at = $2 WHERE id = $1`

	insertRedemption = `INSERT INTO coupon_redemptions (booking_id, coupon_id, redeemed_at)
VALUES ($1, $2, $3)
ON CONFLICT (booking_id) DO NOTHING`

	// The guard makes the usage limit hold under concurrent approvals.
	incrementUsage = `UPDATE coupons
SET usage_count = usage_count + 1, updated_at = $2
WHERE id = $1 AND (usage_limit IS NULL OR usage_count < usage_limit)`
)

type CouponRepository struct {
	db db.DBTX
}

func NewCouponRepository(db db.DBTX) *CouponRepository {
	return &CouponRepository{db: db}
}

func (r *CouponRepository) Create(ctx context.Context, c *coupon.Coupon) error {
	_, err := r.db.Exec(ctx, insertCoupon,
		c.ID(), c.Code().String(), c.IsActive(), c.DiscountType().String(), c.DiscountValue(),
		pgconv.Int8PtrToPgtype(c.MaxDiscount()), pgconv.Int8PtrToPgtype(c.MinAmount()),
		pgconv.IntPtrToPgtype(c.UsageLimit()), c.UsageCount(),
		c.ValidFrom(), c.ValidUntil(), c.CreatedAt(), c.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert coupon", err)
	}
	return nil
}

func (r *CouponRepository) Deactivate(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.db.Exec(ctx, deactivateCoupon, id, at)
	if err != nil {
		return infra.WrapRepoErr("failed to deactivate coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CouponRepository) Redeem(ctx context.Context, couponID, bookingID uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, insertRedemption, bookingID, couponID, at)
	if err != nil {
		return false, infra.WrapRepoErr("failed to record coupon redemption", err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	tag, err = r.db.Exec(ctx, incrementUsage, couponID, at)
	if err != nil {
		return false, infra.WrapRepoErr("failed to increment coupon usage", err)
	}
	if tag.RowsAffected() == 0 {
		return false, infra.WrapRepoErr("coupon usage limit exhausted", nil, infra.KindConflict)
	}
	return true, nil
}
