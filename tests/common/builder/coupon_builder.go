//go:build unit || e2e

package builder

import (
	"time"

	"rental-booking/internal/domain/coupon"

	"github.com/google/uuid"
)

type CouponBuilder struct {
	ID            uuid.UUID
	Code          string
	IsActive      bool
	DiscountType  coupon.DiscountType
	DiscountValue float64
	MaxDiscount   *int64
	MinAmount     *int64
	UsageLimit    *int
	UsageCount    int
	ValidFrom     time.Time
	ValidUntil    time.Time
}

// NewCouponBuilder yields an active 20% coupon valid for a month around now.
func NewCouponBuilder(now time.Time) *CouponBuilder {
	return &CouponBuilder{
		ID:            uuid.New(),
		Code:          "SUMMER20",
		IsActive:      true,
		DiscountType:  coupon.DiscountPercentage,
		DiscountValue: 20,
		ValidFrom:     now.AddDate(0, 0, -15),
		ValidUntil:    now.AddDate(0, 0, 15),
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) Fixed(amount float64) *CouponBuilder {
	b.DiscountType = coupon.DiscountFixed
	b.DiscountValue = amount
	return b
}

func (b *CouponBuilder) Params() coupon.Params {
	return coupon.Params{
		ID:            b.ID,
		Code:          b.Code,
		IsActive:      b.IsActive,
		DiscountType:  b.DiscountType,
		DiscountValue: b.DiscountValue,
		MaxDiscount:   b.MaxDiscount,
		MinAmount:     b.MinAmount,
		UsageLimit:    b.UsageLimit,
		UsageCount:    b.UsageCount,
		ValidFrom:     b.ValidFrom,
		ValidUntil:    b.ValidUntil,
	}
}

// BuildStored returns the coupon as it would come back from storage.
func (b *CouponBuilder) BuildStored() *coupon.Coupon {
	return coupon.Reconstruct(b.Params())
}

func (b *CouponBuilder) BuildNew(now time.Time) (*coupon.Coupon, error) {
	return coupon.NewCoupon(b.Params(), now)
}
