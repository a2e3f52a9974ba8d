package shared

import (
	"context"
	"time"

	"rental-booking/internal/domain/coupon"
	"rental-booking/internal/infra"
)

// CouponOutcome is the result of checking a code against a pre-discount total.
// Policy failures are reported in Failure, not as an error.
type CouponOutcome struct {
	Code     coupon.Code
	Coupon   *coupon.Coupon
	Valid    bool
	Discount coupon.Discount
	Failure  error
}

func EvaluateCoupon(ctx context.Context, lookup CouponLookup, rawCode string, total int64, now time.Time) (*CouponOutcome, error) {
	code, err := coupon.NewCode(rawCode)
	if err != nil {
		return nil, err
	}

	c, err := lookup.CouponByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &CouponOutcome{Code: code, Failure: coupon.ErrCouponNotFound}, nil
		}
		return nil, StorageError(err, "failed to look up coupon")
	}

	if err := c.Validate(now, total); err != nil {
		return &CouponOutcome{Code: code, Coupon: c, Failure: err}, nil
	}

	return &CouponOutcome{
		Code:     code,
		Coupon:   c,
		Valid:    true,
		Discount: c.DiscountFor(total),
	}, nil
}
