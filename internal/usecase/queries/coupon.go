package queries

import (
	"context"

	"rental-booking/internal/domain/coupon"
	reqdto "rental-booking/internal/handler/dto/request"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/shared"
)

type CouponQueries interface {
	Validate(ctx context.Context, req reqdto.ValidateCouponRequest) (*CouponResultView, error)
}

type couponQueriesImpl struct {
	lookup shared.CouponLookup
	clock  clock.Clock
}

func NewCouponQueries(lookup shared.CouponLookup, clk clock.Clock) CouponQueries {
	return &couponQueriesImpl{lookup: lookup, clock: clk}
}

func (q *couponQueriesImpl) Validate(ctx context.Context, req reqdto.ValidateCouponRequest) (*CouponResultView, error) {
	outcome, err := shared.EvaluateCoupon(ctx, q.lookup, req.Code, req.TotalAmount, q.clock.Now())
	if err != nil {
		return nil, err
	}
	return toCouponResultView(outcome), nil
}

var couponReasons = []struct {
	err    error
	reason string
}{
	{err: coupon.ErrCouponNotFound, reason: "not_found"},
	{err: coupon.ErrCouponInactive, reason: "inactive"},
	{err: coupon.ErrCouponNotYetValid, reason: "not_yet_valid"},
	{err: coupon.ErrCouponExpired, reason: "expired"},
	{err: coupon.ErrUsageLimitReached, reason: "usage_limit_reached"},
	{err: coupon.ErrBelowMinimum, reason: "below_minimum"},
}

func couponReason(err error) string {
	for _, r := range couponReasons {
		if errs.Is(err, r.err) {
			return r.reason
		}
	}
	return "invalid"
}

func toCouponResultView(o *shared.CouponOutcome) *CouponResultView {
	view := &CouponResultView{
		Code:  o.Code.String(),
		Valid: o.Valid,
	}
	if o.Coupon != nil {
		id := o.Coupon.ID()
		view.CouponID = &id
		view.DiscountType = o.Coupon.DiscountType().String()
	}
	if o.Valid {
		view.DiscountAmount = o.Discount.Amount
		view.DiscountRate = o.Discount.Rate
		return view
	}

	view.Reason = couponReason(o.Failure)
	view.Message = errs.Cause(o.Failure).Error()
	var minErr *coupon.MinimumAmountError
	if errs.As(o.Failure, &minErr) {
		minimum := minErr.Minimum
		view.MinimumAmount = &minimum
		view.Message = minErr.Error()
	}
	return view
}
