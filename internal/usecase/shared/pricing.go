package shared

import (
	"context"
	"log/slog"
	"time"

	"rental-booking/internal/domain/cancellation"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/domain/stay"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/clock"
)

// DefaultPricingRule applies until an administrator stores a rule.
type DefaultPricingRule pricing.Rule

type PricingSource interface {
	PricingRuleLookup
	CouponLookup
}

type PricedStay struct {
	Stay      stay.Stay
	Rule      pricing.Rule
	Breakdown pricing.Breakdown
	Coupon    *CouponOutcome
}

func ResolvePricingRule(ctx context.Context, lookup PricingRuleLookup, fallback DefaultPricingRule) (pricing.Rule, error) {
	rule, err := lookup.PricingRule(ctx)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return pricing.Rule(fallback), nil
		}
		return pricing.Rule{}, StorageError(err, "failed to load pricing rule")
	}
	return *rule, nil
}

func ActivePolicyOrDefault(ctx context.Context, lookup PolicyLookup) (*cancellation.Policy, error) {
	policy, err := lookup.ActivePolicy(ctx)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return cancellation.DefaultPolicy(), nil
		}
		return nil, StorageError(err, "failed to load cancellation policy")
	}
	return policy, nil
}

// NewStay normalises both dates into the business calendar before building the stay.
func NewStay(cal *clock.Calendar, checkIn, checkOut any, guestCount int) (stay.Stay, error) {
	in, err := cal.Normalize(checkIn)
	if err != nil {
		return stay.Stay{}, err
	}
	out, err := cal.Normalize(checkOut)
	if err != nil {
		return stay.Stay{}, err
	}
	return stay.New(in, out, guestCount)
}

// PriceStay prices s and, when a code is given, applies the coupon to the pre-discount subtotal.
func PriceStay(
	ctx context.Context,
	src PricingSource,
	defaults DefaultPricingRule,
	s stay.Stay,
	couponCode *string,
	now time.Time,
) (*PricedStay, error) {
	rule, err := ResolvePricingRule(ctx, src, defaults)
	if err != nil {
		return nil, err
	}

	base, err := pricing.Calculate(s, rule, 0)
	if err != nil {
		return nil, err
	}

	priced := &PricedStay{Stay: s, Rule: rule, Breakdown: base}
	if couponCode == nil {
		return priced, nil
	}

	outcome, err := EvaluateCoupon(ctx, src, *couponCode, base.Subtotal, now)
	if err != nil {
		return nil, err
	}
	priced.Coupon = outcome
	if !outcome.Valid {
		return priced, nil
	}

	discounted, err := pricing.Calculate(s, rule, outcome.Discount.Amount)
	if err != nil {
		return nil, err
	}
	if discounted.Clamped {
		slog.Warn("discount exceeds subtotal, total clamped to zero",
			slog.String("coupon", outcome.Code.String()),
			slog.Int64("subtotal", discounted.Subtotal),
			slog.Int64("discount", discounted.Discount))
	}
	priced.Breakdown = discounted
	return priced, nil
}
