package queries

import (
	"context"

	reqdto "rental-booking/internal/handler/dto/request"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/usecase/shared"
)

type PricingQueries interface {
	Quote(ctx context.Context, req reqdto.QuoteRequest) (*QuoteView, error)
}

type pricingQueriesImpl struct {
	source   shared.PricingSource
	defaults shared.DefaultPricingRule
	calendar *clock.Calendar
	currency string
}

func NewPricingQueries(
	source shared.PricingSource,
	defaults shared.DefaultPricingRule,
	calendar *clock.Calendar,
	currency string,
) PricingQueries {
	return &pricingQueriesImpl{
		source:   source,
		defaults: defaults,
		calendar: calendar,
		currency: currency,
	}
}

// Quote previews the price; an unusable coupon is reported in the result and not applied.
func (q *pricingQueriesImpl) Quote(ctx context.Context, req reqdto.QuoteRequest) (*QuoteView, error) {
	s, err := shared.NewStay(q.calendar, req.CheckIn, req.CheckOut, req.GuestCount)
	if err != nil {
		return nil, err
	}

	priced, err := shared.PriceStay(ctx, q.source, q.defaults, s, req.GetCouponCode(), q.calendar.Now())
	if err != nil {
		return nil, err
	}

	b := priced.Breakdown
	view := &QuoteView{
		CheckIn:       s.CheckIn().String(),
		CheckOut:      s.CheckOut().String(),
		GuestCount:    s.GuestCount(),
		Nights:        b.Nights,
		WeekdayNights: b.WeekdayNights,
		WeekendNights: b.WeekendNights,
		NightlyAmount: b.NightlyAmount,
		ExtraGuests:   b.ExtraGuests,
		ExtraGuestFee: b.ExtraGuestFee,
		CleaningFee:   b.CleaningFee,
		Subtotal:      b.Subtotal,
		Discount:      b.Discount,
		Total:         b.Total,
		Currency:      q.currency,
	}
	if priced.Coupon != nil {
		view.Coupon = toCouponResultView(priced.Coupon)
	}
	return view, nil
}
