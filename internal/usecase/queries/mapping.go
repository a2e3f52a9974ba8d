package queries

import (
	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/cancellation"
	"rental-booking/internal/domain/coupon"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/domain/reminder"

	"github.com/jinzhu/copier"
)

func ToCouponView(c *coupon.Coupon) *CouponView {
	return &CouponView{
		ID:            c.ID(),
		Code:          c.Code().String(),
		DiscountType:  c.DiscountType().String(),
		DiscountValue: c.DiscountValue(),
		MaxDiscount:   c.MaxDiscount(),
		MinAmount:     c.MinAmount(),
		UsageLimit:    c.UsageLimit(),
		UsageCount:    c.UsageCount(),
		ValidFrom:     c.ValidFrom(),
		ValidUntil:    c.ValidUntil(),
		IsActive:      c.IsActive(),
		CreatedAt:     c.CreatedAt(),
	}
}

func ToPricingRuleView(r pricing.Rule) (*PricingRuleView, error) {
	var view PricingRuleView
	if err := copier.Copy(&view, &r); err != nil {
		return nil, err
	}
	return &view, nil
}

func ToCancellationPolicyView(p *cancellation.Policy) *CancellationPolicyView {
	rules := make([]CancellationRuleView, 0, len(p.Rules()))
	for _, r := range p.Rules() {
		rules = append(rules, CancellationRuleView{
			DaysBeforeCheckIn: r.DaysBeforeCheckIn,
			RefundPercentage:  r.RefundPercentage,
		})
	}
	return &CancellationPolicyView{
		ID:        p.ID(),
		Name:      p.Name(),
		IsActive:  p.IsActive(),
		Rules:     rules,
		CreatedAt: p.CreatedAt(),
	}
}

func ToOptionView(o *booking.Option) *OptionView {
	return &OptionView{
		ID:         o.ID(),
		Name:       o.Name(),
		DailyLimit: o.DailyLimit(),
		IsActive:   o.IsActive(),
		CreatedAt:  o.CreatedAt(),
	}
}

func ToReminderScheduleView(s *reminder.Schedule) *ReminderScheduleView {
	return &ReminderScheduleView{
		ID:                s.ID(),
		TemplateKey:       s.TemplateKey(),
		DaysBeforeCheckIn: s.DaysBeforeCheckIn(),
		IsActive:          s.IsActive(),
		CreatedAt:         s.CreatedAt(),
	}
}
