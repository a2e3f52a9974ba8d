package repository

import (
	"context"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/cancellation"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/domain/reminder"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/db"
)

const (
	upsertPricingRule = `INSERT INTO pricing_rules (
	id, base_price, weekend_surcharge, extra_guest_charge, max_included_guests, max_guests, cleaning_fee, updated_at
) VALUES (1, $1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	base_price = EXCLUDED.base_price,
	weekend_surcharge = EXCLUDED.weekend_surcharge,
	extra_guest_charge = EXCLUDED.extra_guest_charge,
	max_included_guests = EXCLUDED.max_included_guests,
	max_guests = EXCLUDED.max_guests,
	cleaning_fee = EXCLUDED.cleaning_fee,
	updated_at = EXCLUDED.updated_at`

	deactivatePolicies = `UPDATE cancellation_policies SET is_active = FALSE WHERE is_active`

	insertPolicy = `INSERT INTO cancellation_policies (id, name, is_active, created_at) VALUES ($1, $2, TRUE, $3)`

	insertPolicyRules = `INSERT INTO cancellation_rules (policy_id, days_before_check_in, refund_percentage)
SELECT $1, d, p
FROM unnest($2::int[], $3::int[]) AS t(d, p)`

	insertOption = `INSERT INTO booking_options (id, name, daily_limit, is_active, created_at) VALUES ($1, $2, $3, $4, $5)`

	insertSchedule = `INSERT INTO reminder_schedules (id, template_key, days_before_check_in, is_active, created_at)
VALUES ($1, $2, $3, $4, $5)`
)

type SettingsRepository struct {
	db db.DBTX
}

func NewSettingsRepository(db db.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) SavePricingRule(ctx context.Context, rule pricing.Rule, at time.Time) error {
	_, err := r.db.Exec(ctx, upsertPricingRule,
		rule.BasePrice, rule.WeekendSurcharge, rule.ExtraGuestCharge,
		rule.MaxIncludedGuests, rule.MaxGuests, rule.CleaningFee, at,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to save pricing rule", err)
	}
	return nil
}

func (r *SettingsRepository) ActivatePolicy(ctx context.Context, p *cancellation.Policy) error {
	if _, err := r.db.Exec(ctx, deactivatePolicies); err != nil {
		return infra.WrapRepoErr("failed to deactivate cancellation policies", err)
	}
	if _, err := r.db.Exec(ctx, insertPolicy, p.ID(), p.Name(), p.CreatedAt()); err != nil {
		return infra.WrapRepoErr("failed to insert cancellation policy", err)
	}

	days := make([]int32, 0, len(p.Rules()))
	percents := make([]int32, 0, len(p.Rules()))
	for _, rule := range p.Rules() {
		days = append(days, int32(rule.DaysBeforeCheckIn))       // #nosec G115 -- validated range
		percents = append(percents, int32(rule.RefundPercentage)) // #nosec G115 -- 0..100
	}
	if _, err := r.db.Exec(ctx, insertPolicyRules, p.ID(), days, percents); err != nil {
		return infra.WrapRepoErr("failed to insert cancellation rules", err)
	}
	return nil
}

func (r *SettingsRepository) CreateOption(ctx context.Context, o *booking.Option) error {
	_, err := r.db.Exec(ctx, insertOption, o.ID(), o.Name(), o.DailyLimit(), o.IsActive(), o.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking option", err)
	}
	return nil
}

func (r *SettingsRepository) CreateReminderSchedule(ctx context.Context, s *reminder.Schedule) error {
	_, err := r.db.Exec(ctx, insertSchedule, s.ID(), s.TemplateKey(), s.DaysBeforeCheckIn(), s.IsActive(), s.CreatedAt())
	if err != nil {
		return infra.WrapRepoErr("failed to insert reminder schedule", err)
	}
	return nil
}
