package readstore

import (
	"context"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/cancellation"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/domain/reminder"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/converter"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	getPricingRule = `SELECT base_price, weekend_surcharge, extra_guest_charge, max_included_guests, max_guests, cleaning_fee
FROM pricing_rules
WHERE id = 1`

	getActivePolicy = `SELECT p.id, p.name, p.created_at, r.days_before_check_in, r.refund_percentage
FROM cancellation_policies p
JOIN cancellation_rules r ON r.policy_id = p.id
WHERE p.is_active
ORDER BY r.days_before_check_in DESC`

	listActiveOptions = `SELECT ` + converter.OptionColumns + `
FROM booking_options
WHERE is_active AND ($1::uuid[] IS NULL OR id = ANY($1::uuid[]))
ORDER BY name`

	listActiveSchedules = `SELECT ` + converter.ScheduleColumns + `
FROM reminder_schedules
WHERE is_active
ORDER BY days_before_check_in DESC, template_key`
)

type SettingsReadStore struct {
	db db.DBTX
}

func NewSettingsReadStore(db db.DBTX) *SettingsReadStore {
	return &SettingsReadStore{db: db}
}

func (r *SettingsReadStore) PricingRule(ctx context.Context) (*pricing.Rule, error) {
	var (
		rule                    pricing.Rule
		maxIncluded, maxGuests int32
	)
	err := r.db.QueryRow(ctx, getPricingRule).Scan(
		&rule.BasePrice, &rule.WeekendSurcharge, &rule.ExtraGuestCharge, &maxIncluded, &maxGuests, &rule.CleaningFee,
	)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("pricing rule not configured", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load pricing rule", err)
	}
	rule.MaxIncludedGuests = int(maxIncluded)
	rule.MaxGuests = int(maxGuests)
	return &rule, nil
}

func (r *SettingsReadStore) ActivePolicy(ctx context.Context) (*cancellation.Policy, error) {
	rows, err := r.db.Query(ctx, getActivePolicy)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load cancellation policy", err)
	}
	defer rows.Close()

	var (
		id        uuid.UUID
		name      string
		createdAt time.Time
		rules     []cancellation.Rule
	)
	for rows.Next() {
		var days, pct int32
		if err := rows.Scan(&id, &name, &createdAt, &days, &pct); err != nil {
			return nil, infra.WrapRepoErr("failed to scan cancellation rule", err)
		}
		rules = append(rules, cancellation.Rule{DaysBeforeCheckIn: int(days), RefundPercentage: int(pct)})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read cancellation rules", err)
	}
	if len(rules) == 0 {
		return nil, infra.WrapRepoErr("no active cancellation policy", nil, infra.KindNotFound)
	}
	return cancellation.ReconstructPolicy(id, name, true, rules, createdAt), nil
}

// ActiveOptions returns active options, restricted to ids when ids is non-empty.
func (r *SettingsReadStore) ActiveOptions(ctx context.Context, ids []uuid.UUID) ([]*booking.Option, error) {
	var filter []string
	if len(ids) > 0 {
		filter = pgconv.UUIDsToText(ids)
	}
	rows, err := r.db.Query(ctx, listActiveOptions, filter)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booking options", err)
	}
	options, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*booking.Option, error) {
		return converter.ScanOption(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan booking options", err)
	}
	return options, nil
}

func (r *SettingsReadStore) ActiveReminderSchedules(ctx context.Context) ([]*reminder.Schedule, error) {
	rows, err := r.db.Query(ctx, listActiveSchedules)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reminder schedules", err)
	}
	schedules, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*reminder.Schedule, error) {
		return converter.ScanSchedule(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan reminder schedules", err)
	}
	return schedules, nil
}
