package converter

import (
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/coupon"
	"rental-booking/internal/domain/reminder"
	"rental-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const CouponColumns = `id, code, is_active, discount_type, discount_value::float8, max_discount, min_amount,
	usage_limit, usage_count, valid_from, valid_until, created_at, updated_at`

func ScanCoupon(s Scanner) (*coupon.Coupon, error) {
	var (
		p           coupon.Params
		discount    string
		maxDiscount pgtype.Int8
		minAmount   pgtype.Int8
		usageLimit  pgtype.Int4
		usageCount  int32
	)
	err := s.Scan(&p.ID, &p.Code, &p.IsActive, &discount, &p.DiscountValue, &maxDiscount, &minAmount,
		&usageLimit, &usageCount, &p.ValidFrom, &p.ValidUntil, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.DiscountType = coupon.DiscountType(discount)
	p.MaxDiscount = pgconv.Int8PtrFromPgtype(maxDiscount)
	p.MinAmount = pgconv.Int8PtrFromPgtype(minAmount)
	p.UsageLimit = pgconv.IntPtrFromPgtype(usageLimit)
	p.UsageCount = int(usageCount)
	return coupon.Reconstruct(p), nil
}

const OptionColumns = `id, name, daily_limit, is_active, created_at`

func ScanOption(s Scanner) (*booking.Option, error) {
	var (
		id         uuid.UUID
		name       string
		dailyLimit int32
		isActive   bool
		createdAt  time.Time
	)
	if err := s.Scan(&id, &name, &dailyLimit, &isActive, &createdAt); err != nil {
		return nil, err
	}
	return booking.ReconstructOption(id, name, int(dailyLimit), isActive, createdAt), nil
}

const ScheduleColumns = `id, template_key, days_before_check_in, is_active, created_at`

func ScanSchedule(s Scanner) (*reminder.Schedule, error) {
	var (
		id          uuid.UUID
		templateKey string
		days        int32
		isActive    bool
		createdAt   time.Time
	)
	if err := s.Scan(&id, &templateKey, &days, &isActive, &createdAt); err != nil {
		return nil, err
	}
	return reminder.ReconstructSchedule(id, templateKey, int(days), isActive, createdAt), nil
}
