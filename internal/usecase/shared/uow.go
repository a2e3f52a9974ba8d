package shared

import (
	"context"
	"time"

	"rental-booking/internal/domain/availability"
	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/cancellation"
	"rental-booking/internal/domain/coupon"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/domain/reminder"
	"rental-booking/internal/pkg/caldate"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Coupons() CouponRepository
	Settings() SettingsRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	Reads() CommandReads
}

type CouponLookup interface {
	CouponByCode(ctx context.Context, code coupon.Code) (*coupon.Coupon, error)
}

type PricingRuleLookup interface {
	PricingRule(ctx context.Context) (*pricing.Rule, error)
}

type PolicyLookup interface {
	ActivePolicy(ctx context.Context) (*cancellation.Policy, error)
}

type CommandReads interface {
	CouponLookup
	PricingRuleLookup
	PolicyLookup
	BookingByReference(ctx context.Context, ref booking.Reference) (*booking.Booking, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// OverlappingSlots returns capacity-holding bookings that intersect [start, end).
	OverlappingSlots(ctx context.Context, start, end caldate.Date) ([]availability.Slot, error)
	SlotsCheckingInOn(ctx context.Context, date caldate.Date) ([]availability.Slot, error)
	ActiveOptions(ctx context.Context, ids []uuid.UUID) ([]*booking.Option, error)
	ActiveReminderSchedules(ctx context.Context) ([]*reminder.Schedule, error)
	ConfirmedCheckingInBetween(ctx context.Context, from, to caldate.Date) ([]*booking.Booking, error)
	IdempotencyByKey(ctx context.Context, key uuid.UUID) (*IdempotencyRecord, error)
}

type BookingRepository interface {
	// LockCalendar serialises booking creation for the rest of the transaction.
	LockCalendar(ctx context.Context) error
	Create(ctx context.Context, b *booking.Booking) error
	GetForUpdate(ctx context.Context, ref booking.Reference) (*booking.Booking, error)
	Save(ctx context.Context, b *booking.Booking) error
}

type CouponRepository interface {
	Create(ctx context.Context, c *coupon.Coupon) error
	Deactivate(ctx context.Context, id uuid.UUID, at time.Time) error
	// Redeem returns false when the booking already redeemed this coupon.
	Redeem(ctx context.Context, couponID, bookingID uuid.UUID, at time.Time) (bool, error)
}

type SettingsRepository interface {
	SavePricingRule(ctx context.Context, rule pricing.Rule, at time.Time) error
	// ActivatePolicy stores p and makes it the only active policy.
	ActivatePolicy(ctx context.Context, p *cancellation.Policy) error
	CreateOption(ctx context.Context, o *booking.Option) error
	CreateReminderSchedule(ctx context.Context, s *reminder.Schedule) error
}

type IdempotencyRepository interface {
	TryInsert(ctx context.Context, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	ClaimExpired(ctx context.Context, key uuid.UUID, requestHash string, expiresAt time.Time) (bool, error)
	MarkCompleted(ctx context.Context, key, bookingID uuid.UUID) error
	Release(ctx context.Context, key uuid.UUID) error
}

type NotificationRepository interface {
	// CreateJob returns false when a job with the same dedup key already exists.
	CreateJob(ctx context.Context, job NotificationJob) (bool, error)
}
