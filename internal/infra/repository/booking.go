package repository

import (
	"context"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/converter"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/pgconv"
)

// calendarLockKey is the advisory lock guarding the property's calendar.
const calendarLockKey int64 = 0x626f6f6b696e67

const (
	lockCalendar = `SELECT pg_advisory_xact_lock($1)`

	insertBooking = `INSERT INTO bookings (
	id, reference, check_in, check_out, guest_count, guest_name, guest_email, status,
	weekday_nights, weekend_nights, nightly_amount, extra_guests, extra_guest_fee, cleaning_fee,
	subtotal, discount, total_amount, coupon_id, payment_intent_id, authorized_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

	insertSelectedOptions = `INSERT INTO booking_selected_options (booking_id, position, option_id)
SELECT $1, ord::int, opt::uuid
FROM unnest($2::text[]) WITH ORDINALITY AS t(opt, ord)`

	getBookingForUpdate = `SELECT ` + converter.BookingColumns + `
FROM bookings b
WHERE b.reference = $1
FOR UPDATE OF b`

	updateBooking = `UPDATE bookings
SET status = $2, payment_intent_id = $3, authorized_at = $4, cancelled_at = $5, refund_amount = $6, updated_at = $7
WHERE id = $1`
)

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(db db.DBTX) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) LockCalendar(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, lockCalendar, calendarLockKey); err != nil {
		return infra.WrapRepoErr("failed to lock booking calendar", err)
	}
	return nil
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	s := b.Stay()
	a := b.Amounts()
	_, err := r.db.Exec(ctx, insertBooking,
		b.ID(), b.Reference().String(), pgconv.DateToPgtype(s.CheckIn()), pgconv.DateToPgtype(s.CheckOut()),
		s.GuestCount(), b.Guest().Name, b.Guest().Email, b.Status().String(),
		a.WeekdayNights, a.WeekendNights, a.NightlyAmount, a.ExtraGuests, a.ExtraGuestFee, a.CleaningFee,
		a.Subtotal, a.Discount, a.Total, pgconv.UUIDPtrToPgtype(b.CouponID()),
		pgconv.EmptyAsNullText(b.PaymentIntentID()), pgconv.TimePtrToPgtype(b.AuthorizedAt()),
		b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err)
	}

	if len(b.OptionIDs()) == 0 {
		return nil
	}
	if _, err := r.db.Exec(ctx, insertSelectedOptions, b.ID(), pgconv.UUIDsToText(b.OptionIDs())); err != nil {
		return infra.WrapRepoErr("failed to insert booking options", err)
	}
	return nil
}

func (r *BookingRepository) GetForUpdate(ctx context.Context, ref booking.Reference) (*booking.Booking, error) {
	b, err := converter.ScanBooking(r.db.QueryRow(ctx, getBookingForUpdate, ref.String()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock booking", err)
	}
	return b, nil
}

// Save persists the mutable lifecycle columns; stay and amounts are fixed at creation.
func (r *BookingRepository) Save(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, updateBooking,
		b.ID(), b.Status().String(), pgconv.EmptyAsNullText(b.PaymentIntentID()),
		pgconv.TimePtrToPgtype(b.AuthorizedAt()), pgconv.TimePtrToPgtype(b.CancelledAt()),
		pgconv.Int8PtrToPgtype(b.RefundAmount()), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
