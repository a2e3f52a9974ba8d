package converter

import (
	"time"

	"rental-booking/internal/domain/availability"
	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/domain/stay"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Scanner is satisfied by both pgx.Row and pgx.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// OptionIDsColumn aggregates a booking's selections in the order the guest chose them.
const OptionIDsColumn = `COALESCE((SELECT array_agg(so.option_id::text ORDER BY so.position)
	FROM booking_selected_options so WHERE so.booking_id = b.id), '{}') AS option_ids`

const BookingColumns = `b.id, b.reference, b.check_in, b.check_out, b.guest_count, b.guest_name, b.guest_email,
	b.status, b.weekday_nights, b.weekend_nights, b.nightly_amount, b.extra_guests, b.extra_guest_fee,
	b.cleaning_fee, b.subtotal, b.discount, b.total_amount, b.coupon_id, b.payment_intent_id,
	b.authorized_at, b.cancelled_at, b.refund_amount, b.created_at, b.updated_at, ` + OptionIDsColumn

const SlotColumns = `b.id, b.status, b.check_in, b.check_out, ` + OptionIDsColumn

type BookingRow struct {
	ID              uuid.UUID
	Reference       string
	CheckIn         pgtype.Date
	CheckOut        pgtype.Date
	GuestCount      int32
	GuestName       string
	GuestEmail      string
	Status          string
	WeekdayNights   int32
	WeekendNights   int32
	NightlyAmount   int64
	ExtraGuests     int32
	ExtraGuestFee   int64
	CleaningFee     int64
	Subtotal        int64
	Discount        int64
	TotalAmount     int64
	CouponID        pgtype.UUID
	PaymentIntentID pgtype.Text
	AuthorizedAt    pgtype.Timestamptz
	CancelledAt     pgtype.Timestamptz
	RefundAmount    pgtype.Int8
	CreatedAt       time.Time
	UpdatedAt       time.Time
	OptionIDs       []string
}

// Fields lists scan targets in BookingColumns order.
func (r *BookingRow) Fields() []any {
	return []any{
		&r.ID, &r.Reference, &r.CheckIn, &r.CheckOut, &r.GuestCount, &r.GuestName, &r.GuestEmail,
		&r.Status, &r.WeekdayNights, &r.WeekendNights, &r.NightlyAmount, &r.ExtraGuests, &r.ExtraGuestFee,
		&r.CleaningFee, &r.Subtotal, &r.Discount, &r.TotalAmount, &r.CouponID, &r.PaymentIntentID,
		&r.AuthorizedAt, &r.CancelledAt, &r.RefundAmount, &r.CreatedAt, &r.UpdatedAt, &r.OptionIDs,
	}
}

func ScanBooking(s Scanner) (*booking.Booking, error) {
	var row BookingRow
	if err := s.Scan(row.Fields()...); err != nil {
		return nil, err
	}
	return BookingToDomain(row)
}

func BookingToDomain(row BookingRow) (*booking.Booking, error) {
	st, err := stay.New(pgconv.DateFromPgtype(row.CheckIn), pgconv.DateFromPgtype(row.CheckOut), int(row.GuestCount))
	if err != nil {
		return nil, errs.Wrap(err, "stored booking has an invalid stay")
	}
	status, err := booking.NewStatus(row.Status)
	if err != nil {
		return nil, errs.Wrap(err, "stored booking has an invalid status")
	}
	optionIDs, err := parseUUIDs(row.OptionIDs)
	if err != nil {
		return nil, err
	}

	return booking.Reconstruct(booking.ReconstructParams{
		ID:        row.ID,
		Reference: booking.Reference(row.Reference),
		Stay:      st,
		Guest:     booking.Guest{Name: row.GuestName, Email: row.GuestEmail},
		Status:    status,
		Amounts: pricing.Breakdown{
			Nights:        st.Nights(),
			WeekdayNights: int(row.WeekdayNights),
			WeekendNights: int(row.WeekendNights),
			NightlyAmount: row.NightlyAmount,
			ExtraGuests:   int(row.ExtraGuests),
			ExtraGuestFee: row.ExtraGuestFee,
			CleaningFee:   row.CleaningFee,
			Subtotal:      row.Subtotal,
			Discount:      row.Discount,
			Total:         row.TotalAmount,
			Clamped:       row.Subtotal < row.Discount,
		},
		OptionIDs:       optionIDs,
		CouponID:        pgconv.UUIDPtrFromPgtype(row.CouponID),
		PaymentIntentID: pgconv.StringOrEmpty(row.PaymentIntentID),
		AuthorizedAt:    pgconv.TimePtrFromPgtype(row.AuthorizedAt),
		CancelledAt:     pgconv.TimePtrFromPgtype(row.CancelledAt),
		RefundAmount:    pgconv.Int8PtrFromPgtype(row.RefundAmount),
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}), nil
}

func ScanSlot(s Scanner) (availability.Slot, error) {
	var (
		id        uuid.UUID
		status    string
		checkIn   pgtype.Date
		checkOut  pgtype.Date
		optionIDs []string
	)
	if err := s.Scan(&id, &status, &checkIn, &checkOut, &optionIDs); err != nil {
		return availability.Slot{}, err
	}
	ids, err := parseUUIDs(optionIDs)
	if err != nil {
		return availability.Slot{}, err
	}
	return availability.Slot{
		BookingID: id,
		Status:    booking.Status(status),
		CheckIn:   pgconv.DateFromPgtype(checkIn),
		CheckOut:  pgconv.DateFromPgtype(checkOut),
		OptionIDs: ids,
	}, nil
}

func parseUUIDs(raw []string) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, errs.Wrap(err, "stored option id is not a uuid")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
