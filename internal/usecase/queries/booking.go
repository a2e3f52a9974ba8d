package queries

import (
	"context"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/cancellation"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/usecase/shared"
)

type BookingQueries interface {
	GetByReference(ctx context.Context, reference string) (*BookingView, error)
	RefundQuote(ctx context.Context, reference string) (*RefundQuoteView, error)
	List(ctx context.Context, filter BookingFilter, after string, limit int) ([]*BookingListItem, string, error)
}

type BookingFilter struct {
	Status *booking.Status
}

type BookingReadStore interface {
	FindByReference(ctx context.Context, ref booking.Reference) (*BookingView, error)
	// FindPage returns up to limit bookings after the cursor, newest first.
	FindPage(ctx context.Context, status *booking.Status, after *Cursor, limit int) ([]*BookingListItem, error)
}

type RefundSource interface {
	shared.PolicyLookup
	BookingByReference(ctx context.Context, ref booking.Reference) (*booking.Booking, error)
}

type bookingQueriesImpl struct {
	store    BookingReadStore
	refunds  RefundSource
	calendar *clock.Calendar
}

func NewBookingQueries(store BookingReadStore, refunds RefundSource, calendar *clock.Calendar) BookingQueries {
	return &bookingQueriesImpl{
		store:    store,
		refunds:  refunds,
		calendar: calendar,
	}
}

func (q *bookingQueriesImpl) GetByReference(ctx context.Context, reference string) (*BookingView, error) {
	ref, err := booking.ParseReference(reference)
	if err != nil {
		return nil, err
	}
	view, err := q.store.FindByReference(ctx, ref)
	if err != nil {
		return nil, shared.TranslateRepoErr(err, booking.ErrBookingNotFound, "failed to load booking")
	}
	return view, nil
}

func (q *bookingQueriesImpl) RefundQuote(ctx context.Context, reference string) (*RefundQuoteView, error) {
	ref, err := booking.ParseReference(reference)
	if err != nil {
		return nil, err
	}
	b, err := q.refunds.BookingByReference(ctx, ref)
	if err != nil {
		return nil, shared.TranslateRepoErr(err, booking.ErrBookingNotFound, "failed to load booking")
	}
	policy, err := shared.ActivePolicyOrDefault(ctx, q.refunds)
	if err != nil {
		return nil, err
	}

	quote := cancellation.CalculateRefund(policy, b.Stay().CheckIn(), q.calendar.Today(), b.TotalAmount())
	return ToRefundQuoteView(b, quote), nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, filter BookingFilter, after string, limit int) ([]*BookingListItem, string, error) {
	cursor, err := DecodeAfterCursor(after)
	if err != nil {
		return nil, "", err
	}
	limit = ValidateLimit(limit)

	// One extra row tells us whether another page exists.
	rows, err := q.store.FindPage(ctx, filter.Status, cursor, limit+1)
	if err != nil {
		return nil, "", shared.StorageError(err, "failed to list bookings")
	}

	next := ""
	if len(rows) > limit {
		last := rows[limit-1]
		next = EncodeAfterCursor(last.CreatedAt, last.ID)
		rows = rows[:limit]
	}
	return rows, next, nil
}

func ToRefundQuoteView(b *booking.Booking, quote cancellation.Quote) *RefundQuoteView {
	return &RefundQuoteView{
		Reference:           b.Reference().String(),
		PolicyName:          quote.PolicyName,
		DaysBeforeCheckIn:   quote.DaysBeforeCheckIn,
		RefundPercentage:    quote.RefundPercentage,
		RefundAmount:        quote.RefundAmount,
		NonRefundableAmount: quote.NonRefundableAmount,
		TotalAmount:         b.TotalAmount(),
		IsCancellable:       quote.IsCancellable,
		Charged:             b.IsCaptured(),
	}
}

// ToIssuedRefundView reports what a cancellation actually moved. An uncaptured
// booking releases its card hold, so no refund follows.
func ToIssuedRefundView(b *booking.Booking, quote cancellation.Quote, captured bool) *RefundQuoteView {
	v := ToRefundQuoteView(b, quote)
	v.Charged = captured
	if !captured {
		v.RefundAmount = 0
		v.NonRefundableAmount = 0
	}
	return v
}

// ToBookingView renders an aggregate when no joined read row is at hand.
func ToBookingView(b *booking.Booking, couponCode *string) *BookingView {
	s := b.Stay()
	amounts := b.Amounts()
	view := &BookingView{
		ID:            b.ID(),
		Reference:     b.Reference().String(),
		Status:        b.Status().String(),
		CheckIn:       s.CheckIn().String(),
		CheckOut:      s.CheckOut().String(),
		Nights:        s.Nights(),
		GuestCount:    s.GuestCount(),
		GuestName:     b.Guest().Name,
		GuestEmail:    b.Guest().Email,
		NightlyAmount: amounts.NightlyAmount,
		ExtraGuestFee: amounts.ExtraGuestFee,
		CleaningFee:   amounts.CleaningFee,
		Discount:      amounts.Discount,
		TotalAmount:   amounts.Total,
		OptionIDs:     b.OptionIDs(),
		CouponCode:    couponCode,
		AuthorizedAt:  b.AuthorizedAt(),
		CancelledAt:   b.CancelledAt(),
		RefundAmount:  b.RefundAmount(),
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}
	if id := b.PaymentIntentID(); id != "" {
		view.PaymentIntentID = &id
	}
	return view
}
