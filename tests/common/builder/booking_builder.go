//go:build unit || e2e

package builder

import (
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/domain/stay"
	"rental-booking/internal/pkg/caldate"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID              uuid.UUID
	Reference       booking.Reference
	CheckIn         caldate.Date
	CheckOut        caldate.Date
	GuestCount      int
	GuestName       string
	GuestEmail      string
	Status          booking.Status
	Total           int64
	OptionIDs       []uuid.UUID
	CouponID        *uuid.UUID
	PaymentIntentID string
	AuthorizedAt    *time.Time
	CreatedAt       time.Time
}

// NewBookingBuilder yields a confirmed two-night stay starting on checkIn.
func NewBookingBuilder(checkIn caldate.Date) *BookingBuilder {
	authorized := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:              uuid.New(),
		Reference:       booking.Reference("BK-" + checkIn.Time().Format("20060102") + "-ABCDEF"),
		CheckIn:         checkIn,
		CheckOut:        checkIn.AddDays(2),
		GuestCount:      2,
		GuestName:       "Hanako Yamada",
		GuestEmail:      "hanako@example.com",
		Status:          booking.StatusConfirmed,
		Total:           41000,
		PaymentIntentID: "pi_test_123",
		AuthorizedAt:    &authorized,
		CreatedAt:       authorized,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithStatus(s booking.Status) *BookingBuilder {
	b.Status = s
	return b
}

func (b *BookingBuilder) WithOptions(ids ...uuid.UUID) *BookingBuilder {
	b.OptionIDs = ids
	return b
}

func (b *BookingBuilder) Build() *booking.Booking {
	s, err := stay.New(b.CheckIn, b.CheckOut, b.GuestCount)
	if err != nil {
		panic(err)
	}
	return booking.Reconstruct(booking.ReconstructParams{
		ID:              b.ID,
		Reference:       b.Reference,
		Stay:            s,
		Guest:           booking.Guest{Name: b.GuestName, Email: b.GuestEmail},
		Status:          b.Status,
		Amounts:         pricing.Breakdown{Nights: s.Nights(), Subtotal: b.Total, Total: b.Total},
		OptionIDs:       b.OptionIDs,
		CouponID:        b.CouponID,
		PaymentIntentID: b.PaymentIntentID,
		AuthorizedAt:    b.AuthorizedAt,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	})
}
