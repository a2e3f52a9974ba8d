//go:build unit

package booking_test

import (
	"testing"
	"time"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/domain/stay"
	"rental-booking/internal/pkg/caldate"
	"rental-booking/internal/pkg/errs"
	"rental-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now     = time.Date(2026, 10, 14, 3, 0, 0, 0, time.UTC)
	checkIn = caldate.New(2026, 10, 24)
)

func TestStatusSets(t *testing.T) {
	tests := []struct {
		status   booking.Status
		capacity bool
		blocks   bool
	}{
		{booking.StatusPending, true, false},
		{booking.StatusPendingReview, true, true},
		{booking.StatusConfirmed, true, true},
		{booking.StatusCancelled, false, false},
		{booking.StatusRefunded, false, false},
		{booking.StatusCompleted, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.capacity, tt.status.CountsTowardCapacity())
			assert.Equal(t, tt.blocks, tt.status.BlocksDates())
		})
	}

	_, err := booking.NewStatus("archived")
	assert.True(t, errs.Is(err, booking.ErrInvalidStatus))
}

func TestNewBooking(t *testing.T) {
	s, err := stay.New(checkIn, checkIn.AddDays(1), 2)
	require.NoError(t, err)
	guest, err := booking.NewGuest(" Taro ", "TARO@Example.com")
	require.NoError(t, err)
	optionID := uuid.New()

	b := booking.New(booking.NewParams{
		Reference: "BK-20261024-ABCDEF",
		Stay:      s,
		Guest:     guest,
		Amounts:   pricing.Breakdown{Total: 26000},
		OptionIDs: []uuid.UUID{optionID},
	}, now)

	assert.Equal(t, booking.StatusPending, b.Status())
	assert.Equal(t, "taro@example.com", b.Guest().Email)
	assert.Equal(t, "Taro", b.Guest().Name)
	assert.Equal(t, int64(26000), b.TotalAmount())
	assert.Equal(t, []uuid.UUID{optionID}, b.OptionIDs())
	assert.NotEqual(t, uuid.Nil, b.ID())
}

func TestGuestValidation(t *testing.T) {
	_, err := booking.NewGuest("", "a@example.com")
	assert.True(t, errs.Is(err, booking.ErrGuestNameRequired))

	_, err = booking.NewGuest("Taro", "not-an-email")
	assert.True(t, errs.Is(err, booking.ErrInvalidEmail))
}

func TestLifecycle(t *testing.T) {
	t.Run("authorize then confirm", func(t *testing.T) {
		b := builder.NewBookingBuilder(checkIn).With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusPending
			b.AuthorizedAt = nil
		}).Build()

		require.NoError(t, b.Authorize(now))
		assert.Equal(t, booking.StatusPendingReview, b.Status())
		require.NotNil(t, b.AuthorizedAt())

		require.NoError(t, b.Confirm(now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.True(t, b.IsCaptured())
	})

	t.Run("authorize needs a payment intent", func(t *testing.T) {
		b := builder.NewBookingBuilder(checkIn).With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusPending
			b.PaymentIntentID = ""
		}).Build()

		assert.True(t, errs.Is(b.Authorize(now), booking.ErrPaymentNotReady))
	})

	t.Run("free bookings skip the card hold", func(t *testing.T) {
		b := builder.NewBookingBuilder(checkIn).With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusPending
			b.PaymentIntentID = ""
			b.AuthorizedAt = nil
			b.Total = 0
		}).Build()

		require.NoError(t, b.AuthorizeWithoutPayment(now))
		assert.Equal(t, booking.StatusPendingReview, b.Status())
		require.NoError(t, b.Confirm(now))
	})

	t.Run("only free bookings skip the card hold", func(t *testing.T) {
		b := builder.NewBookingBuilder(checkIn).WithStatus(booking.StatusPending).Build()
		assert.True(t, errs.Is(b.AuthorizeWithoutPayment(now), booking.ErrPaymentNotReady))
	})

	t.Run("confirm needs authorization", func(t *testing.T) {
		b := builder.NewBookingBuilder(checkIn).With(func(b *builder.BookingBuilder) {
			b.Status = booking.StatusPending
			b.AuthorizedAt = nil
		}).Build()

		assert.True(t, errs.Is(b.Confirm(now), booking.ErrPaymentNotReady))
	})

	t.Run("cancel records refund", func(t *testing.T) {
		b := builder.NewBookingBuilder(checkIn).Build()

		require.NoError(t, b.Cancel(20500, now))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		require.NotNil(t, b.RefundAmount())
		assert.Equal(t, int64(20500), *b.RefundAmount())

		require.NoError(t, b.MarkRefunded(now))
		assert.Equal(t, booking.StatusRefunded, b.Status())
	})

	t.Run("cancelling twice is rejected", func(t *testing.T) {
		b := builder.NewBookingBuilder(checkIn).WithStatus(booking.StatusCancelled).Build()

		err := b.Cancel(0, now)
		assert.True(t, errs.Is(err, booking.ErrNotCancellable))
		assert.True(t, errs.Is(err, booking.ErrInvalidTransition))
		assert.True(t, errs.Is(err, errs.ErrPolicyViolation))
	})

	t.Run("completed bookings stay completed", func(t *testing.T) {
		b := builder.NewBookingBuilder(checkIn).WithStatus(booking.StatusCompleted).Build()
		assert.True(t, errs.Is(b.Cancel(0, now), booking.ErrNotCancellable))
	})
}
