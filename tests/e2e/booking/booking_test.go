//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"rental-booking/internal/handler/dto/request"
	"rental-booking/internal/handler/dto/response"
	"rental-booking/internal/usecase/shared"
	"rental-booking/tests/common/authtest"
	"rental-booking/tests/common/dbtest"
	"rental-booking/tests/common/httptest"
	"rental-booking/tests/common/paymenttest"
	"rental-booking/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	quoteURL       = "/api/pricing/quote"
	bookingsURL    = "/api/bookings"
	bookingURL     = "/api/bookings/%s"
	authorizeURL   = "/api/bookings/%s/authorize"
	cancelURL      = "/api/bookings/%s/cancel"
	approveURL     = "/api/admin/bookings/%s/approve"
	bookedDatesURL = "/api/availability/booked-dates"
	optionsURL     = "/api/availability/options?date=%s"
)

type BookingSuite struct {
	e2e.SharedSuite
	adminToken string
}

func (s *BookingSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.adminToken = authtest.NewJWTHelper(s.Config.JWT).AdminToken(s.T())
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// daysAhead returns the business-calendar date n days from today.
func (s *BookingSuite) daysAhead(n int) string {
	loc, err := s.Config.Booking.Location()
	s.Require().NoError(err)
	return time.Now().In(loc).AddDate(0, 0, n).Format("2006-01-02")
}

func (s *BookingSuite) createRequest(checkIn, checkOut string) request.CreateBookingRequest {
	return request.CreateBookingRequest{
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestCount: 4,
		GuestName:  "Hanako Sato",
		GuestEmail: "hanako@example.com",
	}
}

func (s *BookingSuite) create(t *testing.T, req request.CreateBookingRequest, key uuid.UUID) response.CreateBookingResponse {
	t.Helper()
	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, req, "",
		map[string]string{"Idempotency-Key": key.String()})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res response.CreateBookingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	return res
}

func (s *BookingSuite) authorize(t *testing.T, b *response.BookingResponse) {
	t.Helper()
	require.NotNil(t, b.PaymentIntentID)
	require.NoError(t, s.Payments.HoldCard(*b.PaymentIntentID))

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(authorizeURL, b.Reference),
		request.AuthorizeBookingRequest{PaymentIntentID: *b.PaymentIntentID}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

// =============================================================================
// TestBookingLifecycle - quote, book, authorize, approve, cancel
// =============================================================================

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("Normal case: booking follows the quoted price through to a full refund", func() {
		t := s.T()
		checkIn, checkOut := s.daysAhead(40), s.daysAhead(42)

		qw := httptest.PerformRequest(t, s.Router, http.MethodPost, quoteURL,
			request.QuoteRequest{CheckIn: checkIn, CheckOut: checkOut, GuestCount: 4}, "")
		require.Equal(t, http.StatusOK, qw.Code, qw.Body.String())
		var quote response.QuoteResponse
		require.NoError(t, httptest.DecodeResponseBody(t, qw.Body, &quote))
		require.Equal(t, "jpy", quote.Currency)

		req := s.createRequest(checkIn, checkOut)
		req.ExpectedTotal = &quote.Total
		created := s.create(t, req, uuid.New())
		require.NotEmpty(t, created.ClientSecret)

		expected := &response.BookingResponse{
			Status:        "pending",
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Nights:        2,
			GuestCount:    4,
			GuestName:     "Hanako Sato",
			GuestEmail:    "hanako@example.com",
			NightlyAmount: quote.NightlyAmount,
			ExtraGuestFee: quote.ExtraGuestFee,
			CleaningFee:   quote.CleaningFee,
			TotalAmount:   quote.Total,
			OptionIDs:     []uuid.UUID{},
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "ID", "Reference", "PaymentIntentID", "CreatedAt", "UpdatedAt"),
		}
		if diff := cmp.Diff(expected, created.Booking, opts...); diff != "" {
			t.Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}

		intent, ok := s.Payments.Intent(*created.Booking.PaymentIntentID)
		require.True(t, ok)
		require.Equal(t, quote.Total, intent.Amount)

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, bookedDatesURL, nil, "")
		require.Equal(t, http.StatusOK, dw.Code)
		var booked response.BookedDatesResponse
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &booked))
		require.Equal(t, []response.DateRangeResponse{{Start: checkIn, End: checkOut}}, booked.Ranges)

		s.authorize(t, created.Booking)

		aw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(approveURL, created.Booking.Reference), nil, s.adminToken)
		require.Equal(t, http.StatusOK, aw.Code, aw.Body.String())
		var approved response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, aw.Body, &approved))
		require.Equal(t, "confirmed", approved.Status)
		intent, _ = s.Payments.Intent(*created.Booking.PaymentIntentID)
		require.Equal(t, shared.PaymentSucceeded, intent.Status)

		cw := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, created.Booking.Reference), nil, "")
		require.Equal(t, http.StatusOK, cw.Code, cw.Body.String())
		var cancelled response.CancelBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, cw.Body, &cancelled))
		require.Equal(t, "refunded", cancelled.Booking.Status)
		require.Equal(t, 100, cancelled.Refund.RefundPercentage)
		require.Equal(t, quote.Total, cancelled.Refund.RefundAmount)
		require.True(t, cancelled.Refund.Charged)
		require.Contains(t, s.Payments.Refunds(),
			paymenttest.Refund{IntentID: *created.Booking.PaymentIntentID, Amount: quote.Total})

		dw = httptest.PerformRequest(t, s.Router, http.MethodGet, bookedDatesURL, nil, "")
		require.NoError(t, httptest.DecodeResponseBody(t, dw.Body, &booked))
		require.Empty(t, booked.Ranges, "refunded bookings free their dates")
	})

	s.Run("Normal case: cancelling before approval releases the card hold", func() {
		t := s.T()
		created := s.create(t, s.createRequest(s.daysAhead(50), s.daysAhead(51)), uuid.New())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(cancelURL, created.Booking.Reference), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res response.CancelBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Equal(t, "cancelled", res.Booking.Status)
		require.NotNil(t, res.Booking.RefundAmount)
		require.Zero(t, *res.Booking.RefundAmount)
		require.False(t, res.Refund.Charged)
		require.Zero(t, res.Refund.RefundAmount, "nothing was captured so nothing is refunded")
		require.Zero(t, res.Refund.NonRefundableAmount)
		for _, r := range s.Payments.Refunds() {
			require.NotEqual(t, *created.Booking.PaymentIntentID, r.IntentID)
		}

		intent, _ := s.Payments.Intent(*created.Booking.PaymentIntentID)
		require.Equal(t, shared.PaymentCanceled, intent.Status)
	})

	s.Run("Error case: approving before the card is authorized fails", func() {
		t := s.T()
		created := s.create(t, s.createRequest(s.daysAhead(60), s.daysAhead(61)), uuid.New())

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(approveURL, created.Booking.Reference), nil, s.adminToken)
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "")
	})

	s.Run("Error case: unknown reference returns 404", func() {
		t := s.T()
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(bookingURL, "BK-20261103-7KQ2MX"), nil, "")
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "booking not found")
	})
}

// =============================================================================
// TestCreateBooking - idempotency and calendar conflicts
// =============================================================================

func (s *BookingSuite) TestCreateBooking() {
	s.Run("Normal case: retry with the same key replays the booking", func() {
		t := s.T()
		key := uuid.New()
		req := s.createRequest(s.daysAhead(30), s.daysAhead(32))
		first := s.create(t, req, key)
		intents := s.Payments.IntentCount()

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, req, "",
			map[string]string{"Idempotency-Key": key.String()})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var replay response.CreateBookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &replay))
		require.Equal(t, first.Booking.Reference, replay.Booking.Reference)
		require.Equal(t, first.ClientSecret, replay.ClientSecret)
		require.Equal(t, intents, s.Payments.IntentCount(), "no second payment intent")
	})

	s.Run("Error case: same key with a different body is rejected", func() {
		t := s.T()
		key := uuid.New()
		s.create(t, s.createRequest(s.daysAhead(30), s.daysAhead(32)), key)

		other := s.createRequest(s.daysAhead(35), s.daysAhead(36))
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, other, "",
			map[string]string{"Idempotency-Key": key.String()})
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "different request")
	})

	s.Run("Error case: overlapping stay is rejected", func() {
		t := s.T()
		s.create(t, s.createRequest(s.daysAhead(30), s.daysAhead(33)), uuid.New())

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL,
			s.createRequest(s.daysAhead(32), s.daysAhead(34)), "",
			map[string]string{"Idempotency-Key": uuid.NewString()})
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "")
	})

	s.Run("Normal case: back-to-back stays share the changeover day", func() {
		t := s.T()
		s.create(t, s.createRequest(s.daysAhead(30), s.daysAhead(33)), uuid.New())
		s.create(t, s.createRequest(s.daysAhead(33), s.daysAhead(34)), uuid.New())
	})

	s.Run("Error case: stale expected total is rejected", func() {
		t := s.T()
		req := s.createRequest(s.daysAhead(30), s.daysAhead(31))
		stale := int64(1)
		req.ExpectedTotal = &stale

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, req, "",
			map[string]string{"Idempotency-Key": uuid.NewString()})
		httptest.AssertErrorResponse(t, w, http.StatusUnprocessableEntity, "")
		require.Zero(t, s.countBookings(t))
	})
}

// =============================================================================
// TestCouponsAndOptions - coupon redemption and per-day option limits
// =============================================================================

func (s *BookingSuite) TestCouponsAndOptions() {
	s.Run("Normal case: coupon discount is applied and redeemed on approval", func() {
		t := s.T()
		limit := 1
		dbtest.CreateTestCoupon(t, s.DB, "WELCOME10", 10, &limit)

		req := s.createRequest(s.daysAhead(20), s.daysAhead(22))
		code := "welcome10"
		req.CouponCode = &code
		created := s.create(t, req, uuid.New())
		require.Positive(t, created.Booking.Discount)
		require.NotNil(t, created.Booking.CouponCode)
		require.Equal(t, "WELCOME10", *created.Booking.CouponCode)

		s.authorize(t, created.Booking)
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, fmt.Sprintf(approveURL, created.Booking.Reference), nil, s.adminToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var usage int
		require.NoError(t, s.DB.QueryRow(t.Context(), "SELECT usage_count FROM coupons WHERE code = 'WELCOME10'").Scan(&usage))
		require.Equal(t, 1, usage)

		vw := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/coupons/validate",
			request.ValidateCouponRequest{Code: "WELCOME10", TotalAmount: 50000}, "")
		require.Equal(t, http.StatusOK, vw.Code)
		var v response.CouponResponse
		require.NoError(t, httptest.DecodeResponseBody(t, vw.Body, &v))
		require.False(t, v.Valid)
	})

	s.Run("Normal case: options booked for a check-in day reduce remaining stock", func() {
		t := s.T()
		bbq := dbtest.CreateTestOption(t, s.DB, "BBQ set", 1)
		checkIn := s.daysAhead(25)

		req := s.createRequest(checkIn, s.daysAhead(26))
		req.OptionIDs = []uuid.UUID{bbq}
		s.create(t, req, uuid.New())

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(optionsURL, checkIn), nil, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var res response.OptionsAvailabilityResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
		require.Len(t, res.Options, 1)
		require.Equal(t, 0, res.Options[0].Remaining)
		require.False(t, res.Options[0].Available)
	})

	s.Run("Error case: unknown option is rejected", func() {
		t := s.T()
		req := s.createRequest(s.daysAhead(25), s.daysAhead(26))
		req.OptionIDs = []uuid.UUID{uuid.New()}

		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, bookingsURL, req, "",
			map[string]string{"Idempotency-Key": uuid.NewString()})
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "")
	})
}

func (s *BookingSuite) countBookings(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB.QueryRow(t.Context(), "SELECT count(*) FROM bookings").Scan(&n))
	return n
}
