//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"rental-booking/internal/domain/availability"
	"rental-booking/internal/domain/booking"
	"rental-booking/internal/handler/api"
	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"
	"rental-booking/tests/common/httptest"
	"rental-booking/tests/common/testutil"
	commandsmock "rental-booking/tests/mock/commands"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testReference = "BK-20261103-7KQ2MX"

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/api/bookings", s.handler.Create)
	s.router.GET("/api/bookings/:reference", s.handler.Get)
	s.router.POST("/api/bookings/:reference/authorize", s.handler.Authorize)
	s.router.GET("/api/bookings/:reference/refund-quote", s.handler.RefundQuote)
	s.router.POST("/api/bookings/:reference/cancel", s.handler.Cancel)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func bookingView(status booking.Status) *queries.BookingView {
	intent := "pi_test_123"
	return &queries.BookingView{
		ID:              uuid.New(),
		Reference:       testReference,
		Status:          status.String(),
		CheckIn:         "2026-11-03",
		CheckOut:        "2026-11-05",
		Nights:          2,
		GuestCount:      4,
		GuestName:       "Hanako Yamada",
		GuestEmail:      "hanako@example.com",
		NightlyAmount:   36000,
		CleaningFee:     5000,
		TotalAmount:     41000,
		OptionIDs:       []uuid.UUID{},
		PaymentIntentID: &intent,
		CreatedAt:       time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
	}
}

func createBookingRequest() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		CheckIn:    "2026-11-03",
		CheckOut:   "2026-11-05",
		GuestCount: 4,
		GuestName:  "Hanako Yamada",
		GuestEmail: "hanako@example.com",
	}
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/api/bookings"
	key := uuid.New()
	headers := map[string]string{"Idempotency-Key": key.String()}
	reqBody := createBookingRequest()

	s.Run("success: returns 201 with client secret and location", func() {
		result := &commands.CreateBookingResult{Booking: bookingView(booking.StatusPending), ClientSecret: "pi_test_123_secret"}
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody, key).Return(result, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "", headers)

		var body resdto.CreateBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(testReference, body.Booking.Reference)
		s.Equal("pi_test_123_secret", body.ClientSecret)
		s.Equal(int64(41000), body.Booking.TotalAmount)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": url + "/" + testReference})
	})

	s.Run("success: replayed request returns 200", func() {
		result := &commands.CreateBookingResult{Booking: bookingView(booking.StatusPending), IsReplayed: true}
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody, key).Return(result, nil).Times(1)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "", headers)
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: idempotency key problems are rejected before the use case", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key header is required")

		rec = httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "",
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid idempotency key format")
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		for _, field := range []string{"checkIn", "checkOut", "guestName", "guestEmail"} {
			s.Run(field, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field(field, nil))
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, requestMap, "", headers)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{name: "invalid email", commandsError: booking.ErrInvalidEmail, expectedStatus: http.StatusBadRequest, expectedMsg: "invalid email format"},
			{name: "dates taken", commandsError: availability.ErrDatesUnavailable, expectedStatus: http.StatusConflict, expectedMsg: "already booked"},
			{name: "key reused", commandsError: shared.ErrIdempotencyKeyReused, expectedStatus: http.StatusConflict, expectedMsg: "different request"},
			{name: "check-in passed", commandsError: commands.ErrCheckInPassed, expectedStatus: http.StatusUnprocessableEntity, expectedMsg: "check-in date has passed"},
			{name: "provider down", commandsError: shared.ErrPaymentProvider, expectedStatus: http.StatusServiceUnavailable, expectedMsg: "Failed to create booking"},
			{name: "unexpected", commandsError: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedMsg: "Failed to create booking"},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), reqBody, key).Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, "", headers)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGet / TestAuthorize
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	url := "/api/bookings/" + testReference

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetByReference(gomock.Any(), testReference).
			Return(bookingView(booking.StatusConfirmed), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body.Status)
		s.Equal("2026-11-03", body.CheckIn)
	})

	s.Run("error: not found", func() {
		s.mockQueries.EXPECT().GetByReference(gomock.Any(), testReference).
			Return(nil, booking.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestAuthorize() {
	url := "/api/bookings/" + testReference + "/authorize"
	reqBody := reqdto.AuthorizeBookingRequest{PaymentIntentID: "pi_test_123"}

	s.Run("success", func() {
		s.mockCommands.EXPECT().Authorize(gomock.Any(), testReference, reqBody).
			Return(bookingView(booking.StatusPendingReview), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("pending_review", body.Status)
	})

	s.Run("error: missing payment intent", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: intent not authorized", func() {
		s.mockCommands.EXPECT().Authorize(gomock.Any(), testReference, reqBody).
			Return(nil, commands.ErrPaymentNotAuthorized).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "not been authorized")
	})
}

// ================================================================================
// TestRefundQuote / TestCancel
// ================================================================================

func (s *BookingHandlerTestSuite) TestRefundQuote() {
	url := "/api/bookings/" + testReference + "/refund-quote"

	s.mockQueries.EXPECT().RefundQuote(gomock.Any(), testReference).Return(&queries.RefundQuoteView{
		Reference:           testReference,
		PolicyName:          "Standard",
		DaysBeforeCheckIn:   20,
		RefundPercentage:    50,
		RefundAmount:        20500,
		NonRefundableAmount: 20500,
		TotalAmount:         41000,
		IsCancellable:       true,
	}, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

	var body resdto.RefundQuoteResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal(50, body.RefundPercentage)
	s.Equal(int64(20500), body.RefundAmount)
	s.True(body.IsCancellable)
}

func (s *BookingHandlerTestSuite) TestCancel() {
	url := "/api/bookings/" + testReference + "/cancel"

	s.Run("success", func() {
		refundAmount := int64(41000)
		view := bookingView(booking.StatusRefunded)
		view.RefundAmount = &refundAmount
		result := &commands.CancelBookingResult{
			Booking: view,
			Refund:  &queries.RefundQuoteView{Reference: testReference, RefundPercentage: 100, RefundAmount: refundAmount, TotalAmount: 41000, IsCancellable: true},
		}
		s.mockCommands.EXPECT().Cancel(gomock.Any(), testReference).Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")

		var body resdto.CancelBookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("refunded", body.Booking.Status)
		s.Equal(int64(41000), body.Refund.RefundAmount)
	})

	s.Run("error: no longer cancellable", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), testReference).Return(nil, booking.ErrNotCancellable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "can no longer be cancelled")
	})

	s.Run("error: bad reference", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), "nope").Return(nil, booking.ErrInvalidReference).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/bookings/nope/cancel", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid booking reference")
	})
}
