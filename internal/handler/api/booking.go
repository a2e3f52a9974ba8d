package api

import (
	"net/http"

	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var (
	errIdempotencyKeyRequired = errs.Kinded("Idempotency-Key header is required", errs.ErrInvalidInput)
	errInvalidIdempotencyKey  = errs.Kinded("invalid idempotency key format", errs.ErrInvalidInput)
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

// @Summary Create booking
// @Description Price the stay, hold the dates and open a card authorization
// @Tags bookings
// @Accept json
// @Produce json
// @Param Idempotency-Key header string true "Idempotency key for duplicate prevention"
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.CreateBookingResponse
// @Success 200 {object} resdto.CreateBookingResponse "Replayed request"
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	key, err := idempotencyKey(c)
	if err != nil {
		httperr.Respond(c, err, "Invalid request")
		return
	}
	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req, key)
	if err != nil {
		httperr.Respond(c, err, "Failed to create booking")
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.Header("Location", "/api/bookings/"+result.Booking.Reference)
	c.JSON(status, resdto.FromCreateBookingResult(result))
}

// @Summary Get booking
// @Description Look up a booking by its reference
// @Tags bookings
// @Produce json
// @Param reference path string true "Booking reference"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{reference} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	view, err := h.q.GetByReference(c.Request.Context(), c.Param("reference"))
	if err != nil {
		httperr.Respond(c, err, "Failed to load booking")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Confirm card authorization
// @Description Called after the card hold succeeds; the booking then awaits host review
// @Tags bookings
// @Accept json
// @Produce json
// @Param reference path string true "Booking reference"
// @Param request body reqdto.AuthorizeBookingRequest true "Payment intent"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /api/bookings/{reference}/authorize [post]
func (h *BookingHandler) Authorize(c *gin.Context) {
	var req reqdto.AuthorizeBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Authorize(c.Request.Context(), c.Param("reference"), req)
	if err != nil {
		httperr.Respond(c, err, "Failed to authorize booking")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Refund quote
// @Description What cancelling today would refund under the active policy
// @Tags bookings
// @Produce json
// @Param reference path string true "Booking reference"
// @Success 200 {object} resdto.RefundQuoteResponse
// @Failure 404 {object} httperr.Response
// @Router /api/bookings/{reference}/refund-quote [get]
func (h *BookingHandler) RefundQuote(c *gin.Context) {
	view, err := h.q.RefundQuote(c.Request.Context(), c.Param("reference"))
	if err != nil {
		httperr.Respond(c, err, "Failed to calculate refund")
		return
	}
	c.JSON(http.StatusOK, resdto.FromRefundQuoteView(view))
}

// @Summary Cancel booking
// @Description Cancel and refund according to the active cancellation policy
// @Tags bookings
// @Produce json
// @Param reference path string true "Booking reference"
// @Success 200 {object} resdto.CancelBookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/bookings/{reference}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	result, err := h.cmds.Cancel(c.Request.Context(), c.Param("reference"))
	if err != nil {
		httperr.Respond(c, err, "Failed to cancel booking")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelBookingResult(result))
}

func idempotencyKey(c *gin.Context) (uuid.UUID, error) {
	keyStr := c.GetHeader("Idempotency-Key")
	if keyStr == "" {
		return uuid.Nil, errIdempotencyKeyRequired
	}

	key, err := uuid.Parse(keyStr)
	if err != nil {
		return uuid.Nil, errInvalidIdempotencyKey
	}

	return key, nil
}
