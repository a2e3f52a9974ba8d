package api

import (
	"net/http"
	"strconv"

	"rental-booking/internal/domain/booking"
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
	errInvalidCouponID = errs.Kinded("invalid coupon id", errs.ErrInvalidInput)
	errInvalidLimit    = errs.Kinded("limit must be a positive integer", errs.ErrInvalidInput)
)

type AdminHandler struct {
	admin     commands.AdminCommands
	bookings  commands.BookingCommands
	reminders commands.ReminderCommands
	q         queries.BookingQueries
}

func NewAdminHandler(
	admin commands.AdminCommands,
	bookings commands.BookingCommands,
	reminders commands.ReminderCommands,
	q queries.BookingQueries,
) *AdminHandler {
	return &AdminHandler{admin: admin, bookings: bookings, reminders: reminders, q: q}
}

// @Summary Create coupon
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateCouponRequest true "Coupon"
// @Success 201 {object} resdto.AdminCouponResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/coupons [post]
func (h *AdminHandler) CreateCoupon(c *gin.Context) {
	var req reqdto.CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.admin.CreateCoupon(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err, "Failed to create coupon")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromCouponView(view))
}

// @Summary Deactivate coupon
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Coupon ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/coupons/{id}/deactivate [post]
func (h *AdminHandler) DeactivateCoupon(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Respond(c, errInvalidCouponID, "Invalid request")
		return
	}
	if err := h.admin.DeactivateCoupon(c.Request.Context(), id); err != nil {
		httperr.Respond(c, err, "Failed to deactivate coupon")
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Replace pricing rule
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.PricingRuleRequest true "Pricing rule"
// @Success 200 {object} resdto.PricingRuleResponse
// @Failure 400 {object} httperr.Response
// @Router /api/admin/pricing-rule [put]
func (h *AdminHandler) UpdatePricingRule(c *gin.Context) {
	var req reqdto.PricingRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.admin.UpdatePricingRule(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err, "Failed to update pricing rule")
		return
	}
	c.JSON(http.StatusOK, resdto.FromPricingRuleView(view))
}

// @Summary Replace cancellation policy
// @Description The new policy becomes the only active one
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CancellationPolicyRequest true "Policy"
// @Success 200 {object} resdto.CancellationPolicyResponse
// @Failure 400 {object} httperr.Response
// @Router /api/admin/cancellation-policy [put]
func (h *AdminHandler) SaveCancellationPolicy(c *gin.Context) {
	var req reqdto.CancellationPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.admin.SaveCancellationPolicy(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err, "Failed to save cancellation policy")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancellationPolicyView(view))
}

// @Summary Create booking option
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateOptionRequest true "Option"
// @Success 201 {object} resdto.OptionResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/options [post]
func (h *AdminHandler) CreateOption(c *gin.Context) {
	var req reqdto.CreateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.admin.CreateOption(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err, "Failed to create option")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromOptionView(view))
}

// @Summary Create reminder schedule
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReminderScheduleRequest true "Schedule"
// @Success 201 {object} resdto.ReminderScheduleResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /api/admin/reminder-schedules [post]
func (h *AdminHandler) CreateReminderSchedule(c *gin.Context) {
	var req reqdto.CreateReminderScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.admin.CreateReminderSchedule(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err, "Failed to create reminder schedule")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReminderScheduleView(view))
}

// @Summary Approve booking
// @Description Capture the held payment and confirm the booking
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param reference path string true "Booking reference"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /api/admin/bookings/{reference}/approve [post]
func (h *AdminHandler) ApproveBooking(c *gin.Context) {
	view, err := h.bookings.Approve(c.Request.Context(), c.Param("reference"))
	if err != nil {
		httperr.Respond(c, err, "Failed to approve booking")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description Newest first, keyset paginated
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Booking status"
// @Param after query string false "Cursor from a previous page"
// @Param limit query int false "Page size (default 20, max 200)"
// @Success 200 {object} resdto.BookingListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/admin/bookings [get]
func (h *AdminHandler) ListBookings(c *gin.Context) {
	var filter queries.BookingFilter
	if raw := c.Query("status"); raw != "" {
		status, err := booking.NewStatus(raw)
		if err != nil {
			httperr.Respond(c, err, "Invalid request")
			return
		}
		filter.Status = &status
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httperr.Respond(c, errInvalidLimit, "Invalid request")
			return
		}
		limit = n
	}

	items, next, err := h.q.List(c.Request.Context(), filter, c.Query("after"), limit)
	if err != nil {
		httperr.Respond(c, err, "Failed to list bookings")
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingList(items, next))
}

// @Summary Run reminders
// @Description Enqueue every reminder due today; safe to run repeatedly
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ReminderRunResponse
// @Failure 503 {object} httperr.Response
// @Router /api/admin/reminders/run [post]
func (h *AdminHandler) RunReminders(c *gin.Context) {
	result, err := h.reminders.Run(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "Failed to run reminders")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReminderRunResult(result))
}
