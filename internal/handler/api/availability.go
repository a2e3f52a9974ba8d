package api

import (
	"net/http"
	"strings"

	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errInvalidOptionID = errs.Kinded("optionIds must be comma separated UUIDs", errs.ErrInvalidInput)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary Booked dates
// @Description Date ranges taken by authorized or confirmed bookings, check-out exclusive
// @Tags availability
// @Produce json
// @Success 200 {object} resdto.BookedDatesResponse
// @Failure 503 {object} httperr.Response
// @Router /api/availability/booked-dates [get]
func (h *AvailabilityHandler) BookedDates(c *gin.Context) {
	views, err := h.q.BookedDateRanges(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err, "Failed to load booked dates")
		return
	}
	c.JSON(http.StatusOK, resdto.FromDateRangeViews(views))
}

// @Summary Option availability
// @Description Remaining daily stock for each active option on a check-in date
// @Tags availability
// @Produce json
// @Param date query string true "Check-in date (YYYY-MM-DD)"
// @Param optionIds query string false "Comma separated option IDs"
// @Success 200 {object} resdto.OptionsAvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /api/availability/options [get]
func (h *AvailabilityHandler) Options(c *gin.Context) {
	date := c.Query("date")
	ids, err := parseUUIDList(c.Query("optionIds"))
	if err != nil {
		httperr.Respond(c, err, "Invalid request")
		return
	}
	views, err := h.q.OptionAvailability(c.Request.Context(), date, ids)
	if err != nil {
		httperr.Respond(c, err, "Failed to load option availability")
		return
	}
	c.JSON(http.StatusOK, resdto.FromOptionAvailabilityViews(date, views))
}

func parseUUIDList(raw string) ([]uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		id, err := uuid.Parse(strings.TrimSpace(p))
		if err != nil {
			return nil, errInvalidOptionID
		}
		ids = append(ids, id)
	}
	return ids, nil
}
