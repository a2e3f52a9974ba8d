package api

import (
	"net/http"

	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct {
	q queries.CouponQueries
}

func NewCouponHandler(q queries.CouponQueries) *CouponHandler {
	return &CouponHandler{q: q}
}

// @Summary Validate coupon
// @Description Check a coupon code against an order total
// @Tags coupons
// @Accept json
// @Produce json
// @Param request body reqdto.ValidateCouponRequest true "Coupon and total"
// @Success 200 {object} resdto.CouponResponse
// @Failure 400 {object} httperr.Response
// @Router /api/coupons/validate [post]
func (h *CouponHandler) Validate(c *gin.Context) {
	var req reqdto.ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.q.Validate(c.Request.Context(), req)
	if err != nil {
		httperr.Respond(c, err, "Failed to validate coupon")
		return
	}
	c.JSON(http.StatusOK, resdto.FromCouponResultView(view))
}
