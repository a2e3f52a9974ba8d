package response

import (
	"time"

	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CouponResponse struct {
	Code           string     `json:"code"`
	Valid          bool       `json:"valid"`
	DiscountType   string     `json:"discountType,omitempty"`
	DiscountAmount int64      `json:"discountAmount"`
	DiscountRate   float64    `json:"discountRate"`
	Reason         string     `json:"reason,omitempty"`
	Message        string     `json:"message,omitempty"`
	MinimumAmount  *int64     `json:"minimumAmount,omitempty"`
	CouponID       *uuid.UUID `json:"couponId,omitempty"`
}

type AdminCouponResponse struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	DiscountType  string    `json:"discountType"`
	DiscountValue float64   `json:"discountValue"`
	MaxDiscount   *int64    `json:"maxDiscount,omitempty"`
	MinAmount     *int64    `json:"minAmount,omitempty"`
	UsageLimit    *int      `json:"usageLimit,omitempty"`
	UsageCount    int       `json:"usageCount"`
	ValidFrom     time.Time `json:"validFrom"`
	ValidUntil    time.Time `json:"validUntil"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromCouponResultView(v *queries.CouponResultView) *CouponResponse {
	var res CouponResponse
	mustCopy(&res, v)
	return &res
}

func FromCouponView(v *queries.CouponView) *AdminCouponResponse {
	var res AdminCouponResponse
	mustCopy(&res, v)
	return &res
}
