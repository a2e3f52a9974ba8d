package request

import "time"

type ValidateCouponRequest struct {
	Code        string `json:"code"`
	TotalAmount int64  `json:"totalAmount" binding:"min=0"`
}

type CreateCouponRequest struct {
	Code          string    `json:"code" binding:"required"`
	DiscountType  string    `json:"discountType" binding:"required"`
	DiscountValue float64   `json:"discountValue"`
	MaxDiscount   *int64    `json:"maxDiscount,omitempty"`
	MinAmount     *int64    `json:"minAmount,omitempty"`
	UsageLimit    *int      `json:"usageLimit,omitempty"`
	ValidFrom     time.Time `json:"validFrom" binding:"required"`
	ValidUntil    time.Time `json:"validUntil" binding:"required"`
}
