package request

type QuoteRequest struct {
	CheckIn    string  `json:"checkIn" binding:"required"`
	CheckOut   string  `json:"checkOut" binding:"required"`
	GuestCount int     `json:"guestCount"`
	CouponCode *string `json:"couponCode,omitempty"`
}

func (r QuoteRequest) GetCouponCode() *string {
	return trimmedOrNil(r.CouponCode)
}

type PricingRuleRequest struct {
	BasePrice         int64 `json:"basePrice" binding:"min=0"`
	WeekendSurcharge  int64 `json:"weekendSurcharge" binding:"min=0"`
	ExtraGuestCharge  int64 `json:"extraGuestCharge" binding:"min=0"`
	MaxIncludedGuests int   `json:"maxIncludedGuests" binding:"min=1"`
	MaxGuests         int   `json:"maxGuests" binding:"min=0"`
	CleaningFee       int64 `json:"cleaningFee" binding:"min=0"`
}
