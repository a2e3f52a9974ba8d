package response

import (
	"rental-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type QuoteResponse struct {
	CheckIn       string          `json:"checkIn"`
	CheckOut      string          `json:"checkOut"`
	GuestCount    int             `json:"guestCount"`
	Nights        int             `json:"nights"`
	WeekdayNights int             `json:"weekdayNights"`
	WeekendNights int             `json:"weekendNights"`
	NightlyAmount int64           `json:"nightlyAmount"`
	ExtraGuests   int             `json:"extraGuests"`
	ExtraGuestFee int64           `json:"extraGuestFee"`
	CleaningFee   int64           `json:"cleaningFee"`
	Subtotal      int64           `json:"subtotal"`
	Discount      int64           `json:"discount"`
	Total         int64           `json:"total"`
	Currency      string          `json:"currency"`
	Coupon        *CouponResponse `json:"coupon,omitempty"`
}

type PricingRuleResponse struct {
	BasePrice         int64 `json:"basePrice"`
	WeekendSurcharge  int64 `json:"weekendSurcharge"`
	ExtraGuestCharge  int64 `json:"extraGuestCharge"`
	MaxIncludedGuests int   `json:"maxIncludedGuests"`
	MaxGuests         int   `json:"maxGuests"`
	CleaningFee       int64 `json:"cleaningFee"`
}

func FromQuoteView(v *queries.QuoteView) *QuoteResponse {
	var res QuoteResponse
	mustCopy(&res, v)
	if v.Coupon != nil {
		res.Coupon = FromCouponResultView(v.Coupon)
	}
	return &res
}

func FromPricingRuleView(v *queries.PricingRuleView) *PricingRuleResponse {
	var res PricingRuleResponse
	mustCopy(&res, v)
	return &res
}

// mustCopy copies between structs whose fields line up by name; a failure is a programming error.
func mustCopy(to, from any) {
	if err := copier.CopyWithOption(to, from, copier.Option{DeepCopy: true}); err != nil {
		panic("response mapping: " + err.Error())
	}
}
