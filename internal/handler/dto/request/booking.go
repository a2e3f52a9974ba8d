package request

import "github.com/google/uuid"

type CreateBookingRequest struct {
	CheckIn    string      `json:"checkIn" binding:"required"`
	CheckOut   string      `json:"checkOut" binding:"required"`
	GuestCount int         `json:"guestCount"`
	GuestName  string      `json:"guestName" binding:"required"`
	GuestEmail string      `json:"guestEmail" binding:"required"`
	OptionIDs  []uuid.UUID `json:"optionIds,omitempty"`
	CouponCode *string     `json:"couponCode,omitempty"`
	// ExpectedTotal is the amount the guest was shown; a stale quote is rejected.
	ExpectedTotal *int64 `json:"expectedTotal,omitempty"`
}

func (r CreateBookingRequest) GetCouponCode() *string {
	return trimmedOrNil(r.CouponCode)
}

type AuthorizeBookingRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}
