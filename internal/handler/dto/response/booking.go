package response

import (
	"time"

	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID   `json:"id"`
	Reference       string      `json:"reference"`
	Status          string      `json:"status"`
	CheckIn         string      `json:"checkIn"`
	CheckOut        string      `json:"checkOut"`
	Nights          int         `json:"nights"`
	GuestCount      int         `json:"guestCount"`
	GuestName       string      `json:"guestName"`
	GuestEmail      string      `json:"guestEmail"`
	NightlyAmount   int64       `json:"nightlyAmount"`
	ExtraGuestFee   int64       `json:"extraGuestFee"`
	CleaningFee     int64       `json:"cleaningFee"`
	Discount        int64       `json:"discount"`
	TotalAmount     int64       `json:"totalAmount"`
	OptionIDs       []uuid.UUID `json:"optionIds"`
	CouponCode      *string     `json:"couponCode,omitempty"`
	PaymentIntentID *string     `json:"paymentIntentId,omitempty"`
	AuthorizedAt    *time.Time  `json:"authorizedAt,omitempty"`
	CancelledAt     *time.Time  `json:"cancelledAt,omitempty"`
	RefundAmount    *int64      `json:"refundAmount,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type CreateBookingResponse struct {
	Booking *BookingResponse `json:"booking"`
	// ClientSecret is empty when the total is zero and no card hold is needed.
	ClientSecret string `json:"clientSecret,omitempty"`
}

type CancelBookingResponse struct {
	Booking *BookingResponse     `json:"booking"`
	Refund  *RefundQuoteResponse `json:"refund"`
}

type RefundQuoteResponse struct {
	Reference           string `json:"reference"`
	PolicyName          string `json:"policyName"`
	DaysBeforeCheckIn   int    `json:"daysBeforeCheckIn"`
	RefundPercentage    int    `json:"refundPercentage"`
	RefundAmount        int64  `json:"refundAmount"`
	NonRefundableAmount int64  `json:"nonRefundableAmount"`
	TotalAmount         int64  `json:"totalAmount"`
	IsCancellable       bool   `json:"isCancellable"`
	Charged             bool   `json:"charged"`
}

type BookingListItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Reference   string    `json:"reference"`
	Status      string    `json:"status"`
	CheckIn     string    `json:"checkIn"`
	CheckOut    string    `json:"checkOut"`
	GuestName   string    `json:"guestName"`
	TotalAmount int64     `json:"totalAmount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BookingListResponse struct {
	Items      []BookingListItemResponse `json:"items"`
	NextCursor string                    `json:"nextCursor,omitempty"`
}

type ReminderRunResponse struct {
	BookingsScanned int `json:"bookingsScanned"`
	JobsEnqueued    int `json:"jobsEnqueued"`
	AlreadyQueued   int `json:"alreadyQueued"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	var res BookingResponse
	mustCopy(&res, v)
	if res.OptionIDs == nil {
		res.OptionIDs = []uuid.UUID{}
	}
	return &res
}

func FromCreateBookingResult(r *commands.CreateBookingResult) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking:      FromBookingView(r.Booking),
		ClientSecret: r.ClientSecret,
	}
}

func FromCancelBookingResult(r *commands.CancelBookingResult) *CancelBookingResponse {
	return &CancelBookingResponse{
		Booking: FromBookingView(r.Booking),
		Refund:  FromRefundQuoteView(r.Refund),
	}
}

func FromRefundQuoteView(v *queries.RefundQuoteView) *RefundQuoteResponse {
	var res RefundQuoteResponse
	mustCopy(&res, v)
	return &res
}

func FromBookingList(items []*queries.BookingListItem, next string) *BookingListResponse {
	res := &BookingListResponse{Items: make([]BookingListItemResponse, len(items)), NextCursor: next}
	for i, it := range items {
		mustCopy(&res.Items[i], it)
	}
	return res
}

func FromReminderRunResult(r *commands.ReminderRunResult) *ReminderRunResponse {
	var res ReminderRunResponse
	mustCopy(&res, r)
	return &res
}
