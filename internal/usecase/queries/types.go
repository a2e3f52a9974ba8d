package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type QuoteView struct {
	CheckIn       string            `json:"check_in"`
	CheckOut      string            `json:"check_out"`
	GuestCount    int               `json:"guest_count"`
	Nights        int               `json:"nights"`
	WeekdayNights int               `json:"weekday_nights"`
	WeekendNights int               `json:"weekend_nights"`
	NightlyAmount int64             `json:"nightly_amount"`
	ExtraGuests   int               `json:"extra_guests"`
	ExtraGuestFee int64             `json:"extra_guest_fee"`
	CleaningFee   int64             `json:"cleaning_fee"`
	Subtotal      int64             `json:"subtotal"`
	Discount      int64             `json:"discount"`
	Total         int64             `json:"total"`
	Currency      string            `json:"currency"`
	Coupon        *CouponResultView `json:"coupon,omitempty"`
}

type CouponResultView struct {
	Code           string     `json:"code"`
	Valid          bool       `json:"valid"`
	DiscountType   string     `json:"discount_type,omitempty"`
	DiscountAmount int64      `json:"discount_amount"`
	DiscountRate   float64    `json:"discount_rate"`
	Reason         string     `json:"reason,omitempty"`
	Message        string     `json:"message,omitempty"`
	MinimumAmount  *int64     `json:"minimum_amount,omitempty"`
	CouponID       *uuid.UUID `json:"coupon_id,omitempty"`
}

type DateRangeView struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type OptionAvailabilityView struct {
	OptionID   uuid.UUID `json:"option_id"`
	Name       string    `json:"name"`
	DailyLimit int       `json:"daily_limit"`
	Remaining  int       `json:"remaining"`
	Available  bool      `json:"available"`
}

type BookingView struct {
	ID              uuid.UUID   `json:"id"`
	Reference       string      `json:"reference"`
	Status          string      `json:"status"`
	CheckIn         string      `json:"check_in"`
	CheckOut        string      `json:"check_out"`
	Nights          int         `json:"nights"`
	GuestCount      int         `json:"guest_count"`
	GuestName       string      `json:"guest_name"`
	GuestEmail      string      `json:"guest_email"`
	NightlyAmount   int64       `json:"nightly_amount"`
	ExtraGuestFee   int64       `json:"extra_guest_fee"`
	CleaningFee     int64       `json:"cleaning_fee"`
	Discount        int64       `json:"discount"`
	TotalAmount     int64       `json:"total_amount"`
	OptionIDs       []uuid.UUID `json:"option_ids"`
	CouponCode      *string     `json:"coupon_code,omitempty"`
	PaymentIntentID *string     `json:"payment_intent_id,omitempty"`
	AuthorizedAt    *time.Time  `json:"authorized_at,omitempty"`
	CancelledAt     *time.Time  `json:"cancelled_at,omitempty"`
	RefundAmount    *int64      `json:"refund_amount,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

type BookingListItem struct {
	ID          uuid.UUID `json:"id"`
	Reference   string    `json:"reference"`
	Status      string    `json:"status"`
	CheckIn     string    `json:"check_in"`
	CheckOut    string    `json:"check_out"`
	GuestName   string    `json:"guest_name"`
	TotalAmount int64     `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type RefundQuoteView struct {
	Reference           string `json:"reference"`
	PolicyName          string `json:"policy_name"`
	DaysBeforeCheckIn   int    `json:"days_before_check_in"`
	RefundPercentage    int    `json:"refund_percentage"`
	RefundAmount        int64  `json:"refund_amount"`
	NonRefundableAmount int64  `json:"non_refundable_amount"`
	TotalAmount         int64  `json:"total_amount"`
	IsCancellable       bool   `json:"is_cancellable"`
	// Charged is false while the card is only held; nothing is refunded then.
	Charged bool `json:"charged"`
}

type CouponView struct {
	ID            uuid.UUID `json:"id"`
	Code          string    `json:"code"`
	DiscountType  string    `json:"discount_type"`
	DiscountValue float64   `json:"discount_value"`
	MaxDiscount   *int64    `json:"max_discount,omitempty"`
	MinAmount     *int64    `json:"min_amount,omitempty"`
	UsageLimit    *int      `json:"usage_limit,omitempty"`
	UsageCount    int       `json:"usage_count"`
	ValidFrom     time.Time `json:"valid_from"`
	ValidUntil    time.Time `json:"valid_until"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
}

type PricingRuleView struct {
	BasePrice         int64 `json:"base_price"`
	WeekendSurcharge  int64 `json:"weekend_surcharge"`
	ExtraGuestCharge  int64 `json:"extra_guest_charge"`
	MaxIncludedGuests int   `json:"max_included_guests"`
	MaxGuests         int   `json:"max_guests"`
	CleaningFee       int64 `json:"cleaning_fee"`
}

type CancellationRuleView struct {
	DaysBeforeCheckIn int `json:"days_before_check_in"`
	RefundPercentage  int `json:"refund_percentage"`
}

type CancellationPolicyView struct {
	ID        uuid.UUID              `json:"id"`
	Name      string                 `json:"name"`
	IsActive  bool                   `json:"is_active"`
	Rules     []CancellationRuleView `json:"rules"`
	CreatedAt time.Time              `json:"created_at"`
}

type OptionView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	DailyLimit int       `json:"daily_limit"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReminderScheduleView struct {
	ID                uuid.UUID `json:"id"`
	TemplateKey       string    `json:"template_key"`
	DaysBeforeCheckIn int       `json:"days_before_check_in"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}
