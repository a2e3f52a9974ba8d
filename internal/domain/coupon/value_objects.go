package coupon

import (
	"math"
	"regexp"
	"strings"

	"rental-booking/internal/pkg/errs"
)

var (
	ErrCodeRequired           = errs.Kinded("coupon code is required", errs.ErrInvalidInput)
	ErrInvalidCouponCode      = errs.Kinded("invalid coupon code format", errs.ErrInvalidInput)
	ErrInvalidDiscountType    = errs.Kinded("discount type must be percentage or fixed", errs.ErrInvalidInput)
	ErrInvalidDiscountAmount  = errs.Kinded("discount amount cannot be negative", errs.ErrInvalidInput)
	ErrInvalidDiscountPercent = errs.Kinded("percentage discount must be between 0 and 100", errs.ErrInvalidInput)
	ErrDiscountTooLarge       = errs.Kinded("fixed discount exceeds the largest accepted amount", errs.ErrInvalidInput)
)

// MaxFixedDiscount bounds fixed coupons, in yen.
const MaxFixedDiscount = math.MaxInt32

var couponCodeRegex = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)

type Code string

// NewCode normalises a user-entered code; lookups are exact on the normalised form.
func NewCode(raw string) (Code, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return "", ErrCodeRequired
	}
	if !couponCodeRegex.MatchString(code) {
		return "", ErrInvalidCouponCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

func NewDiscountType(s string) (DiscountType, error) {
	t := DiscountType(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case DiscountPercentage, DiscountFixed:
		return t, nil
	default:
		return "", ErrInvalidDiscountType
	}
}

func (t DiscountType) String() string {
	return string(t)
}

// Discount is what a coupon takes off a given total.
type Discount struct {
	Amount int64
	Rate   float64
}

func percentageDiscount(total int64, percent float64, maxDiscount *int64) Discount {
	// Multiply before dividing so integral percentages stay exact.
	amount := int64(math.Floor(float64(total) * percent / 100))
	if maxDiscount != nil && amount > *maxDiscount {
		amount = *maxDiscount
	}
	return Discount{Amount: amount, Rate: percent / 100}
}

func fixedDiscount(total int64, value float64) Discount {
	// Compared as floats so an out-of-range value never reaches the int64 conversion.
	var amount int64
	switch {
	case !(value > 0):
		amount = 0
	case value >= float64(total):
		amount = total
	default:
		amount = int64(value)
	}
	rate := 0.0
	if total > 0 {
		rate = float64(amount) / float64(total)
	}
	return Discount{Amount: amount, Rate: rate}
}
