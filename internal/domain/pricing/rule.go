package pricing

import (
	"rental-booking/internal/pkg/errs"
)

var (
	ErrNegativeAmount     = errs.Kinded("pricing amounts cannot be negative", errs.ErrInvalidInput)
	ErrNegativeDiscount   = errs.Kinded("discount cannot be negative", errs.ErrInvalidInput)
	ErrGuestCountExceeded = errs.Kinded("guest count exceeds the property capacity", errs.ErrPolicyViolation)
	ErrAmountMismatch     = errs.Kinded("amount does not match the calculated total", errs.ErrPolicyViolation)
)

// Rule holds the house pricing. Amounts are whole yen.
type Rule struct {
	BasePrice         int64
	WeekendSurcharge  int64
	ExtraGuestCharge  int64
	MaxIncludedGuests int
	// MaxGuests of zero means the property has no hard capacity.
	MaxGuests   int
	CleaningFee int64
}

func (r Rule) Validate() error {
	if r.BasePrice < 0 || r.WeekendSurcharge < 0 || r.ExtraGuestCharge < 0 || r.CleaningFee < 0 {
		return ErrNegativeAmount
	}
	if r.MaxIncludedGuests < 0 || r.MaxGuests < 0 {
		return ErrNegativeAmount
	}
	return nil
}
