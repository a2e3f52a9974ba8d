package pricing

import (
	"time"

	"rental-booking/internal/domain/stay"
	"rental-booking/internal/pkg/caldate"
)

// Breakdown is the itemised result sent to the payment provider as metadata.
type Breakdown struct {
	Nights        int
	WeekdayNights int
	WeekendNights int
	NightlyAmount int64
	ExtraGuests   int
	ExtraGuestFee int64
	CleaningFee   int64
	Subtotal      int64
	Discount      int64
	Total         int64
	// Clamped is set when the discount exceeded the subtotal and Total was floored at zero.
	Clamped bool
}

// BaseAmount is everything charged for the stay itself, before cleaning and discount.
func (b Breakdown) BaseAmount() int64 {
	return b.NightlyAmount + b.ExtraGuestFee
}

// Calculate prices a stay. Friday and Saturday nights carry the weekend surcharge,
// guests beyond the included count are charged once per stay, cleaning is always billed.
func Calculate(s stay.Stay, rule Rule, discount int64) (Breakdown, error) {
	if err := rule.Validate(); err != nil {
		return Breakdown{}, err
	}
	if discount < 0 {
		return Breakdown{}, ErrNegativeDiscount
	}
	if rule.MaxGuests > 0 && s.GuestCount() > rule.MaxGuests {
		return Breakdown{}, ErrGuestCountExceeded
	}

	var b Breakdown
	b.Nights = s.Nights()
	for i := range b.Nights {
		if isWeekendNight(s.Night(i)) {
			b.WeekendNights++
			b.NightlyAmount += rule.BasePrice + rule.WeekendSurcharge
			continue
		}
		b.WeekdayNights++
		b.NightlyAmount += rule.BasePrice
	}

	if s.GuestCount() > rule.MaxIncludedGuests {
		b.ExtraGuests = s.GuestCount() - rule.MaxIncludedGuests
		b.ExtraGuestFee = int64(b.ExtraGuests) * rule.ExtraGuestCharge
	}

	b.CleaningFee = rule.CleaningFee
	b.Subtotal = b.NightlyAmount + b.ExtraGuestFee + b.CleaningFee
	b.Discount = discount
	b.Total = b.Subtotal - discount
	if b.Total < 0 {
		b.Total = 0
		b.Clamped = true
	}
	return b, nil
}

// CalculateBookingAmount returns only the payable total for the given stay.
func CalculateBookingAmount(checkIn, checkOut caldate.Date, guestCount int, rule Rule, discount int64) (int64, error) {
	s, err := stay.New(checkIn, checkOut, guestCount)
	if err != nil {
		return 0, err
	}
	b, err := Calculate(s, rule, discount)
	if err != nil {
		return 0, err
	}
	return b.Total, nil
}

// ValidateAmount rejects a submitted amount that differs from the authoritative total.
func ValidateAmount(submitted int64, b Breakdown) error {
	if submitted != b.Total {
		return ErrAmountMismatch
	}
	return nil
}

func isWeekendNight(d caldate.Date) bool {
	wd := d.Weekday()
	return wd == time.Friday || wd == time.Saturday
}
