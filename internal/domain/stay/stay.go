package stay

import (
	"rental-booking/internal/pkg/caldate"
	"rental-booking/internal/pkg/errs"
)

var (
	ErrInvalidRange      = errs.Kinded("check-out date must be after check-in date", errs.ErrPolicyViolation)
	ErrInvalidGuestCount = errs.Kinded("guest count must be at least 1", errs.ErrPolicyViolation)
)

// Stay is a requested or booked stay; check-out is exclusive.
type Stay struct {
	checkIn    caldate.Date
	checkOut   caldate.Date
	guestCount int
}

func New(checkIn, checkOut caldate.Date, guestCount int) (Stay, error) {
	if checkIn.IsZero() || checkOut.IsZero() || !checkIn.Before(checkOut) {
		return Stay{}, ErrInvalidRange
	}
	if guestCount < 1 {
		return Stay{}, ErrInvalidGuestCount
	}
	return Stay{checkIn: checkIn, checkOut: checkOut, guestCount: guestCount}, nil
}

func (s Stay) CheckIn() caldate.Date  { return s.checkIn }
func (s Stay) CheckOut() caldate.Date { return s.checkOut }
func (s Stay) GuestCount() int        { return s.guestCount }

func (s Stay) Nights() int {
	return s.checkIn.DaysUntil(s.checkOut)
}

// Night returns the date whose night is the i-th of the stay, counting from zero.
func (s Stay) Night(i int) caldate.Date {
	return s.checkIn.AddDays(i)
}
