package availability

import (
	"slices"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/stay"
	"rental-booking/internal/pkg/caldate"
	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrDatesUnavailable  = errs.Kinded("the requested dates are already booked", errs.ErrConflict)
	ErrOptionUnavailable = errs.Kinded("a selected option is sold out for the check-in day", errs.ErrConflict)
	ErrUnknownOption     = errs.Kinded("a selected option does not exist or is inactive", errs.ErrInvalidInput)
)

// DateRange is a booked stay; End is the check-out day and is not occupied.
type DateRange struct {
	Start caldate.Date
	End   caldate.Date
}

func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Slot is the minimal view of a booking the availability rules need.
type Slot struct {
	BookingID uuid.UUID
	Status    booking.Status
	CheckIn   caldate.Date
	CheckOut  caldate.Date
	OptionIDs []uuid.UUID
}

func (s Slot) Range() DateRange {
	return DateRange{Start: s.CheckIn, End: s.CheckOut}
}

// BookedRanges lists the ranges of bookings that block the calendar. Duplicates are kept.
func BookedRanges(slots []Slot) []DateRange {
	ranges := make([]DateRange, 0, len(slots))
	for _, s := range slots {
		if s.Status.BlocksDates() {
			ranges = append(ranges, s.Range())
		}
	}
	return ranges
}

// CheckStay fails when the stay overlaps any booking that holds the property,
// including pending ones whose payment is still in flight.
func CheckStay(slots []Slot, requested stay.Stay) error {
	want := DateRange{Start: requested.CheckIn(), End: requested.CheckOut()}
	for _, s := range slots {
		if !s.Status.CountsTowardCapacity() {
			continue
		}
		if s.Range().Overlaps(want) {
			return ErrDatesUnavailable
		}
	}
	return nil
}

type OptionSummary struct {
	OptionID   uuid.UUID
	DailyLimit int
	Remaining  int
	Available  bool
}

// OptionAvailability counts option usage by bookings checking in on date.
// Only active options are reported; filter narrows the result when non-empty.
func OptionAvailability(date caldate.Date, options []*booking.Option, slots []Slot, filter []uuid.UUID) map[uuid.UUID]OptionSummary {
	used := usageOn(date, slots)

	result := make(map[uuid.UUID]OptionSummary, len(options))
	for _, o := range options {
		if !o.IsActive() {
			continue
		}
		if len(filter) > 0 && !slices.Contains(filter, o.ID()) {
			continue
		}
		remaining := max(0, o.DailyLimit()-used[o.ID()])
		result[o.ID()] = OptionSummary{
			OptionID:   o.ID(),
			DailyLimit: o.DailyLimit(),
			Remaining:  remaining,
			Available:  remaining > 0,
		}
	}
	return result
}

// CheckOptions verifies every requested option still has stock on the check-in day.
// A request naming the same option twice consumes two units.
func CheckOptions(date caldate.Date, requested []uuid.UUID, options []*booking.Option, slots []Slot) error {
	if len(requested) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*booking.Option, len(options))
	for _, o := range options {
		if o.IsActive() {
			byID[o.ID()] = o
		}
	}

	used := usageOn(date, slots)
	for _, id := range requested {
		o, ok := byID[id]
		if !ok {
			return errs.Wrap(ErrUnknownOption, id.String())
		}
		used[id]++
		if used[id] > o.DailyLimit() {
			return errs.Wrap(ErrOptionUnavailable, o.Name())
		}
	}
	return nil
}

func usageOn(date caldate.Date, slots []Slot) map[uuid.UUID]int {
	used := make(map[uuid.UUID]int)
	for _, s := range slots {
		if !s.Status.CountsTowardCapacity() || !s.CheckIn.Equal(date) {
			continue
		}
		for _, id := range s.OptionIDs {
			used[id]++
		}
	}
	return used
}
