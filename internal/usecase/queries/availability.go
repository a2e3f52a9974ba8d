package queries

import (
	"context"
	"sort"

	"rental-booking/internal/domain/availability"
	"rental-booking/internal/domain/booking"
	"rental-booking/internal/pkg/caldate"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AvailabilityQueries interface {
	BookedDateRanges(ctx context.Context) ([]DateRangeView, error)
	OptionAvailability(ctx context.Context, date string, optionIDs []uuid.UUID) ([]OptionAvailabilityView, error)
}

type AvailabilityReadStore interface {
	// BlockingSlots returns date-blocking stays that end after from.
	BlockingSlots(ctx context.Context, from caldate.Date) ([]availability.Slot, error)
	SlotsCheckingInOn(ctx context.Context, date caldate.Date) ([]availability.Slot, error)
	ActiveOptions(ctx context.Context, ids []uuid.UUID) ([]*booking.Option, error)
}

type availabilityQueriesImpl struct {
	store    AvailabilityReadStore
	calendar *clock.Calendar
}

func NewAvailabilityQueries(store AvailabilityReadStore, calendar *clock.Calendar) AvailabilityQueries {
	return &availabilityQueriesImpl{
		store:    store,
		calendar: calendar,
	}
}

func (q *availabilityQueriesImpl) BookedDateRanges(ctx context.Context) ([]DateRangeView, error) {
	slots, err := q.store.BlockingSlots(ctx, q.calendar.Today())
	if err != nil {
		return nil, shared.StorageError(err, "failed to load booked dates")
	}

	ranges := availability.BookedRanges(slots)
	views := make([]DateRangeView, 0, len(ranges))
	for _, r := range ranges {
		views = append(views, DateRangeView{Start: r.Start.String(), End: r.End.String()})
	}
	return views, nil
}

func (q *availabilityQueriesImpl) OptionAvailability(ctx context.Context, rawDate string, optionIDs []uuid.UUID) ([]OptionAvailabilityView, error) {
	date, err := q.calendar.Normalize(rawDate)
	if err != nil {
		return nil, err
	}

	options, err := q.store.ActiveOptions(ctx, optionIDs)
	if err != nil {
		return nil, shared.StorageError(err, "failed to load booking options")
	}
	slots, err := q.store.SlotsCheckingInOn(ctx, date)
	if err != nil {
		return nil, shared.StorageError(err, "failed to load bookings for date")
	}

	summaries := availability.OptionAvailability(date, options, slots, optionIDs)
	views := make([]OptionAvailabilityView, 0, len(summaries))
	for _, o := range options {
		s, ok := summaries[o.ID()]
		if !ok {
			continue
		}
		views = append(views, OptionAvailabilityView{
			OptionID:   o.ID(),
			Name:       o.Name(),
			DailyLimit: s.DailyLimit,
			Remaining:  s.Remaining,
			Available:  s.Available,
		})
	}
	sort.SliceStable(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	return views, nil
}
