package readstore

import (
	"context"

	"rental-booking/internal/domain/availability"
	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/converter"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/caldate"
	"rental-booking/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
)

const (
	// Stays are half-open ranges: a checkout on day D does not collide with a checkin on D.
	listOverlappingSlots = `SELECT ` + converter.SlotColumns + `
FROM bookings b
WHERE b.check_in < $2 AND b.check_out > $1
  AND b.status IN ('pending', 'pending_review', 'confirmed')
ORDER BY b.check_in`

	listSlotsCheckingInOn = `SELECT ` + converter.SlotColumns + `
FROM bookings b
WHERE b.check_in = $1
  AND b.status IN ('pending', 'pending_review', 'confirmed')`

	listBlockingSlots = `SELECT ` + converter.SlotColumns + `
FROM bookings b
WHERE b.status = ANY($1::text[]) AND b.check_out > $2
ORDER BY b.check_in`
)

type AvailabilityReadStore struct {
	*SettingsReadStore
	db db.DBTX
}

func NewAvailabilityReadStore(db db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{
		SettingsReadStore: NewSettingsReadStore(db),
		db:                db,
	}
}

func (r *AvailabilityReadStore) OverlappingSlots(ctx context.Context, start, end caldate.Date) ([]availability.Slot, error) {
	rows, err := r.db.Query(ctx, listOverlappingSlots, pgconv.DateToPgtype(start), pgconv.DateToPgtype(end))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list overlapping bookings", err)
	}
	return collectSlots(rows)
}

func (r *AvailabilityReadStore) SlotsCheckingInOn(ctx context.Context, date caldate.Date) ([]availability.Slot, error) {
	rows, err := r.db.Query(ctx, listSlotsCheckingInOn, pgconv.DateToPgtype(date))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings checking in", err)
	}
	return collectSlots(rows)
}

// BlockingSlots returns stays still running on or after from that appear as taken on the calendar.
func (r *AvailabilityReadStore) BlockingSlots(ctx context.Context, from caldate.Date) ([]availability.Slot, error) {
	statuses := make([]string, 0, len(booking.BlockingStatuses()))
	for _, s := range booking.BlockingStatuses() {
		statuses = append(statuses, s.String())
	}
	rows, err := r.db.Query(ctx, listBlockingSlots, statuses, pgconv.DateToPgtype(from))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list booked ranges", err)
	}
	return collectSlots(rows)
}

func collectSlots(rows pgx.Rows) ([]availability.Slot, error) {
	slots, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (availability.Slot, error) {
		return converter.ScanSlot(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan booking slots", err)
	}
	return slots, nil
}
