package readstore

import (
	"context"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/converter"
	"rental-booking/internal/infra/db"
	"rental-booking/internal/pkg/caldate"
	"rental-booking/internal/pkg/pgconv"
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	getBookingByReference = `SELECT ` + converter.BookingColumns + `
FROM bookings b
WHERE b.reference = $1`

	getBookingByID = `SELECT ` + converter.BookingColumns + `
FROM bookings b
WHERE b.id = $1`

	getBookingViewByReference = `SELECT ` + converter.BookingColumns + `, c.code
FROM bookings b
LEFT JOIN coupons c ON c.id = b.coupon_id
WHERE b.reference = $1`

	listConfirmedCheckingInBetween = `SELECT ` + converter.BookingColumns + `
FROM bookings b
WHERE b.status = 'confirmed' AND b.check_in BETWEEN $1 AND $2
ORDER BY b.check_in, b.id`

	listBookingPage = `SELECT b.id, b.reference, b.status, b.check_in, b.check_out, b.guest_name, b.total_amount, b.created_at
FROM bookings b
WHERE ($1::text IS NULL OR b.status = $1)
  AND ($2::timestamptz IS NULL OR (b.created_at, b.id) < ($2, $3::uuid))
ORDER BY b.created_at DESC, b.id DESC
LIMIT $4`
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

func (r *BookingReadStore) BookingByReference(ctx context.Context, ref booking.Reference) (*booking.Booking, error) {
	b, err := converter.ScanBooking(r.db.QueryRow(ctx, getBookingByReference, ref.String()))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking by reference", err)
	}
	return b, nil
}

func (r *BookingReadStore) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := converter.ScanBooking(r.db.QueryRow(ctx, getBookingByID, id))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking by id", err)
	}
	return b, nil
}

func (r *BookingReadStore) ConfirmedCheckingInBetween(ctx context.Context, from, to caldate.Date) ([]*booking.Booking, error) {
	rows, err := r.db.Query(ctx, listConfirmedCheckingInBetween, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list upcoming bookings", err)
	}
	bookings, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*booking.Booking, error) {
		return converter.ScanBooking(row)
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan upcoming bookings", err)
	}
	return bookings, nil
}

func (r *BookingReadStore) FindByReference(ctx context.Context, ref booking.Reference) (*queries.BookingView, error) {
	var (
		row  converter.BookingRow
		code *string
	)
	err := r.db.QueryRow(ctx, getBookingViewByReference, ref.String()).Scan(append(row.Fields(), &code)...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking by reference", err)
	}
	b, err := converter.BookingToDomain(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking", err)
	}
	return queries.ToBookingView(b, code), nil
}

func (r *BookingReadStore) FindPage(ctx context.Context, status *booking.Status, after *queries.Cursor, limit int) ([]*queries.BookingListItem, error) {
	var (
		statusArg *string
		afterAt   any
		afterID   any
	)
	if status != nil {
		s := status.String()
		statusArg = &s
	}
	if after != nil {
		afterAt = after.CreatedAt
		afterID = after.ID
	}

	rows, err := r.db.Query(ctx, listBookingPage, statusArg, afterAt, afterID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.BookingListItem, error) {
		var (
			item    queries.BookingListItem
			in, out pgtype.Date
		)
		if err := row.Scan(&item.ID, &item.Reference, &item.Status, &in, &out, &item.GuestName, &item.TotalAmount, &item.CreatedAt); err != nil {
			return nil, err
		}
		item.CheckIn = pgconv.DateFromPgtype(in).String()
		item.CheckOut = pgconv.DateFromPgtype(out).String()
		return &item, nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan bookings", err)
	}
	return items, nil
}
