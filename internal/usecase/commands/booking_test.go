//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"maps"
	"testing"
	"time"

	"rental-booking/internal/domain/availability"
	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/cancellation"
	"rental-booking/internal/domain/coupon"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/domain/reminder"
	reqdto "rental-booking/internal/handler/dto/request"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/caldate"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"
	"rental-booking/tests/common/paymenttest"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var (
	tokyo, _ = time.LoadLocation("Asia/Tokyo")
	// 2026-10-14 12:00 JST
	now = time.Date(2026, 10, 14, 3, 0, 0, 0, time.UTC)
)

var houseRule = shared.DefaultPricingRule{
	BasePrice:         18000,
	WeekendSurcharge:  3000,
	ExtraGuestCharge:  2000,
	MaxIncludedGuests: 6,
	MaxGuests:         10,
	CleaningFee:       5000,
}

// ================================================================================
// In-memory unit of work
// ================================================================================

type memStore struct {
	bookings  map[uuid.UUID]*booking.Booking
	options   map[uuid.UUID]*booking.Option
	keys      map[uuid.UUID]shared.IdempotencyRecord
	jobs      []shared.NotificationJob
	schedules []*reminder.Schedule
}

func newMemStore() *memStore {
	return &memStore{
		bookings: make(map[uuid.UUID]*booking.Booking),
		options:  make(map[uuid.UUID]*booking.Option),
		keys:     make(map[uuid.UUID]shared.IdempotencyRecord),
	}
}

// Within restores the maps when fn fails, the way a rolled back transaction would.
func (s *memStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	bookings := maps.Clone(s.bookings)
	keys := maps.Clone(s.keys)
	jobs := len(s.jobs)
	if err := fn(ctx, memTx{s}); err != nil {
		s.bookings, s.keys, s.jobs = bookings, keys, s.jobs[:jobs]
		return err
	}
	return nil
}

func (s *memStore) CommandReads() shared.CommandReads { return memReads{s} }

func (s *memStore) countStatus(status booking.Status) int {
	n := 0
	for _, b := range s.bookings {
		if b.Status() == status {
			n++
		}
	}
	return n
}

func clone(b *booking.Booking) *booking.Booking {
	return booking.Reconstruct(booking.ReconstructParams{
		ID:              b.ID(),
		Reference:       b.Reference(),
		Stay:            b.Stay(),
		Guest:           b.Guest(),
		Status:          b.Status(),
		Amounts:         b.Amounts(),
		OptionIDs:       b.OptionIDs(),
		CouponID:        b.CouponID(),
		PaymentIntentID: b.PaymentIntentID(),
		AuthorizedAt:    b.AuthorizedAt(),
		CancelledAt:     b.CancelledAt(),
		RefundAmount:    b.RefundAmount(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	})
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

type memTx struct{ s *memStore }

func (t memTx) Bookings() shared.BookingRepository           { return memBookings(t) }
func (t memTx) Coupons() shared.CouponRepository             { return memCoupons{} }
func (t memTx) Settings() shared.SettingsRepository          { return memSettings{} }
func (t memTx) Idempotency() shared.IdempotencyRepository    { return memKeys(t) }
func (t memTx) Notifications() shared.NotificationRepository { return memJobs(t) }
func (t memTx) Reads() shared.CommandReads                   { return memReads(t) }

type memBookings struct{ s *memStore }

func (r memBookings) LockCalendar(context.Context) error { return nil }

func (r memBookings) Create(_ context.Context, b *booking.Booking) error {
	for _, existing := range r.s.bookings {
		if existing.Reference() == b.Reference() {
			return infra.WrapRepoErr("booking reference taken", nil, infra.KindDuplicateKey)
		}
	}
	r.s.bookings[b.ID()] = clone(b)
	return nil
}

func (r memBookings) GetForUpdate(ctx context.Context, ref booking.Reference) (*booking.Booking, error) {
	return memReads(r).BookingByReference(ctx, ref)
}

func (r memBookings) Save(_ context.Context, b *booking.Booking) error {
	r.s.bookings[b.ID()] = clone(b)
	return nil
}

type memCoupons struct{}

func (memCoupons) Create(context.Context, *coupon.Coupon) error            { return nil }
func (memCoupons) Deactivate(context.Context, uuid.UUID, time.Time) error { return nil }
func (memCoupons) Redeem(context.Context, uuid.UUID, uuid.UUID, time.Time) (bool, error) {
	return true, nil
}

type memSettings struct{}

func (memSettings) SavePricingRule(context.Context, pricing.Rule, time.Time) error   { return nil }
func (memSettings) ActivatePolicy(context.Context, *cancellation.Policy) error       { return nil }
func (memSettings) CreateOption(context.Context, *booking.Option) error              { return nil }
func (memSettings) CreateReminderSchedule(context.Context, *reminder.Schedule) error { return nil }

type memKeys struct{ s *memStore }

func (r memKeys) TryInsert(_ context.Context, key uuid.UUID, endpoint, hash string, expiresAt time.Time) (bool, error) {
	if _, ok := r.s.keys[key]; ok {
		return false, nil
	}
	r.s.keys[key] = shared.IdempotencyRecord{
		Key:         key,
		Endpoint:    endpoint,
		Status:      shared.IdempotencyProcessing,
		RequestHash: hash,
		ExpiresAt:   expiresAt,
	}
	return true, nil
}

func (r memKeys) ClaimExpired(_ context.Context, key uuid.UUID, hash string, expiresAt time.Time) (bool, error) {
	rec, ok := r.s.keys[key]
	if !ok {
		return false, nil
	}
	rec.RequestHash, rec.ExpiresAt, rec.Status, rec.ResultBookingID = hash, expiresAt, shared.IdempotencyProcessing, nil
	r.s.keys[key] = rec
	return true, nil
}

func (r memKeys) MarkCompleted(_ context.Context, key, bookingID uuid.UUID) error {
	rec := r.s.keys[key]
	rec.Status = shared.IdempotencyCompleted
	rec.ResultBookingID = &bookingID
	r.s.keys[key] = rec
	return nil
}

func (r memKeys) Release(_ context.Context, key uuid.UUID) error {
	delete(r.s.keys, key)
	return nil
}

type memJobs struct{ s *memStore }

func (r memJobs) CreateJob(_ context.Context, job shared.NotificationJob) (bool, error) {
	r.s.jobs = append(r.s.jobs, job)
	return true, nil
}

type memReads struct{ s *memStore }

func (r memReads) CouponByCode(context.Context, coupon.Code) (*coupon.Coupon, error) {
	return nil, notFound("coupon not found")
}

func (r memReads) PricingRule(context.Context) (*pricing.Rule, error) {
	return nil, notFound("pricing rule not found")
}

func (r memReads) ActivePolicy(context.Context) (*cancellation.Policy, error) {
	return nil, notFound("no active policy")
}

func (r memReads) BookingByReference(_ context.Context, ref booking.Reference) (*booking.Booking, error) {
	for _, b := range r.s.bookings {
		if b.Reference() == ref {
			return clone(b), nil
		}
	}
	return nil, notFound("booking not found")
}

func (r memReads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, notFound("booking not found")
	}
	return clone(b), nil
}

func (r memReads) capacitySlots(match func(*booking.Booking) bool) []availability.Slot {
	var slots []availability.Slot
	for _, b := range r.s.bookings {
		if !b.Status().CountsTowardCapacity() || !match(b) {
			continue
		}
		slots = append(slots, availability.Slot{
			BookingID: b.ID(),
			Status:    b.Status(),
			CheckIn:   b.Stay().CheckIn(),
			CheckOut:  b.Stay().CheckOut(),
			OptionIDs: b.OptionIDs(),
		})
	}
	return slots
}

func (r memReads) OverlappingSlots(_ context.Context, start, end caldate.Date) ([]availability.Slot, error) {
	return r.capacitySlots(func(b *booking.Booking) bool {
		return b.Stay().CheckIn().Before(end) && start.Before(b.Stay().CheckOut())
	}), nil
}

func (r memReads) SlotsCheckingInOn(_ context.Context, date caldate.Date) ([]availability.Slot, error) {
	return r.capacitySlots(func(b *booking.Booking) bool {
		return b.Stay().CheckIn().Equal(date)
	}), nil
}

func (r memReads) ActiveOptions(_ context.Context, ids []uuid.UUID) ([]*booking.Option, error) {
	var out []*booking.Option
	for _, id := range ids {
		if o, ok := r.s.options[id]; ok && o.IsActive() {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r memReads) ActiveReminderSchedules(context.Context) ([]*reminder.Schedule, error) {
	return r.s.schedules, nil
}

func (r memReads) ConfirmedCheckingInBetween(context.Context, caldate.Date, caldate.Date) ([]*booking.Booking, error) {
	return nil, nil
}

func (r memReads) IdempotencyByKey(_ context.Context, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	rec, ok := r.s.keys[key]
	if !ok {
		return nil, notFound("idempotency key not found")
	}
	return &rec, nil
}

// ================================================================================
// Suite
// ================================================================================

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl *gomock.Controller
	store    *memStore
	payments *paymenttest.Gateway
	clock    *clock.MockClock
	commands commands.BookingCommands
}

func TestBookingCommandsTestSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func (s *BookingCommandsTestSuite) SetupSubTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.store = newMemStore()
	s.payments = paymenttest.NewGateway()
	s.clock = clock.NewMockClock(now)

	bookingQueries := queriesmock.NewMockBookingQueries(s.mockCtrl)
	bookingQueries.EXPECT().GetByReference(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, reference string) (*queries.BookingView, error) {
			ref, err := booking.ParseReference(reference)
			if err != nil {
				return nil, err
			}
			b, err := s.store.CommandReads().BookingByReference(ctx, ref)
			if err != nil {
				return nil, booking.ErrBookingNotFound
			}
			return queries.ToBookingView(b, nil), nil
		}).AnyTimes()

	s.commands = commands.NewBookingCommands(
		s.store,
		s.payments,
		bookingQueries,
		houseRule,
		clock.NewCalendar(s.clock, tokyo),
		commands.BookingSettings{Currency: "jpy", IdempotencyTTL: 24 * time.Hour},
	)
}

func stayRequest(checkIn, checkOut string) reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		GuestCount: 2,
		GuestName:  "Hanako Yamada",
		GuestEmail: "hanako@example.com",
	}
}

func (s *BookingCommandsTestSuite) create(req reqdto.CreateBookingRequest) *commands.CreateBookingResult {
	res, err := s.commands.Create(s.T().Context(), req, uuid.New())
	s.Require().NoError(err)
	return res
}

func (s *BookingCommandsTestSuite) authorize(res *commands.CreateBookingResult) {
	intentID := *res.Booking.PaymentIntentID
	s.Require().NoError(s.payments.HoldCard(intentID))
	_, err := s.commands.Authorize(s.T().Context(), res.Booking.Reference,
		reqdto.AuthorizeBookingRequest{PaymentIntentID: intentID})
	s.Require().NoError(err)
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingCommandsTestSuite) TestCreate() {
	s.Run("unpaid bookings keep their dates however long they wait", func() {
		first := s.create(stayRequest("2026-11-01", "2026-11-03"))

		s.clock.Add(31 * time.Minute)
		_, err := s.commands.Create(s.T().Context(), stayRequest("2026-11-01", "2026-11-03"), uuid.New())
		s.True(errs.Is(err, availability.ErrDatesUnavailable), "got %v", err)
		s.True(errs.Is(err, errs.ErrConflict))

		s.clock.Add(48 * time.Hour)
		_, err = s.commands.Create(s.T().Context(), stayRequest("2026-11-02", "2026-11-04"), uuid.New())
		s.True(errs.Is(err, availability.ErrDatesUnavailable), "got %v", err)

		s.authorize(first)
		s.Equal(1, s.store.countStatus(booking.StatusPendingReview))
		s.Len(s.store.bookings, 1)
		s.Equal(1, s.payments.IntentCount(), "rejected requests never open an intent")
	})

	s.Run("back-to-back stays are accepted", func() {
		s.create(stayRequest("2026-11-01", "2026-11-03"))
		s.create(stayRequest("2026-11-03", "2026-11-04"))
		s.Len(s.store.bookings, 2)
	})

	s.Run("a rejected request releases its idempotency key", func() {
		s.create(stayRequest("2026-11-01", "2026-11-03"))

		key := uuid.New()
		_, err := s.commands.Create(s.T().Context(), stayRequest("2026-11-01", "2026-11-02"), key)
		s.Require().Error(err)
		s.NotContains(s.store.keys, key)
	})

	s.Run("same key replays the stored booking", func() {
		key := uuid.New()
		req := stayRequest("2026-11-01", "2026-11-03")

		first, err := s.commands.Create(s.T().Context(), req, key)
		s.Require().NoError(err)
		again, err := s.commands.Create(s.T().Context(), req, key)
		s.Require().NoError(err)

		s.True(again.IsReplayed)
		s.Equal(first.Booking.Reference, again.Booking.Reference)
		s.Equal(first.ClientSecret, again.ClientSecret)
		s.Equal(1, s.payments.IntentCount())
	})
}

// ================================================================================
// TestCancel
// ================================================================================

func (s *BookingCommandsTestSuite) TestCancel() {
	s.Run("uncaptured booking reports no refund", func() {
		created := s.create(stayRequest("2026-11-01", "2026-11-03"))

		res, err := s.commands.Cancel(s.T().Context(), created.Booking.Reference)
		s.Require().NoError(err)

		s.Equal("cancelled", res.Booking.Status)
		s.Require().NotNil(res.Booking.RefundAmount)
		s.Zero(*res.Booking.RefundAmount)
		s.False(res.Refund.Charged)
		s.Zero(res.Refund.RefundAmount)
		s.Zero(res.Refund.NonRefundableAmount)
		s.Equal(100, res.Refund.RefundPercentage, "the policy tier is still reported")
		s.Empty(s.payments.Refunds())

		intent, ok := s.payments.Intent(*created.Booking.PaymentIntentID)
		s.Require().True(ok)
		s.Equal(shared.PaymentCanceled, intent.Status)
	})

	s.Run("captured booking is refunded by the policy", func() {
		created := s.create(stayRequest("2026-11-01", "2026-11-03"))
		total := created.Booking.TotalAmount
		s.authorize(created)
		_, err := s.commands.Approve(s.T().Context(), created.Booking.Reference)
		s.Require().NoError(err)

		res, err := s.commands.Cancel(s.T().Context(), created.Booking.Reference)
		s.Require().NoError(err)

		s.Equal("refunded", res.Booking.Status)
		s.True(res.Refund.Charged)
		s.Equal(total, res.Refund.RefundAmount)
		s.Zero(res.Refund.NonRefundableAmount)
		s.Equal([]paymenttest.Refund{{IntentID: *created.Booking.PaymentIntentID, Amount: total}}, s.payments.Refunds())
	})

	s.Run("cancelled dates can be booked again", func() {
		created := s.create(stayRequest("2026-11-01", "2026-11-03"))
		_, err := s.commands.Cancel(s.T().Context(), created.Booking.Reference)
		s.Require().NoError(err)

		s.create(stayRequest("2026-11-01", "2026-11-03"))
		s.Equal(1, s.store.countStatus(booking.StatusPending))
	})
}

// ================================================================================
// TestApprove
// ================================================================================

func (s *BookingCommandsTestSuite) TestApprove() {
	s.Run("confirmation names the first reminder ahead", func() {
		s.store.schedules = []*reminder.Schedule{
			reminder.ReconstructSchedule(uuid.New(), "week_before", 7, true, now),
			reminder.ReconstructSchedule(uuid.New(), "month_before", 30, true, now),
			reminder.ReconstructSchedule(uuid.New(), "two_weeks_before", 14, false, now),
		}
		created := s.create(stayRequest("2026-11-01", "2026-11-03"))
		s.authorize(created)

		view, err := s.commands.Approve(s.T().Context(), created.Booking.Reference)
		s.Require().NoError(err)
		s.Equal("confirmed", view.Status)

		job := s.store.jobs[len(s.store.jobs)-1]
		s.Equal(shared.TopicBookingConfirmed, job.Topic)
		var payload map[string]any
		s.Require().NoError(json.Unmarshal(job.Payload, &payload))
		s.Equal("week_before", payload["next_reminder_template"])
		s.EqualValues(7, payload["next_reminder_days_before"])

		intent, _ := s.payments.Intent(*created.Booking.PaymentIntentID)
		s.Equal(shared.PaymentSucceeded, intent.Status)
	})

	s.Run("no reminder fields without schedules", func() {
		created := s.create(stayRequest("2026-11-01", "2026-11-03"))
		s.authorize(created)

		_, err := s.commands.Approve(s.T().Context(), created.Booking.Reference)
		s.Require().NoError(err)

		job := s.store.jobs[len(s.store.jobs)-1]
		s.NotContains(string(job.Payload), "next_reminder")
	})

	s.Run("approving before authorization is rejected", func() {
		created := s.create(stayRequest("2026-11-01", "2026-11-03"))

		_, err := s.commands.Approve(s.T().Context(), created.Booking.Reference)
		s.True(errs.Is(err, errs.ErrPolicyViolation), "got %v", err)
		s.Equal(1, s.store.countStatus(booking.StatusPending))
	})
}
