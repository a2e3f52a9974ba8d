package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"rental-booking/internal/domain/availability"
	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/cancellation"
	"rental-booking/internal/domain/coupon"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/domain/reminder"
	"rental-booking/internal/domain/stay"
	reqdto "rental-booking/internal/handler/dto/request"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

const createBookingEndpoint = "POST /api/bookings"

var (
	ErrCouponRejected        = errs.Kinded("coupon cannot be applied", errs.ErrPolicyViolation)
	ErrPaymentIntentMismatch = errs.Kinded("payment intent does not belong to this booking", errs.ErrPolicyViolation)
	ErrPaymentNotAuthorized  = errs.Kinded("payment has not been authorized by the card issuer", errs.ErrPolicyViolation)
	ErrCheckInPassed         = errs.Kinded("check-in date has passed", errs.ErrPolicyViolation)
	ErrBookingConflict       = errs.Kinded("booking could not be stored, please retry", errs.ErrConflict)
)

type BookingSettings struct {
	Currency       string
	IdempotencyTTL time.Duration
}

type CreateBookingResult struct {
	Booking      *queries.BookingView
	ClientSecret string
	IsReplayed   bool
}

type CancelBookingResult struct {
	Booking *queries.BookingView
	Refund  *queries.RefundQuoteView
}

type BookingCommands interface {
	Create(ctx context.Context, req reqdto.CreateBookingRequest, idempotencyKey uuid.UUID) (*CreateBookingResult, error)
	Authorize(ctx context.Context, reference string, req reqdto.AuthorizeBookingRequest) (*queries.BookingView, error)
	Approve(ctx context.Context, reference string) (*queries.BookingView, error)
	Cancel(ctx context.Context, reference string) (*CancelBookingResult, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	payments       shared.PaymentGateway
	bookingQueries queries.BookingQueries
	defaults       shared.DefaultPricingRule
	calendar       *clock.Calendar
	settings       BookingSettings
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	payments shared.PaymentGateway,
	bookingQueries queries.BookingQueries,
	defaults shared.DefaultPricingRule,
	calendar *clock.Calendar,
	settings BookingSettings,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		payments:       payments,
		bookingQueries: bookingQueries,
		defaults:       defaults,
		calendar:       calendar,
		settings:       settings,
	}
}

func (c *bookingCommandsImpl) Create(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	requestHash := c.calculateRequestHash(req)
	expiresAt := c.calendar.Now().Add(c.settings.IdempotencyTTL)

	replayID, err := c.handleIdempotency(ctx, idempotencyKey, requestHash, expiresAt)
	if err != nil {
		return nil, err
	}
	if replayID != nil {
		return c.replay(ctx, *replayID)
	}

	result, err := c.createNewBooking(ctx, req, idempotencyKey)
	if err != nil {
		c.releaseIdempotencyKey(ctx, idempotencyKey)
		return nil, err
	}
	return result, nil
}

// handleIdempotency claims the key for this request, or returns the booking a
// completed request with the same key produced.
func (c *bookingCommandsImpl) handleIdempotency(
	ctx context.Context,
	key uuid.UUID,
	requestHash string,
	expiresAt time.Time,
) (*uuid.UUID, error) {
	var inserted bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		inserted, err = tx.Idempotency().TryInsert(ctx, key, createBookingEndpoint, requestHash, expiresAt)
		return err
	})
	if err != nil {
		return nil, shared.StorageError(err, "failed to record idempotency key")
	}
	if inserted {
		return nil, nil
	}

	existing, err := c.uow.CommandReads().IdempotencyByKey(ctx, key)
	if err != nil {
		// Released by a failed attempt between our insert and read.
		return nil, shared.TranslateRepoErr(err, shared.ErrIdempotencyInProgress, "failed to read idempotency key")
	}

	if existing.ExpiresAt.Before(c.calendar.Now()) {
		var claimed bool
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var err error
			claimed, err = tx.Idempotency().ClaimExpired(ctx, key, requestHash, expiresAt)
			return err
		})
		if err != nil {
			return nil, shared.StorageError(err, "failed to reclaim idempotency key")
		}
		if !claimed {
			return nil, shared.ErrIdempotencyInProgress
		}
		return nil, nil
	}

	if existing.RequestHash != requestHash {
		return nil, shared.ErrIdempotencyKeyReused
	}

	switch existing.Status {
	case shared.IdempotencyCompleted:
		if existing.ResultBookingID == nil {
			return nil, errs.New("completed request missing result booking ID")
		}
		return existing.ResultBookingID, nil
	case shared.IdempotencyProcessing:
		return nil, shared.ErrIdempotencyInProgress
	default:
		return nil, errs.Newf("invalid idempotency key status %q", existing.Status)
	}
}

func (c *bookingCommandsImpl) replay(ctx context.Context, bookingID uuid.UUID) (*CreateBookingResult, error) {
	b, err := c.uow.CommandReads().BookingByID(ctx, bookingID)
	if err != nil {
		return nil, shared.TranslateRepoErr(err, booking.ErrBookingNotFound, "failed to load replayed booking")
	}

	view, err := c.bookingQueries.GetByReference(ctx, b.Reference().String())
	if err != nil {
		return nil, err
	}

	result := &CreateBookingResult{Booking: view, IsReplayed: true}
	if b.PaymentIntentID() != "" {
		intent, err := c.payments.GetIntent(ctx, b.PaymentIntentID())
		if err != nil {
			return nil, errs.Mark(err, shared.ErrPaymentProvider)
		}
		result.ClientSecret = intent.ClientSecret
	}
	return result, nil
}

func (c *bookingCommandsImpl) createNewBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	idempotencyKey uuid.UUID,
) (*CreateBookingResult, error) {
	now := c.calendar.Now()

	s, err := shared.NewStay(c.calendar, req.CheckIn, req.CheckOut, req.GuestCount)
	if err != nil {
		return nil, err
	}
	if s.CheckIn().Before(c.calendar.Today()) {
		return nil, ErrCheckInPassed
	}
	guest, err := booking.NewGuest(req.GuestName, req.GuestEmail)
	if err != nil {
		return nil, err
	}

	reads := c.uow.CommandReads()
	priced, err := shared.PriceStay(ctx, reads, c.defaults, s, req.GetCouponCode(), now)
	if err != nil {
		return nil, err
	}
	if priced.Coupon != nil && !priced.Coupon.Valid {
		return nil, errs.Mark(
			errs.Newf("coupon %s: %s", priced.Coupon.Code, errs.Cause(priced.Coupon.Failure).Error()),
			ErrCouponRejected,
		)
	}
	if req.ExpectedTotal != nil {
		if err := pricing.ValidateAmount(*req.ExpectedTotal, priced.Breakdown); err != nil {
			return nil, err
		}
	}

	// Checked once here so no payment intent is opened for dates that are already gone.
	if err := c.checkAvailability(ctx, reads, s, req.OptionIDs); err != nil {
		return nil, err
	}

	ref, err := booking.NewReference(s.CheckIn())
	if err != nil {
		return nil, err
	}
	var couponID *uuid.UUID
	if priced.Coupon != nil {
		id := priced.Coupon.Coupon.ID()
		couponID = &id
	}
	b := booking.New(booking.NewParams{
		Reference: ref,
		Stay:      s,
		Guest:     guest,
		Amounts:   priced.Breakdown,
		OptionIDs: req.OptionIDs,
		CouponID:  couponID,
	}, now)

	var intent *shared.PaymentIntent
	if b.TotalAmount() > 0 {
		intent, err = c.payments.CreateIntent(ctx, shared.PaymentIntentRequest{
			Amount:         b.TotalAmount(),
			Currency:       c.settings.Currency,
			Description:    "Booking " + ref.String(),
			ReceiptEmail:   guest.Email,
			Metadata:       paymentMetadata(b),
			IdempotencyKey: idempotencyKey.String(),
		})
		if err != nil {
			return nil, errs.Mark(err, shared.ErrPaymentProvider)
		}
		b.AttachPaymentIntent(intent.ID, now)
	} else if err := b.AuthorizeWithoutPayment(now); err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Bookings().LockCalendar(ctx); err != nil {
			return shared.StorageError(err, "failed to lock booking calendar")
		}
		if err := c.checkAvailability(ctx, tx.Reads(), s, req.OptionIDs); err != nil {
			return err
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrBookingConflict)
			}
			return shared.StorageError(err, "failed to create booking")
		}
		if err := c.enqueueNotification(ctx, tx, b, shared.TopicBookingCreated, nil); err != nil {
			return err
		}
		if err := tx.Idempotency().MarkCompleted(ctx, idempotencyKey, b.ID()); err != nil {
			return shared.StorageError(err, "failed to complete idempotency key")
		}
		return nil
	})
	if err != nil {
		if intent != nil {
			c.cancelIntentQuietly(ctx, intent.ID)
		}
		return nil, err
	}

	// Read-after-write: Get the complete booking view from read store
	view, err := c.bookingQueries.GetByReference(ctx, ref.String())
	if err != nil {
		return nil, err
	}
	result := &CreateBookingResult{Booking: view}
	if intent != nil {
		result.ClientSecret = intent.ClientSecret
	}
	return result, nil
}

func (c *bookingCommandsImpl) checkAvailability(ctx context.Context, reads shared.CommandReads, s stay.Stay, optionIDs []uuid.UUID) error {
	slots, err := reads.OverlappingSlots(ctx, s.CheckIn(), s.CheckOut())
	if err != nil {
		return shared.StorageError(err, "failed to load overlapping bookings")
	}
	if err := availability.CheckStay(slots, s); err != nil {
		return err
	}

	if len(optionIDs) == 0 {
		return nil
	}
	options, err := reads.ActiveOptions(ctx, optionIDs)
	if err != nil {
		return shared.StorageError(err, "failed to load booking options")
	}
	sameDay, err := reads.SlotsCheckingInOn(ctx, s.CheckIn())
	if err != nil {
		return shared.StorageError(err, "failed to load bookings for check-in day")
	}
	return availability.CheckOptions(s.CheckIn(), optionIDs, options, sameDay)
}

func (c *bookingCommandsImpl) Authorize(
	ctx context.Context,
	reference string,
	req reqdto.AuthorizeBookingRequest,
) (*queries.BookingView, error) {
	ref, err := booking.ParseReference(reference)
	if err != nil {
		return nil, err
	}

	current, err := c.uow.CommandReads().BookingByReference(ctx, ref)
	if err != nil {
		return nil, shared.TranslateRepoErr(err, booking.ErrBookingNotFound, "failed to load booking")
	}
	if current.PaymentIntentID() == "" || current.PaymentIntentID() != req.PaymentIntentID {
		return nil, ErrPaymentIntentMismatch
	}

	intent, err := c.payments.GetIntent(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, errs.Mark(err, shared.ErrPaymentProvider)
	}
	if intent.Status != shared.PaymentRequiresCapture {
		return nil, errs.Wrap(ErrPaymentNotAuthorized, "payment intent status "+string(intent.Status))
	}
	if err := pricing.ValidateAmount(intent.Amount, current.Amounts()); err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().GetForUpdate(ctx, ref)
		if err != nil {
			return shared.TranslateRepoErr(err, booking.ErrBookingNotFound, "failed to lock booking")
		}
		// The client may retry after a timeout.
		if b.Status() == booking.StatusPendingReview {
			return nil
		}
		if err := b.Authorize(c.calendar.Now()); err != nil {
			return err
		}
		if err := tx.Bookings().Save(ctx, b); err != nil {
			return shared.StorageError(err, "failed to save booking")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.bookingQueries.GetByReference(ctx, ref.String())
}

// Approve captures the held payment and redeems the coupon. Capture runs last
// inside the transaction so a failed capture leaves the booking unconfirmed.
func (c *bookingCommandsImpl) Approve(ctx context.Context, reference string) (*queries.BookingView, error) {
	ref, err := booking.ParseReference(reference)
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.calendar.Now()

		b, err := tx.Bookings().GetForUpdate(ctx, ref)
		if err != nil {
			return shared.TranslateRepoErr(err, booking.ErrBookingNotFound, "failed to lock booking")
		}
		if b.Status() == booking.StatusConfirmed {
			return nil
		}
		if err := b.Confirm(now); err != nil {
			return err
		}

		if couponID := b.CouponID(); couponID != nil {
			if _, err := tx.Coupons().Redeem(ctx, *couponID, b.ID(), now); err != nil {
				if infra.IsKind(err, infra.KindConflict) {
					return errs.Mark(err, coupon.ErrUsageLimitReached)
				}
				return shared.StorageError(err, "failed to redeem coupon")
			}
		}

		if err := tx.Bookings().Save(ctx, b); err != nil {
			return shared.StorageError(err, "failed to save booking")
		}
		notice, err := c.reminderNotice(ctx, tx.Reads(), b)
		if err != nil {
			return err
		}
		if err := c.enqueueNotification(ctx, tx, b, shared.TopicBookingConfirmed, notice); err != nil {
			return err
		}

		if b.PaymentIntentID() == "" {
			return nil
		}
		if err := c.payments.CaptureIntent(ctx, b.PaymentIntentID()); err != nil {
			return errs.Mark(err, shared.ErrPaymentProvider)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.bookingQueries.GetByReference(ctx, ref.String())
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, reference string) (*CancelBookingResult, error) {
	ref, err := booking.ParseReference(reference)
	if err != nil {
		return nil, err
	}

	policy, err := shared.ActivePolicyOrDefault(ctx, c.uow.CommandReads())
	if err != nil {
		return nil, err
	}

	var (
		quote     cancellation.Quote
		cancelled *booking.Booking
		captured  bool
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := c.calendar.Now()

		b, err := tx.Bookings().GetForUpdate(ctx, ref)
		if err != nil {
			return shared.TranslateRepoErr(err, booking.ErrBookingNotFound, "failed to lock booking")
		}

		quote = cancellation.CalculateRefund(policy, b.Stay().CheckIn(), c.calendar.Today(), b.TotalAmount())
		if !quote.IsCancellable {
			return errs.Mark(ErrCheckInPassed, booking.ErrNotCancellable)
		}

		captured = b.IsCaptured()
		var refund int64
		if captured {
			refund = quote.RefundAmount
		}
		if err := b.Cancel(refund, now); err != nil {
			return err
		}

		if captured && refund > 0 {
			if err := b.MarkRefunded(now); err != nil {
				return err
			}
		}

		if err := tx.Bookings().Save(ctx, b); err != nil {
			return shared.StorageError(err, "failed to save booking")
		}
		extra := map[string]any{
			"refund_amount":     refund,
			"refund_percentage": quote.RefundPercentage,
		}
		if err := c.enqueueNotification(ctx, tx, b, shared.TopicBookingCancelled, extra); err != nil {
			return err
		}

		// Money moves last so a failed provider call rolls the cancellation back.
		switch {
		case captured && refund > 0:
			if err := c.payments.Refund(ctx, b.PaymentIntentID(), refund); err != nil {
				return errs.Mark(err, shared.ErrPaymentProvider)
			}
		case !captured && b.PaymentIntentID() != "":
			if err := c.payments.CancelIntent(ctx, b.PaymentIntentID()); err != nil {
				return errs.Mark(err, shared.ErrPaymentProvider)
			}
		}
		cancelled = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.bookingQueries.GetByReference(ctx, ref.String())
	if err != nil {
		return nil, err
	}
	return &CancelBookingResult{
		Booking: view,
		Refund:  queries.ToIssuedRefundView(cancelled, quote, captured),
	}, nil
}

// reminderNotice names the first reminder the guest will receive before arrival.
func (c *bookingCommandsImpl) reminderNotice(ctx context.Context, reads shared.CommandReads, b *booking.Booking) (map[string]any, error) {
	schedules, err := reads.ActiveReminderSchedules(ctx)
	if err != nil {
		return nil, shared.StorageError(err, "failed to load reminder schedules")
	}
	s, ok := reminder.Next(schedules, c.calendar.Today().DaysUntil(b.Stay().CheckIn()))
	if !ok {
		return nil, nil
	}
	return map[string]any{
		"next_reminder_template":    s.TemplateKey(),
		"next_reminder_days_before": s.DaysBeforeCheckIn(),
	}, nil
}

func (c *bookingCommandsImpl) enqueueNotification(
	ctx context.Context,
	tx shared.Tx,
	b *booking.Booking,
	topic string,
	extra map[string]any,
) error {
	payload := map[string]any{
		"booking_id":  b.ID(),
		"reference":   b.Reference().String(),
		"guest_email": b.Guest().Email,
		"check_in":    b.Stay().CheckIn().String(),
		"check_out":   b.Stay().CheckOut().String(),
		"type":        topic,
	}
	for k, v := range extra {
		payload[k] = v
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	_, err = tx.Notifications().CreateJob(ctx, shared.NotificationJob{
		Kind:    shared.NotificationKindEmail,
		Topic:   topic,
		Payload: body,
		RunAt:   c.calendar.Now(),
	})
	if err != nil {
		return shared.StorageError(err, "failed to enqueue notification")
	}
	return nil
}

func (c *bookingCommandsImpl) releaseIdempotencyKey(ctx context.Context, key uuid.UUID) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, key)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key", "key", key.String(), "error", err.Error())
	}
}

func (c *bookingCommandsImpl) cancelIntentQuietly(ctx context.Context, intentID string) {
	if err := c.payments.CancelIntent(ctx, intentID); err != nil {
		slog.Warn("failed to cancel payment intent after booking failure",
			"payment_intent_id", intentID,
			"error", err.Error())
		return
	}
	slog.Warn("cancelled payment intent after booking failure", "payment_intent_id", intentID)
}

func (c *bookingCommandsImpl) calculateRequestHash(req reqdto.CreateBookingRequest) string {
	data, _ := json.Marshal(req)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func paymentMetadata(b *booking.Booking) map[string]string {
	a := b.Amounts()
	return map[string]string{
		"booking_reference": b.Reference().String(),
		"check_in":          b.Stay().CheckIn().String(),
		"check_out":         b.Stay().CheckOut().String(),
		"guest_count":       strconv.Itoa(b.Stay().GuestCount()),
		"base_amount":       strconv.FormatInt(a.BaseAmount(), 10),
		"extra_guest_fee":   strconv.FormatInt(a.ExtraGuestFee, 10),
		"cleaning_fee":      strconv.FormatInt(a.CleaningFee, 10),
		"coupon_discount":   strconv.FormatInt(a.Discount, 10),
		"total":             strconv.FormatInt(a.Total, 10),
	}
}
