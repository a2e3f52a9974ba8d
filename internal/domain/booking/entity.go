package booking

import (
	"regexp"
	"strings"
	"time"

	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/domain/stay"
	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound   = errs.Kinded("booking not found", errs.ErrNotFound)
	ErrGuestNameRequired = errs.Kinded("guest name is required", errs.ErrInvalidInput)
	ErrInvalidEmail      = errs.Kinded("invalid email format", errs.ErrInvalidInput)
	ErrNotCancellable    = errs.Kinded("booking can no longer be cancelled", errs.ErrPolicyViolation)
	ErrPaymentNotReady   = errs.Kinded("payment has not been authorized", errs.ErrPolicyViolation)
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type Guest struct {
	Name  string
	Email string
}

func NewGuest(name, email string) (Guest, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return Guest{}, ErrGuestNameRequired
	}
	if !emailRegex.MatchString(email) {
		return Guest{}, ErrInvalidEmail
	}
	return Guest{Name: name, Email: email}, nil
}

type Booking struct {
	id              uuid.UUID
	reference       Reference
	stay            stay.Stay
	guest           Guest
	status          Status
	amounts         pricing.Breakdown
	optionIDs       []uuid.UUID
	couponID        *uuid.UUID
	paymentIntentID string
	authorizedAt    *time.Time
	cancelledAt     *time.Time
	refundAmount    *int64
	createdAt       time.Time
	updatedAt       time.Time
}

type NewParams struct {
	Reference Reference
	Stay      stay.Stay
	Guest     Guest
	Amounts   pricing.Breakdown
	OptionIDs []uuid.UUID
	CouponID  *uuid.UUID
}

// New creates a booking awaiting payment.
func New(p NewParams, now time.Time) *Booking {
	return &Booking{
		id:        uuid.New(),
		reference: p.Reference,
		stay:      p.Stay,
		guest:     p.Guest,
		status:    StatusPending,
		amounts:   p.Amounts,
		optionIDs: append([]uuid.UUID(nil), p.OptionIDs...),
		couponID:  p.CouponID,
		createdAt: now,
		updatedAt: now,
	}
}

type ReconstructParams struct {
	ID              uuid.UUID
	Reference       Reference
	Stay            stay.Stay
	Guest           Guest
	Status          Status
	Amounts         pricing.Breakdown
	OptionIDs       []uuid.UUID
	CouponID        *uuid.UUID
	PaymentIntentID string
	AuthorizedAt    *time.Time
	CancelledAt     *time.Time
	RefundAmount    *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func Reconstruct(p ReconstructParams) *Booking {
	return &Booking{
		id:              p.ID,
		reference:       p.Reference,
		stay:            p.Stay,
		guest:           p.Guest,
		status:          p.Status,
		amounts:         p.Amounts,
		optionIDs:       p.OptionIDs,
		couponID:        p.CouponID,
		paymentIntentID: p.PaymentIntentID,
		authorizedAt:    p.AuthorizedAt,
		cancelledAt:     p.CancelledAt,
		refundAmount:    p.RefundAmount,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}
}

func (b *Booking) AttachPaymentIntent(id string, now time.Time) {
	b.paymentIntentID = id
	b.updatedAt = now
}

// Authorize records that the card hold succeeded; the booking now awaits host review.
func (b *Booking) Authorize(now time.Time) error {
	if b.paymentIntentID == "" {
		return ErrPaymentNotReady
	}
	if err := b.transition(StatusPendingReview, now); err != nil {
		return err
	}
	b.authorizedAt = &now
	return nil
}

// AuthorizeWithoutPayment is Authorize for a booking discounted to zero, where no card hold exists.
func (b *Booking) AuthorizeWithoutPayment(now time.Time) error {
	if b.amounts.Total != 0 {
		return ErrPaymentNotReady
	}
	if err := b.transition(StatusPendingReview, now); err != nil {
		return err
	}
	b.authorizedAt = &now
	return nil
}

func (b *Booking) Confirm(now time.Time) error {
	if b.authorizedAt == nil {
		return ErrPaymentNotReady
	}
	return b.transition(StatusConfirmed, now)
}

func (b *Booking) Cancel(refundAmount int64, now time.Time) error {
	if !b.status.CanTransitionTo(StatusCancelled) {
		return errs.Mark(errs.Wrap(ErrNotCancellable, string(b.status)), ErrInvalidTransition)
	}
	if err := b.transition(StatusCancelled, now); err != nil {
		return err
	}
	b.cancelledAt = &now
	b.refundAmount = &refundAmount
	return nil
}

func (b *Booking) MarkRefunded(now time.Time) error {
	return b.transition(StatusRefunded, now)
}

func (b *Booking) Complete(now time.Time) error {
	return b.transition(StatusCompleted, now)
}

// IsCaptured reports whether money has actually been taken from the guest.
func (b *Booking) IsCaptured() bool {
	return b.status == StatusConfirmed || b.status == StatusCompleted
}

func (b *Booking) transition(next Status, now time.Time) error {
	if !b.status.CanTransitionTo(next) {
		return errs.Wrap(ErrInvalidTransition, string(b.status)+" -> "+string(next))
	}
	b.status = next
	b.updatedAt = now
	return nil
}

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) Reference() Reference         { return b.reference }
func (b *Booking) Stay() stay.Stay              { return b.stay }
func (b *Booking) Guest() Guest                 { return b.guest }
func (b *Booking) Status() Status               { return b.status }
func (b *Booking) Amounts() pricing.Breakdown   { return b.amounts }
func (b *Booking) TotalAmount() int64           { return b.amounts.Total }
func (b *Booking) OptionIDs() []uuid.UUID       { return b.optionIDs }
func (b *Booking) CouponID() *uuid.UUID         { return b.couponID }
func (b *Booking) PaymentIntentID() string      { return b.paymentIntentID }
func (b *Booking) AuthorizedAt() *time.Time     { return b.authorizedAt }
func (b *Booking) CancelledAt() *time.Time      { return b.cancelledAt }
func (b *Booking) RefundAmount() *int64         { return b.refundAmount }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }
