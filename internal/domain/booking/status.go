package booking

import (
	"slices"

	"rental-booking/internal/pkg/errs"
)

var (
	ErrInvalidStatus     = errs.Kinded("unknown booking status", errs.ErrInvalidInput)
	ErrInvalidTransition = errs.Kinded("booking cannot move to the requested status", errs.ErrPolicyViolation)
)

type Status string

const (
	StatusPending       Status = "pending"
	StatusPendingReview Status = "pending_review"
	StatusConfirmed     Status = "confirmed"
	StatusCancelled     Status = "cancelled"
	StatusRefunded      Status = "refunded"
	StatusCompleted     Status = "completed"
)

var transitions = map[Status][]Status{
	StatusPending:       {StatusPendingReview, StatusConfirmed, StatusCancelled},
	StatusPendingReview: {StatusConfirmed, StatusCancelled},
	StatusConfirmed:     {StatusCancelled, StatusCompleted},
	StatusCancelled:     {StatusRefunded},
}

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPendingReview, StatusConfirmed, StatusCancelled, StatusRefunded, StatusCompleted:
		return true
	default:
		return false
	}
}

// CountsTowardCapacity reports whether the booking consumes option stock for its check-in day.
func (s Status) CountsTowardCapacity() bool {
	return slices.Contains(CapacityStatuses(), s)
}

// BlocksDates reports whether the booking's nights are shown as taken on the calendar.
func (s Status) BlocksDates() bool {
	return slices.Contains(BlockingStatuses(), s)
}

func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(transitions[s], next)
}

func CapacityStatuses() []Status {
	return []Status{StatusPending, StatusPendingReview, StatusConfirmed}
}

func BlockingStatuses() []Status {
	return []Status{StatusPendingReview, StatusConfirmed}
}
