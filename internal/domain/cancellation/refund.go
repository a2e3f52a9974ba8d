package cancellation

import (
	"rental-booking/internal/pkg/caldate"
	"rental-booking/internal/pkg/threshold"
)

type Quote struct {
	PolicyName          string
	DaysBeforeCheckIn   int
	RefundPercentage    int
	RefundAmount        int64
	NonRefundableAmount int64
	IsCancellable       bool
	AppliedRule         *Rule
}

// CalculateRefund evaluates policy for a booking of total checking in on checkIn,
// as seen on today. A nil policy means the default one.
func CalculateRefund(policy *Policy, checkIn, today caldate.Date, total int64) Quote {
	if policy == nil {
		policy = DefaultPolicy()
	}

	days := today.DaysUntil(checkIn)
	q := Quote{
		PolicyName:        policy.Name(),
		DaysBeforeCheckIn: days,
		IsCancellable:     days >= 0,
	}

	if rule, ok := threshold.Highest(policy.Rules(), days); ok {
		q.RefundPercentage = rule.RefundPercentage
		q.AppliedRule = &rule
	}

	q.RefundAmount = total * int64(q.RefundPercentage) / 100
	q.NonRefundableAmount = total - q.RefundAmount
	return q
}
