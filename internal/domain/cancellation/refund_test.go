//go:build unit

package cancellation_test

import (
	"testing"
	"time"

	"rental-booking/internal/domain/cancellation"
	"rental-booking/internal/pkg/caldate"
	"rental-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = caldate.New(2026, 10, 14)

func TestCalculateRefundDefaultPolicy(t *testing.T) {
	tests := []struct {
		name            string
		offset          int
		wantPct         int
		wantRefund      int64
		wantCancellable bool
	}{
		{name: "well ahead", offset: 30, wantPct: 100, wantRefund: 41000, wantCancellable: true},
		{name: "five days out", offset: 5, wantPct: 100, wantRefund: 41000, wantCancellable: true},
		{name: "four days out", offset: 4, wantPct: 50, wantRefund: 20500, wantCancellable: true},
		{name: "three days out", offset: 3, wantPct: 50, wantRefund: 20500, wantCancellable: true},
		{name: "two days out", offset: 2, wantPct: 0, wantRefund: 0, wantCancellable: true},
		{name: "check-in day", offset: 0, wantPct: 0, wantRefund: 0, wantCancellable: true},
		{name: "after check-in", offset: -1, wantPct: 0, wantRefund: 0, wantCancellable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := cancellation.CalculateRefund(nil, today.AddDays(tt.offset), today, 41000)

			assert.Equal(t, tt.offset, q.DaysBeforeCheckIn)
			assert.Equal(t, tt.wantPct, q.RefundPercentage)
			assert.Equal(t, tt.wantRefund, q.RefundAmount)
			assert.Equal(t, 41000-tt.wantRefund, q.NonRefundableAmount)
			assert.Equal(t, tt.wantCancellable, q.IsCancellable)
			assert.Equal(t, cancellation.DefaultPolicyName, q.PolicyName)
		})
	}
}

func TestCalculateRefundCustomPolicy(t *testing.T) {
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	// rules deliberately unsorted
	policy, err := cancellation.NewPolicy("strict", []cancellation.Rule{
		{DaysBeforeCheckIn: 7, RefundPercentage: 30},
		{DaysBeforeCheckIn: 14, RefundPercentage: 80},
	}, now)
	require.NoError(t, err)

	q := cancellation.CalculateRefund(policy, today.AddDays(20), today, 10001)
	assert.Equal(t, 80, q.RefundPercentage)
	assert.Equal(t, int64(8000), q.RefundAmount, "refund is floored")
	assert.Equal(t, int64(2001), q.NonRefundableAmount)
	require.NotNil(t, q.AppliedRule)
	assert.Equal(t, 14, q.AppliedRule.DaysBeforeCheckIn)

	q = cancellation.CalculateRefund(policy, today.AddDays(8), today, 10000)
	assert.Equal(t, 30, q.RefundPercentage)

	q = cancellation.CalculateRefund(policy, today.AddDays(6), today, 10000)
	assert.Zero(t, q.RefundPercentage, "no qualifying rule means no refund")
	assert.Nil(t, q.AppliedRule)
	assert.True(t, q.IsCancellable)
}

func TestNewPolicy(t *testing.T) {
	now := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		policy string
		rules  []cancellation.Rule
		errIs  error
	}{
		{name: "missing name", policy: " ", rules: []cancellation.Rule{{DaysBeforeCheckIn: 5, RefundPercentage: 100}}, errIs: cancellation.ErrPolicyNameRequired},
		{name: "no rules", policy: "p", errIs: cancellation.ErrNoRules},
		{name: "percentage above 100", policy: "p", rules: []cancellation.Rule{{DaysBeforeCheckIn: 5, RefundPercentage: 101}}, errIs: cancellation.ErrInvalidRefundPercent},
		{name: "negative days", policy: "p", rules: []cancellation.Rule{{DaysBeforeCheckIn: -1, RefundPercentage: 10}}, errIs: cancellation.ErrNegativeThreshold},
		{name: "duplicate days", policy: "p", rules: []cancellation.Rule{{DaysBeforeCheckIn: 3, RefundPercentage: 10}, {DaysBeforeCheckIn: 3, RefundPercentage: 20}}, errIs: cancellation.ErrDuplicateThreshold},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cancellation.NewPolicy(tt.policy, tt.rules, now)
			assert.True(t, errs.Is(err, tt.errIs), "got %v", err)
		})
	}
}
