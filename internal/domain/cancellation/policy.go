package cancellation

import (
	"strings"
	"time"

	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrPolicyNameRequired   = errs.Kinded("policy name is required", errs.ErrInvalidInput)
	ErrNoRules              = errs.Kinded("policy needs at least one rule", errs.ErrInvalidInput)
	ErrInvalidRefundPercent = errs.Kinded("refund percentage must be between 0 and 100", errs.ErrInvalidInput)
	ErrNegativeThreshold    = errs.Kinded("days before check-in cannot be negative", errs.ErrInvalidInput)
	ErrDuplicateThreshold   = errs.Kinded("each days-before threshold may appear once", errs.ErrInvalidInput)
)

const DefaultPolicyName = "standard"

// Rule grants RefundPercentage when cancelling at least DaysBeforeCheckIn days ahead.
type Rule struct {
	DaysBeforeCheckIn int
	RefundPercentage  int
}

func (r Rule) Threshold() int {
	return r.DaysBeforeCheckIn
}

type Policy struct {
	id        uuid.UUID
	name      string
	isActive  bool
	rules     []Rule
	createdAt time.Time
}

// NewPolicy builds a policy that becomes the active one once saved.
func NewPolicy(name string, rules []Rule, now time.Time) (*Policy, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPolicyNameRequired
	}
	if len(rules) == 0 {
		return nil, ErrNoRules
	}
	seen := make(map[int]struct{}, len(rules))
	for _, r := range rules {
		if r.RefundPercentage < 0 || r.RefundPercentage > 100 {
			return nil, ErrInvalidRefundPercent
		}
		if r.DaysBeforeCheckIn < 0 {
			return nil, ErrNegativeThreshold
		}
		if _, dup := seen[r.DaysBeforeCheckIn]; dup {
			return nil, ErrDuplicateThreshold
		}
		seen[r.DaysBeforeCheckIn] = struct{}{}
	}
	return &Policy{
		id:        uuid.New(),
		name:      name,
		isActive:  true,
		rules:     append([]Rule(nil), rules...),
		createdAt: now,
	}, nil
}

func ReconstructPolicy(id uuid.UUID, name string, isActive bool, rules []Rule, createdAt time.Time) *Policy {
	return &Policy{id: id, name: name, isActive: isActive, rules: rules, createdAt: createdAt}
}

// DefaultPolicy applies when no policy has been activated:
// full refund from 5 days out, half from 3 days out, nothing after that.
func DefaultPolicy() *Policy {
	return &Policy{
		name:     DefaultPolicyName,
		isActive: true,
		rules: []Rule{
			{DaysBeforeCheckIn: 5, RefundPercentage: 100},
			{DaysBeforeCheckIn: 3, RefundPercentage: 50},
			{DaysBeforeCheckIn: 0, RefundPercentage: 0},
		},
	}
}

func (p *Policy) ID() uuid.UUID        { return p.id }
func (p *Policy) Name() string         { return p.name }
func (p *Policy) IsActive() bool       { return p.isActive }
func (p *Policy) Rules() []Rule        { return p.rules }
func (p *Policy) CreatedAt() time.Time { return p.createdAt }
