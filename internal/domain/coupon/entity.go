package coupon

import (
	"fmt"
	"time"

	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrCouponNotFound    = errs.Kinded("coupon not found", errs.ErrNotFound)
	ErrCouponInactive    = errs.Kinded("coupon is no longer active", errs.ErrPolicyViolation)
	ErrCouponNotYetValid = errs.Kinded("coupon is not yet valid", errs.ErrPolicyViolation)
	ErrCouponExpired     = errs.Kinded("coupon has expired", errs.ErrPolicyViolation)
	ErrUsageLimitReached = errs.Kinded("coupon usage limit reached", errs.ErrPolicyViolation)
	ErrBelowMinimum      = errs.Kinded("order total is below the coupon minimum", errs.ErrPolicyViolation)
	ErrInvalidValidity   = errs.Kinded("coupon validity window is empty", errs.ErrInvalidInput)
	ErrInvalidUsageLimit = errs.Kinded("usage limit must be positive", errs.ErrInvalidInput)
	ErrInvalidMinimum    = errs.Kinded("minimum amount and max discount cannot be negative", errs.ErrInvalidInput)
)

// MinimumAmountError carries the threshold so callers can tell the guest how much to add.
type MinimumAmountError struct {
	Minimum int64
}

func (e *MinimumAmountError) Error() string {
	return fmt.Sprintf("order total is below the coupon minimum of %d yen", e.Minimum)
}

type Coupon struct {
	id            uuid.UUID
	code          Code
	isActive      bool
	discountType  DiscountType
	discountValue float64
	maxDiscount   *int64
	minAmount     *int64
	usageLimit    *int
	usageCount    int
	validFrom     time.Time
	validUntil    time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

type Params struct {
	ID            uuid.UUID
	Code          string
	IsActive      bool
	DiscountType  DiscountType
	DiscountValue float64
	MaxDiscount   *int64
	MinAmount     *int64
	UsageLimit    *int
	UsageCount    int
	ValidFrom     time.Time
	ValidUntil    time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewCoupon validates an administrator-defined coupon. A new coupon starts active and unused.
func NewCoupon(p Params, now time.Time) (*Coupon, error) {
	code, err := NewCode(p.Code)
	if err != nil {
		return nil, err
	}

	switch p.DiscountType {
	case DiscountPercentage:
		if !(p.DiscountValue >= 0 && p.DiscountValue <= 100) {
			return nil, ErrInvalidDiscountPercent
		}
	case DiscountFixed:
		if !(p.DiscountValue >= 0) {
			return nil, ErrInvalidDiscountAmount
		}
		if p.DiscountValue > MaxFixedDiscount {
			return nil, ErrDiscountTooLarge
		}
	default:
		return nil, ErrInvalidDiscountType
	}

	if !p.ValidFrom.Before(p.ValidUntil) {
		return nil, ErrInvalidValidity
	}
	if p.UsageLimit != nil && *p.UsageLimit < 1 {
		return nil, ErrInvalidUsageLimit
	}
	if (p.MinAmount != nil && *p.MinAmount < 0) || (p.MaxDiscount != nil && *p.MaxDiscount < 0) {
		return nil, ErrInvalidMinimum
	}

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Coupon{
		id:            id,
		code:          code,
		isActive:      true,
		discountType:  p.DiscountType,
		discountValue: p.DiscountValue,
		maxDiscount:   p.MaxDiscount,
		minAmount:     p.MinAmount,
		usageLimit:    p.UsageLimit,
		validFrom:     p.ValidFrom,
		validUntil:    p.ValidUntil,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Reconstruct rebuilds a stored coupon without re-running creation rules.
func Reconstruct(p Params) *Coupon {
	return &Coupon{
		id:            p.ID,
		code:          Code(p.Code),
		isActive:      p.IsActive,
		discountType:  p.DiscountType,
		discountValue: p.DiscountValue,
		maxDiscount:   p.MaxDiscount,
		minAmount:     p.MinAmount,
		usageLimit:    p.UsageLimit,
		usageCount:    p.UsageCount,
		validFrom:     p.ValidFrom,
		validUntil:    p.ValidUntil,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}
}

// Validate applies the redemption checks in order: active, validity window,
// usage limit, minimum total.
func (c *Coupon) Validate(now time.Time, total int64) error {
	if !c.isActive {
		return ErrCouponInactive
	}
	if now.Before(c.validFrom) {
		return ErrCouponNotYetValid
	}
	if now.After(c.validUntil) {
		return ErrCouponExpired
	}
	if c.UsageExhausted() {
		return ErrUsageLimitReached
	}
	if c.minAmount != nil && total < *c.minAmount {
		return errs.Mark(&MinimumAmountError{Minimum: *c.minAmount}, ErrBelowMinimum)
	}
	return nil
}

func (c *Coupon) UsageExhausted() bool {
	return c.usageLimit != nil && c.usageCount >= *c.usageLimit
}

// DiscountFor computes the discount on total without checking validity.
func (c *Coupon) DiscountFor(total int64) Discount {
	if c.discountType == DiscountPercentage {
		return percentageDiscount(total, c.discountValue, c.maxDiscount)
	}
	return fixedDiscount(total, c.discountValue)
}

func (c *Coupon) Deactivate(now time.Time) {
	c.isActive = false
	c.updatedAt = now
}

func (c *Coupon) ID() uuid.UUID              { return c.id }
func (c *Coupon) Code() Code                 { return c.code }
func (c *Coupon) IsActive() bool             { return c.isActive }
func (c *Coupon) DiscountType() DiscountType { return c.discountType }
func (c *Coupon) DiscountValue() float64     { return c.discountValue }
func (c *Coupon) MaxDiscount() *int64        { return c.maxDiscount }
func (c *Coupon) MinAmount() *int64          { return c.minAmount }
func (c *Coupon) UsageLimit() *int           { return c.usageLimit }
func (c *Coupon) UsageCount() int            { return c.usageCount }
func (c *Coupon) ValidFrom() time.Time       { return c.validFrom }
func (c *Coupon) ValidUntil() time.Time      { return c.validUntil }
func (c *Coupon) CreatedAt() time.Time       { return c.createdAt }
func (c *Coupon) UpdatedAt() time.Time       { return c.updatedAt }
