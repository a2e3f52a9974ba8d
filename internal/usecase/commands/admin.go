package commands

import (
	"context"

	"rental-booking/internal/domain/booking"
	"rental-booking/internal/domain/cancellation"
	"rental-booking/internal/domain/coupon"
	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/domain/reminder"
	reqdto "rental-booking/internal/handler/dto/request"
	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

var (
	ErrCouponCodeTaken   = errs.Kinded("coupon code already exists", errs.ErrConflict)
	ErrOptionNameTaken   = errs.Kinded("booking option already exists", errs.ErrConflict)
	ErrScheduleDuplicate = errs.Kinded("a reminder with this template and offset already exists", errs.ErrConflict)
)

type AdminCommands interface {
	CreateCoupon(ctx context.Context, req reqdto.CreateCouponRequest) (*queries.CouponView, error)
	DeactivateCoupon(ctx context.Context, id uuid.UUID) error
	UpdatePricingRule(ctx context.Context, req reqdto.PricingRuleRequest) (*queries.PricingRuleView, error)
	SaveCancellationPolicy(ctx context.Context, req reqdto.CancellationPolicyRequest) (*queries.CancellationPolicyView, error)
	CreateOption(ctx context.Context, req reqdto.CreateOptionRequest) (*queries.OptionView, error)
	CreateReminderSchedule(ctx context.Context, req reqdto.CreateReminderScheduleRequest) (*queries.ReminderScheduleView, error)
}

type adminCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewAdminCommands(uow shared.UnitOfWork, clk clock.Clock) AdminCommands {
	return &adminCommandsImpl{uow: uow, clock: clk}
}

func (a *adminCommandsImpl) CreateCoupon(ctx context.Context, req reqdto.CreateCouponRequest) (*queries.CouponView, error) {
	discountType, err := coupon.NewDiscountType(req.DiscountType)
	if err != nil {
		return nil, err
	}

	c, err := coupon.NewCoupon(coupon.Params{
		Code:          req.Code,
		DiscountType:  discountType,
		DiscountValue: req.DiscountValue,
		MaxDiscount:   req.MaxDiscount,
		MinAmount:     req.MinAmount,
		UsageLimit:    req.UsageLimit,
		ValidFrom:     req.ValidFrom,
		ValidUntil:    req.ValidUntil,
	}, a.clock.Now())
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Coupons().Create(ctx, c); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrCouponCodeTaken)
			}
			return shared.StorageError(err, "failed to create coupon")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queries.ToCouponView(c), nil
}

func (a *adminCommandsImpl) DeactivateCoupon(ctx context.Context, id uuid.UUID) error {
	return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		err := tx.Coupons().Deactivate(ctx, id, a.clock.Now())
		return shared.TranslateRepoErr(err, coupon.ErrCouponNotFound, "failed to deactivate coupon")
	})
}

func (a *adminCommandsImpl) UpdatePricingRule(ctx context.Context, req reqdto.PricingRuleRequest) (*queries.PricingRuleView, error) {
	var rule pricing.Rule
	if err := copier.Copy(&rule, &req); err != nil {
		return nil, errs.Wrap(err, "failed to map pricing rule")
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Settings().SavePricingRule(ctx, rule, a.clock.Now()); err != nil {
			return shared.StorageError(err, "failed to save pricing rule")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queries.ToPricingRuleView(rule)
}

func (a *adminCommandsImpl) SaveCancellationPolicy(ctx context.Context, req reqdto.CancellationPolicyRequest) (*queries.CancellationPolicyView, error) {
	rules := make([]cancellation.Rule, 0, len(req.Rules))
	for _, r := range req.Rules {
		rules = append(rules, cancellation.Rule{
			DaysBeforeCheckIn: r.DaysBeforeCheckIn,
			RefundPercentage:  r.RefundPercentage,
		})
	}

	policy, err := cancellation.NewPolicy(req.Name, rules, a.clock.Now())
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Settings().ActivatePolicy(ctx, policy); err != nil {
			return shared.StorageError(err, "failed to activate cancellation policy")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queries.ToCancellationPolicyView(policy), nil
}

func (a *adminCommandsImpl) CreateOption(ctx context.Context, req reqdto.CreateOptionRequest) (*queries.OptionView, error) {
	option, err := booking.NewOption(req.Name, req.DailyLimit, a.clock.Now())
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Settings().CreateOption(ctx, option); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrOptionNameTaken)
			}
			return shared.StorageError(err, "failed to create booking option")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queries.ToOptionView(option), nil
}

func (a *adminCommandsImpl) CreateReminderSchedule(ctx context.Context, req reqdto.CreateReminderScheduleRequest) (*queries.ReminderScheduleView, error) {
	schedule, err := reminder.NewSchedule(req.TemplateKey, req.DaysBeforeCheckIn, a.clock.Now())
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Settings().CreateReminderSchedule(ctx, schedule); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, ErrScheduleDuplicate)
			}
			return shared.StorageError(err, "failed to create reminder schedule")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return queries.ToReminderScheduleView(schedule), nil
}
