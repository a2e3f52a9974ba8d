package components

import (
	"time"

	"rental-booking/internal/domain/pricing"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/pkg/config"
	"rental-booking/internal/usecase"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(c clock.Clock, loc *time.Location) *clock.Calendar {
		return clock.NewCalendar(c, loc)
	},
	NewDefaultPricingRule,
	NewBookingSettings,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewAdminCommands,
		commands.NewReminderCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		NewPricingQueries,
		queries.NewCouponQueries,
		queries.NewAvailabilityQueries,
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewDefaultPricingRule(cfg config.Config) shared.DefaultPricingRule {
	p := cfg.Pricing
	return shared.DefaultPricingRule(pricing.Rule{
		BasePrice:         p.BasePrice,
		WeekendSurcharge:  p.WeekendSurcharge,
		ExtraGuestCharge:  p.ExtraGuestCharge,
		MaxIncludedGuests: p.MaxIncludedGuests,
		MaxGuests:         p.MaxGuests,
		CleaningFee:       p.CleaningFee,
	})
}

func NewBookingSettings(cfg config.Config) commands.BookingSettings {
	return commands.BookingSettings{
		Currency:       cfg.Stripe.Currency,
		IdempotencyTTL: cfg.Booking.IdempotencyTTL,
	}
}

func NewPricingQueries(
	source shared.PricingSource,
	defaults shared.DefaultPricingRule,
	calendar *clock.Calendar,
	cfg config.Config,
) queries.PricingQueries {
	return queries.NewPricingQueries(source, defaults, calendar, cfg.Stripe.Currency)
}
