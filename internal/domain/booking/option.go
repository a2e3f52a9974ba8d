package booking

import (
	"strings"
	"time"

	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrOptionNameRequired = errs.Kinded("option name is required", errs.ErrInvalidInput)
	ErrInvalidDailyLimit  = errs.Kinded("option daily limit must be positive", errs.ErrInvalidInput)
)

// Option is a capacity-limited add-on such as a barbecue set, counted per check-in day.
type Option struct {
	id         uuid.UUID
	name       string
	dailyLimit int
	isActive   bool
	createdAt  time.Time
}

func NewOption(name string, dailyLimit int, now time.Time) (*Option, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrOptionNameRequired
	}
	if dailyLimit < 1 {
		return nil, ErrInvalidDailyLimit
	}
	return &Option{
		id:         uuid.New(),
		name:       name,
		dailyLimit: dailyLimit,
		isActive:   true,
		createdAt:  now,
	}, nil
}

func ReconstructOption(id uuid.UUID, name string, dailyLimit int, isActive bool, createdAt time.Time) *Option {
	return &Option{
		id:         id,
		name:       name,
		dailyLimit: dailyLimit,
		isActive:   isActive,
		createdAt:  createdAt,
	}
}

func (o *Option) ID() uuid.UUID        { return o.id }
func (o *Option) Name() string         { return o.name }
func (o *Option) DailyLimit() int      { return o.dailyLimit }
func (o *Option) IsActive() bool       { return o.isActive }
func (o *Option) CreatedAt() time.Time { return o.createdAt }
