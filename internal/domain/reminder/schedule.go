package reminder

import (
	"strings"
	"time"

	"rental-booking/internal/pkg/caldate"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/pkg/threshold"

	"github.com/google/uuid"
)

var (
	ErrTemplateRequired = errs.Kinded("reminder template key is required", errs.ErrInvalidInput)
	ErrNegativeOffset   = errs.Kinded("reminder offset cannot be negative", errs.ErrInvalidInput)
)

// Schedule sends TemplateKey to guests DaysBeforeCheckIn days before they arrive.
type Schedule struct {
	id                uuid.UUID
	templateKey       string
	daysBeforeCheckIn int
	isActive          bool
	createdAt         time.Time
}

func NewSchedule(templateKey string, daysBeforeCheckIn int, now time.Time) (*Schedule, error) {
	templateKey = strings.TrimSpace(templateKey)
	if templateKey == "" {
		return nil, ErrTemplateRequired
	}
	if daysBeforeCheckIn < 0 {
		return nil, ErrNegativeOffset
	}
	return &Schedule{
		id:                uuid.New(),
		templateKey:       templateKey,
		daysBeforeCheckIn: daysBeforeCheckIn,
		isActive:          true,
		createdAt:         now,
	}, nil
}

func ReconstructSchedule(id uuid.UUID, templateKey string, daysBeforeCheckIn int, isActive bool, createdAt time.Time) *Schedule {
	return &Schedule{
		id:                id,
		templateKey:       templateKey,
		daysBeforeCheckIn: daysBeforeCheckIn,
		isActive:          isActive,
		createdAt:         createdAt,
	}
}

func (s *Schedule) Threshold() int { return s.daysBeforeCheckIn }

func (s *Schedule) ID() uuid.UUID          { return s.id }
func (s *Schedule) TemplateKey() string    { return s.templateKey }
func (s *Schedule) DaysBeforeCheckIn() int { return s.daysBeforeCheckIn }
func (s *Schedule) IsActive() bool         { return s.isActive }
func (s *Schedule) CreatedAt() time.Time   { return s.createdAt }

// Due returns the active schedules whose offset lands exactly on today.
func Due(schedules []*Schedule, checkIn, today caldate.Date) []*Schedule {
	days := today.DaysUntil(checkIn)
	var due []*Schedule
	for _, s := range schedules {
		if s.isActive && s.daysBeforeCheckIn == days {
			due = append(due, s)
		}
	}
	return due
}

// Next returns the reminder that governs a booking daysUntil days away:
// the active schedule with the largest offset not exceeding daysUntil.
func Next(schedules []*Schedule, daysUntil int) (*Schedule, bool) {
	return threshold.Highest(active(schedules), daysUntil)
}

// Horizon is how many days ahead a reminder run must look.
func Horizon(schedules []*Schedule) int {
	horizon := 0
	for _, s := range active(schedules) {
		horizon = max(horizon, s.daysBeforeCheckIn)
	}
	return horizon
}

func active(schedules []*Schedule) []*Schedule {
	out := make([]*Schedule, 0, len(schedules))
	for _, s := range schedules {
		if s.isActive {
			out = append(out, s)
		}
	}
	return out
}
