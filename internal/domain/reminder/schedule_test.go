//go:build unit

package reminder_test

import (
	"testing"
	"time"

	"rental-booking/internal/domain/reminder"
	"rental-booking/internal/pkg/caldate"
	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	created = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	today   = caldate.New(2026, 10, 14)
)

func schedules() []*reminder.Schedule {
	return []*reminder.Schedule{
		reminder.ReconstructSchedule(uuid.New(), "arrival_guide", 1, true, created),
		reminder.ReconstructSchedule(uuid.New(), "week_before", 7, true, created),
		reminder.ReconstructSchedule(uuid.New(), "month_before", 30, false, created),
	}
}

func TestDue(t *testing.T) {
	got := reminder.Due(schedules(), today.AddDays(7), today)
	require.Len(t, got, 1)
	assert.Equal(t, "week_before", got[0].TemplateKey())

	assert.Empty(t, reminder.Due(schedules(), today.AddDays(30), today), "inactive schedules are skipped")
	assert.Empty(t, reminder.Due(schedules(), today.AddDays(3), today))
}

func TestNext(t *testing.T) {
	s, ok := reminder.Next(schedules(), 10)
	require.True(t, ok)
	assert.Equal(t, "week_before", s.TemplateKey())

	s, ok = reminder.Next(schedules(), 3)
	require.True(t, ok)
	assert.Equal(t, "arrival_guide", s.TemplateKey())

	_, ok = reminder.Next(schedules(), 0)
	assert.False(t, ok)
}

func TestHorizon(t *testing.T) {
	assert.Equal(t, 7, reminder.Horizon(schedules()))
	assert.Zero(t, reminder.Horizon(nil))
}

func TestNewSchedule(t *testing.T) {
	_, err := reminder.NewSchedule("", 3, created)
	assert.True(t, errs.Is(err, reminder.ErrTemplateRequired))

	_, err = reminder.NewSchedule("x", -1, created)
	assert.True(t, errs.Is(err, reminder.ErrNegativeOffset))

	s, err := reminder.NewSchedule(" checkin_info ", 2, created)
	require.NoError(t, err)
	assert.Equal(t, "checkin_info", s.TemplateKey())
	assert.True(t, s.IsActive())
}
