package clock

import (
	"time"

	"rental-booking/internal/pkg/caldate"
)

type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

type MockClock struct {
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.currentTime = t
}

func (c *MockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}

// Calendar anchors "today" to the business time zone of the property.
type Calendar struct {
	clock Clock
	loc   *time.Location
}

func NewCalendar(c Clock, loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	return &Calendar{clock: c, loc: loc}
}

func (c *Calendar) Now() time.Time {
	return c.clock.Now()
}

func (c *Calendar) Today() caldate.Date {
	return caldate.Today(c.clock.Now(), c.loc)
}

func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Normalize turns any accepted date representation into a day in the business zone.
func (c *Calendar) Normalize(v any) (caldate.Date, error) {
	return caldate.Normalize(v, c.loc)
}
