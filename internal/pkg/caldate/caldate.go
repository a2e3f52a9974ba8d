// Package caldate models calendar days independent of time-of-day and zone.
//
// Every date that enters the booking core passes through Normalize, so the
// pricing, availability and refund rules only ever see canonical days.
package caldate

import (
	"encoding/json"
	"strings"
	"time"

	"rental-booking/internal/pkg/errs"
)

const Layout = "2006-01-02"

var (
	ErrEmptyDate       = errs.Kinded("date is required", errs.ErrInvalidInput)
	ErrUnsupportedDate = errs.Kinded("unsupported date representation", errs.ErrInvalidInput)
	ErrMalformedDate   = errs.Kinded("date must be YYYY-MM-DD or RFC 3339", errs.ErrInvalidInput)
)

// Date is stored as midnight UTC so day arithmetic never crosses a DST edge.
type Date struct {
	t time.Time
}

// Timestamp is satisfied by epoch-like values from document stores and SDKs.
type Timestamp interface {
	ToTime() time.Time
}

type protoTimestamp interface {
	AsTime() time.Time
}

func New(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime takes the calendar day of t as observed in loc.
func FromTime(t time.Time, loc *time.Location) Date {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return New(y, m, d)
}

func Today(now time.Time, loc *time.Location) Date {
	return FromTime(now, loc)
}

func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrEmptyDate
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Date{}, errs.Mark(errs.Wrap(err, "parse date"), ErrMalformedDate)
	}
	return Date{t: t}, nil
}

// Normalize accepts the representations clients and stores hand us and
// reduces them to a calendar day in loc.
func Normalize(v any, loc *time.Location) (Date, error) {
	switch val := v.(type) {
	case Date:
		if val.IsZero() {
			return Date{}, ErrEmptyDate
		}
		return val, nil
	case time.Time:
		if val.IsZero() {
			return Date{}, ErrEmptyDate
		}
		return FromTime(val, loc), nil
	case *time.Time:
		if val == nil || val.IsZero() {
			return Date{}, ErrEmptyDate
		}
		return FromTime(*val, loc), nil
	case string:
		return normalizeString(val, loc)
	case Timestamp:
		return FromTime(val.ToTime(), loc), nil
	case protoTimestamp:
		return FromTime(val.AsTime(), loc), nil
	case nil:
		return Date{}, ErrEmptyDate
	default:
		return Date{}, ErrUnsupportedDate
	}
}

func normalizeString(s string, loc *time.Location) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, ErrEmptyDate
	}
	if len(s) == len(Layout) {
		return Parse(s)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return FromTime(t, loc), nil
	}
	// Local wall-clock timestamps without an offset are read in the business zone.
	zone := loc
	if zone == nil {
		zone = time.UTC
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, zone); err == nil {
		return FromTime(t, zone), nil
	}
	return Date{}, ErrMalformedDate
}

func (d Date) IsZero() bool {
	return d.t.IsZero()
}

func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysUntil returns other minus d in whole days; negative when other is earlier.
func (d Date) DaysUntil(other Date) int {
	return int(other.t.Sub(d.t) / (24 * time.Hour))
}

func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }

func (d Date) Compare(other Date) int {
	return d.t.Compare(other.t)
}

// StartOfDay is the first instant of the day in loc.
func (d Date) StartOfDay(loc *time.Location) time.Time {
	y, m, day := d.t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

// EndOfDay is the last representable instant of the day in loc.
func (d Date) EndOfDay(loc *time.Location) time.Time {
	return d.AddDays(1).StartOfDay(loc).Add(-time.Nanosecond)
}

// Time exposes the UTC midnight value, suitable for DATE columns.
func (d Date) Time() time.Time {
	return d.t
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(Layout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errs.Mark(err, ErrMalformedDate)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
