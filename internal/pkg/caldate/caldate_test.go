//go:build unit

package caldate_test

import (
	"encoding/json"
	"testing"
	"time"

	"rental-booking/internal/pkg/caldate"
	"rental-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jst = time.FixedZone("Asia/Tokyo", 9*60*60)

type epochStamp struct{ sec int64 }

func (e epochStamp) ToTime() time.Time { return time.Unix(e.sec, 0) }

func TestNormalize(t *testing.T) {
	// 2026-03-06 16:00 UTC is already 2026-03-07 in JST
	lateUTC := time.Date(2026, 3, 6, 16, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input any
		want  caldate.Date
		errIs error
	}{
		{name: "date string", input: "2026-03-07", want: caldate.New(2026, 3, 7)},
		{name: "rfc3339 string is shifted into zone", input: "2026-03-06T16:00:00Z", want: caldate.New(2026, 3, 7)},
		{name: "wall clock string read in zone", input: "2026-03-06T23:30:00", want: caldate.New(2026, 3, 6)},
		{name: "time value", input: lateUTC, want: caldate.New(2026, 3, 7)},
		{name: "time pointer", input: &lateUTC, want: caldate.New(2026, 3, 7)},
		{name: "epoch-like object", input: epochStamp{sec: lateUTC.Unix()}, want: caldate.New(2026, 3, 7)},
		{name: "date passes through", input: caldate.New(2026, 1, 1), want: caldate.New(2026, 1, 1)},
		{name: "empty string", input: "  ", errIs: caldate.ErrEmptyDate},
		{name: "nil", input: nil, errIs: caldate.ErrEmptyDate},
		{name: "garbage", input: "07/03/2026", errIs: caldate.ErrMalformedDate},
		{name: "unsupported type", input: 42, errIs: caldate.ErrUnsupportedDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := caldate.Normalize(tt.input, jst)
			if tt.errIs != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tt.errIs), "got %v", err)
				assert.True(t, errs.Is(err, errs.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestDateArithmetic(t *testing.T) {
	d := caldate.New(2026, 2, 27)

	assert.Equal(t, "2026-03-01", d.AddDays(2).String())
	assert.Equal(t, 2, d.DaysUntil(d.AddDays(2)))
	assert.Equal(t, -3, d.DaysUntil(d.AddDays(-3)))
	assert.Equal(t, time.Friday, d.Weekday())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
}

func TestDayBounds(t *testing.T) {
	d := caldate.New(2026, 5, 1)

	start := d.StartOfDay(jst)
	end := d.EndOfDay(jst)

	assert.Equal(t, time.Date(2026, 4, 30, 15, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, time.Date(2026, 5, 1, 14, 59, 59, 999999999, time.UTC), end.UTC())
	assert.True(t, caldate.FromTime(end, jst).Equal(d))
}

func TestToday(t *testing.T) {
	now := time.Date(2026, 12, 31, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2027-01-01", caldate.Today(now, jst).String())
	assert.Equal(t, "2026-12-31", caldate.Today(now, time.UTC).String())
}

func TestJSON(t *testing.T) {
	type payload struct {
		Day caldate.Date `json:"day"`
	}

	b, err := json.Marshal(payload{Day: caldate.New(2026, 7, 4)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":"2026-07-04"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"day":"2026-08-15"}`), &p))
	assert.Equal(t, "2026-08-15", p.Day.String())

	err = json.Unmarshal([]byte(`{"day":"15-08-2026"}`), &p)
	assert.True(t, errs.Is(err, caldate.ErrMalformedDate))
}
