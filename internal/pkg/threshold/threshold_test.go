//go:build unit

package threshold_test

import (
	"testing"

	"rental-booking/internal/pkg/threshold"

	"github.com/stretchr/testify/assert"
)

type tier struct {
	days  int
	label string
}

func (t tier) Threshold() int { return t.days }

func TestHighest(t *testing.T) {
	tiers := []tier{{0, "none"}, {7, "week"}, {3, "short"}}

	tests := []struct {
		name  string
		value int
		want  string
		found bool
	}{
		{name: "above every threshold", value: 30, want: "week", found: true},
		{name: "exactly on a threshold", value: 3, want: "short", found: true},
		{name: "between thresholds", value: 5, want: "short", found: true},
		{name: "lowest threshold", value: 0, want: "none", found: true},
		{name: "below every threshold", value: -1, found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := threshold.Highest(tiers, tt.value)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got.label)
			}
		})
	}

	assert.Equal(t, "none", tiers[0].label, "input must not be reordered")
}

func TestHighestEmpty(t *testing.T) {
	_, ok := threshold.Highest([]tier(nil), 10)
	assert.False(t, ok)
}

func TestDescending(t *testing.T) {
	got := threshold.Descending([]tier{{1, "a"}, {5, "b"}, {1, "c"}})
	assert.Equal(t, []string{"b", "a", "c"}, []string{got[0].label, got[1].label, got[2].label})
}
