// Package threshold picks the tier that applies to a value from a set of
// lower-bound thresholds, as used by refund rules and reminder offsets.
package threshold

import (
	"cmp"
	"slices"
)

type Tier interface {
	Threshold() int
}

// Highest returns the tier with the largest threshold that does not exceed value.
// The input slice is not reordered.
func Highest[T Tier](tiers []T, value int) (T, bool) {
	sorted := Descending(tiers)
	for _, t := range sorted {
		if t.Threshold() <= value {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// Descending returns a copy ordered by threshold, largest first. Ties keep input order.
func Descending[T Tier](tiers []T) []T {
	sorted := slices.Clone(tiers)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return cmp.Compare(b.Threshold(), a.Threshold())
	})
	return sorted
}
