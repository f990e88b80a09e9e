package coins

import (
	"fmt"
	"math"
	"strings"
)

// Change is one line of a change breakdown: how many coins of a single
// denomination to dispense.
type Change struct {
	Denomination float64 `json:"denomination"`
	Count        int     `json:"count"`
}

// CalculateChange breaks amount into coins using a greedy walk over the
// denominations in descending order. Amounts <= 0 yield an empty
// breakdown. The amount is rounded to 2 decimals up front and after each
// subtraction so repeated float arithmetic cannot drift.
//
// Greedy is minimal for this specific denomination set; it is not a
// general-purpose change solver for arbitrary sets. With 0.5 as the
// smallest coin and all balances being coin sums, the walk always
// accounts for the full amount.
func CalculateChange(amount float64) []Change {
	if amount <= 0 {
		return []Change{}
	}

	remaining := round2(amount)
	change := []Change{}

	for _, denomination := range DenominationsDescending() {
		if remaining < denomination {
			continue
		}
		count := int(math.Floor(remaining / denomination))
		if count > 0 {
			change = append(change, Change{Denomination: denomination, Count: count})
			remaining = round2(remaining - denomination*float64(count))
		}
	}

	return change
}

// TotalValue sums a change breakdown back into a single amount.
func TotalValue(change []Change) float64 {
	total := 0.0
	for _, c := range change {
		total += c.Denomination * float64(c.Count)
	}
	return round2(total)
}

// FormatChange renders a breakdown for display, e.g. "1 x 5 MAD, 2 x 0.5 MAD".
func FormatChange(change []Change, currency string) string {
	if len(change) == 0 {
		return "No change"
	}

	parts := make([]string, 0, len(change))
	for _, c := range change {
		parts = append(parts, fmt.Sprintf("%d x %g %s", c.Count, c.Denomination, currency))
	}
	return strings.Join(parts, ", ")
}
