package bills

import (
	"sort"

	"github.com/mmynk/billed/internal/models"
)

// SortForDisplay returns the bills most recent first.
// Dates are compared as times. Bills whose date did not parse come last,
// ordered by raw date descending. Equal keys keep their input order.
func SortForDisplay(display []models.DisplayBill) []models.DisplayBill {
	sorted := make([]models.DisplayBill, len(display))
	copy(sorted, display)
	sort.SliceStable(sorted, func(i, j int) bool {
		return moreRecent(sorted[i], sorted[j])
	})
	return sorted
}

func moreRecent(a, b models.DisplayBill) bool {
	at, aok := a.ParsedDate()
	bt, bok := b.ParsedDate()
	switch {
	case aok && bok:
		return at.After(bt)
	case aok != bok:
		return aok
	default:
		return a.Date > b.Date
	}
}
