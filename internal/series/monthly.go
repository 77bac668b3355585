package series

import (
	"sort"

	"github.com/quantbr/erva/internal/core"
)

// monthKey orders calendar months across years.
func monthKey(p core.PricePoint) int {
	return p.Date.Year()*12 + int(p.Date.Month()) - 1
}

// MonthEndCloses resamples a daily price series to one value per calendar
// month: the last observed trading price of the month. Keys are returned
// ascending.
func MonthEndCloses(points []core.PricePoint) (keys []int, closes map[int]float64) {
	sorted := sortedByDate(points)

	closes = make(map[int]float64)
	for _, p := range sorted {
		closes[monthKey(p)] = p.Close // later observations overwrite
	}

	keys = make([]int, 0, len(closes))
	for k := range closes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys, closes
}

// monthlyReturns computes month-over-month percentage changes, keyed by
// the later month. A month only has a return when the immediately
// preceding calendar month was observed too: a gap month produces no
// return for itself and none for the month after it. The first
// observation has no return. Months whose previous close is zero are
// skipped.
func monthlyReturns(points []core.PricePoint) map[int]float64 {
	keys, closes := MonthEndCloses(points)

	returns := make(map[int]float64, len(keys))
	for i := 1; i < len(keys); i++ {
		if keys[i] != keys[i-1]+1 {
			continue
		}
		prev := closes[keys[i-1]]
		if prev == 0 {
			continue
		}
		returns[keys[i]] = closes[keys[i]]/prev - 1
	}
	return returns
}

// AlignedMonthlyReturns resamples both series to month-end values,
// computes each series' month-over-month returns and inner-aligns them by
// month. Months missing in either series are dropped. The two result
// slices have equal length and chronological order.
func AlignedMonthlyReturns(a, b []core.PricePoint) (ra, rb []float64) {
	retA := monthlyReturns(a)
	retB := monthlyReturns(b)

	months := make([]int, 0, len(retA))
	for m := range retA {
		if _, ok := retB[m]; ok {
			months = append(months, m)
		}
	}
	sort.Ints(months)

	ra = make([]float64, 0, len(months))
	rb = make([]float64, 0, len(months))
	for _, m := range months {
		ra = append(ra, retA[m])
		rb = append(rb, retB[m])
	}
	return ra, rb
}
