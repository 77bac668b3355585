// Package series turns daily rate and price series into the annual and
// monthly aggregates the valuation pipeline consumes.
package series

import (
	"sort"

	"github.com/quantbr/erva/internal/core"
)

// AnnualizeRates compounds a daily policy-rate series into one effective
// rate per calendar year: product of (1 + rate/100) over the year's days,
// minus one. The input may be the concatenation of several sub-range
// fetches; duplicate dates on sub-range boundaries are counted once
// (first occurrence wins). An incomplete year compounds only the days
// present, it is not extrapolated to a full year.
func AnnualizeRates(points []core.RatePoint) []core.AnnualRate {
	factors := make(map[int]float64)
	seen := make(map[string]struct{}, len(points))

	for _, p := range points {
		day := p.Date.Format("2006-01-02")
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}

		year := p.Date.Year()
		if _, ok := factors[year]; !ok {
			factors[year] = 1
		}
		factors[year] *= 1 + p.Rate/100
	}

	out := make([]core.AnnualRate, 0, len(factors))
	for year, factor := range factors {
		out = append(out, core.AnnualRate{Year: year, Rate: factor - 1})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
