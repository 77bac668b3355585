// Package valuation derives the per-entity excess-return table: ROE with
// a one-year equity lag, systematic risk via OLS, and the CAPM spread.
package valuation

import (
	"math"
	"sort"

	"github.com/quantbr/erva/internal/core"
)

// BuildROE joins annual net income and controlling equity on year and
// computes ROE = net income of the year over controlling equity at the
// start of the year (the equity reported for year-1, looked up
// explicitly, not the previous row). Rows without a prior-year equity or
// with a non-finite ratio are dropped, so the earliest available year
// never appears in the output. Pure and order-independent.
func BuildROE(income, equity []core.YearValue) []core.ROERecord {
	equityByYear := make(map[int]float64, len(equity))
	for _, e := range equity {
		equityByYear[e.Year] = e.Value
	}

	out := make([]core.ROERecord, 0, len(income))
	for _, in := range income {
		current, ok := equityByYear[in.Year]
		if !ok {
			continue // inner join on year
		}
		prior, ok := equityByYear[in.Year-1]
		if !ok {
			continue // equity at start of year unavailable
		}
		roe := in.Value / prior
		if math.IsNaN(roe) || math.IsInf(roe, 0) {
			continue
		}
		out = append(out, core.ROERecord{
			Year:        in.Year,
			NetIncome:   in.Value,
			Equity:      current,
			PriorEquity: prior,
			ROE:         roe,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
