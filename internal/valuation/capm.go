package valuation

import (
	"sort"

	"github.com/quantbr/erva/internal/core"
)

// Calculate merges an entity's ROE rows with the shared annual risk-free
// and market-return series (inner join on year; a year absent in either
// shared series drops the row) and computes the CAPM cost of equity and
// the excess-return spread:
//
//	Ke     = Rf + beta*(Rm - Rf)
//	spread = ROE - Ke
//
// An empty result means the entity has insufficient overlapping data;
// the caller decides whether that is fatal.
func Calculate(roe []core.ROERecord, rates []core.AnnualRate, market []core.AnnualReturn, beta float64) []core.ValuationRow {
	rateByYear := make(map[int]float64, len(rates))
	for _, r := range rates {
		rateByYear[r.Year] = r.Rate
	}
	marketByYear := make(map[int]float64, len(market))
	for _, m := range market {
		marketByYear[m.Year] = m.Return
	}

	out := make([]core.ValuationRow, 0, len(roe))
	for _, r := range roe {
		rf, ok := rateByYear[r.Year]
		if !ok {
			continue
		}
		rm, ok := marketByYear[r.Year]
		if !ok {
			continue
		}
		ke := rf + beta*(rm-rf)
		out = append(out, core.ValuationRow{
			Year:         r.Year,
			NetIncome:    r.NetIncome,
			Equity:       r.Equity,
			PriorEquity:  r.PriorEquity,
			ROE:          r.ROE,
			Beta:         beta,
			RiskFree:     rf,
			MarketReturn: rm,
			CostOfEquity: ke,
			Spread:       r.ROE - ke,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
