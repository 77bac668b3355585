package series

import (
	"sort"

	"github.com/quantbr/erva/internal/core"
)

// AnnualizeMarket derives one simple return per calendar year from a
// daily price series: last observed close of the year over the first,
// minus one. The intra-year path is ignored. Years with a single
// observation yield a zero return.
func AnnualizeMarket(points []core.PricePoint) []core.AnnualReturn {
	sorted := sortedByDate(points)

	type yearPrices struct {
		first, last float64
	}
	byYear := make(map[int]*yearPrices)
	for _, p := range sorted {
		year := p.Date.Year()
		y := byYear[year]
		if y == nil {
			byYear[year] = &yearPrices{first: p.Close, last: p.Close}
			continue
		}
		y.last = p.Close
	}

	out := make([]core.AnnualReturn, 0, len(byYear))
	for year, y := range byYear {
		if y.first == 0 {
			continue
		}
		out = append(out, core.AnnualReturn{Year: year, Return: y.last/y.first - 1})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

func sortedByDate(points []core.PricePoint) []core.PricePoint {
	sorted := make([]core.PricePoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return sorted
}
