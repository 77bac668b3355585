package valuation

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/quantbr/erva/internal/core"
	"github.com/quantbr/erva/internal/series"
)

// EstimateBeta regresses the instrument's monthly returns on the
// benchmark's monthly returns (ordinary least squares with an intercept)
// and returns the slope. Both series are resampled to month-end closes
// and inner-aligned by month first. The estimate is a single value for
// the whole window; no rolling re-estimation.
//
// Returns ErrInsufficientSeries with fewer than two aligned observations
// or when the regression is degenerate (constant benchmark returns).
func EstimateBeta(instrument, benchmark []core.PricePoint) (float64, error) {
	instRet, benchRet := series.AlignedMonthlyReturns(instrument, benchmark)
	if len(instRet) < 2 {
		return 0, core.ErrInsufficientSeries
	}

	_, beta := stat.LinearRegression(benchRet, instRet, nil, false)
	if math.IsNaN(beta) || math.IsInf(beta, 0) {
		return 0, core.ErrInsufficientSeries
	}
	return beta, nil
}
