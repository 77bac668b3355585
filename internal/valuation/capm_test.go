package valuation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quantbr/erva/internal/core"
	"github.com/quantbr/erva/internal/valuation"
)

func TestCalculate_KeAndSpreadIdentity(t *testing.T) {
	roe := []core.ROERecord{
		{Year: 2021, NetIncome: 100, Equity: 1100, PriorEquity: 1000, ROE: 0.10},
		{Year: 2022, NetIncome: 120, Equity: 1200, PriorEquity: 1100, ROE: 120.0 / 1100.0},
	}
	rates := []core.AnnualRate{{Year: 2021, Rate: 0.04}, {Year: 2022, Rate: 0.05}}
	market := []core.AnnualReturn{{Year: 2021, Return: 0.12}, {Year: 2022, Return: 0.15}}

	got := valuation.Calculate(roe, rates, market, 1.2)

	require.Len(t, got, 2)
	for _, row := range got {
		wantKe := row.RiskFree + row.Beta*(row.MarketReturn-row.RiskFree)
		assert.InDelta(t, wantKe, row.CostOfEquity, 1e-15, "year %d", row.Year)
		assert.InDelta(t, row.ROE-row.CostOfEquity, row.Spread, 1e-15, "year %d", row.Year)
	}
}

func TestCalculate_EndToEndScenario(t *testing.T) {
	// net_income = {2021: 100, 2022: 120}
	// controlling_equity = {2020: 1000, 2021: 1100, 2022: 1200}
	income := []core.YearValue{{Year: 2021, Value: 100}, {Year: 2022, Value: 120}}
	equity := []core.YearValue{{Year: 2020, Value: 1000}, {Year: 2021, Value: 1100}, {Year: 2022, Value: 1200}}

	roe := valuation.BuildROE(income, equity)
	rates := []core.AnnualRate{{Year: 2022, Rate: 0.05}}
	market := []core.AnnualReturn{{Year: 2022, Return: 0.15}}

	got := valuation.Calculate(roe, rates, market, 1.2)

	// 2021 drops out of the join (no rate/market data), 2022 survives.
	require.Len(t, got, 1)
	row := got[0]
	require.Equal(t, 2022, row.Year)
	assert.InDelta(t, 120.0/1100.0, row.ROE, 1e-12)
	assert.InDelta(t, 0.17, row.CostOfEquity, 1e-12)
	assert.InDelta(t, 120.0/1100.0-0.17, row.Spread, 1e-12) // about -6.09%
}

func TestCalculate_DropsYearsMissingInSharedSeries(t *testing.T) {
	roe := []core.ROERecord{
		{Year: 2021, ROE: 0.10},
		{Year: 2022, ROE: 0.11},
		{Year: 2023, ROE: 0.12},
	}
	rates := []core.AnnualRate{{Year: 2021, Rate: 0.04}, {Year: 2022, Rate: 0.05}}
	market := []core.AnnualReturn{{Year: 2022, Return: 0.15}, {Year: 2023, Return: 0.10}}

	got := valuation.Calculate(roe, rates, market, 1.0)

	// Only 2022 is present in both shared series.
	require.Len(t, got, 1)
	assert.Equal(t, 2022, got[0].Year)
}

func TestCalculate_EmptyJoin(t *testing.T) {
	roe := []core.ROERecord{{Year: 2021, ROE: 0.10}}

	got := valuation.Calculate(roe, nil, nil, 1.0)
	assert.Empty(t, got)
}

func TestCalculate_SortedByYear(t *testing.T) {
	roe := []core.ROERecord{{Year: 2023, ROE: 0.1}, {Year: 2021, ROE: 0.1}, {Year: 2022, ROE: 0.1}}
	rates := []core.AnnualRate{{Year: 2021, Rate: 0.01}, {Year: 2022, Rate: 0.01}, {Year: 2023, Rate: 0.01}}
	market := []core.AnnualReturn{{Year: 2021, Return: 0.02}, {Year: 2022, Return: 0.02}, {Year: 2023, Return: 0.02}}

	got := valuation.Calculate(roe, rates, market, 1.0)

	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.Greater(t, got[i].Year, got[i-1].Year)
	}
}
