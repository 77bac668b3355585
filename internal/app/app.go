// Package app wires the pipeline together: disclosure batches in, one
// valuation table per entity out. Per-year and per-entity failures are
// absorbed here and surface only as absences; the run fails only when
// there is nothing at all to report.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quantbr/erva/internal/config"
	"github.com/quantbr/erva/internal/core"
	"github.com/quantbr/erva/internal/metrics"
	"github.com/quantbr/erva/internal/report"
	"github.com/quantbr/erva/internal/series"
	"github.com/quantbr/erva/internal/source"
	"github.com/quantbr/erva/internal/statement"
	"github.com/quantbr/erva/internal/valuation"
)

// Sources bundles the external collaborators the pipeline consumes.
type Sources struct {
	Disclosures source.DisclosureSource
	Prices      source.PriceSource
	Rates       source.RateSource
}

// App runs the excess-return valuation pipeline.
type App struct {
	cfg       *config.Config
	log       *zap.Logger
	metrics   *metrics.Registry
	sources   Sources
	sink      report.Sink
	extractor *statement.Extractor
}

// New creates an App. A nil logger is replaced with a no-op one.
func New(cfg *config.Config, log *zap.Logger, reg *metrics.Registry, sources Sources, sink report.Sink) *App {
	if log == nil {
		log = zap.NewNop()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	classifier := statement.NewClassifierWith(
		cfg.Accounts.NetIncomePattern,
		cfg.Accounts.TotalEquityCode,
		cfg.Accounts.NonControllingCode,
	)
	return &App{
		cfg:       cfg,
		log:       log,
		metrics:   reg,
		sources:   sources,
		sink:      sink,
		extractor: statement.NewExtractor(classifier),
	}
}

// Run executes one full valuation pass: fetch every available
// disclosure year, build the shared annual rate and market series, value
// each entity and hand the result set to the sink. The shared series are
// complete before the first entity is valued. Returns ErrFatalNoData
// when no disclosure year or no entity survives.
func (a *App) Run(ctx context.Context) error {
	started := time.Now()

	income, balance, okYears := a.collectDisclosures(ctx)
	if len(okYears) == 0 {
		return core.WrapError(core.ErrFatalNoData,
			fmt.Errorf("no disclosure batch for years %d..%d", a.cfg.Years.From, a.cfg.Years.To))
	}
	a.log.Info("disclosures collected",
		zap.Ints("years", okYears),
		zap.Int("income_records", len(income)),
		zap.Int("balance_records", len(balance)),
	)

	windowStart := time.Date(a.cfg.Years.From, 1, 1, 0, 0, 0, 0, time.UTC)
	// End of day, so the last trading day of the final year is inside
	// the window.
	windowEnd := time.Date(a.cfg.Years.To, 12, 31, 23, 59, 59, 0, time.UTC)

	annualRates := series.AnnualizeRates(a.fetchRates(ctx, windowStart, windowEnd))
	benchmarkDaily := a.fetchPrices(ctx, a.cfg.Benchmark, windowStart, windowEnd)
	annualMarket := series.AnnualizeMarket(benchmarkDaily)

	roster := a.cfg.CoreEntities()
	results := make(map[string][]core.ValuationRow, len(roster))
	totalRows := 0

	for _, entity := range roster {
		if err := ctx.Err(); err != nil {
			return err
		}

		rows, err := a.valueEntity(ctx, entity, income, balance,
			annualRates, annualMarket, benchmarkDaily, windowStart, windowEnd)
		if err != nil {
			a.metrics.RecordEntity(metrics.StatusSkipped)
			a.log.Warn("entity skipped",
				zap.String("entity", entity.Name),
				zap.Error(err),
			)
			continue
		}

		a.metrics.RecordEntity(metrics.StatusValued)
		totalRows += len(rows)
		results[entity.Name] = rows
		a.log.Info("entity valued",
			zap.String("entity", entity.Name),
			zap.Int("years", len(rows)),
			zap.Float64("beta", rows[0].Beta),
		)
	}

	if len(results) == 0 {
		return core.WrapError(core.ErrFatalNoData,
			fmt.Errorf("none of the %d entities produced a valuation", len(roster)))
	}
	a.metrics.SetValuationRows(totalRows)

	if err := a.sink.Write(ctx, results, roster); err != nil {
		return err
	}

	a.metrics.ObserveRun(time.Since(started).Seconds())
	a.log.Info("run complete",
		zap.Int("entities_valued", len(results)),
		zap.Int("rows", totalRows),
		zap.Duration("elapsed", time.Since(started)),
	)
	return nil
}

// collectDisclosures fetches every requested fiscal year, concatenating
// the batches. Unavailable years degrade by omission.
func (a *App) collectDisclosures(ctx context.Context) (income, balance []core.StatementRecord, okYears []int) {
	for year := a.cfg.Years.From; year <= a.cfg.Years.To; year++ {
		if ctx.Err() != nil {
			return income, balance, okYears
		}

		fetchStart := time.Now()
		batch, err := a.sources.Disclosures.FetchYear(ctx, year)
		a.metrics.ObserveSourceRequest("disclosure", time.Since(fetchStart).Seconds())
		if err != nil {
			a.metrics.RecordDisclosureYear(metrics.StatusUnavailable)
			a.log.Warn("disclosure year unavailable",
				zap.Int("year", year),
				zap.Error(err),
			)
			continue
		}

		a.metrics.RecordDisclosureYear(metrics.StatusOK)
		income = append(income, batch.Income...)
		balance = append(balance, batch.Balance...)
		okYears = append(okYears, year)
	}
	return income, balance, okYears
}

// fetchRates fetches the daily policy-rate series. A failure yields an
// empty series; every entity's CAPM join then comes up empty and the run
// ends with no data.
func (a *App) fetchRates(ctx context.Context, start, end time.Time) []core.RatePoint {
	fetchStart := time.Now()
	points, err := a.sources.Rates.FetchDailyRates(ctx, start, end)
	a.metrics.ObserveSourceRequest("rates", time.Since(fetchStart).Seconds())
	if err != nil {
		a.log.Error("rate series unavailable", zap.Error(err))
		return nil
	}
	return points
}

func (a *App) fetchPrices(ctx context.Context, symbol string, start, end time.Time) []core.PricePoint {
	fetchStart := time.Now()
	points, err := a.sources.Prices.FetchDailyCloses(ctx, symbol, start, end)
	a.metrics.ObserveSourceRequest("prices", time.Since(fetchStart).Seconds())
	if err != nil {
		a.log.Error("price series unavailable",
			zap.String("symbol", symbol),
			zap.Error(err),
		)
		return nil
	}
	return points
}

// valueEntity runs the per-entity pipeline: extract annual figures,
// derive lagged ROE, estimate beta, merge with the shared series.
func (a *App) valueEntity(
	ctx context.Context,
	entity core.Entity,
	income, balance []core.StatementRecord,
	annualRates []core.AnnualRate,
	annualMarket []core.AnnualReturn,
	benchmarkDaily []core.PricePoint,
	start, end time.Time,
) ([]core.ValuationRow, error) {
	netIncome := a.extractor.NetIncomeByYear(income, entity.FiscalID)
	equity := a.extractor.ControllingEquityByYear(balance, entity.FiscalID)

	roe := valuation.BuildROE(netIncome, equity)
	if len(roe) == 0 {
		return nil, core.WrapError(core.ErrNoData,
			fmt.Errorf("no ROE rows for %s", entity.FiscalID))
	}

	instrumentDaily := a.fetchPrices(ctx, entity.Ticker, start, end)
	beta, err := valuation.EstimateBeta(instrumentDaily, benchmarkDaily)
	if err != nil {
		return nil, err
	}

	rows := valuation.Calculate(roe, annualRates, annualMarket, beta)
	if len(rows) == 0 {
		return nil, core.WrapError(core.ErrInsufficientSeries,
			fmt.Errorf("no year of %s overlaps the rate and market series", entity.Name))
	}
	return rows, nil
}
