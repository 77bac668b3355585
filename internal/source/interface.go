// Package source defines the external-collaborator boundary of the
// pipeline: disclosure archives, daily price series and the daily
// policy-rate series. The core never performs I/O itself; it consumes
// the tables these sources return. Deadlines and cancellation are
// imposed here, through the contexts, never inside the core.
package source

import (
	"context"
	"time"

	"github.com/quantbr/erva/internal/core"
)

// DisclosureBatch holds the statement records of one fiscal year,
// income-statement and balance-sheet rows arriving as separate tables.
type DisclosureBatch struct {
	Income  []core.StatementRecord
	Balance []core.StatementRecord
}

// DisclosureSource fetches the disclosure batch of one fiscal year.
// A year the source cannot serve yields core.ErrYearUnavailable; the
// caller degrades by omitting that year.
type DisclosureSource interface {
	FetchYear(ctx context.Context, year int) (*DisclosureBatch, error)
}

// PriceSource fetches a daily closing-price series for an instrument.
// The series may be sparse (holidays, gaps); callers must tolerate
// fewer points than the range suggests.
type PriceSource interface {
	FetchDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]core.PricePoint, error)
}

// RateSource fetches a daily policy-rate series, as percentage-per-day
// values. Implementations split long ranges into the sub-windows their
// upstream accepts and concatenate the results.
type RateSource interface {
	FetchDailyRates(ctx context.Context, start, end time.Time) ([]core.RatePoint, error)
}
