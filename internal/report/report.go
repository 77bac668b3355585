// Package report hands the finished valuation tables to a sink. The
// pipeline's only obligation is the mapping from entity name to its
// sorted rows; everything about presentation lives behind the Sink
// interface.
package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quantbr/erva/internal/core"
)

// Sink consumes the final per-entity valuation tables plus the roster.
type Sink interface {
	Write(ctx context.Context, results map[string][]core.ValuationRow, roster []core.Entity) error
}

var columns = []string{
	"year", "net_income", "controlling_equity", "prior_equity",
	"roe", "beta", "risk_free", "market_return", "cost_of_equity", "spread",
}

// CSVSink writes one CSV per valued entity plus a consolidated file.
// All content is rendered in memory before anything touches disk, so a
// failing entity can never leave partial output behind.
type CSVSink struct {
	dir string
}

// NewCSVSink creates a sink writing under dir. The directory is created
// on the first write.
func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir}
}

func (s *CSVSink) Write(ctx context.Context, results map[string][]core.ValuationRow, roster []core.Entity) error {
	files := make(map[string][]byte, len(results)+1)

	var consolidated bytes.Buffer
	cw := csv.NewWriter(&consolidated)
	if err := cw.Write(append([]string{"entity"}, columns...)); err != nil {
		return core.WrapError(core.ErrReportFailed, err)
	}

	// Roster order keeps output deterministic; unvalued entities are
	// simply absent.
	used := map[string]bool{"valuation": true}
	for _, entity := range roster {
		rows, ok := results[entity.Name]
		if !ok {
			continue
		}

		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		if err := w.Write(columns); err != nil {
			return core.WrapError(core.ErrReportFailed, err)
		}
		for _, row := range rows {
			fields := rowFields(row)
			if err := w.Write(fields); err != nil {
				return core.WrapError(core.ErrReportFailed, err)
			}
			if err := cw.Write(append([]string{entity.Name}, fields...)); err != nil {
				return core.WrapError(core.ErrReportFailed, err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return core.WrapError(core.ErrReportFailed, err)
		}
		files[entityFileName(entity, used)+".csv"] = append([]byte(nil), buf.Bytes()...)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return core.WrapError(core.ErrReportFailed, err)
	}
	files["valuation.csv"] = consolidated.Bytes()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return core.WrapError(core.ErrReportFailed, err)
	}
	for name, data := range files {
		if err := ctx.Err(); err != nil {
			return core.WrapError(core.ErrReportFailed, err)
		}
		if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
			return core.WrapError(core.ErrReportFailed, err)
		}
	}
	return nil
}

func rowFields(r core.ValuationRow) []string {
	return []string{
		strconv.Itoa(r.Year),
		formatFloat(r.NetIncome),
		formatFloat(r.Equity),
		formatFloat(r.PriorEquity),
		formatFloat(r.ROE),
		formatFloat(r.Beta),
		formatFloat(r.RiskFree),
		formatFloat(r.MarketReturn),
		formatFloat(r.CostOfEquity),
		formatFloat(r.Spread),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// entityFileName picks a unique base name for an entity's file. Name
// collisions (including "valuation", reserved for the consolidated
// file) fall back to the ticker and then to a numeric suffix. The
// chosen name is marked as taken.
func entityFileName(entity core.Entity, used map[string]bool) string {
	name := slug(entity.Name)
	if name == "" {
		name = slug(entity.Ticker)
	}
	if used[name] {
		withTicker := name + "_" + slug(entity.Ticker)
		if !used[withTicker] {
			name = withTicker
		} else {
			for i := 2; ; i++ {
				candidate := name + "_" + strconv.Itoa(i)
				if !used[candidate] {
					name = candidate
					break
				}
			}
		}
	}
	used[name] = true
	return name
}

// slug makes an entity name safe as a file name. Runs of non-alphanumeric
// characters collapse into single underscores.
func slug(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
