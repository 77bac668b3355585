// Package statement isolates per-entity, per-year figures from raw
// regulatory disclosure records.
package statement

import (
	"sort"

	"github.com/quantbr/erva/internal/core"
)

// Disclosure values are reported in thousands of the base currency unit.
const thousandsScale = 1_000

// Extractor derives annual net income and controlling equity for one
// entity from disclosure record batches. Records of other entities,
// restated duplicates and unrelated account lines are ignored. An entity
// with no matching rows yields an empty result, never an error.
type Extractor struct {
	classifier *Classifier
}

// NewExtractor creates an extractor using the given classifier.
func NewExtractor(classifier *Classifier) *Extractor {
	if classifier == nil {
		classifier = NewClassifier()
	}
	return &Extractor{classifier: classifier}
}

// NetIncomeByYear aggregates the entity's net income per fiscal year from
// income-statement records. Multiple matching rows in the same year are
// summed (sub-line aggregation). Years are returned ascending.
func (e *Extractor) NetIncomeByYear(records []core.StatementRecord, entityID string) []core.YearValue {
	byYear := make(map[int]float64)
	for _, r := range records {
		if r.EntityID != entityID || r.Version != core.VersionFinal {
			continue
		}
		if e.classifier.Classify(r) != core.AccountNetIncome {
			continue
		}
		byYear[r.Year()] += r.Value * thousandsScale
	}
	return sortedYearValues(byYear)
}

// ControllingEquityByYear derives the entity's controlling equity per
// fiscal year from balance-sheet records: total equity minus
// non-controlling interest. A year with total equity but no
// non-controlling line treats the interest as zero. Years without a
// total-equity line are omitted.
func (e *Extractor) ControllingEquityByYear(records []core.StatementRecord, entityID string) []core.YearValue {
	type equityYear struct {
		total          float64
		hasTotal       bool
		nonControlling float64
	}
	byYear := make(map[int]*equityYear)
	for _, r := range records {
		if r.EntityID != entityID || r.Version != core.VersionFinal {
			continue
		}
		kind := e.classifier.Classify(r)
		if kind != core.AccountTotalEquity && kind != core.AccountNonControlling {
			continue
		}
		y := byYear[r.Year()]
		if y == nil {
			y = &equityYear{}
			byYear[r.Year()] = y
		}
		value := r.Value * thousandsScale
		if kind == core.AccountTotalEquity {
			y.total += value
			y.hasTotal = true
		} else {
			y.nonControlling += value
		}
	}

	controlling := make(map[int]float64, len(byYear))
	for year, y := range byYear {
		if !y.hasTotal {
			continue
		}
		controlling[year] = y.total - y.nonControlling
	}
	return sortedYearValues(controlling)
}

func sortedYearValues(byYear map[int]float64) []core.YearValue {
	out := make([]core.YearValue, 0, len(byYear))
	for year, value := range byYear {
		out = append(out, core.YearValue{Year: year, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}
