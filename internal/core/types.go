package core

import "time"

// Entity is one company in the analysis roster.
type Entity struct {
	Name     string // display name, keys the result set
	Ticker   string // instrument identifier at the price source
	FiscalID string // identifier used in regulatory disclosures (CNPJ)
}

// StatementVersion distinguishes the authoritative figure from restated
// duplicates reported for the same period.
type StatementVersion string

const (
	VersionFinal    StatementVersion = "final"
	VersionRestated StatementVersion = "restated"
)

// AccountKind is the classification of a disclosure account line.
type AccountKind string

const (
	AccountOther          AccountKind = "other"
	AccountNetIncome      AccountKind = "net_income"
	AccountTotalEquity    AccountKind = "total_equity"
	AccountNonControlling AccountKind = "non_controlling_interest"
)

// StatementRecord is one row of a regulatory disclosure table.
// Value is stated in thousands of the reporting currency.
type StatementRecord struct {
	EntityID    string
	Date        time.Time // statement reference date
	Version     StatementVersion
	AccountCode string
	AccountDesc string
	Value       float64
}

// Year returns the fiscal year of the record.
func (r StatementRecord) Year() int {
	return r.Date.Year()
}

// YearValue is one aggregated figure for one fiscal year.
type YearValue struct {
	Year  int
	Value float64
}

// ROERecord is the return on equity of one entity for one fiscal year.
// PriorEquity is the controlling equity at the start of the year, i.e.
// the controlling equity reported for Year-1.
type ROERecord struct {
	Year        int
	NetIncome   float64
	Equity      float64
	PriorEquity float64
	ROE         float64
}

// RatePoint is one day of a policy-rate series. Rate is a percentage
// per day as published by the source (e.g. 0.0525 for 0.0525%/day).
type RatePoint struct {
	Date time.Time
	Rate float64
}

// AnnualRate is the effective compounded rate of one calendar year.
type AnnualRate struct {
	Year int
	Rate float64
}

// PricePoint is one daily closing price.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// AnnualReturn is the simple first-to-last return of one calendar year.
type AnnualReturn struct {
	Year   int
	Return float64
}

// ValuationRow is the final excess-return figure of one entity for one
// fiscal year. Spread = ROE - CostOfEquity; positive means the entity
// earned above its cost of capital.
type ValuationRow struct {
	Year         int
	NetIncome    float64
	Equity       float64
	PriorEquity  float64
	ROE          float64
	Beta         float64
	RiskFree     float64
	MarketReturn float64
	CostOfEquity float64
	Spread       float64
}
