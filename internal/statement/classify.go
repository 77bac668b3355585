package statement

import (
	"strings"

	"github.com/quantbr/erva/internal/core"
)

// CVM chart-of-accounts literals for the consolidated balance sheet.
const (
	DefaultTotalEquityCode    = "2.08"
	DefaultNonControllingCode = "2.08.09"
	DefaultNetIncomePattern   = "lucro/prejuízo"
)

// Classifier tags disclosure records by account. The matching policy
// (description substring for the income statement, account codes for the
// balance sheet) is fixed at construction so downstream arithmetic never
// inspects raw codes or descriptions.
type Classifier struct {
	netIncomePattern   string
	totalEquityCode    string
	nonControllingCode string
}

// NewClassifier creates a classifier with the CVM defaults.
func NewClassifier() *Classifier {
	return &Classifier{
		netIncomePattern:   DefaultNetIncomePattern,
		totalEquityCode:    DefaultTotalEquityCode,
		nonControllingCode: DefaultNonControllingCode,
	}
}

// NewClassifierWith creates a classifier with explicit matching policy.
// Empty arguments fall back to the CVM defaults.
func NewClassifierWith(netIncomePattern, totalEquityCode, nonControllingCode string) *Classifier {
	c := NewClassifier()
	if netIncomePattern != "" {
		c.netIncomePattern = strings.ToLower(netIncomePattern)
	}
	if totalEquityCode != "" {
		c.totalEquityCode = totalEquityCode
	}
	if nonControllingCode != "" {
		c.nonControllingCode = nonControllingCode
	}
	return c
}

// Classify tags a single record. Account codes take precedence over the
// description match so a balance-sheet line can never be mistaken for an
// income line.
func (c *Classifier) Classify(r core.StatementRecord) core.AccountKind {
	switch r.AccountCode {
	case c.totalEquityCode:
		return core.AccountTotalEquity
	case c.nonControllingCode:
		return core.AccountNonControlling
	}
	if strings.Contains(strings.ToLower(r.AccountDesc), c.netIncomePattern) {
		return core.AccountNetIncome
	}
	return core.AccountOther
}
