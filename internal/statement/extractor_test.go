package statement

import (
	"testing"
	"time"

	"github.com/quantbr/erva/internal/core"
)

const cnpj = "60.872.504/0001-23"

func incomeRecord(year int, value float64) core.StatementRecord {
	return core.StatementRecord{
		EntityID:    cnpj,
		Date:        time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
		Version:     core.VersionFinal,
		AccountCode: "3.11",
		AccountDesc: "Lucro/Prejuízo Consolidado do Período",
		Value:       value,
	}
}

func equityRecord(year int, code string, value float64) core.StatementRecord {
	return core.StatementRecord{
		EntityID:    cnpj,
		Date:        time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC),
		Version:     core.VersionFinal,
		AccountCode: code,
		Value:       value,
	}
}

func TestExtractor_NetIncomeByYear(t *testing.T) {
	e := NewExtractor(nil)

	records := []core.StatementRecord{
		incomeRecord(2022, 120),
		incomeRecord(2021, 100),
		// restated duplicate for 2021, must be excluded
		{
			EntityID:    cnpj,
			Date:        time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
			Version:     core.VersionRestated,
			AccountCode: "3.11",
			AccountDesc: "Lucro/Prejuízo Consolidado do Período",
			Value:       95,
		},
		// different entity
		{
			EntityID:    "00.000.000/0001-91",
			Date:        time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
			Version:     core.VersionFinal,
			AccountCode: "3.11",
			AccountDesc: "Lucro/Prejuízo Consolidado do Período",
			Value:       500,
		},
		// unrelated account line
		{
			EntityID:    cnpj,
			Date:        time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
			Version:     core.VersionFinal,
			AccountCode: "3.01",
			AccountDesc: "Receitas da Intermediação Financeira",
			Value:       9999,
		},
	}

	got := e.NetIncomeByYear(records, cnpj)

	want := []core.YearValue{
		{Year: 2021, Value: 100_000},
		{Year: 2022, Value: 120_000},
	}
	assertYearValues(t, got, want)
}

func TestExtractor_NetIncomeByYear_SumsSubLines(t *testing.T) {
	e := NewExtractor(nil)

	records := []core.StatementRecord{
		incomeRecord(2021, 100),
		incomeRecord(2021, 25),
	}

	got := e.NetIncomeByYear(records, cnpj)
	assertYearValues(t, got, []core.YearValue{{Year: 2021, Value: 125_000}})
}

func TestExtractor_ControllingEquityByYear(t *testing.T) {
	e := NewExtractor(nil)

	records := []core.StatementRecord{
		equityRecord(2021, "2.08", 1_100),
		equityRecord(2021, "2.08.09", 100),
		// 2022 has no non-controlling line: treated as zero
		equityRecord(2022, "2.08", 1_200),
		// equity sub-line ignored
		equityRecord(2021, "2.08.01", 600),
		// restated total equity ignored
		{
			EntityID:    cnpj,
			Date:        time.Date(2021, 12, 31, 0, 0, 0, 0, time.UTC),
			Version:     core.VersionRestated,
			AccountCode: "2.08",
			Value:       999,
		},
	}

	got := e.ControllingEquityByYear(records, cnpj)

	want := []core.YearValue{
		{Year: 2021, Value: 1_000_000},
		{Year: 2022, Value: 1_200_000},
	}
	assertYearValues(t, got, want)
}

func TestExtractor_ControllingEquityByYear_NonControllingOnlyYearOmitted(t *testing.T) {
	e := NewExtractor(nil)

	// A year with only the non-controlling line has no total equity to
	// subtract from and must not appear in the output.
	records := []core.StatementRecord{
		equityRecord(2020, "2.08.09", 50),
		equityRecord(2021, "2.08", 1_000),
	}

	got := e.ControllingEquityByYear(records, cnpj)
	assertYearValues(t, got, []core.YearValue{{Year: 2021, Value: 1_000_000}})
}

func TestExtractor_EmptyForUnknownEntity(t *testing.T) {
	e := NewExtractor(nil)

	records := []core.StatementRecord{incomeRecord(2021, 100)}

	if got := e.NetIncomeByYear(records, "unknown"); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
	if got := e.ControllingEquityByYear(records, "unknown"); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func assertYearValues(t *testing.T, got, want []core.YearValue) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
