// Package cvm downloads and parses the CVM DFP disclosure archives: one
// zip per fiscal year containing the consolidated income statement (DRE)
// and balance sheet (BPP) as ';'-separated Latin-1 CSV files.
package cvm

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/quantbr/erva/internal/core"
	"github.com/quantbr/erva/internal/source"
)

const (
	// DefaultBaseURL is the CVM open-data endpoint for annual DFP filings.
	DefaultBaseURL = "https://dados.cvm.gov.br/dados/CIA_ABERTA/DOC/DFP/DADOS"

	incomePrefix  = "DRE"
	balancePrefix = "BPP"

	versionFinalMarker = "ÚLTIMO"
)

// Client implements source.DisclosureSource against the CVM archive.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a CVM client. An empty baseURL uses the public endpoint.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 90 * time.Second},
	}
}

// FetchYear downloads the DFP zip of one fiscal year and extracts the
// consolidated income-statement and balance-sheet tables. Any failure to
// obtain or open the archive reports the year as unavailable; malformed
// rows inside the tables are skipped, not fatal.
func (c *Client) FetchYear(ctx context.Context, year int) (*source.DisclosureBatch, error) {
	url := fmt.Sprintf("%s/dfp_cia_aberta_%d.zip", c.baseURL, year)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.WrapError(core.ErrYearUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, core.WrapError(core.ErrYearUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.WrapError(core.ErrYearUnavailable,
			fmt.Errorf("dfp %d: unexpected status %d", year, resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.WrapError(core.ErrYearUnavailable, err)
	}

	archive, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return nil, core.WrapError(core.ErrYearUnavailable, err)
	}

	batch := &source.DisclosureBatch{}
	if f := findConsolidated(archive, incomePrefix); f != nil {
		batch.Income, err = parseStatementCSV(f)
		if err != nil {
			return nil, core.WrapError(core.ErrYearUnavailable, err)
		}
	}
	if f := findConsolidated(archive, balancePrefix); f != nil {
		batch.Balance, err = parseStatementCSV(f)
		if err != nil {
			return nil, core.WrapError(core.ErrYearUnavailable, err)
		}
	}
	return batch, nil
}

// findConsolidated picks the consolidated ("con") table for the given
// statement prefix out of the archive.
func findConsolidated(archive *zip.Reader, prefix string) *zip.File {
	for _, f := range archive.File {
		if strings.Contains(f.Name, prefix) && strings.Contains(strings.ToLower(f.Name), "con") {
			return f
		}
	}
	return nil
}

// parseStatementCSV reads one DFP CSV table into statement records.
// Columns are located by header name so column order is irrelevant.
// Rows with missing or unparseable fields are excluded.
func parseStatementCSV(f *zip.File) ([]core.StatementRecord, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := csv.NewReader(transform.NewReader(rc, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", f.Name, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"CNPJ_CIA", "DT_REFER", "ORDEM_EXERC", "CD_CONTA", "DS_CONTA", "VL_CONTA"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("%s: missing column %s", f.Name, required)
		}
	}

	var records []core.StatementRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue // malformed row, skip
		}

		get := func(name string) string {
			i := col[name]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		date, err := time.Parse("2006-01-02", get("DT_REFER"))
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(get("VL_CONTA"), 64)
		if err != nil {
			continue
		}

		version := core.VersionRestated
		if strings.EqualFold(get("ORDEM_EXERC"), versionFinalMarker) {
			version = core.VersionFinal
		}

		records = append(records, core.StatementRecord{
			EntityID:    get("CNPJ_CIA"),
			Date:        date,
			Version:     version,
			AccountCode: get("CD_CONTA"),
			AccountDesc: get("DS_CONTA"),
			Value:       value,
		})
	}
	return records, nil
}
