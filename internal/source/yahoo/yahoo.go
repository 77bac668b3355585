// Package yahoo fetches daily closing prices from the Yahoo Finance
// chart API, for both entity tickers (e.g. ITUB4.SA) and index symbols
// (e.g. ^BVSP).
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"github.com/quantbr/erva/internal/core"
)

// DefaultBaseURL is the public chart endpoint.
const DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// validSymbol matches tickers like ITUB4.SA, BBAS3.SA and index symbols
// like ^BVSP.
var validSymbol = regexp.MustCompile(`^\^?[A-Za-z0-9]{1,10}(\.[A-Za-z]{1,4})?$`)

func validateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("symbol cannot be empty")
	}
	if !validSymbol.MatchString(symbol) {
		return fmt.Errorf("invalid symbol format: %s", symbol)
	}
	return nil
}

// Client implements source.PriceSource against the chart API.
type Client struct {
	baseURL string
	client  *http.Client
}

// New creates a price client. An empty baseURL uses the public endpoint.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchDailyCloses fetches the daily close series for a symbol over
// [start, end]. Days without data (nulls in the chart payload) are
// skipped, so the series may be sparse. Adjusted closes are preferred
// when the payload carries them.
func (c *Client) FetchDailyCloses(ctx context.Context, symbol string, start, end time.Time) ([]core.PricePoint, error) {
	if err := validateSymbol(symbol); err != nil {
		return nil, core.WrapError(core.ErrSourceFailed, err)
	}

	reqURL := fmt.Sprintf("%s/%s?interval=1d&period1=%d&period2=%d",
		c.baseURL, url.PathEscape(symbol), start.Unix(), end.Unix())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, core.WrapError(core.ErrSourceFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, core.WrapError(core.ErrSourceFailed, fmt.Errorf("fetching prices: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.WrapError(core.ErrSourceFailed,
			fmt.Errorf("%s: unexpected status %d", symbol, resp.StatusCode))
	}

	var result chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, core.WrapError(core.ErrSourceFailed, fmt.Errorf("decoding response: %w", err))
	}

	if result.Chart.Error != nil {
		return nil, core.WrapError(core.ErrSourceFailed,
			fmt.Errorf("chart error for %s: %s", symbol, result.Chart.Error.Description))
	}
	if len(result.Chart.Result) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no data for symbol %s", symbol))
	}

	r := result.Chart.Result[0]
	if len(r.Indicators.Quote) == 0 {
		return nil, core.WrapError(core.ErrNoData, fmt.Errorf("no quote data for symbol %s", symbol))
	}

	closes := r.Indicators.Quote[0].Close
	if len(r.Indicators.AdjClose) > 0 && len(r.Indicators.AdjClose[0].AdjClose) == len(r.Timestamp) {
		closes = r.Indicators.AdjClose[0].AdjClose
	}

	points := make([]core.PricePoint, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, core.PricePoint{
			Date:  time.Unix(int64(ts), 0).UTC(),
			Close: *closes[i],
		})
	}
	return points, nil
}

// Chart API response types
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int      `json:"timestamp"`
	Indicators indicators `json:"indicators"`
}

type indicators struct {
	Quote    []quoteIndicator    `json:"quote"`
	AdjClose []adjCloseIndicator `json:"adjclose"`
}

type quoteIndicator struct {
	Close []*float64 `json:"close"`
}

type adjCloseIndicator struct {
	AdjClose []*float64 `json:"adjclose"`
}
