// Package bcb fetches daily policy-rate series from the BCB SGS API
// (série 11 is the daily Selic rate).
package bcb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/quantbr/erva/internal/core"
)

const (
	// DefaultBaseURL is the public SGS endpoint.
	DefaultBaseURL = "https://api.bcb.gov.br/dados/serie"

	// DefaultSeries is the daily Selic rate series.
	DefaultSeries = 11

	// maxWindowYears is the largest range SGS serves in one call.
	maxWindowYears = 10
)

// Client implements source.RateSource against the BCB SGS API.
type Client struct {
	baseURL string
	series  int
	client  *http.Client
}

// New creates an SGS client for the given series. Zero values select the
// public endpoint and the daily Selic series.
func New(baseURL string, series int) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if series == 0 {
		series = DefaultSeries
	}
	return &Client{
		baseURL: baseURL,
		series:  series,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchDailyRates fetches the series over [start, end], splitting the
// range into sub-windows of at most ten years and concatenating the
// results. Overlap deduplication is the annualizer's concern, not ours.
func (c *Client) FetchDailyRates(ctx context.Context, start, end time.Time) ([]core.RatePoint, error) {
	var points []core.RatePoint

	for year := start.Year(); year <= end.Year(); year += maxWindowYears {
		windowStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		if windowStart.Before(start) {
			windowStart = start
		}
		windowEnd := time.Date(year+maxWindowYears-1, 12, 31, 0, 0, 0, 0, time.UTC)
		if windowEnd.After(end) {
			windowEnd = end
		}

		window, err := c.fetchWindow(ctx, windowStart, windowEnd)
		if err != nil {
			return nil, err
		}
		points = append(points, window...)
	}
	return points, nil
}

func (c *Client) fetchWindow(ctx context.Context, start, end time.Time) ([]core.RatePoint, error) {
	url := fmt.Sprintf("%s/bcdata.sgs.%d/dados?formato=json&dataInicial=%s&dataFinal=%s",
		c.baseURL, c.series, start.Format("02/01/2006"), end.Format("02/01/2006"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, core.WrapError(core.ErrSourceFailed, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, core.WrapError(core.ErrSourceFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.WrapError(core.ErrSourceFailed,
			fmt.Errorf("sgs series %d: unexpected status %d", c.series, resp.StatusCode))
	}

	// SGS encodes both fields as strings, dates day-first.
	var raw []struct {
		Date  string `json:"data"`
		Value string `json:"valor"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, core.WrapError(core.ErrSourceFailed, err)
	}

	points := make([]core.RatePoint, 0, len(raw))
	for _, item := range raw {
		date, err := time.Parse("02/01/2006", item.Date)
		if err != nil {
			continue
		}
		rate, err := strconv.ParseFloat(item.Value, 64)
		if err != nil {
			continue
		}
		points = append(points, core.RatePoint{Date: date, Rate: rate})
	}
	return points, nil
}
