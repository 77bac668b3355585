package series

import (
	"math"
	"testing"
	"time"

	"github.com/quantbr/erva/internal/core"
)

func ratePoints(start time.Time, days int, rate float64) []core.RatePoint {
	points := make([]core.RatePoint, days)
	for i := range points {
		points[i] = core.RatePoint{Date: start.AddDate(0, 0, i), Rate: rate}
	}
	return points
}

func TestAnnualizeRates_ConstantRate(t *testing.T) {
	// 252 trading days at 0.04%/day: (1.0004)^252 - 1 ≈ 10.60%
	start := time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC)
	points := ratePoints(start, 252, 0.04)

	got := AnnualizeRates(points)

	if len(got) != 1 {
		t.Fatalf("got %d years, want 1", len(got))
	}
	if got[0].Year != 2022 {
		t.Errorf("year = %d, want 2022", got[0].Year)
	}
	want := math.Pow(1.0004, 252) - 1
	if math.Abs(got[0].Rate-want) > 1e-12 {
		t.Errorf("rate = %v, want %v", got[0].Rate, want)
	}
}

func TestAnnualizeRates_GroupsByCalendarYear(t *testing.T) {
	points := append(
		ratePoints(time.Date(2021, 12, 30, 0, 0, 0, 0, time.UTC), 2, 0.05),
		ratePoints(time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC), 3, 0.05)...,
	)

	got := AnnualizeRates(points)

	if len(got) != 2 {
		t.Fatalf("got %d years, want 2", len(got))
	}
	want2021 := math.Pow(1.0005, 2) - 1
	want2022 := math.Pow(1.0005, 3) - 1
	if math.Abs(got[0].Rate-want2021) > 1e-12 {
		t.Errorf("2021 rate = %v, want %v", got[0].Rate, want2021)
	}
	if math.Abs(got[1].Rate-want2022) > 1e-12 {
		t.Errorf("2022 rate = %v, want %v", got[1].Rate, want2022)
	}
}

func TestAnnualizeRates_DeduplicatesOverlappingWindows(t *testing.T) {
	// Two sub-range fetches sharing a boundary day must not compound it twice.
	first := ratePoints(time.Date(2022, 1, 3, 0, 0, 0, 0, time.UTC), 5, 0.04)
	second := ratePoints(time.Date(2022, 1, 7, 0, 0, 0, 0, time.UTC), 5, 0.04)

	got := AnnualizeRates(append(first, second...))

	want := math.Pow(1.0004, 9) - 1 // 9 distinct days
	if math.Abs(got[0].Rate-want) > 1e-12 {
		t.Errorf("rate = %v, want %v", got[0].Rate, want)
	}
}

func TestAnnualizeRates_Empty(t *testing.T) {
	if got := AnnualizeRates(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
