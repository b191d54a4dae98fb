package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"kospi-insight/internal/domain"
	"kospi-insight/internal/ta"

	"github.com/guregu/null/v6"
)

// Resample buckets a daily series by granularity and keeps the last close
// observed in each bucket. Buckets are keyed by their period end: the last
// calendar day of the month, or the Sunday closing the week. Buckets without
// any bar are not emitted.
func Resample(series *domain.PriceSeries, g domain.Granularity) (*domain.ResampledSeries, error) {
	if !g.IsValid() {
		return nil, fmt.Errorf("unsupported granularity %q", g)
	}
	if series.Len() == 0 {
		return nil, fmt.Errorf("resample %s: empty series: %w", g, domain.ErrInsufficientData)
	}

	bars := append([]domain.PriceBar(nil), series.Bars...)
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	var (
		keys   []time.Time
		closes []float64
	)
	for _, b := range bars {
		key := PeriodEnd(b.Time, g)
		if n := len(keys); n > 0 && keys[n-1].Equal(key) {
			closes[n-1] = b.Close
			continue
		}
		keys = append(keys, key)
		closes = append(closes, b.Close)
	}

	increase := ta.Diff(closes)
	rate := ta.PctChange(closes)

	out := &domain.ResampledSeries{
		Granularity: g,
		Points:      make([]domain.ResampledPoint, len(keys)),
	}
	for i := range keys {
		out.Points[i] = domain.ResampledPoint{
			PeriodEnd:    keys[i],
			Close:        closes[i],
			Increase:     nullable(increase[i]),
			IncreaseRate: nullable(rate[i]),
		}
	}
	return out, nil
}

// PeriodEnd returns the bucket key of t, at midnight in t's location.
func PeriodEnd(t time.Time, g domain.Granularity) time.Time {
	y, m, d := t.Date()
	switch g {
	case domain.Monthly:
		return time.Date(y, m+1, 0, 0, 0, 0, 0, t.Location())
	default:
		toSunday := (7 - int(t.Weekday())) % 7
		return time.Date(y, m, d+toSunday, 0, 0, 0, 0, t.Location())
	}
}

func nullable(v float64) null.Float {
	return null.NewFloat(v, !math.IsNaN(v) && !math.IsInf(v, 0))
}
