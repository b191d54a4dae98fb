package analysis

import (
	"time"

	"kospi-insight/internal/domain"
)

var seoul = time.FixedZone("KST", 9*60*60)

// tradingDays builds a weekday-only daily series starting Monday 2025-01-06.
func tradingDays(closes []float64) *domain.PriceSeries {
	s := &domain.PriceSeries{Code: "005930", Period: "1y"}
	day := time.Date(2025, 1, 6, 9, 0, 0, 0, seoul)
	for _, c := range closes {
		for day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			day = day.AddDate(0, 0, 1)
		}
		s.Bars = append(s.Bars, domain.PriceBar{Time: day, Open: c, High: c, Low: c, Close: c})
		day = day.AddDate(0, 0, 1)
	}
	return s
}

func linear(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}
