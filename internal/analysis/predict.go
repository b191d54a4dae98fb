package analysis

import (
	"fmt"

	"kospi-insight/internal/domain"
	"kospi-insight/internal/ta"

	"gonum.org/v1/gonum/stat"
)

const (
	shortWindow = 20
	longWindow  = 60
)

// confidenceLevels is indexed by the number of momentum conditions met.
var confidenceLevels = [...]float64{0.6, 0.8, 1.0}

// Predict scores a daily series with a fixed heuristic. Direction is up when
// the last close is strictly above the mean close of the whole series.
// Confidence starts at 0.6 and gains 0.2 for ma20 > ma60 and 0.2 for
// last close > ma20. A moving average without enough history fails its
// comparison.
func Predict(series *domain.PriceSeries) (*domain.PredictionResult, error) {
	closes := series.Closes()
	if len(closes) == 0 {
		return nil, fmt.Errorf("predict: empty series: %w", domain.ErrInsufficientData)
	}

	last := closes[len(closes)-1]
	avg := stat.Mean(closes, nil)
	ma20 := ta.SMALast(closes, shortWindow)
	ma60 := ta.SMALast(closes, longWindow)

	met := 0
	if ma20 > ma60 {
		met++
	}
	if last > ma20 {
		met++
	}

	return &domain.PredictionResult{
		Direction:  last > avg,
		Confidence: confidenceLevels[met],
		Indicators: domain.Indicators{
			LastPrice:    last,
			AveragePrice: avg,
			MovingAvg20:  nullable(ma20),
			MovingAvg60:  nullable(ma60),
		},
	}, nil
}
