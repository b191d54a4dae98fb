package domain

import (
	"time"

	"github.com/guregu/null/v6"
)

// ResampledPoint is one bucket of a resampled series. Increase and
// IncreaseRate are invalid for the first bucket.
type ResampledPoint struct {
	PeriodEnd    time.Time  `json:"period_end"`
	Close        float64    `json:"close"`
	Increase     null.Float `json:"increase"`
	IncreaseRate null.Float `json:"increase_rate"`
}

type ResampledSeries struct {
	Granularity Granularity      `json:"granularity"`
	Points      []ResampledPoint `json:"points"`
}

func (r *ResampledSeries) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Points)
}

// StatSummary describes the bucket-to-bucket differences of one granularity.
type StatSummary struct {
	LatestIncrease     null.Float `json:"increase"`
	LatestIncreaseRate null.Float `json:"increase_rate"`
	MeanIncrease       null.Float `json:"mean"`
	StdIncrease        null.Float `json:"std"`
	MaxIncrease        null.Float `json:"max"`
	MinIncrease        null.Float `json:"min"`
}

type Statistics struct {
	Monthly      StatSummary `json:"monthly"`
	Weekly       StatSummary `json:"weekly"`
	CurrentPrice float64     `json:"current_price"`
}

// SeriesData is a plotted series; Dates and Values always have the same length.
type SeriesData struct {
	Dates  []string     `json:"dates"`
	Values []null.Float `json:"values"`
}

type Visualization struct {
	Graph       string     `json:"graph"`
	MonthlyData SeriesData `json:"monthly_data"`
	WeeklyData  SeriesData `json:"weekly_data"`
}

type StatisticsReport struct {
	Statistics    Statistics    `json:"statistics"`
	Visualization Visualization `json:"visualization"`
}

type Indicators struct {
	LastPrice    float64    `json:"last_price"`
	AveragePrice float64    `json:"average_price"`
	MovingAvg20  null.Float `json:"moving_avg_20"`
	MovingAvg60  null.Float `json:"moving_avg_60"`
}

// PredictionResult is the outcome of the momentum heuristic. Confidence is
// always one of 0.6, 0.8 or 1.0.
type PredictionResult struct {
	Direction  bool       `json:"prediction"`
	Confidence float64    `json:"confidence"`
	Indicators Indicators `json:"indicators"`
}

// Stock is an entry of the name to code table.
type Stock struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Snapshot bundles the statistics and prediction of one code without the
// rendered chart.
type Snapshot struct {
	Stock      Stock            `json:"stock"`
	Statistics Statistics       `json:"statistics"`
	Prediction PredictionResult `json:"prediction"`
}
