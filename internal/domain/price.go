package domain

import "time"

// PriceBar is a single daily OHLCV record.
type PriceBar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries is an ascending run of bars for one code and lookback period.
// It is built once per fetch and never mutated afterwards.
type PriceSeries struct {
	Code   string     `json:"code"`
	Period string     `json:"period"`
	Bars   []PriceBar `json:"bars"`
}

func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Bars)
}

// Closes returns the close column in chronological order.
func (s *PriceSeries) Closes() []float64 {
	if s == nil {
		return nil
	}
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// LastClose returns the most recent close and false when the series is empty.
func (s *PriceSeries) LastClose() (float64, bool) {
	if s.Len() == 0 {
		return 0, false
	}
	return s.Bars[len(s.Bars)-1].Close, true
}

type Granularity string

const (
	Weekly  Granularity = "weekly"
	Monthly Granularity = "monthly"
)

func (g Granularity) IsValid() bool {
	return g == Weekly || g == Monthly
}

// DefaultPeriod is the lookback requested from the market data provider.
const DefaultPeriod = "1y"

// SupportedPeriods lists lookbacks the chart API accepts for daily bars.
var SupportedPeriods = []string{"1mo", "3mo", "6mo", "1y", "2y", "5y"}
