package ta

import "math"

// Diff returns the first difference of values. Index 0 is NaN.
func Diff(values []float64) []float64 {
	out := nanSeries(len(values))
	for i := 1; i < len(values); i++ {
		out[i] = values[i] - values[i-1]
	}
	return out
}

// PctChange returns the percent change from the previous value, scaled to
// percent. Index 0, and any index whose previous value is 0, is NaN.
func PctChange(values []float64) []float64 {
	out := nanSeries(len(values))
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			continue
		}
		out[i] = (values[i] - prev) / prev * 100
	}
	return out
}

// SMASeries returns the trailing simple moving average of values over period,
// NaN until period observations are available. The window sum is maintained
// incrementally.
func SMASeries(values []float64, period int) []float64 {
	out := nanSeries(len(values))
	if period <= 0 {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// SMALast returns the trailing simple moving average ending at the last
// value, or NaN when fewer than period values exist.
func SMALast(values []float64, period int) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return SMASeries(values, period)[len(values)-1]
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
