package analysis

import (
	"kospi-insight/internal/domain"

	"github.com/guregu/null/v6"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summarize reports the latest bucket's change and the distribution of all
// defined changes. Every field stays null below two buckets; the standard
// deviation (sample, n-1) stays null below two defined changes.
func Summarize(r *domain.ResampledSeries) domain.StatSummary {
	var s domain.StatSummary
	if r.Len() < 2 {
		return s
	}

	last := r.Points[len(r.Points)-1]
	s.LatestIncrease = last.Increase
	s.LatestIncreaseRate = last.IncreaseRate

	increases := make([]float64, 0, len(r.Points))
	for _, p := range r.Points {
		if p.Increase.Valid {
			increases = append(increases, p.Increase.Float64)
		}
	}
	if len(increases) == 0 {
		return s
	}

	s.MeanIncrease = null.FloatFrom(stat.Mean(increases, nil))
	s.MaxIncrease = null.FloatFrom(floats.Max(increases))
	s.MinIncrease = null.FloatFrom(floats.Min(increases))
	if len(increases) >= 2 {
		s.StdIncrease = nullable(stat.StdDev(increases, nil))
	}
	return s
}
