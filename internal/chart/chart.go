package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"

	"kospi-insight/internal/domain"

	"github.com/guregu/null/v6"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	DateLayout = "2006-01-02"

	width  = 12 * vg.Inch
	height = 8 * vg.Inch
)

var (
	monthlyColor = color.RGBA{B: 255, A: 255}
	weeklyColor  = color.RGBA{R: 255, A: 255}
)

type panel struct {
	title  string
	legend string
	color  color.Color
	series *domain.ResampledSeries
}

// Build renders the monthly (top) and weekly (bottom) increase rates as a
// base64 PNG and returns it with the plotted series. Every call owns its
// canvas, so Build is safe for concurrent use.
func Build(monthly, weekly *domain.ResampledSeries) (*domain.Visualization, error) {
	png, err := Render(monthly, weekly)
	if err != nil {
		return nil, err
	}
	return &domain.Visualization{
		Graph:       base64.StdEncoding.EncodeToString(png),
		MonthlyData: SeriesData(monthly),
		WeeklyData:  SeriesData(weekly),
	}, nil
}

// SeriesData lists period-end dates and increase rates. Undefined rates stay
// in place as nulls so the two slices line up.
func SeriesData(r *domain.ResampledSeries) domain.SeriesData {
	n := r.Len()
	out := domain.SeriesData{
		Dates:  make([]string, n),
		Values: make([]null.Float, n),
	}
	for i := 0; i < n; i++ {
		p := r.Points[i]
		out.Dates[i] = p.PeriodEnd.Format(DateLayout)
		out.Values[i] = p.IncreaseRate
	}
	return out
}

// Render draws the two-panel chart and returns the PNG bytes.
func Render(monthly, weekly *domain.ResampledSeries) ([]byte, error) {
	panels := []panel{
		{title: "Monthly Increase Rate", legend: "Monthly", color: monthlyColor, series: monthly},
		{title: "Weekly Increase Rate", legend: "Weekly", color: weeklyColor, series: weekly},
	}

	plots := make([][]*plot.Plot, len(panels))
	for i, pn := range panels {
		p, err := newPanel(pn)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrRenderFailed, pn.legend, err)
		}
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.New(width, height)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(panels),
		Cols:      1,
		PadTop:    vg.Points(10),
		PadBottom: vg.Points(10),
		PadLeft:   vg.Points(10),
		PadRight:  vg.Points(10),
		PadY:      vg.Points(20),
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("%w: encode png: %v", domain.ErrRenderFailed, err)
	}
	return buf.Bytes(), nil
}

func newPanel(pn panel) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = pn.title
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Increase Rate (%)"
	p.X.Tick.Marker = plot.TimeTicks{Format: DateLayout}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	pts := points(pn.series)
	if len(pts) == 0 {
		return p, nil
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = pn.color
	line.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add(pn.legend, line)
	return p, nil
}

// points keeps only defined rates; the plotter rejects NaN.
func points(r *domain.ResampledSeries) plotter.XYs {
	pts := make(plotter.XYs, 0, r.Len())
	for i := 0; i < r.Len(); i++ {
		p := r.Points[i]
		if !p.IncreaseRate.Valid {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(p.PeriodEnd.Unix()), Y: p.IncreaseRate.Float64})
	}
	return pts
}
