package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"kospi-insight/internal/domain"
	"kospi-insight/internal/ticker"

	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

func TestStockService_ResolveCode(t *testing.T) {
	t.Parallel()

	svc := NewStockService(testTracer, &mockFetcher{}, ticker.Default(), "", 0)

	stock, err := svc.ResolveCode(context.Background(), "카카오")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stock.Code != "035720" || stock.Name != "카카오" {
		t.Fatalf("unexpected stock: %+v", stock)
	}

	_, err = svc.ResolveCode(context.Background(), "Apple")
	if !errors.Is(err, domain.ErrUnknownStock) {
		t.Fatalf("expected ErrUnknownStock, got %v", err)
	}
	if err.Error() != "unknown stock: Apple" {
		t.Fatalf("unexpected message: %s", err)
	}
}

func TestStockService_Defaults(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{series: dailySeries(300)}
	svc := NewStockService(testTracer, fetcher, ticker.Default(), "", 0)
	if svc.period != "1y" || svc.fetchTimeout != defaultFetchTimeout {
		t.Fatalf("unexpected defaults: %s %v", svc.period, svc.fetchTimeout)
	}
	if len(svc.Stocks()) != 4 {
		t.Fatalf("expected 4 stocks, got %d", len(svc.Stocks()))
	}
}

func TestStockService_Statistics(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{series: dailySeries(260)}
	svc := NewStockService(testTracer, fetcher, ticker.Default(), "6mo", time.Second)
	svc.buildChart = func(monthly, weekly *domain.ResampledSeries) (*domain.Visualization, error) {
		return &domain.Visualization{Graph: "png"}, nil
	}

	report, err := svc.Statistics(context.Background(), "005930")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected a single fetch, got %d", fetcher.calls)
	}
	if fetcher.lastCode != "005930" || fetcher.lastPeriod != "6mo" {
		t.Fatalf("unexpected fetch args: %s %s", fetcher.lastCode, fetcher.lastPeriod)
	}
	if !fetcher.hadDeadline {
		t.Fatal("fetch should run under a deadline")
	}

	last, _ := fetcher.series.LastClose()
	if report.Statistics.CurrentPrice != last {
		t.Fatalf("expected current price %v, got %v", last, report.Statistics.CurrentPrice)
	}
	if !report.Statistics.Monthly.StdIncrease.Valid || !report.Statistics.Weekly.MeanIncrease.Valid {
		t.Fatalf("expected defined statistics: %+v", report.Statistics)
	}
	if report.Visualization.Graph != "png" {
		t.Fatalf("unexpected visualization: %+v", report.Visualization)
	}
}

func TestStockService_StatisticsRendersChart(t *testing.T) {
	t.Parallel()

	svc := NewStockService(testTracer, &mockFetcher{series: dailySeries(120)}, ticker.Default(), "", 0)

	report, err := svc.Statistics(context.Background(), "000660")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Visualization.Graph == "" {
		t.Fatal("expected a rendered graph")
	}
	md := report.Visualization.MonthlyData
	wd := report.Visualization.WeeklyData
	if len(md.Dates) != len(md.Values) || len(wd.Dates) != len(wd.Values) {
		t.Fatal("chart series misaligned")
	}

	// The graph is left out: base64 text may contain "NaN" by chance.
	for _, v := range []any{report.Statistics, md, wd} {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("report should marshal: %v", err)
		}
		if strings.Contains(string(data), "NaN") {
			t.Fatalf("report json must not contain NaN: %s", data)
		}
	}
}

func TestStockService_StatisticsSingleBar(t *testing.T) {
	t.Parallel()

	svc := NewStockService(testTracer, &mockFetcher{series: dailySeries(1)}, ticker.Default(), "", 0)
	svc.buildChart = func(monthly, weekly *domain.ResampledSeries) (*domain.Visualization, error) {
		return &domain.Visualization{}, nil
	}

	report, err := svc.Statistics(context.Background(), "005930")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Statistics.Monthly.StdIncrease.Valid || report.Statistics.Weekly.LatestIncrease.Valid {
		t.Fatalf("single bar statistics should be undefined: %+v", report.Statistics)
	}
}

func TestStockService_FetchFailures(t *testing.T) {
	t.Parallel()

	tests := map[string]*mockFetcher{
		"error":        {err: errors.New("dial tcp: timeout")},
		"wrapped":      {err: domain.ErrFetchFailed},
		"empty series": {series: &domain.PriceSeries{}},
	}
	for name, fetcher := range tests {
		svc := NewStockService(testTracer, fetcher, ticker.Default(), "", 0)

		if _, err := svc.Statistics(context.Background(), "005930"); !errors.Is(err, domain.ErrFetchFailed) {
			t.Fatalf("%s: statistics expected ErrFetchFailed, got %v", name, err)
		}
		if _, err := svc.Predict(context.Background(), "005930"); !errors.Is(err, domain.ErrFetchFailed) {
			t.Fatalf("%s: predict expected ErrFetchFailed, got %v", name, err)
		}
		if _, err := svc.Snapshot(context.Background(), "005930"); !errors.Is(err, domain.ErrFetchFailed) {
			t.Fatalf("%s: snapshot expected ErrFetchFailed, got %v", name, err)
		}
	}
}

func TestStockService_RenderFailure(t *testing.T) {
	t.Parallel()

	svc := NewStockService(testTracer, &mockFetcher{series: dailySeries(90)}, ticker.Default(), "", 0)
	svc.buildChart = func(monthly, weekly *domain.ResampledSeries) (*domain.Visualization, error) {
		return nil, errors.New("canvas exploded")
	}

	_, err := svc.Statistics(context.Background(), "005930")
	if !errors.Is(err, domain.ErrRenderFailed) {
		t.Fatalf("expected ErrRenderFailed, got %v", err)
	}
}

func TestStockService_Predict(t *testing.T) {
	t.Parallel()

	svc := NewStockService(testTracer, &mockFetcher{series: dailySeries(100)}, ticker.Default(), "", 0)

	res, err := svc.Predict(context.Background(), "035420")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Direction || res.Confidence != 1.0 {
		t.Fatalf("rising series should predict up with full confidence: %+v", res)
	}
}

func TestStockService_Snapshot(t *testing.T) {
	t.Parallel()

	fetcher := &mockFetcher{series: dailySeries(100)}
	svc := NewStockService(testTracer, fetcher, ticker.Default(), "", 0)

	snap, err := svc.Snapshot(context.Background(), "035420")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetcher.calls != 1 {
		t.Fatalf("expected a single fetch, got %d", fetcher.calls)
	}
	if snap.Stock.Name != "NAVER" || snap.Stock.Code != "035420" {
		t.Fatalf("unexpected stock: %+v", snap.Stock)
	}
	if snap.Prediction.Confidence != 1.0 || snap.Statistics.CurrentPrice == 0 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

type mockFetcher struct {
	series *domain.PriceSeries
	err    error

	calls       int
	lastCode    string
	lastPeriod  string
	hadDeadline bool
}

func (m *mockFetcher) FetchDaily(ctx context.Context, code, period string) (*domain.PriceSeries, error) {
	m.calls++
	m.lastCode = code
	m.lastPeriod = period
	_, m.hadDeadline = ctx.Deadline()
	if m.err != nil {
		return nil, m.err
	}
	return m.series, nil
}

// dailySeries returns n weekday bars with a strictly rising close.
func dailySeries(n int) *domain.PriceSeries {
	s := &domain.PriceSeries{Code: "005930", Period: "1y"}
	day := time.Date(2025, 1, 2, 9, 0, 0, 0, time.FixedZone("KST", 9*60*60))
	for i := 0; len(s.Bars) < n; i++ {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			c := 50000 + float64(len(s.Bars))*100
			s.Bars = append(s.Bars, domain.PriceBar{Time: day, Open: c, High: c, Low: c, Close: c, Volume: 1000})
		}
		day = day.AddDate(0, 0, 1)
	}
	return s
}

func TestStockService_ResolveCodeTrimsName(t *testing.T) {
	t.Parallel()

	svc := NewStockService(testTracer, &mockFetcher{}, ticker.Default(), "", 0)
	stock, err := svc.ResolveCode(context.Background(), "  NAVER ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stock.Name != "NAVER" || stock.Code != "035420" {
		t.Fatalf("unexpected stock: %+v", stock)
	}
}
