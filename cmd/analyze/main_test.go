package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"kospi-insight/internal/config"
	"kospi-insight/internal/domain"
	"kospi-insight/internal/service"

	"github.com/guregu/null/v6"
	"go.opentelemetry.io/otel/trace"
)

func stubDeps(t *testing.T, fetcher service.SeriesFetcher) {
	t.Helper()
	origEnv, origCfg, origFetcher := loadEnvFunc, loadConfigFunc, newSeriesFetcherFunc
	t.Cleanup(func() {
		loadEnvFunc, loadConfigFunc, newSeriesFetcherFunc = origEnv, origCfg, origFetcher
	})

	loadEnvFunc = func(...string) error { return nil }
	loadConfigFunc = func() *config.Config {
		return &config.Config{FetchPeriod: "1y", FetchTimeoutSecs: 1, LogLevel: "error"}
	}
	newSeriesFetcherFunc = func(trace.Tracer, *config.Config) service.SeriesFetcher { return fetcher }
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if code := run([]string{"-name", "카카오", "-code", "035720"}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2 with both flags, got %d", code)
	}
	if !strings.Contains(stderr.String(), "exactly one of -name or -code") {
		t.Fatalf("unexpected usage output: %s", stderr.String())
	}
}

func TestRunByName(t *testing.T) {
	fetcher := &stubFetcher{series: risingSeries(80)}
	stubDeps(t, fetcher)

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-name", "카카오"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if fetcher.code != "035720" {
		t.Fatalf("expected resolved code to be fetched, got %s", fetcher.code)
	}
	out := stdout.String()
	for _, want := range []string{"카카오 (035720)", "Monthly", "Weekly", "Momentum", "UP"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}

func TestRunUnknownName(t *testing.T) {
	stubDeps(t, &stubFetcher{})

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-name", "Apple"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "unknown stock: Apple") {
		t.Fatalf("unexpected stderr: %s", stderr.String())
	}
}

func TestRunFetchFailure(t *testing.T) {
	stubDeps(t, &stubFetcher{err: domain.ErrFetchFailed})

	var stdout, stderr bytes.Buffer
	if code := run([]string{"-code", "005930"}, &stdout, &stderr); code != 3 {
		t.Fatalf("expected exit 3, got %d", code)
	}
	if stdout.Len() != 0 {
		t.Fatalf("nothing should be printed on failure: %s", stdout.String())
	}
}

func TestRenderReportUndefinedValues(t *testing.T) {
	out := renderReport(&domain.Snapshot{
		Stock: domain.Stock{Code: "005930"},
		Statistics: domain.Statistics{
			Monthly:      domain.StatSummary{LatestIncrease: null.FloatFrom(-500)},
			CurrentPrice: 1000,
		},
		Prediction: domain.PredictionResult{Confidence: 0.6},
	})
	for _, want := range []string{"005930", "-500", "n/a", "DOWN", "0.6"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in report:\n%s", want, out)
		}
	}
}

type stubFetcher struct {
	series *domain.PriceSeries
	err    error
	code   string
}

func (s *stubFetcher) FetchDaily(ctx context.Context, code, period string) (*domain.PriceSeries, error) {
	s.code = code
	if s.err != nil {
		return nil, s.err
	}
	return s.series, nil
}

func risingSeries(n int) *domain.PriceSeries {
	s := &domain.PriceSeries{Code: "035720", Period: "1y"}
	day := time.Date(2025, 3, 3, 9, 0, 0, 0, time.FixedZone("KST", 9*60*60))
	for len(s.Bars) < n {
		if wd := day.Weekday(); wd != time.Saturday && wd != time.Sunday {
			c := 40000 + float64(len(s.Bars))*50
			s.Bars = append(s.Bars, domain.PriceBar{Time: day, Open: c, High: c, Low: c, Close: c})
		}
		day = day.AddDate(0, 0, 1)
	}
	return s
}
