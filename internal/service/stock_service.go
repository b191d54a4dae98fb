package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kospi-insight/internal/analysis"
	"kospi-insight/internal/chart"
	"kospi-insight/internal/domain"
	"kospi-insight/internal/metrics"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultFetchTimeout = 10 * time.Second

// SeriesFetcher retrieves a daily price series for a code.
type SeriesFetcher interface {
	FetchDaily(ctx context.Context, code, period string) (*domain.PriceSeries, error)
}

// TickerResolver maps display names to codes.
type TickerResolver interface {
	Resolve(name string) (string, bool)
	NameOf(code string) (string, bool)
	Stocks() []domain.Stock
}

type chartBuilder func(monthly, weekly *domain.ResampledSeries) (*domain.Visualization, error)

// StockService runs the per-request pipeline: fetch once, then resample,
// summarize, chart and predict. It holds no per-request state.
type StockService struct {
	tracer       trace.Tracer
	fetcher      SeriesFetcher
	resolver     TickerResolver
	period       string
	fetchTimeout time.Duration
	buildChart   chartBuilder
}

func NewStockService(
	tracer trace.Tracer,
	fetcher SeriesFetcher,
	resolver TickerResolver,
	period string,
	fetchTimeout time.Duration,
) *StockService {
	if period == "" {
		period = domain.DefaultPeriod
	}
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}
	return &StockService{
		tracer:       tracer,
		fetcher:      fetcher,
		resolver:     resolver,
		period:       period,
		fetchTimeout: fetchTimeout,
		buildChart:   chart.Build,
	}
}

// Stocks lists the supported display names and codes.
func (s *StockService) Stocks() []domain.Stock {
	return s.resolver.Stocks()
}

// ResolveCode looks up the code of a display name.
func (s *StockService) ResolveCode(ctx context.Context, name string) (domain.Stock, error) {
	_, span := s.tracer.Start(ctx, "stock-service.resolve-code")
	defer span.End()

	code, ok := s.resolver.Resolve(name)
	if !ok {
		err := fmt.Errorf("%w: %s", domain.ErrUnknownStock, name)
		s.fail(ctx, span, "resolve", err)
		return domain.Stock{}, err
	}
	span.SetAttributes(attribute.String("code", code))
	if canonical, ok := s.resolver.NameOf(code); ok {
		name = canonical
	}
	return domain.Stock{Name: name, Code: code}, nil
}

// Statistics computes the weekly and monthly summaries of code together with
// the chart payload.
func (s *StockService) Statistics(ctx context.Context, code string) (*domain.StatisticsReport, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.statistics")
	defer span.End()
	span.SetAttributes(attribute.String("code", code))

	series, err := s.fetch(ctx, code)
	if err != nil {
		s.fail(ctx, span, "statistics", err)
		return nil, err
	}

	stats, monthly, weekly, err := s.summarize(ctx, series)
	if err != nil {
		s.fail(ctx, span, "statistics", err)
		return nil, err
	}

	_, chartSpan := s.tracer.Start(ctx, "stock-service.render-chart")
	vis, err := s.buildChart(monthly, weekly)
	chartSpan.End()
	if err != nil {
		if !errors.Is(err, domain.ErrRenderFailed) {
			err = fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
		}
		s.fail(ctx, span, "statistics", err)
		return nil, err
	}

	return &domain.StatisticsReport{Statistics: *stats, Visualization: *vis}, nil
}

// Predict scores code with the momentum heuristic.
func (s *StockService) Predict(ctx context.Context, code string) (*domain.PredictionResult, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.predict")
	defer span.End()
	span.SetAttributes(attribute.String("code", code))

	series, err := s.fetch(ctx, code)
	if err != nil {
		s.fail(ctx, span, "predict", err)
		return nil, err
	}

	res, err := analysis.Predict(series)
	if err != nil {
		s.fail(ctx, span, "predict", err)
		return nil, err
	}
	span.SetAttributes(attribute.Float64("confidence", res.Confidence))
	return res, nil
}

// Snapshot computes statistics and prediction from a single fetch and skips
// chart rendering.
func (s *StockService) Snapshot(ctx context.Context, code string) (*domain.Snapshot, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.snapshot")
	defer span.End()
	span.SetAttributes(attribute.String("code", code))

	series, err := s.fetch(ctx, code)
	if err != nil {
		s.fail(ctx, span, "snapshot", err)
		return nil, err
	}

	stats, _, _, err := s.summarize(ctx, series)
	if err != nil {
		s.fail(ctx, span, "snapshot", err)
		return nil, err
	}
	pred, err := analysis.Predict(series)
	if err != nil {
		s.fail(ctx, span, "snapshot", err)
		return nil, err
	}

	stock := domain.Stock{Code: code}
	if name, ok := s.resolver.NameOf(code); ok {
		stock.Name = name
	}
	return &domain.Snapshot{Stock: stock, Statistics: *stats, Prediction: *pred}, nil
}

func (s *StockService) fetch(ctx context.Context, code string) (*domain.PriceSeries, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	series, err := s.fetcher.FetchDaily(ctx, code, s.period)
	if err != nil {
		if !errors.Is(err, domain.ErrFetchFailed) {
			err = fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
		}
		return nil, err
	}
	if series.Len() == 0 {
		return nil, fmt.Errorf("%w: no price history for %s", domain.ErrFetchFailed, code)
	}
	return series, nil
}

func (s *StockService) summarize(ctx context.Context, series *domain.PriceSeries) (*domain.Statistics, *domain.ResampledSeries, *domain.ResampledSeries, error) {
	_, span := s.tracer.Start(ctx, "stock-service.summarize")
	defer span.End()

	monthly, err := analysis.Resample(series, domain.Monthly)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to calculate data: %w", err)
	}
	weekly, err := analysis.Resample(series, domain.Weekly)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to calculate data: %w", err)
	}
	if monthly.Len() == 0 || weekly.Len() == 0 {
		return nil, nil, nil, fmt.Errorf("failed to calculate data: %w", domain.ErrInsufficientData)
	}

	current, _ := series.LastClose()
	span.SetAttributes(
		attribute.Int("monthly_buckets", monthly.Len()),
		attribute.Int("weekly_buckets", weekly.Len()),
	)
	return &domain.Statistics{
		Monthly:      analysis.Summarize(monthly),
		Weekly:       analysis.Summarize(weekly),
		CurrentPrice: current,
	}, monthly, weekly, nil
}

func (s *StockService) fail(ctx context.Context, span trace.Span, operation string, err error) {
	kind := domain.ErrorKind(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, kind)
	metrics.RecordAnalysisFailure(operation, kind)

	ev := log.Ctx(ctx).Warn()
	if kind == "render_failed" || kind == "internal" {
		ev = log.Ctx(ctx).Error()
	}
	ev.Err(err).Str("operation", operation).Str("kind", kind).Msg("stock analysis failed")
}
