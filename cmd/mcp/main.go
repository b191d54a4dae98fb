package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kospi-insight/internal/config"
	"kospi-insight/internal/domain"
	"kospi-insight/internal/logger"
	"kospi-insight/internal/provider"
	"kospi-insight/internal/service"
	"kospi-insight/internal/ticker"
	"kospi-insight/pkg/tracing"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initTracerFunc       = tracing.InitTracer
	newSeriesFetcherFunc = func(tracer trace.Tracer, cfg *config.Config) service.SeriesFetcher {
		return provider.NewYahooProvider(tracer, cfg.YahooBaseURL, cfg.YahooRatePerMin)
	}
	runServerFunc = func(ctx context.Context, server *mcp.Server) error {
		return server.Run(ctx, &mcp.StdioTransport{})
	}
)

// StockTools is the analysis surface exposed as MCP tools.
type StockTools interface {
	ResolveCode(ctx context.Context, name string) (domain.Stock, error)
	Statistics(ctx context.Context, code string) (*domain.StatisticsReport, error)
	Predict(ctx context.Context, code string) (*domain.PredictionResult, error)
}

type resolveInput struct {
	Name string `json:"name" jsonschema:"display name of the stock, e.g. 삼성전자"`
}

type codeInput struct {
	Code string `json:"code" jsonschema:"six-digit KRX code, e.g. 005930"`
}

type toolset struct {
	stocks StockTools
}

func newServer(stocks StockTools) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: tracing.ServiceName, Version: "1.0.0"}, nil)
	t := &toolset{stocks: stocks}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_stock",
		Description: "Resolve a Korean stock display name to its six-digit KRX code.",
	}, t.resolveStock)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "stock_statistics",
		Description: "Weekly and monthly closing price change statistics for a KRX code over the last year. The chart image is omitted.",
	}, t.stockStatistics)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "stock_prediction",
		Description: "Momentum heuristic for a KRX code: direction, confidence and the moving averages it is based on.",
	}, t.stockPrediction)
	return server
}

func (t *toolset) resolveStock(ctx context.Context, _ *mcp.CallToolRequest, in resolveInput) (*mcp.CallToolResult, any, error) {
	stock, err := t.stocks.ResolveCode(ctx, in.Name)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(stock), nil, nil
}

func (t *toolset) stockStatistics(ctx context.Context, _ *mcp.CallToolRequest, in codeInput) (*mcp.CallToolResult, any, error) {
	report, err := t.stocks.Statistics(ctx, in.Code)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(report.Statistics), nil, nil
}

func (t *toolset) stockPrediction(ctx context.Context, _ *mcp.CallToolRequest, in codeInput) (*mcp.CallToolResult, any, error) {
	res, err := t.stocks.Predict(ctx, in.Code)
	if err != nil {
		return errorResult(err), nil, nil
	}
	return jsonResult(res), nil, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult(err)
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: string(data)}}}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}

func main() {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()

	// stdout carries the protocol.
	if err := logger.InitWithWriter(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, os.Stderr); err != nil {
		log.Warn().Err(err).Msg("invalid logger config, using defaults")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	svc := service.NewStockService(
		tracer,
		newSeriesFetcherFunc(tracer, cfg),
		ticker.Default(),
		cfg.FetchPeriod,
		time.Duration(cfg.FetchTimeoutSecs)*time.Second,
	)

	log.Info().Msg("mcp server starting on stdio")
	if err := runServerFunc(ctx, newServer(svc)); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("mcp server stopped")
	}
}
