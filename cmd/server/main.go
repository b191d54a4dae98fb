package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kospi-insight/internal/advisor"
	"kospi-insight/internal/bot"
	"kospi-insight/internal/config"
	"kospi-insight/internal/handler"
	"kospi-insight/internal/logger"
	"kospi-insight/internal/metrics"
	"kospi-insight/internal/provider"
	"kospi-insight/internal/service"
	"kospi-insight/internal/ticker"
	"kospi-insight/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "kospi-insight/docs"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initLoggerFunc       = logger.Init
	initTracerFunc       = tracing.InitTracer
	newSeriesFetcherFunc = func(tracer trace.Tracer, cfg *config.Config) service.SeriesFetcher {
		return provider.NewYahooProvider(tracer, cfg.YahooBaseURL, cfg.YahooRatePerMin)
	}
	newLLMClientFunc       = advisor.NewOpenAIClient
	startTelegramBotFunc   = bot.StartTelegramBot
	newRouterFunc          = gin.New
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           KOSPI Insight API
// @version         1.0
// @description     Weekly and monthly price statistics, charts and a momentum heuristic for KRX stocks.

// @host      localhost:5000
// @BasePath  /
func main() {
	_ = loadEnvFunc()

	cfg := loadConfigFunc()
	if err := initLoggerFunc(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		log.Warn().Err(err).Msg("invalid logger config, using defaults")
	}
	metrics.Register()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracer")
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("error shutting down tracer provider")
		}
	}()

	stockService := service.NewStockService(
		tracer,
		newSeriesFetcherFunc(tracer, cfg),
		ticker.Default(),
		cfg.FetchPeriod,
		time.Duration(cfg.FetchTimeoutSecs)*time.Second,
	)

	h := handler.New(tracer, stockService)

	var asker bot.Asker
	if cfg.OpenAIAPIKey != "" {
		adv := advisor.NewAdvisorService(tracer, newLLMClientFunc(cfg.OpenAIAPIKey), stockService, cfg.OpenAIModel)
		h.SetAdvisor(adv)
		asker = adv
	}

	startTelegramBotFunc(cfg.TelegramBotToken, stockService, asker)

	r := newRouterFunc()
	r.Use(gin.Recovery(), otelgin.Middleware(tracing.ServiceName))

	h.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := startHTTPServerFunc(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info().Msg("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
