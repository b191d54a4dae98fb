package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"kospi-insight/internal/config"
	"kospi-insight/internal/domain"
	"kospi-insight/internal/logger"
	"kospi-insight/internal/provider"
	"kospi-insight/internal/service"
	"kospi-insight/internal/ticker"
	"kospi-insight/pkg/tracing"

	"github.com/charmbracelet/lipgloss"
	"github.com/guregu/null/v6"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	newSeriesFetcherFunc = func(tracer trace.Tracer, cfg *config.Config) service.SeriesFetcher {
		return provider.NewYahooProvider(tracer, cfg.YahooBaseURL, cfg.YahooRatePerMin)
	}
	exitFunc = os.Exit
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	upStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	downStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
)

func main() {
	exitFunc(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	name := fs.String("name", "", "stock display name, e.g. 삼성전자")
	code := fs.String("code", "", "six-digit KRX code, e.g. 005930")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if (*name == "") == (*code == "") {
		fmt.Fprintln(stderr, "exactly one of -name or -code is required")
		fs.Usage()
		return 2
	}

	_ = loadEnvFunc()
	cfg := loadConfigFunc()
	if err := logger.InitWithWriter(logger.Config{Level: cfg.LogLevel, Format: "console"}, stderr); err != nil {
		fmt.Fprintln(stderr, err)
	}

	tracer := otel.Tracer(tracing.ServiceName)
	svc := service.NewStockService(
		tracer,
		newSeriesFetcherFunc(tracer, cfg),
		ticker.Default(),
		cfg.FetchPeriod,
		time.Duration(cfg.FetchTimeoutSecs)*time.Second,
	)

	ctx := context.Background()
	target := *code
	if *name != "" {
		stock, err := svc.ResolveCode(ctx, *name)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		target = stock.Code
	}

	snap, err := svc.Snapshot(ctx, target)
	if err != nil {
		log.Error().Err(err).Str("code", target).Msg("analysis failed")
		if errors.Is(err, domain.ErrFetchFailed) {
			return 3
		}
		return 1
	}

	fmt.Fprintln(stdout, renderReport(snap))
	return 0
}

func renderReport(s *domain.Snapshot) string {
	title := s.Stock.Code
	if s.Stock.Name != "" {
		title = fmt.Sprintf("%s (%s)", s.Stock.Name, s.Stock.Code)
	}

	rows := []string{
		titleStyle.Render(title),
		row("Current price", fmt.Sprintf("%.0f", s.Statistics.CurrentPrice)),
		"",
		summaryBlock("Monthly", s.Statistics.Monthly),
		"",
		summaryBlock("Weekly", s.Statistics.Weekly),
		"",
		predictionBlock(s.Prediction),
	}
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func summaryBlock(label string, s domain.StatSummary) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(label),
		row("Increase", signed(s.LatestIncrease, "%+.0f")),
		row("Increase rate", signed(s.LatestIncreaseRate, "%+.2f%%")),
		row("Mean", num(s.MeanIncrease, "%.0f")),
		row("Std", num(s.StdIncrease, "%.0f")),
		row("Max / Min", num(s.MaxIncrease, "%.0f")+" / "+num(s.MinIncrease, "%.0f")),
	)
}

func predictionBlock(p domain.PredictionResult) string {
	direction := downStyle.Render("DOWN")
	if p.Direction {
		direction = upStyle.Render("UP")
	}
	ind := p.Indicators
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Momentum"),
		row("Direction", direction),
		row("Confidence", fmt.Sprintf("%.1f", p.Confidence)),
		row("Last / Mean", fmt.Sprintf("%.0f / %.0f", ind.LastPrice, ind.AveragePrice)),
		row("MA20 / MA60", num(ind.MovingAvg20, "%.0f")+" / "+num(ind.MovingAvg60, "%.0f")),
	)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

// signed colours a change the KRX way: red up, blue down.
func signed(v null.Float, format string) string {
	s := num(v, format)
	switch {
	case !v.Valid || v.Float64 == 0:
		return s
	case v.Float64 > 0:
		return upStyle.Render(s)
	default:
		return downStyle.Render(s)
	}
}

func num(v null.Float, format string) string {
	if !v.Valid {
		return "n/a"
	}
	return strings.TrimSpace(fmt.Sprintf(format, v.Float64))
}
