package bot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"kospi-insight/internal/domain"

	"github.com/guregu/null/v6"
	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"
)

const replyTimeout = 20 * time.Second

var codePattern = regexp.MustCompile(`^\d{6}$`)

// StockAnalyzer is the slice of the stock service the bot needs.
type StockAnalyzer interface {
	Stocks() []domain.Stock
	ResolveCode(ctx context.Context, name string) (domain.Stock, error)
	Snapshot(ctx context.Context, code string) (*domain.Snapshot, error)
}

// Asker answers free-form questions. A nil Asker disables /ask.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

func StartTelegramBot(token string, stocks StockAnalyzer, advisor Asker) {
	if token == "" {
		log.Info().Msg("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Error().Err(err).Msg("failed to create Telegram bot")
		return
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})
	b.Handle("/code", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		return c.Send(CodeReply(ctx, stocks, c.Args()))
	})
	b.Handle("/stats", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		return c.Send(StatsReply(ctx, stocks, c.Args()))
	})
	b.Handle("/predict", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		return c.Send(PredictReply(ctx, stocks, c.Args()))
	})
	b.Handle("/ask", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), replyTimeout)
		defer cancel()
		return c.Send(AskReply(ctx, advisor, c.Args()))
	})

	log.Info().Msg("Telegram bot started")
	go b.Start()
}

func CodeReply(ctx context.Context, stocks StockAnalyzer, args []string) string {
	if len(args) == 0 {
		return usage("/code 삼성전자", stocks)
	}
	stock, err := stocks.ResolveCode(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Sprintf("%v\n%s", err, supported(stocks))
	}
	return fmt.Sprintf("%s: %s", stock.Name, stock.Code)
}

func StatsReply(ctx context.Context, stocks StockAnalyzer, args []string) string {
	snap, msg := snapshot(ctx, stocks, args, "/stats 삼성전자")
	if snap == nil {
		return msg
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s (%s)\nCurrent price: %.0f\n", snap.Stock.Name, snap.Stock.Code, snap.Statistics.CurrentPrice))
	for _, p := range []struct {
		label string
		s     domain.StatSummary
	}{
		{"Monthly", snap.Statistics.Monthly},
		{"Weekly", snap.Statistics.Weekly},
	} {
		sb.WriteString(fmt.Sprintf("\n%s\nIncrease: %s (%s%%)\nMean: %s  Std: %s\nMax: %s  Min: %s\n",
			p.label,
			num(p.s.LatestIncrease, "%+.0f"), num(p.s.LatestIncreaseRate, "%+.2f"),
			num(p.s.MeanIncrease, "%.0f"), num(p.s.StdIncrease, "%.0f"),
			num(p.s.MaxIncrease, "%.0f"), num(p.s.MinIncrease, "%.0f")))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func PredictReply(ctx context.Context, stocks StockAnalyzer, args []string) string {
	snap, msg := snapshot(ctx, stocks, args, "/predict 삼성전자")
	if snap == nil {
		return msg
	}

	p := snap.Prediction
	direction := "DOWN"
	if p.Direction {
		direction = "UP"
	}
	return fmt.Sprintf("%s (%s)\nMomentum: %s\nConfidence: %.1f\nLast: %.0f  Mean: %.0f\nMA20: %s  MA60: %s",
		snap.Stock.Name, snap.Stock.Code, direction, p.Confidence,
		p.Indicators.LastPrice, p.Indicators.AveragePrice,
		num(p.Indicators.MovingAvg20, "%.0f"), num(p.Indicators.MovingAvg60, "%.0f"))
}

func AskReply(ctx context.Context, advisor Asker, args []string) string {
	if advisor == nil {
		return "Commentary is disabled (OPENAI_API_KEY not set)."
	}
	if len(args) == 0 {
		return "Usage: /ask 삼성전자 요즘 어때?"
	}
	answer, err := advisor.Ask(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	return answer
}

// snapshot resolves the argument, a display name or a six-digit code, and
// analyses it. On failure the returned message is ready to send.
func snapshot(ctx context.Context, stocks StockAnalyzer, args []string, example string) (*domain.Snapshot, string) {
	if len(args) == 0 {
		return nil, usage(example, stocks)
	}
	arg := strings.Join(args, " ")

	code := arg
	if !codePattern.MatchString(arg) {
		stock, err := stocks.ResolveCode(ctx, arg)
		if err != nil {
			return nil, fmt.Sprintf("%v\n%s", err, supported(stocks))
		}
		code = stock.Code
	}

	snap, err := stocks.Snapshot(ctx, code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFetchFailed):
			return nil, fmt.Sprintf("Could not fetch prices for %s, try again later.", code)
		case errors.Is(err, domain.ErrInsufficientData):
			return nil, fmt.Sprintf("Not enough price history for %s.", code)
		default:
			return nil, fmt.Sprintf("Error analysing %s: %v", code, err)
		}
	}
	return snap, ""
}

func usage(example string, stocks StockAnalyzer) string {
	return fmt.Sprintf("Usage: %s\n%s", example, supported(stocks))
}

func supported(stocks StockAnalyzer) string {
	names := make([]string, 0, len(stocks.Stocks()))
	for _, s := range stocks.Stocks() {
		names = append(names, s.Name)
	}
	return "Supported: " + strings.Join(names, ", ")
}

func num(v null.Float, format string) string {
	if !v.Valid {
		return "n/a"
	}
	return fmt.Sprintf(format, v.Float64)
}
