package advisor

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"kospi-insight/internal/domain"

	"github.com/guregu/null/v6"
)

const analystBrief = `You explain weekly and monthly price statistics of Korean equities to retail investors.

How to read the data:
- "increase" is the change in closing price between the last two buckets, in KRW.
- "increase rate" is that change as a percentage of the previous bucket's close.
- mean/std/max/min describe all bucket-to-bucket changes over the past year.
- The momentum score is a fixed rule, not a forecast: it says "up" when the last close is above the yearly mean, and its confidence (0.6 to 1.0) rises when the 20-day average is above the 60-day average and when the last close is above the 20-day average.

Rules:
- Only use the numbers provided. If a value is n/a, say it is not available.
- Never present the momentum score as a guarantee.
- Keep answers short. Reply in the language of the question.`

func BuildSystemPrompt(stockContext string) string {
	var sb strings.Builder
	sb.WriteString(analystBrief)
	sb.WriteString("\n\n--- STOCK DATA (as of ")
	sb.WriteString(time.Now().UTC().Format(time.RFC822))
	sb.WriteString(") ---\n")
	sb.WriteString(stockContext)
	return sb.String()
}

func FormatSnapshots(snaps []*domain.Snapshot) string {
	if len(snaps) == 0 {
		return "No stock data currently available."
	}

	var sb strings.Builder
	for _, s := range snaps {
		sb.WriteString(fmt.Sprintf("\n%s (%s): current price %.0f KRW\n", s.Stock.Name, s.Stock.Code, s.Statistics.CurrentPrice))
		writeSummary(&sb, "Monthly", s.Statistics.Monthly)
		writeSummary(&sb, "Weekly", s.Statistics.Weekly)

		direction := "down"
		if s.Prediction.Direction {
			direction = "up"
		}
		ind := s.Prediction.Indicators
		sb.WriteString(fmt.Sprintf("  Momentum: %s, confidence %.1f (last %.0f, mean %.0f, MA20 %s, MA60 %s)\n",
			direction, s.Prediction.Confidence,
			ind.LastPrice, ind.AveragePrice,
			num(ind.MovingAvg20, "%.0f"), num(ind.MovingAvg60, "%.0f")))
	}
	return sb.String()
}

func writeSummary(sb *strings.Builder, label string, s domain.StatSummary) {
	sb.WriteString(fmt.Sprintf("  %s: increase %s (%s%%), mean %s, std %s, max %s, min %s\n",
		label,
		num(s.LatestIncrease, "%+.0f"), num(s.LatestIncreaseRate, "%+.2f"),
		num(s.MeanIncrease, "%.0f"), num(s.StdIncrease, "%.0f"),
		num(s.MaxIncrease, "%.0f"), num(s.MinIncrease, "%.0f")))
}

func num(v null.Float, format string) string {
	if !v.Valid {
		return "n/a"
	}
	return fmt.Sprintf(format, v.Float64)
}

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

// ExtractStocks finds the stocks mentioned in text, by display name
// (case-insensitive) or by six-digit code. Results keep the order of stocks.
func ExtractStocks(text string, stocks []domain.Stock) []domain.Stock {
	lower := strings.ToLower(text)
	codes := make(map[string]bool)
	for _, c := range codePattern.FindAllString(text, -1) {
		codes[c] = true
	}

	var result []domain.Stock
	for _, st := range stocks {
		if codes[st.Code] || strings.Contains(lower, strings.ToLower(st.Name)) {
			result = append(result, st)
		}
	}
	return result
}
