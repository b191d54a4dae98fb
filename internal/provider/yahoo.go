package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"kospi-insight/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	yahooBaseURL = "https://query1.finance.yahoo.com"
	// KRX listings are quoted on Yahoo with the KOSPI suffix.
	krxSuffix = ".KS"
)

// YahooProvider fetches daily bars from the Yahoo Finance chart API.
type YahooProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *rate.Limiter
}

// NewYahooProvider creates a provider allowing ratePerMin requests per
// minute with a burst of the same size. Throttled calls wait; they are
// never retried.
func NewYahooProvider(tracer trace.Tracer, baseURL string, ratePerMin int) *YahooProvider {
	if baseURL == "" {
		baseURL = yahooBaseURL
	}
	if ratePerMin <= 0 {
		ratePerMin = 60
	}
	return &YahooProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		tracer:  tracer,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMin)), ratePerMin),
	}
}

// Ticker returns the Yahoo symbol of a KRX code.
func Ticker(code string) string {
	return code + krxSuffix
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string `json:"symbol"`
				GMTOffset            int    `json:"gmtoffset"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDaily returns the daily bars of code over period (e.g. "1y").
func (p *YahooProvider) FetchDaily(ctx context.Context, code, period string) (*domain.PriceSeries, error) {
	ctx, span := p.tracer.Start(ctx, "yahoo.fetch-daily")
	defer span.End()

	ticker := Ticker(code)
	span.SetAttributes(attribute.String("ticker", ticker), attribute.String("period", period))

	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		p.baseURL, url.PathEscape(ticker), url.QueryEscape(period))

	body, err := p.doRequest(ctx, u)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fetchError(ticker, err)
	}

	var raw chartResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fetchError(ticker, fmt.Errorf("parse chart: %w", err))
	}
	if raw.Chart.Error != nil {
		return nil, fetchError(ticker, fmt.Errorf("%s: %s", raw.Chart.Error.Code, raw.Chart.Error.Description))
	}
	if len(raw.Chart.Result) == 0 || len(raw.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fetchError(ticker, fmt.Errorf("no data returned"))
	}

	result := raw.Chart.Result[0]
	loc := time.FixedZone(result.Meta.ExchangeTimezoneName, result.Meta.GMTOffset)
	bars := buildBars(result.Timestamp, result.Indicators.Quote[0].Open, result.Indicators.Quote[0].High,
		result.Indicators.Quote[0].Low, result.Indicators.Quote[0].Close, result.Indicators.Quote[0].Volume, loc)
	if len(bars) == 0 {
		return nil, fetchError(ticker, fmt.Errorf("empty history"))
	}

	span.SetAttributes(attribute.Int("bars", len(bars)))
	return &domain.PriceSeries{Code: code, Period: period, Bars: bars}, nil
}

func (p *YahooProvider) doRequest(ctx context.Context, u string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("yahoo API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

// buildBars zips the quote columns, dropping bars without a close
// (holidays and halted sessions), and sorts them ascending.
func buildBars(ts []int64, open, high, low, closes, volume []*float64, loc *time.Location) []domain.PriceBar {
	bars := make([]domain.PriceBar, 0, len(ts))
	for i, sec := range ts {
		c := valueAt(closes, i)
		if c == nil {
			continue
		}
		bars = append(bars, domain.PriceBar{
			Time:   time.Unix(sec, 0).In(loc),
			Open:   deref(valueAt(open, i)),
			High:   deref(valueAt(high, i)),
			Low:    deref(valueAt(low, i)),
			Close:  *c,
			Volume: deref(valueAt(volume, i)),
		})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars
}

func valueAt(col []*float64, i int) *float64 {
	if i >= len(col) {
		return nil
	}
	return col[i]
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func fetchError(ticker string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrFetchFailed, ticker, err)
}
