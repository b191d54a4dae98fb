package ticker

import (
	"strings"

	"kospi-insight/internal/domain"
)

// DefaultStocks is the built-in display name to KRX code table.
var DefaultStocks = []domain.Stock{
	{Name: "삼성전자", Code: "005930"},
	{Name: "SK하이닉스", Code: "000660"},
	{Name: "NAVER", Code: "035420"},
	{Name: "카카오", Code: "035720"},
}

// Resolver maps display names to exchange codes. It is immutable once built
// and safe for concurrent use.
type Resolver struct {
	byName map[string]string
	byCode map[string]string
	stocks []domain.Stock
}

func NewResolver(stocks []domain.Stock) *Resolver {
	r := &Resolver{
		byName: make(map[string]string, len(stocks)),
		byCode: make(map[string]string, len(stocks)),
		stocks: make([]domain.Stock, 0, len(stocks)),
	}
	for _, s := range stocks {
		if _, dup := r.byName[s.Name]; dup {
			continue
		}
		r.byName[s.Name] = s.Code
		r.byCode[s.Code] = s.Name
		r.stocks = append(r.stocks, s)
	}
	return r
}

// Default returns a resolver over DefaultStocks.
func Default() *Resolver {
	return NewResolver(DefaultStocks)
}

// Resolve returns the code for a display name.
func (r *Resolver) Resolve(name string) (string, bool) {
	code, ok := r.byName[strings.TrimSpace(name)]
	return code, ok
}

// NameOf is the reverse lookup, used to label reports.
func (r *Resolver) NameOf(code string) (string, bool) {
	name, ok := r.byCode[code]
	return name, ok
}

// Stocks lists the table in insertion order. The returned slice is a copy.
func (r *Resolver) Stocks() []domain.Stock {
	return append([]domain.Stock(nil), r.stocks...)
}

// Names lists the display names in table order.
func (r *Resolver) Names() []string {
	names := make([]string, len(r.stocks))
	for i, s := range r.stocks {
		names[i] = s.Name
	}
	return names
}
