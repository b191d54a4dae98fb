package handler

import (
	"context"

	"kospi-insight/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// StockQuerier is the analysis surface served over HTTP.
type StockQuerier interface {
	Stocks() []domain.Stock
	ResolveCode(ctx context.Context, name string) (domain.Stock, error)
	Statistics(ctx context.Context, code string) (*domain.StatisticsReport, error)
	Predict(ctx context.Context, code string) (*domain.PredictionResult, error)
}

// Commentator produces a plain-language summary for a code.
type Commentator interface {
	Commentary(ctx context.Context, code string) (string, error)
}

type Handler struct {
	tracer  trace.Tracer
	stocks  StockQuerier
	advisor Commentator
}

func New(tracer trace.Tracer, stocks StockQuerier) *Handler {
	return &Handler{
		tracer: tracer,
		stocks: stocks,
	}
}

// SetAdvisor enables the commentary endpoint.
func (h *Handler) SetAdvisor(advisor Commentator) {
	h.advisor = advisor
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(RequestID(), RequestLogger(), Metrics(), APICORS())

	r.GET("/health", h.Health)

	api := r.Group("/api/stocks")
	api.GET("", h.ListStocks)
	api.GET("/lookup", h.LookupStock)
	api.GET("/:code/statistics", h.GetStatistics)
	api.GET("/:code/prediction", h.GetPrediction)
	api.GET("/:code/commentary", h.GetCommentary)
}
