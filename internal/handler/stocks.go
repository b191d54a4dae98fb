package handler

import (
	"errors"
	"net/http"
	"regexp"

	"kospi-insight/internal/advisor"
	"kospi-insight/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var codePattern = regexp.MustCompile(`^\d{6}$`)

// ListStocks godoc
// @Summary      List supported stocks
// @Description  Returns the display names and KRX codes the service knows about
// @Tags         stocks
// @Produce      json
// @Success      200  {object}  map[string][]domain.Stock
// @Router       /api/stocks [get]
func (h *Handler) ListStocks(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.list-stocks")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"stocks": h.stocks.Stocks()})
}

// LookupStock godoc
// @Summary      Resolve a stock name
// @Description  Maps a display name such as 삼성전자 to its six-digit KRX code
// @Tags         stocks
// @Produce      json
// @Param        name  query  string  true  "Display name"
// @Success      200  {object}  domain.Stock
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/stocks/lookup [get]
func (h *Handler) LookupStock(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.lookup-stock")
	defer span.End()

	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}

	stock, err := h.stocks.ResolveCode(ctx, name)
	if err != nil {
		writeError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// GetStatistics godoc
// @Summary      Weekly and monthly statistics
// @Description  Resamples one year of daily closes and returns change statistics with a base64 PNG chart
// @Tags         stocks
// @Produce      json
// @Param        code  path  string  true  "Six-digit KRX code (e.g., 005930)"
// @Success      200  {object}  domain.StatisticsReport
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/stocks/{code}/statistics [get]
func (h *Handler) GetStatistics(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-statistics")
	defer span.End()

	code, ok := codeParam(c, span)
	if !ok {
		return
	}

	report, err := h.stocks.Statistics(ctx, code)
	if err != nil {
		writeError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetPrediction godoc
// @Summary      Momentum heuristic
// @Description  Scores the last close against the yearly mean and the 20/60-day moving averages
// @Tags         stocks
// @Produce      json
// @Param        code  path  string  true  "Six-digit KRX code (e.g., 005930)"
// @Success      200  {object}  domain.PredictionResult
// @Failure      400  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/stocks/{code}/prediction [get]
func (h *Handler) GetPrediction(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-prediction")
	defer span.End()

	code, ok := codeParam(c, span)
	if !ok {
		return
	}

	res, err := h.stocks.Predict(ctx, code)
	if err != nil {
		writeError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetCommentary godoc
// @Summary      Plain-language commentary
// @Description  Asks the language model to explain the statistics and momentum score
// @Tags         stocks
// @Produce      json
// @Param        code  path  string  true  "Six-digit KRX code (e.g., 005930)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/stocks/{code}/commentary [get]
func (h *Handler) GetCommentary(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-commentary")
	defer span.End()

	if h.advisor == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commentary is disabled"})
		return
	}
	code, ok := codeParam(c, span)
	if !ok {
		return
	}

	text, err := h.advisor.Commentary(ctx, code)
	if err != nil {
		writeError(c, span, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code, "commentary": text})
}

func codeParam(c *gin.Context, span trace.Span) (string, bool) {
	code := c.Param("code")
	span.SetAttributes(attribute.String("code", code))
	if !codePattern.MatchString(code) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stock code: " + code})
		return "", false
	}
	return code, true
}

// StatusFor maps an analysis error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrUnknownStock):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrFetchFailed), errors.Is(err, advisor.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, span trace.Span, err error) {
	status := StatusFor(err)
	span.RecordError(err)
	span.SetStatus(codes.Error, http.StatusText(status))
	c.JSON(status, gin.H{"error": err.Error()})
}
