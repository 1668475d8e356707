package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/Rahul-web-hub/News-Sentiment-API/internal/model"
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/pipeline"

	"github.com/gin-gonic/gin"
)

type Analyzer interface {
	Analyze(ctx context.Context, symbol string) (*model.SentimentResult, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type SentimentHandler struct {
	analyzer Analyzer
	cache    Pinger
}

func NewSentimentHandler(analyzer Analyzer, cache Pinger) *SentimentHandler {
	return &SentimentHandler{analyzer: analyzer, cache: cache}
}

func (h *SentimentHandler) PostSentiment(c *gin.Context) {
	var req SentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	h.respond(c, req.Symbol)
}

func (h *SentimentHandler) GetSentiment(c *gin.Context) {
	h.respond(c, c.Param("symbol"))
}

func (h *SentimentHandler) respond(c *gin.Context, symbol string) {
	result, err := h.analyzer.Analyze(c.Request.Context(), symbol)

	if errors.Is(err, pipeline.ErrInvalidSymbol) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Symbol is required"})
		return
	}

	if errors.Is(err, pipeline.ErrNoHeadlines) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No news headlines found"})
		return
	}

	if err != nil {
		slog.Error("error analyzing sentiment", "symbol", symbol, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, toSentimentResponse(result))
}

func toSentimentResponse(r *model.SentimentResult) SentimentResponse {
	headlines := make([]HeadlineResponse, len(r.Headlines))
	for i, h := range r.Headlines {
		headlines[i] = HeadlineResponse{
			Title:     h.Title,
			Sentiment: string(h.Sentiment),
		}
	}

	return SentimentResponse{
		Symbol:           r.Symbol,
		Timestamp:        r.Timestamp.UTC().Format(time.RFC3339),
		Headlines:        headlines,
		OverallSentiment: string(r.OverallSentiment),
	}
}

func (h *SentimentHandler) GetHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.cache.Ping(ctx); err != nil {
		slog.Warn("cache health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"cache":  "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"cache":  "connected",
	})
}
