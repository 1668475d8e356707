package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Rahul-web-hub/News-Sentiment-API/internal/model"
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/sentiment"
)

const (
	DefaultHeadlineLimit   = 3
	DefaultFreshnessWindow = 10 * time.Minute
)

var (
	ErrNoHeadlines   = errors.New("no news headlines found")
	ErrInvalidSymbol = errors.New("symbol is required")
)

type HeadlineSource interface {
	FetchHeadlines(ctx context.Context, symbol string, limit int) []string
}

type Classifier interface {
	Classify(text string) model.Sentiment
}

// Cache stores results append-only. Lookup returns nil, nil when no record
// for the symbol is newer than notBefore.
type Cache interface {
	Lookup(ctx context.Context, symbol string, notBefore time.Time) (*model.SentimentResult, error)
	Store(ctx context.Context, result *model.SentimentResult) error
}

type Config struct {
	HeadlineLimit   int
	FreshnessWindow time.Duration
}

type Service struct {
	cache      Cache
	source     HeadlineSource
	classifier Classifier
	cfg        Config
	now        func() time.Time
}

func NewService(cache Cache, source HeadlineSource, classifier Classifier, cfg Config) *Service {
	if cfg.HeadlineLimit < 1 {
		cfg.HeadlineLimit = DefaultHeadlineLimit
	}
	if cfg.FreshnessWindow <= 0 {
		cfg.FreshnessWindow = DefaultFreshnessWindow
	}

	return &Service{
		cache:      cache,
		source:     source,
		classifier: classifier,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *Service) Analyze(ctx context.Context, symbol string) (*model.SentimentResult, error) {
	symbol = model.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrInvalidSymbol
	}

	now := s.now().UTC()

	cached, err := s.cache.Lookup(ctx, symbol, now.Add(-s.cfg.FreshnessWindow))
	if err != nil {
		slog.Error("error reading cache, fetching fresh headlines", "symbol", symbol, "error", err)
	}

	if cached != nil {
		slog.Debug("cache hit", "symbol", symbol, "cached_at", cached.Timestamp)
		return cached, nil
	}

	titles := s.source.FetchHeadlines(ctx, symbol, s.cfg.HeadlineLimit)
	if len(titles) == 0 {
		return nil, ErrNoHeadlines
	}

	headlines := make([]model.Headline, len(titles))
	for i, title := range titles {
		headlines[i] = model.Headline{
			Title:     title,
			Sentiment: s.classifier.Classify(title),
		}
	}

	result := &model.SentimentResult{
		Symbol:           symbol,
		Timestamp:        now,
		Headlines:        headlines,
		OverallSentiment: sentiment.Majority(headlines),
	}

	// The computed result is returned even if it cannot be persisted.
	if err := s.cache.Store(context.WithoutCancel(ctx), result); err != nil {
		slog.Error("error storing sentiment result", "symbol", symbol, "error", err)
	}

	slog.Info("sentiment computed", "symbol", symbol, "headlines", len(headlines), "overall", result.OverallSentiment)

	return result, nil
}
