package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Rahul-web-hub/News-Sentiment-API/db"
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/cache"
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/config"
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/model"
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/pipeline"
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/repository"
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/sentiment"
	"github.com/Rahul-web-hub/News-Sentiment-API/pkg/news"
)

// Backend is a result cache that can be health-checked and closed.
type Backend interface {
	pipeline.Cache
	Ping(ctx context.Context) error
	Close() error
}

// HistoryReader is implemented by the SQL backends.
type HistoryReader interface {
	History(ctx context.Context, symbol string, limit int) ([]model.SentimentResult, error)
}

type App struct {
	Service *pipeline.Service
	Cache   Backend
	Source  *news.Source
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	backend, err := OpenBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	client, err := NewHeadlineClient(cfg)
	if err != nil {
		backend.Close()
		return nil, err
	}

	source := news.NewSource(client, cfg.Headlines.FetchTimeout)
	classifier := sentiment.NewClassifier(sentiment.NewVaderScorer())

	return &App{
		Service: pipeline.NewService(backend, source, classifier, cfg.PipelineConfig()),
		Cache:   backend,
		Source:  source,
	}, nil
}

func (a *App) Close() error {
	return a.Cache.Close()
}

func OpenBackend(ctx context.Context, cfg *config.Config) (Backend, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch cfg.Cache.Backend {
	case config.BackendSQLite:
		c, err := cache.OpenSQLite(cfg.Cache.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		return c, nil

	case config.BackendPostgres:
		conn, err := db.ConnectPostgres(connectCtx, cfg.Cache.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		repo := repository.NewSentimentRepository(conn)
		if err := repo.EnsureSchema(connectCtx); err != nil {
			conn.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
		return repo, nil

	case config.BackendRedis:
		client, err := db.ConnectRedis(connectCtx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return cache.NewRedisCache(client), nil

	case config.BackendMemory:
		mem := cache.NewMemoryCache(cfg.Cache.MemoryRetention)
		if err := mem.StartSweeper(cache.DefaultSweepSpec); err != nil {
			return nil, fmt.Errorf("starting sweeper: %w", err)
		}
		return mem, nil
	}

	return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
}

func NewHeadlineClient(cfg *config.Config) (news.HeadlineClient, error) {
	switch cfg.Headlines.Source {
	case config.SourceGoogle:
		return news.NewGoogleNewsClient(cfg.Headlines.Locale), nil
	case config.SourceGoogleRSS:
		return news.NewGoogleNewsRSSClient(cfg.Headlines.Locale), nil
	case config.SourceFinnHub:
		return news.NewFinnHubClient(cfg.APIKeys.FinnHub), nil
	case config.SourceAlphaVantage:
		return news.NewAlphaVantageClient(cfg.APIKeys.AlphaVantage), nil
	case config.SourceMassive:
		return news.NewMassiveClient(cfg.APIKeys.Massive), nil
	}

	return nil, fmt.Errorf("unknown headline source %q", cfg.Headlines.Source)
}
