package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Rahul-web-hub/News-Sentiment-API/internal/model"
)

type SentimentRepository struct {
	db *sql.DB
}

func NewSentimentRepository(db *sql.DB) *SentimentRepository {
	return &SentimentRepository{db: db}
}

func (r *SentimentRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS news_sentiment (
			id                BIGSERIAL PRIMARY KEY,
			symbol            TEXT NOT NULL,
			timestamp         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			headlines         TEXT,
			overall_sentiment TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_news_sentiment_symbol_ts ON news_sentiment(symbol, timestamp DESC);
	`)
	return err
}

func (r *SentimentRepository) Store(ctx context.Context, result *model.SentimentResult) error {
	headlines, err := json.Marshal(result.Headlines)
	if err != nil {
		return err
	}

	var ts any
	if !result.Timestamp.IsZero() {
		ts = result.Timestamp.UTC()
	}

	return r.db.QueryRowContext(ctx, `
		INSERT INTO news_sentiment(symbol, timestamp, headlines, overall_sentiment)
		VALUES($1, COALESCE($2, NOW()), $3, $4)
		RETURNING id
	`, result.Symbol, ts, string(headlines), string(result.OverallSentiment)).Scan(&result.ID)
}

func (r *SentimentRepository) Lookup(ctx context.Context, symbol string, notBefore time.Time) (*model.SentimentResult, error) {
	var (
		s         model.SentimentResult
		headlines sql.NullString
		overall   sql.NullString
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT id, symbol, timestamp, headlines, overall_sentiment
		FROM news_sentiment
		WHERE symbol = $1 AND timestamp > $2
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`, symbol, notBefore.UTC()).Scan(&s.ID, &s.Symbol, &s.Timestamp, &headlines, &overall)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if err := decodeResult(&s, headlines, overall); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *SentimentRepository) History(ctx context.Context, symbol string, limit int) ([]model.SentimentResult, error) {
	if limit <= 0 {
		limit = model.DefaultHistoryLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, symbol, timestamp, headlines, overall_sentiment
		FROM news_sentiment
		WHERE symbol = $1
		ORDER BY timestamp DESC, id DESC
		LIMIT $2
	`, symbol, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.SentimentResult
	for rows.Next() {
		var (
			s         model.SentimentResult
			headlines sql.NullString
			overall   sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Symbol, &s.Timestamp, &headlines, &overall); err != nil {
			return nil, err
		}
		if err := decodeResult(&s, headlines, overall); err != nil {
			return nil, err
		}
		results = append(results, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func (r *SentimentRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SentimentRepository) Close() error {
	return r.db.Close()
}

func decodeResult(s *model.SentimentResult, headlines, overall sql.NullString) error {
	s.Timestamp = s.Timestamp.UTC()
	s.OverallSentiment = model.Sentiment(overall.String)

	if headlines.Valid && headlines.String != "" {
		if err := json.Unmarshal([]byte(headlines.String), &s.Headlines); err != nil {
			return fmt.Errorf("decoding headlines for result %d: %w", s.ID, err)
		}
	}
	return nil
}
