package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Rahul-web-hub/News-Sentiment-API/internal/model"

	_ "modernc.org/sqlite"
)

// Fixed-width UTC layout so timestamps compare correctly as text, and rows
// written with CURRENT_TIMESTAMP still sort alongside ours.
const sqliteTimeLayout = "2006-01-02 15:04:05.000000"

// SQLiteCache persists results in a local SQLite file. Writes go through a
// single connection; reads use their own pool.
type SQLiteCache struct {
	readDB  *sql.DB
	writeDB *sql.DB
}

func OpenSQLite(dbPath string) (*SQLiteCache, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	writeDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening write db: %w", err)
	}
	writeDB.SetMaxOpenConns(1)

	if _, err := writeDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		writeDB.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &SQLiteCache{writeDB: writeDB}
	if err := c.init(); err != nil {
		c.Close()
		return nil, err
	}

	readDB, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("opening read db: %w", err)
	}
	c.readDB = readDB

	return c, nil
}

func (c *SQLiteCache) init() error {
	_, err := c.writeDB.Exec(`
		CREATE TABLE IF NOT EXISTS news_sentiment (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol            TEXT NOT NULL,
			timestamp         DATETIME DEFAULT CURRENT_TIMESTAMP,
			headlines         TEXT,
			overall_sentiment TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_news_sentiment_symbol_ts ON news_sentiment(symbol, timestamp DESC);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (c *SQLiteCache) Close() error {
	var errs []error
	if c.readDB != nil {
		errs = append(errs, c.readDB.Close())
	}
	if c.writeDB != nil {
		errs = append(errs, c.writeDB.Close())
	}
	return errors.Join(errs...)
}

func (c *SQLiteCache) Ping(ctx context.Context) error {
	return c.readDB.PingContext(ctx)
}

func (c *SQLiteCache) Store(ctx context.Context, result *model.SentimentResult) error {
	headlines, err := json.Marshal(result.Headlines)
	if err != nil {
		return fmt.Errorf("encoding headlines: %w", err)
	}

	res, err := c.writeDB.ExecContext(ctx, `
		INSERT INTO news_sentiment (symbol, timestamp, headlines, overall_sentiment)
		VALUES (?, COALESCE(?, CURRENT_TIMESTAMP), ?, ?)
	`, result.Symbol, sqliteTime(result.Timestamp), string(headlines), string(result.OverallSentiment))
	if err != nil {
		return fmt.Errorf("inserting result for %s: %w", result.Symbol, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	result.ID = id
	return nil
}

func (c *SQLiteCache) Lookup(ctx context.Context, symbol string, notBefore time.Time) (*model.SentimentResult, error) {
	row := c.readDB.QueryRowContext(ctx, `
		SELECT id, symbol, CAST(timestamp AS TEXT), headlines, overall_sentiment
		FROM news_sentiment
		WHERE symbol = ? AND timestamp > ?
		ORDER BY timestamp DESC, id DESC
		LIMIT 1
	`, symbol, notBefore.UTC().Format(sqliteTimeLayout))

	r, err := scanResult(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying cached result: %w", err)
	}
	return r, nil
}

// History returns up to limit stored results for symbol, newest first.
func (c *SQLiteCache) History(ctx context.Context, symbol string, limit int) ([]model.SentimentResult, error) {
	if limit <= 0 {
		limit = model.DefaultHistoryLimit
	}

	rows, err := c.readDB.QueryContext(ctx, `
		SELECT id, symbol, CAST(timestamp AS TEXT), headlines, overall_sentiment
		FROM news_sentiment
		WHERE symbol = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var results []model.SentimentResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, *r)
	}
	return results, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*model.SentimentResult, error) {
	var (
		r         model.SentimentResult
		ts        string
		headlines sql.NullString
		overall   sql.NullString
	)
	if err := row.Scan(&r.ID, &r.Symbol, &ts, &headlines, &overall); err != nil {
		return nil, err
	}

	t, err := parseSQLiteTime(ts)
	if err != nil {
		return nil, err
	}
	r.Timestamp = t
	r.OverallSentiment = model.Sentiment(overall.String)

	if headlines.Valid && headlines.String != "" {
		if err := json.Unmarshal([]byte(headlines.String), &r.Headlines); err != nil {
			return nil, fmt.Errorf("decoding headlines: %w", err)
		}
	}
	return &r, nil
}

func sqliteTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(sqliteTimeLayout)
}

func parseSQLiteTime(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05.999999999", time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
