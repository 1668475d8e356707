package news

import (
	"context"
	"html"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second
	browserUA      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// HeadlineClient queries one upstream for the latest headlines about a symbol.
type HeadlineClient interface {
	Headlines(ctx context.Context, symbol string, limit int) ([]string, error)
	Name() string
}

// Locale scopes search-based sources to a market.
type Locale struct {
	Language    string `yaml:"language"`
	Country     string `yaml:"country"`
	Edition     string `yaml:"edition"`
	QuerySuffix string `yaml:"query_suffix"`
}

var DefaultLocale = Locale{
	Language:    "en-IN",
	Country:     "IN",
	Edition:     "IN:en",
	QuerySuffix: "stock india",
}

// Source is the headline adapter used by the pipeline. Upstream failures
// are logged and reported as "no headlines", so callers only ever see a
// (possibly empty) list.
type Source struct {
	client  HeadlineClient
	timeout time.Duration
}

func NewSource(client HeadlineClient, timeout time.Duration) *Source {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Source{client: client, timeout: timeout}
}

func (s *Source) Name() string {
	return s.client.Name()
}

func (s *Source) FetchHeadlines(ctx context.Context, symbol string, limit int) []string {
	if limit < 1 {
		return []string{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.Headlines(ctx, symbol, limit)
	if err != nil {
		slog.Warn("error fetching headlines", "source", s.client.Name(), "symbol", symbol, "error", err)
		return []string{}
	}

	headlines := make([]string, 0, limit)
	for _, h := range raw {
		if len(headlines) == limit {
			break
		}

		title := cleanHeadline(h)
		if title == "" {
			continue
		}
		headlines = append(headlines, title)
	}

	return headlines
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// cleanHeadline strips tags before decoding entities, so escaped brackets
// in the text are kept.
func cleanHeadline(s string) string {
	s = html.UnescapeString(tagPattern.ReplaceAllString(s, ""))
	return strings.Join(strings.Fields(s), " ")
}
