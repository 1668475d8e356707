package news

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmcdole/gofeed"
)

const googleNewsRSSURL = "https://news.google.com/rss/search"

// GoogleNewsRSSClient reads the same search as GoogleNewsClient from the
// RSS endpoint, which is less sensitive to markup changes.
type GoogleNewsRSSClient struct {
	baseURL    string
	locale     Locale
	httpClient *http.Client
	parser     *gofeed.Parser
}

func NewGoogleNewsRSSClient(locale Locale) *GoogleNewsRSSClient {
	return &GoogleNewsRSSClient{
		baseURL:    googleNewsRSSURL,
		locale:     locale,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		parser:     gofeed.NewParser(),
	}
}

func (c *GoogleNewsRSSClient) Name() string {
	return "GoogleNewsRSS"
}

func (c *GoogleNewsRSSClient) Headlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	req, err := newBrowserRequest(ctx, c.baseURL, searchQuery(symbol, c.locale))
	if err != nil {
		return nil, fmt.Errorf("google news rss request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google news rss fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("google news rss fetch: unexpected status %d", resp.StatusCode)
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("google news rss parse: %w", err)
	}

	titles := make([]string, 0, limit)
	for _, item := range feed.Items {
		if len(titles) == limit {
			break
		}
		titles = append(titles, item.Title)
	}

	return titles, nil
}
