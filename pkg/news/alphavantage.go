package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const alphaVantageURL = "https://www.alphavantage.co/query"

type AlphaVantageClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewAlphaVantageClient(apiKey string) *AlphaVantageClient {
	return &AlphaVantageClient{
		apiKey:     apiKey,
		baseURL:    alphaVantageURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

func (c *AlphaVantageClient) Name() string {
	return "AlphaVantage"
}

func (c *AlphaVantageClient) Headlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("function", "NEWS_SENTIMENT")
	q.Set("tickers", symbol)
	q.Set("sort", "LATEST")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("alphavantage request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("alphavantage fetch: unexpected status %d", resp.StatusCode)
	}

	var raw avResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}

	// Rate-limited and invalid-key responses come back as 200 with a message.
	if raw.Information != "" && len(raw.Feed) == 0 {
		return nil, fmt.Errorf("alphavantage: %s", raw.Information)
	}

	titles := make([]string, 0, len(raw.Feed))
	for _, item := range raw.Feed {
		titles = append(titles, item.Title)
	}

	return titles, nil
}

type avResponse struct {
	Information string       `json:"Information"`
	Feed        []avFeedItem `json:"feed"`
}

type avFeedItem struct {
	Title string `json:"title"`
}
