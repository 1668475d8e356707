package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const massiveNewsURL = "https://api.massive.com/v2/reference/news"

type MassiveClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewMassiveClient(apiKey string) *MassiveClient {
	return &MassiveClient{
		apiKey:     apiKey,
		baseURL:    massiveNewsURL,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

func (c *MassiveClient) Name() string {
	return "Massive"
}

func (c *MassiveClient) Headlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	q := url.Values{}
	q.Set("ticker", symbol)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("order", "desc")
	q.Set("sort", "published_utc")
	q.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("massive request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("massive fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("massive fetch: unexpected status %d", resp.StatusCode)
	}

	var raw massiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("massive decode: %w", err)
	}

	titles := make([]string, 0, len(raw.Results))
	for _, item := range raw.Results {
		titles = append(titles, item.Title)
	}

	return titles, nil
}

type massiveResponse struct {
	Results []massiveResult `json:"results"`
}

type massiveResult struct {
	Title string `json:"title"`
}
