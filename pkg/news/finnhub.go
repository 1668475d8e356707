package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

const finnhubLookback = 7 * 24 * time.Hour

type FinnHubClient struct {
	client *finnhub.DefaultApiService
	now    func() time.Time
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client, now: time.Now}
}

func (c *FinnHubClient) Headlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	to := c.now().UTC()
	from := to.Add(-finnhubLookback)

	res, _, err := c.client.CompanyNews(ctx).
		Symbol(symbol).
		From(from.Format("2006-01-02")).
		To(to.Format("2006-01-02")).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub company news: %w", err)
	}

	var titles []string
	for _, news := range res {
		if len(titles) == limit {
			break
		}
		if news.Headline != nil {
			titles = append(titles, *news.Headline)
		}
	}

	return titles, nil
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}
