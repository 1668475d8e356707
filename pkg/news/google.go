package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	googleNewsSearchURL = "https://news.google.com/search"
	googleHeadlineSel   = "a.JtKRv"
)

type GoogleNewsClient struct {
	baseURL    string
	locale     Locale
	httpClient *http.Client
}

func NewGoogleNewsClient(locale Locale) *GoogleNewsClient {
	return &GoogleNewsClient{
		baseURL:    googleNewsSearchURL,
		locale:     locale,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

func (c *GoogleNewsClient) Name() string {
	return "GoogleNews"
}

func (c *GoogleNewsClient) Headlines(ctx context.Context, symbol string, limit int) ([]string, error) {
	req, err := newBrowserRequest(ctx, c.baseURL, searchQuery(symbol, c.locale))
	if err != nil {
		return nil, fmt.Errorf("google news request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google news fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("google news fetch: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("google news parse: %w", err)
	}

	// Only the first limit anchors are considered; empty ones are dropped later.
	// Inner HTML keeps entities escaped so literal angle brackets survive tag stripping.
	var titles []string
	var renderErr error
	doc.Find(googleHeadlineSel).EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= limit {
			return false
		}
		inner, err := s.Html()
		if err != nil {
			renderErr = err
			return false
		}
		titles = append(titles, inner)
		return true
	})
	if renderErr != nil {
		return nil, fmt.Errorf("google news parse: %w", renderErr)
	}

	return titles, nil
}

func searchQuery(symbol string, locale Locale) url.Values {
	q := strings.TrimSpace(symbol + " " + locale.QuerySuffix)

	v := url.Values{}
	v.Set("q", q)
	v.Set("hl", locale.Language)
	v.Set("gl", locale.Country)
	v.Set("ceid", locale.Edition)
	return v
}

func newBrowserRequest(ctx context.Context, base string, query url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUA)
	return req, nil
}
