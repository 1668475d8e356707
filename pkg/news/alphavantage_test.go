package news

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestAlphaVantageHeadlines(t *testing.T) {
	payload := map[string]interface{}{
		"feed": []map[string]interface{}{
			{
				"title":          "Infosys Wins Large Deal",
				"url":            "https://example.com/infy-deal",
				"source":         "Reuters",
				"time_published": "20260226T120000",
			},
			{
				"title":          "Infosys Shares Slip",
				"url":            "https://example.com/infy-slip",
				"source":         "Mint",
				"time_published": "20260226T110000",
			},
		},
	}

	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"function": r.URL.Query().Get("function"),
			"tickers":  r.URL.Query().Get("tickers"),
			"limit":    r.URL.Query().Get("limit"),
			"apikey":   r.URL.Query().Get("apikey"),
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := NewAlphaVantageClient("test-key")
	client.baseURL = srv.URL

	titles, err := client.Headlines(context.Background(), "INFY", 2)

	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"Infosys Wins Large Deal", "Infosys Shares Slip"}, titles)
	assert.Equal(t, "NEWS_SENTIMENT", gotQuery["function"])
	assert.Equal(t, "INFY", gotQuery["tickers"])
	assert.Equal(t, "2", gotQuery["limit"])
	assert.Equal(t, "test-key", gotQuery["apikey"])
}

func TestAlphaVantageHeadlines_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Information": "rate limit reached"}`))
	}))
	defer srv.Close()

	client := NewAlphaVantageClient("test-key")
	client.baseURL = srv.URL

	titles, err := client.Headlines(context.Background(), "INFY", 3)

	assert.NotEqual(t, nil, err)
	assert.Equal(t, 0, len(titles))
}
