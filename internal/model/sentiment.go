package model

import (
	"strings"
	"time"
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// DefaultHistoryLimit applies when History is asked for a non-positive limit.
const DefaultHistoryLimit = 20

type Headline struct {
	Title     string    `json:"title"`
	Sentiment Sentiment `json:"sentiment"`
}

type SentimentResult struct {
	ID               int64
	Symbol           string
	Timestamp        time.Time
	Headlines        []Headline
	OverallSentiment Sentiment
}

// NormalizeSymbol is applied to every symbol before it touches the cache or a headline source.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
