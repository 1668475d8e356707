package handler

type SentimentRequest struct {
	Symbol string `json:"symbol" binding:"required"`
}

type HeadlineResponse struct {
	Title     string `json:"title"`
	Sentiment string `json:"sentiment"`
}

type SentimentResponse struct {
	Symbol           string             `json:"symbol"`
	Timestamp        string             `json:"timestamp"`
	Headlines        []HeadlineResponse `json:"headlines"`
	OverallSentiment string             `json:"overall_sentiment"`
}
