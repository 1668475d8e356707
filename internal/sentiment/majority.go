package sentiment

import "github.com/Rahul-web-hub/News-Sentiment-API/internal/model"

// Priority decides ties in Majority: earlier labels win.
var Priority = []model.Sentiment{
	model.SentimentPositive,
	model.SentimentNegative,
	model.SentimentNeutral,
}

// Majority returns the most frequent label among headlines. An empty slice
// yields neutral; callers are expected to pass at least one headline.
func Majority(headlines []model.Headline) model.Sentiment {
	counts := make(map[model.Sentiment]int, len(Priority))
	for _, h := range headlines {
		counts[h.Sentiment]++
	}

	best := model.SentimentNeutral
	bestCount := 0
	for _, label := range Priority {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}

	return best
}
