package sentiment

import (
	"github.com/Rahul-web-hub/News-Sentiment-API/internal/model"

	"github.com/jonreiter/govader"
)

const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// Scorer returns a polarity in [-1, 1] for a piece of text.
type Scorer interface {
	Polarity(text string) float64
}

type VaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderScorer() *VaderScorer {
	return &VaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (s *VaderScorer) Polarity(text string) float64 {
	return s.analyzer.PolarityScores(text).Compound
}

type Classifier struct {
	scorer Scorer
}

func NewClassifier(scorer Scorer) *Classifier {
	return &Classifier{scorer: scorer}
}

// Classify maps the polarity of text onto a label. Scores of exactly
// +0.1 or -0.1 are neutral.
func (c *Classifier) Classify(text string) model.Sentiment {
	polarity := c.scorer.Polarity(text)

	if polarity > positiveThreshold {
		return model.SentimentPositive
	}

	if polarity < negativeThreshold {
		return model.SentimentNegative
	}

	return model.SentimentNeutral
}
