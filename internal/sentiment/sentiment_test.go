package sentiment

import (
	"testing"

	"github.com/Rahul-web-hub/News-Sentiment-API/internal/model"

	"github.com/go-playground/assert/v2"
)

type fixedScorer map[string]float64

func (f fixedScorer) Polarity(text string) float64 {
	return f[text]
}

func TestClassify_Thresholds(t *testing.T) {
	scorer := fixedScorer{
		"up":         0.5,
		"down":       -0.5,
		"flat":       0,
		"edge-pos":   0.1,
		"edge-neg":   -0.1,
		"just-above": 0.1000001,
		"just-below": -0.1000001,
	}
	c := NewClassifier(scorer)

	assert.Equal(t, model.SentimentPositive, c.Classify("up"))
	assert.Equal(t, model.SentimentNegative, c.Classify("down"))
	assert.Equal(t, model.SentimentNeutral, c.Classify("flat"))
	assert.Equal(t, model.SentimentNeutral, c.Classify("edge-pos"))
	assert.Equal(t, model.SentimentNeutral, c.Classify("edge-neg"))
	assert.Equal(t, model.SentimentPositive, c.Classify("just-above"))
	assert.Equal(t, model.SentimentNegative, c.Classify("just-below"))
}

func TestClassify_VaderDeterministic(t *testing.T) {
	c := NewClassifier(NewVaderScorer())

	text := "Company reports great quarter"
	first := c.Classify(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify(text))
	}

	assert.Equal(t, model.SentimentPositive, c.Classify("great"))
	assert.Equal(t, model.SentimentNegative, c.Classify("terrible"))
	assert.Equal(t, model.SentimentNeutral, c.Classify("the stock"))
}

func headlines(labels ...model.Sentiment) []model.Headline {
	out := make([]model.Headline, len(labels))
	for i, l := range labels {
		out[i] = model.Headline{Title: string(l), Sentiment: l}
	}
	return out
}

func TestMajority(t *testing.T) {
	tests := []struct {
		name   string
		labels []model.Sentiment
		want   model.Sentiment
	}{
		{"clear positive", []model.Sentiment{model.SentimentPositive, model.SentimentPositive, model.SentimentNegative}, model.SentimentPositive},
		{"clear negative", []model.Sentiment{model.SentimentNegative, model.SentimentNeutral, model.SentimentNegative}, model.SentimentNegative},
		{"clear neutral", []model.Sentiment{model.SentimentNeutral, model.SentimentNeutral, model.SentimentPositive}, model.SentimentNeutral},
		{"three-way tie", []model.Sentiment{model.SentimentPositive, model.SentimentNegative, model.SentimentNeutral}, model.SentimentPositive},
		{"three-way tie reversed", []model.Sentiment{model.SentimentNeutral, model.SentimentNegative, model.SentimentPositive}, model.SentimentPositive},
		{"negative beats neutral on tie", []model.Sentiment{model.SentimentNeutral, model.SentimentNegative}, model.SentimentNegative},
		{"single", []model.Sentiment{model.SentimentNeutral}, model.SentimentNeutral},
		{"empty", nil, model.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Majority(headlines(tt.labels...)))
		})
	}
}
