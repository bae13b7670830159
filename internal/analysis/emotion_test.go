package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spacesedan/reviewlens/internal/models"
)

func TestClassifyEmotion(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		score         float64
		wantPrimary   string
		wantIntensity string
	}{
		{
			name:          "intensified joy",
			text:          "The food was absolutely delicious! Best meal I've had in years.",
			score:         0.9,
			wantPrimary:   models.EmotionJoy,
			wantIntensity: "high",
		},
		{
			name:          "intensified anger",
			text:          "The manager was extremely rude and I am absolutely furious.",
			score:         0.1,
			wantPrimary:   models.EmotionAnger,
			wantIntensity: "high",
		},
		{
			name:          "positive marker inside a negative review reads as sarcasm",
			text:          "Great, the food was cold and the service was terrible.",
			score:         0.3,
			wantPrimary:   models.EmotionSarcasm,
			wantIntensity: "medium",
		},
		{
			name:          "negated joy keyword falls through to sentiment",
			text:          "I am not happy with this place.",
			score:         0.1,
			wantPrimary:   models.EmotionSadness,
			wantIntensity: "low",
		},
		{
			name:          "no keywords on a neutral text",
			text:          "We visited on a Tuesday.",
			score:         0.5,
			wantPrimary:   models.EmotionNeutral,
			wantIntensity: "low",
		},
		{
			name:          "disgust keywords",
			text:          "The kitchen was filthy and the smell was disgusting.",
			score:         0.1,
			wantPrimary:   models.EmotionDisgust,
			wantIntensity: "high",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary, intensity := ClassifyEmotion(tt.text, tt.score)
			assert.Equal(t, tt.wantPrimary, primary)
			assert.Equal(t, tt.wantIntensity, intensity)
		})
	}
}

func TestReconcileEmotion(t *testing.T) {
	tests := []struct {
		name    string
		primary string
		score   float64
		want    string
	}{
		{"joy on a very negative score becomes sadness", models.EmotionJoy, 0.2, models.EmotionSadness},
		{"joy on a mildly negative score becomes neutral", models.EmotionJoy, 0.35, models.EmotionNeutral},
		{"anger on a positive score becomes joy", models.EmotionAnger, 0.9, models.EmotionJoy},
		{"sadness on a positive score becomes joy", models.EmotionSadness, 0.8, models.EmotionJoy},
		{"joy on a positive score is untouched", models.EmotionJoy, 0.9, models.EmotionJoy},
		{"anger on a negative score is untouched", models.EmotionAnger, 0.1, models.EmotionAnger},
		{"fear is never overridden", models.EmotionFear, 0.9, models.EmotionFear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReconcileEmotion(tt.primary, tt.score))
		})
	}
}

// Post-reconciliation, emotion and sentiment must never contradict: joy
// implies a non-negative score, anger and sadness imply a non-positive one.
func TestClassifyEmotion_NeverContradictsSentiment(t *testing.T) {
	texts := []string{
		"The food was absolutely delicious! Best meal I've had in years.",
		"The staff were not happy to help at all.",
		"The manager was extremely rude and I am absolutely furious.",
		"Good ambiance but slow service.",
		"I was so disappointed with the cold food.",
		"Wonderful evening, we loved every minute.",
		"It was okay.",
		"",
	}

	for _, text := range texts {
		score := SentimentScore(text)
		primary, _ := ClassifyEmotion(text, score)

		if primary == models.EmotionJoy {
			assert.GreaterOrEqual(t, score, NeutralThreshold, "text %q", text)
		}
		if primary == models.EmotionAnger || primary == models.EmotionSadness {
			assert.Less(t, score, PositiveThreshold, "text %q", text)
		}
	}
}
