package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spacesedan/reviewlens/internal/models"
)

func TestNormalizeRecord_ScaleConversion(t *testing.T) {
	tests := []struct {
		name      string
		score     float64
		wantScore float64
		wantLabel string
	}{
		{"bipolar negative rescales onto the unit interval", -0.2, 0.4, models.SentimentNeutral},
		{"bipolar floor", -1.0, 0.0, models.SentimentNegative},
		{"unit scale passes through", 0.9, 0.9, models.SentimentPositive},
		{"overshoot clamps to one", 1.4, 1.0, models.SentimentPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := models.NewDefaultAnalysisResult()
			result.Sentiment.Score = tt.score

			normalizeRecord(result)

			assert.InDelta(t, tt.wantScore, result.Sentiment.Score, 0.001)
			assert.Equal(t, tt.wantLabel, result.Sentiment.Label)
		})
	}
}

func TestNormalizeRecord_LabelAlwaysRederived(t *testing.T) {
	result := models.NewDefaultAnalysisResult()
	result.Sentiment.Score = 0.9
	result.Sentiment.Label = models.SentimentNegative // remote contradiction

	normalizeRecord(result)

	assert.Equal(t, models.SentimentPositive, result.Sentiment.Label)
}

func TestNormalizeRecord_ReconcilesEmotion(t *testing.T) {
	result := models.NewDefaultAnalysisResult()
	result.Sentiment.Score = 0.1
	result.Emotion.Primary = models.EmotionJoy

	normalizeRecord(result)

	assert.Equal(t, models.EmotionSadness, result.Emotion.Primary)
}

func TestNormalizeRecord_RepairsNilCollections(t *testing.T) {
	result := &models.AnalysisResult{}
	result.Sentiment.Score = 0.5

	normalizeRecord(result)

	assert.NotNil(t, result.Moderation.Issues)
	assert.NotNil(t, result.Themes)
	assert.NotNil(t, result.Staff.SoftSkillScores)
	assert.NotNil(t, result.Staff.TrainingRecommendations)
	assert.NotNil(t, result.ServiceUnit.IssuesDetected)
	assert.NotNil(t, result.Recommendations.BusinessActions)
	assert.NotNil(t, result.Recommendations.StaffActions)
	assert.NotNil(t, result.Explainability.DecisionBasis)
	assert.NotNil(t, result.Explainability.RulesApplied)

	assert.Equal(t, models.EmotionNeutral, result.Emotion.Primary)
	assert.Equal(t, "low", result.Emotion.Intensity)
	assert.Equal(t, models.ModerationAllow, result.Moderation.Action)
	assert.Equal(t, "low", result.Staff.RiskLevel)
}

func TestNormalizeRecord_ClampsConfidence(t *testing.T) {
	result := models.NewDefaultAnalysisResult()
	result.Explainability.ConfidenceScore = 1.7
	normalizeRecord(result)
	assert.InDelta(t, 1.0, result.Explainability.ConfidenceScore, 0.001)

	result.Explainability.ConfidenceScore = -0.4
	normalizeRecord(result)
	assert.InDelta(t, 0.0, result.Explainability.ConfidenceScore, 0.001)
}

func TestRemoteConfidence(t *testing.T) {
	result := models.NewDefaultAnalysisResult()
	// Default record: only the non-zero sentiment score counts.
	assert.InDelta(t, 0.25, remoteConfidence(result), 0.001)

	result.Themes = []models.Theme{{Topic: "food quality", Type: "food", Confidence: 0.9}}
	result.Recommendations.BusinessActions = []string{"Highlight praised dishes in marketing material"}
	result.Explainability.DecisionBasis = []string{"llm_classification"}
	assert.InDelta(t, 1.0, remoteConfidence(result), 0.001)
}

func TestFallbackConfidence_Bounds(t *testing.T) {
	texts := []string{
		"The food was absolutely delicious! Best meal I've had in years.",
		"The staff were not happy to help at all.",
		"It was okay.",
		"",
	}

	for _, text := range texts {
		result := models.NewDefaultAnalysisResult()
		confidence := fallbackConfidence(text, result)
		assert.GreaterOrEqual(t, confidence, 0.5, "text %q", text)
		assert.LessOrEqual(t, confidence, 0.9, "text %q", text)
	}
}
