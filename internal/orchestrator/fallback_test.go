package orchestrator

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/reviewlens/internal/models"
)

func TestFallbackChain_ClearPositive(t *testing.T) {
	chain := NewFallbackChain(nil)
	input := models.ReviewInput{
		Text:     "The food was absolutely delicious! Best meal I've had in years.",
		Settings: models.DefaultBusinessSettings(),
	}

	result := chain.Build(context.Background(), input)

	assert.Equal(t, models.SentimentPositive, result.Sentiment.Label)
	assert.GreaterOrEqual(t, result.Sentiment.Score, 0.7)
	assert.Equal(t, models.EmotionJoy, result.Emotion.Primary)
	assert.False(t, result.Moderation.IsAbusive)
	assert.Equal(t, models.ModerationAllow, result.Moderation.Action)
	assert.NotEmpty(t, result.Themes)
	assert.NotEmpty(t, result.Recommendations.BusinessActions)
	assert.True(t, strings.HasPrefix(result.Summary.OneLine, "positive review:"))
	assert.NotEmpty(t, result.Summary.ManagerSummary)
	assert.GreaterOrEqual(t, result.Explainability.ConfidenceScore, 0.5)
}

func TestFallbackChain_StaffComplaintScenario(t *testing.T) {
	chain := NewFallbackChain(nil)
	input := models.ReviewInput{
		Text:     "Ateeq served us very badly today. He was rude and ignored our requests.",
		Staff:    &models.StaffContext{ID: "1", Name: "Ateeq", ExplicitlySelected: true},
		Settings: models.DefaultBusinessSettings(),
	}

	result := chain.Build(context.Background(), input)

	assert.True(t, result.Staff.MentionedExplicitly)
	assert.NotEmpty(t, result.Staff.TrainingRecommendations)
	assert.Contains(t, []string{"medium", "high"}, result.Staff.RiskLevel)
	assert.Equal(t, "1", result.Staff.StaffID)
	assert.Equal(t, models.SentimentNegative, result.Staff.SentimentTowardStaff)
	assert.NotEmpty(t, result.Recommendations.StaffActions)
}

func TestFallbackChain_StaffSkippedWithoutExplicitSelection(t *testing.T) {
	chain := NewFallbackChain(nil)
	input := models.ReviewInput{
		Text:     "Ateeq served us very badly today.",
		Staff:    &models.StaffContext{ID: "1", Name: "Ateeq", ExplicitlySelected: false},
		Settings: models.DefaultBusinessSettings(),
	}

	result := chain.Build(context.Background(), input)

	assert.Empty(t, result.Staff.StaffID)
	assert.Empty(t, result.Staff.TrainingRecommendations)
	assert.Equal(t, "low", result.Staff.RiskLevel)
}

func TestFallbackChain_AbusiveReviewDoesNotCountAgainstStaff(t *testing.T) {
	chain := NewFallbackChain(nil)
	input := models.ReviewInput{
		Text:     "Ateeq is a complete asshole and the service was terrible.",
		Staff:    &models.StaffContext{ID: "1", Name: "Ateeq", ExplicitlySelected: true},
		Settings: models.DefaultBusinessSettings(),
	}

	result := chain.Build(context.Background(), input)

	require.True(t, result.Moderation.IsAbusive)
	assert.Empty(t, result.Staff.StaffID)
	assert.Empty(t, result.Staff.TrainingRecommendations)
}

func TestFallbackChain_VeryNegativeAlert(t *testing.T) {
	chain := NewFallbackChain(nil)
	input := models.ReviewInput{
		Text:     "The staff were not happy to help at all.",
		Settings: models.DefaultBusinessSettings(),
	}

	result := chain.Build(context.Background(), input)

	assert.True(t, result.Alerts.Triggered)
	assert.Equal(t, "very_negative_review", result.Alerts.Type)
	assert.Equal(t, "medium", result.Alerts.Priority)
}

func TestFallbackChain_AbusiveAlertTakesPriority(t *testing.T) {
	chain := NewFallbackChain(nil)
	input := models.ReviewInput{
		Text:     "Screw you, you people make me sick.",
		Settings: models.DefaultBusinessSettings(),
	}

	result := chain.Build(context.Background(), input)

	assert.True(t, result.Alerts.Triggered)
	assert.Equal(t, "abusive_review", result.Alerts.Type)
	assert.Equal(t, "high", result.Alerts.Priority)
}

func TestFallbackChain_ServiceUnitIssues(t *testing.T) {
	chain := NewFallbackChain(nil)
	input := models.ReviewInput{
		Text:        "Room 12 was dirty and the shower was broken.",
		ServiceUnit: &models.ServiceUnitContext{Type: "room", ID: "12"},
		Settings:    models.DefaultBusinessSettings(),
	}

	result := chain.Build(context.Background(), input)

	assert.Equal(t, "room", result.ServiceUnit.UnitType)
	assert.Equal(t, "12", result.ServiceUnit.UnitID)
	assert.NotEmpty(t, result.ServiceUnit.IssuesDetected)
	assert.True(t, result.ServiceUnit.MaintenanceRequired)
}

func TestFallbackChain_EmptyTextDegradesToDefaults(t *testing.T) {
	chain := NewFallbackChain(nil)
	input := models.ReviewInput{Settings: models.DefaultBusinessSettings()}

	result := chain.Build(context.Background(), input)

	assert.Equal(t, "en", result.Language.Detected)
	assert.Equal(t, models.SentimentNeutral, result.Sentiment.Label)
	assert.InDelta(t, 0.5, result.Sentiment.Score, 0.001)
	assert.Equal(t, models.EmotionNeutral, result.Emotion.Primary)
	assert.False(t, result.Moderation.IsAbusive)
	assert.NotNil(t, result.Themes)
	assert.NotNil(t, result.Moderation.Issues)
	assert.NotNil(t, result.Recommendations.BusinessActions)
}

func TestFallbackChain_DisabledTogglesKeepDefaults(t *testing.T) {
	chain := NewFallbackChain(nil)
	input := models.ReviewInput{
		Text: "The food was absolutely delicious! Best meal I've had in years.",
		// zero settings: every toggle off
	}

	result := chain.Build(context.Background(), input)

	assert.Equal(t, models.SentimentNeutral, result.Sentiment.Label)
	assert.InDelta(t, 0.5, result.Sentiment.Score, 0.001)
	assert.Empty(t, result.Recommendations.BusinessActions)
	assert.False(t, result.Alerts.Triggered)
	assert.Empty(t, result.Explainability.DecisionBasis)
}

func TestFallbackChain_SentimentScoreIsCachedPerText(t *testing.T) {
	chain := NewFallbackChain(nil)
	input := models.ReviewInput{
		Text:     "Good ambiance but slow service.",
		Settings: models.DefaultBusinessSettings(),
	}

	first := chain.Build(context.Background(), input)
	second := chain.Build(context.Background(), input)

	assert.Equal(t, first.Sentiment, second.Sentiment)
}
