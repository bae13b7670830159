package orchestrator

import (
	"github.com/jonreiter/govader"
	"github.com/spacesedan/reviewlens/internal/analysis"
	"github.com/spacesedan/reviewlens/internal/models"
)

var vaderAnalyzer = govader.NewSentimentIntensityAnalyzer()

// normalizeRecord is the single convergence point for both paths. It fixes
// the sentiment scale, re-derives the label under the canonical thresholds,
// enforces emotion/sentiment consistency and guarantees no nil collections
// escape to callers. Nothing downstream is allowed to re-normalize.
func normalizeRecord(result *models.AnalysisResult) {
	// Remote responses sometimes report sentiment on [-1,1]; the canonical
	// scale is [0,1] and this is the only place that rescales.
	if result.Sentiment.Score < 0 {
		result.Sentiment.Score = (result.Sentiment.Score + 1) / 2
	}
	if result.Sentiment.Score > 1 {
		result.Sentiment.Score = 1
	}

	result.Sentiment.Label = analysis.SentimentLabel(result.Sentiment.Score)
	result.Emotion.Primary = analysis.ReconcileEmotion(result.Emotion.Primary, result.Sentiment.Score)

	if result.Emotion.Primary == "" {
		result.Emotion.Primary = models.EmotionNeutral
	}
	if result.Emotion.Intensity == "" {
		result.Emotion.Intensity = "low"
	}
	if result.Moderation.Action == "" {
		result.Moderation.Action = models.ModerationAllow
	}
	if result.Staff.RiskLevel == "" {
		result.Staff.RiskLevel = "low"
	}

	if result.Moderation.Issues == nil {
		result.Moderation.Issues = []string{}
	}
	if result.Themes == nil {
		result.Themes = []models.Theme{}
	}
	if result.Staff.SoftSkillScores == nil {
		result.Staff.SoftSkillScores = map[string]float64{}
	}
	if result.Staff.TrainingRecommendations == nil {
		result.Staff.TrainingRecommendations = []string{}
	}
	if result.ServiceUnit.IssuesDetected == nil {
		result.ServiceUnit.IssuesDetected = []string{}
	}
	if result.Recommendations.BusinessActions == nil {
		result.Recommendations.BusinessActions = []string{}
	}
	if result.Recommendations.StaffActions == nil {
		result.Recommendations.StaffActions = []string{}
	}
	if result.Explainability.DecisionBasis == nil {
		result.Explainability.DecisionBasis = []string{}
	}
	if result.Explainability.RulesApplied == nil {
		result.Explainability.RulesApplied = []string{}
	}

	if result.Explainability.ConfidenceScore > 1 {
		result.Explainability.ConfidenceScore = 1
	}
	if result.Explainability.ConfidenceScore < 0 {
		result.Explainability.ConfidenceScore = 0
	}
}

// remoteConfidence estimates confidence from response completeness when the
// remote reports none: each populated signal adds a fixed increment.
func remoteConfidence(result *models.AnalysisResult) float64 {
	confidence := 0.0
	if len(result.Themes) > 0 {
		confidence += 0.25
	}
	if len(result.Recommendations.BusinessActions) > 0 || len(result.Recommendations.StaffActions) > 0 {
		confidence += 0.25
	}
	if len(result.Explainability.DecisionBasis) > 0 {
		confidence += 0.25
	}
	if result.Sentiment.Score != 0 {
		confidence += 0.25
	}
	if confidence > 1 {
		confidence = 1
	}
	return confidence
}

// fallbackConfidence grades the heuristic result. A VADER cross-check that
// agrees with the lexicon label raises confidence; richer signal coverage
// adds a little more.
func fallbackConfidence(text string, result *models.AnalysisResult) float64 {
	confidence := 0.5

	vader := vaderAnalyzer.PolarityScores(text)
	var vaderLabel string
	switch {
	case vader.Compound >= 0.20:
		vaderLabel = models.SentimentPositive
	case vader.Compound <= -0.20:
		vaderLabel = models.SentimentNegative
	default:
		vaderLabel = models.SentimentNeutral
	}
	if vaderLabel == result.Sentiment.Label {
		confidence += 0.2
	}

	if len(result.Themes) > 0 {
		confidence += 0.1
	}
	if len(text) > 50 {
		confidence += 0.1
	}
	if confidence > 0.9 {
		confidence = 0.9
	}
	return confidence
}
