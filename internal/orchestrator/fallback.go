package orchestrator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/spacesedan/reviewlens/internal/analysis"
	"github.com/spacesedan/reviewlens/internal/cache"
	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/textutil"
)

// fieldCacheTTL is the short-lived cache for individual heuristic outputs;
// the whole-response cache has its own, longer TTL.
const fieldCacheTTL = time.Hour

// FallbackChain runs the local heuristic analyzers and assembles a canonical
// record shaped identically to the remote path's output.
type FallbackChain struct {
	fieldCache cache.Store
}

func NewFallbackChain(fieldCache cache.Store) *FallbackChain {
	if fieldCache == nil {
		fieldCache = cache.NewMemoryStore()
	}
	return &FallbackChain{fieldCache: fieldCache}
}

// Build produces a complete AnalysisResult from local heuristics only. It
// cannot fail: empty input degrades to the documented neutral defaults.
func (f *FallbackChain) Build(ctx context.Context, input models.ReviewInput) *models.AnalysisResult {
	result := models.NewDefaultAnalysisResult()
	text := textutil.Normalize(input.Text)

	result.Language.Detected = analysis.DetectLanguage(text)
	result.Language.TranslatedText = text

	score := 0.5
	if input.Settings.SentimentAnalysis {
		score = f.cachedSentimentScore(ctx, text)
		result.Sentiment.Score = score
		result.Sentiment.Label = analysis.SentimentLabel(score)
	}

	if input.Settings.EmotionDetection {
		primary, intensity := analysis.ClassifyEmotion(text, score)
		result.Emotion.Primary = primary
		result.Emotion.Intensity = intensity
	}

	if input.Settings.AbuseDetection {
		// Moderation sees the raw text: link stripping would hide spam.
		result.Moderation = analysis.Moderate(input.Text)
	}

	result.Themes = analysis.ExtractThemes(text)

	staffRecs := f.buildStaffIntelligence(result, input, text, score)
	f.buildServiceUnitIntelligence(result, input, score)

	if input.Settings.BusinessRecommendations {
		result.Recommendations = analysis.GenerateRecommendations(result.Themes, score, staffRecs)
	}

	if input.Settings.Alerts {
		result.Alerts = buildAlerts(result)
	}

	keyPhrases := analysis.ExtractKeyPhrases(text)
	result.Summary = buildSummary(text, result, keyPhrases)

	if input.Settings.Explainability {
		result.Explainability = buildExplainability(text, result, keyPhrases)
	}

	return result
}

func (f *FallbackChain) cachedSentimentScore(ctx context.Context, text string) float64 {
	sum := sha256.Sum256([]byte(text))
	key := "sentiment:" + hex.EncodeToString(sum[:])

	if raw, ok := f.fieldCache.Get(ctx, key); ok {
		if score, err := strconv.ParseFloat(string(raw), 64); err == nil {
			return score
		}
	}

	score := analysis.SentimentScore(text)
	_ = f.fieldCache.Set(ctx, key, []byte(strconv.FormatFloat(score, 'f', -1, 64)), fieldCacheTTL)
	return score
}

// buildStaffIntelligence populates staff fields only when staff context was
// supplied and explicitly selected; the sub-record otherwise keeps its
// neutral defaults so the shape never varies.
func (f *FallbackChain) buildStaffIntelligence(result *models.AnalysisResult, input models.ReviewInput, text string, score float64) []string {
	if !input.Settings.StaffIntelligence || input.Staff == nil || !input.Staff.ExplicitlySelected {
		return []string{}
	}
	if input.Settings.IgnoreAbusiveReviewsForStaff && result.Moderation.IsAbusive {
		// Abusive reviews must not count against the staff member.
		return []string{}
	}

	recs := analysis.AnalyzeStaffPerformance(text, input.Staff.ID, score)

	result.Staff.StaffID = input.Staff.ID
	result.Staff.StaffName = input.Staff.Name
	result.Staff.MentionedExplicitly = analysis.StaffMentioned(text, input.Staff.Name)
	result.Staff.SentimentTowardStaff = analysis.SentimentLabel(score)
	result.Staff.SoftSkillScores = analysis.SoftSkillScores(score, recs)
	result.Staff.TrainingRecommendations = recs
	result.Staff.RiskLevel = analysis.StaffRiskLevel(score, recs, result.Moderation.Severity)

	return recs
}

func (f *FallbackChain) buildServiceUnitIntelligence(result *models.AnalysisResult, input models.ReviewInput, score float64) {
	if !input.Settings.ServiceUnitIntelligence || input.ServiceUnit == nil {
		return
	}

	result.ServiceUnit.UnitType = input.ServiceUnit.Type
	result.ServiceUnit.UnitID = input.ServiceUnit.ID

	if score >= analysis.NeutralThreshold {
		return
	}
	for _, theme := range result.Themes {
		result.ServiceUnit.IssuesDetected = append(result.ServiceUnit.IssuesDetected, theme.Topic)
		if theme.Topic == "cleanliness" || theme.Topic == "product quality" {
			result.ServiceUnit.MaintenanceRequired = true
		}
	}
}

func buildAlerts(result *models.AnalysisResult) models.AlertInfo {
	switch {
	case result.Moderation.Severity >= 3:
		return models.AlertInfo{Triggered: true, Type: "abusive_review", Priority: "high"}
	case result.Staff.RiskLevel == "high":
		return models.AlertInfo{Triggered: true, Type: "staff_risk", Priority: "high"}
	case result.Sentiment.Score <= 0.2:
		return models.AlertInfo{Triggered: true, Type: "very_negative_review", Priority: "medium"}
	default:
		return models.AlertInfo{}
	}
}

func buildSummary(text string, result *models.AnalysisResult, keyPhrases []string) models.Summary {
	leading := text
	if sentences := textutil.SplitSentences(text); len(sentences) > 0 {
		leading = sentences[0]
	}
	if len(leading) > 80 {
		leading = leading[:80]
	}

	oneLine := strings.TrimSpace(result.Sentiment.Label + " review: " + leading)

	var b strings.Builder
	b.WriteString("Customer sentiment is ")
	b.WriteString(result.Sentiment.Label)
	b.WriteString(" with ")
	b.WriteString(result.Emotion.Intensity)
	b.WriteString(" ")
	b.WriteString(result.Emotion.Primary)
	b.WriteString(".")

	if len(result.Themes) > 0 {
		topics := make([]string, 0, len(result.Themes))
		for _, t := range result.Themes {
			topics = append(topics, t.Topic)
		}
		b.WriteString(" Topics raised: ")
		b.WriteString(strings.Join(topics, ", "))
		b.WriteString(".")
	}
	if len(keyPhrases) > 0 {
		b.WriteString(" Key mentions: ")
		b.WriteString(strings.Join(keyPhrases, ", "))
		b.WriteString(".")
	}
	if len(result.Staff.TrainingRecommendations) > 0 {
		b.WriteString(" Staff coaching flagged for ")
		b.WriteString(result.Staff.StaffName)
		b.WriteString(".")
	}
	if result.Moderation.IsAbusive {
		b.WriteString(" Review held back from public display by moderation.")
	}

	return models.Summary{OneLine: oneLine, ManagerSummary: b.String()}
}

func buildExplainability(text string, result *models.AnalysisResult, keyPhrases []string) models.Explainability {
	expl := models.Explainability{
		DecisionBasis: []string{"weighted_lexicon_sentiment"},
		RulesApplied:  []string{},
	}

	if result.Emotion.Primary != models.EmotionNeutral {
		expl.DecisionBasis = append(expl.DecisionBasis, "emotion_keyword_weights")
	}
	if len(result.Themes) > 0 {
		expl.DecisionBasis = append(expl.DecisionBasis, "topic_keyword_match")
	}
	if len(result.Moderation.Issues) > 0 {
		expl.DecisionBasis = append(expl.DecisionBasis, "moderation_pattern_match")
	}
	if len(keyPhrases) > 0 {
		expl.DecisionBasis = append(expl.DecisionBasis, "key_phrase_frequency")
	}

	lower := strings.ToLower(text)
	if strings.Contains(lower, "not happy") {
		expl.RulesApplied = append(expl.RulesApplied, "not_happy_override")
	}
	if strings.Contains(lower, "not bad") {
		expl.RulesApplied = append(expl.RulesApplied, "not_bad_override")
	}
	if result.Emotion.Primary == models.EmotionSarcasm {
		expl.RulesApplied = append(expl.RulesApplied, "sarcasm_detection")
	}

	expl.ConfidenceScore = fallbackConfidence(text, result)
	return expl
}
