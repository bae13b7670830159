package models

// Sentiment labels shared by every consumer of the canonical record.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Emotion categories.
const (
	EmotionAnger    = "anger"
	EmotionJoy      = "joy"
	EmotionSadness  = "sadness"
	EmotionFear     = "fear"
	EmotionSurprise = "surprise"
	EmotionDisgust  = "disgust"
	EmotionNeutral  = "neutral"
	EmotionSarcasm  = "sarcasm"
)

// Moderation action tiers, ordered by severity.
const (
	ModerationAllow         = "allow"
	ModerationWarn          = "warn"
	ModerationFlagForReview = "flag_for_review"
	ModerationBlock         = "block"
)

// Provenance sources.
const (
	SourceRemote   = "remote"
	SourceFallback = "fallback"
)

type LanguageInfo struct {
	Detected       string `json:"detected"`
	TranslatedText string `json:"translated_text"`
}

type SentimentInfo struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type EmotionInfo struct {
	Primary   string `json:"primary"`
	Intensity string `json:"intensity"`
}

type ModerationInfo struct {
	IsAbusive            bool     `json:"is_abusive"`
	SafeForPublicDisplay bool     `json:"safe_for_public_display"`
	Issues               []string `json:"issues"`
	Severity             int      `json:"severity"`
	Action               string   `json:"action"`
	Message              string   `json:"message,omitempty"`
}

type Theme struct {
	Topic      string  `json:"topic"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence"`
}

type StaffIntelligence struct {
	StaffID                 string             `json:"staff_id"`
	StaffName               string             `json:"staff_name"`
	MentionedExplicitly     bool               `json:"mentioned_explicitly"`
	SentimentTowardStaff    string             `json:"sentiment_toward_staff"`
	SoftSkillScores         map[string]float64 `json:"soft_skill_scores"`
	TrainingRecommendations []string           `json:"training_recommendations"`
	RiskLevel               string             `json:"risk_level"`
}

type ServiceUnitIntelligence struct {
	UnitType            string   `json:"unit_type"`
	UnitID              string   `json:"unit_id"`
	IssuesDetected      []string `json:"issues_detected"`
	MaintenanceRequired bool     `json:"maintenance_required"`
}

type Recommendations struct {
	BusinessActions []string `json:"business_actions"`
	StaffActions    []string `json:"staff_actions"`
}

type AlertInfo struct {
	Triggered bool   `json:"triggered"`
	Type      string `json:"type"`
	Priority  string `json:"priority"`
}

type Explainability struct {
	DecisionBasis   []string `json:"decision_basis"`
	ConfidenceScore float64  `json:"confidence_score"`
	RulesApplied    []string `json:"rules_applied"`
}

type Summary struct {
	OneLine        string `json:"one_line"`
	ManagerSummary string `json:"manager_summary"`
}

// Provenance is diagnostic metadata, kept structurally separate from the
// schema fields consumers read. Callers must never branch on it.
type Provenance struct {
	Source    string `json:"source"`
	CacheHit  bool   `json:"cache_hit"`
	RequestID string `json:"request_id"`
}

// AnalysisResult is the canonical output record. Every field is always
// present regardless of which path produced the result.
type AnalysisResult struct {
	Language        LanguageInfo            `json:"language"`
	Sentiment       SentimentInfo           `json:"sentiment"`
	Emotion         EmotionInfo             `json:"emotion"`
	Moderation      ModerationInfo          `json:"moderation"`
	Themes          []Theme                 `json:"themes"`
	Staff           StaffIntelligence       `json:"staff_intelligence"`
	ServiceUnit     ServiceUnitIntelligence `json:"service_unit_intelligence"`
	Recommendations Recommendations         `json:"recommendations"`
	Alerts          AlertInfo               `json:"alerts"`
	Explainability  Explainability          `json:"explainability"`
	Summary         Summary                 `json:"summary"`
	Provenance      Provenance              `json:"provenance"`
}

// NewDefaultAnalysisResult returns a fully shaped neutral record. Remote
// responses are merged onto this so omitted fields stay present and typed.
func NewDefaultAnalysisResult() *AnalysisResult {
	return &AnalysisResult{
		Language:  LanguageInfo{Detected: "en"},
		Sentiment: SentimentInfo{Label: SentimentNeutral, Score: 0.5},
		Emotion:   EmotionInfo{Primary: EmotionNeutral, Intensity: "low"},
		Moderation: ModerationInfo{
			SafeForPublicDisplay: true,
			Issues:               []string{},
			Action:               ModerationAllow,
		},
		Themes: []Theme{},
		Staff: StaffIntelligence{
			SoftSkillScores:         map[string]float64{},
			TrainingRecommendations: []string{},
			RiskLevel:               "low",
		},
		ServiceUnit: ServiceUnitIntelligence{
			IssuesDetected: []string{},
		},
		Recommendations: Recommendations{
			BusinessActions: []string{},
			StaffActions:    []string{},
		},
		Explainability: Explainability{
			DecisionBasis: []string{},
			RulesApplied:  []string{},
		},
	}
}
