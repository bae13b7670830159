package models

import "time"

// StaffContext identifies the staff member a review was submitted against.
// ExplicitlySelected is true only when the reviewer picked the staff member
// themselves; staff intelligence is skipped otherwise.
type StaffContext struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	ExplicitlySelected bool   `json:"explicitly_selected"`
}

type ServiceUnitContext struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// BusinessSettings are the per-business AI toggles consumed (not owned) by the
// analysis core. Zero value disables everything; use DefaultBusinessSettings.
type BusinessSettings struct {
	LanguageTranslation          bool    `json:"language_translation"`
	SentimentAnalysis            bool    `json:"sentiment_analysis"`
	EmotionDetection             bool    `json:"emotion_detection"`
	AbuseDetection               bool    `json:"abuse_detection"`
	StaffIntelligence            bool    `json:"staff_intelligence"`
	ServiceUnitIntelligence      bool    `json:"service_unit_intelligence"`
	BusinessRecommendations      bool    `json:"business_recommendations"`
	Alerts                       bool    `json:"alerts"`
	Explainability               bool    `json:"explainability"`
	IgnoreAbusiveReviewsForStaff bool    `json:"ignore_abusive_reviews_for_staff"`
	MinReviewsForStaffScore      int     `json:"min_reviews_for_staff_score"`
	ConfidenceThreshold          float64 `json:"confidence_threshold"`
}

func DefaultBusinessSettings() BusinessSettings {
	return BusinessSettings{
		LanguageTranslation:          true,
		SentimentAnalysis:            true,
		EmotionDetection:             true,
		AbuseDetection:               true,
		StaffIntelligence:            true,
		ServiceUnitIntelligence:      true,
		BusinessRecommendations:      true,
		Alerts:                       true,
		Explainability:               true,
		IgnoreAbusiveReviewsForStaff: true,
		MinReviewsForStaffScore:      5,
		ConfidenceThreshold:          0.6,
	}
}

// ReviewInput is the immutable per-request value handed to the orchestrator.
type ReviewInput struct {
	Text             string              `json:"text"`
	Rating           *float64            `json:"rating,omitempty"`
	Staff            *StaffContext       `json:"staff_context,omitempty"`
	ServiceUnit      *ServiceUnitContext `json:"service_unit_context,omitempty"`
	Settings         BusinessSettings    `json:"business_settings"`
	Source           string              `json:"source,omitempty"`
	BusinessType     string              `json:"business_type,omitempty"`
	BranchID         string              `json:"branch_id,omitempty"`
	SubmittedAt      time.Time           `json:"submitted_at,omitempty"`
	IsVoice          bool                `json:"is_voice,omitempty"`
	OriginalLanguage string              `json:"original_language,omitempty"`
}
