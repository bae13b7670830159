package orchestrator

import "github.com/spacesedan/reviewlens/internal/models"

// sparseResult mirrors models.AnalysisResult with every leaf optional. The
// remote response unmarshals into this; mergeOntoDefaults then folds it onto
// a fully shaped default record so omitted fields keep their typed defaults.
type sparseResult struct {
	Language *struct {
		Detected       *string `json:"detected"`
		TranslatedText *string `json:"translated_text"`
	} `json:"language"`
	Sentiment *struct {
		Label *string  `json:"label"`
		Score *float64 `json:"score"`
	} `json:"sentiment"`
	Emotion *struct {
		Primary   *string `json:"primary"`
		Intensity *string `json:"intensity"`
	} `json:"emotion"`
	Moderation *struct {
		IsAbusive            *bool     `json:"is_abusive"`
		SafeForPublicDisplay *bool     `json:"safe_for_public_display"`
		Issues               *[]string `json:"issues"`
		Severity             *int      `json:"severity"`
		Action               *string   `json:"action"`
		Message              *string   `json:"message"`
	} `json:"moderation"`
	Themes *[]models.Theme `json:"themes"`
	Staff  *struct {
		StaffID                 *string             `json:"staff_id"`
		StaffName               *string             `json:"staff_name"`
		MentionedExplicitly     *bool               `json:"mentioned_explicitly"`
		SentimentTowardStaff    *string             `json:"sentiment_toward_staff"`
		SoftSkillScores         *map[string]float64 `json:"soft_skill_scores"`
		TrainingRecommendations *[]string           `json:"training_recommendations"`
		RiskLevel               *string             `json:"risk_level"`
	} `json:"staff_intelligence"`
	ServiceUnit *struct {
		UnitType            *string   `json:"unit_type"`
		UnitID              *string   `json:"unit_id"`
		IssuesDetected      *[]string `json:"issues_detected"`
		MaintenanceRequired *bool     `json:"maintenance_required"`
	} `json:"service_unit_intelligence"`
	Recommendations *struct {
		BusinessActions *[]string `json:"business_actions"`
		StaffActions    *[]string `json:"staff_actions"`
	} `json:"recommendations"`
	Alerts *struct {
		Triggered *bool   `json:"triggered"`
		Type      *string `json:"type"`
		Priority  *string `json:"priority"`
	} `json:"alerts"`
	Explainability *struct {
		DecisionBasis   *[]string `json:"decision_basis"`
		ConfidenceScore *float64  `json:"confidence_score"`
		RulesApplied    *[]string `json:"rules_applied"`
	} `json:"explainability"`
	Summary *struct {
		OneLine        *string `json:"one_line"`
		ManagerSummary *string `json:"manager_summary"`
	} `json:"summary"`
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setStrings(dst *[]string, src *[]string) {
	if src != nil && *src != nil {
		*dst = *src
	}
}

// mergeOntoDefaults folds a sparse remote response onto a default-shaped
// record. Every field's presence and type is guaranteed by construction.
func mergeOntoDefaults(defaults *models.AnalysisResult, sparse *sparseResult) {
	if sparse.Language != nil {
		setString(&defaults.Language.Detected, sparse.Language.Detected)
		setString(&defaults.Language.TranslatedText, sparse.Language.TranslatedText)
	}
	if sparse.Sentiment != nil {
		setString(&defaults.Sentiment.Label, sparse.Sentiment.Label)
		setFloat(&defaults.Sentiment.Score, sparse.Sentiment.Score)
	}
	if sparse.Emotion != nil {
		setString(&defaults.Emotion.Primary, sparse.Emotion.Primary)
		setString(&defaults.Emotion.Intensity, sparse.Emotion.Intensity)
	}
	if sparse.Moderation != nil {
		setBool(&defaults.Moderation.IsAbusive, sparse.Moderation.IsAbusive)
		setBool(&defaults.Moderation.SafeForPublicDisplay, sparse.Moderation.SafeForPublicDisplay)
		setStrings(&defaults.Moderation.Issues, sparse.Moderation.Issues)
		setInt(&defaults.Moderation.Severity, sparse.Moderation.Severity)
		setString(&defaults.Moderation.Action, sparse.Moderation.Action)
		setString(&defaults.Moderation.Message, sparse.Moderation.Message)
	}
	if sparse.Themes != nil && *sparse.Themes != nil {
		defaults.Themes = *sparse.Themes
	}
	if sparse.Staff != nil {
		setString(&defaults.Staff.StaffID, sparse.Staff.StaffID)
		setString(&defaults.Staff.StaffName, sparse.Staff.StaffName)
		setBool(&defaults.Staff.MentionedExplicitly, sparse.Staff.MentionedExplicitly)
		setString(&defaults.Staff.SentimentTowardStaff, sparse.Staff.SentimentTowardStaff)
		if sparse.Staff.SoftSkillScores != nil && *sparse.Staff.SoftSkillScores != nil {
			defaults.Staff.SoftSkillScores = *sparse.Staff.SoftSkillScores
		}
		setStrings(&defaults.Staff.TrainingRecommendations, sparse.Staff.TrainingRecommendations)
		setString(&defaults.Staff.RiskLevel, sparse.Staff.RiskLevel)
	}
	if sparse.ServiceUnit != nil {
		setString(&defaults.ServiceUnit.UnitType, sparse.ServiceUnit.UnitType)
		setString(&defaults.ServiceUnit.UnitID, sparse.ServiceUnit.UnitID)
		setStrings(&defaults.ServiceUnit.IssuesDetected, sparse.ServiceUnit.IssuesDetected)
		setBool(&defaults.ServiceUnit.MaintenanceRequired, sparse.ServiceUnit.MaintenanceRequired)
	}
	if sparse.Recommendations != nil {
		setStrings(&defaults.Recommendations.BusinessActions, sparse.Recommendations.BusinessActions)
		setStrings(&defaults.Recommendations.StaffActions, sparse.Recommendations.StaffActions)
	}
	if sparse.Alerts != nil {
		setBool(&defaults.Alerts.Triggered, sparse.Alerts.Triggered)
		setString(&defaults.Alerts.Type, sparse.Alerts.Type)
		setString(&defaults.Alerts.Priority, sparse.Alerts.Priority)
	}
	if sparse.Explainability != nil {
		setStrings(&defaults.Explainability.DecisionBasis, sparse.Explainability.DecisionBasis)
		setFloat(&defaults.Explainability.ConfidenceScore, sparse.Explainability.ConfidenceScore)
		setStrings(&defaults.Explainability.RulesApplied, sparse.Explainability.RulesApplied)
	}
	if sparse.Summary != nil {
		setString(&defaults.Summary.OneLine, sparse.Summary.OneLine)
		setString(&defaults.Summary.ManagerSummary, sparse.Summary.ManagerSummary)
	}
}
