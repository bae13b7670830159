package models

// RemoteAnalysisRequest is the payload sent to the remote language-model
// service. The remote is instructed via a fixed system prompt to answer with
// JSON matching AnalysisResult; anything else is treated as a remote failure.
type RemoteAnalysisRequest struct {
	Settings       BusinessSettings    `json:"business_ai_settings"`
	Source         string              `json:"source"`
	BusinessType   string              `json:"business_type"`
	BranchID       string              `json:"branch_id"`
	SubmittedAt    string              `json:"submitted_at"`
	Text           string              `json:"text"`
	IsVoice        bool                `json:"is_voice"`
	Language       string              `json:"original_language"`
	Rating         *float64            `json:"rating,omitempty"`
	Staff          *StaffContext       `json:"staff_context,omitempty"`
	ServiceUnit    *ServiceUnitContext `json:"service_unit,omitempty"`
	HistoricalData map[string]any      `json:"historical_data,omitempty"`
}
