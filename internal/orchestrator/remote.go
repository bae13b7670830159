package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/spacesedan/reviewlens/internal/clients"
	"github.com/spacesedan/reviewlens/internal/models"
)

const analysisPrompt = `You are a customer review intelligence engine.
Analyze the review in the user message and respond with a single JSON object.

### **STRICT OUTPUT FORMAT**
You MUST return only **valid JSON**, formatted exactly as follows:
{
  "language": {"detected": "XX", "translated_text": "XXX"},
  "sentiment": {"label": "positive|neutral|negative", "score": 0.0},
  "emotion": {"primary": "anger|joy|sadness|fear|surprise|disgust|neutral|sarcasm", "intensity": "low|medium|high"},
  "moderation": {"is_abusive": false, "safe_for_public_display": true, "issues": [], "severity": 0, "action": "allow|warn|flag_for_review|block"},
  "themes": [{"topic": "XXX", "type": "XXX", "confidence": 0.0}],
  "staff_intelligence": {"staff_id": "XXX", "staff_name": "XXX", "mentioned_explicitly": false, "sentiment_toward_staff": "XXX", "soft_skill_scores": {}, "training_recommendations": [], "risk_level": "low|medium|high"},
  "service_unit_intelligence": {"unit_type": "XXX", "unit_id": "XXX", "issues_detected": [], "maintenance_required": false},
  "recommendations": {"business_actions": [], "staff_actions": []},
  "alerts": {"triggered": false, "type": "XXX", "priority": "XXX"},
  "explainability": {"decision_basis": [], "confidence_score": 0.0, "rules_applied": []},
  "summary": {"one_line": "XXX", "manager_summary": "XXX"}
}

### **REQUIREMENTS**
- **No Markdown formatting** (no triple backticks, no explanations).
- **No extra text before or after the JSON output**.
- **No trailing commas** in JSON objects or arrays.
- **Ensure correct escaping of special characters** in JSON strings.
- Respect the business AI settings included in the request: skip analyses
  that are toggled off by returning their neutral defaults.
- Only populate staff_intelligence when staff context was supplied and
  explicitly selected.`

// RemoteAnalyzer is the remote language-model collaborator. Implementations
// return the raw response body; the orchestrator owns validation.
type RemoteAnalyzer interface {
	Analyze(ctx context.Context, req models.RemoteAnalysisRequest) (string, error)
}

// OpenAIAnalyzer implements RemoteAnalyzer over the OpenAI chat API.
type OpenAIAnalyzer struct {
	client *clients.OpenAIClient
}

func NewOpenAIAnalyzer(client *clients.OpenAIClient) *OpenAIAnalyzer {
	return &OpenAIAnalyzer{client: client}
}

// Analyze makes a single attempt against the remote service. Retry/backoff is
// deliberately absent: any failure means immediate local fallback.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, req models.RemoteAnalysisRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("[RemoteAnalyzer] failed to marshal request: %w", err)
	}

	start := time.Now()
	chatCompletion, err := a.client.Client.Chat.Completions.New(ctx,
		openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(analysisPrompt),
				openai.UserMessage(string(payload)),
			}),
			Model:       openai.F(a.client.Model),
			Temperature: openai.Float(0.2),
		})
	if err != nil {
		return "", fmt.Errorf("[RemoteAnalyzer] chat completion failed: %w", err)
	}

	if len(chatCompletion.Choices) == 0 || strings.TrimSpace(chatCompletion.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("[RemoteAnalyzer] empty response")
	}

	slog.Info("[RemoteAnalyzer] Remote analysis complete",
		slog.Duration("elapsed", time.Since(start)))

	return cleanRemoteResponse(chatCompletion.Choices[0].Message.Content), nil
}

// cleanRemoteResponse strips markdown fences and standardizes quotes that the
// model occasionally emits despite the prompt.
func cleanRemoteResponse(response string) string {
	response = strings.TrimSpace(response)

	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	response = strings.ReplaceAll(response, "“", `"`) // Left curly quote
	response = strings.ReplaceAll(response, "”", `"`) // Right curly quote

	return strings.TrimSpace(response)
}

// buildRemoteRequest assembles the collaborator payload from the review
// input, carrying the business AI settings verbatim.
func buildRemoteRequest(input models.ReviewInput) models.RemoteAnalysisRequest {
	req := models.RemoteAnalysisRequest{
		Settings:     input.Settings,
		Source:       input.Source,
		BusinessType: input.BusinessType,
		BranchID:     input.BranchID,
		Text:         input.Text,
		IsVoice:      input.IsVoice,
		Language:     input.OriginalLanguage,
		Rating:       input.Rating,
		Staff:        input.Staff,
		ServiceUnit:  input.ServiceUnit,
	}
	if !input.SubmittedAt.IsZero() {
		req.SubmittedAt = input.SubmittedAt.UTC().Format(time.RFC3339)
	}
	return req
}
