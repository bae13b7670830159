package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/reviewlens/internal/cache"
	"github.com/spacesedan/reviewlens/internal/models"
)

type stubRemote struct {
	calls    int
	response string
	err      error
}

func (s *stubRemote) Analyze(_ context.Context, _ models.RemoteAnalysisRequest) (string, error) {
	s.calls++
	return s.response, s.err
}

const validRemoteResponse = `{
	"sentiment": {"label": "positive", "score": 0.92},
	"moderation": {"is_abusive": false, "safe_for_public_display": true, "issues": [], "severity": 0, "action": "allow"},
	"themes": [{"topic": "food quality", "type": "food", "confidence": 0.9}]
}`

func positiveInput() models.ReviewInput {
	return models.ReviewInput{
		Text:     "The food was absolutely delicious! Best meal I've had in years.",
		Settings: models.DefaultBusinessSettings(),
	}
}

func TestOrchestrator_RemotePath(t *testing.T) {
	remote := &stubRemote{response: validRemoteResponse}
	orch := New(Config{}, remote, cache.NewMemoryStore(), nil)

	result := orch.Analyze(context.Background(), positiveInput())

	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, models.SourceRemote, result.Provenance.Source)
	assert.False(t, result.Provenance.CacheHit)
	assert.NotEmpty(t, result.Provenance.RequestID)

	assert.InDelta(t, 0.92, result.Sentiment.Score, 0.001)
	assert.Equal(t, models.SentimentPositive, result.Sentiment.Label)
	assert.Len(t, result.Themes, 1)
	assert.Equal(t, positiveInput().Text, result.Language.TranslatedText,
		"missing translated text backfills from the input")
}

func TestOrchestrator_FallbackOnRemoteError(t *testing.T) {
	remote := &stubRemote{err: errors.New("connection refused")}
	orch := New(Config{}, remote, cache.NewMemoryStore(), nil)

	result := orch.Analyze(context.Background(), positiveInput())

	assert.Equal(t, models.SourceFallback, result.Provenance.Source)
	assert.Equal(t, models.SentimentPositive, result.Sentiment.Label)
	assertFullyShaped(t, result)
}

func TestOrchestrator_FallbackOnMalformedResponse(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json", "I think this review is positive overall!"},
		{"missing required keys", `{"sentiment": {"label": "positive", "score": 0.9}}`},
		{"empty object", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remote := &stubRemote{response: tt.response}
			orch := New(Config{}, remote, cache.NewMemoryStore(), nil)

			result := orch.Analyze(context.Background(), positiveInput())

			assert.Equal(t, 1, remote.calls)
			assert.Equal(t, models.SourceFallback, result.Provenance.Source)
			assertFullyShaped(t, result)
		})
	}
}

func TestOrchestrator_NilRemoteUsesFallback(t *testing.T) {
	orch := New(Config{}, nil, cache.NewMemoryStore(), nil)

	result := orch.Analyze(context.Background(), positiveInput())

	assert.Equal(t, models.SourceFallback, result.Provenance.Source)
	assertFullyShaped(t, result)
}

func TestOrchestrator_CachedResultSkipsRemote(t *testing.T) {
	remote := &stubRemote{response: validRemoteResponse}
	orch := New(Config{}, remote, cache.NewMemoryStore(), nil)
	ctx := context.Background()
	input := positiveInput()

	first := orch.Analyze(ctx, input)
	second := orch.Analyze(ctx, input)
	third := orch.Analyze(ctx, input)

	assert.Equal(t, 1, remote.calls, "identical input within the TTL must not re-invoke the remote")

	assert.False(t, first.Provenance.CacheHit)
	assert.True(t, second.Provenance.CacheHit)

	// Apart from the cache-hit marker, the cached record is byte-identical.
	expected := *first
	expected.Provenance.CacheHit = true
	assert.Equal(t, &expected, second)
	assert.Equal(t, second, third)
}

func TestOrchestrator_DifferentSettingsMissCache(t *testing.T) {
	remote := &stubRemote{response: validRemoteResponse}
	orch := New(Config{}, remote, cache.NewMemoryStore(), nil)
	ctx := context.Background()

	orch.Analyze(ctx, positiveInput())

	other := positiveInput()
	other.Settings.StaffIntelligence = false
	orch.Analyze(ctx, other)

	assert.Equal(t, 2, remote.calls)
}

func TestOrchestrator_RemoteSkippedAfterRepeatedFailures(t *testing.T) {
	remote := &stubRemote{err: errors.New("rate limited")}
	orch := New(Config{}, remote, nil, nil)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result := orch.Analyze(ctx, positiveInput())
		assert.Equal(t, models.SourceFallback, result.Provenance.Source)
	}

	assert.Equal(t, 3, remote.calls,
		"after the failure limit the remote must be skipped until cool-off")
	assert.False(t, orch.Health().Healthy())
}

func TestOrchestrator_RemoteRecoversHealth(t *testing.T) {
	remote := &stubRemote{response: validRemoteResponse}
	orch := New(Config{}, remote, nil, nil)

	orch.Health().RecordFailure()
	orch.Health().RecordFailure()

	result := orch.Analyze(context.Background(), positiveInput())

	assert.Equal(t, models.SourceRemote, result.Provenance.Source)
	assert.True(t, orch.Health().Healthy())
}

func TestOrchestrator_StaffGateOnRemoteResponse(t *testing.T) {
	remote := &stubRemote{response: `{
		"sentiment": {"label": "negative", "score": 0.2},
		"moderation": {"is_abusive": false, "severity": 1, "action": "warn"},
		"staff_intelligence": {"staff_id": "1", "staff_name": "Ateeq", "mentioned_explicitly": true, "training_recommendations": ["Customer courtesy training recommended"], "risk_level": "high"}
	}`}
	orch := New(Config{}, remote, cache.NewMemoryStore(), nil)

	// No staff context on the input: whatever the remote invented is dropped.
	result := orch.Analyze(context.Background(), positiveInput())

	assert.Equal(t, models.SourceRemote, result.Provenance.Source)
	assert.Empty(t, result.Staff.StaffID)
	assert.Empty(t, result.Staff.TrainingRecommendations)
	assert.Equal(t, "low", result.Staff.RiskLevel)
}

func TestOrchestrator_DurableTierBackfill(t *testing.T) {
	durable := &stubDurable{records: map[string]models.AnalysisResult{}}
	remote := &stubRemote{response: validRemoteResponse}
	fast := cache.NewMemoryStore()
	orch := New(Config{}, remote, fast, durable)
	ctx := context.Background()
	input := positiveInput()

	first := orch.Analyze(ctx, input)
	require.Equal(t, 1, len(durable.records), "durable tier stores the record")

	// Fresh orchestrator with an empty fast tier but the same durable store.
	rebuilt := New(Config{}, remote, cache.NewMemoryStore(), durable)
	second := rebuilt.Analyze(ctx, input)

	assert.Equal(t, 1, remote.calls, "durable hit must not re-invoke the remote")
	assert.True(t, second.Provenance.CacheHit)
	assert.Equal(t, first.Sentiment, second.Sentiment)
}

type stubDurable struct {
	records map[string]models.AnalysisResult
}

func (s *stubDurable) GetAnalysisRecord(_ context.Context, fingerprint string) (*models.AnalysisResult, error) {
	record, ok := s.records[fingerprint]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *stubDurable) StoreAnalysisRecord(_ context.Context, fingerprint string, record models.AnalysisResult) error {
	s.records[fingerprint] = record
	return nil
}

// assertFullyShaped checks the canonical-record contract: every collection
// present and typed, every enum field populated.
func assertFullyShaped(t *testing.T, result *models.AnalysisResult) {
	t.Helper()

	assert.NotEmpty(t, result.Language.Detected)
	assert.NotEmpty(t, result.Sentiment.Label)
	assert.GreaterOrEqual(t, result.Sentiment.Score, 0.0)
	assert.LessOrEqual(t, result.Sentiment.Score, 1.0)
	assert.NotEmpty(t, result.Emotion.Primary)
	assert.NotEmpty(t, result.Emotion.Intensity)
	assert.NotEmpty(t, result.Moderation.Action)
	assert.NotNil(t, result.Moderation.Issues)
	assert.NotNil(t, result.Themes)
	assert.NotNil(t, result.Staff.SoftSkillScores)
	assert.NotNil(t, result.Staff.TrainingRecommendations)
	assert.NotEmpty(t, result.Staff.RiskLevel)
	assert.NotNil(t, result.ServiceUnit.IssuesDetected)
	assert.NotNil(t, result.Recommendations.BusinessActions)
	assert.NotNil(t, result.Recommendations.StaffActions)
	assert.NotNil(t, result.Explainability.DecisionBasis)
	assert.NotNil(t, result.Explainability.RulesApplied)
	assert.NotEmpty(t, result.Provenance.Source)
	assert.NotEmpty(t, result.Provenance.RequestID)
}

func TestCleanRemoteResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain json untouched", `{"a":1}`, `{"a":1}`},
		{"json fence stripped", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence stripped", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"curly quotes standardized", `{“a”:1}`, `{"a":1}`},
		{"surrounding whitespace trimmed", "  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanRemoteResponse(tt.in))
		})
	}
}

func TestBuildRemoteRequest(t *testing.T) {
	rating := 4.0
	input := models.ReviewInput{
		Text:         "Great food.",
		Rating:       &rating,
		Staff:        &models.StaffContext{ID: "1", Name: "Ateeq", ExplicitlySelected: true},
		Settings:     models.DefaultBusinessSettings(),
		Source:       "widget",
		BusinessType: "restaurant",
	}

	req := buildRemoteRequest(input)

	assert.Equal(t, input.Text, req.Text)
	assert.Equal(t, input.Settings, req.Settings)
	assert.Equal(t, input.Staff, req.Staff)
	assert.Equal(t, &rating, req.Rating)
	assert.Equal(t, "widget", req.Source)
	assert.Empty(t, req.SubmittedAt)
}
