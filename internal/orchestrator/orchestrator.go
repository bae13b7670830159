// Package orchestrator coordinates review analysis: remote language-model
// call preferred, deterministic local heuristics on any failure, one
// canonical record shape either way.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spacesedan/reviewlens/internal/cache"
	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/monitoring"
)

const (
	DefaultResponseCacheTTL = 24 * time.Hour
	DefaultRemoteTimeout    = 30 * time.Second
)

// Config carries everything the orchestrator needs, passed in explicitly.
// There is no process-wide analysis state.
type Config struct {
	RemoteTimeout    time.Duration
	ResponseCacheTTL time.Duration
}

func (c *Config) applyDefaults() {
	if c.RemoteTimeout <= 0 {
		c.RemoteTimeout = DefaultRemoteTimeout
	}
	if c.ResponseCacheTTL <= 0 {
		c.ResponseCacheTTL = DefaultResponseCacheTTL
	}
}

// DurableStore is the optional second cache tier (DynamoDB in production).
type DurableStore interface {
	GetAnalysisRecord(ctx context.Context, fingerprint string) (*models.AnalysisResult, error)
	StoreAnalysisRecord(ctx context.Context, fingerprint string, record models.AnalysisResult) error
}

type Orchestrator struct {
	cfg           Config
	remote        RemoteAnalyzer
	responseCache cache.Store
	durable       DurableStore
	fallback      *FallbackChain
	health        *monitoring.RemoteHealthTracker
}

// New wires an orchestrator. remote, responseCache and durable may each be
// nil: a nil remote means every analysis takes the fallback path, nil caches
// disable the corresponding tier.
func New(cfg Config, remote RemoteAnalyzer, responseCache cache.Store, durable DurableStore) *Orchestrator {
	cfg.applyDefaults()
	return &Orchestrator{
		cfg:           cfg,
		remote:        remote,
		responseCache: responseCache,
		durable:       durable,
		fallback:      NewFallbackChain(cache.NewMemoryStore()),
		health:        monitoring.NewRemoteHealthTracker(),
	}
}

// Health exposes the remote health tracker for monitoring loops.
func (o *Orchestrator) Health() *monitoring.RemoteHealthTracker {
	return o.health
}

// Analyze runs the full pipeline for one review. It always returns a
// complete canonical record; there is no caller-visible failure mode.
func (o *Orchestrator) Analyze(ctx context.Context, input models.ReviewInput) *models.AnalysisResult {
	fingerprint := Fingerprint(input)

	if cached := o.checkCache(ctx, fingerprint); cached != nil {
		cached.Provenance.CacheHit = true
		return cached
	}

	requestID := uuid.NewString()
	result, err := o.tryRemote(ctx, input)
	if err != nil {
		if o.remote != nil {
			slog.Warn("[Orchestrator] Remote analysis unavailable, using fallback chain",
				slog.String("request_id", requestID),
				slog.String("error", err.Error()))
		}
		result = o.fallback.Build(ctx, input)
		result.Provenance.Source = models.SourceFallback
	} else {
		result.Provenance.Source = models.SourceRemote
	}
	result.Provenance.RequestID = requestID

	normalizeRecord(result)
	o.enforceStaffGate(result, input)

	o.storeCache(ctx, fingerprint, result)
	return result
}

// checkCache consults the fast tier first, then the durable tier,
// backfilling the fast tier on a durable hit.
func (o *Orchestrator) checkCache(ctx context.Context, fingerprint string) *models.AnalysisResult {
	if o.responseCache != nil {
		if raw, ok := o.responseCache.Get(ctx, fingerprint); ok {
			var cached models.AnalysisResult
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached
			}
			slog.Warn("[Orchestrator] Discarding undecodable cache entry",
				slog.String("fingerprint", fingerprint))
		}
	}

	if o.durable != nil {
		record, err := o.durable.GetAnalysisRecord(ctx, fingerprint)
		if err != nil {
			slog.Warn("[Orchestrator] Durable cache read failed",
				slog.String("error", err.Error()))
			return nil
		}
		if record != nil {
			if o.responseCache != nil {
				if raw, err := json.Marshal(record); err == nil {
					_ = o.responseCache.Set(ctx, fingerprint, raw, o.cfg.ResponseCacheTTL)
				}
			}
			return record
		}
	}

	return nil
}

var errNoRemote = errors.New("no remote analyzer configured")

var errRemoteUnhealthy = errors.New("remote analyzer marked unhealthy")

// tryRemote makes the single remote attempt and validates the response into
// a full default-shaped record. Every failure mode (transport, timeout,
// non-JSON, schema-incompatible) is just an error for the caller to downgrade.
func (o *Orchestrator) tryRemote(ctx context.Context, input models.ReviewInput) (*models.AnalysisResult, error) {
	if o.remote == nil {
		return nil, errNoRemote
	}
	if !o.health.Healthy() {
		return nil, errRemoteUnhealthy
	}

	callCtx, cancel := context.WithTimeout(ctx, o.cfg.RemoteTimeout)
	defer cancel()

	raw, err := o.remote.Analyze(callCtx, buildRemoteRequest(input))
	if err != nil {
		o.health.RecordFailure()
		return nil, err
	}

	var sparse sparseResult
	if err := json.Unmarshal([]byte(raw), &sparse); err != nil {
		o.health.RecordFailure()
		return nil, errors.New("remote response is not valid JSON")
	}
	if sparse.Sentiment == nil || sparse.Moderation == nil {
		o.health.RecordFailure()
		return nil, errors.New("remote response missing required keys")
	}

	o.health.RecordSuccess()

	result := models.NewDefaultAnalysisResult()
	mergeOntoDefaults(result, &sparse)

	if result.Explainability.ConfidenceScore <= 0 {
		result.Explainability.ConfidenceScore = remoteConfidence(result)
	}
	if result.Language.TranslatedText == "" {
		result.Language.TranslatedText = input.Text
	}

	return result, nil
}

// enforceStaffGate clears staff intelligence unless staff context was
// supplied and explicitly selected, regardless of which path produced the
// record.
func (o *Orchestrator) enforceStaffGate(result *models.AnalysisResult, input models.ReviewInput) {
	if input.Settings.StaffIntelligence && input.Staff != nil && input.Staff.ExplicitlySelected {
		return
	}
	defaults := models.NewDefaultAnalysisResult()
	result.Staff = defaults.Staff
}

func (o *Orchestrator) storeCache(ctx context.Context, fingerprint string, result *models.AnalysisResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}

	if o.responseCache != nil {
		if err := o.responseCache.Set(ctx, fingerprint, raw, o.cfg.ResponseCacheTTL); err != nil {
			slog.Warn("[Orchestrator] Response cache write failed",
				slog.String("error", err.Error()))
		}
	}
	if o.durable != nil {
		if err := o.durable.StoreAnalysisRecord(ctx, fingerprint, *result); err != nil {
			slog.Warn("[Orchestrator] Durable cache write failed",
				slog.String("error", err.Error()))
		}
	}
}
