package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	HEALTHCHECK_TIMER   = 15
	defaultFailureLimit = 3
	defaultCoolOff      = 5 * time.Minute
)

// RemoteHealthTracker tracks consecutive remote-analyzer failures. After the
// failure limit is reached the remote is considered unhealthy until the
// cool-off elapses, letting the orchestrator skip doomed calls.
type RemoteHealthTracker struct {
	failures     atomic.Int32
	lastFailure  atomic.Int64
	failureLimit int32
	coolOff      time.Duration
}

func NewRemoteHealthTracker() *RemoteHealthTracker {
	return &RemoteHealthTracker{
		failureLimit: defaultFailureLimit,
		coolOff:      defaultCoolOff,
	}
}

func (t *RemoteHealthTracker) RecordSuccess() {
	t.failures.Store(0)
}

func (t *RemoteHealthTracker) RecordFailure() {
	t.failures.Add(1)
	t.lastFailure.Store(time.Now().UnixNano())
}

// Healthy reports whether the remote should be attempted at all.
func (t *RemoteHealthTracker) Healthy() bool {
	if t.failures.Load() < t.failureLimit {
		return true
	}
	last := time.Unix(0, t.lastFailure.Load())
	if time.Since(last) > t.coolOff {
		t.failures.Store(0)
		return true
	}
	return false
}

// MonitorRemoteAnalyzerHealth periodically logs when the remote analyzer is
// being skipped, mirroring the tracker state into an atomic flag for callers
// that only need a boolean.
func MonitorRemoteAnalyzerHealth(ctx context.Context, tracker *RemoteHealthTracker, healthy *atomic.Bool) {
	ticker := time.NewTicker(time.Second * HEALTHCHECK_TIMER)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			isHealthy := tracker.Healthy()
			healthy.Store(isHealthy)
			if !isHealthy {
				slog.Warn("[HealthCheck] Remote analyzer is unhealthy, fallback chain active")
			}
		}
	}
}
