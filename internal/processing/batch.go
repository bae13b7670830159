package processing

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/reviewlens/internal/db"
	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/orchestrator"
)

// BATCH_CALL_DELAY spaces out sequential analyses to stay inside the remote
// service's rate limits. Throughput is deliberately traded for politeness.
const BATCH_CALL_DELAY = 500 * time.Millisecond

// AnalyzeBatch processes reviews sequentially with a fixed inter-call delay.
// Results keep input order. A canceled context returns the results produced
// so far.
func AnalyzeBatch(ctx context.Context, orch *orchestrator.Orchestrator, inputs []models.ReviewInput) []*models.AnalysisResult {
	results := make([]*models.AnalysisResult, 0, len(inputs))

	for i, input := range inputs {
		select {
		case <-ctx.Done():
			slog.Warn("[BatchProcessor] Context canceled, returning partial batch",
				slog.Int("processed", len(results)),
				slog.Int("total", len(inputs)))
			return results
		default:
		}

		if i > 0 {
			time.Sleep(BATCH_CALL_DELAY)
		}
		results = append(results, orch.Analyze(ctx, input))
	}

	slog.Info("[BatchProcessor] Batch analysis complete",
		slog.Int("count", len(results)))
	return results
}

// AnalyzeAndStoreBatch additionally persists the batch's records in one
// DynamoDB batch write keyed by fingerprint.
func AnalyzeAndStoreBatch(ctx context.Context, orch *orchestrator.Orchestrator, inputs []models.ReviewInput) []*models.AnalysisResult {
	results := AnalyzeBatch(ctx, orch, inputs)

	records := make(map[string]models.AnalysisResult, len(results))
	for i, result := range results {
		records[orchestrator.Fingerprint(inputs[i])] = *result
	}

	if err := db.StoreBatchedAnalysisRecords(ctx, records); err != nil {
		slog.Error("[BatchProcessor] Failed to store batch records",
			slog.String("error", err.Error()))
	}
	return results
}
