package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/spacesedan/reviewlens/internal/clients"
	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/orchestrator"
	"github.com/spacesedan/reviewlens/internal/processing"
	"github.com/spacesedan/reviewlens/internal/utils"
)

var resultBuffer = utils.NewBatchBuffer[models.AnalysisResult]()

// StartAnalysisConsumer drains the analysis-request topic, runs each batch
// through the orchestrator and publishes canonical records to the results
// topic. Offsets commit only after the batch is published.
func StartAnalysisConsumer(ctx context.Context, orch *orchestrator.Orchestrator) {
	for {
		select {
		case <-ctx.Done():
			slog.Warn("[AnalysisConsumer] Consumer shutting down...")
			return
		default:
			msg, err := clients.NextKafkaMessage(ctx)
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var requests []models.ReviewInput
			if err := utils.DeserializeFromJSON(msg.Value, &requests); err != nil {
				utils.HandleConsumerError(err)
				continue
			}
			if len(requests) == 0 {
				continue
			}

			results := processing.AnalyzeAndStoreBatch(ctx, orch, requests)
			for _, result := range results {
				resultBuffer.Add(*result)
			}

			publishResults()

			if err := clients.CommitKafkaMessage(msg); err != nil {
				slog.Warn("[AnalysisConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}

func publishResults() {
	batch := resultBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	payload, err := utils.SerializeToJSON(batch)
	if err != nil {
		return
	}

	for i := 0; i < 3; i++ {
		err = clients.PublishToKafka(clients.KAFKA_TOPIC_ANALYSIS_RESULTS, batch[0].Provenance.RequestID, payload)
		if err == nil {
			return
		}
		slog.Warn("[AnalysisConsumer] Batch publishing failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}
}
