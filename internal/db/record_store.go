package db

import (
	"context"

	"github.com/spacesedan/reviewlens/internal/models"
)

// RecordStore adapts the DynamoDB record functions to the orchestrator's
// durable-store interface.
type RecordStore struct{}

func NewRecordStore() *RecordStore {
	InitDynamoDB()
	return &RecordStore{}
}

func (RecordStore) GetAnalysisRecord(ctx context.Context, fingerprint string) (*models.AnalysisResult, error) {
	return GetAnalysisRecord(ctx, fingerprint)
}

func (RecordStore) StoreAnalysisRecord(ctx context.Context, fingerprint string, record models.AnalysisResult) error {
	return StoreAnalysisRecord(ctx, fingerprint, record)
}
