package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/spacesedan/reviewlens/internal/clients"
	"github.com/spacesedan/reviewlens/internal/models"
)

const ANALYSIS_RECORDS_TABLE_NAME = "AnalysisRecords"

// recordTTL matches the whole-response cache window.
const recordTTL = 24 * time.Hour

var dbClient *dynamodb.Client

func InitDynamoDB() {
	dbClient = clients.GetDynamoDBClient()
}

type analysisItem struct {
	Fingerprint string                `dynamodbav:"fingerprint"`
	Record      models.AnalysisResult `dynamodbav:"record"`
	ExpiresAt   int64                 `dynamodbav:"expires_at"`
}

// StoreAnalysisRecord writes a canonical record keyed by its request
// fingerprint, with a TTL attribute so DynamoDB expires stale entries.
// Writes are idempotent: re-storing the same fingerprint is safe.
func StoreAnalysisRecord(ctx context.Context, fingerprint string, record models.AnalysisResult) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	item, err := attributevalue.MarshalMap(analysisItem{
		Fingerprint: fingerprint,
		Record:      record,
		ExpiresAt:   time.Now().Add(recordTTL).Unix(),
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to marshal analysis record: %w", err)
	}

	_, err = dbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(ANALYSIS_RECORDS_TABLE_NAME),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("[DynamoDB] Failed to store analysis record: %w", err)
	}

	slog.Info("[DynamoDB] Stored analysis record",
		slog.String("fingerprint", fingerprint))
	return nil
}

// GetAnalysisRecord fetches a cached record by fingerprint. A missing or
// expired item is (nil, nil); only transport errors are returned.
func GetAnalysisRecord(ctx context.Context, fingerprint string) (*models.AnalysisResult, error) {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	out, err := dbClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(ANALYSIS_RECORDS_TABLE_NAME),
		Key: map[string]types.AttributeValue{
			"fingerprint": &types.AttributeValueMemberS{Value: fingerprint},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to get analysis record: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var item analysisItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("[DynamoDB] Failed to unmarshal analysis record: %w", err)
	}

	// DynamoDB TTL deletion lags; treat lapsed items as misses.
	if item.ExpiresAt > 0 && time.Now().Unix() > item.ExpiresAt {
		return nil, nil
	}

	return &item.Record, nil
}

// StoreBatchedAnalysisRecords writes a batch of records, retrying
// unprocessed items with exponential backoff.
func StoreBatchedAnalysisRecords(ctx context.Context, records map[string]models.AnalysisResult) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	expiresAt := time.Now().Add(recordTTL).Unix()

	const maxBatchSize = 25
	writeRequests := make([]types.WriteRequest, 0, maxBatchSize)
	flush := func() error {
		if len(writeRequests) == 0 {
			return nil
		}
		out, err := dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				ANALYSIS_RECORDS_TABLE_NAME: writeRequests,
			},
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to batch write analysis records: %w", err)
		}

		retryCount := 0
		backoffDuration := time.Millisecond * 500
		for len(out.UnprocessedItems) > 0 && retryCount < 3 {
			time.Sleep(backoffDuration)
			backoffDuration *= 2
			slog.Warn("[DynamoDB] Retrying unprocessed items...",
				slog.Int("retry_attempt", retryCount+1),
				slog.Int("remaining_items", len(out.UnprocessedItems[ANALYSIS_RECORDS_TABLE_NAME])))

			out, err = dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: out.UnprocessedItems,
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to retry batch write: %w", err)
			}
			retryCount++
		}

		if len(out.UnprocessedItems) > 0 {
			slog.Error("[DynamoDB] Some records were not written even after retries",
				slog.Int("remaining_items", len(out.UnprocessedItems[ANALYSIS_RECORDS_TABLE_NAME])))
		}

		writeRequests = writeRequests[:0]
		return nil
	}

	for fingerprint, record := range records {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
		}

		item, err := attributevalue.MarshalMap(analysisItem{
			Fingerprint: fingerprint,
			Record:      record,
			ExpiresAt:   expiresAt,
		})
		if err != nil {
			return fmt.Errorf("[DynamoDB] Failed to marshal analysis record: %w", err)
		}

		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
		if len(writeRequests) == maxBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}

	if err := flush(); err != nil {
		return err
	}
	slog.Info("[DynamoDB] Successfully stored analysis records",
		slog.Int("count", len(records)))
	return nil
}
