package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// Kafka topics for the analysis worker.
const (
	KAFKA_TOPIC_ANALYSIS_REQUESTS = "review-analysis-requests"
	KAFKA_TOPIC_ANALYSIS_RESULTS  = "review-analysis-results"
)

type KafkaConfig struct {
	Broker  string
	GroupID string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func GetKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Broker:  getEnv("KAFKA_BROKER", "localhost:29092"),
		GroupID: getEnv("KAFKA_CONSUMER_GROUP_ID", "reviewlens-analysis-group"),
	}
}

var producer *kafka.Producer

func InitKafkaProducer(cfg KafkaConfig) error {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("broker", cfg.Broker))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   cfg.Broker,
		"security.protocol":   "PLAINTEXT",
		"api.version.request": "true",
		"enable.idempotence":  true,
		"acks":                "all",
	})
	if err != nil {
		return fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	producer = p
	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return nil
}

func CloseKafkaProducer() {
	if producer != nil {
		if remaining := producer.Flush(5000); remaining > 0 {
			slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
				slog.Int("remaining", remaining))
		}
		producer.Close()
		slog.Info("[KafkaClient] Kafka producer shut down")
	}
}

// PublishToKafka sends an already-serialized payload to a topic, retrying
// transient produce failures.
func PublishToKafka(topic string, key string, value []byte) error {
	if producer == nil {
		return errors.New("[KafkaClient] producer has not been initialized")
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          value,
	}

	var err error
	for i := 0; i < MAX_RETRIES; i++ {
		err = producer.Produce(msg, nil)
		if err == nil {
			return nil
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(INITIAL_BACKOFF)
	}
	return fmt.Errorf("[KafkaClient] failed to produce message after retries: %w", err)
}

var consumer *kafka.Consumer

func InitKafkaConsumer(cfg KafkaConfig) error {
	slog.Info("[KafkaClient] Initializing Kafka Consumer...",
		slog.String("broker", cfg.Broker),
		slog.String("group_id", cfg.GroupID),
		slog.String("topic", KAFKA_TOPIC_ANALYSIS_REQUESTS))

	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Broker,
		"group.id":           cfg.GroupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": false,
	})
	if err != nil {
		return fmt.Errorf("[KafkaClient] Failed to create consumer: %w", err)
	}

	if err := c.SubscribeTopics([]string{KAFKA_TOPIC_ANALYSIS_REQUESTS}, nil); err != nil {
		return fmt.Errorf("[KafkaClient] Failed to subscribe to topics: %w", err)
	}

	consumer = c
	slog.Info("[KafkaClient] Kafka Consumer initialized successfully")
	return nil
}

func CloseKafkaConsumer() {
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			slog.Warn("[KafkaClient] Failed to close consumer",
				slog.String("error", err.Error()))
		}
	}
}

// NextKafkaMessage blocks for the next analysis request, retrying transient
// read errors.
func NextKafkaMessage(ctx context.Context) (*kafka.Message, error) {
	if consumer == nil {
		return nil, errors.New("[KafkaClient] consumer has not been initialized")
	}

	for i := 0; i < MAX_RETRIES; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			msg, err := consumer.ReadMessage(time.Second * 5)
			if err != nil {
				if kafkaErr, ok := err.(kafka.Error); ok {
					if kafkaErr.Code() == kafka.ErrTimedOut {
						i = -1 // polling timeout is not a failure
						continue
					}
					if kafkaErr.Code() == kafka.ErrAllBrokersDown {
						return nil, err
					}
				}
				slog.Warn("[KafkaClient] Failed to read message, retrying...",
					slog.Int("attempt", i+1),
					slog.String("error", err.Error()))
				time.Sleep(INITIAL_BACKOFF)
				continue
			}
			return msg, nil
		}
	}
	return nil, errors.New("[KafkaClient] failed to read message after retries")
}

func CommitKafkaMessage(msg *kafka.Message) error {
	if consumer == nil {
		return errors.New("[KafkaClient] consumer has not been initialized")
	}
	if _, err := consumer.CommitMessage(msg); err != nil {
		slog.Warn("[KafkaClient] Failed to commit offset",
			slog.String("error", err.Error()))
		return err
	}
	return nil
}
