package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spacesedan/reviewlens/config"
	"github.com/spacesedan/reviewlens/internal/cache"
	"github.com/spacesedan/reviewlens/internal/clients"
	"github.com/spacesedan/reviewlens/internal/consumers"
	"github.com/spacesedan/reviewlens/internal/db"
	"github.com/spacesedan/reviewlens/internal/logging"
	"github.com/spacesedan/reviewlens/internal/monitoring"
	"github.com/spacesedan/reviewlens/internal/orchestrator"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		slog.Warn("[Main] Shutdown signal received")
		cancel()
	}()

	cfg := clients.GetKafkaConfig()
	for {
		err := clients.InitKafkaProducer(cfg)
		if err == nil {
			break
		}
		slog.Warn("Kafka producer init failed, retrying...",
			slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer clients.CloseKafkaProducer()

	for {
		err := clients.InitKafkaConsumer(cfg)
		if err == nil {
			break
		}
		slog.Warn("Kafka consumer init failed, retrying...",
			slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer clients.CloseKafkaConsumer()

	orch := buildOrchestrator()

	remoteHealthy := &atomic.Bool{}
	remoteHealthy.Store(true)
	go monitoring.MonitorRemoteAnalyzerHealth(ctx, orch.Health(), remoteHealthy)

	consumers.StartAnalysisConsumer(ctx, orch)
}

func buildOrchestrator() *orchestrator.Orchestrator {
	var remote orchestrator.RemoteAnalyzer
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		client, err := clients.NewOpenAIClient(apiKey, os.Getenv("OPENAI_MODEL"), clients.DefaultOpenAITimeout)
		if err != nil {
			slog.Warn("[Main] OpenAI client init failed, fallback chain only",
				slog.String("error", err.Error()))
		} else {
			remote = orchestrator.NewOpenAIAnalyzer(client)
		}
	} else {
		slog.Warn("[Main] OPENAI_API_KEY not set, fallback chain only")
	}

	var responseCache cache.Store
	for i := 0; i < 3; i++ {
		valkeyClient, err := clients.InitValkey()
		if err == nil {
			responseCache = cache.NewValkeyStore(valkeyClient)
			break
		}
		slog.Warn("[Main] Valkey init failed, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}
	if responseCache == nil {
		slog.Warn("[Main] Valkey unavailable, using in-memory response cache")
		responseCache = cache.NewMemoryStore()
	}

	var durable orchestrator.DurableStore
	if os.Getenv("DYNAMODB_CACHE_ENABLED") == "true" {
		durable = db.NewRecordStore()
	}

	return orchestrator.New(orchestrator.Config{}, remote, responseCache, durable)
}
