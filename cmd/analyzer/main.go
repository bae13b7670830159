package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spacesedan/reviewlens/config"
	"github.com/spacesedan/reviewlens/internal/cache"
	"github.com/spacesedan/reviewlens/internal/clients"
	"github.com/spacesedan/reviewlens/internal/db"
	"github.com/spacesedan/reviewlens/internal/logging"
	"github.com/spacesedan/reviewlens/internal/models"
	"github.com/spacesedan/reviewlens/internal/orchestrator"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	text := flag.String("text", "", "review text to analyze (reads stdin when empty)")
	staffID := flag.String("staff-id", "", "staff member id")
	staffName := flag.String("staff-name", "", "staff member name")
	unitType := flag.String("unit-type", "", "service unit type")
	unitID := flag.String("unit-id", "", "service unit id")
	flag.Parse()

	reviewText := *text
	if reviewText == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			slog.Error("[Analyzer] Failed to read stdin",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		reviewText = string(data)
	}

	input := models.ReviewInput{
		Text:     reviewText,
		Settings: models.DefaultBusinessSettings(),
		Source:   "cli",
	}
	if *staffID != "" {
		input.Staff = &models.StaffContext{
			ID:                 *staffID,
			Name:               *staffName,
			ExplicitlySelected: true,
		}
	}
	if *unitType != "" {
		input.ServiceUnit = &models.ServiceUnitContext{Type: *unitType, ID: *unitID}
	}

	orch := buildOrchestrator()
	result := orch.Analyze(context.Background(), input)

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		slog.Error("[Analyzer] Failed to encode result",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	fmt.Println(string(encoded))
}

func buildOrchestrator() *orchestrator.Orchestrator {
	var remote orchestrator.RemoteAnalyzer
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		client, err := clients.NewOpenAIClient(apiKey, os.Getenv("OPENAI_MODEL"), clients.DefaultOpenAITimeout)
		if err == nil {
			remote = orchestrator.NewOpenAIAnalyzer(client)
		}
	} else {
		slog.Warn("[Analyzer] OPENAI_API_KEY not set, fallback chain only")
	}

	var responseCache cache.Store
	if os.Getenv("VALKEY_INIT_ADDRESS") != "" {
		valkeyClient, err := clients.InitValkey()
		if err != nil {
			slog.Warn("[Analyzer] Valkey unavailable, continuing without response cache",
				slog.String("error", err.Error()))
		} else {
			responseCache = cache.NewValkeyStore(valkeyClient)
		}
	}
	if responseCache == nil {
		responseCache = cache.NewMemoryStore()
	}

	var durable orchestrator.DurableStore
	if os.Getenv("DYNAMODB_CACHE_ENABLED") == "true" {
		durable = db.NewRecordStore()
	}

	return orchestrator.New(orchestrator.Config{}, remote, responseCache, durable)
}
