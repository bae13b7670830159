package clients

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const DefaultOpenAITimeout = 30 * time.Second

type OpenAIClient struct {
	Client *openai.Client
	Model  string
}

// NewOpenAIClient builds a client from explicit credentials. Configuration is
// passed in by the caller rather than read from process-wide state so tests
// can construct clients against fakes.
func NewOpenAIClient(apiKey, model string, timeout time.Duration) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.New("[OpenAIClient] missing API key")
	}
	if timeout <= 0 {
		timeout = DefaultOpenAITimeout
	}
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}

	httpClient := &http.Client{
		Timeout: timeout,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
	)

	slog.Info("[OpenAIClient] OpenAI client initialized",
		slog.String("model", model),
		slog.Duration("timeout", timeout))

	return &OpenAIClient{Client: client, Model: model}, nil
}
