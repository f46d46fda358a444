// Package ai provides the AI provider factory and the HTTP providers nova talks to.
//
// Every provider shares one request pipeline (httpProvider) and differs only in
// a providerAdapter that builds the wire request and extracts the reply text:
//   - gemini: Google Gemini generateContent with a JSON response MIME type
//   - openai: any OpenAI-compatible chat completions endpoint in JSON mode
//
// The reply text is always a JSON object {type, message, command} which is
// decoded and coerced by parseAIResponse.
package ai

import (
	"fmt"
	"net/http"
	"time"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// Factory creates providers for the active configuration.
// It keeps a single HTTP client shared across providers.
type Factory struct {
	httpClient *http.Client
	logger     ports.Logger
}

// NewFactory creates a factory whose HTTP client gives up after timeout.
func NewFactory(timeout time.Duration, logger ports.Logger) *Factory {
	if timeout <= 0 {
		timeout = domain.DefaultHTTPClientTimeout
	}
	return &Factory{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ForConfig implements ports.ProviderFactory.
func (f *Factory) ForConfig(cfg domain.Config) (ports.Provider, error) {
	kind, ok := domain.ParseProviderKind(cfg.Provider.Kind)
	if !ok {
		return nil, fmt.Errorf("unsupported provider kind: %s", cfg.Provider.Kind)
	}
	switch kind {
	case domain.ProviderOpenAI:
		return newHTTPProvider(string(kind), valueOr(cfg.Provider.Endpoint, domain.DefaultOpenAIEndpoint), f.httpClient, openaiAdapter(), f.logger), nil
	default:
		return newHTTPProvider(string(kind), valueOr(cfg.Provider.Endpoint, domain.DefaultGeminiEndpoint), f.httpClient, geminiAdapter(), f.logger), nil
	}
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

var _ ports.ProviderFactory = (*Factory)(nil)
