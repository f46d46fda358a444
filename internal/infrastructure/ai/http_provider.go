package ai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

// maxResponseBytes bounds how much of a provider reply is read.
const maxResponseBytes = 8 << 20

type httpProvider struct {
	name       string
	endpoint   string
	httpClient *http.Client
	adapter    providerAdapter
	logger     ports.Logger
}

// providerAdapter isolates the wire format of one backend.
type providerAdapter struct {
	// url returns the request URL for model.
	url func(endpoint, model string) string
	// buildRequest encodes the system prompt, history and the current user turn.
	buildRequest func(system string, req ports.ProviderRequest) ([]byte, error)
	// parseResponse extracts the generated text; empty text is not an error.
	parseResponse func([]byte) (string, error)
	setHeaders    func(*http.Request, string)
}

func newHTTPProvider(name, endpoint string, client *http.Client, adapter providerAdapter, logger ports.Logger) ports.Provider {
	return &httpProvider{
		name:       name,
		endpoint:   endpoint,
		httpClient: client,
		adapter:    adapter,
		logger:     logger,
	}
}

func (p *httpProvider) Name() string {
	return p.name
}

// Generate implements ports.Provider.
func (p *httpProvider) Generate(ctx context.Context, req ports.ProviderRequest) (domain.AIResponse, error) {
	if strings.TrimSpace(req.APIKey) == "" {
		return domain.AIResponse{}, &domain.ProviderError{
			Kind:    domain.ProviderAuth,
			Message: missingKeyMessage,
			Err:     domain.ErrMissingAPIKey,
		}
	}
	model := valueOr(req.Model, domain.DefaultModel)

	system, err := renderSystemPrompt(req.Environment, req.Memories)
	if err != nil {
		return domain.AIResponse{}, fmt.Errorf("render prompt: %w", err)
	}
	body, err := p.adapter.buildRequest(system, req)
	if err != nil {
		return domain.AIResponse{}, fmt.Errorf("build request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.adapter.url(p.endpoint, model), bytes.NewReader(body))
	if err != nil {
		return domain.AIResponse{}, fmt.Errorf("create HTTP request: %w", err)
	}
	httpReq.Header.Set("content-type", "application/json")
	p.adapter.setHeaders(httpReq, req.APIKey)

	p.debug("provider request", map[string]interface{}{"provider": p.name, "model": model, "history": len(req.History), "attachments": len(req.Attachments)})

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return domain.AIResponse{}, err
		}
		return domain.AIResponse{}, &domain.ProviderError{
			Kind:    domain.ProviderNetwork,
			Message: fmt.Sprintf("Could not reach the %s API. Check your network connection.", p.name),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(io.LimitReader(resp.Body, maxResponseBytes)); err != nil {
		return domain.AIResponse{}, &domain.ProviderError{Kind: domain.ProviderNetwork, Message: "Failed to read the AI response.", Err: err}
	}

	if resp.StatusCode >= 400 {
		return domain.AIResponse{}, classifyHTTPError(p.name, resp.StatusCode, responseBody.Bytes())
	}

	text, err := p.adapter.parseResponse(responseBody.Bytes())
	if err != nil {
		return domain.AIResponse{}, &domain.ProviderError{
			Kind:    domain.ProviderMalformed,
			Message: fmt.Sprintf("Failed to parse AI response. Raw output: %s", truncate(responseBody.String(), 500)),
			Raw:     responseBody.String(),
			Err:     err,
		}
	}
	return parseAIResponse(text)
}

func (p *httpProvider) debug(msg string, fields map[string]interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, fields)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
