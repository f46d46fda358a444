package ai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
)

const (
	missingKeyMessage = "API key is not configured. Authenticate first with: nova auth <your-api-key> (get a free key at https://aistudio.google.com/apikey)"
	quotaMessage      = "API quota exceeded. Please check your API key limits at https://ai.google.dev/pricing"
	authMessage       = "Invalid or revoked API key. Try running: nova auth <new-key>"
	emptyMessage      = "AI returned an empty response. Please try rephrasing your request."
)

// apiErrorBody covers the error envelopes of both Gemini and OpenAI.
type apiErrorBody struct {
	Error struct {
		Code    interface{} `json:"code"`
		Message string      `json:"message"`
		Status  string      `json:"status"`
		Type    string      `json:"type"`
		Details []struct {
			Reason string `json:"reason"`
		} `json:"details"`
	} `json:"error"`
}

// classifyHTTPError maps an error status and body to a ProviderError.
// Quota is checked before authentication.
func classifyHTTPError(provider string, status int, body []byte) *domain.ProviderError {
	var envelope apiErrorBody
	_ = json.Unmarshal(body, &envelope)

	detail := envelope.Error.Message
	if detail == "" {
		detail = strings.TrimSpace(truncate(string(body), 300))
	}
	lowered := strings.ToLower(string(body))

	switch {
	case status == http.StatusTooManyRequests,
		strings.Contains(lowered, "quota"),
		envelope.Error.Status == "RESOURCE_EXHAUSTED":
		return &domain.ProviderError{Kind: domain.ProviderQuota, Status: status, Message: quotaMessage, Raw: string(body)}
	case status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		strings.Contains(string(body), "API_KEY_INVALID"),
		envelope.Error.Code == "invalid_api_key":
		return &domain.ProviderError{Kind: domain.ProviderAuth, Status: status, Message: authMessage, Raw: string(body)}
	default:
		return &domain.ProviderError{
			Kind:    domain.ProviderHTTP,
			Status:  status,
			Message: fmt.Sprintf("%s API error (HTTP %d): %s", provider, status, detail),
			Raw:     string(body),
		}
	}
}
