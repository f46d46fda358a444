package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
)

type wireResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Command string `json:"command"`
}

// parseAIResponse decodes the model's JSON reply. An unknown type becomes
// chat, a missing message gets FallbackMessage and chat replies never carry
// a command.
func parseAIResponse(text string) (domain.AIResponse, error) {
	raw := strings.TrimSpace(text)
	if raw == "" {
		return domain.AIResponse{}, &domain.ProviderError{Kind: domain.ProviderEmpty, Message: emptyMessage}
	}

	var wire wireResponse
	if err := json.Unmarshal([]byte(stripJSONFence(raw)), &wire); err != nil {
		return domain.AIResponse{}, &domain.ProviderError{
			Kind:    domain.ProviderMalformed,
			Message: fmt.Sprintf("Failed to parse AI response. Raw output: %s", truncate(raw, 500)),
			Raw:     raw,
			Err:     err,
		}
	}

	resp := domain.AIResponse{
		Kind:    domain.ResponseKind(wire.Type),
		Message: strings.TrimSpace(wire.Message),
		Command: wire.Command,
		Raw:     raw,
	}
	if resp.Kind != domain.ResponseChat && resp.Kind != domain.ResponseCommand {
		resp.Kind = domain.ResponseChat
	}
	if resp.Message == "" {
		resp.Message = domain.FallbackMessage
	}
	if resp.Kind != domain.ResponseCommand {
		resp.Command = ""
	}
	return resp, nil
}

// stripJSONFence removes a ```json fence some models wrap around JSON mode output.
func stripJSONFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, "```"))
}
