// Package domain defines core business entities and value objects for nova.
//
// This file contains AI provider definitions used throughout the application.
// The domain layer is independent of infrastructure concerns.
package domain

// ProviderKind selects the wire format used to reach the AI service.
type ProviderKind string

const (
	// ProviderGemini speaks the Gemini generateContent REST API.
	ProviderGemini ProviderKind = "gemini"
	// ProviderOpenAI speaks any OpenAI-compatible chat completions API.
	ProviderOpenAI ProviderKind = "openai"
)

// Provider defaults
const (
	DefaultModel          = "gemini-2.5-flash"
	DefaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"
)

// ParseProviderKind maps a config value to a ProviderKind, defaulting to Gemini.
func ParseProviderKind(value string) (ProviderKind, bool) {
	switch ProviderKind(value) {
	case "", ProviderGemini:
		return ProviderGemini, true
	case ProviderOpenAI:
		return ProviderOpenAI, true
	default:
		return "", false
	}
}

// PromptMessage follows the role/content pair required by chat APIs.
type PromptMessage struct {
	Role    string
	Content string
}
