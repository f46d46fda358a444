package ai

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	Contents          []geminiContent        `json:"contents"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func geminiAdapter() providerAdapter {
	return providerAdapter{
		url:           geminiURL,
		buildRequest:  buildGeminiRequest,
		parseResponse: parseGeminiResponse,
		setHeaders:    setGeminiHeaders,
	}
}

// geminiURL appends models/<model>:generateContent unless the endpoint already names a method.
func geminiURL(endpoint, model string) string {
	if strings.Contains(endpoint, ":generateContent") {
		return endpoint
	}
	return strings.TrimRight(endpoint, "/") + "/models/" + url.PathEscape(model) + ":generateContent"
}

func buildGeminiRequest(system string, req ports.ProviderRequest) ([]byte, error) {
	contents := make([]geminiContent, 0, len(req.History)+1)
	for _, turn := range req.History {
		contents = append(contents, geminiContent{
			Role:  string(turn.Role),
			Parts: []geminiPart{{Text: turn.Text}},
		})
	}

	parts := []geminiPart{{Text: req.Prompt}}
	for _, attachment := range req.Attachments {
		parts = append(parts, geminiPart{Text: attachmentText(attachment)})
	}
	contents = append(contents, geminiContent{Role: string(domain.RoleUser), Parts: parts})

	request := geminiRequest{
		Contents:         contents,
		GenerationConfig: geminiGenerationConfig{ResponseMimeType: "application/json"},
	}
	if system != "" {
		request.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	return json.Marshal(request)
}

func parseGeminiResponse(body []byte) (string, error) {
	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response.Candidates) == 0 {
		return "", nil
	}
	var text strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return strings.TrimSpace(text.String()), nil
}

func setGeminiHeaders(req *http.Request, apiKey string) {
	req.Header.Set("x-goog-api-key", apiKey)
}
