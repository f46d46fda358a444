package ai

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/yakuperoglu/nova-ai-cli/internal/domain"
	"github.com/yakuperoglu/nova-ai-cli/internal/ports"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func openaiAdapter() providerAdapter {
	return providerAdapter{
		url:           func(endpoint, _ string) string { return endpoint },
		buildRequest:  buildChatCompletionRequest,
		parseResponse: parseChatCompletionResponse,
		setHeaders:    setOpenAIHeaders,
	}
}

func buildChatCompletionRequest(system string, req ports.ProviderRequest) ([]byte, error) {
	messages := make([]chatMessage, 0, len(req.History)+2)
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	for _, turn := range req.History {
		role := "user"
		if turn.Role == domain.RoleModel {
			role = "assistant"
		}
		messages = append(messages, chatMessage{Role: role, Content: turn.Text})
	}

	content := []string{req.Prompt}
	for _, attachment := range req.Attachments {
		content = append(content, attachmentText(attachment))
	}
	messages = append(messages, chatMessage{Role: "user", Content: strings.Join(content, "\n\n")})

	return json.Marshal(chatCompletionRequest{
		Model:          valueOr(req.Model, domain.DefaultModel),
		Messages:       messages,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
}

func parseChatCompletionResponse(body []byte) (string, error) {
	var response chatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

func setOpenAIHeaders(req *http.Request, apiKey string) {
	req.Header.Set("authorization", "Bearer "+apiKey)
}
