package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/pageza/smart-kitchen/backend/internal/logger"
)

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is an OpenAI-compatible chat completions request.
type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	Stream      bool      `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ChatClient talks to an OpenAI-compatible chat completions endpoint such as DeepSeek.
type ChatClient struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

// NewChatClient creates a client posting to apiURL.
func NewChatClient(apiKey, apiURL, model string, client *http.Client) *ChatClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &ChatClient{
		apiKey: apiKey,
		apiURL: apiURL,
		model:  model,
		client: client,
	}
}

// Name implements Provider.
func (c *ChatClient) Name() string { return "deepseek" }

// Generate implements Provider. The prompt is sent as a single user message.
func (c *ChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := ChatRequest{
		Model:       c.model,
		Messages:    []Message{{Role: "user", Content: prompt}},
		Temperature: 0.9,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	logger.L().Debug("chat completion response", zap.Int("status", resp.StatusCode), zap.ByteString("body", body))

	var result chatResponse
	decodeErr := json.Unmarshal(body, &result)

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{Provider: c.Name(), StatusCode: resp.StatusCode}
		if decodeErr == nil && result.Error != nil {
			apiErr.Message = result.Error.Message
		}
		return "", apiErr
	}
	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no response from API")
	}

	return result.Choices[0].Message.Content, nil
}
