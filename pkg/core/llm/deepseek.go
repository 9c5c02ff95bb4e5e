package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// DeepSeekProvider calls the OpenAI-compatible DeepSeek chat completions
// endpoint over plain HTTP.
type DeepSeekProvider struct{}

var _ Provider = (*DeepSeekProvider)(nil)

type deepSeekRequest struct {
	Messages    []Message `json:"messages"`
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Stream      bool      `json:"stream"`
	Temperature float64   `json:"temperature"`
}

// Message is one chat-completions message.
type Message struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

type deepSeekResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (p *DeepSeekProvider) Name() string { return "deepseek" }

func (p *DeepSeekProvider) Configured() error {
	if os.Getenv("DEEPSEEK_API_KEY") == "" {
		return &ConfigurationError{Var: "DEEPSEEK_API_KEY"}
	}
	return nil
}

func (p *DeepSeekProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	if err := p.Configured(); err != nil {
		return "", err
	}
	apiKey := os.Getenv("DEEPSEEK_API_KEY")

	model := "deepseek-chat"
	if val, ok := options["model"].(string); ok && val != "" {
		model = val
	}

	reqBody := deepSeekRequest{
		Messages: []Message{
			{Content: systemPrompt, Role: "system"},
			{Content: prompt, Role: "user"},
		},
		Model:       model,
		MaxTokens:   4096,
		Temperature: 0.7,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "POST", "https://api.deepseek.com/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", &TransportError{Provider: "deepseek", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", &TransportError{Provider: "deepseek", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Provider: "deepseek", Err: err}
	}

	var parsed deepSeekResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &TransportError{Provider: "deepseek", Err: fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)}
	}
	if parsed.Error != nil {
		return "", &TransportError{Provider: "deepseek", Err: fmt.Errorf("%s: %s", parsed.Error.Type, parsed.Error.Message)}
	}
	if resp.StatusCode != http.StatusOK || len(parsed.Choices) == 0 {
		return "", &TransportError{Provider: "deepseek", Err: fmt.Errorf("unexpected response (status %d)", resp.StatusCode)}
	}
	return parsed.Choices[0].Message.Content, nil
}

func (p *DeepSeekProvider) AdaptInstructions(raw string) string {
	return raw
}
