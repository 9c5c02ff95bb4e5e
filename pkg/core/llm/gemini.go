package llm

import (
	"context"
	"os"

	"google.golang.org/genai"
)

// GeminiProvider implements the Provider interface for Google's Gemini
// models using the official GenAI SDK.
type GeminiProvider struct {
	Model string // e.g. "gemini-2.5-flash"
}

// Ensure interface compliance
var _ Provider = (*GeminiProvider)(nil)

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Configured() error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return &ConfigurationError{Var: "GEMINI_API_KEY"}
	}
	return nil
}

// GenerateResponse sends a generateContent request to the Gemini API.
func (p *GeminiProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	if err := p.Configured(); err != nil {
		return "", err
	}

	model := p.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if val, ok := options["model"].(string); ok && val != "" {
		model = val
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", &TransportError{Provider: "gemini", Err: err}
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.2)),
	}
	if val, ok := options["response_format"].(map[string]interface{}); ok {
		if val["type"] == "json_object" {
			config.ResponseMIMEType = "application/json"
		}
	}
	if systemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{
				{Text: systemPrompt},
			},
		}
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", &TransportError{Provider: "gemini", Err: err}
	}
	return result.Text(), nil
}

func (p *GeminiProvider) AdaptInstructions(raw string) string {
	return raw
}
