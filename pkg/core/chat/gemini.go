package chat

import (
	"context"
	"fmt"
	"os"
	"strings"

	"statement_insight/pkg/core/llm"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiChat is a server-side chat session on the Gemini API. The history
// lives in the SDK's ChatSession, so each turn sends only the new message.
type GeminiChat struct {
	client  *genai.Client
	session *genai.ChatSession
}

// NewGeminiChat opens a chat session with the table snapshot installed as
// the system instruction.
func NewGeminiChat(ctx context.Context, preamble string) (*GeminiChat, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, &llm.ConfigurationError{Var: "GEMINI_API_KEY"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &llm.TransportError{Provider: "gemini", Err: err}
	}

	model := client.GenerativeModel("gemini-2.5-flash")
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(preamble)},
	}

	return &GeminiChat{
		client:  client,
		session: model.StartChat(),
	}, nil
}

// Send submits one user message and returns the assistant reply.
func (c *GeminiChat) Send(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, llm.DefaultTimeout)
	defer cancel()

	resp, err := c.session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", &llm.TransportError{Provider: "gemini", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", &llm.TransportError{Provider: "gemini", Err: fmt.Errorf("empty response")}
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

// Close releases the underlying client.
func (c *GeminiChat) Close() {
	if c.client != nil {
		c.client.Close()
	}
}
