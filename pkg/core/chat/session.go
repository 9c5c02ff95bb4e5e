// Package chat implements the Q&A conversation over an analyzed statement.
// The session's system preamble embeds the derived-table markdown snapshot
// taken at upload time; it is not refreshed mid-conversation.
package chat

import (
	"context"
	"strings"
	"sync"

	"statement_insight/pkg/core/agent"
	"statement_insight/pkg/models"
)

// AgentType names the config/models.yaml entry serving chat calls.
const AgentType = "chat"

const systemPreamble = `You are a professional AI assistant for financial statement analysis. Answer questions based on the processed financial report data provided below. The analyzed data:

`

// WelcomeMessage opens every session after a successful upload.
const WelcomeMessage = "The financial statement has been loaded and processed. You can now ask about growth rates, composition shares, or liquidity in detail."

// Session holds one conversation. History is an ordered sequence of turns;
// error turns are appended with the assistant role so the user can retry the
// next turn with state preserved.
type Session struct {
	mu       sync.Mutex
	preamble string
	history  []models.Turn
	mgr      *agent.Manager
	native   *GeminiChat
}

// NewSession starts a conversation seeded with the table snapshot. When the
// active provider is Gemini and its key is present, a native chat session
// carries the history server-side; otherwise the transcript is replayed into
// each prompt.
func NewSession(ctx context.Context, mgr *agent.Manager, tableMarkdown string) *Session {
	s := &Session{
		preamble: systemPreamble + tableMarkdown,
		history:  []models.Turn{{Role: "assistant", Content: WelcomeMessage}},
		mgr:      mgr,
	}
	if mgr.GetProvider(AgentType).Name() == "gemini" && mgr.Configured(AgentType) == nil {
		if native, err := NewGeminiChat(ctx, s.preamble); err == nil {
			s.native = native
		}
	}
	return s
}

// History returns a copy of the transcript.
func (s *Session) History() []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Ask appends the user turn, runs one generation call, and appends the
// reply. On failure the error text is recorded as an assistant turn and the
// error returned; the conversation stays usable.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, models.Turn{Role: "user", Content: question})

	var reply string
	var err error
	if s.native != nil {
		reply, err = s.native.Send(ctx, question)
	} else {
		reply, err = s.mgr.ExecutePrompt(ctx, AgentType, s.transcriptPrompt(), s.preamble, nil)
	}
	if err != nil {
		s.history = append(s.history, models.Turn{Role: "assistant", Content: "Error: " + err.Error()})
		return "", err
	}

	s.history = append(s.history, models.Turn{Role: "assistant", Content: reply})
	return reply, nil
}

// transcriptPrompt renders the history for providers without server-side
// sessions: each prior turn resent with its role tag, ending at the latest
// user turn.
func (s *Session) transcriptPrompt() string {
	var b strings.Builder
	for _, turn := range s.history {
		b.WriteString(strings.ToUpper(turn.Role))
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n\n")
	}
	b.WriteString("ASSISTANT:")
	return b.String()
}
