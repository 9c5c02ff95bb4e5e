package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"statement_insight/pkg/core/agent"
	"statement_insight/pkg/core/llm"
)

type fakeProvider struct {
	lastPrompt string
	lastSystem string
	reply      string
	err        error
}

func (f *fakeProvider) Name() string      { return "fake" }
func (f *fakeProvider) Configured() error { return nil }
func (f *fakeProvider) GenerateResponse(_ context.Context, prompt, systemPrompt string, _ map[string]interface{}) (string, error) {
	f.lastPrompt = prompt
	f.lastSystem = systemPrompt
	return f.reply, f.err
}
func (f *fakeProvider) AdaptInstructions(raw string) string { return raw }

func newTestSession(f *fakeProvider) *Session {
	mgr := agent.NewManager(agent.Config{ActiveProvider: "fake"})
	mgr.Register("fake", f)
	return NewSession(context.Background(), mgr, "| Indicator | Prior | Current |")
}

func TestNewSession_OpensWithWelcomeTurn(t *testing.T) {
	s := newTestSession(&fakeProvider{})
	history := s.History()
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].Role != "assistant" || history[0].Content != WelcomeMessage {
		t.Errorf("unexpected opening turn: %+v", history[0])
	}
}

func TestAsk_AppendsBothTurns(t *testing.T) {
	f := &fakeProvider{reply: "Total assets grew 20%."}
	s := newTestSession(f)

	reply, err := s.Ask(context.Background(), "How did total assets develop?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if reply != f.reply {
		t.Errorf("reply = %q", reply)
	}

	history := s.History()
	if len(history) != 3 {
		t.Fatalf("history length = %d, want 3", len(history))
	}
	if history[1].Role != "user" || history[2].Role != "assistant" {
		t.Errorf("turn roles wrong: %+v", history)
	}

	// The preamble carries the table snapshot; the prompt carries the
	// transcript with role tags.
	if !strings.Contains(f.lastSystem, "| Indicator | Prior | Current |") {
		t.Error("table snapshot missing from system preamble")
	}
	if !strings.Contains(f.lastPrompt, "USER: How did total assets develop?") {
		t.Errorf("transcript prompt missing the user turn: %q", f.lastPrompt)
	}
}

func TestAsk_ErrorPreservesConversation(t *testing.T) {
	f := &fakeProvider{err: &llm.TransportError{Provider: "fake", Err: errors.New("quota exhausted")}}
	s := newTestSession(f)

	if _, err := s.Ask(context.Background(), "anything"); err == nil {
		t.Fatal("expected error")
	}

	history := s.History()
	last := history[len(history)-1]
	if last.Role != "assistant" || !strings.Contains(last.Content, "quota exhausted") {
		t.Errorf("error must be recorded as an assistant turn, got %+v", last)
	}

	// The session stays usable for the next turn.
	f.err = nil
	f.reply = "recovered"
	if _, err := s.Ask(context.Background(), "retry"); err != nil {
		t.Fatalf("session must survive a failed turn: %v", err)
	}
}

func TestTranscriptPrompt_ResendsHistoryInOrder(t *testing.T) {
	f := &fakeProvider{reply: "first answer"}
	s := newTestSession(f)
	if _, err := s.Ask(context.Background(), "first question"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Ask(context.Background(), "second question"); err != nil {
		t.Fatal(err)
	}

	firstIdx := strings.Index(f.lastPrompt, "first question")
	secondIdx := strings.Index(f.lastPrompt, "second question")
	if firstIdx < 0 || secondIdx < 0 || firstIdx > secondIdx {
		t.Errorf("transcript order wrong: %q", f.lastPrompt)
	}
	if !strings.Contains(f.lastPrompt, "ASSISTANT: first answer") {
		t.Error("prior assistant turn missing from transcript")
	}
}
