// Package llm is the injected generation capability. The core calculator
// and ratio logic never import this package; only the insight and chat
// layers do, so everything numeric stays testable with no network.
package llm

import (
	"context"
	"fmt"
	"time"
)

// DefaultTimeout bounds a single generation call. The hosted model blocking
// forever must not stall the interaction indefinitely.
const DefaultTimeout = 90 * time.Second

// Provider is the interface for all LLM providers.
type Provider interface {
	Name() string
	// Configured reports a ConfigurationError when the provider's API key
	// is absent. Callers check this before attempting any external call.
	Configured() error
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats.
	AdaptInstructions(rawInstructions string) string
}

// ConfigurationError means the API key for a provider is not set. AI
// features are disabled; the core analysis still works.
type ConfigurationError struct {
	Var string // the missing environment variable
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not set; AI features are disabled", e.Var)
}

// TransportError wraps a failed call to the hosted model. The message is
// surfaced to the user verbatim and nothing is retried.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s call failed: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
