// Package agent selects which LLM provider serves each task, driven by
// config/models.yaml.
package agent

import (
	"context"
	"fmt"

	"statement_insight/pkg/core/llm"
)

// Config mirrors config/models.yaml.
type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

// AgentConfig allows a per-task provider override.
type AgentConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	Description string `yaml:"description"`
}

// Manager holds the provider registry and active selection.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

// NewManager builds a manager over the providers this service ships.
func NewManager(config Config) *Manager {
	if config.ActiveProvider == "" {
		config.ActiveProvider = "gemini"
	}
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{},
			"deepseek": &llm.DeepSeekProvider{},
		},
	}
}

// Register installs or replaces a provider. Tests use this to inject fakes.
func (m *Manager) Register(name string, p llm.Provider) {
	m.providers[name] = p
}

// GetProvider resolves the provider for an agent type, honoring per-agent
// overrides before the global active provider.
func (m *Manager) GetProvider(agentType string) llm.Provider {
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["gemini"]
}

// Configured reports whether the provider serving agentType has its API key.
func (m *Manager) Configured(agentType string) error {
	return m.GetProvider(agentType).Configured()
}

// ExecutePrompt adapts the instructions for the selected provider and runs
// one generation call.
func (m *Manager) ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error) {
	provider := m.GetProvider(agentType)
	if options == nil {
		options = map[string]interface{}{}
	}
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Model != "" {
		if _, set := options["model"]; !set {
			options["model"] = agentConfig.Model
		}
	}
	adaptedSystemPrompt := provider.AdaptInstructions(rawSystemPrompt)
	return provider.GenerateResponse(ctx, rawPrompt, adaptedSystemPrompt, options)
}

// SetGlobalProvider switches the active provider.
func (m *Manager) SetGlobalProvider(newProvider string) error {
	if _, ok := m.providers[newProvider]; !ok {
		return fmt.Errorf("provider %s not found", newProvider)
	}
	m.config.ActiveProvider = newProvider
	return nil
}

// GetActiveProvider returns the name of the global active provider.
func (m *Manager) GetActiveProvider() string {
	return m.config.ActiveProvider
}

// Available lists the registered provider names.
func (m *Manager) Available() []string {
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	return names
}
