package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskOutline TaskType = "outline"
)

// Provider selects the completion backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderOpenAI Provider = "openai"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   Provider
	Endpoint   string
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  30000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskOutline: {Temperature: 0.4, MaxTokens: 4096, TimeoutMs: 90000},
		},
	}
}

// LoadConfig reads SYLLABUS_LLM_* variables over DefaultConfig. Malformed
// values are ignored. Choosing the openai provider switches the endpoint and
// model defaults before the explicit overrides apply.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	envBool("SYLLABUS_LLM_ENABLED", &cfg.Enabled)
	envBool("SYLLABUS_LLM_LOG_CALLS", &cfg.LogCalls)
	switch p := Provider(os.Getenv("SYLLABUS_LLM_PROVIDER")); p {
	case ProviderOllama:
	case ProviderOpenAI:
		cfg.Provider = p
		cfg.Endpoint = ""
		cfg.Model = "gpt-4o-mini"
	}
	envString("SYLLABUS_LLM_ENDPOINT", &cfg.Endpoint)
	envString("SYLLABUS_LLM_MODEL", &cfg.Model)
	envString("SYLLABUS_LLM_API_KEY", &cfg.APIKey)
	envInt("SYLLABUS_LLM_TIMEOUT_MS", 1, &cfg.TimeoutMs)
	envInt("SYLLABUS_LLM_MAX_RETRIES", 0, &cfg.MaxRetries)

	outline := cfg.Tasks[TaskOutline]
	envInt("SYLLABUS_LLM_OUTLINE_TIMEOUT_MS", 1, &outline.TimeoutMs)
	envInt("SYLLABUS_LLM_OUTLINE_MAX_TOKENS", 1, &outline.MaxTokens)
	if v, err := strconv.ParseFloat(os.Getenv("SYLLABUS_LLM_OUTLINE_TEMPERATURE"), 64); err == nil && v >= 0 && v <= 2 {
		outline.Temperature = v
	}
	cfg.Tasks[TaskOutline] = outline

	return cfg
}

// TaskTimeout returns the task's own timeout when set, else the global one.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func envString(name string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func envBool(name string, dst *bool) {
	if v, err := strconv.ParseBool(os.Getenv(name)); err == nil {
		*dst = v
	}
}

func envInt(name string, min int, dst *int) {
	if n, err := strconv.Atoi(os.Getenv(name)); err == nil && n >= min {
		*dst = n
	}
}
