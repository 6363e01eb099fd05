package llm

import (
	"context"
	"fmt"
)

type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses the task default
	MaxTokens    *int     // nil uses the task default
}

type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient is the text completion backend behind outline drafting.
type LLMClient interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available reports whether the provider answers at all. It is used by
	// the status command and never returns an error.
	Available(ctx context.Context) bool
}

// NewClient picks the backend named by cfg.Provider. Ollama is the default.
func NewClient(cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	switch cfg.Provider {
	case ProviderOllama, "":
		return NewOllamaClient(cfg, observer), nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%w: SYLLABUS_LLM_API_KEY is required for provider %q", ErrUnauthorized, cfg.Provider)
		}
		return NewOpenAIClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// callParams are the sampling settings for one call after per-task
// defaults and request overrides are merged.
type callParams struct {
	temperature float64
	maxTokens   int
}

func resolveParams(cfg LLMConfig, req GenerateRequest) callParams {
	task := cfg.Tasks[req.Task]
	p := callParams{temperature: task.Temperature, maxTokens: task.MaxTokens}
	if req.Temperature != nil {
		p.temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		p.maxTokens = *req.MaxTokens
	}
	return p
}

func promptChars(req GenerateRequest) int {
	return len(req.SystemPrompt) + len(req.UserPrompt)
}
