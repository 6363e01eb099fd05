package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openAIClient implements LLMClient against any OpenAI-compatible chat
// completions endpoint.
type openAIClient struct {
	cfg      LLMConfig
	client   openai.Client
	observer Observer
}

// NewOpenAIClient creates an LLMClient backed by the official OpenAI SDK.
// A non-empty cfg.Endpoint overrides the API base URL.
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	return &openAIClient{
		cfg:      cfg,
		client:   openai.NewClient(opts...),
		observer: observer,
	}
}

// Generate sends one chat completion. Retries are left to the SDK, which
// honours MaxRetries and backs off on 429 and 5xx replies.
func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()
	params := resolveParams(c.cfg, req)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TaskTimeout(req.Task))*time.Millisecond)
	defer cancel()

	var messages []openai.ChatCompletionMessageParamUnion
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(req.UserPrompt))

	body := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.cfg.Model),
		Messages:    messages,
		Temperature: openai.Float(params.temperature),
	}
	if params.maxTokens > 0 {
		body.MaxCompletionTokens = openai.Int(int64(params.maxTokens))
	}

	event := CallEvent{
		Task:        req.Task,
		Provider:    ProviderOpenAI,
		Model:       c.cfg.Model,
		Attempts:    1,
		PromptChars: promptChars(req),
	}
	completion, err := c.client.Chat.Completions.New(ctx, body)
	event.LatencyMs = time.Since(start).Milliseconds()
	if err == nil && len(completion.Choices) == 0 {
		err = fmt.Errorf("%w: no choices in completion", ErrInvalidOutput)
	} else if err != nil {
		err = c.classify(ctx, err)
	}
	if err != nil {
		event.ErrorCode = errorCode(err)
		c.observer.OnCallComplete(event)
		return nil, err
	}

	text := completion.Choices[0].Message.Content
	event.Success = true
	event.ResponseChars = len(text)
	c.observer.OnCallComplete(event)
	return &GenerateResponse{Text: text, Model: completion.Model, LatencyMs: event.LatencyMs}, nil
}

func (c *openAIClient) classify(ctx context.Context, err error) error {
	if ctxErr := contextError(ctx); ctxErr != nil {
		return ctxErr
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusUnauthorized, apiErr.StatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: status %d", ErrUnauthorized, apiErr.StatusCode)
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return fmt.Errorf("%w: status %d: %v", ErrRetryExhausted, apiErr.StatusCode, err)
		case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
			return fmt.Errorf("%w: status %d: %v", ErrRejected, apiErr.StatusCode, err)
		}
		return fmt.Errorf("%w: status %d: %v", ErrRetryExhausted, apiErr.StatusCode, err)
	}
	if isConnectionError(err) {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
}

func (c *openAIClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := c.client.Models.List(ctx)
	return err == nil
}
