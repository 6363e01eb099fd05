package llm

import (
	"io"
	"log/slog"
)

// CallEvent describes one finished Generate call, retries included.
type CallEvent struct {
	Task          TaskType
	Provider      Provider
	Model         string
	LatencyMs     int64
	Attempts      int
	PromptChars   int
	ResponseChars int
	Success       bool
	ErrorCode     string
}

type Observer interface {
	OnCallComplete(event CallEvent)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(CallEvent)

func (f ObserverFunc) OnCallComplete(e CallEvent) { f(e) }

type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// LogObserver writes one structured line per draft call.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{logger: slog.New(slog.NewTextHandler(w, nil)).With("component", "llm")}
}

func (o *LogObserver) OnCallComplete(e CallEvent) {
	attrs := []any{
		"task", e.Task,
		"provider", e.Provider,
		"model", e.Model,
		"latency_ms", e.LatencyMs,
		"attempts", e.Attempts,
		"prompt_chars", e.PromptChars,
	}
	if !e.Success {
		o.logger.Warn("draft_call", append(attrs, "error_code", e.ErrorCode)...)
		return
	}
	o.logger.Info("draft_call", append(attrs, "response_chars", e.ResponseChars)...)
}
