package lms

import (
	"io"
	"log/slog"
)

// CallEvent describes one completed LMS operation.
type CallEvent struct {
	Operation string
	CourseID  string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
	CacheHit  bool
}

// Observer receives LMS call telemetry.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// LogObserver writes call events as structured log lines.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{logger: slog.New(slog.NewTextHandler(w, nil))}
}

func (o *LogObserver) OnCallComplete(e CallEvent) {
	attrs := []any{
		"operation", e.Operation,
		"course_id", e.CourseID,
		"latency_ms", e.LatencyMs,
		"attempts", e.Attempts,
		"cache_hit", e.CacheHit,
	}
	if !e.Success {
		o.logger.Warn("lms_call", append(attrs, "error_code", e.ErrorCode)...)
		return
	}
	o.logger.Info("lms_call", attrs...)
}
