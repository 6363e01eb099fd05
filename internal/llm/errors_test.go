package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrTimeout, "TIMEOUT"},
		{fmt.Errorf("call: %w", context.DeadlineExceeded), "TIMEOUT"},
		{context.Canceled, "CANCELED"},
		{ErrUnavailable, "UNAVAILABLE"},
		{fmt.Errorf("%w: status 401", ErrUnauthorized), "UNAUTHORIZED"},
		{fmt.Errorf("%w: status 404", ErrRejected), "REJECTED"},
		{ErrInvalidOutput, "INVALID_OUTPUT"},
		{ErrRetryExhausted, "RETRY_EXHAUSTED"},
		{errors.New("something else"), "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, errorCode(tt.err), "%v", tt.err)
	}
}

func TestContextError(t *testing.T) {
	assert.NoError(t, contextError(context.Background()))

	expired, cancelExpired := context.WithTimeout(context.Background(), -time.Second)
	defer cancelExpired()
	assert.ErrorIs(t, contextError(expired), ErrTimeout)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	err := contextError(cancelled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestStatusError(t *testing.T) {
	assert.True(t, (&statusError{code: 404}).clientSide())
	assert.False(t, (&statusError{code: 503}).clientSide())
	assert.Equal(t, "status 503: busy", (&statusError{code: 503, body: "busy"}).Error())
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogObserver(&buf)

	obs.OnCallComplete(CallEvent{Task: TaskOutline, Provider: ProviderOllama, Model: "llama3.2", Attempts: 2, Success: true, ResponseChars: 40})
	obs.OnCallComplete(CallEvent{Task: TaskOutline, Provider: ProviderOpenAI, Model: "gpt-test", Attempts: 1, ErrorCode: "TIMEOUT"})

	out := buf.String()
	assert.Contains(t, out, "level=INFO msg=draft_call component=llm")
	assert.Contains(t, out, "attempts=2")
	assert.Contains(t, out, "response_chars=40")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "error_code=TIMEOUT")
}
