package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrUnavailable    = errors.New("llm endpoint unavailable")
	ErrTimeout        = errors.New("llm request timed out")
	ErrUnauthorized   = errors.New("llm provider rejected credentials")
	ErrRejected       = errors.New("llm provider rejected the request")
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrInvalidOutput marks a reply that cannot become an outline, for
	// example one with no completion choices.
	ErrInvalidOutput = errors.New("invalid llm output")
)

// errorCodes maps sentinels to the short codes carried by call events.
// Order matters: the first match wins.
var errorCodes = []struct {
	err  error
	code string
}{
	{ErrTimeout, "TIMEOUT"},
	{context.DeadlineExceeded, "TIMEOUT"},
	{context.Canceled, "CANCELED"},
	{ErrUnavailable, "UNAVAILABLE"},
	{ErrUnauthorized, "UNAUTHORIZED"},
	{ErrRejected, "REJECTED"},
	{ErrInvalidOutput, "INVALID_OUTPUT"},
	{ErrRetryExhausted, "RETRY_EXHAUSTED"},
}

func errorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "UNKNOWN"
}

// contextError reports why ctx ended. Only an expired deadline counts as a
// timeout; a caller cancelling is passed through as context.Canceled.
func contextError(ctx context.Context) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}

func isConnectionError(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// statusError is a non-2xx reply from a provider.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.code, e.body)
}

// clientSide reports 4xx replies, which a retry cannot fix.
func (e *statusError) clientSide() bool {
	return e.code >= 400 && e.code < 500
}
