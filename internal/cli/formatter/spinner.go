package formatter

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// Spinner animates a status line on a terminal while a slow call runs. After
// the first second the elapsed time is appended, e.g. "Drafting outline (4s)".
type Spinner struct {
	out     io.Writer
	started time.Time

	mu      sync.Mutex
	message string

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func NewSpinner(out io.Writer, message string) *Spinner {
	return &Spinner{out: out, message: message, done: make(chan struct{})}
}

func (s *Spinner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.started = time.Now()
	go s.loop(ctx)
}

func (s *Spinner) loop(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(spinnerTick)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-ctx.Done():
			fmt.Fprint(s.out, "\r\033[K")
			return
		case <-ticker.C:
			fmt.Fprintf(s.out, "\r\033[K  %s %s", StylePurple.Render(spinnerFrames[frame%len(spinnerFrames)]), Dim(s.line()))
		}
	}
}

func (s *Spinner) line() string {
	s.mu.Lock()
	msg := s.message
	s.mu.Unlock()
	if elapsed := time.Since(s.started); elapsed >= time.Second {
		return fmt.Sprintf("%s (%ds)", msg, int(elapsed.Seconds()))
	}
	return msg
}

// Update replaces the message, keeping the elapsed clock running.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop clears the line and waits for the animation to exit. Later calls and
// calls on a spinner that never started are no-ops.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		if s.cancel == nil {
			return
		}
		s.cancel()
		<-s.done
	})
}

// StartSpinner starts a spinner on out and returns its Stop.
func StartSpinner(out io.Writer, message string) func() {
	s := NewSpinner(out, message)
	s.Start()
	return s.Stop
}
