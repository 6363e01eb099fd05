package formatter

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_DrawsAndClears(t *testing.T) {
	var out lockedBuffer
	s := NewSpinner(&out, "Drafting outline")
	s.Start()
	time.Sleep(3 * spinnerTick)
	s.Update("Submitting 2/4")
	time.Sleep(3 * spinnerTick)
	s.Stop()
	s.Stop()

	got := out.String()
	assert.Contains(t, got, "Drafting outline")
	assert.Contains(t, got, "Submitting 2/4")
	assert.True(t, strings.HasSuffix(got, "\r\033[K"), "line is cleared on stop")
}

func TestSpinner_StopWithoutStart(t *testing.T) {
	var out lockedBuffer
	NewSpinner(&out, "idle").Stop()
	assert.Empty(t, out.String())
}

func TestSpinner_ElapsedSuffix(t *testing.T) {
	s := NewSpinner(&lockedBuffer{}, "Drafting outline")
	s.started = time.Now().Add(-3 * time.Second)
	assert.Equal(t, "Drafting outline (3s)", s.line())

	s.started = time.Now()
	assert.Equal(t, "Drafting outline", s.line())
}
