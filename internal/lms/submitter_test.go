package lms

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeSubmitter struct {
	mu     sync.Mutex
	calls  []string
	times  []time.Time
	failOn map[string]error
	onCall func(name string)
}

func (f *fakeSubmitter) SubmitSection(ctx context.Context, courseID string, section *domain.Section) (*SubmitResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, section.Name)
	f.times = append(f.times, time.Now())
	f.mu.Unlock()
	if f.onCall != nil {
		f.onCall(section.Name)
	}
	if err := f.failOn[section.Name]; err != nil {
		return nil, err
	}
	return &SubmitResult{RemoteID: "id-" + section.Name}, nil
}

func sections(names ...string) []*domain.Section {
	out := make([]*domain.Section, len(names))
	for i, n := range names {
		out[i] = &domain.Section{Name: n, Order: i + 1}
	}
	return out
}

func TestSubmitAll_ContinuesPastFailures(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	fake := &fakeSubmitter{failOn: map[string]error{"B": ErrRejected}}
	s := NewSubmitter(fake, 0)

	var progress []int
	s.OnOutcome = func(done, total int, _ SectionOutcome) {
		assert.Equal(t, 3, total)
		progress = append(progress, done)
	}

	outcomes, err := s.SubmitAll(context.Background(), "CS-101", sections("A", "B", "C"))

	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, fake.calls)
	require.Len(t, outcomes, 3)
	assert.Equal(t, "id-A", outcomes[0].RemoteID)
	assert.ErrorIs(t, outcomes[1].Err, ErrRejected)
	assert.Empty(t, outcomes[1].RemoteID)
	assert.Equal(t, "id-C", outcomes[2].RemoteID)
	assert.Equal(t, []int{1, 2, 3}, progress)
}

func TestSubmitAll_SpacesSubmissions(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	fake := &fakeSubmitter{}
	interval := 30 * time.Millisecond
	s := NewSubmitter(fake, interval)

	_, err := s.SubmitAll(context.Background(), "CS-101", sections("A", "B", "C"))

	require.NoError(t, err)
	require.Len(t, fake.times, 3)
	for i := 1; i < len(fake.times); i++ {
		gap := fake.times[i].Sub(fake.times[i-1])
		assert.GreaterOrEqual(t, gap, interval-5*time.Millisecond, "gap %d", i)
	}
}

func TestSubmitAll_CancellationStops(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	fake := &fakeSubmitter{onCall: func(name string) {
		if name == "B" {
			cancel()
		}
	}}
	s := NewSubmitter(fake, 0)

	outcomes, err := s.SubmitAll(ctx, "CS-101", sections("A", "B", "C", "D"))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, outcomes, 2)
	assert.Equal(t, []string{"A", "B"}, fake.calls)
}

func TestSubmitAll_Empty(t *testing.T) {
	s := NewSubmitter(&fakeSubmitter{}, time.Second)

	outcomes, err := s.SubmitAll(context.Background(), "CS-101", nil)

	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestSubmitAll_ErrorsAreReportedPerSection(t *testing.T) {
	boom := errors.New("boom")
	fake := &fakeSubmitter{failOn: map[string]error{"A": boom, "B": boom}}

	outcomes, err := NewSubmitter(fake, 0).SubmitAll(context.Background(), "CS-101", sections("A", "B"))

	require.NoError(t, err)
	for _, o := range outcomes {
		assert.ErrorIs(t, o.Err, boom)
	}
}
