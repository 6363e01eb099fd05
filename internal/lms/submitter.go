package lms

import (
	"context"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	"golang.org/x/time/rate"
)

// SectionSubmitter creates one chapter per call.
type SectionSubmitter interface {
	SubmitSection(ctx context.Context, courseID string, section *domain.Section) (*SubmitResult, error)
}

// SectionOutcome is the result of submitting one section.
type SectionOutcome struct {
	Section  *domain.Section
	RemoteID string
	Err      error
}

// Submitter sends sections one at a time, spaced by a rate limiter so the
// LMS is not flooded with chapter creations.
type Submitter struct {
	client  SectionSubmitter
	limiter *rate.Limiter

	// OnOutcome, when set, is called after every section.
	OnOutcome func(done, total int, outcome SectionOutcome)
}

func NewSubmitter(client SectionSubmitter, interval time.Duration) *Submitter {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &Submitter{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}
}

// SubmitAll submits sections in order. A failed section is recorded in its
// outcome and the run continues. Context cancellation stops the run and
// returns the outcomes collected so far with the context error.
func (s *Submitter) SubmitAll(ctx context.Context, courseID string, sections []*domain.Section) ([]SectionOutcome, error) {
	outcomes := make([]SectionOutcome, 0, len(sections))
	for i, sec := range sections {
		if err := s.limiter.Wait(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return outcomes, ctxErr
			}
			return outcomes, err
		}

		out := SectionOutcome{Section: sec}
		res, err := s.client.SubmitSection(ctx, courseID, sec)
		if err != nil {
			out.Err = err
		} else {
			out.RemoteID = res.RemoteID
		}
		outcomes = append(outcomes, out)
		if s.OnOutcome != nil {
			s.OnOutcome(i+1, len(sections), out)
		}
		if ctx.Err() != nil {
			return outcomes, ctx.Err()
		}
	}
	return outcomes, nil
}
