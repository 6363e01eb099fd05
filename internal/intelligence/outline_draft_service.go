package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/syllabus/internal/domain"
	"github.com/alexanderramin/syllabus/internal/llm"
	"github.com/alexanderramin/syllabus/internal/outline"
)

// OutlineBrief describes the course an outline should be drafted for.
type OutlineBrief struct {
	Title        string
	Description  string
	Language     string
	SectionCount int
	Targets      domain.Targets
}

// OutlineDraft is the raw outline text returned by the LLM.
type OutlineDraft struct {
	Text      string
	Model     string
	LatencyMs int64
}

// OutlineDraftService asks the LLM for a course outline.
type OutlineDraftService interface {
	Draft(ctx context.Context, brief OutlineBrief) (*OutlineDraft, error)
}

type outlineDraftService struct {
	client llm.LLMClient
}

// NewOutlineDraftService creates an OutlineDraftService backed by an LLM client.
func NewOutlineDraftService(client llm.LLMClient) OutlineDraftService {
	return &outlineDraftService{client: client}
}

func (s *outlineDraftService) Draft(ctx context.Context, brief OutlineBrief) (*OutlineDraft, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskOutline,
		SystemPrompt: outlineSystemPrompt,
		UserPrompt:   buildOutlinePrompt(brief),
	})
	if err != nil {
		return nil, fmt.Errorf("llm outline draft failed: %w", err)
	}

	text := stripFences(resp.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty outline", llm.ErrInvalidOutput)
	}
	if len(outline.Parse(text)) == 0 {
		return nil, fmt.Errorf("%w: no numbered sections in outline", llm.ErrInvalidOutput)
	}

	return &OutlineDraft{
		Text:      text,
		Model:     resp.Model,
		LatencyMs: resp.LatencyMs,
	}, nil
}

func buildOutlinePrompt(b OutlineBrief) string {
	description := strings.TrimSpace(b.Description)
	if description == "" {
		description = "(none)"
	}
	language := b.Language
	if language == "" {
		language = "English"
	}
	sections := b.SectionCount
	if sections <= 0 {
		sections = 6
	}
	return fmt.Sprintf(outlineUserPromptTemplate,
		b.Title, description, language, sections,
		b.Targets.Lecture, b.Targets.Lab, b.Targets.Practice)
}

// stripFences removes a surrounding markdown code fence, which some models
// add despite instructions.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	if i := strings.Index(text, "\n"); i >= 0 {
		text = text[i+1:]
	} else {
		return ""
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
