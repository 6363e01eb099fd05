package lms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/alexanderramin/syllabus/internal/domain"
	retry "github.com/avast/retry-go/v4"
	lru "github.com/hashicorp/golang-lru/v2"
)

// SubmitResult is the LMS acknowledgement of one created chapter.
type SubmitResult struct {
	RemoteID string
}

// Client talks to the LMS workload and chapter endpoints.
type Client struct {
	cfg        Config
	http       *http.Client
	quotas     *lru.Cache[string, *domain.Quota]
	observer   Observer
	retryDelay time.Duration
}

// NewClient builds an LMS client. It returns ErrDisabled when the integration
// is switched off or has no base URL.
func NewClient(cfg Config, observer Observer) (*Client, error) {
	if !cfg.Enabled || cfg.BaseURL == "" {
		return nil, ErrDisabled
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	size := cfg.QuotaCacheSize
	if size <= 0 {
		size = 1
	}
	cache, err := lru.New[string, *domain.Quota](size)
	if err != nil {
		return nil, fmt.Errorf("creating quota cache: %w", err)
	}
	return &Client{
		cfg:        cfg,
		http:       &http.Client{Timeout: time.Duration(cfg.TimeoutMs) * time.Millisecond},
		quotas:     cache,
		observer:   observer,
		retryDelay: 200 * time.Millisecond,
	}, nil
}

// GetQuota fetches the hour quota of a course. Network failures and 5xx
// responses are retried; authorization and lookup failures are not.
// Successful lookups are cached for the lifetime of the client.
func (c *Client) GetQuota(ctx context.Context, courseID string) (*domain.Quota, error) {
	start := time.Now()
	if q, ok := c.quotas.Get(courseID); ok {
		c.observe("get_quota", courseID, start, 0, true, nil)
		return q, nil
	}

	attempts := 0
	quota, err := retry.DoWithData(
		func() (*domain.Quota, error) {
			attempts++
			return c.fetchQuota(ctx, courseID)
		},
		retry.Context(ctx),
		retry.Attempts(uint(c.cfg.MaxRetries+1)),
		retry.Delay(c.retryDelay),
		retry.MaxDelay(2*time.Second),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return errors.Is(err, ErrUnavailable) }),
	)
	c.observe("get_quota", courseID, start, attempts, false, err)
	if err != nil {
		return nil, err
	}
	c.quotas.Add(courseID, quota)
	return quota, nil
}

func (c *Client) fetchQuota(ctx context.Context, courseID string) (*domain.Quota, error) {
	endpoint := fmt.Sprintf("%s/courses/%s/workload", c.cfg.BaseURL, url.PathEscape(courseID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var raw map[string]int
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding workload: %w", err)
	}
	quota := &domain.Quota{CourseID: courseID, Hours: make(map[domain.WorkType]int)}
	for name, hours := range raw {
		wt, ok := domain.ParseWorkType(name)
		if !ok {
			continue
		}
		quota.Hours[wt] += hours
	}
	return quota, nil
}

type chapterTheme struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Hours int    `json:"hours"`
}

type chapterRequest struct {
	Name             string         `json:"name"`
	Order            int            `json:"order"`
	IndependentHours int            `json:"independent_hours"`
	Themes           []chapterTheme `json:"themes"`
}

type chapterResponse struct {
	ID string `json:"id"`
}

// SubmitSection creates one chapter in the course. Chapter creation is not
// idempotent, so failures are returned without retrying.
func (c *Client) SubmitSection(ctx context.Context, courseID string, section *domain.Section) (*SubmitResult, error) {
	start := time.Now()
	result, err := c.submitSection(ctx, courseID, section)
	c.observe("submit_section", courseID, start, 1, false, err)
	return result, err
}

func (c *Client) submitSection(ctx context.Context, courseID string, section *domain.Section) (*SubmitResult, error) {
	payload := chapterRequest{
		Name:             section.Name,
		Order:            section.Order,
		IndependentHours: section.IndependentHours,
		Themes:           make([]chapterTheme, 0, len(section.Themes)),
	}
	for _, th := range section.Themes {
		hours := domain.HoursPerTheme
		if th.Type == domain.WorkIndependentStudy {
			hours = 0
		}
		payload.Themes = append(payload.Themes, chapterTheme{Name: th.Name, Type: th.Type.Label(), Hours: hours})
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling chapter: %w", err)
	}

	endpoint := fmt.Sprintf("%s/courses/%s/chapters", c.cfg.BaseURL, url.PathEscape(courseID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	var resp chapterResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("decoding chapter response: %w", err)
		}
	}
	return &SubmitResult{RemoteID: resp.ID}, nil
}

// Reachable reports whether the LMS answers HTTP at all.
func (c *Client) Reachable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL, nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if req.Context().Err() != nil {
			return nil, req.Context().Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, req.URL.Path)
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, snippet(body))
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, snippet(body))
	}
	return body, nil
}

func (c *Client) observe(op, courseID string, start time.Time, attempts int, cacheHit bool, err error) {
	c.observer.OnCallComplete(CallEvent{
		Operation: op,
		CourseID:  courseID,
		LatencyMs: time.Since(start).Milliseconds(),
		Attempts:  attempts,
		Success:   err == nil,
		ErrorCode: errorCode(err),
		CacheHit:  cacheHit,
	})
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "CANCELED"
	default:
		return "UNKNOWN"
	}
}

func snippet(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
