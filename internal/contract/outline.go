package contract

import "github.com/alexanderramin/syllabus/internal/domain"

type ShortfallCode string

const (
	ShortfallUnresolvableDeficit ShortfallCode = "UNRESOLVABLE_DEFICIT"
	ShortfallCountDeficit        ShortfallCode = "COUNT_DEFICIT"
	ShortfallCountSurplus        ShortfallCode = "COUNT_SURPLUS"
)

// Shortfall reports a work type whose final theme count misses its target.
// Missing is negative for a surplus.
type Shortfall struct {
	Type    domain.WorkType `json:"type"`
	Code    ShortfallCode   `json:"code"`
	Missing int             `json:"missing"`
	Message string          `json:"message"`
}

// Adjustments records what reconciliation changed.
type Adjustments struct {
	Promoted        map[domain.WorkType]int `json:"promoted"`
	Synthesized     map[domain.WorkType]int `json:"synthesized"`
	Demoted         map[domain.WorkType]int `json:"demoted"`
	Unresolved      map[domain.WorkType]int `json:"unresolved,omitempty"`
	FillersAdded    int                     `json:"fillers_added"`
	SectionsDropped []string                `json:"sections_dropped,omitempty"`
	ThemesDropped   int                     `json:"themes_dropped"`
}

// NewAdjustments returns Adjustments with initialized maps.
func NewAdjustments() Adjustments {
	return Adjustments{
		Promoted:    make(map[domain.WorkType]int),
		Synthesized: make(map[domain.WorkType]int),
		Demoted:     make(map[domain.WorkType]int),
		Unresolved:  make(map[domain.WorkType]int),
	}
}

// Changed reports whether any theme was retyped or added.
func (a Adjustments) Changed() bool {
	for _, m := range []map[domain.WorkType]int{a.Promoted, a.Synthesized, a.Demoted} {
		for _, n := range m {
			if n > 0 {
				return true
			}
		}
	}
	return a.FillersAdded > 0
}

type Summary struct {
	BalancingSuccess bool                     `json:"balancing_success"`
	PerTypeMatch     map[domain.WorkType]bool `json:"per_type_match"`
	FinalCounts      map[domain.WorkType]int  `json:"final_counts"`
	ProjectedHours   map[domain.WorkType]int  `json:"projected_hours"`
	Targets          domain.Targets           `json:"targets"`
	SectionCount     int                      `json:"section_count"`
	ThemeCount       int                      `json:"theme_count"`
	Empty            bool                     `json:"empty"`
	Shortfalls       []Shortfall              `json:"shortfalls,omitempty"`
	Adjustments      Adjustments              `json:"adjustments"`
}

type ReconcileResult struct {
	Sections []*domain.Section `json:"sections"`
	Summary  Summary           `json:"summary"`
}

type ReconcileRequest struct {
	CourseID   string
	Title      string
	RawOutline string
	Targets    domain.Targets
	Quota      *domain.Quota
	Save       bool

	// Sections, when set, replaces parsing RawOutline. They are modified in place.
	Sections []*domain.Section
}

func NewReconcileRequest(rawOutline string, targets domain.Targets) ReconcileRequest {
	return ReconcileRequest{
		RawOutline: rawOutline,
		Targets:    targets,
	}
}

// HourMismatch reports a work type whose projected hours differ from the
// requested quota, typically because the quota is not a multiple of two.
type HourMismatch struct {
	Type           domain.WorkType `json:"type"`
	RequestedHours int             `json:"requested_hours"`
	ProjectedHours int             `json:"projected_hours"`
}

type ReconcileResponse struct {
	RunID          string           `json:"run_id,omitempty"`
	Result         *ReconcileResult `json:"result"`
	HourMismatches []HourMismatch   `json:"hour_mismatches,omitempty"`
	Warnings       []string         `json:"warnings,omitempty"`
}

type GenerateRequest struct {
	CourseID     string
	Title        string
	Description  string
	Language     string
	SectionCount int
	Save         bool
}

func NewGenerateRequest(courseID, title string) GenerateRequest {
	return GenerateRequest{
		CourseID:     courseID,
		Title:        title,
		Language:     "English",
		SectionCount: 6,
		Save:         true,
	}
}

type SectionSubmitResult struct {
	Order    int    `json:"order"`
	Name     string `json:"name"`
	RemoteID string `json:"remote_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

type SubmitResponse struct {
	RunID    string                `json:"run_id"`
	CourseID string                `json:"course_id"`
	Accepted int                   `json:"accepted"`
	Failed   int                   `json:"failed"`
	Results  []SectionSubmitResult `json:"results"`
}

type ReconcileErrorCode string

const (
	ErrInvalidTargets  ReconcileErrorCode = "INVALID_TARGETS"
	ErrMissingCourse   ReconcileErrorCode = "MISSING_COURSE"
	ErrFeatureDisabled ReconcileErrorCode = "FEATURE_DISABLED"
	ErrEmptyOutline    ReconcileErrorCode = "EMPTY_OUTLINE"
)

type ReconcileError struct {
	Code    ReconcileErrorCode
	Message string
}

func (e *ReconcileError) Error() string {
	return string(e.Code) + ": " + e.Message
}
