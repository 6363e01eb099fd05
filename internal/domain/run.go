package domain

import "time"

// Run is a stored reconciliation result for one course.
type Run struct {
	ID               string
	CourseID         string
	Title            string
	Targets          Targets
	RawOutline       string
	Sections         []*Section
	BalancingSuccess bool
	CreatedAt        time.Time
}

// SubmissionStatus is the outcome of submitting one section to the LMS.
type SubmissionStatus string

const (
	SubmissionAccepted SubmissionStatus = "accepted"
	SubmissionFailed   SubmissionStatus = "failed"
)

// Submission records one section submission attempt.
type Submission struct {
	ID           string
	RunID        string
	SectionOrder int
	SectionName  string
	RemoteID     string
	Status       SubmissionStatus
	Error        string
	SubmittedAt  time.Time
}
