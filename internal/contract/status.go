package contract

// ComponentStatus is the health of one external dependency.
type ComponentStatus struct {
	Enabled   bool   `json:"enabled"`
	Reachable bool   `json:"reachable"`
	Detail    string `json:"detail,omitempty"`
}

type StatusResponse struct {
	LLM      ComponentStatus `json:"llm"`
	LMS      ComponentStatus `json:"lms"`
	RunCount int             `json:"run_count"`
}

// Unreachable names the enabled components that did not answer.
func (s StatusResponse) Unreachable() []string {
	var names []string
	if s.LLM.Enabled && !s.LLM.Reachable {
		names = append(names, "llm")
	}
	if s.LMS.Enabled && !s.LMS.Reachable {
		names = append(names, "lms")
	}
	return names
}
