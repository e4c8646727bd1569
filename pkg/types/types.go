// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the records shared between the xcsummary stages:
// the normalized test summary produced from xcresulttool output, and the
// settings that drive a summary run.
package types

// ResultUnknown is the Result recorded when the tool output carries no result.
const ResultUnknown = "Unknown"

// TestSummary is the normalized outcome of one .xcresult bundle.
// It is built once by a single normalization pass and not modified after.
type TestSummary struct {
	// Result is the overall outcome label reported by the tool (e.g. "Passed", "Failed").
	Result string `json:"result" yaml:"result"`

	// Total is the number of tests in the run.
	Total int `json:"total" yaml:"total"`

	// Passed is the number of tests that passed.
	Passed int `json:"passed" yaml:"passed"`

	// Failed is the number of tests that failed.
	Failed int `json:"failed" yaml:"failed"`

	// Skipped is the number of tests that were skipped.
	Skipped int `json:"skipped" yaml:"skipped"`

	// Environment describes the execution environment. Nil when the tool omits it.
	Environment *string `json:"environment,omitempty" yaml:"environment,omitempty"`

	// Title is the run title. Nil when the tool omits it.
	Title *string `json:"title,omitempty" yaml:"title,omitempty"`

	// Failures lists failing test names in tool order. Never contains blank entries.
	Failures []string `json:"failures" yaml:"failures"`
}

// HasFailures reports whether any failure names were extracted.
func (s TestSummary) HasFailures() bool {
	return len(s.Failures) > 0
}

// FailureNames returns a copy of the failure list.
func (s TestSummary) FailureNames() []string {
	out := make([]string, len(s.Failures))
	copy(out, s.Failures)
	return out
}

// TitleText returns the run title, or "" when absent.
func (s TestSummary) TitleText() string {
	if s.Title == nil {
		return ""
	}
	return *s.Title
}

// EnvironmentText returns the environment description, or "" when absent.
func (s TestSummary) EnvironmentText() string {
	if s.Environment == nil {
		return ""
	}
	return *s.Environment
}
