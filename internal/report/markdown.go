// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders normalized test summaries for humans and tools.
// Markdown output is a self-contained section meant to be appended to a
// larger report; JSON and YAML carry the same record for automation.
package report

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/pdiddy/xcsummary/pkg/types"
)

// MaxListedFailures caps the failure bullets in a Markdown section. Any
// remainder is reported as a single "+n" bullet.
const MaxListedFailures = 20

// Renderer formats summaries using a fixed label set.
type Renderer struct {
	Labels Labels
}

// NewRenderer returns a Renderer whose labels best match tag.
func NewRenderer(tag language.Tag) Renderer {
	return Renderer{Labels: LabelsFor(tag)}
}

// Render formats s as a Markdown section with English labels.
func Render(label, source string, s types.TestSummary) string {
	return Renderer{Labels: English}.Render(label, source, s)
}

// Render formats s as a Markdown section headed by label. source identifies
// the bundle the summary was read from. Output is deterministic and always
// ends with a newline.
func (r Renderer) Render(label, source string, s types.TestSummary) string {
	l := r.Labels
	lines := make([]string, 0, 10+min(len(s.Failures), MaxListedFailures))

	lines = append(lines,
		"### "+label,
		"",
		fmt.Sprintf("- %s: %s", l.Result, codeSpan(s.Result)),
		fmt.Sprintf("- %s: `%d` | %s: `%d` | %s: `%d` | %s: `%d`",
			l.Total, s.Total, l.Passed, s.Passed, l.Failed, s.Failed, l.Skipped, s.Skipped),
		fmt.Sprintf("- %s: %s", l.Bundle, codeSpan(source)),
	)
	if title := s.TitleText(); title != "" {
		lines = append(lines, fmt.Sprintf("- %s: %s", l.Title, codeSpan(title)))
	}
	if env := s.EnvironmentText(); env != "" {
		lines = append(lines, fmt.Sprintf("- %s: %s", l.Environment, codeSpan(env)))
	}

	if s.HasFailures() {
		lines = append(lines, "", l.Failures+":")
		for _, name := range s.Failures[:min(len(s.Failures), MaxListedFailures)] {
			lines = append(lines, "- "+codeSpan(name))
		}
		if extra := len(s.Failures) - MaxListedFailures; extra > 0 {
			lines = append(lines, fmt.Sprintf("- ... (+%d)", extra))
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// codeSpan wraps v in a Markdown code span that stays on one line. Line
// breaks become spaces; a value containing backticks gets a longer fence.
func codeSpan(v string) string {
	v = lineBreaks.Replace(v)
	if !strings.Contains(v, "`") {
		return "`" + v + "`"
	}
	fence := "``"
	for strings.Contains(v, fence) {
		fence += "`"
	}
	return fence + " " + v + " " + fence
}
