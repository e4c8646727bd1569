// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/xcsummary/pkg/types"
)

// Document is the machine-readable form of one rendered summary.
type Document struct {
	Label   string            `json:"label" yaml:"label"`
	Bundle  string            `json:"bundle" yaml:"bundle"`
	Summary types.TestSummary `json:"summary" yaml:"summary"`
}

// Encode writes s to w in the requested format. Markdown uses the
// Renderer's labels; JSON and YAML wrap s in a Document.
func (r Renderer) Encode(w io.Writer, format types.OutputFormat, label, source string, s types.TestSummary) error {
	doc := Document{Label: label, Bundle: source, Summary: s}

	switch format {
	case types.OutputMarkdown, "":
		_, err := io.WriteString(w, r.Render(label, source, s))
		return err
	case types.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case types.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (expected markdown, json, or yaml)", format)
	}
}
