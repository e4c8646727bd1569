// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package xcresult reads test-run summaries out of Xcode .xcresult bundles.
// It runs xcresulttool to obtain the summary JSON and normalizes that JSON,
// whose shape drifts between Xcode releases, into a types.TestSummary.
package xcresult

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/pdiddy/xcsummary/pkg/types"
)

// Top-level keys of the xcresulttool test-results summary.
const (
	keyResult      = "result"
	keyTotal       = "totalTestCount"
	keyPassed      = "passedTests"
	keyFailed      = "failedTests"
	keySkipped     = "skippedTests"
	keyEnvironment = "environmentDescription"
	keyTitle       = "title"
	keyFailures    = "testFailures"
)

// failureNameKeys lists, highest priority first, the keys under which a
// testFailures entry may carry the failing test's name. Xcode releases
// disagree on which one they emit.
var failureNameKeys = []string{"testName", "testCaseName", "name", "identifier"}

// FailureNameKeys returns the failure-name keys in priority order. The
// result is a copy.
func FailureNameKeys() []string {
	return slices.Clone(failureNameKeys)
}

// Normalize converts xcresulttool summary JSON into a TestSummary.
// Only malformed JSON or a non-object document is an error; every other
// missing or mistyped field falls back to its default.
func Normalize(raw []byte) (types.TestSummary, error) {
	s, _, err := NormalizeWithWarnings(raw)
	return s, err
}

// NormalizeWithWarnings is Normalize that also reports each field it had to
// degrade because the value had an unexpected type. A field that is simply
// absent produces no warning.
func NormalizeWithWarnings(raw []byte) (types.TestSummary, []string, error) {
	doc, err := decodeObject(raw)
	if err != nil {
		return types.TestSummary{}, nil, err
	}

	n := &normalizer{doc: doc}
	s := types.TestSummary{
		Result:      n.result(),
		Total:       n.count(keyTotal),
		Passed:      n.count(keyPassed),
		Failed:      n.count(keyFailed),
		Skipped:     n.count(keySkipped),
		Environment: n.optionalText(keyEnvironment),
		Title:       n.optionalText(keyTitle),
		Failures:    n.failures(),
	}
	return s, n.warnings, nil
}

func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &DecodeError{Err: errors.New("unexpected data after top-level value")}
	}

	doc, ok := v.(map[string]any)
	if !ok {
		return nil, &DecodeError{Err: fmt.Errorf("top-level value is %s, not an object", kindOf(v))}
	}
	return doc, nil
}

// normalizer holds one decoded document for the duration of a single pass.
type normalizer struct {
	doc      map[string]any
	warnings []string
}

func (n *normalizer) warnf(format string, args ...any) {
	n.warnings = append(n.warnings, fmt.Sprintf(format, args...))
}

func (n *normalizer) result() string {
	v, ok := n.doc[keyResult]
	if !ok || v == nil {
		return types.ResultUnknown
	}
	if s, ok := v.(string); ok {
		return s
	}
	n.warnf("%s: expected string, got %s; using its text form", keyResult, kindOf(v))
	return textOf(v)
}

func (n *normalizer) count(key string) int {
	v, ok := n.doc[key]
	if !ok || v == nil {
		return 0
	}
	num, ok := v.(json.Number)
	if !ok {
		n.warnf("%s: expected number, got %s; using 0", key, kindOf(v))
		return 0
	}
	return truncate(num)
}

func (n *normalizer) optionalText(key string) *string {
	s, ok := n.doc[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func (n *normalizer) failures() []string {
	entries, _ := n.doc[keyFailures].([]any)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if name := strings.TrimSpace(failureName(obj)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// failureName returns the value of the first failureNameKeys entry holding a
// non-blank value, or "" when that value is not a string or none matched.
func failureName(obj map[string]any) string {
	for _, key := range failureNameKeys {
		v, ok := obj[key]
		if !ok || blank(v) {
			continue
		}
		s, _ := v.(string)
		return s
	}
	return ""
}

func blank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f == 0
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

// truncate converts a JSON number to an int, dropping any fractional part.
// Negative values become 0; values beyond the int range saturate.
func truncate(num json.Number) int {
	if i, err := num.Int64(); err == nil {
		switch {
		case i < 0:
			return 0
		case int64(int(i)) != i:
			return math.MaxInt
		}
		return int(i)
	}
	f, err := num.Float64()
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	f = math.Trunc(f)
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	}
	return int(f)
}

func textOf(v any) string {
	switch t := v.(type) {
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
