// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/pdiddy/xcsummary/internal/xcresult"
	"github.com/pdiddy/xcsummary/pkg/types"
)

func strPtr(s string) *string { return &s }

func TestRenderEndToEnd(t *testing.T) {
	raw := `{"result":"Failed","totalTestCount":10,"passedTests":8,"failedTests":2,"skippedTests":0,"title":"Run1","testFailures":[{"testName":"testFoo"}]}`
	s, err := xcresult.Normalize([]byte(raw))
	require.NoError(t, err)

	got := Render("Unit Tests", "/tmp/x.xcresult", s)

	want := strings.Join([]string{
		"### Unit Tests",
		"",
		"- Result: `Failed`",
		"- Total: `10` | Passed: `8` | Failed: `2` | Skipped: `0`",
		"- Bundle: `/tmp/x.xcresult`",
		"- Title: `Run1`",
		"",
		"Failures:",
		"- `testFoo`",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render mismatch (-want +got):\n%s", diff)
	}
	assert.NotContains(t, got, "Environment")
}

func TestRenderMinimal(t *testing.T) {
	s, err := xcresult.Normalize([]byte(`{}`))
	require.NoError(t, err)

	got := Render("Testes", "b.xcresult", s)
	want := "### Testes\n\n" +
		"- Result: `Unknown`\n" +
		"- Total: `0` | Passed: `0` | Failed: `0` | Skipped: `0`\n" +
		"- Bundle: `b.xcresult`\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderOptionalLines(t *testing.T) {
	tests := []struct {
		name    string
		summary types.TestSummary
		want    []string
		absent  []string
	}{
		{
			name:    "title and environment in order",
			summary: types.TestSummary{Result: "Passed", Title: strPtr("Nightly"), Environment: strPtr("iPhone 16 (18.2)")},
			want:    []string{"- Title: `Nightly`\n- Environment: `iPhone 16 (18.2)`\n"},
		},
		{
			name:    "environment only",
			summary: types.TestSummary{Result: "Passed", Environment: strPtr("macOS 15")},
			want:    []string{"- Environment: `macOS 15`"},
			absent:  []string{"Title"},
		},
		{
			name:    "empty strings are omitted",
			summary: types.TestSummary{Result: "Passed", Title: strPtr(""), Environment: strPtr("")},
			absent:  []string{"Title", "Environment"},
		},
		{
			name:    "no failures block when list empty",
			summary: types.TestSummary{Result: "Passed", Failures: []string{}},
			absent:  []string{"Failures:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render("UI Tests", "ui.xcresult", tt.summary)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, got, a)
			}
			assert.True(t, strings.HasSuffix(got, "`\n"), "ends with the last content line and one newline")
		})
	}
}

func TestRenderFailureCap(t *testing.T) {
	tests := []struct {
		name        string
		count       int
		wantBullets int
		wantMarker  string
	}{
		{name: "under cap", count: 3, wantBullets: 3},
		{name: "exactly cap", count: 20, wantBullets: 20},
		{name: "one over", count: 21, wantBullets: 20, wantMarker: "- ... (+1)"},
		{name: "twenty-five", count: 25, wantBullets: 20, wantMarker: "- ... (+5)"},
		{name: "hundreds", count: 320, wantBullets: 20, wantMarker: "- ... (+300)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			failures := make([]string, tt.count)
			for i := range failures {
				failures[i] = fmt.Sprintf("Suite.test%03d()", i)
			}
			s := types.TestSummary{Result: "Failed", Failed: tt.count, Failures: failures}

			got := Render("Unit Tests", "u.xcresult", s)
			_, block, found := strings.Cut(got, "Failures:\n")
			require.True(t, found)

			var bullets []string
			var marker string
			for _, line := range strings.Split(strings.TrimRight(block, "\n"), "\n") {
				if strings.HasPrefix(line, "- ... (+") {
					marker = line
					continue
				}
				bullets = append(bullets, line)
			}
			assert.Len(t, bullets, tt.wantBullets)
			assert.Equal(t, tt.wantMarker, marker)
			assert.Equal(t, "- `Suite.test000()`", bullets[0])
			assert.Equal(t, fmt.Sprintf("- `Suite.test%03d()`", tt.wantBullets-1), bullets[len(bullets)-1])
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	raw := []byte(`{"result":"Failed","totalTestCount":3,"failedTests":3,"environmentDescription":"CI","testFailures":[{"name":"a"},{"name":"b"},{"name":"c"}]}`)

	first, err := xcresult.Normalize(raw)
	require.NoError(t, err)
	second, err := xcresult.Normalize(raw)
	require.NoError(t, err)

	a := Render("Unit Tests", "/tmp/x.xcresult", first)
	b := Render("Unit Tests", "/tmp/x.xcresult", second)
	assert.Equal(t, a, b)
	assert.Equal(t, a, Render("Unit Tests", "/tmp/x.xcresult", first))
}

func TestRenderKeepsValuesOnOneLine(t *testing.T) {
	s, err := xcresult.Normalize([]byte(`{"title":"Nightly\r\nrun","testFailures":[{"testName":"a\nb"},{"testName":"test` + "`" + `quoted` + "`" + `()"},{"testName":"x` + "``" + `y"}]}`))
	require.NoError(t, err)

	out := Render("Unit Tests", "/tmp/x.xcresult", s)
	assert.Contains(t, out, "\n- Title: `Nightly run`\n")
	assert.Contains(t, out, "\n- `a b`\n")
	assert.Contains(t, out, "\n- `` test`quoted`() ``\n")
	assert.Contains(t, out, "\n- ``` x``y ```\n")
}

func TestCodeSpan(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "`plain`"},
		{in: "line\nbreak", want: "`line break`"},
		{in: "cr\r\nlf", want: "`cr lf`"},
		{in: "a`b", want: "`` a`b ``"},
		{in: "a``b", want: "``` a``b ```"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, codeSpan(tt.in))
		})
	}
}

func TestRenderDoesNotModifySummary(t *testing.T) {
	failures := []string{"x", "y"}
	s := types.TestSummary{Result: "Failed", Failures: failures}
	_ = Render("k", "s", s)
	assert.Equal(t, []string{"x", "y"}, s.Failures)
}

func TestRendererPortuguese(t *testing.T) {
	s := types.TestSummary{
		Result:      "Failed",
		Total:       2,
		Passed:      1,
		Failed:      1,
		Title:       strPtr("Run1"),
		Environment: strPtr("iPhone"),
		Failures:    []string{"testFoo"},
	}
	got := NewRenderer(language.BrazilianPortuguese).Render("Testes", "t.xcresult", s)

	want := strings.Join([]string{
		"### Testes",
		"",
		"- Resultado: `Failed`",
		"- Total: `2` | Passou: `1` | Falhou: `1` | Pulou: `0`",
		"- Bundle: `t.xcresult`",
		"- Titulo: `Run1`",
		"- Ambiente: `iPhone`",
		"",
		"Falhas:",
		"- `testFoo`",
		"",
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render mismatch (-want +got):\n%s", diff)
	}
}

func TestLabelsFor(t *testing.T) {
	tests := []struct {
		lang string
		want Labels
	}{
		{lang: "", want: English},
		{lang: "en", want: English},
		{lang: "en-GB", want: English},
		{lang: "pt-BR", want: Portuguese},
		{lang: "pt", want: Portuguese},
		{lang: "ja", want: English},
	}
	for _, tt := range tests {
		t.Run(tt.lang, func(t *testing.T) {
			tag, err := ParseLang(tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, LabelsFor(tag))
		})
	}
}

func TestParseLangInvalid(t *testing.T) {
	_, err := ParseLang("not a tag!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a tag!")
}
