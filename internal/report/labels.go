// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"fmt"

	"golang.org/x/text/language"
)

// Labels holds the fixed wording of a Markdown summary section.
type Labels struct {
	Result      string
	Total       string
	Passed      string
	Failed      string
	Skipped     string
	Bundle      string
	Title       string
	Environment string
	Failures    string
}

// English is the default label set.
var English = Labels{
	Result:      "Result",
	Total:       "Total",
	Passed:      "Passed",
	Failed:      "Failed",
	Skipped:     "Skipped",
	Bundle:      "Bundle",
	Title:       "Title",
	Environment: "Environment",
	Failures:    "Failures",
}

// Portuguese is the Brazilian Portuguese label set.
var Portuguese = Labels{
	Result:      "Resultado",
	Total:       "Total",
	Passed:      "Passou",
	Failed:      "Falhou",
	Skipped:     "Pulou",
	Bundle:      "Bundle",
	Title:       "Titulo",
	Environment: "Ambiente",
	Failures:    "Falhas",
}

// supported is ordered to match labelSets; the first entry is the fallback.
var (
	supported = []language.Tag{language.English, language.BrazilianPortuguese}
	labelSets = []Labels{English, Portuguese}
	matcher   = language.NewMatcher(supported)
)

// LabelsFor returns the label set that best matches tag, English when
// nothing matches.
func LabelsFor(tag language.Tag) Labels {
	_, i, _ := matcher.Match(tag)
	return labelSets[i]
}

// ParseLang parses a BCP 47 tag such as "en" or "pt-BR". An empty string
// selects English.
func ParseLang(s string) (language.Tag, error) {
	if s == "" {
		return language.English, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.Und, fmt.Errorf("parsing language %q: %w", s, err)
	}
	return tag, nil
}
