// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureNamesReturnsCopy(t *testing.T) {
	s := TestSummary{Failures: []string{"testFoo", "testBar"}}

	names := s.FailureNames()
	names[0] = "changed"
	_ = append(names[:1], "appended")

	assert.Equal(t, []string{"testFoo", "testBar"}, s.Failures)
	assert.Equal(t, []string{"testFoo", "testBar"}, s.FailureNames())
}

func TestFailureNamesNeverNil(t *testing.T) {
	assert.Equal(t, []string{}, TestSummary{}.FailureNames())
}

func TestHasFailures(t *testing.T) {
	assert.False(t, TestSummary{}.HasFailures())
	assert.False(t, TestSummary{Failures: []string{}}.HasFailures())
	assert.True(t, TestSummary{Failures: []string{"a"}}.HasFailures())
}

func TestOptionalText(t *testing.T) {
	title, env := "Nightly", ""
	s := TestSummary{Title: &title, Environment: &env}
	assert.Equal(t, "Nightly", s.TitleText())
	assert.Equal(t, "", s.EnvironmentText())
	assert.Equal(t, "", TestSummary{}.TitleText())
}
