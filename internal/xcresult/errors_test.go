// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xcresult

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "decode", err: &DecodeError{Err: errors.New("unexpected EOF")}, want: "decoding xcresulttool summary: unexpected EOF"},
		{name: "decode without cause", err: &DecodeError{}, want: "decoding xcresulttool summary"},
		{
			name: "tool with output",
			err:  &ToolError{Command: "xcrun xcresulttool", Output: "\nError: corrupt\nmore\n", Err: errors.New("exit status 1")},
			want: "running xcrun xcresulttool: exit status 1 (Error: corrupt)",
		},
		{name: "tool without cause", err: &ToolError{Command: "xcrun"}, want: "running xcrun"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() { _ = tt.err.Error() })
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("cause")
	assert.ErrorIs(t, &DecodeError{Err: cause}, cause)
	assert.ErrorIs(t, &ToolError{Err: cause}, cause)
	assert.NoError(t, (&DecodeError{}).Unwrap())
}
