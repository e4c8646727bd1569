// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xcresult

import "strings"

// DecodeError reports that the tool output is not a JSON object.
// No partial summary accompanies it.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err == nil {
		return "decoding xcresulttool summary"
	}
	return "decoding xcresulttool summary: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ToolError reports that xcresulttool ran but exited unsuccessfully.
// Output holds whatever the tool wrote, stderr first.
type ToolError struct {
	Command string
	Output  string
	Err     error
}

func (e *ToolError) Error() string {
	msg := "running " + e.Command
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		if i := strings.IndexByte(out, '\n'); i >= 0 {
			out = out[:i]
		}
		msg += " (" + out + ")"
	}
	return msg
}

func (e *ToolError) Unwrap() error { return e.Err }
