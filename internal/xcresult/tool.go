// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package xcresult

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pdiddy/xcsummary/pkg/types"
)

// DefaultXcrun is the binary used to reach xcresulttool when none is configured.
const DefaultXcrun = "xcrun"

// Tool produces the raw test-results summary JSON for a bundle.
type Tool interface {
	// Name returns the binary the tool runs.
	Name() string

	// Available reports whether the binary can be found on PATH.
	Available() bool

	// Summary returns the summary JSON xcresulttool prints for bundlePath.
	Summary(ctx context.Context, bundlePath string) ([]byte, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec = &osExecutor{}

// xcresulttool runs "xcrun xcresulttool get test-results summary".
type xcresulttool struct {
	bin  string
	exec executor
}

// NewTool returns a Tool that reaches xcresulttool through the given xcrun
// binary. An empty xcrun selects DefaultXcrun.
func NewTool(xcrun string) Tool {
	return newTool(xcrun, defaultExec)
}

func newTool(xcrun string, exec executor) *xcresulttool {
	if xcrun == "" {
		xcrun = DefaultXcrun
	}
	return &xcresulttool{bin: xcrun, exec: exec}
}

func (t *xcresulttool) Name() string { return t.bin }

func (t *xcresulttool) Available() bool {
	_, err := t.exec.LookPath(t.bin)
	return err == nil
}

func (t *xcresulttool) Summary(ctx context.Context, bundlePath string) ([]byte, error) {
	args := summaryArgs(bundlePath)

	var stdout, stderr bytes.Buffer
	if err := t.exec.Run(ctx, t.bin, args, &stdout, &stderr); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%s not found on PATH: %w", t.bin, err)
		}
		return nil, &ToolError{
			Command: t.bin + " " + strings.Join(args, " "),
			Output:  stderr.String() + stdout.String(),
			Err:     err,
		}
	}
	return stdout.Bytes(), nil
}

func summaryArgs(bundlePath string) []string {
	return []string{
		"xcresulttool", "get", "test-results", "summary",
		"--path", bundlePath,
		"--format", "json",
	}
}

// ReadSummary runs the tool against bundlePath and normalizes its output.
// The returned warnings describe fields that were degraded to defaults.
func ReadSummary(ctx context.Context, t Tool, bundlePath string) (types.TestSummary, []string, error) {
	raw, err := t.Summary(ctx, bundlePath)
	if err != nil {
		return types.TestSummary{}, nil, err
	}
	return NormalizeWithWarnings(raw)
}
