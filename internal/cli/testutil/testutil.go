// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/1101hirokin/tzie-tokens/internal/cli/output"
)

// LightTheme is a small theme document referencing the embedded base tokens.
const LightTheme = `{
  "color": {
    "$type": "color",
    "bg": { "$value": "{color.base.white}", "$description": "Page background" },
    "text": { "$value": "{color.base.gray.900}" }
  }
}`

// SetupTestProject creates a temporary project with a config file and a
// light theme, and returns its directory.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "theme"), 0750); err != nil {
		t.Fatalf("failed to create theme directory: %v", err)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "theme", "light.json"), []byte(LightTheme), 0600); err != nil {
		t.Fatalf("failed to create light.json: %v", err)
	}

	cfg := "theme: theme/light.json\noutput: dist\n"
	if err := os.WriteFile(filepath.Join(tmpDir, "tzie-tokens.yaml"), []byte(cfg), 0600); err != nil {
		t.Fatalf("failed to create tzie-tokens.yaml: %v", err)
	}

	return tmpDir
}

// Chdir switches the working directory to dir until the test ends.
func Chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldWd) })
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
