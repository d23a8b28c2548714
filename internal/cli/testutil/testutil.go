// Package testutil provides helpers for CLI command tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/forcelabs/pkglineage/internal/cli/output"
)

// TestRenderer wraps a Renderer with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a renderer writing into in-memory buffers.
// Buffers are never TTYs, so ModeAuto resolves to markdown.
func NewTestRenderer(mode output.Mode) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRenderer(out, errOut, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the captured stdout as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the captured stderr as a string.
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

// WriteEnvelopeFixtures writes a package-list and version-list envelope pair
// into dir and returns their paths, for running commands against saved input.
func WriteEnvelopeFixtures(t *testing.T, dir, packagesJSON, versionsJSON string) (pkgPath, verPath string) {
	t.Helper()

	pkgPath = filepath.Join(dir, "packages.json")
	if err := os.WriteFile(pkgPath, []byte(packagesJSON), 0o644); err != nil {
		t.Fatalf("failed to write packages fixture: %v", err)
	}
	verPath = filepath.Join(dir, "versions.json")
	if err := os.WriteFile(verPath, []byte(versionsJSON), 0o644); err != nil {
		t.Fatalf("failed to write versions fixture: %v", err)
	}
	return pkgPath, verPath
}
