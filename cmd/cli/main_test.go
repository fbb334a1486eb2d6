package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_ManifestSyntaxError(t *testing.T) {
	t.Parallel()

	invalidHCL := `
		class "Point" {
			variable "x" {
		// Missing closing brace here
	`
	tempDir := t.TempDir()
	filePath := filepath.Join(tempDir, "main.hcl")
	err := os.WriteFile(filePath, []byte(invalidHCL), 0600)
	require.NoError(t, err, "failed to set up test file")

	out := &bytes.Buffer{}
	runErr := run(out, &bytes.Buffer{}, []string{filePath})

	require.Error(t, runErr)
	require.Contains(t, runErr.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_GeometryManifest(t *testing.T) {
	out := &bytes.Buffer{}
	manifest := filepath.Join("..", "..", "modules", "geometry", "manifest.hcl")

	err := run(out, &bytes.Buffer{}, []string{"--strict", manifest})

	require.NoError(t, err)
	report := out.String()
	require.Contains(t, report, "Polygon")
	require.Contains(t, report, "bases=Shape")
	require.Contains(t, report, "Compass")
}
