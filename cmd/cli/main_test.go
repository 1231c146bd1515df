package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/burstplan/internal/hcl_adapter"
	"github.com/specialistvlad/burstplan/internal/yaml_adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600), "failed to set up test file")
	return p
}

func TestRun_Schedules(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := writeFile(t, dir, "problem.yaml", `
resources:
  - {name: r0, mips: 50, bandwidth: 10}
tasks:
  - {name: only, length: 100}
`)
	out := &bytes.Buffer{}
	logs := &bytes.Buffer{}

	// --- Act ---
	err := run(out, logs, []string{"--log-level", "debug", path})

	// --- Assert ---
	require.NoError(t, err)
	assert.Regexp(t, `makespan:\s+2\n`, out.String())
	assert.Regexp(t, `only\s+r0\s+2\s+0\s+0\s+2\n`, out.String())
	assert.Contains(t, logs.String(), "Plan complete.")
	assert.NotContains(t, out.String(), "level=")
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// A syntax error surfaces from the loader as a plain error.
	dir := t.TempDir()
	path := writeFile(t, dir, "main.hcl", `
		task "A" {
			length = 1
		// Missing closing brace here
	`)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{path})

	// --- Assert ---
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, &bytes.Buffer{}, []string{"-h"})

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "unknown long flag '--this-is-not-a-valid-flag'")
}

func TestLoaderFor(t *testing.T) {
	t.Parallel()

	hclDir := t.TempDir()
	hclFile := writeFile(t, hclDir, "p.hcl", "")
	yamlDir := t.TempDir()
	yamlFile := writeFile(t, yamlDir, "p.yml", "")
	txtFile := writeFile(t, yamlDir, "p.txt", "")

	testCases := []struct {
		name   string
		format string
		path   string
		want   any
	}{
		{"forced hcl", "hcl", yamlFile, &hcl_adapter.Loader{}},
		{"forced yaml", "yaml", hclFile, &yaml_adapter.Loader{}},
		{"hcl file", "auto", hclFile, &hcl_adapter.Loader{}},
		{"yaml file", "auto", yamlFile, &yaml_adapter.Loader{}},
		{"hcl dir", "auto", hclDir, &hcl_adapter.Loader{}},
		{"yaml dir", "auto", yamlDir, &yaml_adapter.Loader{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loader, err := loaderFor(tc.format, tc.path)
			require.NoError(t, err)
			assert.IsType(t, tc.want, loader)
		})
	}

	_, err := loaderFor("auto", txtFile)
	assert.ErrorContains(t, err, "use --format")
	_, err = loaderFor("auto", filepath.Join(yamlDir, "missing"))
	assert.Error(t, err)
}

func TestRun_Examples(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"diamond.hcl", "etl.yaml"} {
		t.Run(name, func(t *testing.T) {
			out := &bytes.Buffer{}
			err := run(out, &bytes.Buffer{}, []string{filepath.Join("..", "..", "examples", name)})
			require.NoError(t, err)
			assert.Contains(t, out.String(), "makespan:")
			assert.Contains(t, out.String(), "MATCHED TASK")
		})
	}
}
