package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestHandlerCompilesValidSource(t *testing.T) {
	in := writeTemp(t, "prog.snek", "def fact(n) = if n < 2: 1 else: n * fact(n - 1); fact(5)")
	out := filepath.Join(t.TempDir(), "prog.s")

	status := Handler([]string{in, out}, map[string]string{})
	assert.Equal(t, 0, status)

	generated, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(generated), "global start_here")
}

func TestHandlerReportsCheckErrors(t *testing.T) {
	in := writeTemp(t, "bad.snek", "x + 1")
	out := filepath.Join(t.TempDir(), "bad.s")

	status := Handler([]string{in, out}, map[string]string{})
	assert.Equal(t, -1, status)

	_, err := os.Stat(out)
	assert.True(t, os.IsNotExist(err))
}

func TestHandlerReportsMissingInputFile(t *testing.T) {
	status := Handler([]string{"/no/such/file.snek", filepath.Join(t.TempDir(), "out.s")}, map[string]string{})
	assert.Equal(t, -1, status)
}
