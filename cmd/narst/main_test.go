package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NARST_ENV", filepath.Join(t.TempDir(), "missing.env"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := runCLI(t, "parse", "<corridor --> location>. :|:")
	require.NoError(t, err)
	assert.Contains(t, out, `"kind": "judgement"`)
	assert.Contains(t, out, `"term": "corridor --> location"`)
	assert.Contains(t, out, `"tense": "Present"`)
}

func TestParseCommandRejectsBadPunctuation(t *testing.T) {
	_, err := runCLI(t, "parse", "<x --> y>:")
	assert.Error(t, err)
}

func TestTruthCommand(t *testing.T) {
	out, err := runCLI(t, "truth", "deduction", "0.9", "0.9", "0.8", "0.9")
	require.NoError(t, err)
	assert.Equal(t, "{0.72 0.5832}", strings.TrimSpace(out))
}

func TestTruthCommandUnknownFunction(t *testing.T) {
	_, err := runCLI(t, "truth", "guesswork", "0.9", "0.9", "0.8", "0.9")
	assert.Error(t, err)
}

func TestDeriveCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birds.nal")
	require.NoError(t, os.WriteFile(path, []byte(
		"// birds\n<robin --> bird>. {1.0 0.9}\n<bird --> animal>. {1.0 0.9}\n"), 0o644))

	out, err := runCLI(t, "derive", "--file", path, "--steps", "1", "--explain", "<robin --> animal>")
	require.NoError(t, err)
	assert.Contains(t, out, "<robin --> animal>. {1.0 0.81}  [deduction <robin --> bird>, <bird --> animal>]")
	assert.Contains(t, out, "Derivation chain for <robin --> animal>:")
}

func TestMemoryAddAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mem.json")

	out, err := runCLI(t, "memory", "add", "--path", path, "rA9.", "0.8", "0.9")
	require.NoError(t, err)
	assert.Contains(t, out, "added #0 rA9.")

	out, err = runCLI(t, "memory", "show", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"term": "rA9."`)
	assert.Contains(t, out, `"last_id": 1`)
}
