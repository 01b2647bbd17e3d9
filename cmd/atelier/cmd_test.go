package main

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/param"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args,
		"--config", filepath.Join(dir, "none.yml"),
		"--env-file", filepath.Join(dir, "none.env")))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCountdownLine(t *testing.T) {
	now := time.Date(2026, 10, 16, 13, 2, 0, 0, time.Local)
	assert.Equal(t, "00:18:00 (at 1:20)", countdownLine(param.TimeOfDay{Hour: 13, Minute: 20}, now))
	assert.Equal(t, "-01:02:00 (at 12:00)", countdownLine(param.TimeOfDay{Hour: 12}, now))
}

func TestLinkCommand(t *testing.T) {
	out, err := execute(t, "link", "UBC", "break")
	require.NoError(t, err)
	assert.Contains(t, out, "https://atelier.place/session?")
	assert.Contains(t, out, "preset=UBC")
	assert.Contains(t, out, "presetStage=break")
}

func TestLinkCommandUnknownStage(t *testing.T) {
	_, err := execute(t, "link", "UBC", "lunch")
	assert.Error(t, err)
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets")
	require.NoError(t, err)
	assert.Contains(t, out, "UBC\n")
	assert.Contains(t, out, "  work session1\n")
	assert.Contains(t, out, "Weeknights\n")
}
