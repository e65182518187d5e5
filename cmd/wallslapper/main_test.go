package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokzlo13/wallslapper/internal/db"
	"github.com/dokzlo13/wallslapper/internal/ledger"
)

func writeConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	src := fmt.Sprintf(`
state:
  path: %s
database:
  path: %s
render:
  dir: %s
timezone: UTC
schedule:
  "00:00": "#000000"
palettes:
  - name: duo
    colors: ["#000000", "#FFFFFF"]
%s`, filepath.Join(dir, "current"), filepath.Join(dir, "db.sqlite"), dir, extra)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCurrent_None(t *testing.T) {
	cfg := writeConfig(t, "")
	out, err := run(t, "current", "-c", cfg, "--env-file", "")
	require.NoError(t, err)
	assert.Equal(t, "none\n", out)
}

func TestCurrent_ReadsPersistedColor(t *testing.T) {
	cfg := writeConfig(t, "")
	statePath := filepath.Join(filepath.Dir(cfg), "current")
	require.NoError(t, os.WriteFile(statePath, []byte("#a1b2c3\n"), 0o644))

	out, err := run(t, "current", "-c", cfg, "--env-file", "")
	require.NoError(t, err)
	assert.Equal(t, "#A1B2C3\n", out)

	out, err = run(t, "current", "--clear", "-c", cfg, "--env-file", "")
	require.NoError(t, err)
	assert.Equal(t, "cleared\n", out)
	_, err = os.Stat(statePath)
	assert.True(t, os.IsNotExist(err))
}

func TestSchedulePrint(t *testing.T) {
	cfg := writeConfig(t, "")
	out, err := run(t, "schedule", "--print", "-c", cfg, "--env-file", "")
	require.NoError(t, err)
	assert.Contains(t, out, "00:00")
	assert.Contains(t, out, "#000000")
}

func TestHistory_Empty(t *testing.T) {
	cfg := writeConfig(t, "")
	out, err := run(t, "history", "-c", cfg, "--env-file", "")
	require.NoError(t, err)
	assert.Equal(t, "No transitions recorded\n", out)
}

func TestHistory_Disabled(t *testing.T) {
	cfg := writeConfig(t, "ledger:\n  enabled: false\n")
	_, err := run(t, "history", "-c", cfg, "--env-file", "")
	assert.Error(t, err)
}

func TestArgumentValidation(t *testing.T) {
	cfg := writeConfig(t, "")
	tests := []struct {
		name string
		args []string
	}{
		{name: "bad_color", args: []string{"set", "blue"}},
		{name: "negative_duration", args: []string{"transition", "#FFFFFF", "--duration", "-1s"}},
		{name: "unknown_palette", args: []string{"pinwheel", "nope"}},
		{name: "missing_color", args: []string{"transition"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, append(tt.args, "-c", cfg, "--env-file", "")...)
			assert.Error(t, err)
		})
	}
}

func TestPrintHistory(t *testing.T) {
	var out bytes.Buffer
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	err := printHistory(&out, []*ledger.Entry{
		{EventType: ledger.EventTransitionCompleted, Timestamp: ts, Source: "cli", StartColor: "#000000", EndColor: "#FFFFFF", DurationMs: 1500, Steps: 15},
		{EventType: ledger.EventTransitionFailed, Timestamp: ts, Source: "daemon", EndColor: "#FF0000", Steps: 1, Error: "boom"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "EVENT")
	assert.Contains(t, lines[1], "transition_completed")
	assert.Contains(t, lines[1], "1.5s")
	assert.Contains(t, lines[2], "boom")
	assert.Contains(t, lines[2], " - ")
}

const trueSetter = "wallpaper:\n  commands:\n    - [\"true\", \"{path}\"]\n"

func requireTrue(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true command not available")
	}
}

func persisted(t *testing.T, cfg string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(filepath.Dir(cfg), "current"))
	require.NoError(t, err)
	return string(raw)
}

func TestApplyCommands(t *testing.T) {
	requireTrue(t)

	tests := []struct {
		name      string
		args      []string
		wantOut   string
		wantColor string
	}{
		{name: "set", args: []string{"set", "#112233"}, wantOut: "#112233\n", wantColor: "#112233"},
		{name: "transition", args: []string{"transition", "#abcdef", "--duration", "200ms", "-q"}, wantOut: "#ABCDEF\n", wantColor: "#ABCDEF"},
		{name: "pinwheel", args: []string{"pinwheel", "duo", "-q"}, wantOut: "", wantColor: "#FFFFFF"},
		{name: "schedule", args: []string{"schedule"}, wantOut: "#000000\n", wantColor: "#000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeConfig(t, trueSetter)
			out, err := run(t, append(tt.args, "-c", cfg, "--env-file", "")...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOut, out)
			assert.Equal(t, tt.wantColor, persisted(t, cfg))
		})
	}
}

func TestHistory_ByTransition(t *testing.T) {
	requireTrue(t)
	cfg := writeConfig(t, trueSetter)

	_, err := run(t, "set", "#000000", "-c", cfg, "--env-file", "")
	require.NoError(t, err)
	_, err = run(t, "transition", "#FFFFFF", "--duration", "200ms", "-q", "-c", cfg, "--env-file", "")
	require.NoError(t, err)

	database, err := db.Open(filepath.Join(filepath.Dir(cfg), "db.sqlite"))
	require.NoError(t, err)
	recent, err := ledger.New(database.DB).Recent(1)
	database.Close()
	require.NoError(t, err)
	require.Len(t, recent, 1)
	id := recent[0].TransitionID

	out, err := run(t, "history", "--transition", id, "-c", cfg, "--env-file", "")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3, "header, started, completed")
	assert.Contains(t, lines[1], "transition_started")
	assert.Contains(t, lines[2], "transition_completed")
	for _, l := range lines[1:] {
		assert.Contains(t, l, id)
		assert.Contains(t, l, "#FFFFFF")
	}
}
