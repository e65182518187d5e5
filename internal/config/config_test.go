package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
log:
  level: debug
state:
  backend: sqlite
  slot: office
database:
  path: ${WALLSLAPPER_TEST_DB:/tmp/default.sqlite}
wallpaper:
  commands:
    - [feh, --bg-fill, "{path}"]
  max_rps: 5
daemon:
  poll_interval: 30s
  transition: 10m
timezone: UTC
schedule:
  "18:00": "#0000ff"
  "08:00": "#FF0000"
palettes:
  - name: sunset
    colors: ["#FF5733", "#C70039", "#900C3F"]
  - name: mono
    colors: ["#000000", "#ffffff"]
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.State.Backend)
	assert.Equal(t, "office", cfg.State.Slot)
	assert.Equal(t, "/tmp/default.sqlite", cfg.Database.Path)
	assert.Equal(t, [][]string{{"feh", "--bg-fill", "{path}"}}, cfg.Wallpaper.Commands)
	assert.Equal(t, 5.0, cfg.Wallpaper.MaxRPS)
	assert.Equal(t, 30*time.Second, cfg.Daemon.PollInterval.Duration())
	assert.Equal(t, 10*time.Minute, cfg.Daemon.TransitionDuration())

	require.Len(t, cfg.Schedule, 2)
	assert.Equal(t, "18:00", cfg.Schedule[0].Key)
	assert.Equal(t, "#0000FF", cfg.Schedule[0].Color.String())

	colors, ok := cfg.Palette("sunset")
	require.True(t, ok)
	require.Len(t, colors, 3)
	assert.Equal(t, "#C70039", colors[1].String())

	_, ok = cfg.Palette("nope")
	assert.False(t, ok)
	assert.Equal(t, []string{"sunset", "mono"}, cfg.PaletteNames())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.State.Backend)
	assert.Equal(t, filepath.Join(home, ".wallslappercurrent"), cfg.State.Path)
	assert.Equal(t, filepath.Join(home, ".wallslapper.sqlite"), cfg.Database.Path)
	assert.True(t, cfg.Ledger.IsEnabled())
	assert.Equal(t, 30*24*time.Hour, cfg.Ledger.RetentionPeriod())
	assert.Equal(t, time.Minute, cfg.Daemon.PollInterval.Duration())
	assert.Equal(t, 5*time.Minute, cfg.Daemon.TransitionDuration())
	assert.Equal(t, 16, cfg.Daemon.QueueSize)
	assert.Equal(t, 9090, cfg.Healthcheck.Port)
	assert.False(t, cfg.Webhook.Enabled)
	assert.Equal(t, 8090, cfg.Webhook.Port)
	assert.Equal(t, 5*time.Second, cfg.GetShutdownTimeout())
	assert.Empty(t, cfg.Schedule)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestParse_ExplicitZeroKept(t *testing.T) {
	cfg, err := Parse([]byte("daemon:\n  transition: 0s\nledger:\n  retention_days: 0\n"))
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), cfg.Daemon.TransitionDuration(), "0s means instant scheduled changes")
	assert.Equal(t, time.Duration(0), cfg.Ledger.RetentionPeriod(), "0 keeps entries forever")
}

func TestParse_EnvExpansion(t *testing.T) {
	t.Setenv("WALLSLAPPER_TEST_DB", "/var/lib/wallslapper.sqlite")

	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/wallslapper.sqlite", cfg.Database.Path)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "bad_schedule_key", src: "schedule:\n  \"25:00\": \"#FFFFFF\"\n"},
		{name: "bad_palette_color", src: "palettes:\n  - name: x\n    colors: [\"#FFF\"]\n"},
		{name: "unnamed_palette", src: "palettes:\n  - colors: [\"#FFFFFF\"]\n"},
		{name: "duplicate_palette", src: "palettes:\n  - name: a\n  - name: a\n"},
		{name: "unknown_backend", src: "state:\n  backend: redis\n"},
		{name: "bad_timezone", src: "timezone: Mars/Olympus\n"},
		{name: "bad_duration", src: "daemon:\n  transition: soon\n"},
		{name: "negative_transition", src: "daemon:\n  transition: -1s\n"},
		{name: "negative_retention", src: "ledger:\n  retention_days: -1\n"},
		{name: "empty_command", src: "wallpaper:\n  commands:\n    - []\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.State.Backend)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("state:\n  path: ~/colors/current\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "colors", "current"), cfg.State.Path)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))
	require.NoError(t, LoadEnvFile(""))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("WALLSLAPPER_TEST_FROM_ENV=/from/env.sqlite\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("WALLSLAPPER_TEST_FROM_ENV") })

	require.NoError(t, LoadEnvFile(path))
	cfg, err := Parse([]byte("database:\n  path: ${WALLSLAPPER_TEST_FROM_ENV}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/from/env.sqlite", cfg.Database.Path)
}
