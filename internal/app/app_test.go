package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dokzlo13/wallslapper/internal/color"
	"github.com/dokzlo13/wallslapper/internal/config"
	"github.com/dokzlo13/wallslapper/internal/ledger"
	"github.com/dokzlo13/wallslapper/internal/transition"
)

type countingSetter struct {
	mu    sync.Mutex
	paths []string
}

func (s *countingSetter) SetWallpaper(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
	return nil
}

func (s *countingSetter) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func testConfig(t *testing.T, backend, extra string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	src := fmt.Sprintf(`
state:
  backend: %s
  path: %s
database:
  path: %s
render:
  dir: %s
  size: 8
timezone: UTC
palettes:
  - name: duo
    colors: ["#000000", "#FFFFFF"]
%s`, backend, filepath.Join(dir, "current"), filepath.Join(dir, "db.sqlite"), dir, extra)

	cfg, err := config.Parse([]byte(src))
	require.NoError(t, err)
	return cfg
}

func noSleep() CoreOption {
	return WithEngineOptions(transition.WithSleeper(func(time.Duration) {}))
}

func TestNewCore_Backends(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			setter := &countingSetter{}
			core, err := NewCore(testConfig(t, backend, ""), "cli", WithSetter(setter), noSleep())
			require.NoError(t, err)
			defer core.Close()

			_, ok := core.Engine.Current()
			assert.False(t, ok)

			require.NoError(t, core.Engine.TransitionToColor(mustColor(t, "#102030"), 0))
			c, ok := core.Engine.Current()
			require.True(t, ok)
			assert.Equal(t, "#102030", c.String())
			assert.Equal(t, 1, setter.count())

			require.NoError(t, core.ClearState())
			_, ok = core.Engine.Current()
			assert.False(t, ok)
		})
	}
}

func TestNewCore_RecordsLedger(t *testing.T) {
	core, err := NewCore(testConfig(t, "file", ""), "cli", WithSetter(&countingSetter{}), noSleep())
	require.NoError(t, err)
	defer core.Close()
	require.NotNil(t, core.Ledger)

	require.NoError(t, core.Engine.TransitionToColor(mustColor(t, "#000000"), 0))
	require.NoError(t, core.Engine.TransitionToColor(mustColor(t, "#FFFFFF"), time.Second))

	entries, err := core.Ledger.Recent(10)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, ledger.EventTransitionCompleted, entries[0].EventType)
	assert.Equal(t, "cli", entries[0].Source)
	assert.Equal(t, "#FFFFFF", entries[0].EndColor)
}

func TestNewCore_LedgerDisabled(t *testing.T) {
	core, err := NewCore(testConfig(t, "file", "ledger:\n  enabled: false\n"), "cli", WithSetter(&countingSetter{}))
	require.NoError(t, err)
	defer core.Close()

	assert.Nil(t, core.DB)
	assert.Nil(t, core.Ledger)
}

func TestNewCore_LedgerOpenFailureIsNotFatal(t *testing.T) {
	cfg := testConfig(t, "file", "")
	cfg.Database.Path = filepath.Join(t.TempDir(), "missing", "db.sqlite")

	setter := &countingSetter{}
	core, err := NewCore(cfg, "cli", WithSetter(setter), noSleep())
	require.NoError(t, err)
	defer core.Close()

	assert.Nil(t, core.DB)
	assert.Nil(t, core.Ledger)

	require.NoError(t, core.Engine.TransitionToColor(mustColor(t, "#445566"), 0))
	c, ok := core.Engine.Current()
	require.True(t, ok)
	assert.Equal(t, "#445566", c.String())
	assert.Equal(t, 1, setter.count())
}

func TestNewCore_SQLiteBackendOpenFailureIsFatal(t *testing.T) {
	cfg := testConfig(t, "sqlite", "")
	cfg.Database.Path = filepath.Join(t.TempDir(), "missing", "db.sqlite")

	_, err := NewCore(cfg, "cli", WithSetter(&countingSetter{}))
	assert.Error(t, err)
}

func TestApp_DaemonFollowsSchedule(t *testing.T) {
	cfg := testConfig(t, "file", `
schedule:
  "08:00": "#FF0000"
  "12:00": "#00FF00"
daemon:
  transition: 1s
`)
	setter := &countingSetter{}
	clock := fixedClock(time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC))

	a, err := New(cfg, WithSetter(setter), WithClock(clock), noSleep())
	require.NoError(t, err)

	require.NoError(t, a.Start(context.Background()))
	defer a.Stop()

	engine := a.Services().Core.Engine
	require.Eventually(t, func() bool {
		c, ok := engine.Current()
		return ok && c.String() == "#00FF00"
	}, 2*time.Second, 10*time.Millisecond)

	// No previous color, so the transition is applied instantly.
	assert.Equal(t, 1, setter.count())
}

func TestApp_ReloadReplacesSchedule(t *testing.T) {
	cfg := testConfig(t, "file", `
schedule:
  "08:00": "#FF0000"
  "12:00": "#00FF00"
`)
	clock := fixedClock(time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC))

	a, err := New(cfg, WithSetter(&countingSetter{}), WithClock(clock), noSleep())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, a.Start(ctx))
	defer a.Stop()

	engine := a.Services().Core.Engine
	currentIs := func(want string) func() bool {
		return func() bool {
			c, ok := engine.Current()
			return ok && c.String() == want
		}
	}
	require.Eventually(t, currentIs("#00FF00"), 2*time.Second, 10*time.Millisecond)

	broken := make(chan os.Signal, 1)
	go a.reloadOn(ctx, broken, func() (*config.Config, error) {
		return nil, errors.New("broken config")
	})
	broken <- syscall.SIGHUP

	reloaded := testConfig(t, "file", "schedule:\n  \"09:00\": \"#0000FF\"\n")
	signals := make(chan os.Signal, 1)
	go a.reloadOn(ctx, signals, func() (*config.Config, error) { return reloaded, nil })
	signals <- syscall.SIGHUP

	require.Eventually(t, currentIs("#0000FF"), 2*time.Second, 10*time.Millisecond)
}

func TestHealthHandler(t *testing.T) {
	core, err := NewCore(testConfig(t, "file", ""), "cli", WithSetter(&countingSetter{}))
	require.NoError(t, err)
	defer core.Close()

	h := NewHealthService(core.Config(), core.Engine).handler()

	get := func(path string) map[string]any {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body
	}

	assert.Equal(t, "healthy", get("/health")["status"])
	assert.Equal(t, "ready", get("/ready")["status"])
	assert.Nil(t, get("/current")["color"])

	require.NoError(t, core.Engine.TransitionToColor(mustColor(t, "#ABCDEF"), 0))
	assert.Equal(t, "#ABCDEF", get("/current")["color"])
}

func TestLuaService_NoScript(t *testing.T) {
	core, err := NewCore(testConfig(t, "file", ""), "script", WithSetter(&countingSetter{}))
	require.NoError(t, err)
	defer core.Close()

	svc := NewLuaService(core)
	defer svc.Close()
	assert.ErrorIs(t, svc.Run(context.Background(), ""), ErrNoScript)
}

func mustColor(t *testing.T, s string) color.Color {
	t.Helper()
	c, err := color.Parse(s)
	require.NoError(t, err)
	return c
}
