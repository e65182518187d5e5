package modules

import (
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/wallslapper/internal/color"
	"github.com/dokzlo13/wallslapper/internal/schedule"
	"github.com/dokzlo13/wallslapper/internal/transition"
)

// WallpaperModule exposes the transition engine to Lua.
//
// ERROR HANDLING CONVENTION:
//   - Invalid arguments (bad color, negative duration): L.RaiseError
//   - Runtime failures (transition/pinwheel): return (ok, error_string)
type WallpaperModule struct {
	engine   *transition.Engine
	palettes transition.PaletteSource
	schedule schedule.Schedule
	resolver *schedule.Resolver
	sleep    func(time.Duration)
}

// NewWallpaperModule creates a new wallpaper module
func NewWallpaperModule(
	engine *transition.Engine,
	palettes transition.PaletteSource,
	sched schedule.Schedule,
	resolver *schedule.Resolver,
) *WallpaperModule {
	return &WallpaperModule{
		engine:   engine,
		palettes: palettes,
		schedule: sched,
		resolver: resolver,
		sleep:    time.Sleep,
	}
}

// Loader is the module loader for Lua
func (m *WallpaperModule) Loader(L *lua.LState) int {
	mod := L.NewTable()

	L.SetField(mod, "transition", L.NewFunction(m.transition))
	L.SetField(mod, "set", L.NewFunction(m.set))
	L.SetField(mod, "pinwheel", L.NewFunction(m.pinwheel))
	L.SetField(mod, "current", L.NewFunction(m.current))
	L.SetField(mod, "resolve", L.NewFunction(m.resolve))
	L.SetField(mod, "palette", L.NewFunction(m.palette))
	L.SetField(mod, "interpolate", L.NewFunction(m.interpolate))
	L.SetField(mod, "now", L.NewFunction(m.now))
	L.SetField(mod, "sleep", L.NewFunction(m.sleepMs))

	L.Push(mod)
	return 1
}

// transition(color, duration_ms) -> (ok, err)
func (m *WallpaperModule) transition(L *lua.LState) int {
	c := checkColor(L, 1)
	d := checkDuration(L, 2)
	return pushResult(L, m.engine.TransitionToColor(c, d))
}

// set(color) -> (ok, err)
func (m *WallpaperModule) set(L *lua.LState) int {
	c := checkColor(L, 1)
	return pushResult(L, m.engine.TransitionToColor(c, 0))
}

// pinwheel(palette_name, duration_ms_per_color) -> (ok, err)
func (m *WallpaperModule) pinwheel(L *lua.LState) int {
	name := L.CheckString(1)
	d := checkDuration(L, 2)
	return pushResult(L, m.engine.RunPinwheel(m.palettes, name, d))
}

// current() -> "#RRGGBB" | nil
func (m *WallpaperModule) current(L *lua.LState) int {
	c, ok := m.engine.Current()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(c.String()))
	return 1
}

// resolve() -> "#RRGGBB" | nil
func (m *WallpaperModule) resolve(L *lua.LState) int {
	c, ok := m.resolver.Resolve(m.schedule)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(c.String()))
	return 1
}

// palette(name) -> {"#RRGGBB", ...} | nil
func (m *WallpaperModule) palette(L *lua.LState) int {
	colors, ok := m.palettes.Palette(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	tbl := L.NewTable()
	for i, c := range colors {
		tbl.RawSetInt(i+1, lua.LString(c.String()))
	}
	L.Push(tbl)
	return 1
}

// interpolate(start, end, factor) -> "#RRGGBB"
func (m *WallpaperModule) interpolate(L *lua.LState) int {
	start := checkColor(L, 1)
	end := checkColor(L, 2)
	factor := float64(L.CheckNumber(3))
	L.Push(lua.LString(color.Interpolate(start, end, factor).String()))
	return 1
}

// now() -> "HH:MM" in the configured timezone
func (m *WallpaperModule) now(L *lua.LState) int {
	L.Push(lua.LString(schedule.Of(m.resolver.Now()).String()))
	return 1
}

// sleep(ms)
func (m *WallpaperModule) sleepMs(L *lua.LState) int {
	m.sleep(checkDuration(L, 1))
	return 0
}

func checkColor(L *lua.LState, n int) color.Color {
	c, err := color.Parse(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return c
}

func checkDuration(L *lua.LState, n int) time.Duration {
	ms := L.OptInt64(n, 0)
	if ms < 0 {
		L.ArgError(n, "duration must not be negative")
	}
	return time.Duration(ms) * time.Millisecond
}

func pushResult(L *lua.LState, err error) int {
	if err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}
