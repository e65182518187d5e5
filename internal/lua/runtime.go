// Package lua runs user scripts that drive the wallpaper.
package lua

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/dokzlo13/wallslapper/internal/lua/modules"
)

// Runtime owns a Lua VM with the log and wallpaper modules preloaded.
// An LState is not safe for concurrent use; scripts run on the calling goroutine.
type Runtime struct {
	L    *lua.LState
	deps RuntimeDeps
}

// NewRuntime creates a new Lua runtime
func NewRuntime(deps RuntimeDeps) *Runtime {
	r := &Runtime{
		L:    lua.NewState(),
		deps: deps,
	}
	r.registerModules()
	return r
}

// registerModules registers all Lua modules
func (r *Runtime) registerModules() {
	logModule := modules.NewLogModule()
	r.L.PreloadModule("log", logModule.Loader)

	wallpaperModule := modules.NewWallpaperModule(
		r.deps.Engine,
		r.deps.Palettes,
		r.deps.Schedule,
		r.deps.Resolver,
	)
	r.L.PreloadModule("wallpaper", wallpaperModule.Loader)
}

// RunFile executes a script file to completion
func (r *Runtime) RunFile(ctx context.Context, path string) error {
	log.Info().Str("path", path).Msg("Running Lua script")

	r.L.SetContext(ctx)
	if err := r.L.DoFile(path); err != nil {
		return fmt.Errorf("failed to execute Lua script: %w", err)
	}

	log.Info().Str("path", path).Msg("Lua script finished")
	return nil
}

// RunString executes a script from source
func (r *Runtime) RunString(ctx context.Context, src string) error {
	r.L.SetContext(ctx)
	if err := r.L.DoString(src); err != nil {
		return fmt.Errorf("failed to execute Lua script: %w", err)
	}
	return nil
}

// Close closes the Lua state
func (r *Runtime) Close() {
	r.L.Close()
}
