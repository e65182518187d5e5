package app

import (
	"context"
	"errors"

	luart "github.com/dokzlo13/wallslapper/internal/lua"
)

// ErrNoScript is returned when neither an argument nor the config names a script.
var ErrNoScript = errors.New("no script given and none configured")

// LuaService runs user scripts against the core engine.
// The runtime is single-threaded; run one script at a time.
type LuaService struct {
	core    *Core
	Runtime *luart.Runtime
}

// NewLuaService creates a new LuaService.
func NewLuaService(core *Core) *LuaService {
	cfg := core.Config()
	runtime := luart.NewRuntime(luart.RuntimeDeps{
		Engine:   core.Engine,
		Palettes: cfg,
		Schedule: cfg.Schedule,
		Resolver: core.Resolver,
	})

	return &LuaService{
		core:    core,
		Runtime: runtime,
	}
}

// Run executes path, or the configured script when path is empty.
func (s *LuaService) Run(ctx context.Context, path string) error {
	if path == "" {
		path = s.core.Config().Script
	}
	if path == "" {
		return ErrNoScript
	}
	return s.Runtime.RunFile(ctx, path)
}

// Close closes the Lua runtime.
func (s *LuaService) Close() {
	if s.Runtime != nil {
		s.Runtime.Close()
	}
}
