package lua

import (
	"github.com/dokzlo13/wallslapper/internal/schedule"
	"github.com/dokzlo13/wallslapper/internal/transition"
)

// RuntimeDeps groups all dependencies needed by the Lua runtime.
type RuntimeDeps struct {
	Engine   *transition.Engine
	Palettes transition.PaletteSource
	Schedule schedule.Schedule
	Resolver *schedule.Resolver
}
