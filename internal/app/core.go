package app

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/wallslapper/internal/config"
	"github.com/dokzlo13/wallslapper/internal/db"
	"github.com/dokzlo13/wallslapper/internal/ledger"
	"github.com/dokzlo13/wallslapper/internal/render"
	"github.com/dokzlo13/wallslapper/internal/schedule"
	"github.com/dokzlo13/wallslapper/internal/state"
	"github.com/dokzlo13/wallslapper/internal/transition"
	"github.com/dokzlo13/wallslapper/internal/wallpaper"
)

// Core holds what every command needs to drive the wallpaper.
type Core struct {
	cfg *config.Config

	DB       *db.DB // nil unless the ledger or the sqlite backend is enabled and opened
	Ledger   *ledger.Ledger
	Store    state.Store
	Renderer *render.PNGRenderer
	Setter   wallpaper.Setter
	Engine   *transition.Engine
	Resolver *schedule.Resolver
}

// CoreOption overrides parts of the Core, mainly for tests.
type CoreOption func(*coreOptions)

type coreOptions struct {
	setter     wallpaper.Setter
	clock      schedule.Clock
	engineOpts []transition.Option
}

// WithSetter replaces the configured wallpaper setter.
func WithSetter(s wallpaper.Setter) CoreOption {
	return func(o *coreOptions) { o.setter = s }
}

// WithClock replaces the wall clock used by the resolver.
func WithClock(c schedule.Clock) CoreOption {
	return func(o *coreOptions) { o.clock = c }
}

// WithEngineOptions passes extra options to the transition engine.
func WithEngineOptions(opts ...transition.Option) CoreOption {
	return func(o *coreOptions) { o.engineOpts = append(o.engineOpts, opts...) }
}

// NewCore wires the store, renderer, setter and engine from configuration.
// source tags ledger entries ("cli", "daemon", "script").
func NewCore(cfg *config.Config, source string, opts ...CoreOption) (*Core, error) {
	o := coreOptions{clock: schedule.SystemClock{}}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Core{cfg: cfg}

	if cfg.Ledger.IsEnabled() || cfg.State.Backend == "sqlite" {
		database, err := db.Open(cfg.Database.Path)
		switch {
		case err == nil:
			c.DB = database
		case cfg.State.Backend == "sqlite":
			return nil, err
		default:
			// Without a database the engine runs without a recorder.
			log.Warn().Err(err).Str("path", cfg.Database.Path).Msg("Ledger database unavailable, history will not be recorded")
		}
	}

	if cfg.Ledger.IsEnabled() && c.DB != nil {
		c.Ledger = ledger.New(c.DB.DB)
	}

	switch cfg.State.Backend {
	case "sqlite":
		c.Store = state.NewSQLiteStore(c.DB.DB, cfg.State.Slot)
	default:
		c.Store = state.NewFileStore(cfg.State.Path)
	}

	c.Renderer = render.NewPNGRenderer(cfg.Render.Dir, cfg.Render.Size)

	setter := o.setter
	if setter == nil {
		var err error
		setter, err = wallpaper.New(cfg.Wallpaper.Commands, cfg.Wallpaper.Timeout.Duration())
		if err != nil {
			c.Close()
			return nil, fmt.Errorf("failed to create wallpaper setter: %w", err)
		}
	}
	c.Setter = wallpaper.NewRateLimited(setter, cfg.Wallpaper.MaxRPS)

	loc, err := cfg.Location()
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Resolver = schedule.NewResolver(o.clock, loc)

	engineOpts := []transition.Option{transition.WithSource(source)}
	if c.Ledger != nil {
		engineOpts = append(engineOpts, transition.WithRecorder(c.Ledger))
	}
	engineOpts = append(engineOpts, o.engineOpts...)
	c.Engine = transition.NewEngine(c.Renderer, c.Setter, c.Store, engineOpts...)

	log.Debug().
		Str("backend", cfg.State.Backend).
		Bool("ledger", c.Ledger != nil).
		Str("render_dir", c.Renderer.Dir()).
		Msg("Core initialized")

	return c, nil
}

// Config returns the configuration the core was built from.
func (c *Core) Config() *config.Config {
	return c.cfg
}

// ClearState forgets the persisted color, if the backend supports it.
func (c *Core) ClearState() error {
	clearer, ok := c.Store.(state.Clearer)
	if !ok {
		return fmt.Errorf("state backend %q cannot be cleared", c.cfg.State.Backend)
	}
	return clearer.Clear()
}

// Close releases the database, if one was opened.
func (c *Core) Close() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
		c.DB = nil
	}
}
