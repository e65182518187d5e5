// Package transition drives the wallpaper from its current color to a target
// color, either instantly or in timed steps, and runs palette sequences.
package transition

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/wallslapper/internal/color"
	"github.com/dokzlo13/wallslapper/internal/ledger"
	"github.com/dokzlo13/wallslapper/internal/state"
)

// Renderer produces an image file filled with a single color.
type Renderer interface {
	CreateSolidColorImage(c color.Color) (string, error)
}

// Setter applies an image file as the wallpaper.
type Setter interface {
	SetWallpaper(path string) error
}

// Recorder receives transition history. Failures are logged, never returned.
type Recorder interface {
	Append(e ledger.Entry) error
}

// Sleeper suspends between steps.
type Sleeper func(time.Duration)

// StepFunc is called after each step has been applied.
type StepFunc func(step, steps int, c color.Color)

// Engine moves the wallpaper between colors. It assumes at most one
// transition is in flight; callers must serialize concurrent requests.
type Engine struct {
	renderer Renderer
	setter   Setter
	store    state.Store
	sleep    Sleeper
	recorder Recorder
	onStep   StepFunc
	source   string
}

// Option configures an Engine.
type Option func(*Engine)

// WithSleeper replaces time.Sleep, e.g. for tests.
func WithSleeper(s Sleeper) Option {
	return func(e *Engine) { e.sleep = s }
}

// WithRecorder records transitions in a ledger.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithStepHook registers a per-step callback.
func WithStepHook(fn StepFunc) Option {
	return func(e *Engine) { e.onStep = fn }
}

// WithSource tags ledger entries with the caller ("cli", "daemon", "script").
func WithSource(source string) Option {
	return func(e *Engine) { e.source = source }
}

// NewEngine creates an engine.
func NewEngine(renderer Renderer, setter Setter, store state.Store, opts ...Option) *Engine {
	e := &Engine{
		renderer: renderer,
		setter:   setter,
		store:    store,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Current returns the persisted color, if any. Read errors count as absent.
func (e *Engine) Current() (color.Color, bool) {
	c, err := e.store.Read()
	switch {
	case errors.Is(err, state.ErrNotFound):
		log.Warn().Msg("No persisted color found")
		return color.Color{}, false
	case err != nil:
		log.Error().Err(err).Msg("Error reading current color")
		return color.Color{}, false
	}
	return c, true
}

// TransitionToColor moves the wallpaper to end over duration.
//
// Without a known start color the transition degrades to an instant one.
// When start equals end nothing is touched. Render and set failures abort
// and are returned; the persisted color then keeps its previous value.
// Persisting the final color never fails the call.
func (e *Engine) TransitionToColor(end color.Color, duration time.Duration) error {
	start, ok := e.Current()
	if !ok {
		log.Info().Str("end", end.String()).Msg("No start color found, applying instantly")
		duration = 0
	}

	id := uuid.NewString()
	entry := ledger.Entry{
		TransitionID: id,
		Source:       e.source,
		EndColor:     end.String(),
		DurationMs:   duration.Milliseconds(),
	}
	if ok {
		entry.StartColor = start.String()
	}

	if ok && start.Equal(end) {
		log.Info().Str("color", end.String()).Msg("No transition needed")
		e.record(ledger.EventTransitionSkipped, entry, nil)
		return nil
	}

	if duration <= 0 {
		entry.Steps = 1
		e.record(ledger.EventTransitionStarted, entry, nil)

		log.Info().Str("end", end.String()).Msg("Instant transition")
		if err := e.apply(end); err != nil {
			e.record(ledger.EventTransitionFailed, entry, err)
			return err
		}
		e.notify(0, 1, end)
	} else {
		plan := NewPlan(start, end, duration)
		entry.Steps = plan.Steps
		e.record(ledger.EventTransitionStarted, entry, nil)

		log.Info().
			Str("start", start.String()).
			Str("end", end.String()).
			Dur("duration", duration).
			Int("steps", plan.Steps).
			Dur("interval", plan.Interval).
			Msg("Starting transition")

		if err := e.step(plan); err != nil {
			e.record(ledger.EventTransitionFailed, entry, err)
			return err
		}
	}

	e.persist(end)
	e.record(ledger.EventTransitionCompleted, entry, nil)
	log.Info().Str("color", end.String()).Msg("Transition complete")
	return nil
}

func (e *Engine) step(plan Plan) error {
	for i := 0; i < plan.Steps; i++ {
		c := plan.ColorAt(i)
		log.Debug().Int("step", i).Str("color", c.String()).Msg("Transition step")

		if err := e.apply(c); err != nil {
			return fmt.Errorf("step %d/%d: %w", i+1, plan.Steps, err)
		}
		e.notify(i, plan.Steps, c)
		e.sleep(plan.Interval)
	}
	return nil
}

func (e *Engine) apply(c color.Color) error {
	path, err := e.renderer.CreateSolidColorImage(c)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", c, err)
	}
	if err := e.setter.SetWallpaper(path); err != nil {
		return fmt.Errorf("failed to set wallpaper %s: %w", path, err)
	}
	return nil
}

func (e *Engine) persist(c color.Color) {
	if err := e.store.Write(c); err != nil {
		log.Error().Err(err).Str("color", c.String()).Msg("Error writing current color")
	}
}

func (e *Engine) notify(step, steps int, c color.Color) {
	if e.onStep != nil {
		e.onStep(step, steps, c)
	}
}

func (e *Engine) record(t ledger.EventType, entry ledger.Entry, cause error) {
	if e.recorder == nil {
		return
	}
	entry.EventType = t
	if cause != nil {
		entry.Error = cause.Error()
	}
	if err := e.recorder.Append(entry); err != nil {
		log.Warn().Err(err).Str("event", string(t)).Msg("Failed to record transition")
	}
}
