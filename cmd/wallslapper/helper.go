package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"

	"github.com/dokzlo13/wallslapper/internal/app"
	"github.com/dokzlo13/wallslapper/internal/color"
	"github.com/dokzlo13/wallslapper/internal/transition"
)

// progress shows a spinner on stderr while a transition runs.
type progress struct {
	s *spinner.Spinner
}

func newProgress(quiet bool, label string) *progress {
	if quiet {
		return &progress{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + label
	s.Start()
	return &progress{s: s}
}

// hook reports each step in the spinner suffix.
func (p *progress) hook(label string) transition.Option {
	return transition.WithStepHook(func(step, steps int, c color.Color) {
		if p.s == nil {
			return
		}
		p.s.Lock()
		p.s.Suffix = fmt.Sprintf(" %s %s (%d/%d)", label, c, step+1, steps)
		p.s.Unlock()
	})
}

func (p *progress) stop() {
	if p.s != nil {
		p.s.Stop()
	}
}

// openCore builds the engine for a one-shot command.
func openCore(opts *rootOptions, extra ...transition.Option) (*app.Core, error) {
	return app.NewCore(opts.cfg, "cli", app.WithEngineOptions(extra...))
}

func parseColorArg(s string) (color.Color, error) {
	c, err := color.Parse(s)
	if err != nil {
		return color.Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

func checkDuration(d time.Duration) error {
	if d < 0 {
		return errors.New("duration must not be negative")
	}
	return nil
}
