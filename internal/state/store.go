// Package state persists the color currently believed to be on screen.
package state

import (
	"errors"

	"github.com/dokzlo13/wallslapper/internal/color"
)

// ErrNotFound is returned by Read when no color has been persisted yet.
var ErrNotFound = errors.New("no persisted color")

// Store holds a single color that survives restarts.
type Store interface {
	// Read returns the persisted color, or ErrNotFound if none exists.
	Read() (color.Color, error)

	// Write replaces the persisted color.
	Write(c color.Color) error
}

// Clearer is implemented by stores that can forget the persisted color.
type Clearer interface {
	Clear() error
}

// Memory is an in-process Store, used by tests and dry runs.
type Memory struct {
	c   color.Color
	set bool
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Read() (color.Color, error) {
	if !m.set {
		return color.Color{}, ErrNotFound
	}
	return m.c, nil
}

func (m *Memory) Write(c color.Color) error {
	m.c = c
	m.set = true
	return nil
}

func (m *Memory) Clear() error {
	m.set = false
	return nil
}
