// Package schedule maps times of day to colors and resolves which one is active.
package schedule

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dokzlo13/wallslapper/internal/color"
)

// Entry is one "HH:MM" -> color mapping.
type Entry struct {
	Key   string // Key as written in the configuration
	At    TimeOfDay
	Color color.Color
}

// Schedule keeps entries in declaration order. Resolution compares times,
// not positions; order only decides ties between equal times.
type Schedule []Entry

// NewEntry parses key and value into an Entry.
func NewEntry(key, value string) (Entry, error) {
	at, err := ParseTimeOfDay(key)
	if err != nil {
		return Entry{}, err
	}
	c, err := color.Parse(value)
	if err != nil {
		return Entry{}, fmt.Errorf("schedule %q: %w", key, err)
	}
	return Entry{Key: key, At: at, Color: c}, nil
}

// UnmarshalYAML decodes a mapping while preserving key order.
// Malformed keys or colors fail the whole decode.
func (s *Schedule) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: schedule must be a mapping of HH:MM to color", value.Line)
	}

	out := make(Schedule, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]

		var key, val string
		if err := k.Decode(&key); err != nil {
			return err
		}
		if err := v.Decode(&val); err != nil {
			return err
		}

		entry, err := NewEntry(key, val)
		if err != nil {
			return fmt.Errorf("line %d: %w", k.Line, err)
		}
		out = append(out, entry)
	}

	*s = out
	return nil
}

// Active returns the entry with the greatest time at or before at.
// On equal times the later-declared entry wins. There is no wrap-around
// to the previous day: before the first entry nothing is active.
func (s Schedule) Active(at TimeOfDay) (Entry, bool) {
	now := at.Minutes()

	var (
		best  Entry
		found bool
	)
	for _, e := range s {
		m := e.At.Minutes()
		if m > now {
			continue
		}
		if !found || m >= best.At.Minutes() {
			best = e
			found = true
		}
	}
	return best, found
}

// Next returns the first entry strictly after at, if any is left today.
func (s Schedule) Next(at TimeOfDay) (Entry, bool) {
	now := at.Minutes()

	var (
		best  Entry
		found bool
	)
	for _, e := range s {
		m := e.At.Minutes()
		if m <= now {
			continue
		}
		if !found || m < best.At.Minutes() {
			best = e
			found = true
		}
	}
	return best, found
}

// Clock is the source of the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Resolver picks the active scheduled color for the current time.
type Resolver struct {
	clock Clock
	tz    *time.Location
}

// NewResolver creates a resolver. A nil clock uses the system clock and a
// nil location uses time.Local.
func NewResolver(clock Clock, tz *time.Location) *Resolver {
	if clock == nil {
		clock = SystemClock{}
	}
	if tz == nil {
		tz = time.Local
	}
	return &Resolver{clock: clock, tz: tz}
}

// Now returns the current time in the resolver's location.
func (r *Resolver) Now() time.Time {
	return r.clock.Now().In(r.tz)
}

// Resolve returns the color active now, or false if the current time is
// earlier than every entry.
func (r *Resolver) Resolve(s Schedule) (color.Color, bool) {
	e, ok := s.Active(Of(r.Now()))
	if !ok {
		return color.Color{}, false
	}
	return e.Color, true
}
