package transition

import (
	"time"

	"github.com/dokzlo13/wallslapper/internal/color"
)

// MinInterval is the shortest time between two rendered steps.
const MinInterval = 100 * time.Millisecond

// Plan describes one stepped transition. It is derived per request and never stored.
type Plan struct {
	Start    color.Color
	End      color.Color
	Duration time.Duration
	Steps    int
	Interval time.Duration
}

// NewPlan computes steps = max(1, floor(duration/MinInterval)) and
// interval = duration/steps.
func NewPlan(start, end color.Color, duration time.Duration) Plan {
	steps := int(duration.Milliseconds() / MinInterval.Milliseconds())
	if steps < 1 {
		steps = 1
	}

	return Plan{
		Start:    start,
		End:      end,
		Duration: duration,
		Steps:    steps,
		Interval: duration / time.Duration(steps),
	}
}

// Factor returns i/steps. The last step's factor is (steps-1)/steps, so the
// end color itself is never rendered by the stepping loop.
func (p Plan) Factor(i int) float64 {
	return float64(i) / float64(p.Steps)
}

// ColorAt returns the interpolated color for step i.
func (p Plan) ColorAt(i int) color.Color {
	return color.Interpolate(p.Start, p.End, p.Factor(i))
}
