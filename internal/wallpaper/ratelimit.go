package wallpaper

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimited caps how often the wrapped Setter is invoked.
type RateLimited struct {
	next    Setter
	limiter *rate.Limiter
}

// NewRateLimited wraps next with a limiter of rps calls per second.
// A non-positive rps returns next unchanged.
func NewRateLimited(next Setter, rps float64) Setter {
	if rps <= 0 {
		return next
	}
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// SetWallpaper waits for a limiter token, then delegates.
func (r *RateLimited) SetWallpaper(path string) error {
	if err := r.limiter.Wait(context.Background()); err != nil {
		return err
	}
	return r.next.SetWallpaper(path)
}
