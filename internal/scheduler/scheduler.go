// Package scheduler follows the configured color schedule, requesting a
// transition whenever the active entry changes.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/wallslapper/internal/color"
	"github.com/dokzlo13/wallslapper/internal/eventbus"
	"github.com/dokzlo13/wallslapper/internal/schedule"
)

// Publisher accepts transition requests.
type Publisher interface {
	Publish(event eventbus.Event) bool
}

// Scheduler polls the resolver and publishes a transition request when the
// resolved color differs from the last one it published.
type Scheduler struct {
	mu       sync.Mutex
	schedule schedule.Schedule
	last     *color.Color

	resolver     *schedule.Resolver
	bus          Publisher
	pollInterval time.Duration
	transition   time.Duration

	reschedule chan struct{}
}

// New creates a scheduler.
func New(
	sched schedule.Schedule,
	resolver *schedule.Resolver,
	bus Publisher,
	pollInterval, transition time.Duration,
) *Scheduler {
	if pollInterval <= 0 {
		pollInterval = time.Minute
	}
	return &Scheduler{
		schedule:     sched,
		resolver:     resolver,
		bus:          bus,
		pollInterval: pollInterval,
		transition:   transition,
		reschedule:   make(chan struct{}, 1),
	}
}

// SetSchedule replaces the schedule and forces re-evaluation.
func (s *Scheduler) SetSchedule(sched schedule.Schedule) {
	s.mu.Lock()
	s.schedule = sched
	s.last = nil
	s.mu.Unlock()
	s.notifyReschedule()
}

// Resync forgets the last published color so the next tick publishes again.
// It does not wake the run loop; the retry happens on the next poll.
func (s *Scheduler) Resync() {
	s.mu.Lock()
	s.last = nil
	s.mu.Unlock()
}

// notifyReschedule signals the run loop to recalculate
func (s *Scheduler) notifyReschedule() {
	select {
	case s.reschedule <- struct{}{}:
	default:
	}
}

// Tick resolves the schedule once and publishes if the color changed.
// It returns true when a request was queued.
func (s *Scheduler) Tick(source string) bool {
	s.mu.Lock()
	sched := s.schedule
	last := s.last
	s.mu.Unlock()

	c, ok := s.resolver.Resolve(sched)
	if !ok {
		log.Debug().Msg("No scheduled color active yet")
		return false
	}
	if last != nil && last.Equal(c) {
		return false
	}

	log.Info().
		Str("color", c.String()).
		Dur("duration", s.transition).
		Str("source", source).
		Msg("Scheduled color changed")

	queued := s.bus.Publish(eventbus.Event{
		Type:     eventbus.EventTypeTransition,
		Color:    c,
		Duration: s.transition,
		Source:   source,
	})
	if queued {
		s.mu.Lock()
		s.last = &c
		s.mu.Unlock()
	}
	return queued
}

// Run publishes the currently active color, then keeps following the schedule
// until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	log.Info().Msg("Scheduler started")

	s.Tick("boot")

	for {
		sleepDuration := s.nextWake(s.resolver.Now())

		log.Debug().
			Dur("sleep_duration", sleepDuration).
			Msg("Scheduler sleeping")

		timer := time.NewTimer(sleepDuration)

		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info().Msg("Scheduler stopping")
			return nil

		case <-s.reschedule:
			timer.Stop()
			log.Debug().Msg("Schedule changed, recomputing")
			s.Tick("reschedule")

		case <-timer.C:
			s.Tick("scheduler")
		}
	}
}

// nextWake returns the poll interval, shortened to hit the next entry on time.
func (s *Scheduler) nextWake(now time.Time) time.Duration {
	s.mu.Lock()
	sched := s.schedule
	s.mu.Unlock()

	wait := s.pollInterval
	if next, ok := sched.Next(schedule.Of(now)); ok {
		if until := next.At.On(now, now.Location()).Sub(now); until < wait {
			wait = until
		}
	}
	if wait < 0 {
		wait = 0
	}
	return wait
}

// Format returns the schedule table for today.
func (s *Scheduler) Format() string {
	s.mu.Lock()
	sched := s.schedule
	s.mu.Unlock()
	return schedule.Format(sched, s.resolver.Now())
}
