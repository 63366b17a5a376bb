// Package game drives rounds on the server side.
package game

import (
	"errors"
	"sync"
	"time"
)

// Clock-related errors.
var (
	ErrNilTimer        = errors.New("round timer is nil")
	ErrInvalidInterval = errors.New("tick interval must be positive")
)

// Timer is the countdown a Clock drives. session.Round implements it.
type Timer interface {
	// Tick removes one unit from the countdown and returns what is left.
	Tick() int
}

// Clock ticks a round once per interval until the round runs out of time or
// the clock is stopped.
type Clock struct {
	timer    Timer
	interval time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewClock creates a Clock for t.
func NewClock(t Timer, interval time.Duration) (*Clock, error) {
	if t == nil {
		return nil, ErrNilTimer
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	return &Clock{
		timer:    t,
		interval: interval,
		stop:     make(chan struct{}),
	}, nil
}

// Start blocks until the timer goes negative or Stop is called. onExpire runs
// only in the first case.
func (c *Clock) Start(onExpire func()) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if c.timer.Tick() < 0 {
				if onExpire != nil {
					onExpire()
				}
				return
			}
		}
	}
}

// Stop ends the clock. It is safe to call more than once.
func (c *Clock) Stop() {
	c.once.Do(func() {
		close(c.stop)
	})
}
