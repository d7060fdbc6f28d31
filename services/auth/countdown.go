package auth

import (
	"math"
	"sync"
	"time"
)

// Clock abstracts wall-clock time so the countdown is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the production clock.
var SystemClock Clock = systemClock{}

// Countdown is the resend-code cooldown. It is wall-clock driven: the
// remaining seconds are derived from a deadline, so unrelated re-renders
// cannot reset it, and the value never goes negative.
type Countdown struct {
	mu       sync.Mutex
	clock    Clock
	duration time.Duration
	deadline time.Time
}

// NewCountdown creates an idle countdown of the given length.
func NewCountdown(seconds int, clock Clock) *Countdown {
	if clock == nil {
		clock = SystemClock
	}
	return &Countdown{clock: clock, duration: time.Duration(seconds) * time.Second}
}

// Start arms (or re-arms) the countdown from its full duration.
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deadline = c.clock.Now().Add(c.duration)
}

// Remaining returns the displayed whole seconds left, floored at zero.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deadline.IsZero() {
		return 0
	}
	left := c.deadline.Sub(c.clock.Now()).Seconds()
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left))
}

// Active reports whether the cooldown is still running; the resend
// control stays disabled while it is.
func (c *Countdown) Active() bool {
	return c.Remaining() > 0
}
