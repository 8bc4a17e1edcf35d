package anim

import "time"

const maxStepsPerAdvance = 30

// Clock splits variable frame deltas into fixed simulation steps.
type Clock struct {
	step time.Duration
	acc  time.Duration
}

// NewClock returns a clock stepping at fps simulation steps per second.
func NewClock(fps int) *Clock {
	if fps <= 0 {
		fps = 60
	}
	return &Clock{step: time.Second / time.Duration(fps)}
}

// Step is the fixed simulation step.
func (c *Clock) Step() time.Duration { return c.step }

// Advance adds dt and returns how many whole steps are now due. A long stall
// is clamped so a single frame cannot run an unbounded catch-up.
func (c *Clock) Advance(dt time.Duration) int {
	if dt <= 0 {
		return 0
	}
	c.acc += dt
	n := int(c.acc / c.step)
	c.acc -= time.Duration(n) * c.step
	if n > maxStepsPerAdvance {
		n = maxStepsPerAdvance
		c.acc = 0
	}
	return n
}
