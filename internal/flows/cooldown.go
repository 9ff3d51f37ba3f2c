package flows

import "time"

// Cooldown is the advisory resend throttle: a client-side countdown, not a
// lock. The backend applies its own limits independently.
type Cooldown struct {
	window time.Duration
	last   time.Time
	now    func() time.Time
}

func NewCooldown(window time.Duration) *Cooldown {
	if window <= 0 {
		window = time.Minute
	}
	return &Cooldown{window: window, now: time.Now}
}

// Start restarts the countdown.
func (c *Cooldown) Start() {
	c.last = c.now()
}

// Ready reports whether the countdown has elapsed.
func (c *Cooldown) Ready() bool {
	return c.Remaining() == 0
}

// Remaining returns how long until the next attempt is allowed, rounded up
// to whole seconds for display.
func (c *Cooldown) Remaining() time.Duration {
	if c.last.IsZero() {
		return 0
	}
	left := c.window - c.now().Sub(c.last)
	if left <= 0 {
		return 0
	}
	return left.Round(time.Second)
}
