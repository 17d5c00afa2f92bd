// Package tracker is the client-side time-tracking core: an idle-aware
// article clock, an advisory cross-tab lock, and a sync client that flushes
// accrued seconds to the server. The server's daily cap is the real
// enforcement boundary; everything here is best-effort measurement.
package tracker

import (
	"sync"
	"time"
)

// DefaultIdleWindow is how long the clock waits without user input before
// pausing. One consistent window is used for both reading and reflection.
const DefaultIdleWindow = 120 * time.Second

// ArticleClock measures active engagement seconds for one article session.
// All mutable state lives on the instance so concurrent sessions (tests,
// multiple embedded widgets) do not interfere.
type ArticleClock struct {
	mu sync.Mutex

	idleWindow time.Duration
	target     int // completion threshold in seconds; 0 means no target

	running      bool
	blocked      bool // cross-tab lock lost
	limitReached bool // server reported the daily cap
	completed    bool

	lastInput    time.Time
	totalSeconds int
	unsynced     int

	onComplete func()
	now        func() time.Time
}

// NewArticleClock creates a stopped clock. onComplete fires exactly once
// when accumulated seconds reach target; pass nil for open-ended sessions.
func NewArticleClock(target int, onComplete func()) *ArticleClock {
	return &ArticleClock{
		idleWindow: DefaultIdleWindow,
		target:     target,
		onComplete: onComplete,
		now:        time.Now,
	}
}

// Start begins accruing time, counting the toggle itself as input.
func (c *ArticleClock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = true
	c.lastInput = c.now()
}

// Stop pauses accrual. Accumulated and unsynced seconds are kept.
func (c *ArticleClock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = false
}

// Input records a qualifying user event (pointer, key, scroll, touch).
// Resumes an idle clock immediately without losing accrued seconds.
func (c *ArticleClock) Input() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastInput = c.now()
}

// SetBlocked is driven by the cross-tab lock: a blocked clock accrues
// nothing until the owning tab releases.
func (c *ArticleClock) SetBlocked(blocked bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocked = blocked
}

// StopForDay halts the clock after a daily-limit response. It stays halted
// until the next calendar day (a new session).
func (c *ArticleClock) StopForDay() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.limitReached = true
	c.running = false
}

// Tick advances the clock by one second of wall time. It accrues only
// while running, not idle, not blocked, and under the daily limit.
func (c *ArticleClock) Tick() {
	c.mu.Lock()

	if !c.running || c.blocked || c.limitReached {
		c.mu.Unlock()
		return
	}

	if c.now().Sub(c.lastInput) >= c.idleWindow {
		// Idle: stop incrementing until the next qualifying input.
		c.mu.Unlock()
		return
	}

	c.totalSeconds++
	c.unsynced++

	var fire func()
	if c.target > 0 && c.totalSeconds >= c.target && !c.completed {
		c.completed = true
		fire = c.onComplete
	}
	c.mu.Unlock()

	if fire != nil {
		fire()
	}
}

// Idle reports whether the idle window has elapsed since the last input.
func (c *ArticleClock) Idle() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now().Sub(c.lastInput) >= c.idleWindow
}

// Running reports whether the clock is toggled on.
func (c *ArticleClock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Completed reports whether the target has been reached.
func (c *ArticleClock) Completed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.completed
}

// LimitReached reports whether the daily cap has halted the clock.
func (c *ArticleClock) LimitReached() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limitReached
}

// Seconds returns the total accrued seconds this session.
func (c *ArticleClock) Seconds() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalSeconds
}

// Unsynced returns the seconds accrued since the last successful flush.
func (c *ArticleClock) Unsynced() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unsynced
}

// TakeUnsynced claims the unsynced seconds for a flush attempt, resetting
// the counter. A failed flush must Restore them.
func (c *ArticleClock) TakeUnsynced() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.unsynced
	c.unsynced = 0
	return n
}

// Restore re-adds seconds after a failed flush so no time is lost.
func (c *ArticleClock) Restore(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unsynced += n
}
