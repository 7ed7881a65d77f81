package motor

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// State is the state of the Watchdog.
type State int

// States
const (
	Active State = iota
	Expired
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == Expired {
		return "expired"
	}
	return "active"
}

// Watchdog tracks the time of the last accepted command.
type Watchdog struct {
	Timeout time.Duration

	clock     clock.Clock
	lastReset time.Time
	lock      sync.Mutex
}

// NewWatchdog creates a Watchdog, the countdown starts immediately.
func NewWatchdog(timeout time.Duration, clk clock.Clock) *Watchdog {
	if clk == nil {
		clk = clock.New()
	}
	return &Watchdog{Timeout: timeout, clock: clk, lastReset: clk.Now()}
}

// Reset restarts the countdown.
func (w *Watchdog) Reset() {
	now := w.clock.Now()
	w.lock.Lock()
	w.lastReset = now
	w.lock.Unlock()
}

// LastReset returns the time of last reset.
func (w *Watchdog) LastReset() time.Time {
	w.lock.Lock()
	defer w.lock.Unlock()
	return w.lastReset
}

// IsExpired checks expiry at the specified time.
func (w *Watchdog) IsExpired(now time.Time) bool {
	return now.Sub(w.LastReset()) > w.Timeout
}

// Expired checks expiry now.
func (w *Watchdog) Expired() bool {
	return w.IsExpired(w.clock.Now())
}

// State returns the current state.
func (w *Watchdog) State() State {
	if w.Expired() {
		return Expired
	}
	return Active
}
