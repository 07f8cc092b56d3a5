// Package clock provides time sources for the guild
package clock

import (
	"sync"
	"time"

	"github.com/trebuchet-org/minion/internal/domain/models"
)

// SystemClock reads wall-clock time shifted by the world's time-travel offset
type SystemClock struct {
	world *models.WorldState
	now   func() time.Time
}

// NewSystemClock creates a clock bound to world's offset
func NewSystemClock(world *models.WorldState) *SystemClock {
	return &SystemClock{world: world, now: time.Now}
}

// Now returns the shifted current time, truncated to whole seconds like a block timestamp
func (c *SystemClock) Now() time.Time {
	return c.now().Add(c.world.ClockOffset).Truncate(time.Second).UTC()
}

// Advance moves the world's clock forward
func (c *SystemClock) Advance(d time.Duration) {
	if d > 0 {
		c.world.ClockOffset += d
	}
}

// Manual is a clock that only moves when told to
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual creates a manual clock starting at start
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the manual clock forward
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d > 0 {
		m.now = m.now.Add(d)
	}
}
