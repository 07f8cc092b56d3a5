package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/minion/internal/domain/models"
)

func TestSystemClock_Advance(t *testing.T) {
	world := models.NewWorldState()
	base := time.Date(2024, 1, 1, 12, 0, 0, 500, time.UTC)

	c := NewSystemClock(world)
	c.now = func() time.Time { return base }

	assert.Equal(t, base.Truncate(time.Second), c.Now())

	c.Advance(120 * time.Second)
	assert.Equal(t, 120*time.Second, world.ClockOffset)
	assert.Equal(t, base.Add(120*time.Second).Truncate(time.Second), c.Now())

	// Time never runs backwards
	c.Advance(-time.Hour)
	assert.Equal(t, 120*time.Second, world.ClockOffset)
}

func TestManual(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManual(start)
	assert.Equal(t, start, m.Now())

	m.Advance(time.Minute)
	assert.Equal(t, start.Add(time.Minute), m.Now())

	m.Advance(0)
	assert.Equal(t, start.Add(time.Minute), m.Now())
}
