package game

import (
	"testing"
	"time"

	"github.com/idate-tech/luminous/assets"
	"github.com/idate-tech/luminous/internal/world"
)

// manualClock is a Clock that only moves when told to.
type manualClock struct {
	t time.Time
}

func newManualClock() *manualClock {
	return &manualClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time          { return c.t }
func (c *manualClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func testRegistry(t *testing.T) *world.Registry {
	t.Helper()
	data, err := assets.Scenes.ReadFile("scenes/idate.yaml")
	if err != nil {
		t.Fatalf("read scenes: %v", err)
	}
	reg, err := world.LoadRegistry(data)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	return reg
}
