package game

import (
	"math"
	"time"

	"github.com/idate-tech/luminous/internal/world"
)

// Input gating defaults.
const (
	DefaultWheelThreshold = 30.0 // |deltaY| below this is noise
	DefaultSwipeThreshold = 50.0
	DefaultCooldown       = 1000 * time.Millisecond
)

// Key identifies a keyboard key the navigator reacts to.
type Key uint8

const (
	KeyNone Key = iota
	KeyEscape
)

// Clock returns the current time. Tests substitute a manual clock.
type Clock func() time.Time

// NavParams tunes input gating.
type NavParams struct {
	WheelThreshold float64
	SwipeThreshold float64
	Cooldown       time.Duration
	TouchPrimary   bool // wheel input is ignored on touch-primary devices
}

// DefaultNavParams returns the reference gating.
func DefaultNavParams() NavParams {
	return NavParams{
		WheelThreshold: DefaultWheelThreshold,
		SwipeThreshold: DefaultSwipeThreshold,
		Cooldown:       DefaultCooldown,
	}
}

// Navigator serializes every scene-change and detail intent into a single
// consistent state. It holds the current index, the open detail and the
// wheel cooldown.
type Navigator struct {
	Params NavParams

	// SceneChanged is called after every successful GoToScene.
	SceneChanged func(prev, next int)

	reg           *world.Registry
	clock         Clock
	current       int
	detail        *world.DetailPayload
	cooldownUntil time.Time
	touching      bool
	touchStartY   float64
}

// NewNavigator creates a navigator positioned on scene 0.
func NewNavigator(reg *world.Registry, params NavParams, clock Clock) *Navigator {
	if clock == nil {
		clock = time.Now
	}
	return &Navigator{Params: params, reg: reg, clock: clock}
}

// Current returns the current scene index.
func (n *Navigator) Current() int { return n.current }

// Scene returns the current scene.
func (n *Navigator) Scene() *world.Scene { return n.reg.Scene(n.current) }

// Detail returns the open detail payload, or nil.
func (n *Navigator) Detail() *world.DetailPayload { return n.detail }

// CooldownActive reports whether implicit (wheel/touch) navigation is suppressed.
func (n *Navigator) CooldownActive() bool {
	return n.clock().Before(n.cooldownUntil)
}

// GoToScene switches to index. Without force the call is ignored while the
// cooldown is active. Out-of-range indices are a no-op.
func (n *Navigator) GoToScene(index int, force bool) bool {
	if !force && n.CooldownActive() {
		return false
	}
	if index < 0 || index >= n.reg.Len() {
		return false
	}
	prev := n.current
	n.current = index
	n.detail = nil
	n.cooldownUntil = time.Time{}
	if n.SceneChanged != nil {
		n.SceneChanged(prev, index)
	}
	return true
}

// OpenDetail opens p unless a detail is already open.
func (n *Navigator) OpenDetail(p *world.DetailPayload) bool {
	if p == nil || n.detail != nil {
		return false
	}
	n.detail = p
	return true
}

// CloseDetail closes the open detail and reports whether one was open.
func (n *Navigator) CloseDetail() bool {
	if n.detail == nil {
		return false
	}
	n.detail = nil
	return true
}

// HandleWheel steps one scene per accepted wheel gesture and arms the cooldown.
func (n *Navigator) HandleWheel(deltaY float64) bool {
	if n.Params.TouchPrimary || n.CooldownActive() || n.detail != nil {
		return false
	}
	if math.Abs(deltaY) < n.Params.WheelThreshold {
		return false
	}
	moved := false
	last := n.reg.Len() - 1
	switch {
	case deltaY > 0 && n.current < last:
		moved = n.GoToScene(n.current+1, false)
	case deltaY < 0 && n.current > 0:
		moved = n.GoToScene(n.current-1, false)
	}
	n.cooldownUntil = n.clock().Add(n.Params.Cooldown)
	return moved
}

// TouchStart records the vertical start of a touch gesture.
func (n *Navigator) TouchStart(y float64) {
	n.touching = true
	n.touchStartY = y
}

// TouchEnd finishes a gesture. A downward swipe advances, an upward one retreats.
func (n *Navigator) TouchEnd(y float64) bool {
	if !n.touching {
		return false
	}
	n.touching = false
	delta := y - n.touchStartY
	if math.Abs(delta) <= n.Params.SwipeThreshold || n.detail != nil {
		return false
	}
	if delta > 0 {
		if n.current >= n.reg.Len()-1 {
			return false
		}
		return n.GoToScene(n.current+1, false)
	}
	if n.current <= 0 {
		return false
	}
	return n.GoToScene(n.current-1, false)
}

// HandleKey reacts to Escape by closing the open detail.
func (n *Navigator) HandleKey(k Key) bool {
	if k == KeyEscape {
		return n.CloseDetail()
	}
	return false
}
