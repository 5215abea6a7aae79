package game

import (
	"math"

	"github.com/idate-tech/luminous/internal/world"
)

// Reference camera tuning (60 ticks per second).
const (
	DefaultPositionDamping = 0.08 // fraction of remaining distance closed per tick
	DefaultMouseDamping    = 0.06
	DefaultParallaxGain    = 1.2 // pointer offset -> viewport percent
	DefaultTiltGain        = 0.3 // pointer offset -> degrees
	DefaultGridFactor      = 0.3 // background grid moves slower than the scene layer
	DefaultReferenceTPS    = 60
)

// CameraParams are the named tuning constants of the camera integrator.
type CameraParams struct {
	PositionDamping float64
	MouseDamping    float64
	ParallaxGain    float64
	TiltGain        float64
	GridFactor      float64

	// Normalize scales the damping by elapsed time so convergence speed no
	// longer depends on the tick rate. Off by default.
	Normalize    bool
	ReferenceTPS float64
}

// DefaultCameraParams returns the reference tuning.
func DefaultCameraParams() CameraParams {
	return CameraParams{
		PositionDamping: DefaultPositionDamping,
		MouseDamping:    DefaultMouseDamping,
		ParallaxGain:    DefaultParallaxGain,
		TiltGain:        DefaultTiltGain,
		GridFactor:      DefaultGridFactor,
		ReferenceTPS:    DefaultReferenceTPS,
	}
}

// sanitized replaces damping factors outside (0,1] with the defaults.
func (p CameraParams) sanitized() CameraParams {
	if !(p.PositionDamping > 0 && p.PositionDamping <= 1) {
		p.PositionDamping = DefaultPositionDamping
	}
	if !(p.MouseDamping > 0 && p.MouseDamping <= 1) {
		p.MouseDamping = DefaultMouseDamping
	}
	if p.ReferenceTPS <= 0 {
		p.ReferenceTPS = DefaultReferenceTPS
	}
	return p
}

// Transform is the composed visual transform for one frame.
type Transform struct {
	Offset world.Vec2 // scene layer translation, viewport percent
	RotX   float64    // degrees
	RotY   float64    // degrees
	Grid   world.Vec2 // background grid translation, viewport percent
}

// Camera is the smoothed 2D camera plus the mouse-parallax offset.
type Camera struct {
	Params CameraParams

	Target       world.Vec2
	Current      world.Vec2
	MouseTarget  world.Vec2
	MouseCurrent world.Vec2
}

// NewCamera creates a camera resting at pos.
func NewCamera(params CameraParams, pos world.Vec2) *Camera {
	return &Camera{Params: params.sanitized(), Target: pos, Current: pos}
}

// SetTarget sets the position the camera approaches.
func (c *Camera) SetTarget(p world.Vec2) { c.Target = p }

// Snap moves the camera to p without animating (initial mount).
func (c *Camera) Snap(p world.Vec2) {
	c.Target = p
	c.Current = p
}

// SetPointer updates the parallax target from a pointer position inside a
// w x h viewport. Degenerate viewports are ignored.
func (c *Camera) SetPointer(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	c.MouseTarget = world.Vec2{
		X: clampUnit(x/w*2 - 1),
		Y: clampUnit(y/h*2 - 1),
	}
}

// Tick advances both integrators by one step. dt is the elapsed time in
// seconds and is only consulted when Params.Normalize is set.
func (c *Camera) Tick(dt float64) {
	kp := c.factor(c.Params.PositionDamping, dt)
	km := c.factor(c.Params.MouseDamping, dt)
	c.Current = c.Current.Add(c.Target.Sub(c.Current).Scale(kp))
	c.MouseCurrent = c.MouseCurrent.Add(c.MouseTarget.Sub(c.MouseCurrent).Scale(km))
}

func (c *Camera) factor(d, dt float64) float64 {
	if !c.Params.Normalize || dt <= 0 {
		return d
	}
	k := 1 - math.Pow(1-d, dt*c.Params.ReferenceTPS)
	if k > 1 {
		return 1
	}
	return k
}

// Transform composes the current visual transform.
func (c *Camera) Transform() Transform {
	off := c.Current.Scale(-1).Add(c.MouseCurrent.Scale(c.Params.ParallaxGain))
	return Transform{
		Offset: off,
		RotX:   c.MouseCurrent.Y * c.Params.TiltGain,
		RotY:   -c.MouseCurrent.X * c.Params.TiltGain,
		Grid:   off.Scale(c.Params.GridFactor),
	}
}

// Settled reports whether the camera is within eps of its target.
func (c *Camera) Settled(eps float64) bool {
	return c.Target.Sub(c.Current).Len() < eps
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
