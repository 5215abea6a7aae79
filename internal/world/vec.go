package world

import "math"

// Vec2 is a 2D vector in viewport-percent units (100 = one full viewport).
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale multiplies both components by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the Euclidean length.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
