package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawIcon draws the line icon named id centered on (cx, cy) inside a box
// of side sz. Unknown ids draw a plain ring.
func drawIcon(dst *ebiten.Image, id string, cx, cy, sz float64, clr color.Color) {
	s := sz / 2
	w := float32(math.Max(1.5, sz/16))
	line := func(x0, y0, x1, y1 float64) {
		vector.StrokeLine(dst, float32(cx+x0*s), float32(cy+y0*s), float32(cx+x1*s), float32(cy+y1*s), w, clr, true)
	}
	ring := func(x, y, r float64) {
		vector.StrokeCircle(dst, float32(cx+x*s), float32(cy+y*s), float32(r*s), w, clr, true)
	}
	dot := func(x, y, r float64) {
		vector.DrawFilledCircle(dst, float32(cx+x*s), float32(cy+y*s), float32(r*s), clr, true)
	}

	switch id {
	case "globe":
		ring(0, 0, 0.9)
		line(-0.9, 0, 0.9, 0)
		line(0, -0.9, 0, 0.9)
		ring(0, 0, 0.45)
	case "line-chart":
		line(-0.9, -0.9, -0.9, 0.9)
		line(-0.9, 0.9, 0.9, 0.9)
		line(-0.6, 0.4, -0.2, -0.1)
		line(-0.2, -0.1, 0.2, 0.2)
		line(0.2, 0.2, 0.8, -0.6)
	case "cpu":
		vector.StrokeRect(dst, float32(cx-0.55*s), float32(cy-0.55*s), float32(1.1*s), float32(1.1*s), w, clr, true)
		vector.StrokeRect(dst, float32(cx-0.25*s), float32(cy-0.25*s), float32(0.5*s), float32(0.5*s), w, clr, true)
		for _, k := range []float64{-0.3, 0, 0.3} {
			line(k, -0.55, k, -0.9)
			line(k, 0.55, k, 0.9)
			line(-0.55, k, -0.9, k)
			line(0.55, k, 0.9, k)
		}
	case "palette":
		ring(0, 0, 0.9)
		dot(-0.4, -0.3, 0.12)
		dot(0.05, -0.5, 0.12)
		dot(0.45, -0.2, 0.12)
		dot(-0.45, 0.2, 0.12)
	case "share":
		dot(0.6, -0.6, 0.2)
		dot(-0.6, 0, 0.2)
		dot(0.6, 0.6, 0.2)
		line(-0.6, 0, 0.6, -0.6)
		line(-0.6, 0, 0.6, 0.6)
	case "rocket":
		line(0, -0.9, 0.35, -0.3)
		line(0, -0.9, -0.35, -0.3)
		line(0.35, -0.3, 0.35, 0.5)
		line(-0.35, -0.3, -0.35, 0.5)
		line(-0.35, 0.5, 0.35, 0.5)
		line(-0.35, 0.2, -0.7, 0.7)
		line(0.35, 0.2, 0.7, 0.7)
		ring(0, -0.2, 0.12)
	case "zap":
		line(0.2, -0.9, -0.5, 0.1)
		line(-0.5, 0.1, 0.1, 0.1)
		line(0.1, 0.1, -0.2, 0.9)
		line(-0.2, 0.9, 0.5, -0.1)
		line(0.5, -0.1, -0.1, -0.1)
		line(-0.1, -0.1, 0.2, -0.9)
	case "network":
		dot(0, -0.7, 0.15)
		dot(-0.7, 0.6, 0.15)
		dot(0.7, 0.6, 0.15)
		dot(0, 0.1, 0.15)
		line(0, -0.7, 0, 0.1)
		line(0, 0.1, -0.7, 0.6)
		line(0, 0.1, 0.7, 0.6)
		line(-0.7, 0.6, 0.7, 0.6)
	default:
		ring(0, 0, 0.7)
	}
}

// drawArrow draws a horizontal arrow of length l pointing right (dir > 0)
// or left, centered on (cx, cy).
func drawArrow(dst *ebiten.Image, cx, cy, l float64, dir float64, clr color.Color) {
	w := float32(math.Max(1.5, l/10))
	h := l / 2
	tip := cx + dir*h
	vector.StrokeLine(dst, float32(cx-dir*h), float32(cy), float32(tip), float32(cy), w, clr, true)
	vector.StrokeLine(dst, float32(tip), float32(cy), float32(tip-dir*l*0.35), float32(cy-l*0.35), w, clr, true)
	vector.StrokeLine(dst, float32(tip), float32(cy), float32(tip-dir*l*0.35), float32(cy+l*0.35), w, clr, true)
}
