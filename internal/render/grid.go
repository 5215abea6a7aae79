package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/idate-tech/luminous/internal/game"
	"github.com/idate-tech/luminous/internal/layout"
)

// GridPitch is the spacing of the kinetic background grid in pixels.
const GridPitch = 80

// DrawGrid draws the background grid in clr, shifted by (offX, offY)
// pixels and wrapped so it always covers dst.
func DrawGrid(dst *ebiten.Image, offX, offY float64, clr color.Color) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	x0 := math.Mod(offX, GridPitch)
	if x0 < 0 {
		x0 += GridPitch
	}
	y0 := math.Mod(offY, GridPitch)
	if y0 < 0 {
		y0 += GridPitch
	}
	for x := x0; x < w; x += GridPitch {
		vector.StrokeLine(dst, float32(x), 0, float32(x), float32(h), 1, clr, false)
	}
	for y := y0; y < h; y += GridPitch {
		vector.StrokeLine(dst, 0, float32(y), float32(w), float32(y), 1, clr, false)
	}
}

// drawGlow approximates a heavily blurred accent disc with stacked
// translucent circles.
func drawGlow(dst *ebiten.Image, cx, cy, radius float64, clr color.NRGBA, strength float64) {
	const rings = 10
	for i := 0; i < rings; i++ {
		r := radius * (1 - float64(i)/rings)
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r), Fade(clr, strength/rings), true)
	}
}

// drawNodes draws the pulsing peripheral nodes of one scene over the whole
// scene box.
func drawNodes(dst *ebiten.Image, b *game.Backdrop, scene int, clr color.NRGBA) {
	bounds := dst.Bounds()
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	b.Each(scene, func(n game.Node) {
		x, y := n.Spot.X*w, n.Spot.Y*h
		a := 0.6 * b.Brightness(n)
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(n.Pulse.Size*3), Fade(clr, a*0.15), true)
		vector.DrawFilledCircle(dst, float32(x), float32(y), float32(n.Pulse.Size/2+0.5), Fade(clr, a), true)
	})
}

// drawBrackets draws the four L-shaped corner marks.
func drawBrackets(dst *ebiten.Image, rs [4]layout.Rect, clr color.Color) {
	for i, r := range rs {
		x0, y0, x1, y1 := float32(r.X), float32(r.Y), float32(r.X+r.W), float32(r.Y+r.H)
		// Corner point and the two arms leaving it.
		cx, cy := x0, y0
		if i == 1 || i == 3 {
			cx = x1
		}
		if i >= 2 {
			cy = y1
		}
		ax := x1
		if cx == x1 {
			ax = x0
		}
		ay := y1
		if cy == y1 {
			ay = y0
		}
		vector.StrokeLine(dst, cx, cy, ax, cy, 1, clr, false)
		vector.StrokeLine(dst, cx, cy, cx, ay, 1, clr, false)
	}
}
