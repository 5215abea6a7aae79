// Package render draws a game.View with ebiten.
package render

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/idate-tech/luminous/internal/game"
	"github.com/idate-tech/luminous/internal/layout"
	"github.com/idate-tech/luminous/internal/world"
)

// minVisibleAlpha is the fade level below which a scene is skipped.
const minVisibleAlpha = 0.004

// Renderer draws every visible scene of a View into an offscreen layer and
// composites it with the camera transform.
type Renderer struct {
	Fonts   *Fonts
	Palette Palette
	ShowFPS bool

	qr     *ebiten.Image
	layer  *ebiten.Image
	scenes []*ebiten.Image
}

// NewRenderer loads fonts and prepares the per-scene layers for reg.
func NewRenderer(reg *world.Registry) (*Renderer, error) {
	fonts, err := LoadFonts()
	if err != nil {
		return nil, err
	}
	r := &Renderer{
		Fonts:   fonts,
		Palette: NewPalette(reg),
		scenes:  make([]*ebiten.Image, reg.Len()),
	}
	if reg.Contact != "" {
		qr, err := NewQRImage("mailto:" + reg.Contact)
		if err != nil {
			log.Printf("[!] QR code disabled: %v", err)
		} else {
			r.qr = qr
		}
	}
	return r, nil
}

// Frame lays out scene i of v for a w x h viewport. Only the current scene
// carries the open detail.
func (r *Renderer) Frame(v *game.View, i, w, h int, class layout.DeviceClass) layout.Frame {
	p := layout.Params{
		Scene:   v.Registry.Scene(i),
		Index:   i,
		Count:   v.Registry.Len(),
		Width:   w,
		Height:  h,
		Class:   class,
		Measure: r.Fonts.Measure,
	}
	if i == v.Nav().Current() {
		p.Detail = v.Nav().Detail()
	}
	return layout.Compute(p)
}

// SceneOffset returns the screen translation of scene i under the current
// camera transform.
func SceneOffset(v *game.View, i, w, h int) (float64, float64) {
	tr := v.Camera().Transform()
	pos := v.Registry.Scene(i).Pos()
	return (pos.X + tr.Offset.X) / 100 * float64(w), (pos.Y + tr.Offset.Y) / 100 * float64(h)
}

// sceneZoom is the scale applied to a scene at fade level alpha.
func sceneZoom(alpha float64) float64 { return 0.85 + 0.15*alpha }

// tiltGeoM skews the scene layer about the viewport center. A 2D skew
// stands in for the small 3D rotation.
func tiltGeoM(tr game.Transform, w, h int) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-float64(w)/2, -float64(h)/2)
	g.Skew(tr.RotY*math.Pi/180, tr.RotX*math.Pi/180)
	g.Translate(float64(w)/2, float64(h)/2)
	return g
}

// ToScene maps a screen point into the current scene's layout space so it
// can be hit-tested against its Frame. It undoes the tilt, then the camera
// offset and zoom.
func ToScene(v *game.View, w, h int, x, y float64) (float64, float64) {
	tilt := tiltGeoM(v.Camera().Transform(), w, h)
	if tilt.IsInvertible() {
		tilt.Invert()
		x, y = tilt.Apply(x, y)
	}
	cur := v.Nav().Current()
	dx, dy := SceneOffset(v, cur, w, h)
	z := sceneZoom(v.SceneAlpha(cur))
	cx, cy := float64(w)/2, float64(h)/2
	return (x-dx-cx)/z + cx, (y-dy-cy)/z + cy
}

// ensure returns img if it matches w x h, or a fresh image otherwise.
func ensure(img *ebiten.Image, w, h int) *ebiten.Image {
	if img != nil {
		b := img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return img
		}
		img.Deallocate()
	}
	return ebiten.NewImage(w, h)
}

// Draw renders one frame. hover is the element under the pointer in the
// current scene, used for highlight states.
func (r *Renderer) Draw(screen *ebiten.Image, v *game.View, class layout.DeviceClass, hover layout.Target) {
	b := screen.Bounds()
	w, h := b.Dx(), b.Dy()
	cur := v.Nav().Current()
	accent := r.Palette.Accent(cur)
	tr := v.Camera().Transform()

	screen.Fill(ColorBackground)
	DrawGrid(screen, tr.Grid.X/100*float64(w), tr.Grid.Y/100*float64(h), Fade(accent, 0.2))

	r.layer = ensure(r.layer, w, h)
	r.layer.Clear()
	for i := range r.scenes {
		alpha := v.SceneAlpha(i)
		if alpha < minVisibleAlpha {
			continue
		}
		r.scenes[i] = ensure(r.scenes[i], w, h)
		img := r.scenes[i]
		img.Clear()

		f := r.Frame(v, i, w, h, class)
		sceneHover := layout.Target{}
		if i == cur {
			sceneHover = hover
		}
		r.drawScene(img, v, i, &f, sceneHover)

		dx, dy := SceneOffset(v, i, w, h)
		z := sceneZoom(alpha)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
		op.GeoM.Scale(z, z)
		op.GeoM.Translate(float64(w)/2+dx, float64(h)/2+dy)
		op.ColorScale.ScaleAlpha(float32(alpha))
		r.layer.DrawImage(img, op)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM = tiltGeoM(tr, w, h)
	screen.DrawImage(r.layer, op)

	f := r.Frame(v, cur, w, h, class)
	r.drawChrome(screen, v, &f, hover)
}

func (r *Renderer) drawScene(dst *ebiten.Image, v *game.View, i int, f *layout.Frame, hover layout.Target) {
	sc := v.Registry.Scene(i)
	accent := r.Palette.Accent(i)
	w, h := f.Screen.W, f.Screen.H

	drawGlow(dst, w/2, h/2, math.Min(math.Max(w, h)*0.9, 750), accent, 0.4*(0.5+0.5*v.SceneAlpha(i)))
	drawNodes(dst, v.Backdrop(), i, accent)

	if f.Detail {
		r.drawDetail(dst, v.Nav().Detail(), f, accent, hover)
		return
	}
	drawBrackets(dst, f.Brackets, Fade(ColorInk, 0.4))

	r.drawBlock(dst, f.Title, true, ColorInk)
	r.drawBlock(dst, f.Subtitle, true, accent)
	r.drawBlock(dst, f.Description, false, Fade(ColorInk, 0.6))

	for k, rect := range f.Items {
		r.drawItem(dst, sc.Items[k], rect, accent, hover == layout.Target{Kind: layout.Item, Index: k})
	}
	for k, rect := range f.Team {
		r.drawMember(dst, sc.Team[k], rect, accent, f.Scale)
	}
	if sc.Contact {
		r.drawForm(dst, v, f, accent, hover)
	}
	r.drawButtons(dst, sc, f, accent, hover)
}

// drawBlock draws a wrapped text block.
func (r *Renderer) drawBlock(dst *ebiten.Image, b layout.TextBlock, bold bool, clr color.Color) {
	if len(b.Lines) == 0 || b.Size <= 0 {
		return
	}
	face := r.Fonts.Face(b.Size, bold)
	for i, line := range b.Lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(b.X, b.Y+float64(i)*b.LineHeight+(b.LineHeight-b.Size)/2)
		op.ColorScale.ScaleWithColor(clr)
		if !b.Left {
			op.PrimaryAlign = text.AlignCenter
		}
		text.Draw(dst, line, face, op)
	}
}

// drawLabel draws a single line of text at (x, y) with the given alignment.
func (r *Renderer) drawLabel(dst *ebiten.Image, s string, x, y, size float64, bold bool, align text.Align, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, s, r.Fonts.Face(size, bold), op)
}

// panel draws a translucent box with a hairline border.
func panel(dst *ebiten.Image, rc layout.Rect, fill, border float64) {
	vector.DrawFilledRect(dst, float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), Fade(ColorInk, fill), true)
	vector.StrokeRect(dst, float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), 1, Fade(ColorInk, border), true)
}

func (r *Renderer) drawItem(dst *ebiten.Image, it world.Item, rc layout.Rect, accent color.NRGBA, hot bool) {
	box := math.Min(rc.W, rc.H*0.8)
	lift := 0.0
	if hot {
		lift = rc.H * 0.04
	}
	boxRect := layout.Rect{X: rc.X + (rc.W-box)/2, Y: rc.Y - lift, W: box, H: box}
	fill, iconAlpha, labelAlpha := 0.03, 0.5, 0.3
	if hot {
		fill, iconAlpha, labelAlpha = 0.07, 1, 1
	}
	panel(dst, boxRect, fill, 0.08)
	cx, cy := boxRect.Center()
	drawIcon(dst, it.Icon, cx, cy, box*0.3, Fade(accent, iconAlpha))
	r.drawLabel(dst, strings.ToUpper(it.Label), rc.X+rc.W/2, rc.Y+box+(rc.H-box)/2, rc.H*0.065, true, text.AlignCenter, Fade(ColorInk, labelAlpha))
}

func (r *Renderer) drawMember(dst *ebiten.Image, m world.Member, rc layout.Rect, accent color.NRGBA, s float64) {
	panel(dst, rc, 0.02, 0.08)
	cx := rc.X + rc.W/2
	r.drawLabel(dst, m.Name, cx, rc.Y+rc.H*0.38, 20*s, true, text.AlignCenter, ColorInk)
	r.drawLabel(dst, strings.ToUpper(m.Role), cx, rc.Y+rc.H*0.6, 10*s, true, text.AlignCenter, accent)
	if m.Social != "" {
		r.drawLabel(dst, m.Social, cx, rc.Y+rc.H*0.8, 10*s, false, text.AlignCenter, Fade(ColorInk, 0.4))
	}
}

func (r *Renderer) drawButtons(dst *ebiten.Image, sc *world.Scene, f *layout.Frame, accent color.NRGBA, hover layout.Target) {
	if !f.Back.Empty() {
		hot := hover.Kind == layout.Back
		cx, cy := f.Back.Center()
		rad := f.Back.W / 2
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(rad), Fade(ColorInk, 0.03), true)
		border := 0.1
		if hot {
			border = 0.3
		}
		vector.StrokeCircle(dst, float32(cx), float32(cy), float32(rad), 1, Fade(ColorInk, border), true)
		arrow := 0.3
		if hot {
			arrow = 1
		}
		drawArrow(dst, cx, cy, rad*0.6, -1, Fade(ColorInk, arrow))
	}
	if !f.Forward.Empty() {
		hot := hover.Kind == layout.Forward
		border, label := 0.1, 0.3
		if hot {
			border, label = 0.4, 1
		}
		panel(dst, f.Forward, 0.03, border)
		_, cy := f.Forward.Center()
		pad := f.Forward.H * 0.6
		r.drawLabel(dst, strings.ToUpper(sc.ForwardLabel()), f.Forward.X+pad, cy, f.Forward.H*0.18, true, text.AlignStart, Fade(ColorInk, label))
		shift := 0.0
		if hot {
			shift = f.Forward.H * 0.15
		}
		drawArrow(dst, f.Forward.X+f.Forward.W-pad+shift, cy, f.Forward.H*0.3, 1, accent)
	}
}

func (r *Renderer) drawForm(dst *ebiten.Image, v *game.View, f *layout.Frame, accent color.NRGBA, hover layout.Target) {
	form := v.Form()
	s := f.Scale
	size := 14 * s

	if r.qr != nil && !f.QR.Empty() {
		qb := r.qr.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(f.QR.W/float64(qb.Dx()), f.QR.H/float64(qb.Dy()))
		op.GeoM.Translate(f.QR.X, f.QR.Y)
		op.ColorScale.ScaleAlpha(0.8)
		dst.DrawImage(r.qr, op)
		r.drawLabel(dst, strings.ToUpper(v.Registry.Contact), f.QR.X+f.QR.W/2, f.QR.Y+f.QR.H+14*s, 9*s, true, text.AlignCenter, Fade(ColorInk, 0.4))
	}

	if form.Status == game.FormSuccess {
		top := f.Fields[0]
		r.drawLabel(dst, "TRANSMISSION COMPLETE", f.Submit.X+f.Submit.W/2, top.Y+top.H, 24*s, true, text.AlignCenter, accent)
		r.drawLabel(dst, "We will be in touch.", f.Submit.X+f.Submit.W/2, top.Y+top.H+36*s, size, false, text.AlignCenter, Fade(ColorInk, 0.6))
		hot := hover.Kind == layout.Submit
		border := 0.1
		if hot {
			border = 0.3
		}
		panel(dst, f.Submit, 0.05, border)
		cx, cy := f.Submit.Center()
		r.drawLabel(dst, form.SubmitLabel(v.Now(), 0), cx, cy, 11*s, true, text.AlignCenter, Fade(ColorInk, 0.7))
		return
	}

	blink := math.Mod(v.Backdrop().Time, 1) < 0.5
	for k, rc := range f.Fields {
		focused := form.Focus == k
		border := 0.2
		if focused {
			border = 0.4
		} else if hover == (layout.Target{Kind: layout.Field, Index: k}) {
			border = 0.3
		}
		panel(dst, rc, 0.03, border)
		if focused {
			vector.StrokeRect(dst, float32(rc.X), float32(rc.Y), float32(rc.W), float32(rc.H), 1, Fade(accent, 0.6), true)
		}

		pad := 24 * s
		value := form.Fields[k]
		lines := fieldLines(value, k == game.FieldMessage)
		clr := ColorInk
		if value == "" {
			lines = []string{game.FieldNames[k]}
			clr = Fade(ColorInk, 0.5)
		}
		// Keep the tail of long input visible.
		lineH := size * 1.5
		maxLines := max(1, int((rc.H-pad)/lineH))
		if len(lines) > maxLines {
			lines = lines[len(lines)-maxLines:]
		}
		y := rc.Y + pad/2 + lineH/2
		if k != game.FieldMessage {
			y = rc.Y + rc.H/2
		}
		for n, line := range lines {
			line = r.clipTail(line, rc.W-2*pad, size)
			r.drawLabel(dst, line, rc.X+pad, y+float64(n)*lineH, size, false, text.AlignStart, clr)
		}
		if focused && blink && form.Editable() {
			last := ""
			if value != "" {
				last = r.clipTail(lines[len(lines)-1], rc.W-2*pad, size)
			}
			cx := rc.X + pad + r.Fonts.Measure(last, size)*0.95 + 2
			cy := y + float64(len(lines)-1)*lineH
			vector.StrokeLine(dst, float32(cx), float32(cy-size/2), float32(cx), float32(cy+size/2), 1, ColorInk, false)
		}
	}

	hot := hover.Kind == layout.Submit
	border, label := 0.1, 0.5
	if hot {
		border, label = 0.25, 1
	}
	panel(dst, f.Submit, 0.05, border)
	cx, cy := f.Submit.Center()
	caption := form.SubmitLabel(v.Now(), v.Backdrop().Time)
	r.drawLabel(dst, caption, cx-10*s, cy, 11*s, true, text.AlignCenter, Fade(ColorInk, label))
	drawArrow(dst, cx+r.Fonts.Measure(caption, 11*s)/2+14*s, cy, 12*s, 1, accent)
}

// fieldLines splits a field value for display.
func fieldLines(value string, multiline bool) []string {
	if !multiline {
		return []string{value}
	}
	return strings.Split(value, "\n")
}

// clipTail drops leading runes until s fits maxW.
func (r *Renderer) clipTail(s string, maxW, size float64) string {
	rs := []rune(s)
	for len(rs) > 0 && r.Fonts.Measure(string(rs), size) > maxW {
		rs = rs[1:]
	}
	return string(rs)
}

func (r *Renderer) drawDetail(dst *ebiten.Image, d *world.DetailPayload, f *layout.Frame, accent color.NRGBA, hover layout.Target) {
	dst.Fill(Fade(ColorBackground, 0.95))
	s := f.Scale

	hot := hover.Kind == layout.DetailBack
	fill := 0.03
	if hot {
		fill = 0.1
	}
	panel(dst, f.DetailBack, fill, 0.1)
	cx, cy := f.DetailBack.Center()
	drawArrow(dst, f.DetailBack.X+f.DetailBack.H*0.55, cy, 8*s, -1, ColorInk)
	r.drawLabel(dst, "BACK", cx+6*s, cy, 9*s, true, text.AlignCenter, ColorInk)

	r.drawBlock(dst, f.DetailTitle, true, ColorInk)
	bar := f.DetailBar
	vector.DrawFilledRect(dst, float32(bar.X), float32(bar.Y), float32(bar.W), float32(bar.H), accent, true)
	r.drawBlock(dst, f.DetailDesc, true, Fade(ColorInk, 0.9))
	r.drawBlock(dst, f.DetailSubDesc, false, Fade(ColorInk, 0.6))

	for k, rc := range f.Points {
		panel(dst, rc, 0.02, 0.08)
		_, py := rc.Center()
		dotX := rc.X + rc.H*0.5
		vector.DrawFilledCircle(dst, float32(dotX), float32(py), float32(4*s), accent, true)
		r.drawLabel(dst, strings.ToUpper(d.Points[k]), dotX+rc.H*0.4, py, rc.H*0.2, true, text.AlignStart, Fade(ColorInk, 0.6))
	}
}

// drawChrome draws the fixed overlay: brand, nav list and activity line.
func (r *Renderer) drawChrome(dst *ebiten.Image, v *game.View, f *layout.Frame, hover layout.Target) {
	cur := v.Nav().Current()
	accent := r.Palette.Accent(cur)

	r.drawLabel(dst, strings.ToUpper(v.Registry.Name), f.Brand.X, f.Brand.Y+f.Brand.H/2, 16, true, text.AlignStart, Fade(ColorInk, 0.8))

	for i, rc := range f.Nav {
		isCur := i == cur
		barH := 4.0
		barClr := Fade(ColorInk, 0.2)
		if isCur {
			barH, barClr = 20, accent
		}
		_, cy := rc.Center()
		right := rc.X + rc.W
		vector.DrawFilledRect(dst, float32(right-2), float32(cy-barH/2), 2, float32(barH), barClr, false)

		label := v.Registry.Scene(i).NavLabel
		switch {
		case isCur:
			r.drawLabel(dst, label, right-16, cy, 9, true, text.AlignEnd, accent)
		case hover == layout.Target{Kind: layout.NavEntry, Index: i}:
			r.drawLabel(dst, label, right-16, cy, 9, true, text.AlignEnd, Fade(ColorInk, 0.4))
		}
	}

	if msg, ok := v.Log().Last(); ok {
		r.drawLabel(dst, msg.Text, f.Activity.X, f.Activity.Y+f.Activity.H/2, 11, false, text.AlignStart, r.Palette.MessageColor(msg.Priority, cur))
	}

	if r.ShowFPS {
		fps := fmt.Sprintf("FPS: %.0f  TPS: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS())
		r.drawLabel(dst, fps, f.Screen.W-16, f.Screen.H-16, 10, false, text.AlignEnd, Fade(ColorInk, 0.3))
	}
}
