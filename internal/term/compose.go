package term

import (
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/skip2/go-qrcode"

	"github.com/idate-tech/luminous/internal/game"
	"github.com/idate-tech/luminous/internal/layout"
	"github.com/idate-tech/luminous/internal/world"
)

// Cell geometry of the composed elements.
const (
	maxContentWidth = 96
	maxDescWidth    = 72
	tileW, tileH    = 16, 4
	cardW, cardH    = 26, 5
	formWidth       = 56
	gridCols        = 12
	gridRows        = 6
	navMinCols      = 100
)

type hit struct {
	rect   layout.Rect
	target layout.Target
}

// Composer draws a View into a CellBuffer and remembers where every
// clickable element landed.
type Composer struct {
	Buf *CellBuffer

	accents []rgb
	qr      [][]bool
	hits    []hit
}

// NewComposer prepares a composer for reg at the given terminal size.
func NewComposer(reg *world.Registry, cols, rows int) *Composer {
	c := &Composer{
		Buf:     NewCellBuffer(cols, rows, baseStyle),
		accents: accents(reg),
	}
	if reg.Contact != "" {
		q, err := qrcode.New("mailto:"+reg.Contact, qrcode.Low)
		if err != nil {
			log.Printf("[!] QR code disabled: %v", err)
		} else {
			q.DisableBorder = true
			c.qr = q.Bitmap()
		}
	}
	return c
}

func (c *Composer) accent(i int) rgb {
	if i < 0 || i >= len(c.accents) {
		return colInk
	}
	return c.accents[i]
}

// Hit returns the element at cell (x, y). Later elements sit on top.
func (c *Composer) Hit(x, y int) layout.Target {
	px, py := float64(x)+0.5, float64(y)+0.5
	for i := len(c.hits) - 1; i >= 0; i-- {
		if c.hits[i].rect.Contains(px, py) {
			return c.hits[i].target
		}
	}
	return layout.Target{}
}

// Compose redraws the whole buffer for v. hover highlights the element
// under the pointer.
func (c *Composer) Compose(v *game.View, hover layout.Target) {
	b := c.Buf
	b.Clear()
	c.hits = c.hits[:0]
	if b.Cols == 0 || b.Rows == 0 {
		return
	}

	tr := v.Camera().Transform()
	cur := v.Nav().Current()
	c.drawGrid(tr, c.accent(cur))

	// Only the dominant scene is drawn; overlapping text does not blend.
	shown := dominantScene(v)
	pos := v.Registry.Scene(shown).Pos()
	p := &painter{
		buf:    b,
		dx:     int(math.Round((pos.X + tr.Offset.X) / 100 * float64(b.Cols))),
		dy:     int(math.Round((pos.Y + tr.Offset.Y) / 100 * float64(b.Rows))),
		fade:   0.25 + 0.75*v.SceneAlpha(shown),
		accent: c.accent(shown),
	}
	if shown == cur {
		p.hits = &c.hits
		p.hover = hover
	}

	c.drawNodes(p, v, shown)
	if d := v.Nav().Detail(); d != nil && shown == cur {
		c.drawDetail(p, d)
	} else {
		c.drawScene(p, v, shown)
	}
	c.drawChrome(v, hover)
}

// dominantScene is the most visible scene.
func dominantScene(v *game.View) int {
	best, alpha := v.Nav().Current(), -1.0
	for i := 0; i < v.Registry.Len(); i++ {
		if a := v.SceneAlpha(i); a > alpha {
			best, alpha = i, a
		}
	}
	return best
}

func (c *Composer) drawGrid(tr game.Transform, accent rgb) {
	b := c.Buf
	gx := int(math.Round(tr.Grid.X / 100 * float64(b.Cols)))
	gy := int(math.Round(tr.Grid.Y / 100 * float64(b.Rows)))
	style := fg(accent, 0.2)
	for y := 0; y < b.Rows; y++ {
		if mod(y-gy, gridRows) != 0 {
			continue
		}
		for x := 0; x < b.Cols; x++ {
			if mod(x-gx, gridCols) == 0 {
				b.Set(x, y, '·', style)
			}
		}
	}
}

func mod(a, n int) int { return ((a % n) + n) % n }

func (c *Composer) drawNodes(p *painter, v *game.View, scene int) {
	bd := v.Backdrop()
	cols, rows := float64(p.buf.Cols), float64(p.buf.Rows)
	bd.Each(scene, func(n game.Node) {
		glyph := '·'
		if n.Pulse.Size >= 2 {
			glyph = '•'
		}
		x := int(n.Spot.X * cols)
		y := int(n.Spot.Y * rows)
		p.set(x, y, glyph, p.style(p.accent, 0.6*bd.Brightness(n)))
	})
}

// section is a vertically stacked block of h rows.
type section struct {
	h    int
	draw func(y int)
}

// stack centers the sections vertically between top and bottom.
func stack(top, bottom int, secs []section) {
	total := 0
	for _, s := range secs {
		total += s.h
	}
	y := top + max(0, (bottom-top-total)/2)
	for _, s := range secs {
		s.draw(y)
		y += s.h
	}
}

func gap(n int) section { return section{h: n, draw: func(int) {}} }

func cellMeasure(s string, _ float64) float64 { return float64(runewidth.StringWidth(s)) }

func wrap(s string, width int) []string {
	return layout.Wrap(s, float64(width), 1, cellMeasure)
}

// centeredLines is a section of centered text lines.
func centeredLines(p *painter, lines []string, style tcell.Style) section {
	return section{h: len(lines), draw: func(y int) {
		for i, line := range lines {
			p.text((p.buf.Cols-runewidth.StringWidth(line))/2, y+i, line, style)
		}
	}}
}

func (c *Composer) contentWidth() int {
	return max(10, min(c.Buf.Cols-4, maxContentWidth))
}

func (c *Composer) drawScene(p *painter, v *game.View, i int) {
	sc := v.Registry.Scene(i)
	w := c.contentWidth()

	title := make([]string, len(sc.Title))
	for k, line := range sc.Title {
		title[k] = strings.ToUpper(line)
	}
	secs := []section{centeredLines(p, title, p.style(colInk, 1).Bold(true))}
	if sc.Subtitle != "" {
		secs = append(secs, gap(1), centeredLines(p, wrap(sc.Subtitle, w), p.style(p.accent, 1).Bold(true)))
	}
	if len(sc.Description) > 0 {
		var desc []string
		for _, para := range sc.Description {
			desc = append(desc, wrap(para, min(w, maxDescWidth))...)
		}
		secs = append(secs, gap(1), centeredLines(p, desc, p.style(colInk, 0.6)))
	}

	switch {
	case len(sc.Items) > 0:
		secs = append(secs, gap(1), c.itemsSection(p, sc.Items, w))
	case len(sc.Team) > 0:
		secs = append(secs, gap(1), c.teamSection(p, sc.Team, w))
	case sc.Contact:
		secs = append(secs, gap(1), c.formSection(p, v, w))
	}

	back := i > 0
	fwd := !sc.IsFinal && i < v.Registry.Len()-1
	if back || fwd {
		secs = append(secs, gap(1), c.buttonsSection(p, sc, back, fwd))
	}
	stack(1, c.Buf.Rows-1, secs)
}

// grid lays n cells of cw x ch out in centered rows of at most w columns.
func grid(n, cw, ch, w, spacing int) (perRow, rows, h int) {
	perRow = max(1, min(n, (w+spacing)/(cw+spacing)))
	rows = (n + perRow - 1) / perRow
	return perRow, rows, rows*ch + (rows-1)*(spacing/2)
}

func (c *Composer) gridOrigin(perRow, cw, spacing int) int {
	return (c.Buf.Cols - (perRow*cw + (perRow-1)*spacing)) / 2
}

func (c *Composer) itemsSection(p *painter, items []world.Item, w int) section {
	const spacing = 2
	perRow, _, h := grid(len(items), tileW, tileH, w, spacing)
	return section{h: h, draw: func(y int) {
		x0 := c.gridOrigin(perRow, tileW, spacing)
		for k, it := range items {
			x := x0 + (k%perRow)*(tileW+spacing)
			ty := y + (k/perRow)*(tileH+spacing/2)
			hot := p.hover == layout.Target{Kind: layout.Item, Index: k}
			border, ink := 0.25, 0.4
			if hot {
				border, ink = 0.6, 1
			}
			p.box(x, ty, tileW, tileH, p.style(colInk, border))
			p.set(x+tileW/2, ty+1, iconGlyph(it.Icon), p.style(p.accent, ink+0.2))
			label := truncate(strings.ToUpper(it.Label), tileW-2)
			p.text(x+(tileW-runewidth.StringWidth(label))/2, ty+2, label, p.style(colInk, ink).Bold(true))
			p.hit(x, ty, tileW, tileH, layout.Target{Kind: layout.Item, Index: k})
		}
	}}
}

func (c *Composer) teamSection(p *painter, team []world.Member, w int) section {
	const spacing = 2
	perRow, _, h := grid(len(team), cardW, cardH, w, spacing)
	return section{h: h, draw: func(y int) {
		x0 := c.gridOrigin(perRow, cardW, spacing)
		for k, m := range team {
			x := x0 + (k%perRow)*(cardW+spacing)
			ty := y + (k/perRow)*(cardH+spacing/2)
			p.box(x, ty, cardW, cardH, p.style(colInk, 0.25))
			lines := []struct {
				s     string
				style tcell.Style
			}{
				{m.Name, p.style(colInk, 1).Bold(true)},
				{strings.ToUpper(m.Role), p.style(p.accent, 1)},
				{m.Social, p.style(colInk, 0.4)},
			}
			for n, l := range lines {
				s := truncate(l.s, cardW-2)
				p.text(x+(cardW-runewidth.StringWidth(s))/2, ty+1+n, s, l.style)
			}
		}
	}}
}

func (c *Composer) formSection(p *painter, v *game.View, w int) section {
	form := v.Form()
	fw := min(w, formWidth)
	qrW, qrH := len(c.qr), (len(c.qr)+1)/2
	showQR := c.qr != nil && c.Buf.Cols >= fw+qrW+8 && c.Buf.Rows >= 24
	total := fw
	if showQR {
		total += 3 + qrW
	}
	const h = 11 // fields 3 + message 5 + submit 3
	blink := math.Mod(v.Backdrop().Time, 1) < 0.5
	return section{h: max(h, qrH+1), draw: func(y int) {
		x := (c.Buf.Cols - total) / 2
		if showQR {
			qx := x + fw + 3
			c.drawQR(p, qx, y)
			label := truncate(strings.ToUpper(v.Registry.Contact), qrW)
			p.text(qx+(qrW-runewidth.StringWidth(label))/2, y+qrH, label, p.style(colInk, 0.4))
		}

		submitY := y + 8
		if form.Status == game.FormSuccess {
			msg := "TRANSMISSION COMPLETE"
			p.text(x+(fw-len(msg))/2, y+2, msg, p.style(p.accent, 1).Bold(true))
			sub := "We will be in touch."
			p.text(x+(fw-len(sub))/2, y+4, sub, p.style(colInk, 0.6))
		} else {
			half := (fw - 2) / 2
			c.drawField(p, form, game.FieldName, x, y, half, 3, blink)
			c.drawField(p, form, game.FieldEmail, x+half+2, y, fw-half-2, 3, blink)
			c.drawField(p, form, game.FieldMessage, x, y+3, fw, 5, blink)
		}

		hot := p.hover.Kind == layout.Submit
		border, ink := 0.3, 0.6
		if hot {
			border, ink = 0.6, 1
		}
		p.box(x, submitY, fw, 3, p.style(colInk, border))
		caption := form.SubmitLabel(v.Now(), v.Backdrop().Time)
		cw := runewidth.StringWidth(caption)
		cx := x + (fw-cw-2)/2
		p.text(cx, submitY+1, caption, p.style(colInk, ink).Bold(true))
		p.set(cx+cw+1, submitY+1, '▶', p.style(p.accent, 1))
		p.hit(x, submitY, fw, 3, layout.Target{Kind: layout.Submit})
	}}
}

func (c *Composer) drawField(p *painter, form *game.Form, k, x, y, w, h int, blink bool) {
	focused := form.Focus == k
	border := p.style(colInk, 0.3)
	switch {
	case focused:
		border = p.style(p.accent, 0.8)
	case p.hover == layout.Target{Kind: layout.Field, Index: k}:
		border = p.style(colInk, 0.5)
	}
	p.box(x, y, w, h, border)
	p.hit(x, y, w, h, layout.Target{Kind: layout.Field, Index: k})

	inner := w - 4
	rows := h - 2
	value := form.Fields[k]
	var lines []string
	style := p.style(colInk, 1)
	if value == "" {
		lines = []string{game.FieldNames[k]}
		style = p.style(colInk, 0.4)
	} else if k == game.FieldMessage {
		lines = strings.Split(value, "\n")
	} else {
		lines = []string{value}
	}
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	for n, line := range lines {
		line = clipTail(line, inner-1)
		lines[n] = line
		p.text(x+2, y+1+n, line, style)
	}
	if focused && blink && form.Editable() {
		last := lines[len(lines)-1]
		if value == "" {
			last = ""
		}
		p.set(x+2+runewidth.StringWidth(last), y+len(lines), '▏', p.style(colInk, 1))
	}
}

// drawQR packs two QR modules per cell with half blocks.
func (c *Composer) drawQR(p *painter, x, y int) {
	style := p.style(colInk, 0.8)
	for row := 0; row < len(c.qr); row += 2 {
		for col := range c.qr[row] {
			top := c.qr[row][col]
			bottom := row+1 < len(c.qr) && c.qr[row+1][col]
			var g rune
			switch {
			case top && bottom:
				g = '█'
			case top:
				g = '▀'
			case bottom:
				g = '▄'
			default:
				continue
			}
			p.set(x+col, y+row/2, g, style)
		}
	}
}

func (c *Composer) buttonsSection(p *painter, sc *world.Scene, back, fwd bool) section {
	label := strings.ToUpper(sc.ForwardLabel()) + "  ▶"
	fw := runewidth.StringWidth(label) + 6
	const bw = 5
	total := 0
	if back {
		total += bw
	}
	if fwd {
		total += fw
	}
	if back && fwd {
		total += 2
	}
	return section{h: 3, draw: func(y int) {
		x := (c.Buf.Cols - total) / 2
		if back {
			hot := p.hover.Kind == layout.Back
			border, ink := 0.3, 0.5
			if hot {
				border, ink = 0.6, 1
			}
			p.box(x, y, bw, 3, p.style(colInk, border))
			p.set(x+2, y+1, '◀', p.style(colInk, ink))
			p.hit(x, y, bw, 3, layout.Target{Kind: layout.Back})
			x += bw + 2
		}
		if fwd {
			hot := p.hover.Kind == layout.Forward
			border, ink := 0.3, 0.5
			if hot {
				border, ink = 0.7, 1
			}
			p.box(x, y, fw, 3, p.style(colInk, border))
			n := p.text(x+3, y+1, strings.ToUpper(sc.ForwardLabel()), p.style(colInk, ink).Bold(true))
			p.set(x+3+n+2, y+1, '▶', p.style(p.accent, 1))
			p.hit(x, y, fw, 3, layout.Target{Kind: layout.Forward})
		}
	}}
}

func (c *Composer) drawDetail(p *painter, d *world.DetailPayload) {
	w := min(c.contentWidth(), maxDescWidth)
	x := (c.Buf.Cols - w) / 2

	left := func(lines []string, style tcell.Style) section {
		return section{h: len(lines), draw: func(y int) {
			for i, line := range lines {
				p.text(x, y+i, line, style)
			}
		}}
	}

	secs := []section{{h: 3, draw: func(y int) {
		hot := p.hover.Kind == layout.DetailBack
		border := 0.3
		if hot {
			border = 0.7
		}
		p.box(x, y, 10, 3, p.style(colInk, border))
		p.text(x+2, y+1, "◀ BACK", p.style(colInk, 1).Bold(true))
		p.hit(x, y, 10, 3, layout.Target{Kind: layout.DetailBack})
	}}, gap(1)}

	secs = append(secs,
		left(wrap(strings.ToUpper(d.Title), w), p.style(colInk, 1).Bold(true)),
		section{h: 1, draw: func(y int) {
			p.text(x, y, strings.Repeat("━", 12), p.style(p.accent, 1))
		}},
		gap(1),
		left(wrap(d.Desc, w), p.style(colInk, 0.9).Bold(true)),
	)
	if d.SubDesc != "" {
		secs = append(secs, gap(1), left(wrap(d.SubDesc, w), p.style(colInk, 0.6)))
	}
	if len(d.Points) > 0 {
		secs = append(secs, gap(1), section{h: len(d.Points), draw: func(y int) {
			for i, pt := range d.Points {
				p.set(x, y+i, '■', p.style(p.accent, 1))
				p.text(x+2, y+i, strings.ToUpper(pt), p.style(colInk, 0.6).Bold(true))
			}
		}})
	}
	stack(1, c.Buf.Rows-1, secs)
}

func (c *Composer) drawChrome(v *game.View, hover layout.Target) {
	b := c.Buf
	cur := v.Nav().Current()
	accent := c.accent(cur)
	chrome := &painter{buf: b, fade: 1, accent: accent, hits: &c.hits, hover: hover}

	chrome.text(2, 0, strings.ToUpper(v.Registry.Name), fg(colInk, 0.8).Bold(true))
	counter := fmt.Sprintf("%02d / %02d", cur+1, v.Registry.Len())
	chrome.text(b.Cols-2-len(counter), 0, counter, fg(colInk, 0.4))

	if b.Cols >= navMinCols && v.Nav().Detail() == nil {
		n := v.Registry.Len()
		top := (b.Rows - n*2) / 2
		for i := 0; i < n; i++ {
			y := top + i*2
			label := v.Registry.Scene(i).NavLabel
			lw := runewidth.StringWidth(label)
			x := b.Cols - 4 - lw
			style, bar := fg(colInk, 0.3), fg(colInk, 0.2)
			switch {
			case i == cur:
				style, bar = fg(accent, 1).Bold(true), fg(accent, 1)
			case hover == layout.Target{Kind: layout.NavEntry, Index: i}:
				style = fg(colInk, 0.7)
			}
			chrome.text(x, y, label, style)
			glyph := '│'
			if i == cur {
				glyph = '┃'
			}
			chrome.set(b.Cols-2, y, glyph, bar)
			chrome.hit(x, y, lw+3, 1, layout.Target{Kind: layout.NavEntry, Index: i})
		}
	}

	if msg, ok := v.Log().Last(); ok {
		chrome.text(2, b.Rows-1, truncate(msg.Text, b.Cols-4), messageStyle(msg.Priority, accent))
	}
}

// truncate cuts s to at most w columns, marking the cut with an ellipsis.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "…")
}

// clipTail keeps the last w columns of s.
func clipTail(s string, w int) string {
	rs := []rune(s)
	for len(rs) > 0 && runewidth.StringWidth(string(rs)) > w {
		rs = rs[1:]
	}
	return string(rs)
}

// painter draws into a buffer with the scene translation and fade applied.
type painter struct {
	buf    *CellBuffer
	dx, dy int
	fade   float64
	accent rgb
	hits   *[]hit // nil when the drawn scene is not interactive
	hover  layout.Target
}

func (p *painter) style(c rgb, a float64) tcell.Style { return fg(c, a*p.fade) }

func (p *painter) set(x, y int, g rune, style tcell.Style) {
	p.buf.Set(x+p.dx, y+p.dy, g, style)
}

func (p *painter) text(x, y int, s string, style tcell.Style) int {
	return p.buf.WriteString(x+p.dx, y+p.dy, s, style)
}

func (p *painter) hit(x, y, w, h int, t layout.Target) {
	if p.hits == nil {
		return
	}
	*p.hits = append(*p.hits, hit{
		rect:   layout.Rect{X: float64(x + p.dx), Y: float64(y + p.dy), W: float64(w), H: float64(h)},
		target: t,
	})
}

// box draws a rounded border around a w x h cell area.
func (p *painter) box(x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	for i := 1; i < w-1; i++ {
		p.set(x+i, y, '─', style)
		p.set(x+i, y+h-1, '─', style)
	}
	for j := 1; j < h-1; j++ {
		p.set(x, y+j, '│', style)
		p.set(x+w-1, y+j, '│', style)
	}
	p.set(x, y, '╭', style)
	p.set(x+w-1, y, '╮', style)
	p.set(x, y+h-1, '╰', style)
	p.set(x+w-1, y+h-1, '╯', style)
}
