package layout

import (
	"math"
	"strings"

	"github.com/idate-tech/luminous/internal/world"
)

// Kind identifies what a click landed on.
type Kind uint8

const (
	None Kind = iota
	NavEntry
	Back
	Forward
	Item
	DetailBack
	Field
	Submit
)

func (k Kind) String() string {
	switch k {
	case NavEntry:
		return "nav"
	case Back:
		return "back"
	case Forward:
		return "forward"
	case Item:
		return "item"
	case DetailBack:
		return "detail-back"
	case Field:
		return "field"
	case Submit:
		return "submit"
	default:
		return "none"
	}
}

// Target is the resolved element under a click. Index selects among nav
// entries, items or form fields.
type Target struct {
	Kind  Kind
	Index int
}

// TextBlock is a wrapped run of text. X is the horizontal center, or the
// left edge when Left is set. Y is the top of the first line.
type TextBlock struct {
	Lines      []string
	X, Y       float64
	Size       float64
	LineHeight float64
	Left       bool
}

// Height returns the block height in pixels.
func (b TextBlock) Height() float64 { return float64(len(b.Lines)) * b.LineHeight }

// Params is the input to Compute.
type Params struct {
	Scene  *world.Scene
	Index  int // index of Scene in the registry
	Count  int // number of scenes
	Detail *world.DetailPayload

	Width, Height int
	Class         DeviceClass
	Scale         float64 // 0 derives it from the viewport
	Measure       MeasureFunc
}

// Frame is the screen geometry of one scene for one viewport. Rects that do
// not apply to the scene are empty.
type Frame struct {
	Screen Rect
	Scale  float64
	Class  DeviceClass

	Title       TextBlock
	Subtitle    TextBlock
	Description TextBlock

	Content Rect // box holding the items, team cards or the form
	Items   []Rect
	Team    []Rect
	Fields  [3]Rect
	Submit  Rect
	QR      Rect

	Back    Rect
	Forward Rect
	Nav     []Rect // hidden on touch devices and while a detail is open

	Brackets [4]Rect // top-left, top-right, bottom-left, bottom-right
	Brand    Rect
	Activity Rect

	Detail        bool
	DetailBack    Rect
	DetailTitle   TextBlock
	DetailBar     Rect
	DetailDesc    TextBlock
	DetailSubDesc TextBlock
	Points        []Rect
}

type metrics struct {
	pad                 float64
	titleSize, titleLH  float64
	titleGap            float64
	subSize             float64
	subGap              float64
	descSize, descWidth float64
	contentGap          float64
	minContent          float64

	tileW, tileH, tileGap float64
	tileCols              int // 0 wraps by rowMax
	rowMax                float64

	cardW, cardH, cardGap float64
	cardsStacked          bool

	formW, fieldH, msgH, submitH, formGap float64
	fieldsStacked                         bool
	qrSize                                float64

	buttonGap            float64
	backSize, fwdW, fwdH float64

	bracketInset, bracketSize float64
	chromeInset               float64
	navW, navH, navRight      float64
}

var desktopMetrics = metrics{
	pad:        48,
	titleSize:  72,
	titleLH:    68,
	titleGap:   24,
	subSize:    11,
	subGap:     12,
	descSize:   18,
	descWidth:  576,
	contentGap: 40,
	minContent: 220,

	tileW:   180,
	tileH:   170,
	tileGap: 40,
	rowMax:  1024,

	cardW:   320,
	cardH:   150,
	cardGap: 32,

	formW:   576,
	fieldH:  52,
	msgH:    110,
	submitH: 60,
	formGap: 16,
	qrSize:  128,

	buttonGap: 40,
	backSize:  56,
	fwdW:      300,
	fwdH:      64,

	bracketInset: 40,
	bracketSize:  64,
	chromeInset:  48,
	navW:         150,
	navH:         40,
	navRight:     40,
}

var touchMetrics = metrics{
	pad:        24,
	titleSize:  29,
	titleLH:    31,
	titleGap:   16,
	subSize:    9,
	subGap:     12,
	descSize:   14,
	descWidth:  340,
	contentGap: 32,
	minContent: 120,

	tileW:    130,
	tileH:    130,
	tileGap:  16,
	tileCols: 2,

	cardW:        320,
	cardH:        110,
	cardGap:      16,
	cardsStacked: true,

	formW:         576,
	fieldH:        48,
	msgH:          96,
	submitH:       56,
	formGap:       12,
	fieldsStacked: true,

	buttonGap: 32,
	backSize:  48,
	fwdW:      220,
	fwdH:      52,

	bracketInset: 16,
	bracketSize:  32,
	chromeInset:  32,
}

func metricsFor(c DeviceClass) metrics {
	if c == Touch {
		return touchMetrics
	}
	return desktopMetrics
}

// Compute lays out p.Scene for the viewport. Scene content is stacked in a
// centered column, scaled by the viewport scale and centered vertically.
func Compute(p Params) Frame {
	s := p.Scale
	if s <= 0 {
		s = Scale(p.Width, p.Height)
	}
	measure := p.Measure
	if measure == nil {
		measure = ApproxMeasure
	}
	m := metricsFor(p.Class)
	W, H := float64(p.Width), float64(p.Height)
	cx := W / 2
	avail := math.Max(W/s-2*m.pad, 1)

	f := Frame{Screen: Rect{W: W, H: H}, Scale: s, Class: p.Class}
	sc := p.Scene

	// Scene content, laid out from y=0 and shifted into place afterwards.
	y := 0.0
	var title []string
	for _, line := range sc.Title {
		title = append(title, Wrap(line, avail, m.titleSize, measure)...)
	}
	f.Title = TextBlock{Lines: title, X: cx, Y: y * s, Size: m.titleSize * s, LineHeight: m.titleLH * s}
	y += float64(len(title))*m.titleLH + m.titleGap

	sub := Wrap(sc.Subtitle, avail, m.subSize, measure)
	f.Subtitle = TextBlock{Lines: sub, X: cx, Y: y * s, Size: m.subSize * s, LineHeight: m.subSize * 1.6 * s}
	y += float64(len(sub))*m.subSize*1.6 + m.subGap

	desc := Wrap(strings.Join(sc.Description, " "), math.Min(m.descWidth, avail), m.descSize, measure)
	f.Description = TextBlock{Lines: desc, X: cx, Y: y * s, Size: m.descSize * s, LineHeight: m.descSize * 1.6 * s}
	y += float64(len(desc)) * m.descSize * 1.6

	if sc.HasContent() {
		y += m.contentGap
		h := f.layoutContent(sc, m, cx, y, avail)
		box := math.Max(h, m.minContent)
		// Center the content inside its minimum-height box.
		f.shiftContent((box - h) / 2 * s)
		y += box
	} else {
		y += 8
	}

	y += m.buttonGap
	f.layoutButtons(p, m, cx, y)
	y += math.Max(m.backSize, m.fwdH)

	f.shiftScene((H - y*s) / 2)

	f.layoutChrome(p, m)
	if p.Detail != nil {
		f.layoutDetail(p.Detail, m, measure, avail)
	}
	return f
}

// rect converts a design-space rect at (x, y) relative to the column center
// into screen pixels. y is still relative to the top of the stack.
func (f *Frame) rect(cx, x, y, w, h float64) Rect {
	s := f.Scale
	return Rect{X: cx + x*s, Y: y * s, W: w * s, H: h * s}
}

// layoutContent places items, team cards or the form starting at y and
// returns the design height used.
func (f *Frame) layoutContent(sc *world.Scene, m metrics, cx, y, avail float64) float64 {
	var h float64
	switch {
	case len(sc.Items) > 0:
		perRow := m.tileCols
		if perRow == 0 {
			rowW := math.Min(m.rowMax, avail)
			perRow = int((rowW + m.tileGap) / (m.tileW + m.tileGap))
		}
		if perRow < 1 {
			perRow = 1
		}
		n := len(sc.Items)
		rows := (n + perRow - 1) / perRow
		for r := 0; r < rows; r++ {
			inRow := min(perRow, n-r*perRow)
			rowW := float64(inRow)*m.tileW + float64(inRow-1)*m.tileGap
			for c := 0; c < inRow; c++ {
				x := -rowW/2 + float64(c)*(m.tileW+m.tileGap)
				ty := y + float64(r)*(m.tileH+m.tileGap)
				f.Items = append(f.Items, f.rect(cx, x, ty, m.tileW, m.tileH))
			}
		}
		h = float64(rows)*m.tileH + float64(rows-1)*m.tileGap

	case len(sc.Team) > 0:
		n := len(sc.Team)
		if m.cardsStacked {
			w := math.Min(m.cardW, avail)
			for i := 0; i < n; i++ {
				f.Team = append(f.Team, f.rect(cx, -w/2, y+float64(i)*(m.cardH+m.cardGap), w, m.cardH))
			}
			h = float64(n)*m.cardH + float64(n-1)*m.cardGap
		} else {
			rowW := float64(n)*m.cardW + float64(n-1)*m.cardGap
			for i := 0; i < n; i++ {
				x := -rowW/2 + float64(i)*(m.cardW+m.cardGap)
				f.Team = append(f.Team, f.rect(cx, x, y, m.cardW, m.cardH))
			}
			h = m.cardH
		}

	case sc.Contact:
		w := math.Min(m.formW, avail)
		fy := y
		if m.fieldsStacked {
			f.Fields[0] = f.rect(cx, -w/2, fy, w, m.fieldH)
			fy += m.fieldH + m.formGap
			f.Fields[1] = f.rect(cx, -w/2, fy, w, m.fieldH)
		} else {
			half := (w - m.formGap) / 2
			f.Fields[0] = f.rect(cx, -w/2, fy, half, m.fieldH)
			f.Fields[1] = f.rect(cx, -w/2+half+m.formGap, fy, half, m.fieldH)
		}
		fy += m.fieldH + m.formGap
		f.Fields[2] = f.rect(cx, -w/2, fy, w, m.msgH)
		fy += m.msgH + m.formGap
		f.Submit = f.rect(cx, -w/2, fy, w, m.submitH)
		fy += m.submitH
		h = fy - y

		if m.qrSize > 0 {
			qx := w/2 + m.pad
			if cx+(qx+m.qrSize)*f.Scale <= f.Screen.W-m.pad {
				f.QR = f.rect(cx, qx, y, m.qrSize, m.qrSize)
			}
		}
	}
	f.Content = f.rect(cx, -avail/2, y, avail, h)
	return h
}

func (f *Frame) layoutButtons(p Params, m metrics, cx, y float64) {
	showBack := p.Index > 0
	showFwd := !p.Scene.IsFinal && p.Index < p.Count-1
	rowH := math.Max(m.backSize, m.fwdH)

	total := 0.0
	if showBack {
		total += m.backSize
	}
	if showFwd {
		total += m.fwdW
	}
	if showBack && showFwd {
		total += 24
	}
	x := -total / 2
	if showBack {
		f.Back = f.rect(cx, x, y+(rowH-m.backSize)/2, m.backSize, m.backSize)
		x += m.backSize + 24
	}
	if showFwd {
		f.Forward = f.rect(cx, x, y+(rowH-m.fwdH)/2, m.fwdW, m.fwdH)
	}
}

func (f *Frame) shiftContent(dy float64) {
	for i := range f.Items {
		f.Items[i].Y += dy
	}
	for i := range f.Team {
		f.Team[i].Y += dy
	}
	for i := range f.Fields {
		f.Fields[i].Y += dy
	}
	f.Submit.Y += dy
	f.QR.Y += dy
	f.Content.Y += dy
}

func (f *Frame) shiftScene(dy float64) {
	f.Title.Y += dy
	f.Subtitle.Y += dy
	f.Description.Y += dy
	f.shiftContent(dy)
	f.Back.Y += dy
	f.Forward.Y += dy
}

// layoutChrome places the fixed, unscaled screen furniture.
func (f *Frame) layoutChrome(p Params, m metrics) {
	W, H := f.Screen.W, f.Screen.H
	bi, bs := m.bracketInset, m.bracketSize
	f.Brackets = [4]Rect{
		{X: bi, Y: bi, W: bs, H: bs},
		{X: W - bi - bs, Y: bi, W: bs, H: bs},
		{X: bi, Y: H - bi - bs, W: bs, H: bs},
		{X: W - bi - bs, Y: H - bi - bs, W: bs, H: bs},
	}
	ci := m.chromeInset
	f.Brand = Rect{X: ci, Y: ci, W: W/2 - ci, H: 20}
	f.Activity = Rect{X: ci, Y: H - ci - 18, W: W/2 - ci, H: 18}

	if p.Class == Touch || p.Detail != nil || m.navW == 0 {
		return
	}
	top := H/2 - float64(p.Count)*m.navH/2
	for i := 0; i < p.Count; i++ {
		f.Nav = append(f.Nav, Rect{X: W - m.navRight - m.navW, Y: top + float64(i)*m.navH, W: m.navW, H: m.navH})
	}
}

func (f *Frame) layoutDetail(d *world.DetailPayload, m metrics, measure MeasureFunc, avail float64) {
	f.Detail = true
	s := f.Scale
	W, H := f.Screen.W, f.Screen.H
	panelW := math.Min(1024, avail)

	titleSize, descSize, subSize := 64.0, 28.0, 18.0
	pointH, pointGap := 64.0, 12.0
	leftW, rightW, colGap, rightTop := panelW-400-64, 400.0, 64.0, 96.0
	stacked := f.Class == Touch || leftW < 240
	if stacked {
		titleSize, descSize, subSize = 30, 20, 15
		pointH, pointGap = 56, 10
		leftW, rightW, colGap, rightTop = panelW, panelW, 0, 0
	}

	// Left column: back button, title, accent bar, description.
	y := 0.0
	backY := y
	y += 40 + 40
	title := Wrap(d.Title, leftW, titleSize, measure)
	titleY := y
	y += float64(len(title))*titleSize*1.1 + 32
	barY := y
	y += 6 + 40
	desc := Wrap(d.Desc, leftW, descSize, measure)
	descY := y
	y += float64(len(desc)) * descSize * 1.3
	var sub []string
	subY := y
	if d.SubDesc != "" {
		y += 16
		subY = y
		sub = Wrap(d.SubDesc, leftW, subSize, measure)
		y += float64(len(sub)) * subSize * 1.6
	}
	leftH := y

	n := float64(len(d.Points))
	pointsH := n*pointH + math.Max(n-1, 0)*pointGap
	var total, pointsTop float64
	if stacked {
		pointsTop = leftH + 32
		total = pointsTop + pointsH
	} else {
		pointsTop = rightTop
		total = math.Max(leftH, rightTop+pointsH)
	}

	top := (H - total*s) / 2
	left := W/2 - panelW*s/2
	rightX := left + (leftW+colGap)*s
	textX, textLeft := left, true
	backX := left
	if stacked {
		textX, textLeft = W/2, false
		backX = W/2 - 60*s
		rightX = left
	}

	f.DetailBack = Rect{X: backX, Y: top + backY*s, W: 120 * s, H: 40 * s}
	f.DetailTitle = TextBlock{Lines: title, X: textX, Y: top + titleY*s, Size: titleSize * s, LineHeight: titleSize * 1.1 * s, Left: textLeft}
	barX := left
	if stacked {
		barX = W/2 - 40*s
	}
	f.DetailBar = Rect{X: barX, Y: top + barY*s, W: 80 * s, H: 6 * s}
	f.DetailDesc = TextBlock{Lines: desc, X: textX, Y: top + descY*s, Size: descSize * s, LineHeight: descSize * 1.3 * s, Left: textLeft}
	f.DetailSubDesc = TextBlock{Lines: sub, X: textX, Y: top + subY*s, Size: subSize * s, LineHeight: subSize * 1.6 * s, Left: textLeft}
	for i := range d.Points {
		py := pointsTop + float64(i)*(pointH+pointGap)
		f.Points = append(f.Points, Rect{X: rightX, Y: top + py*s, W: rightW * s, H: pointH * s})
	}
}

// Hit resolves a click at (x, y). While a detail is open only its back
// button is live.
func (f *Frame) Hit(x, y float64) Target {
	if f.Detail {
		if f.DetailBack.Contains(x, y) {
			return Target{Kind: DetailBack}
		}
		return Target{}
	}
	for i, r := range f.Nav {
		if r.Contains(x, y) {
			return Target{Kind: NavEntry, Index: i}
		}
	}
	if f.Back.Contains(x, y) {
		return Target{Kind: Back}
	}
	if f.Forward.Contains(x, y) {
		return Target{Kind: Forward}
	}
	for i, r := range f.Items {
		if r.Contains(x, y) {
			return Target{Kind: Item, Index: i}
		}
	}
	for i, r := range f.Fields {
		if r.Contains(x, y) {
			return Target{Kind: Field, Index: i}
		}
	}
	if f.Submit.Contains(x, y) {
		return Target{Kind: Submit}
	}
	return Target{}
}
