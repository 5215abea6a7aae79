// Command luminous runs the scene navigator in a window.
package main

import (
	"context"
	"flag"
	"log"
	"math"
	"os"

	"github.com/gopxl/beep"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/idate-tech/luminous/internal/config"
	"github.com/idate-tech/luminous/internal/game"
	"github.com/idate-tech/luminous/internal/layout"
	"github.com/idate-tech/luminous/internal/platform"
	"github.com/idate-tech/luminous/internal/render"
	"github.com/idate-tech/luminous/internal/sfx"
)

const title = "Luminous"

// wheelScale converts ebiten wheel offsets into browser-style deltas.
const wheelScale = 100

// tapSlop is the largest vertical travel in pixels still treated as a tap.
const tapSlop = 10

// Game is the Ebitengine game struct. It owns rendering and input; all
// navigation state lives in view.
type Game struct {
	cfg      *config.Config
	host     platform.Info
	view     *game.View
	renderer *render.Renderer
	chime    *audio.Player

	width, height int
	class         layout.DeviceClass
	hover         layout.Target
	touchY        map[ebiten.TouchID]float64
	chimeQueued   bool
}

func NewGame(cfg *config.Config, host platform.Info) (*Game, error) {
	reg, err := cfg.Registry()
	if err != nil {
		return nil, err
	}
	renderer, err := render.NewRenderer(reg)
	if err != nil {
		return nil, err
	}
	renderer.ShowFPS = cfg.ShowFPS

	g := &Game{
		cfg:      cfg,
		host:     host,
		renderer: renderer,
		width:    cfg.Width,
		height:   cfg.Height,
		touchY:   make(map[ebiten.TouchID]float64),
	}
	g.class = cfg.DeviceClass(cfg.Width, host.OS)

	opts := cfg.ViewOptions(g.class)
	opts.OnSceneChange = func(prev, next int) { g.chimeQueued = true }
	g.view = game.NewView(reg, opts)

	if !cfg.Mute {
		ctx := audio.NewContext(cfg.SampleRate)
		pcm := sfx.PCM16(sfx.Chime(beep.SampleRate(cfg.SampleRate), cfg.Volume))
		g.chime = ctx.NewPlayerFromBytes(pcm)
	}

	log.Printf("[View] %s: %d scenes, %s layout", reg.Name, reg.Len(), g.class)
	return g, nil
}

func (g *Game) playChime() {
	if g.chime == nil {
		return
	}
	if err := g.chime.Rewind(); err != nil {
		log.Printf("[!] Chime rewind: %v", err)
		return
	}
	g.chime.Play()
}

// frame lays out the current scene at the window size.
func (g *Game) frame() layout.Frame {
	return g.renderer.Frame(g.view, g.view.Nav().Current(), g.width, g.height, g.class)
}

// hitTest resolves a screen point. The nav list is chrome in screen space;
// everything else lives in the transformed scene layer.
func (g *Game) hitTest(f *layout.Frame, x, y float64) layout.Target {
	if t := f.Hit(x, y); t.Kind == layout.NavEntry {
		return t
	}
	sx, sy := render.ToScene(g.view, g.width, g.height, x, y)
	if t := f.Hit(sx, sy); t.Kind != layout.NavEntry {
		return t
	}
	return layout.Target{}
}

func (g *Game) Update() error {
	v := g.view
	f := g.frame()

	mx, my := ebiten.CursorPosition()
	px, py := float64(mx), float64(my)
	v.SetPointer(px, py, float64(g.width), float64(g.height))
	g.hover = g.hitTest(&f, px, py)

	if _, yoff := ebiten.Wheel(); yoff != 0 {
		v.HandleWheel(-yoff * wheelScale)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		v.Activate(g.hover)
	}
	g.updateTouches(&f)
	g.updateKeys()

	dt := 1.0 / 60
	if tps := ebiten.ActualTPS(); tps >= 1 {
		dt = 1 / tps
	}
	v.Tick(dt)

	if g.chimeQueued {
		g.chimeQueued = false
		g.playChime()
	}
	return nil
}

func (g *Game) updateTouches(f *layout.Frame) {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		g.touchY[id] = float64(y)
		g.view.SetPointer(float64(x), float64(y), float64(g.width), float64(g.height))
		g.view.TouchStart(float64(y))
	}
	for _, id := range inpututil.AppendJustReleasedTouchIDs(nil) {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		startY, ok := g.touchY[id]
		delete(g.touchY, id)
		if g.view.TouchEnd(float64(y)) || !ok {
			continue
		}
		if math.Abs(float64(y)-startY) < tapSlop {
			g.view.Activate(g.hitTest(f, float64(x), float64(y)))
		}
	}
}

func (g *Game) updateKeys() {
	v := g.view
	form := v.Form()
	typing := v.Scene().Contact && form.Focus >= 0

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if typing {
			form.SetFocus(-1)
		} else {
			v.HandleKey(game.KeyEscape)
		}
	}
	if typing {
		for _, r := range ebiten.AppendInputChars(nil) {
			form.Type(r)
		}
		if repeat(ebiten.KeyBackspace) {
			form.Backspace()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			v.Enter()
		}
	} else {
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) || inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
			v.Next()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) || inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
			v.Prev()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && v.Scene().Contact && form.Editable() {
		form.FocusNext()
	}
}

// repeat reports a key press with typematic repeat after a short hold.
func repeat(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 30 && d%3 == 0)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.view, g.class, g.hover)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if class := g.cfg.DeviceClass(outsideWidth, g.host.OS); class != g.class {
			g.class = class
			g.view.SetDeviceClass(class)
			log.Printf("[View] %s layout", class)
		}
	}
	return outsideWidth, outsideHeight
}

func main() {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	host := platform.Probe(context.Background())
	log.Printf("[Host] %s/%s on %s", host.OS, host.Platform, host.Hostname)

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	g, err := NewGame(cfg, host)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer g.view.Close()
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
