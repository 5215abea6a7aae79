package term

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/idate-tech/luminous/internal/game"
	"github.com/idate-tech/luminous/internal/layout"
	"github.com/idate-tech/luminous/internal/sfx"
)

// FrameInterval is the redraw period of the terminal loop.
const FrameInterval = time.Second / 60

// wheelStep is the wheel delta reported per notch, matching a typical
// browser line scroll.
const wheelStep = 100

// App runs a View in a terminal.
type App struct {
	View    *game.View
	Screen  tcell.Screen
	Speaker *sfx.Speaker // optional

	comp    *Composer
	hover   layout.Target
	pressed bool
	pending bool // a scene change happened since the last frame
}

// NewApp initializes screen with mouse reporting for v.
func NewApp(v *game.View, screen tcell.Screen, spk *sfx.Speaker) (*App, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	screen.EnableMouse()
	screen.SetStyle(baseStyle)
	screen.Clear()

	cols, rows := screen.Size()
	a := &App{
		View:    v,
		Screen:  screen,
		Speaker: spk,
		comp:    NewComposer(v.Registry, cols, rows),
	}
	return a, nil
}

// SceneChanged queues the chime for the next frame. Wire it to
// game.ViewOptions.OnSceneChange.
func (a *App) SceneChanged(prev, next int) {
	a.pending = true
}

// Run drives the frame loop until ctx is done or the user quits. The
// screen is finalized on return.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	g, ctx := errgroup.WithContext(ctx)
	events := make(chan tcell.Event, 64)

	g.Go(func() error {
		for {
			ev := a.Screen.PollEvent()
			if ev == nil {
				return nil // screen finalized
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer a.Screen.Fini()
		defer cancel()
		return a.loop(ctx, events)
	})

	return g.Wait()
}

func (a *App) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !a.HandleEvent(ev) {
				log.Printf("[Term] Quit requested")
				return nil
			}
		case now := <-ticker.C:
			a.View.Tick(now.Sub(last).Seconds())
			last = now
			if a.pending {
				a.pending = false
				a.Speaker.Chime()
			}
			a.Draw()
		}
	}
}

// Draw composes the view and flushes it to the screen.
func (a *App) Draw() {
	a.comp.Compose(a.View, a.hover)
	a.comp.Buf.Flush(a.Screen)
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		a.comp.Buf.Resize(cols, rows)
		a.Screen.Sync()
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return true
}

func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buf := a.comp.Buf
	a.View.SetPointer(float64(x), float64(y), float64(buf.Cols), float64(buf.Rows))
	a.hover = a.comp.Hit(x, y)

	btn := ev.Buttons()
	switch {
	case btn&tcell.WheelUp != 0:
		a.View.HandleWheel(-wheelStep)
	case btn&tcell.WheelDown != 0:
		a.View.HandleWheel(wheelStep)
	}

	down := btn&tcell.Button1 != 0
	if down && !a.pressed {
		a.View.Activate(a.hover)
	}
	a.pressed = down
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	v := a.View
	form := v.Form()
	typing := v.Scene().Contact && form.Focus >= 0

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		if typing {
			form.SetFocus(-1)
			return true
		}
		v.HandleKey(game.KeyEscape)
	case tcell.KeyLeft, tcell.KeyUp, tcell.KeyPgUp:
		if !typing {
			v.Prev()
		}
	case tcell.KeyRight, tcell.KeyDown, tcell.KeyPgDn:
		if !typing {
			v.Next()
		}
	case tcell.KeyTab:
		if v.Scene().Contact && form.Editable() {
			form.FocusNext()
		}
	case tcell.KeyEnter:
		v.Enter()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		form.Backspace()
	case tcell.KeyRune:
		r := ev.Rune()
		if typing {
			form.Type(r)
			return true
		}
		switch {
		case r == 'q':
			return false
		case r >= '1' && r <= '9':
			v.GoToScene(int(r-'1'), true)
		}
	}
	return true
}
