package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/idate-tech/luminous/internal/contact"
	"github.com/idate-tech/luminous/internal/layout"
	"github.com/idate-tech/luminous/internal/world"
)

// ViewOptions configures a View.
type ViewOptions struct {
	Camera    CameraParams
	Nav       NavParams
	Submitter contact.Submitter
	Clock     Clock
	Seed      int64 // backdrop layout seed

	// OnSceneChange is called after the view reacted to a scene change.
	OnSceneChange func(prev, next int)

	LogSize  int
	LogWidth int
}

// DefaultViewOptions returns the reference configuration with a simulated
// two-second transmission.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{
		Camera:    DefaultCameraParams(),
		Nav:       DefaultNavParams(),
		Submitter: contact.NewSimulated(2*time.Second, 0),
		LogSize:   20,
		LogWidth:  56,
	}
}

// View is one mounted instance of the scene navigator. It owns all mutable
// state; frontends feed it input and read it back each frame.
type View struct {
	Registry *world.Registry

	camera   *Camera
	nav      *Navigator
	form     *Form
	backdrop *Backdrop
	log      *MessageLog
	alpha    []float64
	clock    Clock
	onChange func(prev, next int)
	closed   bool
}

// NewView mounts a view on scene 0 with the camera resting there.
func NewView(reg *world.Registry, opts ViewOptions) *View {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Submitter == nil {
		opts.Submitter = contact.NewSimulated(2*time.Second, 0)
	}
	if opts.LogSize <= 0 {
		opts.LogSize = 20
	}

	v := &View{
		Registry: reg,
		camera:   NewCamera(opts.Camera, reg.Scene(0).Pos()),
		nav:      NewNavigator(reg, opts.Nav, opts.Clock),
		form:     NewForm(opts.Submitter),
		backdrop: NewBackdrop(reg.Len(), DefaultPeripheralNodes, opts.Seed),
		log:      NewMessageLog(opts.LogSize, opts.LogWidth),
		alpha:    make([]float64, reg.Len()),
		clock:    opts.Clock,
		onChange: opts.OnSceneChange,
	}
	v.alpha[0] = 1
	v.nav.SceneChanged = v.sceneChanged
	v.log.Add(fmt.Sprintf("%s online.", reg.Name), MsgInfo)
	return v
}

func (v *View) sceneChanged(prev, next int) {
	s := v.Registry.Scene(next)
	v.camera.SetTarget(s.Pos())
	v.form.Reset()
	v.log.Add(fmt.Sprintf("-> %s", s.NavLabel), MsgScene)
	if v.onChange != nil {
		v.onChange(prev, next)
	}
}

// Camera returns the camera controller.
func (v *View) Camera() *Camera { return v.camera }

// Nav returns the navigation gate.
func (v *View) Nav() *Navigator { return v.nav }

// Form returns the contact form.
func (v *View) Form() *Form { return v.form }

// Backdrop returns the decorative node layer.
func (v *View) Backdrop() *Backdrop { return v.backdrop }

// Log returns the activity log.
func (v *View) Log() *MessageLog { return v.log }

// Scene returns the current scene.
func (v *View) Scene() *world.Scene { return v.nav.Scene() }

// SceneAlpha returns the fade level of scene i in [0,1].
func (v *View) SceneAlpha(i int) float64 {
	if i < 0 || i >= len(v.alpha) {
		return 0
	}
	return v.alpha[i]
}

// Now returns the view clock's current time.
func (v *View) Now() time.Time { return v.clock() }

// Tick advances one animation frame. dt is the elapsed time in seconds.
func (v *View) Tick(dt float64) {
	if v.closed {
		return
	}
	v.camera.Tick(dt)
	v.backdrop.Tick(dt)

	k := v.camera.factor(v.camera.Params.PositionDamping, dt)
	cur := v.nav.Current()
	for i := range v.alpha {
		target := 0.0
		if i == cur {
			target = 1
		}
		v.alpha[i] += (target - v.alpha[i]) * k
	}

	now := v.clock()
	if v.form.Poll(now) {
		switch v.form.Status {
		case FormSuccess:
			v.log.Add("Transmission complete.", MsgSuccess)
		case FormFailed:
			v.log.Add(fmt.Sprintf("Transmission failed: %v. Retry in %s.",
				v.form.LastErr, v.form.RetryIn(now).Round(100*time.Millisecond)), MsgWarning)
		}
	}
}

// GoToScene switches scenes; see Navigator.GoToScene.
func (v *View) GoToScene(i int, force bool) bool { return v.nav.GoToScene(i, force) }

// Next presses the forward button.
func (v *View) Next() bool { return v.nav.GoToScene(v.nav.Current()+1, true) }

// Prev presses the back button.
func (v *View) Prev() bool { return v.nav.GoToScene(v.nav.Current()-1, true) }

// SelectItem opens the detail of item i of the current scene.
func (v *View) SelectItem(i int) bool {
	s := v.nav.Scene()
	if i < 0 || i >= len(s.Items) {
		return false
	}
	return v.nav.OpenDetail(&s.Items[i].Details)
}

// CloseDetail presses the detail view's back button.
func (v *View) CloseDetail() bool { return v.nav.CloseDetail() }

// SetDeviceClass follows a layout class change. Touch layouts ignore the
// wheel.
func (v *View) SetDeviceClass(c layout.DeviceClass) {
	v.nav.Params.TouchPrimary = c == layout.Touch
}

// HandleWheel forwards a wheel delta (positive scrolls forward).
func (v *View) HandleWheel(deltaY float64) bool { return v.nav.HandleWheel(deltaY) }

// TouchStart forwards the start of a touch gesture.
func (v *View) TouchStart(y float64) { v.nav.TouchStart(y) }

// TouchEnd forwards the end of a touch gesture.
func (v *View) TouchEnd(y float64) bool { return v.nav.TouchEnd(y) }

// HandleKey forwards a key press.
func (v *View) HandleKey(k Key) bool { return v.nav.HandleKey(k) }

// SetPointer forwards a pointer move inside a w x h viewport.
func (v *View) SetPointer(x, y, w, h float64) { v.camera.SetPointer(x, y, w, h) }

// Submit starts a transmission of the contact form.
func (v *View) Submit() error {
	if !v.nav.Scene().Contact {
		return errors.New("no contact form on this scene")
	}
	err := v.form.Submit(v.clock())
	var verr *ValidationError
	switch {
	case err == nil:
		if v.form.Status == FormSending {
			v.log.Add("Initiating transfer...", MsgInfo)
		}
	case errors.As(err, &verr):
		v.log.Add(verr.Error(), MsgWarning)
	case errors.Is(err, ErrBackoff):
		v.log.Add(fmt.Sprintf("Retry in %s.", v.form.RetryIn(v.clock()).Round(100*time.Millisecond)), MsgWarning)
	}
	return err
}

// Close tears the view down. In-flight transmissions are abandoned.
func (v *View) Close() {
	if v.closed {
		return
	}
	v.closed = true
	v.form.Close()
}
