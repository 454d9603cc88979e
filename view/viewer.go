package view

import (
	"context"
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/arbor"
	"github.com/tanema/gween/ease"
)

// Config holds the window and interaction settings of a Viewer.
type Config struct {
	Title  string
	Width  int
	Height int

	// PickTolerance overrides the picker's line tolerance in pixels when
	// positive.
	PickTolerance float64
	LineWidth     float32
	Background    arbor.Color

	// OrbitSpeed is the camera turn in radians per pixel of right-drag.
	OrbitSpeed float64
	// ZoomStep is the fraction of the camera distance covered by one wheel
	// step that no scene object handled.
	ZoomStep float64
	// ZoomDuration animates wheel zoom over this many seconds. Zero snaps.
	ZoomDuration float32

	ShowFPS       bool
	ScreenshotDir string
}

// DefaultConfig returns the settings used by the arbor-view command.
func DefaultConfig() Config {
	return Config{
		Title:         "arbor",
		Width:         960,
		Height:        720,
		LineWidth:     DefaultLineWidth,
		Background:    arbor.Color{R: 0.08, G: 0.08, B: 0.1, A: 1},
		OrbitSpeed:    0.01,
		ZoomStep:      0.1,
		ZoomDuration:  0.15,
		ScreenshotDir: "screenshots",
	}
}

// Viewer is an ebiten.Game that draws a scene through an orbit camera and
// routes mouse input into it. Wheel steps and button presses go to whatever
// the cursor is over; wheel steps nothing handles zoom the camera, and
// dragging with the right button orbits it.
type Viewer struct {
	scene  *arbor.Scene
	camera *Camera
	conf   Config
	ctx    context.Context

	wheel            wheelAccumulator
	cursorX, cursorY int
	orbiting         bool
	screenshots      []string
	updateFunc       func() error

	injectQueue      []syntheticEvent
	injectX, injectY float64
	runner           *TestRunner
}

// NewViewer creates a viewer for scene.
func NewViewer(scene *arbor.Scene, conf Config) *Viewer {
	if conf.PickTolerance > 0 {
		scene.Picker().Tolerance = conf.PickTolerance
	}
	return &Viewer{
		scene:  scene,
		camera: NewCamera(),
		conf:   conf,
	}
}

// Camera returns the viewer's camera.
func (v *Viewer) Camera() *Camera {
	return v.camera
}

// SetUpdateFunc registers a callback run once per tick after input has been
// dispatched. A non-nil error stops the viewer; return ebiten.Termination to
// stop without error.
func (v *Viewer) SetUpdateFunc(fn func() error) {
	v.updateFunc = fn
}

// Projection returns the camera projection for the current window size.
func (v *Viewer) Projection() arbor.Projection {
	return v.camera.Projection(v.conf.Width, v.conf.Height)
}

// Run opens the window and blocks until it is closed or ctx is cancelled.
func (v *Viewer) Run(ctx context.Context) error {
	v.ctx = ctx
	ebiten.SetWindowTitle(v.conf.Title)
	ebiten.SetWindowSize(v.conf.Width, v.conf.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	logs.WithTag("title", v.conf.Title).
		WithTag("width", v.conf.Width).
		WithTag("height", v.conf.Height).
		Info("opening viewer")

	if err := ebiten.RunGame(v); err != nil {
		return errors.New("running viewer failed").
			WithTag("title", v.conf.Title).
			Wrap(err)
	}
	return nil
}

// Update implements ebiten.Game.
func (v *Viewer) Update() error {
	if v.ctx != nil && v.ctx.Err() != nil {
		return ebiten.Termination
	}
	v.camera.Update(1 / float32(ebiten.TPS()))

	proj := v.Projection()
	if v.runner != nil {
		v.runner.step(v)
	}
	if !v.processInjected(proj) {
		v.processInput(proj)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		v.Screenshot("frame")
	}
	if v.updateFunc != nil {
		return v.updateFunc()
	}
	return nil
}

// processInput polls ebiten for wheel, button and cursor changes and routes
// them into the scene.
func (v *Viewer) processInput(proj arbor.Projection) {
	mods := readModifiers()
	x, y := ebiten.CursorPosition()
	fx, fy := float64(x), float64(y)

	for _, b := range v.wheel.steps(ebiten.Wheel()) {
		v.wheelStep(proj, fx, fy, b, mods)
	}
	for _, m := range buttonMap {
		if inpututil.IsMouseButtonJustPressed(m.from) {
			v.button(proj, fx, fy, m.to, true, mods)
		}
		if inpututil.IsMouseButtonJustReleased(m.from) {
			v.button(proj, fx, fy, m.to, false, mods)
		}
	}
	if x != v.cursorX || y != v.cursorY {
		v.motion(proj, fx, fy, float64(x-v.cursorX), float64(y-v.cursorY), mods)
		v.cursorX, v.cursorY = x, y
	}
}

// Draw implements ebiten.Game.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(v.conf.Background.RGBA())
	v.scene.Render(NewCanvas(screen, v.Projection(), v.conf.LineWidth), mgl64.Ident4())
	if v.conf.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	v.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The projection follows the window size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.conf.Width, v.conf.Height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// wheelStep offers one wheel step to the scene and zooms the camera when
// nothing under the cursor handles it.
func (v *Viewer) wheelStep(proj arbor.Projection, x, y float64, b arbor.MouseButton, mods arbor.KeyModifiers) bool {
	ev := arbor.MouseEvent{Button: b, Pressed: true, Modifiers: mods}
	if v.scene.HandleMouse(proj, x, y, ev) {
		return true
	}
	if mods != 0 || v.conf.ZoomStep <= 0 {
		return false
	}

	var factor float64
	switch b {
	case arbor.MouseWheelUp:
		factor = 1 - v.conf.ZoomStep
	case arbor.MouseWheelDown:
		factor = 1 / (1 - v.conf.ZoomStep)
	default:
		return false
	}
	if v.conf.ZoomDuration > 0 {
		v.camera.ZoomTo(v.camera.Distance*factor, v.conf.ZoomDuration, ease.OutQuad)
	} else {
		v.camera.Zoom(factor)
	}
	return true
}

// button offers a press or release to the scene. An unhandled right-button
// press starts orbiting; any right-button release ends it.
func (v *Viewer) button(proj arbor.Projection, x, y float64, b arbor.MouseButton, pressed bool, mods arbor.KeyModifiers) bool {
	ev := arbor.MouseEvent{Button: b, Pressed: pressed, Modifiers: mods}
	handled := v.scene.HandleMouse(proj, x, y, ev)
	if b == arbor.MouseButtonRight {
		v.orbiting = pressed && !handled
	}
	return handled
}

// motion orbits the camera while right-dragging, and otherwise offers the
// movement to the scene.
func (v *Viewer) motion(proj arbor.Projection, x, y, dx, dy float64, mods arbor.KeyModifiers) bool {
	if v.orbiting {
		v.camera.Orbit(-dx*v.conf.OrbitSpeed, dy*v.conf.OrbitSpeed)
		return true
	}
	return v.scene.HandleMotion(proj, x, y, arbor.MotionEvent{Modifiers: mods})
}
