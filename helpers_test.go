package arbor

import (
	"math"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// assertMatrix compares component-wise with an absolute tolerance. mgl64's
// ApproxEqual family is relative and rejects float noise around zero.
func assertMatrix(t *testing.T, name string, got, want mgl64.Mat4) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s =\n%v\nwant\n%v", name, got, want)
			return
		}
	}
}

func assertVec(t *testing.T, name string, got, want mgl64.Vec3) {
	t.Helper()
	assertVecWithin(t, name, got, want, epsilon)
}

func assertVecWithin(t *testing.T, name string, got, want mgl64.Vec3, tol float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s = %v, want %v", name, got, want)
			return
		}
	}
}

// routeLogs sends log entries to t.Log for the duration of the test.
func routeLogs(t *testing.T) {
	t.Helper()
	logs.SetLogger(func(e logs.Entry) {
		t.Log(e)
	})
	t.Cleanup(func() {
		logs.SetLogger(func(logs.Entry) {})
	})
}

// drawCall is one primitive recorded by recordingCanvas.
type drawCall struct {
	kind  string // "line" or "cube"
	model mgl64.Mat4
	a, b  mgl64.Vec3
	size  float64
	color Color
}

// recordingCanvas records every primitive it is asked to draw.
type recordingCanvas struct {
	calls []drawCall
}

func (c *recordingCanvas) DrawLine(model mgl64.Mat4, a, b mgl64.Vec3, clr Color) {
	c.calls = append(c.calls, drawCall{kind: "line", model: model, a: a, b: b, color: clr})
}

func (c *recordingCanvas) DrawCube(model mgl64.Mat4, size float64, clr Color) {
	c.calls = append(c.calls, drawCall{kind: "cube", model: model, size: size, color: clr})
}

func (c *recordingCanvas) count(kind string) int {
	n := 0
	for _, call := range c.calls {
		if call.kind == kind {
			n++
		}
	}
	return n
}

// recordingNames records name stack traffic and the maximum depth reached.
type recordingNames struct {
	pushed []uint32
	depth  int
	pops   int
}

func (r *recordingNames) PushName(id uint32) {
	r.pushed = append(r.pushed, id)
	r.depth++
}

func (r *recordingNames) PopName() {
	r.depth--
	r.pops++
}

// stubInteractive counts the events it receives and returns a fixed answer.
type stubInteractive struct {
	handle  bool
	mouse   []MouseEvent
	motions []MotionEvent
}

func (s *stubInteractive) Mouse(ev MouseEvent) bool {
	s.mouse = append(s.mouse, ev)
	return s.handle
}

func (s *stubInteractive) MouseMotion(ev MotionEvent) bool {
	s.motions = append(s.motions, ev)
	return s.handle
}

// testProjection looks down -Z from (0, 0, 5) with an orthographic box of
// [-2, 2] on a 400x400 window: world (x, y, 0) lands on window
// (200+100x, 200-100y).
func testProjection() Projection {
	return Projection{
		View:   mgl64.LookAtV(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}),
		Proj:   mgl64.Ortho(-2, 2, -2, 2, 0.1, 10),
		Width:  400,
		Height: 400,
	}
}
