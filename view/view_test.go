package view

import (
	"image"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/arbor"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

// orthoProjection maps world (x, y, 0) to window (200+100x, 200-100y).
func orthoProjection() arbor.Projection {
	return arbor.Projection{
		View:   mgl64.LookAtV(mgl64.Vec3{0, 0, 5}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}),
		Proj:   mgl64.Ortho(-2, 2, -2, 2, 0.1, 10),
		Width:  400,
		Height: 400,
	}
}

// requireVecNear compares component-wise with an absolute tolerance; mgl64's
// ApproxEqual family is relative and rejects float noise around zero.
func requireVecNear(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-9, "got %v, want %v", got, want)
	}
}

func requireMatrixNear(t *testing.T, want, got mgl64.Mat4) {
	t.Helper()
	for i := range want {
		require.InDelta(t, want[i], got[i], 1e-9, "got\n%v\nwant\n%v", got, want)
	}
}

type stroke struct {
	x0, y0, x1, y1 float32
	clr            color.Color
}

func recordingCanvas(proj arbor.Projection) (*Canvas, *[]stroke) {
	var strokes []stroke
	c := &Canvas{
		proj: proj,
		stroke: func(x0, y0, x1, y1 float32, clr color.Color) {
			strokes = append(strokes, stroke{x0, y0, x1, y1, clr})
		},
	}
	return c, &strokes
}

// --- Camera ---

func TestCameraEye(t *testing.T) {
	c := NewCamera()
	c.Yaw, c.Pitch, c.Distance = 0, 0, 5
	requireVecNear(t, mgl64.Vec3{0, 0, 5}, c.Eye())

	c.Yaw = math.Pi / 2
	requireVecNear(t, mgl64.Vec3{5, 0, 0}, c.Eye())
}

func TestCameraProjectsTargetToCenter(t *testing.T) {
	c := NewCamera()
	c.Target = mgl64.Vec3{1, 2, 3}
	proj := c.Projection(640, 480)

	w, ok := proj.Project(mgl64.Ident4(), c.Target)
	require.True(t, ok)
	require.InDelta(t, 320, w.X(), 1e-6)
	require.InDelta(t, 240, w.Y(), 1e-6)
}

func TestCameraOrbitClampsPitch(t *testing.T) {
	c := NewCamera()
	c.Orbit(0.5, 10)
	require.InDelta(t, maxPitch, c.Pitch, 1e-12)
	c.Orbit(0, -20)
	require.InDelta(t, -maxPitch, c.Pitch, 1e-12)
	require.InDelta(t, 1.1, c.Yaw, 1e-12)
}

func TestCameraZoomClamps(t *testing.T) {
	c := NewCamera()
	c.Zoom(0.001)
	require.Equal(t, c.MinDistance, c.Distance)
	c.Zoom(1e6)
	require.Equal(t, c.MaxDistance, c.Distance)
}

func TestCameraZoomTo(t *testing.T) {
	c := NewCamera()
	c.Distance = 10
	c.ZoomTo(4, 1, ease.Linear)
	require.True(t, c.Zooming())

	c.Update(0.5)
	require.InDelta(t, 7, c.Distance, 1e-4)

	c.Update(0.5)
	require.InDelta(t, 4, c.Distance, 1e-4)
	require.False(t, c.Zooming())

	c.ZoomTo(8, 1, ease.Linear)
	c.Zoom(1)
	require.False(t, c.Zooming(), "Zoom cancels the animation")
}

// --- Canvas ---

func TestCanvasDrawLine(t *testing.T) {
	c, strokes := recordingCanvas(orthoProjection())
	c.DrawLine(mgl64.Translate3D(0, 1, 0), mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}, arbor.ColorRed)

	require.Len(t, *strokes, 1)
	s := (*strokes)[0]
	require.InDelta(t, 200, s.x0, 1e-3)
	require.InDelta(t, 100, s.y0, 1e-3)
	require.InDelta(t, 300, s.x1, 1e-3)
	require.InDelta(t, 100, s.y1, 1e-3)
	require.Equal(t, arbor.ColorRed.RGBA(), s.clr)
}

func TestCanvasDrawCube(t *testing.T) {
	c, strokes := recordingCanvas(orthoProjection())
	c.DrawCube(mgl64.Ident4(), 1, arbor.ColorWhite)
	require.Len(t, *strokes, 12)
	for _, s := range *strokes {
		require.GreaterOrEqual(t, s.x0, float32(150-1e-3))
		require.LessOrEqual(t, s.x0, float32(250+1e-3))
	}
}

func TestCanvasSkipsSegmentsBehindEye(t *testing.T) {
	cam := NewCamera()
	cam.Yaw, cam.Pitch, cam.Distance = 0, 0, 5
	c, strokes := recordingCanvas(cam.Projection(400, 400))

	c.DrawLine(mgl64.Ident4(), mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 20}, arbor.ColorBlue)
	require.Empty(t, *strokes)

	c.DrawLine(mgl64.Ident4(), mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, arbor.ColorBlue)
	require.Len(t, *strokes, 1)
}

// --- Input ---

func TestWheelAccumulator(t *testing.T) {
	var w wheelAccumulator
	require.Equal(t, []arbor.MouseButton{arbor.MouseWheelUp}, w.steps(0, 1))
	require.Equal(t, []arbor.MouseButton{arbor.MouseWheelDown, arbor.MouseWheelDown}, w.steps(0, -2))
	require.Empty(t, w.steps(0, 0.6))
	require.Equal(t, []arbor.MouseButton{arbor.MouseWheelUp}, w.steps(0, 0.6))
	require.InDelta(t, 0.2, w.y, 1e-9)
	require.Equal(t, []arbor.MouseButton{arbor.MouseWheelLeft}, w.steps(-1, 0))
	require.Equal(t, []arbor.MouseButton{arbor.MouseWheelUp, arbor.MouseWheelRight}, w.steps(1, 0.9))
}

// --- Viewer ---

func newTestViewer(t *testing.T, conf Config) (*Viewer, *arbor.Node, *arbor.Axis) {
	t.Helper()
	scene := arbor.NewSceneWithIndex(arbor.NewInteractiveIndex())
	n := arbor.NewCube("cube", 0.5, arbor.ColorWhite)
	scene.Root().Add(n)
	axis := scene.NewAxis(n)
	return NewViewer(scene, conf), n, axis
}

func TestViewerWheelOverAxisMovesNode(t *testing.T) {
	conf := DefaultConfig()
	v, n, _ := newTestViewer(t, conf)
	before := n.Transform
	distance := v.Camera().Distance

	require.True(t, v.wheelStep(orthoProjection(), 250, 200, arbor.MouseWheelUp, arbor.ModShift))
	want := before.Mul4(mgl64.Translate3D(arbor.DefaultAxisStep/10, 0, 0).Inv())
	requireMatrixNear(t, want, n.Transform)
	require.Equal(t, distance, v.Camera().Distance, "handled steps do not zoom")
}

func TestViewerWheelMissZooms(t *testing.T) {
	conf := DefaultConfig()
	conf.ZoomDuration = 0
	v, n, _ := newTestViewer(t, conf)
	before := n.Transform
	distance := v.Camera().Distance

	require.True(t, v.wheelStep(orthoProjection(), 390, 390, arbor.MouseWheelUp, 0))
	require.InDelta(t, distance*0.9, v.Camera().Distance, 1e-9)
	require.Equal(t, before, n.Transform)

	require.True(t, v.wheelStep(orthoProjection(), 390, 390, arbor.MouseWheelDown, 0))
	require.InDelta(t, distance, v.Camera().Distance, 1e-9)
}

func TestViewerWheelMissAnimatesZoom(t *testing.T) {
	v, _, _ := newTestViewer(t, DefaultConfig())
	require.True(t, v.wheelStep(orthoProjection(), 390, 390, arbor.MouseWheelUp, 0))
	require.True(t, v.Camera().Zooming())
}

func TestViewerWheelMissWithModifiersIgnored(t *testing.T) {
	conf := DefaultConfig()
	conf.ZoomDuration = 0
	v, _, _ := newTestViewer(t, conf)
	distance := v.Camera().Distance

	require.False(t, v.wheelStep(orthoProjection(), 390, 390, arbor.MouseWheelUp, arbor.ModCtrl))
	require.Equal(t, distance, v.Camera().Distance)
}

func TestViewerRightDragOrbits(t *testing.T) {
	v, _, _ := newTestViewer(t, DefaultConfig())
	yaw := v.Camera().Yaw

	v.button(orthoProjection(), 390, 390, arbor.MouseButtonRight, true, 0)
	require.True(t, v.motion(orthoProjection(), 380, 390, -10, 0, 0))
	require.InDelta(t, yaw+0.1, v.Camera().Yaw, 1e-12)

	v.button(orthoProjection(), 380, 390, arbor.MouseButtonRight, false, 0)
	v.motion(orthoProjection(), 370, 390, -10, 0, 0)
	require.InDelta(t, yaw+0.1, v.Camera().Yaw, 1e-12)
}

func TestViewerPickTolerance(t *testing.T) {
	conf := DefaultConfig()
	conf.PickTolerance = 12
	scene := arbor.NewSceneWithIndex(arbor.NewInteractiveIndex())
	NewViewer(scene, conf)
	require.Equal(t, 12.0, scene.Picker().Tolerance)
}

func TestViewerLayoutTracksWindow(t *testing.T) {
	v, _, _ := newTestViewer(t, DefaultConfig())
	w, h := v.Layout(800, 600)
	require.Equal(t, 800, w)
	require.Equal(t, 600, h)
	require.Equal(t, 800, v.Projection().Width)
	require.Equal(t, 600, v.Projection().Height)
}

// --- Screenshots ---

func TestSanitizeLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"frame", "frame"},
		{"  ", "unlabeled"},
		{"a b/c", "a_b_c"},
		{"ok-1_2", "ok-1_2"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScreenshotPaths(t *testing.T) {
	got := screenshotPaths("out", "20260101_000000", []string{"a", "b c"})
	require.Equal(t, []string{
		filepath.Join("out", "20260101_000000_a.png"),
		filepath.Join("out", "20260101_000000_b_c.png"),
	}, got)
}

func TestUnpremultiply(t *testing.T) {
	img := unpremultiply([]byte{64, 32, 0, 128, 10, 20, 30, 255}, 2, 1)
	require.Equal(t, []byte{127, 63, 0, 128, 10, 20, 30, 255}, img.Pix)
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shot.png")
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	require.NoError(t, writePNG(path, img))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Positive(t, info.Size())
}
