package arbor

import "github.com/go-gl/mathgl/mgl64"

// Scene is the top-level object that owns the node tree, the identifier
// index, the dispatcher and the picker. All methods must be called from the
// goroutine that renders and handles input.
type Scene struct {
	root       *Node
	index      *InteractiveIndex
	dispatcher *Dispatcher
	picker     *Picker
}

// NewScene creates a scene with a pre-created root group, resolving pick
// identifiers through DefaultIndex.
func NewScene() *Scene {
	return NewSceneWithIndex(DefaultIndex())
}

// NewSceneWithIndex creates a scene resolving pick identifiers through index.
func NewSceneWithIndex(index *InteractiveIndex) *Scene {
	return &Scene{
		root:       NewNode("root"),
		index:      index,
		dispatcher: NewDispatcher(index),
		picker:     NewPicker(),
	}
}

// Root returns the scene's root group.
func (s *Scene) Root() *Node {
	return s.root
}

// Index returns the index manipulators in this scene should register with.
func (s *Scene) Index() *InteractiveIndex {
	return s.index
}

// Dispatcher returns the scene's dispatcher.
func (s *Scene) Dispatcher() *Dispatcher {
	return s.dispatcher
}

// Picker returns the scene's picker, e.g. to adjust its tolerance.
func (s *Scene) Picker() *Picker {
	return s.picker
}

// NewAxis creates an axis gizmo registered with the scene's index and
// attaches it as n's overlay.
func (s *Scene) NewAxis(n *Node) *Axis {
	a := NewAxis(s.index)
	n.SetOverlay(a)
	return a
}

// Render runs a normal pass over the tree, drawing onto c with base as the
// outermost transform (typically identity; canvases apply view and
// projection themselves).
func (s *Scene) Render(c Canvas, base mgl64.Mat4) {
	Render(s.root, &RenderParams{
		Mode:   RenderNormal,
		Stack:  NewMatrixStackFrom(base),
		Canvas: c,
	})
}

// Pick runs a pick pass for the cursor at window point (x, y).
func (s *Scene) Pick(proj Projection, x, y float64) []Hit {
	return s.picker.Pick(s.root, proj, x, y)
}

// HandleMouse picks at (x, y) and offers ev to the struck objects, nearest
// first, filling in the window and world coordinates of each hit. Reports
// whether any object handled it.
func (s *Scene) HandleMouse(proj Projection, x, y float64, ev MouseEvent) bool {
	for _, h := range s.Pick(proj, x, y) {
		ev.Window, ev.Object = hitCoords(proj, x, y, h)
		if s.dispatcher.DispatchInput(h.ID, ev) {
			return true
		}
	}
	return false
}

// HandleMotion is the MotionEvent counterpart of HandleMouse.
func (s *Scene) HandleMotion(proj Projection, x, y float64, ev MotionEvent) bool {
	for _, h := range s.Pick(proj, x, y) {
		ev.Window, ev.Object = hitCoords(proj, x, y, h)
		if s.dispatcher.DispatchInput(h.ID, ev) {
			return true
		}
	}
	return false
}

func hitCoords(proj Projection, x, y float64, h Hit) (window, object mgl64.Vec3) {
	window = mgl64.Vec3{x, y, h.Depth}
	if obj, err := proj.Unproject(x, y, h.Depth); err == nil {
		object = obj
	}
	return window, object
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.dispatcher.SetEntityStore(store)
}

// SetDebugMode enables or disables debug mode for node operations. The flag
// is process-wide; see the package-level SetDebugMode.
func (s *Scene) SetDebugMode(enabled bool) {
	SetDebugMode(enabled)
}
