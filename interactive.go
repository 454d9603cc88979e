package arbor

import "github.com/go-gl/mathgl/mgl64"

// Interactive is implemented by objects that respond to pointer input routed
// through pick identifiers. Both methods report whether the event was
// handled. The event's PickID tells multi-part objects which part was hit.
type Interactive interface {
	Mouse(ev MouseEvent) bool
	MouseMotion(ev MotionEvent) bool
}

// Manipulator is an Interactive overlay drawn after the node it is attached
// to, using that node's accumulated transform.
type Manipulator interface {
	Interactive
	Render(p *RenderParams)
}

// Drawer is leaf content drawn by a node during traversal.
type Drawer interface {
	Draw(p *RenderParams)
}

// Attacher is implemented by manipulators that need to know which node they
// control. Node.SetOverlay calls Attach with the node, and Attach(nil) when
// the manipulator is replaced.
type Attacher interface {
	Attach(n *Node)
}

// Releaser is implemented by objects owning registry tokens. Node.Dispose
// and overlay replacement call Release on the node's overlay, and so does the
// runtime once a node holding it is garbage collected. Release may therefore
// run on the runtime's cleanup goroutine.
type Releaser interface {
	Release()
}

// MouseEvent carries a button press/release or a wheel step.
type MouseEvent struct {
	Button    MouseButton
	Window    mgl64.Vec3 // cursor x, y and hit depth in window space
	Object    mgl64.Vec3 // hit point in world space
	Normal    mgl64.Vec3 // surface normal at the hit point, zero if unknown
	Pressed   bool
	Modifiers KeyModifiers
	PickID    uint32
}

// MotionEvent carries pointer movement over a pickable part.
type MotionEvent struct {
	Window    mgl64.Vec3
	Object    mgl64.Vec3
	Normal    mgl64.Vec3
	Modifiers KeyModifiers
	PickID    uint32
}

// InputEvent is either a MouseEvent or a MotionEvent.
type InputEvent interface {
	deliver(target Interactive, pickID uint32) bool
	interaction(pickID uint32, handled bool) InteractionEvent
}

func (ev MouseEvent) deliver(target Interactive, pickID uint32) bool {
	ev.PickID = pickID
	return target.Mouse(ev)
}

func (ev MouseEvent) interaction(pickID uint32, handled bool) InteractionEvent {
	return InteractionEvent{
		Type:      EventMouse,
		PickID:    pickID,
		Button:    ev.Button,
		Pressed:   ev.Pressed,
		Window:    ev.Window,
		Object:    ev.Object,
		Modifiers: ev.Modifiers,
		Handled:   handled,
	}
}

func (ev MotionEvent) deliver(target Interactive, pickID uint32) bool {
	ev.PickID = pickID
	return target.MouseMotion(ev)
}

func (ev MotionEvent) interaction(pickID uint32, handled bool) InteractionEvent {
	return InteractionEvent{
		Type:      EventMouseMotion,
		PickID:    pickID,
		Window:    ev.Window,
		Object:    ev.Object,
		Modifiers: ev.Modifiers,
		Handled:   handled,
	}
}
