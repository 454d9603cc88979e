package arbor

import (
	"weak"

	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultAxisStep is the wheel step of an Axis: radians when rotating, model
// units when translating. Holding Shift divides it by 10.
const DefaultAxisStep = 0.01

// fineStepDivisor scales the step down while Shift is held.
const fineStepDivisor = 10

var (
	unitX = mgl64.Vec3{1, 0, 0}
	unitY = mgl64.Vec3{0, 1, 0}
	unitZ = mgl64.Vec3{0, 0, 1}
)

// Axis is a gizmo showing a node's x, y and z axes as red, green and blue
// lines. Each line is a separate pick target. Wheel steps over a line move the
// node it is attached to:
//
//	Ctrl + wheel          rotate about the line's axis
//	Shift + wheel         translate along the line's axis
//	Ctrl + Shift + wheel  rotate with a tenth of the step
//
// Motion is expressed in the node's own frame.
type Axis struct {
	Length float64
	Step   float64

	target weak.Pointer[Node]
	x, y, z *Token
}

// NewAxis creates an axis gizmo registering one pick identifier per line in
// index. Call Release (or dispose the node it is attached to) to unregister.
func NewAxis(index *InteractiveIndex) *Axis {
	a := &Axis{Length: 1, Step: DefaultAxisStep}
	a.x = index.Store(a)
	a.y = index.Store(a)
	a.z = index.Store(a)
	return a
}

// Attach sets the node whose transform the gizmo edits. Attach(nil) detaches
// the gizmo; wheel steps are then left unhandled.
func (a *Axis) Attach(n *Node) {
	a.target = weak.Make(n)
}

// Target returns the attached node, or nil.
func (a *Axis) Target() *Node {
	return a.target.Value()
}

// PickIDs returns the x, y and z pick identifiers.
func (a *Axis) PickIDs() (x, y, z uint32) {
	return a.x.ID(), a.y.ID(), a.z.ID()
}

// Release unregisters all three pick identifiers.
func (a *Axis) Release() {
	a.x.Release()
	a.y.Release()
	a.z.Release()
}

// Render draws the three axis lines, each under its own pick identifier.
func (a *Axis) Render(p *RenderParams) {
	a.renderLine(p, a.x, unitX, ColorRed)
	a.renderLine(p, a.y, unitY, ColorGreen)
	a.renderLine(p, a.z, unitZ, ColorBlue)
}

func (a *Axis) renderLine(p *RenderParams, t *Token, dir mgl64.Vec3, c Color) {
	p.PushName(t.ID())
	p.DrawLine(mgl64.Vec3{}, dir.Mul(a.Length), c)
	p.PopName()
}

// pickedAxis maps a pick identifier to the unit vector of the line it
// belongs to.
func (a *Axis) pickedAxis(pickID uint32) (mgl64.Vec3, bool) {
	if pickID == 0 {
		return mgl64.Vec3{}, false
	}
	switch pickID {
	case a.x.ID():
		return unitX, true
	case a.y.ID():
		return unitY, true
	case a.z.ID():
		return unitZ, true
	}
	return mgl64.Vec3{}, false
}

// Mouse handles wheel steps over one of the lines. Ctrl takes precedence over
// Shift; without either the event is left unhandled.
func (a *Axis) Mouse(ev MouseEvent) bool {
	if ev.Button != MouseWheelUp && ev.Button != MouseWheelDown {
		return false
	}
	axis, ok := a.pickedAxis(ev.PickID)
	if !ok {
		return false
	}
	n := a.target.Value()
	if n == nil {
		return false
	}

	step := a.Step
	if ev.Button == MouseWheelDown {
		step = -step
	}
	if ev.Modifiers.Has(ModShift) {
		step /= fineStepDivisor
	}

	var delta mgl64.Mat4
	switch {
	case ev.Modifiers.Has(ModCtrl):
		delta = mgl64.HomogRotate3D(step, axis)
	case ev.Modifiers.Has(ModShift):
		t := axis.Mul(step)
		delta = mgl64.Translate3D(t.X(), t.Y(), t.Z())
	default:
		return false
	}
	n.Transform = n.Transform.Mul4(delta.Inv())
	return true
}

// MouseMotion is not used by the axis gizmo.
func (a *Axis) MouseMotion(ev MotionEvent) bool {
	logs.WithTag("pick_id", ev.PickID).
		WithTag("modifiers", ev.Modifiers).
		Debug("axis motion ignored")
	return false
}
