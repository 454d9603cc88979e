package view

import "github.com/phanxgames/arbor"

type syntheticKind uint8

const (
	syntheticWheel syntheticKind = iota
	syntheticPress
	syntheticRelease
	syntheticMove
)

// syntheticEvent is one injected input event in window coordinates.
type syntheticEvent struct {
	kind   syntheticKind
	x, y   float64
	button arbor.MouseButton
	mods   arbor.KeyModifiers
}

// InjectWheel queues one wheel step at the given window coordinates. The
// event is consumed on the next Update, in place of real input.
func (v *Viewer) InjectWheel(x, y float64, b arbor.MouseButton, mods arbor.KeyModifiers) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{kind: syntheticWheel, x: x, y: y, button: b, mods: mods})
}

// InjectPress queues a button press at the given window coordinates.
func (v *Viewer) InjectPress(x, y float64, b arbor.MouseButton, mods arbor.KeyModifiers) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{kind: syntheticPress, x: x, y: y, button: b, mods: mods})
}

// InjectRelease queues a button release at the given window coordinates.
func (v *Viewer) InjectRelease(x, y float64, b arbor.MouseButton, mods arbor.KeyModifiers) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{kind: syntheticRelease, x: x, y: y, button: b, mods: mods})
}

// InjectMove queues a cursor move to the given window coordinates.
func (v *Viewer) InjectMove(x, y float64, mods arbor.KeyModifiers) {
	v.injectQueue = append(v.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y, mods: mods})
}

// InjectClick queues a press followed by a release at the same coordinates.
// Consumes two frames.
func (v *Viewer) InjectClick(x, y float64, b arbor.MouseButton, mods arbor.KeyModifiers) {
	v.InjectPress(x, y, b, mods)
	v.InjectRelease(x, y, b, mods)
}

// processInjected consumes one queued event. Returns true if an event was
// consumed, in which case real input is skipped for the frame.
func (v *Viewer) processInjected(proj arbor.Projection) bool {
	if len(v.injectQueue) == 0 {
		return false
	}
	ev := v.injectQueue[0]
	copy(v.injectQueue, v.injectQueue[1:])
	v.injectQueue = v.injectQueue[:len(v.injectQueue)-1]

	switch ev.kind {
	case syntheticWheel:
		v.wheelStep(proj, ev.x, ev.y, ev.button, ev.mods)
	case syntheticPress:
		v.button(proj, ev.x, ev.y, ev.button, true, ev.mods)
	case syntheticRelease:
		v.button(proj, ev.x, ev.y, ev.button, false, ev.mods)
	case syntheticMove:
		v.motion(proj, ev.x, ev.y, ev.x-v.injectX, ev.y-v.injectY, ev.mods)
	}
	v.injectX, v.injectY = ev.x, ev.y
	return true
}
