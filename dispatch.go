package arbor

import (
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl64"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Dispatcher, every delivered event is forwarded to it.
type EntityStore interface {
	EmitEvent(event InteractionEvent)
}

// InteractionEvent carries a delivered input event for the ECS bridge.
type InteractionEvent struct {
	Type      EventType
	PickID    uint32
	Button    MouseButton // valid for EventMouse
	Pressed   bool        // valid for EventMouse
	Window    mgl64.Vec3
	Object    mgl64.Vec3
	Modifiers KeyModifiers
	Handled   bool
}

// Dispatcher routes input events to interactive objects by pick identifier.
type Dispatcher struct {
	index *InteractiveIndex
	store EntityStore
}

// NewDispatcher creates a dispatcher resolving identifiers through index.
func NewDispatcher(index *InteractiveIndex) *Dispatcher {
	return &Dispatcher{index: index}
}

// SetEntityStore sets the optional ECS bridge. Nil disables it.
func (d *Dispatcher) SetEntityStore(store EntityStore) {
	d.store = store
}

// DispatchInput delivers ev to the object registered under pickID, stamping
// pickID into the event. Identifiers with no live registration are dropped
// silently. Reports whether the object handled the event.
func (d *Dispatcher) DispatchInput(pickID uint32, ev InputEvent) bool {
	target, ok := d.index.Find(pickID)
	if !ok {
		instrumentDispatch(dispatchDropped)
		logs.WithTag("pick_id", pickID).Debug("no interactive registered for pick id")
		return false
	}

	handled := ev.deliver(target, pickID)
	if handled {
		instrumentDispatch(dispatchHandled)
	} else {
		instrumentDispatch(dispatchUnhandled)
	}

	if d.store != nil {
		d.store.EmitEvent(ev.interaction(pickID, handled))
	}
	return handled
}

// DispatchHits offers ev to each identifier in order, typically the result
// of a pick pass sorted nearest first, and stops at the first object that
// handles it.
func (d *Dispatcher) DispatchHits(hits []uint32, ev InputEvent) bool {
	for _, id := range hits {
		if d.DispatchInput(id, ev) {
			return true
		}
	}
	return false
}
