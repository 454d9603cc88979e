package ecs

import (
	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// InteractionEventType is the Donburi event type for arbor interaction events.
// Subscribe to this in your ECS systems to receive wheel, button and motion
// events after the scene has dispatched them.
var InteractionEventType = events.NewEventType[arbor.InteractionEvent]()

// Pickable tags an entity with the pick identifier of the scene object it
// mirrors.
var Pickable = donburi.NewComponentType[uint32]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) arbor.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event arbor.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// NewPickableEntity creates an entity carrying the given pick identifier.
func NewPickableEntity(world donburi.World, pickID uint32) donburi.Entity {
	e := world.Create(Pickable)
	Pickable.SetValue(world.Entry(e), pickID)
	return e
}

// EntryForPick returns the first entity tagged with pickID. Identifier 0 never
// matches.
func EntryForPick(world donburi.World, pickID uint32) (*donburi.Entry, bool) {
	if pickID == 0 {
		return nil, false
	}
	var found *donburi.Entry
	donburi.NewQuery(filter.Contains(Pickable)).Each(world, func(entry *donburi.Entry) {
		if found == nil && *Pickable.Get(entry) == pickID {
			found = entry
		}
	})
	return found, found != nil
}
