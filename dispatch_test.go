package arbor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingStore collects the events forwarded to an EntityStore.
type recordingStore struct {
	events []InteractionEvent
}

func (s *recordingStore) EmitEvent(ev InteractionEvent) {
	s.events = append(s.events, ev)
}

func TestDispatchRoutesByPickID(t *testing.T) {
	index := NewInteractiveIndex()
	a := &stubInteractive{handle: true}
	b := &stubInteractive{handle: true}
	index.Store(a)
	tb := index.Store(b)

	d := NewDispatcher(index)
	handled := d.DispatchInput(tb.ID(), MouseEvent{Button: MouseButtonLeft, Pressed: true})

	require.True(t, handled)
	require.Empty(t, a.mouse)
	require.Len(t, b.mouse, 1)
	require.Equal(t, tb.ID(), b.mouse[0].PickID, "pick id stamped into event")
}

func TestDispatchMotion(t *testing.T) {
	index := NewInteractiveIndex()
	target := &stubInteractive{}
	tok := index.Store(target)

	handled := NewDispatcher(index).DispatchInput(tok.ID(), MotionEvent{Modifiers: ModAlt})
	require.False(t, handled)
	require.Len(t, target.motions, 1)
	require.Equal(t, ModAlt, target.motions[0].Modifiers)
	require.Empty(t, target.mouse)
}

func TestDispatchDropsUnknownID(t *testing.T) {
	routeLogs(t)
	index := NewInteractiveIndex()
	target := &stubInteractive{handle: true}
	tok := index.Store(target)
	id := tok.ID()
	tok.Release()

	store := &recordingStore{}
	d := NewDispatcher(index)
	d.SetEntityStore(store)

	require.False(t, d.DispatchInput(id, MouseEvent{Button: MouseWheelUp}))
	require.False(t, d.DispatchInput(0, MouseEvent{Button: MouseWheelUp}))
	require.Empty(t, target.mouse)
	require.Empty(t, store.events, "dropped events are not forwarded")
}

func TestDispatchHitsStopsAtFirstHandler(t *testing.T) {
	index := NewInteractiveIndex()
	skip := &stubInteractive{}
	take := &stubInteractive{handle: true}
	never := &stubInteractive{handle: true}
	ts := index.Store(skip)
	tt := index.Store(take)
	tn := index.Store(never)

	d := NewDispatcher(index)
	handled := d.DispatchHits([]uint32{ts.ID(), 999, tt.ID(), tn.ID()}, MouseEvent{Button: MouseWheelDown})

	require.True(t, handled)
	require.Len(t, skip.mouse, 1)
	require.Len(t, take.mouse, 1)
	require.Empty(t, never.mouse)
}

func TestDispatchForwardsToEntityStore(t *testing.T) {
	index := NewInteractiveIndex()
	tok := index.Store(&stubInteractive{handle: true})
	store := &recordingStore{}

	d := NewDispatcher(index)
	d.SetEntityStore(store)
	d.DispatchInput(tok.ID(), MouseEvent{Button: MouseButtonRight, Pressed: true, Modifiers: ModShift})

	require.Len(t, store.events, 1)
	ev := store.events[0]
	require.Equal(t, EventMouse, ev.Type)
	require.Equal(t, tok.ID(), ev.PickID)
	require.Equal(t, MouseButtonRight, ev.Button)
	require.True(t, ev.Pressed)
	require.Equal(t, ModShift, ev.Modifiers)
	require.True(t, ev.Handled)

	d.SetEntityStore(nil)
	d.DispatchInput(tok.ID(), MotionEvent{})
	require.Len(t, store.events, 1)
}
