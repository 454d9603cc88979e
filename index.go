package arbor

import "sync"

// InteractiveIndex maps small pick identifiers to the interactive objects
// that emitted them. Identifiers come from a counter starting at 1; 0 means
// "no identifier". Entries live exactly as long as the Token that Store
// returned.
//
// Store, Find and dispatch belong on the goroutine that renders and handles
// input. The index itself is locked because tokens of garbage collected nodes
// are released from the runtime's cleanup goroutine.
type InteractiveIndex struct {
	mu      sync.Mutex
	next    uint32
	entries map[uint32]Interactive
}

// NewInteractiveIndex creates an empty index.
func NewInteractiveIndex() *InteractiveIndex {
	return &InteractiveIndex{entries: make(map[uint32]Interactive)}
}

var defaultIndex *InteractiveIndex

// DefaultIndex returns the process-wide index, creating it on first use.
// It shares the single-goroutine confinement of InteractiveIndex.
func DefaultIndex() *InteractiveIndex {
	if defaultIndex == nil {
		defaultIndex = NewInteractiveIndex()
	}
	return defaultIndex
}

// Store registers target under a fresh identifier and returns the Token that
// owns the entry. Panics if target is nil.
func (x *InteractiveIndex) Store(target Interactive) *Token {
	if target == nil {
		panic("arbor: cannot store nil interactive")
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	x.next++
	id := x.next
	x.entries[id] = target
	instrumentIndexStore()
	return &Token{id: id, index: x}
}

// Find returns the object registered under id. The second result is false
// when no live Token holds id, which callers treat as "ignore the event".
func (x *InteractiveIndex) Find(id uint32) (Interactive, bool) {
	if id == 0 {
		return nil, false
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	target, ok := x.entries[id]
	return target, ok
}

// Unstore removes the entry owned by t and zeroes t's identifier. Releasing
// an empty token, or one issued by another index, is a no-op.
func (x *InteractiveIndex) Unstore(t *Token) {
	if t == nil || t.index != x {
		return
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if t.id == 0 {
		return
	}
	if _, ok := x.entries[t.id]; ok {
		delete(x.entries, t.id)
		instrumentIndexUnstore()
	}
	t.id = 0
}

// Len returns the number of live entries.
func (x *InteractiveIndex) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.entries)
}

// Token owns one InteractiveIndex entry. Call Release when the owning object
// goes away; a released, moved-from or zero Token holds nothing.
type Token struct {
	id    uint32
	index *InteractiveIndex
}

// ID returns the pick identifier, or 0 if the token holds no entry.
func (t *Token) ID() uint32 {
	if t == nil {
		return 0
	}
	return t.id
}

// Valid reports whether the token currently owns an entry.
func (t *Token) Valid() bool {
	return t.ID() != 0
}

// Release removes the token's entry from its index. Safe to call repeatedly.
func (t *Token) Release() {
	if t == nil || t.index == nil {
		return
	}
	t.index.Unstore(t)
}

// Move transfers ownership of the entry to a new Token and empties t.
// The identifier keeps resolving through the returned Token. Moving a nil
// Token returns nil.
func (t *Token) Move() *Token {
	if t == nil {
		return nil
	}
	moved := &Token{id: t.id, index: t.index}
	t.id = 0
	t.index = nil
	return moved
}
