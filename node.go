package arbor

import (
	"runtime"
	"slices"
	"weak"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// newNodeID returns a random non-zero 32-bit identifier. Collisions between
// live nodes are possible in principle but not checked.
func newNodeID() uint32 {
	for {
		if id := uuid.New().ID(); id != 0 {
			return id
		}
	}
}

// Node is the scene graph element. Every node carries a local transform
// relative to its parent, a visibility flag, optional leaf content and an
// optional manipulator overlay.
//
// A node may be held by several parents at once; it stays alive for as long
// as any holder references it. The parent link is weak so that a subtree
// never keeps its ancestors alive.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Transform maps this node's space into its parent's space.
	Transform mgl64.Mat4

	// Visible=false skips this node and its whole subtree during traversal.
	Visible bool

	// Content is drawn by Render before the children. Nil for plain groups.
	Content Drawer

	parent   weak.Pointer[Node]
	children map[uint32]*Node
	order    []uint32 // child IDs, ascending
	overlay  Manipulator
	disposed bool

	// releaseOverlay releases the overlay's tokens once the node is collected.
	releaseOverlay runtime.Cleanup
	watching       bool
}

// NewNode creates a group node with an identity transform and no content.
func NewNode(name string) *Node {
	return &Node{
		ID:        newNodeID(),
		Name:      name,
		Transform: mgl64.Ident4(),
		Visible:   true,
	}
}

// NewCube creates a node whose content is a solid cube of the given edge
// length, centered on the node's origin.
func NewCube(name string, size float64, c Color) *Node {
	n := NewNode(name)
	n.Content = &Cube{Size: size, Color: c}
	return n
}

// --- Tree manipulation ---

// Add inserts child keyed by its ID and points the child's parent link at n.
// A nil child is ignored. Adding a child that is already present is a no-op
// apart from refreshing its parent link. Add does not detach the child from
// other parents: a node may be shared, in which case Parent reports the most
// recent one. Returns n for chaining.
func (n *Node) Add(child *Node) *Node {
	if child == nil {
		return n
	}
	if globalDebug {
		debugCheckDisposed(n, "Add (parent)")
		debugCheckDisposed(child, "Add (child)")
		debugCheckCycle(n, child)
		debugCheckCollision(n, child)
	}
	if n.children == nil {
		n.children = make(map[uint32]*Node)
	}
	if _, ok := n.children[child.ID]; !ok {
		i, _ := slices.BinarySearch(n.order, child.ID)
		n.order = slices.Insert(n.order, i, child.ID)
	}
	n.children[child.ID] = child
	child.parent = weak.Make(n)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
	return n
}

// Remove detaches the child with the given ID and returns it, or nil if n has
// no such child. The child's parent link is cleared only if it points at n.
// A removed child that is dropped without Dispose has its overlay's pick
// identifiers released when it is garbage collected.
func (n *Node) Remove(id uint32) *Node {
	child, ok := n.children[id]
	if !ok {
		return nil
	}
	delete(n.children, id)
	if i, found := slices.BinarySearch(n.order, id); found {
		n.order = slices.Delete(n.order, i, i+1)
	}
	if child.parent.Value() == n {
		child.parent = weak.Pointer[Node]{}
	}
	return child
}

// RemoveFromParent detaches n from its current parent.
// No-op if n has no live parent.
func (n *Node) RemoveFromParent() {
	if p := n.Parent(); p != nil {
		p.Remove(n.ID)
	}
}

// Parent returns the node n was most recently added to, or nil if there is
// none or it has been garbage collected.
func (n *Node) Parent() *Node {
	return n.parent.Value()
}

// Children returns the children in traversal order (ascending ID).
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.order))
	for _, id := range n.order {
		out = append(out, n.children[id])
	}
	return out
}

// NumChildren returns the number of direct children.
func (n *Node) NumChildren() int {
	return len(n.order)
}

// Child returns the direct child with the given ID, or nil.
func (n *Node) Child(id uint32) *Node {
	return n.children[id]
}

// FindChild searches the subtree below n for a node with the given ID.
// Direct children are checked first, then each child's subtree in traversal
// order. Returns nil if no descendant matches.
func (n *Node) FindChild(id uint32) *Node {
	if c, ok := n.children[id]; ok {
		return c
	}
	for _, cid := range n.order {
		if found := n.children[cid].FindChild(id); found != nil {
			return found
		}
	}
	return nil
}

// --- Overlay ---

// SetOverlay attaches m as this node's manipulator, replacing any previous
// one. The overlay is drawn after the node using the node's accumulated
// transform. If m implements Attacher it is told which node it now controls.
// A replaced overlay is detached and, if it implements Releaser, released, so
// its pick identifiers stop resolving. Passing nil detaches the current
// overlay.
//
// An overlay implementing Releaser is also released when n is garbage
// collected without being disposed, provided the overlay does not itself keep
// n reachable.
func (n *Node) SetOverlay(m Manipulator) {
	old := n.overlay
	if old == m {
		return
	}
	if old != nil {
		n.stopWatchingOverlay()
		if a, ok := old.(Attacher); ok {
			a.Attach(nil)
		}
		if r, ok := old.(Releaser); ok {
			r.Release()
		}
	}
	n.overlay = m
	if a, ok := m.(Attacher); ok {
		a.Attach(n)
	}
	if r, ok := m.(Releaser); ok {
		n.releaseOverlay = runtime.AddCleanup(n, Releaser.Release, r)
		n.watching = true
	}
}

func (n *Node) stopWatchingOverlay() {
	if n.watching {
		n.releaseOverlay.Stop()
		n.watching = false
	}
}

// Overlay returns the attached manipulator, or nil.
func (n *Node) Overlay() Manipulator {
	return n.overlay
}

// --- Transform helpers ---

// SetPosition replaces the translation part of the local transform.
func (n *Node) SetPosition(x, y, z float64) {
	n.Transform.SetCol(3, mgl64.Vec4{x, y, z, 1})
}

// Position returns the translation part of the local transform.
func (n *Node) Position() mgl64.Vec3 {
	return n.Transform.Col(3).Vec3()
}

// WorldTransform composes the local transforms from the root of n's parent
// chain down to n. Shared nodes follow their most recent parent.
func (n *Node) WorldTransform() mgl64.Mat4 {
	m := n.Transform
	for p := n.Parent(); p != nil; p = p.Parent() {
		m = p.Transform.Mul4(m)
	}
	return m
}

// --- Disposal ---

// Dispose removes n from its parent, releases the tokens held by its overlay
// and recursively disposes all descendants. Nodes shared with other parents
// are disposed too; callers that share subtrees should detach them first.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	for _, id := range n.order {
		child := n.children[id]
		child.parent = weak.Pointer[Node]{}
		if !child.disposed {
			child.dispose()
		}
	}
	n.stopWatchingOverlay()
	if r, ok := n.overlay.(Releaser); ok {
		r.Release()
	}
	n.overlay = nil
	n.children = nil
	n.order = nil
	n.Content = nil
	n.parent = weak.Pointer[Node]{}
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// isAncestor reports whether candidate is node or one of its ancestors.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent() {
		if p == candidate {
			return true
		}
	}
	return false
}
