package arbor

import (
	"fmt"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

// globalDebug enables the structural checks run by Node.Add. Nodes carry no
// Scene pointer, so the flag is package state, set by Scene.SetDebugMode or
// SetDebugMode. The last call wins.
var globalDebug bool

// SetDebugMode enables or disables debug checks. When enabled, tree
// operations on disposed nodes panic, and cycles, deep trees and very wide
// nodes are logged as warnings.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("arbor debug: %s on disposed node %q (ID %d)", op, n.Name, n.ID))
	}
}

// debugCheckCycle warns when child is parent or one of its ancestors. Such an
// Add makes traversal and FindChild recurse without bound.
func debugCheckCycle(parent, child *Node) {
	if isAncestor(child, parent) {
		logs.Warn(errors.New("adding node would create a cycle").
			WithTag("parent", parent.Name).
			WithTag("child", child.Name).
			WithTag("child_id", child.ID))
	}
}

// debugCheckCollision warns when parent already holds a different node under
// child's ID. Add replaces it.
func debugCheckCollision(parent, child *Node) {
	if prev, ok := parent.children[child.ID]; ok && prev != child {
		logs.Warn(errors.New("node id collision").
			WithTag("parent", parent.Name).
			WithTag("replaced", prev.Name).
			WithTag("child", child.Name).
			WithTag("id", child.ID))
	}
}

// debugMaxTreeDepth is the parent-chain length above which Add warns.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil && depth <= debugMaxTreeDepth; p = p.Parent() {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logs.WithTag("node", n.Name).
			WithTag("threshold", debugMaxTreeDepth).
			Warn("tree depth exceeds threshold")
	}
}

// debugMaxChildCount is the child count above which Add warns.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.order) > debugMaxChildCount {
		logs.WithTag("node", n.Name).
			WithTag("children", len(n.order)).
			WithTag("threshold", debugMaxChildCount).
			Warn("node has too many children")
	}
}
