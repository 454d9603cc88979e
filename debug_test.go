package arbor

import (
	"strings"
	"testing"
)

func enableDebug(t *testing.T) {
	t.Helper()
	SetDebugMode(true)
	t.Cleanup(func() { SetDebugMode(false) })
}

func TestDebugAddDisposedPanics(t *testing.T) {
	enableDebug(t)
	parent := NewNode("parent")
	child := NewNode("child")
	child.Dispose()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Add of a disposed child should panic in debug mode")
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "disposed") {
			t.Errorf("panic = %v, want a message mentioning disposed", r)
		}
	}()
	parent.Add(child)
}

func TestAddDisposedWithoutDebug(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	child.Dispose()
	parent.Add(child)
	if parent.NumChildren() != 1 {
		t.Errorf("NumChildren = %d, want 1", parent.NumChildren())
	}
}

func TestDebugCycleWarns(t *testing.T) {
	enableDebug(t)
	routeLogs(t)
	a := NewNode("a")
	b := NewNode("b")
	a.Add(b)
	b.Add(a)
	if !isAncestor(a, b) {
		t.Error("a should be an ancestor of b")
	}
}

func TestDebugCollisionWarns(t *testing.T) {
	enableDebug(t)
	routeLogs(t)
	parent := NewNode("parent")
	a := NewNode("a")
	b := NewNode("b")
	b.ID = a.ID
	parent.Add(a).Add(b)
	if parent.NumChildren() != 1 || parent.Child(a.ID) != b {
		t.Error("later node should replace the earlier one")
	}
}

func TestDebugDeepTreeWarns(t *testing.T) {
	enableDebug(t)
	routeLogs(t)
	n := NewNode("n0")
	root := n
	for i := 0; i < debugMaxTreeDepth+2; i++ {
		c := NewNode("n")
		n.Add(c)
		n = c
	}
	if root.FindChild(n.ID) != n {
		t.Error("deep descendant should be found")
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewSceneWithIndex(NewInteractiveIndex())
	s.SetDebugMode(true)
	t.Cleanup(func() { s.SetDebugMode(false) })
	if !globalDebug {
		t.Error("debug mode should be enabled")
	}
	s.SetDebugMode(false)
	if globalDebug {
		t.Error("debug mode should be disabled")
	}
}
