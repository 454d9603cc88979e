package arbor

import "github.com/go-gl/mathgl/mgl64"

// MatrixStack holds the accumulated transform during a traversal pass.
// The bottom entry is the pass's base transform (identity by default) and is
// never popped. A stack belongs to one pass and must not be shared between
// concurrent traversals.
type MatrixStack struct {
	stack []mgl64.Mat4
}

// NewMatrixStack returns a stack holding only the identity transform.
func NewMatrixStack() *MatrixStack {
	return NewMatrixStackFrom(mgl64.Ident4())
}

// NewMatrixStackFrom returns a stack whose base transform is base.
func NewMatrixStackFrom(base mgl64.Mat4) *MatrixStack {
	s := &MatrixStack{stack: make([]mgl64.Mat4, 1, 16)}
	s.stack[0] = base
	return s
}

// Top returns the current accumulated transform.
func (s *MatrixStack) Top() mgl64.Mat4 {
	return s.stack[len(s.stack)-1]
}

// Push saves the current transform; the matching Pop restores it.
func (s *MatrixStack) Push() {
	s.stack = append(s.stack, s.Top())
}

// Pop restores the transform saved by the matching Push.
// Panics if there is no matching Push.
func (s *MatrixStack) Pop() {
	if len(s.stack) <= 1 {
		panic("arbor: matrix stack underflow")
	}
	s.stack = s.stack[:len(s.stack)-1]
}

// MulRight composes m onto the current transform: top = top * m.
func (s *MatrixStack) MulRight(m mgl64.Mat4) {
	i := len(s.stack) - 1
	s.stack[i] = s.stack[i].Mul4(m)
}

// Load replaces the current transform.
func (s *MatrixStack) Load(m mgl64.Mat4) {
	s.stack[len(s.stack)-1] = m
}

// Depth returns the number of outstanding Push calls.
func (s *MatrixStack) Depth() int {
	return len(s.stack) - 1
}

