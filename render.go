package arbor

import "github.com/go-gl/mathgl/mgl64"

// Canvas is the drawing primitive service used by leaf content. Every call
// receives the accumulated model transform in effect at the call site.
type Canvas interface {
	// DrawLine draws a segment between a and b, given in model space.
	DrawLine(model mgl64.Mat4, a, b mgl64.Vec3, c Color)
	// DrawCube draws a solid cube of edge length size centered on the
	// model-space origin.
	DrawCube(model mgl64.Mat4, size float64, c Color)
}

// NameStack is the selection-name service used during a pick pass. Each
// clickable sub-part pushes its pick identifier before drawing and pops it
// afterwards.
type NameStack interface {
	PushName(id uint32)
	PopName()
}

// RenderParams is passed unchanged through every recursive Render call of a
// pass.
type RenderParams struct {
	Mode   RenderMode
	Stack  *MatrixStack
	Canvas Canvas
	Names  NameStack
}

// DrawLine forwards to the canvas with the current accumulated transform.
func (p *RenderParams) DrawLine(a, b mgl64.Vec3, c Color) {
	if p.Canvas != nil {
		p.Canvas.DrawLine(p.Stack.Top(), a, b, c)
	}
}

// DrawCube forwards to the canvas with the current accumulated transform.
func (p *RenderParams) DrawCube(size float64, c Color) {
	if p.Canvas != nil {
		p.Canvas.DrawCube(p.Stack.Top(), size, c)
	}
}

// PushName pushes a pick identifier. Outside a pick pass it does nothing.
func (p *RenderParams) PushName(id uint32) {
	if p.Mode == RenderPick && p.Names != nil {
		p.Names.PushName(id)
	}
}

// PopName pops the identifier pushed by the matching PushName.
func (p *RenderParams) PopName() {
	if p.Mode == RenderPick && p.Names != nil {
		p.Names.PopName()
	}
}

// Render runs a full traversal pass starting at root. The root's own
// Transform is not applied: the stack's current transform is the root's
// frame. A nil Stack is replaced by a fresh identity stack. An invisible root
// draws nothing.
func Render(root *Node, p *RenderParams) {
	if root == nil || !root.Visible {
		return
	}
	if p.Stack == nil {
		p.Stack = NewMatrixStack()
	}
	instrumentRenderPass(p.Mode)
	root.Render(p)
}

// Render draws the node's content, if any, and then its visible children.
// The caller is responsible for having composed the node's own transform.
func (n *Node) Render(p *RenderParams) {
	if n.Content != nil {
		n.Content.Draw(p)
	}
	n.RenderChildren(p)
}

// RenderChildren renders every visible child in ascending ID order. Each
// child is drawn with its transform composed onto the accumulated one,
// followed by its overlay using that same transform.
func (n *Node) RenderChildren(p *RenderParams) {
	for _, id := range n.order {
		child := n.children[id]
		if !child.Visible {
			continue
		}
		renderChild(child, p)
	}
}

// renderChild brackets one child with a Push/Pop pair. The Pop is deferred so
// the stack stays balanced even when a draw call panics.
func renderChild(child *Node, p *RenderParams) {
	p.Stack.Push()
	defer p.Stack.Pop()

	p.Stack.MulRight(child.Transform)
	child.Render(p)
	if child.overlay != nil {
		child.overlay.Render(p)
	}
}
