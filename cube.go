package arbor

// Cube is leaf content drawing a solid, single-colored cube centered on its
// node's origin. It is not interactive: during a pick pass it is drawn under
// whatever identifier is already on the name stack, if any.
type Cube struct {
	Size  float64
	Color Color
}

// Draw implements Drawer.
func (c *Cube) Draw(p *RenderParams) {
	p.DrawCube(c.Size, c.Color)
}
