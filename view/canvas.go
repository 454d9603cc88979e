package view

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/arbor"
)

// DefaultLineWidth is the stroke width, in pixels, of lines and cube edges.
const DefaultLineWidth = 2

// strokeFunc draws one window-space segment.
type strokeFunc func(x0, y0, x1, y1 float32, clr color.Color)

// Canvas draws arbor primitives onto an ebiten image as projected wireframe.
// Segments with an end behind the eye are skipped.
type Canvas struct {
	proj   arbor.Projection
	stroke strokeFunc
}

// NewCanvas returns a canvas drawing onto dst through proj.
func NewCanvas(dst *ebiten.Image, proj arbor.Projection, lineWidth float32) *Canvas {
	if lineWidth <= 0 {
		lineWidth = DefaultLineWidth
	}
	return &Canvas{
		proj: proj,
		stroke: func(x0, y0, x1, y1 float32, clr color.Color) {
			vector.StrokeLine(dst, x0, y0, x1, y1, lineWidth, clr, true)
		},
	}
}

// DrawLine implements arbor.Canvas.
func (c *Canvas) DrawLine(model mgl64.Mat4, a, b mgl64.Vec3, clr arbor.Color) {
	c.segment(model, a, b, clr.RGBA())
}

// cubeEdges lists the 12 edges of a cube as indices into cubeCorners.
var cubeEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func cubeCorners(size float64) [8]mgl64.Vec3 {
	h := size / 2
	return [8]mgl64.Vec3{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}
}

// DrawCube implements arbor.Canvas by stroking the cube's edges.
func (c *Canvas) DrawCube(model mgl64.Mat4, size float64, clr arbor.Color) {
	corners := cubeCorners(size)
	rgba := clr.RGBA()
	for _, e := range cubeEdges {
		c.segment(model, corners[e[0]], corners[e[1]], rgba)
	}
}

func (c *Canvas) segment(model mgl64.Mat4, a, b mgl64.Vec3, clr color.Color) {
	pa, okA := c.proj.Project(model, a)
	pb, okB := c.proj.Project(model, b)
	if !okA || !okB {
		return
	}
	c.stroke(float32(pa.X()), float32(pa.Y()), float32(pb.X()), float32(pb.Y()), clr)
}
