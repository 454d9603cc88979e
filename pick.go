package arbor

import (
	"cmp"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultPickTolerance is how close, in pixels, the cursor must be to a line
// for the line to count as hit.
const DefaultPickTolerance = 4.0

// Projection maps world space to a window of Width x Height pixels whose
// origin is the top-left corner, Y increasing downward.
type Projection struct {
	View   mgl64.Mat4
	Proj   mgl64.Mat4
	Width  int
	Height int
}

// Project maps a model-space point to window coordinates. The Z component is
// the depth in [0, 1], smaller being nearer. The second result is false when
// the point lies behind the eye.
func (pr Projection) Project(model mgl64.Mat4, p mgl64.Vec3) (mgl64.Vec3, bool) {
	clip := pr.Proj.Mul4(pr.View).Mul4(model).Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return mgl64.Vec3{}, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl64.Vec3{
		float64(pr.Width) * (ndc.X() + 1) / 2,
		float64(pr.Height) * (1 - ndc.Y()) / 2,
		(ndc.Z() + 1) / 2,
	}, true
}

// Unproject maps a window point and depth back to world space.
func (pr Projection) Unproject(x, y, depth float64) (mgl64.Vec3, error) {
	win := mgl64.Vec3{x, float64(pr.Height) - y, depth}
	return mgl64.UnProject(win, pr.View, pr.Proj, 0, 0, pr.Width, pr.Height)
}

// Hit is one pick identifier struck by a pick pass and the nearest depth at
// which it was struck.
type Hit struct {
	ID    uint32
	Depth float64
}

// IDs returns the identifiers of hits in order.
func IDs(hits []Hit) []uint32 {
	ids := make([]uint32, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
	}
	return ids
}

// Picker runs pick passes. It stands in for both the canvas and the name
// stack: instead of drawing, each primitive is tested against the cursor and
// a hit is recorded for the identifier on top of the name stack. Primitives
// drawn with an empty name stack are never reported.
type Picker struct {
	Tolerance float64

	proj  Projection
	x, y  float64
	names []uint32
	hits  map[uint32]float64
}

// NewPicker returns a picker using DefaultPickTolerance.
func NewPicker() *Picker {
	return &Picker{
		Tolerance: DefaultPickTolerance,
		hits:      make(map[uint32]float64),
	}
}

// Pick runs a pick pass over root for the cursor at window point (x, y) and
// returns the identifiers struck, nearest first. Ties are broken by
// identifier so the order is deterministic.
func (pk *Picker) Pick(root *Node, proj Projection, x, y float64) []Hit {
	pk.proj = proj
	pk.x, pk.y = x, y
	pk.names = pk.names[:0]
	if pk.hits == nil {
		pk.hits = make(map[uint32]float64)
	}
	clear(pk.hits)

	Render(root, &RenderParams{
		Mode:   RenderPick,
		Stack:  NewMatrixStack(),
		Canvas: pk,
		Names:  pk,
	})

	hits := make([]Hit, 0, len(pk.hits))
	for id, depth := range pk.hits {
		hits = append(hits, Hit{ID: id, Depth: depth})
	}
	slices.SortFunc(hits, func(a, b Hit) int {
		if c := cmp.Compare(a.Depth, b.Depth); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return hits
}

// PushName implements NameStack.
func (pk *Picker) PushName(id uint32) {
	pk.names = append(pk.names, id)
}

// PopName implements NameStack. Panics without a matching PushName.
func (pk *Picker) PopName() {
	if len(pk.names) == 0 {
		panic("arbor: PopName on empty name stack")
	}
	pk.names = pk.names[:len(pk.names)-1]
}

// record keeps the nearest depth seen for the identifier on top of the
// name stack.
func (pk *Picker) record(depth float64) {
	if len(pk.names) == 0 {
		return
	}
	id := pk.names[len(pk.names)-1]
	if prev, ok := pk.hits[id]; !ok || depth < prev {
		pk.hits[id] = depth
	}
}

// DrawLine implements Canvas.
func (pk *Picker) DrawLine(model mgl64.Mat4, a, b mgl64.Vec3, _ Color) {
	if len(pk.names) == 0 {
		return
	}
	pa, okA := pk.proj.Project(model, a)
	pb, okB := pk.proj.Project(model, b)
	if !okA || !okB {
		return
	}
	dist, t := segmentDistance(pk.x, pk.y, pa, pb)
	if dist <= pk.Tolerance {
		pk.record(pa.Z() + t*(pb.Z()-pa.Z()))
	}
}

// cubeFaces lists the 12 triangles of a cube as indices into cubeCorners.
var cubeFaces = [12][3]int{
	{0, 1, 2}, {0, 2, 3}, // -z
	{4, 6, 5}, {4, 7, 6}, // +z
	{0, 4, 5}, {0, 5, 1}, // -y
	{3, 2, 6}, {3, 6, 7}, // +y
	{0, 3, 7}, {0, 7, 4}, // -x
	{1, 5, 6}, {1, 6, 2}, // +x
}

// cubeCorners returns the corners of a cube of edge length size centered on
// the origin.
func cubeCorners(size float64) [8]mgl64.Vec3 {
	h := size / 2
	return [8]mgl64.Vec3{
		{-h, -h, -h}, {h, -h, -h}, {h, h, -h}, {-h, h, -h},
		{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h},
	}
}

// DrawCube implements Canvas.
func (pk *Picker) DrawCube(model mgl64.Mat4, size float64, _ Color) {
	if len(pk.names) == 0 {
		return
	}
	corners := cubeCorners(size)
	var win [8]mgl64.Vec3
	for i, c := range corners {
		w, ok := pk.proj.Project(model, c)
		if !ok {
			return
		}
		win[i] = w
	}
	nearest := math.Inf(1)
	for _, f := range cubeFaces {
		if depth, ok := triangleDepth(pk.x, pk.y, win[f[0]], win[f[1]], win[f[2]]); ok && depth < nearest {
			nearest = depth
		}
	}
	if !math.IsInf(nearest, 1) {
		pk.record(nearest)
	}
}

// segmentDistance returns the window-space distance from (x, y) to the
// segment a-b and the parameter t in [0, 1] of the closest point.
func segmentDistance(x, y float64, a, b mgl64.Vec3) (float64, float64) {
	dx, dy := b.X()-a.X(), b.Y()-a.Y()
	lenSq := dx*dx + dy*dy
	var t float64
	if lenSq > 0 {
		t = ((x-a.X())*dx + (y-a.Y())*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	cx, cy := a.X()+t*dx, a.Y()+t*dy
	return math.Hypot(x-cx, y-cy), t
}

// triangleDepth reports whether (x, y) lies inside the window-space triangle
// a-b-c (either winding, edges inclusive) and, if so, the interpolated depth
// at that point.
func triangleDepth(x, y float64, a, b, c mgl64.Vec3) (float64, bool) {
	det := (b.Y()-c.Y())*(a.X()-c.X()) + (c.X()-b.X())*(a.Y()-c.Y())
	if det == 0 {
		return 0, false
	}
	l1 := ((b.Y()-c.Y())*(x-c.X()) + (c.X()-b.X())*(y-c.Y())) / det
	l2 := ((c.Y()-a.Y())*(x-c.X()) + (a.X()-c.X())*(y-c.Y())) / det
	l3 := 1 - l1 - l2
	const eps = -1e-9
	if l1 < eps || l2 < eps || l3 < eps {
		return 0, false
	}
	return l1*a.Z() + l2*b.Z() + l3*c.Z(), true
}
