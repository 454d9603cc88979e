package view

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/phanxgames/arbor"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// maxPitch keeps the eye off the poles, where the Y-up look-at degenerates.
const maxPitch = math.Pi/2 - 0.01

// Camera is an orbit camera looking at Target from Distance units away.
// Yaw turns about the world Y axis, Pitch raises the eye above the XZ plane.
type Camera struct {
	Target   mgl64.Vec3
	Distance float64
	Yaw      float64
	Pitch    float64

	// FovY is the vertical field of view in radians.
	FovY      float64
	Near, Far float64

	// Distance is clamped to [MinDistance, MaxDistance] by Zoom and ZoomTo.
	MinDistance float64
	MaxDistance float64

	zoomTween *gween.Tween
}

// NewCamera creates a camera looking at the origin from slightly above.
func NewCamera() *Camera {
	return &Camera{
		Distance:    6,
		Yaw:         0.6,
		Pitch:       0.4,
		FovY:        mgl64.DegToRad(45),
		Near:        0.1,
		Far:         100,
		MinDistance: 0.5,
		MaxDistance: 50,
	}
}

// Eye returns the world-space eye position.
func (c *Camera) Eye() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	dir := mgl64.Vec3{cp * math.Sin(c.Yaw), math.Sin(c.Pitch), cp * math.Cos(c.Yaw)}
	return c.Target.Add(dir.Mul(c.Distance))
}

// View returns the world-to-eye transform.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
}

// Projection returns the projection for a window of w x h pixels.
func (c *Camera) Projection(w, h int) arbor.Projection {
	aspect := float64(w) / float64(max(h, 1))
	return arbor.Projection{
		View:   c.View(),
		Proj:   mgl64.Perspective(c.FovY, aspect, c.Near, c.Far),
		Width:  w,
		Height: h,
	}
}

// Orbit turns the camera around Target. Pitch is clamped short of the poles.
func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw += dyaw
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+dpitch))
}

// Zoom multiplies Distance by factor, cancelling any running ZoomTo.
func (c *Camera) Zoom(factor float64) {
	c.zoomTween = nil
	c.Distance = c.clampDistance(c.Distance * factor)
}

// ZoomTo animates Distance to distance over duration seconds.
func (c *Camera) ZoomTo(distance float64, duration float32, easeFn ease.TweenFunc) {
	c.zoomTween = gween.New(float32(c.Distance), float32(c.clampDistance(distance)), duration, easeFn)
}

// Zooming reports whether a ZoomTo animation is running.
func (c *Camera) Zooming() bool {
	return c.zoomTween != nil
}

// Update advances the zoom animation by dt seconds.
func (c *Camera) Update(dt float32) {
	if c.zoomTween == nil {
		return
	}
	val, done := c.zoomTween.Update(dt)
	c.Distance = float64(val)
	if done {
		c.zoomTween = nil
	}
}

func (c *Camera) clampDistance(d float64) float64 {
	lo, hi := c.MinDistance, c.MaxDistance
	if lo <= 0 {
		lo = c.Near
	}
	if hi <= lo {
		return math.Max(d, lo)
	}
	return math.Max(lo, math.Min(d, hi))
}
