package arbor

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Axis colors used by the built-in manipulators.
var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorRed   = Color{1, 0, 0, 1}
	ColorGreen = Color{0, 1, 0, 1}
	ColorBlue  = Color{0, 0, 1, 1}
)

// RGBA converts c to an 8-bit premultiplied color.RGBA, clamping each
// component to [0, 1].
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RenderMode selects what a traversal pass is for.
type RenderMode uint8

const (
	RenderNormal RenderMode = iota // visible output
	RenderPick                     // hit testing; clickable parts emit pick identifiers
)

// String returns the lower-case name of the mode.
func (m RenderMode) String() string {
	switch m {
	case RenderNormal:
		return "normal"
	case RenderPick:
		return "pick"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventMouse       EventType = iota // button press/release or wheel step
	EventMouseMotion                  // pointer moved over a pickable part
)

// MouseButton identifies a mouse button. Wheel steps are reported as buttons,
// one event per step.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
	MouseButtonRight                     // secondary (right) mouse button
	MouseWheelUp                         // one wheel step away from the user
	MouseWheelDown                       // one wheel step toward the user
	MouseWheelLeft                       // horizontal wheel step left
	MouseWheelRight                      // horizontal wheel step right
)

// IsWheel reports whether b is a wheel step rather than a physical button.
func (b MouseButton) IsWheel() bool {
	return b >= MouseWheelUp
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Has reports whether all bits of m are set.
func (k KeyModifiers) Has(m KeyModifiers) bool {
	return k&m == m
}
