package view

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/arbor"
)

// readModifiers reads the current keyboard modifier state.
func readModifiers() arbor.KeyModifiers {
	var mods arbor.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= arbor.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= arbor.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= arbor.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= arbor.ModMeta
	}
	return mods
}

// buttonMap pairs the physical ebiten buttons with arbor buttons.
var buttonMap = [...]struct {
	from ebiten.MouseButton
	to   arbor.MouseButton
}{
	{ebiten.MouseButtonLeft, arbor.MouseButtonLeft},
	{ebiten.MouseButtonMiddle, arbor.MouseButtonMiddle},
	{ebiten.MouseButtonRight, arbor.MouseButtonRight},
}

// wheelAccumulator turns fractional wheel offsets, as reported by trackpads,
// into whole wheel steps. Each step becomes one wheel button event.
type wheelAccumulator struct {
	x, y float64
}

// steps adds the offsets of one frame and returns the wheel buttons for the
// whole steps crossed, keeping the remainder for later frames. Positive dy is
// away from the user, positive dx is to the right.
func (w *wheelAccumulator) steps(dx, dy float64) []arbor.MouseButton {
	w.x += dx
	w.y += dy

	var out []arbor.MouseButton
	out = appendSteps(out, &w.y, arbor.MouseWheelUp, arbor.MouseWheelDown)
	out = appendSteps(out, &w.x, arbor.MouseWheelRight, arbor.MouseWheelLeft)
	return out
}

func appendSteps(out []arbor.MouseButton, acc *float64, pos, neg arbor.MouseButton) []arbor.MouseButton {
	n := math.Trunc(*acc)
	*acc -= n
	for ; n >= 1; n-- {
		out = append(out, pos)
	}
	for ; n <= -1; n++ {
		out = append(out, neg)
	}
	return out
}
