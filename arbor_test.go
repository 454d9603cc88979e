package arbor

import (
	"image/color"
	"testing"
)

func TestColorRGBA(t *testing.T) {
	tests := []struct {
		in   Color
		want color.RGBA
	}{
		{ColorWhite, color.RGBA{255, 255, 255, 255}},
		{ColorRed, color.RGBA{255, 0, 0, 255}},
		{Color{1, 1, 1, 0.5}, color.RGBA{128, 128, 128, 128}},
		{Color{2, -1, 0, 1}, color.RGBA{255, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := tt.in.RGBA(); got != tt.want {
			t.Errorf("%v.RGBA() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRenderModeString(t *testing.T) {
	if RenderNormal.String() != "normal" || RenderPick.String() != "pick" {
		t.Errorf("got %q, %q", RenderNormal, RenderPick)
	}
	if RenderMode(9).String() != "unknown" {
		t.Errorf("got %q", RenderMode(9))
	}
}

func TestMouseButtonIsWheel(t *testing.T) {
	for b := MouseButtonLeft; b <= MouseWheelRight; b++ {
		want := b == MouseWheelUp || b == MouseWheelDown || b == MouseWheelLeft || b == MouseWheelRight
		if b.IsWheel() != want {
			t.Errorf("%d.IsWheel() = %v, want %v", b, b.IsWheel(), want)
		}
	}
}

func TestKeyModifiersHas(t *testing.T) {
	m := ModShift | ModCtrl
	if !m.Has(ModShift) || !m.Has(ModCtrl) || !m.Has(ModShift|ModCtrl) {
		t.Error("m should have Shift and Ctrl")
	}
	if m.Has(ModAlt) || m.Has(ModCtrl|ModAlt) {
		t.Error("m should not have Alt")
	}
}
