package meistercharts

import (
	"image/color"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.expect {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

func TestSizeIsZero(t *testing.T) {
	tests := []struct {
		s    Size
		want bool
	}{
		{Size{100, 100}, false},
		{Size{0, 100}, true},
		{Size{100, 0}, true},
		{Size{-1, 100}, true},
		{Size{}, true},
	}
	for _, tt := range tests {
		if got := tt.s.IsZero(); got != tt.want {
			t.Errorf("%v.IsZero() = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestColorToRGBAPremultiplies(t *testing.T) {
	got := Color{R: 1, G: 0.5, B: 0, A: 0.5}.toRGBA()
	want := color.RGBA{R: 128, G: 64, B: 0, A: 128}
	if got != want {
		t.Errorf("toRGBA = %v, want %v", got, want)
	}
	if got := (Color{R: 2, G: -1, B: 0, A: 1}).toRGBA(); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("out-of-range components not clamped: %v", got)
	}
}

func TestEventConsumptionString(t *testing.T) {
	if Consumed.String() != "consumed" || Ignored.String() != "ignored" {
		t.Errorf("String() = %q, %q", Consumed.String(), Ignored.String())
	}
}

func TestEventTypeStrings(t *testing.T) {
	if MouseDoubleClick.String() != "double-click" {
		t.Errorf("MouseDoubleClick = %q", MouseDoubleClick.String())
	}
	if PointerCancel.String() != "cancel" || TouchMove.String() != "move" || KeyType.String() != "type" {
		t.Error("unexpected event type names")
	}
	if MouseEventType(99).String() != "unknown" || CategoryTouch.String() != "touch" {
		t.Error("unexpected fallback names")
	}
}
