package core

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	// A 20-cell board drawn two columns per cell inside a border.
	board := NewRect(3, 2, 42, 22)

	tests := []struct {
		x, y int
		want bool
	}{
		{3, 2, true},
		{44, 23, true},
		{45, 23, false},
		{44, 24, false},
		{2, 10, false},
		{20, 1, false},
	}
	for _, tc := range tests {
		if got := board.Contains(tc.x, tc.y); got != tc.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(3, 2, 42, 22)
	if r.Right() != 45 || r.Bottom() != 24 {
		t.Errorf("edges = (%d, %d), want (45, 24)", r.Right(), r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	// Grid size bounds used by settings.
	for val, want := range map[int]int{3: 8, 8: 8, 20: 20, 40: 40, 99: 40} {
		if got := Clamp(val, 8, 40); got != want {
			t.Errorf("Clamp(%d, 8, 40) = %d, want %d", val, got, want)
		}
	}
}

func TestClampF(t *testing.T) {
	for val, want := range map[float64]float64{-0.5: 0, 0.25: 0.25, 1.5: 1} {
		if got := ClampF(val, 0, 1); got != want {
			t.Errorf("ClampF(%g, 0, 1) = %g, want %g", val, got, want)
		}
	}
	if got := ClampF(math.NaN(), 0, 1); got != 0 {
		t.Errorf("ClampF(NaN, 0, 1) = %g, want 0", got)
	}
}

func TestActionIsMove(t *testing.T) {
	moves := []Action{ActionUp, ActionDown, ActionLeft, ActionRight}
	for _, a := range moves {
		if !a.IsMove() {
			t.Errorf("%s should be a move action", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionPause, ActionRestart, ActionHelp, ActionQuit} {
		if a.IsMove() {
			t.Errorf("%s should not be a move action", a)
		}
	}
}

func TestColorBright(t *testing.T) {
	tests := []struct {
		in, want Color
	}{
		{ColorRed, ColorBrightRed},
		{ColorGreen, ColorBrightGreen},
		{ColorWhite, ColorBrightWhite},
		{ColorBrightCyan, ColorBrightCyan},
		{ColorOrange, ColorOrange},
		{ColorDefault, ColorDefault},
	}
	for _, tt := range tests {
		if got := tt.in.Bright(); got != tt.want {
			t.Errorf("Color(%d).Bright() = %d, want %d", tt.in, got, tt.want)
		}
	}
}
