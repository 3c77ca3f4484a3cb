package core

import (
	"strings"
	"testing"
)

// rows returns the screen as lines so tests can compare whole pictures.
func rows(s *Screen) []string {
	return strings.Split(s.String(), "\n")
}

func assertRows(t *testing.T, s *Screen, want ...string) {
	t.Helper()
	got := rows(s)
	if len(got) != len(want) {
		t.Fatalf("screen has %d rows, want %d:\n%s", len(got), len(want), s.String())
	}
	for y := range want {
		if got[y] != want[y] {
			t.Errorf("row %d = %q, want %q", y, got[y], want[y])
		}
	}
}

func TestNewScreen(t *testing.T) {
	s := NewScreen(4, 3)
	if s.Width() != 4 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 4x3", s.Width(), s.Height())
	}
	assertRows(t, s, "    ", "    ", "    ")
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(5, 2)
	s.Set(2, 1, '@')
	if got := s.Get(2, 1); got != '@' {
		t.Errorf("Get(2, 1) = %q, want '@'", got)
	}

	for _, p := range []struct{ X, Y int }{{-1, 0}, {5, 0}, {0, -1}, {0, 2}} {
		s.Set(p.X, p.Y, '!')
		if got := s.Get(p.X, p.Y); got != ' ' {
			t.Errorf("Get(%d, %d) outside the screen = %q, want ' '", p.X, p.Y, got)
		}
	}
	assertRows(t, s, "     ", "  @  ")
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(3, 2)
	s.FillRect(NewRect(0, 0, 3, 2), '#', ColorGreen)
	s.Clear()
	assertRows(t, s, "   ", "   ")
	if c := s.GetCell(1, 1); c.Color != ColorDefault {
		t.Errorf("color after Clear = %v, want default", c.Color)
	}
}

func TestScreenDrawText(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		text string
		want string
	}{
		{"inside", 1, 0, "ab", " ab   "},
		{"clipped right", 4, 0, "abcd", "    ab"},
		{"clipped left", -2, 0, "abcd", "cd    "},
		{"wrong row", 0, 5, "abcd", "      "},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(6, 1)
			s.DrawText(tc.x, tc.y, tc.text)
			assertRows(t, s, tc.want)
		})
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(9, 2)
	s.DrawTextCentered(1, "odd", ColorYellow)
	assertRows(t, s, "         ", "   odd   ")
	if c := s.GetCell(3, 1); c.Color != ColorYellow {
		t.Errorf("centered text color = %v, want yellow", c.Color)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBox(NewRect(1, 0, 4, 4), ColorGray)
	assertRows(t, s,
		" ┌──┐ ",
		" │  │ ",
		" │  │ ",
		" └──┘ ",
	)
	if c := s.GetCell(4, 3); c.Color != ColorGray {
		t.Errorf("border color = %v, want gray", c.Color)
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "de")
	if got, want := s.String(), "abc\nde "; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "snake")
	s.DrawText(0, 2, "tail")

	s.Resize(3, 2)
	assertRows(t, s, "sna", "   ")

	s.Resize(6, 3)
	assertRows(t, s, "sna   ", "      ", "      ")
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(1, 1, "ok")
	if got := s.Row(1); got != " ok " {
		t.Errorf("Row(1) = %q, want %q", got, " ok ")
	}
	if got := s.Row(7); got != "    " {
		t.Errorf("Row(7) = %q, want blank row", got)
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(6, 2)
	s.DrawTextColor(1, 0, "ab", ColorGreen)

	if c := s.GetCell(1, 0); c.Rune != 'a' || c.Color != ColorGreen {
		t.Errorf("GetCell(1, 0) = %+v, want green 'a'", c)
	}
	if c := s.GetCell(0, 0); c.Color != ColorDefault {
		t.Errorf("untouched cell color = %v, want default", c.Color)
	}

	s.FillRect(NewRect(0, 1, 3, 1), '#', ColorRed)
	for x := range 3 {
		if c := s.GetCell(x, 1); c.Rune != '#' || c.Color != ColorRed {
			t.Errorf("FillRect cell (%d, 1) = %+v, want red '#'", x, c)
		}
	}
	if c := s.GetCell(3, 1); c.Rune != ' ' {
		t.Errorf("FillRect spilled to (3, 1): %+v", c)
	}
}
