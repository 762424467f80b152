package core

import (
	"strings"
	"testing"
)

// assertRows compares the screen against the expected plain-text rows.
func assertRows(t *testing.T, s *Screen, want ...string) {
	t.Helper()
	if s.Height() != len(want) {
		t.Fatalf("height = %d, want %d", s.Height(), len(want))
	}
	for y, row := range want {
		if got := s.Row(y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(6, 3)

	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, want 6x3", s.Width(), s.Height())
	}
	assertRows(t, s, "      ", "      ", "      ")
}

func TestScreenClipsOutOfBounds(t *testing.T) {
	s := NewScreen(4, 2)

	s.Set(-1, 0, 'A')
	s.Set(4, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 2, 'A')
	s.Set(3, 1, 'B')
	s.DrawText(2, 0, "xyz")

	assertRows(t, s, "  xy", "   B")
	if s.Get(-1, 0) != ' ' || s.Get(0, 5) != ' ' {
		t.Error("out of bounds Get should return space")
	}
	if c := s.GetCell(9, 9); c.Rune != ' ' || c.Color != ColorDefault {
		t.Errorf("out of bounds GetCell = %+v", c)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawRect(NewRect(0, 0, 3, 2), 'X')
	s.SetColored(1, 1, '@', ColorRed)

	s.Clear()

	assertRows(t, s, "   ", "   ")
	if s.GetCell(1, 1).Color != ColorDefault {
		t.Error("Clear should reset colors")
	}
}

func TestScreenDrawing(t *testing.T) {
	tests := []struct {
		name string
		draw func(s *Screen)
		want []string
	}{
		{
			name: "text",
			draw: func(s *Screen) { s.DrawText(1, 0, "Hi") },
			want: []string{" Hi    ", "       ", "       "},
		},
		{
			name: "centered text",
			draw: func(s *Screen) { s.DrawTextCentered(1, "abc") },
			want: []string{"       ", "  abc  ", "       "},
		},
		{
			name: "rect",
			draw: func(s *Screen) { s.DrawRect(NewRect(2, 1, 3, 2), '#') },
			want: []string{"       ", "  ###  ", "  ###  "},
		},
		{
			name: "box",
			draw: func(s *Screen) { s.DrawBox(NewRect(0, 0, 5, 3)) },
			want: []string{"┌───┐  ", "│   │  ", "└───┘  "},
		},
		{
			name: "hline clipped",
			draw: func(s *Screen) { s.DrawHLine(4, 2, 10, '─') },
			want: []string{"       ", "       ", "    ───"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(7, 3)
			tt.draw(s)
			assertRows(t, s, tt.want...)
		})
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(0, 1, "cde")

	if got, want := s.String(), "ab \ncde"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestScreenRow(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawText(0, 2, "Test")

	row := s.Row(2)
	if !strings.HasPrefix(row, "Test") {
		t.Errorf("Row(2) should start with 'Test', got %q", row)
	}
	if len(row) != 10 {
		t.Errorf("Row length should be 10, got %d", len(row))
	}

	// Out of bounds row
	outOfBounds := s.Row(-1)
	if outOfBounds != "          " {
		t.Errorf("Out of bounds row should be spaces, got %q", outOfBounds)
	}
}

func TestScreenResizeDiscardsContent(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Errorf("After resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if s.Row(0) != "        " {
		t.Errorf("Resize should clear content, row 0 = %q", s.Row(0))
	}

	// Negative sizes clamp to an empty screen
	s.Resize(-3, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("Negative resize should clamp to 0x0, got %dx%d", s.Width(), s.Height())
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextColored(1, 1, "ab", ColorRed)

	cell := s.GetCell(1, 1)
	if cell.Rune != 'a' || cell.Color != ColorRed {
		t.Errorf("GetCell(1, 1) = %+v, expected red 'a'", cell)
	}
	if s.GetCell(0, 1).Color != ColorDefault {
		t.Error("Untouched cell should keep the default color")
	}
	if s.GetCell(-1, 0) != blankCell {
		t.Error("Out of bounds GetCell should return a blank cell")
	}
}

func TestScreenFillEllipse(t *testing.T) {
	s := NewScreen(20, 10)
	s.FillEllipse(10, 5, 3, 1.5, 'o', ColorGreen)

	if s.Get(10, 5) != 'o' {
		t.Error("Ellipse center should be filled")
	}
	if s.GetCell(10, 5).Color != ColorGreen {
		t.Error("Ellipse cells should carry the fill color")
	}
	if s.Get(0, 0) != ' ' || s.Get(19, 9) != ' ' {
		t.Error("Cells far from the ellipse should stay blank")
	}

	// Tiny ellipses still leave a mark
	tiny := NewScreen(5, 5)
	tiny.FillEllipse(2.2, 2.2, 0.1, 0.1, '*', ColorRed)
	if tiny.Get(2, 2) != '*' {
		t.Error("Tiny ellipse should draw at least its center cell")
	}
}
