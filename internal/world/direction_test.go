package world

import "testing"

func TestDirectionDelta(t *testing.T) {
	tests := []struct {
		dir    Direction
		dx, dy int
	}{
		{DirUp, 0, -1},
		{DirDown, 0, 1},
		{DirLeft, -1, 0},
		{DirRight, 1, 0},
		{Direction(7), 0, 0},
	}
	for _, tt := range tests {
		dx, dy := tt.dir.Delta()
		if dx != tt.dx || dy != tt.dy {
			t.Errorf("%v.Delta() = (%d, %d), want (%d, %d)", tt.dir, dx, dy, tt.dx, tt.dy)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, ok)
		}
	}
	if got, ok := ParseDirection(" LEFT "); !ok || got != DirLeft {
		t.Errorf("ParseDirection should trim and ignore case, got %v, %v", got, ok)
	}
	if _, ok := ParseDirection("north"); ok {
		t.Error("unknown direction should not parse")
	}
}

func TestDirectionFromDelta(t *testing.T) {
	tests := []struct {
		dx, dy int
		want   Direction
		ok     bool
	}{
		{0, -1, DirUp, true},
		{0, 1, DirDown, true},
		{-1, 0, DirLeft, true},
		{1, 0, DirRight, true},
		{1, -1, DirUp, true},
		{-1, 1, DirDown, true},
		{-1, -1, DirUp, true},
		{0, 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := DirectionFromDelta(tt.dx, tt.dy)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("DirectionFromDelta(%d, %d) = %v, %v, want %v, %v", tt.dx, tt.dy, got, ok, tt.want, tt.ok)
		}
	}
}

func TestAnimatorAdvance(t *testing.T) {
	var a Animator
	for i := 0; i < 4; i++ {
		a.Advance(2, 5)
	}
	if a.Frame != 0 {
		t.Fatalf("frame advanced early: %d", a.Frame)
	}
	a.Advance(2, 5)
	if a.Frame != 1 {
		t.Fatalf("frame = %d after one interval, want 1", a.Frame)
	}
	for i := 0; i < 5; i++ {
		a.Advance(2, 5)
	}
	if a.Frame != 0 {
		t.Errorf("frame = %d, want wrap to 0", a.Frame)
	}
	a.Advance(0, 5)
	a.Reset()
	if a.Frame != 0 || a.Counter != 0 {
		t.Errorf("Reset left %+v", a)
	}
}
