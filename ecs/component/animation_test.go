package component

import "testing"

func TestSpriteAnimationAdvance(t *testing.T) {
	cases := []struct {
		name      string
		cells     int
		speed     int
		ticks     int
		wantFrame int
	}{
		{"single_cell_never_moves", 1, 1, 10, 0},
		{"speed_one_every_tick", 4, 1, 3, 3},
		{"wraps_modulo_cells", 4, 1, 5, 1},
		{"speed_holds_frame", 3, 5, 4, 0},
		{"speed_advances_on_nth_tick", 3, 5, 5, 1},
		{"zero_cells_treated_as_one", 0, 2, 7, 0},
		{"zero_speed_treated_as_one", 2, 0, 3, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a := NewSpriteAnimation(nil, c.cells, c.speed)
			for i := 0; i < c.ticks; i++ {
				a.Advance()
				if a.Frame < 0 || a.Frame >= a.Cells {
					t.Fatalf("tick %d: frame %d outside [0, %d)", i, a.Frame, a.Cells)
				}
			}
			if a.Frame != c.wantFrame {
				t.Fatalf("expected frame %d, got %d", c.wantFrame, a.Frame)
			}
		})
	}
}

func TestSpriteAnimationRect(t *testing.T) {
	a := &SpriteAnimation{Cells: 4, CellW: 16, CellH: 24, Speed: 1, Frame: 2}
	r := a.Rect()
	if r.Min.X != 32 || r.Max.X != 48 || r.Min.Y != 0 || r.Max.Y != 24 {
		t.Fatalf("unexpected rect %v", r)
	}
}

func TestSpriteAnimationClampsCorruptFrame(t *testing.T) {
	a := &SpriteAnimation{Cells: 3, Speed: 10, Frame: 7}
	a.Advance()
	if a.Frame != 0 {
		t.Fatalf("expected out-of-range frame to reset to 0, got %d", a.Frame)
	}
}

func TestAnimationPlay(t *testing.T) {
	idle := NewSpriteAnimation(nil, 2, 1)
	walk := NewSpriteAnimation(nil, 4, 1)
	anim := &Animation{
		Animations: map[string]*SpriteAnimation{"idle": idle, "walk": walk},
		Current:    "idle",
	}

	walk.Frame = 3
	if !anim.Play("walk") {
		t.Fatalf("expected walk to be playable")
	}
	if walk.Frame != 0 {
		t.Fatalf("switching animation should rewind it, frame=%d", walk.Frame)
	}

	walk.Frame = 2
	anim.Play("walk")
	if walk.Frame != 2 {
		t.Fatalf("replaying the current animation should not rewind it")
	}

	if anim.Play("jump") {
		t.Fatalf("unknown animation should be rejected")
	}
	if anim.Current != "walk" {
		t.Fatalf("current should stay walk, got %q", anim.Current)
	}
	if got := anim.Names(); len(got) != 2 || got[0] != "idle" || got[1] != "walk" {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestPathNext(t *testing.T) {
	t.Run("loop_wraps", func(t *testing.T) {
		p := &Path{Points: make([]Waypoint, 2), Loop: true}
		p.Next()
		p.Next()
		if p.Index != 0 || p.Done {
			t.Fatalf("expected wrap to 0, got index=%d done=%v", p.Index, p.Done)
		}
	})
	t.Run("one_shot_finishes", func(t *testing.T) {
		p := &Path{Points: make([]Waypoint, 2)}
		p.Next()
		p.Next()
		if !p.Done || p.Index != 1 {
			t.Fatalf("expected done at last point, got index=%d done=%v", p.Index, p.Done)
		}
	})
}

func TestInputDirection(t *testing.T) {
	in := &Input{Left: true, Right: true, Down: true}
	dx, dy := in.Direction()
	if dx != 0 || dy != 1 {
		t.Fatalf("expected (0,1), got (%v,%v)", dx, dy)
	}
}
