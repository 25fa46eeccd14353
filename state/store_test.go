package state

import "testing"

func TestStoreMode(t *testing.T) {
	cases := []struct {
		name string
		set  *Mode
		want Mode
	}{
		{"default_is_menu", nil, ModeMenu},
		{"game", modePtr(ModeGame), ModeGame},
		{"back_to_menu", modePtr(ModeMenu), ModeMenu},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewStore(t.TempDir())
			if c.set != nil {
				if err := s.SetMode(*c.set); err != nil {
					t.Fatalf("set mode: %v", err)
				}
			}
			if got := s.Mode(); got != c.want {
				t.Fatalf("expected %q, got %q", c.want, got)
			}
		})
	}
}

func modePtr(m Mode) *Mode {
	return &m
}

func TestStoreRejectsUnknownMode(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.SetMode("paused"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestStoreUnknownModeValueReadsAsMenu(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.game.Write(KeyCurrentState, "credits"); err != nil {
		t.Fatal(err)
	}
	if got := s.Mode(); got != ModeMenu {
		t.Fatalf("expected menu fallback, got %q", got)
	}
}

func TestStoreInputRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())

	if got := s.Input(); got != (Input{}) {
		t.Fatalf("expected zero input before any write, got %+v", got)
	}

	want := Input{Up: true, Right: true}
	if err := s.SetInput(want); err != nil {
		t.Fatalf("set input: %v", err)
	}
	if got := s.Input(); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	if err := s.SetInput(Input{}); err != nil {
		t.Fatal(err)
	}
	if got := s.Input(); got != (Input{}) {
		t.Fatalf("expected flags cleared, got %+v", got)
	}
}

func TestStoreScore(t *testing.T) {
	s := NewStore(t.TempDir())
	if s.Score() != 0 {
		t.Fatalf("expected zero score")
	}
	if _, err := s.AddScore(5); err != nil {
		t.Fatal(err)
	}
	total, err := s.AddScore(2)
	if err != nil {
		t.Fatal(err)
	}
	if total != 7 || s.Score() != 7 {
		t.Fatalf("expected 7, got total=%d score=%d", total, s.Score())
	}
	if err := s.SetMode(ModeGame); err != nil {
		t.Fatal(err)
	}
	if s.Score() != 7 {
		t.Fatalf("mode change should keep score")
	}
	if err := s.ResetScore(); err != nil || s.Score() != 0 {
		t.Fatalf("expected score reset, err=%v score=%d", err, s.Score())
	}
}
