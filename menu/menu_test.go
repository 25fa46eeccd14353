package menu

import (
	"errors"
	"testing"

	"github.com/milk9111/spritescene/prefabs"
	"github.com/milk9111/spritescene/state"
)

func newTestManager(t *testing.T) (*Manager, *state.Store) {
	t.Helper()
	store := state.NewStore(t.TempDir())
	m, err := Load(store)
	if err != nil {
		t.Fatalf("load menus: %v", err)
	}
	return m, store
}

func TestDispatch(t *testing.T) {
	cases := []struct {
		name       string
		from       string
		action     string
		presetMode state.Mode
		wantMenu   string
		wantMode   state.Mode
		wantQuit   bool
		wantErr    error
	}{
		{name: "start", from: "main_menu", action: ActionStart, wantMenu: "main_menu", wantMode: state.ModeGame},
		{name: "resume", from: "in_game_menu", action: ActionResume, wantMenu: "in_game_menu", wantMode: state.ModeGame},
		{name: "open_controls", from: "main_menu", action: "open:controls", wantMenu: "controls", wantMode: state.ModeMenu},
		{name: "main_menu", from: "in_game_menu", action: ActionMainMenu, wantMenu: "main_menu", wantMode: state.ModeMenu, presetMode: state.ModeGame},
		{name: "quit", from: "main_menu", action: ActionQuit, wantMenu: "main_menu", wantMode: state.ModeMenu, wantQuit: true},
		{name: "open_unknown", from: "main_menu", action: "open:nowhere", wantMenu: "main_menu", wantMode: state.ModeMenu, wantErr: ErrUnknownMenu},
		{name: "unknown_action", from: "main_menu", action: "dance", wantMenu: "main_menu", wantMode: state.ModeMenu, wantErr: ErrUnknownAction},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m, store := newTestManager(t)
			if c.presetMode != "" {
				if err := store.SetMode(c.presetMode); err != nil {
					t.Fatalf("preset mode: %v", err)
				}
			}
			if err := m.SetCurrent(c.from); err != nil {
				t.Fatalf("set current: %v", err)
			}

			err := m.Dispatch(c.action)
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("dispatch %q: %v", c.action, err)
			}

			if m.Current() != c.wantMenu {
				t.Fatalf("expected menu %q, got %q", c.wantMenu, m.Current())
			}
			if got := store.Mode(); got != c.wantMode {
				t.Fatalf("expected mode %q, got %q", c.wantMode, got)
			}
			if m.QuitRequested() != c.wantQuit {
				t.Fatalf("expected quit=%v", c.wantQuit)
			}
		})
	}
}

func TestSelectionWrapsAndActivates(t *testing.T) {
	m, store := newTestManager(t)

	m.Move(-1)
	if m.Selected() != 2 {
		t.Fatalf("expected selection to wrap to 2, got %d", m.Selected())
	}
	m.Move(1)
	if m.Selected() != 0 {
		t.Fatalf("expected selection 0, got %d", m.Selected())
	}

	m.Move(1)
	if err := m.Activate(); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if m.Current() != "controls" || m.Selected() != 0 {
		t.Fatalf("expected controls with selection reset, got %q/%d", m.Current(), m.Selected())
	}

	if err := m.Activate(); err != nil {
		t.Fatalf("activate back: %v", err)
	}
	if err := m.Activate(); err != nil {
		t.Fatalf("activate start: %v", err)
	}
	if store.Mode() != state.ModeGame {
		t.Fatalf("expected game mode after Start, got %q", store.Mode())
	}
}

func TestEnterGameSwitchesToInGameMenu(t *testing.T) {
	m, _ := newTestManager(t)
	m.EnterGame()
	if m.Current() != "in_game_menu" {
		t.Fatalf("expected in_game_menu, got %q", m.Current())
	}
}

func TestNewManagerValidates(t *testing.T) {
	cases := []struct {
		name string
		spec *prefabs.MenusSpec
		want error
	}{
		{
			name: "missing_initial",
			spec: &prefabs.MenusSpec{Initial: "nope", Menus: map[string]prefabs.MenuSpec{"a": {}}},
			want: ErrUnknownMenu,
		},
		{
			name: "bad_open_target",
			spec: &prefabs.MenusSpec{Initial: "a", Menus: map[string]prefabs.MenuSpec{
				"a": {Buttons: []prefabs.MenuButtonSpec{{Label: "x", Action: "open:b"}}},
			}},
			want: ErrUnknownMenu,
		},
		{
			name: "bad_action",
			spec: &prefabs.MenusSpec{Initial: "a", Menus: map[string]prefabs.MenuSpec{
				"a": {Buttons: []prefabs.MenuButtonSpec{{Label: "x", Action: "fly"}}},
			}},
			want: ErrUnknownAction,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewManager(c.spec, nil); !errors.Is(err, c.want) {
				t.Fatalf("expected %v, got %v", c.want, err)
			}
		})
	}
}
