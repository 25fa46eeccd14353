package state

import (
	"fmt"
	"path/filepath"
)

// Mode is the value of the current_state key.
type Mode string

const (
	ModeMenu Mode = "menu"
	ModeGame Mode = "game"
)

const (
	GameStateFile = "current_game_state.json"
	InputFile     = "current_input.json"

	KeyCurrentState = "current_state"
	KeyScore        = "score"

	KeyUp    = "up"
	KeyDown  = "down"
	KeyLeft  = "left"
	KeyRight = "right"
)

// Input is the content of the current input document.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// Store groups the game state and input documents of one state directory.
type Store struct {
	game  *Document
	input *Document
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{
		game: NewDocument(filepath.Join(dir, GameStateFile), map[string]any{
			KeyCurrentState: string(ModeMenu),
			KeyScore:        0,
		}),
		input: NewDocument(filepath.Join(dir, InputFile), map[string]any{
			KeyUp:    false,
			KeyDown:  false,
			KeyLeft:  false,
			KeyRight: false,
		}),
	}
}

// Mode reads current_state. Anything other than "game" is treated as menu.
func (s *Store) Mode() Mode {
	v, _ := s.game.Read(KeyCurrentState)
	if str, ok := v.(string); ok && Mode(str) == ModeGame {
		return ModeGame
	}
	return ModeMenu
}

// SetMode writes current_state.
func (s *Store) SetMode(m Mode) error {
	if m != ModeMenu && m != ModeGame {
		return fmt.Errorf("state: invalid mode %q", m)
	}
	return s.game.Write(KeyCurrentState, string(m))
}

// Score reads the persisted score.
func (s *Store) Score() int {
	v, _ := s.game.Read(KeyScore)
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

// AddScore adds n to the persisted score and returns the new total.
func (s *Store) AddScore(n int) (int, error) {
	total := s.Score() + n
	if err := s.game.Write(KeyScore, total); err != nil {
		return 0, err
	}
	return total, nil
}

// ResetScore sets the score back to zero.
func (s *Store) ResetScore() error {
	return s.game.Write(KeyScore, 0)
}

// Input reads the input flags.
func (s *Store) Input() Input {
	all := s.input.ReadAll()
	return Input{
		Up:    asBool(all[KeyUp]),
		Down:  asBool(all[KeyDown]),
		Left:  asBool(all[KeyLeft]),
		Right: asBool(all[KeyRight]),
	}
}

// SetInput rewrites the input flags.
func (s *Store) SetInput(in Input) error {
	return s.input.WriteAll(map[string]any{
		KeyUp:    in.Up,
		KeyDown:  in.Down,
		KeyLeft:  in.Left,
		KeyRight: in.Right,
	})
}

func asBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
