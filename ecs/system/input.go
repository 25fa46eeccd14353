package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spritescene/ecs"
	"github.com/milk9111/spritescene/ecs/component"
	"github.com/milk9111/spritescene/state"
	log "github.com/sirupsen/logrus"
)

// KeyState is one frame of polled input.
type KeyState struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool

	Click   bool
	CursorX int
	CursorY int
}

// PollKeyboard reads arrows/WASD and the left mouse button.
func PollKeyboard() KeyState {
	x, y := ebiten.CursorPosition()
	return KeyState{
		Up:      ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:    ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Click:   inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		CursorX: x,
		CursorY: y,
	}
}

// InputSystem writes the directional flags to the input document every
// frame and hands mouse clicks to the player as a walk target.
type InputSystem struct {
	store *state.Store
	Poll  func() KeyState
}

func NewInputSystem(store *state.Store) *InputSystem {
	return &InputSystem{store: store, Poll: PollKeyboard}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.Poll == nil {
		return
	}

	keys := i.Poll()
	if i.store != nil {
		err := i.store.SetInput(state.Input{
			Up:    keys.Up,
			Down:  keys.Down,
			Left:  keys.Left,
			Right: keys.Right,
		})
		if err != nil {
			log.WithError(err).Error("input: write input document")
		}
	}

	if !keys.Click {
		return
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			return
		}
		input.TargetX = float64(keys.CursorX)
		input.TargetY = float64(keys.CursorY)
		input.HasTarget = true
	})
}
