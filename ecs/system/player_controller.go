package system

import (
	"math"

	"github.com/milk9111/spritescene/ecs"
	"github.com/milk9111/spritescene/ecs/component"
	"github.com/milk9111/spritescene/state"
	"golang.org/x/image/math/f64"
)

const defaultPlayerMoveSpeed = 3.0

// PlayerControllerSystem moves the player from the persisted input flags.
// Held keys win over a pending click walk. Width and Height, when set, are
// the scene bounds click targets are kept inside.
type PlayerControllerSystem struct {
	store  *state.Store
	Width  float64
	Height float64
}

func NewPlayerControllerSystem(store *state.Store) *PlayerControllerSystem {
	return &PlayerControllerSystem{store: store}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}

	var flags state.Input
	if p.store != nil {
		flags = p.store.Input()
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.TransformComponent.Kind(),
	)
	for _, e := range entities {
		player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			input = &component.Input{}
			_ = ecs.Add(w, e, component.InputComponent.Kind(), input)
		}
		input.Up = flags.Up
		input.Down = flags.Down
		input.Left = flags.Left
		input.Right = flags.Right

		speed := player.MoveSpeed
		if speed <= 0 {
			speed = defaultPlayerMoveSpeed
		}

		anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
		sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())

		dx, dy := input.Direction()
		switch {
		case dx != 0 || dy != 0:
			_ = ecs.Remove(w, e, component.PathComponent.Kind())
			input.HasTarget = false

			l := math.Hypot(dx, dy)
			transform.X += dx / l * speed
			transform.Y += dy / l * speed

			name, directional := walkAnimation(player, anim, dx, dy)
			if anim != nil {
				anim.Play(name)
			}
			if sprite != nil && dx != 0 && !directional {
				sprite.FacingLeft = dx < 0
			}
		case input.HasTarget:
			input.HasTarget = false
			cx, cy := spriteCenterOffset(anim)
			tx, ty := input.TargetX-cx, input.TargetY-cy
			if collider, ok := ecs.Get(w, e, component.ColliderComponent.Kind()); ok {
				tx, ty = clampTransformToBounds(tx, ty, collider, p.Width, p.Height)
			}
			_ = ecs.Add(w, e, component.PathComponent.Kind(), &component.Path{
				Points: []component.Waypoint{{
					Target:    f64.Vec2{tx, ty},
					HasTarget: true,
					Speed:     speed,
					Animation: player.WalkAnimation,
				}},
			})
		case !ecs.Has(w, e, component.PathComponent.Kind()):
			if anim != nil {
				anim.Play(player.IdleAnimation)
			}
		}
	}
}

// walkAnimation picks walk_<dir> when the player has directional strips.
func walkAnimation(player *component.Player, anim *component.Animation, dx, dy float64) (string, bool) {
	if player.Directional && anim != nil {
		dir := ""
		switch {
		case dx < 0:
			dir = "left"
		case dx > 0:
			dir = "right"
		case dy < 0:
			dir = "up"
		case dy > 0:
			dir = "down"
		}
		name := player.WalkAnimation + "_" + dir
		if anim.Has(name) {
			return name, true
		}
	}
	return player.WalkAnimation, false
}

func spriteCenterOffset(anim *component.Animation) (float64, float64) {
	active := anim.Active()
	if active == nil {
		return 0, 0
	}
	return float64(active.CellW) / 2, float64(active.CellH) / 2
}
