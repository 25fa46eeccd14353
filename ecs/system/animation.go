package system

import (
	"github.com/milk9111/spritescene/ecs"
	"github.com/milk9111/spritescene/ecs/component"
)

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.SpriteComponent.Kind(), func(e ecs.Entity, anim *component.Animation, sprite *component.Sprite) {
		active := anim.Active()
		if active == nil {
			return
		}
		if anim.Playing {
			active.Advance()
		}
		ApplyFrame(sprite, active)
	})
}

// ApplyFrame points sprite at the current cell of a.
func ApplyFrame(sprite *component.Sprite, a *component.SpriteAnimation) {
	if sprite == nil || a == nil {
		return
	}
	sprite.Image = a.Strip
	sprite.Source = a.Rect()
	sprite.UseSource = true
}
