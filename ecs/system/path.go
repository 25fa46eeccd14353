package system

import (
	"math"

	"github.com/milk9111/spritescene/ecs"
	"github.com/milk9111/spritescene/ecs/component"
)

// PathSystem walks entities through their waypoints. Finished one-shot paths
// are removed.
type PathSystem struct{}

func NewPathSystem() *PathSystem {
	return &PathSystem{}
}

func (p *PathSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.PathComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, path *component.Path, t *component.Transform) {
		if path.Done {
			_ = ecs.Remove(w, e, component.PathComponent.Kind())
			return
		}
		if path.Paused {
			return
		}

		wp, ok := path.Current()
		if !ok {
			_ = ecs.Remove(w, e, component.PathComponent.Kind())
			return
		}

		anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
		playWaypoint(anim, wp)

		if wp.HasTarget {
			dx := wp.Target[0] - t.X
			dy := wp.Target[1] - t.Y
			if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && dx != 0 {
				sprite.FacingLeft = dx < 0
			}

			dist := math.Hypot(dx, dy)
			if wp.Speed > 0 && dist > wp.Speed {
				t.X += dx * wp.Speed / dist
				t.Y += dy * wp.Speed / dist
				return
			}

			t.X = wp.Target[0]
			t.Y = wp.Target[1]
			advance(w, e, path, anim)
			return
		}

		path.Wait++
		if path.Wait > wp.Time {
			advance(w, e, path, anim)
		}
	})
}

func advance(w *ecs.World, e ecs.Entity, path *component.Path, anim *component.Animation) {
	path.Next()
	if path.Done {
		_ = ecs.Remove(w, e, component.PathComponent.Kind())
		return
	}
	if next, ok := path.Current(); ok {
		playWaypoint(anim, next)
	}
}

func playWaypoint(anim *component.Animation, wp component.Waypoint) {
	if anim == nil || wp.Animation == "" {
		return
	}
	anim.Play(wp.Animation)
}
