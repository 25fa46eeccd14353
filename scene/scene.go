// Package scene composes a playable scene: the background and sprites of a
// scene description built into an ECS world with the per-tick systems.
package scene

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spritescene/common"
	"github.com/milk9111/spritescene/ecs"
	"github.com/milk9111/spritescene/ecs/component"
	"github.com/milk9111/spritescene/ecs/entity"
	"github.com/milk9111/spritescene/ecs/system"
	"github.com/milk9111/spritescene/scenes"
	"github.com/milk9111/spritescene/state"
	log "github.com/sirupsen/logrus"
)

// Options configures how a scene is loaded.
type Options struct {
	// File is the scene description; empty means scenes.DefaultFile.
	File    string
	Store   *state.Store
	Builder *entity.Builder
	// Poll overrides keyboard polling.
	Poll   func() system.KeyState
	Width  float64
	Height float64
}

// Scene owns the world built from one scene description.
type Scene struct {
	name string
	opts Options

	world      *ecs.World
	background ecs.Entity
	sprites    []ecs.Entity
	physics    *system.PhysicsSystem
}

// SpriteState is a plain-data view of one sprite.
type SpriteState struct {
	Entity    ecs.Entity
	Name      string
	Kind      component.SpriteKind
	X         float64
	Y         float64
	Animation string
	Frame     int
}

// Load reads the named scene and builds its world: the background first, then
// every object in document order.
func Load(name string, opts Options) (*Scene, error) {
	if opts.Builder == nil {
		opts.Builder = entity.NewBuilder()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = common.BaseWidth, common.BaseHeight
	}

	desc, err := scenes.Load(opts.File, name)
	if err != nil {
		return nil, fmt.Errorf("scene: load %q: %w", name, err)
	}

	s := &Scene{name: name, opts: opts, world: ecs.NewWorld()}

	if desc.Background != "" {
		s.background, err = opts.Builder.BuildBackground(s.world, desc.Background)
		if err != nil {
			return nil, fmt.Errorf("scene: %q background: %w", name, err)
		}
	}

	for i, obj := range desc.Objects {
		e, err := opts.Builder.Build(s.world, obj)
		if err != nil {
			return nil, fmt.Errorf("scene: %q object %d: %w", name, i, err)
		}
		s.sprites = append(s.sprites, e)
	}

	input := system.NewInputSystem(opts.Store)
	if opts.Poll != nil {
		input.Poll = opts.Poll
	}
	s.physics = system.NewPhysicsSystem(opts.Width, opts.Height)

	s.world.AddSystem(input)
	controller := system.NewPlayerControllerSystem(opts.Store)
	controller.Width, controller.Height = opts.Width, opts.Height
	s.world.AddSystem(controller)
	s.world.AddSystem(system.NewScriptSystem())
	s.world.AddSystem(system.NewPathSystem())
	s.world.AddSystem(s.physics)
	s.world.AddSystem(system.NewPickupSystem(opts.Store))
	s.world.AddSystem(system.NewAnimationSystem())
	s.world.AddSystem(system.NewRenderSystem())

	log.WithFields(log.Fields{"scene": name, "sprites": len(s.sprites)}).Info("scene: loaded")
	return s, nil
}

func (s *Scene) Name() string {
	return s.name
}

// World exposes the underlying ECS world.
func (s *Scene) World() *ecs.World {
	return s.world
}

// Physics returns the physics system, for debug drawing.
func (s *Scene) Physics() *system.PhysicsSystem {
	return s.physics
}

// Update advances the scene by one tick.
func (s *Scene) Update() {
	s.world.Update()
}

// Draw renders the background, then the sprites.
func (s *Scene) Draw(screen *ebiten.Image) {
	s.world.Draw(screen)
}

// Background returns the background entity.
func (s *Scene) Background() ecs.Entity {
	return s.background
}

// Sprites returns the live sprites in scene order, background excluded.
func (s *Scene) Sprites() []ecs.Entity {
	out := make([]ecs.Entity, 0, len(s.sprites))
	for _, e := range s.sprites {
		if s.world.IsAlive(e) {
			out = append(out, e)
		}
	}
	return out
}

// Reload rebuilds the scene from disk. On failure the current scene is kept.
func (s *Scene) Reload() error {
	fresh, err := Load(s.name, s.opts)
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}

// Snapshot describes the background (when present) and every live sprite.
func (s *Scene) Snapshot() []SpriteState {
	entities := s.Sprites()
	if s.world.IsAlive(s.background) {
		entities = append([]ecs.Entity{s.background}, entities...)
	}

	out := make([]SpriteState, 0, len(entities))
	for _, e := range entities {
		st := SpriteState{Entity: e}
		if sprite, ok := ecs.Get(s.world, e, component.SpriteComponent.Kind()); ok {
			st.Name = sprite.Name
			st.Kind = sprite.Kind
		}
		if t, ok := ecs.Get(s.world, e, component.TransformComponent.Kind()); ok {
			st.X = t.X
			st.Y = t.Y
		}
		if anim, ok := ecs.Get(s.world, e, component.AnimationComponent.Kind()); ok {
			st.Animation = anim.Current
			if active := anim.Active(); active != nil {
				st.Frame = active.Frame
			}
		}
		out = append(out, st)
	}
	return out
}
