package entity

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/milk9111/spritescene/ecs"
	"github.com/milk9111/spritescene/ecs/component"
	"github.com/milk9111/spritescene/scenes"
	"golang.org/x/image/math/f64"
)

// DefaultAnimation names the strip given inline on a scene object.
const DefaultAnimation = "default"

// ParseKind maps a scene object type to a sprite kind. An empty type is an NPC.
func ParseKind(typ string) (component.SpriteKind, error) {
	switch component.SpriteKind(strings.ToLower(strings.TrimSpace(typ))) {
	case "", component.KindNPC:
		return component.KindNPC, nil
	case component.KindPlayer:
		return component.KindPlayer, nil
	case component.KindItem:
		return component.KindItem, nil
	case component.KindBackground:
		return component.KindBackground, nil
	default:
		return "", fmt.Errorf("unknown object type %q", typ)
	}
}

// PrefabFor returns the prefab file used for kind.
func PrefabFor(kind component.SpriteKind) string {
	return string(kind) + ".yaml"
}

// Build creates the entity for a scene object: the prefab for its type, then
// the object's own name, position, strips, movement, and script on top.
func (b *Builder) Build(w *ecs.World, obj scenes.Object) (ecs.Entity, error) {
	kind, err := ParseKind(obj.Type)
	if err != nil {
		return 0, fmt.Errorf("build %q: %w", obj.Name, err)
	}

	e, err := b.BuildEntity(w, PrefabFor(kind))
	if err != nil {
		return 0, fmt.Errorf("build %q: %w", obj.Name, err)
	}
	if err := b.applyObject(w, e, kind, obj); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build %q: %w", obj.Name, err)
	}
	return e, nil
}

// BuildBackground creates the stretched background sprite for image.
func (b *Builder) BuildBackground(w *ecs.World, image string) (ecs.Entity, error) {
	return b.Build(w, scenes.Object{
		Type:  string(component.KindBackground),
		Name:  "background",
		Image: image,
		Cells: 1,
	})
}

func (b *Builder) applyObject(w *ecs.World, e ecs.Entity, kind component.SpriteKind, obj scenes.Object) error {
	transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		transform = &component.Transform{ScaleX: 1, ScaleY: 1}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), transform); err != nil {
			return err
		}
	}
	transform.X = obj.X
	transform.Y = obj.Y

	sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind())
	if !ok {
		sprite = &component.Sprite{}
		if err := ecs.Add(w, e, component.SpriteComponent.Kind(), sprite); err != nil {
			return err
		}
	}
	sprite.Name = obj.Name
	sprite.Kind = kind

	if obj.Layer != nil {
		if err := ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: *obj.Layer}); err != nil {
			return err
		}
	}

	anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind())
	if !ok {
		anim = &component.Animation{Animations: map[string]*component.SpriteAnimation{}, Playing: true}
		if err := ecs.Add(w, e, component.AnimationComponent.Kind(), anim); err != nil {
			return err
		}
	}
	if err := b.addStrips(anim, obj); err != nil {
		return err
	}

	var path *component.Path
	if obj.Movement != nil && len(obj.Movement.Points) > 0 {
		var err error
		path, err = b.buildPath(anim, obj.Movement)
		if err != nil {
			return err
		}
		if err := ecs.Add(w, e, component.PathComponent.Kind(), path); err != nil {
			return err
		}
	}

	if obj.Script != "" {
		script := &component.Script{Path: obj.Script}
		if existing, ok := ecs.Get(w, e, component.ScriptComponent.Kind()); ok {
			script.Vars = existing.Vars
		}
		if err := ecs.Add(w, e, component.ScriptComponent.Kind(), script); err != nil {
			return err
		}
	}

	if pickup, ok := ecs.Get(w, e, component.PickupComponent.Kind()); ok && obj.Value != 0 {
		pickup.Value = obj.Value
	}

	name := initialAnimation(w, e, anim, obj, path)
	if name == "" {
		return fmt.Errorf("no animations")
	}
	if !anim.Play(name) {
		return fmt.Errorf("unknown animation %q (have %v)", name, anim.Names())
	}
	if active := anim.Active(); active != nil {
		sprite.Image = active.Strip
		sprite.Source = active.Rect()
		sprite.UseSource = true
	}
	return nil
}

func (b *Builder) addStrips(anim *component.Animation, obj scenes.Object) error {
	if anim.Animations == nil {
		anim.Animations = map[string]*component.SpriteAnimation{}
	}
	if obj.Image != "" {
		img, err := b.loadImage(obj.Image)
		if err != nil {
			return err
		}
		anim.Animations[DefaultAnimation] = component.NewSpriteAnimation(img, obj.Cells, obj.AnimationSpeed)
	}

	names := make([]string, 0, len(obj.Animations))
	for name := range obj.Animations {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		strip := obj.Animations[name]
		img, err := b.loadImage(strip.Image)
		if err != nil {
			return fmt.Errorf("animation %q: %w", name, err)
		}
		anim.Animations[name] = component.NewSpriteAnimation(img, strip.Cells, strip.AnimationSpeed)
	}
	return nil
}

// buildPath turns movement points into waypoints. A point with its own image
// gets a strip named after its index.
func (b *Builder) buildPath(anim *component.Animation, m *scenes.Movement) (*component.Path, error) {
	path := &component.Path{Loop: !m.Once}
	for i, p := range m.Points {
		wp := component.Waypoint{
			Speed:     p.Speed,
			Time:      p.Time,
			Animation: p.Animation,
		}
		if p.IsTarget() {
			wp.HasTarget = true
			wp.Target = f64.Vec2{*p.X, *p.Y}
		}
		if p.Image != "" {
			img, err := b.loadImage(p.Image)
			if err != nil {
				return nil, fmt.Errorf("point %d: %w", i, err)
			}
			name := wp.Animation
			if name == "" {
				name = "point_" + strconv.Itoa(i)
			}
			anim.Animations[name] = component.NewSpriteAnimation(img, p.Cells, p.AnimationSpeed)
			wp.Animation = name
		}
		if wp.Animation != "" && !anim.Has(wp.Animation) {
			return nil, fmt.Errorf("point %d: unknown animation %q", i, wp.Animation)
		}
		path.Points = append(path.Points, wp)
	}
	return path, nil
}

func initialAnimation(w *ecs.World, e ecs.Entity, anim *component.Animation, obj scenes.Object, path *component.Path) string {
	if obj.Current != "" {
		return obj.Current
	}
	if anim.Current != "" && anim.Has(anim.Current) {
		return anim.Current
	}
	if player, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok && anim.Has(player.IdleAnimation) {
		return player.IdleAnimation
	}
	if path != nil {
		if wp, ok := path.Current(); ok && wp.Animation != "" {
			return wp.Animation
		}
	}
	if anim.Has(DefaultAnimation) {
		return DefaultAnimation
	}
	if names := anim.Names(); len(names) > 0 {
		return names[0]
	}
	return ""
}
