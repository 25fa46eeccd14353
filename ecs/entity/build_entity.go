package entity

import (
	"fmt"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spritescene/assets"
	"github.com/milk9111/spritescene/ecs"
	"github.com/milk9111/spritescene/ecs/component"
	"github.com/milk9111/spritescene/prefabs"
)

// ImageLoader returns the image stored at path.
type ImageLoader func(path string) (*ebiten.Image, error)

// Builder instantiates prefabs into a world.
type Builder struct {
	LoadImage ImageLoader
	// LoadPrefab decodes a prefab by file name.
	LoadPrefab func(path string) (prefabs.EntityBuildSpec, error)
}

func NewBuilder() *Builder {
	return &Builder{
		LoadImage:  assets.LoadImage,
		LoadPrefab: prefabs.LoadEntityBuildSpec,
	}
}

type buildContext struct {
	PrefabPath string
	Builder    *Builder
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":     addPlayerTag,
	"npc_tag":        addNPCTag,
	"item_tag":       addItemTag,
	"background_tag": addBackgroundTag,
	"player":         addPlayer,
	"input":          addInput,
	"transform":      addTransform,
	"sprite":         addSprite,
	"render_layer":   addRenderLayer,
	"animation":      addAnimation,
	"collider":       addCollider,
	"pickup":         addPickup,
	"script":         addScript,
}

var componentBuildOrder = []string{
	"player_tag",
	"npc_tag",
	"item_tag",
	"background_tag",
	"player",
	"input",
	"transform",
	"sprite",
	"render_layer",
	"animation",
	"collider",
	"pickup",
	"script",
}

// BuildEntity creates an entity from the prefab at prefabPath. A component
// that fails to build destroys the entity.
func (b *Builder) BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	load := b.LoadPrefab
	if load == nil {
		load = prefabs.LoadEntityBuildSpec
	}
	spec, err := load(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Builder: b}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	return e, nil
}

func (b *Builder) loadImage(path string) (*ebiten.Image, error) {
	if path == "" {
		return nil, nil
	}
	load := b.LoadImage
	if load == nil {
		load = assets.LoadImage
	}
	img, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("load image %q: %w", path, err)
	}
	return img, nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addNPCTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.NPCTagComponent.Kind(), &component.NPCTag{})
}

func addItemTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ItemTagComponent.Kind(), &component.ItemTag{})
}

func addBackgroundTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.BackgroundTagComponent.Kind(), &component.BackgroundTag{})
}

type playerSpec = prefabs.PlayerComponentSpec

func addPlayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[playerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if spec.IdleAnimation == "" {
		spec.IdleAnimation = "idle"
	}
	if spec.WalkAnimation == "" {
		spec.WalkAnimation = "walk"
	}
	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed:     spec.MoveSpeed,
		IdleAnimation: spec.IdleAnimation,
		WalkAnimation: spec.WalkAnimation,
		Directional:   spec.Directional,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type spriteSpec = prefabs.SpriteComponentSpec

func addSprite(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[spriteSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	var sprite component.Sprite
	sprite.Image, err = ctx.Builder.loadImage(spec.Image)
	if err != nil {
		return err
	}
	sprite.OriginX = spec.OriginX
	sprite.OriginY = spec.OriginY
	sprite.FacingLeft = spec.FacingLeft
	sprite.Stretch = spec.Stretch

	return ecs.Add(w, e, component.SpriteComponent.Kind(), &sprite)
}

type renderLayerSpec = prefabs.RenderLayerComponentSpec

func addRenderLayer(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[renderLayerSpec](raw)
	if err != nil {
		return fmt.Errorf("decode render layer spec: %w", err)
	}
	return ecs.Add(w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: spec.Index})
}

type animationSpec = prefabs.AnimationComponentSpec

func addAnimation(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[animationSpec](raw)
	if err != nil {
		return fmt.Errorf("decode animation spec: %w", err)
	}

	anim := &component.Animation{
		Animations: make(map[string]*component.SpriteAnimation, len(spec.Strips)),
		Current:    spec.Current,
		Playing:    true,
	}
	for name, strip := range spec.Strips {
		img, err := ctx.Builder.loadImage(strip.Image)
		if err != nil {
			return fmt.Errorf("strip %q: %w", name, err)
		}
		anim.Animations[name] = component.NewSpriteAnimation(img, strip.Cells, strip.Speed)
	}

	return ecs.Add(w, e, component.AnimationComponent.Kind(), anim)
}

type colliderSpec = prefabs.ColliderComponentSpec

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("collider needs a positive size, got %vx%v", spec.Width, spec.Height)
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &component.Collider{
		Width:   spec.Width,
		Height:  spec.Height,
		OffsetX: spec.OffsetX,
		OffsetY: spec.OffsetY,
		Sensor:  spec.Sensor,
	})
}

type pickupSpec = prefabs.PickupComponentSpec

func addPickup(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[pickupSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pickup spec: %w", err)
	}
	return ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Value: spec.Value})
}

type scriptSpec = prefabs.ScriptComponentSpec

func addScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scriptSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script spec: %w", err)
	}
	if spec.Path == "" {
		return fmt.Errorf("script path is empty")
	}
	return ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: spec.Path, Vars: spec.Vars})
}
