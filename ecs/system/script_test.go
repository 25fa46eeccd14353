package system

import (
	"errors"
	"testing"

	"github.com/milk9111/spritescene/ecs"
	"github.com/milk9111/spritescene/ecs/component"
	"golang.org/x/image/math/f64"
)

func inlineScripts(sources map[string]string) func(string) ([]byte, error) {
	return func(path string) ([]byte, error) {
		src, ok := sources[path]
		if !ok {
			return nil, errors.New("no such script")
		}
		return []byte(src), nil
	}
}

func TestScriptSystemEngineFunctions(t *testing.T) {
	w := ecs.NewWorld()
	e, anim := newAnimated(t, w, "walk", "talk")
	transform, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	transform.X, transform.Y = 12, 34
	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
	sprite.Name = "guard"
	mustAdd(t, w, e, component.PathComponent.Kind(), &component.Path{Loop: true, Points: []component.Waypoint{{Time: 10}}})
	mustAdd(t, w, e, component.ScriptComponent.Kind(), &component.Script{
		Path: "probe.tengo",
		Vars: map[string]any{"dy": 2.5},
	})

	sys := NewScriptSystem()
	sys.Load = inlineScripts(map[string]string{"probe.tengo": `
update := func(engine) {
	pos := engine.get_position()
	if engine.name() == "guard" && engine.get_player_position() == undefined {
		engine.set_animation("talk")
		engine.pause_path(true)
	}
	engine.set_offset(pos[0] - 12, engine.get_var("dy", 0.0) + engine.get_var("missing", 1.0))
}
`})
	sys.Update(w)

	if anim.Current != "talk" {
		t.Fatalf("expected talk animation, got %q", anim.Current)
	}
	path, _ := ecs.Get(w, e, component.PathComponent.Kind())
	if !path.Paused {
		t.Fatalf("script should pause the path")
	}
	if sprite.OffsetX != 0 || sprite.OffsetY != 3.5 {
		t.Fatalf("unexpected offset (%v,%v)", sprite.OffsetX, sprite.OffsetY)
	}
}

func TestScriptSystemBrokenScriptsAreSkipped(t *testing.T) {
	w := ecs.NewWorld()
	broken, _ := newAnimated(t, w)
	mustAdd(t, w, broken, component.ScriptComponent.Kind(), &component.Script{Path: "broken.tengo"})
	failing, _ := newAnimated(t, w)
	mustAdd(t, w, failing, component.ScriptComponent.Kind(), &component.Script{Path: "failing.tengo"})
	missing, _ := newAnimated(t, w)
	mustAdd(t, w, missing, component.ScriptComponent.Kind(), &component.Script{Path: "missing.tengo"})
	good, _ := newAnimated(t, w)
	mustAdd(t, w, good, component.ScriptComponent.Kind(), &component.Script{Path: "good.tengo"})

	sys := NewScriptSystem()
	sys.Load = inlineScripts(map[string]string{
		"broken.tengo":  `update := func(engine) {`,
		"failing.tengo": `update := func(engine) { x := 1 / 0 }`,
		"good.tengo":    `update := func(engine) { engine.set_offset(1, float(engine.tick())) }`,
	})
	w.AddSystem(sys)
	w.Update()
	w.Update()

	sprite, _ := ecs.Get(w, good, component.SpriteComponent.Kind())
	if sprite.OffsetX != 1 || sprite.OffsetY != 2 {
		t.Fatalf("good script should keep running, offset=(%v,%v)", sprite.OffsetX, sprite.OffsetY)
	}
	if rt := sys.cache[broken]; rt == nil || rt.err == nil {
		t.Fatalf("compile failure should be cached")
	}
}

func TestScriptSystemEmbeddedGreeting(t *testing.T) {
	w := ecs.NewWorld()
	npc, anim := newAnimated(t, w, "walk", "talk")
	mustAdd(t, w, npc, component.PathComponent.Kind(), &component.Path{
		Loop:   true,
		Points: []component.Waypoint{{Target: f64.Vec2{500, 0}, HasTarget: true, Speed: 1, Animation: "walk"}},
	})
	mustAdd(t, w, npc, component.ScriptComponent.Kind(), &component.Script{Path: "npc_greet.tengo"})

	player, _ := newPlayer(t, w, component.Player{})
	playerTransform, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	playerTransform.X = 30

	sys := NewScriptSystem()
	sys.Update(w)
	path, _ := ecs.Get(w, npc, component.PathComponent.Kind())
	if !path.Paused || anim.Current != "talk" {
		t.Fatalf("nearby player should stop the npc: paused=%v anim=%q", path.Paused, anim.Current)
	}

	playerTransform.X = 300
	sys.Update(w)
	if path.Paused {
		t.Fatalf("npc should resume once the player walks away")
	}
}

func TestDrawOrder(t *testing.T) {
	w := ecs.NewWorld()
	add := func(layer int, stretch bool) ecs.Entity {
		e := ecs.CreateEntity(w)
		mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{})
		mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{Stretch: stretch})
		mustAdd(t, w, e, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: layer})
		return e
	}
	high := add(30, false)
	lowA := add(10, false)
	bg := add(100, true)
	lowB := add(10, false)

	got := DrawOrder(w)
	want := []ecs.Entity{bg, lowA, lowB, high}
	if len(got) != len(want) {
		t.Fatalf("expected %d entities, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("draw order %v, want %v", got, want)
		}
	}
}
