package system

import (
	"testing"

	"github.com/milk9111/spritescene/ecs"
	"github.com/milk9111/spritescene/ecs/component"
	"github.com/milk9111/spritescene/state"
)

func newItem(t *testing.T, w *ecs.World, x, y float64, value int) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	mustAdd(t, w, e, component.ItemTagComponent.Kind(), &component.ItemTag{})
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y})
	mustAdd(t, w, e, component.SpriteComponent.Kind(), &component.Sprite{Name: "coin", Kind: component.KindItem})
	mustAdd(t, w, e, component.ColliderComponent.Kind(), &component.Collider{Width: 16, Height: 16, Sensor: true})
	mustAdd(t, w, e, component.PickupComponent.Kind(), &component.Pickup{Value: value})
	return e
}

func TestPickupSystemScoresAndDestroys(t *testing.T) {
	store := state.NewStore(t.TempDir())
	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)
	coin := newItem(t, w, 0, 0, 1)
	gem := newItem(t, w, 0, 0, 5)

	w.Events().Push(ecs.Event{Type: ecs.EventPickup, Data: ecs.PickupEvent{Player: player, Item: coin}})
	w.Events().Push(ecs.Event{Type: ecs.EventPickup, Data: ecs.PickupEvent{Player: player, Item: coin}})
	w.Events().Push(ecs.Event{Type: ecs.EventPickup, Data: ecs.PickupEvent{Player: player, Item: gem}})
	w.Events().Push(ecs.Event{Type: "other"})

	NewPickupSystem(store).Update(w)

	if got := store.Score(); got != 6 {
		t.Fatalf("expected score 6, got %d", got)
	}
	if ecs.IsAlive(w, coin) || ecs.IsAlive(w, gem) {
		t.Fatalf("collected items should be destroyed")
	}
	if w.Events().Len() != 1 {
		t.Fatalf("unrelated events should stay queued, have %d", w.Events().Len())
	}
}

func TestPhysicsSystemReportsPickups(t *testing.T) {
	w := ecs.NewWorld()
	player, _ := newPlayer(t, w, component.Player{})
	transform, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	transform.X, transform.Y = 100, 100
	mustAdd(t, w, player, component.ColliderComponent.Kind(), &component.Collider{Width: 20, Height: 20})
	coin := newItem(t, w, 105, 105, 1)
	far := newItem(t, w, 400, 400, 1)

	ps := NewPhysicsSystem(800, 600)
	ps.Update(w)

	events := w.Events().DrainType(ecs.EventPickup)
	if len(events) != 1 {
		t.Fatalf("expected one pickup event, got %d", len(events))
	}
	evt := events[0].Data.(ecs.PickupEvent)
	if evt.Player != player || evt.Item != coin {
		t.Fatalf("unexpected pickup %+v (far=%v)", evt, far)
	}
	if !ecs.Has(w, player, component.PhysicsBodyComponent.Kind()) {
		t.Fatalf("player should get a physics body")
	}
}

func TestPhysicsSystemKeepsPlayerInBounds(t *testing.T) {
	w := ecs.NewWorld()
	player, _ := newPlayer(t, w, component.Player{})
	transform, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	transform.X, transform.Y = 10, 300
	mustAdd(t, w, player, component.ColliderComponent.Kind(), &component.Collider{Width: 20, Height: 20})

	ps := NewPhysicsSystem(800, 600)
	for i := 0; i < 30; i++ {
		transform.X -= 3
		ps.Update(w)
	}
	if transform.X < 0 {
		t.Fatalf("player left the scene bounds: x=%v", transform.X)
	}
	if transform.Y < 299 || transform.Y > 301 {
		t.Fatalf("player should not drift vertically: y=%v", transform.Y)
	}
}

func TestPhysicsSystemDropsDestroyedBodies(t *testing.T) {
	w := ecs.NewWorld()
	coin := newItem(t, w, 0, 0, 1)
	ps := NewPhysicsSystem(800, 600)
	ps.Update(w)
	if len(ps.entities) != 1 {
		t.Fatalf("expected one tracked body, got %d", len(ps.entities))
	}
	ecs.DestroyEntity(w, coin)
	ps.Update(w)
	if len(ps.entities) != 0 || len(ps.itemShapes) != 0 {
		t.Fatalf("destroyed entity should leave the space")
	}
}
