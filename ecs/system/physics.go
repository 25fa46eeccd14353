package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/spritescene/ecs"
	"github.com/milk9111/spritescene/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeItem
	collisionTypeSolid
)

const boundsThickness = 1.0

// PhysicsSystem keeps the player inside the scene bounds and out of solid
// colliders, and turns player/item overlaps into pickup events. Positions are
// owned by transforms; bodies follow them and report back the resolved
// position.
type PhysicsSystem struct {
	space         *cp.Space
	width         float64
	height        float64
	handlersReady bool
	boundsReady   bool

	entities     map[ecs.Entity]*bodyInfo
	playerShapes map[*cp.Shape]ecs.Entity
	itemShapes   map[*cp.Shape]ecs.Entity
	pending      []ecs.PickupEvent
}

type bodyInfo struct {
	body     *cp.Body
	shape    *cp.Shape
	collider component.Collider
	player   bool
}

func NewPhysicsSystem(width, height float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return &PhysicsSystem{
		space:        space,
		width:        width,
		height:       height,
		entities:     make(map[ecs.Entity]*bodyInfo),
		playerShapes: make(map[*cp.Shape]ecs.Entity),
		itemShapes:   make(map[*cp.Shape]ecs.Entity),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.ensureHandlers()
	ps.syncBounds()
	ps.syncEntities(w)
	ps.pushBodies(w)

	ps.space.Step(1.0)

	ps.pullBodies(w)
	for _, evt := range ps.pending {
		w.Events().Push(ecs.Event{Type: ecs.EventPickup, Data: evt})
	}
	ps.pending = ps.pending[:0]
}

func (ps *PhysicsSystem) ensureHandlers() {
	if ps.handlersReady {
		return
	}

	pickupHandler := ps.space.NewCollisionHandler(collisionTypePlayer, collisionTypeItem)
	pickupHandler.UserData = ps
	pickupHandler.BeginFunc = func(arb *cp.Arbiter, space *cp.Space, userData interface{}) bool {
		sys, ok := userData.(*PhysicsSystem)
		if !ok || sys == nil {
			return false
		}
		shapeA, shapeB := arb.Shapes()
		player, okA := sys.playerShapes[shapeA]
		item, okB := sys.itemShapes[shapeB]
		if !okA || !okB {
			player, okA = sys.playerShapes[shapeB]
			item, okB = sys.itemShapes[shapeA]
			if !okA || !okB {
				return false
			}
		}
		sys.pending = append(sys.pending, ecs.PickupEvent{Player: player, Item: item})
		return false
	}

	ps.handlersReady = true
}

func (ps *PhysicsSystem) syncBounds() {
	if ps.boundsReady || ps.width <= 0 || ps.height <= 0 {
		return
	}

	worldW := ps.width
	worldH := ps.height
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},           // top
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}}, // bottom
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},           // left
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}}, // right
	}
	for _, seg := range segments {
		shape := cp.NewSegment(ps.space.StaticBody, seg.a, seg.b, boundsThickness)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
	}

	ps.boundsReady = true
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ps.cleanupEntities(w)

	entities := w.Query(component.ColliderComponent.Kind(), component.TransformComponent.Kind())
	for _, e := range entities {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		collider, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
		if !ok || collider.Width <= 0 || collider.Height <= 0 {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}

		isPlayer := ecs.Has(w, e, component.PlayerTagComponent.Kind())
		isItem := ecs.Has(w, e, component.PickupComponent.Kind())

		var body *cp.Body
		if isPlayer {
			body = cp.NewBody(1, math.Inf(1))
		} else {
			body = cp.NewKinematicBody()
		}
		body.SetPosition(colliderCenter(transform, collider))
		ps.space.AddBody(body)

		shape := cp.NewBox(body, collider.Width, collider.Height, 0)
		shape.SetFriction(0)
		shape.SetElasticity(0)
		shape.SetSensor(collider.Sensor)
		switch {
		case isPlayer:
			shape.SetCollisionType(collisionTypePlayer)
			ps.playerShapes[shape] = e
		case isItem:
			shape.SetCollisionType(collisionTypeItem)
			shape.SetSensor(true)
			ps.itemShapes[shape] = e
		default:
			shape.SetCollisionType(collisionTypeSolid)
		}
		ps.space.AddShape(shape)

		ps.entities[e] = &bodyInfo{body: body, shape: shape, collider: *collider, player: isPlayer}
		_ = ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body, Shape: shape})
	}
}

// pushBodies moves bodies toward their transforms. The player gets the
// velocity that would carry it there in one step so walls can stop it.
func (ps *PhysicsSystem) pushBodies(w *ecs.World) {
	for e, info := range ps.entities {
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		target := colliderCenter(transform, &info.collider)
		if info.player {
			info.body.SetVelocityVector(target.Sub(info.body.Position()))
			continue
		}
		info.body.SetPosition(target)
	}
}

func (ps *PhysicsSystem) pullBodies(w *ecs.World) {
	for e, info := range ps.entities {
		if !info.player {
			continue
		}
		transform, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pos := ps.clampToBounds(info.body.Position(), &info.collider)
		if pos != info.body.Position() {
			info.body.SetPosition(pos)
		}
		transform.X = pos.X - info.collider.Width/2 - info.collider.OffsetX
		transform.Y = pos.Y - info.collider.Height/2 - info.collider.OffsetY
		info.body.SetVelocityVector(cp.Vector{})
	}
}

// clampToBounds keeps a collider centred at pos fully inside the scene.
func (ps *PhysicsSystem) clampToBounds(pos cp.Vector, c *component.Collider) cp.Vector {
	if ps.width <= 0 || ps.height <= 0 {
		return pos
	}
	pos.X = cp.Clamp(pos.X, c.Width/2, ps.width-c.Width/2)
	pos.Y = cp.Clamp(pos.Y, c.Height/2, ps.height-c.Height/2)
	return pos
}

// clampTransformToBounds keeps a transform position where its collider stays
// inside a width x height scene, the range pullBodies allows.
func clampTransformToBounds(x, y float64, c *component.Collider, width, height float64) (float64, float64) {
	if width <= 0 || height <= 0 {
		return x, y
	}
	x = cp.Clamp(x, -c.OffsetX, width-c.OffsetX-c.Width)
	y = cp.Clamp(y, -c.OffsetY, height-c.OffsetY-c.Height)
	return x, y
}

func (ps *PhysicsSystem) cleanupEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.ColliderComponent.Kind()) {
			continue
		}
		if info.shape != nil {
			ps.space.RemoveShape(info.shape)
			delete(ps.playerShapes, info.shape)
			delete(ps.itemShapes, info.shape)
		}
		if info.body != nil {
			ps.space.RemoveBody(info.body)
		}
		delete(ps.entities, e)
	}
}

func colliderCenter(t *component.Transform, c *component.Collider) cp.Vector {
	return cp.Vector{
		X: t.X + c.OffsetX + c.Width/2,
		Y: t.Y + c.OffsetY + c.Height/2,
	}
}
