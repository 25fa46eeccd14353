package component

import "github.com/jakecoffman/cp"

// Collider describes the box a sprite occupies in the physics space,
// relative to its transform's top-left corner.
type Collider struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
	// Sensor colliders report overlaps without blocking movement.
	Sensor bool
}

var ColliderComponent = NewComponent[Collider]()

// PhysicsBody stores Chipmunk2D runtime data for a collider.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
