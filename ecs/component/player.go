package component

type Player struct {
	MoveSpeed     float64
	IdleAnimation string
	WalkAnimation string
	// Directional walk strips are named WalkAnimation + "_" + direction
	// ("walk_left") and are used when present.
	Directional bool
}

var PlayerComponent = NewComponent[Player]()
