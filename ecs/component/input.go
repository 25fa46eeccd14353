package component

// Input stores the per-frame movement intent of an entity.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool

	// Click target in screen space, set on the frame the mouse is pressed.
	TargetX   float64
	TargetY   float64
	HasTarget bool
}

// Direction returns the unit-less step implied by the flags.
func (i *Input) Direction() (dx, dy float64) {
	if i == nil {
		return 0, 0
	}
	if i.Left {
		dx--
	}
	if i.Right {
		dx++
	}
	if i.Up {
		dy--
	}
	if i.Down {
		dy++
	}
	return dx, dy
}

var InputComponent = NewComponent[Input]()
