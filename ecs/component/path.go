package component

import "golang.org/x/image/math/f64"

// Waypoint is either a target to walk to at Speed pixels per tick, or a wait
// of Time ticks when HasTarget is false.
type Waypoint struct {
	Target    f64.Vec2
	HasTarget bool
	Speed     float64
	Time      int
	Animation string
}

// Path walks an entity through its waypoints.
type Path struct {
	Points []Waypoint
	Index  int
	Wait   int
	Loop   bool
	Paused bool
	Done   bool
}

// Current returns the active waypoint.
func (p *Path) Current() (Waypoint, bool) {
	if p == nil || len(p.Points) == 0 || p.Index < 0 || p.Index >= len(p.Points) {
		return Waypoint{}, false
	}
	return p.Points[p.Index], true
}

// Next advances to the following waypoint. Non-looping paths are marked done
// after their last point.
func (p *Path) Next() {
	if p == nil || len(p.Points) == 0 {
		return
	}
	p.Wait = 0
	if p.Index+1 >= len(p.Points) && !p.Loop {
		p.Done = true
		return
	}
	p.Index = (p.Index + 1) % len(p.Points)
}

var PathComponent = NewComponent[Path]()
