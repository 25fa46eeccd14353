package component

import (
	"image"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteAnimation cycles through the equally sized cells of a horizontal
// frame strip. Speed is the number of ticks each cell stays on screen.
type SpriteAnimation struct {
	Strip   *ebiten.Image
	Cells   int
	CellW   int
	CellH   int
	Speed   int
	Frame   int
	Counter int
}

// NewSpriteAnimation builds an animation over strip. Cell size is derived
// from the strip bounds; a nil strip leaves it at zero.
func NewSpriteAnimation(strip *ebiten.Image, cells, speed int) *SpriteAnimation {
	a := &SpriteAnimation{Strip: strip, Cells: cells, Speed: speed}
	a.normalize()
	if strip != nil {
		b := strip.Bounds()
		a.CellW = b.Dx() / a.Cells
		a.CellH = b.Dy()
	}
	return a
}

func (a *SpriteAnimation) normalize() {
	if a.Cells <= 0 {
		a.Cells = 1
	}
	if a.Speed <= 0 {
		a.Speed = 1
	}
	if a.Frame < 0 || a.Frame >= a.Cells {
		a.Frame = 0
	}
}

// Advance moves the animation forward by one tick.
func (a *SpriteAnimation) Advance() {
	if a == nil {
		return
	}
	a.normalize()
	a.Counter++
	if a.Counter >= a.Speed {
		a.Counter = 0
		a.Frame = (a.Frame + 1) % a.Cells
	}
}

// Reset rewinds to the first cell.
func (a *SpriteAnimation) Reset() {
	if a == nil {
		return
	}
	a.Frame = 0
	a.Counter = 0
}

// Rect returns the strip region of the current cell.
func (a *SpriteAnimation) Rect() image.Rectangle {
	if a == nil {
		return image.Rectangle{}
	}
	x := a.Frame * a.CellW
	return image.Rect(x, 0, x+a.CellW, a.CellH)
}

// Animation is the set of named strips a sprite can play and the name of the
// one currently selected.
type Animation struct {
	Animations map[string]*SpriteAnimation
	Current    string
	Playing    bool
}

// Active returns the selected animation, or nil.
func (a *Animation) Active() *SpriteAnimation {
	if a == nil || a.Animations == nil {
		return nil
	}
	return a.Animations[a.Current]
}

// Play selects name. Switching to a different animation rewinds it; asking
// for the current one leaves it running.
func (a *Animation) Play(name string) bool {
	if a == nil {
		return false
	}
	next, ok := a.Animations[name]
	if !ok || next == nil {
		return false
	}
	if a.Current != name {
		a.Current = name
		next.Reset()
	}
	a.Playing = true
	return true
}

// Has reports whether name is a known animation.
func (a *Animation) Has(name string) bool {
	if a == nil {
		return false
	}
	_, ok := a.Animations[name]
	return ok
}

// Names returns the animation names in sorted order.
func (a *Animation) Names() []string {
	if a == nil {
		return nil
	}
	names := make([]string, 0, len(a.Animations))
	for name := range a.Animations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var AnimationComponent = NewComponent[Animation]()
