package component

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteKind names the variant a sprite was built as.
type SpriteKind string

const (
	KindBackground SpriteKind = "background"
	KindNPC        SpriteKind = "npc"
	KindItem       SpriteKind = "item"
	KindPlayer     SpriteKind = "player"
)

// Sprite is the drawable part of a scene object. Image is the whole strip;
// Source selects the current cell when UseSource is set.
type Sprite struct {
	Name       string
	Kind       SpriteKind
	Image      *ebiten.Image
	Source     image.Rectangle
	UseSource  bool
	OriginX    float64
	OriginY    float64
	OffsetX    float64
	OffsetY    float64
	FacingLeft bool
	// Stretch scales the image to the whole screen (backgrounds).
	Stretch bool
}

var SpriteComponent = NewComponent[Sprite]()
