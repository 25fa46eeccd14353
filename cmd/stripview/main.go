package main

import (
	"flag"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	log "github.com/sirupsen/logrus"

	"github.com/milk9111/spritescene/assets"
	"github.com/milk9111/spritescene/ecs/component"
)

const viewSize = 512

type viewer struct {
	path   string
	anim   *component.SpriteAnimation
	scale  float64
	paused bool
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.anim.Reset()
	}
	if v.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
			v.anim.Frame = (v.anim.Frame + 1) % v.anim.Cells
		}
		return nil
	}
	v.anim.Advance()
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})

	r := v.anim.Rect()
	cell := v.anim.Strip.SubImage(r).(*ebiten.Image)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(v.scale, v.scale)
	op.GeoM.Translate((viewSize-float64(r.Dx())*v.scale)/2, (viewSize-float64(r.Dy())*v.scale)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(cell, op)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s\nframe %d/%d  speed %d  cell %dx%d\nspace: pause  right: step  r: reset",
		v.path, v.anim.Frame+1, v.anim.Cells, v.anim.Speed, v.anim.CellW, v.anim.CellH))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

// fitScale returns the largest whole scale that keeps a cell inside the view.
func fitScale(cellW, cellH int) float64 {
	largest := max(cellW, cellH)
	if largest <= 0 {
		return 1
	}
	return float64(max(1, (viewSize*3/4)/largest))
}

func main() {
	path := flag.String("image", "images/hero_walk.png", "frame strip (asset path or file)")
	cells := flag.Int("cells", 4, "number of cells in the strip")
	speed := flag.Int("speed", 8, "ticks per cell")
	flag.Parse()

	strip, err := assets.LoadImage(*path)
	if err != nil {
		log.Fatal(err)
	}
	anim := component.NewSpriteAnimation(strip, *cells, *speed)

	v := &viewer{path: *path, anim: anim, scale: fitScale(anim.CellW, anim.CellH)}
	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("stripview")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
