package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/worldbuilder/world"
)

// Sprite is the model handle the editor hands to the world. The image is
// shared between clones; only the facing is per handle.
type Sprite struct {
	Ref    string
	Image  *ebiten.Image
	Facing world.Direction
}

func (s *Sprite) SetDirection(d world.Direction) { s.Facing = d }

func (s *Sprite) Clone() world.Model {
	c := *s
	return &c
}

// Draw renders the sprite centred in the size x size square at (x, y),
// rotated to its facing.
func (s *Sprite) Draw(dst *ebiten.Image, x, y, size float64) {
	if s == nil || s.Image == nil {
		return
	}
	drawRotated(dst, s.Image, x, y, size, s.Facing, nil)
}

func drawRotated(dst, img *ebiten.Image, x, y, size float64, facing world.Direction, tint color.Color) {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	if w == 0 || h == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Scale(size/w, size/h)
	op.GeoM.Rotate(facing.Degrees() * math.Pi / 180)
	op.GeoM.Translate(x+size/2, y+size/2)
	if tint != nil {
		op.ColorScale.ScaleWithColor(tint)
	}
	dst.DrawImage(img, op)
}
