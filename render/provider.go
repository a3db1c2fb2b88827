// Package render resolves world models to ebiten images for the editor view.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"

	"github.com/milk9111/worldbuilder/world"
)

// ErrNoImage is returned when a model reference has no readable image.
var ErrNoImage = errors.New("render: no image")

// Palette supplies placeholder colours for model references.
type Palette interface {
	ColorFor(ref string) (color.Color, bool)
}

// Provider loads PNG sprites from BaseDir and keeps them in a bounded cache.
// It implements world.ModelProvider.
type Provider struct {
	baseDir string
	cache   *ristretto.Cache[string, *ebiten.Image]
	palette Palette
}

// NewProvider creates a provider whose image cache holds about cacheMB
// megabytes of pixel data.
func NewProvider(baseDir string, cacheMB int, pal Palette) (*Provider, error) {
	if cacheMB <= 0 {
		cacheMB = 64
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, *ebiten.Image]{
		NumCounters: 10000,
		MaxCost:     int64(cacheMB) << 20,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("render: cache: %w", err)
	}
	return &Provider{baseDir: baseDir, cache: cache, palette: pal}, nil
}

// SetPalette swaps the colour source used for placeholders.
func (p *Provider) SetPalette(pal Palette) {
	p.palette = pal
	p.cache.Clear()
}

func (p *Provider) Close() {
	if p != nil && p.cache != nil {
		p.cache.Close()
	}
}

func (p *Provider) ArtifactModel(a world.Artifact) (world.Model, error) {
	img, err := p.Image(a.Model)
	if err != nil {
		return nil, err
	}
	return &Sprite{Ref: a.Model, Image: img, Facing: a.Direction}, nil
}

// EntityModel looks for entities/<type>.png.
func (p *Provider) EntityModel(e *world.Entity) (world.Model, error) {
	ref := EntityRef(e.Type)
	img, err := p.Image(ref)
	if err != nil {
		return nil, err
	}
	return &Sprite{Ref: ref, Image: img, Facing: e.Direction}, nil
}

func EntityRef(typ string) string {
	return "entities/" + typ + ".png"
}

// Image returns the decoded image for ref, loading it on a cache miss.
func (p *Provider) Image(ref string) (*ebiten.Image, error) {
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrNoImage)
	}
	if img, ok := p.cache.Get(ref); ok {
		return img, nil
	}
	path := ref
	if p.baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(p.baseDir, filepath.FromSlash(ref))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoImage, err)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("render: decode %s: %w", path, err)
	}
	img := ebiten.NewImageFromImage(src)
	p.cache.Set(ref, img, imageCost(src.Bounds()))
	p.cache.Wait()
	return img, nil
}

// Placeholder is a flat square in the palette colour for ref, or magenta when
// the palette has none.
func (p *Provider) Placeholder(ref string) *ebiten.Image {
	key := "placeholder:" + ref
	if img, ok := p.cache.Get(key); ok {
		return img
	}
	var c color.Color = colornames.Magenta
	if p.palette != nil {
		if pc, ok := p.palette.ColorFor(ref); ok {
			c = pc
		}
	}
	img := ebiten.NewImage(placeholderSize, placeholderSize)
	img.Fill(c)
	p.cache.Set(key, img, imageCost(img.Bounds()))
	p.cache.Wait()
	return img
}

// DrawModel draws m, or the placeholder for ref when m is not a Sprite.
func (p *Provider) DrawModel(dst *ebiten.Image, m world.Model, ref string, facing world.Direction, x, y, size float64) {
	if s, ok := m.(*Sprite); ok && s.Image != nil {
		s.Draw(dst, x, y, size)
		return
	}
	drawRotated(dst, p.Placeholder(ref), x, y, size, facing, nil)
}

// DrawGhost draws ref translucently, used for the brush preview.
func (p *Provider) DrawGhost(dst *ebiten.Image, ref string, facing world.Direction, x, y, size float64) {
	img, err := p.Image(ref)
	if err != nil {
		img = p.Placeholder(ref)
	}
	drawRotated(dst, img, x, y, size, facing, color.NRGBA{R: 255, G: 255, B: 255, A: 140})
}

const placeholderSize = 16

func imageCost(b image.Rectangle) int64 {
	return int64(b.Dx() * b.Dy() * 4)
}
