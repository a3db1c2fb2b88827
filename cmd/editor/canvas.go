package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/worldbuilder/brush"
	"github.com/milk9111/worldbuilder/common"
	"github.com/milk9111/worldbuilder/render"
	"github.com/milk9111/worldbuilder/world"
)

// Canvas maps between screen pixels and world units and draws the world.
// Cell i spans [i-0.5, i+0.5) in world units, matching how keys snap.
type Canvas struct {
	LeftPanelW int
	CellSize   int

	Zoom    float64
	OffsetX float64
	OffsetY float64

	dragActive bool
	lastMX     int
	lastMY     int

	gridPixel *ebiten.Image
}

func NewCanvas(cellSize int) *Canvas {
	return &Canvas{LeftPanelW: leftPanelWidth, CellSize: cellSize, Zoom: 1, OffsetX: 24, OffsetY: 64}
}

// Contains reports whether a screen point is over the canvas.
func (c *Canvas) Contains(sx, sy int) bool {
	return sx >= c.LeftPanelW
}

// ScreenToWorld converts a screen point to world units.
func (c *Canvas) ScreenToWorld(sx, sy int) (float64, float64, bool) {
	if !c.Contains(sx, sy) {
		return 0, 0, false
	}
	cell := float64(c.CellSize) * c.Zoom
	wx := (float64(sx-c.LeftPanelW)-c.OffsetX)/cell - 0.5
	wy := (float64(sy)-c.OffsetY)/cell - 0.5
	return wx, wy, true
}

// WorldToScreen returns the top-left pixel of the cell centred on (x, y).
func (c *Canvas) WorldToScreen(x, y float64) (float64, float64) {
	cell := c.cellPx()
	return x*cell + c.OffsetX + float64(c.LeftPanelW), y*cell + c.OffsetY
}

// PointToScreen returns the pixel of a world point, used for zone corners.
func (c *Canvas) PointToScreen(x, y float64) (float64, float64) {
	half := 0.5 * c.cellPx()
	sx, sy := c.WorldToScreen(x, y)
	return sx + half, sy + half
}

func (c *Canvas) cellPx() float64 { return float64(c.CellSize) * c.Zoom }

// Update handles wheel zoom and middle-button panning.
func (c *Canvas) Update(mx, my int) {
	if c.Contains(mx, my) {
		_, wy := ebiten.Wheel()
		if wy != 0 {
			// keep the point under the cursor fixed
			localX := (float64(mx-c.LeftPanelW) - c.OffsetX) / c.Zoom
			localY := (float64(my) - c.OffsetY) / c.Zoom
			factor := 1.1
			if wy < 0 {
				factor = 1 / 1.1
			}
			c.Zoom = math.Min(math.Max(c.Zoom*factor, 0.25), 8)
			c.OffsetX = float64(mx-c.LeftPanelW) - localX*c.Zoom
			c.OffsetY = float64(my) - localY*c.Zoom
		}
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle) {
		if c.dragActive {
			c.OffsetX += float64(mx - c.lastMX)
			c.OffsetY += float64(my - c.lastMY)
		}
		c.dragActive = true
		c.lastMX, c.lastMY = mx, my
		return
	}
	c.dragActive = false
}

// Draw renders tiles, zones, entities and the brush preview.
func (c *Canvas) Draw(screen *ebiten.Image, w *world.World, b *brush.Brush, provider *render.Provider, selected world.Movable) {
	if c.gridPixel == nil {
		c.gridPixel = ebiten.NewImage(1, 1)
		c.gridPixel.Fill(color.White)
	}
	cell := c.cellPx()
	cursorZ := w.Cursor().Z

	// grid
	for y := 0; y < w.Height(); y++ {
		for x := 0; x < w.Width(); x++ {
			sx, sy := c.WorldToScreen(float64(x), float64(y))
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(cell-1, cell-1)
			op.GeoM.Translate(sx, sy)
			op.ColorScale.Scale(0.18, 0.18, 0.2, 1)
			screen.DrawImage(c.gridPixel, op)
		}
	}

	// tiles, lower planes first; planes above the cursor layer are skipped
	for _, k := range w.Grid().Keys() {
		if k.Depth() > cursorZ {
			continue
		}
		a, ok := w.Grid().Tile(k.Location())
		if !ok {
			continue
		}
		m, _ := w.ArtifactModel(a)
		sx, sy := c.WorldToScreen(float64(k.X), float64(k.Y))
		provider.DrawModel(screen, m, a.Model, a.Direction, sx, sy, cell)
	}

	for _, z := range w.Zones() {
		o, e := z.Origin, z.Extent()
		sx, sy := c.PointToScreen(o.X, o.Y)
		clr := colornames.Cornflowerblue
		if selected == world.Movable(z) {
			clr = colornames.Gold
		}
		vector.StrokeRect(screen, float32(sx), float32(sy), float32(math.Max(e.X, 0.1)*cell), float32(math.Max(e.Y, 0.1)*cell), 2, clr, false)
		ebitenutil.DebugPrintAt(screen, z.Name, int(sx)+2, int(sy)+2)
	}

	for _, e := range w.Entities() {
		sx, sy := c.WorldToScreen(e.Location.X, e.Location.Y)
		provider.DrawModel(screen, e.Model(), e.Type, e.Direction, sx, sy, cell)
		if selected == world.Movable(e) {
			vector.StrokeRect(screen, float32(sx), float32(sy), float32(cell), float32(cell), 2, colornames.Gold, false)
		}
		ebitenutil.DebugPrintAt(screen, e.Name, int(sx), int(sy+cell))
	}

	c.drawPreview(screen, w, b, provider)
}

func (c *Canvas) drawPreview(screen *ebiten.Image, w *world.World, b *brush.Brush, provider *render.Provider) {
	cell := c.cellPx()
	cur := w.Cursor()
	p := b.Preview()
	cx, cy := common.Round(cur.X), common.Round(cur.Y)

	size := 1
	if b.Behavior().Sizable() {
		size = b.Size()
	}
	half := size / 2
	for y := cy - half; y <= cy+half; y++ {
		for x := cx - half; x <= cx+half; x++ {
			if x < 0 || y < 0 || x >= w.Width() || y >= w.Height() {
				continue
			}
			sx, sy := c.WorldToScreen(float64(x), float64(y))
			if p.Kind == brush.KindPlace {
				provider.DrawGhost(screen, p.Model, p.Direction, sx, sy, cell)
			}
			vector.StrokeRect(screen, float32(sx), float32(sy), float32(cell), float32(cell), 1, previewColor(p.Kind), false)
		}
	}

	sx, sy := c.WorldToScreen(float64(cx+half+1), float64(cy-half))
	label := p.Kind.String()
	for _, n := range p.Annotations {
		label += " " + n
	}
	if p.Direction != world.Zero {
		label += fmt.Sprintf(" %s", p.Direction)
	}
	ebitenutil.DebugPrintAt(screen, label, int(sx)+4, int(sy))
}

func previewColor(k brush.Kind) color.Color {
	switch k {
	case brush.KindClear:
		return colornames.Red
	case brush.KindSample:
		return colornames.Lightgreen
	case brush.KindMoveEntity, brush.KindResizeZone:
		return colornames.Gold
	default:
		return colornames.White
	}
}
