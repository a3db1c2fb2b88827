package brush

import (
	"github.com/milk9111/worldbuilder/common"
	"github.com/milk9111/worldbuilder/world"
)

// Brush carries the active behavior, its square size and facing.
type Brush struct {
	behavior  Behavior
	size      int
	observers []func(Behavior)
}

// New returns an idle brush of size 1.
func New() *Brush {
	return &Brush{behavior: Null(), size: 1}
}

func (b *Brush) Behavior() Behavior { return b.behavior }

// SetBehavior switches behavior and notifies observers.
func (b *Brush) SetBehavior(bh Behavior) {
	b.behavior = bh
	for _, fn := range b.observers {
		fn(bh)
	}
}

// OnBehaviorChanged registers fn to run after every SetBehavior.
func (b *Brush) OnBehaviorChanged(fn func(Behavior)) {
	if fn != nil {
		b.observers = append(b.observers, fn)
	}
}

func (b *Brush) Size() int { return b.size }

// SetSize sets the edge length of the square neighbourhood. Values below one
// become one and even values round up to the next odd size.
func (b *Brush) SetSize(n int) {
	n = max(n, 1)
	if n%2 == 0 {
		n++
	}
	b.size = n
}

func (b *Brush) Direction() world.Direction { return b.behavior.Direction() }

func (b *Brush) SetDirection(d world.Direction) { b.behavior.SetDirection(d) }

// Rotate turns the active behavior's facing by 45 degrees.
func (b *Brush) Rotate(clockwise bool) {
	b.behavior.SetDirection(b.behavior.Direction().Rotate(clockwise))
}

// Preview describes what the brush would draw at the cursor.
func (b *Brush) Preview() Preview {
	return b.behavior.Preview()
}

// Apply runs the behavior at the world cursor. Sizable behaviors cover the
// size x size square centred on the cursor cell, cut to the world bounds.
func (b *Brush) Apply(w *world.World) Stroke {
	cursor := w.Cursor()
	if !b.behavior.Sizable() {
		return b.behavior.Apply(w, cursor)
	}

	var stroke Stroke
	half := b.size / 2
	cx, cy := common.Round(cursor.X), common.Round(cursor.Y)
	for y := max(0, cy-half); y <= cy+half && y < w.Height(); y++ {
		for x := max(0, cx-half); x <= cx+half && x < w.Width(); x++ {
			loc := world.Vector3{X: float64(x), Y: float64(y), Z: cursor.Z}
			stroke.Merge(b.behavior.Apply(w, loc))
		}
	}
	return stroke
}
