package main

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// SubmitFunc receives the trimmed prompt text. A non-nil error keeps the
// prompt open with the message shown under the input line.
type SubmitFunc func(text string) error

// Prompt is a one-line modal text input drawn across the middle of the
// canvas. While open it swallows keyboard input so editor hotkeys do not
// fire underneath it.
type Prompt struct {
	label    string
	input    []rune
	submit   SubmitFunc
	problem  string
	ticks    int
	open     bool
	backdrop *ebiten.Image
}

func NewPrompt() *Prompt { return &Prompt{} }

func (p *Prompt) IsOpen() bool { return p.open }

// Open shows the prompt with label and initial text. It replaces any prompt
// that is already open.
func (p *Prompt) Open(label, initial string, submit SubmitFunc) {
	p.label = label
	p.input = []rune(initial)
	p.submit = submit
	p.problem = ""
	p.ticks = 0
	p.open = true
}

// Close hides the prompt and forgets its callback.
func (p *Prompt) Close() {
	*p = Prompt{backdrop: p.backdrop}
}

// Update edits the input line and handles Enter and Escape. It reports
// whether the prompt consumed this frame's input.
func (p *Prompt) Update() bool {
	if !p.open {
		return false
	}
	p.ticks++
	for _, r := range ebiten.AppendInputChars(nil) {
		if r == '\n' || r == '\r' {
			continue
		}
		p.input = append(p.input, r)
		p.problem = ""
	}
	if repeating(ebiten.KeyBackspace) && len(p.input) > 0 {
		p.input = p.input[:len(p.input)-1]
		p.problem = ""
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		p.commit()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		p.Close()
	}
	return true
}

// commit runs the callback. The prompt is closed first so the callback can
// chain another prompt by calling Open.
func (p *Prompt) commit() {
	text, submit, label := strings.TrimSpace(string(p.input)), p.submit, p.label
	p.open = false
	if submit == nil {
		p.Close()
		return
	}
	err := submit(text)
	if p.open {
		return
	}
	if err != nil {
		p.open = true
		p.label = label
		p.submit = submit
		p.problem = err.Error()
		return
	}
	p.Close()
}

// repeating reports a key press on the first frame and then at a steady
// rate while held.
func repeating(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d > 30 && d%4 == 0)
}

// Draw renders the backdrop, the label with its input and a blinking caret.
func (p *Prompt) Draw(screen *ebiten.Image) {
	if !p.open {
		return
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	if p.backdrop == nil || p.backdrop.Bounds().Dx() != sw {
		p.backdrop = ebiten.NewImage(sw, 64)
		p.backdrop.Fill(color.RGBA{A: 0xa0})
	}
	o := &ebiten.DrawImageOptions{}
	o.GeoM.Translate(0, float64(sh/2-24))
	screen.DrawImage(p.backdrop, o)

	line := p.label + " " + string(p.input)
	if (p.ticks/30)%2 == 0 {
		line += "_"
	}
	ebitenutil.DebugPrintAt(screen, line, 16, sh/2-16)
	if p.problem != "" {
		ebitenutil.DebugPrintAt(screen, "! "+p.problem, 16, sh/2+4)
	}
}
