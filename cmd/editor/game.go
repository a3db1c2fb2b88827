package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"

	"github.com/milk9111/worldbuilder/brush"
	"github.com/milk9111/worldbuilder/editor"
	"github.com/milk9111/worldbuilder/macro"
	"github.com/milk9111/worldbuilder/palette"
	"github.com/milk9111/worldbuilder/render"
	"github.com/milk9111/worldbuilder/world"
)

// EditorGame is the ebiten game driving an editor session.
type EditorGame struct {
	ctx      context.Context
	session  *editor.Session
	provider *render.Provider
	watcher  *palette.Watcher
	log      logrus.FieldLogger

	ui        *EditorUI
	canvas    *Canvas
	prompt    *Prompt
	clipboard *systemClipboard

	artifact string
	template string
	selected world.Movable

	lastMX, lastMY int
	painting       bool
}

func NewEditorGame(ctx context.Context, s *editor.Session, p *render.Provider, w *palette.Watcher, log logrus.FieldLogger) *EditorGame {
	g := &EditorGame{
		ctx:      ctx,
		session:  s,
		provider: p,
		watcher:  w,
		log:      log,
		canvas:   NewCanvas(32),
		prompt:   NewPrompt(),
	}

	cb, err := newSystemClipboard()
	if err != nil {
		log.WithError(err).Warn("System clipboard unavailable; copy and paste stay inside the editor")
	}
	g.clipboard = cb

	g.ui = BuildEditorUI(g.selectTool, LeftPanelCallbacks{
		OnLayerSelected: func(name string) {
			if err := s.SelectLayer(name); err != nil {
				log.WithError(err).Warn("Layer select failed")
			}
		},
		OnArtifactSelected: func(name string) {
			g.artifact = name
			if err := s.SelectArtifact(name); err != nil {
				log.WithError(err).Warn("Artifact select failed")
			}
		},
		OnTemplateSelected: func(name string) {
			g.template = name
			g.createEntity()
		},
		OnMacroSelected: func(name string) {
			_ = s.RunMacro(g.ctx, name, nil)
		},
	})
	g.refreshLists()
	g.ui.LeftPanel.FileNameInput.SetText(s.Path())

	s.Brush().OnBehaviorChanged(func(b brush.Behavior) {
		g.ui.ToolBar.SetTool(toolFor(b.Kind()))
		if t := b.Target(); t != nil {
			g.selected = t
		}
	})
	g.ui.ToolBar.SetTool(toolFor(s.Brush().Behavior().Kind()))
	return g
}

func (g *EditorGame) refreshLists() {
	cfg := g.session.Config()
	names := make([]string, 0, len(cfg.Layers))
	for _, l := range cfg.Layers {
		names = append(names, l.Name)
	}
	g.ui.LeftPanel.SetLayers(names, g.session.Layer())
	g.ui.LeftPanel.SetPalette(g.session.Palette())
	macros, err := macro.List(cfg.Resolve(cfg.Macros))
	if err != nil {
		g.log.WithError(err).Warn("Failed to list macros")
	}
	g.ui.LeftPanel.SetMacros(macros)
}

// selectTool is the toolbar handler. Selecting the tool that already shows
// the current behavior is a no-op so programmatic highlights do not loop.
func (g *EditorGame) selectTool(t Tool) {
	s := g.session
	if toolFor(s.Brush().Behavior().Kind()) == t {
		return
	}
	switch t {
	case ToolSelect:
		s.SelectNull()
	case ToolPaint:
		if g.artifact == "" {
			g.log.Info("Pick an artifact from the palette first")
			s.SelectNull()
			return
		}
		_ = s.SelectArtifact(g.artifact)
	case ToolErase:
		s.SelectClear()
	case ToolSample:
		s.SelectSample()
	case ToolResize:
		z, ok := g.selected.(*world.Zone)
		if !ok || z.World() != s.World() {
			g.log.Info("Select a zone before resizing")
			s.SelectNull()
			return
		}
		_ = s.SelectResize(z.Name)
	}
}

func (g *EditorGame) createEntity() {
	if g.template == "" {
		return
	}
	if _, err := g.session.CreateEntity(g.template); err != nil {
		g.log.WithError(err).Warn("Create entity failed")
	}
}

func (g *EditorGame) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case c, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.session.HandleChange(c)
			g.provider.SetPalette(g.session.Palette())
			g.refreshLists()
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.WithError(err).Warn("Watcher error")
			}
		default:
			return
		}
	}
}

func (g *EditorGame) Update() error {
	g.drainWatcher()
	g.session.Tick(1 / float64(ebiten.TPS()))

	if g.prompt.Update() {
		return nil
	}

	// If the UI has a focused text widget (user is typing), suppress hotkeys.
	typing := false
	if fw := g.ui.GetFocusedWidget(); fw != nil {
		_, typing = fw.(*widget.TextInput)
	}
	if !typing {
		if err := g.handleHotkeys(); err != nil {
			return err
		}
	}

	g.ui.Update()

	mx, my := ebiten.CursorPosition()
	g.canvas.Update(mx, my)
	g.handleMouse(mx, my)

	g.ui.Status.Label = g.session.Status()
	return nil
}

func (g *EditorGame) handleMouse(mx, my int) {
	wx, wy, ok := g.canvas.ScreenToWorld(mx, my)
	if !ok {
		g.painting = false
		return
	}
	if mx != g.lastMX || my != g.lastMY {
		g.session.SnapCursor(wx, wy)
		g.lastMX, g.lastMY = mx, my
	}

	s := g.session
	kind := s.Brush().Behavior().Kind()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		s.SelectNull()
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if kind == brush.KindNull {
			if picked := s.Pick(wx, wy); picked.Empty() {
				g.selected = nil
			}
			return
		}
		s.Apply()
		g.painting = s.Brush().Behavior().Sizable()
		return
	}
	if g.painting && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s.Apply()
		return
	}
	g.painting = false
}

func ctrl() bool { return ebiten.IsKeyPressed(ebiten.KeyControl) }

func (g *EditorGame) handleHotkeys() error {
	s := g.session
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		return ebiten.Termination
	case ctrl() && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		s.Undo()
	case ctrl() && inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.save()
	case ctrl() && inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.prompt.Open("Open world:", s.Path(), func(path string) error {
			if err := s.Open(path); err != nil {
				return err
			}
			g.ui.LeftPanel.FileNameInput.SetText(s.Path())
			g.selected = nil
			return nil
		})
	case ctrl() && inpututil.IsKeyJustPressed(ebiten.KeyN):
		cfg := s.Config()
		g.prompt.Open("New world WxH:", fmt.Sprintf("%dx%d", cfg.World.Width, cfg.World.Height), func(v string) error {
			var w, h int
			if _, err := fmt.Sscanf(v, "%dx%d", &w, &h); err != nil {
				return fmt.Errorf("expected WIDTHxHEIGHT, got %q", v)
			}
			if err := s.NewWorld(w, h); err != nil {
				g.log.WithError(err).Warn("New world failed")
				return err
			}
			g.selected = nil
			return nil
		})
	case ctrl() && inpututil.IsKeyJustPressed(ebiten.KeyC):
		data, err := s.CopyArtifact()
		if err != nil {
			g.log.WithError(err).Info("Nothing to copy")
			return nil
		}
		g.clipboard.Write(data)
	case ctrl() && inpututil.IsKeyJustPressed(ebiten.KeyV):
		if err := s.PasteArtifact(g.clipboard.Read()); err != nil {
			g.log.WithError(err).Warn("Clipboard does not hold an artifact")
		}
	case ctrl() && inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.prompt.Open("Run macro:", "", func(name string) error {
			return s.RunMacro(g.ctx, name, nil)
		})
	case inpututil.IsKeyJustPressed(ebiten.KeyQ):
		s.Rotate(false)
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		s.Rotate(true)
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		s.ShrinkBrush()
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		s.GrowBrush()
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		s.MoveCursor(-1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		s.MoveCursor(1, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		s.MoveCursor(0, -1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		s.MoveCursor(0, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		s.Apply()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.createEntity()
	case inpututil.IsKeyJustPressed(ebiten.KeyZ):
		g.selected = s.CreateZone()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if e, ok := g.selected.(*world.Entity); ok {
			g.prompt.Open("Rename entity:", e.Name, func(name string) error {
				return s.RenameEntity(e.Name, name)
			})
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		g.deleteSelected()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.SelectNull()
		g.selected = nil
	}
	return nil
}

func (g *EditorGame) save() {
	name := strings.TrimSpace(g.ui.LeftPanel.FileNameInput.GetText())
	if name == "" && g.session.Path() == "" {
		g.prompt.Open("Save as:", "worlds/untitled.json", func(path string) error {
			if path == "" {
				return errors.New("a file name is required")
			}
			g.ui.LeftPanel.FileNameInput.SetText(path)
			g.save()
			return nil
		})
		return
	}
	if err := g.session.Save(name); err == nil {
		g.ui.LeftPanel.FileNameInput.SetText(g.session.Path())
	}
}

func (g *EditorGame) deleteSelected() {
	var err error
	switch t := g.selected.(type) {
	case *world.Entity:
		err = g.session.DeleteEntity(t.Name)
	case *world.Zone:
		err = g.session.DeleteZone(t.Name)
	default:
		return
	}
	if err != nil {
		g.log.WithError(err).Warn("Delete failed")
	}
	g.selected = nil
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	g.canvas.Draw(screen, g.session.World(), g.session.Brush(), g.provider, g.selected)
	g.ui.Draw(screen)
	g.prompt.Draw(screen)
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
