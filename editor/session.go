package editor

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/worldbuilder/brush"
	"github.com/milk9111/worldbuilder/config"
	"github.com/milk9111/worldbuilder/levels"
	"github.com/milk9111/worldbuilder/palette"
	"github.com/milk9111/worldbuilder/world"
)

var (
	// ErrNoPath is returned by Save when the session has never been saved or opened.
	ErrNoPath = errors.New("editor: no file name")
	// ErrNotFound is returned for entity, zone, layer or artifact names that do not exist.
	ErrNotFound = errors.New("editor: not found")
)

// Options wires a Session to its collaborators. Nil fields get defaults.
type Options struct {
	Config   *config.Config
	Logger   logrus.FieldLogger
	Provider world.ModelProvider
	Sink     levels.Sink
	Source   levels.Source
}

// Session is the headless editor: one world, one brush and the commands the
// UI layer issues against them. It is driven from a single goroutine.
type Session struct {
	cfg      *config.Config
	log      logrus.FieldLogger
	provider world.ModelProvider
	sink     levels.Sink
	source   levels.Source

	world   *world.World
	brush   *brush.Brush
	palette *palette.Palette

	path  string
	layer string
	dirty bool
	undo  []undoEntry
}

// NewSession creates a session holding an empty world sized from the config.
func NewSession(opts Options) (*Session, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	s := &Session{
		cfg:      cfg,
		log:      log,
		provider: opts.Provider,
		sink:     opts.Sink,
		source:   opts.Source,
		brush:    brush.New(),
	}
	if s.sink == nil {
		s.sink = levels.FileSink{}
	}
	if s.source == nil {
		s.source = levels.FileSource{}
	}

	pal, err := palette.LoadPalette(cfg.Resolve(cfg.Palette))
	if err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}
	s.palette = pal

	if err := s.NewWorld(cfg.World.Width, cfg.World.Height); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) World() *world.World       { return s.world }
func (s *Session) Brush() *brush.Brush       { return s.brush }
func (s *Session) Palette() *palette.Palette { return s.palette }
func (s *Session) Config() *config.Config    { return s.cfg }

// Path is the file the session was last saved to or opened from.
func (s *Session) Path() string { return s.path }

// Dirty reports unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

// NewWorld replaces the current world with an empty one.
func (s *Session) NewWorld(width, height int) error {
	w, err := world.New(width, height)
	if err != nil {
		return fmt.Errorf("editor: new world: %w", err)
	}
	w.SetMetadata(world.Metadata{Friction: s.cfg.World.Friction, MetersPerUnit: 1, LogicPerUnit: 1})
	w.SetProvider(s.provider)
	s.replaceWorld(w, "")
	s.log.WithFields(logrus.Fields{"width": width, "height": height}).Info("Created world")
	return nil
}

func (s *Session) replaceWorld(w *world.World, path string) {
	s.world = w
	s.path = path
	s.dirty = false
	s.undo = nil
	s.brush.SetBehavior(brush.Null())
	if len(s.cfg.Layers) > 0 {
		s.layer = ""
		_ = s.SelectLayer(s.cfg.Layers[0].Name)
	}
}

// Tick forwards frame time to the world.
func (s *Session) Tick(dt float64) {
	s.world.Tick(dt)
}

// Stats summarizes the compacted form of the current world.
func (s *Session) Stats() world.Stats {
	return s.world.Stats()
}

// Status is a one-line summary for the UI status bar.
func (s *Session) Status() string {
	c := s.world.Cursor()
	p := s.brush.Preview()
	label := p.Kind.String()
	if p.Model != "" {
		label += " " + p.Model
	}
	dirty := ""
	if s.dirty {
		dirty = " *"
	}
	return fmt.Sprintf("%s | size %d | %s | layer %s | (%.1f, %.1f, %.2f)%s",
		label, s.brush.Size(), p.Direction, s.layer, c.X, c.Y, c.Z, dirty)
}
