package main

import (
	"context"
	"flag"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/worldbuilder/config"
	"github.com/milk9111/worldbuilder/editor"
	"github.com/milk9111/worldbuilder/logging"
	"github.com/milk9111/worldbuilder/palette"
	"github.com/milk9111/worldbuilder/render"
)

func main() {
	configPath := flag.String("config", "", "Editor configuration YAML (defaults are used when empty)")
	worldPath := flag.String("world", "", "World document to open (.json or .json.zst)")
	sample := flag.String("sample", "", "Embedded sample world to open instead of -world")
	logLevel := flag.String("log-level", "", "Override the configured log level")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		logrus.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()

	log.Info("Editor starting...")

	provider, err := render.NewProvider(cfg.BaseDir, cfg.PreviewCacheMB, nil)
	if err != nil {
		log.Fatalf("Failed to create model provider: %v", err)
	}
	defer provider.Close()

	session, err := editor.NewSession(editor.Options{Config: cfg, Logger: log, Provider: provider})
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}
	provider.SetPalette(session.Palette())

	switch {
	case *sample != "":
		if err := session.OpenSample(*sample); err != nil {
			log.Warnf("Starting with an empty world")
		}
	case *worldPath != "":
		if err := session.Open(*worldPath); err != nil {
			log.Warnf("Starting with an empty world")
		}
	}

	watcher := startWatcher(cfg, log)
	if watcher != nil {
		defer watcher.Close()
	}

	game := NewEditorGame(context.Background(), session, provider, watcher, log)

	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("World Builder")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// startWatcher watches the palette file's directory and the macro directory.
// Embedded resources are not watched.
func startWatcher(cfg *config.Config, log logrus.FieldLogger) *palette.Watcher {
	var dirs []string
	if cfg.Palette != "" {
		dirs = append(dirs, filepath.Dir(cfg.Resolve(cfg.Palette)))
	}
	if cfg.Macros != "" {
		dirs = append(dirs, cfg.Resolve(cfg.Macros))
	}
	if len(dirs) == 0 {
		return nil
	}
	w, err := palette.NewWatcher(250*time.Millisecond, dirs...)
	if err != nil {
		log.WithError(err).Warn("Hot reload disabled")
		return nil
	}
	log.WithField("dirs", dirs).Info("Watching for palette and macro changes")
	return w
}
