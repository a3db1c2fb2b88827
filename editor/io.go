package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/worldbuilder/levels"
	"github.com/milk9111/worldbuilder/macro"
	"github.com/milk9111/worldbuilder/palette"
	"github.com/milk9111/worldbuilder/world"
)

// Save exports the world and writes it to path, or to the last used path
// when path is empty. Name conflicts abort the save and are logged.
func (s *Session) Save(path string) error {
	if path == "" {
		path = s.path
	}
	if path == "" {
		return ErrNoPath
	}
	cfg, err := s.world.Export()
	if err != nil {
		var verr *world.ValidationError
		if errors.As(err, &verr) {
			for _, c := range verr.Conflicts {
				s.log.WithFields(logrus.Fields{"kind": c.Kind, "name": c.Name, "indices": c.Indices}).Warn("Duplicate name blocks save")
			}
		}
		return err
	}
	if err := s.sink.Write(cfg, path); err != nil {
		s.log.WithError(err).WithField("path", path).Error("Failed to save world")
		return err
	}
	s.path = path
	s.dirty = false
	s.log.WithFields(logrus.Fields{
		"path":      path,
		"tiles":     s.world.Grid().Len(),
		"artifacts": len(cfg.Artifacts),
		"planes":    len(cfg.ArtifactPlanes),
	}).Info("Saved world")
	return nil
}

// Open replaces the world with the document at path. Missing models fall
// back to placeholders and are logged, they do not fail the open.
func (s *Session) Open(path string) error {
	cfg, err := s.source.Read(path)
	if err != nil {
		s.log.WithError(err).WithField("path", path).Error("Failed to load world")
		return err
	}
	return s.load(cfg, path)
}

// OpenSample loads one of the embedded sample worlds. The session keeps no
// file name, so the next Save needs one.
func (s *Session) OpenSample(name string) error {
	cfg, err := levels.LoadLevelFromFS(name)
	if err != nil {
		s.log.WithError(err).WithField("sample", name).Error("Failed to load sample")
		return err
	}
	return s.load(cfg, "")
}

func (s *Session) load(cfg *levels.Configuration, path string) error {
	w, report, err := world.Import(cfg, s.provider)
	if err != nil {
		s.log.WithError(err).WithField("path", path).Error("Failed to build world")
		return err
	}
	for _, ce := range report.Construction {
		s.log.WithError(ce.Err).WithFields(logrus.Fields{"kind": ce.Kind, "ref": ce.Ref}).Warn("Using placeholder model")
	}
	s.replaceWorld(w, path)
	s.log.WithFields(logrus.Fields{
		"path":     path,
		"width":    w.Width(),
		"height":   w.Height(),
		"tiles":    w.Grid().Len(),
		"entities": len(w.Entities()),
		"zones":    len(w.Zones()),
	}).Info("Loaded world")
	return nil
}

// RunMacro runs a named brush macro. Whatever it changed, including the
// part done before a failure, is undone as one step.
func (s *Session) RunMacro(ctx context.Context, name string, params map[string]any) error {
	res, err := macro.RunNamed(ctx, s.world, s.palette, s.cfg.Resolve(s.cfg.Macros), name, params)
	if res != nil {
		s.pushUndo(undoEntry{stroke: res.Stroke, added: res.Entities})
		for _, line := range res.Logs {
			s.log.WithField("macro", name).Info(line)
		}
	}
	if err != nil {
		s.log.WithError(err).WithField("macro", name).Error("Macro failed")
		return err
	}
	s.log.WithFields(logrus.Fields{"macro": name, "cells": len(res.Stroke.Cells), "entities": len(res.Entities)}).Info("Ran macro")
	return nil
}

// ReloadPalette rereads the configured palette. On failure the current
// palette stays active.
func (s *Session) ReloadPalette() error {
	pal, err := palette.LoadPalette(s.cfg.Resolve(s.cfg.Palette))
	if err != nil {
		s.log.WithError(err).Warn("Palette reload failed; keeping previous palette")
		return err
	}
	s.palette = pal
	s.log.WithField("artifacts", len(pal.Artifacts)).Info("Reloaded palette")
	return nil
}

// HandleChange reacts to a watcher event.
func (s *Session) HandleChange(c palette.Change) {
	switch c.Kind {
	case palette.PaletteChanged:
		_ = s.ReloadPalette()
	case palette.MacroChanged:
		s.log.WithField("path", c.Path).Info("Macro changed; next run uses the new version")
	default:
		s.log.WithField("path", c.Path).Debug(fmt.Sprintf("Ignoring change kind %d", c.Kind))
	}
}
