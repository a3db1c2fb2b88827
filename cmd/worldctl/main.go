// Command worldctl inspects and converts world documents without a display.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/worldbuilder/config"
	"github.com/milk9111/worldbuilder/levels"
	"github.com/milk9111/worldbuilder/logging"
	"github.com/milk9111/worldbuilder/macro"
	"github.com/milk9111/worldbuilder/palette"
	"github.com/milk9111/worldbuilder/world"
)

const usage = `usage: worldctl [-config file] <command> [args]

commands:
  validate <world>...              check documents against the schema and import rules
  stats <world>                    print tile, plane and catalog counts
  convert <in> <out>               rewrite a document, switching format by extension
  macro [-p key=value]... <name> <in> <out>
                                   run a brush macro over a document
  new [-w width] [-h height] <out> write an empty world
  samples                          list embedded sample worlds
`

var errUsage = errors.New("worldctl: bad usage")

func main() {
	configPath := flag.String("config", "", "Editor configuration YAML")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log, closer, err := logging.New(cfg.Log)
	if err != nil {
		logrus.Fatalf("Failed to set up logging: %v", err)
	}
	defer closer.Close()

	if err := run(context.Background(), cfg, log, os.Stdout, flag.Args()); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Fprint(os.Stderr, usage)
		}
		log.Error(err)
		closer.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, out io.Writer, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "validate":
		return validate(log, out, rest)
	case "stats":
		return stats(out, rest)
	case "convert":
		return convert(log, rest)
	case "macro":
		return runMacro(ctx, cfg, log, rest)
	case "new":
		return newWorld(cfg, log, rest)
	case "samples":
		names, err := levels.ListLevels()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, strings.Join(names, "\n"))
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

// load reads a world document, falling back to embedded samples for names
// given as "sample:<name>".
func load(path string) (*levels.Configuration, error) {
	if name, ok := strings.CutPrefix(path, "sample:"); ok {
		return levels.LoadLevelFromFS(name)
	}
	return levels.FileSource{}.Read(path)
}

func validate(log logrus.FieldLogger, out io.Writer, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("%w: validate needs at least one document", errUsage)
	}
	failed := 0
	for _, p := range paths {
		cfg, err := load(p)
		if err == nil {
			var w *world.World
			w, _, err = world.Import(cfg, nil)
			if err == nil {
				err = w.Validate()
			}
		}
		if err != nil {
			failed++
			log.WithError(err).WithField("path", p).Warn("Invalid world")
			fmt.Fprintf(out, "FAIL %s: %v\n", p, err)
			continue
		}
		fmt.Fprintf(out, "ok   %s\n", p)
	}
	if failed > 0 {
		return fmt.Errorf("worldctl: %d of %d documents invalid", failed, len(paths))
	}
	return nil
}

func stats(out io.Writer, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: stats takes one document", errUsage)
	}
	cfg, err := load(args[0])
	if err != nil {
		return err
	}
	w, report, err := world.Import(cfg, nil)
	if err != nil {
		return err
	}
	s := w.Stats()
	fmt.Fprintf(out, "size      %d x %d (stride %d)\n", w.Width(), w.Height(), world.Stride(w.Width(), w.Height()))
	fmt.Fprintf(out, "tiles     %s\n", humanize.Comma(int64(s.Tiles)))
	fmt.Fprintf(out, "planes    %d\n", s.Planes)
	fmt.Fprintf(out, "catalog   %d\n", s.Catalog)
	fmt.Fprintf(out, "tokens    %s (%s skips)\n", humanize.Comma(int64(s.Tokens)), humanize.Comma(int64(s.Skips)))
	fmt.Fprintf(out, "entities  %d\n", len(w.Entities()))
	fmt.Fprintf(out, "zones     %d\n", len(w.Zones()))
	if info, err := os.Stat(args[0]); err == nil {
		fmt.Fprintf(out, "file      %s, modified %s\n", humanize.Bytes(uint64(info.Size())), humanize.Time(info.ModTime()))
	}
	if n := len(report.Construction); n > 0 {
		fmt.Fprintf(out, "warnings  %d model(s) unresolved\n", n)
	}
	return nil
}

func convert(log logrus.FieldLogger, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: convert takes <in> <out>", errUsage)
	}
	cfg, err := load(args[0])
	if err != nil {
		return err
	}
	// Round trip through the world so the output is canonical.
	w, _, err := world.Import(cfg, nil)
	if err != nil {
		return err
	}
	return save(log, w, args[1])
}

type paramFlags map[string]any

func (p paramFlags) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ",")
}

// Set parses key=value. Integers, floats and booleans keep their type.
func (p paramFlags) Set(v string) error {
	key, val, ok := strings.Cut(v, "=")
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	var parsed any = val
	var i int64
	var f float64
	switch {
	case val == "true" || val == "false":
		parsed = val == "true"
	case scan(val, "%d", &i):
		parsed = i
	case scan(val, "%g", &f):
		parsed = f
	}
	p[key] = parsed
	return nil
}

func scan(s, format string, dst any) bool {
	var rest string
	n, _ := fmt.Sscanf(s+" end", format+" %s", dst, &rest)
	return n == 2 && rest == "end"
}

func runMacro(ctx context.Context, cfg *config.Config, log logrus.FieldLogger, args []string) error {
	fs := flag.NewFlagSet("macro", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	params := paramFlags{}
	fs.Var(params, "p", "macro parameter key=value (repeatable)")
	timeout := fs.Duration("timeout", 10*time.Second, "abort the macro after this long")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("%w: macro takes <name> <in> <out>", errUsage)
	}
	name, in, out := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	pal, err := palette.LoadPalette(cfg.Resolve(cfg.Palette))
	if err != nil {
		return err
	}
	doc, err := load(in)
	if err != nil {
		return err
	}
	w, _, err := world.Import(doc, nil)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	res, err := macro.RunNamed(ctx, w, pal, cfg.Resolve(cfg.Macros), name, params)
	if err != nil {
		return err
	}
	for _, line := range res.Logs {
		log.WithField("macro", name).Info(line)
	}
	log.WithFields(logrus.Fields{"macro": name, "cells": len(res.Stroke.Cells), "entities": len(res.Entities)}).Info("Ran macro")
	return save(log, w, out)
}

func newWorld(cfg *config.Config, log logrus.FieldLogger, args []string) error {
	fs := flag.NewFlagSet("new", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	width := fs.Int("w", cfg.World.Width, "width in cells")
	height := fs.Int("h", cfg.World.Height, "height in cells")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: new takes <out>", errUsage)
	}
	w, err := world.New(*width, *height)
	if err != nil {
		return err
	}
	w.SetMetadata(world.Metadata{Friction: cfg.World.Friction, MetersPerUnit: 1, LogicPerUnit: 1})
	return save(log, w, fs.Arg(0))
}

func save(log logrus.FieldLogger, w *world.World, path string) error {
	doc, err := w.Export()
	if err != nil {
		return err
	}
	if err := (levels.FileSink{}).Write(doc, path); err != nil {
		return err
	}
	fields := logrus.Fields{"path": path, "tiles": w.Grid().Len()}
	if info, err := os.Stat(path); err == nil {
		fields["size"] = humanize.Bytes(uint64(info.Size()))
	}
	log.WithFields(fields).Info("Saved world")
	return nil
}
