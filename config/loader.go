package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration at path on top of Default and validates
// the result. Relative paths in the file resolve against its directory when
// base_dir is unset.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r over the defaults and validates it. An
// empty document yields the defaults.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns a joined error listing every problem in cfg.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.World.Width < 1 {
		errs = append(errs, fmt.Errorf("world.width %d must be at least 1", cfg.World.Width))
	}
	if cfg.World.Height < 1 {
		errs = append(errs, fmt.Errorf("world.height %d must be at least 1", cfg.World.Height))
	}
	if cfg.Brush.MaxSize < 1 || cfg.Brush.MaxSize%2 == 0 {
		errs = append(errs, fmt.Errorf("brush.max_size %d must be odd and at least 1", cfg.Brush.MaxSize))
	}
	if cfg.UndoDepth < 0 {
		errs = append(errs, fmt.Errorf("undo_depth %d must not be negative", cfg.UndoDepth))
	}
	if cfg.PreviewCacheMB < 0 {
		errs = append(errs, fmt.Errorf("preview_cache_mb %d must not be negative", cfg.PreviewCacheMB))
	}
	if cfg.Log.Level != "" {
		if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level %q is invalid", cfg.Log.Level))
		}
	}

	seen := make(map[string]int, len(cfg.Layers))
	for i, l := range cfg.Layers {
		prefix := fmt.Sprintf("layers[%d]", i)
		if l.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
			continue
		}
		if prev, ok := seen[l.Name]; ok {
			errs = append(errs, fmt.Errorf("%s.name %q is a duplicate of layers[%d]", prefix, l.Name, prev))
		}
		seen[l.Name] = i
	}

	return errors.Join(errs...)
}

// Resolve joins a relative path onto BaseDir. Absolute and empty paths are
// returned unchanged.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
