package config

// Config is the editor configuration file.
type Config struct {
	// BaseDir resolves relative palette, model and macro paths.
	BaseDir string `yaml:"base_dir"`
	// Palette is a palette YAML file. Empty selects the embedded default.
	Palette string `yaml:"palette"`
	// Macros is a directory of .tengo brush macros. Empty selects the embedded set.
	Macros string `yaml:"macros"`

	Layers         []Layer `yaml:"layers"`
	World          World   `yaml:"world"`
	Brush          Brush   `yaml:"brush"`
	UndoDepth      int     `yaml:"undo_depth"`
	PreviewCacheMB int     `yaml:"preview_cache_mb"`
	Log            Log     `yaml:"log"`
}

// Layer names a depth plane the cursor can jump to.
type Layer struct {
	Name  string  `yaml:"name"`
	Depth float64 `yaml:"depth"`
}

// World holds the dimensions used for new worlds.
type World struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Friction float64 `yaml:"friction"`
}

type Brush struct {
	MaxSize int `yaml:"max_size"`
}

// Log configures the logrus logger and optional rotating file output.
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Layers: []Layer{
			{Name: "ground", Depth: 0},
			{Name: "objects", Depth: 1},
			{Name: "overhead", Depth: 2},
		},
		World:          World{Width: 40, Height: 30, Friction: 0.5},
		Brush:          Brush{MaxSize: 9},
		UndoDepth:      100,
		PreviewCacheMB: 64,
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// LayerDepth returns the depth of the named layer.
func (c *Config) LayerDepth(name string) (float64, bool) {
	for _, l := range c.Layers {
		if l.Name == name {
			return l.Depth, true
		}
	}
	return 0, false
}
