package palette

import (
	"embed"
	"os"
	"path/filepath"
	"time"
)

// DefaultName is the embedded palette used when none is configured.
const DefaultName = "default.yaml"

//go:embed *.yaml
var PaletteFS embed.FS

// Load reads name from disk when it exists there, falling back to the
// embedded copy of the same base name.
func Load(name string) ([]byte, error) {
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return PaletteFS.ReadFile(filepath.ToSlash(filepath.Base(name)))
}

// ModTime reports the disk modification time of name.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(name)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
