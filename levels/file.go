package levels

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// ErrUnknownFormat is returned for destinations whose extension is neither
// .json nor .zst.
var ErrUnknownFormat = errors.New("levels: unknown document format")

// Sink persists a configuration to an opaque destination.
type Sink interface {
	Write(cfg *Configuration, dest string) error
}

// Source reads a configuration back from a destination written by a Sink.
type Source interface {
	Read(src string) (*Configuration, error)
}

// PersistError describes a failed read or write.
type PersistError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("levels: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Format is the on-disk encoding of a document.
type Format int

const (
	FormatJSON Format = iota
	FormatZstd
)

// FormatFor picks the encoding from the file name. "world.json.zst" and
// "world.zst" are compressed, "world.json" is plain.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".zst":
		return FormatZstd, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Encode writes cfg as indented JSON, matching the editor's save format.
func Encode(w io.Writer, cfg *Configuration) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cfg)
}

// Decode validates raw JSON against the world schema before unmarshalling.
func Decode(r io.Reader) (*Configuration, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := Validate(data); err != nil {
		return nil, err
	}
	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	return &cfg, nil
}

// FileSink writes documents to the local file system.
type FileSink struct{}

func (FileSink) Write(cfg *Configuration, dest string) error {
	if cfg == nil {
		return &PersistError{Op: "write", Path: dest, Err: errors.New("nil configuration")}
	}
	format, err := FormatFor(dest)
	if err != nil {
		return &PersistError{Op: "write", Path: dest, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return &PersistError{Op: "write", Path: dest, Err: err}
	}

	// Encode into memory first so a failed encode never truncates an existing file.
	var buf bytes.Buffer
	if err := Encode(&buf, cfg); err != nil {
		return &PersistError{Op: "encode", Path: dest, Err: err}
	}

	tmp := dest + ".tmp"
	if err := writeFile(tmp, buf.Bytes(), format); err != nil {
		_ = os.Remove(tmp)
		return &PersistError{Op: "write", Path: dest, Err: err}
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return &PersistError{Op: "rename", Path: dest, Err: err}
	}
	return nil
}

func writeFile(path string, data []byte, format Format) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if format == FormatJSON {
		if _, err := f.Write(data); err != nil {
			return err
		}
		return f.Sync()
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)
	if _, err := bw.Write(data); err != nil {
		_ = enc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Sync()
}

// FileSource reads documents written by FileSink.
type FileSource struct{}

func (FileSource) Read(src string) (*Configuration, error) {
	format, err := FormatFor(src)
	if err != nil {
		return nil, &PersistError{Op: "read", Path: src, Err: err}
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, &PersistError{Op: "read", Path: src, Err: err}
	}
	defer f.Close()

	var r io.Reader = bufio.NewReaderSize(f, 256*1024)
	if format == FormatZstd {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, &PersistError{Op: "read", Path: src, Err: err}
		}
		defer dec.Close()
		r = dec
	}

	cfg, err := Decode(r)
	if err != nil {
		return nil, &PersistError{Op: "decode", Path: src, Err: err}
	}
	return cfg, nil
}
