package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/milk9111/worldbuilder/config"
	"github.com/milk9111/worldbuilder/levels"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	log, _ := test.NewNullLogger()
	var out bytes.Buffer
	err := run(context.Background(), config.Default(), log, &out, args)
	return out.String(), err
}

func TestNewMacroStatsConvert(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	walled := filepath.Join(dir, "walled.json")
	packed := filepath.Join(dir, "walled.json.zst")

	if _, err := runCmd(t, "new", "-w", "5", "-h", "4", empty); err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := runCmd(t, "macro", "-p", "artifact=stone", "border", empty, walled); err != nil {
		t.Fatalf("macro: %v", err)
	}
	out, err := runCmd(t, "stats", walled)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "tiles     14") || !strings.Contains(out, "catalog   1") {
		t.Fatalf("unexpected stats:\n%s", out)
	}

	if _, err := runCmd(t, "convert", walled, packed); err != nil {
		t.Fatalf("convert: %v", err)
	}
	cfg, err := levels.FileSource{}.Read(packed)
	if err != nil {
		t.Fatalf("read converted: %v", err)
	}
	if cfg.Width != 5 || len(cfg.Artifacts) != 1 || cfg.Artifacts[0].Model != "tiles/stone.png" {
		t.Fatalf("unexpected converted document %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	out, err := runCmd(t, "validate", "sample:courtyard")
	if err != nil || !strings.HasPrefix(out, "ok") {
		t.Fatalf("validate sample: %v\n%s", err, out)
	}
	out, err = runCmd(t, "validate", filepath.Join(t.TempDir(), "missing.json"))
	if err == nil || !strings.HasPrefix(out, "FAIL") {
		t.Fatalf("expected failure, got %v\n%s", err, out)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := [][]string{
		nil,
		{"bogus"},
		{"stats"},
		{"convert", "a.json"},
		{"new"},
		{"macro", "border", "a.json"},
		{"macro", "-p", "novalue", "border", "a.json", "b.json"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			if _, err := runCmd(t, args...); !errors.Is(err, errUsage) {
				t.Fatalf("expected usage error, got %v", err)
			}
		})
	}
}

func TestParamFlags(t *testing.T) {
	p := paramFlags{}
	for _, v := range []string{"n=3", "ratio=0.25", "on=true", "name=grass"} {
		if err := p.Set(v); err != nil {
			t.Fatal(err)
		}
	}
	if p["n"] != int64(3) || p["ratio"] != 0.25 || p["on"] != true || p["name"] != "grass" {
		t.Fatalf("unexpected params %#v", p)
	}
}

func TestSamples(t *testing.T) {
	out, err := runCmd(t, "samples")
	if err != nil || !strings.Contains(out, "courtyard") {
		t.Fatalf("samples: %v\n%s", err, out)
	}
}
