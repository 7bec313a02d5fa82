package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Display != def.Display || cfg.Color.Mode != def.Color.Mode {
		t.Errorf("missing file produced %+v, want defaults", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[display]
width = 800
height = 480

[color]
mode = "lab"
palette = "idealized"

[[color.calibrate]]
code = 3
rgb = [200, 50, 40]

[keepout]
top = 24
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.Width != 800 || cfg.Display.Height != 480 {
		t.Errorf("display = %+v", cfg.Display)
	}
	if cfg.Color.Mode != "lab" || cfg.Color.Palette != "idealized" {
		t.Errorf("color = %+v", cfg.Color)
	}
	if len(cfg.Color.Calibrate) != 1 || cfg.Color.Calibrate[0].Code != 3 {
		t.Errorf("calibrate = %+v", cfg.Color.Calibrate)
	}
	if cfg.Keepout.Top != 24 || cfg.Keepout.Bottom != 0 {
		t.Errorf("keepout = %+v", cfg.Keepout)
	}
	// Untouched sections keep their defaults.
	if cfg.Layout.MinScore != 0.5 {
		t.Errorf("layout.min_score = %f, want default 0.5", cfg.Layout.MinScore)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, content string
	}{
		{"bad mode", "[color]\nmode = \"psychedelic\"\n"},
		{"bad palette", "[color]\nmode = \"lab\"\npalette = \"cmyk\"\n"},
		{"zero width", "[display]\nwidth = 0\nheight = 480\n"},
		{"unknown key", "[display]\nwidth = 800\nheight = 480\nrotation = 90\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
