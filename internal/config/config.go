// Package config loads frame configuration from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full frame configuration.
type Config struct {
	Display Display `toml:"display"`
	Color   Color   `toml:"color"`
	Weights Weights `toml:"weights"`
	Keepout Keepout `toml:"keepout"`
	Layout  Layout  `toml:"layout"`
	Text    Text    `toml:"text"`
}

// Display describes the target panel.
type Display struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// Color selects the mapping mode and palette calibration.
type Color struct {
	// Mode is one of nearest-rgb, lab, dither.
	Mode string `toml:"mode"`
	// Palette is default or idealized.
	Palette string `toml:"palette"`
	// Calibrate overrides individual ink colours with measured values.
	Calibrate []Calibration `toml:"calibrate"`
}

// Calibration replaces one ink's reference colour.
type Calibration struct {
	Code uint8    `toml:"code"`
	RGB  [3]uint8 `toml:"rgb"`
}

// Weights balances the placement scoring metrics.
type Weights struct {
	Contrast      float64 `toml:"contrast"`
	Uniformity    float64 `toml:"uniformity"`
	EdgeAvoidance float64 `toml:"edge_avoidance"`
}

// Keepout sets the edge margins text never enters.
type Keepout struct {
	Top    int `toml:"top"`
	Bottom int `toml:"bottom"`
	Left   int `toml:"left"`
	Right  int `toml:"right"`
}

// Layout tunes element placement.
type Layout struct {
	MinScore    float64 `toml:"min_score"`
	Margin      int     `toml:"margin"`
	ZonePadding int     `toml:"zone_padding"`
	Corners     bool    `toml:"corners"`
}

// Text configures fonts and quote wrapping.
type Text struct {
	// Font is a path to a TTF file; empty uses the bundled font.
	Font          string `toml:"font"`
	QuoteMaxLines int    `toml:"quote_max_lines"`
	QuoteMinWords int    `toml:"quote_min_words"`
}

// Default returns the configuration used when no file is present: a
// 1600x1200 panel, dithered mapping, and the standard scoring weights.
func Default() Config {
	return Config{
		Display: Display{Width: 1600, Height: 1200},
		Color:   Color{Mode: "dither", Palette: "default"},
		Weights: Weights{Contrast: 0.5, Uniformity: 0.3, EdgeAvoidance: 0.2},
		Layout:  Layout{MinScore: 0.5, Margin: 40, ZonePadding: 20, Corners: true},
		Text:    Text{QuoteMaxLines: 4, QuoteMinWords: 2},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, "inkframe", "config.toml"), nil
}

// Load reads a TOML config file, filling unset fields from Default. A
// missing file is not an error; the defaults come back as-is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("unknown config keys in %s: %v", path, undecoded)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display dimensions must be positive, got %dx%d",
			c.Display.Width, c.Display.Height)
	}
	switch c.Color.Mode {
	case "nearest-rgb", "lab", "dither":
	default:
		return fmt.Errorf("unknown color mode %q", c.Color.Mode)
	}
	switch c.Color.Palette {
	case "default", "idealized":
	default:
		return fmt.Errorf("unknown palette %q", c.Color.Palette)
	}
	return nil
}
