// Package textdraw renders antialiasing-free text onto paletted
// framebuffers. Fonts are parsed once and faces are cached per size, since
// opentype face construction is expensive relative to drawing.
package textdraw

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontManager parses a TTF once and hands out hinted faces by point size.
// It is safe for concurrent use.
type FontManager struct {
	mu    sync.Mutex
	font  *opentype.Font
	faces map[float64]font.Face
	dpi   float64
}

// NewFontManager returns a manager backed by the bundled Go Regular font.
func NewFontManager() (*FontManager, error) {
	parsed, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing bundled font: %w", err)
	}
	return &FontManager{font: parsed, faces: make(map[float64]font.Face), dpi: 72}, nil
}

// NewFontManagerFromFile returns a manager backed by a TTF on disk.
func NewFontManagerFromFile(path string) (*FontManager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font file: %w", err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}
	return &FontManager{font: parsed, faces: make(map[float64]font.Face), dpi: 72}, nil
}

// Face returns a cached face for the given point size.
func (m *FontManager) Face(size float64) (font.Face, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if face, ok := m.faces[size]; ok {
		return face, nil
	}
	face, err := opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     m.dpi,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %gpt face: %w", size, err)
	}
	m.faces[size] = face
	return face, nil
}

// TextWidth measures the advance of s in pixels at the given size.
func (m *FontManager) TextWidth(size float64, s string) (int, error) {
	face, err := m.Face(size)
	if err != nil {
		return 0, err
	}
	return font.MeasureString(face, s).Ceil(), nil
}

// LineHeight returns the recommended baseline-to-baseline distance in
// pixels for the given size.
func (m *FontManager) LineHeight(size float64) (int, error) {
	face, err := m.Face(size)
	if err != nil {
		return 0, err
	}
	return face.Metrics().Height.Ceil(), nil
}

// Ascent returns the distance from the baseline to the top of the tallest
// glyph, in pixels.
func (m *FontManager) Ascent(size float64) (int, error) {
	face, err := m.Face(size)
	if err != nil {
		return 0, err
	}
	return face.Metrics().Ascent.Ceil(), nil
}
