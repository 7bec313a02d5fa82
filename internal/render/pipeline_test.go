package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/inkframe/inkframe/internal/config"
	"github.com/inkframe/inkframe/internal/layout"
	"github.com/inkframe/inkframe/internal/spectra"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Display.Width = 320
	cfg.Display.Height = 240
	return cfg
}

func writeTestPNG(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "src.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return path
}

func TestQuantizeFitsPanelDimensions(t *testing.T) {
	p, err := NewPipeline(testConfig(), nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	// A source of a different aspect ratio still fills the panel exactly.
	src := image.NewRGBA(image.Rect(0, 0, 1000, 400))
	fb := p.Quantize(src)
	if got := fb.Bounds(); got.Dx() != 320 || got.Dy() != 240 {
		t.Errorf("framebuffer bounds = %v, want 320x240", got)
	}
}

func TestComposeWhiteImageMapsToWhite(t *testing.T) {
	cfg := testConfig()
	cfg.Color.Mode = "lab"
	p, err := NewPipeline(cfg, nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	path := writeTestPNG(t, 320, 240, color.White)
	fb, err := p.Compose(path, nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if got := fb.CodeAt(160, 120); got != spectra.CodeWhite {
		t.Errorf("centre code = %d, want white (%d)", got, spectra.CodeWhite)
	}
}

func TestComposeWithElements(t *testing.T) {
	cfg := testConfig()
	cfg.Display.Width = 800
	cfg.Display.Height = 600
	p, err := NewPipeline(cfg, nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	path := writeTestPNG(t, 800, 600, color.White)
	elements := []layout.Element{
		layout.NewTimeDateElement(time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)),
	}
	fb, err := p.Compose(path, elements)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	inked := 0
	for y := 0; y < 600; y++ {
		for x := 0; x < 800; x++ {
			if fb.CodeAt(x, y) == spectra.CodeBlack {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Error("composed frame has no black text pixels")
	}
}

func TestSavePNGRoundTrip(t *testing.T) {
	cfg := testConfig()
	p, err := NewPipeline(cfg, nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	fb := p.Quantize(image.NewRGBA(image.Rect(0, 0, 320, 240)))

	out := filepath.Join(t.TempDir(), "out.png")
	if err := SavePNG(out, fb); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("opening saved PNG: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding saved PNG: %v", err)
	}
	if got := decoded.Bounds(); got.Dx() != 320 || got.Dy() != 240 {
		t.Errorf("saved PNG bounds = %v, want 320x240", got)
	}
}

func TestWritePreviewEmitsAnsi(t *testing.T) {
	p, err := NewPipeline(testConfig(), nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	fb := p.Quantize(image.NewRGBA(image.Rect(0, 0, 320, 240)))

	var sb strings.Builder
	if err := writePreviewSized(&sb, fb, 40); err != nil {
		t.Fatalf("writePreviewSized: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, ansiBgPrefix) {
		t.Error("preview contains no background colour escapes")
	}
	if !strings.Contains(out, "▀") {
		t.Error("preview contains no half-block glyphs")
	}
	if lines := strings.Count(out, "\n"); lines == 0 || lines > 120 {
		t.Errorf("preview has %d lines", lines)
	}
}

func TestInkPreviewNamesInk(t *testing.T) {
	pal := spectra.DefaultPalette()
	s := InkPreview(&pal, spectra.CodeRed, "red")
	if !strings.Contains(s, "red") || !strings.Contains(s, "#be3c37") {
		t.Errorf("InkPreview = %q", s)
	}
}
