package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/inkframe/inkframe/internal/framebuffer"
	"github.com/inkframe/inkframe/internal/spectra"
)

// ANSI escape codes for truecolor terminal output.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"
)

// SupportsPreview reports whether stdout is a terminal that can show the
// ANSI preview.
func SupportsPreview() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// WritePreview renders the framebuffer to w as ANSI half-block art,
// downsampled to fit the terminal width. Each output character carries two
// vertically stacked pixels via the upper half block glyph.
func WritePreview(w io.Writer, fb *framebuffer.Indexed) error {
	cols := 80
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 {
			cols = tw
		}
	}
	return writePreviewSized(w, fb, cols)
}

func writePreviewSized(w io.Writer, fb *framebuffer.Indexed, cols int) error {
	bounds := fb.Bounds()
	if cols > bounds.Dx() {
		cols = bounds.Dx()
	}
	if cols < 1 {
		cols = 1
	}

	// One terminal cell is roughly half as wide as it is tall; one glyph
	// holds two pixel rows, so the sample step is square.
	step := bounds.Dx() / cols
	if step < 1 {
		step = 1
	}
	rows := bounds.Dy() / (2 * step)

	pal := fb.Palette()
	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := bounds.Min.X + col*step
			yTop := bounds.Min.Y + row*2*step
			yBot := yTop + step

			tr, tg, tb := pal.RGB(fb.CodeAt(x, yTop))
			br, bg, bb := pal.RGB(fb.CodeAt(x, yBot))
			fmt.Fprintf(&b, "%s%d;%d;%d%s%s%d;%d;%d%s▀",
				ansiFgPrefix, tr, tg, tb, ansiSuffix,
				ansiBgPrefix, br, bg, bb, ansiSuffix)
		}
		b.WriteString(ansiReset)
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
		b.Reset()
	}
	return nil
}

// InkPreview returns an ANSI-coloured swatch line for one ink: a solid
// block followed by its name and calibrated value.
func InkPreview(pal *spectra.Palette, code uint8, name string) string {
	r, g, b := pal.RGB(code)
	block := fmt.Sprintf("%s%d;%d;%d%s%s%s",
		ansiBgPrefix, r, g, b, ansiSuffix, strings.Repeat(" ", 8), ansiReset)
	return fmt.Sprintf("%s  %-8s #%02x%02x%02x (code %d)", block, name, r, g, b, code)
}
