package layout

import (
	"image"
	"strings"
	"testing"
	"time"

	"github.com/inkframe/inkframe/internal/framebuffer"
	"github.com/inkframe/inkframe/internal/placement"
	"github.com/inkframe/inkframe/internal/spectra"
	"github.com/inkframe/inkframe/internal/textdraw"
)

func newTestEngine(t *testing.T) (*Engine, *framebuffer.Indexed) {
	t.Helper()
	fonts, err := textdraw.NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	pal := spectra.DefaultPalette()
	fb := framebuffer.NewIndexed(1600, 1200, &pal)
	return NewEngine(placement.NewAnalyzer(), textdraw.NewRenderer(fonts), nil), fb
}

func TestWrapTextRoundTrip(t *testing.T) {
	fonts, err := textdraw.NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}

	texts := []string{
		"The quick brown fox jumps over the lazy dog",
		"one",
		"a b c d e f g h i j k l m n o p",
		"Simplicity is the ultimate sophistication",
	}
	for _, text := range texts {
		for _, width := range []int{80, 200, 500} {
			lines, err := WrapText(fonts, text, 24, width)
			if err != nil {
				t.Fatalf("WrapText(%q, %d): %v", text, width, err)
			}
			joined := strings.Join(lines, " ")
			if joined != text {
				t.Errorf("wrap at %d lost words: %q -> %q", width, text, joined)
			}
			for _, line := range lines {
				w, err := fonts.TextWidth(24, line)
				if err != nil {
					t.Fatalf("TextWidth: %v", err)
				}
				// Single oversized words are allowed through.
				if w > width && strings.Contains(line, " ") {
					t.Errorf("line %q measures %d, over width %d", line, w, width)
				}
			}
		}
	}
}

func TestWrapForLineCount(t *testing.T) {
	fonts, err := textdraw.NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}

	text := "Every great developer you know got there by solving problems"
	for _, count := range []int{1, 2, 3} {
		lines, ok, err := wrapForLineCount(fonts, text, 24, count, 2, 2000)
		if err != nil {
			t.Fatalf("wrapForLineCount(%d): %v", count, err)
		}
		if !ok {
			t.Fatalf("wrapForLineCount(%d) found no wrap", count)
		}
		if len(lines) != count {
			t.Errorf("requested %d lines, got %d: %v", count, len(lines), lines)
		}
		if got := strings.Join(lines, " "); got != text {
			t.Errorf("wrap lost words: %q", got)
		}
		for i, line := range lines[:len(lines)-1] {
			if len(strings.Fields(line)) < 2 {
				t.Errorf("line %d %q has fewer than 2 words", i, line)
			}
		}
	}
}

func TestPlaceElementsPriorityOrder(t *testing.T) {
	e, fb := newTestEngine(t)

	quote := NewQuoteElement("Stay hungry stay foolish and keep building things", "Jobs")
	td := NewTimeDateElement(time.Date(2026, 8, 30, 9, 41, 0, 0, time.UTC))
	weather := NewWeatherElement(21, "Partly cloudy")

	// Deliberately out of order; the engine sorts by priority.
	placements, err := e.PlaceElements(fb, []Element{quote, weather, td})
	if err != nil {
		t.Fatalf("PlaceElements: %v", err)
	}
	if len(placements) != 3 {
		t.Fatalf("got %d placements, want 3", len(placements))
	}
	if len(e.Zones()) != 3 {
		t.Errorf("got %d exclusion zones, want 3", len(e.Zones()))
	}
}

func TestPlaceElementsNoOverlap(t *testing.T) {
	e, fb := newTestEngine(t)

	a := NewWeatherElement(18, "Rain")
	b := NewWeatherElement(25, "Sun")
	b.TextColor = spectra.CodeRed

	placements, err := e.PlaceElements(fb, []Element{a, b})
	if err != nil {
		t.Fatalf("PlaceElements: %v", err)
	}
	if placements[0].Bounds().Overlaps(placements[1].Bounds()) {
		t.Errorf("placed elements overlap: %v and %v",
			placements[0].Bounds(), placements[1].Bounds())
	}
}

func TestPlaceElementRespectsExclusionZones(t *testing.T) {
	e, fb := newTestEngine(t)

	// Reserve the entire upper half of the display.
	e.AddExclusionZone(ExclusionZone{Rect: image.Rect(0, 0, 1600, 600)})

	p, err := e.PlaceElement(fb, NewWeatherElement(21, "Clear"))
	if err != nil {
		t.Fatalf("PlaceElement: %v", err)
	}
	if p.Bounds().Min.Y < 600 {
		t.Errorf("element placed at %v inside reserved upper half", p.Bounds())
	}
}

func TestPlaceElementGuaranteedAtMinScale(t *testing.T) {
	e, fb := newTestEngine(t)

	// Reserve everything; placement must still succeed via the fallback.
	e.AddExclusionZone(ExclusionZone{Rect: fb.Bounds()})

	p, err := e.PlaceElement(fb, NewWeatherElement(21, "Fog"))
	if err != nil {
		t.Fatalf("PlaceElement: %v", err)
	}
	if p.Scale != MinScale {
		t.Errorf("fallback scale = %f, want %f", p.Scale, MinScale)
	}
}

func TestQuotePlacementWrapsAndRenders(t *testing.T) {
	e, fb := newTestEngine(t)

	q := NewQuoteElement(
		"The best way to predict the future is to invent it yourself every single day",
		"Alan Kay")
	p, err := e.PlaceElement(fb, q)
	if err != nil {
		t.Fatalf("PlaceElement: %v", err)
	}
	if len(p.Lines) == 0 {
		t.Fatal("no wrap chosen for quote")
	}
	if len(p.Lines) > q.MaxLineCount {
		t.Errorf("wrap produced %d lines, max %d", len(p.Lines), q.MaxLineCount)
	}
	if got := strings.Join(p.Lines, " "); got != q.Text {
		t.Errorf("chosen wrap lost words: %q", got)
	}

	c := &Canvas{Dst: fb, Palette: fb.Palette(), Text: e.text}
	if err := q.Render(c, p.Bounds().Min.X, p.Bounds().Min.Y); err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Rendering must have inked something non-white.
	inked := false
	for y := p.Bounds().Min.Y; y < p.Bounds().Max.Y && !inked; y++ {
		for x := p.Bounds().Min.X; x < p.Bounds().Max.X; x++ {
			if fb.CodeAt(x, y) != spectra.CodeWhite {
				inked = true
				break
			}
		}
	}
	if !inked {
		t.Error("quote render left the framebuffer blank")
	}
}

func TestSetCornersLimitsCandidates(t *testing.T) {
	fonts, err := textdraw.NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	pal := spectra.DefaultPalette()

	// Checkerboard noise everywhere except clean white corner patches, so
	// corner candidates outscore the centre and edge ones.
	newBoard := func() *framebuffer.Indexed {
		fb := framebuffer.NewIndexed(1600, 1200, &pal)
		inCorner := func(x, y int) bool {
			return (x < 500 || x >= 1100) && (y < 300 || y >= 900)
		}
		for y := 0; y < 1200; y++ {
			for x := 0; x < 1600; x++ {
				if !inCorner(x, y) && (x+y)%2 == 0 {
					fb.SetCode(x, y, spectra.CodeBlack)
				}
			}
		}
		return fb
	}
	inCornerPatch := func(p Placement) bool {
		cx, cy := p.Region.X, p.Region.Y
		return (cx < 500 || cx >= 1100) && (cy < 300 || cy >= 900)
	}

	withCorners := NewEngine(placement.NewAnalyzer(), textdraw.NewRenderer(fonts), nil)
	p, err := withCorners.PlaceElement(newBoard(), NewWeatherElement(21, "Clear"))
	if err != nil {
		t.Fatalf("PlaceElement with corners: %v", err)
	}
	if !inCornerPatch(p) {
		t.Fatalf("corner candidates enabled but element placed at (%d,%d)", p.Region.X, p.Region.Y)
	}

	noCorners := NewEngine(placement.NewAnalyzer(), textdraw.NewRenderer(fonts), nil)
	noCorners.SetCorners(false)
	p, err = noCorners.PlaceElement(newBoard(), NewWeatherElement(21, "Clear"))
	if err != nil {
		t.Fatalf("PlaceElement without corners: %v", err)
	}
	if inCornerPatch(p) {
		t.Errorf("corner candidates disabled but element placed at (%d,%d)", p.Region.X, p.Region.Y)
	}
}

func TestFindBestWrappedPosition(t *testing.T) {
	fonts, err := textdraw.NewFontManager()
	if err != nil {
		t.Fatalf("NewFontManager: %v", err)
	}
	pal := spectra.DefaultPalette()
	// A uniform board scores every candidate identically, so the wrap
	// search resolves purely by its tie-break rules.
	fb := framebuffer.NewIndexed(600, 400, &pal)
	e := NewEngine(placement.NewAnalyzer(), textdraw.NewRenderer(fonts), nil)

	const (
		text     = "The best way to predict the future is to invent it"
		size     = 40.0
		maxLines = 4
		minWords = 2
	)
	lines, region, err := e.FindBestWrappedPosition(fb, text, size, maxLines, minWords,
		spectra.CodeBlack, spectra.CodeWhite)
	if err != nil {
		t.Fatalf("FindBestWrappedPosition: %v", err)
	}
	if got := strings.Join(lines, " "); got != text {
		t.Errorf("chosen wrap lost words: %q", got)
	}
	for i, line := range lines[:len(lines)-1] {
		if len(strings.Fields(line)) < minWords {
			t.Errorf("line %d %q has fewer than %d words", i, line, minWords)
		}
	}
	if region.Width <= 0 || region.Height <= 0 {
		t.Errorf("degenerate region %dx%d", region.Width, region.Height)
	}

	// Identical scores must resolve to the lowest qualifying line count.
	maxWidth := fb.Bounds().Dx() - 2*e.margin
	for count := 1; count <= maxLines; count++ {
		want, ok, err := wrapForLineCount(fonts, text, size, count, minWords, maxWidth)
		if err != nil {
			t.Fatalf("wrapForLineCount(%d): %v", count, err)
		}
		if !ok {
			continue
		}
		if len(lines) != count {
			t.Errorf("tie resolved to %d lines, want first qualifying count %d", len(lines), count)
		}
		if strings.Join(lines, "\n") != strings.Join(want, "\n") {
			t.Errorf("chosen wrap %v, want %v", lines, want)
		}
		break
	}

	if _, _, err := e.FindBestWrappedPosition(fb, text, 400, 1, minWords,
		spectra.CodeBlack, spectra.CodeWhite); err == nil {
		t.Error("expected error when no wrap fits the display")
	}
}

func TestExclusionZonePadding(t *testing.T) {
	z := ExclusionZone{Rect: image.Rect(100, 100, 200, 200), Padding: 20}

	if !z.Overlaps(image.Rect(210, 100, 250, 150)) {
		t.Error("rect inside padding not flagged as overlap")
	}
	if z.Overlaps(image.Rect(225, 100, 250, 150)) {
		t.Error("rect beyond padding flagged as overlap")
	}
}

func TestEngineReset(t *testing.T) {
	e, _ := newTestEngine(t)
	e.AddExclusionZone(ExclusionZone{Rect: image.Rect(0, 0, 10, 10)})
	e.Reset()
	if len(e.Zones()) != 0 {
		t.Errorf("Reset left %d zones", len(e.Zones()))
	}
}
