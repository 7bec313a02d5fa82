package layout

import (
	"github.com/inkframe/inkframe/internal/spectra"
	"github.com/inkframe/inkframe/internal/textdraw"
)

// TextBlock is implemented by elements whose text reflows during
// placement. The engine searches wrap configurations for these instead of
// treating their dimensions as fixed.
type TextBlock interface {
	Element
	// BlockText is the unwrapped text to place.
	BlockText() string
	// MaxLines caps the wrap search.
	MaxLines() int
	// MinWordsPerLine rejects wrap configurations that orphan single
	// words.
	MinWordsPerLine() int
	// SetLines stores the wrap the engine chose, for Render.
	SetLines(lines []string)
}

// QuoteElement shows a wrapped quotation with an attribution line below
// it. The attribution renders smaller and right-aligned; the combined
// block places as one unit.
type QuoteElement struct {
	Text   string
	Author string

	TextColor    uint8
	OutlineColor uint8

	// MaxLineCount and MinWords bound the wrap search.
	MaxLineCount int
	MinWords     int

	scale float64
	lines []string
}

// NewQuoteElement returns a quote element drawn in black with a white
// outline, wrapping to at most four lines.
func NewQuoteElement(text, author string) *QuoteElement {
	return &QuoteElement{
		Text:         textdraw.Sanitize(text),
		Author:       textdraw.Sanitize(author),
		TextColor:    spectra.CodeBlack,
		OutlineColor: spectra.CodeWhite,
		MaxLineCount: 4,
		MinWords:     2,
		scale:        1,
	}
}

func (e *QuoteElement) Name() string     { return "quote" }
func (e *QuoteElement) Priority() int    { return PriorityQuote }
func (e *QuoteElement) Scale() float64   { return e.scale }
func (e *QuoteElement) SetScale(f float64) { e.scale = f }

func (e *QuoteElement) Colors() (uint8, uint8) { return e.TextColor, e.OutlineColor }

func (e *QuoteElement) BlockText() string    { return e.Text }
func (e *QuoteElement) MaxLines() int        { return e.MaxLineCount }
func (e *QuoteElement) MinWordsPerLine() int { return e.MinWords }

// SetLines records the wrap configuration the placement search settled on.
func (e *QuoteElement) SetLines(lines []string) { e.lines = lines }

// Lines returns the chosen wrap, or the whole text as one line before
// placement.
func (e *QuoteElement) Lines() []string {
	if len(e.lines) == 0 {
		return []string{e.Text}
	}
	return e.lines
}

func (e *QuoteElement) quoteSize() float64  { return 40 * e.scale }
func (e *QuoteElement) authorSize() float64 { return 26 * e.scale }

func (e *QuoteElement) authorText() string {
	if e.Author == "" {
		return ""
	}
	return "— " + e.Author
}

// Size measures the current wrap plus the attribution line.
func (e *QuoteElement) Size(text *textdraw.Renderer) (int, int, error) {
	w, h, err := text.MeasureBlock(e.Lines(), e.quoteSize())
	if err != nil {
		return 0, 0, err
	}
	if author := e.authorText(); author != "" {
		aw, ah, err := text.MeasureBlock([]string{author}, e.authorSize())
		if err != nil {
			return 0, 0, err
		}
		if aw > w {
			w = aw
		}
		h += ah
	}
	return w, h, nil
}

func (e *QuoteElement) Render(c *Canvas, x, y int) error {
	w, _, err := e.Size(c.Text)
	if err != nil {
		return err
	}

	ascent, err := c.Text.Fonts().Ascent(e.quoteSize())
	if err != nil {
		return err
	}
	style := textdraw.Style{
		Size:    e.quoteSize(),
		Fill:    c.Ink(e.TextColor),
		Outline: c.Ink(e.OutlineColor),
		Align:   textdraw.AlignLeft,
	}
	if _, err := c.Text.DrawLines(c.Dst, e.Lines(), x, y+ascent, style); err != nil {
		return err
	}

	author := e.authorText()
	if author == "" {
		return nil
	}

	lineHeight, err := c.Text.Fonts().LineHeight(e.quoteSize())
	if err != nil {
		return err
	}
	authorAscent, err := c.Text.Fonts().Ascent(e.authorSize())
	if err != nil {
		return err
	}
	style.Size = e.authorSize()
	style.Align = textdraw.AlignRight
	authorY := y + len(e.Lines())*lineHeight + authorAscent
	_, err = c.Text.DrawString(c.Dst, author, x+w, authorY, style)
	return err
}
