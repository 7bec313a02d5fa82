package layout

import (
	"fmt"
	"image/color"
	"image/draw"
	"time"

	"github.com/inkframe/inkframe/internal/spectra"
	"github.com/inkframe/inkframe/internal/textdraw"
)

// Placement priorities. Higher priority elements choose their position
// first; the densest, hardest-to-reflow elements go before the ones that
// can rewrap themselves around whatever space is left.
const (
	PriorityTimeDate = 100
	PriorityWeather  = 75
	PriorityQuote    = 50
)

// MinScale is the smallest factor the engine may shrink an element to.
const MinScale = 0.5

// scaleStep is the discrete shrink increment between retries.
const scaleStep = 0.1

// ByPriority returns the elements sorted by descending priority without
// mutating the input. The sort is stable so equal priorities keep caller
// order.
func ByPriority(elements []Element) []Element {
	ordered := make([]Element, len(elements))
	copy(ordered, elements)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].Priority() > ordered[j-1].Priority(); j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	return ordered
}

// Canvas bundles what an element needs to paint itself.
type Canvas struct {
	Dst     draw.Image
	Palette *spectra.Palette
	Text    *textdraw.Renderer
}

// Ink returns the calibrated colour for a palette code.
func (c *Canvas) Ink(code uint8) color.Color {
	return c.Palette.RGBA(code)
}

// Element is one placeable piece of screen content. Implementations are
// single-use within a layout pass: the engine mutates their scale while
// searching.
type Element interface {
	// Name identifies the element in logs.
	Name() string
	// Priority orders placement; higher places first.
	Priority() int
	// Scale returns the current size factor.
	Scale() float64
	// SetScale adjusts the size factor; the engine only passes values in
	// [MinScale, 1].
	SetScale(factor float64)
	// Size returns the bounding box dimensions at the current scale.
	Size(text *textdraw.Renderer) (w, h int, err error)
	// Colors returns the palette codes the element will be scored and
	// painted with, fill then outline.
	Colors() (text, outline uint8)
	// Render paints the element with its bounding box at (x, y).
	Render(c *Canvas, x, y int) error
}

// TimeDateElement shows the time above the date, centre-aligned within its
// bounding box.
type TimeDateElement struct {
	Now time.Time
	// TextColor and OutlineColor are palette codes.
	TextColor    uint8
	OutlineColor uint8

	scale float64
}

// NewTimeDateElement returns a time/date element drawn in black with a
// white outline.
func NewTimeDateElement(now time.Time) *TimeDateElement {
	return &TimeDateElement{
		Now:          now,
		TextColor:    spectra.CodeBlack,
		OutlineColor: spectra.CodeWhite,
		scale:        1,
	}
}

func (e *TimeDateElement) Name() string     { return "timedate" }
func (e *TimeDateElement) Priority() int    { return PriorityTimeDate }
func (e *TimeDateElement) Scale() float64   { return e.scale }
func (e *TimeDateElement) SetScale(f float64) { e.scale = f }

func (e *TimeDateElement) Colors() (uint8, uint8) { return e.TextColor, e.OutlineColor }

func (e *TimeDateElement) timeSize() float64 { return 96 * e.scale }
func (e *TimeDateElement) dateSize() float64 { return 44 * e.scale }

func (e *TimeDateElement) timeText() string { return e.Now.Format("15:04") }
func (e *TimeDateElement) dateText() string { return e.Now.Format("Monday, January 2") }

func (e *TimeDateElement) Size(text *textdraw.Renderer) (int, int, error) {
	tw, th, err := text.MeasureBlock([]string{e.timeText()}, e.timeSize())
	if err != nil {
		return 0, 0, err
	}
	dw, dh, err := text.MeasureBlock([]string{e.dateText()}, e.dateSize())
	if err != nil {
		return 0, 0, err
	}
	w := tw
	if dw > w {
		w = dw
	}
	return w, th + dh, nil
}

func (e *TimeDateElement) Render(c *Canvas, x, y int) error {
	w, _, err := e.Size(c.Text)
	if err != nil {
		return err
	}
	centre := x + w/2

	timeAscent, err := c.Text.Fonts().Ascent(e.timeSize())
	if err != nil {
		return err
	}
	timeHeight, err := c.Text.Fonts().LineHeight(e.timeSize())
	if err != nil {
		return err
	}
	dateAscent, err := c.Text.Fonts().Ascent(e.dateSize())
	if err != nil {
		return err
	}

	style := textdraw.Style{
		Size:    e.timeSize(),
		Fill:    c.Ink(e.TextColor),
		Outline: c.Ink(e.OutlineColor),
		Align:   textdraw.AlignCenter,
	}
	if _, err := c.Text.DrawString(c.Dst, e.timeText(), centre, y+timeAscent, style); err != nil {
		return err
	}

	style.Size = e.dateSize()
	if _, err := c.Text.DrawString(c.Dst, e.dateText(), centre, y+timeHeight+dateAscent, style); err != nil {
		return err
	}
	return nil
}

// WeatherElement shows a temperature and a short condition on one line.
type WeatherElement struct {
	TemperatureC float64
	Condition    string
	TextColor    uint8
	OutlineColor uint8

	scale float64
}

// NewWeatherElement returns a weather element drawn in black with a white
// outline.
func NewWeatherElement(tempC float64, condition string) *WeatherElement {
	return &WeatherElement{
		TemperatureC: tempC,
		Condition:    condition,
		TextColor:    spectra.CodeBlack,
		OutlineColor: spectra.CodeWhite,
		scale:        1,
	}
}

func (e *WeatherElement) Name() string     { return "weather" }
func (e *WeatherElement) Priority() int    { return PriorityWeather }
func (e *WeatherElement) Scale() float64   { return e.scale }
func (e *WeatherElement) SetScale(f float64) { e.scale = f }

func (e *WeatherElement) Colors() (uint8, uint8) { return e.TextColor, e.OutlineColor }

func (e *WeatherElement) fontSize() float64 { return 52 * e.scale }

func (e *WeatherElement) text() string {
	s := fmt.Sprintf("%.0f°C", e.TemperatureC)
	if e.Condition != "" {
		s += "  " + textdraw.Sanitize(e.Condition)
	}
	return s
}

func (e *WeatherElement) Size(text *textdraw.Renderer) (int, int, error) {
	return text.MeasureBlock([]string{e.text()}, e.fontSize())
}

func (e *WeatherElement) Render(c *Canvas, x, y int) error {
	ascent, err := c.Text.Fonts().Ascent(e.fontSize())
	if err != nil {
		return err
	}
	_, err = c.Text.DrawString(c.Dst, e.text(), x, y+ascent, textdraw.Style{
		Size:    e.fontSize(),
		Fill:    c.Ink(e.TextColor),
		Outline: c.Ink(e.OutlineColor),
		Align:   textdraw.AlignLeft,
	})
	return err
}
