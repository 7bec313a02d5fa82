// Package render composes a frame: load a photo, fit it to the panel,
// quantize it to the six-ink palette, then lay text elements over it.
package render

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/gift"
	"github.com/hashicorp/go-hclog"

	"github.com/inkframe/inkframe/internal/config"
	"github.com/inkframe/inkframe/internal/framebuffer"
	"github.com/inkframe/inkframe/internal/imageio"
	"github.com/inkframe/inkframe/internal/layout"
	"github.com/inkframe/inkframe/internal/placement"
	"github.com/inkframe/inkframe/internal/spectra"
	"github.com/inkframe/inkframe/internal/textdraw"
)

// Pipeline turns a source image and a set of text elements into a
// ready-to-display indexed framebuffer.
type Pipeline struct {
	cfg    config.Config
	log    hclog.Logger
	loader imageio.Loader
	mapper *spectra.Mapper
	text   *textdraw.Renderer
	engine *layout.Engine
}

// NewPipeline wires a pipeline from configuration.
func NewPipeline(cfg config.Config, log hclog.Logger) (*Pipeline, error) {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	mapper := spectra.NewMapper()
	if cfg.Color.Palette == "idealized" {
		mapper.UseIdealizedPalette()
	}
	for _, cal := range cfg.Color.Calibrate {
		mapper.SetCalibratedColor(spectra.IndexForCode(cal.Code), cal.RGB[0], cal.RGB[1], cal.RGB[2])
	}
	switch cfg.Color.Mode {
	case "nearest-rgb":
		mapper.SetMode(spectra.ModeNearestRGB)
	case "dither":
		mapper.SetMode(spectra.ModeDither)
	default:
		mapper.SetMode(spectra.ModeLab)
	}

	var fonts *textdraw.FontManager
	var err error
	if cfg.Text.Font != "" {
		fonts, err = textdraw.NewFontManagerFromFile(cfg.Text.Font)
	} else {
		fonts, err = textdraw.NewFontManager()
	}
	if err != nil {
		return nil, fmt.Errorf("loading fonts: %w", err)
	}
	text := textdraw.NewRenderer(fonts)

	analyzer := placement.NewAnalyzer()
	analyzer.SetWeights(placement.Weights{
		Contrast:      cfg.Weights.Contrast,
		Uniformity:    cfg.Weights.Uniformity,
		EdgeAvoidance: cfg.Weights.EdgeAvoidance,
	})
	analyzer.SetKeepout(placement.Keepout{
		Top:    cfg.Keepout.Top,
		Bottom: cfg.Keepout.Bottom,
		Left:   cfg.Keepout.Left,
		Right:  cfg.Keepout.Right,
	})

	engine := layout.NewEngine(analyzer, text, log)
	engine.SetMinScore(cfg.Layout.MinScore)
	engine.SetMargin(cfg.Layout.Margin)
	engine.SetZonePadding(cfg.Layout.ZonePadding)
	engine.SetCorners(cfg.Layout.Corners)

	return &Pipeline{
		cfg:    cfg,
		log:    log.Named("render"),
		loader: imageio.NewSmartLoader(),
		mapper: mapper,
		text:   text,
		engine: engine,
	}, nil
}

// Mapper exposes the colour mapper for calibration at runtime.
func (p *Pipeline) Mapper() *spectra.Mapper { return p.mapper }

// Compose loads the image at path, quantizes it to the panel, and places
// then renders the given elements over it.
func (p *Pipeline) Compose(path string, elements []layout.Element) (*framebuffer.Indexed, error) {
	resolved, err := imageio.ResolveImagePath(path)
	if err != nil {
		return nil, fmt.Errorf("resolving image path: %w", err)
	}
	src, err := p.loader.Load(resolved)
	if err != nil {
		return nil, err
	}
	p.log.Debug("image loaded", "path", resolved, "bounds", src.Bounds())

	fitted := p.fit(src)
	fb := p.quantizeFitted(fitted)
	if len(elements) == 0 {
		return fb, nil
	}

	// Score placements against the full-colour image rather than the
	// quantized buffer: real luminance samples give the variance and edge
	// metrics more to work with than six ink levels.
	surface := framebuffer.NewPacked(fitted, func(r, g, b uint8) uint8 {
		return p.mapper.MapColor(r, g, b)
	})

	p.engine.Reset()
	placements, err := p.engine.PlaceElements(surface, elements)
	if err != nil {
		return nil, err
	}

	// Placements come back in priority order; render in that order.
	ordered := layout.ByPriority(elements)
	canvas := &layout.Canvas{Dst: fb, Palette: fb.Palette(), Text: p.text}
	for i, el := range ordered {
		pl := placements[i]
		if err := el.Render(canvas, pl.Bounds().Min.X, pl.Bounds().Min.Y); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", el.Name(), err)
		}
	}
	return fb, nil
}

// Quantize fits src to the panel dimensions and maps every pixel to a
// palette code using the configured mode.
func (p *Pipeline) Quantize(src image.Image) *framebuffer.Indexed {
	return p.quantizeFitted(p.fit(src))
}

// fit scales and crops src to fill the panel exactly.
func (p *Pipeline) fit(src image.Image) *image.RGBA {
	g := gift.New(gift.ResizeToFill(p.cfg.Display.Width, p.cfg.Display.Height,
		gift.LanczosResampling, gift.CenterAnchor))
	fitted := image.NewRGBA(g.Bounds(src.Bounds()))
	g.Draw(fitted, src)
	return fitted
}

func (p *Pipeline) quantizeFitted(fitted *image.RGBA) *framebuffer.Indexed {
	w, h := p.cfg.Display.Width, p.cfg.Display.Height
	fb := framebuffer.NewIndexed(w, h, p.mapper.Palette())
	p.mapper.ResetDither()

	mode := p.mapper.Mode()
	row := make([]uint8, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := fitted.RGBAAt(x, y)
			switch mode {
			case spectra.ModeDither:
				row[x] = p.mapper.MapColorDithered(x, y, c.R, c.G, c.B, w)
			case spectra.ModeLab:
				row[x] = p.mapper.MapColorFast(c.R, c.G, c.B)
			default:
				row[x] = p.mapper.MapColor(c.R, c.G, c.B)
			}
		}
		fb.SetCodeRow(y, row)
	}
	return fb
}

// SavePNG writes the framebuffer as a PNG using the calibrated ink
// colours.
func SavePNG(path string, fb *framebuffer.Indexed) error {
	f, err := os.Create(path) // #nosec G304 - User-specified output path
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, fb); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return nil
}
