package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkframe/inkframe/internal/config"
	"github.com/inkframe/inkframe/internal/imageio"
	"github.com/inkframe/inkframe/internal/layout"
	"github.com/inkframe/inkframe/internal/render"
)

var (
	// Compose command flags
	composeOutput    string
	composePreview   bool
	composeClock     bool
	composeQuote     string
	composeAuthor    string
	composeWeatherTC float64
	composeCondition string
	composeTimestamp string
)

// composeCmd represents the compose command
var composeCmd = &cobra.Command{
	Use:   "compose <image>",
	Short: "Compose a full frame with text overlays",
	Long: `Compose a display-ready frame: quantize the image to the ink palette
and place the requested overlays where they stay legible.

The image argument may be a file, a directory (a random image inside it
is picked), or an HTTP(S) URL.

Examples:
  # Clock over a photo, written as PNG
  inkframe compose --clock -o frame.png wallpaper.jpg

  # Clock, weather, and a quote, previewed in the terminal
  inkframe compose --clock --weather 21 --condition "Partly cloudy" \
    --quote "Stay hungry, stay foolish" --author "Steve Jobs" \
    --preview ~/Pictures/wallpapers/

  # Rotate through a directory on a cron schedule
  inkframe compose --clock -o /var/lib/frame/next.png ~/Pictures/frame/`,
	Args: cobra.ExactArgs(1),
	RunE: runCompose,
}

func init() {
	composeCmd.Flags().StringVarP(&composeOutput, "output", "o", "", "output PNG file")
	composeCmd.Flags().BoolVar(&composePreview, "preview", false, "render an ANSI preview to the terminal")
	composeCmd.Flags().BoolVar(&composeClock, "clock", false, "overlay the current time and date")
	composeCmd.Flags().StringVar(&composeQuote, "quote", "", "overlay a quotation")
	composeCmd.Flags().StringVar(&composeAuthor, "author", "", "attribution for the quotation")
	composeCmd.Flags().Float64Var(&composeWeatherTC, "weather", 0, "overlay the temperature in degrees C")
	composeCmd.Flags().StringVar(&composeCondition, "condition", "", "weather condition text shown next to the temperature")
	composeCmd.Flags().StringVar(&composeTimestamp, "at", "", "clock time as RFC3339 instead of now, for reproducible output")
}

// runCompose executes the compose command.
func runCompose(cmd *cobra.Command, args []string) error {
	imagePath := args[0]
	if err := imageio.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	if composeOutput == "" && !composePreview {
		return fmt.Errorf("nothing to do: pass --output and/or --preview")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()

	elements, err := composeElements(cmd, cfg)
	if err != nil {
		return err
	}

	pipeline, err := render.NewPipeline(cfg, log)
	if err != nil {
		return err
	}
	fb, err := pipeline.Compose(imagePath, elements)
	if err != nil {
		return err
	}

	if composeOutput != "" {
		if err := render.SavePNG(composeOutput, fb); err != nil {
			return err
		}
		log.Debug("frame written", "path", composeOutput)
	}
	if composePreview {
		if !render.SupportsPreview() {
			fmt.Fprintln(os.Stderr, "warning: stdout is not a terminal, preview may be garbled")
		}
		if err := render.WritePreview(os.Stdout, fb); err != nil {
			return err
		}
	}
	return nil
}

func composeElements(cmd *cobra.Command, cfg config.Config) ([]layout.Element, error) {
	var elements []layout.Element

	if composeClock {
		now := time.Now()
		if composeTimestamp != "" {
			parsed, err := time.Parse(time.RFC3339, composeTimestamp)
			if err != nil {
				return nil, fmt.Errorf("invalid --at value: %w", err)
			}
			now = parsed
		}
		elements = append(elements, layout.NewTimeDateElement(now))
	}
	if cmd.Flags().Changed("weather") {
		elements = append(elements, layout.NewWeatherElement(composeWeatherTC, composeCondition))
	}
	if composeQuote != "" {
		q := layout.NewQuoteElement(composeQuote, composeAuthor)
		if cfg.Text.QuoteMaxLines > 0 {
			q.MaxLineCount = cfg.Text.QuoteMaxLines
		}
		if cfg.Text.QuoteMinWords > 0 {
			q.MinWords = cfg.Text.QuoteMinWords
		}
		elements = append(elements, q)
	}
	return elements, nil
}
