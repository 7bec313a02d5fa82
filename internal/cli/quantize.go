package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkframe/inkframe/internal/imageio"
	"github.com/inkframe/inkframe/internal/render"
)

var (
	// Quantize command flags
	quantizeOutput  string
	quantizePreview bool
	quantizeMode    string
)

// quantizeCmd represents the quantize command
var quantizeCmd = &cobra.Command{
	Use:   "quantize <image>",
	Short: "Quantize an image to the six-ink palette",
	Long: `Quantize an image to the panel's ink palette without any overlays.

Useful for checking how a photo survives the reduction to six inks, and
for comparing the mapping modes.

Examples:
  # Dithered (default), written as PNG
  inkframe quantize -o out.png wallpaper.jpg

  # Plain perceptual mapping, previewed in the terminal
  inkframe quantize --mode lab --preview wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runQuantize,
}

func init() {
	quantizeCmd.Flags().StringVarP(&quantizeOutput, "output", "o", "", "output PNG file")
	quantizeCmd.Flags().BoolVar(&quantizePreview, "preview", false, "render an ANSI preview to the terminal")
	quantizeCmd.Flags().StringVarP(&quantizeMode, "mode", "m", "", "mapping mode (nearest-rgb, lab, dither); overrides config")
}

// runQuantize executes the quantize command.
func runQuantize(cmd *cobra.Command, args []string) error {
	imagePath := args[0]
	if err := imageio.ValidateImagePath(imagePath); err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}
	if quantizeOutput == "" && !quantizePreview {
		return fmt.Errorf("nothing to do: pass --output and/or --preview")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if quantizeMode != "" {
		switch quantizeMode {
		case "nearest-rgb", "lab", "dither":
			cfg.Color.Mode = quantizeMode
		default:
			return fmt.Errorf("unknown mode %q (valid: nearest-rgb, lab, dither)", quantizeMode)
		}
	}

	pipeline, err := render.NewPipeline(cfg, newLogger())
	if err != nil {
		return err
	}
	fb, err := pipeline.Compose(imagePath, nil)
	if err != nil {
		return err
	}

	if quantizeOutput != "" {
		if err := render.SavePNG(quantizeOutput, fb); err != nil {
			return err
		}
	}
	if quantizePreview {
		if err := render.WritePreview(os.Stdout, fb); err != nil {
			return err
		}
	}
	return nil
}
