package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inkframe/inkframe/internal/render"
	"github.com/inkframe/inkframe/internal/spectra"
)

var (
	// Palette command flags
	paletteIdealized bool
)

var inkNames = map[uint8]string{
	spectra.CodeBlack:  "black",
	spectra.CodeWhite:  "white",
	spectra.CodeYellow: "yellow",
	spectra.CodeRed:    "red",
	spectra.CodeBlue:   "blue",
	spectra.CodeGreen:  "green",
}

// paletteCmd represents the palette command
var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Show the active ink palette",
	Long: `Show the ink palette the frame will quantize against, including any
calibration overrides from the config file, with terminal colour
swatches.`,
	Args: cobra.NoArgs,
	RunE: runPalette,
}

func init() {
	paletteCmd.Flags().BoolVar(&paletteIdealized, "idealized", false, "show the idealized pure-RGB palette instead of the calibrated one")
}

// runPalette executes the palette command.
func runPalette(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mapper := spectra.NewMapper()
	if paletteIdealized || cfg.Color.Palette == "idealized" {
		mapper.UseIdealizedPalette()
	}
	if !paletteIdealized {
		for _, cal := range cfg.Color.Calibrate {
			mapper.SetCalibratedColor(spectra.IndexForCode(cal.Code), cal.RGB[0], cal.RGB[1], cal.RGB[2])
		}
	}

	pal := mapper.Palette()
	for _, code := range spectra.Codes() {
		fmt.Println(render.InkPreview(pal, code, inkNames[code]))
	}
	return nil
}
