// Package cli provides the command-line interface for Inkframe.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/inkframe/inkframe/internal/config"
	"github.com/inkframe/inkframe/internal/version"
)

var (
	// Global flags
	globalVerbose bool
	globalConfig  string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "inkframe",
		Short: "Compose framed scenes for six-colour e-ink panels",
		Long: `Inkframe turns photos into ready-to-display scenes for six-colour
reflective e-ink panels.

It quantizes images to the panel's calibrated ink palette with optional
error-diffusion dithering, then finds the most legible spots for clock,
weather, and quote overlays by scoring the rendered frame for contrast,
uniformity, and edge clutter.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalVerbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&globalConfig, "config", "", "path to config file (default: user config dir)")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(composeCmd)
	rootCmd.AddCommand(quantizeCmd)
	rootCmd.AddCommand(paletteCmd)
}

// newLogger builds the application logger. Without --verbose, log output
// is discarded so command output stays clean for piping.
func newLogger() hclog.Logger {
	level := hclog.Off
	output := io.Discard
	if globalVerbose {
		level = hclog.Debug
		output = os.Stderr
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "inkframe",
		Level:  level,
		Output: output,
	})
}

// loadConfig loads the effective configuration for a command run.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(globalConfig)
	if err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}
