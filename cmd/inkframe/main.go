// Inkframe - a scene composer for six-colour e-ink photo frames
//
// Inkframe quantizes photos to a calibrated six-ink palette and overlays
// clock, weather, and quote text wherever the frame stays legible.
package main

import (
	"os"

	"github.com/inkframe/inkframe/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
