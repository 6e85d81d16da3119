// Stylist - garment colour analysis and outfit harmony
//
// Stylist extracts the dominant colours of garment photos, derives harmony
// palettes and scores outfit colour plans from the command line or over HTTP.
package main

import (
	"os"

	"github.com/kalil1010/ai-stylist/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
