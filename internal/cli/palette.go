package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kalil1010/ai-stylist/internal/colour"
)

var paletteJSON bool

// paletteCmd represents the palette command
var paletteCmd = &cobra.Command{
	Use:   "palette <hex>",
	Short: "Derive the harmony palette of a colour",
	Long: `Derive the rich harmony palette of a base colour: complementary,
split complementary, analogous, triadic, tetradic, monochrome steps and
wardrobe neutrals.

Examples:
  stylist palette "#1f2937"
  stylist palette --json 7c2d12`,
	Args: cobra.ExactArgs(1),
	RunE: runPalette,
}

func init() {
	paletteCmd.Flags().BoolVar(&paletteJSON, "json", false, "print the palette as JSON")
}

func runPalette(cmd *cobra.Command, args []string) error {
	rich, err := colour.Rich(args[0])
	if err != nil {
		return err
	}
	if paletteJSON {
		return writeJSON(cmd.OutOrStdout(), rich)
	}

	preview, err := showPreview(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	name, _ := colour.NameFor(rich.Base)
	fmt.Fprintf(cmd.OutOrStdout(), "Base colour: %s (%s)\n\n", name, rich.All()[0])
	writeRichPalette(cmd.OutOrStdout(), rich, preview)
	return nil
}
