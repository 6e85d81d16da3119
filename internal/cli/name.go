package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalil1010/ai-stylist/internal/colour"
)

var (
	namePerceptual bool
	nameText       bool
)

// nameCmd represents the name command
var nameCmd = &cobra.Command{
	Use:   "name <hex|name>...",
	Short: "Name colours or resolve colour names",
	Long: `Print the nearest curated colour name for each hex value. Arguments that
are not hex colours are resolved as colour names instead.

With --text the arguments are read as free text and every colour named in
it is listed in order of first mention.

Examples:
  stylist name "#1f2937" 000080
  stylist name "navy blue" off-white
  stylist name --text "A navy blazer over an ivory shirt"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runName,
}

func init() {
	nameCmd.Flags().BoolVar(&namePerceptual, "perceptual", false, "match in CIE Lab space instead of RGB")
	nameCmd.Flags().BoolVar(&nameText, "text", false, "find colour names in free text")
}

func runName(cmd *cobra.Command, args []string) error {
	preview, err := showPreview(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	table := NewTable(swatchHeaders(preview, "Input", "Hex", "Name")...)

	if nameText {
		text := strings.Join(args, " ")
		for _, c := range colour.FindInText(text) {
			table.AddRow(swatchRow(preview, c.Hex, c.Name, c.Hex, c.Name)...)
		}
		if table.Len() == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No colour names found.")
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), table.Render())
		return nil
	}

	for _, arg := range args {
		hex, name, err := resolveColour(arg)
		if err != nil {
			return err
		}
		table.AddRow(swatchRow(preview, hex, arg, hex, name)...)
	}
	fmt.Fprint(cmd.OutOrStdout(), table.Render())
	return nil
}

// resolveColour turns a hex value or colour name into a hex and display name.
func resolveColour(arg string) (string, string, error) {
	if colour.IsValidHex(arg) {
		hex, _ := colour.NormalizeHex(arg)
		if namePerceptual {
			name, _, err := colour.NameForPerceptual(hex)
			return hex, name, err
		}
		name, err := colour.NameFor(hex)
		return hex, name, err
	}
	if hex, ok := colour.HexForName(arg); ok {
		name, _ := colour.ExactName(hex)
		return hex, name, nil
	}
	return "", "", fmt.Errorf("%q is neither a hex colour nor a known colour name", arg)
}
