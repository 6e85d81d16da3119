package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kalil1010/ai-stylist/internal/analysis"
	"github.com/kalil1010/ai-stylist/internal/colour"
	"github.com/kalil1010/ai-stylist/internal/outfit"
)

var planJSON bool

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan <hex|name>",
	Short: "Find the best scoring outfit plan for a base colour",
	Long: `Search the harmony palette of a base colour for the outfit plan with the
highest score. The top is always the base colour; bottom, outerwear,
footwear and accessory are chosen from curated palette candidates.

Examples:
  stylist plan "#1f2937"
  stylist plan --json rust`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&planJSON, "json", false, "print the plan as JSON")
}

type planOutput struct {
	Base   string            `json:"base"`
	Plan   map[string]string `json:"plan"`
	Total  int               `json:"total"`
	Result outfit.Result     `json:"result"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	base, _, err := resolveColour(args[0])
	if err != nil {
		return err
	}
	rich, err := colour.Rich(base)
	if err != nil {
		return err
	}
	plan, total, err := outfit.Best(rich, base)
	if err != nil {
		return err
	}
	res, err := outfit.Score(base, plan)
	if err != nil {
		return err
	}

	if planJSON {
		return writeJSON(cmd.OutOrStdout(), planOutput{Base: base, Plan: plan.Hexes(), Total: total, Result: res})
	}

	preview, err := showPreview(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	baseHSL := mustHSL(base)
	table := NewTable(swatchHeaders(preview, "Slot", "Hex", "Name", "Points")...)
	for _, slot := range outfit.Slots() {
		hex, ok := plan.Get(slot)
		if !ok {
			continue
		}
		name, _ := colour.NameFor(hex)
		points := outfit.PairScore(baseHSL, mustHSL(hex))
		table.AddRow(swatchRow(preview, hex, string(slot), hex, name, fmt.Sprintf("%d/%d", points, outfit.MaxPairScore))...)
	}
	fmt.Fprint(cmd.OutOrStdout(), table.Render())
	// The top is the base itself and is not part of the searched total.
	fmt.Fprintf(cmd.OutOrStdout(), "\nSearched slots: %d/%d\n", total, (plan.Len()-1)*outfit.MaxPairScore)
	writeScore(cmd, res, preview)
	return nil
}

// bestPlanFor searches the rich palette of a non-empty analysis.
func bestPlanFor(res *analysis.Result) (outfit.Plan, error) {
	if res.RichMatches == nil {
		return nil, analysis.ErrNoColours
	}
	plan, _, err := outfit.Best(*res.RichMatches, res.PrimaryHex)
	return plan, err
}
