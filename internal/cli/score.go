package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kalil1010/ai-stylist/internal/colour"
	"github.com/kalil1010/ai-stylist/internal/outfit"
)

// slotAssignments collects repeated --set slot=colour flags into a plan.
// Colours may be hex values or colour names.
type slotAssignments struct {
	plan outfit.Plan
}

var _ pflag.Value = (*slotAssignments)(nil)

func newSlotAssignments() *slotAssignments {
	return &slotAssignments{plan: outfit.NewPlan()}
}

func (s *slotAssignments) String() string {
	if s == nil || s.plan.Len() == 0 {
		return ""
	}
	parts := make([]string, 0, s.plan.Len())
	for _, slot := range outfit.Slots() {
		if hex, ok := s.plan.Get(slot); ok {
			parts = append(parts, string(slot)+"="+hex)
		}
	}
	return strings.Join(parts, ",")
}

func (s *slotAssignments) Set(value string) error {
	for _, pair := range strings.Split(value, ",") {
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("expected slot=colour, got %q", pair)
		}
		slot, err := outfit.ParseSlot(strings.TrimSpace(key))
		if err != nil {
			return err
		}
		val = strings.TrimSpace(val)
		if hex, ok := colour.HexForName(val); ok && !colour.IsValidHex(val) {
			val = hex
		}
		if err := s.plan.Assign(slot, val); err != nil {
			return err
		}
	}
	return nil
}

func (s *slotAssignments) Type() string {
	return "slot=colour"
}

var (
	scoreBase  string
	scoreSlots = newSlotAssignments()
	scoreJSON  bool
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an outfit colour plan against a base colour",
	Long: `Rate every colour of an outfit plan against the base garment colour and
report the combined awesomeness score (0-100) with its label.

Slots: top, bottom, outerwear, footwear, accessory.

Examples:
  stylist score --base "#1f2937" --set top=#1f2937 --set bottom=#e5e7eb
  stylist score --base navy --set top=navy,footwear=white`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreBase, "base", "", "base garment colour (hex or name)")
	scoreCmd.Flags().Var(scoreSlots, "set", "assign a colour to a slot, repeatable")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "print the result as JSON")
	_ = scoreCmd.MarkFlagRequired("base")
}

func runScore(cmd *cobra.Command, _ []string) error {
	base, _, err := resolveColour(scoreBase)
	if err != nil {
		return fmt.Errorf("base: %w", err)
	}

	res, err := outfit.Score(base, scoreSlots.plan)
	if err != nil {
		return err
	}
	if scoreJSON {
		return writeJSON(cmd.OutOrStdout(), res)
	}

	preview, err := showPreview(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	baseHSL := mustHSL(base)
	table := NewTable(swatchHeaders(preview, "Slot", "Hex", "Name", "Points")...)
	for _, slot := range outfit.Slots() {
		hex, ok := scoreSlots.plan.Get(slot)
		if !ok {
			continue
		}
		name, _ := colour.NameFor(hex)
		points := outfit.PairScore(baseHSL, mustHSL(hex))
		table.AddRow(swatchRow(preview, hex, string(slot), hex, name, fmt.Sprintf("%d/%d", points, outfit.MaxPairScore))...)
	}
	if table.Len() > 0 {
		fmt.Fprint(cmd.OutOrStdout(), table.Render())
		fmt.Fprintln(cmd.OutOrStdout())
	}
	writeScore(cmd, res, preview)
	return nil
}

func writeScore(cmd *cobra.Command, res outfit.Result, preview bool) {
	label := res.Label
	if rgb, err := colour.ParseHex(res.Colour); preview && err == nil {
		label = colour.ColourPreviewWithText(rgb, res.Label, len(res.Label)+2)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Score: %d/100 %s\n", res.Score, label)
}

// mustHSL converts a hex already validated by the caller.
func mustHSL(hex string) colour.HSL {
	rgb, err := colour.ParseHex(hex)
	if err != nil {
		return colour.HSL{}
	}
	return colour.RGBToHSL(rgb)
}

// sortedKeys returns m's keys in order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
