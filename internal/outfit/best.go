package outfit

import (
	"fmt"

	"github.com/kalil1010/ai-stylist/internal/colour"
)

// Candidates returns the curated per-slot options searched by Best. The top
// is not included; it is always the base colour.
func Candidates(rich colour.RichPalette) map[Slot][]string {
	return map[Slot][]string{
		SlotBottom: {
			rich.Complementary,
			rich.Analogous[0], rich.Analogous[1],
			rich.Triadic[0], rich.Triadic[1],
		},
		SlotOuterwear: {
			rich.Tetradic[0], rich.Tetradic[1], rich.Tetradic[2],
			rich.Analogous[0], rich.Analogous[1],
		},
		// The last three monochrome steps, which are the lightest.
		SlotFootwear: {
			rich.Monochrome[3], rich.Monochrome[4], rich.Monochrome[5],
			rich.Triadic[0], rich.Triadic[1],
		},
		SlotAccessory: {
			rich.Neutrals[0], rich.Neutrals[1], rich.Neutrals[2], rich.Neutrals[3],
			rich.Analogous[0],
		},
	}
}

type candidate struct {
	hex   string
	score int
}

// Best searches every combination of the candidate colours and returns the
// plan with the highest total pair score, along with that total. The top is
// fixed to base. Ties keep the first combination found, iterating bottom,
// outerwear, footwear, accessory in candidate order.
func Best(rich colour.RichPalette, base string) (Plan, int, error) {
	baseRGB, err := colour.ParseHex(base)
	if err != nil {
		return nil, 0, fmt.Errorf("base colour: %w", err)
	}
	baseHSL := colour.RGBToHSL(baseRGB)

	cands := Candidates(rich)
	scored := make(map[Slot][]candidate, len(cands))
	for slot, hexes := range cands {
		for _, hex := range hexes {
			rgb, err := colour.ParseHex(hex)
			if err != nil {
				return nil, 0, fmt.Errorf("%s candidate: %w", slot, err)
			}
			scored[slot] = append(scored[slot], candidate{
				hex:   rgb.DisplayHex(),
				score: PairScore(baseHSL, colour.RGBToHSL(rgb)),
			})
		}
	}

	best := -1
	var pick [4]candidate
	for _, b := range scored[SlotBottom] {
		for _, o := range scored[SlotOuterwear] {
			for _, f := range scored[SlotFootwear] {
				for _, a := range scored[SlotAccessory] {
					if total := b.score + o.score + f.score + a.score; total > best {
						best = total
						pick = [4]candidate{b, o, f, a}
					}
				}
			}
		}
	}

	plan := Plan{
		SlotTop:       baseRGB.DisplayHex(),
		SlotBottom:    pick[0].hex,
		SlotOuterwear: pick[1].hex,
		SlotFootwear:  pick[2].hex,
		SlotAccessory: pick[3].hex,
	}
	return plan, best, nil
}
