package colour

import (
	"strings"
)

// Neutrals is the fixed achromatic ramp offered with every rich palette.
var neutralHexes = [7]string{"#000000", "#ffffff", "#f5f5f5", "#e5e7eb", "#9ca3af", "#4b5563", "#111827"}

var monochromeSteps = [6]float64{-0.3, -0.18, -0.08, 0.08, 0.18, 0.3}

const (
	monoMinSaturation = 0.28
	monoMaxSaturation = 0.9
	monoMinLightness  = 0.05
	monoMaxLightness  = 0.95
)

// RichPalette is the full set of harmony companions for one base colour.
// Every field is always populated; hex values are lower-case "#rrggbb".
type RichPalette struct {
	Base               string    `json:"base"`
	Complementary      string    `json:"complementary"`
	SplitComplementary [2]string `json:"splitComplementary"`
	Analogous          [4]string `json:"analogous"`
	Triadic            [2]string `json:"triadic"`
	Tetradic           [3]string `json:"tetradic"`
	Monochrome         [6]string `json:"monochrome"`
	Neutrals           [7]string `json:"neutrals"`
}

// Matches is the short harmony summary attached to analysed garments.
type Matches struct {
	Complementary string   `json:"complementary"`
	Analogous     []string `json:"analogous"`
	Triadic       []string `json:"triadic"`
}

// Rich derives the rich palette for a base colour. It is a pure function:
// the same input always produces an identical palette.
func Rich(hex string) (RichPalette, error) {
	base, err := ParseHex(hex)
	if err != nil {
		return RichPalette{}, err
	}
	hsl := RGBToHSL(base)
	rotate := func(deg float64) string {
		return HSLToRGB(Wrap(hsl.H+deg), hsl.S, hsl.L).Hex()
	}

	p := RichPalette{
		Base:               base.Hex(),
		Complementary:      rotate(180),
		SplitComplementary: [2]string{rotate(150), rotate(210)},
		Analogous:          [4]string{rotate(-30), rotate(-15), rotate(15), rotate(30)},
		Triadic:            [2]string{rotate(120), rotate(-120)},
		Tetradic:           [3]string{rotate(90), rotate(180), rotate(270)},
		Neutrals:           neutralHexes,
	}

	sat := clamp(hsl.S, monoMinSaturation, monoMaxSaturation)
	for i, dl := range monochromeSteps {
		l := clamp(hsl.L+dl, monoMinLightness, monoMaxLightness)
		p.Monochrome[i] = HSLToRGB(hsl.H, sat, l).Hex()
	}

	return p, nil
}

// All returns every colour of the palette once, upper-cased, in a stable order:
// base, complementary, analogous, split complementary, triadic, tetradic,
// monochrome, neutrals.
func (p RichPalette) All() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(hexes ...string) {
		for _, h := range hexes {
			u := strings.ToUpper(h)
			if u == "" || seen[u] {
				continue
			}
			seen[u] = true
			out = append(out, u)
		}
	}
	add(p.Base, p.Complementary)
	add(p.Analogous[:]...)
	add(p.SplitComplementary[:]...)
	add(p.Triadic[:]...)
	add(p.Tetradic[:]...)
	add(p.Monochrome[:]...)
	add(p.Neutrals[:]...)
	return out
}

// Groups returns the palette as ordered (label, colours) pairs for display.
func (p RichPalette) Groups() []PaletteGroup {
	return []PaletteGroup{
		{Label: "Base", Colours: []string{p.Base}},
		{Label: "Complementary", Colours: []string{p.Complementary}},
		{Label: "Split complementary", Colours: p.SplitComplementary[:]},
		{Label: "Analogous", Colours: p.Analogous[:]},
		{Label: "Triadic", Colours: p.Triadic[:]},
		{Label: "Tetradic", Colours: p.Tetradic[:]},
		{Label: "Monochrome", Colours: p.Monochrome[:]},
		{Label: "Neutrals", Colours: p.Neutrals[:]},
	}
}

// PaletteGroup is one labelled harmony relationship.
type PaletteGroup struct {
	Label   string
	Colours []string
}

// MatchingColours returns the complementary, analogous (±30°) and triadic colours.
func MatchingColours(hex string) (Matches, error) {
	base, err := ParseHex(hex)
	if err != nil {
		return Matches{}, err
	}
	hsl := RGBToHSL(base)
	rotate := func(deg float64) string {
		return HSLToRGB(Wrap(hsl.H+deg), hsl.S, hsl.L).Hex()
	}
	return Matches{
		Complementary: rotate(180),
		Analogous:     []string{rotate(-30), rotate(30)},
		Triadic:       []string{rotate(120), rotate(-120)},
	}, nil
}

// Complement returns the colour opposite hex on the hue wheel.
func Complement(hex string) (string, error) {
	base, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	hsl := RGBToHSL(base)
	return HSLToRGB(Wrap(hsl.H+180), hsl.S, hsl.L).Hex(), nil
}

// EnsureReadable keeps the hue of hex but lifts saturation to at least minS and
// sets lightness to targetL, limited to [0.35, 0.75].
func EnsureReadable(hex string, targetL, minS float64) (string, error) {
	base, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	hsl := RGBToHSL(base)
	s := max(minS, hsl.S)
	l := clamp(targetL, 0.35, 0.75)
	return HSLToRGB(hsl.H, s, l).Hex(), nil
}
