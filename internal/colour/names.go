package colour

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// NamedColour pairs a human-readable name with a canonical hex value.
type NamedColour struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
	rgb  RGB
}

// RGB returns the parsed colour.
func (n NamedColour) RGB() RGB {
	return n.rgb
}

var baseColourTable = []NamedColour{
	{Name: "Black", Hex: "#000000"},
	{Name: "Charcoal", Hex: "#1f2937"},
	{Name: "Slate Gray", Hex: "#4b5563"},
	{Name: "Gray", Hex: "#6b7280"},
	{Name: "Silver", Hex: "#c0c0c0"},
	{Name: "White", Hex: "#ffffff"},
	{Name: "Off White", Hex: "#f5f5f5"},
	{Name: "Ivory", Hex: "#fffff0"},
	{Name: "Beige", Hex: "#f5f5dc"},
	{Name: "Khaki", Hex: "#f0e68c"},
	{Name: "Tan", Hex: "#d2b48c"},
	{Name: "Camel", Hex: "#c19a6b"},
	{Name: "Saddle Brown", Hex: "#8b4513"},
	{Name: "Sienna", Hex: "#a0522d"},
	{Name: "Dark Brown", Hex: "#654321"},
	{Name: "Burgundy", Hex: "#800020"},
	{Name: "Rust", Hex: "#7c2d12"},
	{Name: "Dark Gold", Hex: "#b8860b"},
	{Name: "Gold", Hex: "#ffd700"},
	{Name: "Mustard", Hex: "#d97706"},
	{Name: "Orange", Hex: "#ffa500"},
	{Name: "Coral", Hex: "#ff7f50"},
	{Name: "Red", Hex: "#dc2626"},
	{Name: "Bright Red", Hex: "#ef4444"},
	{Name: "Pink", Hex: "#f472b6"},
	{Name: "Magenta", Hex: "#ff00ff"},
	{Name: "Lavender", Hex: "#b57edc"},
	{Name: "Purple", Hex: "#a21caf"},
	{Name: "Indigo", Hex: "#4c1d95"},
	{Name: "Navy", Hex: "#000080"},
	{Name: "Royal Blue", Hex: "#1d4ed8"},
	{Name: "Blue", Hex: "#3b82f6"},
	{Name: "Sky Blue", Hex: "#38bdf8"},
	{Name: "Turquoise", Hex: "#06b6d4"},
	{Name: "Cyan", Hex: "#0ea5e9"},
	{Name: "Teal", Hex: "#10b981"},
	{Name: "Dark Teal", Hex: "#065f46"},
	{Name: "Mint", Hex: "#98ff98"},
	{Name: "Green", Hex: "#16a34a"},
	{Name: "Bright Green", Hex: "#22c55e"},
	{Name: "Olive", Hex: "#6b8e23"},
	{Name: "Lime", Hex: "#84cc16"},
	{Name: "Yellow Green", Hex: "#a3e635"},
	{Name: "Yellow", Hex: "#eab308"},
	{Name: "Light Yellow", Hex: "#fde047"},
	{Name: "Cream", Hex: "#fff4e6"},
}

// Aliases only take part in name to hex lookups and text matching.
var aliasTable = []NamedColour{
	{Name: "Jet Black", Hex: "#000000"},
	{Name: "Charcoal Gray", Hex: "#1f2937"},
	{Name: "Soft Gray", Hex: "#e5e7eb"},
	{Name: "Heather Gray", Hex: "#9ca3af"},
	{Name: "Pure White", Hex: "#ffffff"},
	{Name: "Bright White", Hex: "#ffffff"},
	{Name: "Off-White", Hex: "#f5f5f5"},
	{Name: "Creamy White", Hex: "#fff4e6"},
	{Name: "Navy Blue", Hex: "#000080"},
	{Name: "Midnight Blue", Hex: "#000080"},
	{Name: "Deep Navy", Hex: "#000080"},
	{Name: "Baby Blue", Hex: "#38bdf8"},
	{Name: "Light Blue", Hex: "#38bdf8"},
	{Name: "Powder Blue", Hex: "#bfd7ff"},
	{Name: "Forest Green", Hex: "#065f46"},
	{Name: "Hunter Green", Hex: "#065f46"},
	{Name: "Emerald", Hex: "#16a34a"},
	{Name: "Sage", Hex: "#a7c796"},
	{Name: "Olive Green", Hex: "#6b8e23"},
	{Name: "Army Green", Hex: "#556b2f"},
	{Name: "Dusty Rose", Hex: "#d98695"},
	{Name: "Blush Pink", Hex: "#f9a8d4"},
	{Name: "Hot Pink", Hex: "#ff69b4"},
	{Name: "Wine", Hex: "#800020"},
	{Name: "Maroon", Hex: "#800020"},
	{Name: "Burgundy Red", Hex: "#800020"},
	{Name: "Terracotta", Hex: "#e2725b"},
	{Name: "Copper", Hex: "#b87333"},
	{Name: "Bronze", Hex: "#cd7f32"},
	{Name: "Burnt Orange", Hex: "#cc5500"},
	{Name: "Mustard Yellow", Hex: "#d97706"},
	{Name: "Golden Yellow", Hex: "#ffd700"},
	{Name: "Pastel Yellow", Hex: "#fde047"},
	{Name: "Lavender Purple", Hex: "#b57edc"},
	{Name: "Plum", Hex: "#8e4585"},
	{Name: "Deep Purple", Hex: "#4c1d95"},
	{Name: "Charcoal Black", Hex: "#1f2937"},
	{Name: "Chocolate Brown", Hex: "#654321"},
	{Name: "Coffee Brown", Hex: "#5d3a24"},
	{Name: "Camel Brown", Hex: "#c19a6b"},
	{Name: "Tan Brown", Hex: "#d2b48c"},
	{Name: "Champagne", Hex: "#f7e7ce"},
}

type namePattern struct {
	colour NamedColour
	tokens []string
	re     *regexp.Regexp
}

// Lookup tables. Built once in init and never written afterwards.
var (
	baseColours  []NamedColour
	allColours   []NamedColour
	nameLookup   = make(map[string]NamedColour)
	hexLookup    = make(map[string]string)
	namePatterns []namePattern
)

func init() {
	baseColours = canonicalise(baseColourTable)
	allColours = append(append([]NamedColour{}, baseColours...), canonicalise(aliasTable)...)

	for _, c := range allColours {
		if _, ok := hexLookup[c.Hex]; !ok {
			hexLookup[c.Hex] = c.Name
		}
	}

	seen := make(map[string]bool)
	for _, c := range allColours {
		tokens := tokenise(c.Name)
		if len(tokens) == 0 {
			continue
		}
		key := strings.Join(tokens, " ")
		if seen[key] {
			continue
		}
		seen[key] = true
		nameLookup[key] = c
		namePatterns = append(namePatterns, namePattern{colour: c, tokens: tokens, re: phraseRegexp(tokens)})
	}

	// Longer phrases first so "navy blue" wins over "navy" and "blue".
	sort.SliceStable(namePatterns, func(i, j int) bool {
		if len(namePatterns[i].tokens) != len(namePatterns[j].tokens) {
			return len(namePatterns[i].tokens) > len(namePatterns[j].tokens)
		}
		return len(namePatterns[i].colour.Name) > len(namePatterns[j].colour.Name)
	})
}

func canonicalise(in []NamedColour) []NamedColour {
	out := make([]NamedColour, len(in))
	for i, c := range in {
		rgb, err := ParseHex(c.Hex)
		if err != nil {
			panic("colour: bad table entry " + c.Name + ": " + err.Error())
		}
		out[i] = NamedColour{Name: c.Name, Hex: rgb.DisplayHex(), rgb: rgb}
	}
	return out
}

// BaseColours returns a copy of the curated palette used for nearest-name lookups.
func BaseColours() []NamedColour {
	out := make([]NamedColour, len(baseColours))
	copy(out, baseColours)
	return out
}

// NameFor returns the name of the curated colour nearest to hex by RGB distance.
// Ties go to the entry listed first.
func NameFor(hex string) (string, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return nearestName(rgb), nil
}

func nearestName(rgb RGB) string {
	best := math.Inf(1)
	name := "Unknown"
	for _, c := range baseColours {
		if d := Distance(rgb, c.rgb); d < best {
			best = d
			name = c.Name
		}
	}
	return name
}

// NameForPerceptual returns the curated colour nearest to hex in CIE Lab space,
// together with the Lab distance.
func NameForPerceptual(hex string) (string, float64, error) {
	rgb, err := ParseHex(hex)
	if err != nil {
		return "", 0, err
	}
	target := toColorful(rgb)

	best := math.Inf(1)
	name := "Unknown"
	for _, c := range baseColours {
		if d := target.DistanceLab(toColorful(c.rgb)); d < best {
			best = d
			name = c.Name
		}
	}
	return name, best, nil
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ExactName returns the first registered name, alias included, for an exact hex match.
func ExactName(hex string) (string, bool) {
	norm, err := NormalizeHex(hex)
	if err != nil {
		return "", false
	}
	name, ok := hexLookup[norm]
	return name, ok
}

// HexForName resolves a colour name or alias, ignoring case and punctuation.
func HexForName(name string) (string, bool) {
	tokens := tokenise(name)
	if len(tokens) == 0 {
		return "", false
	}
	c, ok := nameLookup[strings.Join(tokens, " ")]
	if !ok {
		return "", false
	}
	return c.Hex, true
}

// FindInText returns the colours named in text, ordered by first mention.
// Longer phrases take precedence and matches never overlap.
func FindInText(text string) []NamedColour {
	if text == "" {
		return nil
	}

	type match struct {
		start, end int
		colour     NamedColour
	}
	var matches []match
	overlaps := func(start, end int) bool {
		for _, m := range matches {
			if start < m.end && end > m.start {
				return true
			}
		}
		return false
	}
	for _, p := range namePatterns {
		for _, loc := range p.re.FindAllStringIndex(text, -1) {
			if overlaps(loc[0], loc[1]) {
				continue
			}
			matches = append(matches, match{start: loc[0], end: loc[1], colour: p.colour})
			break
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].start < matches[j].start })

	seen := make(map[string]bool)
	var out []NamedColour
	for _, m := range matches {
		key := strings.ToLower(m.colour.Name) + "|" + m.colour.Hex
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m.colour)
	}
	return out
}

var nonWord = regexp.MustCompile(`[^a-z0-9\s-]`)

func tokenise(s string) []string {
	s = nonWord.ReplaceAllString(strings.ToLower(s), " ")
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-'
	})
}

func phraseRegexp(tokens []string) *regexp.Regexp {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`(?i)\b` + strings.Join(quoted, `[\s-]+`) + `\b`)
}
