// Package colour provides garment colour extraction and colour-harmony functionality.
package colour

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidHex is returned when a string is not a six digit hex colour.
var ErrInvalidHex = errors.New("invalid hex colour")

var hexPattern = regexp.MustCompile(`^#?[0-9a-fA-F]{6}$`)

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a lower-case hex string (e.g., "#1a2b3c").
// Display layers upper-case it through NormalizeHex or DisplayHex.
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// DisplayHex returns the upper-case "#RRGGBB" form.
func (rgb RGB) DisplayHex() string {
	return strings.ToUpper(rgb.Hex())
}

// HSL returns the colour in HSL space.
func (rgb RGB) HSL() HSL {
	return RGBToHSL(rgb)
}

// IsValidHex reports whether s is a six digit hex colour with an optional leading '#'.
func IsValidHex(s string) bool {
	return hexPattern.MatchString(strings.TrimSpace(s))
}

// ParseHex parses "#RRGGBB" or "RRGGBB" (any case).
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if !hexPattern.MatchString(s) {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// NormalizeHex returns the canonical display form "#RRGGBB".
func NormalizeHex(s string) (string, error) {
	rgb, err := ParseHex(s)
	if err != nil {
		return "", err
	}
	return rgb.DisplayHex(), nil
}

// RGBA is a colour with an alpha channel. Alpha only decides pixel validity.
type RGBA struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// RGB drops the alpha channel.
func (c RGBA) RGB() RGB {
	return RGB{R: c.R, G: c.G, B: c.B}
}

// Palette is an ordered set of dominant colours extracted from one image.
// Weights are percentages of the retained total and line up with Colours.
type Palette struct {
	Colours []RGB
	Weights []float64
}

// NewPalette creates a new Palette with the given colours and weights.
func NewPalette(colours []RGB, weights []float64) *Palette {
	return &Palette{
		Colours: colours,
		Weights: weights,
	}
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return len(p.Colours)
}

// Weight returns the weight of the colour at index i, or 0 when no weight is recorded.
func (p *Palette) Weight(i int) float64 {
	if i < 0 || i >= len(p.Weights) {
		return 0
	}
	return p.Weights[i]
}

// ToHex converts the palette colors to hex strings.
// Returns a slice of hex color codes (e.g., ["#1a2b3c", "#4d5e6f"]).
func (p *Palette) ToHex() []string {
	hexColours := make([]string, len(p.Colours))
	for i, c := range p.Colours {
		hexColours[i] = c.Hex()
	}
	return hexColours
}

// Percentages returns the weight of each colour keyed by its hex string.
func (p *Palette) Percentages() map[string]float64 {
	out := make(map[string]float64, len(p.Colours))
	for i, c := range p.Colours {
		out[c.Hex()] = p.Weight(i)
	}
	return out
}

// DominantColour is one entry of a palette in its exported form.
type DominantColour struct {
	Hex    string  `json:"hex"`
	RGB    RGB     `json:"rgb"`
	Weight float64 `json:"weight"`
	Name   string  `json:"name"`
}

// Entries returns the palette as plain hex/weight/name records.
func (p *Palette) Entries() []DominantColour {
	entries := make([]DominantColour, len(p.Colours))
	for i, c := range p.Colours {
		entries[i] = DominantColour{
			Hex:    c.DisplayHex(),
			RGB:    c,
			Weight: p.Weight(i),
			Name:   nearestName(c),
		}
	}
	return entries
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count  int              `json:"count"`
	Colors []DominantColour `json:"colors"`
}

// ToJSON converts the palette to JSON format.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(PaletteJSON{
		Count:  len(p.Colours),
		Colors: p.Entries(),
	}, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colours) == 0 {
		return "No dominant colours found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d colours:\n", len(p.Colours))
	for i, c := range p.Colours {
		fmt.Fprintf(&sb, "  %d: %s %5.1f%%  %s\n", i+1, c.DisplayHex(), p.Weight(i), nearestName(c))
	}
	return sb.String()
}

// Get returns the color at the specified index.
// Returns an error if the index is out of bounds.
func (p *Palette) Get(index int) (RGB, error) {
	if index < 0 || index >= len(p.Colours) {
		return RGB{}, fmt.Errorf("index out of bounds: %d (palette has %d colours)", index, len(p.Colours))
	}
	return p.Colours[index], nil
}

// All returns an iterator over all colors in the palette using Go 1.25 range over functions.
func (p *Palette) All() func(func(int, RGB) bool) {
	return func(yield func(int, RGB) bool) {
		for i, c := range p.Colours {
			if !yield(i, c) {
				return
			}
		}
	}
}
