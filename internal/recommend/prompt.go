// Package recommend builds outfit suggestion and stylist chat prompts from
// colour analyses and sends them to a Gemini model.
package recommend

import (
	"fmt"
	"strings"

	"github.com/kalil1010/ai-stylist/internal/colour"
	"github.com/kalil1010/ai-stylist/internal/outfit"
)

// formalKeywords mark occasions that call for business dress.
var formalKeywords = []string{"business", "meeting", "board", "office", "corporate", "interview", "pitch"}

// NeedsFormalDressCode reports whether occasion mentions a business setting.
func NeedsFormalDressCode(occasion string) bool {
	lowered := strings.ToLower(occasion)
	if lowered == "" {
		return false
	}
	for _, k := range formalKeywords {
		if strings.Contains(lowered, k) {
			return true
		}
	}
	return false
}

// Weather is the forecast an outfit must suit.
type Weather struct {
	Temperature float64 `json:"temperature"`
	Condition   string  `json:"condition"`
	Humidity    float64 `json:"humidity"`
	Location    string  `json:"location"`
}

// Profile is what the stylist knows about the wearer.
type Profile struct {
	Gender         string   `json:"gender,omitempty"`
	Age            int      `json:"age,omitempty"`
	FavoriteColors []string `json:"favoriteColors,omitempty"`
	FavoriteStyles []string `json:"favoriteStyles,omitempty"`
}

// ClosetItem is a garment the user already owns.
type ClosetItem struct {
	ID             string   `json:"id"`
	GarmentType    string   `json:"garmentType"`
	Brand          string   `json:"brand,omitempty"`
	Description    string   `json:"description,omitempty"`
	DominantColors []string `json:"dominantColors,omitempty"`
}

// Request is everything an outfit suggestion is based on. Colours are plain hex strings.
type Request struct {
	Occasion      string              `json:"occasion"`
	Weather       Weather             `json:"weather"`
	Profile       *Profile            `json:"userProfile,omitempty"`
	DominantHexes []string            `json:"dominantHexes,omitempty"`
	Palette       *colour.RichPalette `json:"palette,omitempty"`
	Plan          outfit.Plan         `json:"plan,omitempty"`
	Closet        []ClosetItem        `json:"closet,omitempty"`
}

// Validate checks the fields a suggestion cannot do without.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Occasion) == "" {
		return fmt.Errorf("occasion is required")
	}
	if strings.TrimSpace(r.Weather.Condition) == "" {
		return fmt.Errorf("weather condition is required")
	}
	return nil
}

const suggestionSystemPrompt = `You are a professional fashion stylist AI. Build outfits using the user's own closet items whenever possible, and say clearly when a piece is a shopping recommendation.

Respond ONLY with a valid JSON object matching exactly this schema (no markdown fences, no extra text):
{
  "top": { "summary": string, "color": string, "source": "closet" | "online" },
  "bottom": { "summary": string, "color": string, "source": "closet" | "online" },
  "footwear": { "summary": string, "color": string, "source": "closet" | "online" },
  "accessories": [ { "summary": string, "color": string, "source": "closet" | "online" } ],
  "outerwear"?: { "summary": string, "color": string, "source": "closet" | "online" },
  "styleNotes": string
}

Rules:
- Set "source" to "closet" only for items from the user's closet inventory.
- Provide a descriptive "color" for every garment.
- If outerwear is unnecessary, omit it entirely.
- Keep "styleNotes" to 2-3 sentences of practical guidance.`

const chatSystemPrompt = `You are a friendly fashion stylist AI in Concise Mode. Keep answers short, clear, and enjoyable to read.

Formatting rules (strict):
- Use simple Markdown only (no tables).
- Max 8-12 lines total.
- Short bullets, no long paragraphs.
- End with one short follow-up question.

When asked for an outfit, return these sections (omit any that do not apply):

## Outfit (1-2 options)
- Top: ...  Bottom: ...  Shoes: ...  Accessories: ...

## Colors
- Complementary: ...
- Analogous: ...
- Neutrals: ...

## Tips
- 1-2 quick pointers (fit/fabric/occasion).

Personalize to the user's profile and any provided image colors. Be helpful and upbeat, but never verbose.`

const (
	formalGuidance = "Occasion directives: Choose collared shirts, tailored trousers or skirts, polished footwear, and optional blazer. Avoid shorts, casual tees, or athleisure."
	casualGuidance = "Occasion directives: Match the vibe of the event while staying weather appropriate."
)

// BuildPrompt assembles the user prompt for an outfit suggestion.
func BuildPrompt(r Request) string {
	var b strings.Builder

	b.WriteString("Please suggest a complete outfit for the following context. Use closet items first.\n\n")
	fmt.Fprintf(&b, "Occasion: %s\n", r.Occasion)
	fmt.Fprintf(&b, "Weather: %g degC, %s in %s\n", r.Weather.Temperature, r.Weather.Condition, orDefault(r.Weather.Location, "an unspecified location"))
	fmt.Fprintf(&b, "Humidity: %g%%\n\n", r.Weather.Humidity)

	writeProfile(&b, r.Profile)
	b.WriteString("\n")

	if NeedsFormalDressCode(r.Occasion) {
		b.WriteString(formalGuidance)
	} else {
		b.WriteString(casualGuidance)
	}
	b.WriteString("\n\n")

	if len(r.DominantHexes) > 0 {
		fmt.Fprintf(&b, "Garment colours: %s\n", describeColours(r.DominantHexes))
	}
	if r.Palette != nil {
		b.WriteString("Harmony palette:\n")
		for _, g := range r.Palette.Groups() {
			fmt.Fprintf(&b, "- %s: %s\n", g.Label, describeColours(g.Colours))
		}
	}
	if r.Plan.Len() > 0 {
		b.WriteString("Planned colours by slot:\n")
		for _, s := range outfit.Slots() {
			if hex, ok := r.Plan.Get(s); ok {
				fmt.Fprintf(&b, "- %s: %s\n", s, describeColours([]string{hex}))
			}
		}
	}
	b.WriteString("\n")

	writeCloset(&b, r.Closet)
	b.WriteString("\nProvide a detailed outfit recommendation and clear style notes. Reference the item names when you use them.")
	return b.String()
}

// BuildChatPrompt assembles the user turn for the stylist chat.
func BuildChatPrompt(message string, imageHexes []string, profile *Profile, closet []ClosetItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User message: %s\n\n", message)
	if len(imageHexes) > 0 {
		fmt.Fprintf(&b, "Image context: Dominant colors detected: %s. If relevant, suggest color pairings and outfit ideas that complement these colors.\n\n", describeColours(imageHexes))
	}
	writeProfile(&b, profile)
	b.WriteString("\n")
	writeCloset(&b, closet)
	b.WriteString("\nPlease provide a helpful and personalised response.")
	return b.String()
}

func writeProfile(b *strings.Builder, p *Profile) {
	if p == nil {
		p = &Profile{}
	}
	age := "not specified"
	if p.Age > 0 {
		age = fmt.Sprint(p.Age)
	}
	b.WriteString("User Profile:\n")
	fmt.Fprintf(b, "- Gender: %s\n", orDefault(p.Gender, "not specified"))
	fmt.Fprintf(b, "- Age: %s\n", age)
	fmt.Fprintf(b, "- Favorite Colors: %s\n", orDefault(strings.Join(p.FavoriteColors, ", "), "none specified"))
	fmt.Fprintf(b, "- Favorite Styles: %s\n", orDefault(strings.Join(p.FavoriteStyles, ", "), "none specified"))
}

func writeCloset(b *strings.Builder, items []ClosetItem) {
	if len(items) == 0 {
		b.WriteString("Closet Inventory: No items provided.\n")
		return
	}
	b.WriteString("Closet Inventory (prioritise these pieces):\n")
	for _, item := range items {
		label := strings.TrimSpace(strings.Join([]string{item.Brand, item.Description}, " "))
		fmt.Fprintf(b, "- [%s] %s", item.GarmentType, orDefault(label, item.ID))
		if len(item.DominantColors) > 0 {
			fmt.Fprintf(b, " (colours: %s)", describeColours(item.DominantColors))
		}
		b.WriteString("\n")
	}
}

// describeColours renders hex values with their names, e.g. "Navy (#000080)".
// Values that are not hex colours are passed through.
func describeColours(hexes []string) string {
	parts := make([]string, 0, len(hexes))
	for _, h := range hexes {
		norm, err := colour.NormalizeHex(h)
		if err != nil {
			parts = append(parts, h)
			continue
		}
		name, _ := colour.NameFor(norm)
		parts = append(parts, fmt.Sprintf("%s (%s)", name, norm))
	}
	return strings.Join(parts, ", ")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
