package recommend

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrUnparseable is returned when a model reply holds no outfit JSON.
var ErrUnparseable = errors.New("model reply is not a valid outfit")

// Piece is one recommended garment.
type Piece struct {
	Summary string `json:"summary"`
	Color   string `json:"color"`
	Source  string `json:"source"`
}

// Suggestion is a structured outfit recommendation.
type Suggestion struct {
	Top         Piece   `json:"top"`
	Bottom      Piece   `json:"bottom"`
	Footwear    Piece   `json:"footwear"`
	Accessories []Piece `json:"accessories"`
	Outerwear   *Piece  `json:"outerwear,omitempty"`
	StyleNotes  string  `json:"styleNotes"`
}

var fencedJSON = regexp.MustCompile("(?is)```(?:json)?\\s*(.*?)```")

// ParseSuggestion decodes a model reply, accepting bare JSON or JSON inside a
// markdown code fence.
func ParseSuggestion(text string) (Suggestion, error) {
	candidates := []string{strings.TrimSpace(text)}
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	for _, c := range candidates {
		var s Suggestion
		if err := json.Unmarshal([]byte(c), &s); err != nil {
			continue
		}
		if s.Top.Summary == "" && s.Bottom.Summary == "" && s.Footwear.Summary == "" {
			continue
		}
		for _, p := range []*Piece{&s.Top, &s.Bottom, &s.Footwear, s.Outerwear} {
			normaliseSource(p)
		}
		for i := range s.Accessories {
			normaliseSource(&s.Accessories[i])
		}
		return s, nil
	}
	return Suggestion{}, ErrUnparseable
}

func normaliseSource(p *Piece) {
	if p == nil {
		return
	}
	if p.Source != "closet" {
		p.Source = "online"
	}
}

var (
	casualTop      = regexp.MustCompile(`(?i)(tee|t-shirt|tank|hoodie|sweatshirt|recommended top)`)
	casualBottom   = regexp.MustCompile(`(?i)(short|jogger|jean|denim|track|recommended bottom)`)
	casualFootwear = regexp.MustCompile(`(?i)(sneaker|trainer|flip|sandal|slide|recommended footwear)`)
)

var formalMale = Suggestion{
	Top:         Piece{Summary: "Charcoal spread-collar dress shirt with crisp placket", Color: "charcoal", Source: "online"},
	Bottom:      Piece{Summary: "Navy tailored trousers with pressed crease", Color: "navy", Source: "online"},
	Footwear:    Piece{Summary: "Black polished leather oxford shoes", Color: "black", Source: "online"},
	Accessories: []Piece{{Summary: "Minimal stainless watch or slim leather folio", Color: "silver", Source: "closet"}},
	Outerwear:   &Piece{Summary: "Optional navy blazer to sharpen boardroom presence", Color: "navy", Source: "online"},
	StyleNotes:  "Keep it boardroom-ready with a crisp shirt, pressed trousers, and polished Oxfords. Layer a blazer when the agenda leans formal.",
}

var formalFemale = Suggestion{
	Top:         Piece{Summary: "Ivory structured blazer layered over silk blouse", Color: "ivory", Source: "online"},
	Bottom:      Piece{Summary: "Graphite pencil skirt with satin waistband", Color: "graphite", Source: "online"},
	Footwear:    Piece{Summary: "Black pointed heel with supportive footbed", Color: "black", Source: "online"},
	Accessories: []Piece{{Summary: "Structured tote or minimal jewelry", Color: "gold", Source: "closet"}},
	StyleNotes:  "Compose a refined silhouette with a blazer-and-skirt pairing, elevated heels, and understated accessories suitable for executive meetings.",
}

// ApplyOccasion replaces casual core pieces with a business outfit when the
// occasion calls for formal dress. The model's accessories are kept.
func ApplyOccasion(s Suggestion, occasion, gender string) Suggestion {
	if !NeedsFormalDressCode(occasion) {
		return s
	}
	if !casualTop.MatchString(s.Top.Summary) &&
		!casualBottom.MatchString(s.Bottom.Summary) &&
		!casualFootwear.MatchString(s.Footwear.Summary) {
		return s
	}

	fallback := formalMale
	if strings.EqualFold(gender, "female") {
		fallback = formalFemale
	}
	out := fallback
	out.Accessories = append([]Piece(nil), fallback.Accessories...)
	if len(s.Accessories) > 0 {
		out.Accessories = s.Accessories
	}
	if fallback.Outerwear != nil {
		ow := *fallback.Outerwear
		out.Outerwear = &ow
	}
	return out
}
