package recommend

import (
	"context"
	"errors"
	"strings"
	"testing"

	"google.golang.org/genai"

	"github.com/kalil1010/ai-stylist/internal/colour"
	"github.com/kalil1010/ai-stylist/internal/outfit"
)

func TestNeedsFormalDressCode(t *testing.T) {
	tests := []struct {
		occasion string
		want     bool
	}{
		{"Board meeting at 9", true},
		{"job INTERVIEW", true},
		{"investor pitch", true},
		{"office party", true},
		{"beach day", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := NeedsFormalDressCode(tt.occasion); got != tt.want {
			t.Errorf("NeedsFormalDressCode(%q) = %v, want %v", tt.occasion, got, tt.want)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	rich, _ := colour.Rich("#000080")
	plan := outfit.NewPlan()
	_ = plan.Assign(outfit.SlotTop, "#000080")

	prompt := BuildPrompt(Request{
		Occasion:      "client meeting",
		Weather:       Weather{Temperature: 18.5, Condition: "cloudy", Humidity: 60, Location: "Cairo"},
		Profile:       &Profile{Gender: "female", Age: 31, FavoriteColors: []string{"navy", "white"}},
		DominantHexes: []string{"#000080"},
		Palette:       &rich,
		Plan:          plan,
		Closet:        []ClosetItem{{ID: "c1", GarmentType: "bottom", Description: "grey trousers", DominantColors: []string{"#6b7280"}}},
	})

	for _, want := range []string{
		"Occasion: client meeting",
		"Weather: 18.5 degC, cloudy in Cairo",
		"Humidity: 60%",
		"- Gender: female",
		"- Age: 31",
		"- Favorite Colors: navy, white",
		"- Favorite Styles: none specified",
		formalGuidance,
		"Garment colours: Navy (#000080)",
		"- Complementary:",
		"- top: Navy (#000080)",
		"- [bottom] grey trousers (colours: Gray (#6B7280))",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("BuildPrompt() missing %q\n%s", want, prompt)
		}
	}
}

func TestBuildPromptCasualDefaults(t *testing.T) {
	prompt := BuildPrompt(Request{Occasion: "picnic", Weather: Weather{Condition: "sunny"}})
	if !strings.Contains(prompt, casualGuidance) {
		t.Error("BuildPrompt() missing casual guidance")
	}
	if !strings.Contains(prompt, "- Gender: not specified") {
		t.Error("BuildPrompt() missing profile defaults")
	}
	if !strings.Contains(prompt, "Closet Inventory: No items provided.") {
		t.Error("BuildPrompt() missing empty closet line")
	}
}

func TestParseSuggestion(t *testing.T) {
	body := `{"top":{"summary":"White oxford shirt","color":"white","source":"closet"},` +
		`"bottom":{"summary":"Navy chinos","color":"navy","source":"shop"},` +
		`"footwear":{"summary":"Brown loafers","color":"brown","source":"online"},` +
		`"accessories":[],"styleNotes":"Tuck the shirt."}`

	for name, text := range map[string]string{
		"bare":   body,
		"fenced": "Here you go:\n```json\n" + body + "\n```",
	} {
		t.Run(name, func(t *testing.T) {
			s, err := ParseSuggestion(text)
			if err != nil {
				t.Fatalf("ParseSuggestion() error: %v", err)
			}
			if s.Top.Summary != "White oxford shirt" || s.Top.Source != "closet" {
				t.Errorf("Top = %+v", s.Top)
			}
			if s.Bottom.Source != "online" {
				t.Errorf("Bottom.Source = %q, want online", s.Bottom.Source)
			}
			if s.Outerwear != nil {
				t.Errorf("Outerwear = %+v, want nil", s.Outerwear)
			}
		})
	}

	if _, err := ParseSuggestion("I think you should wear blue."); !errors.Is(err, ErrUnparseable) {
		t.Errorf("ParseSuggestion(prose) error = %v, want ErrUnparseable", err)
	}
}

func TestApplyOccasion(t *testing.T) {
	casual := Suggestion{
		Top:         Piece{Summary: "Graphic tee"},
		Bottom:      Piece{Summary: "Chinos"},
		Footwear:    Piece{Summary: "Loafers"},
		Accessories: []Piece{{Summary: "Watch", Source: "closet"}},
	}

	if got := ApplyOccasion(casual, "brunch", ""); got.Top.Summary != "Graphic tee" {
		t.Errorf("ApplyOccasion(brunch) replaced the outfit: %+v", got)
	}

	got := ApplyOccasion(casual, "board meeting", "female")
	if got.Top.Summary != formalFemale.Top.Summary {
		t.Errorf("Top = %q, want formal fallback", got.Top.Summary)
	}
	if len(got.Accessories) != 1 || got.Accessories[0].Summary != "Watch" {
		t.Errorf("Accessories = %+v, want the model's", got.Accessories)
	}

	male := ApplyOccasion(Suggestion{Top: Piece{Summary: "Shirt"}, Bottom: Piece{Summary: "Denim jeans"}}, "interview", "")
	if male.Outerwear == nil || male.Outerwear == formalMale.Outerwear {
		t.Errorf("Outerwear = %v, want a copy of the fallback blazer", male.Outerwear)
	}
	if len(male.Accessories) != 1 {
		t.Errorf("Accessories = %+v, want fallback accessories", male.Accessories)
	}

	formal := Suggestion{Top: Piece{Summary: "Dress shirt"}, Bottom: Piece{Summary: "Wool trousers"}, Footwear: Piece{Summary: "Oxfords"}}
	if got := ApplyOccasion(formal, "office", ""); got.Top.Summary != "Dress shirt" {
		t.Errorf("ApplyOccasion() replaced an already formal outfit")
	}
}

type fakeModels struct {
	reply    string
	err      error
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, _ string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.contents = contents
	f.config = config
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: f.reply}}},
		}},
	}, nil
}

func TestClientSuggest(t *testing.T) {
	fake := &fakeModels{reply: `{"top":{"summary":"Hoodie","color":"grey","source":"closet"},"bottom":{"summary":"Joggers","color":"black","source":"closet"},"footwear":{"summary":"Sneakers","color":"white","source":"closet"},"accessories":[],"styleNotes":"Comfy."}`}
	c := newClient(fake, "test-model", nil)

	s, err := c.Suggest(context.Background(), Request{Occasion: "corporate pitch", Weather: Weather{Condition: "rain"}})
	if err != nil {
		t.Fatalf("Suggest() error: %v", err)
	}
	if s.Top.Summary != formalMale.Top.Summary {
		t.Errorf("Suggest() top = %q, want formal fallback", s.Top.Summary)
	}
	if fake.config.ResponseMIMEType != "application/json" {
		t.Errorf("ResponseMIMEType = %q", fake.config.ResponseMIMEType)
	}
	if fake.config.SystemInstruction == nil {
		t.Error("SystemInstruction not set")
	}

	if _, err := c.Suggest(context.Background(), Request{}); err == nil {
		t.Error("Suggest() accepted an empty request")
	}

	fake.err = errors.New("quota exceeded")
	if _, err := c.Suggest(context.Background(), Request{Occasion: "x", Weather: Weather{Condition: "sun"}}); err == nil {
		t.Error("Suggest() ignored model error")
	}
}

func TestClientChat(t *testing.T) {
	fake := &fakeModels{reply: "Try navy chinos."}
	c := newClient(fake, "test-model", nil)

	reply, err := c.Chat(context.Background(), ChatRequest{
		History:     []Message{{Role: "user", Text: "hi"}, {Role: "assistant", Text: "hello"}},
		Message:     "What goes with a rust jacket?",
		ImageColors: []string{"#7c2d12"},
	})
	if err != nil {
		t.Fatalf("Chat() error: %v", err)
	}
	if reply != "Try navy chinos." {
		t.Errorf("Chat() = %q", reply)
	}
	if len(fake.contents) != 3 {
		t.Fatalf("sent %d contents, want 3", len(fake.contents))
	}
	if fake.contents[1].Role != "model" {
		t.Errorf("history role = %q, want model", fake.contents[1].Role)
	}
	last := fake.contents[2].Parts[0].Text
	if !strings.Contains(last, "Rust (#7C2D12)") {
		t.Errorf("chat prompt missing image colours:\n%s", last)
	}

	if _, err := c.Chat(context.Background(), ChatRequest{Message: "  "}); err == nil {
		t.Error("Chat() accepted empty message")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient(context.Background(), Options{Backend: BackendGeminiAPI}); err == nil {
		t.Error("NewClient() without API key expected error")
	}
}
