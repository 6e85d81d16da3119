package colour

import (
	"errors"
	"testing"
)

func TestNameFor(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{hex: "#000000", want: "Black"},
		{hex: "#FFFFFF", want: "White"},
		{hex: "#1f2937", want: "Charcoal"},
		{hex: "000081", want: "Navy"},
		{hex: "#f5f5f4", want: "Off White"},
		{hex: "#dc2627", want: "Red"},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			got, err := NameFor(tt.hex)
			if err != nil {
				t.Fatalf("NameFor(%q) error: %v", tt.hex, err)
			}
			if got != tt.want {
				t.Errorf("NameFor(%q) = %q, want %q", tt.hex, got, tt.want)
			}
		})
	}
}

func TestNameForInvalid(t *testing.T) {
	for _, in := range []string{"", "#12345", "red", "#12345g"} {
		if _, err := NameFor(in); !errors.Is(err, ErrInvalidHex) {
			t.Errorf("NameFor(%q) error = %v, want ErrInvalidHex", in, err)
		}
	}
}

func TestNameForIsTotal(t *testing.T) {
	for v := 0; v < 256; v += 3 {
		rgb := RGB{R: uint8(v), G: uint8(255 - v), B: uint8(v / 2)}
		name, err := NameFor(rgb.Hex())
		if err != nil || name == "" || name == "Unknown" {
			t.Fatalf("NameFor(%s) = %q, %v", rgb.Hex(), name, err)
		}
	}
}

func TestNameForPerceptual(t *testing.T) {
	name, d, err := NameForPerceptual("#000000")
	if err != nil {
		t.Fatalf("NameForPerceptual() error: %v", err)
	}
	if name != "Black" || d != 0 {
		t.Errorf("NameForPerceptual(#000000) = %q, %v, want Black, 0", name, d)
	}

	name, _, err = NameForPerceptual("#2563eb")
	if err != nil {
		t.Fatalf("NameForPerceptual() error: %v", err)
	}
	if name != "Royal Blue" && name != "Blue" {
		t.Errorf("NameForPerceptual(#2563eb) = %q, want a blue", name)
	}

	if _, _, err := NameForPerceptual("nope"); !errors.Is(err, ErrInvalidHex) {
		t.Errorf("NameForPerceptual(nope) error = %v, want ErrInvalidHex", err)
	}
}

func TestHexForName(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{name: "Navy", want: "#000080", wantOK: true},
		{name: "navy blue", want: "#000080", wantOK: true},
		{name: "Off-White", want: "#F5F5F5", wantOK: true},
		{name: "off white", want: "#F5F5F5", wantOK: true},
		{name: "  CHARCOAL ", want: "#1F2937", wantOK: true},
		{name: "Forest Green", want: "#065F46", wantOK: true},
		{name: "ultraviolet", wantOK: false},
		{name: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HexForName(tt.name)
			if ok != tt.wantOK {
				t.Fatalf("HexForName(%q) ok = %v, want %v", tt.name, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("HexForName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestExactName(t *testing.T) {
	if name, ok := ExactName("#ffffff"); !ok || name != "White" {
		t.Errorf("ExactName(#ffffff) = %q, %v, want White", name, ok)
	}
	if name, ok := ExactName("#556B2F"); !ok || name != "Army Green" {
		t.Errorf("ExactName(#556B2F) = %q, %v, want Army Green", name, ok)
	}
	if _, ok := ExactName("#123456"); ok {
		t.Error("ExactName(#123456) matched")
	}
}

func TestFindInText(t *testing.T) {
	got := FindInText("A navy blue blazer with off-white trousers, NAVY socks.")
	want := []string{"Navy Blue", "Off White", "Navy"}
	if len(got) != len(want) {
		t.Fatalf("FindInText() = %+v, want %v", got, want)
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Errorf("FindInText()[%d] = %q, want %q", i, got[i].Name, want[i])
		}
	}

	if got := FindInText("plain words only"); len(got) != 0 {
		t.Errorf("FindInText() = %+v, want none", got)
	}
	if got := FindInText("redundant tangerine"); len(got) != 0 {
		t.Errorf("FindInText() matched inside words: %+v", got)
	}
}

func TestBaseColoursIsCopy(t *testing.T) {
	a := BaseColours()
	a[0].Name = "changed"
	if BaseColours()[0].Name != "Black" {
		t.Error("BaseColours() exposes internal table")
	}
}
