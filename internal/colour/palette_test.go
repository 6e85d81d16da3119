package colour

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "red", rgb: RGB{R: 255, G: 0, B: 0}, want: "#ff0000"},
		{name: "green", rgb: RGB{R: 0, G: 255, B: 0}, want: "#00ff00"},
		{name: "blue", rgb: RGB{R: 0, G: 0, B: 255}, want: "#0000ff"},
		{name: "zero padded", rgb: RGB{R: 1, G: 2, B: 3}, want: "#010203"},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: "#808080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %s, want %s", got, tt.want)
			}
			if got := tt.rgb.DisplayHex(); got != strings.ToUpper(tt.want) {
				t.Errorf("DisplayHex() = %s, want %s", got, strings.ToUpper(tt.want))
			}
		})
	}
}

func TestRGBString(t *testing.T) {
	if got := (RGB{R: 255, G: 0, B: 0}).String(); got != "rgb(255, 0, 0)" {
		t.Errorf("String() = %s, want rgb(255, 0, 0)", got)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "with hash", input: "#1f2937", want: RGB{R: 0x1f, G: 0x29, B: 0x37}},
		{name: "without hash", input: "1F2937", want: RGB{R: 0x1f, G: 0x29, B: 0x37}},
		{name: "mixed case", input: "#AbCdEf", want: RGB{R: 0xab, G: 0xcd, B: 0xef}},
		{name: "surrounding space", input: "  #000000 ", want: RGB{}},
		{name: "short form", input: "#fff", wantErr: true},
		{name: "eight digits", input: "#ff000000", wantErr: true},
		{name: "not hex", input: "#gg0000", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "double hash", input: "##ff0000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidHex) {
					t.Fatalf("ParseHex(%q) error = %v, want ErrInvalidHex", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	inputs := []string{"#000000", "#FFFFFF", "#1f2937", "abcdef", "#7C2D12", "00ff7f"}
	for _, in := range inputs {
		rgb, err := ParseHex(in)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", in, err)
		}
		want, err := NormalizeHex(in)
		if err != nil {
			t.Fatalf("NormalizeHex(%q): %v", in, err)
		}
		if got := strings.ToUpper(rgb.Hex()); got != want {
			t.Errorf("round trip of %q = %s, want %s", in, got, want)
		}
	}

	// Exhaustive over one channel, sparse over the others.
	for v := 0; v < 256; v++ {
		rgb := RGB{R: uint8(v), G: uint8(255 - v), B: uint8(v * 7 % 256)}
		back, err := ParseHex(rgb.Hex())
		if err != nil {
			t.Fatalf("ParseHex(%s): %v", rgb.Hex(), err)
		}
		if back != rgb {
			t.Errorf("ParseHex(%s) = %+v, want %+v", rgb.Hex(), back, rgb)
		}
	}
}

func TestPaletteAccessors(t *testing.T) {
	p := NewPalette(
		[]RGB{{R: 255}, {G: 255}},
		[]float64{75, 25},
	)

	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}

	hexes := p.ToHex()
	if hexes[0] != "#ff0000" || hexes[1] != "#00ff00" {
		t.Errorf("ToHex() = %v", hexes)
	}

	if _, err := p.Get(2); err == nil {
		t.Error("Get(2) expected error for out of range index")
	}
	if c, err := p.Get(1); err != nil || c != (RGB{G: 255}) {
		t.Errorf("Get(1) = %+v, %v", c, err)
	}

	if p.Weight(5) != 0 {
		t.Errorf("Weight(5) = %v, want 0", p.Weight(5))
	}

	pct := p.Percentages()
	if pct["#ff0000"] != 75 {
		t.Errorf("Percentages()[#ff0000] = %v, want 75", pct["#ff0000"])
	}

	count := 0
	for range p.All() {
		count++
	}
	if count != 2 {
		t.Errorf("All() yielded %d colours, want 2", count)
	}
}

func TestPaletteToJSON(t *testing.T) {
	p := NewPalette([]RGB{{}}, []float64{100})

	data, err := p.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error: %v", err)
	}

	var decoded PaletteJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("ToJSON() produced invalid JSON: %v", err)
	}
	if decoded.Count != 1 {
		t.Errorf("count = %d, want 1", decoded.Count)
	}
	if decoded.Colors[0].Hex != "#000000" || decoded.Colors[0].Name != "Black" {
		t.Errorf("colors[0] = %+v", decoded.Colors[0])
	}
}

func TestPaletteStringEmpty(t *testing.T) {
	p := NewPalette(nil, nil)
	if !strings.Contains(p.String(), "No dominant colours") {
		t.Errorf("String() = %q", p.String())
	}
}
