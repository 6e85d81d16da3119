package colour

import (
	"math"
	"testing"
)

func TestRGBToHSL(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want HSL
	}{
		{name: "red", rgb: RGB{R: 255}, want: HSL{H: 0, S: 1, L: 0.5}},
		{name: "green", rgb: RGB{G: 255}, want: HSL{H: 120, S: 1, L: 0.5}},
		{name: "blue", rgb: RGB{B: 255}, want: HSL{H: 240, S: 1, L: 0.5}},
		{name: "magenta", rgb: RGB{R: 255, B: 255}, want: HSL{H: 300, S: 1, L: 0.5}},
		{name: "black", rgb: RGB{}, want: HSL{H: 0, S: 0, L: 0}},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: HSL{H: 0, S: 0, L: 1}},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: HSL{H: 0, S: 0, L: 128.0 / 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RGBToHSL(tt.rgb)
			if !approx(got.H, tt.want.H, 1e-9) || !approx(got.S, tt.want.S, 1e-9) || !approx(got.L, tt.want.L, 1e-9) {
				t.Errorf("RGBToHSL(%+v) = %+v, want %+v", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestRGBToHSLNeverNaN(t *testing.T) {
	for v := 0; v < 256; v += 5 {
		got := RGBToHSL(RGB{R: uint8(v), G: uint8(v), B: uint8(v)})
		if math.IsNaN(got.H) || math.IsNaN(got.S) || math.IsNaN(got.L) {
			t.Fatalf("RGBToHSL(grey %d) produced NaN: %+v", v, got)
		}
		if got.H != 0 || got.S != 0 {
			t.Errorf("RGBToHSL(grey %d) = %+v, want hue 0 and saturation 0", v, got)
		}
	}
}

func TestHSLRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 13 {
				in := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				hsl := RGBToHSL(in)
				out := HSLToRGB(hsl.H, hsl.S, hsl.L)
				if absInt(int(in.R)-int(out.R)) > 1 || absInt(int(in.G)-int(out.G)) > 1 || absInt(int(in.B)-int(out.B)) > 1 {
					t.Fatalf("HSL round trip %+v -> %+v -> %+v", in, hsl, out)
				}
			}
		}
	}
}

func TestHSLToRGBClampsInput(t *testing.T) {
	if got := HSLToRGB(0, 2, 0.5); got != (RGB{R: 255}) {
		t.Errorf("HSLToRGB(0, 2, 0.5) = %+v, want pure red", got)
	}
	if got := HSLToRGB(0, 0, 1.5); got != (RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("HSLToRGB(0, 0, 1.5) = %+v, want white", got)
	}
	if got := HSLToRGB(-120, 1, 0.5); got != (RGB{B: 255}) {
		t.Errorf("HSLToRGB(-120, 1, 0.5) = %+v, want blue", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{359, 359},
		{360, 0},
		{-30, 330},
		{720, 0},
		{-720, 0},
		{450, 90},
		{-1, 359},
	}
	for _, tt := range tests {
		if got := Wrap(tt.in); got != tt.want {
			t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	for n := -1080; n <= 1080; n += 7 {
		w := Wrap(float64(n))
		if w < 0 || w >= 360 {
			t.Fatalf("Wrap(%d) = %v, out of range", n, w)
		}
		if w2 := Wrap(float64(n + 360)); w2 != w {
			t.Fatalf("Wrap(%d) = %v but Wrap(%d) = %v", n, w, n+360, w2)
		}
	}

	if w := Wrap(-1e-15); w < 0 || w >= 360 {
		t.Errorf("Wrap(-1e-15) = %v, out of range", w)
	}
}

func TestHueDistance(t *testing.T) {
	tests := []struct {
		h1, h2, want float64
	}{
		{0, 180, 180},
		{10, 350, 20},
		{350, 10, 20},
		{90, 90, 0},
		{0, 270, 90},
	}
	for _, tt := range tests {
		if got := HueDistance(tt.h1, tt.h2); got != tt.want {
			t.Errorf("HueDistance(%v, %v) = %v, want %v", tt.h1, tt.h2, got, tt.want)
		}
	}
}

func TestDistance(t *testing.T) {
	if got := Distance(RGB{}, RGB{R: 3, G: 4}); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
	if got := Distance(RGB{R: 10, G: 20, B: 30}, RGB{R: 10, G: 20, B: 30}); got != 0 {
		t.Errorf("Distance to self = %v, want 0", got)
	}
}

func TestContrastRatio(t *testing.T) {
	got := ContrastRatio(RGB{}, RGB{R: 255, G: 255, B: 255})
	if !approx(got, 21, 0.01) {
		t.Errorf("ContrastRatio(black, white) = %v, want 21", got)
	}
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}
