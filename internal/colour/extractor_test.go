package colour

import (
	"image"
	"image/color"
	"reflect"
	"testing"
)

// newTestRaster builds an unscaled raster from a per-pixel function.
func newTestRaster(t *testing.T, w, h int, fill func(x, y int) color.NRGBA) *Raster {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, fill(x, y))
		}
	}
	r, err := NewRaster(img, 0)
	if err != nil {
		t.Fatalf("NewRaster() error: %v", err)
	}
	return r
}

func squareOn(bg, fg color.NRGBA, size, square int) func(x, y int) color.NRGBA {
	lo := (size - square) / 2
	hi := lo + square
	return func(x, y int) color.NRGBA {
		if x >= lo && x < hi && y >= lo && y < hi {
			return fg
		}
		return bg
	}
}

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	red   = color.NRGBA{R: 255, A: 255}
)

func TestNewExtractor(t *testing.T) {
	tests := []struct {
		name    string
		alg     Algorithm
		want    string
		wantErr bool
	}{
		{name: "default", alg: "", want: "*colour.EnhancedExtractor"},
		{name: "enhanced", alg: AlgorithmEnhanced, want: "*colour.EnhancedExtractor"},
		{name: "legacy", alg: AlgorithmLegacy, want: "*colour.LegacyExtractor"},
		{name: "kmeans", alg: AlgorithmKMeans, want: "*colour.KMeansExtractor"},
		{name: "unknown", alg: "median-cut", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := NewExtractor(tt.alg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("NewExtractor() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewExtractor() error: %v", err)
			}
			if got := reflect.TypeOf(ex).String(); got != tt.want {
				t.Errorf("NewExtractor(%q) = %s, want %s", tt.alg, got, tt.want)
			}
		})
	}
}

func TestExtractorConfigValidate(t *testing.T) {
	cfg := DefaultExtractorConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	cfg.MaxEdge = 8
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted max edge 8")
	}
	cfg = DefaultExtractorConfig()
	cfg.Algorithm = "nope"
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() accepted unknown algorithm")
	}
}

func TestEnhancedRedSquareOnWhite(t *testing.T) {
	r := newTestRaster(t, 100, 100, squareOn(white, red, 100, 20))

	bg, ok := EstimateBackground(r)
	if !ok {
		t.Fatal("EstimateBackground() found no background")
	}
	if bg != (RGB{R: 240, G: 240, B: 240}) {
		t.Errorf("EstimateBackground() = %s, want #f0f0f0", bg.Hex())
	}

	p, err := NewEnhancedExtractor().Extract(r)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if p.Len() == 0 {
		t.Fatal("Extract() returned no colours")
	}
	if d := Distance(p.Colours[0], RGB{R: 255}); d > 20 {
		t.Errorf("first colour = %s, distance %.1f from #ff0000", p.Colours[0].Hex(), d)
	}
	if p.Colours[0] != (RGB{R: 248}) {
		t.Errorf("first colour = %s, want quantised #f80000", p.Colours[0].Hex())
	}
	for _, c := range p.Colours {
		if IsFlatOrExtreme(c) {
			t.Errorf("white background leaked into palette: %s", c.Hex())
		}
	}
}

func TestEnhancedSuppressesEstimatedBackground(t *testing.T) {
	blue := color.NRGBA{B: 200, A: 255}
	r := newTestRaster(t, 80, 80, squareOn(blue, red, 80, 24))

	p, err := NewEnhancedExtractor().Extract(r)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if p.Len() != 1 {
		t.Fatalf("Extract() returned %d colours (%v), want only the garment", p.Len(), p.ToHex())
	}
	if p.Colours[0] != (RGB{R: 248}) {
		t.Errorf("colour = %s, want #f80000", p.Colours[0].Hex())
	}
	if p.Weight(0) != 100 {
		t.Errorf("weight = %v, want 100", p.Weight(0))
	}
}

func TestEnhancedEmptyWhenEverythingSuppressed(t *testing.T) {
	tests := []struct {
		name string
		fill func(x, y int) color.NRGBA
	}{
		{name: "plain white", fill: func(int, int) color.NRGBA { return white }},
		{name: "transparent", fill: func(int, int) color.NRGBA { return color.NRGBA{R: 200, A: 0} }},
		{name: "skin tone subject", fill: squareOn(white, color.NRGBA{R: 220, G: 170, B: 140, A: 255}, 60, 20)},
		{name: "near black", fill: func(int, int) color.NRGBA { return color.NRGBA{R: 5, G: 5, B: 5, A: 255} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRaster(t, 60, 60, tt.fill)
			p, err := NewEnhancedExtractor().Extract(r)
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if p.Len() != 0 {
				t.Errorf("Extract() = %v, want empty palette", p.ToHex())
			}
		})
	}
}

func stripes(x, y int) color.NRGBA {
	if x < 15 || x >= 75 || y < 15 || y >= 75 {
		return white
	}
	switch (x / 10) % 3 {
	case 0:
		return color.NRGBA{R: 30, G: 60, B: 150, A: 255}
	case 1:
		return color.NRGBA{R: 150, G: 30, B: 40, A: 255}
	default:
		return color.NRGBA{R: 40, G: 120, B: 60, A: 255}
	}
}

func TestExtractorsAreDeterministic(t *testing.T) {
	r := newTestRaster(t, 90, 90, stripes)

	for _, alg := range ValidAlgorithms() {
		t.Run(string(alg), func(t *testing.T) {
			ex, err := NewExtractor(alg)
			if err != nil {
				t.Fatalf("NewExtractor() error: %v", err)
			}
			first, err := ex.Extract(r)
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			second, err := ex.Extract(r)
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if !reflect.DeepEqual(first, second) {
				t.Errorf("Extract() not deterministic: %v vs %v", first.ToHex(), second.ToHex())
			}
			if first.Len() > MaxDominantColours {
				t.Errorf("Extract() returned %d colours, max %d", first.Len(), MaxDominantColours)
			}
		})
	}
}

func TestEnhancedWeightsArePercentages(t *testing.T) {
	r := newTestRaster(t, 90, 90, stripes)
	p, err := NewEnhancedExtractor().Extract(r)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if p.Len() != 3 {
		t.Fatalf("Extract() returned %v, want the three stripe colours", p.ToHex())
	}

	total := 0.0
	for i := range p.Colours {
		total += p.Weight(i)
		if i > 0 && p.Weight(i) > p.Weight(i-1) {
			t.Errorf("weights not descending: %v", p.Weights)
		}
	}
	if !approx(total, 100, 1e-6) {
		t.Errorf("weights sum to %v, want 100", total)
	}
}

func TestExtractNilRaster(t *testing.T) {
	for _, alg := range ValidAlgorithms() {
		ex, _ := NewExtractor(alg)
		if _, err := ex.Extract(nil); err == nil {
			t.Errorf("%s: Extract(nil) expected error", alg)
		}
	}
}

func TestLegacyExtractor(t *testing.T) {
	green := color.NRGBA{G: 255, A: 255}
	r := newTestRaster(t, 10, 10, func(_, y int) color.NRGBA {
		if y < 5 {
			return red
		}
		return green
	})

	p, err := NewLegacyExtractor().Extract(r)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	want := []string{"#ff0000", "#00ff00"}
	if !reflect.DeepEqual(p.ToHex(), want) {
		t.Fatalf("ToHex() = %v, want %v", p.ToHex(), want)
	}
	for i := range want {
		if p.Weight(i) != 50 {
			t.Errorf("Weight(%d) = %v, want 50", i, p.Weight(i))
		}
	}
}

func TestLegacyKeepsBackground(t *testing.T) {
	r := newTestRaster(t, 20, 20, func(int, int) color.NRGBA { return white })
	p, err := NewLegacyExtractor().Extract(r)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if p.Len() != 1 || p.Colours[0] != (RGB{R: 255, G: 255, B: 255}) {
		t.Errorf("Extract() = %v, want only #ffffff", p.ToHex())
	}
}

func TestLegacyWeightsStayWithinHundred(t *testing.T) {
	tests := []struct {
		name string
		w, h int
		fill func(x, y int) color.NRGBA
		want []float64
	}{
		{
			name: "pixel count not a multiple of the step",
			w:    11, h: 1,
			fill: func(int, int) color.NRGBA { return red },
			want: []float64{100},
		},
		{
			name: "transparent samples excluded",
			w:    10, h: 4,
			fill: func(_, y int) color.NRGBA {
				if y == 0 {
					return color.NRGBA{}
				}
				return red
			},
			want: []float64{100},
		},
		{
			name: "uneven split",
			w:    10, h: 3,
			fill: func(_, y int) color.NRGBA {
				if y == 2 {
					return white
				}
				return red
			},
			want: []float64{200.0 / 3, 100.0 / 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRaster(t, tt.w, tt.h, tt.fill)
			p, err := NewLegacyExtractor().Extract(r)
			if err != nil {
				t.Fatalf("Extract() error: %v", err)
			}
			if p.Len() != len(tt.want) {
				t.Fatalf("Extract() = %v, want %d colours", p.ToHex(), len(tt.want))
			}
			total := 0.0
			for i, w := range tt.want {
				if !approx(p.Weight(i), w, 1e-9) {
					t.Errorf("Weight(%d) = %v, want %v", i, p.Weight(i), w)
				}
				total += p.Weight(i)
			}
			if total > 100+1e-9 {
				t.Errorf("weights sum to %v, want at most 100", total)
			}
		})
	}
}

func TestLegacyAllTransparent(t *testing.T) {
	r := newTestRaster(t, 10, 10, func(int, int) color.NRGBA { return color.NRGBA{} })
	p, err := NewLegacyExtractor().Extract(r)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if p.Len() != 0 {
		t.Errorf("Extract() = %v, want empty palette", p.ToHex())
	}
}

func TestMergeBuckets(t *testing.T) {
	in := []weightedColour{
		{rgb: RGB{R: 200, G: 0, B: 0}, weight: 2},
		{rgb: RGB{R: 0, G: 0, B: 200}, weight: 5},
		{rgb: RGB{R: 208, G: 8, B: 0}, weight: 1},
	}
	got := mergeBuckets(in, mergeDistance)
	want := []weightedColour{
		{rgb: RGB{R: 200, G: 0, B: 0}, weight: 3},
		{rgb: RGB{R: 0, G: 0, B: 200}, weight: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mergeBuckets() = %+v, want %+v", got, want)
	}
}

func TestRankClustersTieKeepsFirstSeen(t *testing.T) {
	in := []weightedColour{
		{rgb: RGB{R: 8}, weight: 1},
		{rgb: RGB{G: 8}, weight: 1},
		{rgb: RGB{B: 8}, weight: 3},
	}
	p := rankClusters(in, 2)
	want := []string{"#000008", "#080000"}
	if !reflect.DeepEqual(p.ToHex(), want) {
		t.Errorf("rankClusters() = %v, want %v", p.ToHex(), want)
	}
}

func TestScaledSize(t *testing.T) {
	tests := []struct {
		w, h, edge int
		wantW      int
		wantH      int
	}{
		{400, 100, 200, 200, 50},
		{100, 400, 200, 50, 200},
		{150, 100, 200, 150, 100},
		{1000, 1, 200, 200, 1},
		{300, 300, 0, 300, 300},
	}
	for _, tt := range tests {
		w, h := scaledSize(tt.w, tt.h, tt.edge)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("scaledSize(%d, %d, %d) = %dx%d, want %dx%d", tt.w, tt.h, tt.edge, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestNewRasterFromPix(t *testing.T) {
	if _, err := NewRasterFromPix(2, 2, make([]uint8, 15)); err == nil {
		t.Error("NewRasterFromPix() accepted short buffer")
	}
	if _, err := NewRasterFromPix(0, 2, nil); err == nil {
		t.Error("NewRasterFromPix() accepted zero width")
	}
	r, err := NewRasterFromPix(1, 1, []uint8{1, 2, 3, 4})
	if err != nil {
		t.Fatalf("NewRasterFromPix() error: %v", err)
	}
	if got := r.At(0, 0); got != (RGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("At(0, 0) = %+v", got)
	}
}
