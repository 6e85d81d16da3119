package colour

import "math"

// Suppression thresholds. These were tuned against product photos of single
// garments on plain backgrounds.
const (
	alphaThreshold        = 128
	maxBrightness         = 240
	minBrightness         = 10
	flatGreySpread        = 10
	flatGreyBrightness    = 210
	backgroundDistance    = 65
	backgroundHueDistance = 18
	backgroundHueMaxSat   = 0.2
	borderSampleDivisor   = 50
)

// EstimateBackground guesses the background colour from a ring of border pixels.
//
// The top and bottom rows are sampled every max(1, W/50) pixels and the left and
// right columns every max(1, H/50) pixels. Samples are quantised to 4 bits per
// channel and the most frequent bucket wins; on a tie the bucket seen first wins.
// ok is false when every border sample is transparent.
func EstimateBackground(r *Raster) (RGB, bool) {
	if r == nil || r.Width <= 0 || r.Height <= 0 {
		return RGB{}, false
	}

	counts := make(map[uint32]int)
	var order []uint32
	add := func(x, y int) {
		px := r.At(x, y)
		if px.A < alphaThreshold {
			return
		}
		key := uint32(px.R>>4)<<16 | uint32(px.G>>4)<<8 | uint32(px.B>>4)
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	xStep := max(1, r.Width/borderSampleDivisor)
	for x := 0; x < r.Width; x += xStep {
		add(x, 0)
		add(x, r.Height-1)
	}
	yStep := max(1, r.Height/borderSampleDivisor)
	for y := 0; y < r.Height; y += yStep {
		add(0, y)
		add(r.Width-1, y)
	}

	if len(order) == 0 {
		return RGB{}, false
	}

	best, bestCount := order[0], -1
	for _, key := range order {
		if counts[key] > bestCount {
			best, bestCount = key, counts[key]
		}
	}

	return RGB{
		R: uint8((best>>16)&0xff) << 4,
		G: uint8((best>>8)&0xff) << 4,
		B: uint8(best&0xff) << 4,
	}, true
}

// Suppressor decides which pixels are excluded from dominant colour extraction.
type Suppressor struct {
	background    RGB
	backgroundHue float64
	hasBackground bool
}

// NewSuppressor creates a Suppressor for the given background estimate.
func NewSuppressor(background RGB, hasBackground bool) *Suppressor {
	return &Suppressor{
		background:    background,
		backgroundHue: RGBToHSL(background).H,
		hasBackground: hasBackground,
	}
}

// NewSuppressorFor estimates the background of r and returns a Suppressor for it.
func NewSuppressorFor(r *Raster) *Suppressor {
	bg, ok := EstimateBackground(r)
	return NewSuppressor(bg, ok)
}

// Background returns the background estimate in use.
func (s *Suppressor) Background() (RGB, bool) {
	return s.background, s.hasBackground
}

// Reject reports whether a pixel should be discarded. The HSL form of the
// pixel is returned so callers do not convert twice.
func (s *Suppressor) Reject(px RGBA) (HSL, bool) {
	if px.A < alphaThreshold {
		return HSL{}, true
	}

	rgb := px.RGB()
	if IsFlatOrExtreme(rgb) {
		return HSL{}, true
	}
	if s.hasBackground && Distance(rgb, s.background) < backgroundDistance {
		return HSL{}, true
	}
	if IsSkinTone(rgb) {
		return HSL{}, true
	}

	hsl := RGBToHSL(rgb)
	if IsBeigeOrPale(hsl) {
		return hsl, true
	}
	if s.hasBackground && hsl.S < backgroundHueMaxSat && HueDistance(hsl.H, s.backgroundHue) < backgroundHueDistance {
		return hsl, true
	}
	return hsl, false
}

// IsFlatOrExtreme matches near-white, near-black and flat light grey pixels.
func IsFlatOrExtreme(c RGB) bool {
	brightness := (float64(c.R) + float64(c.G) + float64(c.B)) / 3
	spread := int(max(c.R, c.G, c.B)) - int(min(c.R, c.G, c.B))
	return brightness > maxBrightness || brightness < minBrightness ||
		(spread < flatGreySpread && brightness > flatGreyBrightness)
}

// IsSkinTone applies the basic RGB skin rule.
func IsSkinTone(c RGB) bool {
	r, g, b := int(c.R), int(c.G), int(c.B)
	spread := max(r, g, b) - min(r, g, b)
	return r > 95 && g > 40 && b > 20 && spread > 15 && absInt(r-g) > 15 && r > g && r > b
}

// IsBeigeOrPale matches the beige/cream band and low-saturation bright pixels.
func IsBeigeOrPale(c HSL) bool {
	beige := c.H >= 25 && c.H <= 50 && c.S < 0.35 && c.L > 0.65
	pale := c.S < 0.12 && c.L > 0.6
	return beige || pale
}

func absInt(v int) int {
	return int(math.Abs(float64(v)))
}
