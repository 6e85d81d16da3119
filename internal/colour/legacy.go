package colour

import "sort"

// legacyPixelStep samples every 10th pixel.
const legacyPixelStep = 10

// LegacyExtractor counts exact colours on a uniform sample with no suppression
// or weighting. It is deterministic and kept as a comparison and fallback path.
type LegacyExtractor struct{}

// NewLegacyExtractor creates a new LegacyExtractor.
func NewLegacyExtractor() *LegacyExtractor {
	return &LegacyExtractor{}
}

// Extract implements Extractor. Weights are the share of opaque sampled
// pixels, in percent.
func (e *LegacyExtractor) Extract(r *Raster) (*Palette, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	counts := newBucketSet()
	sampled := 0
	for i := 0; i+3 < len(r.Pix); i += legacyPixelStep * 4 {
		if r.Pix[i+3] < alphaThreshold {
			continue
		}
		counts.add(RGB{R: r.Pix[i], G: r.Pix[i+1], B: r.Pix[i+2]}, 1)
		sampled++
	}

	sorted := counts.buckets
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].weight > sorted[j].weight
	})
	if len(sorted) > MaxDominantColours {
		sorted = sorted[:MaxDominantColours]
	}

	colours := make([]RGB, len(sorted))
	weights := make([]float64, len(sorted))
	for i, c := range sorted {
		colours[i] = c.rgb
		weights[i] = c.weight / float64(sampled) * 100
	}
	return NewPalette(colours, weights), nil
}
