package colour

import (
	"math"
	"sort"
)

const (
	sampleStride      = 2
	centreWeight      = 12.0
	edgeWeight        = 0.5
	ellipseRadius     = 0.25
	mergeDistance     = 18.0
	maxSaturationBias = 2.5
	lightnessPivot    = 0.6
	maxLightPenalty   = 0.3
)

// EnhancedExtractor finds garment colours while suppressing background, skin
// and near-neutral pixels and favouring the centre of the frame.
type EnhancedExtractor struct{}

// NewEnhancedExtractor creates a new EnhancedExtractor.
func NewEnhancedExtractor() *EnhancedExtractor {
	return &EnhancedExtractor{}
}

// Extract implements Extractor.
func (e *EnhancedExtractor) Extract(r *Raster) (*Palette, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}

	suppressor := NewSuppressorFor(r)
	buckets := newBucketSet()

	cx, cy := float64(r.Width)/2, float64(r.Height)/2
	rx, ry := float64(r.Width)*ellipseRadius, float64(r.Height)*ellipseRadius

	for y := 0; y < r.Height; y += sampleStride {
		for x := 0; x < r.Width; x += sampleStride {
			px := r.At(x, y)
			hsl, rejected := suppressor.Reject(px)
			if rejected {
				continue
			}

			dx, dy := float64(x)-cx, float64(y)-cy
			spatial := edgeWeight
			if (dx*dx)/(rx*rx)+(dy*dy)/(ry*ry) <= 1 {
				spatial = centreWeight
			}

			weight := spatial * saturationBias(hsl.S) * lightnessBias(hsl.L)
			buckets.add(quantise3(px.RGB()), weight)
		}
	}

	clusters := mergeBuckets(buckets.buckets, mergeDistance)
	return rankClusters(clusters, MaxDominantColours), nil
}

func saturationBias(s float64) float64 {
	return 1 + math.Min(maxSaturationBias, s*3)
}

// lightnessBias prefers mid and dark tones.
func lightnessBias(l float64) float64 {
	if l <= lightnessPivot {
		return 1 + (lightnessPivot - l)
	}
	return 1 - math.Min(maxLightPenalty, l-lightnessPivot)
}

// quantise3 keeps the top 5 bits of each channel.
func quantise3(c RGB) RGB {
	return RGB{R: c.R >> 3 << 3, G: c.G >> 3 << 3, B: c.B >> 3 << 3}
}

// mergeBuckets is a greedy single pass clustering. Each unvisited bucket
// absorbs every later bucket within threshold of its running representative,
// and the representative moves halfway towards each absorbed colour. The
// result depends on input order and is not a global optimum.
func mergeBuckets(in []weightedColour, threshold float64) []weightedColour {
	merged := newBucketSet()
	visited := make([]bool, len(in))

	for i := range in {
		if visited[i] {
			continue
		}
		visited[i] = true

		weight := in[i].weight
		r0, g0, b0 := float64(in[i].rgb.R), float64(in[i].rgb.G), float64(in[i].rgb.B)
		for j := i + 1; j < len(in); j++ {
			if visited[j] {
				continue
			}
			c := in[j].rgb
			r1, g1, b1 := float64(c.R), float64(c.G), float64(c.B)
			if distance3(r0, g0, b0, r1, g1, b1) <= threshold {
				weight += in[j].weight
				r0 = math.Round((r0 + r1) / 2)
				g0 = math.Round((g0 + g1) / 2)
				b0 = math.Round((b0 + b1) / 2)
				visited[j] = true
			}
		}

		merged.add(quantise3(RGB{R: uint8(r0), G: uint8(g0), B: uint8(b0)}), weight)
	}

	return merged.buckets
}

// rankClusters sorts by weight (stable, so first-seen wins ties), keeps the
// top n and converts weights to percentages of the retained total.
func rankClusters(clusters []weightedColour, n int) *Palette {
	sorted := make([]weightedColour, len(clusters))
	copy(sorted, clusters)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].weight > sorted[j].weight
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}

	total := 0.0
	for _, c := range sorted {
		total += c.weight
	}
	total = math.Max(1, total)

	colours := make([]RGB, len(sorted))
	weights := make([]float64, len(sorted))
	for i, c := range sorted {
		colours[i] = c.rgb
		weights[i] = c.weight / total * 100
	}
	return NewPalette(colours, weights)
}
