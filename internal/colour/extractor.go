package colour

import (
	"fmt"
)

// MaxDominantColours is the number of colours an extractor returns at most.
const MaxDominantColours = 5

// Extractor defines the interface for dominant colour extraction algorithms.
type Extractor interface {
	// Extract returns up to MaxDominantColours colours ranked by prominence.
	// An image where nothing survives suppression yields an empty palette, not an error.
	Extract(r *Raster) (*Palette, error)
}

// Algorithm represents the color extraction algorithm type.
type Algorithm string

const (
	// AlgorithmEnhanced samples with background, skin and neutral suppression
	// and a centre-weighted bias. This is the default.
	AlgorithmEnhanced Algorithm = "enhanced"

	// AlgorithmLegacy counts every 10th pixel without suppression or weighting.
	AlgorithmLegacy Algorithm = "legacy"

	// AlgorithmKMeans clusters the pixels that survive suppression with k-means.
	// Used to compare against the greedy merge of the enhanced extractor.
	AlgorithmKMeans Algorithm = "kmeans"
)

// ValidAlgorithms returns a list of valid algorithm names.
func ValidAlgorithms() []Algorithm {
	return []Algorithm{
		AlgorithmEnhanced,
		AlgorithmLegacy,
		AlgorithmKMeans,
	}
}

// IsValidAlgorithm checks if the given algorithm name is valid.
func IsValidAlgorithm(alg Algorithm) bool {
	for _, valid := range ValidAlgorithms() {
		if alg == valid {
			return true
		}
	}
	return false
}

// ExtractorOptions tunes extractor construction.
type ExtractorOptions struct {
	// Seed for k-means initialisation. Nil uses DefaultKMeansSeed.
	Seed *int64
}

// NewExtractor creates a new Extractor based on the specified algorithm.
func NewExtractor(alg Algorithm, opts ...ExtractorOptions) (Extractor, error) {
	var o ExtractorOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	switch alg {
	case AlgorithmEnhanced, "":
		return NewEnhancedExtractor(), nil
	case AlgorithmLegacy:
		return NewLegacyExtractor(), nil
	case AlgorithmKMeans:
		seed := DefaultKMeansSeed
		if o.Seed != nil {
			seed = *o.Seed
		}
		return NewKMeansExtractor(seed), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s (valid algorithms: %v)", alg, ValidAlgorithms())
	}
}

// ExtractorConfig holds configuration for color extraction.
type ExtractorConfig struct {
	Algorithm Algorithm
	MaxEdge   int
}

// DefaultExtractorConfig returns the default extractor configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Algorithm: AlgorithmEnhanced,
		MaxEdge:   DefaultMaxEdge,
	}
}

// Validate validates the extractor configuration.
func (c ExtractorConfig) Validate() error {
	if !IsValidAlgorithm(c.Algorithm) {
		return fmt.Errorf("invalid algorithm: %s", c.Algorithm)
	}
	if c.MaxEdge < 16 {
		return fmt.Errorf("max edge must be at least 16 pixels, got %d", c.MaxEdge)
	}
	if c.MaxEdge > 2048 {
		return fmt.Errorf("max edge too large: %d (maximum: 2048)", c.MaxEdge)
	}
	return nil
}

// weightedColour is an accumulation bucket. Buckets are kept in first-seen
// order so that ties and merges are deterministic.
type weightedColour struct {
	rgb    RGB
	weight float64
}

type bucketSet struct {
	index   map[RGB]int
	buckets []weightedColour
}

func newBucketSet() *bucketSet {
	return &bucketSet{index: make(map[RGB]int)}
}

func (b *bucketSet) add(c RGB, w float64) {
	if i, ok := b.index[c]; ok {
		b.buckets[i].weight += w
		return
	}
	b.index[c] = len(b.buckets)
	b.buckets = append(b.buckets, weightedColour{rgb: c, weight: w})
}
