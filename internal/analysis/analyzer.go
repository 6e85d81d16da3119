// Package analysis turns garment photos and hex lists into colour analyses:
// dominant colours, names, harmony matches and a rich palette.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/kalil1010/ai-stylist/internal/colour"
	imageloader "github.com/kalil1010/ai-stylist/internal/image"
)

// ErrNoColours is returned when a hex list contains no valid colour.
var ErrNoColours = errors.New("no valid colours provided")

// DefaultGarmentType is reported for every analysis; garment classification
// is not performed.
const DefaultGarmentType = "top"

// Result is a complete colour analysis. Every colour is an upper-case
// "#RRGGBB" string so the value can be handed to prompt and storage layers as is.
type Result struct {
	PrimaryHex       string              `json:"primaryHex"`
	DominantHexes    []string            `json:"dominantHexes"`
	ColorNames       []string            `json:"colorNames"`
	ColorPercentages map[string]float64  `json:"colorPercentages,omitempty"`
	GarmentType      string              `json:"garmentType"`
	Matches          *colour.Matches     `json:"matches,omitempty"`
	RichMatches      *colour.RichPalette `json:"richMatches,omitempty"`
}

// Empty reports whether no dominant colour was found.
func (r *Result) Empty() bool {
	return len(r.DominantHexes) == 0
}

// Options configures an Analyzer.
type Options struct {
	Loader    imageloader.Loader
	Extractor colour.Extractor
	// MaxEdge is the long edge images are reduced to before extraction.
	// Zero uses colour.DefaultMaxEdge.
	MaxEdge int
	Logger  hclog.Logger
}

// Analyzer wires image loading, rasterisation, extraction, naming and harmony.
type Analyzer struct {
	loader    imageloader.Loader
	extractor colour.Extractor
	maxEdge   int
	logger    hclog.Logger
}

// New creates an Analyzer. Unset options fall back to the smart loader,
// the enhanced extractor and a null logger.
func New(opts Options) *Analyzer {
	a := &Analyzer{
		loader:    opts.Loader,
		extractor: opts.Extractor,
		maxEdge:   opts.MaxEdge,
		logger:    opts.Logger,
	}
	if a.loader == nil {
		a.loader = imageloader.NewSmartLoader()
	}
	if a.extractor == nil {
		a.extractor = colour.NewEnhancedExtractor()
	}
	if a.maxEdge == 0 {
		a.maxEdge = colour.DefaultMaxEdge
	}
	if a.logger == nil {
		a.logger = hclog.NewNullLogger()
	}
	return a
}

// AnalyzePath loads an image from a file path or URL and analyses it.
func (a *Analyzer) AnalyzePath(ctx context.Context, path string) (*Result, error) {
	a.logger.Debug("loading image", "path", path)
	img, err := a.loader.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeImage(ctx, img)
}

// AnalyzeBytes decodes an uploaded image and analyses it.
func (a *Analyzer) AnalyzeBytes(ctx context.Context, data []byte) (*Result, error) {
	img, format, err := imageloader.DecodeBytes(data)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("decoded upload", "format", format, "bytes", len(data))
	return a.AnalyzeImage(ctx, img)
}

// AnalyzeImage extracts the dominant colours of img. A photo where every
// pixel is suppressed produces an empty result, not an error.
func (a *Analyzer) AnalyzeImage(ctx context.Context, img image.Image) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raster, err := colour.NewRaster(img, a.maxEdge)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", imageloader.ErrDecode, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	palette, err := a.extractor.Extract(raster)
	if err != nil {
		return nil, fmt.Errorf("failed to extract colours: %w", err)
	}
	a.logger.Debug("extracted colours", "count", palette.Len(), "width", raster.Width, "height", raster.Height)

	hexes := make([]string, palette.Len())
	percentages := make(map[string]float64, palette.Len())
	for i, c := range palette.Colours {
		hexes[i] = c.DisplayHex()
		percentages[hexes[i]] = palette.Weight(i)
	}

	res, err := build(hexes)
	if err != nil {
		return nil, err
	}
	res.ColorPercentages = percentages
	return res, nil
}

// FromHexes assembles an analysis from colours chosen elsewhere. Entries
// are trimmed, given a leading '#' when missing, validated and de-duplicated
// case-insensitively. The first valid colour becomes the primary.
func FromHexes(hexes []string) (*Result, error) {
	clean := SanitizeHexes(hexes)
	if len(clean) == 0 {
		return nil, ErrNoColours
	}
	return build(clean)
}

// SanitizeHexes normalises a user-supplied hex list, dropping invalid entries.
func SanitizeHexes(hexes []string) []string {
	seen := make(map[string]bool, len(hexes))
	var out []string
	for _, h := range hexes {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if !strings.HasPrefix(h, "#") {
			h = "#" + h
		}
		if len(h) != 7 {
			continue
		}
		norm, err := colour.NormalizeHex(h)
		if err != nil || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, norm)
	}
	return out
}

func build(hexes []string) (*Result, error) {
	res := &Result{
		DominantHexes: hexes,
		ColorNames:    make([]string, len(hexes)),
		GarmentType:   DefaultGarmentType,
	}
	for i, h := range hexes {
		name, err := colour.NameFor(h)
		if err != nil {
			return nil, err
		}
		res.ColorNames[i] = name
	}
	if len(hexes) == 0 {
		return res, nil
	}

	res.PrimaryHex = hexes[0]
	matches, err := colour.MatchingColours(res.PrimaryHex)
	if err != nil {
		return nil, err
	}
	rich, err := colour.Rich(res.PrimaryHex)
	if err != nil {
		return nil, err
	}
	res.Matches = &matches
	res.RichMatches = &rich
	return res, nil
}
