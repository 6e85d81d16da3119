package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kalil1010/ai-stylist/internal/analysis"
	"github.com/kalil1010/ai-stylist/internal/colour"
	"github.com/kalil1010/ai-stylist/internal/image"
	"github.com/kalil1010/ai-stylist/internal/store"
)

var (
	// Analyze command flags
	analyzeAlgorithm string
	analyzeMaxEdge   int
	analyzeSeed      int64
	analyzeJSON      bool
	analyzeSave      bool
	analyzeUser      string
	analyzeDBPath    string
	analyzeCacheDir  string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <image|directory|url>",
	Short: "Extract the dominant colours of a garment photo",
	Long: `Extract up to five dominant colours from a garment photo, name them and
derive the matching harmony palette.

Backgrounds, skin tones and flat neutrals are suppressed so the garment's
own colours come first. A directory analyses every image inside it.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF

Examples:
  # Analyse a photo
  stylist analyze shirt.jpg

  # Compare the k-means clusterer against the default extractor
  stylist analyze --algorithm kmeans shirt.jpg

  # Analyse a folder of photos as JSON
  stylist analyze --json ./closet

  # Analyse a remote photo, keeping a local copy for next time
  stylist analyze --cache-dir ~/.cache/stylist/images https://shop.example/shirt.jpg

  # Save the analysis for a user
  stylist analyze --save --user alice shirt.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeAlgorithm, "algorithm", "a", string(colour.AlgorithmEnhanced), "extraction algorithm (enhanced, legacy, kmeans)")
	analyzeCmd.Flags().IntVar(&analyzeMaxEdge, "max-edge", colour.DefaultMaxEdge, "long edge images are reduced to before sampling")
	analyzeCmd.Flags().Int64Var(&analyzeSeed, "seed", colour.DefaultKMeansSeed, "k-means initialisation seed")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the analysis as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "save the analysis to the palette store")
	analyzeCmd.Flags().StringVar(&analyzeUser, "user", "", "owner of saved palettes")
	analyzeCmd.Flags().StringVar(&analyzeDBPath, "db", "", "palette database path (default: $STYLIST_DB_PATH or the XDG data directory)")
	analyzeCmd.Flags().StringVar(&analyzeCacheDir, "cache-dir", "", "keep downloaded photos here (default: $STYLIST_CACHE_DIR, unset disables caching)")
}

// runAnalyze executes the analyze command.
func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	logger := newLogger(cmd, cfg)

	extractorConfig := colour.ExtractorConfig{
		Algorithm: colour.Algorithm(analyzeAlgorithm),
		MaxEdge:   analyzeMaxEdge,
	}
	if err := extractorConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if analyzeSave && strings.TrimSpace(analyzeUser) == "" {
		return store.ErrUserRequired
	}

	paths, err := image.ResolveImagePaths(args[0])
	if err != nil {
		return err
	}

	seed := analyzeSeed
	extractor, err := colour.NewExtractor(extractorConfig.Algorithm, colour.ExtractorOptions{Seed: &seed})
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}
	analyzer := analysis.New(analysis.Options{
		Loader:    image.NewSmartLoader().WithCache(orDefault(analyzeCacheDir, cfg.CacheDir)),
		Extractor: extractor,
		MaxEdge:   extractorConfig.MaxEdge,
		Logger:    logger.Named("analysis"),
	})

	var palettes *store.PaletteStore
	if analyzeSave {
		database, err := store.Bootstrap(orDefault(analyzeDBPath, cfg.DBPath))
		if err != nil {
			return err
		}
		defer database.Close()
		palettes = store.NewPaletteStore(database, logger.Named("store"))
	}

	preview, err := showPreview(cmd.OutOrStdout())
	if err != nil {
		return err
	}

	results := make(map[string]*analysis.Result, len(paths))
	for _, path := range paths {
		logger.Debug("analysing image", "path", path, "algorithm", extractorConfig.Algorithm)
		res, err := analyzer.AnalyzePath(cmd.Context(), path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		results[path] = res

		if palettes != nil && !res.Empty() {
			saved, err := palettes.Save(cmd.Context(), store.FromAnalysis(analyzeUser, res, nil, store.SourceAnalyzer))
			if err != nil {
				return err
			}
			logger.Info("saved palette", "id", saved.ID, "path", path)
		}

		if !analyzeJSON {
			if len(paths) > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", path)
			}
			writeAnalysis(cmd.OutOrStdout(), res, preview)
		}
	}

	if analyzeJSON {
		var v any = results
		if len(paths) == 1 {
			v = results[paths[0]]
		}
		return writeJSON(cmd.OutOrStdout(), v)
	}
	return nil
}

func writeAnalysis(w io.Writer, res *analysis.Result, preview bool) {
	if res.Empty() {
		fmt.Fprintln(w, "No garment colours detected.")
		return
	}

	table := NewTable(swatchHeaders(preview, "Hex", "Name", "Share")...)
	for i, hex := range res.DominantHexes {
		share := ""
		if pct, ok := res.ColorPercentages[hex]; ok {
			share = fmt.Sprintf("%.1f%%", pct)
		}
		table.AddRow(swatchRow(preview, hex, hex, res.ColorNames[i], share)...)
	}
	fmt.Fprint(w, table.Render())

	if res.RichMatches != nil {
		fmt.Fprintln(w)
		writeRichPalette(w, *res.RichMatches, preview)
	}
}

func writeRichPalette(w io.Writer, rich colour.RichPalette, preview bool) {
	for _, g := range rich.Groups() {
		if rgb, err := colour.ParseHex(g.Colours[0]); preview && len(g.Colours) == 1 && err == nil {
			fmt.Fprintln(w, colour.FormatColourWithLabel(rgb, g.Label+":", 2))
			continue
		}
		parts := make([]string, len(g.Colours))
		for i, hex := range g.Colours {
			if preview {
				parts[i] = colour.FormatHexWithPreview(hex, 2)
			} else {
				parts[i] = strings.ToUpper(hex)
			}
		}
		fmt.Fprintf(w, "%-20s %s\n", g.Label+":", strings.Join(parts, "  "))
	}
}

// swatchHeaders prepends a swatch column when previews are on.
func swatchHeaders(preview bool, headers ...string) []string {
	if !preview {
		return headers
	}
	return append([]string{""}, headers...)
}

// swatchRow prepends a swatch of hex when previews are on.
func swatchRow(preview bool, hex string, cells ...string) []string {
	if !preview {
		return cells
	}
	rgb, err := colour.ParseHex(hex)
	if err != nil {
		return append([]string{""}, cells...)
	}
	return append([]string{colour.ColourPreview(rgb, 4)}, cells...)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
