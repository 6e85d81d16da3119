package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/kalil1010/ai-stylist/internal/analysis"
	"github.com/kalil1010/ai-stylist/internal/config"
	"github.com/kalil1010/ai-stylist/internal/recommend"
)

var (
	recommendOccasion  string
	recommendImage     string
	recommendColours   []string
	recommendTemp      float64
	recommendCondition string
	recommendHumidity  float64
	recommendLocation  string
	recommendGender    string
	recommendAge       int
	recommendFavourite []string
	recommendStyles    []string
	recommendBest      bool
	recommendJSON      bool
)

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Ask the stylist model for an outfit suggestion",
	Long: `Build an outfit suggestion prompt from the occasion, the weather, your
profile and the colours of a garment, and ask a Gemini model for a
structured outfit. Business occasions get formal pieces.

Requires GOOGLE_API_KEY for the Gemini API backend, or application default
credentials with STYLIST_GENAI_BACKEND=vertex.

Examples:
  stylist recommend --occasion "board meeting" --condition cloudy --temp 14 --image shirt.jpg
  stylist recommend --occasion brunch --condition sunny --colors "#7c2d12" --gender female`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendOccasion, "occasion", "", "what the outfit is for (required)")
	recommendCmd.Flags().StringVar(&recommendImage, "image", "", "garment photo to take colours from")
	recommendCmd.Flags().StringSliceVar(&recommendColours, "colors", nil, "garment colours as hex values")
	recommendCmd.Flags().Float64Var(&recommendTemp, "temp", 20, "temperature in degrees Celsius")
	recommendCmd.Flags().StringVar(&recommendCondition, "condition", "", "weather condition, e.g. sunny (required)")
	recommendCmd.Flags().Float64Var(&recommendHumidity, "humidity", 50, "relative humidity in percent")
	recommendCmd.Flags().StringVar(&recommendLocation, "location", "", "where the outfit will be worn")
	recommendCmd.Flags().StringVar(&recommendGender, "gender", "", "wearer's gender")
	recommendCmd.Flags().IntVar(&recommendAge, "age", 0, "wearer's age")
	recommendCmd.Flags().StringSliceVar(&recommendFavourite, "favorite-colors", nil, "favourite colours")
	recommendCmd.Flags().StringSliceVar(&recommendStyles, "favorite-styles", nil, "favourite styles")
	recommendCmd.Flags().BoolVar(&recommendBest, "best", false, "include the best scoring colour plan in the prompt")
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "print the suggestion as JSON")
	_ = recommendCmd.MarkFlagRequired("occasion")
	_ = recommendCmd.MarkFlagRequired("condition")
}

// newStylist creates a Gemini client from the configuration.
func newStylist(ctx context.Context, cfg config.Config, logger hclog.Logger) (*recommend.Client, error) {
	return recommend.NewClient(ctx, recommend.Options{
		Backend: cfg.GenAIBackend,
		Model:   cfg.GenAIModel,
		APIKey:  cfg.APIKey,
		Logger:  logger.Named("recommend"),
	})
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig(cmd)
	logger := newLogger(cmd, cfg)
	ctx := cmd.Context()

	req := recommend.Request{
		Occasion: recommendOccasion,
		Weather: recommend.Weather{
			Temperature: recommendTemp,
			Condition:   recommendCondition,
			Humidity:    recommendHumidity,
			Location:    recommendLocation,
		},
		Profile: &recommend.Profile{
			Gender:         recommendGender,
			Age:            recommendAge,
			FavoriteColors: recommendFavourite,
			FavoriteStyles: recommendStyles,
		},
	}

	res, err := garmentAnalysis(ctx, logger, recommendImage, recommendColours)
	if err != nil {
		return err
	}
	if res != nil && !res.Empty() {
		req.DominantHexes = res.DominantHexes
		req.Palette = res.RichMatches
		if recommendBest {
			plan, err := bestPlanFor(res)
			if err != nil {
				return err
			}
			req.Plan = plan
		}
	}

	client, err := newStylist(ctx, cfg, logger)
	if err != nil {
		return err
	}
	suggestion, err := client.Suggest(ctx, req)
	if err != nil {
		return err
	}

	if recommendJSON {
		return writeJSON(cmd.OutOrStdout(), suggestion)
	}
	writeSuggestion(cmd.OutOrStdout(), suggestion)
	return nil
}

// garmentAnalysis analyses image, or builds an analysis from hexes. Neither
// given returns nil.
func garmentAnalysis(ctx context.Context, logger hclog.Logger, image string, hexes []string) (*analysis.Result, error) {
	switch {
	case image != "":
		return analysis.New(analysis.Options{Logger: logger.Named("analysis")}).AnalyzePath(ctx, image)
	case len(hexes) > 0:
		return analysis.FromHexes(hexes)
	default:
		return nil, nil
	}
}

func writeSuggestion(w io.Writer, s recommend.Suggestion) {
	table := NewTable("Piece", "Suggestion", "Colour", "Source")
	table.AddRow("Top", s.Top.Summary, s.Top.Color, s.Top.Source)
	table.AddRow("Bottom", s.Bottom.Summary, s.Bottom.Color, s.Bottom.Source)
	table.AddRow("Footwear", s.Footwear.Summary, s.Footwear.Color, s.Footwear.Source)
	if s.Outerwear != nil {
		table.AddRow("Outerwear", s.Outerwear.Summary, s.Outerwear.Color, s.Outerwear.Source)
	}
	for _, a := range s.Accessories {
		table.AddRow("Accessory", a.Summary, a.Color, a.Source)
	}
	fmt.Fprint(w, table.Render())
	if notes := strings.TrimSpace(s.StyleNotes); notes != "" {
		fmt.Fprintf(w, "\n%s\n", notes)
	}
}
