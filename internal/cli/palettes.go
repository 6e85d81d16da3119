package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/kalil1010/ai-stylist/internal/analysis"
	"github.com/kalil1010/ai-stylist/internal/colour"
	"github.com/kalil1010/ai-stylist/internal/outfit"
	"github.com/kalil1010/ai-stylist/internal/store"
)

var (
	palettesUser   string
	palettesDBPath string
	palettesJSON   bool

	// palettes save flags
	palettesSaveImage  string
	palettesSaveBest   bool
	palettesSaveSource string
	palettesSaveID     string
)

// palettesCmd groups the saved palette commands.
var palettesCmd = &cobra.Command{
	Use:   "palettes",
	Short: "Manage saved palettes",
	Long: `Save, list, show and delete palettes stored per user in the local
SQLite database.

Examples:
  stylist palettes save --user alice "#1f2937" "#e5e7eb"
  stylist palettes save --user alice --image shirt.jpg --best
  stylist palettes list --user alice
  stylist palettes show --user alice <id>
  stylist palettes delete --user alice <id>`,
}

var palettesSaveCmd = &cobra.Command{
	Use:   "save [hex...]",
	Short: "Save a palette from colours or an image",
	RunE:  runPalettesSave,
}

var palettesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's palettes, newest first",
	Args:  cobra.NoArgs,
	RunE:  runPalettesList,
}

var palettesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved palette",
	Args:  cobra.ExactArgs(1),
	RunE:  runPalettesShow,
}

var palettesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved palette",
	Args:  cobra.ExactArgs(1),
	RunE:  runPalettesDelete,
}

func init() {
	palettesCmd.PersistentFlags().StringVar(&palettesUser, "user", "", "owner of the palettes (required)")
	palettesCmd.PersistentFlags().StringVar(&palettesDBPath, "db", "", "palette database path (default: $STYLIST_DB_PATH or the XDG data directory)")
	palettesCmd.PersistentFlags().BoolVar(&palettesJSON, "json", false, "print JSON")

	palettesSaveCmd.Flags().StringVar(&palettesSaveImage, "image", "", "analyse this image instead of taking colours from arguments")
	palettesSaveCmd.Flags().BoolVar(&palettesSaveBest, "best", false, "store the best scoring outfit plan with the palette")
	palettesSaveCmd.Flags().StringVar(&palettesSaveSource, "source", string(store.SourceAnalyzer), "where the palette came from (analyzer, closet)")
	palettesSaveCmd.Flags().StringVar(&palettesSaveID, "id", "", "replace the palette with this id")

	palettesCmd.AddCommand(palettesSaveCmd, palettesListCmd, palettesShowCmd, palettesDeleteCmd)
}

// withPaletteStore opens the store for the duration of fn.
func withPaletteStore(cmd *cobra.Command, fn func(ctx context.Context, s *store.PaletteStore, logger hclog.Logger) error) error {
	if strings.TrimSpace(palettesUser) == "" {
		return store.ErrUserRequired
	}
	cfg := loadConfig(cmd)
	logger := newLogger(cmd, cfg)

	database, err := store.Bootstrap(orDefault(palettesDBPath, cfg.DBPath))
	if err != nil {
		return err
	}
	defer database.Close()

	return fn(cmd.Context(), store.NewPaletteStore(database, logger.Named("store")), logger)
}

func runPalettesSave(cmd *cobra.Command, args []string) error {
	return withPaletteStore(cmd, func(ctx context.Context, s *store.PaletteStore, logger hclog.Logger) error {
		var (
			res *analysis.Result
			err error
		)
		switch {
		case palettesSaveImage != "" && len(args) > 0:
			return fmt.Errorf("pass either --image or colours, not both")
		case palettesSaveImage != "":
			res, err = analysis.New(analysis.Options{Logger: logger.Named("analysis")}).AnalyzePath(ctx, palettesSaveImage)
			if err == nil && res.Empty() {
				err = analysis.ErrNoColours
			}
		default:
			res, err = analysis.FromHexes(args)
		}
		if err != nil {
			return err
		}

		var plan outfit.Plan
		if palettesSaveBest {
			if plan, err = bestPlanFor(res); err != nil {
				return err
			}
		}

		p := store.FromAnalysis(palettesUser, res, plan, store.Source(palettesSaveSource))
		p.ID = palettesSaveID
		saved, err := s.Save(ctx, p)
		if err != nil {
			return err
		}
		if palettesJSON {
			return writeJSON(cmd.OutOrStdout(), saved)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved palette %s\n", saved.ID)
		return nil
	})
}

func runPalettesList(cmd *cobra.Command, _ []string) error {
	return withPaletteStore(cmd, func(ctx context.Context, s *store.PaletteStore, _ hclog.Logger) error {
		list, err := s.ListForUser(ctx, palettesUser)
		if err != nil {
			return err
		}
		if palettesJSON {
			return writeJSON(cmd.OutOrStdout(), list)
		}
		if len(list) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No saved palettes for %s.\n", palettesUser)
			return nil
		}

		preview, err := showPreview(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		table := NewTable(swatchHeaders(preview, "ID", "Base", "Colours", "Source", "Created")...)
		for _, p := range list {
			table.AddRow(swatchRow(preview, p.BaseHex,
				p.ID, p.BaseHex, strings.Join(p.DominantHexes, " "), string(p.Source),
				p.CreatedAt.Local().Format("2006-01-02 15:04"))...)
		}
		fmt.Fprint(cmd.OutOrStdout(), table.Render())
		return nil
	})
}

func runPalettesShow(cmd *cobra.Command, args []string) error {
	return withPaletteStore(cmd, func(ctx context.Context, s *store.PaletteStore, _ hclog.Logger) error {
		p, err := ownedPalette(ctx, s, args[0])
		if err != nil {
			return err
		}
		if palettesJSON {
			return writeJSON(cmd.OutOrStdout(), p)
		}

		preview, err := showPreview(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		name, _ := colour.NameFor(p.BaseHex)
		fmt.Fprintf(out, "ID:      %s\n", p.ID)
		fmt.Fprintf(out, "Base:    %s (%s)\n", p.BaseHex, name)
		fmt.Fprintf(out, "Colours: %s\n", strings.Join(p.DominantHexes, " "))
		fmt.Fprintf(out, "Source:  %s\n", p.Source)
		fmt.Fprintf(out, "Updated: %s\n\n", p.UpdatedAt.Local().Format("2006-01-02 15:04"))
		writeRichPalette(out, p.RichMatches, preview)

		if len(p.Plan) > 0 {
			fmt.Fprintln(out, "\nOutfit plan:")
			for _, slot := range sortedKeys(p.Plan) {
				fmt.Fprintf(out, "  %-10s %s\n", slot, p.Plan[slot])
			}
			plan, err := outfit.PlanFromHexes(p.Plan)
			if err != nil {
				return err
			}
			res, err := outfit.Score(p.BaseHex, plan)
			if err != nil {
				return err
			}
			writeScore(cmd, res, preview)
		}
		return nil
	})
}

func runPalettesDelete(cmd *cobra.Command, args []string) error {
	return withPaletteStore(cmd, func(ctx context.Context, s *store.PaletteStore, logger hclog.Logger) error {
		p, err := ownedPalette(ctx, s, args[0])
		if err != nil {
			return err
		}
		if err := s.Delete(ctx, p.ID); err != nil {
			return err
		}
		logger.Debug("deleted palette", "id", p.ID)
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted palette %s\n", p.ID)
		return nil
	})
}

// ownedPalette loads id and hides palettes that belong to someone else.
func ownedPalette(ctx context.Context, s *store.PaletteStore, id string) (store.SavedPalette, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return store.SavedPalette{}, err
	}
	if p.UserID != palettesUser {
		return store.SavedPalette{}, store.ErrNotFound
	}
	return p, nil
}
