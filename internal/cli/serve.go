package cli

import (
	"github.com/spf13/cobra"

	"github.com/kalil1010/ai-stylist/internal/analysis"
	"github.com/kalil1010/ai-stylist/internal/image"
	"github.com/kalil1010/ai-stylist/internal/server"
	"github.com/kalil1010/ai-stylist/internal/store"
)

var (
	serveListen  string
	serveDBPath  string
	serveNoStore bool
	serveDebug   bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Long: `Serve colour analysis, outfit scoring, saved palettes and, when a Gen AI
key is configured, outfit suggestions and stylist chat over HTTP.

Examples:
  stylist serve
  stylist serve --listen 127.0.0.1:9000 --db ./stylist.db`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "address to listen on (default: $STYLIST_LISTEN or :8080)")
	serveCmd.Flags().StringVar(&serveDBPath, "db", "", "palette database path (default: $STYLIST_DB_PATH or the XDG data directory)")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "disable the saved palette routes")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "include handler locations in error responses")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig(cmd)
	logger := newLogger(cmd, cfg)
	ctx := cmd.Context()

	opts := server.Options{
		Addr:           orDefault(serveListen, cfg.Listen),
		Analyzer: analysis.New(analysis.Options{
			Loader: image.NewSmartLoader().WithCache(cfg.CacheDir).PublicOnly(),
			Logger: logger.Named("analysis"),
		}),
		AllowedOrigins: cfg.AllowedOrigins,
		Logger:         logger.Named("server"),
		Debug:          serveDebug,
	}

	if !serveNoStore {
		database, err := store.Bootstrap(orDefault(serveDBPath, cfg.DBPath))
		if err != nil {
			return err
		}
		defer database.Close()
		opts.Palettes = store.NewPaletteStore(database, logger.Named("store"))
	}

	if client, err := newStylist(ctx, cfg, logger); err != nil {
		logger.Warn("stylist routes disabled", "error", err)
	} else {
		opts.Stylist = client
	}

	return server.New(opts).Serve(ctx)
}
