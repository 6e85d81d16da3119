// Package cli provides the command-line interface for the stylist.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kalil1010/ai-stylist/internal/config"
	"github.com/kalil1010/ai-stylist/internal/version"
)

var (
	// Global preview flag
	globalPreview string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "stylist",
		Short: "Garment colour analysis and outfit harmony",
		Long: `Stylist extracts the dominant colours of a garment photo, names them,
derives a harmony palette and scores outfit colour plans.

Analyses can be saved per user, served over HTTP, and handed to a Gemini
model for outfit suggestions and stylist chat.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}
)

// Execute runs the root command until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&globalPreview, "preview", "auto", "colour swatches in output (auto, always, never)")

	// Set version template
	rootCmd.SetVersionTemplate(version.String() + "\n")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(palettesCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including build date, commit hash, and Go version.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.String())
	},
}

// loadConfig reads the environment and .env file. Verbose and quiet flags
// override the configured log level.
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = hclog.Debug
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		cfg.LogLevel = hclog.Error
	}
	return cfg
}

func newLogger(cmd *cobra.Command, cfg config.Config) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:   "stylist",
		Output: cmd.ErrOrStderr(),
		Level:  cfg.LogLevel,
		Color:  hclog.AutoColor,
	})
}

// showPreview resolves the --preview flag. Swatches are only drawn on a terminal
// in auto mode.
func showPreview(w io.Writer) (bool, error) {
	switch globalPreview {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("invalid preview mode: %s (valid: auto, always, never)", globalPreview)
	}
}
