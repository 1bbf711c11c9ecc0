package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/MichaelHoltonPrice/pyseshat/internal/config"
	"github.com/MichaelHoltonPrice/pyseshat/internal/dataset"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile     string
	debug       bool
	flagDataDir string
	flagJSON    bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "seshat",
	Short: "Seshat CLI: load Seshat Global History Databank tables and run PCA",
	Long: `Seshat loads the bundled PNAS2017 and Equinox releases of the Seshat Global
History Databank, lists the regions and study sites (NGAs) of each release, and
runs a principal component analysis of the nine Core Capability variables.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return loadConfig() }
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.seshat/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding the bundled dataset files (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "print JSON instead of Markdown (overrides config)")
}

func loadConfig() error {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so read-only commands still work
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{DataDir: "data", OutputFormat: cfgpkg.FormatTable, MaxPrintRows: 10}
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("data-dir") && flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	if f.Changed("json") && flagJSON {
		cfg.OutputFormat = cfgpkg.FormatJSON
	}
	slog.Debug("configuration loaded", "data_dir", cfg.DataDir, "output_format", cfg.OutputFormat)
	return nil
}

func newLoader() *dataset.Loader {
	return dataset.NewLoader(cfg.DataDir)
}

func wantJSON() bool {
	return cfg != nil && cfg.OutputFormat == cfgpkg.FormatJSON
}
