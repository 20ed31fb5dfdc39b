package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/sqlkit/cli/internal/config"
	"github.com/satishbabariya/sqlkit/internal/debug"
)

var rootCmd = &cobra.Command{
	Use:   "sqlkit",
	Short: "Compile and run SQL query documents",
	Long: `sqlkit turns YAML query documents into parameterized SQL for
PostgreSQL, MySQL and SQLite, and can run them against a database.

Configuration is read from .sqlkit.yaml, SQLKIT_* environment variables
and .env files.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	configPath string
	debugFlag  bool

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default .sqlkit.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

// Execute is the main entry point for the CLI
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded

	enabled := cfg.Debug || debugFlag
	level := slog.LevelInfo
	if enabled {
		level = slog.LevelDebug
	}
	debug.Configure(debug.Options{
		Enabled: enabled,
		Format:  cfg.LogFormat,
		Level:   level,
		Writer:  os.Stderr,
	})
	if cfg.ConfigFile != "" {
		debug.Debug("config loaded", "file", cfg.ConfigFile, "provider", cfg.Provider)
	}
	return nil
}
