package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/pathquiz/internal/config"
	"github.com/abhisek/pathquiz/internal/logger"
	"github.com/abhisek/pathquiz/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "pathquiz",
	Short: "Practice locating values in nested key-value documents",
	Long: `pathquiz shows randomly generated nested documents and asks for the
dotted key path to a target value. Runs are recorded locally and exported to
a spreadsheet when complete.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PATHQUIZ_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to HCL config file (overrides PATHQUIZ_CONFIG env var)")
	rootCmd.PersistentFlags().String("log-file", "", "Path to the JSON log file (default: pathquiz.log in the data dir)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config, PATHQUIZ_CONFIG or
// the default location.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PATHQUIZ_DB env var, then the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if _, set := os.LookupEnv(store.EnvDB); !set && cfg != nil && cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens it.
func openStore(cmd *cobra.Command, cfg *config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// openLogger builds the file logger from flags, falling back to the config.
func openLogger(cmd *cobra.Command, cfg *config.Config) (*logger.Logger, error) {
	path, _ := cmd.Flags().GetString("log-file")
	if path == "" {
		path = cfg.LogFile
	}
	if path == "" {
		dir, err := config.DataDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "pathquiz.log")
	}

	level, _ := cmd.Flags().GetString("log-level")
	if level == "" {
		level = cfg.LogLevel
	}

	log, err := logger.New(path, level)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	return log, nil
}
