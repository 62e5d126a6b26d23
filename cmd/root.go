package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matemagica/matemagica/internal/app"
	"github.com/matemagica/matemagica/internal/config"
	"github.com/matemagica/matemagica/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "matemagica",
	Short: "Math practice for school years 1-9",
	Long:  "Matemagica — terminal math practice with mastery tracking, spaced review and teacher reports.",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		return app.Run(st)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("data", "", "Path to SQLite database file (overrides MATEMAGICA_DB env var)")

	rootCmd.AddCommand(diagnoseCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(codeCmd)
	rootCmd.AddCommand(teacherCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the machine config; a missing file yields defaults.
func loadConfig() (*config.Config, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// resolveDBPath returns the database path using --data flag (highest
// priority), then the config file, then MATEMAGICA_DB / the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("data"); p != "" {
		return p, os.MkdirAll(filepath.Dir(p), 0o755)
	}
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	if cfg.DatabasePath != "" {
		return cfg.DatabasePath, os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
