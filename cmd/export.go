package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matemagica/matemagica/internal/export"
	"github.com/matemagica/matemagica/internal/profile"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active profile's progress as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ac, err := profile.Load(cmd.Context(), st)
		if err != nil {
			return err
		}

		doc := export.Build(ac.Progress, appVersion(), time.Now())
		raw, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encode export: %w", err)
		}

		// Round-trip through the validator so a broken document never leaves
		// the machine.
		if _, err := export.Validate(raw); err != nil {
			return fmt.Errorf("export failed validation: %w", err)
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			fmt.Println(string(raw))
			return nil
		}
		if err := os.WriteFile(out, raw, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("Wrote %s (%d bytes).\n", out, len(raw))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("out", "o", "", "Write to a file instead of stdout")
}

// appVersion stamps exports; the config can pin it for fleet installs.
func appVersion() string {
	if cfg, err := loadConfig(); err == nil && cfg.AppVersion != "" {
		return cfg.AppVersion
	}
	return version
}
