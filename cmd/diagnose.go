package cmd

import (
	"github.com/spf13/cobra"

	"github.com/matemagica/matemagica/internal/app"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Take the placement check",
	Long:  "Runs the 12-question placement check and moves the profile to the suggested starting track.",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		return app.RunDiagnostic(st)
	},
}
