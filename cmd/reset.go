package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matemagica/matemagica/internal/profile"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Resets the active profile's progress. With --all, wipes every profile and teacher import.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("this deletes progress permanently; re-run with --yes to confirm")
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if all, _ := cmd.Flags().GetBool("all"); all {
			if err := st.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("All data wiped.")
			return nil
		}

		ac, err := profile.Load(cmd.Context(), st)
		if err != nil {
			return err
		}
		if err := ac.ResetProgress(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("Progress reset for %s.\n", ac.Profile.FirstName)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
	resetCmd.Flags().Bool("all", false, "Wipe every profile and teacher import")
}
