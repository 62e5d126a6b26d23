package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matemagica/matemagica/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage learner profiles",
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <first-name> <grade-year>",
	Short: "Create a profile and make it active",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		grade, err := strconv.Atoi(args[1])
		if err != nil || grade < 1 || grade > 9 {
			return fmt.Errorf("grade year must be 1-9, got %q", args[1])
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		classGroup, _ := cmd.Flags().GetString("class")
		if classGroup == "" {
			classGroup = cfg.ClassGroup
		}
		school, _ := cmd.Flags().GetString("school")
		if school == "" {
			school = cfg.School
		}

		ac, err := profile.Create(cmd.Context(), st, profile.Profile{
			FirstName:  args[0],
			GradeYear:  grade,
			ClassGroup: classGroup,
			SchoolName: school,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created profile %s (%s, year %d) and made it active.\n",
			ac.Profile.ID, ac.Profile.FirstName, ac.Profile.GradeYear)
		return nil
	},
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		profiles, err := profile.List(cmd.Context(), st)
		if err != nil {
			return err
		}
		if len(profiles) == 0 {
			fmt.Println("No profiles yet. Create one with 'matemagica profile create'.")
			return nil
		}

		activeID, _ := st.ActiveProfile(cmd.Context())
		for _, p := range profiles {
			marker := " "
			if p.ID == activeID {
				marker = "*"
			}
			fmt.Printf("%s %s  %s (year %d, %s)\n", marker, p.ID, p.FirstName, p.GradeYear, p.ClassGroup)
		}
		return nil
	},
}

var profileSwitchCmd = &cobra.Command{
	Use:   "switch <profile-id>",
	Short: "Make another profile active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ac, err := profile.Switch(cmd.Context(), st, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Switched to %s.\n", ac.Profile.FirstName)
		return nil
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <profile-id>",
	Short: "Delete a profile and its progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteProfile(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Deleted.")
		return nil
	},
}

func init() {
	profileCreateCmd.Flags().String("class", "", "Class group, like 6B")
	profileCreateCmd.Flags().String("school", "", "School name")

	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileSwitchCmd)
	profileCmd.AddCommand(profileDeleteCmd)
}
