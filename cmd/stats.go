package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/matemagica/matemagica/internal/curriculum"
	"github.com/matemagica/matemagica/internal/profile"
	"github.com/matemagica/matemagica/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the active profile's progress",
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
		prog := ac.Progress

		now := time.Now()
		fair, coverage := report.FairMastery(prog.Skills, now)

		fmt.Printf("%s — year %d, track %s\n\n", prog.Student.FirstName, prog.Student.GradeYear, prog.CurrentYearTrack)
		fmt.Printf("XP %d   Coins %d   Streak %d day(s) (best %d, %d freezes)\n",
			prog.XP, prog.Coins, prog.Streak.Current, prog.Streak.Best, prog.Streak.Freezes)
		fmt.Printf("Sessions %d   Minutes ~%d   Fair mastery %d (over %d solid skills)\n\n",
			prog.History.TotalSessions, prog.History.TotalMinutes, fair, coverage)

		if len(prog.Skills) > 0 {
			fmt.Println("Skills:")
			ids := make([]string, 0, len(prog.Skills))
			for id := range prog.Skills {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				r := prog.Skills[id]
				fmt.Printf("  %-28s mastery %3d   %d✓ %d✗   stage %d\n",
					curriculum.SkillTitle(id), r.Mastery, r.Correct, r.Wrong, r.Stage)
			}
			fmt.Println()
		}

		if len(prog.Errors.ByType) > 0 {
			fmt.Println("Errors by type:")
			types := make([]string, 0, len(prog.Errors.ByType))
			for t := range prog.Errors.ByType {
				types = append(types, t)
			}
			sort.Strings(types)
			for _, t := range types {
				fmt.Printf("  %-10s %d\n", t, prog.Errors.ByType[t])
			}
		}
		return nil
	},
}
