package report

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
)

// RenderTable draws the classroom overview for the terminal. One row per
// learner, same ordering the CSV uses.
func RenderTable(school, classGroup string, rows []LearnerRow) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	lowStyle := cellStyle.Foreground(lipgloss.Color("1"))
	midStyle := cellStyle.Foreground(lipgloss.Color("3"))
	highStyle := cellStyle.Foreground(lipgloss.Color("2"))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Student", "Grade", "Units", "Checkpoints", "Mastery", "Active", "Difficulties", "Top error", "Inclusion").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 4 && row >= 0 && row < len(rows) {
				switch m := rows[row].FairMastery; {
				case m < 50:
					return lowStyle
				case m < 70:
					return midStyle
				default:
					return highStyle
				}
			}
			return cellStyle
		})

	for _, r := range rows {
		mastery := strconv.Itoa(r.FairMastery)
		if r.Coverage < 5 {
			mastery += " (thin)"
		}
		var diffs []string
		for _, d := range r.Difficulties {
			diffs = append(diffs, fmt.Sprintf("%s (%d)", d.Title, d.Mastery))
		}
		diffText := strings.Join(diffs, "; ")
		if diffText == "" {
			diffText = "-"
		}
		errText := "-"
		if r.TopErrorType != "" {
			errText = fmt.Sprintf("%s (%d)", r.TopErrorType, r.TopErrorCount)
		}
		inclusion := strings.Join(r.InclusionFlags, ",")
		if inclusion == "" {
			inclusion = "-"
		}

		t.Row(
			r.FirstName,
			strconv.Itoa(r.GradeYear),
			fmt.Sprintf("%d/%d", r.Units.UnitsPassed, r.Units.UnitsSeen),
			fmt.Sprintf("%d/%d", r.Units.BossPassed, r.Units.BossTried),
			mastery,
			strconv.Itoa(r.WeeklyActiveDays),
			diffText,
			errText,
			inclusion,
		)
	}

	title := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%s - class %s", school, classGroup))
	return title + "\n" + t.Render() + "\n"
}
