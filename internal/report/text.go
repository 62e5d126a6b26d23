package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/matemagica/matemagica/internal/curriculum"
)

// TextReport renders the class summary as the printable handout teachers
// take into the next lesson. Output is deterministic for a given summary.
func TextReport(sum ClassSummary, now time.Time) string {
	periodEnd := now.Format("2006-01-02")
	periodStart := now.AddDate(0, 0, -6).Format("2006-01-02")

	var b strings.Builder
	fmt.Fprintf(&b, "School: %s\n", sum.School)
	fmt.Fprintf(&b, "Class: %s\n", sum.ClassGroup)
	fmt.Fprintf(&b, "Period: %s to %s (last 7 days)\n", periodStart, periodEnd)
	fmt.Fprintf(&b, "Students imported: %d | Active this week: %d\n", sum.Students, sum.ActiveStudents)
	b.WriteString("\n")

	b.WriteString("1) Overview\n")
	fmt.Fprintf(&b, "- Progress (units): average %d/%d\n", sum.AvgUnitsPassed, sum.AvgUnitsSeen)
	fmt.Fprintf(&b, "- Average fair mastery: %d\n", sum.AvgFairMastery)
	fmt.Fprintf(&b, "- Checkpoints (80%%): %d/%d\n", sum.BossPassed, sum.BossTried)
	b.WriteString("\n")

	b.WriteString("2) Main difficulties (top 3)\n")
	if len(sum.TopDifficulties) == 0 {
		b.WriteString("- none\n")
	} else {
		for i, sid := range sum.TopDifficulties {
			fmt.Fprintf(&b, "%d) %s\n", i+1, curriculum.SkillTitle(sid))
		}
	}
	b.WriteString("\n")

	b.WriteString("3) Most frequent errors\n")
	errs := sortedHistogram(sum.ErrorHistogram, 3)
	if len(errs) == 0 {
		b.WriteString("- none\n")
	} else {
		for _, e := range errs {
			fmt.Fprintf(&b, "- %s: %d\n", e.key, e.count)
		}
	}
	b.WriteString("\n")

	b.WriteString("4) Action plan (10 min) for the next lesson\n")
	b.WriteString("- 3 min: micro-drill (facts or prerequisite)\n")
	b.WriteString("- 5 min: spaced review (5 due items)\n")
	b.WriteString("- 2 min: mini-check (2 checkpoint items)\n")
	b.WriteString("\n")

	b.WriteString("5) Notes\n")
	b.WriteString("- Split groups: Foundations (<50), Consolidating (50-69), Advancing (>=70).\n")
	b.WriteString("- For inclusion: prefer untimed, easy reading, short sessions (3 min).\n")
	b.WriteString("\n")
	b.WriteString("Signature: ______________________________\n")
	return b.String()
}

type histEntry struct {
	key   string
	count int
}

func sortedHistogram(hist map[string]int, limit int) []histEntry {
	out := make([]histEntry, 0, len(hist))
	for k, v := range hist {
		out = append(out, histEntry{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
