package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/matemagica/matemagica/internal/export"
)

// UnitStats summarizes curriculum progress out of one export's units list.
type UnitStats struct {
	UnitsSeen   int
	UnitsPassed int
	BossTried   int
	BossPassed  int
}

// unitStatsFrom derives unit-level progress from node records. A unit counts
// as passed when its checkpoint node is passed.
func unitStatsFrom(doc *export.Document) UnitStats {
	seen := make(map[string]bool)
	passed := make(map[string]bool)
	var stats UnitStats
	for _, u := range doc.Units {
		parts := strings.Split(u.NodeID, "_")
		if len(parts) < 2 {
			continue
		}
		unitKey := parts[0] + "_" + parts[1]
		seen[unitKey] = true
		if strings.HasSuffix(u.NodeID, "_b1") {
			if u.Attempts >= 1 {
				stats.BossTried++
			}
			if u.Passed {
				stats.BossPassed++
				passed[unitKey] = true
			}
		}
	}
	stats.UnitsSeen = len(seen)
	stats.UnitsPassed = len(passed)
	return stats
}

// topErrorType returns the most frequent error type and its count, with an
// alphabetical tiebreak so output is stable. Empty logs return "".
func topErrorType(byType map[string]int) (string, int) {
	best, bestCount := "", 0
	for et, n := range byType {
		if n > bestCount || (n == bestCount && n > 0 && et < best) {
			best, bestCount = et, n
		}
	}
	return best, bestCount
}

// LearnerRow is one learner's line in the classroom table and CSV.
type LearnerRow struct {
	ProfileID        string
	FirstName        string
	GradeYear        int
	Units            UnitStats
	FairMastery      int
	Coverage         int
	WeeklyActiveDays int
	LastActiveAt     *time.Time
	TotalSessions    int
	TotalMinutes     int
	Difficulties     []Difficulty
	TopErrorType     string
	TopErrorCount    int
	InclusionFlags   []string
	Recommendation   string
}

// buildRow flattens one export document into its report row.
func buildRow(doc *export.Document, now time.Time) LearnerRow {
	mastery, coverage := FairMastery(doc.Skills, now)
	errType, errCount := topErrorType(doc.Errors.ByType)

	var flags []string
	inc := doc.Settings.Inclusion
	if inc.FocusMode {
		flags = append(flags, "focusMode")
	}
	if inc.NoTimer {
		flags = append(flags, "noTimer")
	}
	if inc.ReadingEasy {
		flags = append(flags, "readingEasy")
	}
	if inc.ReduceMotion {
		flags = append(flags, "reduceMotion")
	}

	return LearnerRow{
		ProfileID:        doc.ProfileID,
		FirstName:        doc.Student.FirstName,
		GradeYear:        doc.Student.GradeYear,
		Units:            unitStatsFrom(doc),
		FairMastery:      mastery,
		Coverage:         coverage,
		WeeklyActiveDays: doc.Overview.WeeklyActiveDays,
		LastActiveAt:     doc.Overview.LastActiveAt,
		TotalSessions:    doc.Overview.TotalSessions,
		TotalMinutes:     doc.Overview.TotalMinutes,
		Difficulties:     TopDifficulties(doc.Skills, 2, now),
		TopErrorType:     errType,
		TopErrorCount:    errCount,
		InclusionFlags:   flags,
		Recommendation:   recommend(errType, mastery),
	}
}

// recommend turns the dominant error type and mastery band into a short
// next-lesson suggestion for the teacher.
func recommend(topError string, fairMastery int) string {
	switch topError {
	case "E_FACT":
		return "Fact micro-drill (3 min) plus 5 spaced-review items."
	case "E_PLACE":
		return "Place value and decimals work (8 min) plus 2 checkpoint items."
	case "E_READ":
		return "Word problems in steps: what is asked, what is given (10 min)."
	}
	if fairMastery < 50 {
		return "Back to basics: two days of short drills plus daily spaced review."
	}
	return "Daily spaced review (3 items), then attempt the checkpoint (80%)."
}

// ClassSummary aggregates one class group for the text report.
type ClassSummary struct {
	School          string
	ClassGroup      string
	Students        int
	ActiveStudents  int
	AvgFairMastery  int
	AvgUnitsSeen    int
	AvgUnitsPassed  int
	BossTried       int
	BossPassed      int
	TopDifficulties []string       // skill IDs, majority vote over learner top-3s
	ErrorHistogram  map[string]int // error type -> total count across the class
}

// Rollup builds the per-learner rows and the class aggregate for one class
// group's documents.
func Rollup(school, classGroup string, docs []*export.Document, now time.Time) ([]LearnerRow, ClassSummary) {
	rows := make([]LearnerRow, len(docs))
	sum := ClassSummary{
		School:         school,
		ClassGroup:     classGroup,
		Students:       len(docs),
		ErrorHistogram: make(map[string]int),
	}

	votes := make(map[string]int)
	masterySum := 0
	unitsSeenSum, unitsPassedSum := 0, 0
	for i, doc := range docs {
		rows[i] = buildRow(doc, now)
		if rows[i].WeeklyActiveDays > 0 {
			sum.ActiveStudents++
		}
		masterySum += rows[i].FairMastery
		unitsSeenSum += rows[i].Units.UnitsSeen
		unitsPassedSum += rows[i].Units.UnitsPassed
		sum.BossTried += rows[i].Units.BossTried
		sum.BossPassed += rows[i].Units.BossPassed

		for _, d := range TopDifficulties(doc.Skills, 3, now) {
			votes[d.SkillID]++
		}
		for et, n := range doc.Errors.ByType {
			sum.ErrorHistogram[et] += n
		}
	}

	if len(docs) > 0 {
		n := float64(len(docs))
		sum.AvgFairMastery = int(math.Round(float64(masterySum) / n))
		sum.AvgUnitsSeen = int(math.Round(float64(unitsSeenSum) / n))
		sum.AvgUnitsPassed = int(math.Round(float64(unitsPassedSum) / n))
	}

	type vote struct {
		id string
		n  int
	}
	ranked := make([]vote, 0, len(votes))
	for id, n := range votes {
		ranked = append(ranked, vote{id, n})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].n != ranked[j].n {
			return ranked[i].n > ranked[j].n
		}
		return ranked[i].id < ranked[j].id
	})
	for i := 0; i < len(ranked) && i < 3; i++ {
		sum.TopDifficulties = append(sum.TopDifficulties, ranked[i].id)
	}

	return rows, sum
}
