package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// csvHeader mirrors the classroom table plus per-learner totals and the
// auto recommendation.
var csvHeader = []string{
	"school", "class", "grade", "student", "profileId",
	"active7d", "lastActiveAt", "totalSessions", "totalMinutes",
	"unitsSeen", "unitsPassed", "checkpointsTried", "checkpointsPassed",
	"fairMastery", "skillCoverage",
	"topDifficulty1", "topDifficulty1Mastery", "topDifficulty2", "topDifficulty2Mastery",
	"topErrorType", "topErrorCount", "inclusionFlags", "recommendation",
}

func formatLastActive(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04")
}

// WriteCSV streams the class rows as the delimited export teachers load into
// a spreadsheet.
func WriteCSV(w io.Writer, school, classGroup string, rows []LearnerRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		d1, d1m, d2, d2m := "", "", "", ""
		if len(r.Difficulties) > 0 {
			d1 = r.Difficulties[0].Title
			d1m = strconv.Itoa(r.Difficulties[0].Mastery)
		}
		if len(r.Difficulties) > 1 {
			d2 = r.Difficulties[1].Title
			d2m = strconv.Itoa(r.Difficulties[1].Mastery)
		}
		errCount := ""
		if r.TopErrorType != "" {
			errCount = strconv.Itoa(r.TopErrorCount)
		}
		record := []string{
			school, classGroup,
			strconv.Itoa(r.GradeYear), r.FirstName, r.ProfileID,
			strconv.Itoa(r.WeeklyActiveDays), formatLastActive(r.LastActiveAt),
			strconv.Itoa(r.TotalSessions), strconv.Itoa(r.TotalMinutes),
			strconv.Itoa(r.Units.UnitsSeen), strconv.Itoa(r.Units.UnitsPassed),
			strconv.Itoa(r.Units.BossTried), strconv.Itoa(r.Units.BossPassed),
			strconv.Itoa(r.FairMastery), strconv.Itoa(r.Coverage),
			d1, d1m, d2, d2m,
			r.TopErrorType, errCount,
			strings.Join(r.InclusionFlags, "|"),
			r.Recommendation,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row for %s: %w", r.ProfileID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
