package curriculum

import (
	"fmt"
	"time"
)

// WeeklyTheme is one of the rotating olympiad-style strands.
type WeeklyTheme struct {
	SkillID string
	Title   string
}

var weeklyThemes = []WeeklyTheme{
	{SkillID: "ob_patterns", Title: "Patterns"},
	{SkillID: "ob_parity", Title: "Parity"},
	{SkillID: "ob_counting", Title: "Counting"},
}

// ThemeFor returns the weekly event theme for the ISO week containing t.
// Themes rotate week over week so every strand comes around.
func ThemeFor(t time.Time) WeeklyTheme {
	_, week := t.ISOWeek()
	return weeklyThemes[week%len(weeklyThemes)]
}

// WeekKey returns a stable "year-Wweek" key for weekly event records.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeeklyWarmupSize and WeeklyChallengeSize size the two halves of the
// weekly event.
const (
	WeeklyWarmupSize    = 3
	WeeklyChallengeSize = 8
)
