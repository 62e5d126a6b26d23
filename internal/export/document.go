package export

import (
	"sort"
	"time"

	"github.com/matemagica/matemagica/internal/curriculum"
	"github.com/matemagica/matemagica/internal/ledger"
	"github.com/matemagica/matemagica/internal/profile"
	"github.com/matemagica/matemagica/internal/streak"
)

// Schema identity of the full export document.
const (
	DocSchema        = "progress_export"
	DocSchemaVersion = "1.2"
)

// AppInfo identifies the producing application inside a document.
type AppInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Overview is the headline numbers block of an export.
type Overview struct {
	StartEntry       string     `json:"startEntry"` // track key, not raw grade
	CurrentYearTrack string     `json:"currentYearTrack"`
	TotalSessions    int        `json:"totalSessions"`
	TotalMinutes     int        `json:"totalMinutes"`
	WeeklyActiveDays int        `json:"weeklyActiveDays"`
	LastActiveAt     *time.Time `json:"lastActiveAt"`
	FirstSeenAt      time.Time  `json:"firstSeenAt"`
}

// UnitResult is one curriculum node's outcome inside an export.
type UnitResult struct {
	NodeID        string     `json:"nodeId"`
	Attempts      int        `json:"attempts"`
	BestScore     float64    `json:"bestScore"`
	Passed        bool       `json:"passed"`
	Stars         int        `json:"stars"`
	LastAttemptAt *time.Time `json:"lastAttemptAt"`
}

// Inclusion mirrors the accessibility toggles a teacher needs to see.
type Inclusion struct {
	FocusMode    bool `json:"focusMode"`
	NoTimer      bool `json:"noTimer"`
	ReadingEasy  bool `json:"readingEasy"`
	ReduceMotion bool `json:"reduceMotion"`
}

// SettingsSection wraps the inclusion block to keep the document shape stable.
type SettingsSection struct {
	Inclusion Inclusion `json:"inclusion"`
}

// ErrorsSection carries the error log of an export.
type ErrorsSection struct {
	ByType map[string]int       `json:"byType"`
	Recent []profile.ErrorEntry `json:"recent"`
}

// Document is the full learner export, schema progress_export v1.2. It is
// what teachers import from files.
type Document struct {
	Schema        string                         `json:"schema"`
	SchemaVersion string                         `json:"schemaVersion"`
	ExportedAt    time.Time                      `json:"exportedAt"`
	App           AppInfo                        `json:"app"`
	ProfileID     string                         `json:"profileId"`
	Student       profile.Student                `json:"student"`
	School        profile.School                 `json:"school"`
	Overview      Overview                       `json:"overview"`
	Units         []UnitResult                   `json:"units"`
	Skills        map[string]*ledger.SkillRecord `json:"skills"`
	Errors        ErrorsSection                  `json:"errors"`
	Settings      SettingsSection                `json:"settings"`
}

// Build assembles the export document from a progress snapshot. It also
// refreshes the progress's weeklyActiveDays, as the export is the only
// consumer of that field.
func Build(prog *profile.Progress, appVersion string, now time.Time) *Document {
	weeklyDays := 0
	if prog.Streak.ActiveWithin(streak.DayKey(now), 6) {
		weeklyDays = 1
	}
	prog.History.WeeklyActiveDays = weeklyDays

	units := make([]UnitResult, 0, len(prog.Units))
	for nodeID, r := range prog.Units {
		units = append(units, UnitResult{
			NodeID:        nodeID,
			Attempts:      r.Attempts,
			BestScore:     r.BestScore,
			Passed:        r.Passed,
			Stars:         r.Stars,
			LastAttemptAt: r.LastAttemptAt,
		})
	}
	sort.Slice(units, func(i, j int) bool { return units[i].NodeID < units[j].NodeID })

	return &Document{
		Schema:        DocSchema,
		SchemaVersion: DocSchemaVersion,
		ExportedAt:    now,
		App:           AppInfo{Name: "matemagica", Version: appVersion},
		ProfileID:     prog.ProfileID,
		Student:       prog.Student,
		School:        prog.School,
		Overview: Overview{
			StartEntry:       curriculum.TrackKeyForGrade(prog.StartEntry),
			CurrentYearTrack: prog.CurrentYearTrack,
			TotalSessions:    prog.History.TotalSessions,
			TotalMinutes:     prog.History.TotalMinutes,
			WeeklyActiveDays: weeklyDays,
			LastActiveAt:     prog.History.LastActiveAt,
			FirstSeenAt:      prog.History.FirstSeenAt,
		},
		Units:  units,
		Skills: prog.Skills,
		Errors: ErrorsSection{ByType: prog.Errors.ByType, Recent: prog.Errors.Recent},
		Settings: SettingsSection{Inclusion: Inclusion{
			FocusMode:    prog.Settings.FocusMode,
			NoTimer:      prog.Settings.NoTimer,
			ReadingEasy:  prog.Settings.ReadingEasy,
			ReduceMotion: prog.Settings.ReduceMotion,
		}},
	}
}
