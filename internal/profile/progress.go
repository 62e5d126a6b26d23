package profile

import (
	"time"

	"github.com/matemagica/matemagica/internal/curriculum"
	"github.com/matemagica/matemagica/internal/ledger"
	"github.com/matemagica/matemagica/internal/streak"
)

// Profile is the identity record shown on the profile picker.
type Profile struct {
	ID         string    `json:"profileId"`
	FirstName  string    `json:"firstName"`
	GradeYear  int       `json:"gradeYear"`
	ClassGroup string    `json:"classGroup"`
	SchoolName string    `json:"schoolName"`
	StartEntry int       `json:"startEntry"` // grade the learner entered at
	CreatedAt  time.Time `json:"createdAt"`
}

// Student is the identity subset embedded in progress and exports.
type Student struct {
	FirstName  string `json:"firstName"`
	GradeYear  int    `json:"gradeYear"`
	ClassGroup string `json:"classGroup"`
}

// School is the school subset embedded in progress and exports.
type School struct {
	Name string `json:"name"`
}

// Settings are the learner-facing toggles. The inclusion pack is a bundle
// that flips the accessibility ones on together.
type Settings struct {
	NoTimer       bool `json:"noTimer"`
	ReadingEasy   bool `json:"readingEasy"`
	FocusMode     bool `json:"focusMode"`
	ReduceMotion  bool `json:"reduceMotion"`
	InclusionPack bool `json:"inclusionPack"`
}

// EnableInclusionPack turns on the full accessibility bundle.
func (s *Settings) EnableInclusionPack() {
	s.InclusionPack = true
	s.FocusMode = true
	s.NoTimer = true
	s.ReadingEasy = true
	s.ReduceMotion = true
}

// History tracks lifetime usage counters.
type History struct {
	TotalSessions    int        `json:"totalSessions"`
	TotalMinutes     int        `json:"totalMinutes"`
	FirstSeenAt      time.Time  `json:"firstSeenAt"`
	LastActiveAt     *time.Time `json:"lastActiveAt"`
	LastSessionID    string     `json:"lastSessionId,omitempty"`
	WeeklyActiveDays int        `json:"weeklyActiveDays"`
}

// NodeRecord is the stored result for one curriculum node.
type NodeRecord struct {
	Attempts      int        `json:"attempts"`
	BestScore     float64    `json:"bestScore"`
	Passed        bool       `json:"passed"`
	Stars         int        `json:"stars"`
	LastAttemptAt *time.Time `json:"lastAttemptAt"`
}

// WeeklyRecord tracks one ISO week of the weekly event.
type WeeklyRecord struct {
	WarmupDone      bool       `json:"warmupDone"`
	ChallengeBest   float64    `json:"challengeBest"`
	ChallengePassed bool       `json:"challengePassed"`
	LastAt          *time.Time `json:"lastAt"`
}

// Progress is the whole learner state, persisted as one JSON document.
type Progress struct {
	ProfileID        string                          `json:"profileId"`
	Student          Student                         `json:"student"`
	School           School                          `json:"school"`
	StartEntry       int                             `json:"startEntry"`
	CurrentYearTrack string                          `json:"currentYearTrack"`
	XP               int                             `json:"xp"`
	Coins            int                             `json:"coins"`
	Streak           streak.State                    `json:"streak"`
	History          History                         `json:"history"`
	Settings         Settings                        `json:"settings"`
	Units            map[string]*NodeRecord          `json:"units"`
	Skills           map[string]*ledger.SkillRecord  `json:"skills"`
	Errors           ErrorLog                        `json:"errors"`
	Weekly           map[string]*WeeklyRecord        `json:"weekly"`
}

// NewProgress builds a fresh progress document for a profile.
func NewProgress(p *Profile, now time.Time) *Progress {
	return &Progress{
		ProfileID:        p.ID,
		Student:          Student{FirstName: p.FirstName, GradeYear: p.GradeYear, ClassGroup: p.ClassGroup},
		School:           School{Name: p.SchoolName},
		StartEntry:       p.StartEntry,
		CurrentYearTrack: curriculum.TrackKeyForGrade(p.StartEntry),
		History:          History{FirstSeenAt: now},
		Units:            make(map[string]*NodeRecord),
		Skills:           make(map[string]*ledger.SkillRecord),
		Errors:           NewErrorLog(),
		Weekly:           make(map[string]*WeeklyRecord),
	}
}

// normalize repairs nil maps after JSON decoding of older documents.
func (p *Progress) normalize() {
	if p.Units == nil {
		p.Units = make(map[string]*NodeRecord)
	}
	if p.Skills == nil {
		p.Skills = make(map[string]*ledger.SkillRecord)
	}
	if p.Errors.ByType == nil {
		p.Errors.ByType = make(map[string]int)
	}
	if p.Weekly == nil {
		p.Weekly = make(map[string]*WeeklyRecord)
	}
}

// Ledger wraps the skill map in a ledger service using the given clock.
func (p *Progress) Ledger(now func() time.Time) *ledger.Service {
	return ledger.NewService(p.Skills, now)
}

// PassedNodes returns the set of node IDs whose checkpoint (or lesson) has
// been passed, as curriculum unlock checks expect.
func (p *Progress) PassedNodes() map[string]bool {
	out := make(map[string]bool, len(p.Units))
	for id, r := range p.Units {
		if r.Passed {
			out[id] = true
		}
	}
	return out
}

// RecordNodeAttempt folds one finished sitting into the node record.
// Best score and stars only improve; passed is sticky.
func (p *Progress) RecordNodeAttempt(nodeID string, score float64, passed bool, stars int, at time.Time) *NodeRecord {
	r := p.Units[nodeID]
	if r == nil {
		r = &NodeRecord{}
		p.Units[nodeID] = r
	}
	r.Attempts++
	if score > r.BestScore {
		r.BestScore = score
	}
	if stars > r.Stars {
		r.Stars = stars
	}
	if passed {
		r.Passed = true
	}
	r.LastAttemptAt = &at
	return r
}

// WeeklyFor returns the record for a week key, creating it on demand.
func (p *Progress) WeeklyFor(weekKey string) *WeeklyRecord {
	r := p.Weekly[weekKey]
	if r == nil {
		r = &WeeklyRecord{}
		p.Weekly[weekKey] = r
	}
	return r
}
