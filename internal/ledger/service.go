package ledger

import (
	"sort"
	"strings"
	"time"

	"github.com/matemagica/matemagica/internal/curriculum"
)

// StartMastery is the mastery a skill begins with before any attempts.
const StartMastery = 45

// ReviewIntervals are the spaced-repetition gaps in days. A skill at stage
// n is rescheduled intervals[clamp(n-1, 0, len-1)] days out.
var ReviewIntervals = []int{1, 3, 7, 14, 30, 60}

// MaxStage is the highest review stage a skill can reach.
var MaxStage = len(ReviewIntervals)

// Service owns the per-skill ledger for one learner. It is loaded from and
// saved back into the learner's progress document; the clock is injected so
// scheduling is testable.
type Service struct {
	skills map[string]*SkillRecord
	now    func() time.Time
}

// NewService wraps an existing skill map (it is mutated in place). A nil map
// starts an empty ledger; a nil clock uses time.Now.
func NewService(skills map[string]*SkillRecord, now func() time.Time) *Service {
	if skills == nil {
		skills = make(map[string]*SkillRecord)
	}
	if now == nil {
		now = time.Now
	}
	return &Service{skills: skills, now: now}
}

// GetOrCreate returns the record for a skill, creating it at the starting
// mastery on first contact.
func (s *Service) GetOrCreate(skillID string) *SkillRecord {
	if r, ok := s.skills[skillID]; ok {
		return r
	}
	r := &SkillRecord{Mastery: StartMastery}
	s.skills[skillID] = r
	return r
}

// Get returns the record for a skill, or nil if never seen.
func (s *Service) Get(skillID string) *SkillRecord {
	return s.skills[skillID]
}

// Skills exposes the underlying map for persistence.
func (s *Service) Skills() map[string]*SkillRecord {
	return s.skills
}

func masteryGain(d curriculum.Difficulty) int {
	switch d {
	case curriculum.DifficultyEasy:
		return 2
	case curriculum.DifficultyHard:
		return 4
	default:
		return 3
	}
}

func masteryLoss(d curriculum.Difficulty) int {
	switch d {
	case curriculum.DifficultyEasy:
		return 4
	case curriculum.DifficultyHard:
		return 6
	default:
		return 5
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RecordOutcome applies one answer to a skill: mastery moves by the
// difficulty-banded gain or loss, the review stage steps up or down, and the
// next review is rescheduled from now. Every outcome reschedules, wrong
// answers included.
func (s *Service) RecordOutcome(skillID string, correct bool, d curriculum.Difficulty) *SkillRecord {
	r := s.GetOrCreate(skillID)
	now := s.now()

	if correct {
		r.Correct++
		r.Mastery = clamp(r.Mastery+masteryGain(d), 0, 100)
		r.Stage = clamp(r.Stage+1, 0, MaxStage)
	} else {
		r.Wrong++
		r.Mastery = clamp(r.Mastery-masteryLoss(d), 0, 100)
		r.Stage = clamp(r.Stage-1, 0, MaxStage)
	}

	days := ReviewIntervals[clamp(r.Stage-1, 0, len(ReviewIntervals)-1)]
	next := now.AddDate(0, 0, days)
	r.NextReviewAt = &next
	r.LastSeenAt = &now
	return r
}

// DueSkills returns up to limit skill IDs whose next review is at or before
// now, most overdue first. Skills never scheduled are not due.
func (s *Service) DueSkills(limit int) []string {
	now := s.now()
	type due struct {
		id string
		at time.Time
	}
	var list []due
	for id, r := range s.skills {
		if r.NextReviewAt != nil && !r.NextReviewAt.After(now) {
			list = append(list, due{id: id, at: *r.NextReviewAt})
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].at.Equal(list[j].at) {
			return list[i].at.Before(list[j].at)
		}
		return list[i].id < list[j].id
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	ids := make([]string, len(list))
	for i, d := range list {
		ids[i] = d.id
	}
	return ids
}

// WeakestInScope returns up to limit skills under the given ID prefix with at
// least three attempts, lowest mastery first. The attempt floor keeps barely
// touched skills from crowding the weak slots.
func (s *Service) WeakestInScope(prefix string, limit int) []string {
	type weak struct {
		id      string
		mastery int
	}
	var list []weak
	for id, r := range s.skills {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		if r.Attempts() < 3 {
			continue
		}
		list = append(list, weak{id: id, mastery: r.Mastery})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].mastery != list[j].mastery {
			return list[i].mastery < list[j].mastery
		}
		return list[i].id < list[j].id
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	ids := make([]string, len(list))
	for i, w := range list {
		ids[i] = w.id
	}
	return ids
}
