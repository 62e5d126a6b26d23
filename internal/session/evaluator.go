package session

import (
	"math"
	"time"

	"github.com/matemagica/matemagica/internal/curriculum"
	"github.com/matemagica/matemagica/internal/profile"
	"github.com/matemagica/matemagica/internal/questiongen"
	"github.com/matemagica/matemagica/internal/streak"
)

// Time multiplier tuning. Each wrong answer under a running timer shaves the
// budget; a correct answer restores it in full.
const (
	multiplierStep  = 0.85
	multiplierFloor = 0.60
)

// Outcome reports how one question went.
type Outcome struct {
	Correct       bool
	TimedOut      bool
	CorrectAnswer string
	XP            int
	Coins         int
}

// Summary is the result of a finished sitting.
type Summary struct {
	Score            float64
	Passed           bool
	Stars            int
	XP               int
	Coins            int
	EstimatedMinutes int
	NodeRecord       *profile.NodeRecord
	UnlockedUnitID   string
	StreakCurrent    int
	StreakFreezeUsed int
}

// Evaluator folds answers into the learner's progress document.
type Evaluator struct {
	Progress *profile.Progress
	now      func() time.Time
}

// NewEvaluator builds an evaluator over a progress document. A nil clock
// means time.Now.
func NewEvaluator(prog *profile.Progress, now func() time.Time) *Evaluator {
	if now == nil {
		now = time.Now
	}
	return &Evaluator{Progress: prog, now: now}
}

func xpBase(d curriculum.Difficulty) int {
	switch d {
	case curriculum.DifficultyEasy:
		return 8
	case curriculum.DifficultyHard:
		return 14
	default:
		return 10
	}
}

func coinBase(d curriculum.Difficulty) int {
	switch d {
	case curriculum.DifficultyEasy:
		return 1
	case curriculum.DifficultyHard:
		return 3
	default:
		return 2
	}
}

// Submit grades the current question against the chosen option and advances
// the session. Correct answers pay full rewards and restore the time
// multiplier; wrong ones pay consolation XP, log the question's error type
// and tighten the timer.
func (e *Evaluator) Submit(s *Session, answer string) Outcome {
	q := s.Current()
	if q == nil {
		return Outcome{}
	}
	now := e.now()
	led := e.Progress.Ledger(e.now)

	correct := answer == q.Correct
	out := Outcome{Correct: correct, CorrectAnswer: q.Correct}

	if correct {
		s.Correct++
		s.TimeMultiplier = 1.0
		out.XP = xpBase(s.Difficulty)
		out.Coins = coinBase(s.Difficulty)
		if s.Kind == KindCheckpoint {
			out.XP += 4
			out.Coins++
		}
	} else {
		s.Wrong++
		if s.TimerOn {
			s.TimeMultiplier *= multiplierStep
			if s.TimeMultiplier < multiplierFloor {
				s.TimeMultiplier = multiplierFloor
			}
		}
		base := xpBase(s.Difficulty)
		out.XP = base / 4
		if out.XP < 2 {
			out.XP = 2
		}
		e.Progress.Errors.Record(q.ErrorType, q.SkillID, now)
	}

	led.RecordOutcome(q.SkillID, correct, s.Difficulty)
	s.EarnedXP += out.XP
	s.EarnedCoins += out.Coins
	e.Progress.XP += out.XP
	e.Progress.Coins += out.Coins
	s.Index++
	return out
}

// Timeout grades the current question as missed on time. It counts as wrong
// for the ledger and the error log, pays nothing, and leaves the time
// multiplier alone.
func (e *Evaluator) Timeout(s *Session) Outcome {
	q := s.Current()
	if q == nil {
		return Outcome{}
	}
	now := e.now()

	s.Wrong++
	e.Progress.Errors.Record(questiongen.ErrTime, q.SkillID, now)
	e.Progress.Ledger(e.now).RecordOutcome(q.SkillID, false, s.Difficulty)
	s.Index++
	return Outcome{TimedOut: true, CorrectAnswer: q.Correct}
}

// Finalize closes out the sitting: node record, weekly record, usage history
// and the streak. Safe to call once per session, after the last question.
func (e *Evaluator) Finalize(s *Session) *Summary {
	now := e.now()
	score := s.Score()
	passed := s.Passed()

	sum := &Summary{
		Score:  score,
		Passed: passed,
		Stars:  StarsForScore(score),
		XP:     s.EarnedXP,
		Coins:  s.EarnedCoins,
	}

	if s.NodeID != "" {
		rec := e.Progress.RecordNodeAttempt(s.NodeID, score, passed, StarsForScore(score), now)
		sum.NodeRecord = rec
		sum.Stars = rec.Stars
		if s.Kind == KindCheckpoint && passed {
			if node, err := curriculum.GetNode(s.NodeID); err == nil {
				if next := curriculum.NextUnit(node.UnitID); next != nil {
					sum.UnlockedUnitID = next.ID
				}
			}
		}
	}

	if s.Kind == KindWeeklyEvent {
		rec := e.Progress.WeeklyFor(curriculum.WeekKey(now))
		if len(s.Questions) <= curriculum.WeeklyWarmupSize {
			rec.WarmupDone = true
		} else {
			if score > rec.ChallengeBest {
				rec.ChallengeBest = score
			}
			if passed {
				rec.ChallengePassed = true
			}
		}
		rec.LastAt = &now
	}

	perQuestion := 0.9
	if s.TimerOn {
		perQuestion = 0.6
	}
	minutes := int(math.Round(float64(len(s.Questions)) * perQuestion))
	if minutes < 1 {
		minutes = 1
	}
	sum.EstimatedMinutes = minutes

	e.Progress.History.TotalSessions++
	e.Progress.History.TotalMinutes += minutes
	e.Progress.History.LastActiveAt = &now
	e.Progress.History.LastSessionID = s.ID

	day := streak.DayKey(now)
	used, _ := e.Progress.Streak.Reconcile(day)
	e.Progress.Streak.MarkActive(day)
	sum.StreakCurrent = e.Progress.Streak.Current
	sum.StreakFreezeUsed = used

	return sum
}
