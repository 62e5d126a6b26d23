package session

import (
	"time"

	"github.com/matemagica/matemagica/internal/curriculum"
	"github.com/matemagica/matemagica/internal/questiongen"
)

// PassScore is the score ratio needed to pass any sitting.
const PassScore = 0.80

// Star thresholds on the node's best score.
const (
	threeStarScore = 0.93
	twoStarScore   = 0.85
)

// Session is one sitting in progress. The evaluator mutates it question by
// question; the TUI only reads it.
type Session struct {
	ID         string
	Kind       Kind
	NodeID     string
	TrackKey   string
	Difficulty curriculum.Difficulty

	Questions []*questiongen.Question
	Index     int

	TimerOn        bool
	BaseSeconds    int
	TimeMultiplier float64

	Correct     int
	Wrong       int
	EarnedXP    int
	EarnedCoins int

	StartedAt time.Time
}

// Current returns the question under play, or nil when the sitting is over.
func (s *Session) Current() *questiongen.Question {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return nil
	}
	return s.Questions[s.Index]
}

// Done reports whether every question has been answered.
func (s *Session) Done() bool {
	return s.Index >= len(s.Questions)
}

// QuestionSeconds returns the running per-question budget with the time
// multiplier applied. Only meaningful when the timer is on.
func (s *Session) QuestionSeconds() float64 {
	return float64(s.BaseSeconds) * s.TimeMultiplier
}

// Score is the ratio of correct answers over all questions.
func (s *Session) Score() float64 {
	if len(s.Questions) == 0 {
		return 0
	}
	return float64(s.Correct) / float64(len(s.Questions))
}

// Passed applies the exact pass threshold to the session score.
func (s *Session) Passed() bool {
	return s.Score() >= PassScore
}

// StarsForScore converts a best score into a star rating.
func StarsForScore(best float64) int {
	switch {
	case best >= threeStarScore:
		return 3
	case best >= twoStarScore:
		return 2
	case best >= PassScore:
		return 1
	default:
		return 0
	}
}
