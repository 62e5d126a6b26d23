package session

import "github.com/matemagica/matemagica/internal/curriculum"

// Kind identifies what flavour of sitting is being composed.
type Kind string

const (
	KindLesson           Kind = "lesson"
	KindReview           Kind = "review"
	KindCheckpoint       Kind = "checkpoint"
	KindFreePractice     Kind = "freePractice"
	KindSpacedReview     Kind = "spacedReview"
	KindErrorRemediation Kind = "errorRemediation"
	KindWeeklyEvent      Kind = "weeklyEvent"
	KindDiagnostic       Kind = "diagnostic"
)

// Label returns the display name for the session tag.
func (k Kind) Label() string {
	switch k {
	case KindLesson:
		return "Lesson"
	case KindReview:
		return "Review"
	case KindCheckpoint:
		return "Checkpoint (80%)"
	case KindFreePractice:
		return "Practice"
	case KindSpacedReview:
		return "Spaced review"
	case KindErrorRemediation:
		return "Error training"
	case KindWeeklyEvent:
		return "Weekly event"
	case KindDiagnostic:
		return "Placement check"
	default:
		return "Session"
	}
}

// KindForNode maps a curriculum node to its session kind.
func KindForNode(n *curriculum.Node) Kind {
	switch n.Kind {
	case curriculum.NodeReview:
		return KindReview
	case curriculum.NodeCheckpoint:
		return KindCheckpoint
	default:
		return KindLesson
	}
}

// QuestionSeconds returns the per-question budget for this kind at the given
// difficulty, before the time multiplier. Checkpoints get the full base;
// reviews trim a little; everything else trims more.
func QuestionSeconds(k Kind, d curriculum.Difficulty) int {
	base := d.BaseTimeSecs()
	switch k {
	case KindCheckpoint:
		return base
	case KindReview, KindSpacedReview:
		if base-5 > 12 {
			return base - 5
		}
		return 12
	default:
		if base-8 > 10 {
			return base - 8
		}
		return 10
	}
}

// NodeQuestionCount returns how many questions a node sitting asks. Focus
// mode shortens sessions across the board.
func NodeQuestionCount(k Kind, focusMode bool) int {
	if focusMode {
		if k == KindCheckpoint {
			return 8
		}
		return 6
	}
	switch k {
	case KindCheckpoint:
		return 10
	case KindReview:
		return 6
	default:
		return 8
	}
}
