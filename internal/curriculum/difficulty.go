package curriculum

// Difficulty tags a question or session with its reward/penalty band.
type Difficulty string

const (
	DifficultyEasy Difficulty = "easy"
	DifficultyMid  Difficulty = "mid"
	DifficultyHard Difficulty = "hard"
)

// ParseDifficulty maps a string to a Difficulty, defaulting to mid.
func ParseDifficulty(s string) Difficulty {
	switch s {
	case "easy":
		return DifficultyEasy
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMid
	}
}

// BaseTimeSecs returns the per-question time budget in seconds before any
// session-kind adjustment.
func (d Difficulty) BaseTimeSecs() int {
	switch d {
	case DifficultyEasy:
		return 15
	case DifficultyHard:
		return 45
	default:
		return 30
	}
}
