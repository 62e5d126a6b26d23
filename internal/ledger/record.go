package ledger

import "time"

// SkillRecord tracks one skill's mastery and review schedule. The JSON shape
// is shared with the progress export document, so field names are stable.
type SkillRecord struct {
	Mastery      int        `json:"mastery"`
	Correct      int        `json:"correct"`
	Wrong        int        `json:"wrong"`
	AvgTimeSec   *float64   `json:"avgTimeSec"`
	Stage        int        `json:"stage"`
	NextReviewAt *time.Time `json:"nextReviewAt"`
	LastSeenAt   *time.Time `json:"lastSeenAt"`
}

// Attempts is the total number of answers recorded against the skill.
func (r *SkillRecord) Attempts() int {
	return r.Correct + r.Wrong
}
