package profile

import (
	"sort"
	"time"

	"github.com/matemagica/matemagica/internal/questiongen"
)

// MaxRecentErrors bounds the rolling error log.
const MaxRecentErrors = 50

// ErrorEntry is one logged mistake.
type ErrorEntry struct {
	At        time.Time `json:"at"`
	ErrorType string    `json:"errorType"`
	SkillID   string    `json:"skillId"`
}

// ErrorLog keeps lifetime per-type counts plus a bounded list of the most
// recent mistakes, newest first.
type ErrorLog struct {
	ByType map[string]int `json:"byType"`
	Recent []ErrorEntry   `json:"recent"`
}

// NewErrorLog returns an empty log.
func NewErrorLog() ErrorLog {
	return ErrorLog{ByType: make(map[string]int)}
}

// Record logs one mistake. An empty error type counts as E_OTHER.
func (l *ErrorLog) Record(et questiongen.ErrorType, skillID string, at time.Time) {
	if et == "" {
		et = questiongen.ErrOther
	}
	if l.ByType == nil {
		l.ByType = make(map[string]int)
	}
	l.ByType[string(et)]++
	l.Recent = append([]ErrorEntry{{At: at, ErrorType: string(et), SkillID: skillID}}, l.Recent...)
	if len(l.Recent) > MaxRecentErrors {
		l.Recent = l.Recent[:MaxRecentErrors]
	}
}

// TopSkills returns up to limit skill IDs ranked by how often they appear in
// the last 30 logged mistakes, most-missed first. Entries without a skill are
// skipped; ties break alphabetically so the result is stable.
func (l *ErrorLog) TopSkills(limit int) []string {
	window := l.Recent
	if len(window) > 30 {
		window = window[:30]
	}
	counts := map[string]int{}
	for _, e := range window {
		if e.SkillID != "" {
			counts[e.SkillID]++
		}
	}
	out := make([]string, 0, len(counts))
	for id := range counts {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// DominantType returns the error type with the highest lifetime count, or ""
// when nothing has been logged. Ties break in report order.
func (l *ErrorLog) DominantType() string {
	best := ""
	bestN := 0
	for _, et := range questiongen.AllErrorTypes() {
		if n := l.ByType[string(et)]; n > bestN {
			best, bestN = string(et), n
		}
	}
	return best
}
