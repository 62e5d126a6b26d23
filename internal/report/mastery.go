package report

import (
	"math"
	"sort"
	"time"

	"github.com/matemagica/matemagica/internal/curriculum"
	"github.com/matemagica/matemagica/internal/ledger"
)

// combinedWeight is evidence times recency. Evidence saturates at 20
// attempts and floors at 0.2 so a single attempt still counts a little;
// recency decays in two steps rather than a curve.
func combinedWeight(r *ledger.SkillRecord, now time.Time) float64 {
	attempts := float64(r.Attempts())
	evidence := attempts / 20
	if evidence < 0.2 {
		evidence = 0.2
	}
	if evidence > 1.0 {
		evidence = 1.0
	}

	recency := 0.5
	if r.LastSeenAt != nil {
		days := now.Sub(*r.LastSeenAt).Hours() / 24
		switch {
		case days <= 7:
			recency = 1.0
		case days <= 30:
			recency = 0.7
		}
	}
	return evidence * recency
}

// FairMastery is the evidence- and recency-weighted average mastery across a
// learner's skills. Skills need 5 attempts to count; when fewer than 5 skills
// clear that bar, everything with at least 1 attempt is used instead.
// Coverage is the number of skills at the 5-attempt bar regardless of the
// fallback, so thin evidence stays visible to the teacher.
func FairMastery(skills map[string]*ledger.SkillRecord, now time.Time) (score, coverage int) {
	type item struct {
		mastery  int
		attempts int
		w        float64
	}
	all := make([]item, 0, len(skills))
	for _, r := range skills {
		if r == nil {
			continue
		}
		all = append(all, item{mastery: r.Mastery, attempts: r.Attempts(), w: combinedWeight(r, now)})
	}

	var solid []item
	for _, it := range all {
		if it.attempts >= 5 {
			solid = append(solid, it)
		}
	}
	coverage = len(solid)

	used := solid
	if len(solid) < 5 {
		used = used[:0]
		for _, it := range all {
			if it.attempts >= 1 {
				used = append(used, it)
			}
		}
	}

	var sumW, sum float64
	for _, it := range used {
		sumW += it.w
		sum += float64(it.mastery) * it.w
	}
	if sumW == 0 {
		return 0, coverage
	}
	return int(math.Round(sum / sumW)), coverage
}

// Difficulty is one entry of a difficulty ranking.
type Difficulty struct {
	SkillID string
	Title   string
	Mastery int
	Score   float64
}

// TopDifficulties ranks a learner's skills by weighted weakness, highest
// first. Skills need 3 attempts to qualify so a single miss cannot put a
// skill on the list.
func TopDifficulties(skills map[string]*ledger.SkillRecord, limit int, now time.Time) []Difficulty {
	var list []Difficulty
	for id, r := range skills {
		if r == nil || r.Attempts() < 3 {
			continue
		}
		list = append(list, Difficulty{
			SkillID: id,
			Title:   curriculum.SkillTitle(id),
			Mastery: r.Mastery,
			Score:   float64(100-r.Mastery) * combinedWeight(r, now),
		})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		return list[i].SkillID < list[j].SkillID
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
