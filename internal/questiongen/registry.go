package questiongen

import (
	"math/rand"
	"sort"
)

// GenFunc produces one question from the supplied randomness source.
type GenFunc func(r *rand.Rand) *Question

// generators maps skill IDs to their question generators. Skills without an
// entry fall back to the order-of-operations generator so a stale skill ID in
// saved progress still yields a playable question.
var generators = map[string]GenFunc{}

func register(skillID string, fn GenFunc) {
	generators[skillID] = fn
}

// Generate returns a question for the skill. Unknown skills use the fallback
// generator, retagged with the requested skill ID so ledger updates land on
// the skill the session asked about.
func Generate(skillID string, r *rand.Rand) *Question {
	if fn, ok := generators[skillID]; ok {
		return fn(r)
	}
	q := genOrderOps(r)
	q.SkillID = skillID
	return q
}

// Has reports whether a dedicated generator exists for the skill.
func Has(skillID string) bool {
	_, ok := generators[skillID]
	return ok
}

// RegisteredSkills returns the skill IDs with dedicated generators, sorted.
func RegisteredSkills() []string {
	ids := make([]string, 0, len(generators))
	for id := range generators {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
