package questiongen

import (
	"math/rand"
	"strconv"
)

// numericDistractors returns 3 distinct integers near correct, none equal to
// it. The spread bounds how far a distractor can wander so options stay
// plausible for the magnitude in play.
func numericDistractors(r *rand.Rand, correct, spread int) []int {
	if spread < 1 {
		spread = 1
	}
	seen := map[int]bool{}
	var out []int
	for len(out) < 3 {
		d := correct + randBetween(r, -spread, spread)
		if d == correct || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// randBetween returns a uniform integer in [lo, hi].
func randBetween(r *rand.Rand, lo, hi int) int {
	return lo + r.Intn(hi-lo+1)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func itoas(ns []int) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = itoa(n)
	}
	return out
}

// mcq assembles a question from a correct answer and its distractors and
// shuffles the options. Callers guarantee the distractors are distinct from
// the answer; stringDistinct exists for the string-valued generators that
// build candidate lists by hand.
func mcq(r *rand.Rand, skillID, prompt, correct string, distractors []string, hint string, et ErrorType) *Question {
	options := append([]string{correct}, distractors[:3]...)
	r.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return &Question{
		SkillID:   skillID,
		Prompt:    prompt,
		Options:   options,
		Correct:   correct,
		Hint:      hint,
		ErrorType: et,
	}
}

// stringDistinct filters candidates down to 3 distinct values different from
// correct, topping up from the fallback pool when the candidates collide.
func stringDistinct(correct string, candidates []string, fallback []string) []string {
	seen := map[string]bool{correct: true}
	var out []string
	take := func(vals []string) {
		for _, v := range vals {
			if len(out) == 3 {
				return
			}
			if seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	take(candidates)
	take(fallback)
	return out
}
