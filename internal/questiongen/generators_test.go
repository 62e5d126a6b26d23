package questiongen

import (
	"fmt"
	"math/rand"
	"testing"
)

func TestGenerate_KnownSkill(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	q := Generate("g6_order_ops", r)
	if q.SkillID != "g6_order_ops" {
		t.Errorf("got skill %q", q.SkillID)
	}
	if q.ErrorType != ErrProc {
		t.Errorf("got error type %q, want E_PROC", q.ErrorType)
	}
	if q.Prompt == "" || q.Hint == "" {
		t.Error("prompt and hint must be non-empty")
	}
}

func TestGenerate_FallbackTagsRequestedSkill(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	q := Generate("retired_skill_id", r)
	if q.SkillID != "retired_skill_id" {
		t.Errorf("fallback question tagged %q, want the requested id", q.SkillID)
	}
	if len(q.Options) != 4 {
		t.Errorf("fallback produced %d options", len(q.Options))
	}
}

func TestGenerate_AllSkills_OptionsInvariant(t *testing.T) {
	// Every registered generator must always emit exactly 4 distinct
	// options, one of them the correct answer.
	r := rand.New(rand.NewSource(42))
	for _, skillID := range RegisteredSkills() {
		for i := 0; i < 1000; i++ {
			q := Generate(skillID, r)
			if len(q.Options) != 4 {
				t.Fatalf("%s sample %d: got %d options", skillID, i, len(q.Options))
			}
			seen := map[string]bool{}
			hasCorrect := false
			for _, opt := range q.Options {
				if opt == "" {
					t.Fatalf("%s sample %d: empty option", skillID, i)
				}
				if seen[opt] {
					t.Fatalf("%s sample %d: duplicate option %q in %v", skillID, i, opt, q.Options)
				}
				seen[opt] = true
				if opt == q.Correct {
					hasCorrect = true
				}
			}
			if !hasCorrect {
				t.Fatalf("%s sample %d: correct answer %q missing from %v", skillID, i, q.Correct, q.Options)
			}
		}
	}
}

func TestGenerate_SkillTagMatches(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for _, skillID := range RegisteredSkills() {
		q := Generate(skillID, r)
		if q.SkillID != skillID {
			t.Errorf("generator for %s tagged question as %s", skillID, q.SkillID)
		}
	}
}

func TestRegisteredSkills_CoversSeededTracks(t *testing.T) {
	want := []string{
		"g1_add_10", "g2_place_value", "g3_frac_halves", "g4_mul_2digit",
		"g5_dec_addsub", "g6_order_ops", "g7_int_ops", "g8_powers",
		"g9_quadratic", "ob_parity",
	}
	for _, id := range want {
		if !Has(id) {
			t.Errorf("no generator registered for %s", id)
		}
	}
}

func TestQuadraticDistractors_EqualSmallRoots(t *testing.T) {
	// p = q = 1 collapses the fixed-offset candidates to a single string;
	// the pool must still come back with 3 distinct wrong answers.
	r := rand.New(rand.NewSource(9))
	for i := 0; i < 200; i++ {
		ds := quadraticDistractors(r, 1, 1)
		if len(ds) != 3 {
			t.Fatalf("got %d distractors: %v", len(ds), ds)
		}
		seen := map[string]bool{}
		for _, d := range ds {
			if d == "(x+1)(x+1)" {
				t.Fatalf("distractor equals the correct answer: %v", ds)
			}
			if seen[d] {
				t.Fatalf("duplicate distractor in %v", ds)
			}
			seen[d] = true
		}
	}
}

func TestFracHalves_DistractorsAreNotHalves(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	q := Generate("g3_frac_halves", r)
	for _, opt := range q.Options {
		if opt == q.Correct {
			continue
		}
		var num, den int
		if _, err := fmt.Sscanf(opt, "%d/%d", &num, &den); err != nil {
			t.Fatalf("option %q is not a fraction", opt)
		}
		if num*2 == den {
			t.Errorf("distractor %q is equivalent to one half", opt)
		}
	}
}

func TestNumericDistractors(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		ds := numericDistractors(r, 50, 10)
		if len(ds) != 3 {
			t.Fatalf("got %d distractors", len(ds))
		}
		seen := map[int]bool{}
		for _, d := range ds {
			if d == 50 {
				t.Fatal("distractor equals the correct answer")
			}
			if seen[d] {
				t.Fatal("duplicate distractor")
			}
			seen[d] = true
			if d < 40 || d > 60 {
				t.Fatalf("distractor %d outside spread", d)
			}
		}
	}
}

func TestTenthsStr(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{75, "7.5"},
		{70, "7"},
		{0, "0"},
		{-89, "-8.9"},
		{-30, "-3"},
	}
	for _, tt := range tests {
		if got := tenthsStr(tt.in); got != tt.want {
			t.Errorf("tenthsStr(%d): got %q, want %q", tt.in, got, tt.want)
		}
	}
}
