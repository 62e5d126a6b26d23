package ledger

import (
	"testing"
	"time"

	"github.com/matemagica/matemagica/internal/curriculum"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGetOrCreate_StartsAtBaseline(t *testing.T) {
	svc := NewService(nil, nil)
	r := svc.GetOrCreate("g6_order_ops")
	if r.Mastery != 45 {
		t.Errorf("got mastery %d, want 45", r.Mastery)
	}
	if r.Attempts() != 0 {
		t.Errorf("got %d attempts, want 0", r.Attempts())
	}
	if r.NextReviewAt != nil {
		t.Error("fresh skill should have no review scheduled")
	}
	if svc.GetOrCreate("g6_order_ops") != r {
		t.Error("second call should return the same record")
	}
}

func TestRecordOutcome_Gains(t *testing.T) {
	tests := []struct {
		diff curriculum.Difficulty
		want int
	}{
		{curriculum.DifficultyEasy, 47},
		{curriculum.DifficultyMid, 48},
		{curriculum.DifficultyHard, 49},
	}
	for _, tt := range tests {
		svc := NewService(nil, fixedClock(time.Now()))
		r := svc.RecordOutcome("s", true, tt.diff)
		if r.Mastery != tt.want {
			t.Errorf("%s correct: got mastery %d, want %d", tt.diff, r.Mastery, tt.want)
		}
		if r.Correct != 1 || r.Wrong != 0 {
			t.Errorf("%s: counters got %d/%d, want 1/0", tt.diff, r.Correct, r.Wrong)
		}
	}
}

func TestRecordOutcome_Losses(t *testing.T) {
	tests := []struct {
		diff curriculum.Difficulty
		want int
	}{
		{curriculum.DifficultyEasy, 41},
		{curriculum.DifficultyMid, 40},
		{curriculum.DifficultyHard, 39},
	}
	for _, tt := range tests {
		svc := NewService(nil, fixedClock(time.Now()))
		r := svc.RecordOutcome("s", false, tt.diff)
		if r.Mastery != tt.want {
			t.Errorf("%s wrong: got mastery %d, want %d", tt.diff, r.Mastery, tt.want)
		}
	}
}

func TestRecordOutcome_MasteryClamped(t *testing.T) {
	svc := NewService(nil, fixedClock(time.Now()))
	for i := 0; i < 50; i++ {
		r := svc.RecordOutcome("up", true, curriculum.DifficultyHard)
		if r.Mastery < 0 || r.Mastery > 100 {
			t.Fatalf("mastery out of range: %d", r.Mastery)
		}
	}
	if got := svc.Get("up").Mastery; got != 100 {
		t.Errorf("got mastery %d, want 100 after many correct", got)
	}

	for i := 0; i < 50; i++ {
		r := svc.RecordOutcome("down", false, curriculum.DifficultyHard)
		if r.Mastery < 0 || r.Mastery > 100 {
			t.Fatalf("mastery out of range: %d", r.Mastery)
		}
	}
	if got := svc.Get("down").Mastery; got != 0 {
		t.Errorf("got mastery %d, want 0 after many wrong", got)
	}
}

func TestRecordOutcome_StageWalk(t *testing.T) {
	svc := NewService(nil, fixedClock(time.Now()))
	for i := 0; i < 10; i++ {
		svc.RecordOutcome("s", true, curriculum.DifficultyMid)
	}
	if got := svc.Get("s").Stage; got != 6 {
		t.Errorf("stage after 10 correct: got %d, want 6 (cap)", got)
	}
	svc.RecordOutcome("s", false, curriculum.DifficultyMid)
	if got := svc.Get("s").Stage; got != 5 {
		t.Errorf("stage after one wrong: got %d, want 5", got)
	}
	for i := 0; i < 10; i++ {
		svc.RecordOutcome("s", false, curriculum.DifficultyMid)
	}
	if got := svc.Get("s").Stage; got != 0 {
		t.Errorf("stage floor: got %d, want 0", got)
	}
}

func TestRecordOutcome_Schedule(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := NewService(nil, fixedClock(now))

	// First correct answer: stage 1, next review in 1 day.
	r := svc.RecordOutcome("s", true, curriculum.DifficultyMid)
	if want := now.AddDate(0, 0, 1); !r.NextReviewAt.Equal(want) {
		t.Errorf("stage 1: next review %v, want %v", r.NextReviewAt, want)
	}

	// Second correct: stage 2 -> 3 days.
	r = svc.RecordOutcome("s", true, curriculum.DifficultyMid)
	if want := now.AddDate(0, 0, 3); !r.NextReviewAt.Equal(want) {
		t.Errorf("stage 2: next review %v, want %v", r.NextReviewAt, want)
	}

	// A wrong answer still reschedules (stage back to 1 -> 1 day).
	r = svc.RecordOutcome("s", false, curriculum.DifficultyMid)
	if want := now.AddDate(0, 0, 1); !r.NextReviewAt.Equal(want) {
		t.Errorf("after wrong: next review %v, want %v", r.NextReviewAt, want)
	}
	if r.LastSeenAt == nil || !r.LastSeenAt.Equal(now) {
		t.Errorf("lastSeenAt not stamped: %v", r.LastSeenAt)
	}
}

func TestRecordOutcome_StageZeroSchedulesOneDay(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	svc := NewService(nil, fixedClock(now))
	// Wrong on a fresh skill keeps stage at 0 but still schedules 1 day out.
	r := svc.RecordOutcome("s", false, curriculum.DifficultyMid)
	if r.Stage != 0 {
		t.Fatalf("got stage %d, want 0", r.Stage)
	}
	if want := now.AddDate(0, 0, 1); !r.NextReviewAt.Equal(want) {
		t.Errorf("next review %v, want %v", r.NextReviewAt, want)
	}
}

func TestDueSkills_OrderAndCutoff(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Time) *time.Time { return &d }
	skills := map[string]*SkillRecord{
		"late":    {Mastery: 50, NextReviewAt: at(now.AddDate(0, 0, -5))},
		"later":   {Mastery: 50, NextReviewAt: at(now.AddDate(0, 0, -1))},
		"exact":   {Mastery: 50, NextReviewAt: at(now)},
		"future":  {Mastery: 50, NextReviewAt: at(now.AddDate(0, 0, 2))},
		"unsched": {Mastery: 50},
	}
	svc := NewService(skills, fixedClock(now))

	due := svc.DueSkills(10)
	want := []string{"late", "later", "exact"}
	if len(due) != len(want) {
		t.Fatalf("got %v, want %v", due, want)
	}
	for i := range want {
		if due[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, due[i], want[i])
		}
	}

	// No future skill may ever appear, whatever the limit.
	for _, id := range svc.DueSkills(0) {
		if id == "future" || id == "unsched" {
			t.Errorf("non-due skill %q returned", id)
		}
	}

	if got := svc.DueSkills(2); len(got) != 2 {
		t.Errorf("limit 2: got %d skills", len(got))
	}
}

func TestWeakestInScope(t *testing.T) {
	skills := map[string]*SkillRecord{
		"g3_a": {Mastery: 20, Correct: 1, Wrong: 3},
		"g3_b": {Mastery: 10, Correct: 2, Wrong: 2},
		"g3_c": {Mastery: 5, Correct: 1, Wrong: 1}, // only 2 attempts
		"g4_d": {Mastery: 1, Correct: 5, Wrong: 5}, // out of scope
	}
	svc := NewService(skills, nil)

	weak := svc.WeakestInScope("g3_", 10)
	want := []string{"g3_b", "g3_a"}
	if len(weak) != len(want) {
		t.Fatalf("got %v, want %v", weak, want)
	}
	for i := range want {
		if weak[i] != want[i] {
			t.Errorf("position %d: got %q, want %q", i, weak[i], want[i])
		}
	}

	for _, id := range weak {
		if svc.Get(id).Attempts() < 3 {
			t.Errorf("skill %q has fewer than 3 attempts", id)
		}
	}

	if got := svc.WeakestInScope("g3_", 1); len(got) != 1 || got[0] != "g3_b" {
		t.Errorf("limit 1: got %v, want [g3_b]", got)
	}
}
