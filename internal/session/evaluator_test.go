package session

import (
	"math"
	"testing"
	"time"

	"github.com/matemagica/matemagica/internal/curriculum"
	"github.com/matemagica/matemagica/internal/profile"
	"github.com/matemagica/matemagica/internal/questiongen"
)

func makeSession(kind Kind, n int) *Session {
	qs := make([]*questiongen.Question, n)
	for i := range qs {
		qs[i] = &questiongen.Question{
			SkillID:   "g3_mul_facts_2_5",
			Prompt:    "2 × 3 = ?",
			Options:   []string{"6", "5", "7", "8"},
			Correct:   "6",
			ErrorType: questiongen.ErrFact,
		}
	}
	return &Session{
		Kind:           kind,
		Difficulty:     curriculum.DifficultyMid,
		Questions:      qs,
		TimerOn:        true,
		BaseSeconds:    30,
		TimeMultiplier: 1.0,
		StartedAt:      time.Now(),
	}
}

func newTestEvaluator(t *testing.T, now time.Time) *Evaluator {
	t.Helper()
	prog := profile.NewProgress(&profile.Profile{ID: "p1", FirstName: "Ana", GradeYear: 3, StartEntry: 3}, now)
	return NewEvaluator(prog, fixedClock(now))
}

func TestSubmit_Correct(t *testing.T) {
	now := time.Now()
	ev := newTestEvaluator(t, now)
	s := makeSession(KindLesson, 3)
	s.TimeMultiplier = 0.72

	out := ev.Submit(s, "6")
	if !out.Correct {
		t.Fatal("answer graded wrong")
	}
	if out.XP != 10 || out.Coins != 2 {
		t.Errorf("rewards xp=%d coins=%d, want 10/2", out.XP, out.Coins)
	}
	if s.TimeMultiplier != 1.0 {
		t.Errorf("multiplier %v, want reset to 1.0", s.TimeMultiplier)
	}
	if s.Index != 1 || s.Correct != 1 {
		t.Errorf("session not advanced: index=%d correct=%d", s.Index, s.Correct)
	}
	if ev.Progress.XP != 10 || ev.Progress.Coins != 2 {
		t.Errorf("progress rewards xp=%d coins=%d", ev.Progress.XP, ev.Progress.Coins)
	}
	rec := ev.Progress.Skills["g3_mul_facts_2_5"]
	if rec == nil || rec.Mastery != 48 || rec.Correct != 1 {
		t.Errorf("ledger record %+v, want mastery 48 after one mid win", rec)
	}
}

func TestSubmit_CheckpointBonus(t *testing.T) {
	ev := newTestEvaluator(t, time.Now())
	s := makeSession(KindCheckpoint, 1)

	out := ev.Submit(s, "6")
	if out.XP != 14 || out.Coins != 3 {
		t.Errorf("checkpoint rewards xp=%d coins=%d, want 14/3", out.XP, out.Coins)
	}
}

func TestSubmit_Wrong(t *testing.T) {
	ev := newTestEvaluator(t, time.Now())
	s := makeSession(KindLesson, 3)

	out := ev.Submit(s, "5")
	if out.Correct {
		t.Fatal("wrong answer graded correct")
	}
	if out.XP != 2 || out.Coins != 0 {
		t.Errorf("consolation xp=%d coins=%d, want 2/0", out.XP, out.Coins)
	}
	if out.CorrectAnswer != "6" {
		t.Errorf("correct answer %q", out.CorrectAnswer)
	}
	if s.TimeMultiplier != 0.85 {
		t.Errorf("multiplier %v, want 0.85", s.TimeMultiplier)
	}
	if ev.Progress.Errors.ByType["E_FACT"] != 1 {
		t.Errorf("error log %v", ev.Progress.Errors.ByType)
	}
	rec := ev.Progress.Skills["g3_mul_facts_2_5"]
	if rec.Mastery != 40 || rec.Wrong != 1 {
		t.Errorf("ledger record %+v, want mastery 40 after one mid miss", rec)
	}
}

func TestSubmit_MultiplierFloor(t *testing.T) {
	ev := newTestEvaluator(t, time.Now())
	s := makeSession(KindLesson, 10)

	for i := 0; i < 6; i++ {
		ev.Submit(s, "5")
	}
	if s.TimeMultiplier != multiplierFloor {
		t.Errorf("multiplier %v, want floor %v", s.TimeMultiplier, multiplierFloor)
	}
	if got := s.QuestionSeconds(); math.Abs(got-18.0) > 1e-9 {
		t.Errorf("budget %v, want 18s at the floor", got)
	}
}

func TestSubmit_WrongUntimedKeepsMultiplier(t *testing.T) {
	ev := newTestEvaluator(t, time.Now())
	s := makeSession(KindLesson, 3)
	s.TimerOn = false

	ev.Submit(s, "5")
	if s.TimeMultiplier != 1.0 {
		t.Errorf("multiplier %v, want 1.0 with timer off", s.TimeMultiplier)
	}
}

func TestTimeout(t *testing.T) {
	ev := newTestEvaluator(t, time.Now())
	s := makeSession(KindLesson, 3)
	s.TimeMultiplier = 0.85

	out := ev.Timeout(s)
	if !out.TimedOut || out.XP != 0 || out.Coins != 0 {
		t.Errorf("timeout outcome %+v, want timed out with no reward", out)
	}
	if s.Wrong != 1 || s.Index != 1 {
		t.Errorf("session state wrong=%d index=%d", s.Wrong, s.Index)
	}
	if s.TimeMultiplier != 0.85 {
		t.Errorf("multiplier %v, timeouts must not change it", s.TimeMultiplier)
	}
	if ev.Progress.Errors.ByType["E_TIME"] != 1 {
		t.Errorf("error log %v, want one E_TIME", ev.Progress.Errors.ByType)
	}
	if rec := ev.Progress.Skills["g3_mul_facts_2_5"]; rec.Wrong != 1 {
		t.Errorf("ledger missed the timeout: %+v", rec)
	}
}

func TestFinalize_PassBoundary(t *testing.T) {
	cases := []struct {
		correct, total int
		passed         bool
	}{
		{4, 5, true},
		{8, 10, true},
		{79, 100, false},
		{7, 10, false},
	}
	for _, c := range cases {
		ev := newTestEvaluator(t, time.Now())
		s := makeSession(KindLesson, c.total)
		s.Correct = c.correct
		s.Wrong = c.total - c.correct
		s.Index = c.total

		sum := ev.Finalize(s)
		if sum.Passed != c.passed {
			t.Errorf("%d/%d passed=%v, want %v", c.correct, c.total, sum.Passed, c.passed)
		}
	}
}

func TestStarsForScore(t *testing.T) {
	cases := []struct {
		score float64
		want  int
	}{
		{1.0, 3},
		{0.93, 3},
		{0.90, 2},
		{0.85, 2},
		{0.80, 1},
		{0.79, 0},
	}
	for _, c := range cases {
		if got := StarsForScore(c.score); got != c.want {
			t.Errorf("StarsForScore(%v) = %d, want %d", c.score, got, c.want)
		}
	}
}

func TestFinalize_CheckpointUnlocksNextUnit(t *testing.T) {
	now := time.Now()
	ev := newTestEvaluator(t, now)
	s := makeSession(KindCheckpoint, 10)
	s.NodeID = "g3_u1_b1"
	s.Correct = 9
	s.Wrong = 1
	s.Index = 10

	sum := ev.Finalize(s)
	if !sum.Passed {
		t.Fatal("9/10 should pass")
	}
	if sum.UnlockedUnitID != "g3_u2" {
		t.Errorf("unlocked %q, want g3_u2", sum.UnlockedUnitID)
	}
	rec := ev.Progress.Units["g3_u1_b1"]
	if rec == nil || !rec.Passed || rec.Stars != 2 {
		t.Errorf("node record %+v, want passed with 2 stars at 0.90", rec)
	}
	if !curriculum.UnitUnlocked("g3_u2", ev.Progress.PassedNodes()) {
		t.Error("next unit still locked after checkpoint pass")
	}
}

func TestFinalize_NodeBestIsSticky(t *testing.T) {
	now := time.Now()
	ev := newTestEvaluator(t, now)

	first := makeSession(KindLesson, 10)
	first.NodeID = "g3_u1_l1"
	first.Correct, first.Wrong, first.Index = 10, 0, 10
	ev.Finalize(first)

	second := makeSession(KindLesson, 10)
	second.NodeID = "g3_u1_l1"
	second.Correct, second.Wrong, second.Index = 5, 5, 10
	sum := ev.Finalize(second)

	rec := ev.Progress.Units["g3_u1_l1"]
	if rec.BestScore != 1.0 || rec.Stars != 3 || !rec.Passed {
		t.Errorf("record regressed: %+v", rec)
	}
	if sum.Stars != 3 {
		t.Errorf("summary stars %d, want the record's 3", sum.Stars)
	}
	if rec.Attempts != 2 {
		t.Errorf("attempts %d, want 2", rec.Attempts)
	}
}

func TestFinalize_WeeklyRecords(t *testing.T) {
	now := time.Now()
	key := curriculum.WeekKey(now)

	ev := newTestEvaluator(t, now)
	warmup := makeSession(KindWeeklyEvent, 3)
	warmup.Correct, warmup.Index = 3, 3
	ev.Finalize(warmup)
	if !ev.Progress.Weekly[key].WarmupDone {
		t.Error("warmup not recorded")
	}

	challenge := makeSession(KindWeeklyEvent, 8)
	challenge.Correct, challenge.Wrong, challenge.Index = 7, 1, 8
	ev.Finalize(challenge)
	rec := ev.Progress.Weekly[key]
	if rec.ChallengeBest != 0.875 || !rec.ChallengePassed {
		t.Errorf("challenge record %+v", rec)
	}
}

func TestFinalize_HistoryAndStreak(t *testing.T) {
	now := time.Now()
	ev := newTestEvaluator(t, now)
	s := makeSession(KindLesson, 10)
	s.Correct, s.Index = 10, 10

	sum := ev.Finalize(s)
	if sum.EstimatedMinutes != 6 {
		t.Errorf("timed minutes %d, want 6 for 10 questions", sum.EstimatedMinutes)
	}
	if ev.Progress.History.TotalSessions != 1 || ev.Progress.History.TotalMinutes != 6 {
		t.Errorf("history %+v", ev.Progress.History)
	}
	if ev.Progress.History.LastActiveAt == nil {
		t.Error("last active not stamped")
	}
	if sum.StreakCurrent != 1 || ev.Progress.Streak.Current != 1 {
		t.Errorf("streak %d, want 1 after first sitting", ev.Progress.Streak.Current)
	}

	// Untimed sittings assume a slower pace.
	slow := makeSession(KindLesson, 10)
	slow.TimerOn = false
	slow.Correct, slow.Index = 10, 10
	if sum := ev.Finalize(slow); sum.EstimatedMinutes != 9 {
		t.Errorf("untimed minutes %d, want 9", sum.EstimatedMinutes)
	}
}

func TestComposeDiagnostic(t *testing.T) {
	s := ComposeDiagnostic(testRand())
	if len(s.Questions) != 12 {
		t.Fatalf("got %d questions, want 12", len(s.Questions))
	}
	if s.TimerOn || s.Difficulty != curriculum.DifficultyMid || s.Kind != KindDiagnostic {
		t.Errorf("session %+v, want untimed mid diagnostic", s)
	}
	for i, q := range s.Questions {
		if q.SkillID != diagnosticPlan[i] {
			t.Errorf("question %d is %q, want %q", i, q.SkillID, diagnosticPlan[i])
		}
	}
}

func TestApplyPlacement(t *testing.T) {
	now := time.Now()

	weak := newTestEvaluator(t, now).Progress
	s := makeSession(KindDiagnostic, 12)
	s.Correct, s.Wrong, s.Index = 5, 7, 12
	p := ApplyPlacement(weak, s)
	if p.TrackKey != "g1" || !p.InclusionPack {
		t.Errorf("placement %+v, want g1 with inclusion pack", p)
	}
	if weak.CurrentYearTrack != "g1" || !weak.Settings.FocusMode || !weak.Settings.NoTimer {
		t.Errorf("progress not routed: track=%s settings=%+v", weak.CurrentYearTrack, weak.Settings)
	}

	strong := newTestEvaluator(t, now).Progress
	s2 := makeSession(KindDiagnostic, 12)
	s2.Correct, s2.Wrong, s2.Index = 8, 4, 12
	p2 := ApplyPlacement(strong, s2)
	if p2.TrackKey != "g6" || p2.InclusionPack {
		t.Errorf("placement %+v, want g6 without inclusion pack", p2)
	}
	if strong.CurrentYearTrack != "g6" || strong.Settings.NoTimer {
		t.Errorf("strong learner routed wrong: %+v", strong.Settings)
	}
}
