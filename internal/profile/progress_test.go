package profile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/matemagica/matemagica/internal/questiongen"
)

func TestNewProgress_Defaults(t *testing.T) {
	p := &Profile{ID: "p1", FirstName: "Ana", GradeYear: 6, StartEntry: 6}
	prog := NewProgress(p, time.Now())
	if prog.CurrentYearTrack != "g6" {
		t.Errorf("got track %q, want g6", prog.CurrentYearTrack)
	}
	if prog.XP != 0 || prog.Coins != 0 {
		t.Errorf("fresh progress has rewards: xp=%d coins=%d", prog.XP, prog.Coins)
	}
	if prog.Units == nil || prog.Skills == nil || prog.Weekly == nil {
		t.Error("maps not initialized")
	}
}

func TestProgress_JSONRoundTrip(t *testing.T) {
	p := &Profile{ID: "p1", FirstName: "Ana", GradeYear: 3, StartEntry: 1}
	prog := NewProgress(p, time.Now())
	prog.XP = 120
	prog.Errors.Record(questiongen.ErrFact, "g3_mul_facts_2_5", time.Now())
	prog.RecordNodeAttempt("g1_u1_b1", 0.85, true, 2, time.Now())

	raw, err := json.Marshal(prog)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Progress
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	back.normalize()
	if back.XP != 120 || back.Errors.ByType["E_FACT"] != 1 {
		t.Errorf("round trip lost data: %+v", back)
	}
	if !back.Units["g1_u1_b1"].Passed {
		t.Error("node record lost")
	}
}

func TestRecordNodeAttempt_BestOnlyImproves(t *testing.T) {
	prog := NewProgress(&Profile{ID: "p"}, time.Now())
	now := time.Now()

	prog.RecordNodeAttempt("n1", 0.90, true, 2, now)
	r := prog.RecordNodeAttempt("n1", 0.70, false, 1, now)

	if r.Attempts != 2 {
		t.Errorf("attempts %d, want 2", r.Attempts)
	}
	if r.BestScore != 0.90 {
		t.Errorf("best score dropped to %v", r.BestScore)
	}
	if r.Stars != 2 {
		t.Errorf("stars dropped to %d", r.Stars)
	}
	if !r.Passed {
		t.Error("passed flag must be sticky")
	}
}

func TestPassedNodes(t *testing.T) {
	prog := NewProgress(&Profile{ID: "p"}, time.Now())
	now := time.Now()
	prog.RecordNodeAttempt("a", 0.9, true, 3, now)
	prog.RecordNodeAttempt("b", 0.5, false, 0, now)

	passed := prog.PassedNodes()
	if !passed["a"] || passed["b"] {
		t.Errorf("got %v", passed)
	}
}

func TestErrorLog_Bounded(t *testing.T) {
	l := NewErrorLog()
	now := time.Now()
	for i := 0; i < 60; i++ {
		l.Record(questiongen.ErrProc, "s1", now)
	}
	if len(l.Recent) != MaxRecentErrors {
		t.Errorf("got %d entries, want %d", len(l.Recent), MaxRecentErrors)
	}
	if l.ByType["E_PROC"] != 60 {
		t.Errorf("lifetime count %d, want 60", l.ByType["E_PROC"])
	}
}

func TestErrorLog_NewestFirstAndTopSkills(t *testing.T) {
	l := NewErrorLog()
	base := time.Now()
	l.Record(questiongen.ErrFact, "s1", base)
	l.Record(questiongen.ErrPlace, "s2", base.Add(time.Minute))
	l.Record(questiongen.ErrFact, "s1", base.Add(2*time.Minute))
	l.Record(questiongen.ErrProc, "s3", base.Add(3*time.Minute))

	if l.Recent[0].SkillID != "s3" {
		t.Errorf("newest entry is %q", l.Recent[0].SkillID)
	}

	// s1 was missed twice; s2 and s3 once each, alphabetical tiebreak.
	top := l.TopSkills(2)
	if len(top) != 2 || top[0] != "s1" || top[1] != "s2" {
		t.Errorf("got %v, want [s1 s2]", top)
	}
}

func TestErrorLog_DefaultsToOther(t *testing.T) {
	l := NewErrorLog()
	l.Record("", "s1", time.Now())
	if l.ByType["E_OTHER"] != 1 {
		t.Errorf("got %v", l.ByType)
	}
}

func TestDominantType(t *testing.T) {
	l := NewErrorLog()
	if l.DominantType() != "" {
		t.Error("empty log should have no dominant type")
	}
	now := time.Now()
	l.Record(questiongen.ErrFact, "a", now)
	l.Record(questiongen.ErrFact, "a", now)
	l.Record(questiongen.ErrPlace, "b", now)
	if got := l.DominantType(); got != "E_FACT" {
		t.Errorf("got %q, want E_FACT", got)
	}
}

func TestSettings_InclusionPack(t *testing.T) {
	var s Settings
	s.EnableInclusionPack()
	if !s.NoTimer || !s.ReadingEasy || !s.FocusMode || !s.ReduceMotion || !s.InclusionPack {
		t.Errorf("bundle incomplete: %+v", s)
	}
}

func TestWeeklyFor(t *testing.T) {
	prog := NewProgress(&Profile{ID: "p"}, time.Now())
	r := prog.WeeklyFor("2026-W14")
	r.WarmupDone = true
	if !prog.Weekly["2026-W14"].WarmupDone {
		t.Error("record not stored")
	}
	if prog.WeeklyFor("2026-W14") != r {
		t.Error("second call returned a different record")
	}
}
