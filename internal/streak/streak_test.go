package streak

import "testing"

func TestMarkActive_FirstEver(t *testing.T) {
	s := &State{}
	s.MarkActive("2026-04-01")
	if s.Current != 1 || s.Best != 1 {
		t.Errorf("got current %d best %d, want 1/1", s.Current, s.Best)
	}
	if s.LastActiveDate != "2026-04-01" {
		t.Errorf("got last active %q", s.LastActiveDate)
	}
}

func TestMarkActive_SameDayIdempotent(t *testing.T) {
	s := &State{Current: 3, Best: 5, LastActiveDate: "2026-04-01"}
	s.MarkActive("2026-04-01")
	if s.Current != 3 {
		t.Errorf("same-day practice changed streak to %d", s.Current)
	}
}

func TestMarkActive_ConsecutiveDay(t *testing.T) {
	s := &State{Current: 3, Best: 3, LastActiveDate: "2026-04-01"}
	s.MarkActive("2026-04-02")
	if s.Current != 4 || s.Best != 4 {
		t.Errorf("got current %d best %d, want 4/4", s.Current, s.Best)
	}
}

func TestReconcile_NoGap(t *testing.T) {
	s := &State{Current: 3, LastActiveDate: "2026-04-01", Freezes: 2}
	used, reset := s.Reconcile("2026-04-02")
	if used != 0 || reset {
		t.Errorf("yesterday-active: used %d reset %v", used, reset)
	}
	if s.Current != 3 || s.Freezes != 2 {
		t.Errorf("state changed: current %d freezes %d", s.Current, s.Freezes)
	}
}

func TestReconcile_GapFullyCovered(t *testing.T) {
	// Two missed days, two credits: streak survives.
	s := &State{Current: 7, Best: 7, LastActiveDate: "2026-04-01", Freezes: 3}
	used, reset := s.Reconcile("2026-04-04")
	if used != 2 || reset {
		t.Fatalf("used %d reset %v, want 2/false", used, reset)
	}
	if s.Current != 7 || s.Freezes != 1 {
		t.Errorf("current %d freezes %d, want 7/1", s.Current, s.Freezes)
	}

	s.MarkActive("2026-04-04")
	if s.Current != 8 {
		t.Errorf("after return day: current %d, want 8", s.Current)
	}
}

func TestReconcile_GapPartiallyCovered(t *testing.T) {
	// Last active three days ago: two missed days, one credit. The credit
	// is consumed anyway and the streak still resets.
	s := &State{Current: 9, Best: 9, LastActiveDate: "2026-04-01", Freezes: 1}
	used, reset := s.Reconcile("2026-04-04")
	if used != 1 || !reset {
		t.Fatalf("used %d reset %v, want 1/true", used, reset)
	}
	if s.Current != 0 || s.Freezes != 0 {
		t.Errorf("current %d freezes %d, want 0/0", s.Current, s.Freezes)
	}

	s.MarkActive("2026-04-04")
	if s.Current != 1 {
		t.Errorf("return day: current %d, want 1", s.Current)
	}
	if s.Best != 9 {
		t.Errorf("best dropped to %d", s.Best)
	}
}

func TestReconcile_NoCredits(t *testing.T) {
	s := &State{Current: 4, LastActiveDate: "2026-04-01"}
	used, reset := s.Reconcile("2026-04-05")
	if used != 0 || !reset {
		t.Errorf("used %d reset %v, want 0/true", used, reset)
	}
	if s.Current != 0 {
		t.Errorf("current %d, want 0", s.Current)
	}
}

func TestReconcile_NeverActive(t *testing.T) {
	s := &State{Freezes: 2}
	used, reset := s.Reconcile("2026-04-05")
	if used != 0 || reset {
		t.Errorf("fresh state: used %d reset %v", used, reset)
	}
}

func TestBestMonotonic(t *testing.T) {
	s := &State{}
	days := []string{"2026-04-01", "2026-04-02", "2026-04-03"}
	for _, d := range days {
		s.MarkActive(d)
	}
	if s.Best != 3 {
		t.Fatalf("best %d, want 3", s.Best)
	}
	s.Reconcile("2026-04-10")
	s.MarkActive("2026-04-10")
	if s.Best != 3 {
		t.Errorf("best changed to %d after reset", s.Best)
	}
}

func TestActiveWithin(t *testing.T) {
	cases := []struct {
		last string
		want bool
	}{
		{"2026-04-10", true},
		{"2026-04-04", true},
		{"2026-04-03", false},
		{"", false},
	}
	for _, c := range cases {
		s := &State{LastActiveDate: c.last}
		if got := s.ActiveWithin("2026-04-10", 6); got != c.want {
			t.Errorf("ActiveWithin(last=%q) = %v, want %v", c.last, got, c.want)
		}
	}
}

func TestBuyFreeze(t *testing.T) {
	s := &State{}
	left, ok := s.BuyFreeze(200)
	if !ok || left != 50 || s.Freezes != 1 {
		t.Errorf("got ok=%v left=%d freezes=%d", ok, left, s.Freezes)
	}
	left, ok = s.BuyFreeze(149)
	if ok || left != 149 || s.Freezes != 1 {
		t.Errorf("underfunded purchase: ok=%v left=%d freezes=%d", ok, left, s.Freezes)
	}
}
