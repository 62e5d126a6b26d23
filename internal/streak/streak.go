package streak

import "time"

// FreezePrice is the coin cost of one freeze credit in the shop.
const FreezePrice = 150

// DayKey formats a time as the calendar-day key streaks are tracked by.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// State is the learner's continuity record. Days are compared by key, so two
// sittings on the same calendar day count once.
type State struct {
	Current        int    `json:"current"`
	Best           int    `json:"best"`
	LastActiveDate string `json:"lastActiveDate"`
	Freezes        int    `json:"freezes"`
}

// diffDays returns whole days from key a to key b, 0 when either is invalid.
func diffDays(a, b string) int {
	ta, errA := time.Parse("2006-01-02", a)
	tb, errB := time.Parse("2006-01-02", b)
	if errA != nil || errB != nil {
		return 0
	}
	return int(tb.Sub(ta).Hours() / 24)
}

// Reconcile settles any gap between the last active day and today. Each
// missed day needs one freeze credit; credits cover min(missed, freezes)
// days, and if the gap is not fully covered the streak resets to zero. It
// returns the credits spent and whether the streak was reset.
func (s *State) Reconcile(today string) (used int, reset bool) {
	if s.LastActiveDate == "" {
		return 0, false
	}
	days := diffDays(s.LastActiveDate, today)
	if days <= 1 {
		return 0, false
	}

	missed := days - 1
	used = missed
	if s.Freezes < used {
		used = s.Freezes
	}
	s.Freezes -= used
	if missed > used {
		s.Current = 0
		reset = true
	}
	return used, reset
}

// MarkActive records practice on the given day. The first practice of a day
// extends the streak; repeat practice on the same day is a no-op. Best only
// ever grows.
func (s *State) MarkActive(today string) {
	switch {
	case s.LastActiveDate == "":
		s.Current = 1
	case diffDays(s.LastActiveDate, today) == 0:
		// Already counted today.
	default:
		s.Current++
	}
	if s.Current > s.Best {
		s.Best = s.Current
	}
	s.LastActiveDate = today
}

// ActiveWithin reports whether the last active day falls within the given
// number of days before today. Exports use this for the weekly-activity flag.
func (s *State) ActiveWithin(today string, days int) bool {
	if s.LastActiveDate == "" {
		return false
	}
	d := diffDays(s.LastActiveDate, today)
	return d >= 0 && d <= days
}

// BuyFreeze spends coins on one freeze credit. It returns the new coin
// balance and false when the balance cannot cover the price.
func (s *State) BuyFreeze(coins int) (int, bool) {
	if coins < FreezePrice {
		return coins, false
	}
	s.Freezes++
	return coins - FreezePrice, true
}
