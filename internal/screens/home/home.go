package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/matemagica/matemagica/internal/curriculum"
	"github.com/matemagica/matemagica/internal/profile"
	"github.com/matemagica/matemagica/internal/router"
	"github.com/matemagica/matemagica/internal/screen"
	sessionscreen "github.com/matemagica/matemagica/internal/screens/session"
	"github.com/matemagica/matemagica/internal/screens/shop"
	"github.com/matemagica/matemagica/internal/screens/trackmap"
	sess "github.com/matemagica/matemagica/internal/session"
	"github.com/matemagica/matemagica/internal/ui/components"
	"github.com/matemagica/matemagica/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	ac   *profile.AppContext
	menu components.Menu
	note string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen over the active profile.
func New(ac *profile.AppContext) *HomeScreen {
	h := &HomeScreen{ac: ac}
	h.menu = components.NewMenu(h.buildItems())
	return h
}

func (h *HomeScreen) buildItems() []components.MenuItem {
	prog := h.ac.Progress
	led := prog.Ledger(time.Now)
	dueCount := len(led.DueSkills(12))
	errSkills := prog.Errors.TopSkills(3)
	weeklyTheme := curriculum.ThemeFor(time.Now())

	next := nextNode(prog)
	continueLabel := "Continue learning"
	continueHint := "all units cleared"
	if next != nil {
		if u, err := curriculum.GetUnit(next.UnitID); err == nil {
			continueHint = fmt.Sprintf("%s · %s", u.Title, next.Title)
		} else {
			continueHint = next.Title
		}
	}

	weeklyHint := weeklyTheme.Title + " warmup"
	if prog.WeeklyFor(curriculum.WeekKey(time.Now())).WarmupDone {
		weeklyHint = weeklyTheme.Title + " challenge"
	}

	items := []components.MenuItem{
		{Label: continueLabel, Hint: continueHint, Disabled: next == nil, Action: func() tea.Cmd {
			return h.launchNode(next)
		}},
		{Label: "Track map", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: trackmap.New(h.ac)}
			}
		}},
		{Label: "Spaced review", Hint: dueHint(dueCount), Disabled: dueCount == 0, Action: func() tea.Cmd {
			return h.launch(sess.Request{
				Kind:       sess.KindSpacedReview,
				TrackKey:   prog.CurrentYearTrack,
				Count:      10,
				Difficulty: curriculum.DifficultyMid,
				NoTimer:    prog.Settings.NoTimer,
			})
		}},
		{Label: "Error training", Hint: "fix your tricky spots", Disabled: len(errSkills) == 0, Action: func() tea.Cmd {
			return h.launch(sess.Request{
				Kind:         sess.KindErrorRemediation,
				TargetSkills: errSkills,
				TrackKey:     prog.CurrentYearTrack,
				Count:        5,
				Difficulty:   curriculum.DifficultyMid,
				NoTimer:      true,
			})
		}},
		{Label: "Weekly event", Hint: weeklyHint, Action: func() tea.Cmd {
			return h.launchWeekly()
		}},
		{Label: "Free practice", Hint: "no pressure, no unlocks", Action: func() tea.Cmd {
			return h.launchPractice()
		}},
		{Label: "Shop", Hint: "streak freezes", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: shop.New(h.ac)}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	return items
}

// launchNode composes and pushes a node sitting.
func (h *HomeScreen) launchNode(node *curriculum.Node) tea.Cmd {
	if node == nil {
		return nil
	}
	return h.launch(sessionscreen.NodeRequest(h.ac, node))
}

// launchWeekly picks the warmup or the challenge depending on what is done
// this week.
func (h *HomeScreen) launchWeekly() tea.Cmd {
	now := time.Now()
	weeklyTheme := curriculum.ThemeFor(now)
	rec := h.ac.Progress.WeeklyFor(curriculum.WeekKey(now))

	count := curriculum.WeeklyWarmupSize
	difficulty := curriculum.DifficultyEasy
	noTimer := true
	if rec.WarmupDone {
		count = curriculum.WeeklyChallengeSize
		difficulty = curriculum.DifficultyHard
		noTimer = h.ac.Progress.Settings.NoTimer
	}

	return h.launch(sess.Request{
		Kind:         sess.KindWeeklyEvent,
		TargetSkills: []string{weeklyTheme.SkillID},
		TrackKey:     h.ac.Progress.CurrentYearTrack,
		Count:        count,
		Difficulty:   difficulty,
		NoTimer:      noTimer,
	})
}

// launchPractice runs a low-stakes mix over the current unit's skills.
func (h *HomeScreen) launchPractice() tea.Cmd {
	prog := h.ac.Progress
	skills := practiceSkills(prog)
	return h.launch(sess.Request{
		Kind:         sess.KindFreePractice,
		TargetSkills: skills,
		TrackKey:     prog.CurrentYearTrack,
		Count:        8,
		Difficulty:   curriculum.DifficultyMid,
		NoTimer:      prog.Settings.NoTimer,
	})
}

func (h *HomeScreen) launch(req sess.Request) tea.Cmd {
	state, err := sessionscreen.Compose(h.ac, req)
	if err != nil {
		h.note = err.Error()
		return nil
	}
	h.note = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: sessionscreen.New(h.ac, state)}
	}
}

// Init rebuilds the menu so counts and hints reflect the latest progress
// whenever the screen is (re)shown.
func (h *HomeScreen) Init() tea.Cmd {
	selected := h.menu.Selected
	h.menu = components.NewMenu(h.buildItems())
	if selected > 0 && selected < len(h.menu.Items) && !h.menu.Items[selected].Disabled {
		h.menu.Selected = selected
	}
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	prog := h.ac.Progress

	var sections []string

	greeting := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("Hi, %s!", prog.Student.FirstName))
	sections = append(sections, greeting)

	stats := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("XP %d   ·   Track %s   ·   %d sessions",
			prog.XP, prog.CurrentYearTrack, prog.History.TotalSessions))
	sections = append(sections, stats, "")

	sections = append(sections, h.menu.View())

	if h.note != "" {
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.Accent).
			Render(h.note))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) HeaderStats() (int, int) {
	return h.ac.Progress.Coins, h.ac.Progress.Streak.Current
}

// nextNode finds the first node the learner has not passed yet in an unlocked
// unit of the current track.
func nextNode(prog *profile.Progress) *curriculum.Node {
	track, err := curriculum.GetTrack(prog.CurrentYearTrack)
	if err != nil {
		return nil
	}
	passed := prog.PassedNodes()
	for i := range track.Units {
		u := &track.Units[i]
		if !curriculum.UnitUnlocked(u.ID, passed) {
			continue
		}
		for j := range u.Nodes {
			if !passed[u.Nodes[j].ID] {
				return &u.Nodes[j]
			}
		}
	}
	return nil
}

// practiceSkills picks the free practice pool: the current unit's skills, or
// the whole track's first unit when nothing is in flight.
func practiceSkills(prog *profile.Progress) []string {
	if n := nextNode(prog); n != nil {
		if u, err := curriculum.GetUnit(n.UnitID); err == nil {
			return u.SkillIDs
		}
	}
	track, err := curriculum.GetTrack(prog.CurrentYearTrack)
	if err != nil || len(track.Units) == 0 {
		return nil
	}
	return track.Units[0].SkillIDs
}

func dueHint(n int) string {
	if n == 1 {
		return "1 skill due"
	}
	return fmt.Sprintf("%d skills due", n)
}
