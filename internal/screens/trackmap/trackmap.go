package trackmap

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/matemagica/matemagica/internal/curriculum"
	"github.com/matemagica/matemagica/internal/profile"
	"github.com/matemagica/matemagica/internal/router"
	"github.com/matemagica/matemagica/internal/screen"
	sessionscreen "github.com/matemagica/matemagica/internal/screens/session"
	"github.com/matemagica/matemagica/internal/ui/layout"
	"github.com/matemagica/matemagica/internal/ui/theme"
)

// entry is one selectable node on the map, with its unit's lock state.
type entry struct {
	node     *curriculum.Node
	unlocked bool
}

// TrackMapScreen shows the current track's units and nodes with lock state
// and earned stars.
type TrackMapScreen struct {
	ac       *profile.AppContext
	track    *curriculum.Track
	entries  []entry
	selected int
	errMsg   string
}

var _ screen.Screen = (*TrackMapScreen)(nil)
var _ screen.KeyHintProvider = (*TrackMapScreen)(nil)

// New creates the map for the learner's current track.
func New(ac *profile.AppContext) *TrackMapScreen {
	s := &TrackMapScreen{ac: ac}
	s.rebuild()
	return s
}

func (s *TrackMapScreen) rebuild() {
	track, err := curriculum.GetTrack(s.ac.Progress.CurrentYearTrack)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.track = track

	passed := s.ac.Progress.PassedNodes()
	s.entries = s.entries[:0]
	for i := range track.Units {
		u := &track.Units[i]
		unlocked := curriculum.UnitUnlocked(u.ID, passed)
		for j := range u.Nodes {
			s.entries = append(s.entries, entry{node: &u.Nodes[j], unlocked: unlocked})
		}
	}
	if s.selected >= len(s.entries) {
		s.selected = 0
	}
}

// Init refreshes lock state after a sitting.
func (s *TrackMapScreen) Init() tea.Cmd {
	s.rebuild()
	return nil
}

func (s *TrackMapScreen) Title() string {
	return "Track map"
}

func (s *TrackMapScreen) HeaderStats() (int, int) {
	return s.ac.Progress.Coins, s.ac.Progress.Streak.Current
}

func (s *TrackMapScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Play"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TrackMapScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.entries)-1 {
			s.selected++
		}
	case "enter":
		return s, s.play()
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// play launches the selected node if its unit is unlocked.
func (s *TrackMapScreen) play() tea.Cmd {
	if s.selected < 0 || s.selected >= len(s.entries) {
		return nil
	}
	e := s.entries[s.selected]
	if !e.unlocked {
		return nil
	}
	state, err := sessionscreen.Compose(s.ac, sessionscreen.NodeRequest(s.ac, e.node))
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: sessionscreen.New(s.ac, state)}
	}
}

func (s *TrackMapScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("\n\n  " + s.errMsg)
	}

	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  Year %d track", s.track.GradeYear))
	b.WriteString(title)
	b.WriteString("\n\n")

	lastUnit := ""
	for i, e := range s.entries {
		if e.node.UnitID != lastUnit {
			lastUnit = e.node.UnitID
			b.WriteString(s.renderUnitHeader(e))
		}
		b.WriteString(s.renderNodeLine(i, e))
	}

	return b.String()
}

func (s *TrackMapScreen) renderUnitHeader(e entry) string {
	u, err := curriculum.GetUnit(e.node.UnitID)
	if err != nil {
		return ""
	}
	style := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	marker := ""
	if !e.unlocked {
		style = theme.Locked
		marker = "  🔒"
	}
	return style.Render("  "+u.Title) + marker + "\n"
}

func (s *TrackMapScreen) renderNodeLine(i int, e entry) string {
	rec := s.ac.Progress.Units[e.node.ID]

	icon := "○"
	switch {
	case rec != nil && rec.Passed:
		icon = "●"
	case e.node.Kind == curriculum.NodeCheckpoint:
		icon = "◆"
	}

	stars := ""
	if rec != nil && rec.Stars > 0 {
		stars = "  " + strings.Repeat("★", rec.Stars)
	}

	prefix := "    "
	if i == s.selected {
		prefix = "  ▸ "
	}

	line := fmt.Sprintf("%s%s %s%s", prefix, icon, e.node.Title, stars)

	switch {
	case !e.unlocked:
		return theme.Locked.Render(line) + "\n"
	case i == s.selected:
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
	case rec != nil && rec.Passed:
		return lipgloss.NewStyle().Foreground(theme.Success).Render(line) + "\n"
	default:
		return lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
	}
}
