package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/matemagica/matemagica/internal/curriculum"
	"github.com/matemagica/matemagica/internal/router"
	"github.com/matemagica/matemagica/internal/screen"
	sess "github.com/matemagica/matemagica/internal/session"
	"github.com/matemagica/matemagica/internal/ui/layout"
	"github.com/matemagica/matemagica/internal/ui/theme"
)

// SummaryScreen shows the wrap-up of a finished sitting.
type SummaryScreen struct {
	state     *sess.Session
	summary   *sess.Summary
	placement *sess.Placement
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen. placement is nil except after the
// placement check.
func New(state *sess.Session, summary *sess.Summary, placement *sess.Placement) *SummaryScreen {
	return &SummaryScreen{state: state, summary: summary, placement: placement}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")

	headline := "Session complete!"
	if sum.Passed {
		headline = "Passed! " + strings.Repeat("★", sum.Stars) + strings.Repeat("☆", 3-sum.Stars)
	} else if s.state.NodeID != "" {
		headline = "Not passed yet — 80% to clear it"
	}
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render(headline))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf(
		"Score: %.0f%%        Correct: %d/%d",
		sum.Score*100, s.state.Correct, len(s.state.Questions))))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf(
		"+%d XP        +%d 🪙        ~%d min", sum.XP, sum.Coins, sum.EstimatedMinutes)))
	b.WriteString("\n\n")

	if sum.UnlockedUnitID != "" {
		title := sum.UnlockedUnitID
		if u, err := curriculum.GetUnit(sum.UnlockedUnitID); err == nil {
			title = u.Title
		}
		b.WriteString(center.Foreground(theme.Accent).Bold(true).Render("Unit unlocked: " + title))
		b.WriteString("\n\n")
	}

	if sum.StreakFreezeUsed > 0 {
		b.WriteString(center.Foreground(theme.Secondary).Render(fmt.Sprintf(
			"❄ %d streak freeze(s) covered your missed days", sum.StreakFreezeUsed)))
		b.WriteString("\n")
	}
	b.WriteString(center.Foreground(theme.Accent).Render(fmt.Sprintf("🔥 Streak: %d day(s)", sum.StreakCurrent)))
	b.WriteString("\n")

	if s.placement != nil {
		b.WriteString("\n")
		track := "year 6"
		if s.placement.TrackKey == "g1" {
			track = "year 1, with the inclusion pack on"
		}
		b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf(
			"Placement: %.0f%% — starting at %s", s.placement.Score*100, track)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Press Enter to continue"))

	return b.String()
}
