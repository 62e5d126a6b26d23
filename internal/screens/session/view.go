package session

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/matemagica/matemagica/internal/curriculum"
	"github.com/matemagica/matemagica/internal/ui/components"
	"github.com/matemagica/matemagica/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	var body string
	switch {
	case s.confirming:
		body = renderQuitConfirm(width)
	case s.feedback != nil:
		body = s.renderFeedback(width)
	default:
		body = s.renderQuestion(width)
	}

	if s.note != "" {
		body += "\n\n" + lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.note)
	}
	return body
}

// renderQuestion renders the active question with the status line on top.
func (s *SessionScreen) renderQuestion(width int) string {
	q := s.state.Current()
	if q == nil {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\n\n  Wrapping up...")
	}

	var b strings.Builder

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + curriculum.SkillTitle(q.SkillID))

	status := fmt.Sprintf("Q %d/%d   ✓ %d  ✗ %d",
		s.state.Index+1, len(s.state.Questions), s.state.Correct, s.state.Wrong)
	if s.state.TimerOn {
		secs := int(math.Ceil(s.remaining))
		if secs < 0 {
			secs = 0
		}
		status += fmt.Sprintf("   ⏱ %ds", secs)
	}
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(status)

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	b.WriteString(line)
	b.WriteString("\n")
	bar := components.NewProgressBar("",
		float64(s.state.Index)/float64(len(s.state.Questions)), false, max(width-4, 20))
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choice.View()))

	return b.String()
}

// renderFeedback renders the answer feedback overlay.
func (s *SessionScreen) renderFeedback(width int) string {
	out := s.feedback

	var b strings.Builder
	b.WriteString("\n\n")

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	switch {
	case out.TimedOut:
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Time's up!"))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render("The answer was " + out.CorrectAnswer))
	case out.Correct:
		b.WriteString(center.Foreground(theme.Success).Bold(true).Render("Correct!"))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf("+%d XP   +%d 🪙", out.XP, out.Coins)))
	default:
		b.WriteString(center.Foreground(theme.Error).Bold(true).Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.TextDim).Render("The answer was " + out.CorrectAnswer))
		b.WriteString("\n")
		b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf("+%d XP for trying", out.XP)))
	}

	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Press any key to continue..."))

	return b.String()
}

// renderQuitConfirm renders the leave-early dialog.
func renderQuitConfirm(width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(center.Foreground(theme.Text).Bold(true).Render("Leave this session?"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Answers so far are saved; the session bonus is not."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Success).Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Render("[N] No, keep going"))

	return b.String()
}
