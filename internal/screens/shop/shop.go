package shop

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/matemagica/matemagica/internal/profile"
	"github.com/matemagica/matemagica/internal/router"
	"github.com/matemagica/matemagica/internal/screen"
	"github.com/matemagica/matemagica/internal/streak"
	"github.com/matemagica/matemagica/internal/ui/layout"
	"github.com/matemagica/matemagica/internal/ui/theme"
)

// ShopScreen sells streak freezes for coins.
type ShopScreen struct {
	ac   *profile.AppContext
	note string
}

var _ screen.Screen = (*ShopScreen)(nil)
var _ screen.KeyHintProvider = (*ShopScreen)(nil)

// New creates a new ShopScreen.
func New(ac *profile.AppContext) *ShopScreen {
	return &ShopScreen{ac: ac}
}

func (s *ShopScreen) Init() tea.Cmd {
	return nil
}

func (s *ShopScreen) Title() string {
	return "Shop"
}

func (s *ShopScreen) HeaderStats() (int, int) {
	return s.ac.Progress.Coins, s.ac.Progress.Streak.Current
}

func (s *ShopScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Buy freeze"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ShopScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter":
	default:
		return s, nil
	}

	prog := s.ac.Progress
	coins, ok := prog.Streak.BuyFreeze(prog.Coins)
	if !ok {
		s.note = fmt.Sprintf("Not enough coins — a freeze costs %d 🪙", streak.FreezePrice)
		return s, nil
	}
	prog.Coins = coins
	if err := s.ac.Save(context.Background()); err != nil {
		s.note = err.Error()
		return s, nil
	}
	s.note = "Streak freeze bought! It covers one missed day."
	return s, nil
}

func (s *ShopScreen) View(width, height int) string {
	prog := s.ac.Progress
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Shop"))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Text).Render(fmt.Sprintf(
		"🪙 %d coins        🔥 %d day streak (best %d)        ❄ %d freezes",
		prog.Coins, prog.Streak.Current, prog.Streak.Best, prog.Streak.Freezes)))
	b.WriteString("\n\n")

	b.WriteString(center.Foreground(theme.Secondary).Bold(true).Render(
		fmt.Sprintf("❄ Streak freeze — %d 🪙", streak.FreezePrice)))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render(
		"Covers one missed day so your streak survives."))
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Press Enter to buy"))

	if s.note != "" {
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.Accent).Render(s.note))
	}

	return b.String()
}
