package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/matemagica/matemagica/internal/profile"
	"github.com/matemagica/matemagica/internal/router"
	"github.com/matemagica/matemagica/internal/screen"
	"github.com/matemagica/matemagica/internal/screens/home"
	"github.com/matemagica/matemagica/internal/screens/session"
	"github.com/matemagica/matemagica/internal/screens/welcome"
	sess "github.com/matemagica/matemagica/internal/session"
	"github.com/matemagica/matemagica/internal/store"
	"github.com/matemagica/matemagica/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel starts at home for a known learner and at the first-run form
// otherwise.
func newAppModel(st *store.Store) (AppModel, error) {
	ac, err := profile.Load(context.Background(), st)
	switch {
	case errors.Is(err, profile.ErrNoProfile):
		return AppModel{router: router.New(welcome.New(st))}, nil
	case err != nil:
		return AppModel{}, err
	}
	return AppModel{router: router.New(home.New(ac))}, nil
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var coins, streakDays int
	if sp, ok := active.(screen.HeaderStatsProvider); ok {
		coins, streakDays = sp.HeaderStats()
	}
	header := layout.RenderHeader(title, coins, streakDays, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program over an open store.
func Run(st *store.Store) error {
	model, err := newAppModel(st)
	if err != nil {
		return err
	}
	return runProgram(model)
}

// RunDiagnostic starts the program straight into the placement check for the
// active profile, with home underneath so the summary pops back to it.
func RunDiagnostic(st *store.Store) error {
	ac, err := profile.Load(context.Background(), st)
	if err != nil {
		return err
	}
	r := router.New(home.New(ac))
	r.Push(session.New(ac, sess.ComposeDiagnostic(nil)))
	return runProgram(AppModel{router: r})
}

func runProgram(model AppModel) error {
	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
