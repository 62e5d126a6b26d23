package welcome

import (
	"context"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/matemagica/matemagica/internal/profile"
	"github.com/matemagica/matemagica/internal/router"
	"github.com/matemagica/matemagica/internal/screen"
	"github.com/matemagica/matemagica/internal/screens/home"
	sessionscreen "github.com/matemagica/matemagica/internal/screens/session"
	sess "github.com/matemagica/matemagica/internal/session"
	"github.com/matemagica/matemagica/internal/store"
	"github.com/matemagica/matemagica/internal/ui/components"
	"github.com/matemagica/matemagica/internal/ui/theme"
)

// step walks the first-run form in order.
type step int

const (
	stepName step = iota
	stepGrade
	stepClass
	stepSchool
	stepStart
)

// WelcomeScreen collects the learner's details on first run, then offers the
// placement check before handing over to the home screen.
type WelcomeScreen struct {
	st    *store.Store
	step  step
	input components.TextInput
	menu  components.Menu

	firstName string
	gradeYear int
	classGrp  string
	school    string

	ac     *profile.AppContext
	errMsg string
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates the first-run screen.
func New(st *store.Store) *WelcomeScreen {
	return &WelcomeScreen{
		st:    st,
		input: components.NewTextInput("Your first name...", false, 30),
	}
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.input.Init()
}

func (w *WelcomeScreen) Title() string {
	return "Welcome"
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if w.step == stepStart {
		var cmd tea.Cmd
		w.menu, cmd = w.menu.Update(msg)
		return w, cmd
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return w, w.advance()
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

// advance validates the current field and moves to the next step.
func (w *WelcomeScreen) advance() tea.Cmd {
	value := strings.TrimSpace(w.input.Value())

	switch w.step {
	case stepName:
		if value == "" {
			w.errMsg = "Tell me your name first!"
			return nil
		}
		w.firstName = value
		w.step = stepGrade
		w.input = components.NewTextInput("Your school year (1-9)...", true, 2)

	case stepGrade:
		grade, err := strconv.Atoi(value)
		if err != nil || grade < 1 || grade > 9 {
			w.errMsg = "Pick a year between 1 and 9."
			return nil
		}
		w.gradeYear = grade
		w.step = stepClass
		w.input = components.NewTextInput("Class group, like 6B (optional)...", false, 10)

	case stepClass:
		w.classGrp = value
		w.step = stepSchool
		w.input = components.NewTextInput("School name (optional)...", false, 60)

	case stepSchool:
		w.school = value
		if err := w.createProfile(); err != nil {
			w.errMsg = err.Error()
			return nil
		}
		w.step = stepStart
		w.menu = components.NewMenu([]components.MenuItem{
			{Label: "Take the placement check", Hint: "12 questions, no timer", Action: w.startDiagnostic},
			{Label: "Start at my school year", Action: w.startHome},
		})
	}

	w.errMsg = ""
	if w.step == stepStart {
		return nil
	}
	return w.input.Init()
}

func (w *WelcomeScreen) createProfile() error {
	ac, err := profile.Create(context.Background(), w.st, profile.Profile{
		FirstName:  w.firstName,
		GradeYear:  w.gradeYear,
		ClassGroup: w.classGrp,
		SchoolName: w.school,
	})
	if err != nil {
		return err
	}
	w.ac = ac
	return nil
}

func (w *WelcomeScreen) startDiagnostic() tea.Cmd {
	ac := w.ac
	state := sess.ComposeDiagnostic(nil)
	return tea.Sequence(
		func() tea.Msg { return router.ReplaceScreenMsg{Screen: home.New(ac)} },
		func() tea.Msg { return router.PushScreenMsg{Screen: sessionscreen.New(ac, state)} },
	)
}

func (w *WelcomeScreen) startHome() tea.Cmd {
	ac := w.ac
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home.New(ac)}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(center.Foreground(theme.Primary).Bold(true).Render("Welcome to Matemagica!"))
	b.WriteString("\n")
	b.WriteString(center.Foreground(theme.TextDim).Render("Math practice, one small win at a time."))
	b.WriteString("\n\n")

	if w.step == stepStart {
		b.WriteString(center.Foreground(theme.Text).Render("All set, " + w.firstName + "! How do you want to start?"))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, w.menu.View()))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, w.input.View()))
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.TextDim).Render("Press Enter to continue"))
	}

	if w.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(center.Foreground(theme.Error).Render(w.errMsg))
	}

	return b.String()
}
