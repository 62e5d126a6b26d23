package session

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/matemagica/matemagica/internal/profile"
	"github.com/matemagica/matemagica/internal/router"
	"github.com/matemagica/matemagica/internal/screen"
	"github.com/matemagica/matemagica/internal/screens/summary"
	sess "github.com/matemagica/matemagica/internal/session"
	"github.com/matemagica/matemagica/internal/ui/components"
	"github.com/matemagica/matemagica/internal/ui/layout"
)

// SessionScreen plays one sitting question by question. Every answer is
// committed to the progress document as it happens, so quitting early loses
// the session bonus but never the skill history.
type SessionScreen struct {
	ac     *profile.AppContext
	state  *sess.Session
	eval   *sess.Evaluator
	choice components.MultiChoice
	note   string

	remaining  float64 // seconds left for the current question
	feedback   *sess.Outcome
	confirming bool
	finalized  bool
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)

// New builds the player screen around an already composed session. Callers
// compose first so composition errors surface on their own screen.
func New(ac *profile.AppContext, state *sess.Session) *SessionScreen {
	s := &SessionScreen{
		ac:    ac,
		state: state,
		eval:  sess.NewEvaluator(ac.Progress, nil),
	}
	s.loadQuestion()
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.state.TimerOn {
		return tickCmd()
	}
	return nil
}

func (s *SessionScreen) Title() string {
	return s.state.Kind.Label()
}

func (s *SessionScreen) HeaderStats() (int, int) {
	return s.ac.Progress.Coins, s.ac.Progress.Streak.Current
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.feedback != nil {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "↑↓ Enter", Description: "Pick"},
		{Key: "H", Description: "Hint"},
		{Key: "Esc", Description: "Leave"},
	}
	return hints
}

// loadQuestion arms the choice component and the countdown for the question
// under play.
func (s *SessionScreen) loadQuestion() {
	q := s.state.Current()
	if q == nil {
		return
	}
	s.choice = components.NewMultiChoice(q.Prompt, q.Hint, q.Options, correctIndex(q.Options, q.Correct))
	s.remaining = s.state.QuestionSeconds()
}

func correctIndex(options []string, correct string) int {
	for i, o := range options {
		if o == correct {
			return i
		}
	}
	return 0
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		return s.handleTick()

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case sessionEndMsg:
		return s.handleEnd()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleTick() (screen.Screen, tea.Cmd) {
	if !s.state.TimerOn || s.state.Done() || s.finalized {
		return s, nil
	}
	// The countdown pauses on overlays.
	if s.feedback != nil || s.confirming {
		return s, tickCmd()
	}

	s.remaining -= 1
	if s.remaining <= 0 {
		out := s.eval.Timeout(s.state)
		s.feedback = &out
		s.save()
	}
	return s, tickCmd()
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirming {
		switch key {
		case "y", "Y":
			// Per-answer history is already saved; only the wrap-up is skipped.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.confirming = false
		}
		return s, nil
	}

	if s.feedback != nil {
		return s, func() tea.Msg { return feedbackDoneMsg{} }
	}

	if key == "esc" {
		s.confirming = true
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if s.choice.Submitted {
		out := s.eval.Submit(s.state, s.choice.Chosen())
		s.feedback = &out
		s.save()
	}
	return s, cmd
}

func (s *SessionScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	s.feedback = nil
	if s.state.Done() {
		return s, func() tea.Msg { return sessionEndMsg{} }
	}
	s.loadQuestion()
	return s, nil
}

func (s *SessionScreen) handleEnd() (screen.Screen, tea.Cmd) {
	if s.finalized {
		return s, nil
	}
	s.finalized = true

	sum := s.eval.Finalize(s.state)
	var placement *sess.Placement
	if s.state.Kind == sess.KindDiagnostic {
		p := sess.ApplyPlacement(s.ac.Progress, s.state)
		placement = &p
	}
	s.save()

	next := summary.New(s.state, sum, placement)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// save persists the progress document. A failed save keeps the sitting
// running on the in-memory state and surfaces as a notice; the next save
// retries the whole document.
func (s *SessionScreen) save() {
	if err := s.ac.Save(context.Background()); err != nil {
		s.note = "Progress not saved: " + err.Error()
		return
	}
	s.note = ""
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}
