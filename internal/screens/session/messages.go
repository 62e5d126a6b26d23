package session

import "time"

// timerTickMsg is sent every second while the question countdown runs.
type timerTickMsg time.Time

// feedbackDoneMsg dismisses the feedback overlay and advances the sitting.
type feedbackDoneMsg struct{}

// sessionEndMsg triggers the finalize flow.
type sessionEndMsg struct{}
