package session

import (
	"time"

	"github.com/matemagica/matemagica/internal/curriculum"
	"github.com/matemagica/matemagica/internal/profile"
	sess "github.com/matemagica/matemagica/internal/session"
)

// Compose builds a sitting from the learner's ledger. Callers pass the
// request so each entry point controls its own mix.
func Compose(ac *profile.AppContext, req sess.Request) (*sess.Session, error) {
	composer := sess.NewComposer(ac.Progress.Ledger(time.Now), nil)
	return composer.Compose(req)
}

// NodeRequest is the standard request for a curriculum node sitting.
func NodeRequest(ac *profile.AppContext, node *curriculum.Node) sess.Request {
	kind := sess.KindForNode(node)
	return sess.Request{
		Kind:         kind,
		Node:         node,
		TargetSkills: node.SkillIDs,
		TrackKey:     node.TrackKey,
		Count:        sess.NodeQuestionCount(kind, ac.Progress.Settings.FocusMode),
		Difficulty:   curriculum.DifficultyMid,
		NoTimer:      ac.Progress.Settings.NoTimer,
	}
}
