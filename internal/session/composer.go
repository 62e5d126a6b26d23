package session

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/matemagica/matemagica/internal/curriculum"
	"github.com/matemagica/matemagica/internal/ledger"
	"github.com/matemagica/matemagica/internal/questiongen"
)

var (
	// ErrNothingDue means a spaced review was requested with no due skills.
	ErrNothingDue = errors.New("no reviews due right now")
	// ErrNoErrors means error remediation was requested with an empty log.
	ErrNoErrors = errors.New("no recorded mistakes to train on")
)

// Composer assembles question plans from the learner's ledger. The rand
// source drives both plan shuffling and question generation, so a seeded
// composer is fully deterministic.
type Composer struct {
	Ledger *ledger.Service
	Rand   *rand.Rand
}

// NewComposer builds a composer over a ledger.
func NewComposer(led *ledger.Service, r *rand.Rand) *Composer {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Composer{Ledger: led, Rand: r}
}

// Request describes the sitting to compose. TargetSkills is the topical pool;
// for node sittings it comes from the node, for practice from the chosen
// topic. TrackKey scopes the weak-skill pool.
type Request struct {
	Kind         Kind
	Node         *curriculum.Node
	TargetSkills []string
	TrackKey     string
	Count        int
	Difficulty   curriculum.Difficulty
	NoTimer      bool
}

// Compose builds the session for a request.
//
// Standard sittings mix 70% target, 20% due and 10% weak skills, fill each
// share round-robin from its pool, then shuffle the whole plan. Pools that
// come up short under-fill silently. Checkpoints stay on-topic: target skills
// only, no mix. Spaced review is 100% due skills and error remediation is
// 100% logged mistakes; both refuse to compose from an empty pool.
func (c *Composer) Compose(req Request) (*Session, error) {
	if req.Count <= 0 {
		return nil, fmt.Errorf("session needs a positive question count, got %d", req.Count)
	}

	var plan []string
	switch req.Kind {
	case KindCheckpoint:
		if len(req.TargetSkills) == 0 {
			return nil, errors.New("checkpoint has no target skills")
		}
		plan = roundRobin(req.TargetSkills, req.Count)

	case KindSpacedReview:
		due := c.Ledger.DueSkills(12)
		if len(due) == 0 {
			return nil, ErrNothingDue
		}
		if req.Count > len(due) {
			req.Count = len(due)
		}
		plan = roundRobin(due, req.Count)

	case KindErrorRemediation:
		if len(req.TargetSkills) == 0 {
			return nil, ErrNoErrors
		}
		plan = roundRobin(req.TargetSkills, req.Count)

	default:
		plan = c.mixedPlan(req)
	}

	c.Rand.Shuffle(len(plan), func(i, j int) {
		plan[i], plan[j] = plan[j], plan[i]
	})

	questions := make([]*questiongen.Question, len(plan))
	for i, skillID := range plan {
		questions[i] = questiongen.Generate(skillID, c.Rand)
	}

	s := &Session{
		ID:             uuid.NewString(),
		Kind:           req.Kind,
		TrackKey:       req.TrackKey,
		Difficulty:     req.Difficulty,
		Questions:      questions,
		TimerOn:        !req.NoTimer,
		BaseSeconds:    QuestionSeconds(req.Kind, req.Difficulty),
		TimeMultiplier: 1.0,
		StartedAt:      time.Now(),
	}
	if req.Node != nil {
		s.NodeID = req.Node.ID
	}
	return s, nil
}

// mixedPlan builds the 70/20/10 plan for lessons, reviews, free practice and
// the weekly event.
func (c *Composer) mixedPlan(req Request) []string {
	n := req.Count
	nTarget := n * 7 / 10
	if nTarget < 1 {
		nTarget = 1
	}
	nDue := n * 2 / 10
	nWeak := n - nTarget - nDue
	if nWeak < 0 {
		nWeak = 0
	}

	due := c.Ledger.DueSkills(maxInt(1, nDue))
	weak := c.Ledger.WeakestInScope(req.TrackKey+"_", maxInt(1, nWeak))

	plan := make([]string, 0, n)
	plan = append(plan, roundRobin(req.TargetSkills, nTarget)...)
	plan = append(plan, roundRobin(due, nDue)...)
	plan = append(plan, roundRobin(weak, nWeak)...)
	return plan
}

// roundRobin fills count slots by cycling the pool. An empty pool yields an
// empty slice, which is how short pools under-fill.
func roundRobin(pool []string, count int) []string {
	if len(pool) == 0 || count <= 0 {
		return nil
	}
	out := make([]string, count)
	for i := 0; i < count; i++ {
		out[i] = pool[i%len(pool)]
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
