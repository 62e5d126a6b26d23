package session

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/matemagica/matemagica/internal/curriculum"
	"github.com/matemagica/matemagica/internal/profile"
	"github.com/matemagica/matemagica/internal/questiongen"
)

// PlacementThreshold divides the two placement outcomes of the diagnostic.
const PlacementThreshold = 0.60

// diagnosticPlan is the fixed probe across the strands the placement check
// cares about. Order matters only for pacing; scoring is flat.
var diagnosticPlan = []string{
	"g4_mul_facts_6_9",
	"g4_mul_facts_6_9",
	"g5_div_2digit",
	"g6_dec_compare",
	"g6_dec_compare",
	"g6_order_ops",
	"g4_frac_equiv",
	"g6_frac_equiv",
	"g2_place_value",
	"g6_percent_simple",
	"g6_order_ops",
	"g5_dec_addsub",
}

// ComposeDiagnostic builds the placement sitting. It is always untimed and
// graded at mid difficulty, whatever the learner's settings say.
func ComposeDiagnostic(r *rand.Rand) *Session {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	questions := make([]*questiongen.Question, len(diagnosticPlan))
	for i, skillID := range diagnosticPlan {
		questions[i] = questiongen.Generate(skillID, r)
	}
	return &Session{
		ID:             uuid.NewString(),
		Kind:           KindDiagnostic,
		Difficulty:     curriculum.DifficultyMid,
		Questions:      questions,
		TimerOn:        false,
		BaseSeconds:    QuestionSeconds(KindDiagnostic, curriculum.DifficultyMid),
		TimeMultiplier: 1.0,
		StartedAt:      time.Now(),
	}
}

// Placement is the outcome of the diagnostic.
type Placement struct {
	Score         float64
	TrackKey      string
	InclusionPack bool
}

// ApplyPlacement routes the learner from their diagnostic score. A weak
// result starts them on the first track with the full accessibility bundle;
// otherwise they start on the top primary track.
func ApplyPlacement(prog *profile.Progress, s *Session) Placement {
	score := s.Score()
	p := Placement{Score: score}
	if score < PlacementThreshold {
		p.TrackKey = "g1"
		p.InclusionPack = true
		prog.Settings.EnableInclusionPack()
	} else {
		p.TrackKey = "g6"
	}
	prog.CurrentYearTrack = p.TrackKey
	return p
}
