package curriculum

import (
	"fmt"
	"sort"
)

// NodeKind distinguishes the three node types inside a unit.
type NodeKind string

const (
	NodeLesson     NodeKind = "lesson"
	NodeReview     NodeKind = "review"
	NodeCheckpoint NodeKind = "checkpoint" // the unit "boss", gates the next unit
)

// Node is a playable step in a unit: a lesson, a review, or a checkpoint.
type Node struct {
	ID       string
	UnitID   string
	TrackKey string
	Kind     NodeKind
	Title    string
	SkillIDs []string
}

// Unit groups the nodes for one curricular topic.
type Unit struct {
	ID       string
	TrackKey string
	Title    string
	SkillIDs []string
	Nodes    []Node
}

// Track is one grade-year sequence of units.
type Track struct {
	Key        string
	GradeYear  int
	Units      []Unit
}

// registry holds the seeded tracks with precomputed indices.
type registry struct {
	tracks     map[string]*Track
	trackOrder []string
	nodeByID   map[string]*Node
	unitByID   map[string]*Unit
	titles     map[string]string // skillID -> display title
}

var reg *registry

func init() {
	reg = buildRegistry(seedTracks(), seedSkillTitles())
}

func buildRegistry(tracks []Track, titles map[string]string) *registry {
	r := &registry{
		tracks:   make(map[string]*Track, len(tracks)),
		nodeByID: make(map[string]*Node),
		unitByID: make(map[string]*Unit),
		titles:   titles,
	}
	for i := range tracks {
		t := &tracks[i]
		r.tracks[t.Key] = t
		r.trackOrder = append(r.trackOrder, t.Key)
		for j := range t.Units {
			u := &t.Units[j]
			r.unitByID[u.ID] = u
			for k := range u.Nodes {
				r.nodeByID[u.Nodes[k].ID] = &u.Nodes[k]
			}
		}
	}
	sort.Slice(r.trackOrder, func(i, j int) bool {
		return r.tracks[r.trackOrder[i]].GradeYear < r.tracks[r.trackOrder[j]].GradeYear
	})
	return r
}

// GetTrack returns the track for a key.
func GetTrack(key string) (*Track, error) {
	t, ok := reg.tracks[key]
	if !ok {
		return nil, fmt.Errorf("unknown track %q", key)
	}
	return t, nil
}

// AllTrackKeys returns the track keys in grade order.
func AllTrackKeys() []string {
	keys := make([]string, len(reg.trackOrder))
	copy(keys, reg.trackOrder)
	return keys
}

// GetNode returns a node by ID.
func GetNode(nodeID string) (*Node, error) {
	n, ok := reg.nodeByID[nodeID]
	if !ok {
		return nil, fmt.Errorf("unknown node %q", nodeID)
	}
	return n, nil
}

// GetUnit returns a unit by ID.
func GetUnit(unitID string) (*Unit, error) {
	u, ok := reg.unitByID[unitID]
	if !ok {
		return nil, fmt.Errorf("unknown unit %q", unitID)
	}
	return u, nil
}

// SkillTitle returns the display title for a skill, falling back to the ID
// when the skill has no registered title.
func SkillTitle(skillID string) string {
	if t, ok := reg.titles[skillID]; ok {
		return t
	}
	return skillID
}

// TrackKeyForGrade maps a grade year to the track that serves it.
// Grades outside the seeded range clamp to the nearest track.
func TrackKeyForGrade(grade int) string {
	if grade < 1 {
		grade = 1
	}
	if grade > 9 {
		grade = 9
	}
	return fmt.Sprintf("g%d", grade)
}

// NextUnit returns the unit that follows unitID within its track, or nil when
// unitID is the last unit.
func NextUnit(unitID string) *Unit {
	u, ok := reg.unitByID[unitID]
	if !ok {
		return nil
	}
	t := reg.tracks[u.TrackKey]
	for i := range t.Units {
		if t.Units[i].ID == unitID {
			if i+1 < len(t.Units) {
				return &t.Units[i+1]
			}
			return nil
		}
	}
	return nil
}

// CheckpointNode returns the checkpoint node of a unit, or nil if the unit has
// none.
func (u *Unit) CheckpointNode() *Node {
	for i := range u.Nodes {
		if u.Nodes[i].Kind == NodeCheckpoint {
			return &u.Nodes[i]
		}
	}
	return nil
}

// UnitUnlocked reports whether a unit is playable given the set of passed
// checkpoint node IDs. The first unit of every track is always unlocked; each
// later unit requires the previous unit's checkpoint to be passed.
func UnitUnlocked(unitID string, passedNodes map[string]bool) bool {
	u, ok := reg.unitByID[unitID]
	if !ok {
		return false
	}
	t := reg.tracks[u.TrackKey]
	for i := range t.Units {
		if t.Units[i].ID != unitID {
			continue
		}
		if i == 0 {
			return true
		}
		prev := t.Units[i-1]
		cp := prev.CheckpointNode()
		if cp == nil {
			return true
		}
		return passedNodes[cp.ID]
	}
	return false
}
