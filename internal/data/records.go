package data

import (
	"math"

	"github.com/udisondev/pkmbattle/internal/model"
)

// Creature is one row of the stats file.
type Creature struct {
	ID     int
	Name   string
	Typing model.Typing
	Base   model.Stats
}

// Move is one row of the moves file.
// Nil pointers mark values the source lists as absent ("—").
type Move struct {
	Name         string
	Type         model.Type
	Category     model.Category
	Power        *int     // nil for status and variable-power moves
	Accuracy     *float64 // +Inf when the move never misses
	PP           *int
	EffectChance *int // secondary effect probability, percent
}

// AlwaysHits reports whether the move bypasses accuracy checks.
func (m Move) AlwaysHits() bool {
	return m.Accuracy != nil && math.IsInf(*m.Accuracy, 1)
}

// Acquisition is a bitmask of the ways a creature learns a move.
type Acquisition uint8

const (
	ByLevel Acquisition = 1 << iota
	ByPreEvolution
	ByHM
	ByTM
	ByEgg
	ByTutor
	ByTR // technical record (generation 8)
)

// Has reports whether every method in m is set.
func (a Acquisition) Has(m Acquisition) bool { return a&m == m && m != 0 }

func (a Acquisition) String() string {
	if a == 0 {
		return "-"
	}
	names := [...]string{"level", "pre-evo", "HM", "TM", "egg", "tutor", "TR"}
	var out []byte
	for i, n := range names {
		if a&(1<<i) == 0 {
			continue
		}
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, n...)
	}
	return string(out)
}

// MovesetEntry links a creature to a move it can learn in the loaded generation.
type MovesetEntry struct {
	Creature string
	Move     string
	Methods  Acquisition
	Level    int // meaningful when Methods has ByLevel
	HM       int // machine numbers; 0 when absent or unnumbered
	TM       int
	TR       int
}

// Learns reports whether the entry is tagged with m.
func (e MovesetEntry) Learns(m Acquisition) bool { return e.Methods.Has(m) }

// merge folds another row for the same creature and move into e:
// methods are combined, the lowest learn level wins and machine
// numbers already set are kept.
func (e MovesetEntry) merge(o MovesetEntry) MovesetEntry {
	switch {
	case !o.Learns(ByLevel):
	case !e.Learns(ByLevel) || o.Level < e.Level:
		e.Level = o.Level
	}
	e.Methods |= o.Methods
	if e.HM == 0 {
		e.HM = o.HM
	}
	if e.TM == 0 {
		e.TM = o.TM
	}
	if e.TR == 0 {
		e.TR = o.TR
	}
	return e
}

// Nature carries one multiplicative factor per stat (0.9, 1.0 or 1.1).
type Nature struct {
	Name    string
	Factors [model.StatCount]float64
}

// Factor returns the nature's bonus for s.
func (n Nature) Factor(s model.Stat) float64 { return n.Factors[s] }

// IsNeutral reports whether all six factors are 1.0.
func (n Nature) IsNeutral() bool {
	for _, f := range n.Factors {
		if f != 1.0 {
			return false
		}
	}
	return true
}

// DetailedEntry is a moveset entry left-joined with its move record.
// Move is nil when the moves file has no row for the entry.
type DetailedEntry struct {
	MovesetEntry
	Move *Move
}

// MoveSummary is the battle-facing projection of a detailed entry.
// Battle fields are nil when the move has no record.
type MoveSummary struct {
	Move         string
	Type         *model.Type
	Category     *model.Category
	Power        *int
	Accuracy     *float64
	PP           *int
	EffectChance *int
}

// Damaging reports whether the move deals direct damage with a fixed power.
func (s MoveSummary) Damaging() bool {
	return s.Power != nil && s.Category != nil && s.Category.Damaging() && s.Type != nil
}

func summarize(d DetailedEntry) MoveSummary {
	s := MoveSummary{Move: d.MovesetEntry.Move}
	if d.Move == nil {
		return s
	}
	m := d.Move.clone()
	s.Type = &m.Type
	s.Category = &m.Category
	s.Power = m.Power
	s.Accuracy = m.Accuracy
	s.PP = m.PP
	s.EffectChance = m.EffectChance
	return s
}

// clone copies the move so callers never alias store memory.
func (m Move) clone() Move {
	m.Power = clonePtr(m.Power)
	m.Accuracy = clonePtr(m.Accuracy)
	m.PP = clonePtr(m.PP)
	m.EffectChance = clonePtr(m.EffectChance)
	return m
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
