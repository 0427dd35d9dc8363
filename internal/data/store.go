package data

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/udisondev/pkmbattle/internal/model"
)

// Store owns the loaded tables. It is read-only after construction and all
// accessors return copies, so a Store may be shared freely.
type Store struct {
	generation string

	creatures []Creature
	byName    map[string]int // name → index into creatures
	byID      map[int]int    // id → index of the first row with that id

	moves     map[string]Move
	moveOrder []string

	movesets map[string][]MovesetEntry // creature name → one entry per move, first-seen order

	natures     map[string]Nature
	natureOrder []string

	chart  TypeChart
	digest [32]byte
}

func newStore(gen string, creatures []Creature, moves []Move, movesets []MovesetEntry, natures []Nature, chart TypeChart) *Store {
	s := &Store{
		generation:  gen,
		creatures:   creatures,
		byName:      make(map[string]int, len(creatures)),
		byID:        make(map[int]int, len(creatures)),
		moves:       make(map[string]Move, len(moves)),
		moveOrder:   make([]string, 0, len(moves)),
		movesets:    make(map[string][]MovesetEntry),
		natures:     make(map[string]Nature, len(natures)),
		natureOrder: make([]string, 0, len(natures)),
		chart:       chart,
	}
	for i, c := range creatures {
		s.byName[c.Name] = i
		if _, ok := s.byID[c.ID]; !ok {
			s.byID[c.ID] = i
		}
	}
	for _, m := range moves {
		s.moves[m.Name] = m
		s.moveOrder = append(s.moveOrder, m.Name)
	}
	// A (creature, move) pair appears once; repeated rows are folded into
	// the first one.
	pos := make(map[[2]string]int, len(movesets))
	for _, e := range movesets {
		key := [2]string{e.Creature, e.Move}
		if i, ok := pos[key]; ok {
			s.movesets[e.Creature][i] = s.movesets[e.Creature][i].merge(e)
			continue
		}
		pos[key] = len(s.movesets[e.Creature])
		s.movesets[e.Creature] = append(s.movesets[e.Creature], e)
	}
	for _, n := range natures {
		s.natures[n.Name] = n
		s.natureOrder = append(s.natureOrder, n.Name)
	}
	return s
}

// NewStore assembles a Store from in-memory tables, for tools and tests
// that do not read files. Names must be unique per table.
func NewStore(gen string, creatures []Creature, moves []Move, movesets []MovesetEntry, natures []Nature, chart TypeChart) (*Store, error) {
	seen := make(map[string]bool, len(creatures))
	for _, c := range creatures {
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate creature %q: %w", c.Name, ErrMalformedRecord)
		}
		if !c.Typing.Valid() {
			return nil, fmt.Errorf("creature %q: %w", c.Name, model.ErrInvalidTypeCombination)
		}
		seen[c.Name] = true
	}
	return newStore(gen,
		append([]Creature(nil), creatures...),
		append([]Move(nil), moves...),
		append([]MovesetEntry(nil), movesets...),
		append([]Nature(nil), natures...),
		chart), nil
}

// CreatureRef identifies a creature either by numeric id or by name.
type CreatureRef struct {
	id   int
	name string
	byID bool
}

// ByID references a creature by its numeric id.
func ByID(id int) CreatureRef { return CreatureRef{id: id, byID: true} }

// ByName references a creature by its unique name.
func ByName(name string) CreatureRef { return CreatureRef{name: name} }

// ParseRef treats all-digit input as an id and anything else as a name.
func ParseRef(s string) CreatureRef {
	if id, err := strconv.Atoi(s); err == nil {
		return ByID(id)
	}
	return ByName(s)
}

func (r CreatureRef) String() string {
	if r.byID {
		return "#" + strconv.Itoa(r.id)
	}
	return r.name
}

// Generation returns the movesets generation the store was loaded for.
func (s *Store) Generation() string { return s.generation }

// Digest returns the BLAKE2b-256 digest of the raw source files.
func (s *Store) Digest() [32]byte { return s.digest }

// DigestString returns the first 16 hex digits of Digest.
func (s *Store) DigestString() string {
	return hex.EncodeToString(s.digest[:8])
}

// Lookup resolves a creature reference.
func (s *Store) Lookup(ref CreatureRef) (Creature, error) {
	var (
		idx int
		ok  bool
	)
	if ref.byID {
		idx, ok = s.byID[ref.id]
	} else {
		idx, ok = s.byName[ref.name]
	}
	if !ok {
		return Creature{}, fmt.Errorf("creature %s: %w", ref, ErrNotFound)
	}
	return s.creatures[idx], nil
}

// Creatures returns every creature in file order.
func (s *Store) Creatures() []Creature {
	return append([]Creature(nil), s.creatures...)
}

// OfTypes returns creatures having t1 as either type and, when t2 is given,
// t2 as well. Storage order of Type1/Type2 does not matter.
func (s *Store) OfTypes(t1 model.Type, t2 ...model.Type) ([]Creature, error) {
	if len(t2) > 1 {
		return nil, fmt.Errorf("at most two types, got %d: %w", 1+len(t2), model.ErrInvalidTypeCombination)
	}
	if err := model.ValidateTypes(append([]model.Type{t1}, t2...)...); err != nil {
		return nil, err
	}

	var out []Creature
	for _, c := range s.creatures {
		if !c.Typing.Has(t1) {
			continue
		}
		if len(t2) == 1 && !c.Typing.Has(t2[0]) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// OfTyping returns creatures whose combination normalizes to exactly k.
func (s *Store) OfTyping(k model.DualTypeKey) []Creature {
	var out []Creature
	for _, c := range s.creatures {
		if k.Matches(c.Typing) {
			out = append(out, c)
		}
	}
	return out
}

// Move returns a move record by name.
func (s *Store) Move(name string) (Move, error) {
	m, ok := s.moves[name]
	if !ok {
		return Move{}, fmt.Errorf("move %q: %w", name, ErrNotFound)
	}
	return m.clone(), nil
}

// Moves returns every move in file order.
func (s *Store) Moves() []Move {
	out := make([]Move, 0, len(s.moveOrder))
	for _, name := range s.moveOrder {
		out = append(out, s.moves[name].clone())
	}
	return out
}

// Nature returns a nature record by name.
func (s *Store) Nature(name string) (Nature, error) {
	n, ok := s.natures[name]
	if !ok {
		return Nature{}, fmt.Errorf("nature %q: %w: %w", name, ErrUnknownNature, ErrNotFound)
	}
	return n, nil
}

// Natures returns every nature in file order.
func (s *Store) Natures() []Nature {
	out := make([]Nature, 0, len(s.natureOrder))
	for _, name := range s.natureOrder {
		out = append(out, s.natures[name])
	}
	return out
}

// TypeChart returns the single-type effectiveness table.
func (s *Store) TypeChart() TypeChart { return s.chart }

// Moveset returns the moveset entries of the referenced creature.
func (s *Store) Moveset(ref CreatureRef) ([]MovesetEntry, error) {
	c, err := s.Lookup(ref)
	if err != nil {
		return nil, err
	}
	return append([]MovesetEntry(nil), s.movesets[c.Name]...), nil
}

// DetailedMoveset left-joins the moveset with the move records.
// Entries whose move has no record carry a nil Move.
func (s *Store) DetailedMoveset(ref CreatureRef) ([]DetailedEntry, error) {
	entries, err := s.Moveset(ref)
	if err != nil {
		return nil, err
	}
	out := make([]DetailedEntry, len(entries))
	for i, e := range entries {
		out[i] = DetailedEntry{MovesetEntry: e}
		if m, ok := s.moves[e.Move]; ok {
			mc := m.clone()
			out[i].Move = &mc
		}
	}
	return out, nil
}

// PrettyMoveset projects the detailed moveset onto the battle columns.
func (s *Store) PrettyMoveset(ref CreatureRef) ([]MoveSummary, error) {
	detailed, err := s.DetailedMoveset(ref)
	if err != nil {
		return nil, err
	}
	out := make([]MoveSummary, len(detailed))
	for i, d := range detailed {
		out[i] = summarize(d)
	}
	return out, nil
}
