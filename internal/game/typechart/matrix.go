package typechart

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/udisondev/pkmbattle/internal/data"
	"github.com/udisondev/pkmbattle/internal/model"
)

// Row is the defensive vector of one type combination: the factor each
// attacking type deals to it, indexed by model.Type.
type Row struct {
	Key         model.DualTypeKey
	Multipliers [model.TypeCount]float64
}

// Against returns the factor the attacking type deals to this combination.
func (r Row) Against(attacking model.Type) float64 {
	return r.Multipliers[attacking]
}

// Ranked is a resisting combination scored by BestAgainst.
type Ranked struct {
	Key   model.DualTypeKey
	Score float64
}

// Matrix holds the defensive vector of every mono- and dual-type combination.
// Immutable after New.
type Matrix struct {
	rows  []Row
	index map[model.DualTypeKey]int
}

// New derives the dual-type matrix from a single-type chart.
// Rows keep first-seen order of the (t1, t2) walk over the canonical types,
// so a mono row is followed by the pairs it opens.
func New(chart data.TypeChart) *Matrix {
	const n = int(model.TypeCount)
	m := &Matrix{
		rows:  make([]Row, 0, n*(n+1)/2),
		index: make(map[model.DualTypeKey]int, n*(n+1)/2),
	}

	for _, t1 := range model.AllTypes() {
		for _, t2 := range model.AllTypes() {
			key := model.TypeToKey(t1, t2)
			if _, seen := m.index[key]; seen {
				continue
			}

			row := Row{Key: key, Multipliers: chart.Column(t1)}
			if t1 != t2 {
				col := chart.Column(t2)
				for att := range row.Multipliers {
					row.Multipliers[att] *= col[att]
				}
			}
			m.index[key] = len(m.rows)
			m.rows = append(m.rows, row)
		}
	}
	return m
}

// Len returns the number of combinations (171 for 18 types).
func (m *Matrix) Len() int { return len(m.rows) }

// Rows returns every combination in matrix order.
func (m *Matrix) Rows() []Row {
	return slices.Clone(m.rows)
}

// Row returns the defensive vector of key.
func (m *Matrix) Row(key model.DualTypeKey) (Row, error) {
	idx, ok := m.index[key]
	if !ok {
		return Row{}, fmt.Errorf("key %v: %w", key, model.ErrInvalidTypeCombination)
	}
	return m.rows[idx], nil
}

// Multiplier returns the factor attacking deals to the combination key.
func (m *Matrix) Multiplier(key model.DualTypeKey, attacking model.Type) (float64, error) {
	if err := model.ValidateTypes(attacking); err != nil {
		return 0, err
	}
	row, err := m.Row(key)
	if err != nil {
		return 0, err
	}
	return row.Against(attacking), nil
}

// WeakAgainst returns the combinations every listed type hits for more than 1x.
func (m *Matrix) WeakAgainst(types []model.Type) ([]Row, error) {
	return m.filter(types, func(v float64) bool { return v > 1 })
}

// ResistAgainst returns the combinations that take less than 1x from every
// listed type. Immunities count as resistances.
func (m *Matrix) ResistAgainst(types []model.Type) ([]Row, error) {
	return m.filter(types, func(v float64) bool { return v < 1 })
}

// ImmuneTo returns the combinations that take no damage from any listed type.
func (m *Matrix) ImmuneTo(types []model.Type) ([]Row, error) {
	return m.filter(types, func(v float64) bool { return v == 0 })
}

func (m *Matrix) filter(types []model.Type, keep func(float64) bool) ([]Row, error) {
	if len(types) == 0 {
		return nil, nil
	}
	if err := model.ValidateTypes(types...); err != nil {
		return nil, err
	}

	var out []Row
	for _, r := range m.rows {
		if matchesAll(r, types, keep) {
			out = append(out, r)
		}
	}
	return out, nil
}

func matchesAll(r Row, types []model.Type, keep func(float64) bool) bool {
	for _, t := range types {
		if !keep(r.Against(t)) {
			return false
		}
	}
	return true
}

// BestAgainst ranks the combinations resisting every listed type by the sum
// of the factors they take, lowest first. Ties keep matrix order.
func (m *Matrix) BestAgainst(types []model.Type) ([]Ranked, error) {
	resist, err := m.ResistAgainst(types)
	if err != nil {
		return nil, err
	}
	return rank(resist, types), nil
}

func rank(rows []Row, types []model.Type) []Ranked {
	if len(rows) == 0 {
		return nil
	}
	out := make([]Ranked, len(rows))
	for i, r := range rows {
		var sum float64
		for _, t := range types {
			sum += r.Against(t)
		}
		out[i] = Ranked{Key: r.Key, Score: sum}
	}
	slices.SortStableFunc(out, func(a, b Ranked) int {
		return cmp.Compare(a.Score, b.Score)
	})
	return out
}

// WriteCSV exports the matrix as one row per combination and one column per
// attacking type.
func (m *Matrix) WriteCSV(w io.Writer, sep rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep

	header := make([]string, 0, 1+model.TypeCount)
	header = append(header, "Types")
	for _, t := range model.AllTypes() {
		header = append(header, t.String())
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing matrix header: %w", err)
	}

	rec := make([]string, 1+model.TypeCount)
	for _, r := range m.rows {
		rec[0] = r.Key.String()
		for att, v := range r.Multipliers {
			rec[1+att] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing matrix row %v: %w", r.Key, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
