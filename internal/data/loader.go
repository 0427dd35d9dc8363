package data

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/pkmbattle/internal/model"
)

// Config selects the five source files. Explicit file paths win over the
// generation-derived defaults; relative paths resolve against Dir.
type Config struct {
	Dir             string
	Generation      string // movesets generation
	StatsGeneration string // "all" or a generation number
	MovesGeneration string
	Separator       rune

	StatsFile     string
	MovesFile     string
	MovesetsFile  string
	NaturesFile   string
	TypeChartFile string
}

// Default file layout produced by the data-acquisition tooling.
const (
	StatsDir          = "stats"
	MovesDir          = "moves"
	TypeChartFileName = "types_matrix_gen6plus.csv"
	NaturesFileName   = "natures.csv"
	DefaultSeparator  = ';'
)

// StatsFileName returns the stats file name for gen ("all" or a number).
func StatsFileName(gen string) string { return fmt.Sprintf("stats_gen_%s.csv", gen) }

// MovesFileName returns the moves file name for gen.
func MovesFileName(gen string) string { return fmt.Sprintf("moves_gen_%s.csv", gen) }

// MovesetsFileName returns the movesets file name for gen.
func MovesetsFileName(gen string) string { return fmt.Sprintf("movesets_gen_%s.csv", gen) }

type sourceFiles struct {
	stats, moves, movesets, natures, chart string
}

func (c Config) files() sourceFiles {
	statsGen := orDefault(c.StatsGeneration, "all")
	movesGen := orDefault(c.MovesGeneration, "all")

	pick := func(explicit string, def ...string) string {
		if explicit != "" {
			if filepath.IsAbs(explicit) {
				return explicit
			}
			return filepath.Join(c.Dir, explicit)
		}
		return filepath.Join(append([]string{c.Dir}, def...)...)
	}
	return sourceFiles{
		stats:    pick(c.StatsFile, StatsDir, StatsFileName(statsGen)),
		moves:    pick(c.MovesFile, MovesDir, MovesFileName(movesGen)),
		movesets: pick(c.MovesetsFile, MovesDir, MovesetsFileName(c.Generation)),
		natures:  pick(c.NaturesFile, StatsDir, NaturesFileName),
		chart:    pick(c.TypeChartFile, StatsDir, TypeChartFileName),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Load reads and validates the five tables into a new Store.
// Files are parsed concurrently; every call returns an independent snapshot.
// Row-level problems from all files are reported together as a *LoadError.
func Load(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Generation == "" {
		return nil, fmt.Errorf("movesets generation is required")
	}
	sep := cfg.Separator
	if sep == 0 {
		sep = DefaultSeparator
	}
	files := cfg.files()

	var (
		raw       [5][]byte
		creatures []Creature
		moves     []Move
		movesets  []MovesetEntry
		natures   []Nature
		chart     TypeChart
		bad       [5]violations
	)

	g, gctx := errgroup.WithContext(ctx)
	load := func(slot int, path string, parse func(*table, *violations) error) {
		g.Go(func() error {
			// Cancelled by the caller or by a sibling's failure
			if err := gctx.Err(); err != nil {
				return err
			}
			b, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading table: %w", err)
			}
			raw[slot] = b
			t, err := parseTable(path, b, sep)
			if err != nil {
				return err
			}
			bad[slot].file = path
			return parse(t, &bad[slot])
		})
	}

	load(0, files.stats, func(t *table, v *violations) (err error) {
		creatures, err = parseCreatures(t, v)
		return err
	})
	load(1, files.moves, func(t *table, v *violations) (err error) {
		moves, err = parseMoves(t, v)
		return err
	})
	load(2, files.movesets, func(t *table, v *violations) (err error) {
		movesets, err = parseMovesets(t, v)
		return err
	})
	load(3, files.natures, func(t *table, v *violations) (err error) {
		natures, err = parseNatures(t, v)
		return err
	})
	load(4, files.chart, func(t *table, v *violations) (err error) {
		chart, err = parseTypeChart(t, v)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var rows []RowError
	for _, v := range bad {
		rows = append(rows, v.rows...)
	}
	if len(rows) > 0 {
		return nil, &LoadError{Rows: rows}
	}

	s := newStore(cfg.Generation, creatures, moves, movesets, natures, chart)
	s.digest = digest(raw[:])

	slog.Info("loaded dataset",
		"generation", cfg.Generation,
		"creatures", len(creatures),
		"moves", len(moves),
		"moveset_entries", len(movesets),
		"natures", len(natures),
		"digest", s.DigestString())
	return s, nil
}

func digest(parts [][]byte) [32]byte {
	h, _ := blake2b.New256(nil)
	for _, p := range parts {
		fmt.Fprintf(h, "%d:", len(p))
		h.Write(p)
	}
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func parseCreatures(t *table, v *violations) ([]Creature, error) {
	nameCol, err := t.require("Name")
	if err != nil {
		return nil, err
	}
	idCol, err := t.require("PokedexId", "#")
	if err != nil {
		return nil, err
	}
	type1Col, err := t.require("Type1")
	if err != nil {
		return nil, err
	}
	type2Col, _ := t.column("Type2")
	var statCols [model.StatCount]int
	for _, st := range model.AllStats() {
		if statCols[st], err = t.require(st.Column()); err != nil {
			return nil, err
		}
	}

	out := make([]Creature, 0, len(t.rows))
	seen := make(map[string]int, len(t.rows))
	for _, r := range t.rows {
		ok := true
		c := Creature{Name: r.cell(nameCol)}
		if c.Name == "" {
			v.add(r.line, "Name", "empty name")
			ok = false
		} else if first, dup := seen[c.Name]; dup {
			v.add(r.line, "Name", "duplicate name %q (first on line %d)", c.Name, first)
			ok = false
		} else {
			seen[c.Name] = r.line
		}

		id, err := parseInt(r.cell(idCol))
		if err != nil {
			v.add(r.line, "PokedexId", "%v", err)
			ok = false
		}
		c.ID = id

		t1, err := model.ParseType(r.cell(type1Col))
		if err != nil {
			v.add(r.line, "Type1", "%v", err)
			ok = false
		}
		c.Typing = model.Mono(t1)
		if raw := r.cell(type2Col); !isAbsent(raw) {
			t2, err := model.ParseType(raw)
			switch {
			case err != nil:
				v.add(r.line, "Type2", "%v", err)
				ok = false
			case t2 == t1:
				v.add(r.line, "Type2", "same as Type1 (%s)", t1)
				ok = false
			default:
				c.Typing = model.Dual(t1, t2)
			}
		}

		for _, st := range model.AllStats() {
			n, err := parseInt(r.cell(statCols[st]))
			if err != nil || n <= 0 {
				v.add(r.line, st.Column(), "base stat must be a positive integer, got %q", r.cell(statCols[st]))
				ok = false
				continue
			}
			c.Base[st] = n
		}

		if ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func parseMoves(t *table, v *violations) ([]Move, error) {
	nameCol, err := t.require("Name", "Move")
	if err != nil {
		return nil, err
	}
	typeCol, err := t.require("Type")
	if err != nil {
		return nil, err
	}
	catCol, err := t.require("Category", "Cat.")
	if err != nil {
		return nil, err
	}
	powerCol, err := t.require("Power")
	if err != nil {
		return nil, err
	}
	accCol, err := t.require("Accuracy", "Acc.")
	if err != nil {
		return nil, err
	}
	ppCol, err := t.require("PP")
	if err != nil {
		return nil, err
	}
	probCol, _ := t.column("Prob. (%)", "Prob")

	out := make([]Move, 0, len(t.rows))
	seen := make(map[string]bool, len(t.rows))
	for _, r := range t.rows {
		ok := true
		m := Move{Name: r.cell(nameCol)}
		switch {
		case m.Name == "":
			v.add(r.line, "Name", "empty move name")
			ok = false
		case seen[m.Name]:
			v.add(r.line, "Name", "duplicate move %q", m.Name)
			ok = false
		default:
			seen[m.Name] = true
		}

		if m.Type, err = model.ParseType(r.cell(typeCol)); err != nil {
			v.add(r.line, "Type", "%v", err)
			ok = false
		}
		if m.Category, err = model.ParseCategory(r.cell(catCol)); err != nil {
			v.add(r.line, "Category", "%v", err)
			ok = false
		}
		if m.Power, err = parseOptInt(r.cell(powerCol)); err != nil {
			v.add(r.line, "Power", "%v", err)
			ok = false
		}
		if m.Accuracy, err = parseAccuracy(r.cell(accCol)); err != nil {
			v.add(r.line, "Accuracy", "%v", err)
			ok = false
		}
		if m.PP, err = parseOptInt(r.cell(ppCol)); err != nil {
			v.add(r.line, "PP", "%v", err)
			ok = false
		}
		if m.EffectChance, err = parseOptInt(r.cell(probCol)); err != nil {
			v.add(r.line, "Prob. (%)", "%v", err)
			ok = false
		}

		if ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func parseMovesets(t *table, v *violations) ([]MovesetEntry, error) {
	creatureCol, err := t.require("Pokemon")
	if err != nil {
		return nil, err
	}
	moveCol, err := t.require("Move")
	if err != nil {
		return nil, err
	}
	levelCol, _ := t.column("Lvl", "Lv.")

	flagCols := []struct {
		name   string
		method Acquisition
	}{
		{"PreEvol", ByPreEvolution},
		{"HM", ByHM},
		{"TM", ByTM},
		{"Egg", ByEgg},
		{"Tutor", ByTutor},
		{"TR", ByTR},
	}

	out := make([]MovesetEntry, 0, len(t.rows))
	for _, r := range t.rows {
		ok := true
		e := MovesetEntry{Creature: r.cell(creatureCol), Move: r.cell(moveCol)}
		if e.Creature == "" {
			v.add(r.line, "Pokemon", "empty creature name")
			ok = false
		}
		if e.Move == "" {
			v.add(r.line, "Move", "empty move name")
			ok = false
		}

		if raw := r.cell(levelCol); !isAbsent(raw) {
			lvl, err := parseInt(raw)
			if err != nil || lvl < 0 || lvl > 100 {
				v.add(r.line, "Lvl", "invalid level %q", raw)
				ok = false
			} else {
				e.Methods |= ByLevel
				e.Level = lvl
			}
		}

		for _, fc := range flagCols {
			idx, present := t.column(fc.name)
			if !present {
				continue
			}
			has, num, err := parseFlag(r.cell(idx))
			if err != nil {
				v.add(r.line, fc.name, "%v", err)
				ok = false
				continue
			}
			if !has {
				continue
			}
			e.Methods |= fc.method
			switch fc.method {
			case ByHM:
				e.HM = num
			case ByTM:
				e.TM = num
			case ByTR:
				e.TR = num
			}
		}

		if ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func parseNatures(t *table, v *violations) ([]Nature, error) {
	nameCol, err := t.require("Nature", "Name")
	if err != nil {
		return nil, err
	}
	var cols [model.StatCount]int
	for _, st := range model.AllStats() {
		if cols[st], err = t.require(st.Column()); err != nil {
			return nil, err
		}
	}

	out := make([]Nature, 0, len(t.rows))
	seen := make(map[string]bool, len(t.rows))
	for _, r := range t.rows {
		ok := true
		n := Nature{Name: r.cell(nameCol)}
		switch {
		case n.Name == "":
			v.add(r.line, "Nature", "empty nature name")
			ok = false
		case seen[n.Name]:
			v.add(r.line, "Nature", "duplicate nature %q", n.Name)
			ok = false
		default:
			seen[n.Name] = true
		}
		for _, st := range model.AllStats() {
			f, err := parseFactor(r.cell(cols[st]))
			if err != nil {
				v.add(r.line, st.Column(), "%v", err)
				ok = false
				continue
			}
			n.Factors[st] = f
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func parseFactor(s string) (float64, error) {
	switch s {
	case "0.9", ".9", "0.90":
		return 0.9, nil
	case "1", "1.0", "1.00":
		return 1.0, nil
	case "1.1", "1.10":
		return 1.1, nil
	}
	return 0, fmt.Errorf("nature factor must be 0.9, 1.0 or 1.1, got %q", s)
}

func parseTypeChart(t *table, v *violations) (TypeChart, error) {
	attCol, err := t.require("Attack Type")
	if err != nil {
		return TypeChart{}, err
	}
	var defCols [model.TypeCount]int
	for _, def := range model.AllTypes() {
		if defCols[def], err = t.require(def.String()); err != nil {
			return TypeChart{}, err
		}
	}
	if extra := len(t.header) - 1 - int(model.TypeCount); extra > 0 {
		v.add(1, "", "%d column(s) outside the canonical type set", extra)
	}

	var (
		cells [model.TypeCount][model.TypeCount]float64
		seen  [model.TypeCount]bool
	)
	for _, r := range t.rows {
		att, err := model.ParseType(r.cell(attCol))
		if err != nil {
			v.add(r.line, "Attack Type", "%v", err)
			continue
		}
		if seen[att] {
			v.add(r.line, "Attack Type", "duplicate row for %s", att)
			continue
		}
		seen[att] = true
		for _, def := range model.AllTypes() {
			raw := r.cell(defCols[def])
			f, err := parseChartValue(raw)
			if err != nil {
				v.add(r.line, def.String(), "%v", err)
				continue
			}
			cells[att][def] = f
		}
	}
	for _, typ := range model.AllTypes() {
		if !seen[typ] {
			v.add(len(t.rows)+1, "Attack Type", "missing row for %s", typ)
		}
	}
	return TypeChart{cells: cells}, nil
}

func parseChartValue(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a multiplier: %q", s)
	}
	if !isChartValue(f) {
		return 0, fmt.Errorf("multiplier %v outside {0, 0.25, 0.5, 1, 2, 4}", f)
	}
	return f, nil
}
