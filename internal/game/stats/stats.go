package stats

import (
	"errors"
	"fmt"
	"math"

	"github.com/udisondev/pkmbattle/internal/data"
	"github.com/udisondev/pkmbattle/internal/model"
)

var (
	// ErrOutOfRange is returned for a level, IV or EV outside its legal range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrUnknownNature is the store's sentinel, re-exported for callers of this package.
	ErrUnknownNature = data.ErrUnknownNature
)

// Legal ranges and defaults.
const (
	MinLevel = 1
	MaxLevel = 100
	MaxIV    = 31
	MaxEV    = 255

	DefaultLevel  = MaxLevel
	DefaultNature = "Hardy"
)

// Spread holds per-stat IVs or EVs. Missing stats count as 0.
type Spread map[model.Stat]int

// Array expands the spread into a fixed array.
func (s Spread) Array() model.Stats {
	var out model.Stats
	for st, v := range s {
		if st < model.StatCount {
			out[st] = v
		}
	}
	return out
}

// Uniform returns a spread with v for every stat.
func Uniform(v int) Spread {
	s := make(Spread, model.StatCount)
	for _, st := range model.AllStats() {
		s[st] = v
	}
	return s
}

// EffectiveStats is a creature's in-battle stat block at a given build.
type EffectiveStats struct {
	Creature data.Creature
	Nature   string
	Level    int
	IVs      model.Stats
	EVs      model.Stats
	Stats    model.Stats
	Total    int
}

// Get returns the effective value of s.
func (e EffectiveStats) Get(s model.Stat) int { return e.Stats[s] }

// Compute derives the six in-battle stats.
//
//	HP    = ⌊(2·B + IV + ⌊EV/4⌋)·L/100⌋ + L + 10
//	other = ⌊(⌊(2·B + IV + ⌊EV/4⌋)·L/100⌋ + 5) · nature⌋
//
// All arithmetic is integral: the nature factor is applied in tenths.
func Compute(base model.Stats, nature data.Nature, level int, ivs, evs Spread) (model.Stats, error) {
	if level < MinLevel || level > MaxLevel {
		return model.Stats{}, fmt.Errorf("level %d not in [%d, %d]: %w", level, MinLevel, MaxLevel, ErrOutOfRange)
	}
	if err := checkSpread("IV", ivs, MaxIV); err != nil {
		return model.Stats{}, err
	}
	if err := checkSpread("EV", evs, MaxEV); err != nil {
		return model.Stats{}, err
	}

	iv, ev := ivs.Array(), evs.Array()
	var out model.Stats
	for _, st := range model.AllStats() {
		core := (2*base[st] + iv[st] + ev[st]/4) * level / 100
		if st == model.StatHP {
			out[st] = core + level + 10
			continue
		}
		out[st] = (core + 5) * tenths(nature.Factor(st)) / 10
	}
	return out, nil
}

// tenths maps a nature factor (0.9, 1.0, 1.1) to an integer numerator over 10.
func tenths(f float64) int {
	return int(math.Round(f * 10))
}

func checkSpread(kind string, s Spread, maxV int) error {
	for st, v := range s {
		if st >= model.StatCount {
			return fmt.Errorf("%s for unknown stat %d: %w", kind, st, ErrOutOfRange)
		}
		if v < 0 || v > maxV {
			return fmt.Errorf("%s %s = %d not in [0, %d]: %w", kind, st, v, maxV, ErrOutOfRange)
		}
	}
	return nil
}

// Spec describes a build. Zero values mean the defaults:
// nature Hardy, level 100, all IVs and EVs 0.
type Spec struct {
	Nature string
	Level  int
	IVs    Spread
	EVs    Spread
}

func (s Spec) withDefaults() Spec {
	if s.Nature == "" {
		s.Nature = DefaultNature
	}
	if s.Level == 0 {
		s.Level = DefaultLevel
	}
	return s
}

// Calculator resolves nature names through the store.
type Calculator struct {
	store *data.Store
}

// NewCalculator creates a calculator over the loaded natures.
func NewCalculator(store *data.Store) *Calculator {
	return &Calculator{store: store}
}

// Effective computes the creature's stats for spec.
func (c *Calculator) Effective(creature data.Creature, spec Spec) (EffectiveStats, error) {
	spec = spec.withDefaults()

	nature, err := c.store.Nature(spec.Nature)
	if err != nil {
		return EffectiveStats{}, err
	}
	st, err := Compute(creature.Base, nature, spec.Level, spec.IVs, spec.EVs)
	if err != nil {
		return EffectiveStats{}, fmt.Errorf("%s: %w", creature.Name, err)
	}
	return EffectiveStats{
		Creature: creature,
		Nature:   nature.Name,
		Level:    spec.Level,
		IVs:      spec.IVs.Array(),
		EVs:      spec.EVs.Array(),
		Stats:    st,
		Total:    st.Total(),
	}, nil
}

// EffectiveByRef looks the creature up first.
func (c *Calculator) EffectiveByRef(ref data.CreatureRef, spec Spec) (EffectiveStats, error) {
	creature, err := c.store.Lookup(ref)
	if err != nil {
		return EffectiveStats{}, err
	}
	return c.Effective(creature, spec)
}
