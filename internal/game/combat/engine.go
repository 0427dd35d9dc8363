package combat

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/udisondev/pkmbattle/internal/data"
	"github.com/udisondev/pkmbattle/internal/game/stats"
	"github.com/udisondev/pkmbattle/internal/game/typechart"
	"github.com/udisondev/pkmbattle/internal/model"
)

// KOThreshold is the damage percentage at which a hit knocks the defender out.
const KOThreshold = 100.0

// DamageRow is the outcome of one attacker move against one defender.
type DamageRow struct {
	Move         string
	Type         model.Type
	Category     model.Category
	Power        int
	Accuracy     *float64
	PP           *int
	EffectChance *int

	Attacker string
	Defender string
	Damage   int
	Percent  float64 // of the defender's effective HP
}

// KO reports whether the hit takes the defender's whole HP.
func (r DamageRow) KO() bool { return r.Percent >= KOThreshold }

// Engine scores matchups over one loaded dataset.
// Safe for concurrent use.
type Engine struct {
	store *data.Store
	calc  *stats.Calculator
	mods  Modifiers

	once   sync.Once
	matrix *typechart.Matrix
}

// Option configures an Engine.
type Option func(*Engine)

// WithModifiers sets the situational factors applied to every hit.
func WithModifiers(m Modifiers) Option {
	return func(e *Engine) { e.mods = m }
}

// NewEngine creates an engine. The type matrix is derived on first use.
func NewEngine(store *data.Store, calc *stats.Calculator, opts ...Option) *Engine {
	e := &Engine{store: store, calc: calc}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Matrix returns the dual-type matrix built from the store's chart.
func (e *Engine) Matrix() *typechart.Matrix {
	e.once.Do(func() {
		e.matrix = typechart.New(e.store.TypeChart())
	})
	return e.matrix
}

// Modifiers returns the engine's situational factors.
func (e *Engine) Modifiers() Modifiers { return e.mods }

// Matchup computes one row per damaging move the attacker can learn, sorted
// by damage, highest first. Moves without a fixed power are skipped.
func (e *Engine) Matchup(attacker, defender stats.EffectiveStats) ([]DamageRow, error) {
	moves, err := e.store.PrettyMoveset(data.ByName(attacker.Creature.Name))
	if err != nil {
		return nil, fmt.Errorf("matchup %s vs %s: %w", attacker.Creature.Name, defender.Creature.Name, err)
	}
	defRow, err := e.Matrix().Row(defender.Creature.Typing.Key())
	if err != nil {
		return nil, fmt.Errorf("matchup %s vs %s: %w", attacker.Creature.Name, defender.Creature.Name, err)
	}

	hp := defender.Get(model.StatHP)
	rows := make([]DamageRow, 0, len(moves))
	for _, m := range moves {
		if !m.Damaging() {
			continue
		}

		atkStat, defStat := model.StatAttack, model.StatDefense
		if *m.Category == model.CategorySpecial {
			atkStat, defStat = model.StatSpAtk, model.StatSpDef
		}

		dmg := Damage(
			attacker.Level,
			*m.Power,
			attacker.Get(atkStat),
			defender.Get(defStat),
			e.mods.STAB(attacker.Creature.Typing, *m.Type),
			defRow.Against(*m.Type),
			e.mods,
		)

		rows = append(rows, DamageRow{
			Move:         m.Move,
			Type:         *m.Type,
			Category:     *m.Category,
			Power:        *m.Power,
			Accuracy:     m.Accuracy,
			PP:           m.PP,
			EffectChance: m.EffectChance,
			Attacker:     attacker.Creature.Name,
			Defender:     defender.Creature.Name,
			Damage:       dmg,
			Percent:      100 * float64(dmg) / float64(hp),
		})
	}

	slices.SortStableFunc(rows, func(a, b DamageRow) int {
		return cmp.Compare(b.Damage, a.Damage)
	})
	return rows, nil
}

// Bias weights the two directions of a matchup score.
type Bias struct {
	Attack  float64 // weight of the defender's retaliation
	Defense float64 // weight of the damage the defender takes
}

// DefaultBias favours survival and rewards retaliation at half weight.
func DefaultBias() Bias {
	return Bias{Attack: -0.5, Defense: 1.0}
}

// MatchupScore rates how well defender handles attacker; lower is better.
//
//	score(X, Y) = (1 + KOs(X→Y)) · mean(percent(X→Y))
//	result      = bias.Defense · score(attacker, defender) + bias.Attack · score(defender, attacker)
func (e *Engine) MatchupScore(attacker, defender stats.EffectiveStats, bias Bias) (float64, error) {
	incoming, err := e.Matchup(attacker, defender)
	if err != nil {
		return 0, err
	}
	outgoing, err := e.Matchup(defender, attacker)
	if err != nil {
		return 0, err
	}
	return bias.Defense*directionScore(incoming) + bias.Attack*directionScore(outgoing), nil
}

// directionScore is 0 for an attacker with no damaging moves.
func directionScore(rows []DamageRow) float64 {
	if len(rows) == 0 {
		return 0
	}
	var (
		sum float64
		kos int
	)
	for _, r := range rows {
		sum += r.Percent
		if r.KO() {
			kos++
		}
	}
	return float64(1+kos) * sum / float64(len(rows))
}
