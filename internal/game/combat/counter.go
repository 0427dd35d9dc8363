package combat

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/udisondev/pkmbattle/internal/data"
	"github.com/udisondev/pkmbattle/internal/game/stats"
	"github.com/udisondev/pkmbattle/internal/game/typechart"
	"github.com/udisondev/pkmbattle/internal/model"
)

// DefaultTopKeys is the usual cut-off for CounterOptions.TopKeys.
const DefaultTopKeys = 10

// CounterOptions tune FindBestCounter.
type CounterOptions struct {
	// TopKeys limits the defensive combinations considered. Keys tied with
	// the last kept one are kept too. Zero means all.
	TopKeys int
	// Spec is the build applied to every candidate.
	Spec stats.Spec
	// Bias weights the score; the zero value means DefaultBias.
	Bias Bias
}

// Counter is a roster candidate scored against the opponent.
type Counter struct {
	Candidate stats.EffectiveStats
	Key       model.DualTypeKey
	Score     float64
}

// FindBestCounter ranks roster creatures by how well they hold against
// opponent, best first. Only creatures whose type combination is among the
// top resisting combinations for the opponent's types are scored.
func (e *Engine) FindBestCounter(opponent stats.EffectiveStats, roster []data.Creature, opts CounterOptions) ([]Counter, error) {
	if opts.Bias == (Bias{}) {
		opts.Bias = DefaultBias()
	}

	ranked, err := e.Matrix().BestAgainst(opponent.Creature.Typing.Types())
	if err != nil {
		return nil, fmt.Errorf("counters for %s: %w", opponent.Creature.Name, err)
	}
	keep := topKeys(ranked, opts.TopKeys)

	var out []Counter
	for _, c := range roster {
		if c.Name == opponent.Creature.Name {
			continue
		}
		key := c.Typing.Key()
		if !keep[key] {
			continue
		}

		candidate, err := e.calc.Effective(c, opts.Spec)
		if err != nil {
			return nil, fmt.Errorf("counters for %s: %w", opponent.Creature.Name, err)
		}
		score, err := e.MatchupScore(opponent, candidate, opts.Bias)
		if err != nil {
			return nil, err
		}
		out = append(out, Counter{Candidate: candidate, Key: key, Score: score})
	}

	slices.SortStableFunc(out, func(a, b Counter) int {
		return cmp.Compare(a.Score, b.Score)
	})
	return out, nil
}

// topKeys returns the first n keys of ranked plus any tied with the n-th.
func topKeys(ranked []typechart.Ranked, n int) map[model.DualTypeKey]bool {
	keep := make(map[model.DualTypeKey]bool, len(ranked))
	for i, r := range ranked {
		if n > 0 && i >= n && r.Score != ranked[n-1].Score {
			break
		}
		keep[r.Key] = true
	}
	return keep
}
