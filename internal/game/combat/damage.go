package combat

import (
	"math"

	"github.com/udisondev/pkmbattle/internal/model"
)

// Same-type attack bonus values.
const (
	STABNone         = 1.0
	STABMatch        = 1.5
	STABAdaptability = 2.0
)

// Modifiers are the situational damage factors. The zero value of a field
// counts as 1, so Modifiers{} is the deterministic no-modifier baseline.
type Modifiers struct {
	Targets  float64 // 0.75 for spread moves
	Weather  float64 // 1.5 boosted, 0.5 weakened
	Critical float64 // 1.5 on a critical hit
	Random   float64 // 0.85..1.00 damage roll
	Burn     float64 // 0.5 for a burned physical attacker
	Other    float64 // items, abilities and move-specific effects

	// Adaptability raises the same-type bonus to 2.
	Adaptability bool
}

// Product multiplies the situational factors.
func (m Modifiers) Product() float64 {
	p := 1.0
	for _, f := range [...]float64{m.Targets, m.Weather, m.Critical, m.Random, m.Burn, m.Other} {
		if f != 0 {
			p *= f
		}
	}
	return p
}

// STAB returns the same-type bonus of a move of type moveType used by a
// creature of typing attacker.
func (m Modifiers) STAB(attacker model.Typing, moveType model.Type) float64 {
	if !attacker.Has(moveType) {
		return STABNone
	}
	if m.Adaptability {
		return STABAdaptability
	}
	return STABMatch
}

// Damage calculates the damage of one hit.
//
//	inner  = ⌊(2·L/5 + 2) · Power · A/D / 50⌋
//	damage = ⌊(inner + 2) · STAB · Type · modifiers⌋
//
// The inner term is evaluated as ⌊(2L+10)·Power·A / (250·D)⌋, which is the
// same quantity in integer arithmetic. The floor is applied after the inner
// term and again at the end.
//
// Parameters:
//   - level: attacker level
//   - power: move base power
//   - attack: attacker Attack (physical) or Sp. Atk (special)
//   - defense: defender Defense (physical) or Sp. Def (special)
//   - stab: same-type bonus
//   - typeMult: dual-type effectiveness, 0..4
func Damage(level, power, attack, defense int, stab, typeMult float64, mods Modifiers) int {
	if defense < 1 {
		defense = 1
	}
	inner := (2*level + 10) * power * attack / (250 * defense)
	return int(math.Floor(float64(inner+2) * stab * typeMult * mods.Product()))
}
