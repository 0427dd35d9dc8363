package data

import "github.com/udisondev/pkmbattle/internal/model"

// canonicalDefense holds the generation 6+ chart as defensive columns:
// canonicalDefense[defending][attacking].
var canonicalDefense = [model.TypeCount][model.TypeCount]float64{
	model.TypeNormal:   {1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 0, 1, 1, 1, 1},
	model.TypeFire:     {1, 0.5, 2, 1, 0.5, 0.5, 1, 1, 2, 1, 1, 0.5, 2, 1, 1, 1, 0.5, 0.5},
	model.TypeWater:    {1, 0.5, 0.5, 2, 2, 0.5, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0.5, 1},
	model.TypeElectric: {1, 1, 1, 0.5, 1, 1, 1, 1, 2, 0.5, 1, 1, 1, 1, 1, 1, 0.5, 1},
	model.TypeGrass:    {1, 2, 0.5, 0.5, 0.5, 2, 1, 2, 0.5, 2, 1, 2, 1, 1, 1, 1, 1, 1},
	model.TypeIce:      {1, 2, 1, 1, 1, 0.5, 2, 1, 1, 1, 1, 1, 2, 1, 1, 1, 2, 1},
	model.TypeFighting: {1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 0.5, 0.5, 1, 1, 0.5, 1, 2},
	model.TypePoison:   {1, 1, 1, 1, 0.5, 1, 0.5, 0.5, 2, 1, 2, 0.5, 1, 1, 1, 1, 1, 0.5},
	model.TypeGround:   {1, 1, 2, 0, 2, 2, 1, 0.5, 1, 1, 1, 1, 0.5, 1, 1, 1, 1, 1},
	model.TypeFlying:   {1, 1, 1, 2, 0.5, 2, 0.5, 1, 0, 1, 1, 0.5, 2, 1, 1, 1, 1, 1},
	model.TypePsychic:  {1, 1, 1, 1, 1, 1, 0.5, 1, 1, 1, 0.5, 2, 1, 2, 1, 2, 1, 1},
	model.TypeBug:      {1, 2, 1, 1, 0.5, 1, 0.5, 1, 0.5, 2, 1, 1, 2, 1, 1, 1, 1, 1},
	model.TypeRock:     {0.5, 0.5, 2, 1, 2, 1, 2, 0.5, 2, 0.5, 1, 1, 1, 1, 1, 1, 2, 1},
	model.TypeGhost:    {0, 1, 1, 1, 1, 1, 0, 0.5, 1, 1, 1, 0.5, 1, 2, 1, 2, 1, 1},
	model.TypeDragon:   {1, 0.5, 0.5, 0.5, 0.5, 2, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1, 1, 2},
	model.TypeDark:     {1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 0, 2, 1, 0.5, 1, 0.5, 1, 2},
	model.TypeSteel:    {0.5, 2, 1, 1, 0.5, 0.5, 2, 0, 2, 0.5, 0.5, 0.5, 0.5, 1, 0.5, 1, 0.5, 0.5},
	model.TypeFairy:    {1, 1, 1, 1, 1, 1, 0.5, 2, 1, 1, 1, 0.5, 1, 1, 0, 0.5, 2, 1},
}

// CanonicalTypeChart returns the generation 6+ single-type chart.
func CanonicalTypeChart() TypeChart {
	var c TypeChart
	for def := range canonicalDefense {
		for att, v := range canonicalDefense[def] {
			c.cells[att][def] = v
		}
	}
	return c
}

type natureDef struct {
	name       string
	up, down   model.Stat
	hasEffects bool
}

// natureDefs lists the 25 natures in index order.
var natureDefs = []natureDef{
	{name: "Hardy"},
	{"Lonely", model.StatAttack, model.StatDefense, true},
	{"Brave", model.StatAttack, model.StatSpeed, true},
	{"Adamant", model.StatAttack, model.StatSpAtk, true},
	{"Naughty", model.StatAttack, model.StatSpDef, true},
	{"Bold", model.StatDefense, model.StatAttack, true},
	{name: "Docile"},
	{"Relaxed", model.StatDefense, model.StatSpeed, true},
	{"Impish", model.StatDefense, model.StatSpAtk, true},
	{"Lax", model.StatDefense, model.StatSpDef, true},
	{"Timid", model.StatSpeed, model.StatAttack, true},
	{"Hasty", model.StatSpeed, model.StatDefense, true},
	{name: "Serious"},
	{"Jolly", model.StatSpeed, model.StatSpAtk, true},
	{"Naive", model.StatSpeed, model.StatSpDef, true},
	{"Modest", model.StatSpAtk, model.StatAttack, true},
	{"Mild", model.StatSpAtk, model.StatDefense, true},
	{"Quiet", model.StatSpAtk, model.StatSpeed, true},
	{name: "Bashful"},
	{"Rash", model.StatSpAtk, model.StatSpDef, true},
	{"Calm", model.StatSpDef, model.StatAttack, true},
	{"Gentle", model.StatSpDef, model.StatDefense, true},
	{"Sassy", model.StatSpDef, model.StatSpeed, true},
	{"Careful", model.StatSpDef, model.StatSpAtk, true},
	{name: "Quirky"},
}

// CanonicalNatures returns the 25 natures with their stat factors.
func CanonicalNatures() []Nature {
	out := make([]Nature, 0, len(natureDefs))
	for _, def := range natureDefs {
		n := Nature{Name: def.name}
		for i := range n.Factors {
			n.Factors[i] = 1.0
		}
		if def.hasEffects {
			n.Factors[def.up] = 1.1
			n.Factors[def.down] = 0.9
		}
		out = append(out, n)
	}
	return out
}
