package model

import (
	"fmt"
	"strings"
)

// Stat indexes one of the six battle stats.
type Stat uint8

const (
	StatHP Stat = iota
	StatAttack
	StatDefense
	StatSpAtk
	StatSpDef
	StatSpeed

	StatCount // 6
)

// Column names used by the stats and natures files.
var statColumns = [StatCount]string{"HP", "Attack", "Defense", "Sp. Atk", "Sp. Def", "Speed"}

var statAliases = map[string]Stat{
	"hp":      StatHP,
	"atk":     StatAttack,
	"attack":  StatAttack,
	"def":     StatDefense,
	"defense": StatDefense,
	"spa":     StatSpAtk,
	"spatk":   StatSpAtk,
	"sp. atk": StatSpAtk,
	"spd":     StatSpDef,
	"spdef":   StatSpDef,
	"sp. def": StatSpDef,
	"spe":     StatSpeed,
	"speed":   StatSpeed,
}

// Column returns the dataset column header of the stat.
func (s Stat) Column() string {
	if s >= StatCount {
		return fmt.Sprintf("Stat(%d)", uint8(s))
	}
	return statColumns[s]
}

func (s Stat) String() string { return s.Column() }

// ParseStat accepts a column header or a short alias ("atk", "spa", "spe").
func ParseStat(s string) (Stat, error) {
	if st, ok := statAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return st, nil
	}
	return 0, fmt.Errorf("unknown stat %q", s)
}

// AllStats returns the six stats in column order.
func AllStats() []Stat {
	return []Stat{StatHP, StatAttack, StatDefense, StatSpAtk, StatSpDef, StatSpeed}
}

// Stats holds one value per stat.
type Stats [StatCount]int

// Get returns the value of s.
func (st Stats) Get(s Stat) int { return st[s] }

// Total returns the sum of the six values.
func (st Stats) Total() int {
	var sum int
	for _, v := range st {
		sum += v
	}
	return sum
}

// Category is a move's damage class.
type Category uint8

const (
	CategoryPhysical Category = iota
	CategorySpecial
	CategoryStatus
)

func (c Category) String() string {
	switch c {
	case CategoryPhysical:
		return "Physical"
	case CategorySpecial:
		return "Special"
	case CategoryStatus:
		return "Status"
	default:
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
}

// ParseCategory accepts "Physical", "Special" or "Status" in any case.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "physical":
		return CategoryPhysical, nil
	case "special":
		return CategorySpecial, nil
	case "status":
		return CategoryStatus, nil
	default:
		return 0, fmt.Errorf("unknown move category %q", s)
	}
}

// Damaging reports whether moves of this category deal direct damage.
func (c Category) Damaging() bool {
	return c == CategoryPhysical || c == CategorySpecial
}
