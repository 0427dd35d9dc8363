package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTypeCombination is returned when a type name or value lies outside
// the canonical enumeration.
var ErrInvalidTypeCombination = errors.New("invalid type combination")

// Type is an elemental type tag. Values follow the canonical chart order.
type Type uint8

const (
	TypeNormal   Type = iota // 0
	TypeFire                 // 1
	TypeWater                // 2
	TypeElectric             // 3
	TypeGrass                // 4
	TypeIce                  // 5
	TypeFighting             // 6
	TypePoison               // 7
	TypeGround               // 8
	TypeFlying               // 9
	TypePsychic              // 10
	TypeBug                  // 11
	TypeRock                 // 12
	TypeGhost                // 13
	TypeDragon               // 14
	TypeDark                 // 15
	TypeSteel                // 16
	TypeFairy                // 17

	TypeCount // size of the canonical enumeration
)

var typeNames = [TypeCount]string{
	"Normal", "Fire", "Water", "Electric", "Grass", "Ice",
	"Fighting", "Poison", "Ground", "Flying", "Psychic", "Bug",
	"Rock", "Ghost", "Dragon", "Dark", "Steel", "Fairy",
}

// String returns the dataset spelling of the type.
func (t Type) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return typeNames[t]
}

// Valid reports whether t belongs to the canonical enumeration.
func (t Type) Valid() bool {
	return t < TypeCount
}

// ParseType resolves a type name, ignoring case and surrounding spaces.
func ParseType(s string) (Type, error) {
	name := strings.TrimSpace(s)
	for i, n := range typeNames {
		if strings.EqualFold(n, name) {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("type %q: %w", s, ErrInvalidTypeCombination)
}

// ParseTypes resolves a list of type names, failing on the first unknown one.
func ParseTypes(names []string) ([]Type, error) {
	types := make([]Type, 0, len(names))
	for _, n := range names {
		t, err := ParseType(n)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// AllTypes returns the canonical enumeration in chart order.
func AllTypes() []Type {
	types := make([]Type, TypeCount)
	for i := range types {
		types[i] = Type(i)
	}
	return types
}

// ValidateTypes checks every type against the canonical enumeration.
func ValidateTypes(types ...Type) error {
	for _, t := range types {
		if !t.Valid() {
			return fmt.Errorf("type value %d: %w", uint8(t), ErrInvalidTypeCombination)
		}
	}
	return nil
}
