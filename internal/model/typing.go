package model

import (
	"fmt"
	"strings"
)

// Typing is the one- or two-type combination of a creature.
// The zero value is a Normal monotype.
type Typing struct {
	primary   Type
	secondary Type
	dual      bool
}

// Mono returns a single-type combination.
func Mono(t Type) Typing {
	return Typing{primary: t, secondary: t}
}

// Dual returns a two-type combination. Equal types collapse to Mono.
func Dual(t1, t2 Type) Typing {
	if t1 == t2 {
		return Mono(t1)
	}
	return Typing{primary: t1, secondary: t2, dual: true}
}

// Primary returns the first type in storage order.
func (tp Typing) Primary() Type { return tp.primary }

// Secondary returns the second type; ok is false for monotypes.
func (tp Typing) Secondary() (Type, bool) {
	if !tp.dual {
		return 0, false
	}
	return tp.secondary, true
}

// IsDual reports whether the combination has two distinct types.
func (tp Typing) IsDual() bool { return tp.dual }

// Types returns one or two types in storage order.
func (tp Typing) Types() []Type {
	if tp.dual {
		return []Type{tp.primary, tp.secondary}
	}
	return []Type{tp.primary}
}

// Has reports whether t is either of the combination's types.
func (tp Typing) Has(t Type) bool {
	return tp.primary == t || (tp.dual && tp.secondary == t)
}

// Key returns the order-independent key of the combination.
func (tp Typing) Key() DualTypeKey {
	return TypeToKey(tp.primary, tp.secondary)
}

// Valid reports whether both types are canonical.
func (tp Typing) Valid() bool {
	return tp.primary.Valid() && tp.secondary.Valid()
}

func (tp Typing) String() string {
	if tp.dual {
		return tp.primary.String() + " " + tp.secondary.String()
	}
	return tp.primary.String()
}

// DualTypeKey identifies a defensive type combination regardless of the order
// in which its types were given. Monotype keys have lo == hi.
type DualTypeKey struct {
	lo, hi Type
}

// TypeToKey normalizes a pair of types. TypeToKey(a, b) == TypeToKey(b, a).
func TypeToKey(t1, t2 Type) DualTypeKey {
	if t2 < t1 {
		t1, t2 = t2, t1
	}
	return DualTypeKey{lo: t1, hi: t2}
}

// MonoKey returns the key of a single type.
func MonoKey(t Type) DualTypeKey {
	return DualTypeKey{lo: t, hi: t}
}

// KeyToTypes expands a key back into a Typing in canonical order.
func KeyToTypes(k DualTypeKey) Typing {
	return Dual(k.lo, k.hi)
}

// IsMono reports whether the key names a single type.
func (k DualTypeKey) IsMono() bool { return k.lo == k.hi }

// Types returns the key members in canonical order.
func (k DualTypeKey) Types() []Type {
	if k.lo == k.hi {
		return []Type{k.lo}
	}
	return []Type{k.lo, k.hi}
}

// Matches reports whether tp normalizes to k.
func (k DualTypeKey) Matches(tp Typing) bool {
	return tp.Key() == k
}

func (k DualTypeKey) String() string {
	if k.lo == k.hi {
		return k.lo.String()
	}
	return k.lo.String() + " " + k.hi.String()
}

// ParseKey parses "Fire" or "Fire Flying" (any order, any case).
// A "/" separator is accepted as well.
func ParseKey(s string) (DualTypeKey, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '/' })
	switch len(fields) {
	case 1:
		t, err := ParseType(fields[0])
		if err != nil {
			return DualTypeKey{}, err
		}
		return MonoKey(t), nil
	case 2:
		t1, err := ParseType(fields[0])
		if err != nil {
			return DualTypeKey{}, err
		}
		t2, err := ParseType(fields[1])
		if err != nil {
			return DualTypeKey{}, err
		}
		return TypeToKey(t1, t2), nil
	default:
		return DualTypeKey{}, fmt.Errorf("key %q: %w", s, ErrInvalidTypeCombination)
	}
}
