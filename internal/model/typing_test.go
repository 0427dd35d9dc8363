package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeToKey_OrderIndependent(t *testing.T) {
	t.Parallel()

	for _, t1 := range AllTypes() {
		for _, t2 := range AllTypes() {
			assert.Equal(t, TypeToKey(t1, t2), TypeToKey(t2, t1), "%s/%s", t1, t2)
			assert.Equal(t, KeyToTypes(TypeToKey(t1, t2)), KeyToTypes(TypeToKey(t2, t1)))
		}
	}
}

func TestTypeToKey_MonoNormalizes(t *testing.T) {
	t.Parallel()

	k := TypeToKey(TypeGhost, TypeGhost)
	assert.True(t, k.IsMono())
	assert.Equal(t, MonoKey(TypeGhost), k)
	assert.Equal(t, "Ghost", k.String())
	assert.Equal(t, Mono(TypeGhost), KeyToTypes(k))
}

func TestDual(t *testing.T) {
	t.Parallel()

	tp := Dual(TypeFlying, TypeFire)
	assert.True(t, tp.IsDual())
	assert.Equal(t, TypeFlying, tp.Primary())
	sec, ok := tp.Secondary()
	require.True(t, ok)
	assert.Equal(t, TypeFire, sec)
	assert.True(t, tp.Has(TypeFire))
	assert.True(t, tp.Has(TypeFlying))
	assert.False(t, tp.Has(TypeWater))
	assert.Equal(t, "Fire Flying", tp.Key().String())

	mono := Dual(TypeWater, TypeWater)
	assert.False(t, mono.IsDual())
	_, ok = mono.Secondary()
	assert.False(t, ok)
	assert.Equal(t, []Type{TypeWater}, mono.Types())
}

func TestParseType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"Fire", TypeFire, false},
		{"fairy", TypeFairy, false},
		{"  Steel ", TypeSteel, false},
		{"Shadow", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTypeCombination)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKey(t *testing.T) {
	t.Parallel()

	k, err := ParseKey("Water Fire")
	require.NoError(t, err)
	assert.Equal(t, TypeToKey(TypeFire, TypeWater), k)

	k, err = ParseKey("dragon/ground")
	require.NoError(t, err)
	assert.Equal(t, "Ground Dragon", k.String())

	_, err = ParseKey("Fire Water Grass")
	assert.ErrorIs(t, err, ErrInvalidTypeCombination)
}

func TestValidateTypes(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateTypes(TypeNormal, TypeFairy))
	assert.ErrorIs(t, ValidateTypes(TypeFire, Type(42)), ErrInvalidTypeCombination)
}

func TestStats_Total(t *testing.T) {
	t.Parallel()

	st := Stats{108, 130, 95, 80, 85, 102}
	assert.Equal(t, 600, st.Total())
	assert.Equal(t, 130, st.Get(StatAttack))
}

func TestParseStat(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Stat{
		"HP": StatHP, "Sp. Atk": StatSpAtk, "spe": StatSpeed, "def": StatDefense,
	} {
		got, err := ParseStat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseStat("luck")
	assert.Error(t, err)
}

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       string
		want     Category
		damaging bool
	}{
		{"Physical", CategoryPhysical, true},
		{" special ", CategorySpecial, true},
		{"STATUS", CategoryStatus, false},
	}
	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.damaging, got.Damaging(), tt.in)
	}

	_, err := ParseCategory("Other")
	assert.Error(t, err)
	assert.Equal(t, "Category(7)", Category(7).String())
}
