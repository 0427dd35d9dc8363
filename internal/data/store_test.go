package data_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/pkmbattle/internal/data"
	"github.com/udisondev/pkmbattle/internal/model"
	"github.com/udisondev/pkmbattle/internal/testutil"
)

func names(cs []data.Creature) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func TestStore_Lookup(t *testing.T) {
	t.Parallel()

	s := testutil.LoadStore(t)

	tests := []struct {
		name     string
		ref      data.CreatureRef
		wantName string
		wantErr  error
	}{
		{name: "by id", ref: data.ByID(445), wantName: "Garchomp"},
		{name: "by name", ref: data.ByName("Tinkaton"), wantName: "Tinkaton"},
		{name: "shared id resolves to first row", ref: data.ByID(testutil.Fixtures.SharedID), wantName: testutil.Fixtures.SharedIDFirst},
		{name: "alternate form by name", ref: data.ByName(testutil.Fixtures.SharedIDAltForm), wantName: testutil.Fixtures.SharedIDAltForm},
		{name: "parsed id", ref: data.ParseRef("94"), wantName: "Gengar"},
		{name: "parsed name", ref: data.ParseRef("Snorlax"), wantName: "Snorlax"},
		{name: "unknown id", ref: data.ByID(9999), wantErr: data.ErrNotFound},
		{name: "unknown name", ref: data.ByName("Missingno"), wantErr: data.ErrNotFound},
		{name: "name is case sensitive", ref: data.ByName("garchomp"), wantErr: data.ErrNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c, err := s.Lookup(tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, c.Name)
		})
	}
}

func TestStore_LookupRecord(t *testing.T) {
	t.Parallel()

	s := testutil.LoadStore(t)

	c, err := s.Lookup(data.ByName("Garchomp"))
	require.NoError(t, err)
	assert.Equal(t, 445, c.ID)
	assert.Equal(t, model.Dual(model.TypeDragon, model.TypeGround), c.Typing)
	assert.Equal(t, model.Stats{108, 130, 95, 80, 85, 102}, c.Base)

	mono, err := s.Lookup(data.ByName("Pikachu"))
	require.NoError(t, err)
	assert.False(t, mono.Typing.IsDual())
	assert.Equal(t, model.TypeElectric, mono.Typing.Primary())
}

func TestStore_OfTypes(t *testing.T) {
	t.Parallel()

	s := testutil.LoadStore(t)

	steel, err := s.OfTypes(model.TypeSteel)
	require.NoError(t, err)
	assert.Equal(t, []string{"Skarmory", "Lucario", "Heatran", "Ferrothorn", "Tinkaton", "Corviknight"}, names(steel))

	fs, err := s.OfTypes(model.TypeFairy, model.TypeSteel)
	require.NoError(t, err)
	sf, err := s.OfTypes(model.TypeSteel, model.TypeFairy)
	require.NoError(t, err)
	assert.Equal(t, []string{"Tinkaton"}, names(fs))
	assert.Equal(t, names(fs), names(sf))

	none, err := s.OfTypes(model.TypeBug)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = s.OfTypes(model.Type(99))
	assert.ErrorIs(t, err, model.ErrInvalidTypeCombination)
	_, err = s.OfTypes(model.TypeFire, model.TypeWater, model.TypeGrass)
	assert.ErrorIs(t, err, model.ErrInvalidTypeCombination)
}

func TestStore_OfTyping(t *testing.T) {
	t.Parallel()

	s := testutil.LoadStore(t)

	assert.Equal(t, []string{"Gyarados"}, names(s.OfTyping(model.TypeToKey(model.TypeFlying, model.TypeWater))))
	// Mono key excludes dual types containing Water.
	assert.Equal(t, []string{"Blastoise"}, names(s.OfTyping(model.MonoKey(model.TypeWater))))
	assert.Empty(t, s.OfTyping(model.TypeToKey(model.TypeBug, model.TypeRock)))
}

func TestStore_Moveset(t *testing.T) {
	t.Parallel()

	s := testutil.LoadStore(t)

	entries, err := s.Moveset(data.ByName("Garchomp"))
	require.NoError(t, err)
	require.Len(t, entries, 8)

	byMove := make(map[string]data.MovesetEntry, len(entries))
	for _, e := range entries {
		byMove[e.Move] = e
	}

	eq := byMove["Earthquake"]
	assert.True(t, eq.Learns(data.ByLevel))
	assert.True(t, eq.Learns(data.ByTM))
	assert.False(t, eq.Learns(data.ByEgg))
	assert.Equal(t, 1, eq.Level)
	assert.Equal(t, 149, eq.TM)

	assert.True(t, byMove["Sand Attack"].Learns(data.ByPreEvolution))
	assert.True(t, byMove["Draco Meteor"].Learns(data.ByTutor))
	assert.Equal(t, 82, byMove["Outrage"].Level)

	byID, err := s.Moveset(data.ByID(445))
	require.NoError(t, err)
	assert.Equal(t, entries, byID)

	_, err = s.Moveset(data.ByName("Missingno"))
	assert.ErrorIs(t, err, data.ErrNotFound)
}

func TestStore_DetailedMoveset(t *testing.T) {
	t.Parallel()

	s := testutil.LoadStore(t)

	detailed, err := s.DetailedMoveset(data.ByName("Garchomp"))
	require.NoError(t, err)
	require.Len(t, detailed, 8)

	// Sand Attack and Outrage have no row in the moves file.
	unjoined := map[string]bool{"Sand Attack": true, "Outrage": true}
	for _, d := range detailed {
		if unjoined[d.MovesetEntry.Move] {
			assert.Nil(t, d.Move, "no move record, left join keeps the entry: %s", d.MovesetEntry.Move)
			continue
		}
		require.NotNil(t, d.Move, d.MovesetEntry.Move)
		assert.Equal(t, d.MovesetEntry.Move, d.Move.Name)
	}
}

func TestStore_PrettyMoveset(t *testing.T) {
	t.Parallel()

	s := testutil.LoadStore(t)

	pretty, err := s.PrettyMoveset(data.ByName("Tinkaton"))
	require.NoError(t, err)
	require.Len(t, pretty, 5)

	byMove := make(map[string]data.MoveSummary, len(pretty))
	for _, p := range pretty {
		byMove[p.Move] = p
	}

	hammer := byMove["Gigaton Hammer"]
	require.True(t, hammer.Damaging())
	assert.Equal(t, model.TypeSteel, *hammer.Type)
	assert.Equal(t, model.CategoryPhysical, *hammer.Category)
	assert.Equal(t, 160, *hammer.Power)
	assert.Equal(t, 5, *hammer.PP)
	assert.Nil(t, hammer.EffectChance)

	rocks := byMove["Stealth Rock"]
	assert.False(t, rocks.Damaging())
	assert.Nil(t, rocks.Power)
	assert.Nil(t, rocks.Accuracy)
	require.NotNil(t, rocks.Category)
	assert.Equal(t, model.CategoryStatus, *rocks.Category)

	garchomp, err := s.PrettyMoveset(data.ByName("Garchomp"))
	require.NoError(t, err)
	for _, p := range garchomp {
		if p.Move == "Sand Attack" || p.Move == "Outrage" {
			assert.Nil(t, p.Type)
			assert.Nil(t, p.Category)
			assert.False(t, p.Damaging())
		}
	}
}

func TestStore_Move(t *testing.T) {
	t.Parallel()

	s := testutil.LoadStore(t)

	swift, err := s.Move("Swift")
	require.NoError(t, err)
	assert.True(t, swift.AlwaysHits())
	assert.True(t, math.IsInf(*swift.Accuracy, 1))

	gyro, err := s.Move("Gyro Ball")
	require.NoError(t, err)
	assert.Nil(t, gyro.Power, "variable power")
	assert.False(t, gyro.AlwaysHits())

	air, err := s.Move("Air Slash")
	require.NoError(t, err)
	require.NotNil(t, air.EffectChance)
	assert.Equal(t, 30, *air.EffectChance)
	assert.InDelta(t, 95.0, *air.Accuracy, 0)

	_, err = s.Move("Splash")
	assert.ErrorIs(t, err, data.ErrNotFound)
}

func TestStore_Nature(t *testing.T) {
	t.Parallel()

	s := testutil.LoadStore(t)

	adamant, err := s.Nature("Adamant")
	require.NoError(t, err)
	assert.Equal(t, 1.1, adamant.Factor(model.StatAttack))
	assert.Equal(t, 0.9, adamant.Factor(model.StatSpAtk))
	assert.Equal(t, 1.0, adamant.Factor(model.StatHP))
	assert.False(t, adamant.IsNeutral())

	hardy, err := s.Nature("Hardy")
	require.NoError(t, err)
	assert.True(t, hardy.IsNeutral())

	assert.Equal(t, data.CanonicalNatures(), s.Natures())

	_, err = s.Nature("Grumpy")
	assert.ErrorIs(t, err, data.ErrUnknownNature)
	assert.ErrorIs(t, err, data.ErrNotFound)
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	pika := data.Creature{ID: 25, Name: "Pikachu", Typing: model.Mono(model.TypeElectric), Base: model.Stats{35, 55, 40, 50, 50, 90}}

	s, err := data.NewStore("9", []data.Creature{pika}, nil, nil, data.CanonicalNatures(), data.CanonicalTypeChart())
	require.NoError(t, err)
	c, err := s.Lookup(data.ByID(25))
	require.NoError(t, err)
	assert.Equal(t, pika, c)

	_, err = data.NewStore("9", []data.Creature{pika, pika}, nil, nil, nil, data.CanonicalTypeChart())
	assert.ErrorIs(t, err, data.ErrMalformedRecord)

	bad := pika
	bad.Name = "Glitch"
	bad.Typing = model.Mono(model.Type(40))
	_, err = data.NewStore("9", []data.Creature{bad}, nil, nil, nil, data.CanonicalTypeChart())
	assert.ErrorIs(t, err, model.ErrInvalidTypeCombination)
}

func TestCanonicalTypeChart(t *testing.T) {
	t.Parallel()

	c := data.CanonicalTypeChart()

	tests := []struct {
		att, def model.Type
		want     float64
	}{
		{model.TypeNormal, model.TypeGhost, 0},
		{model.TypeGhost, model.TypeNormal, 0},
		{model.TypeFighting, model.TypeGhost, 0},
		{model.TypeGround, model.TypeFlying, 0},
		{model.TypeElectric, model.TypeGround, 0},
		{model.TypeDragon, model.TypeFairy, 0},
		{model.TypePoison, model.TypeSteel, 0},
		{model.TypePsychic, model.TypeDark, 0},
		{model.TypeWater, model.TypeFire, 2},
		{model.TypeFire, model.TypeWater, 0.5},
		{model.TypeIce, model.TypeDragon, 2},
		{model.TypeFairy, model.TypeDragon, 2},
		{model.TypeSteel, model.TypeSteel, 0.5},
		{model.TypeNormal, model.TypeNormal, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.att.String()+"→"+tt.def.String(), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.Multiplier(tt.att, tt.def))
		})
	}

	col := c.Column(model.TypeSteel)
	for _, att := range model.AllTypes() {
		assert.Equal(t, c.Multiplier(att, model.TypeSteel), col[att])
		assert.Equal(t, c.Multiplier(model.TypeSteel, att), c.Row(model.TypeSteel)[att])
	}
}

func TestNewTypeChart(t *testing.T) {
	t.Parallel()

	var cells [model.TypeCount][model.TypeCount]float64
	for att := range cells {
		for def := range cells[att] {
			cells[att][def] = 1
		}
	}
	_, err := data.NewTypeChart(cells)
	require.NoError(t, err)

	cells[model.TypeFire][model.TypeGrass] = 1.5
	_, err = data.NewTypeChart(cells)
	assert.ErrorIs(t, err, data.ErrMalformedRecord)
}
