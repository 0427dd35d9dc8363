package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/pkmbattle/internal/config"
	"github.com/udisondev/pkmbattle/internal/data"
	"github.com/udisondev/pkmbattle/internal/model"
	"github.com/udisondev/pkmbattle/internal/testutil"
)

func newTestApp(t *testing.T, asJSON bool) (*app, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	return newApp(config.Default(), testutil.LoadStore(t), newOutput(&buf, asJSON)), &buf
}

func execute(t *testing.T, a *app, name string, args ...string) error {
	t.Helper()

	cmd, ok := lookupCommand(name)
	require.True(t, ok, name)
	return a.exec(cmd, args)
}

func TestCommands_Registered(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"info", "stats", "types", "moveset", "weak", "resist", "immune", "best", "matrix", "matchup", "score", "counter"} {
		_, ok := lookupCommand(name)
		assert.True(t, ok, name)
	}
	_, ok := lookupCommand("nope")
	assert.False(t, ok)

	var buf bytes.Buffer
	printList(&buf)
	assert.Contains(t, buf.String(), "counter")
	assert.Less(t, strings.Index(buf.String(), "best"), strings.Index(buf.String(), "weak"), "sorted")
}

func TestStats(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t, false)
	require.NoError(t, execute(t, a, "stats", "Garchomp"))
	out := buf.String()
	assert.Contains(t, out, "Garchomp (#445, Dragon Ground) L100 Hardy")
	assert.Regexp(t, `HP\s+108\s+0\s+0\s+326`, out)

	a, buf = newTestApp(t, true)
	require.NoError(t, execute(t, a, "stats", "-level", "50", "-iv", "31", "-ev", "252", "25"))
	var v effectiveView
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, "Pikachu", v.Name)
	assert.Equal(t, statBlock{HP: 142, Attack: 107, Defense: 92, SpAtk: 102, SpDef: 102, Speed: 142}, v.Stats)
}

func TestStats_IDsAreNotGrouped(t *testing.T) {
	t.Parallel()

	s, err := data.NewStore("9",
		[]data.Creature{
			{ID: 1008, Name: "Miraidon", Typing: model.Dual(model.TypeElectric, model.TypeDragon), Base: model.Stats{100, 85, 100, 135, 115, 135}},
		},
		nil, nil, data.CanonicalNatures(), data.CanonicalTypeChart())
	require.NoError(t, err)

	var buf bytes.Buffer
	a := newApp(config.Default(), s, newOutput(&buf, false))
	require.NoError(t, execute(t, a, "stats", "1008"))
	assert.Contains(t, buf.String(), "Miraidon (#1008, Electric Dragon)")

	buf.Reset()
	require.NoError(t, execute(t, a, "types", "Dragon"))
	assert.Regexp(t, `(?m)^1008\s+Miraidon`, buf.String())
	assert.NotContains(t, buf.String(), "1,008")
}

func TestStats_Errors(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, false)
	assert.Error(t, execute(t, a, "stats", "Missingno"))
	assert.Error(t, execute(t, a, "stats", "-level", "101", "Garchomp"))
	assert.ErrorIs(t, execute(t, a, "stats"), errUsage)
}

func TestTypes(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t, true)
	require.NoError(t, execute(t, a, "types", "steel", "flying"))

	var got []creatureView
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))
	names := make([]string, len(got))
	for i, c := range got {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Skarmory", "Corviknight"}, names)

	assert.Error(t, execute(t, a, "types", "Sound"))
}

func TestMoveset(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t, true)
	require.NoError(t, execute(t, a, "moveset", "Garchomp"))

	var got []moveView
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 8)

	byName := make(map[string]moveView, len(got))
	for _, m := range got {
		byName[m.Move] = m
	}
	assert.False(t, byName["Sand Attack"].Known)
	assert.False(t, byName["Outrage"].Known)
	assert.Equal(t, 82, byName["Outrage"].Level)
	assert.True(t, byName["Earthquake"].Known)
	assert.Equal(t, 149, byName["Earthquake"].TM)
	assert.Equal(t, "Ground", byName["Earthquake"].Type)
}

func TestMoveset_NeverMisses(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t, true)
	require.NoError(t, execute(t, a, "moveset", "Lucario"))
	assert.NotContains(t, buf.String(), "Inf")

	a, buf = newTestApp(t, false)
	require.NoError(t, execute(t, a, "moveset", "Lucario"))
	assert.Regexp(t, `Aura Sphere.*∞`, buf.String())
}

func TestTypeQueries(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t, true)
	require.NoError(t, execute(t, a, "best", "Dragon", "Ground"))

	var ranked []rankedView
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &ranked))
	assert.Equal(t, []rankedView{
		{Types: "Flying Fairy", Score: 0},
		{Types: "Grass Fairy", Score: 0.5},
		{Types: "Flying Steel", Score: 0.5},
		{Types: "Bug Fairy", Score: 0.5},
	}, ranked)

	a, buf = newTestApp(t, true)
	require.NoError(t, execute(t, a, "immune", "Ghost"))
	var rows []rowView
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &rows))
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.Zero(t, r.Against["Ghost"], r.Types)
	}

	a, buf = newTestApp(t, false)
	require.NoError(t, execute(t, a, "weak", "Fire", "Ice"))
	assert.Contains(t, buf.String(), "Grass Flying")

	assert.ErrorIs(t, execute(t, a, "resist"), errUsage)
}

func TestMatrix(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t, false)
	require.NoError(t, execute(t, a, "matrix"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1+171)
	assert.True(t, strings.HasPrefix(lines[0], "Types;Normal;Fire"))
}

func TestMatchup(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t, true)
	require.NoError(t, execute(t, a, "matchup", "Garchomp", "Tinkaton"))

	var v matchupView
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &v))
	require.Len(t, v.Rows, 5)
	assert.Equal(t, "Earthquake", v.Rows[0].Move)
	assert.Equal(t, 426, v.Rows[0].Damage)
	assert.True(t, v.Rows[0].KO)
	assert.Equal(t, 280, v.Defender.Stats.HP)

	a, buf = newTestApp(t, true)
	require.NoError(t, execute(t, a, "matchup", "-crit", "Garchomp", "Tinkaton"))
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, 639, v.Rows[0].Damage)

	a, buf = newTestApp(t, false)
	require.NoError(t, execute(t, a, "matchup", "Garchomp", "Tinkaton"))
	assert.Regexp(t, `Earthquake\s+Ground\s+Physical\s+100\s+100\s+426\s+152\.1\s+KO`, buf.String())
}

func TestScore(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t, true)
	require.NoError(t, execute(t, a, "score", "Garchomp", "Tinkaton"))

	var v scoreView
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &v))
	assert.InDelta(t, 77.4794040315, v.Score, 1e-6)

	a, buf = newTestApp(t, true)
	require.NoError(t, execute(t, a, "score", "-attack-bias", "0", "Garchomp", "Tinkaton"))
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &v))
	assert.InDelta(t, 2*(100*426.0/280+100*186.0/280+100*71.0/280)/5, v.Score, 1e-9)
}

func TestCounter(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t, true)
	require.NoError(t, execute(t, a, "counter", "Garchomp"))

	var got []counterView
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &got))
	names := make([]string, len(got))
	for i, c := range got {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Togekiss", "Corviknight", "Skarmory", "Whimsicott"}, names)

	a, buf = newTestApp(t, false)
	require.NoError(t, execute(t, a, "counter", "-top", "1", "-limit", "1", "Garchomp"))
	assert.Regexp(t, `1\s+Togekiss\s+Flying Fairy\s+-2\.34`, buf.String())
	assert.NotContains(t, buf.String(), "Corviknight")
}

func TestInfo(t *testing.T) {
	t.Parallel()

	a, buf := newTestApp(t, true)
	require.NoError(t, execute(t, a, "info"))

	var v infoView
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, infoView{
		Generation: testutil.Fixtures.Generation,
		Digest:     a.store.DigestString(),
		Creatures:  testutil.Fixtures.Creatures,
		Moves:      testutil.Fixtures.Moves,
		Natures:    testutil.Fixtures.Natures,
	}, v)
}

// run replaces the default logger, so it isn't parallel.
func TestRun(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "battlecalc.yaml")
	testutil.WriteFile(t, dir, "battlecalc.yaml",
		"log_level: error\ndata:\n  dir: "+testutil.DataDir()+"\n  generation: \"9\"\n")

	var buf bytes.Buffer
	require.NoError(t, run(context.Background(),
		[]string{"-config", cfgPath, "-env", filepath.Join(dir, "missing.env"), "stats", "Snorlax"}, &buf))
	assert.Contains(t, buf.String(), "Snorlax")

	buf.Reset()
	require.NoError(t, run(context.Background(), []string{"-list"}, &buf))
	assert.Contains(t, buf.String(), "Available commands:")

	err := run(context.Background(), []string{"-config", cfgPath, "-env", filepath.Join(dir, "missing.env"), "fly"}, &buf)
	assert.ErrorContains(t, err, `unknown command "fly"`)
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}
