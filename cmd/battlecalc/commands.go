package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/udisondev/pkmbattle/internal/config"
	"github.com/udisondev/pkmbattle/internal/data"
	"github.com/udisondev/pkmbattle/internal/game/combat"
	"github.com/udisondev/pkmbattle/internal/game/stats"
	"github.com/udisondev/pkmbattle/internal/game/typechart"
	"github.com/udisondev/pkmbattle/internal/model"
)

type command struct {
	name  string
	usage string
	desc  string
	run   func(a *app, fs *flag.FlagSet, args []string) error
}

var commands []command

func registerCommand(name, usage, desc string, fn func(a *app, fs *flag.FlagSet, args []string) error) {
	commands = append(commands, command{name: name, usage: usage, desc: desc, run: fn})
}

func init() {
	registerCommand("info", "", "Dataset generation, digest and sizes", runInfo)
	registerCommand("stats", "<creature>", "Effective stats at a level, nature, IVs and EVs", runStats)
	registerCommand("types", "<type> [type]", "Creatures having the given types", runTypes)
	registerCommand("moveset", "<creature>", "Learnable moves joined with move data", runMoveset)
	registerCommand("weak", "<type>...", "Type combinations weak to every listed type", runWeak)
	registerCommand("resist", "<type>...", "Type combinations resisting every listed type", runResist)
	registerCommand("immune", "<type>...", "Type combinations immune to every listed type", runImmune)
	registerCommand("best", "<type>...", "Resisting combinations ranked, best first", runBest)
	registerCommand("matrix", "", "Dual-type effectiveness matrix as CSV", runMatrix)
	registerCommand("matchup", "<attacker> <defender>", "Damage of every attacker move against the defender", runMatchup)
	registerCommand("score", "<attacker> <defender>", "How well the defender holds against the attacker, lower is better", runScore)
	registerCommand("counter", "<opponent>", "Roster creatures ranked as counters, best first", runCounter)
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printList(w io.Writer) {
	sorted := append([]command(nil), commands...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })

	maxLen := 0
	for _, c := range sorted {
		maxLen = max(maxLen, len(c.name))
	}

	fmt.Fprintln(w, "Available commands:")
	for _, c := range sorted {
		padding := strings.Repeat(" ", maxLen-len(c.name)+2)
		fmt.Fprintf(w, "  %s%s%s\n", c.name, padding, c.desc)
	}
}

// app is the loaded state shared by every command.
type app struct {
	cfg   config.Config
	store *data.Store
	calc  *stats.Calculator
	out   output
}

func newApp(cfg config.Config, store *data.Store, out output) *app {
	return &app{cfg: cfg, store: store, calc: stats.NewCalculator(store), out: out}
}

func (a *app) exec(cmd command, args []string) error {
	fs := flag.NewFlagSet(cmd.name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: battlecalc %s [flags] %s\n", cmd.name, cmd.usage)
		fs.PrintDefaults()
	}
	return cmd.run(a, fs, args)
}

func parseArgs(fs *flag.FlagSet, args []string, minArgs, maxArgs int) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	n := fs.NArg()
	if n < minArgs || (maxArgs >= 0 && n > maxArgs) {
		fs.Usage()
		return nil, fmt.Errorf("%s: wrong number of arguments: %w", fs.Name(), errUsage)
	}
	return fs.Args(), nil
}

// specFlags binds the build flags, defaulting to the configured build.
type specFlags struct {
	level  int
	nature string
	iv, ev int
}

func (a *app) bindSpec(fs *flag.FlagSet) *specFlags {
	s := &specFlags{}
	fs.IntVar(&s.level, "level", a.cfg.Calc.Level, "level")
	fs.StringVar(&s.nature, "nature", a.cfg.Calc.Nature, "nature name")
	fs.IntVar(&s.iv, "iv", 0, "IV applied to every stat")
	fs.IntVar(&s.ev, "ev", 0, "EV applied to every stat")
	return s
}

func (s *specFlags) spec() stats.Spec {
	sp := stats.Spec{Nature: s.nature, Level: s.level}
	if s.iv != 0 {
		sp.IVs = stats.Uniform(s.iv)
	}
	if s.ev != 0 {
		sp.EVs = stats.Uniform(s.ev)
	}
	return sp
}

func (a *app) effective(arg string, spec stats.Spec) (stats.EffectiveStats, error) {
	return a.calc.EffectiveByRef(data.ParseRef(arg), spec)
}

func runInfo(a *app, fs *flag.FlagSet, args []string) error {
	if _, err := parseArgs(fs, args, 0, 0); err != nil {
		return err
	}
	v := infoView{
		Generation: a.store.Generation(),
		Digest:     a.store.DigestString(),
		Creatures:  len(a.store.Creatures()),
		Moves:      len(a.store.Moves()),
		Natures:    len(a.store.Natures()),
	}
	return a.out.emit(v, func(tw io.Writer) {
		a.out.printf(tw, "generation\t%s\n", v.Generation)
		a.out.printf(tw, "digest\t%s\n", v.Digest)
		a.out.printf(tw, "creatures\t%d\n", v.Creatures)
		a.out.printf(tw, "moves\t%d\n", v.Moves)
		a.out.printf(tw, "natures\t%d\n", v.Natures)
	})
}

func runStats(a *app, fs *flag.FlagSet, args []string) error {
	sf := a.bindSpec(fs)
	pos, err := parseArgs(fs, args, 1, 1)
	if err != nil {
		return err
	}
	es, err := a.effective(pos[0], sf.spec())
	if err != nil {
		return err
	}

	return a.out.emit(newEffectiveView(es), func(tw io.Writer) {
		a.out.printf(tw, "%s (#%s, %s) L%d %s\n", es.Creature.Name, fmtID(es.Creature.ID), es.Creature.Typing, es.Level, es.Nature)
		a.out.printf(tw, "Stat\tBase\tIV\tEV\tValue\n")
		for _, st := range model.AllStats() {
			a.out.printf(tw, "%s\t%d\t%d\t%d\t%d\n", st, es.Creature.Base[st], es.IVs[st], es.EVs[st], es.Stats[st])
		}
		a.out.printf(tw, "Total\t%d\t\t\t%d\n", es.Creature.Base.Total(), es.Total)
	})
}

func runTypes(a *app, fs *flag.FlagSet, args []string) error {
	pos, err := parseArgs(fs, args, 1, 2)
	if err != nil {
		return err
	}
	types, err := model.ParseTypes(pos)
	if err != nil {
		return err
	}
	found, err := a.store.OfTypes(types[0], types[1:]...)
	if err != nil {
		return err
	}

	views := make([]creatureView, len(found))
	for i, c := range found {
		views[i] = newCreatureView(c)
	}
	return a.out.emit(views, func(tw io.Writer) {
		a.out.printf(tw, "#\tName\tTypes\tTotal\n")
		for _, c := range found {
			a.out.printf(tw, "%s\t%s\t%s\t%d\n", fmtID(c.ID), c.Name, c.Typing, c.Base.Total())
		}
	})
}

func runMoveset(a *app, fs *flag.FlagSet, args []string) error {
	pos, err := parseArgs(fs, args, 1, 1)
	if err != nil {
		return err
	}
	entries, err := a.store.DetailedMoveset(data.ParseRef(pos[0]))
	if err != nil {
		return err
	}

	views := make([]moveView, len(entries))
	for i, e := range entries {
		views[i] = newMoveView(e)
	}
	return a.out.emit(views, func(tw io.Writer) {
		a.out.printf(tw, "Move\tMethods\tLvl\tType\tCategory\tPower\tAcc\tPP\n")
		for _, e := range entries {
			lvl := "-"
			if e.Learns(data.ByLevel) {
				lvl = fmt.Sprint(e.Level)
			}
			if e.Move == nil {
				a.out.printf(tw, "%s\t%s\t%s\t?\t?\t?\t?\t?\n", e.MovesetEntry.Move, e.Methods, lvl)
				continue
			}
			a.out.printf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				e.MovesetEntry.Move, e.Methods, lvl, e.Move.Type, e.Move.Category,
				fmtOptInt(e.Move.Power), fmtAccuracy(e.Move.Accuracy), fmtOptInt(e.Move.PP))
		}
	})
}

func (a *app) matrix() *typechart.Matrix {
	return typechart.New(a.store.TypeChart())
}

func runRows(a *app, fs *flag.FlagSet, args []string, query func(*typechart.Matrix, []model.Type) ([]typechart.Row, error)) error {
	pos, err := parseArgs(fs, args, 1, -1)
	if err != nil {
		return err
	}
	types, err := model.ParseTypes(pos)
	if err != nil {
		return err
	}
	rows, err := query(a.matrix(), types)
	if err != nil {
		return err
	}

	views := make([]rowView, len(rows))
	for i, r := range rows {
		views[i] = newRowView(r, types)
	}
	return a.out.emit(views, func(tw io.Writer) {
		fmt.Fprint(tw, "Types")
		for _, t := range types {
			fmt.Fprintf(tw, "\t%s", t)
		}
		fmt.Fprintln(tw)
		for _, r := range rows {
			fmt.Fprint(tw, r.Key)
			for _, t := range types {
				fmt.Fprintf(tw, "\t%gx", r.Against(t))
			}
			fmt.Fprintln(tw)
		}
	})
}

func runWeak(a *app, fs *flag.FlagSet, args []string) error {
	return runRows(a, fs, args, (*typechart.Matrix).WeakAgainst)
}

func runResist(a *app, fs *flag.FlagSet, args []string) error {
	return runRows(a, fs, args, (*typechart.Matrix).ResistAgainst)
}

func runImmune(a *app, fs *flag.FlagSet, args []string) error {
	return runRows(a, fs, args, (*typechart.Matrix).ImmuneTo)
}

func runBest(a *app, fs *flag.FlagSet, args []string) error {
	limit := fs.Int("limit", 0, "print at most this many rows (0 = all)")
	pos, err := parseArgs(fs, args, 1, -1)
	if err != nil {
		return err
	}
	types, err := model.ParseTypes(pos)
	if err != nil {
		return err
	}
	ranked, err := a.matrix().BestAgainst(types)
	if err != nil {
		return err
	}
	if *limit > 0 && len(ranked) > *limit {
		ranked = ranked[:*limit]
	}

	views := make([]rankedView, len(ranked))
	for i, r := range ranked {
		views[i] = rankedView{Types: r.Key.String(), Score: r.Score}
	}
	return a.out.emit(views, func(tw io.Writer) {
		a.out.printf(tw, "#\tTypes\tScore\n")
		for i, r := range ranked {
			a.out.printf(tw, "%d\t%s\t%g\n", i+1, r.Key, r.Score)
		}
	})
}

func runMatrix(a *app, fs *flag.FlagSet, args []string) error {
	if _, err := parseArgs(fs, args, 0, 0); err != nil {
		return err
	}
	sep := a.cfg.Store().Separator
	if sep == 0 {
		sep = data.DefaultSeparator
	}
	return a.matrix().WriteCSV(a.out.w, sep)
}

// modifierFlags binds the situational damage factors.
type modifierFlags struct {
	crit, burn, spread, adaptability bool
	weather, random                  float64
}

func bindModifiers(fs *flag.FlagSet) *modifierFlags {
	m := &modifierFlags{}
	fs.BoolVar(&m.crit, "crit", false, "critical hit (1.5x)")
	fs.BoolVar(&m.burn, "burn", false, "attacker is burned (0.5x)")
	fs.BoolVar(&m.spread, "spread", false, "move hits several targets (0.75x)")
	fs.BoolVar(&m.adaptability, "adaptability", false, "STAB is 2x instead of 1.5x")
	fs.Float64Var(&m.weather, "weather", 1, "weather factor")
	fs.Float64Var(&m.random, "random", 1, "damage roll in [0.85, 1]")
	return m
}

func (m *modifierFlags) modifiers() combat.Modifiers {
	mods := combat.Modifiers{
		Weather:      m.weather,
		Random:       m.random,
		Adaptability: m.adaptability,
	}
	if m.crit {
		mods.Critical = 1.5
	}
	if m.burn {
		mods.Burn = 0.5
	}
	if m.spread {
		mods.Targets = 0.75
	}
	return mods
}

func (a *app) pair(sf *specFlags, pos []string) (stats.EffectiveStats, stats.EffectiveStats, error) {
	attacker, err := a.effective(pos[0], sf.spec())
	if err != nil {
		return stats.EffectiveStats{}, stats.EffectiveStats{}, err
	}
	defender, err := a.effective(pos[1], sf.spec())
	if err != nil {
		return stats.EffectiveStats{}, stats.EffectiveStats{}, err
	}
	return attacker, defender, nil
}

func runMatchup(a *app, fs *flag.FlagSet, args []string) error {
	sf := a.bindSpec(fs)
	mf := bindModifiers(fs)
	pos, err := parseArgs(fs, args, 2, 2)
	if err != nil {
		return err
	}
	attacker, defender, err := a.pair(sf, pos)
	if err != nil {
		return err
	}

	engine := combat.NewEngine(a.store, a.calc, combat.WithModifiers(mf.modifiers()))
	rows, err := engine.Matchup(attacker, defender)
	if err != nil {
		return err
	}

	v := matchupView{
		Attacker: newEffectiveView(attacker),
		Defender: newEffectiveView(defender),
		Rows:     make([]damageView, len(rows)),
	}
	for i, r := range rows {
		v.Rows[i] = newDamageView(r)
	}
	return a.out.emit(v, func(tw io.Writer) {
		a.out.printf(tw, "%s (%s) vs %s (%s, %d HP)\n",
			attacker.Creature.Name, attacker.Creature.Typing,
			defender.Creature.Name, defender.Creature.Typing, defender.Get(model.StatHP))
		a.out.printf(tw, "Move\tType\tCategory\tPower\tAcc\tDamage\t%%HP\tKO\n")
		for _, r := range rows {
			ko := ""
			if r.KO() {
				ko = "KO"
			}
			a.out.printf(tw, "%s\t%s\t%s\t%d\t%s\t%d\t%.1f\t%s\n",
				r.Move, r.Type, r.Category, r.Power, fmtAccuracy(r.Accuracy), r.Damage, r.Percent, ko)
		}
	})
}

// bindBias binds the score weights, defaulting to the configured bias.
func (a *app) bindBias(fs *flag.FlagSet) *combat.Bias {
	b := a.cfg.Bias()
	fs.Float64Var(&b.Attack, "attack-bias", b.Attack, "weight of the defender's retaliation")
	fs.Float64Var(&b.Defense, "defense-bias", b.Defense, "weight of the damage the defender takes")
	return &b
}

func runScore(a *app, fs *flag.FlagSet, args []string) error {
	sf := a.bindSpec(fs)
	bias := a.bindBias(fs)
	pos, err := parseArgs(fs, args, 2, 2)
	if err != nil {
		return err
	}
	attacker, defender, err := a.pair(sf, pos)
	if err != nil {
		return err
	}

	score, err := combat.NewEngine(a.store, a.calc).MatchupScore(attacker, defender, *bias)
	if err != nil {
		return err
	}

	v := scoreView{Attacker: attacker.Creature.Name, Defender: defender.Creature.Name, Bias: *bias, Score: score}
	return a.out.emit(v, func(tw io.Writer) {
		a.out.printf(tw, "%s vs %s\t%.4f\n", v.Attacker, v.Defender, v.Score)
	})
}

func runCounter(a *app, fs *flag.FlagSet, args []string) error {
	sf := a.bindSpec(fs)
	bias := a.bindBias(fs)
	top := fs.Int("top", a.cfg.Counter.TopKeys, "type combinations considered (0 = all)")
	limit := fs.Int("limit", 0, "print at most this many counters (0 = all)")
	pos, err := parseArgs(fs, args, 1, 1)
	if err != nil {
		return err
	}
	opponent, err := a.effective(pos[0], sf.spec())
	if err != nil {
		return err
	}

	counters, err := combat.NewEngine(a.store, a.calc).FindBestCounter(opponent, a.store.Creatures(), combat.CounterOptions{
		TopKeys: *top,
		Spec:    sf.spec(),
		Bias:    *bias,
	})
	if err != nil {
		return err
	}
	if *limit > 0 && len(counters) > *limit {
		counters = counters[:*limit]
	}

	views := make([]counterView, len(counters))
	for i, c := range counters {
		views[i] = counterView{
			Name:  c.Candidate.Creature.Name,
			Types: c.Key.String(),
			Score: c.Score,
			Stats: newStatBlock(c.Candidate.Stats),
		}
	}
	return a.out.emit(views, func(tw io.Writer) {
		a.out.printf(tw, "#\tName\tTypes\tScore\n")
		for i, c := range counters {
			a.out.printf(tw, "%d\t%s\t%s\t%.2f\n", i+1, c.Candidate.Creature.Name, c.Key, c.Score)
		}
	})
}
