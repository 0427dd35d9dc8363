package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/bytedance/sonic"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/udisondev/pkmbattle/internal/data"
	"github.com/udisondev/pkmbattle/internal/game/combat"
	"github.com/udisondev/pkmbattle/internal/game/stats"
	"github.com/udisondev/pkmbattle/internal/game/typechart"
	"github.com/udisondev/pkmbattle/internal/model"
)

// output renders either aligned tables or indented JSON.
type output struct {
	w    io.Writer
	json bool
	p    *message.Printer
}

func newOutput(w io.Writer, asJSON bool) output {
	return output{w: w, json: asJSON, p: message.NewPrinter(language.English)}
}

// emit writes v as JSON, or calls table with a tabwriter otherwise.
func (o output) emit(v any, table func(tw io.Writer)) error {
	if o.json {
		b, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = o.w.Write(append(b, '\n'))
		return err
	}

	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

// printf formats numbers with thousands grouping.
func (o output) printf(w io.Writer, format string, args ...any) {
	o.p.Fprintf(w, format, args...)
}

// JSON views. Records carry model enums and +Inf accuracies
// that don't encode on their own.

type statBlock struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	SpAtk   int `json:"sp_atk"`
	SpDef   int `json:"sp_def"`
	Speed   int `json:"speed"`
}

func newStatBlock(s model.Stats) statBlock {
	return statBlock{
		HP:      s[model.StatHP],
		Attack:  s[model.StatAttack],
		Defense: s[model.StatDefense],
		SpAtk:   s[model.StatSpAtk],
		SpDef:   s[model.StatSpDef],
		Speed:   s[model.StatSpeed],
	}
}

type creatureView struct {
	ID    int       `json:"id"`
	Name  string    `json:"name"`
	Types []string  `json:"types"`
	Base  statBlock `json:"base"`
	Total int       `json:"base_total"`
}

func newCreatureView(c data.Creature) creatureView {
	return creatureView{
		ID:    c.ID,
		Name:  c.Name,
		Types: typeNames(c.Typing.Types()),
		Base:  newStatBlock(c.Base),
		Total: c.Base.Total(),
	}
}

type effectiveView struct {
	creatureView
	Nature string    `json:"nature"`
	Level  int       `json:"level"`
	IVs    statBlock `json:"ivs"`
	EVs    statBlock `json:"evs"`
	Stats  statBlock `json:"stats"`
	Sum    int       `json:"total"`
}

func newEffectiveView(es stats.EffectiveStats) effectiveView {
	return effectiveView{
		creatureView: newCreatureView(es.Creature),
		Nature:       es.Nature,
		Level:        es.Level,
		IVs:          newStatBlock(es.IVs),
		EVs:          newStatBlock(es.EVs),
		Stats:        newStatBlock(es.Stats),
		Sum:          es.Total,
	}
}

type moveView struct {
	Move         string   `json:"move"`
	Methods      string   `json:"methods"`
	Level        int      `json:"level,omitempty"`
	TM           int      `json:"tm,omitempty"`
	HM           int      `json:"hm,omitempty"`
	TR           int      `json:"tr,omitempty"`
	Known        bool     `json:"known"`
	Type         string   `json:"type,omitempty"`
	Category     string   `json:"category,omitempty"`
	Power        *int     `json:"power"`
	Accuracy     *float64 `json:"accuracy"`
	AlwaysHits   bool     `json:"always_hits,omitempty"`
	PP           *int     `json:"pp"`
	EffectChance *int     `json:"effect_chance"`
}

func newMoveView(d data.DetailedEntry) moveView {
	v := moveView{
		Move:    d.MovesetEntry.Move,
		Methods: d.Methods.String(),
		TM:      d.TM,
		HM:      d.HM,
		TR:      d.TR,
	}
	if d.Learns(data.ByLevel) {
		v.Level = d.Level
	}
	if d.Move == nil {
		return v
	}
	v.Known = true
	v.Type = d.Move.Type.String()
	v.Category = d.Move.Category.String()
	v.Power = d.Move.Power
	v.Accuracy, v.AlwaysHits = finiteAccuracy(d.Move.Accuracy)
	v.PP = d.Move.PP
	v.EffectChance = d.Move.EffectChance
	return v
}

type rowView struct {
	Types   string             `json:"types"`
	Against map[string]float64 `json:"against"`
}

func newRowView(r typechart.Row, attacking []model.Type) rowView {
	v := rowView{Types: r.Key.String(), Against: make(map[string]float64, len(attacking))}
	for _, t := range attacking {
		v.Against[t.String()] = r.Against(t)
	}
	return v
}

type rankedView struct {
	Types string  `json:"types"`
	Score float64 `json:"score"`
}

type damageView struct {
	Move         string   `json:"move"`
	Type         string   `json:"type"`
	Category     string   `json:"category"`
	Power        int      `json:"power"`
	Accuracy     *float64 `json:"accuracy"`
	AlwaysHits   bool     `json:"always_hits,omitempty"`
	PP           *int     `json:"pp"`
	EffectChance *int     `json:"effect_chance"`
	Damage       int      `json:"damage"`
	Percent      float64  `json:"percent"`
	KO           bool     `json:"ko"`
}

func newDamageView(r combat.DamageRow) damageView {
	v := damageView{
		Move:         r.Move,
		Type:         r.Type.String(),
		Category:     r.Category.String(),
		Power:        r.Power,
		PP:           r.PP,
		EffectChance: r.EffectChance,
		Damage:       r.Damage,
		Percent:      r.Percent,
		KO:           r.KO(),
	}
	v.Accuracy, v.AlwaysHits = finiteAccuracy(r.Accuracy)
	return v
}

type matchupView struct {
	Attacker effectiveView `json:"attacker"`
	Defender effectiveView `json:"defender"`
	Rows     []damageView  `json:"rows"`
}

type scoreView struct {
	Attacker string      `json:"attacker"`
	Defender string      `json:"defender"`
	Bias     combat.Bias `json:"bias"`
	Score    float64     `json:"score"`
}

type counterView struct {
	Name  string    `json:"name"`
	Types string    `json:"types"`
	Score float64   `json:"score"`
	Stats statBlock `json:"stats"`
}

type infoView struct {
	Generation string `json:"generation"`
	Digest     string `json:"digest"`
	Creatures  int    `json:"creatures"`
	Moves      int    `json:"moves"`
	Natures    int    `json:"natures"`
}

func typeNames(ts []model.Type) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

// finiteAccuracy maps a never-missing move to nil plus a flag.
func finiteAccuracy(acc *float64) (*float64, bool) {
	if acc == nil {
		return nil, false
	}
	if math.IsInf(*acc, 1) {
		return nil, true
	}
	v := *acc
	return &v, false
}

func fmtAccuracy(acc *float64) string {
	switch {
	case acc == nil:
		return "-"
	case math.IsInf(*acc, 1):
		return "∞"
	default:
		return fmt.Sprintf("%g", *acc)
	}
}

// fmtID keeps dex numbers ungrouped: 1008, not 1,008.
func fmtID(id int) string { return strconv.Itoa(id) }

func fmtOptInt(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprint(*v)
}
