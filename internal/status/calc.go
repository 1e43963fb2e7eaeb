package status

import (
	"fmt"

	"github.com/udisondev/mapcore/internal/model"
)

// fieldOrder is the rebuild order of Battle Status fields. Cascades may only
// point to fields later in this list, so one pass always converges.
var fieldOrder = []model.CalcFlag{
	model.CalcStr, model.CalcAgi, model.CalcVit, model.CalcInt, model.CalcDex, model.CalcLuk,
	model.CalcMaxHP, model.CalcMaxSP,
	model.CalcBatk, model.CalcWatk, model.CalcMatk,
	model.CalcHit, model.CalcFlee,
	model.CalcDef, model.CalcDef2, model.CalcMdef, model.CalcMdef2,
	model.CalcSpeed, model.CalcAspd, model.CalcDspd,
	model.CalcCri, model.CalcFlee2,
	model.CalcAtkEle, model.CalcDefEle,
	model.CalcMode, model.CalcSize, model.CalcRace, model.CalcRange,
	model.CalcRegen,
}

// cascades: a change of the key field dirties these fields.
var cascades = map[model.CalcFlag]model.CalcFlag{
	model.CalcStr:   model.CalcBatk,
	model.CalcAgi:   model.CalcFlee | model.CalcAspd | model.CalcDspd,
	model.CalcVit:   model.CalcDef2 | model.CalcMdef2 | model.CalcMaxHP | model.CalcRegen,
	model.CalcInt:   model.CalcMatk | model.CalcMdef2 | model.CalcMaxSP | model.CalcRegen,
	model.CalcDex:   model.CalcBatk | model.CalcHit | model.CalcAspd,
	model.CalcLuk:   model.CalcBatk | model.CalcCri | model.CalcFlee2,
	model.CalcMaxHP: model.CalcRegen,
	model.CalcMaxSP: model.CalcRegen,
}

func init() {
	if err := validateCascades(fieldOrder, cascades); err != nil {
		panic(err)
	}
}

// validateCascades checks that every field is listed once, the list covers
// the whole battle mask, and every cascade points forward.
func validateCascades(order []model.CalcFlag, deps map[model.CalcFlag]model.CalcFlag) error {
	pos := make(map[model.CalcFlag]int, len(order))
	var all model.CalcFlag
	for i, f := range order {
		if _, dup := pos[f]; dup {
			return fmt.Errorf("status: field %s listed twice", f)
		}
		pos[f] = i
		all |= f
	}
	if all != model.CalcBattle {
		return fmt.Errorf("status: field order covers %s, want all battle fields", all)
	}
	for src, targets := range deps {
		from, ok := pos[src]
		if !ok {
			return fmt.Errorf("status: cascade from unknown field %s", src)
		}
		for _, f := range order {
			if targets&f != 0 && pos[f] <= from {
				return fmt.Errorf("status: cascade %s -> %s points backwards", src, f)
			}
		}
	}
	return nil
}

// expand adds cascaded fields. One forward pass is enough.
func expand(mask model.CalcFlag) model.CalcFlag {
	for _, f := range fieldOrder {
		if mask&f != 0 {
			mask |= cascades[f]
		}
	}
	return mask
}

// Recalc rebuilds the Battle Status fields in mask (plus cascades) from the
// Base Status and the currently active entries. Each field is computed from
// scratch, so the result does not depend on the order effects came and went.
func (e *Engine) Recalc(target *model.Entity, mask model.CalcFlag) {
	if target == nil {
		return
	}
	if mask.Has(model.CalcBase) {
		mask |= model.CalcBattle
	}
	mask &= model.CalcBattle
	if mask == 0 {
		return
	}
	mask = expand(mask)

	for _, f := range fieldOrder {
		if mask&f != 0 {
			e.rebuild(target, f)
		}
	}

	if mask.Has(model.CalcMaxHP) && target.HP() > target.Battle.MaxHP {
		target.SetHP(target.Battle.MaxHP)
	}
	if mask.Has(model.CalcMaxSP) && target.SP() > target.Battle.MaxSP {
		target.SetSP(target.Battle.MaxSP)
	}
}

// applyMods runs every active modifier of a field in registry order.
func (e *Engine) applyMods(target *model.Entity, f model.CalcFlag, v int32) int32 {
	for _, m := range e.idx.mods[f] {
		if sce := target.SC.Get(m.typ); sce != nil {
			v = m.fn(v, sce, target)
		}
	}
	return v
}

// pooled returns the strongest bonus (most negative) plus the strongest
// penalty (most positive) among active entries.
func pooled(list []typePool, target *model.Entity) int32 {
	var bonus, penalty int32
	for _, p := range list {
		sce := target.SC.Get(p.typ)
		if sce == nil {
			continue
		}
		v := p.fn(sce, target)
		bonus = min(bonus, v)
		penalty = max(penalty, v)
	}
	return bonus + penalty
}

func (e *Engine) rebuild(target *model.Entity, f model.CalcFlag) {
	b := &target.Base
	st := &target.Battle
	lv := target.Level()

	switch f {
	case model.CalcStr:
		st.Str = max(e.applyMods(target, f, b.Str), 0)
	case model.CalcAgi:
		st.Agi = max(e.applyMods(target, f, b.Agi), 0)
	case model.CalcVit:
		st.Vit = max(e.applyMods(target, f, b.Vit), 0)
	case model.CalcInt:
		st.Int = max(e.applyMods(target, f, b.Int), 0)
	case model.CalcDex:
		st.Dex = max(e.applyMods(target, f, b.Dex), 0)
	case model.CalcLuk:
		st.Luk = max(e.applyMods(target, f, b.Luk), 0)

	case model.CalcMaxHP:
		hp := b.MaxHP
		if target.IsPlayer() {
			hp += int32(int64(b.MaxHP) * int64(st.Vit-b.Vit) / 100)
		}
		st.MaxHP = min(max(e.applyMods(target, f, hp), 1), e.battle.MaxHP)
	case model.CalcMaxSP:
		sp := b.MaxSP
		if target.IsPlayer() {
			sp += int32(int64(b.MaxSP) * int64(st.Int-b.Int) / 100)
		}
		st.MaxSP = min(max(e.applyMods(target, f, sp), 0), e.battle.MaxSP)

	case model.CalcBatk:
		v := formulaBatk(st) + b.Batk - formulaBatk(b)
		st.Batk = max(e.applyMods(target, f, v), 0)
	case model.CalcWatk:
		st.RHW.Atk = max(e.applyMods(target, f, b.RHW.Atk), 0)
		st.RHW.Atk2 = b.RHW.Atk2
	case model.CalcMatk:
		minV := formulaMatkMin(st) + b.MatkMin - formulaMatkMin(b)
		maxV := formulaMatkMax(st) + b.MatkMax - formulaMatkMax(b)
		st.MatkMin = max(e.applyMods(target, f, minV), 0)
		st.MatkMax = max(e.applyMods(target, f, maxV), st.MatkMin)

	case model.CalcHit:
		v := formulaHit(lv, st) + b.Hit - formulaHit(lv, b)
		st.Hit = max(e.applyMods(target, f, v), 1)
	case model.CalcFlee:
		v := formulaFlee(lv, st) + b.Flee - formulaFlee(lv, b)
		st.Flee = max(e.applyMods(target, f, v), 1)

	case model.CalcDef:
		st.Def = max(e.applyMods(target, f, b.Def), 0)
	case model.CalcDef2:
		v := formulaDef2(st) + b.Def2 - formulaDef2(b)
		st.Def2 = max(e.applyMods(target, f, v), 0)
	case model.CalcMdef:
		st.Mdef = max(e.applyMods(target, f, b.Mdef), 0)
	case model.CalcMdef2:
		v := formulaMdef2(st) + b.Mdef2 - formulaMdef2(b)
		st.Mdef2 = max(e.applyMods(target, f, v), 0)

	case model.CalcSpeed:
		pct := pooled(e.idx.speed, target)
		v := b.Speed * (100 + pct) / 100
		v = e.applyMods(target, f, v)
		st.Speed = min(max(v, e.battle.MinWalkSpeed), e.battle.MaxWalkSpeed)
	case model.CalcAspd:
		e.rebuildAspd(target)
	case model.CalcDspd:
		v := b.Dmotion
		if target.IsPlayer() {
			v = formulaDmotion(st) + b.Dmotion - formulaDmotion(b)
		}
		st.Dmotion = max(e.applyMods(target, f, v), 0)

	case model.CalcCri:
		v := formulaCri(st) + b.Cri - formulaCri(b)
		st.Cri = max(e.applyMods(target, f, v), 1)
	case model.CalcFlee2:
		v := formulaFlee2(st) + b.Flee2 - formulaFlee2(b)
		st.Flee2 = max(e.applyMods(target, f, v), 1)

	case model.CalcAtkEle:
		st.RHW.Ele = model.Element(e.applyMods(target, f, int32(b.RHW.Ele)))
	case model.CalcDefEle:
		ele, eleLv := unpackEle(e.applyMods(target, f, packEle(b.DefEle, b.EleLv)))
		st.DefEle, st.EleLv = ele, eleLv

	case model.CalcMode:
		st.Mode = model.Mode(e.applyMods(target, f, int32(b.Mode)))
	case model.CalcSize:
		st.Size = b.Size
	case model.CalcRace:
		st.Race = b.Race
	case model.CalcRange:
		st.RHW.Range = b.RHW.Range

	case model.CalcRegen:
		e.calcRegen(target)
	}
}

// rebuildAspd recomputes attack motion: stat formula, then the pooled rate.
func (e *Engine) rebuildAspd(target *model.Entity) {
	b := &target.Base
	st := &target.Battle

	amotion := b.Amotion
	if target.IsPlayer() {
		if job, ok := e.jobs[target.Job()]; ok {
			amotion = formulaAmotion(job.BaseAmotion, st) + b.Amotion - formulaAmotion(job.BaseAmotion, b)
		}
	}

	st.AspdRate = 1000 + pooled(e.idx.aspd, target)*10
	amotion = int32(int64(amotion) * int64(st.AspdRate) / 1000)
	amotion = e.applyMods(target, model.CalcAspd, amotion)

	minMotion := 2000 - e.battle.MaxAspd*10
	st.Amotion = min(max(amotion, minMotion), 2000)

	if b.Amotion > 0 {
		st.Adelay = int32(int64(st.Amotion) * int64(b.Adelay) / int64(b.Amotion))
	} else {
		st.Adelay = 2 * st.Amotion
	}
}

// CalcBase recomputes the Base Status from level, job table, allocated stats
// and template, then rebuilds the whole Battle Status. Call it after level-up,
// equipment or skill-tree changes. The first call fills HP and SP.
func (e *Engine) CalcBase(target *model.Entity) error {
	if target == nil {
		return ErrInvalidTarget
	}
	b := &target.Base
	t := &target.Template
	p := target.Params
	lv := target.Level()
	first := b.MaxHP == 0

	*b = model.StatusData{
		Str: p.Str, Agi: p.Agi, Vit: p.Vit, Int: p.Int, Dex: p.Dex, Luk: p.Luk,
		RHW:    t.RHW,
		Def:    t.Def,
		Mdef:   t.Mdef,
		Speed:  t.Speed,
		Mode:   t.Mode,
		DefEle: t.DefEle,
		EleLv:  max(t.EleLv, 1),
		Size:   t.Size,
		Race:   t.Race,
	}
	if b.Speed <= 0 {
		b.Speed = model.DefaultWalkSpeed
	}

	if target.IsPlayer() {
		job, ok := e.jobs[target.Job()]
		if !ok {
			return fmt.Errorf("calc base of %d: unknown job %d", target.ObjectID(), target.Job())
		}
		b.MaxHP = job.BaseMaxHP(lv, b.Vit) + t.MaxHP
		b.MaxSP = job.BaseMaxSP(lv, b.Int) + t.MaxSP
		b.Amotion = formulaAmotion(job.BaseAmotion, b)
		b.Adelay = 2 * b.Amotion
		b.Dmotion = formulaDmotion(b)
	} else {
		b.MaxHP = max(t.MaxHP, 1)
		b.MaxSP = t.MaxSP
		b.Amotion = t.Amotion
		if b.Amotion <= 0 {
			b.Amotion = 1000
		}
		b.Adelay = t.Adelay
		if b.Adelay <= 0 {
			b.Adelay = 2 * b.Amotion
		}
		b.Dmotion = t.Dmotion
		if b.Dmotion <= 0 {
			b.Dmotion = 500
		}
	}
	b.MaxHP = min(b.MaxHP, e.battle.MaxHP)
	b.MaxSP = min(b.MaxSP, e.battle.MaxSP)
	b.AspdRate = 1000

	b.Batk = formulaBatk(b) + t.Batk
	b.MatkMin = formulaMatkMin(b) + t.MatkMin
	b.MatkMax = formulaMatkMax(b) + t.MatkMax
	b.Hit = formulaHit(lv, b) + t.Hit
	b.Flee = formulaFlee(lv, b) + t.Flee
	b.Def2 = formulaDef2(b) + t.Def2
	b.Mdef2 = formulaMdef2(b) + t.Mdef2
	b.Cri = formulaCri(b) + t.Cri
	b.Flee2 = formulaFlee2(b) + t.Flee2

	e.Recalc(target, model.CalcBattle)

	if first {
		target.SetHP(target.Battle.MaxHP)
		target.SetSP(target.Battle.MaxSP)
	}
	return nil
}

func formulaBatk(st *model.StatusData) int32 {
	s := st.Str / 10
	return st.Str + s*s + st.Dex/5 + st.Luk/5
}

func formulaMatkMin(st *model.StatusData) int32 {
	s := st.Int / 7
	return st.Int + s*s
}

func formulaMatkMax(st *model.StatusData) int32 {
	s := st.Int / 5
	return st.Int + s*s
}

func formulaHit(lv int32, st *model.StatusData) int32  { return lv + st.Dex }
func formulaFlee(lv int32, st *model.StatusData) int32 { return lv + st.Agi }
func formulaDef2(st *model.StatusData) int32           { return st.Vit }
func formulaMdef2(st *model.StatusData) int32          { return st.Int + st.Vit/2 }
func formulaCri(st *model.StatusData) int32            { return 10 + st.Luk*10/3 }
func formulaFlee2(st *model.StatusData) int32          { return st.Luk + 10 }

func formulaAmotion(base int32, st *model.StatusData) int32 {
	return base - base*(4*st.Agi+st.Dex)/1000
}

func formulaDmotion(st *model.StatusData) int32 {
	return max(800-st.Agi*4, 400)
}

// packEle keeps element and element level in one modifiable value.
func packEle(ele model.Element, lv uint8) int32 {
	return int32(ele) | int32(lv)<<8
}

func unpackEle(v int32) (model.Element, uint8) {
	return model.Element(v & 0xFF), max(uint8(v>>8), 1)
}
