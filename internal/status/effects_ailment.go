package status

import (
	"fmt"

	"github.com/udisondev/mapcore/internal/model"
)

// Common ailments: one body state at a time (opt1) or health bits (opt2),
// bosses immune, re-application refused.

const (
	stoneWaitDefault = 5000
	poisonInterval   = 1000
	bleedingInterval = 10000
	burningInterval  = 2000
)

func guardUndead(_ *Engine, _, target *model.Entity, req *Request) error {
	if target.Battle.IsUndead() {
		return fmt.Errorf("%w: %s on undead", ErrBlocked, req.Type)
	}
	return nil
}

func init() {
	register(&Descriptor{
		Type:          model.SCStone,
		Icon:          IconNone,
		Category:      CategoryAilment,
		Calc:          model.CalcDef | model.CalcMdef | model.CalcDefEle,
		Stack:         StackReject,
		BossImmune:    true,
		Opt1Exclusive: true,
		Guard:         guardUndead,
		Resist:        resistStone,
		Side:          stopBody,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			if req.Val2 <= 0 {
				req.Val2 = stoneWaitDefault
			}
			req.Val3 = ticks(req.Tick, 1000)
			req.Val4 = 0
			req.Interval = int64(req.Val2)
		},
		Interval: 1000,
		OnTick:   stoneTick,
		Display: func(sce *model.SCEntry, d *model.Display) {
			if d.Opt1 != model.Opt1None {
				return
			}
			if sce.Val2 > 0 {
				d.Opt1 = model.Opt1StoneWait
			} else {
				d.Opt1 = model.Opt1Stone
			}
		},
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcDef: func(v int32, sce *model.SCEntry, _ *model.Entity) int32 {
				if sce.Val2 > 0 {
					return v
				}
				return v >> 1
			},
			model.CalcMdef: func(v int32, sce *model.SCEntry, _ *model.Entity) int32 {
				if sce.Val2 > 0 {
					return v
				}
				return v + 25*v/100
			},
			model.CalcDefEle: func(v int32, sce *model.SCEntry, _ *model.Entity) int32 {
				if sce.Val2 > 0 {
					return v
				}
				return packEle(model.ElementEarth, 1)
			},
		},
	})

	register(&Descriptor{
		Type:          model.SCFreeze,
		Icon:          IconNone,
		Category:      CategoryAilment,
		Calc:          model.CalcDef | model.CalcMdef | model.CalcDefEle,
		Stack:         StackReject,
		BossImmune:    true,
		Opt1Exclusive: true,
		Guard:         guardUndead,
		Resist:        resistFreeze,
		Side:          stopBody,
		Opt1:          model.Opt1Freeze,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcDef: func(v int32, _ *model.SCEntry, _ *model.Entity) int32 {
				return v >> 1
			},
			model.CalcMdef: func(v int32, _ *model.SCEntry, _ *model.Entity) int32 {
				return v + 25*v/100
			},
			model.CalcDefEle: setDefElement(model.ElementWater, 1),
		},
	})

	register(&Descriptor{
		Type:          model.SCStun,
		Icon:          IconNone,
		Category:      CategoryAilment,
		Stack:         StackReject,
		BossImmune:    true,
		Opt1Exclusive: true,
		Resist:        resistVit,
		Side:          stopBody,
		Opt1:          model.Opt1Stun,
	})

	register(&Descriptor{
		Type:          model.SCSleep,
		Icon:          IconNone,
		Category:      CategoryAilment,
		Stack:         StackReject,
		BossImmune:    true,
		Opt1Exclusive: true,
		Resist:        resistSleep,
		Side:          stopBody,
		Opt1:          model.Opt1Sleep,
	})

	register(&Descriptor{
		Type:       model.SCPoison,
		Icon:       IconNone,
		Category:   CategoryAilment,
		Calc:       model.CalcDef2 | model.CalcRegen,
		Stack:      StackReject,
		BossImmune: true,
		Resist:     resistVit,
		Prepare:    preparePoison,
		Interval:   poisonInterval,
		OnTick:     poisonTick,
		Opt2:       model.Opt2Poison,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcDef2: subPercent(25),
		},
		Regen: suppressRegen(model.RegenHP | model.RegenSP),
	})

	register(&Descriptor{
		Type:       model.SCCurse,
		Icon:       IconNone,
		Category:   CategoryAilment,
		Calc:       model.CalcLuk | model.CalcBatk | model.CalcWatk | model.CalcSpeed,
		Stack:      StackReject,
		BossImmune: true,
		Resist:     resistCurse,
		Opt2:       model.Opt2Curse,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcLuk:  setConst(0),
			model.CalcBatk: subPercent(25),
			model.CalcWatk: subPercent(25),
		},
		Speed: poolConst(300),
	})

	register(&Descriptor{
		Type:       model.SCSilence,
		Icon:       IconNone,
		Category:   CategoryAilment,
		Stack:      StackReject,
		BossImmune: true,
		Resist:     resistVit,
		Opt2:       model.Opt2Silence,
	})

	register(&Descriptor{
		Type:       model.SCConfusion,
		Icon:       IconNone,
		Category:   CategoryAilment,
		Stack:      StackReject,
		BossImmune: true,
		Resist:     resistConfusion,
	})

	register(&Descriptor{
		Type:       model.SCBlind,
		Icon:       IconNone,
		Category:   CategoryAilment,
		Calc:       model.CalcHit | model.CalcFlee,
		Stack:      StackReject,
		BossImmune: true,
		Resist:     resistBlind,
		Opt2:       model.Opt2Blind,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcHit:  subPercent(25),
			model.CalcFlee: subPercent(25),
		},
	})

	register(&Descriptor{
		Type:       model.SCBleeding,
		Icon:       124,
		Category:   CategoryAilment,
		Calc:       model.CalcRegen,
		Stack:      StackReject,
		BossImmune: true,
		Resist:     resistVit,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val4 = ticks(req.Tick, bleedingInterval)
		},
		Interval: bleedingInterval,
		OnTick: func(e *Engine, target *model.Entity, sce *model.SCEntry) bool {
			e.applyDamage(nil, target, 200+e.randN(600), 0, true)
			sce.Val4--
			return !target.IsDead() && sce.Val4 > 0
		},
		Opt2:  model.Opt2Bleeding,
		Regen: suppressRegen(model.RegenHP | model.RegenSP),
	})

	register(&Descriptor{
		Type:       model.SCDPoison,
		Icon:       IconNone,
		Category:   CategoryAilment,
		Calc:       model.CalcDef2 | model.CalcRegen,
		Stack:      StackReject,
		BossImmune: true,
		Resist:     resistVit,
		Prepare:    preparePoison,
		Interval:   poisonInterval,
		OnStart: func(e *Engine, target *model.Entity, _ *model.SCEntry, req *Request) {
			if req.Flags&FlagLoaded != 0 {
				return
			}
			pct := int32(15)
			if target.IsPlayer() {
				pct = 10
			}
			diff := target.Battle.MaxHP * pct / 100
			if floor := target.Battle.MaxHP >> 2; target.HP()-diff < floor {
				diff = target.HP() - floor
			}
			if diff > 0 {
				e.applyDamage(nil, target, diff, 0, false)
			}
		},
		OnTick: func(e *Engine, target *model.Entity, sce *model.SCEntry) bool {
			sce.Val3--
			if sce.Val3 <= 0 {
				return false
			}
			if !target.SC.Has(model.SCSlowPoison) {
				e.applyDamage(nil, target, sce.Val4, 0, false)
			}
			return true
		},
		Opt2: model.Opt2DPoison,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcDef2: subPercent(25),
		},
		Regen: suppressRegen(model.RegenHP | model.RegenSP),
	})

	register(&Descriptor{
		Type:          model.SCBurning,
		Icon:          639,
		Category:      CategoryAilment,
		Calc:          model.CalcMdef | model.CalcDefEle,
		Stack:         StackReject,
		BossImmune:    true,
		Opt1Exclusive: true,
		Resist:        resistBurning,
		MinTick:       5000,
		Prepare: func(_ *Engine, src, _ *model.Entity, req *Request) {
			if src != nil {
				req.Val2 = int32(src.ObjectID())
			}
			req.Val3 = ticks(req.Tick, burningInterval)
		},
		Interval: burningInterval,
		OnTick: func(e *Engine, target *model.Entity, sce *model.SCEntry) bool {
			caster := e.resolve(sce.Val2)
			e.applyDamage(caster, target, 1000+target.Battle.MaxHP*3/100, 0, true)
			sce.Val3--
			return !target.IsDead() && sce.Val3 > 0
		},
		Opt1: model.Opt1Burning,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcMdef:   subPercent(25),
			model.CalcDefEle: setDefElement(model.ElementFire, 1),
		},
	})
}

// stoneTick: the first tick ends the waiting phase, later ones count down
// and drain 1% HP every fifth second while above a quarter.
func stoneTick(e *Engine, target *model.Entity, sce *model.SCEntry) bool {
	if sce.Val2 > 0 {
		sce.Val2 = 0
		e.refreshDisplay(target)
		e.Recalc(target, model.CalcDef|model.CalcMdef|model.CalcDefEle)
		return true
	}
	sce.Val4++
	st := &target.Battle
	if sce.Val4%5 == 0 && target.HP() > st.MaxHP/4 {
		e.applyDamage(nil, target, max(st.MaxHP/100, 1), 0, false)
	}
	sce.Val3--
	return sce.Val3 > 0
}

// preparePoison: val2 caster, val3 remaining ticks, val4 damage per tick.
func preparePoison(_ *Engine, src, target *model.Entity, req *Request) {
	if src != nil && req.Val2 == 0 {
		req.Val2 = int32(src.ObjectID())
	}
	req.Val3 = ticks(req.Tick, poisonInterval)
	if req.Val4 <= 0 {
		req.Val4 = 1 + target.Battle.MaxHP/100
	}
}

// poisonTick stops at a quarter of MaxHP; Slow Poison pauses the damage.
func poisonTick(e *Engine, target *model.Entity, sce *model.SCEntry) bool {
	sce.Val3--
	if sce.Val3 <= 0 {
		return false
	}
	floor := target.Battle.MaxHP / 4
	if target.HP() <= max(floor, sce.Val4) {
		return false
	}
	if target.SC.Has(model.SCSlowPoison) {
		return true
	}
	e.applyDamage(e.resolve(sce.Val2), target, min(sce.Val4, target.HP()-floor), 0, false)
	return true
}
