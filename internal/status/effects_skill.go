package status

import (
	"fmt"

	"github.com/udisondev/mapcore/internal/model"
	"github.com/udisondev/mapcore/internal/timer"
)

// Skill effects with periodic upkeep, links to other entries or entities,
// or hooks into damage and regeneration.

const (
	berserkInterval     = 10000
	berserkRegenBlock   = 300000
	maximizeDefault     = 60000
	lifePotionInterval  = 5000
	berserkEndureMarker = 2
)

func init() {
	// val4 == berserkEndureMarker: nested in Berserk, infinite, ended with it
	register(&Descriptor{
		Type:     model.SCEndure,
		Icon:     1,
		Category: CategoryBuff,
		Calc:     model.CalcMdef | model.CalcDspd,
		Stack:    StackMerge,
		Merge: func(old *model.SCEntry, req *Request) error {
			if old.Val4 != 0 {
				req.Val4 = old.Val4
				req.Tick = model.InfiniteTick
			}
			return nil
		},
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			if req.Val2 == 0 {
				req.Val2 = 7
			}
		},
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcMdef: addVal(1),
			model.CalcDspd: setConst(0),
		},
	})

	// val2 seconds left, val4 seconds between SP payments
	register(&Descriptor{
		Type:     model.SCHiding,
		Icon:     4,
		Category: CategoryBuff,
		Side:     stopBody,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = ticks(req.Tick, 1000)
			req.Val4 = req.Val1 + 3
		},
		Interval: 1000,
		OnTick: func(e *Engine, target *model.Entity, sce *model.SCEntry) bool {
			sce.Val2--
			if sce.Val2 <= 0 {
				return false
			}
			if sce.Val4 > 0 && sce.Val2%sce.Val4 == 0 && !e.Charge(target, 0, 1) {
				return false
			}
			return true
		},
		Option: model.OptionHide,
	})

	// infinite; val2 is the SP payment period
	register(&Descriptor{
		Type:     model.SCCloaking,
		Icon:     5,
		Category: CategoryBuff,
		Calc:     model.CalcSpeed | model.CalcCri,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = (req.Val1 + 2) * 1000
			req.Tick = model.InfiniteTick
		},
		IntervalVal: 2,
		OnTick: func(e *Engine, target *model.Entity, _ *model.SCEntry) bool {
			return e.Charge(target, 0, 1)
		},
		Option: model.OptionCloak,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcCri: addConst(100),
		},
		Speed: func(sce *model.SCEntry, _ *model.Entity) int32 {
			return max(30-3*sce.Val1, 0)
		},
	})

	register(&Descriptor{
		Type:     model.SCKyrie,
		Icon:     19,
		Category: CategoryBuff,
		Cancels:  []model.SCType{model.SCAssumptio},
		Guard: func(_ *Engine, _, target *model.Entity, req *Request) error {
			if target.Kind() == model.KindMonster {
				return fmt.Errorf("%w: %s on monster", ErrBlocked, req.Type)
			}
			return nil
		},
		Prepare: func(_ *Engine, _, target *model.Entity, req *Request) {
			req.Val2 = int32(int64(target.Battle.MaxHP) * int64(req.Val1*2+10) / 100)
			req.Val3 = req.Val1/2 + 5
		},
	})

	register(&Descriptor{
		Type:     model.SCAssumptio,
		Icon:     110,
		Category: CategoryBuff,
		Cancels:  []model.SCType{model.SCKyrie},
		Opt3:     model.Opt3Assumptio,
	})

	// infinite; val2 is the SP payment period
	register(&Descriptor{
		Type:     model.SCMaximizePower,
		Icon:     26,
		Category: CategoryBuff,
		Calc:     model.CalcRegen,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = maximizeDefault
			if req.Tick > 0 {
				req.Val2 = int32(req.Tick)
			}
			req.Tick = model.InfiniteTick
		},
		IntervalVal: 2,
		Interval:    maximizeDefault,
		OnTick: func(e *Engine, target *model.Entity, _ *model.SCEntry) bool {
			return e.Charge(target, 0, 1)
		},
		Regen: suppressRegen(model.RegenSP),
	})

	register(&Descriptor{
		Type:     model.SCTrickDead,
		Icon:     29,
		Category: CategoryBuff,
		Calc:     model.CalcRegen,
		Guard: func(_ *Engine, _, target *model.Entity, req *Request) error {
			if !target.IsPlayer() {
				return fmt.Errorf("%w: %s on non-player", ErrBlocked, req.Type)
			}
			return nil
		},
		Side:  stopBody,
		Regen: suppressRegen(model.RegenHP | model.RegenSP),
	})

	// val2 = drain per 10 s, val3 = periods left
	register(&Descriptor{
		Type:     model.SCBerserk,
		Icon:     107,
		Category: CategoryBuff,
		Calc: model.CalcDef | model.CalcDef2 | model.CalcMdef | model.CalcMdef2 |
			model.CalcFlee | model.CalcMaxHP | model.CalcBatk | model.CalcSpeed |
			model.CalcAspd | model.CalcDspd | model.CalcRegen,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val3 = ticks(req.Tick, berserkInterval)
		},
		Interval: berserkInterval,
		OnStart: func(e *Engine, target *model.Entity, sce *model.SCEntry, req *Request) {
			if req.Flags&FlagLoaded == 0 {
				sce.Val2 = target.Battle.MaxHP * 5 / 100
				target.SetHP(target.Battle.MaxHP)
			}
			e.startLinked(target, Request{
				Type:  model.SCEndure,
				Rate:  RateAlways,
				Val1:  10,
				Val4:  berserkEndureMarker,
				Tick:  model.InfiniteTick,
				Flags: FlagNoAvoid,
			})
		},
		OnTick: func(e *Engine, target *model.Entity, sce *model.SCEntry) bool {
			sce.Val3--
			return sce.Val3 > 0 && e.Charge(target, sce.Val2, 0) && target.HP() > 100
		},
		OnEnd: func(e *Engine, target *model.Entity, _ *model.SCEntry) {
			if endure := target.SC.Get(model.SCEndure); endure != nil && endure.Val4 == berserkEndureMarker {
				e.End(target, model.SCEndure, timer.Invalid)
			}
			if target.IsDead() {
				return
			}
			if target.HP() > 100 {
				target.SetHP(100)
			}
			e.startLinked(target, Request{
				Type:  model.SCRegeneration,
				Rate:  RateAlways,
				Val1:  10,
				Val4:  int32(model.RegenHP | model.RegenSP),
				Tick:  berserkRegenBlock,
				Flags: FlagNoAvoid,
			})
		},
		Opt3: model.Opt3Berserk,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcDef:   setConst(0),
			model.CalcDef2:  setConst(0),
			model.CalcMdef:  setConst(0),
			model.CalcMdef2: setConst(0),
			model.CalcFlee:  subPercent(50),
			model.CalcMaxHP: func(v int32, _ *model.SCEntry, _ *model.Entity) int32 {
				return v * 3
			},
			model.CalcBatk: func(v int32, _ *model.SCEntry, _ *model.Entity) int32 {
				return v * 2
			},
			model.CalcDspd: setConst(0),
		},
		Speed: poolConst(-25),
		Aspd:  poolConst(-30),
		Regen: suppressRegen(model.RegenHP | model.RegenSP),
	})

	// val4 = partner object ID; both sides hold an entry pointing at each other
	register(&Descriptor{
		Type:     model.SCBladeStop,
		Icon:     131,
		Category: CategoryDebuff,
		Cancels:  []model.SCType{model.SCBladeStopWait},
		Side:     stopBody,
		OnStart: func(e *Engine, target *model.Entity, sce *model.SCEntry, req *Request) {
			partner := e.resolve(sce.Val4)
			if partner == nil || partner.SC.Has(model.SCBladeStop) {
				return
			}
			e.startLinked(partner, Request{
				Type:  model.SCBladeStop,
				Rate:  RateAlways,
				Val1:  sce.Val1,
				Val2:  sce.Val2,
				Val4:  int32(target.ObjectID()),
				Tick:  req.Tick,
				Flags: FlagNoAvoid | FlagFixedTick,
			})
		},
		OnEnd: func(e *Engine, target *model.Entity, sce *model.SCEntry) {
			partner := e.resolve(sce.Val4)
			if partner == nil {
				return
			}
			if p := partner.SC.Get(model.SCBladeStop); p != nil && p.Val4 == int32(target.ObjectID()) {
				e.End(partner, model.SCBladeStop, timer.Invalid)
			}
		},
		Opt3: model.Opt3BladeStop,
	})

	register(&Descriptor{
		Type:     model.SCBladeStopWait,
		Icon:     130,
		Category: CategoryBuff,
		Side:     stopBody,
	})

	// val2 = skill unit group, val3 = seconds left
	register(&Descriptor{
		Type:     model.SCDancing,
		Icon:     IconNone,
		Category: CategoryBuff,
		Calc:     model.CalcRegen,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val3 = ticks(req.Tick, 1000)
		},
		Interval: 1000,
		OnTick: func(e *Engine, target *model.Entity, sce *model.SCEntry) bool {
			sce.Val3--
			if sce.Val3 <= 0 {
				return false
			}
			if sce.Val3%10 == 0 && !e.Charge(target, 0, 1) {
				return false
			}
			return true
		},
		OnEnd: func(e *Engine, _ *model.Entity, sce *model.SCEntry) {
			if sce.Val2 != 0 {
				e.skillUnits.DeleteGroup(sce.Val2)
			}
		},
		Regen: suppressRegen(model.RegenSP),
	})

	// val4 == 0: val2/val3 are HP/SP rate bonuses; otherwise val4 names the
	// regen flags blocked for the duration
	register(&Descriptor{
		Type:     model.SCRegeneration,
		Icon:     122,
		Category: CategoryBuff,
		Calc:     model.CalcRegen,
		Regen: func(sce *model.SCEntry, r *model.RegenData, _ *model.Entity) {
			if sce.Val4 != 0 {
				r.Flag &^= model.RegenFlag(sce.Val4)
				return
			}
			r.RateHP += sce.Val2
			r.RateSP += sce.Val3
		},
	})

	register(&Descriptor{
		Type:     model.SCTensionRelax,
		Icon:     106,
		Category: CategoryBuff,
		Calc:     model.CalcRegen,
		Side: &SideEffect{
			Apply: func(e *Engine, target *model.Entity, _ *Request) {
				e.movement.StopWalking(target)
				target.SetSitting(true)
			},
		},
		Regen: func(_ *model.SCEntry, r *model.RegenData, target *model.Entity) {
			if target.Sitting() {
				r.RateHP += 200
			}
		},
	})

	// val1 = HP per period, val3 = periods left
	register(&Descriptor{
		Type:     model.SCLifePotion,
		Icon:     184,
		Category: CategoryBuff,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val3 = ticks(req.Tick, lifePotionInterval)
		},
		Interval: lifePotionInterval,
		OnTick: func(e *Engine, target *model.Entity, sce *model.SCEntry) bool {
			e.Heal(target, sce.Val1, 0)
			sce.Val3--
			return sce.Val3 > 0
		},
	})
}
