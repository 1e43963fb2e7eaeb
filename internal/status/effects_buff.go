package status

import (
	"fmt"

	"github.com/udisondev/mapcore/internal/model"
)

// Supportive effects with plain stat modifiers.

var quickenBlockers = []model.SCType{model.SCQuagmire, model.SCDecAgi}

func init() {
	register(&Descriptor{
		Type:      model.SCTwoHandQuicken,
		Icon:      2,
		Category:  CategoryBuff,
		Calc:      model.CalcAspd,
		BlockedBy: quickenBlockers,
		Opt3:      model.Opt3Quicken,
		Aspd:      poolConst(-30),
	})

	register(&Descriptor{
		Type:      model.SCConcentration,
		Icon:      3,
		Category:  CategoryBuff,
		Calc:      model.CalcAgi | model.CalcDex,
		BlockedBy: []model.SCType{model.SCQuagmire},
		Prepare: func(_ *Engine, _, target *model.Entity, req *Request) {
			req.Val2 = 2 + req.Val1
			req.Val3 = target.Base.Agi - target.Params.Agi
			req.Val4 = target.Base.Dex - target.Params.Dex
		},
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcAgi: func(v int32, sce *model.SCEntry, _ *model.Entity) int32 {
				return v + (v-sce.Val3)*sce.Val2/100
			},
			model.CalcDex: func(v int32, sce *model.SCEntry, _ *model.Entity) int32 {
				return v + (v-sce.Val4)*sce.Val2/100
			},
		},
	})

	register(&Descriptor{
		Type:     model.SCEnchantPoison,
		Icon:     6,
		Category: CategoryBuff,
		Calc:     model.CalcAtkEle,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = 25 + 5*req.Val1
		},
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcAtkEle: setElement(model.ElementPoison),
		},
	})

	register(&Descriptor{
		Type:     model.SCPoisonReact,
		Icon:     7,
		Category: CategoryBuff,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = (req.Val1 + 1) / 2
		},
	})

	register(&Descriptor{
		Type:     model.SCAngelus,
		Icon:     9,
		Category: CategoryBuff,
		Calc:     model.CalcDef2,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = 5 * req.Val1
		},
		Opt2: model.Opt2Angelus,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcDef2: addPercentVal(2),
		},
	})

	blessing := func(v int32, sce *model.SCEntry, _ *model.Entity) int32 {
		if sce.Val2 == 0 {
			return v >> 1
		}
		return v + sce.Val2
	}
	register(&Descriptor{
		Type:     model.SCBlessing,
		Icon:     10,
		Category: CategoryBuff,
		Calc:     model.CalcStr | model.CalcInt | model.CalcDex,
		Cancels:  []model.SCType{model.SCCurse, model.SCStone},
		Guard: func(_ *Engine, _, target *model.Entity, req *Request) error {
			if unholy(target) && target.Battle.IsBoss() {
				return fmt.Errorf("%w: %s on unholy boss", ErrBlocked, req.Type)
			}
			return nil
		},
		Prepare: func(_ *Engine, _, target *model.Entity, req *Request) {
			req.Val2 = req.Val1
			if unholy(target) {
				req.Val2 = 0
			}
		},
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcStr: blessing,
			model.CalcInt: blessing,
			model.CalcDex: blessing,
		},
	})

	register(&Descriptor{
		Type:     model.SCIncAgi,
		Icon:     12,
		Category: CategoryBuff,
		Calc:     model.CalcAgi | model.CalcSpeed,
		Cancels:  []model.SCType{model.SCDecAgi},
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = 2 + req.Val1
		},
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcAgi: addVal(2),
		},
		Speed: poolConst(-25),
	})

	register(&Descriptor{
		Type:     model.SCSlowPoison,
		Icon:     14,
		Category: CategoryBuff,
	})

	register(&Descriptor{
		Type:     model.SCImpositio,
		Icon:     15,
		Category: CategoryBuff,
		Calc:     model.CalcWatk,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = 5 * req.Val1
		},
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcWatk: addVal(2),
		},
	})

	register(&Descriptor{
		Type:     model.SCSuffragium,
		Icon:     16,
		Category: CategoryBuff,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = 15 + 5*req.Val1
		},
	})

	register(&Descriptor{
		Type:     model.SCAspersio,
		Icon:     17,
		Category: CategoryBuff,
		Calc:     model.CalcAtkEle,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcAtkEle: setElement(model.ElementHoly),
		},
	})

	register(&Descriptor{
		Type:     model.SCBenedictio,
		Icon:     18,
		Category: CategoryBuff,
		Calc:     model.CalcDefEle,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcDefEle: setDefElement(model.ElementHoly, 1),
		},
	})

	register(&Descriptor{
		Type:     model.SCMagnificat,
		Icon:     20,
		Category: CategoryBuff,
		Calc:     model.CalcRegen,
		Regen: func(_ *model.SCEntry, r *model.RegenData, _ *model.Entity) {
			r.RateSP += 100
		},
	})

	register(&Descriptor{
		Type:     model.SCGloria,
		Icon:     21,
		Category: CategoryBuff,
		Calc:     model.CalcLuk,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcLuk: addConst(30),
		},
	})

	// val2 != 0: cast by the blacksmith on self (stronger, compared on re-cast)
	register(&Descriptor{
		Type:       model.SCAdrenaline,
		Icon:       23,
		Category:   CategoryBuff,
		Calc:       model.CalcAspd,
		BlockedBy:  quickenBlockers,
		CompareVal: 2,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val3 = 200
			if req.Val2 != 0 {
				req.Val3 = 300
			}
		},
		Aspd: func(sce *model.SCEntry, _ *model.Entity) int32 {
			return -sce.Val3 / 10
		},
	})

	register(&Descriptor{
		Type:       model.SCWeaponPerfection,
		Icon:       24,
		Category:   CategoryBuff,
		CompareVal: 2,
	})

	register(&Descriptor{
		Type:       model.SCOverThrust,
		Icon:       25,
		Category:   CategoryBuff,
		Calc:       model.CalcWatk,
		CompareVal: 2,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val3 = 5
			if req.Val2 != 0 {
				req.Val3 = 5 * req.Val1
			}
		},
		Opt3: model.Opt3OverThrust,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcWatk: addPercentVal(3),
		},
	})

	register(&Descriptor{
		Type:     model.SCLoud,
		Icon:     30,
		Category: CategoryBuff,
		Calc:     model.CalcStr,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcStr: addConst(4),
		},
	})

	register(&Descriptor{
		Type:     model.SCEnergyCoat,
		Icon:     31,
		Category: CategoryBuff,
		Opt3:     model.Opt3EnergyCoat,
	})

	register(&Descriptor{
		Type:     model.SCAutoGuard,
		Icon:     58,
		Category: CategoryBuff,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = 5 * req.Val1
			if req.Val1 > 5 {
				req.Val2 = 25 + 3*(req.Val1-5)
			}
		},
	})

	register(&Descriptor{
		Type:     model.SCReflectShield,
		Icon:     59,
		Category: CategoryBuff,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = 10 + 3*req.Val1
		},
	})

	register(&Descriptor{
		Type:     model.SCDefender,
		Icon:     62,
		Category: CategoryBuff,
		Calc:     model.CalcAspd,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = 5 + 15*req.Val1
			req.Val4 = 250 - 50*req.Val1
		},
		Aspd: func(sce *model.SCEntry, _ *model.Entity) int32 {
			return sce.Val4 / 10
		},
	})

	register(&Descriptor{
		Type:      model.SCSpearQuicken,
		Icon:      68,
		Category:  CategoryBuff,
		Calc:      model.CalcAspd,
		BlockedBy: quickenBlockers,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = 20 + req.Val1
		},
		Opt3: model.Opt3Quicken,
		Aspd: func(sce *model.SCEntry, _ *model.Entity) int32 {
			return -sce.Val2
		},
	})

	register(&Descriptor{
		Type:     model.SCSteelBody,
		Icon:     87,
		Category: CategoryBuff,
		Calc:     model.CalcDef | model.CalcMdef | model.CalcAspd | model.CalcSpeed,
		Opt3:     model.Opt3SteelBody,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcDef:  setConst(90),
			model.CalcMdef: setConst(90),
		},
		Speed: poolConst(25),
		Aspd:  poolConst(25),
	})

	register(&Descriptor{
		Type:     model.SCExplosionSpirits,
		Icon:     86,
		Category: CategoryBuff,
		Calc:     model.CalcCri | model.CalcRegen,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = 75 + 25*req.Val1
		},
		Opt3: model.Opt3ExplosionSpirits,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcCri: addVal(2),
		},
		Regen: suppressRegen(model.RegenSP),
	})

	register(&Descriptor{
		Type:     model.SCAtkPotion,
		Icon:     185,
		Category: CategoryBuff,
		Calc:     model.CalcBatk,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcBatk: addVal(1),
		},
	})

	register(&Descriptor{
		Type:     model.SCMatkPotion,
		Icon:     186,
		Category: CategoryBuff,
		Calc:     model.CalcMatk,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcMatk: addVal(1),
		},
	})

	// val1 element, val2 element level
	register(&Descriptor{
		Type:     model.SCArmorElement,
		Icon:     200,
		Category: CategoryBuff,
		Calc:     model.CalcDefEle,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcDefEle: func(_ int32, sce *model.SCEntry, _ *model.Entity) int32 {
				return packEle(model.Element(sce.Val1), uint8(min(max(sce.Val2, 1), 4)))
			},
		},
	})

	register(&Descriptor{
		Type:     model.SCIncStr,
		Icon:     182,
		Category: CategoryBuff,
		Calc:     model.CalcStr,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcStr: addVal(1),
		},
	})

	allStats := model.CalcStr | model.CalcAgi | model.CalcVit | model.CalcInt | model.CalcDex | model.CalcLuk
	register(&Descriptor{
		Type:     model.SCIncAllStatus,
		Icon:     183,
		Category: CategoryBuff,
		Calc:     allStats,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcStr: addVal(1),
			model.CalcAgi: addVal(1),
			model.CalcVit: addVal(1),
			model.CalcInt: addVal(1),
			model.CalcDex: addVal(1),
			model.CalcLuk: addVal(1),
		},
	})

	register(&Descriptor{
		Type:      model.SCTrueSight,
		Icon:      115,
		Category:  CategoryBuff,
		Calc:      allStats | model.CalcHit | model.CalcCri,
		BlockedBy: []model.SCType{model.SCQuagmire},
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = 3 * req.Val1
			req.Val3 = 10 * req.Val1
		},
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcStr: addConst(5),
			model.CalcAgi: addConst(5),
			model.CalcVit: addConst(5),
			model.CalcInt: addConst(5),
			model.CalcDex: addConst(5),
			model.CalcLuk: addConst(5),
			model.CalcHit: addVal(2),
			model.CalcCri: addVal(3),
		},
	})

	register(&Descriptor{
		Type:      model.SCWindWalk,
		Icon:      116,
		Category:  CategoryBuff,
		Calc:      model.CalcFlee | model.CalcSpeed,
		BlockedBy: []model.SCType{model.SCQuagmire},
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = (req.Val1 + 1) / 2
		},
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcFlee: addVal(2),
		},
		Speed: func(sce *model.SCEntry, _ *model.Entity) int32 {
			return -2 * sce.Val1
		},
	})

	register(&Descriptor{
		Type:      model.SCCartBoost,
		Icon:      118,
		Category:  CategoryBuff,
		Calc:      model.CalcSpeed,
		BlockedBy: quickenBlockers,
		Speed:     poolConst(-20),
	})

	// val1 percent faster, 25 when not given
	register(&Descriptor{
		Type:     model.SCSpeedPotion,
		Icon:     37,
		Category: CategoryBuff,
		Calc:     model.CalcSpeed,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			if req.Val1 <= 0 {
				req.Val1 = 25
			}
		},
		Speed: func(sce *model.SCEntry, _ *model.Entity) int32 {
			return -sce.Val1
		},
	})

	register(&Descriptor{
		Type:     model.SCSight,
		Icon:     IconNone,
		Category: CategoryVisual,
		Stack:    StackExtend,
		Option:   model.OptionSight,
	})

	register(&Descriptor{
		Type:     model.SCRuwach,
		Icon:     IconNone,
		Category: CategoryVisual,
		Stack:    StackExtend,
		Option:   model.OptionRuwach,
	})
}

// unholy: undead-element or demon-race non-players, who take holy buffs as curses.
func unholy(target *model.Entity) bool {
	if target.IsPlayer() {
		return false
	}
	st := &target.Battle
	return st.DefEle == model.ElementUndead || st.Race == model.RaceDemon
}
