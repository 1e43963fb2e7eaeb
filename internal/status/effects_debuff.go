package status

import (
	"fmt"

	"github.com/udisondev/mapcore/internal/model"
)

const noChatInterval = 60000

func init() {
	register(&Descriptor{
		Type:       model.SCProvoke,
		Icon:       0,
		Category:   CategoryDebuff,
		Calc:       model.CalcDef | model.CalcDef2 | model.CalcBatk | model.CalcWatk,
		BossImmune: true,
		Guard: func(_ *Engine, _, target *model.Entity, req *Request) error {
			if !target.IsPlayer() && target.Battle.DefEle == model.ElementUndead {
				return fmt.Errorf("%w: %s on undead element", ErrBlocked, req.Type)
			}
			return nil
		},
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = 2 + 3*req.Val1
			req.Val3 = 5 + 5*req.Val1
		},
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcDef:  subPercentVal(3),
			model.CalcDef2: subPercentVal(3),
			model.CalcBatk: addPercentVal(2),
			model.CalcWatk: addPercentVal(2),
		},
	})

	register(&Descriptor{
		Type:       model.SCQuagmire,
		Icon:       8,
		Category:   CategoryDebuff,
		Calc:       model.CalcAgi | model.CalcDex | model.CalcSpeed,
		BossImmune: true,
		Cancels: []model.SCType{
			model.SCConcentration, model.SCTrueSight, model.SCWindWalk, model.SCCartBoost,
			model.SCTwoHandQuicken, model.SCSpearQuicken, model.SCAdrenaline,
		},
		Prepare: func(_ *Engine, _, target *model.Entity, req *Request) {
			req.Val2 = 10 * req.Val1
			if target.IsPlayer() {
				req.Val2 /= 2
			}
		},
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcAgi: subPercentVal(2),
			model.CalcDex: subPercentVal(2),
		},
		Speed: poolConst(50),
	})

	register(&Descriptor{
		Type:     model.SCSignumCrucis,
		Icon:     11,
		Category: CategoryDebuff,
		Calc:     model.CalcDef,
		Guard: func(_ *Engine, _, target *model.Entity, req *Request) error {
			if !unholy(target) {
				return fmt.Errorf("%w: %s needs undead or demon", ErrBlocked, req.Type)
			}
			return nil
		},
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = 10 + 4*req.Val1
		},
		Opt2: model.Opt2SignumCrucis,
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcDef: subPercentVal(2),
		},
	})

	register(&Descriptor{
		Type:       model.SCDecAgi,
		Icon:       13,
		Category:   CategoryDebuff,
		Calc:       model.CalcAgi | model.CalcSpeed,
		BossImmune: true,
		Cancels: []model.SCType{
			model.SCIncAgi, model.SCAdrenaline, model.SCSpearQuicken,
			model.SCTwoHandQuicken, model.SCCartBoost,
		},
		Resist: resistDecAgi,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val2 = 2 + req.Val1
		},
		Mods: map[model.CalcFlag]ModFunc{
			model.CalcAgi: subVal(2),
		},
		Speed: poolConst(25),
	})

	register(&Descriptor{
		Type:      model.SCAeterna,
		Icon:      22,
		Category:  CategoryDebuff,
		BlockedBy: []model.SCType{model.SCFreeze},
		Guard: func(_ *Engine, _, target *model.Entity, req *Request) error {
			if target.SC.Display.Opt1 == model.Opt1Stone {
				return fmt.Errorf("%w: %s on petrified target", ErrBlocked, req.Type)
			}
			return nil
		},
	})

	registerStrip(model.SCStripWeapon, 50, model.EquipWeapon, model.CalcWatk, subPercent(25))
	registerStrip(model.SCStripShield, 51, model.EquipShield, model.CalcDef, subPercent(15))
	registerStrip(model.SCStripArmor, 52, model.EquipArmor, model.CalcVit, subPercent(40))
	registerStrip(model.SCStripHelm, 53, model.EquipHelm, model.CalcInt, subPercent(40))

	// val1 minutes left
	register(&Descriptor{
		Type:      model.SCNoChat,
		Icon:      IconNone,
		Category:  CategoryDebuff,
		AllowDead: true,
		Prepare: func(_ *Engine, _, _ *model.Entity, req *Request) {
			req.Val1 = max(req.Val1, 1)
		},
		Interval: noChatInterval,
		OnTick: func(_ *Engine, _ *model.Entity, sce *model.SCEntry) bool {
			sce.Val1--
			return sce.Val1 > 0
		},
	})
}

// registerStrip: players lose the item and need it equipped to begin with;
// monsters have no equipment and take a stat penalty instead.
func registerStrip(t model.SCType, icon int32, slot model.EquipSlot, f model.CalcFlag, penalty ModFunc) {
	register(&Descriptor{
		Type:       t,
		Icon:       icon,
		Category:   CategoryDebuff,
		Calc:       f,
		BossImmune: true,
		Side: &SideEffect{
			Check: func(_ *Engine, target *model.Entity, req *Request) error {
				if target.IsPlayer() && !target.Equipped(slot) {
					return fmt.Errorf("%w: %s with empty slot", ErrPreconditionUnmet, req.Type)
				}
				return nil
			},
			Apply: func(e *Engine, target *model.Entity, _ *Request) {
				if target.IsPlayer() {
					e.equipment.Unequip(target, slot)
				}
			},
		},
		Mods: map[model.CalcFlag]ModFunc{
			f: func(v int32, sce *model.SCEntry, target *model.Entity) int32 {
				if target.IsPlayer() {
					return v
				}
				return penalty(v, sce, target)
			},
		},
	})
}
