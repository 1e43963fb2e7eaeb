package status

import (
	"log/slog"

	"github.com/udisondev/mapcore/internal/model"
	"github.com/udisondev/mapcore/internal/timer"
)

// Damage applies an attack from src. Lex Aeterna doubles it, Kyrie Eleison
// absorbs it, and any hit wakes sleep, breaks freeze and stone and ends
// play-dead. Returns the HP actually lost.
func (e *Engine) Damage(src, target *model.Entity, hp, sp int32) int32 {
	if target == nil || target.IsDead() {
		return 0
	}

	if hp > 0 {
		if target.SC.Has(model.SCAeterna) {
			hp *= 2
			e.End(target, model.SCAeterna, timer.Invalid)
		}
		if sce := target.SC.Get(model.SCKyrie); sce != nil {
			sce.Val2 -= hp
			if sce.Val2 >= 0 {
				hp = 0
			} else {
				hp = -sce.Val2
			}
			sce.Val3--
			if sce.Val3 <= 0 || sce.Val2 <= 0 {
				e.End(target, model.SCKyrie, timer.Invalid)
			}
		}
		if hp > 0 && target.SC.Has(model.SCAssumptio) {
			hp /= 2
		}
		if hp > 0 && target.SC.Has(model.SCEnergyCoat) {
			hp = e.energyCoat(target, hp)
		}
	}

	if hp > 0 || sp > 0 {
		e.breakOnHit(target)
	}
	return e.applyDamage(src, target, hp, sp, true)
}

// energyCoat trades SP for damage reduction: the fuller the SP bar, the
// more it absorbs and the more it costs. Ends when SP runs out.
func (e *Engine) energyCoat(target *model.Entity, hp int32) int32 {
	maxSP := target.Battle.MaxSP
	if maxSP <= 0 {
		return hp
	}
	per := max(100*target.SP()/maxSP-1, 0) / 20
	e.Charge(target, 0, (10+5*per)*target.SP()/1000)
	if target.SP() <= 0 {
		e.End(target, model.SCEnergyCoat, timer.Invalid)
	}
	return hp - hp*6*(1+per)/100
}

// breakOnHit ends the states a hit interrupts.
func (e *Engine) breakOnHit(target *model.Entity) {
	sc := target.SC
	if sc.Has(model.SCFreeze) {
		e.End(target, model.SCFreeze, timer.Invalid)
	}
	if sc.Has(model.SCStone) && sc.Display.Opt1 == model.Opt1Stone {
		e.End(target, model.SCStone, timer.Invalid)
	}
	if sc.Has(model.SCSleep) {
		e.End(target, model.SCSleep, timer.Invalid)
	}
	if sc.Has(model.SCTrickDead) {
		e.End(target, model.SCTrickDead, timer.Invalid)
	}
}

// applyDamage subtracts HP and SP without any effect interaction. A
// non-lethal hit leaves at least 1 HP.
func (e *Engine) applyDamage(src, target *model.Entity, hp, sp int32, lethal bool) int32 {
	if sp > 0 {
		target.SetSP(target.SP() - sp)
	}
	if hp <= 0 {
		return 0
	}
	cur := target.HP()
	hp = min(hp, cur)
	if !lethal && hp >= cur {
		hp = cur - 1
		if hp <= 0 {
			return 0
		}
	}
	target.SetHP(cur - hp)
	if target.IsDead() {
		e.die(src, target)
	}
	return hp
}

// die runs the death cascade: notify, then drop every effect that does not
// survive death.
func (e *Engine) die(killer, target *model.Entity) {
	slog.Debug("entity died", "target", target.ObjectID(), "effects", target.SC.Count())
	e.notifier.Died(target, killer)
	e.Clear(target, ClearDeath)
}

// Heal restores HP and SP up to the maxima. Berserk blocks HP healing.
// Returns the HP actually restored.
func (e *Engine) Heal(target *model.Entity, hp, sp int32) int32 {
	if target == nil || target.IsDead() {
		return 0
	}
	if target.SC.Has(model.SCBerserk) {
		hp = 0
	}
	var healed int32
	if hp > 0 {
		before := target.HP()
		target.SetHP(before + hp)
		healed = target.HP() - before
	}
	if sp > 0 {
		target.SetSP(target.SP() + sp)
	}
	return healed
}

// Charge pays an HP/SP cost. It fails without changes when SP is short or
// the HP cost would kill.
func (e *Engine) Charge(target *model.Entity, hp, sp int32) bool {
	if target == nil || target.IsDead() {
		return false
	}
	if hp > 0 && target.HP() <= hp {
		return false
	}
	if sp > 0 && target.SP() < sp {
		return false
	}
	if hp > 0 {
		target.SetHP(target.HP() - hp)
	}
	if sp > 0 {
		target.SetSP(target.SP() - sp)
	}
	return true
}

// Revive brings a dead entity back with the given HP and SP.
func (e *Engine) Revive(target *model.Entity, hp, sp int32) bool {
	if target == nil || !target.IsDead() {
		return false
	}
	target.SetHP(max(hp, 1))
	target.SetSP(sp)
	e.Recalc(target, model.CalcRegen)
	return true
}
