package status

import (
	"log/slog"

	"github.com/udisondev/mapcore/internal/model"
	"github.com/udisondev/mapcore/internal/timer"
)

// NaturalHealInterval is the period of the global natural heal timer, ms.
const NaturalHealInterval = 500

// calcRegen rebuilds per-tick regen amounts, rates and suppression flags.
// Accumulated ticks survive the rebuild.
func (e *Engine) calcRegen(target *model.Entity) {
	r := &target.Regen
	if !target.Kind().HasRegen() {
		*r = model.RegenData{}
		return
	}
	st := &target.Battle

	r.HP = 1 + st.Vit/5 + st.MaxHP/200
	r.SP = 1 + st.Int/6 + st.MaxSP/100
	if st.Int >= 120 {
		r.SP += (st.Int-120)/2 + 4
	}
	r.RateHP, r.RateSP = 100, 100
	r.Flag = model.RegenHP | model.RegenSP

	for _, rg := range e.idx.regen {
		if sce := target.SC.Get(rg.typ); sce != nil {
			rg.fn(sce, r, target)
		}
	}
}

// SetSitting changes posture. Regen rates depend on it; standing up ends
// Tension Relax.
func (e *Engine) SetSitting(target *model.Entity, sitting bool) {
	if target == nil || target.Sitting() == sitting {
		return
	}
	target.SetSitting(sitting)
	if !sitting && target.SC.Has(model.SCTensionRelax) {
		e.End(target, model.SCTensionRelax, timer.Invalid)
		return
	}
	e.Recalc(target, model.CalcRegen)
}

// StartNaturalHeal arms the global natural heal timer. Calling it twice is a no-op.
func (e *Engine) StartNaturalHeal() {
	if e.healTimer != timer.Invalid {
		return
	}
	e.healTimer = e.timers.ScheduleAt(e.timers.Now()+NaturalHealInterval, e.naturalHealTimer, 0, 0)
	slog.Info("natural heal started", "interval_ms", NaturalHealInterval)
}

// StopNaturalHeal cancels the global natural heal timer.
func (e *Engine) StopNaturalHeal() {
	if e.healTimer == timer.Invalid {
		return
	}
	e.timers.Cancel(e.healTimer)
	e.healTimer = timer.Invalid
}

func (e *Engine) naturalHealTimer(h timer.Handle, tick int64, _ uint32, _ int) {
	if h != e.healTimer {
		return
	}
	e.world.Range(func(ent *model.Entity) bool {
		e.naturalHeal(ent)
		return true
	})
	e.healTimer = e.timers.ScheduleAt(tick+NaturalHealInterval, e.naturalHealTimer, 0, 0)
}

// naturalHeal advances one entity's regen accumulators by one heal period.
// Sitting doubles the rate, walking halves it.
func (e *Engine) naturalHeal(ent *model.Entity) {
	r := &ent.Regen
	if ent.IsDead() || r.Flag == 0 {
		r.TickHP, r.TickSP = 0, 0
		return
	}

	multi := int64(1)
	if ent.Sitting() {
		multi = 2
	}

	var hp, sp int32
	if r.Flag&model.RegenHP != 0 && ent.HP() < ent.Battle.MaxHP {
		r.TickHP += e.regenStep(r.RateHP, multi, ent.Moving())
		for r.TickHP >= e.battle.NaturalHealHPInterval {
			r.TickHP -= e.battle.NaturalHealHPInterval
			hp += r.HP
		}
	} else {
		r.TickHP = 0
	}

	if r.Flag&model.RegenSP != 0 && ent.SP() < ent.Battle.MaxSP {
		r.TickSP += e.regenStep(r.RateSP, multi, ent.Moving())
		for r.TickSP >= e.battle.NaturalHealSPInterval {
			r.TickSP -= e.battle.NaturalHealSPInterval
			sp += r.SP
		}
	} else {
		r.TickSP = 0
	}

	if hp > 0 || sp > 0 {
		ent.SetHP(ent.HP() + hp)
		ent.SetSP(ent.SP() + sp)
	}
}

func (e *Engine) regenStep(rate int32, multi int64, moving bool) int64 {
	step := int64(NaturalHealInterval) * int64(rate) / 100 * multi
	if moving {
		step /= 2
	}
	return step
}
