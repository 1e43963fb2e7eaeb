package status

import "github.com/udisondev/mapcore/internal/model"

// CanMove reports whether target may walk.
func (e *Engine) CanMove(target *model.Entity) bool {
	if target == nil || target.IsDead() {
		return false
	}
	sc := target.SC
	switch sc.Display.Opt1 {
	case model.Opt1None, model.Opt1StoneWait, model.Opt1Burning:
	default:
		return false
	}
	return !sc.Has(model.SCHiding) &&
		!sc.Has(model.SCTrickDead) &&
		!sc.Has(model.SCBladeStop) &&
		!sc.Has(model.SCBladeStopWait)
}

// CanAct reports whether target may take any action at all.
func (e *Engine) CanAct(target *model.Entity) bool {
	if target == nil || target.IsDead() {
		return false
	}
	sc := target.SC
	if opt1 := sc.Display.Opt1; opt1 != model.Opt1None && opt1 != model.Opt1Burning {
		return false
	}
	return !sc.Has(model.SCTrickDead)
}

// CanCast reports whether target may use skills.
func (e *Engine) CanCast(target *model.Entity) bool {
	if !e.CanAct(target) {
		return false
	}
	sc := target.SC
	return !sc.Has(model.SCSilence) &&
		!sc.Has(model.SCBerserk) &&
		!sc.Has(model.SCHiding) &&
		!sc.Has(model.SCBladeStop)
}

// CanAttack reports whether target may use normal attacks.
func (e *Engine) CanAttack(target *model.Entity) bool {
	if !e.CanAct(target) {
		return false
	}
	sc := target.SC
	if sc.Has(model.SCHiding) || sc.Has(model.SCCloaking) || sc.Has(model.SCBladeStop) {
		return false
	}
	if !target.IsPlayer() && target.Battle.Mode&model.ModeCanAttack == 0 {
		return false
	}
	return true
}
